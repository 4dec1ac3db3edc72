package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"civreg/internal/request/models"
	"civreg/internal/sentinel"
	id "civreg/pkg/domain"
)

type MemoryStoreSuite struct {
	suite.Suite
	store *InMemoryStore
}

func (s *MemoryStoreSuite) SetupTest() {
	s.store = NewMemory()
}

func TestMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(MemoryStoreSuite))
}

func (s *MemoryStoreSuite) insert(applicant id.Identity, kind models.Kind, origin, destination id.RegionID) *models.Request {
	request := &models.Request{
		Applicant:           applicant,
		Kind:                kind,
		DocumentRef:         "doc",
		OriginRegionID:      origin,
		DestinationRegionID: destination,
		Status:              models.StatusSubmitted,
		SubmittedAt:         time.Now(),
	}
	_, err := s.store.Insert(context.Background(), request)
	require.NoError(s.T(), err)
	return request
}

func (s *MemoryStoreSuite) TestInsertAllocatesDenseIDs() {
	ctx := context.Background()

	first := s.insert("alice", models.KindBirthCertificate, 1, 0)
	second := s.insert("bob", models.KindMove, 1, 2)
	third := s.insert("alice", models.KindDeathCertificate, 3, 0)

	assert.Equal(s.T(), id.RequestID(0), first.ID)
	assert.Equal(s.T(), id.RequestID(1), second.ID)
	assert.Equal(s.T(), id.RequestID(2), third.ID)

	count, err := s.store.Count(ctx)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), uint64(3), count)
}

func (s *MemoryStoreSuite) TestGetReturnsCopies() {
	ctx := context.Background()
	s.insert("alice", models.KindBirthCertificate, 1, 0)

	got, err := s.store.Get(ctx, 0)
	require.NoError(s.T(), err)
	got.Status = models.StatusCentralApproved

	again, err := s.store.Get(ctx, 0)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), models.StatusSubmitted, again.Status, "mutating a returned record must not touch the store")
}

func (s *MemoryStoreSuite) TestGetUnknownID() {
	_, err := s.store.Get(context.Background(), 42)
	assert.ErrorIs(s.T(), err, sentinel.ErrNotFound)
}

func (s *MemoryStoreSuite) TestHugeIDsAreNotFoundNotPanic() {
	ctx := context.Background()
	s.insert("alice", models.KindBirthCertificate, 1, 0)

	// Ids above 2^63-1 would wrap negative under an int conversion and
	// defeat the bounds check.
	for _, requestID := range []id.RequestID{1 << 63, 1<<64 - 1} {
		_, err := s.store.Get(ctx, requestID)
		assert.ErrorIs(s.T(), err, sentinel.ErrNotFound)

		err = s.store.UpdateStatus(ctx, &models.Request{ID: requestID, Status: models.StatusOriginApproved}, models.StatusSubmitted)
		assert.ErrorIs(s.T(), err, sentinel.ErrNotFound)
	}
}

func (s *MemoryStoreSuite) TestUpdateStatusMovesBuckets() {
	ctx := context.Background()
	request := s.insert("alice", models.KindBirthCertificate, 1, 0)

	request.Status = models.StatusOriginApproved
	require.NoError(s.T(), s.store.UpdateStatus(ctx, request, models.StatusSubmitted))

	submitted, err := s.store.ListByStatus(ctx, models.StatusSubmitted)
	require.NoError(s.T(), err)
	assert.Empty(s.T(), submitted)

	approved, err := s.store.ListByStatus(ctx, models.StatusOriginApproved)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), []id.RequestID{0}, approved)
}

func (s *MemoryStoreSuite) TestUpdateStatusStaleOldStatus() {
	ctx := context.Background()
	request := s.insert("alice", models.KindBirthCertificate, 1, 0)

	request.Status = models.StatusOriginApproved
	require.NoError(s.T(), s.store.UpdateStatus(ctx, request, models.StatusSubmitted))

	request.Status = models.StatusCentralApproved
	err := s.store.UpdateStatus(ctx, request, models.StatusSubmitted)
	assert.ErrorIs(s.T(), err, sentinel.ErrInvalidState)
}

func (s *MemoryStoreSuite) TestIndexesPreserveInsertionOrder() {
	ctx := context.Background()
	s.insert("alice", models.KindBirthCertificate, 1, 0)
	s.insert("bob", models.KindMove, 1, 2)
	s.insert("alice", models.KindMove, 1, 2)

	byApplicant, err := s.store.ListByApplicant(ctx, "alice")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), []id.RequestID{0, 2}, byApplicant)

	byOrigin, err := s.store.ListByOriginRegion(ctx, 1)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), []id.RequestID{0, 1, 2}, byOrigin)

	byDestination, err := s.store.ListByDestinationRegion(ctx, 2)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), []id.RequestID{1, 2}, byDestination)
}

func (s *MemoryStoreSuite) TestDestinationIndexSkipsNonMoveKinds() {
	ctx := context.Background()
	// Non-Move record carrying a stray destination id must not be routable
	// through the destination index.
	s.insert("alice", models.KindBirthCertificate, 1, 2)

	byDestination, err := s.store.ListByDestinationRegion(ctx, 2)
	require.NoError(s.T(), err)
	assert.Empty(s.T(), byDestination)
}

func (s *MemoryStoreSuite) TestUnknownKeysReturnEmptySlices() {
	ctx := context.Background()

	byApplicant, err := s.store.ListByApplicant(ctx, "nobody")
	require.NoError(s.T(), err)
	assert.NotNil(s.T(), byApplicant)
	assert.Empty(s.T(), byApplicant)

	byRegion, err := s.store.ListByOriginRegion(ctx, 404)
	require.NoError(s.T(), err)
	assert.NotNil(s.T(), byRegion)
	assert.Empty(s.T(), byRegion)

	filtered, err := s.store.ListByOriginRegionAndStatus(ctx, 404, models.StatusSubmitted)
	require.NoError(s.T(), err)
	assert.NotNil(s.T(), filtered)
	assert.Empty(s.T(), filtered)
}

func (s *MemoryStoreSuite) TestListByOriginRegionAndStatus() {
	ctx := context.Background()
	first := s.insert("alice", models.KindBirthCertificate, 1, 0)
	s.insert("bob", models.KindDeathCertificate, 1, 0)

	first.Status = models.StatusOriginApproved
	require.NoError(s.T(), s.store.UpdateStatus(ctx, first, models.StatusSubmitted))

	pending, err := s.store.ListByOriginRegionAndStatus(ctx, 1, models.StatusSubmitted)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), []id.RequestID{1}, pending)
}
