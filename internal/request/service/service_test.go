package service

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"civreg/internal/audit"
	"civreg/internal/request/models"
	"civreg/internal/request/store"
	registryservice "civreg/internal/registry/service"
	registrystore "civreg/internal/registry/store"
	id "civreg/pkg/domain"
	dErrors "civreg/pkg/domain-errors"
)

const (
	owner         = id.Identity("owner")
	originOfficer = id.Identity("officer-origin")
	destOfficer   = id.Identity("officer-destination")
	central       = id.Identity("officer-central")
	alice         = id.Identity("alice")
	bob           = id.Identity("bob")

	originRegion = id.RegionID(1)
	destRegion   = id.RegionID(2)
)

type LifecycleSuite struct {
	suite.Suite
	store      *store.InMemoryStore
	auditStore *audit.InMemoryStore
	service    *Service
}

func (s *LifecycleSuite) SetupTest() {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	registry := registryservice.NewService(owner, registrystore.NewMemory(), logger)
	require.NoError(s.T(), registry.GrantRegionalOfficer(ctx, owner, originOfficer))
	require.NoError(s.T(), registry.GrantRegionalOfficer(ctx, owner, destOfficer))
	require.NoError(s.T(), registry.GrantCentralOfficer(ctx, owner, central))
	require.NoError(s.T(), registry.BindRegion(ctx, owner, originRegion, originOfficer, ""))
	require.NoError(s.T(), registry.BindRegion(ctx, owner, destRegion, destOfficer, ""))
	require.NoError(s.T(), registry.RegisterCitizen(ctx, alice, "hash-alice"))
	require.NoError(s.T(), registry.RegisterCitizen(ctx, bob, "hash-bob"))

	s.store = store.NewMemory()
	s.auditStore = audit.NewInMemoryStore()
	s.service = NewService(s.store, registry, audit.NewPublisher(s.auditStore), logger)
}

func TestLifecycleSuite(t *testing.T) {
	suite.Run(t, new(LifecycleSuite))
}

func (s *LifecycleSuite) submit(applicant id.Identity, kind models.Kind, destination id.RegionID) *models.Request {
	request, err := s.service.Submit(context.Background(), applicant, kind, "doc-ref", originRegion, destination, models.MoveSubtypeNone)
	require.NoError(s.T(), err)
	return request
}

func (s *LifecycleSuite) TestSubmit_DenseIDSequence() {
	ctx := context.Background()

	first := s.submit(alice, models.KindBirthCertificate, 0)
	assert.Equal(s.T(), id.RequestID(0), first.ID)
	assert.Equal(s.T(), models.StatusSubmitted, first.Status)

	// A failed submission must not consume an id.
	_, err := s.service.Submit(ctx, alice, models.KindMove, "doc", originRegion, 0, models.MoveSubtypeNone)
	require.Error(s.T(), err)

	second := s.submit(bob, models.KindMove, destRegion)
	assert.Equal(s.T(), id.RequestID(1), second.ID)

	total, err := s.service.Total(ctx)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), uint64(2), total)
}

func (s *LifecycleSuite) TestSubmit_Guards() {
	ctx := context.Background()

	s.Run("unregistered caller", func() {
		_, err := s.service.Submit(ctx, "stranger", models.KindBirthCertificate, "doc", originRegion, 0, models.MoveSubtypeNone)
		require.Error(s.T(), err)
		assert.True(s.T(), dErrors.HasCode(err, dErrors.CodeNotRegisteredCitizen))
	})

	s.Run("empty document reference", func() {
		_, err := s.service.Submit(ctx, alice, models.KindBirthCertificate, "", originRegion, 0, models.MoveSubtypeNone)
		require.Error(s.T(), err)
		assert.True(s.T(), dErrors.HasCode(err, dErrors.CodeEmptyDocumentReference))
	})

	s.Run("unknown kind", func() {
		_, err := s.service.Submit(ctx, alice, "passport", "doc", originRegion, 0, models.MoveSubtypeNone)
		require.Error(s.T(), err)
		assert.True(s.T(), dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.Run("unbound origin region", func() {
		_, err := s.service.Submit(ctx, alice, models.KindBirthCertificate, "doc", 99, 0, models.MoveSubtypeNone)
		require.Error(s.T(), err)
		assert.True(s.T(), dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})
}

func (s *LifecycleSuite) TestSubmit_MoveDestinationErrorsAreDistinguishable() {
	ctx := context.Background()

	_, err := s.service.Submit(ctx, alice, models.KindMove, "doc", originRegion, 0, models.MoveSubtypeNone)
	require.Error(s.T(), err)
	assert.True(s.T(), dErrors.HasCode(err, dErrors.CodeInvalidDestination))
	assert.Contains(s.T(), err.Error(), "required")

	_, err = s.service.Submit(ctx, alice, models.KindMove, "doc", originRegion, 99, models.MoveSubtypeNone)
	require.Error(s.T(), err)
	assert.True(s.T(), dErrors.HasCode(err, dErrors.CodeInvalidDestination))
	assert.Contains(s.T(), err.Error(), "unknown")
}

func (s *LifecycleSuite) TestVerifyOrigin() {
	ctx := context.Background()
	request := s.submit(alice, models.KindBirthCertificate, 0)

	s.Run("wrong officer is unauthorized", func() {
		_, err := s.service.VerifyOrigin(ctx, destOfficer, request.ID, true, "")
		require.Error(s.T(), err)
		assert.True(s.T(), dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	s.Run("unknown id", func() {
		_, err := s.service.VerifyOrigin(ctx, originOfficer, 404, true, "")
		require.Error(s.T(), err)
		assert.True(s.T(), dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("approve records verifier", func() {
		updated, err := s.service.VerifyOrigin(ctx, originOfficer, request.ID, true, "")
		require.NoError(s.T(), err)
		assert.Equal(s.T(), models.StatusOriginApproved, updated.Status)
		assert.Equal(s.T(), originOfficer, updated.OriginVerifier)
		require.NotNil(s.T(), updated.OriginVerifiedAt)
	})

	s.Run("second verification hits wrong status", func() {
		_, err := s.service.VerifyOrigin(ctx, originOfficer, request.ID, true, "")
		require.Error(s.T(), err)
		assert.True(s.T(), dErrors.HasCode(err, dErrors.CodeWrongStatus))
	})
}

func (s *LifecycleSuite) TestVerifyOrigin_RejectionStoresReasonVerbatim() {
	ctx := context.Background()
	request := s.submit(alice, models.KindDeathCertificate, 0)

	updated, err := s.service.VerifyOrigin(ctx, originOfficer, request.ID, false, "attachment illegible")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), models.StatusOriginRejected, updated.Status)
	assert.Equal(s.T(), "attachment illegible", updated.RejectionReason)

	// Rejection is terminal.
	_, err = s.service.VerifyCentral(ctx, central, request.ID, true, "")
	require.Error(s.T(), err)
	assert.True(s.T(), dErrors.HasCode(err, dErrors.CodeWrongStatus))
}

func (s *LifecycleSuite) TestVerifyOrigin_EmptyRejectionReasonIsValid() {
	ctx := context.Background()
	request := s.submit(alice, models.KindDivorceCertificate, 0)

	updated, err := s.service.VerifyOrigin(ctx, originOfficer, request.ID, false, "")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), models.StatusOriginRejected, updated.Status)
	assert.Empty(s.T(), updated.RejectionReason)
}

func (s *LifecycleSuite) TestFullMoveScenario() {
	ctx := context.Background()
	request := s.submit(alice, models.KindMove, destRegion)

	// The origin officer can never act on the destination step.
	_, err := s.service.VerifyDestination(ctx, originOfficer, request.ID, true, "")
	require.Error(s.T(), err)
	assert.True(s.T(), dErrors.HasCode(err, dErrors.CodeUnauthorized))

	updated, err := s.service.VerifyOrigin(ctx, originOfficer, request.ID, true, "")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), models.StatusOriginApproved, updated.Status)

	// Still not the origin officer's step.
	_, err = s.service.VerifyDestination(ctx, originOfficer, request.ID, true, "")
	require.Error(s.T(), err)
	assert.True(s.T(), dErrors.HasCode(err, dErrors.CodeUnauthorized))

	// Central cannot skip the destination tier on a Move.
	_, err = s.service.VerifyCentral(ctx, central, request.ID, true, "")
	require.Error(s.T(), err)
	assert.True(s.T(), dErrors.HasCode(err, dErrors.CodeWrongStatus))

	updated, err = s.service.VerifyDestination(ctx, destOfficer, request.ID, true, "")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), models.StatusDestinationApproved, updated.Status)
	assert.Equal(s.T(), destOfficer, updated.DestinationVerifier)

	updated, err = s.service.VerifyCentral(ctx, central, request.ID, true, "")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), models.StatusCentralApproved, updated.Status)
	assert.True(s.T(), updated.Status.Terminal())
}

func (s *LifecycleSuite) TestVerifyDestination_NonMoveKind() {
	ctx := context.Background()
	request := s.submit(alice, models.KindMarriageCertificate, 0)

	_, err := s.service.VerifyOrigin(ctx, originOfficer, request.ID, true, "")
	require.NoError(s.T(), err)

	_, err = s.service.VerifyDestination(ctx, destOfficer, request.ID, true, "")
	require.Error(s.T(), err)
	assert.True(s.T(), dErrors.HasCode(err, dErrors.CodeWrongStatus))
}

func (s *LifecycleSuite) TestVerifyCentral_NonMovePath() {
	ctx := context.Background()
	request := s.submit(alice, models.KindBirthCertificate, 0)

	// Central cannot act before the origin tier.
	_, err := s.service.VerifyCentral(ctx, central, request.ID, true, "")
	require.Error(s.T(), err)
	assert.True(s.T(), dErrors.HasCode(err, dErrors.CodeWrongStatus))

	_, err = s.service.VerifyOrigin(ctx, originOfficer, request.ID, true, "")
	require.NoError(s.T(), err)

	// Non-central callers are rejected.
	_, err = s.service.VerifyCentral(ctx, originOfficer, request.ID, true, "")
	require.Error(s.T(), err)
	assert.True(s.T(), dErrors.HasCode(err, dErrors.CodeUnauthorized))

	updated, err := s.service.VerifyCentral(ctx, central, request.ID, false, "national records mismatch")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), models.StatusCentralRejected, updated.Status)
	assert.Equal(s.T(), "national records mismatch", updated.RejectionReason)
}

func (s *LifecycleSuite) TestCancel() {
	ctx := context.Background()
	request := s.submit(alice, models.KindBirthCertificate, 0)

	s.Run("only the applicant may cancel", func() {
		_, err := s.service.Cancel(ctx, bob, request.ID)
		require.Error(s.T(), err)
		assert.True(s.T(), dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	s.Run("cancellation stores the fixed reason", func() {
		updated, err := s.service.Cancel(ctx, alice, request.ID)
		require.NoError(s.T(), err)
		assert.Equal(s.T(), models.StatusCitizenCancelled, updated.Status)
		assert.Equal(s.T(), CancellationReason, updated.RejectionReason)
	})

	s.Run("cancelled is terminal", func() {
		_, err := s.service.VerifyOrigin(ctx, originOfficer, request.ID, true, "")
		require.Error(s.T(), err)
		assert.True(s.T(), dErrors.HasCode(err, dErrors.CodeWrongStatus))
	})
}

func (s *LifecycleSuite) TestCancel_AfterOriginApproval() {
	ctx := context.Background()
	request := s.submit(alice, models.KindBirthCertificate, 0)
	_, err := s.service.VerifyOrigin(ctx, originOfficer, request.ID, true, "")
	require.NoError(s.T(), err)

	_, err = s.service.Cancel(ctx, alice, request.ID)
	require.Error(s.T(), err)
	assert.True(s.T(), dErrors.HasCode(err, dErrors.CodeWrongStatus))
}

func (s *LifecycleSuite) approveToCentral(request *models.Request) {
	ctx := context.Background()
	_, err := s.service.VerifyOrigin(ctx, originOfficer, request.ID, true, "")
	require.NoError(s.T(), err)
	if request.IsMove() {
		_, err = s.service.VerifyDestination(ctx, destOfficer, request.ID, true, "")
		require.NoError(s.T(), err)
	}
	_, err = s.service.VerifyCentral(ctx, central, request.ID, true, "")
	require.NoError(s.T(), err)
}

func (s *LifecycleSuite) TestDocumentAttachment() {
	ctx := context.Background()
	request := s.submit(alice, models.KindBirthCertificate, 0)

	s.Run("fetch before attach", func() {
		s.approveToCentral(request)
		_, err := s.service.FetchOfficialDocument(ctx, alice, request.ID)
		require.Error(s.T(), err)
		assert.True(s.T(), dErrors.HasCode(err, dErrors.CodeDocumentNotIssued))
	})

	s.Run("non-central caller cannot attach", func() {
		err := s.service.AttachOfficialDocument(ctx, originOfficer, request.ID, "akta-123")
		require.Error(s.T(), err)
		assert.True(s.T(), dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	s.Run("empty reference is rejected", func() {
		err := s.service.AttachOfficialDocument(ctx, central, request.ID, "")
		require.Error(s.T(), err)
		assert.True(s.T(), dErrors.HasCode(err, dErrors.CodeEmptyDocumentReference))
	})

	s.Run("attach then fetch returns the exact value", func() {
		require.NoError(s.T(), s.service.AttachOfficialDocument(ctx, central, request.ID, "akta-123"))
		ref, err := s.service.FetchOfficialDocument(ctx, alice, request.ID)
		require.NoError(s.T(), err)
		assert.Equal(s.T(), "akta-123", ref)
	})

	s.Run("overwrite is allowed", func() {
		require.NoError(s.T(), s.service.AttachOfficialDocument(ctx, central, request.ID, "akta-123-r2"))
		ref, err := s.service.FetchOfficialDocument(ctx, alice, request.ID)
		require.NoError(s.T(), err)
		assert.Equal(s.T(), "akta-123-r2", ref)
	})

	s.Run("only the applicant may fetch", func() {
		_, err := s.service.FetchOfficialDocument(ctx, bob, request.ID)
		require.Error(s.T(), err)
		assert.True(s.T(), dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})
}

func (s *LifecycleSuite) TestDocumentAttachment_RequiresCentralApproval() {
	ctx := context.Background()
	request := s.submit(alice, models.KindBirthCertificate, 0)

	err := s.service.AttachOfficialDocument(ctx, central, request.ID, "akta-1")
	require.Error(s.T(), err)
	assert.True(s.T(), dErrors.HasCode(err, dErrors.CodeWrongStatus))
}

func (s *LifecycleSuite) TestQueries() {
	ctx := context.Background()
	first := s.submit(alice, models.KindBirthCertificate, 0)
	second := s.submit(bob, models.KindMove, destRegion)
	third := s.submit(alice, models.KindMove, destRegion)

	s.Run("list by applicant keeps submission order", func() {
		mine, err := s.service.ListByApplicant(ctx, alice)
		require.NoError(s.T(), err)
		require.Len(s.T(), mine, 2)
		assert.Equal(s.T(), first.ID, mine[0].ID)
		assert.Equal(s.T(), third.ID, mine[1].ID)
	})

	s.Run("origin region listing", func() {
		origin, err := s.service.ListByOriginRegion(ctx, originOfficer)
		require.NoError(s.T(), err)
		assert.Len(s.T(), origin, 3)
	})

	s.Run("destination region listing covers moves only", func() {
		destination, err := s.service.ListByDestinationRegion(ctx, destOfficer)
		require.NoError(s.T(), err)
		require.Len(s.T(), destination, 2)
		assert.Equal(s.T(), second.ID, destination[0].ID)
	})

	s.Run("region with no requests returns empty slice", func() {
		destination, err := s.service.ListByDestinationRegion(ctx, originOfficer)
		require.NoError(s.T(), err)
		assert.NotNil(s.T(), destination)
		assert.Empty(s.T(), destination)
	})

	s.Run("unbound caller cannot list regions", func() {
		_, err := s.service.ListByOriginRegion(ctx, alice)
		require.Error(s.T(), err)
		assert.True(s.T(), dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	s.Run("pending filter tracks transitions", func() {
		_, err := s.service.VerifyOrigin(ctx, originOfficer, first.ID, true, "")
		require.NoError(s.T(), err)

		pending, err := s.service.ListPendingForRegion(ctx, originOfficer, models.StatusSubmitted)
		require.NoError(s.T(), err)
		require.Len(s.T(), pending, 2)
		assert.Equal(s.T(), second.ID, pending[0].ID)

		approved, err := s.service.ListPendingForRegion(ctx, originOfficer, models.StatusOriginApproved)
		require.NoError(s.T(), err)
		require.Len(s.T(), approved, 1)
		assert.Equal(s.T(), first.ID, approved[0].ID)
	})

	s.Run("central listing requires the role", func() {
		_, err := s.service.ListForCentralOfficer(ctx, originOfficer, models.StatusOriginApproved)
		require.Error(s.T(), err)
		assert.True(s.T(), dErrors.HasCode(err, dErrors.CodeUnauthorized))

		list, err := s.service.ListForCentralOfficer(ctx, central, models.StatusOriginApproved)
		require.NoError(s.T(), err)
		assert.Len(s.T(), list, 1)
	})
}

func (s *LifecycleSuite) TestGet_Scoping() {
	ctx := context.Background()
	request := s.submit(alice, models.KindMove, destRegion)

	for _, caller := range []id.Identity{alice, originOfficer, destOfficer, central} {
		got, err := s.service.Get(ctx, caller, request.ID)
		require.NoError(s.T(), err, "caller %s should read the record", caller)
		assert.Equal(s.T(), request.ID, got.ID)
	}

	_, err := s.service.Get(ctx, bob, request.ID)
	require.Error(s.T(), err)
	assert.True(s.T(), dErrors.HasCode(err, dErrors.CodeUnauthorized))

	_, err = s.service.Get(ctx, alice, 404)
	require.Error(s.T(), err)
	assert.True(s.T(), dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *LifecycleSuite) TestGet_DestinationOfficerCannotReadNonMove() {
	ctx := context.Background()
	request := s.submit(alice, models.KindBirthCertificate, 0)

	_, err := s.service.Get(ctx, destOfficer, request.ID)
	require.Error(s.T(), err)
	assert.True(s.T(), dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func (s *LifecycleSuite) TestLabels() {
	ctx := context.Background()
	request := s.submit(alice, models.KindMove, destRegion)

	status, err := s.service.StatusLabel(ctx, request.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "Submitted", status)

	kind, err := s.service.KindLabel(ctx, request.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "Residence Move", kind)

	_, err = s.service.StatusLabel(ctx, 404)
	require.Error(s.T(), err)
	assert.True(s.T(), dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *LifecycleSuite) TestAuditTrail() {
	ctx := context.Background()
	request := s.submit(alice, models.KindBirthCertificate, 0)
	_, err := s.service.VerifyOrigin(ctx, originOfficer, request.ID, false, "illegible")
	require.NoError(s.T(), err)

	events, err := s.auditStore.ListByRequest(ctx, request.ID)
	require.NoError(s.T(), err)
	require.Len(s.T(), events, 2)

	assert.Equal(s.T(), audit.ActionRequestSubmitted, events[0].Action)
	assert.Equal(s.T(), alice, events[0].Actor)
	assert.Nil(s.T(), events[0].Approved)

	assert.Equal(s.T(), audit.ActionOriginVerified, events[1].Action)
	assert.Equal(s.T(), originOfficer, events[1].Actor)
	require.NotNil(s.T(), events[1].Approved)
	assert.False(s.T(), *events[1].Approved)
	assert.Equal(s.T(), "illegible", events[1].Reason)
}

func (s *LifecycleSuite) TestFailedGuardEmitsNoAudit() {
	ctx := context.Background()
	request := s.submit(alice, models.KindBirthCertificate, 0)

	_, err := s.service.VerifyOrigin(ctx, destOfficer, request.ID, true, "")
	require.Error(s.T(), err)

	events, err := s.auditStore.ListByRequest(ctx, request.ID)
	require.NoError(s.T(), err)
	assert.Len(s.T(), events, 1, "only the submission event should exist")
}
