package store

import (
	"context"
	"slices"
	"sync"

	"civreg/internal/request/models"
	"civreg/internal/sentinel"
	id "civreg/pkg/domain"
)

// InMemoryStore keeps requests in an id-indexed slice plus ordered derived
// indexes. The slice index IS the request id, which makes the dense
// allocation rule structural rather than checked.
type InMemoryStore struct {
	mu       sync.RWMutex
	requests []*models.Request

	byApplicant   map[id.Identity][]id.RequestID
	byOrigin      map[id.RegionID][]id.RequestID
	byDestination map[id.RegionID][]id.RequestID
	byStatus      map[models.Status][]id.RequestID
}

// NewMemory constructs an empty in-memory request store.
func NewMemory() *InMemoryStore {
	return &InMemoryStore{
		byApplicant:   make(map[id.Identity][]id.RequestID),
		byOrigin:      make(map[id.RegionID][]id.RequestID),
		byDestination: make(map[id.RegionID][]id.RequestID),
		byStatus:      make(map[models.Status][]id.RequestID),
	}
}

func (s *InMemoryStore) Insert(_ context.Context, request *models.Request) (id.RequestID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	requestID := id.RequestID(len(s.requests))
	request.ID = requestID

	copyReq := *request
	s.requests = append(s.requests, &copyReq)

	s.byApplicant[request.Applicant] = append(s.byApplicant[request.Applicant], requestID)
	s.byOrigin[request.OriginRegionID] = append(s.byOrigin[request.OriginRegionID], requestID)
	if request.IsMove() {
		s.byDestination[request.DestinationRegionID] = append(s.byDestination[request.DestinationRegionID], requestID)
	}
	s.byStatus[request.Status] = append(s.byStatus[request.Status], requestID)
	return requestID, nil
}

func (s *InMemoryStore) Get(_ context.Context, requestID id.RequestID) (*models.Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	// Compare in uint64 space: converting a huge id to int would wrap
	// negative and slip past the bound.
	if uint64(requestID) >= uint64(len(s.requests)) {
		return nil, sentinel.ErrNotFound
	}
	copyReq := *s.requests[requestID]
	return &copyReq, nil
}

func (s *InMemoryStore) UpdateStatus(_ context.Context, request *models.Request, oldStatus models.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if uint64(request.ID) >= uint64(len(s.requests)) {
		return sentinel.ErrNotFound
	}
	if s.requests[request.ID].Status != oldStatus {
		return sentinel.ErrInvalidState
	}

	copyReq := *request
	s.requests[request.ID] = &copyReq

	if request.Status != oldStatus {
		s.byStatus[oldStatus] = removeID(s.byStatus[oldStatus], request.ID)
		s.byStatus[request.Status] = append(s.byStatus[request.Status], request.ID)
	}
	return nil
}

func removeID(ids []id.RequestID, requestID id.RequestID) []id.RequestID {
	i := slices.Index(ids, requestID)
	if i < 0 {
		return ids
	}
	return append(ids[:i], ids[i+1:]...)
}

func cloneIDs(ids []id.RequestID) []id.RequestID {
	if len(ids) == 0 {
		return []id.RequestID{}
	}
	return slices.Clone(ids)
}

func (s *InMemoryStore) ListByApplicant(_ context.Context, applicant id.Identity) ([]id.RequestID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneIDs(s.byApplicant[applicant]), nil
}

func (s *InMemoryStore) ListByOriginRegion(_ context.Context, regionID id.RegionID) ([]id.RequestID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneIDs(s.byOrigin[regionID]), nil
}

func (s *InMemoryStore) ListByDestinationRegion(_ context.Context, regionID id.RegionID) ([]id.RequestID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneIDs(s.byDestination[regionID]), nil
}

func (s *InMemoryStore) ListByStatus(_ context.Context, status models.Status) ([]id.RequestID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneIDs(s.byStatus[status]), nil
}

func (s *InMemoryStore) ListByOriginRegionAndStatus(_ context.Context, regionID id.RegionID, status models.Status) ([]id.RequestID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []id.RequestID
	for _, requestID := range s.byOrigin[regionID] {
		if s.requests[requestID].Status == status {
			out = append(out, requestID)
		}
	}
	if out == nil {
		out = []id.RequestID{}
	}
	return out, nil
}

func (s *InMemoryStore) Count(_ context.Context) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return uint64(len(s.requests)), nil
}

var _ Store = (*InMemoryStore)(nil)
