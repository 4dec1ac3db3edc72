package store

import (
	"context"
	"sync"

	"civreg/internal/registry/models"
	"civreg/internal/sentinel"
	id "civreg/pkg/domain"
)

// InMemoryStore keeps role and binding state in memory. It is the
// authoritative store under the single-sequencer model and the default for
// tests.
type InMemoryStore struct {
	mu               sync.RWMutex
	roles            map[id.Identity]models.Role
	regionsByID      map[id.RegionID]*models.RegionBinding
	regionsByOfficer map[id.Identity]*models.RegionBinding
	citizens         map[id.Identity]*models.CitizenBinding
	citizensByHash   map[id.NationalIDHash]*models.CitizenBinding
}

// NewMemory constructs an empty in-memory registry store.
func NewMemory() *InMemoryStore {
	return &InMemoryStore{
		roles:            make(map[id.Identity]models.Role),
		regionsByID:      make(map[id.RegionID]*models.RegionBinding),
		regionsByOfficer: make(map[id.Identity]*models.RegionBinding),
		citizens:         make(map[id.Identity]*models.CitizenBinding),
		citizensByHash:   make(map[id.NationalIDHash]*models.CitizenBinding),
	}
}

func (s *InMemoryStore) SaveOfficerRole(_ context.Context, identity id.Identity, role models.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.roles[identity]; ok && existing != role {
		return sentinel.ErrConflict
	}
	s.roles[identity] = role
	return nil
}

func (s *InMemoryStore) RoleOf(_ context.Context, identity id.Identity) (models.Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	role, ok := s.roles[identity]
	if !ok {
		return "", sentinel.ErrNotFound
	}
	return role, nil
}

func (s *InMemoryStore) SaveRegionBinding(_ context.Context, binding *models.RegionBinding) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.regionsByID[binding.RegionID]; ok {
		return sentinel.ErrConflict
	}
	if _, ok := s.regionsByOfficer[binding.Officer]; ok {
		return sentinel.ErrConflict
	}
	copyBinding := *binding
	s.regionsByID[binding.RegionID] = &copyBinding
	s.regionsByOfficer[binding.Officer] = &copyBinding
	return nil
}

func (s *InMemoryStore) RegionBinding(_ context.Context, regionID id.RegionID) (*models.RegionBinding, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	binding, ok := s.regionsByID[regionID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copyBinding := *binding
	return &copyBinding, nil
}

func (s *InMemoryStore) RegionBindingByOfficer(_ context.Context, officer id.Identity) (*models.RegionBinding, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	binding, ok := s.regionsByOfficer[officer]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copyBinding := *binding
	return &copyBinding, nil
}

func (s *InMemoryStore) SaveCitizenBinding(_ context.Context, binding *models.CitizenBinding) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.citizens[binding.Identity]; ok {
		return sentinel.ErrConflict
	}
	if _, ok := s.citizensByHash[binding.NationalIDHash]; ok {
		return sentinel.ErrConflict
	}
	copyBinding := *binding
	s.citizens[binding.Identity] = &copyBinding
	s.citizensByHash[binding.NationalIDHash] = &copyBinding
	return nil
}

func (s *InMemoryStore) CitizenBinding(_ context.Context, identity id.Identity) (*models.CitizenBinding, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	binding, ok := s.citizens[identity]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copyBinding := *binding
	return &copyBinding, nil
}

func (s *InMemoryStore) CitizenBindingByHash(_ context.Context, hash id.NationalIDHash) (*models.CitizenBinding, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	binding, ok := s.citizensByHash[hash]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copyBinding := *binding
	return &copyBinding, nil
}
