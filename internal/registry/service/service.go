package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"civreg/internal/platform/metrics"
	"civreg/internal/registry/cache"
	"civreg/internal/registry/models"
	"civreg/internal/registry/store"
	"civreg/internal/sentinel"
	id "civreg/pkg/domain"
	dErrors "civreg/pkg/domain-errors"
)

// Service owns role and binding state. It gates every other component: the
// lifecycle engine and query layer consult its predicates before touching a
// request.
type Service struct {
	owner   id.Identity
	store   store.Store
	regions *cache.RegionCache
	logger  *slog.Logger
	metrics *metrics.Metrics
}

type Option func(*Service)

// WithMetrics sets the metrics instance for the service.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithRegionCache attaches a read-through cache for region bindings.
func WithRegionCache(c *cache.RegionCache) Option {
	return func(s *Service) {
		s.regions = c
	}
}

func NewService(owner id.Identity, st store.Store, logger *slog.Logger, opts ...Option) *Service {
	svc := &Service{
		owner:  owner,
		store:  st,
		logger: logger,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// GrantRegionalOfficer makes identity a regional officer. Owner only.
func (s *Service) GrantRegionalOfficer(ctx context.Context, caller, identity id.Identity) error {
	return s.grantOfficer(ctx, caller, identity, models.RoleRegionalOfficer)
}

// GrantCentralOfficer makes identity a central officer. Owner only.
func (s *Service) GrantCentralOfficer(ctx context.Context, caller, identity id.Identity) error {
	return s.grantOfficer(ctx, caller, identity, models.RoleCentralOfficer)
}

func (s *Service) grantOfficer(ctx context.Context, caller, identity id.Identity, role models.Role) error {
	if caller != s.owner {
		return dErrors.New(dErrors.CodeNotOwner, "only the owner may grant officer roles")
	}
	if identity.IsZero() {
		return dErrors.New(dErrors.CodeInvalidInput, "identity is required")
	}

	// One identity, one officer role. Letting a single identity hold both
	// tiers would collapse the two-tier approval chain.
	existing, err := s.store.RoleOf(ctx, identity)
	if err != nil && !errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to read officer role")
	}
	if err == nil && existing != role {
		return dErrors.New(dErrors.CodeConflict, "identity already holds a different role")
	}

	if err := s.store.SaveOfficerRole(ctx, identity, role); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return dErrors.New(dErrors.CodeConflict, "identity already holds a different role")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save officer role")
	}

	if s.metrics != nil {
		s.metrics.OfficersGranted.WithLabelValues(string(role)).Inc()
	}
	s.logger.InfoContext(ctx, "officer role granted",
		"identity", identity,
		"role", role,
	)
	return nil
}

// BindRegion makes identity the governing officer of regionID. Owner only.
// Both directions are unique: a bound region or an already-governing officer
// is rejected with a specific error.
func (s *Service) BindRegion(ctx context.Context, caller id.Identity, regionID id.RegionID, officer id.Identity, metadataRef string) error {
	if caller != s.owner {
		return dErrors.New(dErrors.CodeNotOwner, "only the owner may bind regions")
	}
	if regionID.IsZero() {
		return dErrors.New(dErrors.CodeInvalidInput, "region ID must be positive")
	}
	if officer.IsZero() {
		return dErrors.New(dErrors.CodeInvalidInput, "officer identity is required")
	}

	role, err := s.store.RoleOf(ctx, officer)
	if err != nil && !errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to read officer role")
	}
	if errors.Is(err, sentinel.ErrNotFound) || role != models.RoleRegionalOfficer {
		return dErrors.New(dErrors.CodeUnauthorized, "identity is not a regional officer")
	}

	if _, err := s.store.RegionBinding(ctx, regionID); err == nil {
		return dErrors.New(dErrors.CodeRegionAlreadyBound, "region already has a governing officer")
	} else if !errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to read region binding")
	}
	if _, err := s.store.RegionBindingByOfficer(ctx, officer); err == nil {
		return dErrors.New(dErrors.CodeIdentityAlreadyBound, "officer already governs a region")
	} else if !errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to read region binding")
	}

	binding := &models.RegionBinding{
		RegionID:    regionID,
		Officer:     officer,
		MetadataRef: metadataRef,
		BoundAt:     time.Now(),
	}
	if err := s.store.SaveRegionBinding(ctx, binding); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return dErrors.New(dErrors.CodeRegionAlreadyBound, "region already has a governing officer")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save region binding")
	}

	s.regions.Put(ctx, binding)

	if s.metrics != nil {
		s.metrics.RegionsBound.Inc()
	}
	s.logger.InfoContext(ctx, "region bound",
		"region_id", regionID,
		"officer", officer,
	)
	return nil
}

// RegisterCitizen binds the caller to a hashed national-id value. The
// binding is injective both ways and immutable once created.
func (s *Service) RegisterCitizen(ctx context.Context, caller id.Identity, hash id.NationalIDHash) error {
	if caller.IsZero() {
		return dErrors.New(dErrors.CodeUnauthorized, "missing caller identity")
	}
	if hash.IsZero() {
		return dErrors.New(dErrors.CodeInvalidInput, "national ID hash is required")
	}

	if _, err := s.store.CitizenBinding(ctx, caller); err == nil {
		return dErrors.New(dErrors.CodeIdentityAlreadyRegistered, "identity is already registered")
	} else if !errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to read citizen binding")
	}
	if _, err := s.store.CitizenBindingByHash(ctx, hash); err == nil {
		return dErrors.New(dErrors.CodeNationalIDAlreadyClaimed, "national ID is already claimed by another identity")
	} else if !errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to read citizen binding")
	}

	binding := &models.CitizenBinding{
		Identity:       caller,
		NationalIDHash: hash,
		RegisteredAt:   time.Now(),
	}
	if err := s.store.SaveCitizenBinding(ctx, binding); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return dErrors.New(dErrors.CodeNationalIDAlreadyClaimed, "national ID is already claimed by another identity")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save citizen binding")
	}

	if s.metrics != nil {
		s.metrics.CitizensRegistered.Inc()
	}
	s.logger.InfoContext(ctx, "citizen registered", "identity", caller)
	return nil
}

// IsOwner reports whether identity is the configured owner.
func (s *Service) IsOwner(identity id.Identity) bool {
	return !identity.IsZero() && identity == s.owner
}

// IsRegionalOfficer reports whether identity holds the regional officer role.
func (s *Service) IsRegionalOfficer(ctx context.Context, identity id.Identity) (bool, error) {
	return s.hasRole(ctx, identity, models.RoleRegionalOfficer)
}

// IsCentralOfficer reports whether identity holds the central officer role.
func (s *Service) IsCentralOfficer(ctx context.Context, identity id.Identity) (bool, error) {
	return s.hasRole(ctx, identity, models.RoleCentralOfficer)
}

func (s *Service) hasRole(ctx context.Context, identity id.Identity, role models.Role) (bool, error) {
	if identity.IsZero() {
		return false, nil
	}
	existing, err := s.store.RoleOf(ctx, identity)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return false, nil
		}
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read officer role")
	}
	return existing == role, nil
}

// IsRegisteredCitizen reports whether identity has a citizen binding.
func (s *Service) IsRegisteredCitizen(ctx context.Context, identity id.Identity) (bool, error) {
	if identity.IsZero() {
		return false, nil
	}
	_, err := s.store.CitizenBinding(ctx, identity)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return false, nil
		}
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read citizen binding")
	}
	return true, nil
}

// RegionOf returns the region governed by identity, if any.
func (s *Service) RegionOf(ctx context.Context, identity id.Identity) (id.RegionID, bool, error) {
	if identity.IsZero() {
		return 0, false, nil
	}
	if binding, ok := s.regions.GetByOfficer(ctx, identity); ok {
		return binding.RegionID, true, nil
	}
	binding, err := s.store.RegionBindingByOfficer(ctx, identity)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return 0, false, nil
		}
		return 0, false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read region binding")
	}
	s.regions.Put(ctx, binding)
	return binding.RegionID, true, nil
}

// OfficerOf returns the governing officer of a region, if bound.
func (s *Service) OfficerOf(ctx context.Context, regionID id.RegionID) (id.Identity, bool, error) {
	if regionID.IsZero() {
		return "", false, nil
	}
	if binding, ok := s.regions.GetByRegion(ctx, regionID); ok {
		return binding.Officer, true, nil
	}
	binding, err := s.store.RegionBinding(ctx, regionID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return "", false, nil
		}
		return "", false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read region binding")
	}
	s.regions.Put(ctx, binding)
	return binding.Officer, true, nil
}

// RegionBinding returns the full binding record for a region.
func (s *Service) RegionBinding(ctx context.Context, regionID id.RegionID) (*models.RegionBinding, error) {
	binding, err := s.store.RegionBinding(ctx, regionID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "region is not bound")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read region binding")
	}
	return binding, nil
}
