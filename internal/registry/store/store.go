package store

import (
	"context"

	"civreg/internal/registry/models"
	id "civreg/pkg/domain"
)

// Store defines the persistence interface for role and binding state.
// Error Contract:
// - Lookup methods return sentinel.ErrNotFound when no record exists
// - Save methods return sentinel.ErrConflict when a uniqueness rule is violated
// - Other failures are returned wrapped for the service to translate
type Store interface {
	SaveOfficerRole(ctx context.Context, identity id.Identity, role models.Role) error
	RoleOf(ctx context.Context, identity id.Identity) (models.Role, error)

	SaveRegionBinding(ctx context.Context, binding *models.RegionBinding) error
	RegionBinding(ctx context.Context, regionID id.RegionID) (*models.RegionBinding, error)
	RegionBindingByOfficer(ctx context.Context, officer id.Identity) (*models.RegionBinding, error)

	SaveCitizenBinding(ctx context.Context, binding *models.CitizenBinding) error
	CitizenBinding(ctx context.Context, identity id.Identity) (*models.CitizenBinding, error)
	CitizenBindingByHash(ctx context.Context, hash id.NationalIDHash) (*models.CitizenBinding, error)
}
