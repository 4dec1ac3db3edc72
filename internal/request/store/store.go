package store

import (
	"context"

	"civreg/internal/request/models"
	id "civreg/pkg/domain"
)

// Store defines the persistence interface for request records and their
// derived indexes. Indexes move atomically with the record: a request sits
// in exactly one status bucket at any time, and list results preserve
// insertion order.
//
// Error Contract:
// - Get returns sentinel.ErrNotFound for an unallocated id
// - UpdateStatus returns sentinel.ErrInvalidState when the stored status no
//   longer matches oldStatus
// - List methods return empty slices, never an error, for unknown keys
type Store interface {
	// Insert allocates the next dense id, assigns it to the record, and
	// registers the record in every index.
	Insert(ctx context.Context, request *models.Request) (id.RequestID, error)
	Get(ctx context.Context, requestID id.RequestID) (*models.Request, error)
	// UpdateStatus persists the mutated record and moves it from the
	// oldStatus bucket to its current one.
	UpdateStatus(ctx context.Context, request *models.Request, oldStatus models.Status) error

	ListByApplicant(ctx context.Context, applicant id.Identity) ([]id.RequestID, error)
	ListByOriginRegion(ctx context.Context, regionID id.RegionID) ([]id.RequestID, error)
	ListByDestinationRegion(ctx context.Context, regionID id.RegionID) ([]id.RequestID, error)
	ListByStatus(ctx context.Context, status models.Status) ([]id.RequestID, error)
	ListByOriginRegionAndStatus(ctx context.Context, regionID id.RegionID, status models.Status) ([]id.RequestID, error)

	Count(ctx context.Context) (uint64, error)
}
