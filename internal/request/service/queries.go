package service

import (
	"context"

	"civreg/internal/request/models"
	id "civreg/pkg/domain"
	dErrors "civreg/pkg/domain-errors"
)

// ListByApplicant returns the caller's own requests in submission order.
func (s *Service) ListByApplicant(ctx context.Context, caller id.Identity) ([]*models.Request, error) {
	if caller.IsZero() {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "missing caller identity")
	}
	ids, err := s.store.ListByApplicant(ctx, caller)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list requests")
	}
	return s.resolve(ctx, ids)
}

// ListByOriginRegion returns every request originating in the caller's
// region. The caller must be a bound regional officer.
func (s *Service) ListByOriginRegion(ctx context.Context, caller id.Identity) ([]*models.Request, error) {
	region, err := s.requireGovernedRegion(ctx, caller)
	if err != nil {
		return nil, err
	}
	ids, err := s.store.ListByOriginRegion(ctx, region)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list requests")
	}
	return s.resolve(ctx, ids)
}

// ListByDestinationRegion returns every Move request targeting the caller's
// region.
func (s *Service) ListByDestinationRegion(ctx context.Context, caller id.Identity) ([]*models.Request, error) {
	region, err := s.requireGovernedRegion(ctx, caller)
	if err != nil {
		return nil, err
	}
	ids, err := s.store.ListByDestinationRegion(ctx, region)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list requests")
	}
	return s.resolve(ctx, ids)
}

// ListPendingForRegion filters the caller's origin-region requests by an
// exact status.
func (s *Service) ListPendingForRegion(ctx context.Context, caller id.Identity, status models.Status) ([]*models.Request, error) {
	if !status.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "unknown status")
	}
	region, err := s.requireGovernedRegion(ctx, caller)
	if err != nil {
		return nil, err
	}
	ids, err := s.store.ListByOriginRegionAndStatus(ctx, region, status)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list requests")
	}
	return s.resolve(ctx, ids)
}

// ListForCentralOfficer returns all requests in a given status for central
// review.
func (s *Service) ListForCentralOfficer(ctx context.Context, caller id.Identity, status models.Status) ([]*models.Request, error) {
	if !status.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "unknown status")
	}
	central, err := s.roles.IsCentralOfficer(ctx, caller)
	if err != nil {
		return nil, err
	}
	if !central {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "caller is not a central officer")
	}
	ids, err := s.store.ListByStatus(ctx, status)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list requests")
	}
	return s.resolve(ctx, ids)
}

// Get returns the full record to the parties involved in it: the applicant,
// the origin and destination region officers, and any central officer.
func (s *Service) Get(ctx context.Context, caller id.Identity, requestID id.RequestID) (*models.Request, error) {
	request, err := s.load(ctx, requestID)
	if err != nil {
		return nil, err
	}
	allowed, err := s.mayRead(ctx, caller, request)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "caller is not involved in this request")
	}
	return request, nil
}

func (s *Service) mayRead(ctx context.Context, caller id.Identity, request *models.Request) (bool, error) {
	if caller.IsZero() {
		return false, nil
	}
	if caller == request.Applicant {
		return true, nil
	}
	if officer, bound, err := s.roles.OfficerOf(ctx, request.OriginRegionID); err != nil {
		return false, err
	} else if bound && officer == caller {
		return true, nil
	}
	if request.IsMove() {
		if officer, bound, err := s.roles.OfficerOf(ctx, request.DestinationRegionID); err != nil {
			return false, err
		} else if bound && officer == caller {
			return true, nil
		}
	}
	return s.roles.IsCentralOfficer(ctx, caller)
}

// StatusLabel returns the human-readable status of a request.
func (s *Service) StatusLabel(ctx context.Context, requestID id.RequestID) (string, error) {
	request, err := s.load(ctx, requestID)
	if err != nil {
		return "", err
	}
	return request.Status.Label(), nil
}

// KindLabel returns the human-readable kind of a request.
func (s *Service) KindLabel(ctx context.Context, requestID id.RequestID) (string, error) {
	request, err := s.load(ctx, requestID)
	if err != nil {
		return "", err
	}
	return request.Kind.Label(), nil
}

// Total returns how many requests have ever been submitted. Because ids are
// dense this is also the next id to be allocated.
func (s *Service) Total(ctx context.Context) (uint64, error) {
	count, err := s.store.Count(ctx)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to count requests")
	}
	return count, nil
}

func (s *Service) requireGovernedRegion(ctx context.Context, caller id.Identity) (id.RegionID, error) {
	region, bound, err := s.roles.RegionOf(ctx, caller)
	if err != nil {
		return 0, err
	}
	if !bound {
		return 0, dErrors.New(dErrors.CodeUnauthorized, "caller does not govern a region")
	}
	return region, nil
}

func (s *Service) resolve(ctx context.Context, ids []id.RequestID) ([]*models.Request, error) {
	requests := make([]*models.Request, 0, len(ids))
	for _, requestID := range ids {
		request, err := s.load(ctx, requestID)
		if err != nil {
			return nil, err
		}
		requests = append(requests, request)
	}
	return requests, nil
}
