package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"civreg/internal/audit"
	"civreg/internal/platform/metrics"
	"civreg/internal/platform/tracer"
	"civreg/internal/request/models"
	"civreg/internal/request/store"
	"civreg/internal/sentinel"
	id "civreg/pkg/domain"
	dErrors "civreg/pkg/domain-errors"
)

// CancellationReason is the fixed text recorded when an applicant cancels.
const CancellationReason = "cancelled by applicant"

// Roles is the registry view the lifecycle engine needs to authorize
// callers. Implemented by the registry service.
type Roles interface {
	IsRegisteredCitizen(ctx context.Context, identity id.Identity) (bool, error)
	IsCentralOfficer(ctx context.Context, identity id.Identity) (bool, error)
	RegionOf(ctx context.Context, identity id.Identity) (id.RegionID, bool, error)
	OfficerOf(ctx context.Context, regionID id.RegionID) (id.Identity, bool, error)
}

// Service is the request lifecycle engine. Every mutation validates its
// single allowed predecessor status and its single authorized actor class
// before touching the store; a failed guard leaves the record untouched.
type Service struct {
	store   store.Store
	roles   Roles
	auditor *audit.Publisher
	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  tracer.Tracer
}

type Option func(*Service)

// WithMetrics sets the metrics instance for the service.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithTracer sets the tracer used to span lifecycle mutations.
func WithTracer(t tracer.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

func NewService(st store.Store, roles Roles, auditor *audit.Publisher, logger *slog.Logger, opts ...Option) *Service {
	svc := &Service{
		store:   st,
		roles:   roles,
		auditor: auditor,
		logger:  logger,
		tracer:  tracer.Noop(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// Submit creates a new request in StatusSubmitted and allocates the next
// dense id. Only registered citizens may submit; Move requests additionally
// need a bound destination region.
func (s *Service) Submit(ctx context.Context, caller id.Identity, kind models.Kind, documentRef string, originRegionID, destinationRegionID id.RegionID, moveSubtype models.MoveSubtype) (request *models.Request, err error) {
	ctx, span := s.tracer.Start(ctx, "request.Submit", tracer.String("kind", string(kind)))
	defer func() { span.End(err) }()

	if caller.IsZero() {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "missing caller identity")
	}
	registered, err := s.roles.IsRegisteredCitizen(ctx, caller)
	if err != nil {
		return nil, err
	}
	if !registered {
		return nil, dErrors.New(dErrors.CodeNotRegisteredCitizen, "caller is not a registered citizen")
	}

	if !kind.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "unknown request kind")
	}
	if !moveSubtype.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "unknown move subtype")
	}
	if documentRef == "" {
		return nil, dErrors.New(dErrors.CodeEmptyDocumentReference, "document reference is required")
	}
	if originRegionID.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "origin region is required")
	}
	if _, bound, err := s.roles.OfficerOf(ctx, originRegionID); err != nil {
		return nil, err
	} else if !bound {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "origin region is not bound")
	}

	if kind == models.KindMove {
		if err := s.checkDestination(ctx, destinationRegionID); err != nil {
			return nil, err
		}
	}

	request = &models.Request{
		Applicant:           caller,
		Kind:                kind,
		MoveSubtype:         moveSubtype,
		DocumentRef:         documentRef,
		OriginRegionID:      originRegionID,
		DestinationRegionID: destinationRegionID,
		Status:              models.StatusSubmitted,
		SubmittedAt:         time.Now(),
	}
	if _, err := s.store.Insert(ctx, request); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to insert request")
	}

	if s.metrics != nil {
		s.metrics.RequestsSubmitted.WithLabelValues(string(kind)).Inc()
		s.metrics.PendingRequests.Inc()
	}
	s.emit(ctx, audit.Event{
		RequestID: request.ID,
		Actor:     caller,
		Action:    audit.ActionRequestSubmitted,
		Kind:      string(kind),
	})
	s.logger.InfoContext(ctx, "request submitted",
		"request_id", request.ID,
		"applicant", caller,
		"kind", kind,
	)
	return request, nil
}

// checkDestination distinguishes a missing destination id from an unknown
// one so applicants can correct the right field.
func (s *Service) checkDestination(ctx context.Context, destinationRegionID id.RegionID) error {
	if destinationRegionID.IsZero() {
		return dErrors.New(dErrors.CodeInvalidDestination, "destination region required")
	}
	if _, bound, err := s.roles.OfficerOf(ctx, destinationRegionID); err != nil {
		return err
	} else if !bound {
		return dErrors.New(dErrors.CodeInvalidDestination, "unknown destination region")
	}
	return nil
}

// VerifyOrigin is the first approval tier. Only the officer bound to the
// request's origin region may decide, and only from StatusSubmitted.
func (s *Service) VerifyOrigin(ctx context.Context, caller id.Identity, requestID id.RequestID, approved bool, reason string) (request *models.Request, err error) {
	ctx, span := s.tracer.Start(ctx, "request.VerifyOrigin", tracer.Int64("request_id", int64(requestID)))
	defer func() { span.End(err) }()

	request, err = s.load(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if err := s.requireRegionOfficer(ctx, caller, request.OriginRegionID); err != nil {
		return nil, err
	}
	if request.Status != models.StatusSubmitted {
		return nil, wrongStatus(models.StatusSubmitted, request.Status)
	}
	if request.IsMove() {
		// The destination may have been bound when the request was
		// submitted but the binding rules could change between releases;
		// re-checking here keeps an unroutable Move out of the pipeline.
		if err := s.checkDestination(ctx, request.DestinationRegionID); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	request.OriginVerifier = caller
	request.OriginVerifiedAt = &now
	if approved {
		request.Status = models.StatusOriginApproved
	} else {
		request.Status = models.StatusOriginRejected
		request.RejectionReason = reason
	}
	if err := s.persist(ctx, request, models.StatusSubmitted); err != nil {
		return nil, err
	}

	s.afterTransition(ctx, request, caller, "origin", audit.ActionOriginVerified, approved, reason)
	return request, nil
}

// VerifyDestination is the second tier for Move requests only.
func (s *Service) VerifyDestination(ctx context.Context, caller id.Identity, requestID id.RequestID, approved bool, reason string) (request *models.Request, err error) {
	ctx, span := s.tracer.Start(ctx, "request.VerifyDestination", tracer.Int64("request_id", int64(requestID)))
	defer func() { span.End(err) }()

	request, err = s.load(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if !request.IsMove() {
		return nil, dErrors.New(dErrors.CodeWrongStatus, "destination verification applies to move requests only")
	}
	if err := s.requireRegionOfficer(ctx, caller, request.DestinationRegionID); err != nil {
		return nil, err
	}
	if request.Status != models.StatusOriginApproved {
		return nil, wrongStatus(models.StatusOriginApproved, request.Status)
	}

	now := time.Now()
	request.DestinationVerifier = caller
	request.DestinationVerifiedAt = &now
	if approved {
		request.Status = models.StatusDestinationApproved
	} else {
		request.Status = models.StatusDestinationRejected
		request.RejectionReason = reason
	}
	if err := s.persist(ctx, request, models.StatusOriginApproved); err != nil {
		return nil, err
	}

	s.afterTransition(ctx, request, caller, "destination", audit.ActionDestinationVerified, approved, reason)
	return request, nil
}

// VerifyCentral is the final tier. The expected predecessor depends on the
// kind: Move requests arrive via destination approval, all others via
// origin approval.
func (s *Service) VerifyCentral(ctx context.Context, caller id.Identity, requestID id.RequestID, approved bool, reason string) (request *models.Request, err error) {
	ctx, span := s.tracer.Start(ctx, "request.VerifyCentral", tracer.Int64("request_id", int64(requestID)))
	defer func() { span.End(err) }()

	request, err = s.load(ctx, requestID)
	if err != nil {
		return nil, err
	}
	central, err := s.roles.IsCentralOfficer(ctx, caller)
	if err != nil {
		return nil, err
	}
	if !central {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "caller is not a central officer")
	}
	predecessor := request.CentralPredecessor()
	if request.Status != predecessor {
		return nil, wrongStatus(predecessor, request.Status)
	}

	now := time.Now()
	request.CentralVerifier = caller
	request.CentralVerifiedAt = &now
	if approved {
		request.Status = models.StatusCentralApproved
	} else {
		request.Status = models.StatusCentralRejected
		request.RejectionReason = reason
	}
	if err := s.persist(ctx, request, predecessor); err != nil {
		return nil, err
	}

	s.afterTransition(ctx, request, caller, "central", audit.ActionCentralVerified, approved, reason)
	return request, nil
}

// Cancel lets the applicant withdraw a request that no officer has acted on
// yet. The reason is fixed system text, not caller input.
func (s *Service) Cancel(ctx context.Context, caller id.Identity, requestID id.RequestID) (request *models.Request, err error) {
	ctx, span := s.tracer.Start(ctx, "request.Cancel", tracer.Int64("request_id", int64(requestID)))
	defer func() { span.End(err) }()

	request, err = s.load(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if caller != request.Applicant {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "only the applicant may cancel")
	}
	if request.Status != models.StatusSubmitted {
		return nil, wrongStatus(models.StatusSubmitted, request.Status)
	}

	request.Status = models.StatusCitizenCancelled
	request.RejectionReason = CancellationReason
	if err := s.persist(ctx, request, models.StatusSubmitted); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.PendingRequests.Dec()
	}
	s.emit(ctx, audit.Event{
		RequestID: request.ID,
		Actor:     caller,
		Action:    audit.ActionRequestCancelled,
		Reason:    CancellationReason,
	})
	s.logger.InfoContext(ctx, "request cancelled",
		"request_id", request.ID,
		"applicant", caller,
	)
	return request, nil
}

// AttachOfficialDocument records the issued document reference on a
// centrally approved request. Re-attaching overwrites the previous value.
func (s *Service) AttachOfficialDocument(ctx context.Context, caller id.Identity, requestID id.RequestID, documentRef string) (err error) {
	ctx, span := s.tracer.Start(ctx, "request.AttachOfficialDocument", tracer.Int64("request_id", int64(requestID)))
	defer func() { span.End(err) }()

	central, err := s.roles.IsCentralOfficer(ctx, caller)
	if err != nil {
		return err
	}
	if !central {
		return dErrors.New(dErrors.CodeUnauthorized, "caller is not a central officer")
	}
	if documentRef == "" {
		return dErrors.New(dErrors.CodeEmptyDocumentReference, "document reference is required")
	}

	request, err := s.load(ctx, requestID)
	if err != nil {
		return err
	}
	if request.Status != models.StatusCentralApproved {
		return wrongStatus(models.StatusCentralApproved, request.Status)
	}

	request.OfficialDocumentRef = documentRef
	if err := s.persist(ctx, request, models.StatusCentralApproved); err != nil {
		return err
	}

	if s.metrics != nil {
		s.metrics.DocumentsIssued.Inc()
	}
	s.emit(ctx, audit.Event{
		RequestID: request.ID,
		Actor:     caller,
		Action:    audit.ActionDocumentAttached,
	})
	s.logger.InfoContext(ctx, "official document attached",
		"request_id", request.ID,
		"officer", caller,
	)
	return nil
}

// FetchOfficialDocument returns the issued document reference to the
// applicant.
func (s *Service) FetchOfficialDocument(ctx context.Context, caller id.Identity, requestID id.RequestID) (string, error) {
	request, err := s.load(ctx, requestID)
	if err != nil {
		return "", err
	}
	if caller != request.Applicant {
		return "", dErrors.New(dErrors.CodeUnauthorized, "only the applicant may fetch the document")
	}
	if request.OfficialDocumentRef == "" {
		return "", dErrors.New(dErrors.CodeDocumentNotIssued, "official document has not been issued")
	}
	return request.OfficialDocumentRef, nil
}

func (s *Service) requireRegionOfficer(ctx context.Context, caller id.Identity, regionID id.RegionID) error {
	officer, bound, err := s.roles.OfficerOf(ctx, regionID)
	if err != nil {
		return err
	}
	if !bound || officer != caller {
		return dErrors.New(dErrors.CodeUnauthorized, "caller is not the officer of the request's region")
	}
	return nil
}

func wrongStatus(expected, actual models.Status) error {
	return dErrors.New(dErrors.CodeWrongStatus,
		"request is "+string(actual)+", expected "+string(expected))
}

func (s *Service) load(ctx context.Context, requestID id.RequestID) (*models.Request, error) {
	request, err := s.store.Get(ctx, requestID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "request not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load request")
	}
	return request, nil
}

func (s *Service) persist(ctx context.Context, request *models.Request, oldStatus models.Status) error {
	if err := s.store.UpdateStatus(ctx, request, oldStatus); err != nil {
		if errors.Is(err, sentinel.ErrInvalidState) {
			return dErrors.New(dErrors.CodeWrongStatus, "request status changed concurrently")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to persist request")
	}
	return nil
}

func (s *Service) afterTransition(ctx context.Context, request *models.Request, actor id.Identity, stage string, action audit.Action, approved bool, reason string) {
	if s.metrics != nil {
		s.metrics.IncrementTransition(stage, approved)
		if request.Status.Terminal() {
			s.metrics.PendingRequests.Dec()
		}
	}
	decision := approved
	s.emit(ctx, audit.Event{
		RequestID: request.ID,
		Actor:     actor,
		Action:    action,
		Kind:      string(request.Kind),
		Approved:  &decision,
		Reason:    reason,
	})
	s.logger.InfoContext(ctx, "request transitioned",
		"request_id", request.ID,
		"stage", stage,
		"approved", approved,
		"status", request.Status,
	)
}

func (s *Service) emit(ctx context.Context, event audit.Event) {
	if s.auditor == nil {
		return
	}
	if err := s.auditor.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "audit emission failed",
			"request_id", event.RequestID,
			"action", event.Action,
			"error", err,
		)
	}
}
