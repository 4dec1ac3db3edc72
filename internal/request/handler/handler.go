package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"civreg/internal/platform/metrics"
	"civreg/internal/platform/middleware"
	"civreg/internal/request/models"
	respond "civreg/internal/transport/http/json"
	"civreg/internal/transport/http/shared"
	id "civreg/pkg/domain"
	dErrors "civreg/pkg/domain-errors"
	"civreg/pkg/validation"
)

// Service defines the lifecycle and query operations the handler exposes.
type Service interface {
	Submit(ctx context.Context, caller id.Identity, kind models.Kind, documentRef string, originRegionID, destinationRegionID id.RegionID, moveSubtype models.MoveSubtype) (*models.Request, error)
	VerifyOrigin(ctx context.Context, caller id.Identity, requestID id.RequestID, approved bool, reason string) (*models.Request, error)
	VerifyDestination(ctx context.Context, caller id.Identity, requestID id.RequestID, approved bool, reason string) (*models.Request, error)
	VerifyCentral(ctx context.Context, caller id.Identity, requestID id.RequestID, approved bool, reason string) (*models.Request, error)
	Cancel(ctx context.Context, caller id.Identity, requestID id.RequestID) (*models.Request, error)
	AttachOfficialDocument(ctx context.Context, caller id.Identity, requestID id.RequestID, documentRef string) error
	FetchOfficialDocument(ctx context.Context, caller id.Identity, requestID id.RequestID) (string, error)

	Get(ctx context.Context, caller id.Identity, requestID id.RequestID) (*models.Request, error)
	ListByApplicant(ctx context.Context, caller id.Identity) ([]*models.Request, error)
	ListByOriginRegion(ctx context.Context, caller id.Identity) ([]*models.Request, error)
	ListByDestinationRegion(ctx context.Context, caller id.Identity) ([]*models.Request, error)
	ListPendingForRegion(ctx context.Context, caller id.Identity, status models.Status) ([]*models.Request, error)
	ListForCentralOfficer(ctx context.Context, caller id.Identity, status models.Status) ([]*models.Request, error)
	Total(ctx context.Context) (uint64, error)
}

// Handler handles request lifecycle endpoints.
type Handler struct {
	logger   *slog.Logger
	requests Service
	metrics  *metrics.Metrics
}

func New(requests Service, logger *slog.Logger, metrics *metrics.Metrics) *Handler {
	return &Handler{
		logger:   logger,
		requests: requests,
		metrics:  metrics,
	}
}

// Register registers the request routes with the chi router. Fixed paths
// come before the {requestID} wildcard so chi does not shadow them.
func (h *Handler) Register(r chi.Router) {
	r.Post("/requests", h.handleSubmit)
	r.Get("/requests/mine", h.handleListMine)
	r.Get("/requests/region/origin", h.handleListOriginRegion)
	r.Get("/requests/region/destination", h.handleListDestinationRegion)
	r.Get("/requests/central", h.handleListCentral)
	r.Get("/requests/stats", h.handleStats)
	r.Get("/requests/{requestID}", h.handleGet)
	r.Post("/requests/{requestID}/verify/origin", h.verifyHandler("origin", func(svc Service) verifyFunc { return svc.VerifyOrigin }))
	r.Post("/requests/{requestID}/verify/destination", h.verifyHandler("destination", func(svc Service) verifyFunc { return svc.VerifyDestination }))
	r.Post("/requests/{requestID}/verify/central", h.verifyHandler("central", func(svc Service) verifyFunc { return svc.VerifyCentral }))
	r.Post("/requests/{requestID}/cancel", h.handleCancel)
	r.Post("/requests/{requestID}/document", h.handleAttachDocument)
	r.Get("/requests/{requestID}/document", h.handleFetchDocument)
}

type verifyFunc func(ctx context.Context, caller id.Identity, requestID id.RequestID, approved bool, reason string) (*models.Request, error)

func (h *Handler) observe(endpoint string, start time.Time) {
	if h.metrics != nil {
		h.metrics.EndpointLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	}
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	defer h.observe("submit_request", time.Now())

	caller := middleware.GetIdentity(ctx)

	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode submit request",
			"request_id", middleware.GetRequestID(ctx),
			"error", err,
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if err := validation.Validate(&req); err != nil {
		shared.WriteError(w, err)
		return
	}

	request, err := h.requests.Submit(ctx, caller,
		models.Kind(req.Kind),
		req.DocumentRef,
		id.RegionID(req.OriginRegionID),
		id.RegionID(req.DestinationRegionID),
		models.MoveSubtype(req.MoveSubtype),
	)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to submit request",
			"request_id", middleware.GetRequestID(ctx),
			"kind", req.Kind,
			"error", err,
		)
		shared.WriteError(w, err)
		return
	}

	respond.WriteJSON(w, http.StatusCreated, toResponse(request))
}

func (h *Handler) verifyHandler(stage string, pick func(Service) verifyFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		defer h.observe("verify_"+stage, time.Now())

		caller := middleware.GetIdentity(ctx)
		requestID, err := id.ParseRequestID(chi.URLParam(r, "requestID"))
		if err != nil {
			shared.WriteError(w, err)
			return
		}

		var req VerifyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
			return
		}
		if err := validation.Validate(&req); err != nil {
			shared.WriteError(w, err)
			return
		}

		request, err := pick(h.requests)(ctx, caller, requestID, *req.Approved, req.Reason)
		if err != nil {
			h.logger.WarnContext(ctx, "verification failed",
				"request_id", middleware.GetRequestID(ctx),
				"lifecycle_request_id", requestID,
				"stage", stage,
				"error", err,
			)
			shared.WriteError(w, err)
			return
		}

		respond.WriteJSON(w, http.StatusOK, toResponse(request))
	}
}

func (h *Handler) handleCancel(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	defer h.observe("cancel_request", time.Now())

	caller := middleware.GetIdentity(ctx)
	requestID, err := id.ParseRequestID(chi.URLParam(r, "requestID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	request, err := h.requests.Cancel(ctx, caller, requestID)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	respond.WriteJSON(w, http.StatusOK, toResponse(request))
}

func (h *Handler) handleAttachDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	defer h.observe("attach_document", time.Now())

	caller := middleware.GetIdentity(ctx)
	requestID, err := id.ParseRequestID(chi.URLParam(r, "requestID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	var req AttachDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if err := validation.Validate(&req); err != nil {
		shared.WriteError(w, err)
		return
	}

	if err := h.requests.AttachOfficialDocument(ctx, caller, requestID, req.DocumentRef); err != nil {
		h.logger.ErrorContext(ctx, "failed to attach document",
			"request_id", middleware.GetRequestID(ctx),
			"lifecycle_request_id", requestID,
			"error", err,
		)
		shared.WriteError(w, err)
		return
	}

	respond.WriteJSON(w, http.StatusOK, &DocumentResponse{
		RequestID:   uint64(requestID),
		DocumentRef: req.DocumentRef,
	})
}

func (h *Handler) handleFetchDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	defer h.observe("fetch_document", time.Now())

	caller := middleware.GetIdentity(ctx)
	requestID, err := id.ParseRequestID(chi.URLParam(r, "requestID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	documentRef, err := h.requests.FetchOfficialDocument(ctx, caller, requestID)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	respond.WriteJSON(w, http.StatusOK, &DocumentResponse{
		RequestID:   uint64(requestID),
		DocumentRef: documentRef,
	})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	defer h.observe("get_request", time.Now())

	caller := middleware.GetIdentity(ctx)
	requestID, err := id.ParseRequestID(chi.URLParam(r, "requestID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	request, err := h.requests.Get(ctx, caller, requestID)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	respond.WriteJSON(w, http.StatusOK, toResponse(request))
}

func (h *Handler) handleListMine(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	defer h.observe("list_mine", time.Now())

	requests, err := h.requests.ListByApplicant(ctx, middleware.GetIdentity(ctx))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, toListResponse(requests))
}

func (h *Handler) handleListOriginRegion(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	defer h.observe("list_origin_region", time.Now())

	caller := middleware.GetIdentity(ctx)

	if raw := r.URL.Query().Get("status"); raw != "" {
		requests, err := h.requests.ListPendingForRegion(ctx, caller, models.Status(raw))
		if err != nil {
			shared.WriteError(w, err)
			return
		}
		respond.WriteJSON(w, http.StatusOK, toListResponse(requests))
		return
	}

	requests, err := h.requests.ListByOriginRegion(ctx, caller)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, toListResponse(requests))
}

func (h *Handler) handleListDestinationRegion(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	defer h.observe("list_destination_region", time.Now())

	requests, err := h.requests.ListByDestinationRegion(ctx, middleware.GetIdentity(ctx))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, toListResponse(requests))
}

func (h *Handler) handleListCentral(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	defer h.observe("list_central", time.Now())

	status := r.URL.Query().Get("status")
	if status == "" {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "status query parameter is required"))
		return
	}

	requests, err := h.requests.ListForCentralOfficer(ctx, middleware.GetIdentity(ctx), models.Status(status))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, toListResponse(requests))
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	defer h.observe("stats", time.Now())

	total, err := h.requests.Total(ctx)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, &StatsResponse{TotalRequests: total})
}
