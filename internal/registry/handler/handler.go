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
	"civreg/internal/registry/models"
	respond "civreg/internal/transport/http/json"
	"civreg/internal/transport/http/shared"
	id "civreg/pkg/domain"
	dErrors "civreg/pkg/domain-errors"
	"civreg/pkg/validation"
)

// Service defines the registry operations the handler exposes.
type Service interface {
	RegisterCitizen(ctx context.Context, caller id.Identity, hash id.NationalIDHash) error
	GrantRegionalOfficer(ctx context.Context, caller, identity id.Identity) error
	GrantCentralOfficer(ctx context.Context, caller, identity id.Identity) error
	BindRegion(ctx context.Context, caller id.Identity, regionID id.RegionID, officer id.Identity, metadataRef string) error
	RegionBinding(ctx context.Context, regionID id.RegionID) (*models.RegionBinding, error)
}

// Handler handles registry endpoints.
type Handler struct {
	logger   *slog.Logger
	registry Service
	metrics  *metrics.Metrics
}

func New(registry Service, logger *slog.Logger, metrics *metrics.Metrics) *Handler {
	return &Handler{
		logger:   logger,
		registry: registry,
		metrics:  metrics,
	}
}

// Register registers the registry routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/registry/citizens", h.handleRegisterCitizen)
	r.Post("/registry/officers/regional", h.handleGrantRegionalOfficer)
	r.Post("/registry/officers/central", h.handleGrantCentralOfficer)
	r.Post("/registry/regions", h.handleBindRegion)
	r.Get("/registry/regions/{regionID}", h.handleGetRegionBinding)
}

func (h *Handler) observe(endpoint string, start time.Time) {
	if h.metrics != nil {
		h.metrics.EndpointLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	}
}

func (h *Handler) handleRegisterCitizen(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	defer h.observe("register_citizen", time.Now())

	caller := middleware.GetIdentity(ctx)

	var req RegisterCitizenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode register citizen request",
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

	if err := h.registry.RegisterCitizen(ctx, caller, id.NationalIDHash(req.NationalIDHash)); err != nil {
		h.logger.ErrorContext(ctx, "failed to register citizen",
			"request_id", middleware.GetRequestID(ctx),
			"error", err,
		)
		shared.WriteError(w, err)
		return
	}

	respond.WriteJSON(w, http.StatusCreated, &RegisterCitizenResponse{
		Identity: caller.String(),
		Message:  "citizen registered",
	})
}

func (h *Handler) handleGrantRegionalOfficer(w http.ResponseWriter, r *http.Request) {
	defer h.observe("grant_regional_officer", time.Now())
	h.handleGrant(w, r, models.RoleRegionalOfficer, h.registry.GrantRegionalOfficer)
}

func (h *Handler) handleGrantCentralOfficer(w http.ResponseWriter, r *http.Request) {
	defer h.observe("grant_central_officer", time.Now())
	h.handleGrant(w, r, models.RoleCentralOfficer, h.registry.GrantCentralOfficer)
}

func (h *Handler) handleGrant(w http.ResponseWriter, r *http.Request, role models.Role, grant func(context.Context, id.Identity, id.Identity) error) {
	ctx := r.Context()
	caller := middleware.GetIdentity(ctx)

	var req GrantOfficerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if err := validation.Validate(&req); err != nil {
		shared.WriteError(w, err)
		return
	}

	if err := grant(ctx, caller, id.Identity(req.Identity)); err != nil {
		h.logger.ErrorContext(ctx, "failed to grant officer role",
			"request_id", middleware.GetRequestID(ctx),
			"role", role,
			"error", err,
		)
		shared.WriteError(w, err)
		return
	}

	respond.WriteJSON(w, http.StatusOK, &GrantOfficerResponse{
		Identity: req.Identity,
		Role:     string(role),
	})
}

func (h *Handler) handleBindRegion(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	defer h.observe("bind_region", time.Now())

	caller := middleware.GetIdentity(ctx)

	var req BindRegionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if err := validation.Validate(&req); err != nil {
		shared.WriteError(w, err)
		return
	}

	if err := h.registry.BindRegion(ctx, caller, id.RegionID(req.RegionID), id.Identity(req.Officer), req.MetadataRef); err != nil {
		h.logger.ErrorContext(ctx, "failed to bind region",
			"request_id", middleware.GetRequestID(ctx),
			"region_id", req.RegionID,
			"error", err,
		)
		shared.WriteError(w, err)
		return
	}

	respond.WriteJSON(w, http.StatusCreated, &BindRegionResponse{
		RegionID: req.RegionID,
		Officer:  req.Officer,
	})
}

func (h *Handler) handleGetRegionBinding(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	defer h.observe("get_region_binding", time.Now())

	regionID, err := id.ParseRegionID(chi.URLParam(r, "regionID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	binding, err := h.registry.RegionBinding(ctx, regionID)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	respond.WriteJSON(w, http.StatusOK, &RegionBindingResponse{
		RegionID:    uint64(binding.RegionID),
		Officer:     binding.Officer.String(),
		MetadataRef: binding.MetadataRef,
		BoundAt:     binding.BoundAt,
	})
}
