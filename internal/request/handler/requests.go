package handler

import (
	"time"

	"civreg/internal/request/models"
)

// SubmitRequest creates a new lifecycle request. DestinationRegionID and
// MoveSubtype only matter for move requests; the engine ignores them on
// other kinds.
type SubmitRequest struct {
	Kind                string `json:"kind" validate:"required,notblank"`
	DocumentRef         string `json:"document_ref" validate:"required,notblank,max=512"`
	OriginRegionID      uint64 `json:"origin_region_id" validate:"required,gt=0"`
	DestinationRegionID uint64 `json:"destination_region_id,omitempty"`
	MoveSubtype         string `json:"move_subtype,omitempty" validate:"omitempty,max=64"`
}

// VerifyRequest carries an officer's decision. Approved is a pointer so a
// missing field is distinguishable from an explicit false.
type VerifyRequest struct {
	Approved *bool  `json:"approved" validate:"required"`
	Reason   string `json:"reason,omitempty" validate:"omitempty,max=1024"`
}

// AttachDocumentRequest records the issued document reference.
type AttachDocumentRequest struct {
	DocumentRef string `json:"document_ref" validate:"required,notblank,max=512"`
}

// RequestResponse is the full request record as exposed over HTTP.
type RequestResponse struct {
	ID                  uint64 `json:"id"`
	Applicant           string `json:"applicant"`
	Kind                string `json:"kind"`
	KindLabel           string `json:"kind_label"`
	MoveSubtype         string `json:"move_subtype,omitempty"`
	DocumentRef         string `json:"document_ref"`
	OriginRegionID      uint64 `json:"origin_region_id"`
	DestinationRegionID uint64 `json:"destination_region_id,omitempty"`

	Status          string `json:"status"`
	StatusLabel     string `json:"status_label"`
	RejectionReason string `json:"rejection_reason,omitempty"`

	OriginVerifier        string     `json:"origin_verifier,omitempty"`
	OriginVerifiedAt      *time.Time `json:"origin_verified_at,omitempty"`
	DestinationVerifier   string     `json:"destination_verifier,omitempty"`
	DestinationVerifiedAt *time.Time `json:"destination_verified_at,omitempty"`
	CentralVerifier       string     `json:"central_verifier,omitempty"`
	CentralVerifiedAt     *time.Time `json:"central_verified_at,omitempty"`

	OfficialDocumentRef string    `json:"official_document_ref,omitempty"`
	SubmittedAt         time.Time `json:"submitted_at"`
}

// ListResponse wraps a set of request records.
type ListResponse struct {
	Requests []*RequestResponse `json:"requests"`
	Count    int                `json:"count"`
}

type DocumentResponse struct {
	RequestID   uint64 `json:"request_id"`
	DocumentRef string `json:"document_ref"`
}

type StatsResponse struct {
	TotalRequests uint64 `json:"total_requests"`
}

func toResponse(request *models.Request) *RequestResponse {
	return &RequestResponse{
		ID:                    uint64(request.ID),
		Applicant:             request.Applicant.String(),
		Kind:                  string(request.Kind),
		KindLabel:             request.Kind.Label(),
		MoveSubtype:           string(request.MoveSubtype),
		DocumentRef:           request.DocumentRef,
		OriginRegionID:        uint64(request.OriginRegionID),
		DestinationRegionID:   uint64(request.DestinationRegionID),
		Status:                string(request.Status),
		StatusLabel:           request.Status.Label(),
		RejectionReason:       request.RejectionReason,
		OriginVerifier:        request.OriginVerifier.String(),
		OriginVerifiedAt:      request.OriginVerifiedAt,
		DestinationVerifier:   request.DestinationVerifier.String(),
		DestinationVerifiedAt: request.DestinationVerifiedAt,
		CentralVerifier:       request.CentralVerifier.String(),
		CentralVerifiedAt:     request.CentralVerifiedAt,
		OfficialDocumentRef:   request.OfficialDocumentRef,
		SubmittedAt:           request.SubmittedAt,
	}
}

func toListResponse(requests []*models.Request) *ListResponse {
	out := make([]*RequestResponse, 0, len(requests))
	for _, request := range requests {
		out = append(out, toResponse(request))
	}
	return &ListResponse{Requests: out, Count: len(out)}
}
