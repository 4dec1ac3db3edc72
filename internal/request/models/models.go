package models

import (
	"time"

	id "civreg/pkg/domain"
)

// Kind identifies which civil-registration document a request asks for.
// Move requests follow the bilateral origin+destination path; every other
// kind goes straight from origin approval to central review.
type Kind string

const (
	KindBirthCertificate    Kind = "birth_certificate"
	KindMarriageCertificate Kind = "marriage_certificate"
	KindDeathCertificate    Kind = "death_certificate"
	KindDivorceCertificate  Kind = "divorce_certificate"
	KindMove                Kind = "move"
)

// IsValid reports whether the kind is a known request kind.
func (k Kind) IsValid() bool {
	switch k {
	case KindBirthCertificate, KindMarriageCertificate, KindDeathCertificate,
		KindDivorceCertificate, KindMove:
		return true
	}
	return false
}

// Label returns the human-readable name of the kind.
func (k Kind) Label() string {
	switch k {
	case KindBirthCertificate:
		return "Birth Certificate"
	case KindMarriageCertificate:
		return "Marriage Certificate"
	case KindDeathCertificate:
		return "Death Certificate"
	case KindDivorceCertificate:
		return "Divorce Certificate"
	case KindMove:
		return "Residence Move"
	}
	return "Unknown"
}

// MoveSubtype refines a Move request. It is recorded for reporting and has
// no effect on routing.
type MoveSubtype string

const (
	MoveSubtypeNone          MoveSubtype = ""
	MoveSubtypePermanent     MoveSubtype = "permanent"
	MoveSubtypeTemporary     MoveSubtype = "temporary"
	MoveSubtypeInternational MoveSubtype = "international"
)

func (m MoveSubtype) IsValid() bool {
	switch m {
	case MoveSubtypeNone, MoveSubtypePermanent, MoveSubtypeTemporary, MoveSubtypeInternational:
		return true
	}
	return false
}

// Status is the lifecycle state of a request. A request holds exactly one
// status at a time and only ever moves forward along the transition table.
type Status string

const (
	StatusSubmitted           Status = "submitted"
	StatusOriginApproved      Status = "origin_approved"
	StatusOriginRejected      Status = "origin_rejected"
	StatusDestinationApproved Status = "destination_approved"
	StatusDestinationRejected Status = "destination_rejected"
	StatusCentralApproved     Status = "central_approved"
	StatusCentralRejected     Status = "central_rejected"
	StatusCitizenCancelled    Status = "citizen_cancelled"
)

// IsValid reports whether the status is a known lifecycle state.
func (s Status) IsValid() bool {
	switch s {
	case StatusSubmitted, StatusOriginApproved, StatusOriginRejected,
		StatusDestinationApproved, StatusDestinationRejected,
		StatusCentralApproved, StatusCentralRejected, StatusCitizenCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transition may leave this status.
// CentralApproved is terminal for the lifecycle but still accepts the
// document attachment step.
func (s Status) Terminal() bool {
	switch s {
	case StatusOriginRejected, StatusDestinationRejected,
		StatusCentralApproved, StatusCentralRejected, StatusCitizenCancelled:
		return true
	}
	return false
}

// Label returns the human-readable name of the status.
func (s Status) Label() string {
	switch s {
	case StatusSubmitted:
		return "Submitted"
	case StatusOriginApproved:
		return "Approved by Origin Region"
	case StatusOriginRejected:
		return "Rejected by Origin Region"
	case StatusDestinationApproved:
		return "Approved by Destination Region"
	case StatusDestinationRejected:
		return "Rejected by Destination Region"
	case StatusCentralApproved:
		return "Approved by Central Office"
	case StatusCentralRejected:
		return "Rejected by Central Office"
	case StatusCitizenCancelled:
		return "Cancelled by Applicant"
	}
	return "Unknown"
}

// Request is a single civil-registration request record.
//
// # Identity Invariant
//
// IDs are allocated densely starting at 0 and are never reused; a record is
// never deleted, so the store's Count equals the next id to allocate.
// DestinationRegionID is meaningful only when Kind is KindMove; for other
// kinds it is stored but ignored by routing.
type Request struct {
	ID                  id.RequestID `json:"id"`
	Applicant           id.Identity  `json:"applicant"`
	Kind                Kind         `json:"kind"`
	MoveSubtype         MoveSubtype  `json:"move_subtype,omitempty"`
	DocumentRef         string       `json:"document_ref"`
	OriginRegionID      id.RegionID  `json:"origin_region_id"`
	DestinationRegionID id.RegionID  `json:"destination_region_id,omitempty"`

	Status          Status `json:"status"`
	RejectionReason string `json:"rejection_reason,omitempty"`

	OriginVerifier        id.Identity `json:"origin_verifier,omitempty"`
	OriginVerifiedAt      *time.Time  `json:"origin_verified_at,omitempty"`
	DestinationVerifier   id.Identity `json:"destination_verifier,omitempty"`
	DestinationVerifiedAt *time.Time  `json:"destination_verified_at,omitempty"`
	CentralVerifier       id.Identity `json:"central_verifier,omitempty"`
	CentralVerifiedAt     *time.Time  `json:"central_verified_at,omitempty"`

	OfficialDocumentRef string    `json:"official_document_ref,omitempty"`
	SubmittedAt         time.Time `json:"submitted_at"`
}

// IsMove reports whether the request follows the bilateral Move path.
func (r *Request) IsMove() bool {
	return r.Kind == KindMove
}

// CentralPredecessor returns the status a request must hold before central
// verification: Move requests need destination approval first, everything
// else goes to the central office straight after origin approval.
func (r *Request) CentralPredecessor() Status {
	if r.IsMove() {
		return StatusDestinationApproved
	}
	return StatusOriginApproved
}
