package audit

import (
	"time"

	"github.com/google/uuid"

	id "civreg/pkg/domain"
)

// Action identifies what happened to a request.
type Action string

const (
	ActionRequestSubmitted    Action = "request_submitted"
	ActionOriginVerified      Action = "origin_verified"
	ActionDestinationVerified Action = "destination_verified"
	ActionCentralVerified     Action = "central_verified"
	ActionRequestCancelled    Action = "request_cancelled"
	ActionDocumentAttached    Action = "document_attached"
)

// Event is one append-only entry in the request audit trail. Verification
// events carry the decision; submission and attachment events leave Approved
// nil.
type Event struct {
	ID        uuid.UUID    `json:"id"`
	RequestID id.RequestID `json:"request_id"`
	Actor     id.Identity  `json:"actor"`
	Action    Action       `json:"action"`
	Kind      string       `json:"kind,omitempty"`
	Approved  *bool        `json:"approved,omitempty"`
	Reason    string       `json:"reason,omitempty"`
	Timestamp time.Time    `json:"timestamp"`
}
