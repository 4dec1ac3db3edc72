package audit

import (
	"context"

	id "civreg/pkg/domain"
)

// Store persists audit events. Append must be cheap; the publisher sits on
// the hot path of every lifecycle transition.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByRequest(ctx context.Context, requestID id.RequestID) ([]Event, error)
}
