package audit

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	mu     sync.Mutex
	events []Event
	err    error
}

func (s *recordingSink) Publish(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.events = append(s.events, event)
	return nil
}

func (s *recordingSink) all() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Event, len(s.events))
	copy(out, s.events)
	return out
}

func TestEmitSync(t *testing.T) {
	store := NewInMemoryStore()
	publisher := NewPublisher(store)

	err := publisher.Emit(context.Background(), Event{
		RequestID: 7,
		Actor:     "alice",
		Action:    ActionRequestSubmitted,
	})
	require.NoError(t, err)

	events, err := publisher.List(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, ActionRequestSubmitted, events[0].Action)
	assert.NotEqual(t, uuid.Nil, events[0].ID)
	assert.False(t, events[0].Timestamp.IsZero())
}

func TestEmitAsyncDrainsOnClose(t *testing.T) {
	store := NewInMemoryStore()
	publisher := NewPublisher(store, WithAsyncBuffer(16))

	for i := 0; i < 5; i++ {
		require.NoError(t, publisher.Emit(context.Background(), Event{
			RequestID: 1,
			Actor:     "alice",
			Action:    ActionOriginVerified,
		}))
	}
	publisher.Close()

	events, err := publisher.List(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, events, 5)
}

func TestEmitForwardsToSink(t *testing.T) {
	store := NewInMemoryStore()
	sink := &recordingSink{}
	publisher := NewPublisher(store, WithSink(sink))

	require.NoError(t, publisher.Emit(context.Background(), Event{
		RequestID: 3,
		Actor:     "alice",
		Action:    ActionDocumentAttached,
	}))

	forwarded := sink.all()
	require.Len(t, forwarded, 1)
	assert.Equal(t, ActionDocumentAttached, forwarded[0].Action)
}

func TestSinkFailureDoesNotFailEmit(t *testing.T) {
	store := NewInMemoryStore()
	sink := &recordingSink{err: errors.New("broker down")}
	publisher := NewPublisher(store, WithSink(sink))

	require.NoError(t, publisher.Emit(context.Background(), Event{
		RequestID: 3,
		Actor:     "alice",
		Action:    ActionCentralVerified,
	}))

	// The store still has the event even though the sink rejected it.
	events, err := publisher.List(context.Background(), 3)
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestEmitPreservesProvidedFields(t *testing.T) {
	store := NewInMemoryStore()
	publisher := NewPublisher(store)

	eventID := uuid.New()
	stamp := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, publisher.Emit(context.Background(), Event{
		ID:        eventID,
		RequestID: 9,
		Actor:     "alice",
		Action:    ActionRequestCancelled,
		Timestamp: stamp,
	}))

	events, err := publisher.List(context.Background(), 9)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, eventID, events[0].ID)
	assert.Equal(t, stamp, events[0].Timestamp)
}

func TestListFiltersByRequest(t *testing.T) {
	store := NewInMemoryStore()
	publisher := NewPublisher(store)

	require.NoError(t, publisher.Emit(context.Background(), Event{RequestID: 1, Action: ActionRequestSubmitted}))
	require.NoError(t, publisher.Emit(context.Background(), Event{RequestID: 2, Action: ActionRequestSubmitted}))
	require.NoError(t, publisher.Emit(context.Background(), Event{RequestID: 1, Action: ActionOriginVerified}))

	events, err := publisher.List(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, ActionRequestSubmitted, events[0].Action)
	assert.Equal(t, ActionOriginVerified, events[1].Action)
}
