package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"civreg/internal/platform/kafka/producer"
)

// KafkaSink publishes audit events as JSON records keyed by request id, so
// all events for one request land in the same partition in order.
type KafkaSink struct {
	producer *producer.Producer
	topic    string
}

func NewKafkaSink(p *producer.Producer, topic string) *KafkaSink {
	return &KafkaSink{producer: p, topic: topic}
}

func (s *KafkaSink) Publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal audit event: %w", err)
	}
	return s.producer.Produce(ctx, &producer.Message{
		Topic: s.topic,
		Key:   []byte(event.RequestID.String()),
		Value: payload,
		Headers: map[string]string{
			"action": string(event.Action),
		},
	})
}

var _ Sink = (*KafkaSink)(nil)
