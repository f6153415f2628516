package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// HeaderEventType carries Event.Type so consumers can route without decoding.
const HeaderEventType = "event_type"

// Event is the envelope every order event travels in.
type Event struct {
	ID         string          `json:"event_id"`
	Type       string          `json:"type"`
	OccurredAt time.Time       `json:"occurred_at"`
	Payload    json.RawMessage `json:"payload"`
}

// NewEvent wraps payload in an envelope with a fresh id.
func NewEvent(eventType string, payload any) (Event, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Event{}, fmt.Errorf("encode %s payload: %w", eventType, err)
	}
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Payload:    raw,
	}, nil
}

// Decode unmarshals the payload into dest.
func (e Event) Decode(dest any) error {
	if err := json.Unmarshal(e.Payload, dest); err != nil {
		return fmt.Errorf("decode %s payload: %w", e.Type, err)
	}
	return nil
}

// DecodeEvent reads the envelope out of a consumed message.
func DecodeEvent(msg Message) (Event, error) {
	var ev Event
	if err := json.Unmarshal(msg.Value, &ev); err != nil {
		return Event{}, fmt.Errorf("decode event envelope: %w", err)
	}
	if ev.Type == "" {
		ev.Type = msg.Headers[HeaderEventType]
	}
	return ev, nil
}

// PublishEvent encodes ev and publishes it under key.
func PublishEvent(ctx context.Context, client Client, key string, ev Event) error {
	raw, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return client.Publish(ctx, Message{
		Topic:   client.Topic(),
		Key:     []byte(key),
		Value:   raw,
		Headers: map[string]string{HeaderEventType: ev.Type},
		Time:    ev.OccurredAt,
	})
}
