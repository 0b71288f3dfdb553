// Package events provides a lightweight in-process publish/subscribe
// mechanism for application lifecycle events.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event type identifiers.
const (
	// EventParavetSubmitted fires when a paravet submits an onboarding
	// application for review.
	EventParavetSubmitted = "paravet.application.submitted"

	// EventParavetReviewed fires when an admin approves or rejects an
	// application.
	EventParavetReviewed = "paravet.application.reviewed"

	// EventOTPRequested fires when a one-time password has been generated
	// and needs delivery.
	EventOTPRequested = "otp.requested"
)

// ApplicationEvent is a domain occurrence published to interested
// handlers. The payload is carried as JSON so handlers stay decoupled
// from the emitting service's types.
type ApplicationEvent struct {
	ID        uuid.UUID       `json:"id"`
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
}

// UnmarshalPayload decodes the event payload into v.
func (e *ApplicationEvent) UnmarshalPayload(v interface{}) error {
	return json.Unmarshal(e.Payload, v)
}

// NewApplicationEvent creates an event of the given type with the payload
// serialized to JSON.
func NewApplicationEvent(eventType string, payload interface{}) (*ApplicationEvent, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &ApplicationEvent{
		ID:        uuid.New(),
		Type:      eventType,
		Payload:   payloadBytes,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// EventHandler processes published events.
type EventHandler interface {
	// HandleEvent processes the given event. Returning an error does not
	// stop delivery to other handlers.
	HandleEvent(ctx context.Context, event *ApplicationEvent) error
}

// EventEmitter publishes events without knowledge of the handlers.
type EventEmitter interface {
	EmitEvent(ctx context.Context, event *ApplicationEvent) error
}
