// Package events is the in-process domain event bus. Modules publish facts
// such as a placed order or a changed review, and other modules subscribe
// without importing the publisher.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event is implemented by every domain event.
type Event interface {
	EventName() string
	OccurredAt() time.Time
}

// BaseEvent stamps an event with an ID and the moment it was raised.
// Domain events embed it.
type BaseEvent struct {
	ID        uuid.UUID `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

func (e BaseEvent) OccurredAt() time.Time { return e.Timestamp }

// EventID identifies one occurrence in logs.
func (e BaseEvent) EventID() uuid.UUID { return e.ID }

// NewBaseEvent returns a BaseEvent with a fresh ID and the current UTC time.
func NewBaseEvent() BaseEvent {
	return BaseEvent{ID: uuid.New(), Timestamp: time.Now().UTC()}
}

type Handler interface {
	Handle(ctx context.Context, event Event) error
}

// HandlerFunc lets a plain function subscribe to the bus.
type HandlerFunc func(ctx context.Context, event Event) error

func (f HandlerFunc) Handle(ctx context.Context, event Event) error {
	return f(ctx, event)
}

// Bus routes events to subscribers by EventName.
type Bus interface {
	// Publish is fire-and-forget. Handler errors are logged.
	Publish(ctx context.Context, event Event)
	// PublishSync runs handlers on the caller's goroutine and returns their
	// joined errors, so the caller can fail its own operation.
	PublishSync(ctx context.Context, event Event) error
	Subscribe(eventName string, handler Handler)
}

// eventID returns the occurrence ID when the event embeds BaseEvent.
func eventID(event Event) string {
	if e, ok := event.(interface{ EventID() uuid.UUID }); ok && e.EventID() != uuid.Nil {
		return e.EventID().String()
	}
	return ""
}
