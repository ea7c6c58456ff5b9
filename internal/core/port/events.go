package port

import (
	"context"
	"imgstudio/internal/core/domain"
)

// EventPublisher is an interface to define an event publisher (nats, kafka, ...)
type EventPublisher interface {
	Publish(ctx context.Context, eventType domain.EventType, payload any) error
}

// EventConsumer is an interface to define an event consumer (kafka, nats, ...)
type EventConsumer interface {
	Subscribe(ctx context.Context, handler MessageService) error
	Close() error
}

// MessageService is an interface to define message handling
type MessageService interface {
	HandleMessage(ctx context.Context, data []byte) error
}

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct{}

// Publish implements EventPublisher
func (NopPublisher) Publish(context.Context, domain.EventType, any) error { return nil }
