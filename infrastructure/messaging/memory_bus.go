package messaging

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"proofgraph/application/ports"
	"proofgraph/domain/events"
)

// MemoryEventBus implements ports.EventBus with in-process dispatch.
// Used for local runs and tests; handlers run synchronously on Publish.
type MemoryEventBus struct {
	mu       sync.RWMutex
	handlers map[string][]ports.EventHandler
	logger   *zap.Logger
}

// NewMemoryEventBus creates a new in-memory event bus
func NewMemoryEventBus(logger *zap.Logger) *MemoryEventBus {
	return &MemoryEventBus{
		handlers: make(map[string][]ports.EventHandler),
		logger:   logger,
	}
}

var _ ports.EventBus = (*MemoryEventBus)(nil)

// Publish dispatches a single event to its subscribers
func (b *MemoryEventBus) Publish(ctx context.Context, event events.DomainEvent) error {
	b.mu.RLock()
	subscribers := make([]ports.EventHandler, len(b.handlers[event.GetEventType()]))
	copy(subscribers, b.handlers[event.GetEventType()])
	b.mu.RUnlock()

	for _, handler := range subscribers {
		if !handler.CanHandle(event.GetEventType()) {
			continue
		}
		if err := handler.Handle(ctx, event); err != nil {
			// A failing subscriber does not stop delivery to the rest.
			b.logger.Warn("Event handler failed",
				zap.String("eventType", event.GetEventType()),
				zap.String("aggregateID", event.GetAggregateID()),
				zap.Error(err))
		}
	}
	return nil
}

// PublishBatch dispatches multiple events in order
func (b *MemoryEventBus) PublishBatch(ctx context.Context, domainEvents []events.DomainEvent) error {
	for _, event := range domainEvents {
		if err := b.Publish(ctx, event); err != nil {
			return err
		}
	}
	return nil
}

// Subscribe registers a handler for an event type
func (b *MemoryEventBus) Subscribe(eventType string, handler ports.EventHandler) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], handler)
	return nil
}

// Unsubscribe removes a handler
func (b *MemoryEventBus) Unsubscribe(eventType string, handler ports.EventHandler) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	subscribers := b.handlers[eventType]
	for i, h := range subscribers {
		if h == handler {
			b.handlers[eventType] = append(subscribers[:i], subscribers[i+1:]...)
			break
		}
	}
	return nil
}
