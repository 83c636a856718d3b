package events

import (
	"context"
	"sync"
)

// Handler processes a published event.
type Handler func(context.Context, Event) error

// Dispatcher publishes events to subscribed handlers.
type Dispatcher interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType EventType, handler Handler)
}

// inMemoryDispatcher invokes handlers synchronously on the publisher's
// goroutine. A failing handler never aborts dispatch to the rest.
type inMemoryDispatcher struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

// NewInMemoryDispatcher creates a dispatcher instance.
func NewInMemoryDispatcher() Dispatcher {
	return &inMemoryDispatcher{
		handlers: make(map[EventType][]Handler),
	}
}

func (d *inMemoryDispatcher) Publish(ctx context.Context, event Event) error {
	d.mu.RLock()
	subscribed := append([]Handler{}, d.handlers[event.Type]...)
	d.mu.RUnlock()

	for _, handler := range subscribed {
		_ = handler(ctx, event)
	}
	return nil
}

func (d *inMemoryDispatcher) Subscribe(eventType EventType, handler Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[eventType] = append(d.handlers[eventType], handler)
}
