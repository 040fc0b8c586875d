package eventbus

import (
	"context"
	"errors"
	"reflect"
	"sync"
)

// Handler consumes a published event.
type Handler func(ctx context.Context, event any) error

// ErrNilEvent is returned when a nil event is published.
var ErrNilEvent = errors.New("eventbus: nil event")

// Bus is an in-process publish/subscribe dispatcher keyed by event type
// name. Delivery is synchronous in subscription order.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
}

// New constructs an empty bus.
func New() *Bus {
	return &Bus{handlers: make(map[string][]Handler)}
}

// Publish delivers the event to every handler subscribed to its type.
// Handler errors are joined, not short-circuited.
func (b *Bus) Publish(ctx context.Context, event any) error {
	if event == nil {
		return ErrNilEvent
	}
	name := TypeName(event)

	b.mu.RLock()
	handlers := append([]Handler(nil), b.handlers[name]...)
	b.mu.RUnlock()

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Subscribe registers a handler for the named event type.
func (b *Bus) Subscribe(name string, handler Handler) {
	if name == "" || handler == nil {
		return
	}
	b.mu.Lock()
	b.handlers[name] = append(b.handlers[name], handler)
	b.mu.Unlock()
}

// TypeName returns the qualified type name used as subscription key.
func TypeName(event any) string {
	if event == nil {
		return ""
	}
	t := reflect.TypeOf(event)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.String()
}

// TypeNameOf returns the subscription key for a type parameter.
func TypeNameOf[T any]() string {
	return reflect.TypeOf((*T)(nil)).Elem().String()
}
