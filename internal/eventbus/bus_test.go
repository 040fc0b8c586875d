package eventbus

import (
	"context"
	"errors"
	"testing"
)

type orderPlaced struct {
	ID string
}

func TestPublishDispatchesByTypeName(t *testing.T) {
	bus := New()
	var got []orderPlaced
	bus.Subscribe(TypeNameOf[orderPlaced](), func(_ context.Context, event any) error {
		got = append(got, event.(orderPlaced))
		return nil
	})

	if err := bus.Publish(context.Background(), orderPlaced{ID: "o-1"}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if len(got) != 1 || got[0].ID != "o-1" {
		t.Fatalf("unexpected deliveries: %+v", got)
	}
}

func TestPublishWithoutSubscribersIsNoop(t *testing.T) {
	bus := New()
	if err := bus.Publish(context.Background(), orderPlaced{}); err != nil {
		t.Fatalf("publish: %v", err)
	}
}

func TestPublishNilEvent(t *testing.T) {
	bus := New()
	if err := bus.Publish(context.Background(), nil); !errors.Is(err, ErrNilEvent) {
		t.Fatalf("expected ErrNilEvent, got %v", err)
	}
}

func TestPublishJoinsHandlerErrors(t *testing.T) {
	bus := New()
	failure := errors.New("handler down")
	bus.Subscribe(TypeNameOf[orderPlaced](), func(context.Context, any) error { return failure })
	bus.Subscribe(TypeNameOf[orderPlaced](), func(context.Context, any) error { return nil })

	err := bus.Publish(context.Background(), orderPlaced{})
	if !errors.Is(err, failure) {
		t.Fatalf("expected joined handler error, got %v", err)
	}
}

func TestTypeNameStripsPointer(t *testing.T) {
	if name := TypeName(&orderPlaced{}); name != TypeName(orderPlaced{}) {
		t.Fatalf("pointer and value names differ: %q", name)
	}
}
