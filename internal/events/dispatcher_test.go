package events

import (
	"context"
	"errors"
	"testing"
)

func TestDispatcherInvokesSubscribers(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	var placed, packed int
	dispatcher.Subscribe(EventOrderPlaced, func(ctx context.Context, e Event) error {
		placed++
		return nil
	})
	dispatcher.Subscribe(EventOrderPacked, func(ctx context.Context, e Event) error {
		packed++
		return nil
	})

	if err := dispatcher.Publish(context.Background(), Event{Type: EventOrderPlaced}); err != nil {
		t.Fatalf("publish failed: %v", err)
	}
	if placed != 1 || packed != 0 {
		t.Errorf("expected only placed handler to run, got placed=%d packed=%d", placed, packed)
	}
}

func TestDispatcherContinuesAfterHandlerError(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	var second bool
	dispatcher.Subscribe(EventOrderPlaced, func(ctx context.Context, e Event) error {
		return errors.New("boom")
	})
	dispatcher.Subscribe(EventOrderPlaced, func(ctx context.Context, e Event) error {
		second = true
		return nil
	})

	if err := dispatcher.Publish(context.Background(), Event{Type: EventOrderPlaced}); err != nil {
		t.Fatalf("publish failed: %v", err)
	}
	if !second {
		t.Error("expected second handler to run after first errored")
	}
}
