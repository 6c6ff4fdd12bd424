package events

import (
	"context"
	"errors"
	"testing"
)

func TestDispatcher_PublishContinuesAfterError(t *testing.T) {
	d := NewInMemoryDispatcher(nil)
	var calls []string
	d.Subscribe(EventSessionExpired, func(context.Context, Event) error {
		calls = append(calls, "first")
		return errors.New("boom")
	})
	d.Subscribe(EventSessionExpired, func(_ context.Context, e Event) error {
		calls = append(calls, "second:"+e.Reason)
		return nil
	})
	d.Subscribe(EventSignedIn, func(context.Context, Event) error {
		calls = append(calls, "unrelated")
		return nil
	})

	d.Publish(context.Background(), New(EventSessionExpired, nil, "refresh failed"))

	if len(calls) != 2 || calls[0] != "first" || calls[1] != "second:refresh failed" {
		t.Fatalf("unexpected calls: %v", calls)
	}
}
