package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcherPublishesToSubscribers(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	var seen []Event
	dispatcher.Subscribe(EventTenantCreated, func(_ context.Context, event Event) error {
		seen = append(seen, event)
		return nil
	})
	dispatcher.Subscribe(EventTenantDeleted, func(_ context.Context, event Event) error {
		t.Fatal("wrong event type delivered")
		return nil
	})

	err := dispatcher.Publish(context.Background(), Event{Type: EventTenantCreated, ID: "e1"})
	require.NoError(t, err)
	require.Len(t, seen, 1)
	assert.Equal(t, "e1", seen[0].ID)
}

func TestDispatcherHandlerErrorsDoNotAbort(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	called := 0
	dispatcher.Subscribe(EventUserRegistered, func(context.Context, Event) error {
		called++
		return errors.New("boom")
	})
	dispatcher.Subscribe(EventUserRegistered, func(context.Context, Event) error {
		called++
		return nil
	})

	err := dispatcher.Publish(context.Background(), Event{Type: EventUserRegistered})
	require.NoError(t, err)
	assert.Equal(t, 2, called)
}
