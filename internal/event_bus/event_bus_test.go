package event_bus

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventBus_PublishCallsHandlersInOrder(t *testing.T) {
	bus := NewEventBus()
	var calls []string
	bus.Subscribe("test", func(e Event) error {
		calls = append(calls, "first")
		return nil
	})
	bus.Subscribe("test", func(e Event) error {
		calls = append(calls, "second")
		return nil
	})

	err := bus.Publish(NewEvent(context.Background(), "test", nil))

	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, calls)
}

func TestEventBus_Unsubscribe(t *testing.T) {
	bus := NewEventBus()
	count := 0
	unsubscribe := bus.Subscribe("test", func(e Event) error {
		count++
		return nil
	})

	require.NoError(t, bus.Publish(NewEvent(context.Background(), "test", nil)))
	unsubscribe()
	require.NoError(t, bus.Publish(NewEvent(context.Background(), "test", nil)))

	assert.Equal(t, 1, count)
}

func TestEventBus_CollectsErrorsAndPanics(t *testing.T) {
	bus := NewEventBus()
	handlerErr := errors.New("boom")
	secondCalled := false
	bus.Subscribe("test", func(e Event) error { return handlerErr })
	bus.Subscribe("test", func(e Event) error { panic("oops") })
	bus.Subscribe("test", func(e Event) error {
		secondCalled = true
		return nil
	})

	err := bus.Publish(NewEvent(context.Background(), "test", nil))

	require.Error(t, err)
	assert.ErrorIs(t, err, handlerErr)
	assert.Contains(t, err.Error(), "2 handler(s) failed")
	assert.True(t, secondCalled)
}

func TestEventBus_CancelledContext(t *testing.T) {
	bus := NewEventBus()
	called := false
	bus.Subscribe("test", func(e Event) error {
		called = true
		return nil
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := bus.Publish(NewEvent(ctx, "test", nil))

	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestSubscribeTyped(t *testing.T) {
	bus := NewEventBus()
	var received []CategoryDeleted
	SubscribeTyped(bus, CategoryDeletedEvent, func(e EventT[CategoryDeleted]) error {
		received = append(received, e.Data)
		return nil
	})

	require.NoError(t, bus.Publish(NewEvent(context.Background(), CategoryDeletedEvent,
		CategoryDeleted{UserId: 1, Name: "pets", Fallback: "other"})))
	require.NoError(t, bus.Publish(NewEvent(context.Background(), CategoryDeletedEvent, "not a payload")))

	require.Len(t, received, 1)
	assert.Equal(t, "pets", received[0].Name)
}
