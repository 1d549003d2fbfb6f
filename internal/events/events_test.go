package events

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventBusPublishSubscribe(t *testing.T) {
	bus := NewEventBus()

	var received []*Event
	bus.Subscribe(EventBookingCreated, func(event *Event) error {
		received = append(received, event)
		return nil
	})

	bus.Publish(&Event{Type: EventBookingCreated, Payload: []byte(`{}`)})
	bus.Publish(&Event{Type: EventBookingApproved, Payload: []byte(`{}`)})

	require.Len(t, received, 1)
	assert.Equal(t, EventBookingCreated, received[0].Type)
	assert.False(t, received[0].CreatedAt.IsZero())
}

func TestEventBusMultipleSubscribers(t *testing.T) {
	bus := NewEventBus()

	calls := 0
	handler := func(*Event) error {
		calls++
		return nil
	}
	bus.Subscribe(EventBookingRejected, handler)
	bus.Subscribe(EventBookingRejected, handler)

	bus.Publish(&Event{Type: EventBookingRejected})
	assert.Equal(t, 2, calls)
}

func TestEventBusHandlerErrorDoesNotStopOthers(t *testing.T) {
	bus := NewEventBus()

	var reached bool
	bus.Subscribe(EventBookingCreated, func(*Event) error {
		return errors.New("handler failed")
	})
	bus.Subscribe(EventBookingCreated, func(*Event) error {
		reached = true
		return nil
	})

	bus.Publish(&Event{Type: EventBookingCreated})
	assert.True(t, reached)
}

func TestPublishJSON(t *testing.T) {
	bus := NewEventBus()

	var got BookingEventPayload
	bus.Subscribe(EventBookingApproved, func(event *Event) error {
		return json.Unmarshal(event.Payload, &got)
	})

	payload := BookingEventPayload{BookingID: 7, ItemID: 3, BookerID: 5, Status: "approved", DecidedBy: 2}
	require.NoError(t, bus.PublishJSON(EventBookingApproved, payload))

	assert.Equal(t, int64(7), got.BookingID)
	assert.Equal(t, "approved", got.Status)
	assert.Equal(t, int64(2), got.DecidedBy)
}

func TestPublishJSONNilBus(t *testing.T) {
	var bus *EventBus
	assert.NoError(t, bus.PublishJSON(EventBookingCreated, nil))
}
