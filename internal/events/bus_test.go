package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBusDeliversToTopicSubscribers(t *testing.T) {
	bus := NewBus()

	var got []string
	bus.Subscribe(TopicJournalPosted, HandlerFunc(func(evt Event) {
		got = append(got, "topic:"+evt.EntityID)
	}))
	bus.SubscribeAll(HandlerFunc(func(evt Event) {
		got = append(got, "all:"+evt.EntityID)
	}))

	bus.Publish(Event{Topic: TopicJournalPosted, EntityID: "j-1"})
	bus.Publish(Event{Topic: TopicBudgetAlert, EntityID: "b-1"})

	assert.Equal(t, []string{"topic:j-1", "all:j-1", "all:b-1"}, got)
}

func TestBusSetsOccurredAt(t *testing.T) {
	bus := NewBus()

	var received Event
	bus.Subscribe(TopicInvoiceCreated, HandlerFunc(func(evt Event) {
		received = evt
	}))

	bus.Publish(Event{Topic: TopicInvoiceCreated, EntityID: "inv-1"})
	assert.False(t, received.OccurredAt.IsZero())
}

func TestBusNoSubscribersIsNoop(t *testing.T) {
	bus := NewBus()
	assert.NotPanics(t, func() {
		bus.Publish(Event{Topic: TopicExpenseApproved, EntityID: "e-1"})
	})
}
