// Package events provides the synchronous publish/subscribe bus the
// accounting core emits state-change notifications on. The core never
// knows who listens; consumers register handlers per topic.
package events

import (
	"sync"
	"time"
)

// Topics published by the accounting core.
const (
	TopicJournalPosted    = "journal:posted"
	TopicJournalReversed  = "journal:reversed"
	TopicInvoiceCreated   = "invoice:created"
	TopicPaymentRecorded  = "payment:recorded"
	TopicExpenseApproved  = "expense:approved"
	TopicBudgetAlert      = "budget:alert"
	TopicCashFlowRecorded = "cashflow:recorded"
)

// Event is a state-change notification. Payload holds the affected
// domain object (or alert) as published by the emitting service.
type Event struct {
	Topic      string
	EntityID   string
	OccurredAt time.Time
	Payload    any
}

// Handler consumes events. Handlers run synchronously on the
// publisher's goroutine; a slow handler slows the publisher.
type Handler interface {
	Handle(evt Event)
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(evt Event)

// Handle implements Handler.
func (f HandlerFunc) Handle(evt Event) { f(evt) }

// Bus fan-outs events to registered handlers, per topic or for all topics.
type Bus struct {
	mu       sync.RWMutex
	byTopic  map[string][]Handler
	allTopic []Handler
}

// NewBus initialises an empty bus.
func NewBus() *Bus {
	return &Bus{byTopic: make(map[string][]Handler)}
}

// Subscribe registers a handler for one topic.
func (b *Bus) Subscribe(topic string, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.byTopic[topic] = append(b.byTopic[topic], h)
}

// SubscribeAll registers a handler for every topic.
func (b *Bus) SubscribeAll(h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.allTopic = append(b.allTopic, h)
}

// Publish delivers the event to topic subscribers then all-topic
// subscribers, in registration order.
func (b *Bus) Publish(evt Event) {
	if evt.OccurredAt.IsZero() {
		evt.OccurredAt = time.Now().UTC()
	}
	b.mu.RLock()
	topicHandlers := b.byTopic[evt.Topic]
	allHandlers := b.allTopic
	b.mu.RUnlock()

	for _, h := range topicHandlers {
		h.Handle(evt)
	}
	for _, h := range allHandlers {
		h.Handle(evt)
	}
}
