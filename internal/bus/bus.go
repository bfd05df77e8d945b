// Package bus carries message events from the Slack listener to the
// dispatcher over an in-process buffered channel.
package bus

import "github.com/threadlingo/threadlingo/internal/schema"

// Bus is the contract between the platform channel and the dispatcher.
type Bus interface {
	// PublishEvent delivers a decoded message event to the dispatcher.
	PublishEvent(ev schema.MessageEvent)
	// EventChan returns a receive-only channel for the dispatcher to consume.
	EventChan() <-chan schema.MessageEvent
}

// MessageBus is the default Bus implementation backed by a buffered Go
// channel, so the socket listener never blocks on a slow dispatcher tick.
type MessageBus struct {
	events chan schema.MessageEvent
}

func NewMessageBus(bufSize int) Bus {
	return &MessageBus{events: make(chan schema.MessageEvent, bufSize)}
}

func (b *MessageBus) PublishEvent(ev schema.MessageEvent) {
	b.events <- ev
}

func (b *MessageBus) EventChan() <-chan schema.MessageEvent {
	return b.events
}
