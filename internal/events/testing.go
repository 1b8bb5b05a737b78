package events

import (
	"context"
	"sync"
)

type PublishedEvent struct {
	Topic string
	Key   string
	Event interface{}
}

// RecordingPublisher captures published events for tests.
type RecordingPublisher struct {
	mu     sync.Mutex
	events []PublishedEvent
}

func (r *RecordingPublisher) PublishEvent(_ context.Context, topic, key string, event interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, PublishedEvent{Topic: topic, Key: key, Event: event})
	return nil
}

func (r *RecordingPublisher) Events() []PublishedEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]PublishedEvent, len(r.events))
	copy(out, r.events)
	return out
}
