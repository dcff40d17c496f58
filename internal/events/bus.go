// Package events provides the in-memory change notification bus the task
// store publishes to and the feed subscribes on.
package events

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

var ErrBusClosed = errors.New("event bus is closed")

// EventType represents the type of event.
type EventType string

const (
	// EventStoreSaved fires after a local mutation was committed.
	EventStoreSaved EventType = "store.saved"
	// EventStoreRemoteChange fires when the store learns about changes made
	// elsewhere (another process, an import).
	EventStoreRemoteChange EventType = "store.remote_change"
)

// EventSource identifies the component that emitted an event.
type EventSource string

const (
	SourceStore  EventSource = "store"
	SourceRemote EventSource = "remote"
)

// Event is a structured change notification. Consumers of store events treat
// every event as a full refresh signal; Subject only aids logging.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Source    EventSource `json:"source"`
	Subject   string      `json:"subject,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

var eventIDCounter uint64

// NewEvent creates an event stamped with the current time.
func NewEvent(t EventType, source EventSource, subject string) Event {
	seq := atomic.AddUint64(&eventIDCounter, 1)
	return Event{
		ID:        fmt.Sprintf("%d-%d", time.Now().UnixNano(), seq),
		Type:      t,
		Source:    source,
		Subject:   subject,
		Timestamp: time.Now(),
	}
}

// Subscriber receives events on the bus dispatch goroutine. It must not block.
type Subscriber func(Event)

type subscription struct {
	eventTypes []EventType
	handler    Subscriber
}

// Bus fans events out to subscribers from a single dispatch goroutine, so a
// subscriber sees events in publish order.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[int]*subscription
	nextID      int
	eventChan   chan Event
	closed      bool
	done        chan struct{}
	stopped     chan struct{}
	dropped     atomic.Uint64
}

// NewBus creates a bus with the given buffer size and starts dispatching.
func NewBus(bufferSize int) *Bus {
	if bufferSize < 1 {
		bufferSize = 1
	}
	b := &Bus{
		subscribers: make(map[int]*subscription),
		eventChan:   make(chan Event, bufferSize),
		done:        make(chan struct{}),
		stopped:     make(chan struct{}),
	}
	go b.dispatch()
	return b
}

func (b *Bus) dispatch() {
	defer close(b.stopped)
	for {
		select {
		case event := <-b.eventChan:
			b.notifySubscribers(event)
		case <-b.done:
			return
		}
	}
}

func (b *Bus) notifySubscribers(event Event) {
	b.mu.RLock()
	handlers := make([]Subscriber, 0, len(b.subscribers))
	for _, sub := range b.subscribers {
		if sub.matches(event) {
			handlers = append(handlers, sub.handler)
		}
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		h(event)
	}
}

func (s *subscription) matches(event Event) bool {
	if len(s.eventTypes) == 0 {
		return true
	}
	for _, t := range s.eventTypes {
		if t == event.Type {
			return true
		}
	}
	return false
}

// Publish queues an event without blocking. When the buffer is full the event
// is dropped and counted; publishing on a closed bus is a no-op.
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return
	}
	select {
	case b.eventChan <- event:
	default:
		b.dropped.Add(1)
	}
}

// PublishContext queues an event, waiting for buffer space until ctx ends.
func (b *Bus) PublishContext(ctx context.Context, event Event) error {
	b.mu.RLock()
	closed := b.closed
	b.mu.RUnlock()

	if closed {
		return ErrBusClosed
	}
	select {
	case b.eventChan <- event:
		return nil
	case <-b.done:
		return ErrBusClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Subscribe registers a handler for the given event types (all types when
// none are given). The returned function unsubscribes and is safe to call
// more than once.
func (b *Bus) Subscribe(handler Subscriber, eventTypes ...EventType) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.subscribers[id] = &subscription{eventTypes: eventTypes, handler: handler}

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.subscribers, id)
		})
	}
}

// Dropped reports how many events were discarded because the buffer was full.
func (b *Bus) Dropped() uint64 {
	return b.dropped.Load()
}

// Close stops dispatching. Events still buffered are discarded. Close is
// idempotent and waits for the dispatch goroutine to exit, so it must not be
// called from a Subscriber.
func (b *Bus) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		<-b.stopped
		return
	}
	b.closed = true
	close(b.done)
	b.mu.Unlock()
	<-b.stopped
}
