// Package telemetry distributes profiling trace events from the
// executor to whichever consumers are listening: the terminal
// inspector, the graphical viewer, or a plain log sink.
package telemetry

import (
	"log"
	"sync"
	"time"
)

// Kind is the closed set of trace event shapes. The executor emits
// TraceBlockStart, TraceBlockDone and TraceFinish; nothing in this module
// publishes TraceMerge.
type Kind string

const (
	TraceBlockStart Kind = "block_start"
	TraceBlockDone  Kind = "block_done"
	TraceMerge      Kind = "merge"
	TraceFinish     Kind = "finish"
)

// TraceEvent describes one step of a block-parallel operator run.
type TraceEvent struct {
	Kind      Kind
	Message   string
	Tasks     int
	BlockSize int64
	Elapsed   time.Duration
	Timestamp time.Time
}

// Broadcaster fans TraceEvents out to subscriber channels: a
// register/unregister/broadcast pattern repurposed here for in-process
// consumers instead of WebSocket clients.
type Broadcaster struct {
	mu          sync.RWMutex
	subscribers map[chan TraceEvent]bool
	broadcast   chan TraceEvent
	register    chan chan TraceEvent
	unregister  chan chan TraceEvent
	done        chan struct{}
}

// NewBroadcaster creates and starts a broadcaster's dispatch goroutine.
func NewBroadcaster() *Broadcaster {
	b := &Broadcaster{
		subscribers: make(map[chan TraceEvent]bool),
		broadcast:   make(chan TraceEvent, 256),
		register:    make(chan chan TraceEvent),
		unregister:  make(chan chan TraceEvent),
		done:        make(chan struct{}),
	}
	go b.run()
	return b
}

func (b *Broadcaster) run() {
	for {
		select {
		case sub := <-b.register:
			b.mu.Lock()
			b.subscribers[sub] = true
			b.mu.Unlock()

		case sub := <-b.unregister:
			b.mu.Lock()
			if b.subscribers[sub] {
				delete(b.subscribers, sub)
				close(sub)
			}
			b.mu.Unlock()

		case event := <-b.broadcast:
			b.mu.RLock()
			for sub := range b.subscribers {
				select {
				case sub <- event:
				default:
					// subscriber too slow, drop this event rather than block the executor
				}
			}
			b.mu.RUnlock()

		case <-b.done:
			b.mu.Lock()
			for sub := range b.subscribers {
				close(sub)
			}
			b.subscribers = make(map[chan TraceEvent]bool)
			b.mu.Unlock()
			return
		}
	}
}

// Subscribe returns a 64-slot buffered channel that receives subsequent
// broadcast events until Unsubscribe is called or the broadcaster closes;
// an event that finds the channel full is dropped for this subscriber.
func (b *Broadcaster) Subscribe() chan TraceEvent {
	sub := make(chan TraceEvent, 64)
	b.register <- sub
	return sub
}

// Unsubscribe removes sub and closes its channel.
func (b *Broadcaster) Unsubscribe(sub chan TraceEvent) {
	b.unregister <- sub
}

// Publish sends event to every current subscriber, dropping it instead
// of blocking the caller if the internal broadcast channel is full.
func (b *Broadcaster) Publish(event TraceEvent) {
	select {
	case b.broadcast <- event:
	default:
	}
}

// Close shuts down the dispatch goroutine and closes every subscription.
func (b *Broadcaster) Close() {
	close(b.done)
}

// SubscriberCount reports the number of active subscriptions.
func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}

// LogSink subscribes to b and writes every event as one line through
// logger (or log.Default() if nil) until stop is called. It's the
// plain, display-free consumer for callers that run neither the TUI
// nor the GUI but still want profiling traces on enable_profiling.
func LogSink(b *Broadcaster, logger *log.Logger) (stop func()) {
	if logger == nil {
		logger = log.Default()
	}
	sub := b.Subscribe()
	done := make(chan struct{})
	go func() {
		defer close(done)
		for ev := range sub {
			logger.Printf("%s tasks=%d block=%d elapsed=%s %s", ev.Kind, ev.Tasks, ev.BlockSize, ev.Elapsed, ev.Message)
		}
	}()
	return func() {
		b.Unsubscribe(sub)
		<-done
	}
}
