package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"mediaccess/internal/store"

	"github.com/sirupsen/logrus"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// DefaultEventBuffer is how many store events may wait for delivery
	DefaultEventBuffer = 256

	// Timeout for a single sink delivery
	sinkTimeout = 5 * time.Second
)

// =============================================================================
// Types
// =============================================================================

// EventSink consumes store events off the mutation path
type EventSink interface {
	Name() string
	Handle(ctx context.Context, ev store.Event) error
}

// EventDispatcher fans store events out to slow sinks (database, redis).
//
// Observe never blocks the store: events are queued and a single worker
// delivers them in commit order. When the queue is full the event is dropped
// and counted.
type EventDispatcher struct {
	sinks []EventSink
	log   *logrus.Logger

	queue   chan store.Event
	dropped atomic.Int64

	// Graceful shutdown
	stopChan chan struct{}
	wg       sync.WaitGroup
	stopped  atomic.Bool
}

// =============================================================================
// Constructor
// =============================================================================

// NewEventDispatcher starts the delivery worker. Call Stop() during graceful shutdown.
func NewEventDispatcher(log *logrus.Logger, buffer int, sinks ...EventSink) *EventDispatcher {
	if buffer <= 0 {
		buffer = DefaultEventBuffer
	}
	d := &EventDispatcher{
		sinks:    sinks,
		log:      log,
		queue:    make(chan store.Event, buffer),
		stopChan: make(chan struct{}),
	}

	d.wg.Add(1)
	go d.run()

	return d
}

// =============================================================================
// Lifecycle Methods
// =============================================================================

// Stop delivers what is already queued and shuts the worker down.
// Safe to call multiple times.
func (d *EventDispatcher) Stop() {
	if d.stopped.CompareAndSwap(false, true) {
		close(d.stopChan)
		d.wg.Wait()
		d.log.Info("EventDispatcher stopped")
	}
}

// =============================================================================
// Public Methods
// =============================================================================

// Observe implements store.Observer
func (d *EventDispatcher) Observe(ev store.Event) {
	if len(d.sinks) == 0 || d.stopped.Load() {
		return
	}
	select {
	case d.queue <- ev:
	default:
		n := d.dropped.Add(1)
		d.log.Warnf("Event queue full, dropped %s event from %s (total dropped: %d)", ev.Kind, ev.Operation, n)
	}
}

// Dropped reports how many events were discarded because the queue was full
func (d *EventDispatcher) Dropped() int64 {
	return d.dropped.Load()
}

// =============================================================================
// Private Methods
// =============================================================================

func (d *EventDispatcher) run() {
	defer d.wg.Done()

	for {
		select {
		case ev := <-d.queue:
			d.deliver(ev)
		case <-d.stopChan:
			for {
				select {
				case ev := <-d.queue:
					d.deliver(ev)
				default:
					return
				}
			}
		}
	}
}

func (d *EventDispatcher) deliver(ev store.Event) {
	for _, sink := range d.sinks {
		ctx, cancel := context.WithTimeout(context.Background(), sinkTimeout)
		if err := sink.Handle(ctx, ev); err != nil {
			d.log.Warnf("Failed to deliver %s event to %s: %+v", ev.Kind, sink.Name(), err)
		}
		cancel()
	}
}
