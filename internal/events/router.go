package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"sync/atomic"
)

type envelope struct {
	event Event
	rooms []string
}

// Router fans domain events out to rooms without touching the request path:
// Dispatch enqueues and returns, a single dispatcher goroutine drains the
// bounded queue. When the queue is full the oldest envelope is dropped and
// counted; a slow or absent transport costs events, never request latency.
//
// Router is always injected into its consumers, never reached through a
// package-level handle, so tests can substitute a capture or no-op publisher.
type Router struct {
	pub    RoomPublisher
	logger *slog.Logger

	queue   chan envelope
	stop    chan struct{}
	done    chan struct{}
	closed  atomic.Bool
	dropped atomic.Uint64

	startOnce sync.Once
	stopOnce  sync.Once
}

func NewRouter(pub RoomPublisher, queueSize int, logger *slog.Logger) *Router {
	if queueSize <= 0 {
		queueSize = 256
	}
	return &Router{
		pub:    pub,
		logger: logger,
		queue:  make(chan envelope, queueSize),
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
}

// Start launches the dispatcher goroutine. Safe to call once; the fx
// lifecycle owns the pairing with Stop.
func (r *Router) Start() {
	r.startOnce.Do(func() {
		go r.run()
	})
}

// Dispatch hands an event to the dispatcher. It never blocks: on a full
// queue the oldest queued envelope is discarded to make room.
func (r *Router) Dispatch(ev Event, roomIDs []string) {
	if r.closed.Load() {
		return
	}
	rooms := Rooms(roomIDs...)
	if len(rooms) == 0 {
		return
	}

	env := envelope{event: ev, rooms: rooms}
	select {
	case r.queue <- env:
		return
	default:
	}

	// Queue full: evict the oldest, then retry once. A concurrent consumer
	// may have drained in between, in which case nothing is lost.
	select {
	case <-r.queue:
		total := r.dropped.Add(1)
		r.logger.Warn("event queue full, dropped oldest event",
			"event", ev.Name, "dropped_total", total)
	default:
	}
	select {
	case r.queue <- env:
	default:
		total := r.dropped.Add(1)
		r.logger.Warn("event queue full, dropped event",
			"event", ev.Name, "dropped_total", total)
	}
}

// Stop signals the dispatcher and waits for it to finish draining, or for
// ctx to expire. The queue channel itself is never closed: a Dispatch racing
// this shutdown must not panic, so late sends land in the buffer and are
// simply never read.
func (r *Router) Stop(ctx context.Context) error {
	r.stopOnce.Do(func() {
		r.closed.Store(true)
		close(r.stop)
	})
	select {
	case <-r.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Dropped is the count of events discarded on overflow.
func (r *Router) Dropped() uint64 {
	return r.dropped.Load()
}

func (r *Router) run() {
	defer close(r.done)
	for {
		select {
		case env := <-r.queue:
			r.deliver(env)
		case <-r.stop:
			// Flush whatever was queued before the stop signal, then exit.
			for {
				select {
				case env := <-r.queue:
					r.deliver(env)
				default:
					return
				}
			}
		}
	}
}

func (r *Router) deliver(env envelope) {
	payload, err := json.Marshal(env.event.Payload)
	if err != nil {
		r.logger.Error("failed to marshal event payload",
			"event", env.event.Name, "error", err)
		return
	}
	for _, room := range env.rooms {
		if err := r.pub.PublishToRoom(context.Background(), room, env.event.Name, payload); err != nil {
			// Best-effort contract: log and move on.
			r.logger.Warn("failed to publish event to room",
				"event", env.event.Name, "room", room, "error", err)
		}
	}
}
