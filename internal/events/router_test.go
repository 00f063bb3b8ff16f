//go:build unit

package events_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"carmarket-engine/internal/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedPublish struct {
	Room    string
	Event   string
	Payload string
}

type capturePublisher struct {
	mu       sync.Mutex
	got      []capturedPublish
	failWith error
}

func (p *capturePublisher) PublishToRoom(_ context.Context, roomID, eventName string, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.failWith != nil {
		return p.failWith
	}
	p.got = append(p.got, capturedPublish{Room: roomID, Event: eventName, Payload: string(payload)})
	return nil
}

func (p *capturePublisher) captured() []capturedPublish {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]capturedPublish, len(p.got))
	copy(out, p.got)
	return out
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func drain(t *testing.T, r *events.Router) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, r.Stop(ctx))
}

func TestRouterDispatch(t *testing.T) {
	t.Run("delivers to every room in dispatch order", func(t *testing.T) {
		pub := &capturePublisher{}
		router := events.NewRouter(pub, 8, testLogger())
		router.Start()

		ev := events.Event{Name: events.ReservationCreated, Payload: map[string]string{"id": "r1"}}
		router.Dispatch(ev, []string{"resource:car-1", "participant:u1"})
		drain(t, router)

		got := pub.captured()
		require.Len(t, got, 2)
		assert.Equal(t, "resource:car-1", got[0].Room)
		assert.Equal(t, "participant:u1", got[1].Room)
		for _, g := range got {
			assert.Equal(t, events.ReservationCreated, g.Event)
			assert.JSONEq(t, `{"id":"r1"}`, g.Payload)
		}
	})

	t.Run("duplicate rooms receive one delivery", func(t *testing.T) {
		pub := &capturePublisher{}
		router := events.NewRouter(pub, 8, testLogger())
		router.Start()

		router.Dispatch(events.Event{Name: events.OfferCreated}, []string{"participant:u1", "participant:u1"})
		drain(t, router)

		assert.Len(t, pub.captured(), 1)
	})

	t.Run("no rooms means nothing is queued", func(t *testing.T) {
		pub := &capturePublisher{}
		router := events.NewRouter(pub, 8, testLogger())
		router.Start()

		router.Dispatch(events.Event{Name: events.OfferCreated}, nil)
		router.Dispatch(events.Event{Name: events.OfferCreated}, []string{""})
		drain(t, router)

		assert.Empty(t, pub.captured())
	})

	t.Run("overflow drops the oldest event", func(t *testing.T) {
		pub := &capturePublisher{}
		router := events.NewRouter(pub, 2, testLogger())

		// Dispatcher not started yet, so the queue fills deterministically.
		router.Dispatch(events.Event{Name: "first"}, []string{"room:a"})
		router.Dispatch(events.Event{Name: "second"}, []string{"room:a"})
		router.Dispatch(events.Event{Name: "third"}, []string{"room:a"})

		assert.Equal(t, uint64(1), router.Dropped())

		router.Start()
		drain(t, router)

		got := pub.captured()
		require.Len(t, got, 2)
		assert.Equal(t, "second", got[0].Event)
		assert.Equal(t, "third", got[1].Event)
	})

	t.Run("dispatch after stop is ignored", func(t *testing.T) {
		pub := &capturePublisher{}
		router := events.NewRouter(pub, 8, testLogger())
		router.Start()
		drain(t, router)

		router.Dispatch(events.Event{Name: events.OfferUpdated}, []string{"room:a"})
		assert.Empty(t, pub.captured())
		assert.Zero(t, router.Dropped())
	})

	t.Run("publish failure does not halt the drain", func(t *testing.T) {
		pub := &capturePublisher{failWith: errors.New("transport down")}
		router := events.NewRouter(pub, 8, testLogger())
		router.Start()

		router.Dispatch(events.Event{Name: "a"}, []string{"room:a"})
		router.Dispatch(events.Event{Name: "b"}, []string{"room:b"})
		drain(t, router)
		// Stop returned, so both envelopes were consumed despite the errors.
	})

	t.Run("unmarshalable payload is skipped", func(t *testing.T) {
		pub := &capturePublisher{}
		router := events.NewRouter(pub, 8, testLogger())
		router.Start()

		router.Dispatch(events.Event{Name: "bad", Payload: func() {}}, []string{"room:a"})
		router.Dispatch(events.Event{Name: "good", Payload: "ok"}, []string{"room:a"})
		drain(t, router)

		got := pub.captured()
		require.Len(t, got, 1)
		assert.Equal(t, "good", got[0].Event)
	})
}

func TestRouterStop(t *testing.T) {
	t.Run("stop is idempotent", func(t *testing.T) {
		router := events.NewRouter(events.NewNopPublisher(), 8, testLogger())
		router.Start()
		drain(t, router)
		drain(t, router)
	})

	t.Run("dispatch racing stop does not panic", func(t *testing.T) {
		pub := &capturePublisher{}
		router := events.NewRouter(pub, 4, testLogger())
		router.Start()

		var wg sync.WaitGroup
		for range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := range 50 {
					router.Dispatch(events.Event{Name: "burst", Payload: i}, []string{"room:a"})
				}
			}()
		}

		// Shut down while the senders are still going. The queue stays open,
		// so a send that slipped past the closed check lands in the buffer
		// instead of panicking.
		drain(t, router)
		wg.Wait()

		before := len(pub.captured())
		router.Dispatch(events.Event{Name: "late"}, []string{"room:a"})
		assert.Len(t, pub.captured(), before)
	})

	t.Run("stop without start times out", func(t *testing.T) {
		router := events.NewRouter(events.NewNopPublisher(), 8, testLogger())
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()
		assert.ErrorIs(t, router.Stop(ctx), context.DeadlineExceeded)
	})
}
