// Package notify streams per-trip change notifications from Postgres to
// HTTP subscribers. Triggers on the packing tables call pg_notify on the
// trip_changes channel; Hub holds one LISTEN connection and fans each
// payload out to the subscribers of that trip.
package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sethvargo/go-retry"
)

// Channel is the Postgres NOTIFY channel written by the change triggers.
const Channel = "trip_changes"

// subscriberBuffer is how many undelivered changes a subscriber may queue
// before further changes are dropped for it.
const subscriberBuffer = 16

// Change describes one row-level write to a trip's packing data.
type Change struct {
	TripID uuid.UUID `json:"trip_id"`
	Table  string    `json:"table"`
	Op     string    `json:"op"`
}

// Acquirer is satisfied by *pgxpool.Pool.
type Acquirer interface {
	Acquire(ctx context.Context) (*pgxpool.Conn, error)
}

// Hub fans Postgres notifications out to per-trip subscribers.
// The zero value is not usable; construct with NewHub.
type Hub struct {
	db  Acquirer
	log *slog.Logger

	// backoff builds the reconnect policy for one Run.
	backoff func() retry.Backoff

	mu     sync.Mutex
	subs   map[uuid.UUID]map[chan Change]struct{}
	closed bool
}

// NewHub returns a Hub that listens on connections taken from db.
func NewHub(db Acquirer, log *slog.Logger) *Hub {
	return &Hub{
		db:  db,
		log: log,
		backoff: func() retry.Backoff {
			return retry.WithCappedDuration(30*time.Second, retry.NewExponential(500*time.Millisecond))
		},
		subs: map[uuid.UUID]map[chan Change]struct{}{},
	}
}

// Subscribe registers interest in one trip. The returned cancel func
// unregisters and closes the channel; calling it more than once is safe.
// Once Run has returned, Subscribe hands out channels that are already closed.
func (h *Hub) Subscribe(tripID uuid.UUID) (<-chan Change, func()) {
	ch := make(chan Change, subscriberBuffer)

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	set, ok := h.subs[tripID]
	if !ok {
		set = map[chan Change]struct{}{}
		h.subs[tripID] = set
	}
	set[ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			if _, live := h.subs[tripID][ch]; !live {
				return // closed by Run on exit
			}
			delete(h.subs[tripID], ch)
			if len(h.subs[tripID]) == 0 {
				delete(h.subs, tripID)
			}
			close(ch)
		})
	}
}

// Subscribers returns the number of live subscriptions for a trip.
func (h *Hub) Subscribers(tripID uuid.UUID) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[tripID])
}

// Dispatch decodes one notification payload and delivers it to the trip's
// subscribers without blocking. Full subscribers miss the change.
func (h *Hub) Dispatch(payload string) error {
	var c Change
	if err := json.Unmarshal([]byte(payload), &c); err != nil {
		return fmt.Errorf("notify.Hub.Dispatch: %w", err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs[c.TripID] {
		select {
		case ch <- c:
		default:
			h.log.Warn("dropping change for slow subscriber", "trip_id", c.TripID, "table", c.Table)
		}
	}
	return nil
}

// Run listens until ctx is cancelled, re-establishing the LISTEN connection
// with capped exponential backoff whenever it fails. It returns ctx.Err().
// On return every subscription channel is closed, which ends open streams.
func (h *Hub) Run(ctx context.Context) error {
	defer h.closeAll()

	err := retry.Do(ctx, h.backoff(), func(ctx context.Context) error {
		err := h.listen(ctx)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		h.log.Warn("change listener disconnected, retrying", "error", err)
		return retry.RetryableError(err)
	})
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return ctx.Err()
	}
	return fmt.Errorf("notify.Hub.Run: %w", err)
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, set := range h.subs {
		for ch := range set {
			close(ch)
		}
	}
	h.subs = map[uuid.UUID]map[chan Change]struct{}{}
	h.closed = true
}

// listen holds one connection in LISTEN and dispatches until an error occurs.
func (h *Hub) listen(ctx context.Context) error {
	conn, err := h.db.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire: %w", err)
	}
	// A connection that was listening must not go back to the pool.
	pc := conn.Hijack()
	defer pc.Close(context.Background())

	if _, err := pc.Exec(ctx, "LISTEN "+Channel); err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	h.log.Info("listening for trip changes", "channel", Channel)

	for {
		n, err := pc.WaitForNotification(ctx)
		if err != nil {
			return fmt.Errorf("wait: %w", err)
		}
		if err := h.Dispatch(n.Payload); err != nil {
			h.log.Error("bad change payload", "error", err, "payload", n.Payload)
		}
	}
}
