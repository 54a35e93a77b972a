// Package ledger records expenses and answers balance queries over them.
//
// A Ledger is stateless between calls: every operation takes the acting user
// explicitly and reads or writes through the Store. Caching and event
// publishing are optional side channels that never change an operation's result.
package ledger

import (
	"context"
	"time"

	"github.com/rai-ahmadfraz/split-it-api/internal/events"
	"github.com/rai-ahmadfraz/split-it-api/internal/metrics"
	"github.com/rai-ahmadfraz/split-it-api/internal/models"
	"github.com/rai-ahmadfraz/split-it-api/internal/storage"
)

// Store is the persistence the ledger needs.
type Store interface {
	storage.ExpenseStore
	storage.BalanceStore
}

// BalanceCache caches NetBalances results per user.
//
// Get returns nil balances on a miss, plus the user's version. Set must drop
// the write when Invalidate ran for the user after the Get that returned version.
type BalanceCache interface {
	Get(ctx context.Context, userID string) (balances *models.NetBalances, version int64, err error)
	Set(ctx context.Context, userID string, balances *models.NetBalances, version int64) error
	Invalidate(ctx context.Context, userIDs ...string) error
}

// Publisher receives an event for every committed expense.
type Publisher interface {
	PublishExpenseCreated(ctx context.Context, e events.ExpenseCreated) error
}

// Ledger implements expense recording, balance aggregation and pairwise history.
type Ledger struct {
	store     Store
	cache     BalanceCache
	publisher Publisher
	metrics   *metrics.Metrics
	now       func() time.Time
	balanced  bool
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithCache enables the balance cache. Results computed on a miss are stored
// with the version seen at lookup, so an expense committed while they were
// being computed keeps them out of the cache.
func WithCache(c BalanceCache) Option {
	return func(l *Ledger) { l.cache = c }
}

// WithPublisher enables expense-created events.
func WithPublisher(p Publisher) Option {
	return func(l *Ledger) { l.publisher = p }
}

// WithMetrics records ledger counters.
func WithMetrics(m *metrics.Metrics) Option {
	return func(l *Ledger) { l.metrics = m }
}

// WithClock overrides the clock used for event timestamps.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// WithBalancedEqualSplit distributes rounding leftovers across equal shares
// so they add up exactly.
func WithBalancedEqualSplit(enabled bool) Option {
	return func(l *Ledger) { l.balanced = enabled }
}

// New creates a Ledger over store.
func New(store Store, opts ...Option) *Ledger {
	l := &Ledger{store: store, now: time.Now}
	for _, opt := range opts {
		opt(l)
	}
	return l
}
