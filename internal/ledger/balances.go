package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rai-ahmadfraz/split-it-api/internal/calculator"
	"github.com/rai-ahmadfraz/split-it-api/internal/models"
)

// NetBalances returns userID's net position against every counterparty.
// A user with no shared history gets empty details and a zero summary.
func (l *Ledger) NetBalances(ctx context.Context, userID string) (*models.NetBalances, error) {
	cached, version, cacheable := l.cachedBalances(ctx, userID)
	if cached != nil {
		return cached, nil
	}

	credits, err := l.store.QueryCredits(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query credits: %w", err)
	}
	debits, err := l.store.QueryDebits(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query debits: %w", err)
	}

	balances := calculator.MergeBalances(credits, debits)

	if cacheable {
		if err := l.cache.Set(ctx, userID, &balances, version); err != nil {
			slog.WarnContext(ctx, "Failed to cache balances", "user_id", userID, "error", err)
		}
	}

	return &balances, nil
}

// cachedBalances looks userID up in the cache. cacheable reports whether a
// freshly computed result may be stored under the returned version.
func (l *Ledger) cachedBalances(ctx context.Context, userID string) (balances *models.NetBalances, version int64, cacheable bool) {
	if l.cache == nil {
		return nil, 0, false
	}

	balances, version, err := l.cache.Get(ctx, userID)
	switch {
	case err != nil:
		l.metrics.CacheLookup("error")
		slog.WarnContext(ctx, "Balance cache lookup failed", "user_id", userID, "error", err)
		return nil, 0, false
	case balances == nil:
		l.metrics.CacheLookup("miss")
		return nil, version, true
	default:
		l.metrics.CacheLookup("hit")
		return balances, version, false
	}
}
