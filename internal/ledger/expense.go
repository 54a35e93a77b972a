package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/rai-ahmadfraz/split-it-api/internal/models"
	"github.com/rai-ahmadfraz/split-it-api/internal/storage"
)

// GetExpense returns an expense with all of its shares.
func (l *Ledger) GetExpense(ctx context.Context, expenseID string) (*models.Expense, []models.Share, error) {
	expense, shares, err := l.store.GetExpense(ctx, expenseID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil, fmt.Errorf("%w: expense %s", ErrNotFound, expenseID)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get expense: %w", err)
	}
	if shares == nil {
		shares = []models.Share{}
	}
	return expense, shares, nil
}
