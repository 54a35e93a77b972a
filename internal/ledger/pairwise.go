package ledger

import (
	"context"
	"fmt"

	"github.com/rai-ahmadfraz/split-it-api/internal/calculator"
	"github.com/rai-ahmadfraz/split-it-api/internal/models"
)

// PairwiseHistory returns every expense between userID and friendID, most
// recent first, with the net balance from userID's side.
func (l *Ledger) PairwiseHistory(ctx context.Context, userID, friendID string) (*models.PairwiseHistory, error) {
	if userID == friendID {
		return nil, ErrSelfReference
	}

	rows, err := l.store.QuerySharedExpenses(ctx, userID, friendID)
	if err != nil {
		return nil, fmt.Errorf("failed to query shared expenses: %w", err)
	}
	if len(rows) == 0 {
		history := calculator.EmptyPairwiseHistory()
		return &history, nil
	}

	members, err := l.store.QueryMembersByExpenseIDs(ctx, calculator.ExpenseIDs(rows))
	if err != nil {
		return nil, fmt.Errorf("failed to query expense members: %w", err)
	}

	history := calculator.BuildPairwiseHistory(userID, rows, members)
	return &history, nil
}
