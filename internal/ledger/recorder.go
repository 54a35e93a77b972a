package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rai-ahmadfraz/split-it-api/internal/calculator"
	"github.com/rai-ahmadfraz/split-it-api/internal/events"
	"github.com/rai-ahmadfraz/split-it-api/internal/models"
	"github.com/rai-ahmadfraz/split-it-api/internal/storage"
)

// CreateExpenseInput is a request to record one expense.
type CreateExpenseInput struct {
	Name         string
	TotalAmount  decimal.Decimal
	CreatorID    string
	PayerID      string
	Participants []models.ParticipantShare
}

// CreateExpenseResult is the committed expense with its computed shares.
type CreateExpenseResult struct {
	Expense *models.Expense
	Shares  []models.Share
}

// CreateExpense records an expense and one share per participant in a single
// transaction. The duplicate-name lookup before the write is advisory; the
// store's (creator, name) constraint decides concurrent races.
func (l *Ledger) CreateExpense(ctx context.Context, in CreateExpenseInput) (*CreateExpenseResult, error) {
	name := strings.TrimSpace(in.Name)
	if err := validateExpense(name, in); err != nil {
		return nil, err
	}

	existing, err := l.store.FindExpenseByNameAndCreator(ctx, name, in.CreatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to check expense name: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}

	total := models.RoundMoney(in.TotalAmount)
	allocations, err := l.allocate(total, in.Participants)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidShare, err)
	}

	expense := &models.Expense{
		Name:        name,
		TotalAmount: total,
		CreatorID:   in.CreatorID,
		PayerID:     in.PayerID,
		CreatedAt:   l.now().UnixMilli(),
	}

	var shares []models.Share
	err = l.store.RunInTx(ctx, func(tx storage.ExpenseTx) error {
		if err := tx.InsertExpense(ctx, expense); err != nil {
			return err
		}
		if len(allocations) == 0 {
			return nil
		}

		shares = make([]models.Share, len(allocations))
		for i, a := range allocations {
			p := in.Participants[i]
			shares[i] = models.Share{
				ExpenseID:  expense.ID,
				UserID:     a.UserID,
				ShareType:  p.ShareType,
				ShareValue: p.ShareValue,
				AmountOwed: a.AmountOwed,
			}
		}
		return tx.InsertShares(ctx, shares)
	})
	if err != nil {
		return nil, mapStoreError(err)
	}
	if shares == nil {
		shares = []models.Share{}
	}

	slog.InfoContext(ctx, "Expense created",
		"expense_id", expense.ID,
		"creator_id", expense.CreatorID,
		"payer_id", expense.PayerID,
		"total", models.FormatMoney(expense.TotalAmount),
		"shares", len(shares))

	l.afterCreate(ctx, expense, shares)

	return &CreateExpenseResult{Expense: expense, Shares: shares}, nil
}

func validateExpense(name string, in CreateExpenseInput) error {
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidExpense)
	}
	if in.TotalAmount.IsNegative() {
		return fmt.Errorf("%w: total amount cannot be negative", ErrInvalidExpense)
	}
	if err := models.CheckAmount(in.TotalAmount); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidExpense, err)
	}
	if in.CreatorID == "" {
		return fmt.Errorf("%w: creator is required", ErrInvalidExpense)
	}
	if in.PayerID == "" {
		return fmt.Errorf("%w: payer is required", ErrInvalidExpense)
	}

	seen := make(map[string]bool, len(in.Participants))
	for _, p := range in.Participants {
		if p.UserID == "" {
			return fmt.Errorf("%w: participant user id is required", ErrInvalidShare)
		}
		if seen[p.UserID] {
			return fmt.Errorf("%w: participant %s listed twice", ErrInvalidShare, p.UserID)
		}
		seen[p.UserID] = true
	}
	return nil
}

func (l *Ledger) allocate(total decimal.Decimal, participants []models.ParticipantShare) ([]models.Allocation, error) {
	if l.balanced {
		return calculator.AllocateBalanced(total, participants)
	}
	return calculator.Allocate(total, participants)
}

func mapStoreError(err error) error {
	switch {
	case errors.Is(err, storage.ErrDuplicateName):
		return fmt.Errorf("%w: %v", ErrDuplicateName, err)
	case errors.Is(err, storage.ErrUnknownPayer):
		return fmt.Errorf("%w: %v", ErrUnknownPayer, err)
	case errors.Is(err, storage.ErrUnknownParticipant):
		return fmt.Errorf("%w: %v", ErrUnknownParticipant, err)
	case errors.Is(err, storage.ErrDuplicateParticipant):
		return fmt.Errorf("%w: %v", ErrInvalidShare, err)
	case errors.Is(err, models.ErrAmountOutOfRange):
		return fmt.Errorf("%w: %v", ErrInvalidExpense, err)
	default:
		return fmt.Errorf("failed to record expense: %w", err)
	}
}

// afterCreate runs the post-commit side channels. Their failures are logged only.
func (l *Ledger) afterCreate(ctx context.Context, expense *models.Expense, shares []models.Share) {
	shareTypes := make([]string, len(shares))
	affected := []string{expense.PayerID}
	participantIDs := make([]string, len(shares))
	for i, s := range shares {
		shareTypes[i] = string(s.ShareType)
		participantIDs[i] = s.UserID
		if s.UserID != expense.PayerID {
			affected = append(affected, s.UserID)
		}
	}
	l.metrics.ExpenseCreated(shareTypes)

	if l.cache != nil {
		if err := l.cache.Invalidate(ctx, affected...); err != nil {
			slog.WarnContext(ctx, "Failed to invalidate balance cache", "expense_id", expense.ID, "error", err)
		}
	}

	if l.publisher != nil {
		event := events.ExpenseCreated{
			ExpenseID:      expense.ID,
			Name:           expense.Name,
			TotalAmount:    models.FormatMoney(expense.TotalAmount),
			CreatorID:      expense.CreatorID,
			PayerID:        expense.PayerID,
			ParticipantIDs: participantIDs,
			CreatedAt:      time.UnixMilli(expense.CreatedAt).UTC(),
		}
		if err := l.publisher.PublishExpenseCreated(ctx, event); err != nil {
			slog.WarnContext(ctx, "Failed to publish expense event", "expense_id", expense.ID, "error", err)
		}
	}
}
