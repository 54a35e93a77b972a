package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rai-ahmadfraz/split-it-api/internal/models"
	"github.com/rai-ahmadfraz/split-it-api/internal/storage"
)

// expenseTx implements storage.ExpenseTx on top of one *sql.Tx.
type expenseTx struct {
	tx *sql.Tx
}

// RunInTx runs fn inside a transaction, committing only when fn succeeds.
func (s *SQLiteStore) RunInTx(ctx context.Context, fn func(tx storage.ExpenseTx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(&expenseTx{tx: tx}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// InsertExpense inserts the expense row, generating its ID and timestamp if unset.
func (t *expenseTx) InsertExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().UnixMilli()
	}

	total, err := models.ToCents(expense.TotalAmount)
	if err != nil {
		return fmt.Errorf("insert expense %q: %w", expense.Name, err)
	}

	_, err = t.tx.ExecContext(ctx,
		`INSERT INTO expenses (id, name, total_cents, creator_id, payer_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		expense.ID, expense.Name, total, expense.CreatorID,
		nullString(expense.PayerID), expense.CreatedAt, expense.CreatedAt,
	)
	switch {
	case err == nil:
		return nil
	case isUniqueViolation(err):
		return fmt.Errorf("insert expense %q: %w", expense.Name, storage.ErrDuplicateName)
	case isForeignKeyViolation(err):
		return fmt.Errorf("insert expense %q: %w", expense.Name, storage.ErrUnknownPayer)
	default:
		return fmt.Errorf("failed to insert expense: %w", err)
	}
}

// InsertShares inserts one expense_members row per share. The share value is
// stored as submitted, without rounding; the owed amount is stored in cents.
func (t *expenseTx) InsertShares(ctx context.Context, shares []models.Share) error {
	now := time.Now().UnixMilli()
	for _, share := range shares {
		var value interface{}
		if share.ShareValue != nil {
			value = share.ShareValue.String()
		}
		owed, err := models.ToCents(share.AmountOwed)
		if err != nil {
			return fmt.Errorf("insert share for %s: %w", share.UserID, err)
		}

		_, err = t.tx.ExecContext(ctx,
			`INSERT INTO expense_members (expense_id, user_id, share_type, share_value, amount_owed_cents, created_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			share.ExpenseID, share.UserID, string(share.ShareType), value, owed, now,
		)
		switch {
		case err == nil:
		case isUniqueViolation(err):
			return fmt.Errorf("insert share for %s: %w", share.UserID, storage.ErrDuplicateParticipant)
		case isForeignKeyViolation(err):
			return fmt.Errorf("insert share for %s: %w", share.UserID, storage.ErrUnknownParticipant)
		default:
			return fmt.Errorf("failed to insert share: %w", err)
		}
	}
	return nil
}

// FindExpenseByNameAndCreator looks up an expense by its per-creator unique name.
func (s *SQLiteStore) FindExpenseByNameAndCreator(ctx context.Context, name, creatorID string) (*models.Expense, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, total_cents, creator_id, payer_id, created_at
		 FROM expenses WHERE name = ? AND creator_id = ?`,
		name, creatorID,
	)
	expense, err := scanExpense(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find expense by name: %w", err)
	}
	return expense, nil
}

// GetExpense retrieves an expense with its shares in insertion order.
func (s *SQLiteStore) GetExpense(ctx context.Context, expenseID string) (*models.Expense, []models.Share, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, total_cents, creator_id, payer_id, created_at
		 FROM expenses WHERE id = ?`,
		expenseID,
	)
	expense, err := scanExpense(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, fmt.Errorf("expense %s: %w", expenseID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get expense: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT expense_id, user_id, share_type, share_value, amount_owed_cents
		 FROM expense_members WHERE expense_id = ? ORDER BY rowid`,
		expenseID,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get shares: %w", err)
	}
	defer rows.Close()

	shares := []models.Share{}
	for rows.Next() {
		var (
			share     models.Share
			shareType string
			value     sql.NullString
			owed      int64
		)
		if err := rows.Scan(&share.ExpenseID, &share.UserID, &shareType, &value, &owed); err != nil {
			return nil, nil, fmt.Errorf("failed to scan share: %w", err)
		}
		share.ShareType = models.ShareType(shareType)
		if value.Valid {
			v, err := decimal.NewFromString(value.String)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to parse share value %q: %w", value.String, err)
			}
			share.ShareValue = &v
		}
		share.AmountOwed = models.FromCents(owed)
		shares = append(shares, share)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to iterate shares: %w", err)
	}

	return expense, shares, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanExpense(row rowScanner) (*models.Expense, error) {
	var (
		expense models.Expense
		total   int64
		payer   sql.NullString
	)
	if err := row.Scan(&expense.ID, &expense.Name, &total, &expense.CreatorID, &payer, &expense.CreatedAt); err != nil {
		return nil, err
	}
	expense.TotalAmount = models.FromCents(total)
	expense.PayerID = payer.String
	return &expense, nil
}

func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
