// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/rai-ahmadfraz/split-it-api/internal/models"
)

// Store-level errors. Implementations wrap these so callers can match with errors.Is.
var (
	ErrNotFound             = errors.New("not found")
	ErrDuplicateName        = errors.New("expense name already used by this creator")
	ErrDuplicateParticipant = errors.New("participant listed twice in one expense")
	ErrUnknownPayer         = errors.New("payer or creator does not exist")
	ErrUnknownParticipant   = errors.New("participant does not exist")
	ErrEmailExists          = errors.New("email already registered")
)

// Store is the Ledger Store: everything the ledger and auth layers persist or query.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the ledger or service layers.
type Store interface {
	ExpenseStore
	BalanceStore
	UserStore

	// Ping checks that the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases any resources held by the store.
	Close() error
}

// ExpenseTx is the write side of an expense, valid only inside RunInTx.
type ExpenseTx interface {
	// InsertExpense persists the expense. The ID and CreatedAt fields are
	// populated by the store when empty.
	InsertExpense(ctx context.Context, expense *models.Expense) error

	// InsertShares persists every share. Each share must reference an expense
	// inserted in the same transaction.
	InsertShares(ctx context.Context, shares []models.Share) error
}

// ExpenseStore records and reads expenses.
type ExpenseStore interface {
	// RunInTx runs fn in one transaction. It commits when fn returns nil and
	// rolls back otherwise, so either every write inside fn is durable or none is.
	RunInTx(ctx context.Context, fn func(tx ExpenseTx) error) error

	// FindExpenseByNameAndCreator returns the creator's expense with that name,
	// or nil (and no error) when there is none.
	FindExpenseByNameAndCreator(ctx context.Context, name, creatorID string) (*models.Expense, error)

	// GetExpense retrieves an expense and all of its shares.
	// Returns ErrNotFound if the expense does not exist.
	GetExpense(ctx context.Context, expenseID string) (*models.Expense, []models.Share, error)
}

// BalanceStore answers the aggregation queries behind balances and pairwise history.
type BalanceStore interface {
	// QueryCredits sums, per participant, the positive shares of expenses userID
	// paid, excluding userID's own share.
	QueryCredits(ctx context.Context, userID string) ([]models.CounterpartyTotal, error)

	// QueryDebits sums, per payer, userID's positive shares of expenses someone
	// else paid.
	QueryDebits(ctx context.Context, userID string) ([]models.CounterpartyTotal, error)

	// QuerySharedExpenses returns every share where one user paid and the other
	// owns the share, most recent expense first.
	QuerySharedExpenses(ctx context.Context, userID, friendID string) ([]models.SharedExpenseRow, error)

	// QueryMembersByExpenseIDs returns every share of the given expenses.
	QueryMembersByExpenseIDs(ctx context.Context, expenseIDs []string) ([]models.MemberRow, error)
}

// UserStore persists user accounts.
type UserStore interface {
	// CreateUser inserts a new user. Returns ErrEmailExists on a duplicate email.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail returns nil (and no error) when no user has that email.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID returns nil (and no error) when the user does not exist.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// GetUsersByIDs returns a map of user ID to User; missing users are omitted.
	GetUsersByIDs(ctx context.Context, ids []string) (map[string]*models.User, error)
}
