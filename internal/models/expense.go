package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ShareType selects how a participant's portion of an expense is computed.
type ShareType string

const (
	// ShareEqual divides the total by the number of participants in the expense.
	ShareEqual ShareType = "equal"
	// SharePercentage takes ShareValue percent of the total.
	SharePercentage ShareType = "percentage"
	// ShareFixed owes ShareValue verbatim, independent of the total.
	ShareFixed ShareType = "fixed"
)

// ParseShareType validates a share type string.
func ParseShareType(s string) (ShareType, error) {
	switch t := ShareType(s); t {
	case ShareEqual, SharePercentage, ShareFixed:
		return t, nil
	default:
		return "", fmt.Errorf("unsupported share type %q", s)
	}
}

// Expense is a single recorded shared cost.
// Expenses are immutable once created.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// Name is the human-readable title (e.g., "Monal Dinner"). Unique per creator.
	Name string

	// TotalAmount is the full cost, two fractional digits.
	TotalAmount decimal.Decimal

	// CreatorID is the user who recorded the expense.
	CreatorID string

	// PayerID is the user who actually paid. Empty when the payer account was removed.
	PayerID string

	// CreatedAt is the Unix timestamp in milliseconds when the expense was recorded.
	CreatedAt int64
}

// Share is one participant's computed portion of an expense.
// At most one share exists per (ExpenseID, UserID).
type Share struct {
	ExpenseID string
	UserID    string
	ShareType ShareType

	// ShareValue is the percentage or fixed amount requested; nil for equal shares
	// and for percentage/fixed requests that omitted it.
	ShareValue *decimal.Decimal

	// AmountOwed is derived once by the allocator.
	AmountOwed decimal.Decimal
}

// ParticipantShare is one participant's share request as submitted by the caller.
type ParticipantShare struct {
	UserID     string
	ShareType  ShareType
	ShareValue *decimal.Decimal
}

// Allocation is the allocator's output for one participant.
type Allocation struct {
	UserID     string
	AmountOwed decimal.Decimal
}
