package models

import "github.com/shopspring/decimal"

// SharedExpenseRow is one (share, expense) pair where one of two users paid
// and the other is the share's owner.
type SharedExpenseRow struct {
	ExpenseID   string
	Title       string
	TotalAmount decimal.Decimal
	PayerID     string
	PayerName   string
	MemberID    string
	MemberName  string
	AmountOwed  decimal.Decimal
	CreatedAt   int64
}

// MemberRow is one participant of an expense with the amount they owe.
type MemberRow struct {
	ExpenseID string
	UserID    string
	Name      string
	Amount    decimal.Decimal
}

// OwedAmount names the user who owes on an expense and how much.
type OwedAmount struct {
	UserRef
	Amount decimal.Decimal
}

// ExpenseView is one entry of a pairwise history.
type ExpenseView struct {
	ExpenseID   string
	Title       string
	TotalAmount decimal.Decimal
	PaidBy      UserRef
	Owes        OwedAmount
	Members     []MemberRow
	CreatedAt   int64
	Status      string
}

// PairwiseSummary is the net position between two users.
type PairwiseSummary struct {
	NetBalance    decimal.Decimal
	OverallStatus string
}

// PairwiseHistory is the shared expense timeline between two users,
// most recent first.
type PairwiseHistory struct {
	Summary  PairwiseSummary
	Expenses []ExpenseView
}
