package models

import "github.com/shopspring/decimal"

// Balance status wording, as seen from the subject user.
const (
	StatusOwesYou = "owes you"
	StatusYouOwe  = "you owe"
	StatusSettled = "settled"
)

// CounterpartyTotal is one grouped row of the credit or debit query:
// the summed amount owed between the subject and one counterparty.
type CounterpartyTotal struct {
	UserID string
	Name   string
	Total  decimal.Decimal
}

// NetBalanceEntry is the subject's net position against one counterparty.
// Positive Balance means the counterparty owes the subject.
type NetBalanceEntry struct {
	CounterpartyID   string
	CounterpartyName string
	Balance          decimal.Decimal
	Status           string
}

// BalanceSummary totals every counterparty for one user.
type BalanceSummary struct {
	TotalOwedToYou decimal.Decimal
	TotalYouOwe    decimal.Decimal
	NetBalance     decimal.Decimal
	OverallStatus  string
}

// NetBalances is the result of aggregating all of one user's shared expenses.
type NetBalances struct {
	Summary BalanceSummary
	Details []NetBalanceEntry
}
