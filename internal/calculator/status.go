package calculator

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rai-ahmadfraz/split-it-api/internal/models"
)

// Zero-balance wording for the two summaries.
const (
	AllSettled       = "All settled!"
	PairSettled      = "Settled"
	NoSharedExpenses = "No shared expenses"
)

// BalanceStatus describes a per-counterparty balance from the subject's side.
func BalanceStatus(balance decimal.Decimal) string {
	switch balance.Sign() {
	case 1:
		return models.StatusOwesYou
	case -1:
		return models.StatusYouOwe
	default:
		return models.StatusSettled
	}
}

// OverallStatus renders a net balance as a sentence, using settled for zero.
func OverallStatus(net decimal.Decimal, settled string) string {
	switch net.Sign() {
	case 1:
		return fmt.Sprintf("You are owed %s", models.FormatMoney(net))
	case -1:
		return fmt.Sprintf("You owe %s", models.FormatMoney(net.Abs()))
	default:
		return settled
	}
}
