package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/rai-ahmadfraz/split-it-api/internal/models"
)

// MergeBalances nets one user's credits (what counterparties owe them, grouped by
// participant) against their debits (what they owe, grouped by payer).
//
// A counterparty on both sides gets credit - debit; one side only keeps that side's
// signed value. Details keep first-seen order: credits first, then debit-only
// counterparties. Totals in the summary are taken before merging.
func MergeBalances(credits, debits []models.CounterpartyTotal) models.NetBalances {
	entries := make(map[string]*models.NetBalanceEntry, len(credits)+len(debits))
	order := make([]string, 0, len(credits)+len(debits))

	totalOwedToYou := decimal.Zero
	for _, c := range credits {
		totalOwedToYou = totalOwedToYou.Add(c.Total)
		if e, ok := entries[c.UserID]; ok {
			e.Balance = e.Balance.Add(c.Total)
			continue
		}
		entries[c.UserID] = &models.NetBalanceEntry{
			CounterpartyID:   c.UserID,
			CounterpartyName: c.Name,
			Balance:          c.Total,
		}
		order = append(order, c.UserID)
	}

	totalYouOwe := decimal.Zero
	for _, d := range debits {
		totalYouOwe = totalYouOwe.Add(d.Total)
		if e, ok := entries[d.UserID]; ok {
			e.Balance = e.Balance.Sub(d.Total)
			continue
		}
		entries[d.UserID] = &models.NetBalanceEntry{
			CounterpartyID:   d.UserID,
			CounterpartyName: d.Name,
			Balance:          d.Total.Neg(),
		}
		order = append(order, d.UserID)
	}

	details := make([]models.NetBalanceEntry, 0, len(order))
	net := decimal.Zero
	for _, id := range order {
		e := entries[id]
		e.Status = BalanceStatus(e.Balance)
		net = net.Add(e.Balance)
		details = append(details, *e)
	}

	return models.NetBalances{
		Summary: models.BalanceSummary{
			TotalOwedToYou: totalOwedToYou,
			TotalYouOwe:    totalYouOwe,
			NetBalance:     net,
			OverallStatus:  OverallStatus(net, AllSettled),
		},
		Details: details,
	}
}
