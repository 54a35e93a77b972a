package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/rai-ahmadfraz/split-it-api/internal/models"
)

// EmptyPairwiseHistory is the result for two users with no shared expenses.
func EmptyPairwiseHistory() models.PairwiseHistory {
	return models.PairwiseHistory{
		Summary: models.PairwiseSummary{
			NetBalance:    decimal.Zero,
			OverallStatus: NoSharedExpenses,
		},
		Expenses: []models.ExpenseView{},
	}
}

// ExpenseIDs returns the distinct expense IDs of rows in first-seen order.
func ExpenseIDs(rows []models.SharedExpenseRow) []string {
	seen := make(map[string]bool, len(rows))
	ids := make([]string, 0, len(rows))
	for _, r := range rows {
		if !seen[r.ExpenseID] {
			seen[r.ExpenseID] = true
			ids = append(ids, r.ExpenseID)
		}
	}
	return ids
}

// BuildPairwiseHistory turns the filtered rows between userID and a friend, plus
// every member row of those expenses, into the pairwise timeline.
//
// Row order is kept (the store returns most recent first). Each row adds its owed
// amount to the net balance when userID paid and subtracts it when the friend paid.
func BuildPairwiseHistory(userID string, rows []models.SharedExpenseRow, members []models.MemberRow) models.PairwiseHistory {
	if len(rows) == 0 {
		return EmptyPairwiseHistory()
	}

	byExpense := make(map[string][]models.MemberRow)
	for _, m := range members {
		byExpense[m.ExpenseID] = append(byExpense[m.ExpenseID], m)
	}

	views := make([]models.ExpenseView, 0, len(rows))
	net := decimal.Zero
	for _, r := range rows {
		status := models.StatusYouOwe
		if r.PayerID == userID {
			status = models.StatusOwesYou
			net = net.Add(r.AmountOwed)
		} else {
			net = net.Sub(r.AmountOwed)
		}

		expenseMembers := byExpense[r.ExpenseID]
		if expenseMembers == nil {
			expenseMembers = []models.MemberRow{}
		}

		views = append(views, models.ExpenseView{
			ExpenseID:   r.ExpenseID,
			Title:       r.Title,
			TotalAmount: r.TotalAmount,
			PaidBy:      models.UserRef{ID: r.PayerID, Name: r.PayerName},
			Owes: models.OwedAmount{
				UserRef: models.UserRef{ID: r.MemberID, Name: r.MemberName},
				Amount:  r.AmountOwed,
			},
			Members:   expenseMembers,
			CreatedAt: r.CreatedAt,
			Status:    status,
		})
	}

	return models.PairwiseHistory{
		Summary: models.PairwiseSummary{
			NetBalance:    net,
			OverallStatus: OverallStatus(net, PairSettled),
		},
		Expenses: views,
	}
}
