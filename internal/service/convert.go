package service

import (
	"github.com/shopspring/decimal"

	"github.com/rai-ahmadfraz/split-it-api/internal/models"
	"github.com/rai-ahmadfraz/split-it-api/pkg/api"
)

func expenseToAPI(e *models.Expense) api.Expense {
	return api.Expense{
		ID:          e.ID,
		Name:        e.Name,
		TotalAmount: models.FormatMoney(e.TotalAmount),
		CreatorID:   e.CreatorID,
		PayerID:     e.PayerID,
		CreatedAt:   e.CreatedAt,
	}
}

func sharesToAPI(shares []models.Share) []api.Share {
	out := make([]api.Share, len(shares))
	for i, s := range shares {
		out[i] = api.Share{
			UserID:     s.UserID,
			ShareType:  string(s.ShareType),
			AmountOwed: models.FormatMoney(s.AmountOwed),
		}
		if s.ShareValue != nil {
			v := formatShareValue(*s.ShareValue)
			out[i].ShareValue = &v
		}
	}
	return out
}

// formatShareValue renders at least two fractional digits and never drops
// the extra precision of values like 33.333.
func formatShareValue(d decimal.Decimal) string {
	if d.Exponent() >= -models.MoneyPlaces {
		return models.FormatMoney(d)
	}
	return d.String()
}

func balancesToAPI(b *models.NetBalances) *api.GetNetBalancesResponse {
	details := make([]api.NetBalance, len(b.Details))
	for i, d := range b.Details {
		details[i] = api.NetBalance{
			UserID:  d.CounterpartyID,
			Name:    d.CounterpartyName,
			Balance: models.FormatMoney(d.Balance),
			Status:  d.Status,
		}
	}
	return &api.GetNetBalancesResponse{
		Summary: api.BalanceSummary{
			TotalOwedToYou: models.FormatMoney(b.Summary.TotalOwedToYou),
			TotalYouOwe:    models.FormatMoney(b.Summary.TotalYouOwe),
			NetBalance:     models.FormatMoney(b.Summary.NetBalance),
			OverallStatus:  b.Summary.OverallStatus,
		},
		Details: details,
	}
}

func pairwiseToAPI(h *models.PairwiseHistory) *api.GetPairwiseHistoryResponse {
	views := make([]api.ExpenseView, len(h.Expenses))
	for i, e := range h.Expenses {
		members := make([]api.Member, len(e.Members))
		for j, m := range e.Members {
			members[j] = api.Member{UserID: m.UserID, Name: m.Name, AmountOwed: models.FormatMoney(m.Amount)}
		}
		views[i] = api.ExpenseView{
			ExpenseID:   e.ExpenseID,
			Title:       e.Title,
			TotalAmount: models.FormatMoney(e.TotalAmount),
			PaidBy:      api.UserRef{ID: e.PaidBy.ID, Name: e.PaidBy.Name},
			Owes: api.OwedAmount{
				ID:     e.Owes.ID,
				Name:   e.Owes.Name,
				Amount: models.FormatMoney(e.Owes.Amount),
			},
			Members:   members,
			CreatedAt: e.CreatedAt,
			Status:    e.Status,
		}
	}
	return &api.GetPairwiseHistoryResponse{
		Summary: api.PairwiseSummary{
			NetBalance:    models.FormatMoney(h.Summary.NetBalance),
			OverallStatus: h.Summary.OverallStatus,
		},
		Expenses: views,
	}
}

func userToAPI(u *models.User) api.User {
	return api.User{ID: u.ID, Name: u.Name, Email: u.Email, CreatedAt: u.CreatedAt}
}
