package ledger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rai-ahmadfraz/split-it-api/internal/models"
)

func TestPairwiseHistory_SelfReference(t *testing.T) {
	store := newFakeStore()
	l := newTestLedger(store)

	_, err := l.PairwiseHistory(context.Background(), "alice", "alice")
	assert.ErrorIs(t, err, ErrSelfReference)
	assert.Empty(t, store.calls)
}

func TestPairwiseHistory_NoSharedExpenses(t *testing.T) {
	store := newFakeStore()
	l := newTestLedger(store)

	history, err := l.PairwiseHistory(context.Background(), "alice", "bob")
	require.NoError(t, err)

	assert.True(t, history.Summary.NetBalance.IsZero())
	assert.Equal(t, "No shared expenses", history.Summary.OverallStatus)
	assert.NotNil(t, history.Expenses)
	assert.Empty(t, history.Expenses)
	assert.Equal(t, []string{"QuerySharedExpenses"}, store.calls)
}

func TestPairwiseHistory(t *testing.T) {
	store := newFakeStore()
	store.shared = []models.SharedExpenseRow{
		{ExpenseID: "e2", Title: "Taxi", TotalAmount: dec("30"), PayerID: "bob", PayerName: "Bob",
			MemberID: "alice", MemberName: "Alice", AmountOwed: dec("15"), CreatedAt: 2000},
		{ExpenseID: "e1", Title: "Dinner", TotalAmount: dec("90"), PayerID: "alice", PayerName: "Alice",
			MemberID: "bob", MemberName: "Bob", AmountOwed: dec("30"), CreatedAt: 1000},
	}
	store.members = []models.MemberRow{
		{ExpenseID: "e1", UserID: "alice", Name: "Alice", Amount: dec("30")},
		{ExpenseID: "e1", UserID: "bob", Name: "Bob", Amount: dec("30")},
		{ExpenseID: "e1", UserID: "carol", Name: "Carol", Amount: dec("30")},
		{ExpenseID: "e2", UserID: "alice", Name: "Alice", Amount: dec("15")},
		{ExpenseID: "e2", UserID: "bob", Name: "Bob", Amount: dec("15")},
	}
	l := newTestLedger(store)

	history, err := l.PairwiseHistory(context.Background(), "alice", "bob")
	require.NoError(t, err)

	assert.Equal(t, []string{"e2", "e1"}, store.memberArgs)
	assert.Equal(t, "15.00", models.FormatMoney(history.Summary.NetBalance))
	assert.Equal(t, "You are owed 15.00", history.Summary.OverallStatus)

	require.Len(t, history.Expenses, 2)
	taxi := history.Expenses[0]
	assert.Equal(t, "Taxi", taxi.Title)
	assert.Equal(t, models.StatusYouOwe, taxi.Status)
	assert.Equal(t, "bob", taxi.PaidBy.ID)
	assert.Equal(t, "alice", taxi.Owes.ID)
	assert.Len(t, taxi.Members, 2)

	dinner := history.Expenses[1]
	assert.Equal(t, models.StatusOwesYou, dinner.Status)
	assert.Len(t, dinner.Members, 3)
}
