package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rai-ahmadfraz/split-it-api/internal/metrics"
	"github.com/rai-ahmadfraz/split-it-api/internal/models"
	"github.com/rai-ahmadfraz/split-it-api/internal/storage"
)

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func val(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func equal(ids ...string) []models.ParticipantShare {
	out := make([]models.ParticipantShare, len(ids))
	for i, id := range ids {
		out[i] = models.ParticipantShare{UserID: id, ShareType: models.ShareEqual}
	}
	return out
}

func owed(shares []models.Share) map[string]string {
	out := make(map[string]string, len(shares))
	for _, s := range shares {
		out[s.UserID] = models.FormatMoney(s.AmountOwed)
	}
	return out
}

func newTestLedger(store Store, opts ...Option) *Ledger {
	opts = append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)
	return New(store, opts...)
}

func TestCreateExpense_EqualSplit(t *testing.T) {
	store := newFakeStore("alice", "bob", "carol")
	l := newTestLedger(store)

	result, err := l.CreateExpense(context.Background(), CreateExpenseInput{
		Name:         "Dinner",
		TotalAmount:  dec("90"),
		CreatorID:    "alice",
		PayerID:      "alice",
		Participants: equal("alice", "bob", "carol"),
	})
	require.NoError(t, err)

	assert.NotEmpty(t, result.Expense.ID)
	assert.Equal(t, "Dinner", result.Expense.Name)
	assert.Equal(t, fixedNow.UnixMilli(), result.Expense.CreatedAt)
	assert.Equal(t, map[string]string{"alice": "30.00", "bob": "30.00", "carol": "30.00"}, owed(result.Shares))
	for _, s := range result.Shares {
		assert.Equal(t, result.Expense.ID, s.ExpenseID)
	}

	require.Len(t, store.expenses, 1)
	assert.Len(t, store.shares, 3)
}

func TestCreateExpense_MixedShareTypes(t *testing.T) {
	store := newFakeStore("alice", "bob", "carol")
	l := newTestLedger(store)

	result, err := l.CreateExpense(context.Background(), CreateExpenseInput{
		Name:        "Trip",
		TotalAmount: dec("200"),
		CreatorID:   "alice",
		PayerID:     "bob",
		Participants: []models.ParticipantShare{
			{UserID: "alice", ShareType: models.SharePercentage, ShareValue: val("50")},
			{UserID: "bob", ShareType: models.ShareFixed, ShareValue: val("15")},
			{UserID: "carol", ShareType: models.SharePercentage},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"alice": "100.00", "bob": "15.00", "carol": "0.00"}, owed(result.Shares))
	assert.Nil(t, result.Shares[2].ShareValue)
}

func TestCreateExpense_NoParticipants(t *testing.T) {
	store := newFakeStore("alice")
	l := newTestLedger(store)

	result, err := l.CreateExpense(context.Background(), CreateExpenseInput{
		Name: "Solo", TotalAmount: dec("12.50"), CreatorID: "alice", PayerID: "alice",
	})
	require.NoError(t, err)
	assert.NotNil(t, result.Shares)
	assert.Empty(t, result.Shares)
	assert.Len(t, store.expenses, 1)
}

func TestCreateExpense_RoundsTotal(t *testing.T) {
	store := newFakeStore("alice")
	l := newTestLedger(store)

	result, err := l.CreateExpense(context.Background(), CreateExpenseInput{
		Name: "Coffee", TotalAmount: dec("4.005"), CreatorID: "alice", PayerID: "alice",
	})
	require.NoError(t, err)
	assert.Equal(t, "4.01", models.FormatMoney(result.Expense.TotalAmount))
}

func TestCreateExpense_NonDivisibleEqualSplit(t *testing.T) {
	input := CreateExpenseInput{
		Name: "Taxi", TotalAmount: dec("100"), CreatorID: "alice", PayerID: "alice",
		Participants: equal("alice", "bob", "carol"),
	}

	t.Run("per share rounding", func(t *testing.T) {
		l := newTestLedger(newFakeStore("alice", "bob", "carol"))
		result, err := l.CreateExpense(context.Background(), input)
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"alice": "33.33", "bob": "33.33", "carol": "33.33"}, owed(result.Shares))
	})

	t.Run("balanced", func(t *testing.T) {
		l := newTestLedger(newFakeStore("alice", "bob", "carol"), WithBalancedEqualSplit(true))
		result, err := l.CreateExpense(context.Background(), input)
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"alice": "33.34", "bob": "33.33", "carol": "33.33"}, owed(result.Shares))
	})
}

func TestCreateExpense_DuplicateName(t *testing.T) {
	store := newFakeStore("alice", "bob")
	l := newTestLedger(store)
	ctx := context.Background()

	input := CreateExpenseInput{
		Name: "Dinner", TotalAmount: dec("50"), CreatorID: "alice", PayerID: "alice",
		Participants: equal("alice", "bob"),
	}
	_, err := l.CreateExpense(ctx, input)
	require.NoError(t, err)

	_, err = l.CreateExpense(ctx, input)
	assert.ErrorIs(t, err, ErrDuplicateName)
	assert.Len(t, store.expenses, 1)
	assert.Len(t, store.shares, 2)

	// Same name, different creator.
	input.CreatorID = "bob"
	_, err = l.CreateExpense(ctx, input)
	assert.NoError(t, err)
}

// racyStore hides committed expenses from the pre-check, as a concurrent
// request would see them.
type racyStore struct {
	*fakeStore
}

func (racyStore) FindExpenseByNameAndCreator(ctx context.Context, name, creatorID string) (*models.Expense, error) {
	return nil, nil
}

func TestCreateExpense_DuplicateNameCaughtByStore(t *testing.T) {
	store := newFakeStore("alice", "bob")
	l := newTestLedger(racyStore{store})
	ctx := context.Background()

	input := CreateExpenseInput{
		Name: "Dinner", TotalAmount: dec("50"), CreatorID: "alice", PayerID: "alice",
		Participants: equal("alice", "bob"),
	}
	_, err := l.CreateExpense(ctx, input)
	require.NoError(t, err)

	_, err = l.CreateExpense(ctx, input)
	assert.ErrorIs(t, err, ErrDuplicateName)
	assert.Len(t, store.expenses, 1)
	assert.Len(t, store.shares, 2)
}

func TestCreateExpense_ReferentialErrors(t *testing.T) {
	tests := []struct {
		name    string
		payer   string
		members []string
		wantErr error
	}{
		{name: "unknown participant", payer: "alice", members: []string{"alice", "ghost"}, wantErr: ErrUnknownParticipant},
		{name: "unknown payer", payer: "ghost", members: []string{"alice"}, wantErr: ErrUnknownPayer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore("alice", "bob")
			cache := newFakeCache()
			pub := &fakePublisher{}
			l := newTestLedger(store, WithCache(cache), WithPublisher(pub))

			_, err := l.CreateExpense(context.Background(), CreateExpenseInput{
				Name: "Lunch", TotalAmount: dec("40"), CreatorID: "alice", PayerID: tt.payer,
				Participants: equal(tt.members...),
			})
			assert.ErrorIs(t, err, tt.wantErr)

			// Nothing committed, nothing announced.
			assert.Empty(t, store.expenses)
			assert.Empty(t, store.shares)
			assert.Empty(t, cache.invalidated)
			assert.Empty(t, pub.published)
		})
	}
}

func TestCreateExpense_Validation(t *testing.T) {
	tests := []struct {
		name    string
		input   CreateExpenseInput
		wantErr error
	}{
		{
			name:    "empty name",
			input:   CreateExpenseInput{Name: "  ", TotalAmount: dec("10"), CreatorID: "alice", PayerID: "alice"},
			wantErr: ErrInvalidExpense,
		},
		{
			name:    "negative total",
			input:   CreateExpenseInput{Name: "Refund", TotalAmount: dec("-10"), CreatorID: "alice", PayerID: "alice"},
			wantErr: ErrInvalidExpense,
		},
		{
			name:    "total beyond max amount",
			input:   CreateExpenseInput{Name: "Yacht", TotalAmount: dec("100000000000000000"), CreatorID: "alice", PayerID: "alice"},
			wantErr: ErrInvalidExpense,
		},
		{
			name: "fixed share beyond max amount",
			input: CreateExpenseInput{
				Name: "Lunch", TotalAmount: dec("10"), CreatorID: "alice", PayerID: "alice",
				Participants: []models.ParticipantShare{{UserID: "bob", ShareType: models.ShareFixed, ShareValue: val("100000000000000000")}},
			},
			wantErr: ErrInvalidShare,
		},
		{
			name:    "missing payer",
			input:   CreateExpenseInput{Name: "Lunch", TotalAmount: dec("10"), CreatorID: "alice"},
			wantErr: ErrInvalidExpense,
		},
		{
			name: "negative share value",
			input: CreateExpenseInput{
				Name: "Lunch", TotalAmount: dec("10"), CreatorID: "alice", PayerID: "alice",
				Participants: []models.ParticipantShare{{UserID: "bob", ShareType: models.ShareFixed, ShareValue: val("-1")}},
			},
			wantErr: ErrInvalidShare,
		},
		{
			name: "unsupported share type",
			input: CreateExpenseInput{
				Name: "Lunch", TotalAmount: dec("10"), CreatorID: "alice", PayerID: "alice",
				Participants: []models.ParticipantShare{{UserID: "bob", ShareType: "weighted"}},
			},
			wantErr: ErrInvalidShare,
		},
		{
			name: "participant listed twice",
			input: CreateExpenseInput{
				Name: "Lunch", TotalAmount: dec("10"), CreatorID: "alice", PayerID: "alice",
				Participants: equal("bob", "bob"),
			},
			wantErr: ErrInvalidShare,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore("alice", "bob")
			l := newTestLedger(store)

			_, err := l.CreateExpense(context.Background(), tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.NotContains(t, store.calls, "RunInTx")
			assert.Empty(t, store.expenses)
		})
	}
}

func TestCreateExpense_SideChannels(t *testing.T) {
	store := newFakeStore("alice", "bob", "carol")
	cache := newFakeCache()
	cache.entries["bob"] = &models.NetBalances{}
	pub := &fakePublisher{}
	m := metrics.New(prometheus.NewRegistry())
	l := newTestLedger(store, WithCache(cache), WithPublisher(pub), WithMetrics(m))

	result, err := l.CreateExpense(context.Background(), CreateExpenseInput{
		Name: "Groceries", TotalAmount: dec("60"), CreatorID: "alice", PayerID: "carol",
		Participants: []models.ParticipantShare{
			{UserID: "alice", ShareType: models.ShareEqual},
			{UserID: "bob", ShareType: models.ShareFixed, ShareValue: val("10")},
			{UserID: "carol", ShareType: models.ShareEqual},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"carol", "alice", "bob"}, cache.invalidated)
	assert.NotContains(t, cache.entries, "bob")

	require.Len(t, pub.published, 1)
	event := pub.published[0]
	assert.Equal(t, result.Expense.ID, event.ExpenseID)
	assert.Equal(t, "Groceries", event.Name)
	assert.Equal(t, "60.00", event.TotalAmount)
	assert.Equal(t, "carol", event.PayerID)
	assert.Equal(t, []string{"alice", "bob", "carol"}, event.ParticipantIDs)
	assert.True(t, fixedNow.Equal(event.CreatedAt))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.ExpensesCreated))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.SharesAllocated.WithLabelValues("equal")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SharesAllocated.WithLabelValues("fixed")))
}

func TestCreateExpense_SideChannelFailuresAreIgnored(t *testing.T) {
	store := newFakeStore("alice", "bob")
	cache := newFakeCache()
	cache.err = errors.New("redis down")
	pub := &fakePublisher{err: errors.New("broker down")}
	l := newTestLedger(store, WithCache(cache), WithPublisher(pub))

	result, err := l.CreateExpense(context.Background(), CreateExpenseInput{
		Name: "Lunch", TotalAmount: dec("20"), CreatorID: "alice", PayerID: "alice",
		Participants: equal("alice", "bob"),
	})
	require.NoError(t, err)
	assert.Len(t, result.Shares, 2)
	assert.Len(t, store.expenses, 1)
}

func TestGetExpense(t *testing.T) {
	store := newFakeStore("alice", "bob")
	l := newTestLedger(store)
	ctx := context.Background()

	created, err := l.CreateExpense(ctx, CreateExpenseInput{
		Name: "Lunch", TotalAmount: dec("20"), CreatorID: "alice", PayerID: "alice",
		Participants: equal("alice", "bob"),
	})
	require.NoError(t, err)

	expense, shares, err := l.GetExpense(ctx, created.Expense.ID)
	require.NoError(t, err)
	assert.Equal(t, "Lunch", expense.Name)
	assert.Equal(t, map[string]string{"alice": "10.00", "bob": "10.00"}, owed(shares))

	_, _, err = l.GetExpense(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, storage.ErrNotFound)
}
