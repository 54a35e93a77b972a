package calculator

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rai-ahmadfraz/split-it-api/internal/models"
)

func TestMergeBalances(t *testing.T) {
	credits := []models.CounterpartyTotal{
		{UserID: "bob", Name: "Bob", Total: dec("33.33")},
		{UserID: "carol", Name: "Carol", Total: dec("33.33")},
	}
	debits := []models.CounterpartyTotal{
		{UserID: "bob", Name: "Bob", Total: dec("20")},
		{UserID: "dave", Name: "Dave", Total: dec("5.50")},
	}

	got := MergeBalances(credits, debits)

	require.Len(t, got.Details, 3)
	assert.Equal(t, "bob", got.Details[0].CounterpartyID)
	assert.Equal(t, "13.33", models.FormatMoney(got.Details[0].Balance))
	assert.Equal(t, models.StatusOwesYou, got.Details[0].Status)

	assert.Equal(t, "carol", got.Details[1].CounterpartyID)
	assert.Equal(t, "33.33", models.FormatMoney(got.Details[1].Balance))

	assert.Equal(t, "dave", got.Details[2].CounterpartyID)
	assert.Equal(t, "Dave", got.Details[2].CounterpartyName)
	assert.Equal(t, "-5.50", models.FormatMoney(got.Details[2].Balance))
	assert.Equal(t, models.StatusYouOwe, got.Details[2].Status)

	assert.Equal(t, "66.66", models.FormatMoney(got.Summary.TotalOwedToYou))
	assert.Equal(t, "25.50", models.FormatMoney(got.Summary.TotalYouOwe))
	assert.Equal(t, "41.16", models.FormatMoney(got.Summary.NetBalance))
	assert.Equal(t, "You are owed 41.16", got.Summary.OverallStatus)
}

func TestMergeBalances_Settled(t *testing.T) {
	got := MergeBalances(
		[]models.CounterpartyTotal{{UserID: "bob", Name: "Bob", Total: dec("10")}},
		[]models.CounterpartyTotal{{UserID: "bob", Name: "Bob", Total: dec("10")}},
	)
	require.Len(t, got.Details, 1)
	assert.Equal(t, models.StatusSettled, got.Details[0].Status)
	assert.True(t, got.Summary.NetBalance.IsZero())
	assert.Equal(t, AllSettled, got.Summary.OverallStatus)
	assert.Equal(t, "10.00", models.FormatMoney(got.Summary.TotalOwedToYou))
	assert.Equal(t, "10.00", models.FormatMoney(got.Summary.TotalYouOwe))
}

func TestMergeBalances_NoHistory(t *testing.T) {
	got := MergeBalances(nil, nil)
	assert.Empty(t, got.Details)
	assert.NotNil(t, got.Details)
	assert.True(t, got.Summary.TotalOwedToYou.IsZero())
	assert.True(t, got.Summary.TotalYouOwe.IsZero())
	assert.True(t, got.Summary.NetBalance.IsZero())
	assert.Equal(t, "All settled!", got.Summary.OverallStatus)
}

func TestOverallStatus(t *testing.T) {
	tests := []struct {
		net     decimal.Decimal
		settled string
		want    string
	}{
		{dec("12.5"), AllSettled, "You are owed 12.50"},
		{dec("-7.125"), AllSettled, "You owe 7.13"},
		{decimal.Zero, AllSettled, "All settled!"},
		{decimal.Zero, PairSettled, "Settled"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, OverallStatus(tt.net, tt.settled))
		})
	}
}
