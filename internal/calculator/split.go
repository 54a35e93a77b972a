package calculator

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rai-ahmadfraz/split-it-api/internal/models"
)

var (
	ErrUnsupportedShareType = errors.New("unsupported share type")
	ErrNegativeShareValue   = errors.New("share value cannot be negative")
)

var hundred = decimal.NewFromInt(100)

// Allocate computes how much each participant owes on an expense of the given total.
//
//   - equal:      total / len(participants), counting every participant in the call
//   - percentage: total × share_value / 100
//   - fixed:      share_value, independent of total
//
// A missing share value counts as zero. Each amount is rounded half-up to two
// decimals on its own, so equal splits that don't divide evenly (100 / 3) may not
// sum back to the total; see AllocateBalanced. Shares are not checked against the
// total. An owed amount beyond models.MaxAmount is rejected with
// models.ErrAmountOutOfRange. Output order matches input order.
func Allocate(total decimal.Decimal, participants []models.ParticipantShare) ([]models.Allocation, error) {
	allocations := make([]models.Allocation, 0, len(participants))
	if len(participants) == 0 {
		return allocations, nil
	}

	count := decimal.NewFromInt(int64(len(participants)))

	for _, p := range participants {
		value := decimal.Zero
		if p.ShareValue != nil {
			value = *p.ShareValue
		}
		if value.IsNegative() {
			return nil, fmt.Errorf("%w: participant %s", ErrNegativeShareValue, p.UserID)
		}

		var owed decimal.Decimal
		switch p.ShareType {
		case models.ShareEqual:
			owed = total.DivRound(count, models.MoneyPlaces)
		case models.SharePercentage:
			owed = total.Mul(value).DivRound(hundred, models.MoneyPlaces)
		case models.ShareFixed:
			owed = models.RoundMoney(value)
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnsupportedShareType, p.ShareType)
		}
		if err := models.CheckAmount(owed); err != nil {
			return nil, fmt.Errorf("participant %s: %w", p.UserID, err)
		}

		allocations = append(allocations, models.Allocation{UserID: p.UserID, AmountOwed: owed})
	}

	return allocations, nil
}

// AllocateBalanced behaves like Allocate but makes the equal shares add up to
// exactly their combined portion of the total (total × equal_count / count).
// Every equal participant gets the floor of total / count in cents; the leftover
// cents go one each to the first equal participants in input order.
// Percentage and fixed shares are untouched.
func AllocateBalanced(total decimal.Decimal, participants []models.ParticipantShare) ([]models.Allocation, error) {
	allocations, err := Allocate(total, participants)
	if err != nil {
		return nil, err
	}
	if total.IsNegative() {
		return allocations, nil
	}

	var equalIdx []int
	for i, p := range participants {
		if p.ShareType == models.ShareEqual {
			equalIdx = append(equalIdx, i)
		}
	}
	if len(equalIdx) == 0 {
		return allocations, nil
	}

	n := int64(len(participants))
	k := int64(len(equalIdx))
	totalCents, err := models.ToCents(total)
	if err != nil {
		return nil, err
	}
	base := totalCents / n
	portion, err := models.ToCents(models.FromCents(totalCents).Mul(decimal.NewFromInt(k)).DivRound(decimal.NewFromInt(n), models.MoneyPlaces))
	if err != nil {
		return nil, err
	}
	leftover := portion - base*k

	for i, idx := range equalIdx {
		cents := base
		if int64(i) < leftover {
			cents++
		}
		allocations[idx].AmountOwed = models.FromCents(cents)
	}

	return allocations, nil
}
