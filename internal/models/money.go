package models

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// MoneyPlaces is the number of fractional digits kept for every amount.
const MoneyPlaces = 2

// MaxAmount is the largest absolute amount the ledger accepts (10 billion).
// Its cents, and sums over many of them, stay far inside int64.
var MaxAmount = decimal.New(10_000_000_000, 0)

// ErrAmountOutOfRange is returned for amounts beyond MaxAmount.
var ErrAmountOutOfRange = errors.New("amount out of range")

// RoundMoney rounds half away from zero to two fractional digits.
// For the non-negative amounts the ledger stores this is round-half-up.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyPlaces)
}

// CheckAmount rejects amounts whose magnitude exceeds MaxAmount after rounding.
func CheckAmount(d decimal.Decimal) error {
	if RoundMoney(d).Abs().GreaterThan(MaxAmount) {
		return fmt.Errorf("%w: %s exceeds %s", ErrAmountOutOfRange, d.String(), MaxAmount.String())
	}
	return nil
}

// ToCents converts an amount to integer hundredths, rounding first.
// Amounts beyond MaxAmount return ErrAmountOutOfRange.
func ToCents(d decimal.Decimal) (int64, error) {
	if err := CheckAmount(d); err != nil {
		return 0, err
	}
	return RoundMoney(d).Shift(MoneyPlaces).IntPart(), nil
}

// FromCents converts integer hundredths back to a decimal amount.
func FromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -MoneyPlaces)
}

// FormatMoney renders an amount with exactly two fractional digits.
func FormatMoney(d decimal.Decimal) string {
	return d.StringFixed(MoneyPlaces)
}
