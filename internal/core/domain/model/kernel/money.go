package kernel

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// ErrMoneyIsNegative indicates an attempt to construct a negative monetary amount.
var ErrMoneyIsNegative = errs.NewValueIsInvalidError("money amount must not be negative")

// Money is a value object representing a non-negative monetary amount.
// Amounts are stored in minor units (cents) to avoid floating point drift
// in totals and aggregations.
//
// The zero value is a valid amount of zero; no constructor guard is needed
// because every representable state is a legal amount.
//
// Example usage:
//
//	total, err := kernel.NewMoneyFromCents(12999) // 129.99
//	if err != nil {
//	    // handle error
//	}
type Money struct {
	cents int64
}

// NewMoneyFromCents creates a Money amount from minor units.
// Returns ErrMoneyIsNegative for negative input.
func NewMoneyFromCents(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, ErrMoneyIsNegative
	}
	return Money{cents: cents}, nil
}

// Cents returns the amount in minor units.
func (m Money) Cents() int64 {
	return m.cents
}

// String formats the amount as a decimal with two fraction digits, e.g. "129.99".
func (m Money) String() string {
	return fmt.Sprintf("%d.%02d", m.cents/100, m.cents%100)
}

// IsEqual compares two amounts.
func (m Money) IsEqual(other Money) bool {
	return m.cents == other.cents
}
