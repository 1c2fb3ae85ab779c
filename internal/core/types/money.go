// Package types provides common type aliases and utilities.
package types

import (
	"math"

	"github.com/shopspring/decimal"
)

// Money represents a monetary value with full precision.
// Uses decimal.Decimal to avoid floating-point errors.
// Catalog prices are Money; document amounts are stored as MinorUnits.
type Money = decimal.Decimal

// NewMoney creates a Money value from a float.
// WARNING: Use NewMoneyFromString for precise values.
func NewMoney(f float64) Money {
	return decimal.NewFromFloat(f)
}

// NewMoneyFromString creates a Money value from a string.
// This is the preferred method for monetary values.
func NewMoneyFromString(s string) (Money, error) {
	return decimal.NewFromString(s)
}

// MustMoney creates a Money value from a string, panics on error.
// Use only for constants.
func MustMoney(s string) Money {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Zero returns zero Money value.
func Zero() Money {
	return decimal.Zero
}

// MinorUnits represents a monetary value in minor currency units (cents, dong).
// Storage: int64 - sufficient for ±922 trillion minor units.
// Order totals, costs, discounts and shipping fees are kept in MinorUnits so
// revenue sums never accumulate floating-point drift.
type MinorUnits = int64

// MinorUnitsFromMoney converts a Money price to minor units with the given
// number of decimal places (0 for VND-style currencies, 2 for USD-style).
func MinorUnitsFromMoney(m Money, decimalPlaces int) MinorUnits {
	f, _ := m.Float64()
	return MinorUnits(math.Round(f * math.Pow10(decimalPlaces)))
}

// Quantity is a fixed-point quantity with 4 decimal places (scale = 1e4).
// Matches Postgres NUMERIC(15,4) semantics without floating point errors and
// stores as BIGINT (scaled integer).
type Quantity int64

// QuantityScale is the fixed-point scale factor.
const QuantityScale int64 = 10_000

// NewQuantityFromFloat64 converts a float to fixed-point Quantity.
func NewQuantityFromFloat64(v float64) Quantity {
	return Quantity(math.Round(v * float64(QuantityScale)))
}

// Float64 converts back to a float for display and reporting.
func (q Quantity) Float64() float64 { return float64(q) / float64(QuantityScale) }

// Int64Scaled returns the raw scaled integer for storage.
func (q Quantity) Int64Scaled() int64 { return int64(q) }

func (q Quantity) IsZero() bool     { return q == 0 }
func (q Quantity) IsPositive() bool { return q > 0 }
func (q Quantity) IsNegative() bool { return q < 0 }
func (q Quantity) Neg() Quantity    { return -q }

func (q Quantity) Abs() Quantity {
	if q < 0 {
		return -q
	}
	return q
}
