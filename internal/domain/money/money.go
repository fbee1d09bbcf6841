package money

import (
	"math"

	"github.com/shopspring/decimal"
)

// Cents is a monetary amount in integer minor units (USD cents). Keeping the
// unit in the type removes the ad hoc ×100 conversions between major-unit rate
// inputs and minor-unit stored amounts.
type Cents int64

// FromDollars converts a major-unit amount (e.g. a line-item rate or a fixed
// discount input) to minor units, rounding half away from zero.
func FromDollars(v float64) Cents {
	return Cents(math.Round(v * 100))
}

// Dollars returns the major-unit value, for display and external payloads.
func (c Cents) Dollars() float64 {
	return float64(c) / 100
}

// Decimal returns the amount as a major-unit decimal with two places, used
// when building external invoicing payloads.
func (c Cents) Decimal() decimal.Decimal {
	return decimal.New(int64(c), -2)
}

// String formats as a major-unit string ("97.20"), without float artifacts.
func (c Cents) String() string {
	return c.Decimal().StringFixed(2)
}

// LineAmount computes quantity × rate (rate in major units) in minor units.
// Rounded once, at the boundary.
func LineAmount(quantity, rate float64) Cents {
	return Cents(math.Round(quantity * rate * 100))
}
