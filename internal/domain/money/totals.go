package money

import "math"

// AdjustmentType selects how a discount or deposit input is interpreted:
// a percentage of the relevant base, or a fixed major-unit amount.
type AdjustmentType string

const (
	AdjustmentPercent AdjustmentType = "percent"
	AdjustmentFixed   AdjustmentType = "fixed"
)

// Line is the calculator's view of a line item.
type Line struct {
	Amount  Cents
	Taxable bool
}

// Totals holds every derived monetary field of an estimate.
type Totals struct {
	Subtotal        Cents
	DiscountAmount  Cents
	TaxableSubtotal Cents
	SalesTaxAmount  Cents
	TotalAmount     Cents
	DepositAmount   Cents
}

// ComputeTotals derives the estimate totals from line items and rate inputs.
//
// The discount is allocated pro-rata across taxable and non-taxable lines
// before tax is applied: if half the subtotal is taxable, the taxable base is
// reduced by half the discount, not all of it. This is a deliberate business
// rule affecting tax liability; do not collapse it into a simpler scheme.
//
// Intermediates are float64 and each output is rounded exactly once, so the
// invariant TotalAmount = Subtotal - DiscountAmount + SalesTaxAmount holds in
// integer cents. Negative quantities and rates are not rejected here; the
// calculator has no validation layer below it.
func ComputeTotals(
	lines []Line,
	discountType AdjustmentType, discountValue float64,
	salesTaxRate float64,
	depositType AdjustmentType, depositValue float64,
) Totals {
	var subtotal, taxableRaw Cents
	for _, l := range lines {
		subtotal += l.Amount
		if l.Taxable {
			taxableRaw += l.Amount
		}
	}

	var discount Cents
	if discountType == AdjustmentPercent {
		discount = Cents(math.Round(float64(subtotal) * discountValue / 100))
	} else {
		discount = FromDollars(discountValue)
	}

	// Share of the discount attributed to taxable lines.
	proportion := 0.0
	if subtotal > 0 {
		proportion = float64(taxableRaw) / float64(subtotal)
	}
	taxable := Cents(math.Round(float64(taxableRaw) - proportion*float64(discount)))
	if taxable < 0 {
		taxable = 0
	}

	tax := Cents(math.Round(float64(taxable) * salesTaxRate / 100))
	total := subtotal - discount + tax

	var deposit Cents
	if depositType == AdjustmentPercent {
		deposit = Cents(math.Round(float64(total) * depositValue / 100))
	} else {
		deposit = FromDollars(depositValue)
	}

	return Totals{
		Subtotal:        subtotal,
		DiscountAmount:  discount,
		TaxableSubtotal: taxable,
		SalesTaxAmount:  tax,
		TotalAmount:     total,
		DepositAmount:   deposit,
	}
}
