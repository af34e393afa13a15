// Package billing implements GST decomposition for sale amounts.
//
// Product prices in the catalog may be stored GST-inclusive or
// GST-exclusive. Reports and invoices always show the base amount and
// the tax amount separately, so every monetary total passes through
// one of the decomposition functions here.
package billing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// TaxBreakdown is the result of decomposing an amount into its taxable
// base and GST portion. Base + Tax always equals Total after rounding:
// Tax is derived as Total - Base so rounding never loses a paisa.
type TaxBreakdown struct {
	Base  decimal.Decimal `json:"base_amount"`
	Tax   decimal.Decimal `json:"tax_amount"`
	Total decimal.Decimal `json:"total_amount"`
	Rate  decimal.Decimal `json:"gst_rate"`
}

// FromInclusive decomposes a GST-inclusive amount.
// base = amount / (1 + rate/100), tax = amount - base.
func FromInclusive(amount, rate decimal.Decimal) (TaxBreakdown, error) {
	if err := validateRate(rate); err != nil {
		return TaxBreakdown{}, err
	}
	divisor := decimal.NewFromInt(1).Add(rate.Div(hundred))
	base := amount.Div(divisor).Round(2)
	total := amount.Round(2)
	return TaxBreakdown{
		Base:  base,
		Tax:   total.Sub(base),
		Total: total,
		Rate:  rate,
	}, nil
}

// FromExclusive computes GST on top of a base amount.
// total = base * (1 + rate/100), tax = total - base.
func FromExclusive(base, rate decimal.Decimal) (TaxBreakdown, error) {
	if err := validateRate(rate); err != nil {
		return TaxBreakdown{}, err
	}
	b := base.Round(2)
	total := base.Mul(decimal.NewFromInt(1).Add(rate.Div(hundred))).Round(2)
	return TaxBreakdown{
		Base:  b,
		Tax:   total.Sub(b),
		Total: total,
		Rate:  rate,
	}, nil
}

// Decompose picks the right decomposition based on whether the amount
// already includes GST.
func Decompose(amount, rate decimal.Decimal, inclusive bool) (TaxBreakdown, error) {
	if inclusive {
		return FromInclusive(amount, rate)
	}
	return FromExclusive(amount, rate)
}

func validateRate(rate decimal.Decimal) error {
	if rate.IsNegative() {
		return fmt.Errorf("gst rate cannot be negative: %s", rate)
	}
	if rate.GreaterThan(hundred) {
		return fmt.Errorf("gst rate cannot exceed 100: %s", rate)
	}
	return nil
}
