// Package format provides display formatting helpers for currency amounts
// and business dates. Dates are always exchanged as plain calendar days
// (YYYY-MM-DD) so that a date survives a round trip regardless of the
// server's timezone.
package format

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DateLayout is the wire format for business dates.
const DateLayout = "2006-01-02"

var inrPrinter = message.NewPrinter(language.MustParse("en-IN"))

// Currency formats an amount as an Indian Rupee display string with
// lakh/crore digit grouping, e.g. 125000.5 -> "₹1,25,000.50".
func Currency(amount decimal.Decimal) string {
	f, _ := amount.Round(2).Float64()
	return inrPrinter.Sprintf("₹%v", number.Decimal(f,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2),
	))
}

// Date formats a time as a plain calendar date in its own location.
func Date(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a YYYY-MM-DD string into a midnight UTC time.
// Using a fixed location keeps Date(ParseDate(s)) == s on any host.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD: %w", s, err)
	}
	return t, nil
}

// DateOnly truncates a time to its calendar day, preserving UTC.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// MonthKey formats a time as YYYYMM, used in invoice number sequences.
func MonthKey(t time.Time) string {
	return t.Format("200601")
}
