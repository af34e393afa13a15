package subscription

import (
	"time"

	"github.com/shopspring/decimal"
)

// PatternDay returns which day of a 2-day alternating pattern a target
// date falls on, counted from the pattern's start date. The start date
// itself is day 1, the next day is day 2, and so on, alternating.
//
// Dates before the start date extend the cycle backwards, so the day
// immediately before the start is day 2. Only the calendar dates
// matter; time-of-day and timezone are ignored.
func PatternDay(startDate, target time.Time) int {
	days := daysBetween(startDate, target)
	if ((days%2)+2)%2 == 0 {
		return 1
	}
	return 2
}

// daysBetween returns the whole calendar days from a to b, negative
// when b is before a.
func daysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	au := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	bu := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(bu.Sub(au).Hours() / 24)
}

// PatternPreviewEntry is one day of a pattern preview
type PatternPreviewEntry struct {
	Date     time.Time       `json:"date"`
	Day      int             `json:"pattern_day"`
	Quantity decimal.Decimal `json:"quantity"`
}

// PreviewPattern returns the quantities a pattern subscription would
// deliver on each of the n days starting at from.
func PreviewPattern(startDate, from time.Time, n int, day1Qty, day2Qty decimal.Decimal) []PatternPreviewEntry {
	entries := make([]PatternPreviewEntry, 0, n)
	for i := 0; i < n; i++ {
		date := from.AddDate(0, 0, i)
		day := PatternDay(startDate, date)
		qty := day1Qty
		if day == 2 {
			qty = day2Qty
		}
		entries = append(entries, PatternPreviewEntry{Date: date, Day: day, Quantity: qty})
	}
	return entries
}
