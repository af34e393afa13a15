package subscription

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestPatternDay(t *testing.T) {
	start := date(2025, 6, 10)

	tests := []struct {
		name   string
		target time.Time
		want   int
	}{
		{"start date is day 1", start, 1},
		{"next day is day 2", date(2025, 6, 11), 2},
		{"two days later back to day 1", date(2025, 6, 12), 1},
		{"one week later", date(2025, 6, 17), 2},
		{"day before start is day 2", date(2025, 6, 9), 2},
		{"two days before start is day 1", date(2025, 6, 8), 1},
		{"far in the past", date(2025, 5, 10), 2}, // 31 days back
		{"across month boundary", date(2025, 7, 1), 2},
		{"across year boundary", date(2026, 1, 1), 2}, // 205 days ahead
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PatternDay(start, tt.target))
		})
	}
}

func TestPatternDay_IgnoresTimeOfDay(t *testing.T) {
	start := date(2025, 6, 10)
	ist := time.FixedZone("IST", 5*3600+1800)

	lateEvening := time.Date(2025, 6, 11, 23, 55, 0, 0, ist)
	assert.Equal(t, 2, PatternDay(start, lateEvening))

	earlyMorning := time.Date(2025, 6, 11, 0, 5, 0, 0, time.UTC)
	assert.Equal(t, 2, PatternDay(start, earlyMorning))
}

func TestPatternDay_AlternatesConsistently(t *testing.T) {
	start := date(2025, 1, 15)
	prev := PatternDay(start, start.AddDate(0, 0, -50))
	for i := -49; i <= 50; i++ {
		cur := PatternDay(start, start.AddDate(0, 0, i))
		assert.NotEqual(t, prev, cur, "offset %d must alternate", i)
		prev = cur
	}
}

func TestPreviewPattern(t *testing.T) {
	start := date(2025, 6, 10)
	day1 := decimal.NewFromInt(1)
	day2 := decimal.RequireFromString("0.5")

	entries := PreviewPattern(start, date(2025, 6, 10), 4, day1, day2)
	require.Len(t, entries, 4)

	assert.Equal(t, 1, entries[0].Day)
	assert.True(t, entries[0].Quantity.Equal(day1))
	assert.Equal(t, 2, entries[1].Day)
	assert.True(t, entries[1].Quantity.Equal(day2))
	assert.Equal(t, 1, entries[2].Day)
	assert.Equal(t, 2, entries[3].Day)
	assert.Equal(t, "2025-06-13", entries[3].Date.Format("2006-01-02"))
}

func TestPreviewPattern_BeforeAnchor(t *testing.T) {
	start := date(2025, 6, 10)
	entries := PreviewPattern(start, date(2025, 6, 8), 3, decimal.NewFromInt(2), decimal.NewFromInt(1))
	require.Len(t, entries, 3)

	// 2 days before anchor -> day 1, then day 2, then the anchor itself
	assert.Equal(t, 1, entries[0].Day)
	assert.Equal(t, 2, entries[1].Day)
	assert.Equal(t, 1, entries[2].Day)
}
