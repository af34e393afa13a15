package format

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrency(t *testing.T) {
	tests := []struct {
		name   string
		amount decimal.Decimal
		want   string
	}{
		{"zero", decimal.Zero, "₹0.00"},
		{"small", decimal.NewFromFloat(75), "₹75.00"},
		{"thousands", decimal.NewFromFloat(1250.5), "₹1,250.50"},
		{"lakh grouping", decimal.NewFromFloat(125000.5), "₹1,25,000.50"},
		{"crore grouping", decimal.NewFromFloat(12500000), "₹1,25,00,000.00"},
		{"rounds to paise", decimal.NewFromFloat(10.456), "₹10.46"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Currency(tt.amount))
		})
	}
}

func TestParseDate_RoundTrip(t *testing.T) {
	for _, s := range []string{"2025-01-01", "2025-06-30", "2024-02-29", "2025-12-31"} {
		parsed, err := ParseDate(s)
		require.NoError(t, err)
		assert.Equal(t, s, Date(parsed))
	}
}

func TestParseDate_Invalid(t *testing.T) {
	for _, s := range []string{"", "2025-13-01", "2025-02-30", "01/06/2025", "2025-6-1"} {
		_, err := ParseDate(s)
		assert.Error(t, err, "input %q", s)
	}
}

func TestDateOnly(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	late := time.Date(2025, 6, 15, 23, 45, 0, 0, ist)
	day := DateOnly(late)
	assert.Equal(t, "2025-06-15", Date(day))
	assert.Equal(t, time.UTC, day.Location())
}

func TestMonthKey(t *testing.T) {
	assert.Equal(t, "202506", MonthKey(time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "202501", MonthKey(time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)))
}
