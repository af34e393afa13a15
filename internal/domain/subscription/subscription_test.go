package subscription

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDailySubscription(t *testing.T) {
	t.Run("creates successfully", func(t *testing.T) {
		sub, err := NewDailySubscription(uuid.New(), uuid.New(), decimal.NewFromInt(1))

		require.NoError(t, err)
		assert.Equal(t, TypeDaily, sub.Type)
		assert.Equal(t, StatusActive, sub.Status)
		assert.Nil(t, sub.PatternStartDate)
		assert.Len(t, sub.GetDomainEvents(), 1)
	})

	t.Run("fails with nil customer", func(t *testing.T) {
		_, err := NewDailySubscription(uuid.Nil, uuid.New(), decimal.NewFromInt(1))
		assert.Error(t, err)
	})

	t.Run("fails with zero quantity", func(t *testing.T) {
		_, err := NewDailySubscription(uuid.New(), uuid.New(), decimal.Zero)
		assert.Error(t, err)
	})
}

func TestNewPatternSubscription(t *testing.T) {
	start := date(2025, 6, 10)

	t.Run("creates successfully", func(t *testing.T) {
		sub, err := NewPatternSubscription(uuid.New(), uuid.New(), decimal.NewFromInt(1), decimal.RequireFromString("0.5"), start)

		require.NoError(t, err)
		assert.Equal(t, TypePattern, sub.Type)
		require.NotNil(t, sub.PatternStartDate)
		assert.True(t, sub.PatternStartDate.Equal(start))
	})

	t.Run("one zero day allowed", func(t *testing.T) {
		sub, err := NewPatternSubscription(uuid.New(), uuid.New(), decimal.NewFromInt(1), decimal.Zero, start)
		require.NoError(t, err)
		assert.True(t, sub.QuantityFor(start.AddDate(0, 0, 1)).IsZero())
	})

	t.Run("both days zero rejected", func(t *testing.T) {
		_, err := NewPatternSubscription(uuid.New(), uuid.New(), decimal.Zero, decimal.Zero, start)
		assert.Error(t, err)
	})

	t.Run("missing start date rejected", func(t *testing.T) {
		_, err := NewPatternSubscription(uuid.New(), uuid.New(), decimal.NewFromInt(1), decimal.NewFromInt(1), time.Time{})
		assert.Error(t, err)
	})
}

func TestSubscription_QuantityFor(t *testing.T) {
	start := date(2025, 6, 10)

	t.Run("daily returns fixed quantity", func(t *testing.T) {
		sub, err := NewDailySubscription(uuid.New(), uuid.New(), decimal.NewFromInt(2))
		require.NoError(t, err)
		assert.True(t, sub.QuantityFor(date(2025, 6, 10)).Equal(decimal.NewFromInt(2)))
		assert.True(t, sub.QuantityFor(date(2026, 1, 1)).Equal(decimal.NewFromInt(2)))
	})

	t.Run("pattern alternates", func(t *testing.T) {
		sub, err := NewPatternSubscription(uuid.New(), uuid.New(), decimal.NewFromInt(1), decimal.RequireFromString("0.5"), start)
		require.NoError(t, err)
		assert.Equal(t, "1", sub.QuantityFor(start).String())
		assert.Equal(t, "0.5", sub.QuantityFor(start.AddDate(0, 0, 1)).String())
		assert.Equal(t, "1", sub.QuantityFor(start.AddDate(0, 0, 2)).String())
	})

	t.Run("inactive delivers nothing", func(t *testing.T) {
		sub, err := NewDailySubscription(uuid.New(), uuid.New(), decimal.NewFromInt(1))
		require.NoError(t, err)
		require.NoError(t, sub.Deactivate())
		assert.True(t, sub.QuantityFor(date(2025, 6, 10)).IsZero())
	})
}

func TestSubscription_Updates(t *testing.T) {
	start := date(2025, 6, 10)

	t.Run("daily quantity update", func(t *testing.T) {
		sub, err := NewDailySubscription(uuid.New(), uuid.New(), decimal.NewFromInt(1))
		require.NoError(t, err)

		require.NoError(t, sub.UpdateDailyQuantity(decimal.NewFromInt(3)))
		assert.Equal(t, "3", sub.DailyQuantity.String())

		assert.Error(t, sub.UpdatePattern(decimal.NewFromInt(1), decimal.NewFromInt(1), start))
	})

	t.Run("pattern update re-anchors", func(t *testing.T) {
		sub, err := NewPatternSubscription(uuid.New(), uuid.New(), decimal.NewFromInt(1), decimal.NewFromInt(2), start)
		require.NoError(t, err)

		newStart := date(2025, 7, 1)
		require.NoError(t, sub.UpdatePattern(decimal.NewFromInt(2), decimal.NewFromInt(1), newStart))
		assert.Equal(t, "2", sub.QuantityFor(newStart).String())

		assert.Error(t, sub.UpdateDailyQuantity(decimal.NewFromInt(1)))
	})
}

func TestSubscription_StatusTransitions(t *testing.T) {
	sub, err := NewDailySubscription(uuid.New(), uuid.New(), decimal.NewFromInt(1))
	require.NoError(t, err)

	assert.Error(t, sub.Activate())

	require.NoError(t, sub.Deactivate())
	assert.False(t, sub.IsActive())
	assert.Error(t, sub.Deactivate())

	require.NoError(t, sub.Activate())
	assert.True(t, sub.IsActive())
}
