package bulk

import (
	"testing"
	"time"

	"github.com/dishankgupta/milk-subs-sub005/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestSummarizeSaleRows(t *testing.T) {
	walkIn := uuid.New()
	account := uuid.New()
	rows := []SaleRow{
		{
			CustomerID:   &walkIn,
			ProductID:    uuid.New(),
			Type:         trade.SaleTypeCash,
			Quantity:     decimal.NewFromInt(2),
			UnitPrice:    decimal.NewFromInt(75),
			GSTRate:      decimal.Zero,
			GSTInclusive: true,
			SaleDate:     date(2025, 6, 14),
		},
		{
			CustomerID:   &account,
			ProductID:    uuid.New(),
			Type:         trade.SaleTypeCredit,
			Quantity:     decimal.NewFromInt(1),
			UnitPrice:    decimal.NewFromInt(118),
			GSTRate:      decimal.NewFromInt(18),
			GSTInclusive: true,
			SaleDate:     date(2025, 6, 16),
		},
		{
			CustomerID:   &walkIn,
			ProductID:    uuid.New(),
			Type:         trade.SaleTypeCash,
			Quantity:     decimal.NewFromInt(1),
			UnitPrice:    decimal.NewFromInt(50),
			GSTRate:      decimal.Zero,
			GSTInclusive: true,
			SaleDate:     date(2025, 6, 15),
		},
	}

	summary := SummarizeSaleRows(rows)

	assert.Equal(t, 3, summary.RowCount)
	assert.Equal(t, 3, summary.ValidRows)
	assert.Equal(t, 2, summary.CustomerCount)
	assert.Equal(t, 3, summary.ProductCount)
	assert.Equal(t, "4", summary.TotalQuantity.String())
	assert.Equal(t, "318.00", summary.TotalAmount.StringFixed(2))
	assert.Equal(t, "300.00", summary.BaseAmount.StringFixed(2))
	assert.Equal(t, "18.00", summary.GSTAmount.StringFixed(2))
	assert.Equal(t, "200.00", summary.AmountByType[trade.SaleTypeCash].StringFixed(2))
	assert.Equal(t, "118.00", summary.AmountByType[trade.SaleTypeCredit].StringFixed(2))
	require.NotNil(t, summary.EarliestSale)
	require.NotNil(t, summary.LatestSale)
	assert.Equal(t, date(2025, 6, 14), *summary.EarliestSale)
	assert.Equal(t, date(2025, 6, 16), *summary.LatestSale)
}

func TestSummarizeSaleRows_PartialRowsStayOutOfTotals(t *testing.T) {
	customerID := uuid.New()
	rows := []SaleRow{
		{
			CustomerID:   &customerID,
			ProductID:    uuid.New(),
			Type:         trade.SaleTypeCash,
			Quantity:     decimal.NewFromInt(1),
			UnitPrice:    decimal.NewFromInt(60),
			GSTInclusive: true,
			SaleDate:     date(2025, 6, 15),
		},
		// Missing customer: stays in the row count, nowhere else.
		{
			ProductID: uuid.New(),
			Type:      trade.SaleTypeCash,
			Quantity:  decimal.NewFromInt(5),
			UnitPrice: decimal.NewFromInt(100),
		},
		// Missing type.
		{
			CustomerID: &customerID,
			ProductID:  uuid.New(),
			Quantity:   decimal.NewFromInt(5),
			UnitPrice:  decimal.NewFromInt(100),
		},
	}

	summary := SummarizeSaleRows(rows)

	assert.Equal(t, 3, summary.RowCount)
	assert.Equal(t, 1, summary.ValidRows)
	assert.Equal(t, 1, summary.CustomerCount)
	assert.Equal(t, 1, summary.ProductCount)
	assert.Equal(t, "1", summary.TotalQuantity.String())
	assert.Equal(t, "60.00", summary.TotalAmount.StringFixed(2))
	assert.Equal(t, "60.00", summary.AmountByType[trade.SaleTypeCash].StringFixed(2))
}

func TestSummarizeSaleRows_Empty(t *testing.T) {
	summary := SummarizeSaleRows(nil)

	assert.Equal(t, 0, summary.RowCount)
	assert.Equal(t, 0, summary.ValidRows)
	assert.True(t, summary.TotalAmount.IsZero())
	assert.Empty(t, summary.AmountByType)
	assert.Nil(t, summary.EarliestSale)
	assert.Nil(t, summary.LatestSale)
}

func TestSummarizeSaleRows_InvalidRateFallsBackToGross(t *testing.T) {
	customerID := uuid.New()
	rows := []SaleRow{{
		CustomerID:   &customerID,
		ProductID:    uuid.New(),
		Type:         trade.SaleTypeCash,
		Quantity:     decimal.NewFromInt(1),
		UnitPrice:    decimal.NewFromInt(100),
		GSTRate:      decimal.NewFromInt(-5),
		GSTInclusive: true,
	}}

	summary := SummarizeSaleRows(rows)
	assert.Equal(t, "100.00", summary.TotalAmount.StringFixed(2))
	assert.True(t, summary.GSTAmount.IsZero())
}

func TestSummarizeModificationRows(t *testing.T) {
	sharedCustomer := uuid.New()
	rows := []ModificationRow{
		{
			CustomerID: sharedCustomer,
			ProductID:  uuid.New(),
			Type:       trade.ModificationTypeSkip,
			StartDate:  date(2025, 6, 10),
			EndDate:    date(2025, 6, 12),
		},
		{
			CustomerID:     sharedCustomer,
			ProductID:      uuid.New(),
			Type:           trade.ModificationTypeIncrease,
			StartDate:      date(2025, 6, 15),
			EndDate:        date(2025, 6, 15),
			QuantityChange: decimal.NewFromInt(1),
		},
		{
			CustomerID:     uuid.New(),
			ProductID:      uuid.New(),
			Type:           trade.ModificationTypeDecrease,
			StartDate:      date(2025, 6, 20),
			EndDate:        date(2025, 6, 21),
			QuantityChange: decimal.RequireFromString("0.5"),
		},
	}

	summary := SummarizeModificationRows(rows)

	assert.Equal(t, 3, summary.RowCount)
	assert.Equal(t, 3, summary.ValidRows)
	assert.Equal(t, 1, summary.CountByType[trade.ModificationTypeSkip])
	assert.Equal(t, 1, summary.CountByType[trade.ModificationTypeIncrease])
	assert.Equal(t, 1, summary.CountByType[trade.ModificationTypeDecrease])
	assert.Equal(t, "1.5", summary.TotalQuantityChange.String(), "skip rows excluded")
	assert.Equal(t, 6, summary.TotalDays) // 3 + 1 + 2
	assert.Equal(t, 2, summary.CustomerCount)
	assert.Equal(t, 3, summary.ProductCount)
	require.NotNil(t, summary.EarliestStart)
	require.NotNil(t, summary.LatestEnd)
	assert.Equal(t, date(2025, 6, 10), *summary.EarliestStart)
	assert.Equal(t, date(2025, 6, 21), *summary.LatestEnd)
}

func TestSummarizeModificationRows_PartialRowsStayOutOfGroups(t *testing.T) {
	customerID := uuid.New()
	rows := []ModificationRow{
		{
			CustomerID: customerID,
			ProductID:  uuid.New(),
			Type:       trade.ModificationTypeSkip,
			StartDate:  date(2025, 6, 10),
			EndDate:    date(2025, 6, 11),
		},
		{
			CustomerID: customerID,
			ProductID:  uuid.New(),
			Type:       trade.ModificationTypeSkip,
			StartDate:  date(2025, 6, 12),
			EndDate:    date(2025, 6, 13),
		},
		{}, // Nothing keyed in yet.
	}

	summary := SummarizeModificationRows(rows)

	assert.Equal(t, 3, summary.RowCount)
	assert.Equal(t, 2, summary.ValidRows)
	assert.Equal(t, 1, summary.CustomerCount)
	assert.Equal(t, 2, summary.ProductCount)
	assert.Equal(t, 2, summary.CountByType[trade.ModificationTypeSkip])
	assert.NotContains(t, summary.CountByType, trade.ModificationType(""))
}

func TestSummarizeModificationRows_StableUnderReordering(t *testing.T) {
	customerID := uuid.New()
	rows := []ModificationRow{
		{
			CustomerID:     customerID,
			ProductID:      uuid.New(),
			Type:           trade.ModificationTypeIncrease,
			StartDate:      date(2025, 6, 1),
			EndDate:        date(2025, 6, 2),
			QuantityChange: decimal.NewFromInt(2),
		},
		{
			CustomerID: customerID,
			ProductID:  uuid.New(),
			Type:       trade.ModificationTypeSkip,
			StartDate:  date(2025, 6, 5),
			EndDate:    date(2025, 6, 5),
		},
	}
	reversed := []ModificationRow{rows[1], rows[0]}

	assert.Equal(t, SummarizeModificationRows(rows), SummarizeModificationRows(reversed))
}

func TestSummarizeModificationRows_InvertedWindowIgnoredInDays(t *testing.T) {
	rows := []ModificationRow{{
		CustomerID: uuid.New(),
		ProductID:  uuid.New(),
		Type:       trade.ModificationTypeSkip,
		StartDate:  date(2025, 6, 12),
		EndDate:    date(2025, 6, 10),
	}}

	summary := SummarizeModificationRows(rows)
	assert.Equal(t, 1, summary.RowCount)
	assert.Equal(t, 0, summary.TotalDays)
}
