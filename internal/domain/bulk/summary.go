// Package bulk provides the row types and pre-submission summaries for
// bulk data entry. The back office keys in many sale or modification
// rows at once; before submitting, the operator reviews a summary of
// what the batch adds up to.
package bulk

import (
	"time"

	"github.com/dishankgupta/milk-subs-sub005/internal/domain/billing"
	"github.com/dishankgupta/milk-subs-sub005/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleRow is one keyed-in sale awaiting submission
type SaleRow struct {
	CustomerID   *uuid.UUID      `json:"customer_id,omitempty"`
	ProductID    uuid.UUID       `json:"product_id"`
	Type         trade.SaleType  `json:"type"`
	Quantity     decimal.Decimal `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	GSTRate      decimal.Decimal `json:"gst_rate"`
	GSTInclusive bool            `json:"gst_inclusive"`
	SaleDate     time.Time       `json:"sale_date"`
	Notes        string          `json:"notes,omitempty"`
}

// Valid reports whether the row carries every reference a summary can
// group on. Partially keyed rows stay in the row count but contribute
// nothing to grouped counts or totals.
func (r SaleRow) Valid() bool {
	return r.CustomerID != nil && *r.CustomerID != uuid.Nil &&
		r.ProductID != uuid.Nil && r.Type != ""
}

// ModificationRow is one keyed-in subscription modification awaiting submission
type ModificationRow struct {
	CustomerID     uuid.UUID              `json:"customer_id"`
	ProductID      uuid.UUID              `json:"product_id"`
	Type           trade.ModificationType `json:"type"`
	StartDate      time.Time              `json:"start_date"`
	EndDate        time.Time              `json:"end_date"`
	QuantityChange decimal.Decimal        `json:"quantity_change"`
	Reason         string                 `json:"reason,omitempty"`
}

// Valid reports whether customer, product and type are all present
func (r ModificationRow) Valid() bool {
	return r.CustomerID != uuid.Nil && r.ProductID != uuid.Nil && r.Type != ""
}

// SaleSummary aggregates a batch of sale rows for operator review.
// Totals, grouped amounts and distinct counts cover valid rows only;
// RowCount covers the whole batch.
type SaleSummary struct {
	RowCount      int                                `json:"row_count"`
	ValidRows     int                                `json:"valid_rows"`
	CustomerCount int                                `json:"customer_count"`
	ProductCount  int                                `json:"product_count"`
	TotalQuantity decimal.Decimal                    `json:"total_quantity"`
	BaseAmount    decimal.Decimal                    `json:"base_amount"`
	GSTAmount     decimal.Decimal                    `json:"gst_amount"`
	TotalAmount   decimal.Decimal                    `json:"total_amount"`
	AmountByType  map[trade.SaleType]decimal.Decimal `json:"amount_by_type"`
	EarliestSale  *time.Time                         `json:"earliest_sale,omitempty"`
	LatestSale    *time.Time                         `json:"latest_sale,omitempty"`
}

// SummarizeSaleRows totals a batch of sale rows. Rows with an invalid
// GST rate contribute their gross amount with no tax split; per-row
// validation happens at submission.
func SummarizeSaleRows(rows []SaleRow) SaleSummary {
	summary := SaleSummary{
		TotalQuantity: decimal.Zero,
		BaseAmount:    decimal.Zero,
		GSTAmount:     decimal.Zero,
		TotalAmount:   decimal.Zero,
		AmountByType:  make(map[trade.SaleType]decimal.Decimal),
	}

	customers := make(map[uuid.UUID]struct{})
	products := make(map[uuid.UUID]struct{})
	for _, row := range rows {
		summary.RowCount++
		if !row.Valid() {
			continue
		}
		summary.ValidRows++
		customers[*row.CustomerID] = struct{}{}
		products[row.ProductID] = struct{}{}
		summary.TotalQuantity = summary.TotalQuantity.Add(row.Quantity)

		gross := row.UnitPrice.Mul(row.Quantity)
		breakdown, err := billing.Decompose(gross, row.GSTRate, row.GSTInclusive)
		if err != nil {
			breakdown = billing.TaxBreakdown{Base: gross.Round(2), Tax: decimal.Zero, Total: gross.Round(2)}
		}

		summary.BaseAmount = summary.BaseAmount.Add(breakdown.Base)
		summary.GSTAmount = summary.GSTAmount.Add(breakdown.Tax)
		summary.TotalAmount = summary.TotalAmount.Add(breakdown.Total)

		existing, ok := summary.AmountByType[row.Type]
		if !ok {
			existing = decimal.Zero
		}
		summary.AmountByType[row.Type] = existing.Add(breakdown.Total)

		if !row.SaleDate.IsZero() {
			summary.EarliestSale = earlierOf(summary.EarliestSale, row.SaleDate)
			summary.LatestSale = laterOf(summary.LatestSale, row.SaleDate)
		}
	}
	summary.CustomerCount = len(customers)
	summary.ProductCount = len(products)

	return summary
}

// ModificationSummary aggregates a batch of modification rows for
// operator review. Everything past RowCount covers valid rows only.
type ModificationSummary struct {
	RowCount            int                            `json:"row_count"`
	ValidRows           int                            `json:"valid_rows"`
	CustomerCount       int                            `json:"customer_count"`
	ProductCount        int                            `json:"product_count"`
	CountByType         map[trade.ModificationType]int `json:"count_by_type"`
	TotalQuantityChange decimal.Decimal                `json:"total_quantity_change"`
	TotalDays           int                            `json:"total_days"` // Sum of window lengths across valid rows
	EarliestStart       *time.Time                     `json:"earliest_start,omitempty"`
	LatestEnd           *time.Time                     `json:"latest_end,omitempty"`
}

// SummarizeModificationRows totals a batch of modification rows
func SummarizeModificationRows(rows []ModificationRow) ModificationSummary {
	summary := ModificationSummary{
		CountByType:         make(map[trade.ModificationType]int),
		TotalQuantityChange: decimal.Zero,
	}

	customers := make(map[uuid.UUID]struct{})
	products := make(map[uuid.UUID]struct{})
	for _, row := range rows {
		summary.RowCount++
		if !row.Valid() {
			continue
		}
		summary.ValidRows++
		summary.CountByType[row.Type]++
		customers[row.CustomerID] = struct{}{}
		products[row.ProductID] = struct{}{}
		if row.Type != trade.ModificationTypeSkip {
			summary.TotalQuantityChange = summary.TotalQuantityChange.Add(row.QuantityChange)
		}
		if days := windowDays(row.StartDate, row.EndDate); days > 0 {
			summary.TotalDays += days
		}
		if !row.StartDate.IsZero() {
			summary.EarliestStart = earlierOf(summary.EarliestStart, row.StartDate)
		}
		if !row.EndDate.IsZero() {
			summary.LatestEnd = laterOf(summary.LatestEnd, row.EndDate)
		}
	}
	summary.CustomerCount = len(customers)
	summary.ProductCount = len(products)

	return summary
}

// windowDays returns the inclusive day count of [start, end], 0 if inverted
func windowDays(start, end time.Time) int {
	sy, sm, sd := start.Date()
	ey, em, ed := end.Date()
	s := time.Date(sy, sm, sd, 0, 0, 0, 0, time.UTC)
	e := time.Date(ey, em, ed, 0, 0, 0, 0, time.UTC)
	if e.Before(s) {
		return 0
	}
	return int(e.Sub(s).Hours()/24) + 1
}

func earlierOf(current *time.Time, candidate time.Time) *time.Time {
	if current == nil || candidate.Before(*current) {
		return &candidate
	}
	return current
}

func laterOf(current *time.Time, candidate time.Time) *time.Time {
	if current == nil || candidate.After(*current) {
		return &candidate
	}
	return current
}
