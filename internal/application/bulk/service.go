// Package bulk submits batches of keyed-in rows. Rows are independent:
// each one succeeds or fails on its own, the batch never rolls back,
// and the result set always has one entry per input row.
package bulk

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dishankgupta/milk-subs-sub005/internal/domain/bulk"
	"github.com/dishankgupta/milk-subs-sub005/internal/domain/catalog"
	"github.com/dishankgupta/milk-subs-sub005/internal/domain/partner"
	"github.com/dishankgupta/milk-subs-sub005/internal/domain/shared/format"
	"github.com/dishankgupta/milk-subs-sub005/internal/domain/subscription"
	"github.com/dishankgupta/milk-subs-sub005/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// maxWorkers bounds how many rows are processed at once
const maxWorkers = 8

// Service processes bulk sale and modification submissions
type Service struct {
	saleRepo         trade.SaleRepository
	modificationRepo trade.ModificationRepository
	subscriptionRepo subscription.Repository
	customerRepo     partner.CustomerRepository
	productRepo      catalog.ProductRepository
	logger           *zap.Logger
}

// NewService creates a new bulk submission service
func NewService(
	saleRepo trade.SaleRepository,
	modificationRepo trade.ModificationRepository,
	subscriptionRepo subscription.Repository,
	customerRepo partner.CustomerRepository,
	productRepo catalog.ProductRepository,
	logger *zap.Logger,
) *Service {
	return &Service{
		saleRepo:         saleRepo,
		modificationRepo: modificationRepo,
		subscriptionRepo: subscriptionRepo,
		customerRepo:     customerRepo,
		productRepo:      productRepo,
		logger:           logger,
	}
}

// SubmitSales records every row of a sale batch. Rows run concurrently
// and independently; the response holds one result per row, in row order.
func (s *Service) SubmitSales(ctx context.Context, req SubmitSalesRequest) (*SubmitResult, error) {
	results := make([]RowResult, len(req.Rows))

	s.eachRow(len(req.Rows), func(i int) {
		results[i] = s.submitSaleRow(ctx, i, req.Rows[i])
	})

	result := collectResults(results)
	s.logger.Info("bulk sales submitted",
		zap.Int("total", result.Total),
		zap.Int("submitted", result.Submitted),
		zap.Int("failed", result.Failed))
	return result, nil
}

// SubmitModifications records every row of a modification batch
func (s *Service) SubmitModifications(ctx context.Context, req SubmitModificationsRequest) (*SubmitResult, error) {
	results := make([]RowResult, len(req.Rows))

	s.eachRow(len(req.Rows), func(i int) {
		results[i] = s.submitModificationRow(ctx, i, req.Rows[i])
	})

	result := collectResults(results)
	s.logger.Info("bulk modifications submitted",
		zap.Int("total", result.Total),
		zap.Int("submitted", result.Submitted),
		zap.Int("failed", result.Failed))
	return result, nil
}

// eachRow runs fn for every row index across a bounded worker pool and
// returns once all rows have resolved. Each worker writes only its own
// result slots.
func (s *Service) eachRow(n int, fn func(i int)) {
	workers := maxWorkers
	if n < workers {
		workers = n
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				fn(i)
			}
		}()
	}
	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
}

func (s *Service) submitSaleRow(ctx context.Context, index int, row SaleRowRequest) RowResult {
	product, err := s.productRepo.FindByID(ctx, row.ProductID)
	if err != nil {
		return RowResult{Index: index, Error: fmt.Sprintf("product not found: %v", err)}
	}
	if !product.IsActive() {
		return RowResult{Index: index, Error: "cannot sell an inactive product"}
	}

	if trade.SaleType(row.Type) == trade.SaleTypeCredit {
		if row.CustomerID == nil || *row.CustomerID == uuid.Nil {
			return RowResult{Index: index, Error: "credit sales require a customer"}
		}
		customer, err := s.customerRepo.FindByID(ctx, *row.CustomerID)
		if err != nil {
			return RowResult{Index: index, Error: fmt.Sprintf("customer not found: %v", err)}
		}
		if !customer.IsActive() {
			return RowResult{Index: index, Error: "cannot record a credit sale for an inactive customer"}
		}
	}

	unitPrice := product.CurrentPrice
	if row.UnitPrice != nil {
		unitPrice = *row.UnitPrice
	}

	saleDate := time.Now()
	if row.SaleDate != "" {
		saleDate, err = format.ParseDate(row.SaleDate)
		if err != nil {
			return RowResult{Index: index, Error: "sale date must be in YYYY-MM-DD format"}
		}
	}

	sale, err := trade.NewSale(row.CustomerID, row.ProductID, trade.SaleType(row.Type), row.Quantity, unitPrice, product.GSTRate, product.GSTInclusive, saleDate, row.Notes)
	if err != nil {
		return RowResult{Index: index, Error: err.Error()}
	}
	if err := s.saleRepo.Save(ctx, sale); err != nil {
		return RowResult{Index: index, Error: fmt.Sprintf("failed to save sale: %v", err)}
	}
	return RowResult{Index: index, ID: &sale.ID}
}

func (s *Service) submitModificationRow(ctx context.Context, index int, row ModificationRowRequest) RowResult {
	sub, err := s.subscriptionRepo.FindByCustomerAndProduct(ctx, row.CustomerID, row.ProductID)
	if err != nil {
		return RowResult{Index: index, Error: "customer has no subscription for this product"}
	}
	if !sub.IsActive() {
		return RowResult{Index: index, Error: "cannot modify an inactive subscription"}
	}

	startDate, err := format.ParseDate(row.StartDate)
	if err != nil {
		return RowResult{Index: index, Error: "start date must be in YYYY-MM-DD format"}
	}
	endDate, err := format.ParseDate(row.EndDate)
	if err != nil {
		return RowResult{Index: index, Error: "end date must be in YYYY-MM-DD format"}
	}

	quantityChange := decimal.Zero
	if row.QuantityChange != nil {
		quantityChange = *row.QuantityChange
	}

	mod, err := trade.NewModification(row.CustomerID, row.ProductID, trade.ModificationType(row.Type), startDate, endDate, quantityChange, row.Reason)
	if err != nil {
		return RowResult{Index: index, Error: err.Error()}
	}

	overlapping, err := s.modificationRepo.FindOverlapping(ctx, row.CustomerID, row.ProductID, startDate, endDate)
	if err != nil {
		return RowResult{Index: index, Error: fmt.Sprintf("failed to check for overlapping modifications: %v", err)}
	}
	if len(overlapping) > 0 {
		return RowResult{Index: index, Error: "an active modification already covers part of this date range"}
	}
	if err := s.modificationRepo.Save(ctx, mod); err != nil {
		return RowResult{Index: index, Error: fmt.Sprintf("failed to save modification: %v", err)}
	}
	return RowResult{Index: index, ID: &mod.ID}
}

func collectResults(results []RowResult) *SubmitResult {
	result := &SubmitResult{
		Total:   len(results),
		Results: results,
	}
	for i := range results {
		if results[i].Error == "" {
			result.Submitted++
		} else {
			result.Failed++
		}
	}
	return result
}

// SummarizeSales totals a sale batch for operator review before
// submission. GST defaults come from the product; rows referencing an
// unknown product are summarized at a zero rate.
func (s *Service) SummarizeSales(ctx context.Context, req SubmitSalesRequest) (*SaleSummaryResponse, error) {
	products, err := s.loadProducts(ctx, req.Rows)
	if err != nil {
		return nil, err
	}

	rows := make([]bulk.SaleRow, 0, len(req.Rows))
	for _, row := range req.Rows {
		saleDate := time.Now()
		if row.SaleDate != "" {
			if parsed, err := format.ParseDate(row.SaleDate); err == nil {
				saleDate = parsed
			}
		}

		gstRate, gstInclusive := decimal.Zero, true
		unitPrice := decimal.Zero
		if row.UnitPrice != nil {
			unitPrice = *row.UnitPrice
		}
		if p, ok := products[row.ProductID]; ok {
			gstRate, gstInclusive = p.GSTRate, p.GSTInclusive
			if row.UnitPrice == nil {
				unitPrice = p.CurrentPrice
			}
		}

		rows = append(rows, bulk.SaleRow{
			CustomerID:   row.CustomerID,
			ProductID:    row.ProductID,
			Type:         trade.SaleType(row.Type),
			Quantity:     row.Quantity,
			UnitPrice:    unitPrice,
			GSTRate:      gstRate,
			GSTInclusive: gstInclusive,
			SaleDate:     saleDate,
			Notes:        row.Notes,
		})
	}

	summary := bulk.SummarizeSaleRows(rows)
	response := &SaleSummaryResponse{
		RowCount:      summary.RowCount,
		ValidRows:     summary.ValidRows,
		CustomerCount: summary.CustomerCount,
		ProductCount:  summary.ProductCount,
		TotalQuantity: summary.TotalQuantity,
		BaseAmount:    summary.BaseAmount,
		GSTAmount:     summary.GSTAmount,
		TotalAmount:   summary.TotalAmount,
		AmountByType:  make(map[string]decimal.Decimal, len(summary.AmountByType)),
		EarliestSale:  formatDatePtr(summary.EarliestSale),
		LatestSale:    formatDatePtr(summary.LatestSale),
	}
	for saleType, amount := range summary.AmountByType {
		response.AmountByType[string(saleType)] = amount
	}
	return response, nil
}

// SummarizeModifications totals a modification batch for operator review
func (s *Service) SummarizeModifications(_ context.Context, req SubmitModificationsRequest) (*ModificationSummaryResponse, error) {
	rows := make([]bulk.ModificationRow, 0, len(req.Rows))
	for _, row := range req.Rows {
		startDate, err := format.ParseDate(row.StartDate)
		if err != nil {
			continue
		}
		endDate, err := format.ParseDate(row.EndDate)
		if err != nil {
			continue
		}

		quantityChange := decimal.Zero
		if row.QuantityChange != nil {
			quantityChange = *row.QuantityChange
		}

		rows = append(rows, bulk.ModificationRow{
			CustomerID:     row.CustomerID,
			ProductID:      row.ProductID,
			Type:           trade.ModificationType(row.Type),
			StartDate:      startDate,
			EndDate:        endDate,
			QuantityChange: quantityChange,
			Reason:         row.Reason,
		})
	}

	summary := bulk.SummarizeModificationRows(rows)
	response := &ModificationSummaryResponse{
		RowCount:            summary.RowCount,
		ValidRows:           summary.ValidRows,
		CustomerCount:       summary.CustomerCount,
		ProductCount:        summary.ProductCount,
		CountByType:         make(map[string]int, len(summary.CountByType)),
		TotalQuantityChange: summary.TotalQuantityChange,
		TotalDays:           summary.TotalDays,
		EarliestStart:       formatDatePtr(summary.EarliestStart),
		LatestEnd:           formatDatePtr(summary.LatestEnd),
	}
	for modType, count := range summary.CountByType {
		response.CountByType[string(modType)] = count
	}
	return response, nil
}

func (s *Service) loadProducts(ctx context.Context, rows []SaleRowRequest) (map[uuid.UUID]*catalog.Product, error) {
	ids := make([]uuid.UUID, 0, len(rows))
	seen := make(map[uuid.UUID]bool)
	for _, row := range rows {
		if !seen[row.ProductID] {
			seen[row.ProductID] = true
			ids = append(ids, row.ProductID)
		}
	}

	products := make(map[uuid.UUID]*catalog.Product, len(ids))
	if len(ids) == 0 {
		return products, nil
	}
	found, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	for i := range found {
		products[found[i].ID] = &found[i]
	}
	return products, nil
}

func formatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := format.Date(*t)
	return &s
}
