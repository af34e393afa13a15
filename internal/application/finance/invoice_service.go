package finance

import (
	"context"
	"errors"
	"fmt"

	"github.com/dishankgupta/milk-subs-sub005/internal/domain/billing"
	"github.com/dishankgupta/milk-subs-sub005/internal/domain/catalog"
	"github.com/dishankgupta/milk-subs-sub005/internal/domain/delivery"
	"github.com/dishankgupta/milk-subs-sub005/internal/domain/finance"
	"github.com/dishankgupta/milk-subs-sub005/internal/domain/partner"
	"github.com/dishankgupta/milk-subs-sub005/internal/domain/shared"
	"github.com/dishankgupta/milk-subs-sub005/internal/domain/shared/format"
	"github.com/dishankgupta/milk-subs-sub005/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// InvoiceService generates and manages customer invoices. An invoice
// covers one billing period: every delivered, not yet billed order in
// the period plus every unbilled credit sale up to the period end.
type InvoiceService struct {
	invoiceRepo  finance.InvoiceRepository
	orderRepo    delivery.OrderRepository
	saleRepo     trade.SaleRepository
	customerRepo partner.CustomerRepository
	productRepo  catalog.ProductRepository
	logger       *zap.Logger
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(
	invoiceRepo finance.InvoiceRepository,
	orderRepo delivery.OrderRepository,
	saleRepo trade.SaleRepository,
	customerRepo partner.CustomerRepository,
	productRepo catalog.ProductRepository,
	logger *zap.Logger,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo:  invoiceRepo,
		orderRepo:    orderRepo,
		saleRepo:     saleRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		logger:       logger,
	}
}

// GenerateInvoice builds and issues an invoice for one customer's
// billing period. The billed orders and sales are marked so they are
// never billed twice.
func (s *InvoiceService) GenerateInvoice(ctx context.Context, req GenerateInvoiceRequest) (*InvoiceResponse, error) {
	periodStart, err := format.ParseDate(req.PeriodStart)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_PERIOD", "Period start must be in YYYY-MM-DD format")
	}
	periodEnd, err := format.ParseDate(req.PeriodEnd)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_PERIOD", "Period end must be in YYYY-MM-DD format")
	}

	if _, err := s.customerRepo.FindByID(ctx, req.CustomerID); err != nil {
		return nil, fmt.Errorf("failed to find customer: %w", err)
	}

	orders, err := s.orderRepo.FindDeliveredUnbilled(ctx, req.CustomerID, periodStart, periodEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to load delivered orders: %w", err)
	}
	sales, err := s.saleRepo.FindUnbilledCredit(ctx, req.CustomerID, periodEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to load credit sales: %w", err)
	}
	if len(orders) == 0 && len(sales) == 0 {
		return nil, shared.NewDomainError("NOTHING_TO_BILL", "Customer has no unbilled deliveries or credit sales in this period")
	}

	lines, err := s.buildLineItems(ctx, orders, sales)
	if err != nil {
		return nil, err
	}

	sequence, err := s.invoiceRepo.NextSequenceForMonth(ctx, periodStart)
	if err != nil {
		return nil, fmt.Errorf("failed to reserve invoice sequence: %w", err)
	}
	number := finance.FormatInvoiceNumber(periodStart, sequence)

	invoice, err := finance.NewInvoice(number, req.CustomerID, periodStart, periodEnd, lines)
	if err != nil {
		return nil, err
	}
	invoice.Notes = req.Notes

	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, fmt.Errorf("failed to save invoice: %w", err)
	}

	for i := range orders {
		if err := orders[i].MarkBilled(invoice.ID); err != nil {
			return nil, err
		}
		if err := s.orderRepo.Save(ctx, &orders[i]); err != nil {
			return nil, fmt.Errorf("failed to mark order billed: %w", err)
		}
	}
	for i := range sales {
		if err := sales[i].MarkBilled(invoice.ID); err != nil {
			return nil, err
		}
		if err := s.saleRepo.Save(ctx, &sales[i]); err != nil {
			return nil, fmt.Errorf("failed to mark sale billed: %w", err)
		}
	}

	s.logger.Info("invoice generated",
		zap.String("invoice_number", number),
		zap.String("customer_id", req.CustomerID.String()),
		zap.Int("order_lines", len(orders)),
		zap.Int("sale_lines", len(sales)))

	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// buildLineItems turns delivered orders and credit sales into invoice
// lines. Order totals are treated as GST-inclusive and decomposed at
// the product's current rate; sale lines carry the decomposition
// captured at sale time.
func (s *InvoiceService) buildLineItems(ctx context.Context, orders []delivery.Order, sales []trade.Sale) ([]finance.LineItem, error) {
	productIDs := make([]uuid.UUID, 0, len(orders)+len(sales))
	seen := make(map[uuid.UUID]bool)
	for i := range orders {
		if !seen[orders[i].ProductID] {
			seen[orders[i].ProductID] = true
			productIDs = append(productIDs, orders[i].ProductID)
		}
	}
	for i := range sales {
		if !seen[sales[i].ProductID] {
			seen[sales[i].ProductID] = true
			productIDs = append(productIDs, sales[i].ProductID)
		}
	}

	products := make(map[uuid.UUID]*catalog.Product, len(productIDs))
	if len(productIDs) > 0 {
		found, err := s.productRepo.FindByIDs(ctx, productIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to load products: %w", err)
		}
		for i := range found {
			products[found[i].ID] = &found[i]
		}
	}

	productName := func(id uuid.UUID) string {
		if p, ok := products[id]; ok {
			return p.Name
		}
		return "Unknown product"
	}

	lines := make([]finance.LineItem, 0, len(orders)+len(sales))
	for i := range orders {
		order := &orders[i]
		qty := order.PlannedQuantity
		if order.ActualQuantity != nil {
			qty = *order.ActualQuantity
		}
		base, gst, rate := order.TotalAmount, decimal.Zero, decimal.Zero
		if p, ok := products[order.ProductID]; ok && !p.GSTRate.IsZero() {
			if breakdown, err := billing.FromInclusive(order.TotalAmount, p.GSTRate); err == nil {
				base, gst, rate = breakdown.Base, breakdown.Tax, p.GSTRate
			}
		}
		lines = append(lines, finance.LineItem{
			ID:          uuid.New(),
			Source:      finance.LineSourceSubscription,
			SourceID:    order.ID,
			ProductID:   order.ProductID,
			Description: fmt.Sprintf("%s delivery on %s", productName(order.ProductID), format.Date(order.OrderDate)),
			Quantity:    qty,
			UnitPrice:   order.UnitPrice,
			BaseAmount:  base,
			GSTAmount:   gst,
			GSTRate:     rate,
			TotalAmount: order.TotalAmount,
		})
	}
	for i := range sales {
		sale := &sales[i]
		lines = append(lines, finance.LineItem{
			ID:          uuid.New(),
			Source:      finance.LineSourceSale,
			SourceID:    sale.ID,
			ProductID:   sale.ProductID,
			Description: fmt.Sprintf("%s credit sale on %s", productName(sale.ProductID), format.Date(sale.SaleDate)),
			Quantity:    sale.Quantity,
			UnitPrice:   sale.UnitPrice,
			BaseAmount:  sale.BaseAmount,
			GSTAmount:   sale.GSTAmount,
			GSTRate:     sale.GSTRate,
			TotalAmount: sale.TotalAmount,
		})
	}
	return lines, nil
}

// BulkGenerateInvoices generates invoices for many customers. One
// customer failing does not stop the rest.
func (s *InvoiceService) BulkGenerateInvoices(ctx context.Context, req BulkGenerateInvoicesRequest) (*BulkGenerateInvoicesResult, error) {
	result := &BulkGenerateInvoicesResult{}
	for _, customerID := range req.CustomerIDs {
		_, err := s.GenerateInvoice(ctx, GenerateInvoiceRequest{
			CustomerID:  customerID,
			PeriodStart: req.PeriodStart,
			PeriodEnd:   req.PeriodEnd,
		})
		if err != nil {
			var de *shared.DomainError
			if errors.As(err, &de) && de.Code == "NOTHING_TO_BILL" {
				result.Skipped++
				continue
			}
			result.Failed++
			result.Errors = append(result.Errors, BulkCustomerError{CustomerID: customerID, Error: err.Error()})
			continue
		}
		result.Generated++
	}
	return result, nil
}

// GetInvoice retrieves an invoice by ID
func (s *InvoiceService) GetInvoice(ctx context.Context, id uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// GetInvoiceByNumber retrieves an invoice by its number
func (s *InvoiceService) GetInvoiceByNumber(ctx context.Context, number string) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// CancelInvoice voids an unpaid invoice
func (s *InvoiceService) CancelInvoice(ctx context.Context, id uuid.UUID) error {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := invoice.Cancel(); err != nil {
		return err
	}
	return s.invoiceRepo.Save(ctx, invoice)
}

// ListInvoices returns invoices matching the filter
func (s *InvoiceService) ListInvoices(ctx context.Context, filter InvoiceListFilter) ([]InvoiceResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		Filters:  make(map[string]interface{}),
	}
	if filter.CustomerID != "" {
		domainFilter.Filters["customer_id"] = filter.CustomerID
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}

	invoices, err := s.invoiceRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list invoices: %w", err)
	}
	total, err := s.invoiceRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count invoices: %w", err)
	}

	return ToInvoiceResponses(invoices), total, nil
}

// OutstandingForCustomer returns a customer's total invoice outstanding
func (s *InvoiceService) OutstandingForCustomer(ctx context.Context, customerID uuid.UUID) (decimal.Decimal, error) {
	return s.invoiceRepo.SumOutstandingByCustomer(ctx, customerID)
}
