package finance

import (
	"context"
	"testing"
	"time"

	"github.com/dishankgupta/milk-subs-sub005/internal/domain/catalog"
	"github.com/dishankgupta/milk-subs-sub005/internal/domain/delivery"
	"github.com/dishankgupta/milk-subs-sub005/internal/domain/finance"
	"github.com/dishankgupta/milk-subs-sub005/internal/domain/partner"
	"github.com/dishankgupta/milk-subs-sub005/internal/domain/shared"
	"github.com/dishankgupta/milk-subs-sub005/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type invoiceTestEnv struct {
	invoiceRepo *MockInvoiceRepository
	orderRepo   *MockOrderRepository
	saleRepo    *MockSaleRepository
	custRepo    *MockCustomerRepository
	prodRepo    *MockProductRepository
	service     *InvoiceService
}

func newInvoiceTestEnv() *invoiceTestEnv {
	env := &invoiceTestEnv{
		invoiceRepo: new(MockInvoiceRepository),
		orderRepo:   new(MockOrderRepository),
		saleRepo:    new(MockSaleRepository),
		custRepo:    new(MockCustomerRepository),
		prodRepo:    new(MockProductRepository),
	}
	env.service = NewInvoiceService(env.invoiceRepo, env.orderRepo, env.saleRepo, env.custRepo, env.prodRepo, zap.NewNop())
	return env
}

func newBilledCustomer(t *testing.T) *partner.Customer {
	t.Helper()
	customer, err := partner.NewCustomer("Sharma Dairy", "Ramesh", "12 MG Road", "9876543210", uuid.New(), partner.DeliveryTimeMorning)
	require.NoError(t, err)
	return customer
}

func newDeliveredOrder(t *testing.T, customerID, productID uuid.UUID, date time.Time, qty decimal.Decimal) delivery.Order {
	t.Helper()
	order, err := delivery.NewOrder(customerID, productID, uuid.New(), date, "morning", qty, decimal.NewFromInt(60))
	require.NoError(t, err)
	require.NoError(t, order.MarkDelivered(qty, date.Add(7*time.Hour), "Suresh", ""))
	return *order
}

func newCreditSale(t *testing.T, customerID, productID uuid.UUID, date time.Time) trade.Sale {
	t.Helper()
	sale, err := trade.NewSale(&customerID, productID, trade.SaleTypeCredit,
		decimal.NewFromInt(2), decimal.NewFromInt(150), decimal.NewFromInt(5), true, date, "")
	require.NoError(t, err)
	return *sale
}

func TestInvoiceService_GenerateInvoice(t *testing.T) {
	ctx := context.Background()
	periodStart := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	periodEnd := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)

	t.Run("generates invoice from delivered orders and credit sales", func(t *testing.T) {
		env := newInvoiceTestEnv()
		customer := newBilledCustomer(t)
		product, err := catalog.NewProduct("CM", "Cow Milk", decimal.NewFromInt(60), "liter", decimal.Zero)
		require.NoError(t, err)
		ghee, err := catalog.NewProduct("GH", "Ghee", decimal.NewFromInt(150), "piece", decimal.NewFromInt(5))
		require.NoError(t, err)

		order := newDeliveredOrder(t, customer.ID, product.ID, periodStart.AddDate(0, 0, 4), decimal.NewFromInt(2))
		sale := newCreditSale(t, customer.ID, ghee.ID, periodStart.AddDate(0, 0, 10))

		env.custRepo.On("FindByID", ctx, customer.ID).Return(customer, nil)
		env.orderRepo.On("FindDeliveredUnbilled", ctx, customer.ID, periodStart, periodEnd).Return([]delivery.Order{order}, nil)
		env.saleRepo.On("FindUnbilledCredit", ctx, customer.ID, periodEnd).Return([]trade.Sale{sale}, nil)
		env.prodRepo.On("FindByIDs", ctx, mock.Anything).Return([]catalog.Product{*product, *ghee}, nil)
		env.invoiceRepo.On("NextSequenceForMonth", ctx, periodStart).Return(7, nil)
		env.invoiceRepo.On("Save", ctx, mock.AnythingOfType("*finance.Invoice")).Return(nil)
		env.orderRepo.On("Save", ctx, mock.AnythingOfType("*delivery.Order")).Return(nil)
		env.saleRepo.On("Save", ctx, mock.AnythingOfType("*trade.Sale")).Return(nil)

		resp, err := env.service.GenerateInvoice(ctx, GenerateInvoiceRequest{
			CustomerID:  customer.ID,
			PeriodStart: "2026-06-01",
			PeriodEnd:   "2026-06-30",
		})

		require.NoError(t, err)
		assert.Equal(t, "INV-202606-0007", resp.InvoiceNumber)
		assert.Len(t, resp.LineItems, 2)
		// 2 liters at 60 plus a 300 rupee credit sale
		assert.True(t, resp.TotalAmount.Equal(decimal.NewFromInt(420)), "total was %s", resp.TotalAmount)
		assert.Equal(t, string(finance.InvoiceStatusPending), resp.Status)
		env.orderRepo.AssertCalled(t, "Save", ctx, mock.AnythingOfType("*delivery.Order"))
		env.saleRepo.AssertCalled(t, "Save", ctx, mock.AnythingOfType("*trade.Sale"))
	})

	t.Run("sale lines keep the decomposition captured at sale time", func(t *testing.T) {
		env := newInvoiceTestEnv()
		customer := newBilledCustomer(t)
		ghee, err := catalog.NewProduct("GH", "Ghee", decimal.NewFromInt(150), "piece", decimal.NewFromInt(5))
		require.NoError(t, err)
		sale := newCreditSale(t, customer.ID, ghee.ID, periodStart.AddDate(0, 0, 3))

		env.custRepo.On("FindByID", ctx, customer.ID).Return(customer, nil)
		env.orderRepo.On("FindDeliveredUnbilled", ctx, customer.ID, periodStart, periodEnd).Return([]delivery.Order{}, nil)
		env.saleRepo.On("FindUnbilledCredit", ctx, customer.ID, periodEnd).Return([]trade.Sale{sale}, nil)
		env.prodRepo.On("FindByIDs", ctx, mock.Anything).Return([]catalog.Product{*ghee}, nil)
		env.invoiceRepo.On("NextSequenceForMonth", ctx, periodStart).Return(1, nil)
		env.invoiceRepo.On("Save", ctx, mock.AnythingOfType("*finance.Invoice")).Return(nil)
		env.saleRepo.On("Save", ctx, mock.AnythingOfType("*trade.Sale")).Return(nil)

		resp, err := env.service.GenerateInvoice(ctx, GenerateInvoiceRequest{
			CustomerID:  customer.ID,
			PeriodStart: "2026-06-01",
			PeriodEnd:   "2026-06-30",
		})

		require.NoError(t, err)
		require.Len(t, resp.LineItems, 1)
		line := resp.LineItems[0]
		assert.True(t, line.BaseAmount.Equal(sale.BaseAmount))
		assert.True(t, line.GSTAmount.Equal(sale.GSTAmount))
		assert.True(t, line.BaseAmount.Add(line.GSTAmount).Equal(line.TotalAmount))
	})

	t.Run("returns NOTHING_TO_BILL when the period is empty", func(t *testing.T) {
		env := newInvoiceTestEnv()
		customer := newBilledCustomer(t)

		env.custRepo.On("FindByID", ctx, customer.ID).Return(customer, nil)
		env.orderRepo.On("FindDeliveredUnbilled", ctx, customer.ID, periodStart, periodEnd).Return([]delivery.Order{}, nil)
		env.saleRepo.On("FindUnbilledCredit", ctx, customer.ID, periodEnd).Return([]trade.Sale{}, nil)

		_, err := env.service.GenerateInvoice(ctx, GenerateInvoiceRequest{
			CustomerID:  customer.ID,
			PeriodStart: "2026-06-01",
			PeriodEnd:   "2026-06-30",
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "NOTHING_TO_BILL", domainErr.Code)
		env.invoiceRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects a malformed period", func(t *testing.T) {
		env := newInvoiceTestEnv()

		_, err := env.service.GenerateInvoice(ctx, GenerateInvoiceRequest{
			CustomerID:  uuid.New(),
			PeriodStart: "June 2026",
			PeriodEnd:   "2026-06-30",
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_PERIOD", domainErr.Code)
	})
}

func TestInvoiceService_BulkGenerateInvoices(t *testing.T) {
	ctx := context.Background()
	periodStart := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	periodEnd := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)

	t.Run("counts empty customers as skipped, not failed", func(t *testing.T) {
		env := newInvoiceTestEnv()
		billable := newBilledCustomer(t)
		empty := newBilledCustomer(t)
		product, err := catalog.NewProduct("CM", "Cow Milk", decimal.NewFromInt(60), "liter", decimal.Zero)
		require.NoError(t, err)
		order := newDeliveredOrder(t, billable.ID, product.ID, periodStart.AddDate(0, 0, 2), decimal.NewFromInt(1))

		env.custRepo.On("FindByID", ctx, billable.ID).Return(billable, nil)
		env.custRepo.On("FindByID", ctx, empty.ID).Return(empty, nil)
		env.orderRepo.On("FindDeliveredUnbilled", ctx, billable.ID, periodStart, periodEnd).Return([]delivery.Order{order}, nil)
		env.orderRepo.On("FindDeliveredUnbilled", ctx, empty.ID, periodStart, periodEnd).Return([]delivery.Order{}, nil)
		env.saleRepo.On("FindUnbilledCredit", ctx, mock.Anything, periodEnd).Return([]trade.Sale{}, nil)
		env.prodRepo.On("FindByIDs", ctx, mock.Anything).Return([]catalog.Product{*product}, nil)
		env.invoiceRepo.On("NextSequenceForMonth", ctx, periodStart).Return(1, nil)
		env.invoiceRepo.On("Save", ctx, mock.AnythingOfType("*finance.Invoice")).Return(nil)
		env.orderRepo.On("Save", ctx, mock.AnythingOfType("*delivery.Order")).Return(nil)

		result, err := env.service.BulkGenerateInvoices(ctx, BulkGenerateInvoicesRequest{
			CustomerIDs: []uuid.UUID{billable.ID, empty.ID},
			PeriodStart: "2026-06-01",
			PeriodEnd:   "2026-06-30",
		})

		require.NoError(t, err)
		assert.Equal(t, 1, result.Generated)
		assert.Equal(t, 1, result.Skipped)
		assert.Equal(t, 0, result.Failed)
		assert.Empty(t, result.Errors)
	})

	t.Run("records a failure without stopping the batch", func(t *testing.T) {
		env := newInvoiceTestEnv()
		missing := uuid.New()
		billable := newBilledCustomer(t)
		product, err := catalog.NewProduct("CM", "Cow Milk", decimal.NewFromInt(60), "liter", decimal.Zero)
		require.NoError(t, err)
		order := newDeliveredOrder(t, billable.ID, product.ID, periodStart.AddDate(0, 0, 2), decimal.NewFromInt(1))

		env.custRepo.On("FindByID", ctx, missing).Return(nil, shared.ErrNotFound)
		env.custRepo.On("FindByID", ctx, billable.ID).Return(billable, nil)
		env.orderRepo.On("FindDeliveredUnbilled", ctx, billable.ID, periodStart, periodEnd).Return([]delivery.Order{order}, nil)
		env.saleRepo.On("FindUnbilledCredit", ctx, billable.ID, periodEnd).Return([]trade.Sale{}, nil)
		env.prodRepo.On("FindByIDs", ctx, mock.Anything).Return([]catalog.Product{*product}, nil)
		env.invoiceRepo.On("NextSequenceForMonth", ctx, periodStart).Return(1, nil)
		env.invoiceRepo.On("Save", ctx, mock.AnythingOfType("*finance.Invoice")).Return(nil)
		env.orderRepo.On("Save", ctx, mock.AnythingOfType("*delivery.Order")).Return(nil)

		result, err := env.service.BulkGenerateInvoices(ctx, BulkGenerateInvoicesRequest{
			CustomerIDs: []uuid.UUID{missing, billable.ID},
			PeriodStart: "2026-06-01",
			PeriodEnd:   "2026-06-30",
		})

		require.NoError(t, err)
		assert.Equal(t, 1, result.Generated)
		assert.Equal(t, 1, result.Failed)
		require.Len(t, result.Errors, 1)
		assert.Equal(t, missing, result.Errors[0].CustomerID)
	})
}

func TestInvoiceService_CancelInvoice(t *testing.T) {
	ctx := context.Background()

	t.Run("cancels an unpaid invoice", func(t *testing.T) {
		env := newInvoiceTestEnv()
		invoice := newTestInvoice(t, uuid.New(), decimal.NewFromInt(500))

		env.invoiceRepo.On("FindByID", ctx, invoice.ID).Return(invoice, nil)
		env.invoiceRepo.On("Save", ctx, invoice).Return(nil)

		err := env.service.CancelInvoice(ctx, invoice.ID)

		require.NoError(t, err)
		assert.Equal(t, finance.InvoiceStatusCancelled, invoice.Status)
	})

	t.Run("refuses to cancel a paid invoice", func(t *testing.T) {
		env := newInvoiceTestEnv()
		invoice := newTestInvoice(t, uuid.New(), decimal.NewFromInt(500))
		require.NoError(t, invoice.ApplyPayment(decimal.NewFromInt(500)))

		env.invoiceRepo.On("FindByID", ctx, invoice.ID).Return(invoice, nil)

		err := env.service.CancelInvoice(ctx, invoice.ID)

		require.Error(t, err)
		env.invoiceRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestInvoiceService_ListInvoices(t *testing.T) {
	ctx := context.Background()

	t.Run("applies pagination defaults", func(t *testing.T) {
		env := newInvoiceTestEnv()
		env.invoiceRepo.On("FindAll", ctx, mock.MatchedBy(func(f shared.Filter) bool {
			return f.Page == 1 && f.PageSize == 20
		})).Return([]finance.Invoice{}, nil)
		env.invoiceRepo.On("Count", ctx, mock.Anything).Return(int64(0), nil)

		_, total, err := env.service.ListInvoices(ctx, InvoiceListFilter{})

		require.NoError(t, err)
		assert.Equal(t, int64(0), total)
	})
}

// newTestInvoice builds a pending invoice with a single line for the
// given gross amount.
func newTestInvoice(t *testing.T, customerID uuid.UUID, total decimal.Decimal) *finance.Invoice {
	t.Helper()
	line := finance.LineItem{
		ID:          uuid.New(),
		Source:      finance.LineSourceSubscription,
		SourceID:    uuid.New(),
		ProductID:   uuid.New(),
		Description: "Cow Milk delivery on 2026-06-05",
		Quantity:    decimal.NewFromInt(1),
		UnitPrice:   total,
		BaseAmount:  total,
		GSTAmount:   decimal.Zero,
		GSTRate:     decimal.Zero,
		TotalAmount: total,
	}
	invoice, err := finance.NewInvoice(
		finance.FormatInvoiceNumber(time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), 1),
		customerID,
		time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC),
		[]finance.LineItem{line},
	)
	require.NoError(t, err)
	return invoice
}
