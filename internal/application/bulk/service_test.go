package bulk

import (
	"context"
	"testing"
	"time"

	"github.com/dishankgupta/milk-subs-sub005/internal/domain/catalog"
	"github.com/dishankgupta/milk-subs-sub005/internal/domain/partner"
	"github.com/dishankgupta/milk-subs-sub005/internal/domain/shared"
	"github.com/dishankgupta/milk-subs-sub005/internal/domain/subscription"
	"github.com/dishankgupta/milk-subs-sub005/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockSaleRepository is a mock implementation of trade.SaleRepository
type MockSaleRepository struct {
	mock.Mock
}

func (m *MockSaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Sale, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.Sale, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]trade.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]trade.Sale, error) {
	args := m.Called(ctx, customerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]trade.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindByDateRange(ctx context.Context, from, to time.Time, filter shared.Filter) ([]trade.Sale, error) {
	args := m.Called(ctx, from, to, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]trade.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindUnbilledCredit(ctx context.Context, customerID uuid.UUID, upTo time.Time) ([]trade.Sale, error) {
	args := m.Called(ctx, customerID, upTo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]trade.Sale), args.Error(1)
}

func (m *MockSaleRepository) Save(ctx context.Context, sale *trade.Sale) error {
	args := m.Called(ctx, sale)
	return args.Error(0)
}

func (m *MockSaleRepository) SaveBatch(ctx context.Context, sales []*trade.Sale) error {
	args := m.Called(ctx, sales)
	return args.Error(0)
}

func (m *MockSaleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSaleRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSaleRepository) SumByTypeAndDateRange(ctx context.Context, saleType trade.SaleType, from, to time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, saleType, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// MockModificationRepository is a mock implementation of trade.ModificationRepository
type MockModificationRepository struct {
	mock.Mock
}

func (m *MockModificationRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Modification, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Modification), args.Error(1)
}

func (m *MockModificationRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.Modification, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]trade.Modification), args.Error(1)
}

func (m *MockModificationRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]trade.Modification, error) {
	args := m.Called(ctx, customerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]trade.Modification), args.Error(1)
}

func (m *MockModificationRepository) FindActiveForDate(ctx context.Context, date time.Time) ([]trade.Modification, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]trade.Modification), args.Error(1)
}

func (m *MockModificationRepository) FindActiveForCustomerAndDate(ctx context.Context, customerID uuid.UUID, date time.Time) ([]trade.Modification, error) {
	args := m.Called(ctx, customerID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]trade.Modification), args.Error(1)
}

func (m *MockModificationRepository) FindOverlapping(ctx context.Context, customerID, productID uuid.UUID, start, end time.Time) ([]trade.Modification, error) {
	args := m.Called(ctx, customerID, productID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]trade.Modification), args.Error(1)
}

func (m *MockModificationRepository) Save(ctx context.Context, mod *trade.Modification) error {
	args := m.Called(ctx, mod)
	return args.Error(0)
}

func (m *MockModificationRepository) SaveBatch(ctx context.Context, mods []*trade.Modification) error {
	args := m.Called(ctx, mods)
	return args.Error(0)
}

func (m *MockModificationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockModificationRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockSubscriptionRepository is a mock implementation of subscription.Repository
type MockSubscriptionRepository struct {
	mock.Mock
}

func (m *MockSubscriptionRepository) FindByID(ctx context.Context, id uuid.UUID) (*subscription.Subscription, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*subscription.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) FindAll(ctx context.Context, filter shared.Filter) ([]subscription.Subscription, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]subscription.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]subscription.Subscription, error) {
	args := m.Called(ctx, customerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]subscription.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]subscription.Subscription, error) {
	args := m.Called(ctx, productID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]subscription.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) FindActive(ctx context.Context, filter shared.Filter) ([]subscription.Subscription, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]subscription.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) FindByCustomerAndProduct(ctx context.Context, customerID, productID uuid.UUID) (*subscription.Subscription, error) {
	args := m.Called(ctx, customerID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*subscription.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) Save(ctx context.Context, sub *subscription.Subscription) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

func (m *MockSubscriptionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSubscriptionRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSubscriptionRepository) CountByStatus(ctx context.Context, status subscription.Status) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

// MockCustomerRepository is a mock implementation of partner.CustomerRepository
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]partner.Customer, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Customer, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByRoute(ctx context.Context, routeID uuid.UUID, filter shared.Filter) ([]partner.Customer, error) {
	args := m.Called(ctx, routeID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByStatus(ctx context.Context, status partner.CustomerStatus, filter shared.Filter) ([]partner.Customer, error) {
	args := m.Called(ctx, status, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindActive(ctx context.Context, filter shared.Filter) ([]partner.Customer, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) SaveWithLock(ctx context.Context, customer *partner.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCustomerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCustomerRepository) CountByStatus(ctx context.Context, status partner.CustomerStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCustomerRepository) CountByRoute(ctx context.Context, routeID uuid.UUID) (int64, error) {
	args := m.Called(ctx, routeID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCustomerRepository) ExistsByBillingName(ctx context.Context, billingName string) (bool, error) {
	args := m.Called(ctx, billingName)
	return args.Bool(0), args.Error(1)
}

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByCode(ctx context.Context, code string) (*catalog.Product, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindActive(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindSubscriptionEligible(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

type bulkTestEnv struct {
	saleRepo *MockSaleRepository
	modRepo  *MockModificationRepository
	subRepo  *MockSubscriptionRepository
	custRepo *MockCustomerRepository
	prodRepo *MockProductRepository
	service  *Service
}

func newBulkTestEnv() *bulkTestEnv {
	env := &bulkTestEnv{
		saleRepo: new(MockSaleRepository),
		modRepo:  new(MockModificationRepository),
		subRepo:  new(MockSubscriptionRepository),
		custRepo: new(MockCustomerRepository),
		prodRepo: new(MockProductRepository),
	}
	env.service = NewService(env.saleRepo, env.modRepo, env.subRepo, env.custRepo, env.prodRepo, zap.NewNop())
	return env
}

func newBulkProduct(t *testing.T) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct("CM", "Cow Milk", decimal.NewFromInt(60), "liter", decimal.Zero)
	require.NoError(t, err)
	return product
}

func TestService_SubmitSales(t *testing.T) {
	ctx := context.Background()

	t.Run("a failed row does not stop the rest of the batch", func(t *testing.T) {
		env := newBulkTestEnv()
		product := newBulkProduct(t)
		missing := uuid.New()

		env.prodRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		env.prodRepo.On("FindByID", ctx, missing).Return(nil, shared.ErrNotFound)
		env.saleRepo.On("Save", ctx, mock.AnythingOfType("*trade.Sale")).Return(nil)

		result, err := env.service.SubmitSales(ctx, SubmitSalesRequest{
			Rows: []SaleRowRequest{
				{ProductID: product.ID, Type: "cash", Quantity: decimal.NewFromInt(2), SaleDate: "2026-08-01"},
				{ProductID: missing, Type: "cash", Quantity: decimal.NewFromInt(1), SaleDate: "2026-08-01"},
				{ProductID: product.ID, Type: "qr", Quantity: decimal.NewFromInt(3), SaleDate: "2026-08-01"},
			},
		})

		require.NoError(t, err)
		assert.Equal(t, 3, result.Total)
		assert.Equal(t, 2, result.Submitted)
		assert.Equal(t, 1, result.Failed)
		require.Len(t, result.Results, 3)
		assert.NotNil(t, result.Results[0].ID)
		assert.Nil(t, result.Results[1].ID)
		assert.NotEmpty(t, result.Results[1].Error)
		assert.NotNil(t, result.Results[2].ID)
	})

	t.Run("results come back in row order", func(t *testing.T) {
		env := newBulkTestEnv()
		product := newBulkProduct(t)

		env.prodRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		env.saleRepo.On("Save", ctx, mock.AnythingOfType("*trade.Sale")).Return(nil)

		rows := make([]SaleRowRequest, 20)
		for i := range rows {
			rows[i] = SaleRowRequest{ProductID: product.ID, Type: "cash", Quantity: decimal.NewFromInt(1), SaleDate: "2026-08-01"}
		}

		result, err := env.service.SubmitSales(ctx, SubmitSalesRequest{Rows: rows})

		require.NoError(t, err)
		require.Len(t, result.Results, 20)
		for i, row := range result.Results {
			assert.Equal(t, i, row.Index)
			assert.NotNil(t, row.ID)
		}
		env.saleRepo.AssertNumberOfCalls(t, "Save", 20)
	})

	t.Run("credit rows without a customer fail individually", func(t *testing.T) {
		env := newBulkTestEnv()
		product := newBulkProduct(t)

		env.prodRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		env.saleRepo.On("Save", ctx, mock.AnythingOfType("*trade.Sale")).Return(nil)

		result, err := env.service.SubmitSales(ctx, SubmitSalesRequest{
			Rows: []SaleRowRequest{
				{ProductID: product.ID, Type: "credit", Quantity: decimal.NewFromInt(1), SaleDate: "2026-08-01"},
				{ProductID: product.ID, Type: "cash", Quantity: decimal.NewFromInt(1), SaleDate: "2026-08-01"},
			},
		})

		require.NoError(t, err)
		assert.Equal(t, 1, result.Failed)
		assert.Contains(t, result.Results[0].Error, "customer")
	})
}

func TestService_SubmitModifications(t *testing.T) {
	ctx := context.Background()

	t.Run("rows without a subscription fail, the rest submit", func(t *testing.T) {
		env := newBulkTestEnv()
		customerID, productID := uuid.New(), uuid.New()
		orphanCustomer := uuid.New()
		sub, err := subscription.NewDailySubscription(customerID, productID, decimal.NewFromInt(2))
		require.NoError(t, err)

		env.subRepo.On("FindByCustomerAndProduct", ctx, customerID, productID).Return(sub, nil)
		env.subRepo.On("FindByCustomerAndProduct", ctx, orphanCustomer, productID).Return(nil, shared.ErrNotFound)
		env.modRepo.On("FindOverlapping", ctx, customerID, productID, mock.Anything, mock.Anything).Return([]trade.Modification{}, nil)
		env.modRepo.On("Save", ctx, mock.AnythingOfType("*trade.Modification")).Return(nil)

		result, err := env.service.SubmitModifications(ctx, SubmitModificationsRequest{
			Rows: []ModificationRowRequest{
				{CustomerID: customerID, ProductID: productID, Type: "skip", StartDate: "2026-08-10", EndDate: "2026-08-12"},
				{CustomerID: orphanCustomer, ProductID: productID, Type: "skip", StartDate: "2026-08-10", EndDate: "2026-08-12"},
			},
		})

		require.NoError(t, err)
		assert.Equal(t, 1, result.Submitted)
		assert.Equal(t, 1, result.Failed)
		assert.Contains(t, result.Results[1].Error, "subscription")
	})

	t.Run("inverted date range fails the row", func(t *testing.T) {
		env := newBulkTestEnv()
		customerID, productID := uuid.New(), uuid.New()
		sub, err := subscription.NewDailySubscription(customerID, productID, decimal.NewFromInt(2))
		require.NoError(t, err)

		env.subRepo.On("FindByCustomerAndProduct", ctx, customerID, productID).Return(sub, nil)

		result, err := env.service.SubmitModifications(ctx, SubmitModificationsRequest{
			Rows: []ModificationRowRequest{
				{CustomerID: customerID, ProductID: productID, Type: "skip", StartDate: "2026-08-12", EndDate: "2026-08-10"},
			},
		})

		require.NoError(t, err)
		assert.Equal(t, 1, result.Failed)
		env.modRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("a row overlapping an active modification fails", func(t *testing.T) {
		env := newBulkTestEnv()
		customerID, productID := uuid.New(), uuid.New()
		sub, err := subscription.NewDailySubscription(customerID, productID, decimal.NewFromInt(2))
		require.NoError(t, err)
		existing, err := trade.NewModification(customerID, productID, trade.ModificationTypeSkip,
			time.Date(2026, 8, 9, 0, 0, 0, 0, time.UTC), time.Date(2026, 8, 11, 0, 0, 0, 0, time.UTC),
			decimal.Zero, "")
		require.NoError(t, err)

		env.subRepo.On("FindByCustomerAndProduct", ctx, customerID, productID).Return(sub, nil)
		env.modRepo.On("FindOverlapping", ctx, customerID, productID, mock.Anything, mock.Anything).
			Return([]trade.Modification{*existing}, nil)

		result, err := env.service.SubmitModifications(ctx, SubmitModificationsRequest{
			Rows: []ModificationRowRequest{
				{CustomerID: customerID, ProductID: productID, Type: "skip", StartDate: "2026-08-10", EndDate: "2026-08-12"},
			},
		})

		require.NoError(t, err)
		assert.Equal(t, 1, result.Failed)
		assert.Contains(t, result.Results[0].Error, "overlap")
		env.modRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestService_SummarizeSales(t *testing.T) {
	ctx := context.Background()

	t.Run("totals the batch with product GST defaults", func(t *testing.T) {
		env := newBulkTestEnv()
		milk := newBulkProduct(t)
		ghee, err := catalog.NewProduct("GH", "Ghee", decimal.NewFromInt(150), "piece", decimal.NewFromInt(5))
		require.NoError(t, err)
		walkIn := uuid.New()
		customerID := uuid.New()

		env.prodRepo.On("FindByIDs", ctx, mock.Anything).Return([]catalog.Product{*milk, *ghee}, nil)

		summary, err := env.service.SummarizeSales(ctx, SubmitSalesRequest{
			Rows: []SaleRowRequest{
				{CustomerID: &walkIn, ProductID: milk.ID, Type: "cash", Quantity: decimal.NewFromInt(2), SaleDate: "2026-08-01"},
				{CustomerID: &customerID, ProductID: ghee.ID, Type: "credit", Quantity: decimal.NewFromInt(1), SaleDate: "2026-08-03"},
			},
		})

		require.NoError(t, err)
		assert.Equal(t, 2, summary.RowCount)
		assert.Equal(t, 2, summary.ValidRows)
		assert.Equal(t, 2, summary.CustomerCount)
		assert.Equal(t, 2, summary.ProductCount)
		assert.True(t, summary.TotalQuantity.Equal(decimal.NewFromInt(3)))
		// 120 cash milk plus 150 GST-inclusive ghee
		assert.True(t, summary.TotalAmount.Equal(decimal.NewFromInt(270)), "total was %s", summary.TotalAmount)
		assert.True(t, summary.AmountByType["cash"].Equal(decimal.NewFromInt(120)))
		assert.True(t, summary.AmountByType["credit"].Equal(decimal.NewFromInt(150)))
		assert.True(t, summary.GSTAmount.IsPositive())
		require.NotNil(t, summary.EarliestSale)
		require.NotNil(t, summary.LatestSale)
		assert.Equal(t, "2026-08-01", *summary.EarliestSale)
		assert.Equal(t, "2026-08-03", *summary.LatestSale)
	})

	t.Run("rows without a customer stay out of grouped totals", func(t *testing.T) {
		env := newBulkTestEnv()
		milk := newBulkProduct(t)
		customerID := uuid.New()

		env.prodRepo.On("FindByIDs", ctx, mock.Anything).Return([]catalog.Product{*milk}, nil)

		summary, err := env.service.SummarizeSales(ctx, SubmitSalesRequest{
			Rows: []SaleRowRequest{
				{CustomerID: &customerID, ProductID: milk.ID, Type: "cash", Quantity: decimal.NewFromInt(1), SaleDate: "2026-08-01"},
				{ProductID: milk.ID, Type: "cash", Quantity: decimal.NewFromInt(4), SaleDate: "2026-08-01"},
			},
		})

		require.NoError(t, err)
		assert.Equal(t, 2, summary.RowCount)
		assert.Equal(t, 1, summary.ValidRows)
		assert.Equal(t, 1, summary.CustomerCount)
		assert.True(t, summary.TotalQuantity.Equal(decimal.NewFromInt(1)))
		assert.True(t, summary.AmountByType["cash"].Equal(decimal.NewFromInt(60)))
	})
}

func TestService_SummarizeModifications(t *testing.T) {
	ctx := context.Background()

	t.Run("counts types, days and distinct customers", func(t *testing.T) {
		env := newBulkTestEnv()
		customerID := uuid.New()

		summary, err := env.service.SummarizeModifications(ctx, SubmitModificationsRequest{
			Rows: []ModificationRowRequest{
				{CustomerID: customerID, ProductID: uuid.New(), Type: "skip", StartDate: "2026-08-10", EndDate: "2026-08-12"},
				{CustomerID: customerID, ProductID: uuid.New(), Type: "increase", StartDate: "2026-08-10", EndDate: "2026-08-10", QuantityChange: decimalPtr(decimal.NewFromInt(1))},
			},
		})

		require.NoError(t, err)
		assert.Equal(t, 2, summary.RowCount)
		assert.Equal(t, 2, summary.ValidRows)
		assert.Equal(t, 1, summary.CountByType["skip"])
		assert.Equal(t, 1, summary.CountByType["increase"])
		assert.Equal(t, 4, summary.TotalDays)
		assert.Equal(t, 1, summary.CustomerCount)
		assert.Equal(t, 2, summary.ProductCount)
		assert.True(t, summary.TotalQuantityChange.Equal(decimal.NewFromInt(1)))
		require.NotNil(t, summary.EarliestStart)
		require.NotNil(t, summary.LatestEnd)
		assert.Equal(t, "2026-08-10", *summary.EarliestStart)
		assert.Equal(t, "2026-08-12", *summary.LatestEnd)
	})
}

func decimalPtr(d decimal.Decimal) *decimal.Decimal {
	return &d
}
