package catalog

import (
	"context"
	"testing"

	"github.com/dishankgupta/milk-subs-sub005/internal/domain/catalog"
	"github.com/dishankgupta/milk-subs-sub005/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

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

func TestProductService_CreateProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("creates product with uppercased code", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo)

		req := CreateProductRequest{
			Code:                 "cm",
			Name:                 "Cow Milk",
			CurrentPrice:         decimal.NewFromInt(60),
			UnitOfMeasure:        "liter",
			GSTRate:              decimal.Zero,
			SubscriptionEligible: true,
		}

		repo.On("ExistsByCode", ctx, "cm").Return(false, nil)
		repo.On("Save", ctx, mock.AnythingOfType("*catalog.Product")).Return(nil)

		resp, err := service.CreateProduct(ctx, req)

		require.NoError(t, err)
		assert.Equal(t, "CM", resp.Code)
		assert.True(t, resp.SubscriptionEligible)
		assert.True(t, resp.GSTInclusive)
		repo.AssertExpectations(t)
	})

	t.Run("rejects duplicate code", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo)

		req := CreateProductRequest{
			Code:          "CM",
			Name:          "Cow Milk",
			CurrentPrice:  decimal.NewFromInt(60),
			UnitOfMeasure: "liter",
		}

		repo.On("ExistsByCode", ctx, "CM").Return(true, nil)

		resp, err := service.CreateProduct(ctx, req)

		require.Error(t, err)
		assert.Nil(t, resp)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "DUPLICATE_PRODUCT_CODE", domainErr.Code)
	})

	t.Run("honors exclusive GST flag", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo)

		inclusive := false
		req := CreateProductRequest{
			Code:          "GHEE",
			Name:          "Ghee 500ml",
			CurrentPrice:  decimal.NewFromInt(450),
			UnitOfMeasure: "pcs",
			GSTRate:       decimal.NewFromInt(12),
			GSTInclusive:  &inclusive,
		}

		repo.On("ExistsByCode", ctx, "GHEE").Return(false, nil)
		repo.On("Save", ctx, mock.AnythingOfType("*catalog.Product")).Return(nil)

		resp, err := service.CreateProduct(ctx, req)

		require.NoError(t, err)
		assert.False(t, resp.GSTInclusive)
		assert.True(t, decimal.NewFromInt(12).Equal(resp.GSTRate))
	})
}

func TestProductService_UpdateProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("changes price", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo)

		product, err := catalog.NewProduct("CM", "Cow Milk", decimal.NewFromInt(60), "liter", decimal.Zero)
		require.NoError(t, err)

		newPrice := decimal.NewFromInt(65)
		req := UpdateProductRequest{CurrentPrice: &newPrice}

		repo.On("FindByID", ctx, product.ID).Return(product, nil)
		repo.On("Save", ctx, product).Return(nil)

		resp, err := service.UpdateProduct(ctx, product.ID, req)

		require.NoError(t, err)
		assert.True(t, newPrice.Equal(resp.CurrentPrice))
		repo.AssertExpectations(t)
	})

	t.Run("rejects negative price", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo)

		product, err := catalog.NewProduct("CM", "Cow Milk", decimal.NewFromInt(60), "liter", decimal.Zero)
		require.NoError(t, err)

		bad := decimal.NewFromInt(-5)
		req := UpdateProductRequest{CurrentPrice: &bad}

		repo.On("FindByID", ctx, product.ID).Return(product, nil)

		resp, err := service.UpdateProduct(ctx, product.ID, req)

		require.Error(t, err)
		assert.Nil(t, resp)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestProductService_ListProducts(t *testing.T) {
	ctx := context.Background()

	t.Run("filters by subscription eligibility", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo)

		eligible := true
		repo.On("FindAll", ctx, mock.MatchedBy(func(f shared.Filter) bool {
			v, ok := f.Filters["subscription_eligible"].(bool)
			return ok && v
		})).Return([]catalog.Product{}, nil)
		repo.On("Count", ctx, mock.AnythingOfType("shared.Filter")).Return(int64(0), nil)

		_, _, err := service.ListProducts(ctx, ProductListFilter{SubscriptionEligible: &eligible})

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})
}
