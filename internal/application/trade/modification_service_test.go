package trade

import (
	"context"
	"testing"
	"time"

	"github.com/dishankgupta/milk-subs-sub005/internal/domain/shared"
	"github.com/dishankgupta/milk-subs-sub005/internal/domain/subscription"
	"github.com/dishankgupta/milk-subs-sub005/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

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

func newModificationTestEnv(t *testing.T) (*ModificationService, *MockModificationRepository, *MockSubscriptionRepository) {
	t.Helper()
	modRepo := new(MockModificationRepository)
	subRepo := new(MockSubscriptionRepository)
	return NewModificationService(modRepo, subRepo), modRepo, subRepo
}

func TestModificationService_CreateModification(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a skip for an active subscription", func(t *testing.T) {
		service, modRepo, subRepo := newModificationTestEnv(t)
		customerID, productID := uuid.New(), uuid.New()
		sub, err := subscription.NewDailySubscription(customerID, productID, decimal.NewFromInt(2))
		require.NoError(t, err)

		subRepo.On("FindByCustomerAndProduct", ctx, customerID, productID).Return(sub, nil)
		modRepo.On("FindOverlapping", ctx, customerID, productID, mock.Anything, mock.Anything).
			Return([]trade.Modification{}, nil)
		modRepo.On("Save", ctx, mock.AnythingOfType("*trade.Modification")).Return(nil)

		resp, err := service.CreateModification(ctx, CreateModificationRequest{
			CustomerID: customerID,
			ProductID:  productID,
			Type:       "skip",
			StartDate:  "2026-09-10",
			EndDate:    "2026-09-12",
			Reason:     "out of town",
		})

		require.NoError(t, err)
		assert.Equal(t, "skip", resp.Type)
		assert.Equal(t, "2026-09-10", resp.StartDate)
		assert.Equal(t, "2026-09-12", resp.EndDate)
		modRepo.AssertExpectations(t)
	})

	t.Run("rejects a window overlapping an active modification", func(t *testing.T) {
		service, modRepo, subRepo := newModificationTestEnv(t)
		customerID, productID := uuid.New(), uuid.New()
		sub, err := subscription.NewDailySubscription(customerID, productID, decimal.NewFromInt(2))
		require.NoError(t, err)
		existing, err := trade.NewModification(customerID, productID, trade.ModificationTypeSkip,
			time.Date(2026, 9, 9, 0, 0, 0, 0, time.UTC), time.Date(2026, 9, 11, 0, 0, 0, 0, time.UTC),
			decimal.Zero, "")
		require.NoError(t, err)

		subRepo.On("FindByCustomerAndProduct", ctx, customerID, productID).Return(sub, nil)
		modRepo.On("FindOverlapping", ctx, customerID, productID, mock.Anything, mock.Anything).
			Return([]trade.Modification{*existing}, nil)

		_, err = service.CreateModification(ctx, CreateModificationRequest{
			CustomerID: customerID,
			ProductID:  productID,
			Type:       "skip",
			StartDate:  "2026-09-10",
			EndDate:    "2026-09-12",
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "MODIFICATION_OVERLAP", domainErr.Code)
		modRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("requires a subscription for the pair", func(t *testing.T) {
		service, modRepo, subRepo := newModificationTestEnv(t)
		customerID, productID := uuid.New(), uuid.New()

		subRepo.On("FindByCustomerAndProduct", ctx, customerID, productID).Return(nil, shared.ErrNotFound)

		_, err := service.CreateModification(ctx, CreateModificationRequest{
			CustomerID: customerID,
			ProductID:  productID,
			Type:       "skip",
			StartDate:  "2026-09-10",
			EndDate:    "2026-09-12",
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "SUBSCRIPTION_NOT_FOUND", domainErr.Code)
		modRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects an inactive subscription", func(t *testing.T) {
		service, modRepo, subRepo := newModificationTestEnv(t)
		customerID, productID := uuid.New(), uuid.New()
		sub, err := subscription.NewDailySubscription(customerID, productID, decimal.NewFromInt(2))
		require.NoError(t, err)
		require.NoError(t, sub.Deactivate())

		subRepo.On("FindByCustomerAndProduct", ctx, customerID, productID).Return(sub, nil)

		_, err = service.CreateModification(ctx, CreateModificationRequest{
			CustomerID: customerID,
			ProductID:  productID,
			Type:       "skip",
			StartDate:  "2026-09-10",
			EndDate:    "2026-09-12",
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "SUBSCRIPTION_INACTIVE", domainErr.Code)
		modRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects malformed dates", func(t *testing.T) {
		service, modRepo, subRepo := newModificationTestEnv(t)
		customerID, productID := uuid.New(), uuid.New()
		sub, err := subscription.NewDailySubscription(customerID, productID, decimal.NewFromInt(2))
		require.NoError(t, err)

		subRepo.On("FindByCustomerAndProduct", ctx, customerID, productID).Return(sub, nil)

		_, err = service.CreateModification(ctx, CreateModificationRequest{
			CustomerID: customerID,
			ProductID:  productID,
			Type:       "skip",
			StartDate:  "10/09/2026",
			EndDate:    "2026-09-12",
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_DATE", domainErr.Code)
		modRepo.AssertNotCalled(t, "FindOverlapping", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestModificationService_CancelModification(t *testing.T) {
	ctx := context.Background()

	t.Run("cancels an active modification", func(t *testing.T) {
		service, modRepo, _ := newModificationTestEnv(t)
		mod, err := trade.NewModification(uuid.New(), uuid.New(), trade.ModificationTypeSkip,
			time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC), time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC),
			decimal.Zero, "")
		require.NoError(t, err)

		modRepo.On("FindByID", ctx, mod.ID).Return(mod, nil)
		modRepo.On("Save", ctx, mod).Return(nil)

		require.NoError(t, service.CancelModification(ctx, mod.ID))
		assert.False(t, mod.IsActive())
	})
}
