package persistence

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/dishankgupta/milk-subs-sub005/internal/domain/partner"
	"github.com/dishankgupta/milk-subs-sub005/internal/domain/shared"
)

func TestGormCustomerRepository_FindByID(t *testing.T) {
	t.Run("finds existing customer", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormCustomerRepository(gormDB)

		customerID := uuid.New()
		routeID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "billing_name", "contact_person", "phone_primary", "route_id", "delivery_time", "opening_balance", "status"}).
			AddRow(customerID, "Sharma Household", "Ramesh Sharma", "9876543210", routeID, "morning", decimal.Zero, "active")

		mock.ExpectQuery(`SELECT \* FROM "customers" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(customerID, 1).
			WillReturnRows(rows)

		customer, err := repo.FindByID(context.Background(), customerID)

		assert.NoError(t, err)
		assert.NotNil(t, customer)
		assert.Equal(t, customerID, customer.ID)
		assert.Equal(t, "Sharma Household", customer.BillingName)
		assert.Equal(t, routeID, customer.RouteID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for missing customer", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormCustomerRepository(gormDB)

		customerID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "customers" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(customerID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		customer, err := repo.FindByID(context.Background(), customerID)

		assert.Error(t, err)
		assert.Nil(t, customer)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormCustomerRepository_FindByRoute(t *testing.T) {
	t.Run("filters by route with pagination", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormCustomerRepository(gormDB)

		routeID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "billing_name", "route_id", "status"}).
			AddRow(uuid.New(), "Customer A", routeID, "active").
			AddRow(uuid.New(), "Customer B", routeID, "active")

		mock.ExpectQuery(`SELECT \* FROM "customers" WHERE route_id = \$1 ORDER BY billing_name DESC LIMIT .*`).
			WillReturnRows(rows)

		customers, err := repo.FindByRoute(context.Background(), routeID, shared.Filter{Page: 1, PageSize: 20})

		assert.NoError(t, err)
		assert.Len(t, customers, 2)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormCustomerRepository_SaveWithLock(t *testing.T) {
	newVersionedCustomer := func(t *testing.T) *partner.Customer {
		customer, err := partner.NewCustomer("Sharma Household", "Ramesh Sharma", "12 MG Road", "9876543210", uuid.New(), partner.DeliveryTimeMorning)
		assert.NoError(t, err)
		customer.IncrementVersion() // simulate an in-memory update
		return customer
	}

	t.Run("updates when version matches", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormCustomerRepository(gormDB)

		customer := newVersionedCustomer(t)

		mock.ExpectExec(`UPDATE "customers" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.SaveWithLock(context.Background(), customer)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns conflict when no rows match", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormCustomerRepository(gormDB)

		customer := newVersionedCustomer(t)

		mock.ExpectExec(`UPDATE "customers" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.SaveWithLock(context.Background(), customer)

		assert.Error(t, err)
		var domainErr *shared.DomainError
		assert.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "OPTIMISTIC_LOCK_ERROR", domainErr.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormCustomerRepository_Delete(t *testing.T) {
	t.Run("returns ErrNotFound when nothing deleted", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormCustomerRepository(gormDB)

		customerID := uuid.New()

		mock.ExpectExec(`DELETE FROM "customers" WHERE id = \$1`).
			WithArgs(customerID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), customerID)

		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormCustomerRepository_ExistsByBillingName(t *testing.T) {
	t.Run("returns true when a customer matches", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormCustomerRepository(gormDB)

		rows := sqlmock.NewRows([]string{"count"}).AddRow(1)
		mock.ExpectQuery(`SELECT count\(\*\) FROM "customers" WHERE billing_name = \$1`).
			WithArgs("Sharma Household").
			WillReturnRows(rows)

		exists, err := repo.ExistsByBillingName(context.Background(), "Sharma Household")

		assert.NoError(t, err)
		assert.True(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormCustomerRepository_CountByStatus(t *testing.T) {
	t.Run("counts active customers", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormCustomerRepository(gormDB)

		rows := sqlmock.NewRows([]string{"count"}).AddRow(42)
		mock.ExpectQuery(`SELECT count\(\*\) FROM "customers" WHERE status = \$1`).
			WithArgs(partner.CustomerStatusActive).
			WillReturnRows(rows)

		count, err := repo.CountByStatus(context.Background(), partner.CustomerStatusActive)

		assert.NoError(t, err)
		assert.Equal(t, int64(42), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
