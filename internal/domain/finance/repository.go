package finance

import (
	"context"
	"time"

	"github.com/dishankgupta/milk-subs-sub005/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceRepository defines the persistence interface for invoices
type InvoiceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Invoice, error)
	FindByNumber(ctx context.Context, invoiceNumber string) (*Invoice, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Invoice, error)
	FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]Invoice, error)
	FindOutstandingByCustomer(ctx context.Context, customerID uuid.UUID) ([]Invoice, error)
	NextSequenceForMonth(ctx context.Context, period time.Time) (int, error)
	Save(ctx context.Context, invoice *Invoice) error
	SaveWithLock(ctx context.Context, invoice *Invoice) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	SumOutstanding(ctx context.Context) (decimal.Decimal, error)
	SumOutstandingByCustomer(ctx context.Context, customerID uuid.UUID) (decimal.Decimal, error)
}

// PaymentRepository defines the persistence interface for payments
type PaymentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Payment, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Payment, error)
	FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]Payment, error)
	FindByDateRange(ctx context.Context, from, to time.Time, filter shared.Filter) ([]Payment, error)
	FindWithUnallocatedByCustomer(ctx context.Context, customerID uuid.UUID) ([]Payment, error)
	Save(ctx context.Context, payment *Payment) error
	SaveWithLock(ctx context.Context, payment *Payment) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	SumByDateRange(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
	SumUnallocatedByCustomer(ctx context.Context, customerID uuid.UUID) (decimal.Decimal, error)
}
