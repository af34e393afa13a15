package finance

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sampleLines() []LineItem {
	return []LineItem{
		{
			ID:          uuid.New(),
			Source:      LineSourceSubscription,
			SourceID:    uuid.New(),
			ProductID:   uuid.New(),
			Description: "Cow Milk June deliveries",
			Quantity:    decimal.NewFromInt(30),
			UnitPrice:   decimal.NewFromInt(75),
			BaseAmount:  decimal.NewFromInt(2250),
			GSTAmount:   decimal.Zero,
			GSTRate:     decimal.Zero,
			TotalAmount: decimal.NewFromInt(2250),
		},
		{
			ID:          uuid.New(),
			Source:      LineSourceSale,
			SourceID:    uuid.New(),
			ProductID:   uuid.New(),
			Description: "Ghee 1kg",
			Quantity:    decimal.NewFromInt(1),
			UnitPrice:   decimal.NewFromInt(708),
			BaseAmount:  decimal.NewFromInt(600),
			GSTAmount:   decimal.NewFromInt(108),
			GSTRate:     decimal.NewFromInt(18),
			TotalAmount: decimal.NewFromInt(708),
		},
	}
}

func TestFormatInvoiceNumber(t *testing.T) {
	assert.Equal(t, "INV-202506-0042", FormatInvoiceNumber(date(2025, 6, 30), 42))
	assert.Equal(t, "INV-202501-0001", FormatInvoiceNumber(date(2025, 1, 1), 1))
}

func TestNewInvoice(t *testing.T) {
	t.Run("derives totals from lines", func(t *testing.T) {
		invoice, err := NewInvoice("INV-202506-0001", uuid.New(), date(2025, 6, 1), date(2025, 6, 30), sampleLines())

		require.NoError(t, err)
		assert.Equal(t, "2850.00", invoice.BaseAmount.StringFixed(2))
		assert.Equal(t, "108.00", invoice.GSTAmount.StringFixed(2))
		assert.Equal(t, "2958.00", invoice.TotalAmount.StringFixed(2))
		assert.Equal(t, InvoiceStatusPending, invoice.Status)
		assert.Equal(t, "2958.00", invoice.Outstanding().StringFixed(2))
		assert.Len(t, invoice.GetDomainEvents(), 1)
	})

	t.Run("rejects empty lines", func(t *testing.T) {
		_, err := NewInvoice("INV-202506-0002", uuid.New(), date(2025, 6, 1), date(2025, 6, 30), nil)
		assert.Error(t, err)
	})

	t.Run("rejects inverted period", func(t *testing.T) {
		_, err := NewInvoice("INV-202506-0003", uuid.New(), date(2025, 6, 30), date(2025, 6, 1), sampleLines())
		assert.Error(t, err)
	})
}

func TestInvoice_ApplyPayment(t *testing.T) {
	newInvoice := func(t *testing.T) *Invoice {
		t.Helper()
		invoice, err := NewInvoice("INV-202506-0001", uuid.New(), date(2025, 6, 1), date(2025, 6, 30), sampleLines())
		require.NoError(t, err)
		return invoice
	}

	t.Run("partial then full payment", func(t *testing.T) {
		invoice := newInvoice(t)
		invoice.ClearDomainEvents()

		require.NoError(t, invoice.ApplyPayment(decimal.NewFromInt(1000)))
		assert.Equal(t, InvoiceStatusPartial, invoice.Status)
		assert.Equal(t, "1958.00", invoice.Outstanding().StringFixed(2))
		assert.Empty(t, invoice.GetDomainEvents())

		require.NoError(t, invoice.ApplyPayment(decimal.NewFromInt(1958)))
		assert.True(t, invoice.IsPaid())
		assert.True(t, invoice.Outstanding().IsZero())
		assert.Len(t, invoice.GetDomainEvents(), 1)
	})

	t.Run("overpayment rejected", func(t *testing.T) {
		invoice := newInvoice(t)
		assert.Error(t, invoice.ApplyPayment(decimal.NewFromInt(3000)))
	})

	t.Run("paid invoice accepts no more", func(t *testing.T) {
		invoice := newInvoice(t)
		require.NoError(t, invoice.ApplyPayment(invoice.TotalAmount))
		assert.Error(t, invoice.ApplyPayment(decimal.NewFromInt(1)))
	})
}

func TestInvoice_ReversePayment(t *testing.T) {
	invoice, err := NewInvoice("INV-202506-0001", uuid.New(), date(2025, 6, 1), date(2025, 6, 30), sampleLines())
	require.NoError(t, err)
	require.NoError(t, invoice.ApplyPayment(invoice.TotalAmount))

	require.NoError(t, invoice.ReversePayment(decimal.NewFromInt(1000)))
	assert.Equal(t, InvoiceStatusPartial, invoice.Status)

	require.NoError(t, invoice.ReversePayment(invoice.AmountPaid))
	assert.Equal(t, InvoiceStatusPending, invoice.Status)

	assert.Error(t, invoice.ReversePayment(decimal.NewFromInt(1)))
}

func TestInvoice_Cancel(t *testing.T) {
	invoice, err := NewInvoice("INV-202506-0001", uuid.New(), date(2025, 6, 1), date(2025, 6, 30), sampleLines())
	require.NoError(t, err)

	t.Run("cancel unpaid", func(t *testing.T) {
		require.NoError(t, invoice.Cancel())
		assert.True(t, invoice.Outstanding().IsZero())
		assert.Error(t, invoice.Cancel())
	})

	t.Run("cannot cancel after payment", func(t *testing.T) {
		paid, err := NewInvoice("INV-202506-0002", uuid.New(), date(2025, 6, 1), date(2025, 6, 30), sampleLines())
		require.NoError(t, err)
		require.NoError(t, paid.ApplyPayment(decimal.NewFromInt(100)))
		assert.Error(t, paid.Cancel())
	})
}
