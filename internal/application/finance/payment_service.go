package finance

import (
	"context"
	"fmt"
	"time"

	"github.com/dishankgupta/milk-subs-sub005/internal/domain/finance"
	"github.com/dishankgupta/milk-subs-sub005/internal/domain/partner"
	"github.com/dishankgupta/milk-subs-sub005/internal/domain/shared"
	"github.com/dishankgupta/milk-subs-sub005/internal/domain/shared/format"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PaymentService records payments and allocates them across invoices
type PaymentService struct {
	paymentRepo  finance.PaymentRepository
	invoiceRepo  finance.InvoiceRepository
	customerRepo partner.CustomerRepository
	logger       *zap.Logger
}

// NewPaymentService creates a new payment service
func NewPaymentService(
	paymentRepo finance.PaymentRepository,
	invoiceRepo finance.InvoiceRepository,
	customerRepo partner.CustomerRepository,
	logger *zap.Logger,
) *PaymentService {
	return &PaymentService{
		paymentRepo:  paymentRepo,
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		logger:       logger,
	}
}

// RecordPayment records money received from a customer. Explicit
// allocations are honored as given; otherwise the payment is applied
// to the customer's outstanding invoices oldest first. Any remainder
// stays unallocated as an advance.
func (s *PaymentService) RecordPayment(ctx context.Context, req RecordPaymentRequest) (*PaymentResponse, error) {
	if _, err := s.customerRepo.FindByID(ctx, req.CustomerID); err != nil {
		return nil, fmt.Errorf("failed to find customer: %w", err)
	}

	paymentDate := time.Now()
	if req.PaymentDate != "" {
		var err error
		paymentDate, err = format.ParseDate(req.PaymentDate)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_DATE", "Payment date must be in YYYY-MM-DD format")
		}
	}

	payment, err := finance.NewPayment(req.CustomerID, req.Amount, finance.PaymentMode(req.Mode), paymentDate, req.Reference, req.Notes)
	if err != nil {
		return nil, err
	}

	if len(req.Allocations) > 0 {
		if err := s.allocateExplicit(ctx, payment, req.Allocations); err != nil {
			return nil, err
		}
	} else {
		if err := s.allocateOldestFirst(ctx, payment); err != nil {
			return nil, err
		}
	}

	if err := s.paymentRepo.Save(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to save payment: %w", err)
	}

	s.logger.Info("payment recorded",
		zap.String("customer_id", req.CustomerID.String()),
		zap.String("amount", req.Amount.String()),
		zap.String("mode", req.Mode),
		zap.String("unallocated", payment.UnallocatedAmount().String()))

	response := ToPaymentResponse(payment)
	return &response, nil
}

func (s *PaymentService) allocateExplicit(ctx context.Context, payment *finance.Payment, allocations []AllocationRequest) error {
	for _, alloc := range allocations {
		invoice, err := s.invoiceRepo.FindByID(ctx, alloc.InvoiceID)
		if err != nil {
			return fmt.Errorf("failed to find invoice: %w", err)
		}
		if invoice.CustomerID != payment.CustomerID {
			return shared.NewDomainError("INVOICE_MISMATCH", "Invoice belongs to a different customer")
		}
		if err := invoice.ApplyPayment(alloc.Amount); err != nil {
			return err
		}
		if err := payment.Allocate(invoice.ID, alloc.Amount); err != nil {
			return err
		}
		if err := s.invoiceRepo.SaveWithLock(ctx, invoice); err != nil {
			return err
		}
	}
	return nil
}

func (s *PaymentService) allocateOldestFirst(ctx context.Context, payment *finance.Payment) error {
	invoices, err := s.invoiceRepo.FindOutstandingByCustomer(ctx, payment.CustomerID)
	if err != nil {
		return fmt.Errorf("failed to load outstanding invoices: %w", err)
	}

	for i := range invoices {
		remaining := payment.UnallocatedAmount()
		if remaining.IsZero() {
			break
		}
		invoice := &invoices[i]
		amount := decimal.Min(remaining, invoice.Outstanding())
		if amount.IsZero() {
			continue
		}
		if err := invoice.ApplyPayment(amount); err != nil {
			return err
		}
		if err := payment.Allocate(invoice.ID, amount); err != nil {
			return err
		}
		if err := s.invoiceRepo.SaveWithLock(ctx, invoice); err != nil {
			return err
		}
	}
	return nil
}

// AllocatePayment applies part of an existing payment's unallocated
// amount to an invoice
func (s *PaymentService) AllocatePayment(ctx context.Context, paymentID uuid.UUID, req AllocationRequest) (*PaymentResponse, error) {
	payment, err := s.paymentRepo.FindByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	invoice, err := s.invoiceRepo.FindByID(ctx, req.InvoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to find invoice: %w", err)
	}
	if invoice.CustomerID != payment.CustomerID {
		return nil, shared.NewDomainError("INVOICE_MISMATCH", "Invoice belongs to a different customer")
	}

	if err := invoice.ApplyPayment(req.Amount); err != nil {
		return nil, err
	}
	if err := payment.Allocate(invoice.ID, req.Amount); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.SaveWithLock(ctx, invoice); err != nil {
		return nil, err
	}
	if err := s.paymentRepo.SaveWithLock(ctx, payment); err != nil {
		return nil, err
	}

	response := ToPaymentResponse(payment)
	return &response, nil
}

// VoidPayment cancels a payment, reversing every allocation on its invoices
func (s *PaymentService) VoidPayment(ctx context.Context, id uuid.UUID, req VoidPaymentRequest) error {
	payment, err := s.paymentRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	for _, alloc := range payment.Allocations {
		invoice, err := s.invoiceRepo.FindByID(ctx, alloc.InvoiceID)
		if err != nil {
			return fmt.Errorf("failed to find allocated invoice: %w", err)
		}
		if err := invoice.ReversePayment(alloc.Amount); err != nil {
			return err
		}
		if err := s.invoiceRepo.SaveWithLock(ctx, invoice); err != nil {
			return err
		}
	}

	if err := payment.Void(req.Reason); err != nil {
		return err
	}
	if err := s.paymentRepo.SaveWithLock(ctx, payment); err != nil {
		return err
	}

	s.logger.Info("payment voided",
		zap.String("payment_id", id.String()),
		zap.String("reason", req.Reason))

	return nil
}

// GetPayment retrieves a payment by ID
func (s *PaymentService) GetPayment(ctx context.Context, id uuid.UUID) (*PaymentResponse, error) {
	payment, err := s.paymentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToPaymentResponse(payment)
	return &response, nil
}

// ListPayments returns payments matching the filter
func (s *PaymentService) ListPayments(ctx context.Context, filter PaymentListFilter) ([]PaymentResponse, int64, error) {
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
	if filter.Mode != "" {
		domainFilter.Filters["mode"] = filter.Mode
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}

	if filter.FromDate != "" && filter.ToDate != "" {
		from, err := format.ParseDate(filter.FromDate)
		if err != nil {
			return nil, 0, shared.NewDomainError("INVALID_DATE", "From date must be in YYYY-MM-DD format")
		}
		to, err := format.ParseDate(filter.ToDate)
		if err != nil {
			return nil, 0, shared.NewDomainError("INVALID_DATE", "To date must be in YYYY-MM-DD format")
		}
		payments, err := s.paymentRepo.FindByDateRange(ctx, from, to, domainFilter)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to list payments: %w", err)
		}
		total, err := s.paymentRepo.Count(ctx, domainFilter)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to count payments: %w", err)
		}
		return ToPaymentResponses(payments), total, nil
	}

	payments, err := s.paymentRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payments: %w", err)
	}
	total, err := s.paymentRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count payments: %w", err)
	}

	return ToPaymentResponses(payments), total, nil
}

// CustomerBalance summarizes what a customer owes: opening balance plus
// invoice outstanding minus unallocated payments.
type CustomerBalance struct {
	CustomerID         uuid.UUID       `json:"customer_id"`
	OpeningBalance     decimal.Decimal `json:"opening_balance"`
	InvoiceOutstanding decimal.Decimal `json:"invoice_outstanding"`
	UnallocatedPaid    decimal.Decimal `json:"unallocated_paid"`
	NetOutstanding     decimal.Decimal `json:"net_outstanding"`
}

// GetCustomerBalance computes a customer's effective outstanding
func (s *PaymentService) GetCustomerBalance(ctx context.Context, customerID uuid.UUID) (*CustomerBalance, error) {
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	outstanding, err := s.invoiceRepo.SumOutstandingByCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum outstanding: %w", err)
	}
	unallocated, err := s.paymentRepo.SumUnallocatedByCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum unallocated payments: %w", err)
	}

	return &CustomerBalance{
		CustomerID:         customerID,
		OpeningBalance:     customer.OpeningBalance,
		InvoiceOutstanding: outstanding,
		UnallocatedPaid:    unallocated,
		NetOutstanding:     customer.OpeningBalance.Add(outstanding).Sub(unallocated),
	}, nil
}
