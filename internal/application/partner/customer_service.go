package partner

import (
	"context"
	"fmt"

	"github.com/dishankgupta/milk-subs-sub005/internal/domain/partner"
	"github.com/dishankgupta/milk-subs-sub005/internal/domain/shared"
	"github.com/google/uuid"
)

// CustomerService handles customer business logic
type CustomerService struct {
	customerRepo partner.CustomerRepository
	routeRepo    partner.RouteRepository
}

// NewCustomerService creates a new customer service
func NewCustomerService(customerRepo partner.CustomerRepository, routeRepo partner.RouteRepository) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		routeRepo:    routeRepo,
	}
}

// CreateCustomer creates a new customer
func (s *CustomerService) CreateCustomer(ctx context.Context, req CreateCustomerRequest) (*CustomerResponse, error) {
	exists, err := s.customerRepo.ExistsByBillingName(ctx, req.BillingName)
	if err != nil {
		return nil, fmt.Errorf("failed to check billing name: %w", err)
	}
	if exists {
		return nil, shared.NewDomainError("DUPLICATE_BILLING_NAME", "A customer with this billing name already exists")
	}

	route, err := s.routeRepo.FindByID(ctx, req.RouteID)
	if err != nil {
		return nil, fmt.Errorf("failed to find route: %w", err)
	}
	if !route.IsActive() {
		return nil, shared.NewDomainError("ROUTE_INACTIVE", "Cannot assign customer to an inactive route")
	}

	customer, err := partner.NewCustomer(
		req.BillingName,
		req.ContactPerson,
		req.Address,
		req.PhonePrimary,
		req.RouteID,
		partner.DeliveryTime(req.DeliveryTime),
	)
	if err != nil {
		return nil, err
	}

	if req.PhoneSecondary != "" || req.PhoneTertiary != "" {
		if err := customer.SetPhones(req.PhonePrimary, req.PhoneSecondary, req.PhoneTertiary); err != nil {
			return nil, err
		}
	}
	if req.PaymentMethod != "" {
		if err := customer.SetPaymentMethod(partner.PaymentMethod(req.PaymentMethod)); err != nil {
			return nil, err
		}
	}
	if req.BillingCycleDay != nil {
		if err := customer.SetBillingCycleDay(*req.BillingCycleDay); err != nil {
			return nil, err
		}
	}
	if req.OpeningBalance != nil {
		if err := customer.SetOpeningBalance(*req.OpeningBalance); err != nil {
			return nil, err
		}
	}
	if req.Notes != "" {
		customer.SetNotes(req.Notes)
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, fmt.Errorf("failed to save customer: %w", err)
	}

	response := ToCustomerResponse(customer)
	return &response, nil
}

// GetCustomer retrieves a customer by ID
func (s *CustomerService) GetCustomer(ctx context.Context, id uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToCustomerResponse(customer)
	return &response, nil
}

// UpdateCustomer updates an existing customer
func (s *CustomerService) UpdateCustomer(ctx context.Context, id uuid.UUID, req UpdateCustomerRequest) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.BillingName != nil && *req.BillingName != customer.BillingName {
		exists, err := s.customerRepo.ExistsByBillingName(ctx, *req.BillingName)
		if err != nil {
			return nil, fmt.Errorf("failed to check billing name: %w", err)
		}
		if exists {
			return nil, shared.NewDomainError("DUPLICATE_BILLING_NAME", "A customer with this billing name already exists")
		}
	}

	billingName := customer.BillingName
	contactPerson := customer.ContactPerson
	address := customer.Address
	if req.BillingName != nil {
		billingName = *req.BillingName
	}
	if req.ContactPerson != nil {
		contactPerson = *req.ContactPerson
	}
	if req.Address != nil {
		address = *req.Address
	}
	if err := customer.Update(billingName, contactPerson, address); err != nil {
		return nil, err
	}

	if req.PhonePrimary != nil || req.PhoneSecondary != nil || req.PhoneTertiary != nil {
		primary := customer.PhonePrimary
		secondary := customer.PhoneSecondary
		tertiary := customer.PhoneTertiary
		if req.PhonePrimary != nil {
			primary = *req.PhonePrimary
		}
		if req.PhoneSecondary != nil {
			secondary = *req.PhoneSecondary
		}
		if req.PhoneTertiary != nil {
			tertiary = *req.PhoneTertiary
		}
		if err := customer.SetPhones(primary, secondary, tertiary); err != nil {
			return nil, err
		}
	}

	if req.RouteID != nil || req.DeliveryTime != nil {
		routeID := customer.RouteID
		deliveryTime := customer.DeliveryTime
		if req.RouteID != nil {
			routeID = *req.RouteID
		}
		if req.DeliveryTime != nil {
			deliveryTime = partner.DeliveryTime(*req.DeliveryTime)
		}
		if routeID != customer.RouteID {
			route, err := s.routeRepo.FindByID(ctx, routeID)
			if err != nil {
				return nil, fmt.Errorf("failed to find route: %w", err)
			}
			if !route.IsActive() {
				return nil, shared.NewDomainError("ROUTE_INACTIVE", "Cannot assign customer to an inactive route")
			}
		}
		if err := customer.AssignRoute(routeID, deliveryTime); err != nil {
			return nil, err
		}
	}

	if req.PaymentMethod != nil {
		if err := customer.SetPaymentMethod(partner.PaymentMethod(*req.PaymentMethod)); err != nil {
			return nil, err
		}
	}
	if req.BillingCycleDay != nil {
		if err := customer.SetBillingCycleDay(*req.BillingCycleDay); err != nil {
			return nil, err
		}
	}
	if req.OpeningBalance != nil {
		if err := customer.SetOpeningBalance(*req.OpeningBalance); err != nil {
			return nil, err
		}
	}
	if req.Notes != nil {
		customer.SetNotes(*req.Notes)
	}

	if err := s.customerRepo.SaveWithLock(ctx, customer); err != nil {
		return nil, err
	}

	response := ToCustomerResponse(customer)
	return &response, nil
}

// ActivateCustomer activates a customer
func (s *CustomerService) ActivateCustomer(ctx context.Context, id uuid.UUID) error {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := customer.Activate(); err != nil {
		return err
	}
	return s.customerRepo.Save(ctx, customer)
}

// DeactivateCustomer deactivates a customer
func (s *CustomerService) DeactivateCustomer(ctx context.Context, id uuid.UUID) error {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := customer.Deactivate(); err != nil {
		return err
	}
	return s.customerRepo.Save(ctx, customer)
}

// DeleteCustomer removes a customer
func (s *CustomerService) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	if _, err := s.customerRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.customerRepo.Delete(ctx, id)
}

// ListCustomers returns customers matching the filter
func (s *CustomerService) ListCustomers(ctx context.Context, filter CustomerListFilter) ([]CustomerResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := shared.Filter{
		Search:   filter.Search,
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Filters:  make(map[string]interface{}),
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.RouteID != "" {
		domainFilter.Filters["route_id"] = filter.RouteID
	}
	if filter.DeliveryTime != "" {
		domainFilter.Filters["delivery_time"] = filter.DeliveryTime
	}

	customers, err := s.customerRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list customers: %w", err)
	}
	total, err := s.customerRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count customers: %w", err)
	}

	return ToCustomerResponses(customers), total, nil
}
