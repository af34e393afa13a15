package partner

import (
	"regexp"
	"time"

	"github.com/dishankgupta/milk-subs-sub005/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CustomerStatus represents the status of a customer
type CustomerStatus string

const (
	CustomerStatusActive   CustomerStatus = "active"
	CustomerStatusInactive CustomerStatus = "inactive"
)

// DeliveryTime represents the preferred delivery slot for a customer
type DeliveryTime string

const (
	DeliveryTimeMorning DeliveryTime = "morning"
	DeliveryTimeEvening DeliveryTime = "evening"
)

// PaymentMethod represents how a customer settles dues
type PaymentMethod string

const (
	PaymentMethodMonthly PaymentMethod = "monthly" // Billed at end of cycle
	PaymentMethodPrepaid PaymentMethod = "prepaid" // Pays in advance
)

// Customer represents a delivery customer in the partner context
// It is the aggregate root for customer-related operations
type Customer struct {
	shared.BaseAggregateRoot
	BillingName    string          `gorm:"type:varchar(200);not null;index"`
	ContactPerson  string          `gorm:"type:varchar(100);not null"`
	Address        string          `gorm:"type:text;not null"`
	PhonePrimary   string          `gorm:"type:varchar(20);not null;index"`
	PhoneSecondary string          `gorm:"type:varchar(20)"`
	PhoneTertiary  string          `gorm:"type:varchar(20)"`
	RouteID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	DeliveryTime   DeliveryTime    `gorm:"type:varchar(20);not null;default:'morning'"`
	PaymentMethod  PaymentMethod   `gorm:"type:varchar(20);not null;default:'monthly'"`
	BillingCycleDay int            `gorm:"not null;default:1"` // Day of month the billing cycle starts
	OpeningBalance decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"` // Dues carried in from before onboarding
	Status         CustomerStatus  `gorm:"type:varchar(20);not null;default:'active'"`
	Notes          string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Customer) TableName() string {
	return "customers"
}

// NewCustomer creates a new customer with required fields
func NewCustomer(billingName, contactPerson, address, phonePrimary string, routeID uuid.UUID, deliveryTime DeliveryTime) (*Customer, error) {
	if err := validateBillingName(billingName); err != nil {
		return nil, err
	}
	if err := validateContactPerson(contactPerson); err != nil {
		return nil, err
	}
	if address == "" {
		return nil, shared.NewDomainError("INVALID_ADDRESS", "Address cannot be empty")
	}
	if err := validatePhone(phonePrimary); err != nil {
		return nil, err
	}
	if routeID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ROUTE", "Route is required")
	}
	if err := validateDeliveryTime(deliveryTime); err != nil {
		return nil, err
	}

	customer := &Customer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		BillingName:       billingName,
		ContactPerson:     contactPerson,
		Address:           address,
		PhonePrimary:      phonePrimary,
		RouteID:           routeID,
		DeliveryTime:      deliveryTime,
		PaymentMethod:     PaymentMethodMonthly,
		BillingCycleDay:   1,
		OpeningBalance:    decimal.Zero,
		Status:            CustomerStatusActive,
	}

	customer.AddDomainEvent(NewCustomerCreatedEvent(customer))

	return customer, nil
}

// Update updates the customer's basic information
func (c *Customer) Update(billingName, contactPerson, address string) error {
	if err := validateBillingName(billingName); err != nil {
		return err
	}
	if err := validateContactPerson(contactPerson); err != nil {
		return err
	}
	if address == "" {
		return shared.NewDomainError("INVALID_ADDRESS", "Address cannot be empty")
	}

	c.BillingName = billingName
	c.ContactPerson = contactPerson
	c.Address = address
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewCustomerUpdatedEvent(c))

	return nil
}

// SetPhones sets the customer's contact numbers.
// The primary number is required; up to two alternates are optional.
func (c *Customer) SetPhones(primary, secondary, tertiary string) error {
	if err := validatePhone(primary); err != nil {
		return err
	}
	if secondary != "" {
		if err := validatePhone(secondary); err != nil {
			return err
		}
	}
	if tertiary != "" {
		if err := validatePhone(tertiary); err != nil {
			return err
		}
	}

	c.PhonePrimary = primary
	c.PhoneSecondary = secondary
	c.PhoneTertiary = tertiary
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// AssignRoute moves the customer to a different delivery route
func (c *Customer) AssignRoute(routeID uuid.UUID, deliveryTime DeliveryTime) error {
	if routeID == uuid.Nil {
		return shared.NewDomainError("INVALID_ROUTE", "Route is required")
	}
	if err := validateDeliveryTime(deliveryTime); err != nil {
		return err
	}

	oldRouteID := c.RouteID
	c.RouteID = routeID
	c.DeliveryTime = deliveryTime
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	if oldRouteID != routeID {
		c.AddDomainEvent(NewCustomerRouteChangedEvent(c, oldRouteID, routeID))
	}

	return nil
}

// SetPaymentMethod sets how the customer settles dues
func (c *Customer) SetPaymentMethod(method PaymentMethod) error {
	if err := validatePaymentMethod(method); err != nil {
		return err
	}

	c.PaymentMethod = method
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetBillingCycleDay sets the day of month the billing cycle starts
func (c *Customer) SetBillingCycleDay(day int) error {
	if day < 1 || day > 31 {
		return shared.NewDomainError("INVALID_BILLING_CYCLE_DAY", "Billing cycle day must be between 1 and 31")
	}

	c.BillingCycleDay = day
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetOpeningBalance sets the dues carried in from before onboarding
func (c *Customer) SetOpeningBalance(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return shared.NewDomainError("INVALID_OPENING_BALANCE", "Opening balance cannot be negative")
	}

	c.OpeningBalance = amount
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetNotes sets the customer's notes
func (c *Customer) SetNotes(notes string) {
	c.Notes = notes
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// Activate activates the customer
func (c *Customer) Activate() error {
	if c.Status == CustomerStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Customer is already active")
	}

	oldStatus := c.Status
	c.Status = CustomerStatusActive
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewCustomerStatusChangedEvent(c, oldStatus, CustomerStatusActive))

	return nil
}

// Deactivate deactivates the customer.
// Deactivation pauses deliveries; subscriptions for the customer are
// skipped during order generation while inactive.
func (c *Customer) Deactivate() error {
	if c.Status == CustomerStatusInactive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Customer is already inactive")
	}

	oldStatus := c.Status
	c.Status = CustomerStatusInactive
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewCustomerStatusChangedEvent(c, oldStatus, CustomerStatusInactive))

	return nil
}

// IsActive returns true if the customer is active
func (c *Customer) IsActive() bool {
	return c.Status == CustomerStatusActive
}

// IsPrepaid returns true if the customer pays in advance
func (c *Customer) IsPrepaid() bool {
	return c.PaymentMethod == PaymentMethodPrepaid
}

// Validation functions

func validateBillingName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Billing name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Billing name cannot exceed 200 characters")
	}
	return nil
}

func validateContactPerson(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_CONTACT_PERSON", "Contact person cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_CONTACT_PERSON", "Contact person cannot exceed 100 characters")
	}
	return nil
}

func validateDeliveryTime(t DeliveryTime) error {
	switch t {
	case DeliveryTimeMorning, DeliveryTimeEvening:
		return nil
	default:
		return shared.NewDomainError("INVALID_DELIVERY_TIME", "Delivery time must be 'morning' or 'evening'")
	}
}

func validatePaymentMethod(m PaymentMethod) error {
	switch m {
	case PaymentMethodMonthly, PaymentMethodPrepaid:
		return nil
	default:
		return shared.NewDomainError("INVALID_PAYMENT_METHOD", "Payment method must be 'monthly' or 'prepaid'")
	}
}

func validatePhone(phone string) error {
	if phone == "" {
		return shared.NewDomainError("INVALID_PHONE", "Phone number cannot be empty")
	}
	if len(phone) > 20 {
		return shared.NewDomainError("INVALID_PHONE", "Phone number cannot exceed 20 characters")
	}
	validPhone := regexp.MustCompile(`^[\d\s\-\+]+$`)
	if !validPhone.MatchString(phone) {
		return shared.NewDomainError("INVALID_PHONE", "Invalid phone number format")
	}
	return nil
}
