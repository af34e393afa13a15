package catalog

import (
	"strings"
	"time"

	"github.com/dishankgupta/milk-subs-sub005/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ProductStatus represents the status of a product
type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "active"
	ProductStatusInactive ProductStatus = "inactive"
)

var hundred = decimal.NewFromInt(100)

// Product represents a sellable item in the catalog.
// Subscription-eligible products (milk variants) can be attached to
// daily subscriptions; the rest are manual-sale only.
type Product struct {
	shared.BaseAggregateRoot
	Code                 string          `gorm:"type:varchar(20);not null;uniqueIndex"` // Short code, e.g. CM for cow milk
	Name                 string          `gorm:"type:varchar(200);not null"`
	CurrentPrice         decimal.Decimal `gorm:"type:decimal(12,2);not null"` // Price per unit of measure
	UnitOfMeasure        string          `gorm:"type:varchar(20);not null"`   // liter, kg, pcs
	GSTRate              decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	GSTInclusive         bool            `gorm:"not null;default:true"` // Whether CurrentPrice already includes GST
	SubscriptionEligible bool            `gorm:"not null;default:false"`
	Status               ProductStatus   `gorm:"type:varchar(20);not null;default:'active'"`
	SortOrder            int             `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product with required fields
func NewProduct(code, name string, price decimal.Decimal, unitOfMeasure string, gstRate decimal.Decimal) (*Product, error) {
	if err := validateProductCode(code); err != nil {
		return nil, err
	}
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if err := validatePrice(price); err != nil {
		return nil, err
	}
	if err := validateUnitOfMeasure(unitOfMeasure); err != nil {
		return nil, err
	}
	if err := validateGSTRate(gstRate); err != nil {
		return nil, err
	}

	product := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              strings.ToUpper(code),
		Name:              name,
		CurrentPrice:      price,
		UnitOfMeasure:     unitOfMeasure,
		GSTRate:           gstRate,
		GSTInclusive:      true,
		Status:            ProductStatusActive,
	}

	product.AddDomainEvent(NewProductCreatedEvent(product))

	return product, nil
}

// Update updates the product's basic information
func (p *Product) Update(name, unitOfMeasure string) error {
	if err := validateProductName(name); err != nil {
		return err
	}
	if err := validateUnitOfMeasure(unitOfMeasure); err != nil {
		return err
	}

	p.Name = name
	p.UnitOfMeasure = unitOfMeasure
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetPrice changes the product's current price.
// Existing subscriptions pick up the new price from the next generated order.
func (p *Product) SetPrice(price decimal.Decimal) error {
	if err := validatePrice(price); err != nil {
		return err
	}

	oldPrice := p.CurrentPrice
	p.CurrentPrice = price
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	if !oldPrice.Equal(price) {
		p.AddDomainEvent(NewProductPriceChangedEvent(p, oldPrice, price))
	}

	return nil
}

// SetGST sets the GST rate and whether the price includes it
func (p *Product) SetGST(rate decimal.Decimal, inclusive bool) error {
	if err := validateGSTRate(rate); err != nil {
		return err
	}

	p.GSTRate = rate
	p.GSTInclusive = inclusive
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetSubscriptionEligible marks whether the product can be subscribed to
func (p *Product) SetSubscriptionEligible(eligible bool) {
	p.SubscriptionEligible = eligible
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// SetSortOrder sets the display order
func (p *Product) SetSortOrder(order int) {
	p.SortOrder = order
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// Activate activates the product
func (p *Product) Activate() error {
	if p.Status == ProductStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Product is already active")
	}
	p.Status = ProductStatusActive
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// Deactivate deactivates the product
func (p *Product) Deactivate() error {
	if p.Status == ProductStatusInactive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Product is already inactive")
	}
	p.Status = ProductStatusInactive
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// IsActive returns true if the product is active
func (p *Product) IsActive() bool {
	return p.Status == ProductStatusActive
}

// Validation functions

func validateProductCode(code string) error {
	if code == "" {
		return shared.NewDomainError("INVALID_CODE", "Product code cannot be empty")
	}
	if len(code) > 20 {
		return shared.NewDomainError("INVALID_CODE", "Product code cannot exceed 20 characters")
	}
	for _, r := range code {
		if !((r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-') {
			return shared.NewDomainError("INVALID_CODE", "Product code can only contain letters, numbers, underscores, and hyphens")
		}
	}
	return nil
}

func validateProductName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}

func validatePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	return nil
}

func validateUnitOfMeasure(uom string) error {
	if uom == "" {
		return shared.NewDomainError("INVALID_UNIT", "Unit of measure cannot be empty")
	}
	if len(uom) > 20 {
		return shared.NewDomainError("INVALID_UNIT", "Unit of measure cannot exceed 20 characters")
	}
	return nil
}

func validateGSTRate(rate decimal.Decimal) error {
	if rate.IsNegative() {
		return shared.NewDomainError("INVALID_GST_RATE", "GST rate cannot be negative")
	}
	if rate.GreaterThan(hundred) {
		return shared.NewDomainError("INVALID_GST_RATE", "GST rate cannot exceed 100")
	}
	return nil
}
