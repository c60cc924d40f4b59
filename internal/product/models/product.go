package models

import (
	"time"

	"github.com/google/uuid"

	dErrors "storefront/pkg/domain-errors"
)

// Status is the catalog lifecycle state.
type Status string

const (
	StatusDraft      Status = "draft"
	StatusPublished  Status = "published"
	StatusArchived   Status = "archived"
	StatusOutOfStock Status = "out_of_stock"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusPublished, StatusArchived, StatusOutOfStock:
		return true
	}
	return false
}

// Statuses returns the closed set of status literals.
func Statuses() []string {
	return []string{
		string(StatusDraft), string(StatusPublished),
		string(StatusArchived), string(StatusOutOfStock),
	}
}

// Product is a catalog entry.
//
// Price carries a three-way distinction: the field is always sent by clients,
// but a nil value means "price not yet set" (a draft without pricing), which
// is different from zero. SalePrice and Description may be omitted entirely.
//
// Invariants:
//   - Name is non-empty, at most 200 characters
//   - Price and SalePrice are non-negative when set
//   - SalePrice, when set, requires Price and must be below it
//   - Status comes from its closed enumeration
//   - Tags is never nil; Metadata is never nil
type Product struct {
	ID          uuid.UUID      `json:"id"`
	Name        string         `json:"name"`
	Description *string        `json:"description,omitempty"`
	Price       *float64       `json:"price"`
	SalePrice   *float64       `json:"sale_price,omitempty"`
	Status      Status         `json:"status"`
	Tags        []string       `json:"tags"`
	Metadata    map[string]any `json:"metadata"`
	VendorID    uuid.UUID      `json:"vendor_id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// NewProduct constructs a product enforcing the aggregate invariants.
func NewProduct(id uuid.UUID, vendorID uuid.UUID, name string, price *float64, status Status, now time.Time) (*Product, error) {
	if name == "" || len(name) > 200 {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "name must be 1-200 characters")
	}
	if price != nil && *price < 0 {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "price cannot be negative")
	}
	if !status.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "invalid status")
	}
	return &Product{
		ID:        id,
		Name:      name,
		Price:     price,
		Status:    status,
		Tags:      []string{},
		Metadata:  map[string]any{},
		VendorID:  vendorID,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// CheckPricing validates the price pair after mutation.
func (p *Product) CheckPricing() error {
	if p.Price != nil && *p.Price < 0 {
		return dErrors.New(dErrors.CodeValidation, "price cannot be negative")
	}
	if p.SalePrice != nil {
		if *p.SalePrice < 0 {
			return dErrors.New(dErrors.CodeValidation, "sale_price cannot be negative")
		}
		if p.Price == nil {
			return dErrors.New(dErrors.CodeValidation, "sale_price requires a price")
		}
		if *p.SalePrice >= *p.Price {
			return dErrors.New(dErrors.CodeValidation, "sale_price must be below price")
		}
	}
	return nil
}

// EffectivePrice returns the price a buyer pays, preferring an active sale.
// The second return is false when the product has no price set.
func (p *Product) EffectivePrice() (float64, bool) {
	if p.SalePrice != nil {
		return *p.SalePrice, true
	}
	if p.Price != nil {
		return *p.Price, true
	}
	return 0, false
}

// Purchasable reports whether the product can be added to an order.
func (p *Product) Purchasable() bool {
	_, priced := p.EffectivePrice()
	return p.Status == StatusPublished && priced
}
