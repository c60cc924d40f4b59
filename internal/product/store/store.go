// Package store persists products. Implementations return sentinel errors;
// the service layer translates them into coded domain errors.
package store

import (
	"context"

	"github.com/google/uuid"

	"storefront/internal/product/models"
)

// Filter narrows List results. Nil fields are unconstrained. Price bounds
// compare against the effective price so sales are honored.
type Filter struct {
	Status   *models.Status
	MinPrice *float64
	MaxPrice *float64
	Tag      *string
}

// Store is the product persistence contract.
type Store interface {
	Create(ctx context.Context, p *models.Product) error
	Get(ctx context.Context, id uuid.UUID) (*models.Product, error)
	List(ctx context.Context, f Filter, page, size int) ([]*models.Product, int, error)
	Update(ctx context.Context, p *models.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}
