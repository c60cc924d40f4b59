package product

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"storefront/internal/platform/metrics"
	"storefront/internal/product/models"
	"storefront/internal/product/store"
	dErrors "storefront/pkg/domain-errors"
	"storefront/pkg/platform/sentinel"
	pstrings "storefront/pkg/platform/strings"
)

// Service orchestrates catalog management. Create and Update bodies are
// validated against the product schema so clients get every field error in
// one response.
type Service struct {
	store   store.Store
	logger  *slog.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithClock overrides the time source, used by tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService constructs a Service.
func NewService(st store.Store, opts ...Option) *Service {
	s := &Service{store: st, logger: slog.Default(), now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create validates the raw body and inserts the product owned by vendorID.
func (s *Service) Create(ctx context.Context, vendorID uuid.UUID, body map[string]any) (*models.Product, error) {
	v, err := createObject.Validate(body)
	if err != nil {
		s.countValidationFailure()
		return nil, err
	}
	patch := decodePatch(v)

	p, err := models.NewProduct(uuid.New(), vendorID, patch.name, patch.price, patch.status, s.now().UTC())
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeInvariantViolation) {
			return nil, dErrors.New(dErrors.CodeValidation, err.Error())
		}
		return nil, err
	}
	p.Description = patch.description
	p.SalePrice = patch.salePrice
	p.Tags = pstrings.DedupeAndTrim(patch.tags)
	p.Metadata = patch.metadata
	if err := p.CheckPricing(); err != nil {
		return nil, err
	}

	if err := s.store.Create(ctx, p); err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "failed to create product", err)
	}
	s.logger.InfoContext(ctx, "product created", "product_id", p.ID, "vendor_id", vendorID)
	return p, nil
}

// Get loads a product by ID.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	p, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "product not found")
		}
		return nil, dErrors.Wrap(dErrors.CodeInternal, "failed to load product", err)
	}
	return p, nil
}

// List returns a filtered page of products and the total match count.
func (s *Service) List(ctx context.Context, f store.Filter, page, size int) ([]*models.Product, int, error) {
	if f.MinPrice != nil && f.MaxPrice != nil && *f.MinPrice > *f.MaxPrice {
		return nil, 0, dErrors.New(dErrors.CodeValidation, "min_price cannot exceed max_price")
	}
	products, total, err := s.store.List(ctx, f, page, size)
	if err != nil {
		return nil, 0, dErrors.Wrap(dErrors.CodeInternal, "failed to list products", err)
	}
	return products, total, nil
}

// Update validates the raw body and replaces the product. Vendors may only
// touch their own products; admins may touch any.
func (s *Service) Update(ctx context.Context, callerID uuid.UUID, admin bool, id uuid.UUID, body map[string]any) (*models.Product, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !admin && p.VendorID != callerID {
		return nil, dErrors.New(dErrors.CodeForbidden, "cannot modify another vendor's product")
	}

	v, err := createObject.Validate(body)
	if err != nil {
		s.countValidationFailure()
		return nil, err
	}
	patch := decodePatch(v)

	if patch.name == "" || len(patch.name) > 200 {
		return nil, dErrors.New(dErrors.CodeValidation, "name must be 1-200 characters")
	}
	p.Name = patch.name
	p.Description = patch.description
	p.Price = patch.price
	p.SalePrice = patch.salePrice
	p.Status = patch.status
	p.Tags = pstrings.DedupeAndTrim(patch.tags)
	p.Metadata = patch.metadata
	if err := p.CheckPricing(); err != nil {
		return nil, err
	}
	p.UpdatedAt = s.now().UTC()

	if err := s.store.Update(ctx, p); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "product not found")
		}
		return nil, dErrors.Wrap(dErrors.CodeInternal, "failed to update product", err)
	}
	return p, nil
}

// Delete removes the product under the same ownership guard as Update.
func (s *Service) Delete(ctx context.Context, callerID uuid.UUID, admin bool, id uuid.UUID) error {
	p, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !admin && p.VendorID != callerID {
		return dErrors.New(dErrors.CodeForbidden, "cannot delete another vendor's product")
	}
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "product not found")
		}
		return dErrors.Wrap(dErrors.CodeInternal, "failed to delete product", err)
	}
	s.logger.InfoContext(ctx, "product deleted", "product_id", id)
	return nil
}

func (s *Service) countValidationFailure() {
	if s.metrics != nil {
		s.metrics.ValidationFailures.WithLabelValues(createObject.Name()).Inc()
	}
}
