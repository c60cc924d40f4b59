package order

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"storefront/internal/order/models"
	"storefront/internal/order/store"
	productmodels "storefront/internal/product/models"
	"storefront/internal/platform/metrics"
	dErrors "storefront/pkg/domain-errors"
	"storefront/pkg/platform/sentinel"
	"storefront/pkg/schema"
)

// ProductCatalog is the slice of the product service order placement needs.
type ProductCatalog interface {
	Get(ctx context.Context, id uuid.UUID) (*productmodels.Product, error)
}

// ItemRequest is one requested order line.
type ItemRequest struct {
	ProductID uuid.UUID
	Quantity  int
}

// Service places and manages orders. The payment_method body is validated
// against the PaymentMethods union and immediately reduced to a masked
// summary; raw payment details are never stored.
type Service struct {
	store   *store.InMemory
	catalog ProductCatalog
	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer
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
func NewService(st *store.InMemory, catalog ProductCatalog, opts ...Option) *Service {
	s := &Service{
		store:   st,
		catalog: catalog,
		logger:  slog.Default(),
		tracer:  otel.Tracer("storefront/order"),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create validates the payment method, prices the requested items from the
// catalog and places a pending order.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, items []ItemRequest, payment map[string]any) (*models.Order, error) {
	ctx, span := s.tracer.Start(ctx, "order.create",
		trace.WithAttributes(attribute.Int("order.item_count", len(items))))
	defer span.End()

	if len(items) == 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "order requires at least one item")
	}

	value, err := PaymentMethods.Validate(payment)
	if err != nil {
		if s.metrics != nil {
			s.metrics.ValidationFailures.WithLabelValues(PaymentMethods.Name()).Inc()
		}
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.String("order.payment_type", value.Variant()))

	summary, err := paymentSummary.Apply(value)
	if err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "failed to summarize payment", err)
	}

	lines, err := s.priceItems(ctx, items)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	o, err := models.NewOrder(uuid.New(), userID, lines, value.Variant(), summary, s.now().UTC())
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeInvariantViolation) {
			return nil, dErrors.New(dErrors.CodeValidation, err.Error())
		}
		return nil, err
	}

	if err := s.store.Create(ctx, o); err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "failed to create order", err)
	}
	if s.metrics != nil {
		s.metrics.OrdersCreated.Inc()
	}
	s.logger.InfoContext(ctx, "order placed",
		"order_id", o.ID, "user_id", userID, "payment_type", o.PaymentType, "total", o.Total)
	return o, nil
}

// priceItems resolves every requested product, rejecting lines that are not
// purchasable. All line failures are accumulated so the buyer sees the whole
// problem list at once.
func (s *Service) priceItems(ctx context.Context, items []ItemRequest) ([]models.Item, error) {
	ctx, span := s.tracer.Start(ctx, "order.price_items")
	defer span.End()

	var errs schema.ErrorList
	lines := make([]models.Item, 0, len(items))
	for i, req := range items {
		path := "items." + strconv.Itoa(i)
		if req.Quantity <= 0 {
			errs = append(errs, &schema.FieldError{
				Code: schema.CodeInvalidField, Path: path + ".quantity",
				Message: "quantity must be positive",
			})
			continue
		}
		p, err := s.catalog.Get(ctx, req.ProductID)
		if err != nil {
			errs = append(errs, &schema.FieldError{
				Code: schema.CodeInvalidField, Path: path + ".product_id",
				Message: "product not found",
			})
			continue
		}
		price, priced := p.EffectivePrice()
		if !p.Purchasable() || !priced {
			errs = append(errs, &schema.FieldError{
				Code: schema.CodeInvalidField, Path: path + ".product_id",
				Message: "product is not available for purchase",
			})
			continue
		}
		lines = append(lines, models.Item{
			ProductID: p.ID,
			Name:      p.Name,
			Quantity:  req.Quantity,
			UnitPrice: price,
		})
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return lines, nil
}

// Get loads an order, hiding other users' orders unless the caller is admin.
func (s *Service) Get(ctx context.Context, callerID uuid.UUID, admin bool, id uuid.UUID) (*models.Order, error) {
	o, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "order not found")
		}
		return nil, dErrors.Wrap(dErrors.CodeInternal, "failed to load order", err)
	}
	if !admin && o.UserID != callerID {
		// Report not_found rather than forbidden so order IDs cannot be probed.
		return nil, dErrors.New(dErrors.CodeNotFound, "order not found")
	}
	return o, nil
}

// List returns the caller's orders, or every order for admins.
func (s *Service) List(ctx context.Context, callerID uuid.UUID, admin bool, page, size int) ([]*models.Order, int, error) {
	filterID := callerID
	if admin {
		filterID = uuid.Nil
	}
	orders, total, err := s.store.List(ctx, filterID, page, size)
	if err != nil {
		return nil, 0, dErrors.Wrap(dErrors.CodeInternal, "failed to list orders", err)
	}
	return orders, total, nil
}

// Cancel moves the caller's order to cancelled if it has not shipped.
func (s *Service) Cancel(ctx context.Context, callerID uuid.UUID, admin bool, id uuid.UUID) (*models.Order, error) {
	ctx, span := s.tracer.Start(ctx, "order.cancel")
	defer span.End()

	return s.transition(ctx, callerID, admin, id, models.StatusCancelled)
}

// UpdateStatus applies an admin-driven status move.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, next models.Status) (*models.Order, error) {
	ctx, span := s.tracer.Start(ctx, "order.update_status",
		trace.WithAttributes(attribute.String("order.next_status", string(next))))
	defer span.End()

	return s.transition(ctx, uuid.Nil, true, id, next)
}

func (s *Service) transition(ctx context.Context, callerID uuid.UUID, admin bool, id uuid.UUID, next models.Status) (*models.Order, error) {
	o, err := s.Get(ctx, callerID, admin, id)
	if err != nil {
		return nil, err
	}
	if err := o.Transition(next, s.now().UTC()); err != nil {
		return nil, err
	}
	if err := s.store.Update(ctx, o); err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "failed to update order", err)
	}
	s.logger.InfoContext(ctx, "order status changed", "order_id", o.ID, "status", o.Status)
	return o, nil
}
