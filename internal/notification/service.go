package notification

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"storefront/internal/platform/metrics"
	dErrors "storefront/pkg/domain-errors"
)

// Service validates, records and dispatches notifications. The body is the
// union's tagged form; id and created_at are filled in server-side when the
// client omits them, mirroring how the variants default those fields.
type Service struct {
	sink    Sink
	logger  *slog.Logger
	metrics *metrics.Metrics
	now     func() time.Time

	mu   sync.RWMutex
	sent []map[string]any
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

// NewService constructs a Service dispatching to sink.
func NewService(sink Sink, opts ...Option) *Service {
	s := &Service{sink: sink, logger: slog.Default(), now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Send validates the tagged body, dispatches it to the sink and returns the
// serialized form with every default applied.
func (s *Service) Send(ctx context.Context, body map[string]any) (map[string]any, error) {
	if body == nil {
		return nil, dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if _, ok := body["id"]; !ok {
		body["id"] = uuid.NewString()
	}
	if _, ok := body["created_at"]; !ok {
		body["created_at"] = s.now().UTC().Format(time.RFC3339Nano)
	}

	value, err := Notifications.Validate(body)
	if err != nil {
		if s.metrics != nil {
			s.metrics.ValidationFailures.WithLabelValues(Notifications.Name()).Inc()
		}
		return nil, err
	}

	dest, err := destination.Apply(value)
	if err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "failed to route notification", err)
	}

	id, _ := value.GetUUID("id")
	payload := value.Serialize()
	delivery := Delivery{
		ID:          id.String(),
		Type:        value.Variant(),
		Destination: dest,
		Payload:     payload,
	}
	if err := s.sink.Deliver(ctx, delivery); err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "failed to deliver notification", err)
	}

	s.mu.Lock()
	s.sent = append(s.sent, payload)
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.NotificationsPublished.WithLabelValues(value.Variant()).Inc()
	}
	s.logger.InfoContext(ctx, "notification dispatched",
		"notification_id", delivery.ID, "type", delivery.Type)
	return payload, nil
}

// List returns a page of dispatched notifications in send order, plus the
// total count.
func (s *Service) List(ctx context.Context, page, size int) ([]map[string]any, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := len(s.sent)
	start := (page - 1) * size
	if start >= total {
		return []map[string]any{}, total, nil
	}
	end := min(start+size, total)

	out := make([]map[string]any, end-start)
	copy(out, s.sent[start:end])
	return out, total, nil
}
