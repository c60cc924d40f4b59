package user

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"storefront/internal/user/models"
	"storefront/internal/user/store"
	dErrors "storefront/pkg/domain-errors"
	"storefront/pkg/platform/sentinel"
	"storefront/pkg/secrets"
)

// Service orchestrates account registration, authentication and management.
type Service struct {
	store  store.Store
	logger *slog.Logger
	now    func() time.Time
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
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

// Register creates a customer account with default preferences.
func (s *Service) Register(ctx context.Context, email, password string, profile models.Profile) (*models.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if len(password) < 8 {
		return nil, dErrors.New(dErrors.CodeValidation, "password must be at least 8 characters")
	}

	hash, err := secrets.Hash(password)
	if err != nil {
		return nil, err
	}

	u, err := models.NewUser(uuid.New(), email, hash, models.RoleCustomer, profile, models.DefaultPreferences(), s.now().UTC())
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeInvariantViolation) {
			return nil, dErrors.New(dErrors.CodeValidation, err.Error())
		}
		return nil, err
	}

	if err := s.store.Create(ctx, u); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "email already registered")
		}
		return nil, dErrors.Wrap(dErrors.CodeInternal, "failed to create user", err)
	}

	s.logger.InfoContext(ctx, "user registered", "user_id", u.ID, "role", u.Role)
	return u, nil
}

// Authenticate checks credentials and account state, returning the user on
// success. Unknown email and bad password produce the same error so callers
// cannot probe for registered addresses.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	u, err := s.store.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid credentials")
		}
		return nil, dErrors.Wrap(dErrors.CodeInternal, "failed to load user", err)
	}
	if err := secrets.Verify(password, u.PasswordHash); err != nil {
		return nil, err
	}
	if !u.IsActive() {
		return nil, dErrors.New(dErrors.CodeForbidden, "account is not active")
	}
	return u, nil
}

// Get loads a user by ID.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.User, error) {
	u, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "user not found")
		}
		return nil, dErrors.Wrap(dErrors.CodeInternal, "failed to load user", err)
	}
	return u, nil
}

// List returns a page of users and the total count.
func (s *Service) List(ctx context.Context, page, size int) ([]*models.User, int, error) {
	users, total, err := s.store.List(ctx, page, size)
	if err != nil {
		return nil, 0, dErrors.Wrap(dErrors.CodeInternal, "failed to list users", err)
	}
	return users, total, nil
}

// UpdateProfile replaces the user's profile.
func (s *Service) UpdateProfile(ctx context.Context, id uuid.UUID, profile models.Profile) (*models.User, error) {
	return s.update(ctx, id, func(u *models.User) error {
		if profile.FirstName == "" || len(profile.FirstName) > 50 {
			return dErrors.New(dErrors.CodeValidation, "first_name must be 1-50 characters")
		}
		if profile.LastName == "" || len(profile.LastName) > 50 {
			return dErrors.New(dErrors.CodeValidation, "last_name must be 1-50 characters")
		}
		u.Profile = profile
		return nil
	})
}

// UpdatePreferences replaces the user's preference set.
func (s *Service) UpdatePreferences(ctx context.Context, id uuid.UUID, prefs models.Preferences) (*models.User, error) {
	return s.update(ctx, id, func(u *models.User) error {
		u.Preferences = prefs
		return nil
	})
}

// UpdateStatus moves the account to a new lifecycle state. Admin only,
// enforced at the transport layer.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status models.Status) (*models.User, error) {
	return s.update(ctx, id, func(u *models.User) error {
		if !status.IsValid() {
			return dErrors.New(dErrors.CodeValidation, "invalid status")
		}
		u.Status = status
		return nil
	})
}

// Delete removes the account.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "user not found")
		}
		return dErrors.Wrap(dErrors.CodeInternal, "failed to delete user", err)
	}
	s.logger.InfoContext(ctx, "user deleted", "user_id", id)
	return nil
}

func (s *Service) update(ctx context.Context, id uuid.UUID, mutate func(*models.User) error) (*models.User, error) {
	u, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := mutate(u); err != nil {
		return nil, err
	}
	u.UpdatedAt = s.now().UTC()
	if err := s.store.Update(ctx, u); err != nil {
		switch {
		case errors.Is(err, sentinel.ErrNotFound):
			return nil, dErrors.New(dErrors.CodeNotFound, "user not found")
		case errors.Is(err, sentinel.ErrConflict):
			return nil, dErrors.New(dErrors.CodeConflict, "email already registered")
		default:
			return nil, dErrors.Wrap(dErrors.CodeInternal, "failed to update user", err)
		}
	}
	return u, nil
}
