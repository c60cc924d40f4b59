// Package store persists user aggregates. Implementations return sentinel
// errors; the service layer translates them into domain errors.
package store

import (
	"context"

	"github.com/google/uuid"

	"storefront/internal/user/models"
)

// Store is the persistence port for users.
type Store interface {
	// Create inserts a user; sentinel.ErrConflict if the email is taken.
	Create(ctx context.Context, u *models.User) error
	// GetByID returns a user; sentinel.ErrNotFound if absent.
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	// GetByEmail returns a user by email; sentinel.ErrNotFound if absent.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// List returns one page of users ordered by creation time, plus the
	// total count. page is 1-based.
	List(ctx context.Context, page, size int) ([]*models.User, int, error)
	// Update replaces a stored user; sentinel.ErrNotFound if absent,
	// sentinel.ErrConflict if the new email is taken by another user.
	Update(ctx context.Context, u *models.User) error
	// Delete removes a user; sentinel.ErrNotFound if absent.
	Delete(ctx context.Context, id uuid.UUID) error
}
