package models

import (
	"net/mail"
	"time"

	"github.com/google/uuid"

	dErrors "storefront/pkg/domain-errors"
)

// Role is the user's authorization role.
type Role string

const (
	RoleCustomer  Role = "customer"
	RoleAdmin     Role = "admin"
	RoleModerator Role = "moderator"
	RoleVendor    Role = "vendor"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleCustomer, RoleAdmin, RoleModerator, RoleVendor:
		return true
	}
	return false
}

// Status is the account lifecycle state.
type Status string

const (
	StatusActive    Status = "active"
	StatusInactive  Status = "inactive"
	StatusSuspended Status = "suspended"
	StatusPending   Status = "pending"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusSuspended, StatusPending:
		return true
	}
	return false
}

// Profile is the user's display information.
type Profile struct {
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	Phone       *string    `json:"phone,omitempty"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	Bio         *string    `json:"bio,omitempty"`
	AvatarURL   *string    `json:"avatar_url,omitempty"`
}

// Preferences are per-user settings with defaults applied at creation.
type Preferences struct {
	Newsletter    bool   `json:"newsletter"`
	Notifications bool   `json:"notifications"`
	Language      string `json:"language"`
	Timezone      string `json:"timezone"`
	Currency      string `json:"currency"`
	Theme         string `json:"theme"`
}

// DefaultPreferences returns the preference set applied when a user supplies
// none.
func DefaultPreferences() Preferences {
	return Preferences{
		Newsletter:    false,
		Notifications: true,
		Language:      "en",
		Timezone:      "UTC",
		Currency:      "USD",
		Theme:         "auto",
	}
}

// User is the aggregate root for an account.
//
// Invariants:
//   - Email is non-empty and well-formed; unique across the store
//   - PasswordHash is never serialized
//   - Role and Status come from their closed enumerations
//   - Profile first and last name are non-empty, at most 50 characters
type User struct {
	ID           uuid.UUID   `json:"id"`
	Email        string      `json:"email"`
	PasswordHash string      `json:"-"`
	Role         Role        `json:"role"`
	Status       Status      `json:"status"`
	Profile      Profile     `json:"profile"`
	Preferences  Preferences `json:"preferences"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// NewUser constructs a user enforcing the aggregate invariants.
func NewUser(id uuid.UUID, email, passwordHash string, role Role, profile Profile, prefs Preferences, now time.Time) (*User, error) {
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "email is not a valid address")
	}
	if passwordHash == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "password hash cannot be empty")
	}
	if !role.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "invalid role")
	}
	if profile.FirstName == "" || len(profile.FirstName) > 50 {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "first_name must be 1-50 characters")
	}
	if profile.LastName == "" || len(profile.LastName) > 50 {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "last_name must be 1-50 characters")
	}
	return &User{
		ID:           id,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		Status:       StatusActive,
		Profile:      profile,
		Preferences:  prefs,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// IsActive reports whether the account can authenticate.
func (u *User) IsActive() bool {
	return u.Status == StatusActive
}
