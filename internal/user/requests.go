package user

import (
	"strings"
	"time"

	"storefront/internal/user/models"
	dErrors "storefront/pkg/domain-errors"
)

// UpdateProfileRequest is the HTTP body for PUT /users/{id}/profile.
type UpdateProfileRequest struct {
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	Phone       *string `json:"phone,omitempty"`
	DateOfBirth *string `json:"date_of_birth,omitempty"`
	Bio         *string `json:"bio,omitempty"`
	AvatarURL   *string `json:"avatar_url,omitempty"`
}

// Validate implements httputil.Validatable.
func (r *UpdateProfileRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	if r.FirstName == "" {
		return dErrors.New(dErrors.CodeValidation, "first_name is required")
	}
	if r.LastName == "" {
		return dErrors.New(dErrors.CodeValidation, "last_name is required")
	}
	if r.Bio != nil && len(*r.Bio) > 500 {
		return dErrors.New(dErrors.CodeValidation, "bio must be at most 500 characters")
	}
	if r.DateOfBirth != nil {
		if _, err := time.Parse("2006-01-02", *r.DateOfBirth); err != nil {
			return dErrors.New(dErrors.CodeValidation, "date_of_birth must be a YYYY-MM-DD date")
		}
	}
	return nil
}

// Profile converts the validated request to the domain profile.
func (r *UpdateProfileRequest) Profile() models.Profile {
	p := models.Profile{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Phone:     r.Phone,
		Bio:       r.Bio,
		AvatarURL: r.AvatarURL,
	}
	if r.DateOfBirth != nil {
		dob, _ := time.Parse("2006-01-02", *r.DateOfBirth)
		p.DateOfBirth = &dob
	}
	return p
}

// UpdatePreferencesRequest is the HTTP body for PUT /users/{id}/preferences.
type UpdatePreferencesRequest struct {
	Newsletter    bool   `json:"newsletter"`
	Notifications bool   `json:"notifications"`
	Language      string `json:"language"`
	Timezone      string `json:"timezone"`
	Currency      string `json:"currency"`
	Theme         string `json:"theme"`
}

// Validate implements httputil.Validatable. Empty fields fall back to the
// defaults so partial payloads stay usable.
func (r *UpdatePreferencesRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	defaults := models.DefaultPreferences()
	if r.Language == "" {
		r.Language = defaults.Language
	}
	if r.Timezone == "" {
		r.Timezone = defaults.Timezone
	}
	if r.Currency == "" {
		r.Currency = defaults.Currency
	}
	if r.Theme == "" {
		r.Theme = defaults.Theme
	}
	switch r.Theme {
	case "light", "dark", "auto":
	default:
		return dErrors.New(dErrors.CodeValidation, "theme must be one of light, dark, auto")
	}
	return nil
}

// Preferences converts the request to the domain preference set.
func (r *UpdatePreferencesRequest) Preferences() models.Preferences {
	return models.Preferences{
		Newsletter:    r.Newsletter,
		Notifications: r.Notifications,
		Language:      r.Language,
		Timezone:      r.Timezone,
		Currency:      r.Currency,
		Theme:         r.Theme,
	}
}

// UpdateStatusRequest is the HTTP body for PUT /users/{id}/status.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// Validate implements httputil.Validatable.
func (r *UpdateStatusRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if !models.Status(r.Status).IsValid() {
		return dErrors.New(dErrors.CodeValidation, "status must be one of active, inactive, suspended, pending")
	}
	return nil
}
