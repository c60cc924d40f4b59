package user

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"storefront/internal/user/models"
	"storefront/internal/user/store"
	"storefront/pkg/requestcontext"
)

type UserHandlerSuite struct {
	suite.Suite
	router   chi.Router
	store    *store.InMemory
	svc      *Service
	admin    *models.User
	customer *models.User
}

func (s *UserHandlerSuite) SetupTest() {
	s.store = store.NewInMemory()
	s.svc = NewService(s.store)
	handler := NewHandler(s.svc, slog.New(slog.DiscardHandler))

	s.router = chi.NewRouter()
	handler.Register(s.router)

	s.admin = s.seedUser("admin@example.com", models.RoleAdmin)
	s.customer = s.seedUser("customer@example.com", models.RoleCustomer)
}

func TestUserHandlerSuite(t *testing.T) {
	suite.Run(t, new(UserHandlerSuite))
}

func (s *UserHandlerSuite) seedUser(email string, role models.Role) *models.User {
	u, err := models.NewUser(uuid.New(), email, "$2a$10$hash", role,
		models.Profile{FirstName: "Test", LastName: "User"},
		models.DefaultPreferences(), time.Now())
	s.Require().NoError(err)
	s.Require().NoError(s.store.Create(context.Background(), u))
	return u
}

// do issues a request with the caller's identity injected the way the auth
// middleware would.
func (s *UserHandlerSuite) do(caller *models.User, method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if caller != nil {
		ctx := requestcontext.WithUserID(req.Context(), caller.ID)
		ctx = requestcontext.WithUserRole(ctx, string(caller.Role))
		req = req.WithContext(ctx)
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *UserHandlerSuite) TestList() {
	s.Run("admin gets a page envelope", func() {
		rec := s.do(s.admin, http.MethodGet, "/users?page=1&size=1", nil)
		s.Require().Equal(http.StatusOK, rec.Code)

		var page struct {
			Items   []json.RawMessage `json:"items"`
			Total   int               `json:"total"`
			Pages   int               `json:"pages"`
			HasNext bool              `json:"has_next"`
		}
		s.Require().NoError(json.NewDecoder(rec.Body).Decode(&page))
		s.Len(page.Items, 1)
		s.Equal(2, page.Total)
		s.Equal(2, page.Pages)
		s.True(page.HasNext)
	})

	s.Run("customer is forbidden", func() {
		rec := s.do(s.customer, http.MethodGet, "/users", nil)
		s.Equal(http.StatusForbidden, rec.Code)
	})
}

func (s *UserHandlerSuite) TestGet() {
	s.Run("user reads own account without password hash", func() {
		rec := s.do(s.customer, http.MethodGet, "/users/"+s.customer.ID.String(), nil)
		s.Require().Equal(http.StatusOK, rec.Code)

		var body map[string]any
		s.Require().NoError(json.NewDecoder(rec.Body).Decode(&body))
		s.Equal(s.customer.Email, body["email"])
		s.NotContains(body, "password_hash")
	})

	s.Run("user cannot read another account", func() {
		rec := s.do(s.customer, http.MethodGet, "/users/"+s.admin.ID.String(), nil)
		s.Equal(http.StatusForbidden, rec.Code)
	})

	s.Run("admin reads any account", func() {
		rec := s.do(s.admin, http.MethodGet, "/users/"+s.customer.ID.String(), nil)
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("malformed id is a bad request", func() {
		rec := s.do(s.admin, http.MethodGet, "/users/not-a-uuid", nil)
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("unknown id is not found", func() {
		rec := s.do(s.admin, http.MethodGet, "/users/"+uuid.NewString(), nil)
		s.Equal(http.StatusNotFound, rec.Code)
	})
}

func (s *UserHandlerSuite) TestUpdateProfile() {
	s.Run("updates own profile", func() {
		rec := s.do(s.customer, http.MethodPut, "/users/"+s.customer.ID.String()+"/profile",
			map[string]any{"first_name": "Grace", "last_name": "Hopper"})
		s.Require().Equal(http.StatusOK, rec.Code)

		var body struct {
			Profile models.Profile `json:"profile"`
		}
		s.Require().NoError(json.NewDecoder(rec.Body).Decode(&body))
		s.Equal("Grace", body.Profile.FirstName)
	})

	s.Run("missing names fail validation", func() {
		rec := s.do(s.customer, http.MethodPut, "/users/"+s.customer.ID.String()+"/profile",
			map[string]any{"first_name": "", "last_name": "Hopper"})
		s.Equal(http.StatusUnprocessableEntity, rec.Code)
	})

	s.Run("bad date_of_birth fails validation", func() {
		rec := s.do(s.customer, http.MethodPut, "/users/"+s.customer.ID.String()+"/profile",
			map[string]any{"first_name": "Grace", "last_name": "Hopper", "date_of_birth": "June 9"})
		s.Equal(http.StatusUnprocessableEntity, rec.Code)
	})
}

func (s *UserHandlerSuite) TestStatusAndDelete() {
	s.Run("admin suspends an account", func() {
		rec := s.do(s.admin, http.MethodPut, "/users/"+s.customer.ID.String()+"/status",
			map[string]any{"status": "suspended"})
		s.Require().Equal(http.StatusOK, rec.Code)

		got, err := s.svc.Get(context.Background(), s.customer.ID)
		s.Require().NoError(err)
		s.Equal(models.StatusSuspended, got.Status)
	})

	s.Run("customer cannot change status", func() {
		rec := s.do(s.customer, http.MethodPut, "/users/"+s.customer.ID.String()+"/status",
			map[string]any{"status": "active"})
		s.Equal(http.StatusForbidden, rec.Code)
	})

	s.Run("admin deletes an account", func() {
		victim := s.seedUser("victim@example.com", models.RoleCustomer)
		rec := s.do(s.admin, http.MethodDelete, "/users/"+victim.ID.String(), nil)
		s.Equal(http.StatusNoContent, rec.Code)

		rec = s.do(s.admin, http.MethodGet, "/users/"+victim.ID.String(), nil)
		s.Equal(http.StatusNotFound, rec.Code)
	})

	s.Run("customer cannot delete", func() {
		rec := s.do(s.customer, http.MethodDelete, "/users/"+s.customer.ID.String(), nil)
		s.Equal(http.StatusForbidden, rec.Code)
	})
}
