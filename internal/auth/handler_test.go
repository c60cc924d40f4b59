package auth

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"

	"storefront/internal/user"
	"storefront/internal/user/store"
)

type AuthHandlerSuite struct {
	suite.Suite
	router chi.Router
	tokens *TokenService
}

func (s *AuthHandlerSuite) SetupTest() {
	s.tokens = NewTokenService("test-signing-key", "storefront-test", time.Hour)
	users := user.NewService(store.NewInMemory())
	handler := NewHandler(users, s.tokens, slog.New(slog.DiscardHandler))

	s.router = chi.NewRouter()
	s.router.Group(handler.RegisterPublic)
	s.router.Group(func(r chi.Router) {
		r.Use(RequireAuth(s.tokens))
		handler.RegisterProtected(r)
	})
}

func TestAuthHandlerSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerSuite))
}

func (s *AuthHandlerSuite) post(path string, body map[string]any) *httptest.ResponseRecorder {
	raw, err := json.Marshal(body)
	s.Require().NoError(err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *AuthHandlerSuite) registerPayload(email string) map[string]any {
	return map[string]any{
		"email":      email,
		"password":   "correct horse battery",
		"first_name": "Ada",
		"last_name":  "Lovelace",
	}
}

func (s *AuthHandlerSuite) TestRegister() {
	s.Run("creates an account", func() {
		rec := s.post("/auth/register", s.registerPayload("ada@example.com"))
		s.Require().Equal(http.StatusCreated, rec.Code)

		var resp struct {
			Success bool `json:"success"`
			Data    struct {
				Email string `json:"email"`
				Role  string `json:"role"`
			} `json:"data"`
		}
		s.Require().NoError(json.NewDecoder(rec.Body).Decode(&resp))
		s.True(resp.Success)
		s.Equal("ada@example.com", resp.Data.Email)
		s.Equal("customer", resp.Data.Role)
	})

	s.Run("duplicate email conflicts", func() {
		s.Require().Equal(http.StatusCreated,
			s.post("/auth/register", s.registerPayload("dup@example.com")).Code)
		s.Equal(http.StatusConflict,
			s.post("/auth/register", s.registerPayload("dup@example.com")).Code)
	})

	s.Run("short password fails validation", func() {
		payload := s.registerPayload("short@example.com")
		payload["password"] = "tiny"
		s.Equal(http.StatusUnprocessableEntity, s.post("/auth/register", payload).Code)
	})

	s.Run("names default from the email address when omitted", func() {
		rec := s.post("/auth/register", map[string]any{
			"email":    "grace.hopper@example.com",
			"password": "correct horse battery",
		})
		s.Require().Equal(http.StatusCreated, rec.Code)

		var resp struct {
			Data struct {
				Profile struct {
					FirstName string `json:"first_name"`
					LastName  string `json:"last_name"`
				} `json:"profile"`
			} `json:"data"`
		}
		s.Require().NoError(json.NewDecoder(rec.Body).Decode(&resp))
		s.Equal("Grace", resp.Data.Profile.FirstName)
		s.Equal("Hopper", resp.Data.Profile.LastName)
	})
}

func (s *AuthHandlerSuite) TestLoginAndMe() {
	s.Require().Equal(http.StatusCreated,
		s.post("/auth/register", s.registerPayload("login@example.com")).Code)

	s.Run("login issues a token that authenticates /auth/me", func() {
		rec := s.post("/auth/login", map[string]any{
			"email":    "login@example.com",
			"password": "correct horse battery",
		})
		s.Require().Equal(http.StatusOK, rec.Code)

		var resp TokenResponse
		s.Require().NoError(json.NewDecoder(rec.Body).Decode(&resp))
		s.NotEmpty(resp.AccessToken)
		s.Equal("bearer", resp.TokenType)

		req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		req.Header.Set("Authorization", "Bearer "+resp.AccessToken)
		meRec := httptest.NewRecorder()
		s.router.ServeHTTP(meRec, req)
		s.Require().Equal(http.StatusOK, meRec.Code)

		var me struct {
			Email string `json:"email"`
		}
		s.Require().NoError(json.NewDecoder(meRec.Body).Decode(&me))
		s.Equal("login@example.com", me.Email)
	})

	s.Run("wrong password is unauthorized", func() {
		rec := s.post("/auth/login", map[string]any{
			"email":    "login@example.com",
			"password": "incorrect",
		})
		s.Equal(http.StatusUnauthorized, rec.Code)
	})

	s.Run("me without a token is unauthorized", func() {
		req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		rec := httptest.NewRecorder()
		s.router.ServeHTTP(rec, req)
		s.Equal(http.StatusUnauthorized, rec.Code)
	})

	s.Run("me with a garbage token is unauthorized", func() {
		req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		req.Header.Set("Authorization", "Bearer not.a.token")
		rec := httptest.NewRecorder()
		s.router.ServeHTTP(rec, req)
		s.Equal(http.StatusUnauthorized, rec.Code)
	})
}
