package notification

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/go-chi/chi/v5"
)

type NotificationHandlerSuite struct {
	suite.Suite
	router chi.Router
	sink   *MemorySink
}

func (s *NotificationHandlerSuite) SetupTest() {
	s.sink = NewMemorySink()
	handler := NewHandler(NewService(s.sink), slog.New(slog.DiscardHandler))
	s.router = chi.NewRouter()
	handler.Register(s.router)
}

func TestNotificationHandlerSuite(t *testing.T) {
	suite.Run(t, new(NotificationHandlerSuite))
}

func (s *NotificationHandlerSuite) post(body map[string]any) *httptest.ResponseRecorder {
	raw, err := json.Marshal(body)
	s.Require().NoError(err)
	req := httptest.NewRequest(http.MethodPost, "/notifications", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *NotificationHandlerSuite) TestSend() {
	s.Run("returns the serialized tagged form in an envelope", func() {
		rec := s.post(map[string]any{
			"type":          "email",
			"message":       "Welcome",
			"email_address": "ada@example.com",
			"subject":       "Hello",
		})
		s.Require().Equal(http.StatusCreated, rec.Code)

		var resp struct {
			Success bool           `json:"success"`
			Data    map[string]any `json:"data"`
		}
		s.Require().NoError(json.NewDecoder(rec.Body).Decode(&resp))
		s.True(resp.Success)
		s.Equal("email", resp.Data["type"])
		s.Equal("ada@example.com", resp.Data["email_address"])

		id, err := uuid.Parse(resp.Data["id"].(string))
		s.Require().NoError(err)
		s.NotEqual(uuid.Nil, id)
	})

	s.Run("missing discriminator renders 422 at the type path", func() {
		rec := s.post(map[string]any{"message": "no type"})
		s.Require().Equal(http.StatusUnprocessableEntity, rec.Code)

		var resp struct {
			FieldErrors []struct {
				Code string `json:"code"`
				Path string `json:"path"`
			} `json:"field_errors"`
		}
		s.Require().NoError(json.NewDecoder(rec.Body).Decode(&resp))
		s.Require().Len(resp.FieldErrors, 1)
		s.Equal("missing_discriminator", resp.FieldErrors[0].Code)
		s.Equal("type", resp.FieldErrors[0].Path)
	})

	s.Run("whole-number json floats satisfy int fields", func() {
		rec := s.post(map[string]any{
			"type":        "webhook",
			"message":     "ping",
			"webhook_url": "https://example.com/hook",
			"retry_count": 5,
		})
		s.Require().Equal(http.StatusCreated, rec.Code)

		var resp struct {
			Data map[string]any `json:"data"`
		}
		s.Require().NoError(json.NewDecoder(rec.Body).Decode(&resp))
		s.EqualValues(5, resp.Data["retry_count"])
	})

	s.Run("fractional retry_count is rejected", func() {
		rec := s.post(map[string]any{
			"type":        "webhook",
			"message":     "ping",
			"webhook_url": "https://example.com/hook",
			"retry_count": 2.5,
		})
		s.Equal(http.StatusUnprocessableEntity, rec.Code)
	})
}

func (s *NotificationHandlerSuite) TestList() {
	for range 3 {
		rec := s.post(map[string]any{
			"type": "sms", "message": "hi", "phone_number": "5550000000",
		})
		s.Require().Equal(http.StatusCreated, rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/notifications?page=1&size=2", nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	s.Require().Equal(http.StatusOK, rec.Code)

	var page struct {
		Items   []map[string]any `json:"items"`
		Total   int              `json:"total"`
		Pages   int              `json:"pages"`
		HasNext bool             `json:"has_next"`
		HasPrev bool             `json:"has_prev"`
	}
	s.Require().NoError(json.NewDecoder(rec.Body).Decode(&page))
	s.Len(page.Items, 2)
	s.Equal(3, page.Total)
	s.Equal(2, page.Pages)
	s.True(page.HasNext)
	s.False(page.HasPrev)
	s.Equal("+1", page.Items[0]["country_code"])
}
