package notification

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"storefront/pkg/schema"
)

type NotificationServiceSuite struct {
	suite.Suite
	svc  *Service
	sink *MemorySink
	ctx  context.Context
}

func (s *NotificationServiceSuite) SetupTest() {
	s.sink = NewMemorySink()
	s.svc = NewService(s.sink)
	s.ctx = context.Background()
}

func TestNotificationServiceSuite(t *testing.T) {
	suite.Run(t, new(NotificationServiceSuite))
}

func smsBody() map[string]any {
	return map[string]any{
		"type":         "sms",
		"message":      "Your order shipped",
		"phone_number": "5551234567",
	}
}

func (s *NotificationServiceSuite) TestSend() {
	s.Run("fills id, created_at and variant defaults", func() {
		sent, err := s.svc.Send(s.ctx, smsBody())
		s.Require().NoError(err)

		s.Equal("sms", sent["type"])
		s.Equal("+1", sent["country_code"])
		s.NotEmpty(sent["id"])
		s.NotEmpty(sent["created_at"])
	})

	s.Run("routes to the variant destination", func() {
		_, err := s.svc.Send(s.ctx, smsBody())
		s.Require().NoError(err)

		deliveries := s.sink.Deliveries()
		s.Require().NotEmpty(deliveries)
		last := deliveries[len(deliveries)-1]
		s.Equal("sms", last.Type)
		s.Equal("+15551234567", last.Destination)
	})

	s.Run("webhook defaults retry_count and headers", func() {
		sent, err := s.svc.Send(s.ctx, map[string]any{
			"type":        "webhook",
			"message":     "ping",
			"webhook_url": "https://example.com/hook",
		})
		s.Require().NoError(err)
		s.Equal(int64(3), sent["retry_count"])
		s.Equal(map[string]any{}, sent["headers"])
	})

	s.Run("push keeps explicit null badge_count", func() {
		sent, err := s.svc.Send(s.ctx, map[string]any{
			"type":        "push",
			"message":     "hello",
			"device_id":   "dev-1",
			"badge_count": nil,
		})
		s.Require().NoError(err)
		raw, present := sent["badge_count"]
		s.True(present)
		s.Nil(raw)
		s.Equal("default", sent["sound"])
	})

	s.Run("accumulates email field errors", func() {
		_, err := s.svc.Send(s.ctx, map[string]any{
			"type":    "email",
			"subject": 42,
		})
		list, ok := schema.AsErrorList(err)
		s.Require().True(ok)

		for _, path := range []string{"message", "email_address", "subject"} {
			_, found := list.ByPath(path)
			s.True(found, path)
		}
	})

	s.Run("rejects unknown variant", func() {
		_, err := s.svc.Send(s.ctx, map[string]any{"type": "carrier_pigeon", "message": "coo"})
		list, ok := schema.AsErrorList(err)
		s.Require().True(ok)
		s.True(list.Has(schema.CodeUnknownVariant))
	})

	s.Run("nothing reaches the sink on validation failure", func() {
		before := len(s.sink.Deliveries())
		_, err := s.svc.Send(s.ctx, map[string]any{"type": "sms"})
		s.Error(err)
		s.Len(s.sink.Deliveries(), before)
	})
}

func (s *NotificationServiceSuite) TestList() {
	for range 5 {
		_, err := s.svc.Send(s.ctx, smsBody())
		s.Require().NoError(err)
	}

	items, total, err := s.svc.List(s.ctx, 2, 2)
	s.Require().NoError(err)
	s.Equal(5, total)
	s.Len(items, 2)

	items, total, err = s.svc.List(s.ctx, 4, 2)
	s.Require().NoError(err)
	s.Equal(5, total)
	s.Empty(items)
}
