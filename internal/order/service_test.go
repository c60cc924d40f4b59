package order

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"storefront/internal/order/models"
	"storefront/internal/order/store"
	"storefront/internal/product"
	productstore "storefront/internal/product/store"
	dErrors "storefront/pkg/domain-errors"
	"storefront/pkg/schema"
)

type OrderServiceSuite struct {
	suite.Suite
	svc     *Service
	catalog *product.Service
	ctx     context.Context
	buyer   uuid.UUID

	published uuid.UUID
	draft     uuid.UUID
}

func (s *OrderServiceSuite) SetupTest() {
	s.catalog = product.NewService(productstore.NewInMemory())
	s.svc = NewService(store.NewInMemory(), s.catalog)
	s.ctx = context.Background()
	s.buyer = uuid.New()

	s.published = s.seedProduct(map[string]any{
		"name": "Keyboard", "price": 100.0, "sale_price": 80.0, "status": "published",
	})
	s.draft = s.seedProduct(map[string]any{"name": "Prototype", "price": 10.0})
}

func TestOrderServiceSuite(t *testing.T) {
	suite.Run(t, new(OrderServiceSuite))
}

func (s *OrderServiceSuite) seedProduct(body map[string]any) uuid.UUID {
	p, err := s.catalog.Create(s.ctx, uuid.New(), body)
	s.Require().NoError(err)
	return p.ID
}

func (s *OrderServiceSuite) place() *models.Order {
	o, err := s.svc.Create(s.ctx, s.buyer,
		[]ItemRequest{{ProductID: s.published, Quantity: 2}}, creditCardBody())
	s.Require().NoError(err)
	return o
}

func (s *OrderServiceSuite) TestCreate() {
	s.Run("prices lines at the effective price", func() {
		o := s.place()
		s.Equal(models.StatusPending, o.Status)
		s.Require().Len(o.Items, 1)
		s.InDelta(80.0, o.Items[0].UnitPrice, 1e-9)
		s.InDelta(160.0, o.Total, 1e-9)
		s.Equal("credit_card", o.PaymentType)
		s.Equal("credit card ending in 1111", o.PaymentSummary)
	})

	s.Run("rejects invalid payment with accumulated field errors", func() {
		_, err := s.svc.Create(s.ctx, s.buyer,
			[]ItemRequest{{ProductID: s.published, Quantity: 1}},
			map[string]any{"type": "credit_card"})
		list, ok := schema.AsErrorList(err)
		s.Require().True(ok)
		s.GreaterOrEqual(len(list), 5)
	})

	s.Run("rejects missing payment discriminator", func() {
		_, err := s.svc.Create(s.ctx, s.buyer,
			[]ItemRequest{{ProductID: s.published, Quantity: 1}},
			map[string]any{"card_number": "4111111111111111"})
		list, ok := schema.AsErrorList(err)
		s.Require().True(ok)
		s.True(list.Has(schema.CodeMissingDiscriminator))
	})

	s.Run("accumulates line errors across items", func() {
		_, err := s.svc.Create(s.ctx, s.buyer, []ItemRequest{
			{ProductID: uuid.New(), Quantity: 1},
			{ProductID: s.draft, Quantity: 1},
			{ProductID: s.published, Quantity: 0},
		}, creditCardBody())
		list, ok := schema.AsErrorList(err)
		s.Require().True(ok)
		s.Len(list, 3)
		_, found := list.ByPath("items.0.product_id")
		s.True(found)
		_, found = list.ByPath("items.1.product_id")
		s.True(found)
		_, found = list.ByPath("items.2.quantity")
		s.True(found)
	})

	s.Run("rejects empty item list", func() {
		_, err := s.svc.Create(s.ctx, s.buyer, nil, creditCardBody())
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

func (s *OrderServiceSuite) TestVisibility() {
	o := s.place()
	stranger := uuid.New()

	s.Run("owner reads own order", func() {
		got, err := s.svc.Get(s.ctx, s.buyer, false, o.ID)
		s.Require().NoError(err)
		s.Equal(o.ID, got.ID)
	})

	s.Run("stranger sees not found, not forbidden", func() {
		_, err := s.svc.Get(s.ctx, stranger, false, o.ID)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("admin reads any order", func() {
		_, err := s.svc.Get(s.ctx, stranger, true, o.ID)
		s.Require().NoError(err)
	})

	s.Run("list scopes to the caller", func() {
		_, total, err := s.svc.List(s.ctx, stranger, false, 1, 10)
		s.Require().NoError(err)
		s.Zero(total)

		_, total, err = s.svc.List(s.ctx, stranger, true, 1, 10)
		s.Require().NoError(err)
		s.Equal(1, total)
	})
}

func (s *OrderServiceSuite) TestTransitions() {
	s.Run("cancel from pending", func() {
		o := s.place()
		got, err := s.svc.Cancel(s.ctx, s.buyer, false, o.ID)
		s.Require().NoError(err)
		s.Equal(models.StatusCancelled, got.Status)
	})

	s.Run("cancel after shipping conflicts", func() {
		o := s.place()
		_, err := s.svc.UpdateStatus(s.ctx, o.ID, models.StatusProcessing)
		s.Require().NoError(err)
		_, err = s.svc.UpdateStatus(s.ctx, o.ID, models.StatusShipped)
		s.Require().NoError(err)

		_, err = s.svc.Cancel(s.ctx, s.buyer, false, o.ID)
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
	})

	s.Run("cannot skip from pending to shipped", func() {
		o := s.place()
		_, err := s.svc.UpdateStatus(s.ctx, o.ID, models.StatusShipped)
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
	})

	s.Run("delivered is terminal", func() {
		o := s.place()
		for _, next := range []models.Status{models.StatusProcessing, models.StatusShipped, models.StatusDelivered} {
			_, err := s.svc.UpdateStatus(s.ctx, o.ID, next)
			s.Require().NoError(err)
		}
		_, err := s.svc.UpdateStatus(s.ctx, o.ID, models.StatusProcessing)
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
	})
}

func (s *OrderServiceSuite) TestCatalogChangesDoNotAffectPlacedOrders() {
	o := s.place()

	_, err := s.catalog.Update(s.ctx, uuid.New(), true, s.published, map[string]any{
		"name": "Keyboard", "price": 999.0, "status": "published",
	})
	s.Require().NoError(err)

	got, err := s.svc.Get(s.ctx, s.buyer, false, o.ID)
	s.Require().NoError(err)
	s.InDelta(160.0, got.Total, 1e-9)
}
