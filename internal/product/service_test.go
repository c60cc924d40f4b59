package product

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"storefront/internal/product/models"
	"storefront/internal/product/store"
	dErrors "storefront/pkg/domain-errors"
	"storefront/pkg/schema"
)

type ProductServiceSuite struct {
	suite.Suite
	svc    *Service
	ctx    context.Context
	vendor uuid.UUID
}

func (s *ProductServiceSuite) SetupTest() {
	s.svc = NewService(store.NewInMemory())
	s.ctx = context.Background()
	s.vendor = uuid.New()
}

func TestProductServiceSuite(t *testing.T) {
	suite.Run(t, new(ProductServiceSuite))
}

func validBody() map[string]any {
	return map[string]any{
		"name":  "Mechanical Keyboard",
		"price": 149.99,
	}
}

func (s *ProductServiceSuite) create(body map[string]any) *models.Product {
	p, err := s.svc.Create(s.ctx, s.vendor, body)
	s.Require().NoError(err)
	return p
}

func (s *ProductServiceSuite) TestCreate() {
	s.Run("applies defaults", func() {
		p := s.create(validBody())
		s.Equal(models.StatusDraft, p.Status)
		s.NotNil(p.Tags)
		s.Empty(p.Tags)
		s.NotNil(p.Metadata)
		s.Require().NotNil(p.Price)
		s.InDelta(149.99, *p.Price, 1e-9)
		s.Nil(p.Description)
	})

	s.Run("accepts explicit null price", func() {
		body := validBody()
		body["price"] = nil
		p := s.create(body)
		s.Nil(p.Price)
		s.False(p.Purchasable())
	})

	s.Run("rejects omitted price key", func() {
		_, err := s.svc.Create(s.ctx, s.vendor, map[string]any{"name": "No Price"})
		list, ok := schema.AsErrorList(err)
		s.Require().True(ok)
		s.True(list.Has(schema.CodeMissingField))
		_, found := list.ByPath("price")
		s.True(found)
	})

	s.Run("accumulates every field error", func() {
		_, err := s.svc.Create(s.ctx, s.vendor, map[string]any{
			"price":  "free",
			"status": "nonexistent",
			"tags":   "not-a-list",
		})
		list, ok := schema.AsErrorList(err)
		s.Require().True(ok)
		s.GreaterOrEqual(len(list), 4)
		for _, path := range []string{"name", "price", "status", "tags"} {
			_, found := list.ByPath(path)
			s.True(found, path)
		}
	})

	s.Run("normalizes tags", func() {
		body := validBody()
		body["tags"] = []any{"  sale ", "new", "sale", ""}
		p := s.create(body)
		s.Equal([]string{"sale", "new"}, p.Tags)
	})

	s.Run("rejects sale price at or above price", func() {
		body := validBody()
		body["sale_price"] = 149.99
		_, err := s.svc.Create(s.ctx, s.vendor, body)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("rejects sale price without price", func() {
		_, err := s.svc.Create(s.ctx, s.vendor, map[string]any{
			"name": "Sale Only", "price": nil, "sale_price": 10.0,
		})
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

func (s *ProductServiceSuite) TestListFilters() {
	publish := func(name string, price float64, sale *float64, tags ...any) {
		body := map[string]any{"name": name, "price": price, "status": "published"}
		if sale != nil {
			body["sale_price"] = *sale
		}
		if len(tags) > 0 {
			body["tags"] = tags
		}
		s.create(body)
	}
	sale := 50.0
	publish("Cheap", 20, nil, "audio")
	publish("Mid", 80, nil)
	publish("Discounted", 200, &sale, "audio", "sale")
	s.create(validBody()) // draft

	published := models.StatusPublished
	s.Run("status filter", func() {
		items, total, err := s.svc.List(s.ctx, store.Filter{Status: &published}, 1, 10)
		s.Require().NoError(err)
		s.Equal(3, total)
		s.Len(items, 3)
	})

	s.Run("price range uses effective price", func() {
		minP, maxP := 40.0, 100.0
		items, total, err := s.svc.List(s.ctx, store.Filter{MinPrice: &minP, MaxPrice: &maxP}, 1, 10)
		s.Require().NoError(err)
		s.Equal(2, total)
		names := []string{items[0].Name, items[1].Name}
		s.Contains(names, "Mid")
		s.Contains(names, "Discounted")
	})

	s.Run("tag filter", func() {
		tag := "audio"
		_, total, err := s.svc.List(s.ctx, store.Filter{Tag: &tag}, 1, 10)
		s.Require().NoError(err)
		s.Equal(2, total)
	})

	s.Run("inverted price range fails validation", func() {
		minP, maxP := 100.0, 40.0
		_, _, err := s.svc.List(s.ctx, store.Filter{MinPrice: &minP, MaxPrice: &maxP}, 1, 10)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

func (s *ProductServiceSuite) TestOwnership() {
	p := s.create(validBody())
	stranger := uuid.New()

	s.Run("vendor cannot update another vendor's product", func() {
		_, err := s.svc.Update(s.ctx, stranger, false, p.ID, validBody())
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
	})

	s.Run("admin can update any product", func() {
		body := validBody()
		body["status"] = "published"
		got, err := s.svc.Update(s.ctx, stranger, true, p.ID, body)
		s.Require().NoError(err)
		s.Equal(models.StatusPublished, got.Status)
	})

	s.Run("owner can delete", func() {
		s.Require().NoError(s.svc.Delete(s.ctx, s.vendor, false, p.ID))
		_, err := s.svc.Get(s.ctx, p.ID)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *ProductServiceSuite) TestUpdateClearsOmittedOptionals() {
	body := validBody()
	body["description"] = "With description"
	body["sale_price"] = 99.99
	p := s.create(body)
	s.Require().NotNil(p.Description)
	s.Require().NotNil(p.SalePrice)

	got, err := s.svc.Update(s.ctx, s.vendor, false, p.ID, validBody())
	s.Require().NoError(err)
	s.Nil(got.Description)
	s.Nil(got.SalePrice)
}
