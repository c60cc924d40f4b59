package store

import (
	"context"
	"slices"
	"sort"
	"sync"

	"github.com/google/uuid"

	"storefront/internal/product/models"
	"storefront/pkg/platform/sentinel"
)

// InMemory is the map-backed product store used in development and tests.
type InMemory struct {
	mu   sync.RWMutex
	byID map[uuid.UUID]*models.Product
}

// NewInMemory creates an empty in-memory product store.
func NewInMemory() *InMemory {
	return &InMemory{byID: make(map[uuid.UUID]*models.Product)}
}

func cloneProduct(p *models.Product) *models.Product {
	clone := *p
	clone.Tags = slices.Clone(p.Tags)
	clone.Metadata = make(map[string]any, len(p.Metadata))
	for k, v := range p.Metadata {
		clone.Metadata[k] = v
	}
	return &clone
}

func (s *InMemory) Create(ctx context.Context, p *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byID[p.ID]; exists {
		return sentinel.ErrConflict
	}
	s.byID[p.ID] = cloneProduct(p)
	return nil
}

func (s *InMemory) Get(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.byID[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return cloneProduct(p), nil
}

func (s *InMemory) List(ctx context.Context, f Filter, page, size int) ([]*models.Product, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]*models.Product, 0, len(s.byID))
	for _, p := range s.byID {
		if matches(p, f) {
			matched = append(matched, p)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.Before(matched[j].CreatedAt)
		}
		return matched[i].ID.String() < matched[j].ID.String()
	})

	total := len(matched)
	start := (page - 1) * size
	if start >= total {
		return []*models.Product{}, total, nil
	}
	end := min(start+size, total)

	out := make([]*models.Product, 0, end-start)
	for _, p := range matched[start:end] {
		out = append(out, cloneProduct(p))
	}
	return out, total, nil
}

func matches(p *models.Product, f Filter) bool {
	if f.Status != nil && p.Status != *f.Status {
		return false
	}
	if f.Tag != nil && !slices.Contains(p.Tags, *f.Tag) {
		return false
	}
	if f.MinPrice != nil || f.MaxPrice != nil {
		price, priced := p.EffectivePrice()
		if !priced {
			return false
		}
		if f.MinPrice != nil && price < *f.MinPrice {
			return false
		}
		if f.MaxPrice != nil && price > *f.MaxPrice {
			return false
		}
	}
	return true
}

func (s *InMemory) Update(ctx context.Context, p *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[p.ID]; !ok {
		return sentinel.ErrNotFound
	}
	s.byID[p.ID] = cloneProduct(p)
	return nil
}

func (s *InMemory) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[id]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.byID, id)
	return nil
}
