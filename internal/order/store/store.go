// Package store persists orders in memory.
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"storefront/internal/order/models"
	"storefront/pkg/platform/sentinel"
)

// InMemory is the map-backed order store.
type InMemory struct {
	mu   sync.RWMutex
	byID map[uuid.UUID]*models.Order
}

// NewInMemory creates an empty in-memory order store.
func NewInMemory() *InMemory {
	return &InMemory{byID: make(map[uuid.UUID]*models.Order)}
}

func cloneOrder(o *models.Order) *models.Order {
	clone := *o
	clone.Items = make([]models.Item, len(o.Items))
	copy(clone.Items, o.Items)
	return &clone
}

func (s *InMemory) Create(ctx context.Context, o *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byID[o.ID]; exists {
		return sentinel.ErrConflict
	}
	s.byID[o.ID] = cloneOrder(o)
	return nil
}

func (s *InMemory) Get(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.byID[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return cloneOrder(o), nil
}

// List returns orders newest first. A zero userID lists every order.
func (s *InMemory) List(ctx context.Context, userID uuid.UUID, page, size int) ([]*models.Order, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]*models.Order, 0, len(s.byID))
	for _, o := range s.byID {
		if userID != uuid.Nil && o.UserID != userID {
			continue
		}
		matched = append(matched, o)
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID.String() < matched[j].ID.String()
	})

	total := len(matched)
	start := (page - 1) * size
	if start >= total {
		return []*models.Order{}, total, nil
	}
	end := min(start+size, total)

	out := make([]*models.Order, 0, end-start)
	for _, o := range matched[start:end] {
		out = append(out, cloneOrder(o))
	}
	return out, total, nil
}

func (s *InMemory) Update(ctx context.Context, o *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[o.ID]; !ok {
		return sentinel.ErrNotFound
	}
	s.byID[o.ID] = cloneOrder(o)
	return nil
}
