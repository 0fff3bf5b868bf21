package store

import (
	"context"
	"slices"
	"sync"

	perrors "github.com/abgdnv/gocatalog/internal/errors"
	"github.com/google/uuid"
)

// InMemoryStore implements ProductStore in process memory.
// Records keep their insertion order; overwriting a record keeps its position.
type InMemoryStore struct {
	mu       sync.RWMutex
	order    []string
	products map[string]Product
}

// NewInMemoryStore creates a new instance of ProductStore
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		products: make(map[string]Product),
	}
}

// FindByID retrieves a product by its ID.
func (s *InMemoryStore) FindByID(_ context.Context, id string) (*Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return nil, perrors.ErrProductNotFound
	}
	return &p, nil
}

// FindByName retrieves the first product with the given name.
func (s *InMemoryStore) FindByName(_ context.Context, name string) (*Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range s.order {
		if p := s.products[id]; p.Name == name {
			return &p, nil
		}
	}
	return nil, perrors.ErrProductNotFound
}

// FindAll retrieves all products in insertion order.
func (s *InMemoryStore) FindAll(_ context.Context) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]Product, 0, len(s.order))
	for _, id := range s.order {
		list = append(list, s.products[id])
	}
	return list, nil
}

// Save inserts or overwrites a product.
func (s *InMemoryStore) Save(_ context.Context, product Product) (*Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if product.ID == "" {
		product.ID = uuid.NewString()
	}
	if _, exists := s.products[product.ID]; !exists {
		s.order = append(s.order, product.ID)
	}
	s.products[product.ID] = product
	return &product, nil
}

// DeleteByID deletes a product by its ID.
func (s *InMemoryStore) DeleteByID(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.products[id]; !exists {
		return nil
	}
	delete(s.products, id)
	s.order = slices.DeleteFunc(s.order, func(v string) bool { return v == id })
	return nil
}

// DeleteAll deletes every product.
func (s *InMemoryStore) DeleteAll(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.order = nil
	clear(s.products)
	return nil
}

// ExistsByID reports whether the ID is stored.
func (s *InMemoryStore) ExistsByID(_ context.Context, id string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.products[id]
	return ok, nil
}

// Ping always succeeds.
func (s *InMemoryStore) Ping(_ context.Context) error {
	return nil
}
