package store

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type InMemoryStoreSuite struct {
	productStoreContract
}

func (s *InMemoryStoreSuite) SetupSuite() {
	s.ctx = context.Background()
	s.store = NewInMemoryStore()
}

func TestInMemoryStore(t *testing.T) {
	suite.Run(t, new(InMemoryStoreSuite))
}

func Test_InMemoryStore_concurrentSaves(t *testing.T) {
	// given
	s := NewInMemoryStore()
	ctx := context.Background()
	const workers = 50

	// when
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Save(ctx, Product{Name: "item", Price: 1})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	// then
	all, err := s.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, workers)
	seen := make(map[string]struct{}, workers)
	for _, p := range all {
		seen[p.ID] = struct{}{}
	}
	assert.Len(t, seen, workers, "ids must be unique")
}

func Test_InMemoryStore_returnsCopies(t *testing.T) {
	// given
	s := NewInMemoryStore()
	ctx := context.Background()
	saved, err := s.Save(ctx, Product{Name: "Laptop", Price: 10})
	require.NoError(t, err)

	// when
	saved.Name = "changed"
	found, err := s.FindByID(ctx, saved.ID)

	// then
	require.NoError(t, err)
	assert.Equal(t, "Laptop", found.Name)
}
