package store

import (
	"context"

	perrors "github.com/abgdnv/gocatalog/internal/errors"
	"github.com/stretchr/testify/suite"
)

const skipIntegrationTests = "PRODUCT_SVC_SKIP_INTEGRATION_TESTS"

// productStoreContract holds the behaviour every ProductStore backend must share.
// Backend suites embed it and assign store in SetupSuite.
type productStoreContract struct {
	suite.Suite
	ctx   context.Context
	store ProductStore
}

func (s *productStoreContract) SetupTest() {
	s.Require().NoError(s.store.DeleteAll(s.ctx), "Failed to clean up store")
}

func (s *productStoreContract) save(name, description string, price float64) *Product {
	saved, err := s.store.Save(s.ctx, Product{Name: name, Description: description, Price: price})
	s.Require().NoError(err)
	return saved
}

func (s *productStoreContract) TestSave_assignsID() {
	// when
	saved, err := s.store.Save(s.ctx, Product{Name: "Laptop", Description: "dell", Price: 255.99})

	// then
	s.Require().NoError(err)
	s.NotEmpty(saved.ID)
	s.Equal("Laptop", saved.Name)
	s.Equal("dell", saved.Description)
	s.InDelta(255.99, saved.Price, 1e-9)

	found, err := s.store.FindByID(s.ctx, saved.ID)
	s.Require().NoError(err)
	s.Equal(*saved, *found)
}

func (s *productStoreContract) TestSave_overwritesExistingAndKeepsOrder() {
	// given
	first := s.save("Laptop", "dell", 255.99)
	second := s.save("Mouse", "logitech", 25)

	// when
	updated, err := s.store.Save(s.ctx, Product{ID: first.ID, Name: "Headphone", Description: "x", Price: 100})

	// then
	s.Require().NoError(err)
	s.Equal(first.ID, updated.ID)
	all, err := s.store.FindAll(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(all, 2)
	s.Equal(Product{ID: first.ID, Name: "Headphone", Description: "x", Price: 100}, all[0])
	s.Equal(second.ID, all[1].ID)
}

func (s *productStoreContract) TestFindAll_emptyStore() {
	// when
	all, err := s.store.FindAll(s.ctx)

	// then
	s.Require().NoError(err)
	s.Empty(all)
}

func (s *productStoreContract) TestFindAll_insertionOrder() {
	// given
	ids := []string{
		s.save("A", "", 1).ID,
		s.save("B", "", 2).ID,
		s.save("C", "", 3).ID,
	}

	// when
	all, err := s.store.FindAll(s.ctx)

	// then
	s.Require().NoError(err)
	s.Require().Len(all, 3)
	for i, p := range all {
		s.Equal(ids[i], p.ID)
	}
}

func (s *productStoreContract) TestFindByID_notFound() {
	// given
	s.save("Laptop", "dell", 255.99)

	// when
	found, err := s.store.FindByID(s.ctx, "00000000-0000-0000-0000-000000000000")

	// then
	s.ErrorIs(err, perrors.ErrProductNotFound)
	s.Nil(found)
}

func (s *productStoreContract) TestFindByName_firstMatchWins() {
	// given
	s.save("Other", "", 1)
	first := s.save("Twin", "first", 2)
	s.save("Twin", "second", 3)

	// when
	found, err := s.store.FindByName(s.ctx, "Twin")

	// then
	s.Require().NoError(err)
	s.Equal(first.ID, found.ID)
	s.Equal("first", found.Description)
}

func (s *productStoreContract) TestFindByName_isCaseSensitive() {
	// given
	s.save("Laptop", "", 1)

	// when
	found, err := s.store.FindByName(s.ctx, "laptop")

	// then
	s.ErrorIs(err, perrors.ErrProductNotFound)
	s.Nil(found)
}

func (s *productStoreContract) TestDeleteByID() {
	// given
	kept := s.save("Keep", "", 1)
	removed := s.save("Remove", "", 2)

	// when
	err := s.store.DeleteByID(s.ctx, removed.ID)

	// then
	s.Require().NoError(err)
	_, err = s.store.FindByID(s.ctx, removed.ID)
	s.ErrorIs(err, perrors.ErrProductNotFound)
	all, err := s.store.FindAll(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(all, 1)
	s.Equal(kept.ID, all[0].ID)
}

func (s *productStoreContract) TestDeleteByID_absentIsNoop() {
	// given
	removed := s.save("Remove", "", 2)
	s.Require().NoError(s.store.DeleteByID(s.ctx, removed.ID))

	// when
	err := s.store.DeleteByID(s.ctx, removed.ID)

	// then
	s.NoError(err)
}

func (s *productStoreContract) TestDeleteAll() {
	// given
	s.save("A", "", 1)
	s.save("B", "", 2)

	// when
	err := s.store.DeleteAll(s.ctx)

	// then
	s.Require().NoError(err)
	all, err := s.store.FindAll(s.ctx)
	s.Require().NoError(err)
	s.Empty(all)
}

func (s *productStoreContract) TestExistsByID() {
	// given
	saved := s.save("A", "", 1)

	// when
	exists, err := s.store.ExistsByID(s.ctx, saved.ID)
	s.Require().NoError(err)
	s.Require().NoError(s.store.DeleteByID(s.ctx, saved.ID))
	existsAfterDelete, err := s.store.ExistsByID(s.ctx, saved.ID)
	s.Require().NoError(err)

	// then
	s.True(exists)
	s.False(existsAfterDelete)
}

func (s *productStoreContract) TestPing() {
	s.NoError(s.store.Ping(s.ctx))
}
