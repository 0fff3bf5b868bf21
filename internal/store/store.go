// Package store provides an interface for product storage operations.
package store

import (
	"context"
)

// Product represents a product record as persisted by a store.
// ID is assigned by the store on first save and never changes afterwards.
type Product struct {
	ID          string
	Name        string
	Description string
	Price       float64
}

// ProductStore is an interface for product storage operations.
// It abstracts the underlying data store, allowing for different implementations (e.g., in-memory, database).
// Implementations must be safe for concurrent use.
type ProductStore interface {
	// FindByID retrieves a single product by its identifier.
	// Returns ErrProductNotFound if no product exists with the given ID.
	FindByID(ctx context.Context, id string) (*Product, error)

	// FindByName retrieves the first product, in store order, whose name equals name exactly.
	// Returns ErrProductNotFound if no product has that name.
	FindByName(ctx context.Context, name string) (*Product, error)

	// FindAll returns all products in store order.
	// Returns an empty slice if no products exist.
	FindAll(ctx context.Context) ([]Product, error)

	// Save inserts the product when its ID is empty, assigning a new ID.
	// Otherwise it overwrites (or creates) the record with that ID.
	// Returns the record as written.
	Save(ctx context.Context, product Product) (*Product, error)

	// DeleteByID removes a product by its ID. Deleting an absent ID is not an error.
	DeleteByID(ctx context.Context, id string) error

	// DeleteAll removes every product.
	DeleteAll(ctx context.Context) error

	// ExistsByID reports whether a product with the given ID exists.
	ExistsByID(ctx context.Context, id string) (bool, error)

	// Ping checks that the underlying data store is reachable.
	Ping(ctx context.Context) error
}
