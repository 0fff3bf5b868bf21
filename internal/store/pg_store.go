package store

import (
	"context"
	"errors"
	"fmt"

	perrors "github.com/abgdnv/gocatalog/internal/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgSelectColumns = `SELECT id, name, description, price FROM products`

	pgFindByID   = pgSelectColumns + ` WHERE id = $1`
	pgFindByName = pgSelectColumns + ` WHERE name = $1 ORDER BY seq LIMIT 1`
	pgFindAll    = pgSelectColumns + ` ORDER BY seq`
	pgInsert     = `INSERT INTO products (name, description, price) VALUES ($1, $2, $3)
RETURNING id, name, description, price`
	pgUpsert = `INSERT INTO products (id, name, description, price) VALUES ($1, $2, $3, $4)
ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, description = EXCLUDED.description, price = EXCLUDED.price
RETURNING id, name, description, price`
	pgDeleteByID = `DELETE FROM products WHERE id = $1`
	pgDeleteAll  = `DELETE FROM products`
	pgExistsByID = `SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`
)

// PgStore implements ProductStore using PostgreSQL as the data store.
type PgStore struct {
	db *pgxpool.Pool
}

// NewPgStore creates a new instance of ProductStore using a PostgreSQL connection pool.
func NewPgStore(dbp *pgxpool.Pool) *PgStore {
	return &PgStore{db: dbp}
}

// FindByID retrieves a product by its unique identifier.
// Returns ErrProductNotFound if no product exists with the given ID.
func (p *PgStore) FindByID(ctx context.Context, id string) (*Product, error) {
	product, err := p.queryOne(ctx, pgFindByID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, perrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}
	return product, nil
}

// FindByName retrieves the oldest product with the given name.
// Returns ErrProductNotFound if no product has that name.
func (p *PgStore) FindByName(ctx context.Context, name string) (*Product, error) {
	product, err := p.queryOne(ctx, pgFindByName, name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, perrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by name: %w", err)
	}
	return product, nil
}

// FindAll retrieves all products in insertion order.
// It returns a slice of products, which may be empty if no products exist.
func (p *PgStore) FindAll(ctx context.Context) ([]Product, error) {
	rows, err := p.db.Query(ctx, pgFindAll)
	if err != nil {
		return nil, fmt.Errorf("failed to find all products: %w", err)
	}
	products, err := pgx.CollectRows(rows, scanProduct)
	if err != nil {
		return nil, fmt.Errorf("failed to read products: %w", err)
	}
	return products, nil
}

// Save inserts a new product when ID is empty, otherwise upserts by ID.
func (p *PgStore) Save(ctx context.Context, product Product) (*Product, error) {
	var (
		saved *Product
		err   error
	)
	if product.ID == "" {
		saved, err = p.queryOne(ctx, pgInsert, product.Name, product.Description, product.Price)
	} else {
		saved, err = p.queryOne(ctx, pgUpsert, product.ID, product.Name, product.Description, product.Price)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to save product: %w", err)
	}
	return saved, nil
}

// DeleteByID removes a product by its unique identifier.
func (p *PgStore) DeleteByID(ctx context.Context, id string) error {
	if _, err := p.db.Exec(ctx, pgDeleteByID, id); err != nil {
		return fmt.Errorf("failed to delete product by ID: %w", err)
	}
	return nil
}

// DeleteAll removes every product.
func (p *PgStore) DeleteAll(ctx context.Context) error {
	if _, err := p.db.Exec(ctx, pgDeleteAll); err != nil {
		return fmt.Errorf("failed to delete all products: %w", err)
	}
	return nil
}

// ExistsByID reports whether a product with the given ID exists.
func (p *PgStore) ExistsByID(ctx context.Context, id string) (bool, error) {
	var exists bool
	if err := p.db.QueryRow(ctx, pgExistsByID, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check product existence: %w", err)
	}
	return exists, nil
}

// Ping checks the database connection.
func (p *PgStore) Ping(ctx context.Context) error {
	return p.db.Ping(ctx)
}

func (p *PgStore) queryOne(ctx context.Context, sql string, args ...any) (*Product, error) {
	rows, err := p.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	product, err := pgx.CollectExactlyOneRow(rows, scanProduct)
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func scanProduct(row pgx.CollectableRow) (Product, error) {
	var product Product
	err := row.Scan(&product.ID, &product.Name, &product.Description, &product.Price)
	return product, err
}
