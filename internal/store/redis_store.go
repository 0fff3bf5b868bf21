package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	perrors "github.com/abgdnv/gocatalog/internal/errors"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// maxTxRetries bounds the optimistic transactions retried on a concurrent index change.
const maxTxRetries = 10

// redisProduct is the JSON value stored per product key.
type redisProduct struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

// RedisStore implements ProductStore on Redis.
// Every product is a JSON string under <prefix>:item:<id>. The sorted set <prefix>:index
// holds the ids scored by an insertion sequence taken from <prefix>:seq.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore creates a RedisStore whose keys start with prefix.
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

// FindByID retrieves a product by its ID.
func (r *RedisStore) FindByID(ctx context.Context, id string) (*Product, error) {
	data, err := r.client.Get(ctx, r.itemKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, perrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	product, err := unmarshalProduct(data)
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// FindByName scans products in insertion order and returns the first one with the given name.
func (r *RedisStore) FindByName(ctx context.Context, name string) (*Product, error) {
	products, err := r.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range products {
		if p.Name == name {
			return &p, nil
		}
	}
	return nil, perrors.ErrProductNotFound
}

// FindAll retrieves all products in insertion order.
func (r *RedisStore) FindAll(ctx context.Context) ([]Product, error) {
	ids, err := r.client.ZRange(ctx, r.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read product index: %w", err)
	}
	if len(ids) == 0 {
		return []Product{}, nil
	}

	values, err := r.client.MGet(ctx, r.itemKeys(ids)...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read products: %w", err)
	}
	products := make([]Product, 0, len(values))
	for _, val := range values {
		s, ok := val.(string)
		if !ok {
			// indexed but already deleted
			continue
		}
		product, err := unmarshalProduct([]byte(s))
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, nil
}

// Save writes the product and registers its ID in the index. A new ID is assigned when ID is empty.
// An existing ID keeps its position in the index.
func (r *RedisStore) Save(ctx context.Context, product Product) (*Product, error) {
	if product.ID == "" {
		product.ID = uuid.NewString()
	}
	data, err := json.Marshal(redisProduct(product))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal product: %w", err)
	}
	seq, err := r.client.Incr(ctx, r.seqKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to allocate sequence: %w", err)
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, r.itemKey(product.ID), data, 0)
		pipe.ZAddNX(ctx, r.indexKey(), redis.Z{Score: float64(seq), Member: product.ID})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save product: %w", err)
	}
	return &product, nil
}

// DeleteByID removes a product and its index entry.
func (r *RedisStore) DeleteByID(ctx context.Context, id string) error {
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, r.itemKey(id))
		pipe.ZRem(ctx, r.indexKey(), id)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete product by ID: %w", err)
	}
	return nil
}

// DeleteAll removes every indexed product and the index itself in one transaction.
// The index is watched, so a Save that lands between reading the ids and deleting them
// aborts the transaction and the ids are read again.
func (r *RedisStore) DeleteAll(ctx context.Context) error {
	deleteIndexed := func(tx *redis.Tx) error {
		ids, err := tx.ZRange(ctx, r.indexKey(), 0, -1).Result()
		if err != nil {
			return fmt.Errorf("failed to read product index: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, append(r.itemKeys(ids), r.indexKey())...)
			return nil
		})
		return err
	}

	for range maxTxRetries {
		err := r.client.Watch(ctx, deleteIndexed, r.indexKey())
		if err == nil {
			return nil
		}
		if !errors.Is(err, redis.TxFailedErr) {
			return fmt.Errorf("failed to delete all products: %w", err)
		}
	}
	return fmt.Errorf("failed to delete all products: index kept changing after %d attempts", maxTxRetries)
}

// ExistsByID reports whether the product key exists.
func (r *RedisStore) ExistsByID(ctx context.Context, id string) (bool, error) {
	n, err := r.client.Exists(ctx, r.itemKey(id)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check product existence: %w", err)
	}
	return n > 0, nil
}

// Ping checks the connection to the Redis server.
func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisStore) itemKey(id string) string {
	return r.prefix + ":item:" + id
}

func (r *RedisStore) itemKeys(ids []string) []string {
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.itemKey(id)
	}
	return keys
}

func (r *RedisStore) indexKey() string {
	return r.prefix + ":index"
}

func (r *RedisStore) seqKey() string {
	return r.prefix + ":seq"
}

func unmarshalProduct(data []byte) (Product, error) {
	var model redisProduct
	if err := json.Unmarshal(data, &model); err != nil {
		return Product{}, fmt.Errorf("failed to unmarshal product: %w", err)
	}
	return Product(model), nil
}
