package store

import (
	"context"
	"errors"
	"fmt"

	perrors "github.com/abgdnv/gocatalog/internal/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoProduct is the document shape of a product.
type mongoProduct struct {
	ID          primitive.ObjectID `bson:"_id"`
	Name        string             `bson:"name"`
	Description string             `bson:"description"`
	Price       float64            `bson:"price"`
}

func (d mongoProduct) toProduct() Product {
	return Product{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Description: d.Description,
		Price:       d.Price,
	}
}

// ascending _id follows insertion order since ObjectIDs start with their creation time
var byInsertion = bson.D{{Key: "_id", Value: 1}}

// MongoStore implements ProductStore on top of a MongoDB collection.
// Product IDs are the hex form of the document ObjectID.
type MongoStore struct {
	coll *mongo.Collection
}

// NewMongoStore creates a MongoStore over the named collection of db.
func NewMongoStore(db *mongo.Database, collection string) *MongoStore {
	return &MongoStore{coll: db.Collection(collection)}
}

// EnsureIndexes creates the non-unique name index used by FindByName.
func (m *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := m.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetName("idx_products_name"),
	})
	if err != nil {
		return fmt.Errorf("failed to create name index: %w", err)
	}
	return nil
}

// FindByID retrieves a product by its ID. An ID that is not a valid ObjectID is reported as absent.
func (m *MongoStore) FindByID(ctx context.Context, id string) (*Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, perrors.ErrProductNotFound
	}
	return m.findOne(ctx, bson.M{"_id": oid}, options.FindOne())
}

// FindByName retrieves the oldest product with the given name.
func (m *MongoStore) FindByName(ctx context.Context, name string) (*Product, error) {
	return m.findOne(ctx, bson.M{"name": name}, options.FindOne().SetSort(byInsertion))
}

// FindAll retrieves all products in insertion order.
func (m *MongoStore) FindAll(ctx context.Context) ([]Product, error) {
	cursor, err := m.coll.Find(ctx, bson.M{}, options.Find().SetSort(byInsertion))
	if err != nil {
		return nil, fmt.Errorf("failed to find all products: %w", err)
	}
	var docs []mongoProduct
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to read products: %w", err)
	}
	products := make([]Product, len(docs))
	for i, d := range docs {
		products[i] = d.toProduct()
	}
	return products, nil
}

// Save inserts a new document when ID is empty, otherwise replaces the document with that ID, creating it if needed.
func (m *MongoStore) Save(ctx context.Context, product Product) (*Product, error) {
	doc := mongoProduct{
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
	}
	if product.ID == "" {
		doc.ID = primitive.NewObjectID()
		if _, err := m.coll.InsertOne(ctx, doc); err != nil {
			return nil, fmt.Errorf("failed to insert product: %w", err)
		}
		saved := doc.toProduct()
		return &saved, nil
	}

	oid, err := primitive.ObjectIDFromHex(product.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid product ID %q: %w", product.ID, err)
	}
	doc.ID = oid
	_, err = m.coll.ReplaceOne(ctx, bson.M{"_id": oid}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return nil, fmt.Errorf("failed to replace product: %w", err)
	}
	saved := doc.toProduct()
	return &saved, nil
}

// DeleteByID removes a product by its ID.
func (m *MongoStore) DeleteByID(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}
	if _, err := m.coll.DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return fmt.Errorf("failed to delete product by ID: %w", err)
	}
	return nil
}

// DeleteAll removes every product.
func (m *MongoStore) DeleteAll(ctx context.Context) error {
	if _, err := m.coll.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("failed to delete all products: %w", err)
	}
	return nil
}

// ExistsByID reports whether a document with the given ID exists.
func (m *MongoStore) ExistsByID(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}
	count, err := m.coll.CountDocuments(ctx, bson.M{"_id": oid}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to check product existence: %w", err)
	}
	return count > 0, nil
}

// Ping checks the connection to the primary.
func (m *MongoStore) Ping(ctx context.Context) error {
	return m.coll.Database().Client().Ping(ctx, nil)
}

func (m *MongoStore) findOne(ctx context.Context, filter bson.M, opts *options.FindOneOptions) (*Product, error) {
	var doc mongoProduct
	if err := m.coll.FindOne(ctx, filter, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, perrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product: %w", err)
	}
	p := doc.toProduct()
	return &p, nil
}
