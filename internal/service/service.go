// Package service provides the implementation of product-related business logic.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	perrors "github.com/abgdnv/gocatalog/internal/errors"
	"github.com/abgdnv/gocatalog/internal/store"
	"github.com/abgdnv/gocatalog/pkg/messaging"
	"github.com/abgdnv/gocatalog/pkg/messaging/events"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
)

// ProductService defines the methods for managing products.
// It abstracts the underlying business logic and data access.
type ProductService interface {
	// FindAll returns all products in store order.
	// Returns a NotFoundError if the collection is empty.
	FindAll(ctx context.Context) ([]ProductResponse, error)

	// FindByID retrieves a single product by its identifier.
	// Returns a NotFoundError if no product exists with the given ID.
	FindByID(ctx context.Context, id string) (*ProductResponse, error)

	// FindByName retrieves the first product whose name matches exactly.
	// Returns a NotFoundError if no product has that name.
	FindByName(ctx context.Context, name string) (*ProductResponse, error)

	// Create stores a new product and returns it with its assigned ID.
	Create(ctx context.Context, req ProductRequest) (*ProductResponse, error)

	// Update replaces name, description and price of an existing product.
	// Returns a NotFoundError if no product exists with the given ID.
	Update(ctx context.Context, id string, req ProductRequest) (*ProductResponse, error)

	// DeleteByID removes a product and returns it as it was before deletion.
	// Returns a NotFoundError if no product exists with the given ID.
	DeleteByID(ctx context.Context, id string) (*ProductResponse, error)

	// DeleteAll removes every product and returns them as they were before deletion.
	// Returns a NotFoundError if the collection is empty.
	DeleteAll(ctx context.Context) ([]ProductResponse, error)

	// Ping checks that the product store is reachable.
	Ping(ctx context.Context) error
}

const (
	opCreate    = "create"
	opUpdate    = "update"
	opDelete    = "delete"
	opDeleteAll = "delete_all"
)

// Service implements ProductService and provides methods to manage products.
type Service struct {
	repository store.ProductStore
	publisher  messaging.Publisher
	mutations  metric.Int64Counter
}

// NewService creates a new instance of ProductService with the provided repository and event publisher.
func NewService(repo store.ProductStore, publisher messaging.Publisher) *Service {
	meter := otel.Meter("product-service")
	mutations, err := meter.Int64Counter("product_mutations", metric.WithDescription("Total number of successful product mutations"))
	if err != nil {
		panic(fmt.Sprintf("failed to create product_mutations counter: %v", err))
	}
	return &Service{
		repository: repo,
		publisher:  publisher,
		mutations:  mutations,
	}
}

// FindAll retrieves all products and returns them as ProductResponses.
func (s *Service) FindAll(ctx context.Context) ([]ProductResponse, error) {
	products, err := s.repository.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	if len(products) == 0 {
		return nil, perrors.NotFoundEmpty()
	}
	return toResponses(products), nil
}

// FindByID retrieves a product by its ID.
func (s *Service) FindByID(ctx context.Context, id string) (*ProductResponse, error) {
	product, err := s.repository.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, perrors.ErrProductNotFound) {
			return nil, perrors.NotFoundByID(id)
		}
		return nil, fmt.Errorf("failed to fetch product by ID %s: %w", id, err)
	}
	resp := toResponse(*product)
	return &resp, nil
}

// FindByName retrieves the first product with the given name.
func (s *Service) FindByName(ctx context.Context, name string) (*ProductResponse, error) {
	product, err := s.repository.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, perrors.ErrProductNotFound) {
			return nil, perrors.NotFoundByName(name)
		}
		return nil, fmt.Errorf("failed to fetch product by name %s: %w", name, err)
	}
	resp := toResponse(*product)
	return &resp, nil
}

// Create stores a new product. The store assigns its ID.
func (s *Service) Create(ctx context.Context, req ProductRequest) (*ProductResponse, error) {
	saved, err := s.repository.Save(ctx, toRecord(req))
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	resp := toResponse(*saved)
	s.recordMutation(ctx, opCreate, events.ProductCreated, resp)
	return &resp, nil
}

// Update overwrites an existing product, keeping its ID.
// The existence check and the write are separate store calls.
func (s *Service) Update(ctx context.Context, id string, req ProductRequest) (*ProductResponse, error) {
	exists, err := s.repository.ExistsByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to check product with ID %s: %w", id, err)
	}
	if !exists {
		return nil, perrors.NotFoundByID(id)
	}

	record := toRecord(req)
	record.ID = id
	saved, err := s.repository.Save(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("failed to update product with ID %s: %w", id, err)
	}
	resp := toResponse(*saved)
	s.recordMutation(ctx, opUpdate, events.ProductUpdated, resp)
	return &resp, nil
}

// DeleteByID removes a product and returns its last state.
func (s *Service) DeleteByID(ctx context.Context, id string) (*ProductResponse, error) {
	found, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repository.DeleteByID(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to delete product with ID %s: %w", id, err)
	}
	s.recordMutation(ctx, opDelete, events.ProductDeleted, *found)
	return found, nil
}

// DeleteAll removes every product and returns the products captured before deletion.
func (s *Service) DeleteAll(ctx context.Context) ([]ProductResponse, error) {
	found, err := s.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.repository.DeleteAll(ctx); err != nil {
		return nil, fmt.Errorf("failed to delete all products: %w", err)
	}
	s.mutations.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", opDeleteAll)))
	for _, p := range found {
		s.publish(ctx, events.ProductDeleted, p)
	}
	return found, nil
}

// Ping checks the product store.
func (s *Service) Ping(ctx context.Context) error {
	return s.repository.Ping(ctx)
}

func (s *Service) recordMutation(ctx context.Context, op string, change events.ChangeType, product ProductResponse) {
	s.mutations.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", op)))
	s.publish(ctx, change, product)
}

// publish sends a change event. Failures are logged and never returned.
func (s *Service) publish(ctx context.Context, change events.ChangeType, product ProductResponse) {
	carrier := make(propagation.MapCarrier)
	otel.GetTextMapPropagator().Inject(ctx, carrier)
	event := events.ProductChangedEvent{
		Carrier: carrier,
		EventID: uuid.NewString(),
		Type:    change,
		Product: events.ProductSnapshot{
			ID:          product.ID,
			Name:        product.Name,
			Description: product.Description,
			Price:       product.Price,
		},
		OccurredAt: time.Now().UTC(),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		slog.ErrorContext(ctx, "Failed to publish ProductChangedEvent", "type", change, "product_id", product.ID, "error", err)
	}
}
