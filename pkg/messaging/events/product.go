// Package events contains the domain events published by the catalog.
package events

import (
	"encoding/json"
	"time"
)

// ProductSubjectPrefix is the subject namespace of product change events.
const ProductSubjectPrefix = "products"

// ChangeType names the mutation that produced an event.
type ChangeType string

const (
	ProductCreated ChangeType = "created"
	ProductUpdated ChangeType = "updated"
	ProductDeleted ChangeType = "deleted"
)

// ProductSnapshot is the product state carried by an event.
type ProductSnapshot struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

// ProductChangedEvent is emitted after a product was created, replaced or removed.
// Carrier holds the propagated trace context of the originating request.
type ProductChangedEvent struct {
	Carrier    map[string]string `json:"carrier,omitempty"`
	EventID    string            `json:"event_id"`
	Type       ChangeType        `json:"type"`
	Product    ProductSnapshot   `json:"product"`
	OccurredAt time.Time         `json:"occurred_at"`
}

// Subject returns products.<type>, e.g. products.created.
func (e ProductChangedEvent) Subject() string {
	return ProductSubjectPrefix + "." + string(e.Type)
}

// Key partitions events by product so that changes of one product stay ordered.
func (e ProductChangedEvent) Key() string {
	return e.Product.ID
}

func (e ProductChangedEvent) Payload() ([]byte, error) {
	return json.Marshal(e)
}
