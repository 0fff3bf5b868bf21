// Package errors provides custom error types for product-related operations.
package errors

import (
	"errors"
	"fmt"
)

// ErrProductNotFound is returned by stores when a record is absent.
// Every NotFoundError matches it with errors.Is.
var ErrProductNotFound = errors.New("product not found")

// Reason tells which lookup produced a NotFoundError.
type Reason int

const (
	ByID Reason = iota
	ByName
	EmptyCollection
)

// NotFoundError is the single domain error kind of the catalog.
type NotFoundError struct {
	Reason Reason
	Key    string
}

// NotFoundByID reports that no product has the given id.
func NotFoundByID(id string) *NotFoundError {
	return &NotFoundError{Reason: ByID, Key: id}
}

// NotFoundByName reports that no product has the given name.
func NotFoundByName(name string) *NotFoundError {
	return &NotFoundError{Reason: ByName, Key: name}
}

// NotFoundEmpty reports that the collection holds no products.
func NotFoundEmpty() *NotFoundError {
	return &NotFoundError{Reason: EmptyCollection}
}

func (e *NotFoundError) Error() string {
	switch e.Reason {
	case ByID:
		return fmt.Sprintf("Product with id %s not found", e.Key)
	case ByName:
		return fmt.Sprintf("Product with name %s not found", e.Key)
	default:
		return "There is no product in the database"
	}
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrProductNotFound
}
