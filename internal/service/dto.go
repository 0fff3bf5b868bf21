package service

import "github.com/abgdnv/gocatalog/internal/store"

// ProductRequest is the inbound shape for create and update. It never carries an ID.
type ProductRequest struct {
	Name        string  `json:"name"        validate:"required,notblank"`
	Description string  `json:"description"`
	Price       float64 `json:"price"       validate:"required,gt=0"`
}

// ProductResponse is the outbound projection of a stored product.
type ProductResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

// toRecord converts a request into a record without an ID.
func toRecord(req ProductRequest) store.Product {
	return store.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
	}
}

// toResponse converts a stored record into its response projection.
func toResponse(product store.Product) ProductResponse {
	return ProductResponse{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
	}
}

func toResponses(products []store.Product) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i, p := range products {
		responses[i] = toResponse(p)
	}
	return responses
}
