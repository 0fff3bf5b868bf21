// Package rest provides HTTP handlers for product-related operations.
package rest

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/abgdnv/gocatalog/internal/service"
	"github.com/abgdnv/gocatalog/pkg/web"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type Handler struct {
	service  service.ProductService
	validate *validator.Validate
	logger   *slog.Logger
	status   statusPolicy
	now      func() time.Time
}

// statusPolicy holds the success codes that differ between the legacy and the normalized API.
type statusPolicy struct {
	found   int
	updated int
}

var (
	legacyStatus     = statusPolicy{found: http.StatusFound, updated: http.StatusCreated}
	normalizedStatus = statusPolicy{found: http.StatusOK, updated: http.StatusOK}
)

// NewHandler creates a new product Handler.
// With normalizeStatus set, single product reads and updates answer 200 instead of 302 and 201.
func NewHandler(service service.ProductService, logger *slog.Logger, normalizeStatus bool) *Handler {
	policy := legacyStatus
	if normalizeStatus {
		policy = normalizedStatus
	}
	return &Handler{
		service:  service,
		validate: web.NewValidator(),
		logger:   logger.With("component", "rest"),
		status:   policy,
		now:      time.Now,
	}
}

// RegisterRoutes registers the HTTP routes for the product service.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/products", func(r chi.Router) {
		r.Get("/", h.FindAll)
		r.Post("/", h.Create)
		r.Delete("/all", h.DeleteAll)
		r.Get("/name/{name}", h.FindByName)
		r.Put("/update/{id}", h.Update)
		r.Get("/{id}", h.FindByID)
		r.Delete("/{id}", h.DeleteByID)
	})

	r.Get("/healthz", h.HealthCheck)
}

// FindAll retrieves a list of all products.
func (h *Handler) FindAll(w http.ResponseWriter, r *http.Request) {
	h.logger.DebugContext(r.Context(), "Received request to find all products")
	list, err := h.service.FindAll(r.Context())
	if err != nil {
		h.respondServiceError(w, r, err, "Failed to fetch products")
		return
	}
	h.logger.DebugContext(r.Context(), "Successfully retrieved product list", "count", len(list))
	web.RespondJSON(w, h.logger, http.StatusOK, list)
}

// FindByID retrieves a product by its ID.
func (h *Handler) FindByID(w http.ResponseWriter, r *http.Request) {
	id, ok := web.PathParam(w, r, h.logger, "id")
	if !ok {
		return
	}
	h.logger.DebugContext(r.Context(), "Received request to find product by ID", "ID", id)
	found, err := h.service.FindByID(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, r, err, "Failed to retrieve product with ID "+id)
		return
	}
	h.logger.DebugContext(r.Context(), "Successfully retrieved product", "ID", found.ID, "Name", found.Name)
	web.RespondJSON(w, h.logger, h.status.found, found)
}

// FindByName retrieves the first product with the given name.
func (h *Handler) FindByName(w http.ResponseWriter, r *http.Request) {
	name, ok := web.PathParam(w, r, h.logger, "name")
	if !ok {
		return
	}
	h.logger.DebugContext(r.Context(), "Received request to find product by name", "Name", name)
	found, err := h.service.FindByName(r.Context(), name)
	if err != nil {
		h.respondServiceError(w, r, err, "Failed to retrieve product with name "+name)
		return
	}
	h.logger.DebugContext(r.Context(), "Successfully retrieved product", "ID", found.ID, "Name", found.Name)
	web.RespondJSON(w, h.logger, h.status.found, found)
}

// Create handles the creation of a new product.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}
	h.logger.DebugContext(r.Context(), "Received request to create product", "product", req)
	created, err := h.service.Create(r.Context(), req)
	if err != nil {
		h.respondServiceError(w, r, err, "Failed to create product")
		return
	}
	h.logger.InfoContext(r.Context(), "Product created successfully", "ID", created.ID, "Name", created.Name)
	web.RespondJSON(w, h.logger, http.StatusCreated, created)
}

// Update replaces the fields of an existing product.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := web.PathParam(w, r, h.logger, "id")
	if !ok {
		return
	}
	req, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}
	h.logger.DebugContext(r.Context(), "Received request to update product", "ID", id)
	updated, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		h.respondServiceError(w, r, err, "Failed to update product with ID "+id)
		return
	}
	h.logger.InfoContext(r.Context(), "Product updated successfully", "ID", updated.ID, "Name", updated.Name)
	web.RespondJSON(w, h.logger, h.status.updated, updated)
}

// DeleteByID deletes a product by its ID.
func (h *Handler) DeleteByID(w http.ResponseWriter, r *http.Request) {
	id, ok := web.PathParam(w, r, h.logger, "id")
	if !ok {
		return
	}
	h.logger.DebugContext(r.Context(), "Received request to delete product", "ID", id)
	deleted, err := h.service.DeleteByID(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, r, err, "Failed to delete product with ID "+id)
		return
	}
	h.logger.InfoContext(r.Context(), "Product deleted successfully", "ID", deleted.ID, "Name", deleted.Name)
	w.WriteHeader(http.StatusNoContent)
}

// DeleteAll deletes every product.
func (h *Handler) DeleteAll(w http.ResponseWriter, r *http.Request) {
	h.logger.DebugContext(r.Context(), "Received request to delete all products")
	deleted, err := h.service.DeleteAll(r.Context())
	if err != nil {
		h.respondServiceError(w, r, err, "Failed to delete products")
		return
	}
	h.logger.InfoContext(r.Context(), "All products deleted successfully", "count", len(deleted))
	w.WriteHeader(http.StatusNoContent)
}

// HealthCheck answers 200 while the product store is reachable and 503 otherwise.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Ping(r.Context()); err != nil {
		h.logger.WarnContext(r.Context(), "Health check failed", "error", err)
		web.RespondError(w, h.logger, http.StatusServiceUnavailable, "store unavailable")
		return
	}
	web.RespondJSON(w, h.logger, http.StatusOK, map[string]string{"status": "ok"})
}

// decodeRequest reads and validates a ProductRequest. On failure it writes a 400 response.
func (h *Handler) decodeRequest(w http.ResponseWriter, r *http.Request) (service.ProductRequest, bool) {
	var req service.ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return req, false
	}
	if err := h.validate.Struct(req); err != nil {
		if errorResponse, ok := web.ValidationErrors(err); ok {
			h.logger.WarnContext(r.Context(), "Validation errors occurred", "errors", errorResponse)
			web.RespondJSON(w, h.logger, http.StatusBadRequest, map[string]any{"validation_errors": errorResponse})
			return req, false
		}
		h.logger.ErrorContext(r.Context(), "Error validating request body", "error", err)
		web.RespondError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return req, false
	}
	return req, true
}
