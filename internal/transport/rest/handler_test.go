package rest

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	perrors "github.com/abgdnv/gocatalog/internal/errors"
	"github.com/abgdnv/gocatalog/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

// mockProductService is a mock implementation of the ProductService interface
type mockProductService struct {
	product  *service.ProductResponse
	products []service.ProductResponse
	error    error

	lastID      string
	lastName    string
	lastRequest service.ProductRequest
}

func (m *mockProductService) FindAll(_ context.Context) ([]service.ProductResponse, error) {
	return m.products, m.error
}

func (m *mockProductService) FindByID(_ context.Context, id string) (*service.ProductResponse, error) {
	m.lastID = id
	return m.product, m.error
}

func (m *mockProductService) FindByName(_ context.Context, name string) (*service.ProductResponse, error) {
	m.lastName = name
	return m.product, m.error
}

func (m *mockProductService) Create(_ context.Context, req service.ProductRequest) (*service.ProductResponse, error) {
	m.lastRequest = req
	return m.product, m.error
}

func (m *mockProductService) Update(_ context.Context, id string, req service.ProductRequest) (*service.ProductResponse, error) {
	m.lastID = id
	m.lastRequest = req
	return m.product, m.error
}

func (m *mockProductService) DeleteByID(_ context.Context, id string) (*service.ProductResponse, error) {
	m.lastID = id
	return m.product, m.error
}

func (m *mockProductService) DeleteAll(_ context.Context) ([]service.ProductResponse, error) {
	return m.products, m.error
}

func (m *mockProductService) Ping(_ context.Context) error {
	return m.error
}

var (
	discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))
	fixedNow      = time.Date(2026, 10, 17, 14, 5, 0, 0, time.UTC)
	laptop        = &service.ProductResponse{ID: "1", Name: "Laptop", Description: "dell", Price: 255.99}
	laptopJSON    = `{"id":"1","name":"Laptop","description":"dell","price":255.99}`
	errService    = errors.New("service unavailable")
)

func notFoundJSON(message string) string {
	return `{"timeStamp":"10/17/2026 02:05 PM","error":"Product Not Found","message":"` + message + `","status":"404 NOT_FOUND"}`
}

// serve routes the request through a router with the handler registered.
func serve(svc service.ProductService, normalize bool, method, target, body string) *httptest.ResponseRecorder {
	h := NewHandler(svc, discardLogger, normalize)
	h.now = func() time.Time { return fixedNow }
	mux := chi.NewRouter()
	h.RegisterRoutes(mux)

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	return rr
}

func Test_Handler_FindAll(t *testing.T) {
	testCases := []struct {
		name         string
		mockService  *mockProductService
		expectedCode int
		expectedBody string
	}{
		{
			name: "Success - products found",
			mockService: &mockProductService{products: []service.ProductResponse{
				*laptop,
				{ID: "2", Name: "Mouse", Price: 25},
			}},
			expectedCode: http.StatusOK,
			expectedBody: `[` + laptopJSON + `,{"id":"2","name":"Mouse","description":"","price":25}]`,
		},
		{
			name:         "Error - empty collection",
			mockService:  &mockProductService{error: perrors.NotFoundEmpty()},
			expectedCode: http.StatusNotFound,
			expectedBody: notFoundJSON("There is no product in the database"),
		},
		{
			name:         "Error - service error",
			mockService:  &mockProductService{error: errService},
			expectedCode: http.StatusInternalServerError,
			expectedBody: `{"error":"Failed to fetch products"}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// when
			rr := serve(tc.mockService, false, http.MethodGet, "/api/v1/products", "")

			// then
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
			assert.Equal(t, tc.expectedCode, rr.Code, "status code should match")
			assert.JSONEq(t, tc.expectedBody, rr.Body.String(), "response body should match")
		})
	}
}

func Test_Handler_FindByID(t *testing.T) {
	testCases := []struct {
		name         string
		mockService  *mockProductService
		normalize    bool
		expectedCode int
		expectedBody string
	}{
		{
			name:         "Success - legacy status",
			mockService:  &mockProductService{product: laptop},
			expectedCode: http.StatusFound,
			expectedBody: laptopJSON,
		},
		{
			name:         "Success - normalized status",
			mockService:  &mockProductService{product: laptop},
			normalize:    true,
			expectedCode: http.StatusOK,
			expectedBody: laptopJSON,
		},
		{
			name:         "Error - product not found",
			mockService:  &mockProductService{error: perrors.NotFoundByID("1")},
			expectedCode: http.StatusNotFound,
			expectedBody: notFoundJSON("Product with id 1 not found"),
		},
		{
			name:         "Error - service error",
			mockService:  &mockProductService{error: errService},
			expectedCode: http.StatusInternalServerError,
			expectedBody: `{"error":"Failed to retrieve product with ID 1"}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// when
			rr := serve(tc.mockService, tc.normalize, http.MethodGet, "/api/v1/products/1", "")

			// then
			assert.Equal(t, tc.expectedCode, rr.Code, "status code should match")
			assert.JSONEq(t, tc.expectedBody, rr.Body.String(), "response body should match")
			assert.Equal(t, "1", tc.mockService.lastID)
		})
	}
}

func Test_Handler_FindByName(t *testing.T) {
	testCases := []struct {
		name         string
		mockService  *mockProductService
		normalize    bool
		expectedCode int
		expectedBody string
	}{
		{
			name:         "Success - legacy status",
			mockService:  &mockProductService{product: laptop},
			expectedCode: http.StatusFound,
			expectedBody: laptopJSON,
		},
		{
			name:         "Success - normalized status",
			mockService:  &mockProductService{product: laptop},
			normalize:    true,
			expectedCode: http.StatusOK,
			expectedBody: laptopJSON,
		},
		{
			name:         "Error - product not found",
			mockService:  &mockProductService{error: perrors.NotFoundByName("Laptop")},
			expectedCode: http.StatusNotFound,
			expectedBody: notFoundJSON("Product with name Laptop not found"),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// when
			rr := serve(tc.mockService, tc.normalize, http.MethodGet, "/api/v1/products/name/Laptop", "")

			// then
			assert.Equal(t, tc.expectedCode, rr.Code, "status code should match")
			assert.JSONEq(t, tc.expectedBody, rr.Body.String(), "response body should match")
			assert.Equal(t, "Laptop", tc.mockService.lastName)
		})
	}
}

func Test_Handler_FindByName_escapedNames(t *testing.T) {
	testCases := []struct {
		name         string
		target       string
		expectedName string
	}{
		{name: "encoded slash", target: "/api/v1/products/name/AC%2FDC", expectedName: "AC/DC"},
		{name: "encoded percent", target: "/api/v1/products/name/50%25", expectedName: "50%"},
		{name: "slash and percent", target: "/api/v1/products/name/a%2Fb%25", expectedName: "a/b%"},
		{name: "encoded space", target: "/api/v1/products/name/Laptop%20Pro", expectedName: "Laptop Pro"},
		{name: "unicode", target: "/api/v1/products/name/caf%C3%A9", expectedName: "café"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			mockService := &mockProductService{error: perrors.NotFoundByName(tc.expectedName)}

			// when
			rr := serve(mockService, false, http.MethodGet, tc.target, "")

			// then
			assert.Equal(t, http.StatusNotFound, rr.Code)
			assert.Equal(t, tc.expectedName, mockService.lastName, "handler should pass the unescaped name")
			assert.JSONEq(t, notFoundJSON("Product with name "+tc.expectedName+" not found"), rr.Body.String())
		})
	}
}

func Test_Handler_Create(t *testing.T) {
	testCases := []struct {
		name         string
		mockService  *mockProductService
		body         string
		expectedCode int
		expectedBody string
	}{
		{
			name:         "Success - product created",
			mockService:  &mockProductService{product: laptop},
			body:         `{"name":"Laptop","description":"dell","price":255.99}`,
			expectedCode: http.StatusCreated,
			expectedBody: laptopJSON,
		},
		{
			name:         "Error - malformed JSON",
			mockService:  &mockProductService{},
			body:         `{"name":`,
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"error":"Invalid request body"}`,
		},
		{
			name:         "Error - blank name and missing price",
			mockService:  &mockProductService{},
			body:         `{"name":"   "}`,
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"validation_errors":{"Name":"failed on rule: notblank","Price":"failed on rule: required"}}`,
		},
		{
			name:         "Error - negative price",
			mockService:  &mockProductService{},
			body:         `{"name":"Laptop","price":-1}`,
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"validation_errors":{"Price":"failed on rule: gt"}}`,
		},
		{
			name:         "Error - service error",
			mockService:  &mockProductService{error: errService},
			body:         `{"name":"Laptop","price":1}`,
			expectedCode: http.StatusInternalServerError,
			expectedBody: `{"error":"Failed to create product"}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// when
			rr := serve(tc.mockService, false, http.MethodPost, "/api/v1/products", tc.body)

			// then
			assert.Equal(t, tc.expectedCode, rr.Code, "status code should match")
			assert.JSONEq(t, tc.expectedBody, rr.Body.String(), "response body should match")
		})
	}
}

func Test_Handler_Update(t *testing.T) {
	testCases := []struct {
		name         string
		mockService  *mockProductService
		normalize    bool
		body         string
		expectedCode int
		expectedBody string
	}{
		{
			name:         "Success - legacy status",
			mockService:  &mockProductService{product: laptop},
			body:         `{"name":"Laptop","description":"dell","price":255.99}`,
			expectedCode: http.StatusCreated,
			expectedBody: laptopJSON,
		},
		{
			name:         "Success - normalized status",
			mockService:  &mockProductService{product: laptop},
			normalize:    true,
			body:         `{"name":"Laptop","description":"dell","price":255.99}`,
			expectedCode: http.StatusOK,
			expectedBody: laptopJSON,
		},
		{
			name:         "Error - product not found",
			mockService:  &mockProductService{error: perrors.NotFoundByID("1")},
			body:         `{"name":"Laptop","price":1}`,
			expectedCode: http.StatusNotFound,
			expectedBody: notFoundJSON("Product with id 1 not found"),
		},
		{
			name:         "Error - validation",
			mockService:  &mockProductService{},
			body:         `{"description":"x","price":1}`,
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"validation_errors":{"Name":"failed on rule: required"}}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// when
			rr := serve(tc.mockService, tc.normalize, http.MethodPut, "/api/v1/products/update/1", tc.body)

			// then
			assert.Equal(t, tc.expectedCode, rr.Code, "status code should match")
			assert.JSONEq(t, tc.expectedBody, rr.Body.String(), "response body should match")
		})
	}
}

func Test_Handler_Update_passesPathID(t *testing.T) {
	// given
	svc := &mockProductService{product: laptop}

	// when
	serve(svc, false, http.MethodPut, "/api/v1/products/update/abc", `{"name":"Headphone","description":"x","price":100}`)

	// then
	assert.Equal(t, "abc", svc.lastID)
	assert.Equal(t, service.ProductRequest{Name: "Headphone", Description: "x", Price: 100}, svc.lastRequest)
}

func Test_Handler_Deletes(t *testing.T) {
	testCases := []struct {
		name         string
		mockService  *mockProductService
		target       string
		expectedCode int
		expectedBody string
	}{
		{
			name:         "DeleteByID - success has no body",
			mockService:  &mockProductService{product: laptop},
			target:       "/api/v1/products/1",
			expectedCode: http.StatusNoContent,
		},
		{
			name:         "DeleteByID - not found",
			mockService:  &mockProductService{error: perrors.NotFoundByID("1")},
			target:       "/api/v1/products/1",
			expectedCode: http.StatusNotFound,
			expectedBody: notFoundJSON("Product with id 1 not found"),
		},
		{
			name:         "DeleteAll - success has no body",
			mockService:  &mockProductService{products: []service.ProductResponse{*laptop}},
			target:       "/api/v1/products/all",
			expectedCode: http.StatusNoContent,
		},
		{
			name:         "DeleteAll - empty collection",
			mockService:  &mockProductService{error: perrors.NotFoundEmpty()},
			target:       "/api/v1/products/all",
			expectedCode: http.StatusNotFound,
			expectedBody: notFoundJSON("There is no product in the database"),
		},
		{
			name:         "DeleteAll - service error",
			mockService:  &mockProductService{error: errService},
			target:       "/api/v1/products/all",
			expectedCode: http.StatusInternalServerError,
			expectedBody: `{"error":"Failed to delete products"}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// when
			rr := serve(tc.mockService, false, http.MethodDelete, tc.target, "")

			// then
			assert.Equal(t, tc.expectedCode, rr.Code, "status code should match")
			if tc.expectedBody == "" {
				assert.Empty(t, rr.Body.String())
				return
			}
			assert.JSONEq(t, tc.expectedBody, rr.Body.String(), "response body should match")
		})
	}
}

func Test_Handler_DeleteAll_isNotTreatedAsID(t *testing.T) {
	// given
	svc := &mockProductService{products: []service.ProductResponse{*laptop}}

	// when
	rr := serve(svc, false, http.MethodDelete, "/api/v1/products/all", "")

	// then
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Empty(t, svc.lastID)
}

func Test_Handler_HealthCheck(t *testing.T) {
	testCases := []struct {
		name         string
		mockService  *mockProductService
		expectedCode int
		expectedBody string
	}{
		{
			name:         "store reachable",
			mockService:  &mockProductService{},
			expectedCode: http.StatusOK,
			expectedBody: `{"status":"ok"}`,
		},
		{
			name:         "store unreachable",
			mockService:  &mockProductService{error: errService},
			expectedCode: http.StatusServiceUnavailable,
			expectedBody: `{"error":"store unavailable"}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// when
			rr := serve(tc.mockService, false, http.MethodGet, "/healthz", "")

			// then
			assert.Equal(t, tc.expectedCode, rr.Code)
			assert.JSONEq(t, tc.expectedBody, rr.Body.String())
		})
	}
}
