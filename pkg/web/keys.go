package web

import (
	"context"

	"github.com/go-chi/chi/v5/middleware"
)

// RequestIDHeader is the header used to propagate the request id.
const RequestIDHeader = "X-Request-Id"

// WithRequestID adds a request ID to the context under the key chi's middleware reads,
// so middleware.GetReqID and the logging handler see the same value.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, middleware.RequestIDKey, id)
}

// GetRequestID retrieves the request ID from the context.
// Returns the request ID and a boolean indicating whether it was found.
func GetRequestID(ctx context.Context) (string, bool) {
	id := middleware.GetReqID(ctx)
	return id, id != ""
}
