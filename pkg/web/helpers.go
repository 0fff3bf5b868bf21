// Package web holds the HTTP helpers shared by the REST handlers: JSON responses,
// path parameter extraction, request validation and middleware.
package web

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
)

// RespondJSON writes payload as JSON with the given status.
// A nil payload, or a status that forbids a body (204, 304), writes the status line only.
func RespondJSON(w http.ResponseWriter, logger *slog.Logger, status int, payload any) {
	if payload == nil || !bodyAllowed(status) {
		w.WriteHeader(status)
		return
	}

	response, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Error encoding response to JSON", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(response)
}

// RespondError writes the platform error body {"error": message}.
func RespondError(w http.ResponseWriter, logger *slog.Logger, status int, message string) {
	RespondJSON(w, logger, status, map[string]string{"error": message})
}

// PathParam extracts a non-blank, unescaped path value. On failure it writes a 400 response and returns false.
// chi matches on URL.RawPath when the request carries one, so its segments are still escaped.
func PathParam(w http.ResponseWriter, r *http.Request, logger *slog.Logger, key string) (string, bool) {
	value := r.PathValue(key)
	if r.URL.RawPath != "" {
		unescaped, err := url.PathUnescape(value)
		if err != nil {
			RespondError(w, logger, http.StatusBadRequest, fmt.Sprintf("Invalid %s: %q", key, value))
			return "", false
		}
		value = unescaped
	}
	if strings.TrimSpace(value) == "" {
		RespondError(w, logger, http.StatusBadRequest, fmt.Sprintf("Invalid %s: %q", key, value))
		return "", false
	}
	return value, true
}

func bodyAllowed(status int) bool {
	switch {
	case status >= 100 && status <= 199:
		return false
	case status == http.StatusNoContent, status == http.StatusNotModified:
		return false
	}
	return true
}
