package web

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func Test_RespondJSON(t *testing.T) {
	testCases := []struct {
		name         string
		status       int
		payload      any
		expectedBody string
		expectedType string
	}{
		{
			name:         "payload is encoded",
			status:       http.StatusOK,
			payload:      map[string]int{"count": 2},
			expectedBody: `{"count":2}`,
			expectedType: "application/json",
		},
		{
			name:         "nil payload writes status only",
			status:       http.StatusAccepted,
			payload:      nil,
			expectedBody: "",
		},
		{
			name:         "no content never carries a body",
			status:       http.StatusNoContent,
			payload:      map[string]string{"id": "1"},
			expectedBody: "",
		},
		{
			name:         "unencodable payload",
			status:       http.StatusOK,
			payload:      map[string]any{"fn": func() {}},
			expectedBody: "Internal Server Error\n",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			rr := httptest.NewRecorder()
			// when
			RespondJSON(rr, discardLogger, tc.status, tc.payload)
			// then
			if tc.expectedBody == "Internal Server Error\n" {
				assert.Equal(t, http.StatusInternalServerError, rr.Code)
			} else {
				assert.Equal(t, tc.status, rr.Code)
			}
			assert.Equal(t, tc.expectedBody, rr.Body.String())
			if tc.expectedType != "" {
				assert.Equal(t, tc.expectedType, rr.Header().Get("Content-Type"))
			}
		})
	}
}

func Test_RespondError(t *testing.T) {
	rr := httptest.NewRecorder()
	RespondError(rr, discardLogger, http.StatusBadRequest, "Invalid request body")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"error":"Invalid request body"}`, rr.Body.String())
}

func Test_PathParam(t *testing.T) {
	testCases := []struct {
		name          string
		target        string
		value         string
		expectedValue string
		expectedOK    bool
		expectedCode  int
	}{
		{name: "present", target: "/", value: "abc", expectedValue: "abc", expectedOK: true, expectedCode: http.StatusOK},
		{name: "blank", target: "/", value: "  ", expectedOK: false, expectedCode: http.StatusBadRequest},
		{name: "empty", target: "/", value: "", expectedOK: false, expectedCode: http.StatusBadRequest},
		{name: "decoded path is used as is", target: "/50%25", value: "50%", expectedValue: "50%", expectedOK: true, expectedCode: http.StatusOK},
		{name: "raw path segment is unescaped", target: "/AC%2FDC", value: "AC%2FDC", expectedValue: "AC/DC", expectedOK: true, expectedCode: http.StatusOK},
		{name: "raw path segment with escaped percent", target: "/a%2Fb%25", value: "a%2Fb%25", expectedValue: "a/b%", expectedOK: true, expectedCode: http.StatusOK},
		{name: "broken escape in raw path", target: "/a%2Fb", value: "a%zz", expectedOK: false, expectedCode: http.StatusBadRequest},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			req := httptest.NewRequest(http.MethodGet, tc.target, nil)
			req.SetPathValue("id", tc.value)
			rr := httptest.NewRecorder()
			// when
			value, ok := PathParam(rr, req, discardLogger, "id")
			// then
			assert.Equal(t, tc.expectedOK, ok)
			assert.Equal(t, tc.expectedCode, rr.Code)
			if ok {
				assert.Equal(t, tc.expectedValue, value)
			}
		})
	}
}
