package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/opsboard/internal/logger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newNopHandler builds a Handler with a nop logger and no services, enough
// for middleware-only tests.
func newNopHandler() *Handler {
	return &Handler{logger: logger.Nop()}
}

func executeWithTraceID(h *Handler, incomingTraceID string) *httptest.ResponseRecorder {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	middleware := h.withTraceID(next)
	req := httptest.NewRequest(http.MethodGet, "/api/auth/session", nil)
	if incomingTraceID != "" {
		req.Header.Set(traceIDHeader, incomingTraceID)
	}

	rr := httptest.NewRecorder()
	middleware.ServeHTTP(rr, req)
	return rr
}

func TestWithTraceID_TableTest(t *testing.T) {
	tests := []struct {
		name            string
		requestTraceID  string
		wantSameTraceID bool
		wantValidUUID   bool
	}{
		{
			name:            "trace ID from request header is reused",
			requestTraceID:  "console-trace-1",
			wantSameTraceID: true,
		},
		{
			name:           "no incoming trace ID, one is generated",
			requestTraceID: "",
			wantValidUUID:  true,
		},
		{
			name:            "incoming UUID is preserved verbatim",
			requestTraceID:  "550e8400-e29b-41d4-a716-446655440000",
			wantSameTraceID: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newNopHandler()

			rr := executeWithTraceID(h, tt.requestTraceID)

			responseTraceID := rr.Header().Get(traceIDHeader)
			require.NotEmpty(t, responseTraceID, "X-Trace-ID header must be set in response")

			if tt.wantSameTraceID {
				assert.Equal(t, tt.requestTraceID, responseTraceID)
			}
			if tt.wantValidUUID {
				_, err := uuid.Parse(responseTraceID)
				assert.NoError(t, err, "generated trace ID should be a valid UUID, got: %s", responseTraceID)
			}
			assert.Equal(t, http.StatusOK, rr.Code)
		})
	}
}

func TestWithTraceID_GeneratesUniqueIDs(t *testing.T) {
	h := newNopHandler()
	seen := make(map[string]struct{})

	for i := 0; i < 100; i++ {
		rr := executeWithTraceID(h, "")
		id := rr.Header().Get(traceIDHeader)
		require.NotEmpty(t, id)

		_, duplicate := seen[id]
		assert.False(t, duplicate, "duplicate trace ID generated: %s", id)
		seen[id] = struct{}{}
	}
}

func TestWithTraceID_LoggerReachableDownstream(t *testing.T) {
	h := newNopHandler()
	var ctxLogger *logger.Logger

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxLogger = logger.FromRequest(r)
		w.WriteHeader(http.StatusOK)
	})

	middleware := h.withTraceID(next)
	req := httptest.NewRequest(http.MethodGet, "/api/auth/session", nil)
	req.Header.Set(traceIDHeader, "trace-context-test")

	rr := httptest.NewRecorder()
	middleware.ServeHTTP(rr, req)

	require.NotNil(t, ctxLogger, "trace-bound logger must be in the request context")
}

func TestWithTraceID_AlwaysCallsNext(t *testing.T) {
	h := newNopHandler()
	nextCalled := false

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
		w.WriteHeader(http.StatusTeapot)
	})

	middleware := h.withTraceID(next)
	req := httptest.NewRequest(http.MethodGet, "/api/version/", nil)
	rr := httptest.NewRecorder()
	middleware.ServeHTTP(rr, req)

	assert.True(t, nextCalled)
	assert.Equal(t, http.StatusTeapot, rr.Code)
}

func TestWithTraceID_ConcurrentRequests(t *testing.T) {
	h := newNopHandler()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	middleware := h.withTraceID(next)

	const n = 50
	done := make(chan string, n)

	for i := 0; i < n; i++ {
		go func() {
			req := httptest.NewRequest(http.MethodGet, "/api/auth/session", nil)
			rr := httptest.NewRecorder()
			middleware.ServeHTTP(rr, req)
			done <- rr.Header().Get(traceIDHeader)
		}()
	}

	seen := make(map[string]struct{})
	for i := 0; i < n; i++ {
		id := <-done
		require.NotEmpty(t, id)
		seen[id] = struct{}{}
	}

	assert.Len(t, seen, n, "all generated trace IDs should be unique")
}
