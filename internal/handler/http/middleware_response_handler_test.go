package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wrapRecorder(rec *httptest.ResponseRecorder) *responseWriter {
	return &responseWriter{ResponseWriter: rec}
}

func TestResponseWriter_StartsEmpty(t *testing.T) {
	w := wrapRecorder(httptest.NewRecorder())

	assert.Equal(t, 0, w.status)
	assert.Equal(t, 0, w.size)
	assert.False(t, w.wroteHeader)
	assert.Nil(t, w.body)
}

func TestResponseWriter_RecordsStatus(t *testing.T) {
	tests := []struct {
		name  string
		calls []int
		want  int
	}{
		{name: "login accepted", calls: []int{http.StatusOK}, want: http.StatusOK},
		{name: "account created", calls: []int{http.StatusCreated}, want: http.StatusCreated},
		{name: "session rejected", calls: []int{http.StatusUnauthorized}, want: http.StatusUnauthorized},
		{name: "last admin kept", calls: []int{http.StatusConflict}, want: http.StatusConflict},
		{name: "provider down", calls: []int{http.StatusBadGateway}, want: http.StatusBadGateway},
		{
			name:  "second WriteHeader is ignored",
			calls: []int{http.StatusAccepted, http.StatusInternalServerError},
			want:  http.StatusAccepted,
		},
		{
			name:  "only the first of three calls wins",
			calls: []int{http.StatusOK, http.StatusCreated, http.StatusNotFound},
			want:  http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			w := wrapRecorder(rec)

			for _, code := range tt.calls {
				w.WriteHeader(code)
			}

			assert.Equal(t, tt.want, w.status)
			assert.Equal(t, tt.want, rec.Code)
			assert.True(t, w.wroteHeader)
		})
	}
}

func TestResponseWriter_WriteImpliesOK(t *testing.T) {
	w := wrapRecorder(httptest.NewRecorder())

	n, err := w.Write([]byte(`{"version":"1.4.0"}`))

	require.NoError(t, err)
	assert.Equal(t, 19, n)
	assert.Equal(t, http.StatusOK, w.status)
	assert.True(t, w.wroteHeader)
}

func TestResponseWriter_WriteKeepsExplicitStatus(t *testing.T) {
	w := wrapRecorder(httptest.NewRecorder())

	w.WriteHeader(http.StatusTooManyRequests)
	n, err := w.Write([]byte("ask limit reached"))

	require.NoError(t, err)
	assert.Equal(t, 17, n)
	assert.Equal(t, http.StatusTooManyRequests, w.status)
	assert.Equal(t, 17, w.size)
}

func TestResponseWriter_AccumulatesSizeAcrossWrites(t *testing.T) {
	rec := httptest.NewRecorder()
	w := wrapRecorder(rec)

	chunks := [][]byte{
		[]byte(`{"users":[`),
		[]byte(`{"login":"ops-admin","role":"admin"}`),
		[]byte(`]}`),
	}

	total := 0
	for _, chunk := range chunks {
		n, err := w.Write(chunk)
		require.NoError(t, err)
		total += n
	}

	assert.Equal(t, total, w.size)
	assert.Equal(t, total, rec.Body.Len())
	// Only the most recent chunk is retained for logging.
	assert.Equal(t, chunks[len(chunks)-1], w.body)
}

func TestResponseWriter_EmptyWrite(t *testing.T) {
	w := wrapRecorder(httptest.NewRecorder())

	n, err := w.Write(nil)

	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, 0, w.size)
	assert.Equal(t, http.StatusOK, w.status)
}

func TestResponseWriter_HeadersReachUnderlyingWriter(t *testing.T) {
	rec := httptest.NewRecorder()
	w := wrapRecorder(rec)

	w.Header().Set("Authorization", "Bearer token-123")
	w.WriteHeader(http.StatusOK)

	assert.Equal(t, "Bearer token-123", rec.Header().Get("Authorization"))
	assert.Equal(t, http.StatusOK, rec.Code)
}
