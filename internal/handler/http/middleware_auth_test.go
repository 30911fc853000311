package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/opsboard/internal/service"
	"github.com/MKhiriev/opsboard/internal/utils"
	"github.com/MKhiriev/opsboard/models"
)

// runAuthMiddleware sends one request through h.auth with a capturing
// downstream handler and returns the recorder plus whether downstream ran.
func runAuthMiddleware(t *testing.T, h *Handler, authHeader string) (*httptest.ResponseRecorder, *http.Request, bool) {
	t.Helper()

	var captured *http.Request
	reached := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		captured = r
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}

	rec := httptest.NewRecorder()
	h.auth(next).ServeHTTP(rec, req)
	return rec, captured, reached
}

func TestAuthMiddleware_Success(t *testing.T) {
	h, mocks := newTestHandler(t)

	session := userSession()
	mocks.auth.EXPECT().ParseToken(gomock.Any(), "good-token").
		Return(models.Token{SessionID: session.ID, UserID: session.UserID}, nil)
	mocks.sessions.EXPECT().Get(gomock.Any(), session.ID).Return(session, nil)

	rec, captured, reached := runAuthMiddleware(t, h, "Bearer good-token")

	require.True(t, reached)
	assert.Equal(t, http.StatusOK, rec.Code)

	got, ok := service.SessionFromContext(captured.Context())
	require.True(t, ok)
	assert.Equal(t, session.ID, got.ID)

	userID, ok := utils.GetUserIDFromContext(captured.Context())
	require.True(t, ok)
	assert.Equal(t, session.UserID, userID)
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	h, _ := newTestHandler(t)

	rec, _, reached := runAuthMiddleware(t, h, "")

	assert.False(t, reached)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	h, _ := newTestHandler(t)

	for _, header := range []string{"Bearer", "Bearer "} {
		rec, _, reached := runAuthMiddleware(t, h, header)
		assert.False(t, reached, "header %q", header)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
	}
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	h, mocks := newTestHandler(t)

	mocks.auth.EXPECT().ParseToken(gomock.Any(), "bad-token").
		Return(models.Token{}, service.ErrTokenIsExpiredOrInvalid)

	rec, _, reached := runAuthMiddleware(t, h, "Bearer bad-token")

	assert.False(t, reached)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_DroppedSessionKillsValidToken(t *testing.T) {
	h, mocks := newTestHandler(t)

	mocks.auth.EXPECT().ParseToken(gomock.Any(), "orphan-token").
		Return(models.Token{SessionID: "gone"}, nil)
	mocks.sessions.EXPECT().Get(gomock.Any(), "gone").
		Return(nil, service.ErrSessionNotFound)

	rec, _, reached := runAuthMiddleware(t, h, "Bearer orphan-token")

	assert.False(t, reached)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_RegistryFailure(t *testing.T) {
	h, mocks := newTestHandler(t)

	mocks.auth.EXPECT().ParseToken(gomock.Any(), "token").
		Return(models.Token{SessionID: "s"}, nil)
	mocks.sessions.EXPECT().Get(gomock.Any(), "s").
		Return(nil, errors.New("registry failure"))

	rec, _, reached := runAuthMiddleware(t, h, "Bearer token")

	assert.False(t, reached)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetTokenFromAuthHeader(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr error
	}{
		{name: "valid bearer", header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{name: "scheme only", header: "Bearer", wantErr: ErrInvalidAuthorizationHeader},
		{name: "empty token", header: "Bearer ", wantErr: ErrEmptyToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := getTokenFromAuthHeader(tt.header)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
