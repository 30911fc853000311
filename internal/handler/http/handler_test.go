package http

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/opsboard/internal/logger"
	"github.com/MKhiriev/opsboard/internal/mock/servicemock"
	"github.com/MKhiriev/opsboard/internal/service"
	"github.com/MKhiriev/opsboard/models"
)

// handlerMocks bundles the mocked service layer of a test handler.
type handlerMocks struct {
	auth      *servicemock.MockAuthService
	sessions  *servicemock.MockSessionService
	admin     *servicemock.MockAdminService
	assistant *servicemock.MockAssistantService
	appInfo   *servicemock.MockAppInfoService
}

func newTestHandler(t *testing.T) (*Handler, *handlerMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)

	mocks := &handlerMocks{
		auth:      servicemock.NewMockAuthService(ctrl),
		sessions:  servicemock.NewMockSessionService(ctrl),
		admin:     servicemock.NewMockAdminService(ctrl),
		assistant: servicemock.NewMockAssistantService(ctrl),
		appInfo:   servicemock.NewMockAppInfoService(ctrl),
	}

	h := NewHandler(&service.Services{
		AuthService:      mocks.auth,
		SessionService:   mocks.sessions,
		AdminService:     mocks.admin,
		AssistantService: mocks.assistant,
		AppInfoService:   mocks.appInfo,
	}, logger.Nop())

	return h, mocks
}

// grantSession makes the auth middleware accept the "Bearer valid-token"
// header and resolve it to the given session.
func grantSession(mocks *handlerMocks, session *service.Session) {
	mocks.auth.EXPECT().ParseToken(gomock.Any(), "valid-token").
		Return(models.Token{SessionID: session.ID, UserID: session.UserID, UserRole: session.Role}, nil).AnyTimes()
	mocks.sessions.EXPECT().Get(gomock.Any(), session.ID).Return(session, nil).AnyTimes()
}

func userSession() *service.Session {
	return &service.Session{ID: "session-1", UserID: 7, Username: "alice", Role: models.RoleUser}
}

func adminSession() *service.Session {
	return &service.Session{ID: "session-2", UserID: 1, Username: "root", Role: models.RoleAdmin}
}

// doRequest runs one request through the fully wired router.
func doRequest(t *testing.T, h *Handler, method, target, body string, authorized bool) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if authorized {
		req.Header.Set("Authorization", "Bearer valid-token")
	}

	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, req)
	return rec
}

func TestNewHandler(t *testing.T) {
	h, _ := newTestHandler(t)
	require.NotNil(t, h)
	require.NotNil(t, h.Init())
}

func TestRoutes_ProtectedRoutesRejectAnonymous(t *testing.T) {
	h, _ := newTestHandler(t)

	protected := []struct {
		method string
		target string
	}{
		{http.MethodPost, "/api/auth/logout"},
		{http.MethodGet, "/api/auth/session"},
		{http.MethodPost, "/api/assistant/cyber/ask"},
		{http.MethodGet, "/api/assistant/cyber/history"},
		{http.MethodDelete, "/api/assistant/cyber/history"},
		{http.MethodGet, "/api/admin/users/"},
		{http.MethodPost, "/api/admin/users/"},
		{http.MethodDelete, "/api/admin/users/bob"},
		{http.MethodPut, "/api/admin/users/bob/password"},
	}

	for _, route := range protected {
		rec := doRequest(t, h, route.method, route.target, "", false)
		require.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", route.method, route.target)
	}
}
