package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/opsboard/internal/logger"
	"github.com/MKhiriev/opsboard/models"
)

func newTestAPIClient(t *testing.T, handler http.HandlerFunc) APIClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	api, err := NewAPIClient(srv.URL, 0, logger.Nop())
	require.NoError(t, err)
	return api
}

func TestLogin_StoresTokenForLaterCalls(t *testing.T) {
	var authHeaderSeen string
	api := newTestAPIClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			var user models.User
			require.NoError(t, json.NewDecoder(r.Body).Decode(&user))
			assert.Equal(t, "alice", user.Username)
			w.Header().Set("Authorization", "Bearer issued-token")
			w.WriteHeader(http.StatusOK)
		case "/api/auth/session":
			authHeaderSeen = r.Header.Get("Authorization")
			json.NewEncoder(w).Encode(models.SessionInfo{Username: "alice", Role: models.RoleUser})
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	})

	ctx := context.Background()
	require.NoError(t, api.Login(ctx, "alice", "sup3rsecret"))

	info, err := api.Session(ctx)
	require.NoError(t, err)
	assert.Equal(t, "alice", info.Username)
	assert.Equal(t, "Bearer issued-token", authHeaderSeen)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	api := newTestAPIClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid username/password", http.StatusUnauthorized)
	})

	err := api.Login(context.Background(), "alice", "wrong")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestRegister_Duplicate(t *testing.T) {
	api := newTestAPIClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "username already exists", http.StatusConflict)
	})

	err := api.Register(context.Background(), "alice", "sup3rsecret")
	assert.ErrorIs(t, err, ErrConflict)
}

func TestAsk(t *testing.T) {
	api := newTestAPIClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/assistant/cyber/ask", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)

		var req models.AskRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "What should I patch first?", req.Question)

		json.NewEncoder(w).Encode(models.AskResponse{
			Reply: models.ChatTurn{Speaker: models.SpeakerAssistant, Text: "Start with the exposed hosts."},
		})
	})

	reply, err := api.Ask(context.Background(), models.DomainCyber, models.AskRequest{Question: "What should I patch first?"})
	require.NoError(t, err)
	assert.Equal(t, "Start with the exposed hosts.", reply.Text)
}

func TestAsk_UsageLimit(t *testing.T) {
	api := newTestAPIClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "usage limit reached", http.StatusTooManyRequests)
	})

	_, err := api.Ask(context.Background(), models.DomainIT, models.AskRequest{Question: "hi"})
	assert.ErrorIs(t, err, ErrTooManyRequests)
}

func TestListUsers(t *testing.T) {
	api := newTestAPIClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/admin/users/", r.URL.Path)
		json.NewEncoder(w).Encode([]models.Summary{{Username: "root", Role: models.RoleAdmin}})
	})

	users, err := api.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, models.RoleAdmin, users[0].Role)
}

func TestDeleteUser_LastAdmin(t *testing.T) {
	api := newTestAPIClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/admin/users/root", r.URL.Path)
		http.Error(w, "error deleting user", http.StatusConflict)
	})

	err := api.DeleteUser(context.Background(), "root")
	assert.ErrorIs(t, err, ErrConflict)
}

func TestLogout_ClearsTokenEvenOnFailure(t *testing.T) {
	loggedIn := true
	api := newTestAPIClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			w.Header().Set("Authorization", "Bearer issued-token")
		case "/api/auth/logout":
			loggedIn = false
			http.Error(w, "session registry unavailable", http.StatusInternalServerError)
		case "/api/auth/session":
			if r.Header.Get("Authorization") == "" {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			json.NewEncoder(w).Encode(models.SessionInfo{})
		}
	})

	ctx := context.Background()
	require.NoError(t, api.Login(ctx, "alice", "sup3rsecret"))
	require.Error(t, api.Logout(ctx))
	assert.False(t, loggedIn)

	// Token is gone, so the next call goes out unauthenticated.
	_, err := api.Session(ctx)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestServerVersion(t *testing.T) {
	api := newTestAPIClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/version/", r.URL.Path)
		w.Write([]byte("1.2.3\n"))
	})

	version, err := api.ServerVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "1.2.3", version)
}

func TestNewAPIClient_Validation(t *testing.T) {
	_, err := NewAPIClient("", 0, logger.Nop())
	assert.Error(t, err)

	_, err = NewAPIClient("  ", 0, logger.Nop())
	assert.Error(t, err)
}

func TestNormalizeBaseURL(t *testing.T) {
	got, err := normalizeBaseURL("localhost:8080")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", got)

	got, err = normalizeBaseURL("https://opsboard.example.com/")
	require.NoError(t, err)
	assert.Equal(t, "https://opsboard.example.com", got)
}
