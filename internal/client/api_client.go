package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/opsboard/internal/logger"
	"github.com/MKhiriev/opsboard/internal/utils"
	"github.com/MKhiriev/opsboard/models"
)

type apiClient struct {
	client *utils.HTTPClient
	token  string

	logger *logger.Logger
}

// NewAPIClient constructs a REST implementation of [APIClient]. It normalises
// and validates the base URL and configures the underlying HTTP client with
// the resolved base URL and request timeout.
//
// Returns an error if address is empty or cannot be parsed as a valid URL.
func NewAPIClient(address string, timeout time.Duration, logger *logger.Logger) (APIClient, error) {
	baseURL, err := normalizeBaseURL(address)
	if err != nil {
		return nil, fmt.Errorf("invalid server address: %w", err)
	}

	client := utils.NewHTTPClient()
	client.
		SetBaseURL(baseURL).
		SetTimeout(timeout)

	return &apiClient{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// Register implements [APIClient]. On success the bearer token is extracted
// from the Authorization response header and kept for subsequent calls.
func (a *apiClient) Register(ctx context.Context, username, password string) error {
	resp, err := a.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.User{Username: username, Password: password}).
		Post("/api/auth/register")
	if err != nil {
		return fmt.Errorf("register request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}

	return a.storeToken(resp)
}

// Login implements [APIClient].
func (a *apiClient) Login(ctx context.Context, username, password string) error {
	resp, err := a.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.User{Username: username, Password: password}).
		Post("/api/auth/login")
	if err != nil {
		return fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}

	return a.storeToken(resp)
}

// Logout implements [APIClient]. The stored token is cleared even when the
// request fails: the console has no use for a token it considers dead.
func (a *apiClient) Logout(ctx context.Context) error {
	resp, err := a.authedRequest(ctx).Post("/api/auth/logout")
	a.token = ""
	if err != nil {
		return fmt.Errorf("logout request: %w", err)
	}
	return mapHTTPError(resp)
}

// Session implements [APIClient].
func (a *apiClient) Session(ctx context.Context) (models.SessionInfo, error) {
	resp, err := a.authedRequest(ctx).Get("/api/auth/session")
	if err != nil {
		return models.SessionInfo{}, fmt.Errorf("session request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.SessionInfo{}, err
	}

	var info models.SessionInfo
	if err = json.Unmarshal(resp.Body(), &info); err != nil {
		return models.SessionInfo{}, fmt.Errorf("decode session response: %w", err)
	}
	return info, nil
}

// Ask implements [APIClient].
func (a *apiClient) Ask(ctx context.Context, domain models.Domain, req models.AskRequest) (models.ChatTurn, error) {
	resp, err := a.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post(fmt.Sprintf("/api/assistant/%s/ask", domain))
	if err != nil {
		return models.ChatTurn{}, fmt.Errorf("ask request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.ChatTurn{}, err
	}

	var askResp models.AskResponse
	if err = json.Unmarshal(resp.Body(), &askResp); err != nil {
		return models.ChatTurn{}, fmt.Errorf("decode ask response: %w", err)
	}
	return askResp.Reply, nil
}

// History implements [APIClient].
func (a *apiClient) History(ctx context.Context, domain models.Domain) ([]models.ChatTurn, error) {
	resp, err := a.authedRequest(ctx).Get(fmt.Sprintf("/api/assistant/%s/history", domain))
	if err != nil {
		return nil, fmt.Errorf("history request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var turns []models.ChatTurn
	if err = json.Unmarshal(resp.Body(), &turns); err != nil {
		return nil, fmt.Errorf("decode history response: %w", err)
	}
	return turns, nil
}

// ClearHistory implements [APIClient].
func (a *apiClient) ClearHistory(ctx context.Context, domain models.Domain) error {
	resp, err := a.authedRequest(ctx).Delete(fmt.Sprintf("/api/assistant/%s/history", domain))
	if err != nil {
		return fmt.Errorf("clear history request: %w", err)
	}
	return mapHTTPError(resp)
}

// ListUsers implements [APIClient].
func (a *apiClient) ListUsers(ctx context.Context) ([]models.Summary, error) {
	resp, err := a.authedRequest(ctx).Get("/api/admin/users/")
	if err != nil {
		return nil, fmt.Errorf("list users request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var users []models.Summary
	if err = json.Unmarshal(resp.Body(), &users); err != nil {
		return nil, fmt.Errorf("decode users response: %w", err)
	}
	return users, nil
}

// CreateUser implements [APIClient].
func (a *apiClient) CreateUser(ctx context.Context, user models.User) (models.Summary, error) {
	resp, err := a.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(user).
		Post("/api/admin/users/")
	if err != nil {
		return models.Summary{}, fmt.Errorf("create user request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Summary{}, err
	}

	var created models.Summary
	if err = json.Unmarshal(resp.Body(), &created); err != nil {
		return models.Summary{}, fmt.Errorf("decode create user response: %w", err)
	}
	return created, nil
}

// DeleteUser implements [APIClient].
func (a *apiClient) DeleteUser(ctx context.Context, username string) error {
	resp, err := a.authedRequest(ctx).Delete("/api/admin/users/" + url.PathEscape(username))
	if err != nil {
		return fmt.Errorf("delete user request: %w", err)
	}
	return mapHTTPError(resp)
}

// ResetPassword implements [APIClient].
func (a *apiClient) ResetPassword(ctx context.Context, username, newPassword string) error {
	resp, err := a.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.ResetPasswordRequest{Password: newPassword}).
		Put("/api/admin/users/" + url.PathEscape(username) + "/password")
	if err != nil {
		return fmt.Errorf("reset password request: %w", err)
	}
	return mapHTTPError(resp)
}

// ServerVersion implements [APIClient].
func (a *apiClient) ServerVersion(ctx context.Context) (string, error) {
	resp, err := a.client.R().SetContext(ctx).Get("/api/version/")
	if err != nil {
		return "", fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}
	return strings.TrimSpace(string(resp.Body())), nil
}

func (a *apiClient) authedRequest(ctx context.Context) *resty.Request {
	req := a.client.R().SetContext(ctx)
	if a.token != "" {
		req.SetHeader("Authorization", "Bearer "+a.token)
	}
	return req
}

func (a *apiClient) storeToken(resp *resty.Response) error {
	token, err := parseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return err
	}
	a.token = token
	return nil
}

func parseBearerToken(value string) (string, error) {
	parts := strings.Split(strings.TrimSpace(value), " ")
	if len(parts) != 2 || parts[1] == "" {
		return "", fmt.Errorf("invalid authorization header")
	}
	return parts[1], nil
}

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))
	if body == "" {
		body = http.StatusText(resp.StatusCode())
	}

	switch resp.StatusCode() {
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrBadRequest, body)
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthorized, body)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, body)
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", ErrConflict, body)
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: %s", ErrTooManyRequests, body)
	case http.StatusBadGateway:
		return fmt.Errorf("%w: %s", ErrBadGateway, body)
	default:
		return fmt.Errorf("http %d: %s", resp.StatusCode(), body)
	}
}
