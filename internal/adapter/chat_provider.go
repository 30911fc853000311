package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/MKhiriev/opsboard/internal/config"
	"github.com/MKhiriev/opsboard/internal/logger"
	"github.com/MKhiriev/opsboard/internal/utils"
)

// Generation bounds sent with every completion request. Small replies keep
// the assistant cheap and the dashboard readable.
const (
	completionMaxTokens   = 500
	completionTemperature = 0.5
)

type chatProvider struct {
	client *utils.HTTPClient

	name  string
	model string

	logger *logger.Logger
}

// completionRequest is the OpenAI-compatible chat-completions request body.
type completionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

// completionResponse is the subset of the chat-completions response the
// adapter reads.
type completionResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// NewChatProvider constructs a [CompletionProvider] speaking the
// OpenAI-compatible chat-completions protocol against cfg.BaseURL.
//
// Returns an error if the base URL is empty or unparseable, or if no API key
// is configured.
func NewChatProvider(name string, cfg config.Provider, timeout time.Duration, logger *logger.Logger) (CompletionProvider, error) {
	baseURL, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid provider base url: %w", err)
	}
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	client := utils.NewHTTPClient()
	client.
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetAuthToken(cfg.APIKey)

	return &chatProvider{
		client: client,
		name:   name,
		model:  cfg.Model,
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
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

// Name implements [CompletionProvider].
func (p *chatProvider) Name() string {
	return p.name
}

// Complete implements [CompletionProvider]. It POSTs the message list to
// POST /chat/completions and returns the first choice's text, trimmed.
func (p *chatProvider) Complete(ctx context.Context, messages []Message) (string, error) {
	body := completionRequest{
		Model:       p.model,
		Messages:    messages,
		Temperature: completionTemperature,
		MaxTokens:   completionMaxTokens,
	}

	var parsed completionResponse
	resp, err := p.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		SetResult(&parsed).
		SetError(&parsed).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}

	if resp.IsError() {
		message := strings.TrimSpace(string(resp.Body()))
		if parsed.Error != nil && parsed.Error.Message != "" {
			message = parsed.Error.Message
		}
		return "", fmt.Errorf("%w: http %d: %s", ErrBadStatus, resp.StatusCode(), message)
	}

	if len(parsed.Choices) == 0 || strings.TrimSpace(parsed.Choices[0].Message.Content) == "" {
		return "", ErrEmptyCompletion
	}

	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}
