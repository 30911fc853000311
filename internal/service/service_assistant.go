package service

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/MKhiriev/opsboard/internal/adapter"
	"github.com/MKhiriev/opsboard/internal/config"
	"github.com/MKhiriev/opsboard/internal/logger"
	"github.com/MKhiriev/opsboard/internal/utils"
	"github.com/MKhiriev/opsboard/internal/validators"
	"github.com/MKhiriev/opsboard/models"
)

// assistantService implements AssistantService: it assembles a bounded
// completion context from the domain role prompt, an optional data snapshot
// and the recent chat history, sends it to the primary provider, and falls
// back once to the secondary provider on failure. No further retries; this
// is a best-effort assistant.
type assistantService struct {
	sessions  SessionService
	pages     map[models.Domain]DomainPage
	primary   adapter.CompletionProvider
	fallback  adapter.CompletionProvider // nil when no fallback is configured
	validator validators.Validator
	uuid      *utils.UUIDGenerator

	requestTimeout   time.Duration
	historyLimit     int
	snapshotMaxBytes int

	logger *logger.Logger
}

// NewAssistantService constructs an AssistantService over the given domain
// pages and provider pair. fallback may be nil.
func NewAssistantService(sessions SessionService, pages []DomainPage, primary, fallback adapter.CompletionProvider, validator validators.Validator, cfg config.Assistant, logger *logger.Logger) AssistantService {
	byDomain := make(map[models.Domain]DomainPage, len(pages))
	for _, page := range pages {
		byDomain[page.Domain()] = page
	}

	return &assistantService{
		sessions:         sessions,
		pages:            byDomain,
		primary:          primary,
		fallback:         fallback,
		validator:        validator,
		uuid:             utils.NewUUIDGenerator(),
		requestTimeout:   cfg.RequestTimeout,
		historyLimit:     cfg.HistoryLimit,
		snapshotMaxBytes: cfg.SnapshotMaxBytes,
		logger:           logger,
	}
}

// Ask performs one assistant interaction for the given domain.
//
// The user's turn is appended to the domain history before the provider is
// called, so a failed completion never silently drops what the user said.
// On success exactly one assistant turn is appended and returned. When the
// primary and the fallback both fail, no assistant turn is appended and
// ErrProviderUnavailable is reported.
func (a *assistantService) Ask(ctx context.Context, domain models.Domain, req models.AskRequest) (models.ChatTurn, error) {
	session, err := a.sessions.RequireRole(ctx, models.RoleUser)
	if err != nil {
		return models.ChatTurn{}, err
	}

	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, req); err != nil {
		return models.ChatTurn{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	page, ok := a.pages[domain]
	if !ok {
		return models.ChatTurn{}, ErrUnknownDomain
	}

	if !session.ConsumeAsk() {
		log.Warn().Str("session_id", session.ID).Msg("assistant usage limit reached")
		return models.ChatTurn{}, ErrUsageLimitReached
	}

	messages, err := a.buildContext(ctx, page, session, req)
	if err != nil {
		return models.ChatTurn{}, err
	}

	userTurn := models.ChatTurn{
		ID:        a.uuid.Generate(),
		Speaker:   models.SpeakerUser,
		Text:      req.Question,
		CreatedAt: time.Now(),
	}
	session.AppendTurn(domain, userTurn)

	reply, err := a.complete(ctx, messages)
	if err != nil {
		log.Err(err).Str("domain", string(domain)).Msg("all completion providers failed")
		return models.ChatTurn{}, fmt.Errorf("%w: %w", ErrProviderUnavailable, err)
	}

	assistantTurn := models.ChatTurn{
		ID:        a.uuid.Generate(),
		Speaker:   models.SpeakerAssistant,
		Text:      reply,
		CreatedAt: time.Now(),
	}
	session.AppendTurn(domain, assistantTurn)

	return assistantTurn, nil
}

// buildContext assembles the ordered message list: system role prompt,
// optional truncated domain snapshot, prior turns up to the retention limit,
// and the new user turn.
func (a *assistantService) buildContext(ctx context.Context, page DomainPage, session *Session, req models.AskRequest) ([]adapter.Message, error) {
	messages := []adapter.Message{
		{Role: "system", Content: page.RolePrompt()},
	}

	if req.WithSnapshot {
		snapshot, err := page.Snapshot(ctx)
		if err != nil {
			return nil, fmt.Errorf("domain snapshot failed: %w", err)
		}
		messages = append(messages, adapter.Message{
			Role:    "system",
			Content: "Context Data:\n" + truncate(snapshot, a.snapshotMaxBytes),
		})
	}

	for _, turn := range session.LastTurns(page.Domain(), a.historyLimit) {
		messages = append(messages, adapter.Message{
			Role:    string(turn.Speaker),
			Content: turn.Text,
		})
	}

	messages = append(messages, adapter.Message{Role: "user", Content: req.Question})
	return messages, nil
}

// complete tries the primary provider and, on any failure, the fallback.
// Each attempt is bounded by the configured request timeout.
func (a *assistantService) complete(ctx context.Context, messages []adapter.Message) (string, error) {
	log := logger.FromContext(ctx)

	reply, primaryErr := a.callProvider(ctx, a.primary, messages)
	if primaryErr == nil {
		return reply, nil
	}
	log.Warn().Err(primaryErr).Str("provider", a.primary.Name()).Msg("completion provider failed")

	if a.fallback == nil {
		return "", primaryErr
	}

	reply, fallbackErr := a.callProvider(ctx, a.fallback, messages)
	if fallbackErr == nil {
		return reply, nil
	}
	log.Warn().Err(fallbackErr).Str("provider", a.fallback.Name()).Msg("completion provider failed")

	return "", fmt.Errorf("primary: %w; fallback: %w", primaryErr, fallbackErr)
}

func (a *assistantService) callProvider(ctx context.Context, provider adapter.CompletionProvider, messages []adapter.Message) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, a.requestTimeout)
	defer cancel()

	return provider.Complete(callCtx, messages)
}

// History returns the chat turn sequence of the calling session for the
// given domain.
func (a *assistantService) History(ctx context.Context, domain models.Domain) ([]models.ChatTurn, error) {
	session, err := a.sessions.RequireRole(ctx, models.RoleUser)
	if err != nil {
		return nil, err
	}

	if _, ok := a.pages[domain]; !ok {
		return nil, ErrUnknownDomain
	}

	return session.History(domain), nil
}

// ClearHistory drops the chat turn sequence of the calling session for the
// given domain.
func (a *assistantService) ClearHistory(ctx context.Context, domain models.Domain) error {
	session, err := a.sessions.RequireRole(ctx, models.RoleUser)
	if err != nil {
		return err
	}

	if _, ok := a.pages[domain]; !ok {
		return ErrUnknownDomain
	}

	session.ClearHistory(domain)
	return nil
}

// truncate bounds s to max bytes, never splitting the text mid-rune. Only
// the cut point is inspected, so invalid bytes elsewhere in s pass through
// unchanged.
func truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	if utf8.RuneStart(s[max]) {
		return s[:max]
	}
	// The cut lands inside a multi-byte rune: back up to its start byte and
	// drop the partial rune. A start byte is at most UTFMax-1 bytes back;
	// if none is found the trailing bytes were never a rune, cut as-is.
	for back := 1; back < utf8.UTFMax; back++ {
		if back > max {
			break
		}
		if utf8.RuneStart(s[max-back]) {
			return s[:max-back]
		}
	}
	return s[:max]
}
