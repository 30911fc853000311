package service

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/opsboard/internal/config"
	"github.com/MKhiriev/opsboard/internal/logger"
	"github.com/MKhiriev/opsboard/internal/utils"
	"github.com/MKhiriev/opsboard/models"
)

// Session is one authenticated interaction: the identity and role of the
// user plus the per-domain chat turn sequences of the assistant. It is an
// explicit object resolved by the auth middleware and passed through the
// context into every protected operation; there is no process-wide current
// user.
//
// Sessions are safe for concurrent use. Turn sequences are append-only and
// History returns copies, so callers never observe a slice being grown.
type Session struct {
	ID        string
	UserID    int64
	Username  string
	Role      models.Role
	CreatedAt time.Time

	mu       sync.Mutex
	turns    map[models.Domain][]models.ChatTurn
	askCount int
	askLimit int
}

// AppendTurn appends one chat turn to the sequence of the given domain.
// Histories are kept per domain and never shared across them.
func (s *Session) AppendTurn(domain models.Domain, turn models.ChatTurn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns[domain] = append(s.turns[domain], turn)
}

// History returns a copy of the turn sequence for the given domain in
// append order.
func (s *Session) History(domain models.Domain) []models.ChatTurn {
	s.mu.Lock()
	defer s.mu.Unlock()

	turns := s.turns[domain]
	out := make([]models.ChatTurn, len(turns))
	copy(out, turns)
	return out
}

// LastTurns returns a copy of the most recent n turns for the given domain.
func (s *Session) LastTurns(domain models.Domain, n int) []models.ChatTurn {
	s.mu.Lock()
	defer s.mu.Unlock()

	turns := s.turns[domain]
	if len(turns) > n {
		turns = turns[len(turns)-n:]
	}
	out := make([]models.ChatTurn, len(turns))
	copy(out, turns)
	return out
}

// ClearHistory drops the turn sequence of the given domain.
func (s *Session) ClearHistory(domain models.Domain) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.turns, domain)
}

// ConsumeAsk counts one assistant call against the session budget. The unit
// is consumed before the provider is called, so an ask that later fails still
// counts; only over-budget attempts are rejected without being counted.
func (s *Session) ConsumeAsk() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.askLimit > 0 && s.askCount >= s.askLimit {
		return false
	}
	s.askCount++
	return true
}

// sessionService is the in-memory session registry keyed by session ID
// (the token's "jti" claim). Logout drops the registry entry, which kills
// the token even if it has not expired yet.
type sessionService struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	uuid     *utils.UUIDGenerator
	askLimit int

	logger *logger.Logger
}

// NewSessionService constructs the session registry. The ask limit for new
// sessions comes from the assistant configuration.
func NewSessionService(cfg config.Assistant, logger *logger.Logger) SessionService {
	return &sessionService{
		sessions: make(map[string]*Session),
		uuid:     utils.NewUUIDGenerator(),
		askLimit: cfg.SessionAskLimit,
		logger:   logger,
	}
}

// Create registers a fresh session for the authenticated user and returns
// it. The generated ID becomes the "jti" claim of the issued token.
func (s *sessionService) Create(ctx context.Context, user models.User) (*Session, error) {
	session := &Session{
		ID:        s.uuid.Generate(),
		UserID:    user.UserID,
		Username:  user.Username,
		Role:      user.Role,
		CreatedAt: time.Now(),
		turns:     make(map[models.Domain][]models.ChatTurn),
		askLimit:  s.askLimit,
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	logger.FromContext(ctx).Debug().
		Str("session_id", session.ID).
		Str("username", session.Username).
		Msg("session created")

	return session, nil
}

// Get returns the live session with the given ID or ErrSessionNotFound.
func (s *sessionService) Get(ctx context.Context, sessionID string) (*Session, error) {
	s.mu.RLock()
	session, ok := s.sessions[sessionID]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// Drop removes the session and with it all chat histories. Dropping an
// already absent session is not an error: logout is idempotent.
func (s *sessionService) Drop(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()

	logger.FromContext(ctx).Debug().Str("session_id", sessionID).Msg("session dropped")
	return nil
}

// RequireRole resolves the session from the context and checks it against
// the minimum role. Both a missing session and an unmet role deny with
// ErrUnauthorized; the caller cannot distinguish them, which keeps probing
// uninformative.
func (s *sessionService) RequireRole(ctx context.Context, min models.Role) (*Session, error) {
	session, ok := SessionFromContext(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}

	if !session.Role.Meets(min) {
		return nil, ErrUnauthorized
	}

	return session, nil
}

// SessionFromContext extracts the session stored by the auth middleware.
func SessionFromContext(ctx context.Context) (*Session, bool) {
	session, ok := ctx.Value(utils.SessionCtxKey).(*Session)
	return session, ok
}

// ContextWithSession returns a child context carrying the session.
func ContextWithSession(ctx context.Context, session *Session) context.Context {
	return context.WithValue(ctx, utils.SessionCtxKey, session)
}
