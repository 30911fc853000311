package service

import (
	"context"

	"github.com/MKhiriev/opsboard/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/servicemock/service_mock.go -package=servicemock

type AuthService interface {
	RegisterUser(ctx context.Context, user models.User) (models.User, error)
	Login(ctx context.Context, username, password string) (models.User, error)
	CreateToken(ctx context.Context, user models.User, sessionID string) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// SessionService is the server-side session registry. Sessions are keyed by
// the "jti" claim of the issued token, so dropping a session invalidates the
// token before its expiry.
type SessionService interface {
	Create(ctx context.Context, user models.User) (*Session, error)
	Get(ctx context.Context, sessionID string) (*Session, error)
	Drop(ctx context.Context, sessionID string) error

	// RequireRole extracts the session from the context and checks its role
	// against the minimum. It fails closed: a missing session or an unknown
	// role denies access with ErrUnauthorized.
	RequireRole(ctx context.Context, min models.Role) (*Session, error)
}

// AdminService is the credential administration surface. Every operation
// first requires an admin session from the context.
type AdminService interface {
	ListUsers(ctx context.Context) ([]models.Summary, error)
	CreateUser(ctx context.Context, user models.User) (models.Summary, error)
	DeleteUser(ctx context.Context, username string) error
	ResetPassword(ctx context.Context, username, newPassword string) error
}

// AssistantService builds bounded completion contexts and maintains the
// per-session, per-domain chat turn sequences.
type AssistantService interface {
	Ask(ctx context.Context, domain models.Domain, req models.AskRequest) (models.ChatTurn, error)
	History(ctx context.Context, domain models.Domain) ([]models.ChatTurn, error)
	ClearHistory(ctx context.Context, domain models.Domain) error
}

// DomainPage is one dashboard domain: it names itself, carries the system
// role prompt for its assistant persona, and produces a bounded text
// snapshot of its current data.
type DomainPage interface {
	Domain() models.Domain
	RolePrompt() string
	Snapshot(ctx context.Context) (string, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}
