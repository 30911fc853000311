package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/opsboard/internal/adapter"
	"github.com/MKhiriev/opsboard/internal/config"
	"github.com/MKhiriev/opsboard/internal/crypto"
	"github.com/MKhiriev/opsboard/internal/logger"
	"github.com/MKhiriev/opsboard/internal/store"
	"github.com/MKhiriev/opsboard/internal/validators"
	"github.com/MKhiriev/opsboard/models"
)

// Services bundles every application service behind one constructor.
type Services struct {
	AuthService      AuthService
	SessionService   SessionService
	AdminService     AdminService
	AssistantService AssistantService
	AppInfoService   AppInfoService
}

// NewServices wires the full service layer: the credential and session
// services, the admin controller, the per-domain assistant with its provider
// pair, and build info.
func NewServices(storages *store.Storages, cfg config.StructuredConfig, log *logger.Logger) (*Services, error) {
	hasher := crypto.NewBcryptHasher(cfg.Auth.BcryptCost)
	validator := validators.NewCredentialsValidator()

	sessions := NewSessionService(cfg.Assistant, log)

	primary, err := adapter.NewChatProvider("primary", cfg.Assistant.Primary, cfg.Assistant.RequestTimeout, log)
	if err != nil {
		return nil, fmt.Errorf("constructing primary provider: %w", err)
	}

	var fallback adapter.CompletionProvider
	if cfg.Assistant.Fallback.BaseURL != "" {
		fallback, err = adapter.NewChatProvider("fallback", cfg.Assistant.Fallback, cfg.Assistant.RequestTimeout, log)
		if err != nil {
			return nil, fmt.Errorf("constructing fallback provider: %w", err)
		}
	}

	pages := []DomainPage{
		NewCyberPage(storages.IncidentRepository, log),
		NewITPage(storages.TicketRepository, log),
		NewDataPage(storages.DatasetRepository, log),
	}

	appInfo, err := NewAppInfoService(cfg.Auth, log)
	if err != nil {
		return nil, fmt.Errorf("constructing app info service: %w", err)
	}

	return &Services{
		AuthService:      NewAuthService(storages.UserRepository, hasher, validator, cfg.Auth, log),
		SessionService:   sessions,
		AdminService:     NewAdminService(storages.UserRepository, sessions, hasher, validator, log),
		AssistantService: NewAssistantService(sessions, pages, primary, fallback, validator, cfg.Assistant, log),
		AppInfoService:   appInfo,
	}, nil
}

// EnsureBootstrapAdmin creates the configured bootstrap admin account when
// it does not exist yet. Without it a fresh deployment would have no account
// able to reach the admin controller. A username collision with an existing
// account is fine: the deployment is already bootstrapped.
func (s *Services) EnsureBootstrapAdmin(ctx context.Context, cfg config.Auth, log *logger.Logger) error {
	if cfg.BootstrapAdminUsername == "" || cfg.BootstrapAdminPassword == "" {
		return nil
	}

	_, err := s.AuthService.RegisterUser(ctx, models.User{
		Username: cfg.BootstrapAdminUsername,
		Password: cfg.BootstrapAdminPassword,
		Role:     models.RoleAdmin,
	})
	if err != nil {
		if errors.Is(err, store.ErrUsernameAlreadyExists) {
			log.Debug().Str("username", cfg.BootstrapAdminUsername).Msg("bootstrap admin already exists")
			return nil
		}
		return fmt.Errorf("creating bootstrap admin: %w", err)
	}

	log.Info().Str("username", cfg.BootstrapAdminUsername).Msg("bootstrap admin created")
	return nil
}
