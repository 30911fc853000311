package service

import (
	"context"

	"github.com/MKhiriev/opsboard/internal/config"
	"github.com/MKhiriev/opsboard/internal/logger"
)

// appInfoService reports the build version stamped into the server binary.
type appInfoService struct {
	version string
	logger  *logger.Logger
}

// NewAppInfoService fails fast when no version was provided, so a misbuilt
// binary is caught at startup rather than serving an empty string.
func NewAppInfoService(cfg config.Auth, logger *logger.Logger) (AppInfoService, error) {
	if cfg.Version == "" {
		return nil, ErrVersionIsNotSpecified
	}

	return &appInfoService{version: cfg.Version, logger: logger}, nil
}

func (s *appInfoService) GetAppVersion(_ context.Context) string {
	return s.version
}
