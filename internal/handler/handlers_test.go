package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/opsboard/internal/config"
	"github.com/MKhiriev/opsboard/internal/logger"
	"github.com/MKhiriev/opsboard/internal/service"
)

func TestNewHandlers_HTTPOnly(t *testing.T) {
	handlers, err := NewHandlers(&service.Services{}, config.Server{HTTPAddress: "localhost:8080"}, logger.Nop())

	require.NoError(t, err)
	assert.NotNil(t, handlers.HTTP)
	assert.Nil(t, handlers.GRPC)
}

func TestNewHandlers_HTTPAndGRPC(t *testing.T) {
	cfg := config.Server{HTTPAddress: "localhost:8080", GRPCAddress: "localhost:9090"}
	handlers, err := NewHandlers(&service.Services{}, cfg, logger.Nop())

	require.NoError(t, err)
	assert.NotNil(t, handlers.HTTP)
	assert.NotNil(t, handlers.GRPC)
}

func TestNewHandlers_NoAddresses(t *testing.T) {
	_, err := NewHandlers(&service.Services{}, config.Server{}, logger.Nop())
	assert.Error(t, err)
}
