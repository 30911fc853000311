package handler

import (
	"github.com/MKhiriev/opsboard/internal/config"
	"github.com/MKhiriev/opsboard/internal/handler/grpc"
	"github.com/MKhiriev/opsboard/internal/handler/http"
	"github.com/MKhiriev/opsboard/internal/logger"
	"github.com/MKhiriev/opsboard/internal/service"
)

// Handlers holds the transport-facing handler of each enabled listener:
// the REST API and the gRPC health endpoint.
type Handlers struct {
	HTTP *http.Handler
	GRPC *grpc.Handler
}

// NewHandlers builds a handler for every transport that has an address
// configured. At least one must be enabled.
func NewHandlers(services *service.Services, cfg config.Server, logger *logger.Logger) (*Handlers, error) {
	handlers := &Handlers{}

	if cfg.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(services, logger)
	}
	if cfg.GRPCAddress != "" {
		handlers.GRPC = grpc.NewHandler(services, logger)
	}

	if handlers.HTTP == nil && handlers.GRPC == nil {
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}
