// Package grpc implements the gRPC transport layer of the application.
//
// The only service exposed over gRPC is the standard health checking
// protocol (grpc.health.v1), used by orchestrators and load balancers to
// probe the server.
package grpc

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"

	"github.com/MKhiriev/opsboard/internal/logger"
	"github.com/MKhiriev/opsboard/internal/service"
)

// Handler is the root gRPC transport handler. It implements the standard
// grpc.health.v1 health checking service.
//
// A handler instance is created once at startup and shared by the gRPC server.
type Handler struct {
	grpc_health_v1.UnimplementedHealthServer

	// services provides access to all application business operations.
	services *service.Services

	// logger is used for request-scoped and diagnostic log output.
	logger *logger.Logger
}

// NewHandler constructs a [Handler] with the provided service container and
// logger, and returns the initialized instance.
func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Debug().Msg("gRPC handler created")
	return &Handler{
		services: services,
		logger:   logger,
	}
}

// Check implements grpc_health_v1.HealthServer. The server is serving as
// soon as the service layer is wired; there is no per-service granularity,
// so any non-empty service name is reported as unknown.
func (h *Handler) Check(ctx context.Context, req *grpc_health_v1.HealthCheckRequest) (*grpc_health_v1.HealthCheckResponse, error) {
	if req.GetService() != "" {
		return nil, status.Errorf(codes.NotFound, "unknown service %q", req.GetService())
	}

	return &grpc_health_v1.HealthCheckResponse{
		Status: grpc_health_v1.HealthCheckResponse_SERVING,
	}, nil
}

// Watch implements grpc_health_v1.HealthServer as a single-shot stream: the
// current status is sent once and the stream is closed. The serving status
// never changes while the process is alive, so a long-lived watch would
// never produce another update.
func (h *Handler) Watch(req *grpc_health_v1.HealthCheckRequest, stream grpc_health_v1.Health_WatchServer) error {
	if req.GetService() != "" {
		return status.Errorf(codes.NotFound, "unknown service %q", req.GetService())
	}

	return stream.Send(&grpc_health_v1.HealthCheckResponse{
		Status: grpc_health_v1.HealthCheckResponse_SERVING,
	})
}
