package server

import (
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health/grpc_health_v1"

	"github.com/MKhiriev/opsboard/internal/config"
	myGRPC "github.com/MKhiriev/opsboard/internal/handler/grpc"
	"github.com/MKhiriev/opsboard/internal/logger"
)

type grpcServer struct {
	server          *grpc.Server
	gRPCNetListener net.Listener

	logger *logger.Logger
}

func newGRPCServer(handler *myGRPC.Handler, cfg config.Server, logger *logger.Logger) (*grpcServer, error) {
	listener, err := net.Listen("tcp", cfg.GRPCAddress)
	if err != nil {
		return nil, err
	}

	server := grpc.NewServer()
	grpc_health_v1.RegisterHealthServer(server, handler)

	return &grpcServer{
		server:          server,
		gRPCNetListener: listener,
		logger:          logger,
	}, nil
}

func (g *grpcServer) RunServer() {
	if err := g.server.Serve(g.gRPCNetListener); err != nil {
		g.logger.Error().Msgf("gRPC server Serve: %v", err)
	}
}

func (g *grpcServer) Shutdown() {
	g.logger.Info().Msg("GRPC server Shutdown")
	g.server.GracefulStop()
}
