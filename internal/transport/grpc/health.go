// Package grpc exposes the product service over gRPC. It serves the standard health protocol
// backed by the product store.
package grpc

import (
	"context"
	"log/slog"

	"google.golang.org/grpc/codes"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
)

// ServiceName is the health service name answered besides the empty (server wide) name.
const ServiceName = "product"

// Pinger is implemented by the product service.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthServer struct {
	// Embed the unimplemented server for forward compatibility
	healthpb.UnimplementedHealthServer
	pinger Pinger
}

func NewHealthServer(pinger Pinger) *HealthServer {
	return &HealthServer{pinger: pinger}
}

// Check reports SERVING while the product store answers a ping.
func (s *HealthServer) Check(ctx context.Context, req *healthpb.HealthCheckRequest) (*healthpb.HealthCheckResponse, error) {
	if req.GetService() != "" && req.GetService() != ServiceName {
		return nil, status.Errorf(codes.NotFound, "unknown service %q", req.GetService())
	}
	if err := s.pinger.Ping(ctx); err != nil {
		slog.WarnContext(ctx, "health check failed", slog.Any("error", err))
		return &healthpb.HealthCheckResponse{Status: healthpb.HealthCheckResponse_NOT_SERVING}, nil
	}
	return &healthpb.HealthCheckResponse{Status: healthpb.HealthCheckResponse_SERVING}, nil
}
