// Package probe checks the gRPC health endpoint of a running product service.
package probe

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/abgdnv/gocatalog/pkg/client/grpc/interceptors"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// Dial creates a client connection to settings.Target with the resilience interceptors.
func Dial(settings Settings, opts ...grpc.DialOption) (*grpc.ClientConn, error) {
	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithStatsHandler(otelgrpc.NewClientHandler()),
		grpc.WithChainUnaryInterceptor(interceptors.Chain("product-health-cb", settings.Resilience)...),
	}, opts...)
	conn, err := grpc.NewClient(settings.Target, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create gRPC client connection: %w", err)
	}
	return conn, nil
}

type Prober struct {
	client  healthpb.HealthClient
	service string
	logger  *slog.Logger
}

func NewProber(conn grpc.ClientConnInterface, service string, logger *slog.Logger) *Prober {
	return &Prober{
		client:  healthpb.NewHealthClient(conn),
		service: service,
		logger:  logger,
	}
}

// Check asks for the serving status once. Any status other than SERVING is an error.
func (p *Prober) Check(ctx context.Context) error {
	resp, err := p.client.Check(ctx, &healthpb.HealthCheckRequest{Service: p.service})
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		return fmt.Errorf("service %q is %s", p.service, resp.GetStatus())
	}
	return nil
}

// Watch checks every interval until ctx is done and logs each change of the outcome.
// It returns the outcome of the last check.
func (p *Prober) Watch(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var last error
	healthy := false
	first := true
	for {
		last = p.Check(ctx)
		if ctx.Err() != nil {
			return last
		}
		if first || healthy != (last == nil) {
			healthy = last == nil
			first = false
			if healthy {
				p.logger.InfoContext(ctx, "Service is serving", "service", p.service)
			} else {
				p.logger.WarnContext(ctx, "Service is not serving", "service", p.service, "error", last)
			}
		}
		select {
		case <-ctx.Done():
			return last
		case <-ticker.C:
		}
	}
}
