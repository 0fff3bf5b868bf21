// Package main probes the gRPC health endpoint of the product service.
// It reads the probe section of the service configuration and exits with a non-zero code
// when the service is not serving.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/abgdnv/gocatalog/internal/probe"
	"github.com/abgdnv/gocatalog/pkg/bootstrap"
	"github.com/abgdnv/gocatalog/pkg/config/configloader"
)

const serviceName = "product"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Printf("probe failed: %v", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := configloader.Load[*probe.Config](serviceName)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger := bootstrap.NewLogger(cfg.Log.Level)

	conn, err := probe.Dial(cfg.Probe)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	prober := probe.NewProber(conn, cfg.Probe.Service, logger)
	if cfg.Probe.Interval == 0 {
		return prober.Check(ctx)
	}
	if err := prober.Watch(ctx, cfg.Probe.Interval); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
