package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/desertthunder/tunestream/internal/server"
	"github.com/desertthunder/tunestream/internal/shared"
	"github.com/urfave/cli/v3"
)

// Serve runs the HTTP control API until interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	cfg := r.config.Server
	if host := cmd.String("host"); host != "" {
		cfg.Host = host
	}
	if port := cmd.Int("port"); port != 0 {
		cfg.Port = port
	}
	if cfg.Port < 0 || cfg.Port > 65535 {
		return fmt.Errorf("%w: port %d out of range", shared.ErrInvalidFlag, cfg.Port)
	}

	s, cleanup, err := r.newSession(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	s.Load(ctx)

	logger := shared.WithLogger(r.logger, "component", "server")
	return server.Serve(ctx, cfg.Addr(), server.NewAPIRouter(s, logger), logger)
}
