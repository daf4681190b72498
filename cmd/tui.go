package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/tunestream/internal/shared"
	"github.com/desertthunder/tunestream/internal/ui"
	"github.com/urfave/cli/v3"
)

const defaultTUILogFile = "./tmp/tunestream-tui.log"

// Play launches the interactive terminal player.
func (r *Runner) Play(ctx context.Context, cmd *cli.Command) error {
	path := r.config.Log.File
	if path == "" {
		path = defaultTUILogFile
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger(path)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	fileLogger.SetLevel(r.logger.GetLevel())
	r.SetLogger(fileLogger)

	s, cleanup, err := r.newSession(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	return ui.Run(ctx, s, r.logger)
}
