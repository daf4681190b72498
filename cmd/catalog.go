package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/desertthunder/tunestream/internal/formatter"
	"github.com/desertthunder/tunestream/internal/models"
	"github.com/desertthunder/tunestream/internal/shared"
	"github.com/urfave/cli/v3"
)

// Search runs a catalog search for the command arguments joined by spaces.
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	query := strings.TrimSpace(strings.Join(cmd.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("%w: search query", shared.ErrMissingArgument)
	}

	catalog, err := r.catalogFor(cmd)
	if err != nil {
		return err
	}

	r.logger.Debug("searching", "query", query, "catalog", catalog.Name())
	tracks := catalog.Search(ctx, query)

	return r.renderTracks(cmd, fmt.Sprintf("Search: %s", query), tracks)
}

// Trending lists the trending tracks in catalog order.
func (r *Runner) Trending(ctx context.Context, cmd *cli.Command) error {
	catalog, err := r.catalogFor(cmd)
	if err != nil {
		return err
	}

	return r.renderTracks(cmd, "Trending", catalog.Trending(ctx))
}

// Recommend lists recommended tracks; the order changes between runs.
func (r *Runner) Recommend(ctx context.Context, cmd *cli.Command) error {
	catalog, err := r.catalogFor(cmd)
	if err != nil {
		return err
	}

	return r.renderTracks(cmd, "Recommended", catalog.Recommendations(ctx))
}

// renderTracks applies --limit, renders with --format and writes to --output or the runner output.
func (r *Runner) renderTracks(cmd *cli.Command, title string, tracks []models.Track) error {
	if limit := cmd.Int("limit"); limit < 0 {
		return fmt.Errorf("%w: --limit must not be negative", shared.ErrInvalidFlag)
	} else if limit > 0 {
		tracks = models.Truncate(tracks, limit)
	}

	data, err := formatter.Render(cmd.String("format"), title, tracks)
	if err != nil {
		return err
	}

	return r.emit(cmd, data)
}

func (r *Runner) emit(cmd *cli.Command, data []byte) error {
	if path := cmd.String("output"); path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		if err := formatter.WriteFile(path, data); err != nil {
			return err
		}
		r.logger.Info("output written", "path", path, "bytes", len(data))
		return nil
	}

	if _, err := r.output.Write(data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
