package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/tunestream/internal/formatter"
	"github.com/desertthunder/tunestream/internal/repositories"
	"github.com/desertthunder/tunestream/internal/shared"
	"github.com/urfave/cli/v3"
)

// History prints recent plays, liked tracks, or clears the history.
func (r *Runner) History(ctx context.Context, cmd *cli.Command) error {
	limit := cmd.Int("limit")
	if limit < 0 {
		return fmt.Errorf("%w: --limit must not be negative", shared.ErrInvalidFlag)
	}

	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	plays := repositories.NewPlayRepository(db)

	if cmd.Bool("clear") {
		removed, err := plays.Clear()
		if err != nil {
			return err
		}
		r.logger.Info("history cleared", "plays", removed)
		return r.writePlain("Removed %d plays\n", removed)
	}

	if cmd.Bool("likes") {
		likes, err := repositories.NewLikeRepository(db).List()
		if err != nil {
			return err
		}
		if cmd.String("format") == formatter.FormatJSON {
			return r.writeJSON(likes, true)
		}

		r.writePlainHeader(fmt.Sprintf("Liked tracks (%d)", len(likes)))
		for _, l := range likes {
			r.writePlain("%s - %s\n", l.Track.Artist, l.Track.Title)
		}
		return nil
	}

	recent, err := plays.Recent(limit)
	if err != nil {
		return err
	}

	data, err := formatter.RenderHistory(cmd.String("format"), recent)
	if err != nil {
		return err
	}
	return r.emit(cmd, data)
}
