package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/tunestream/internal/models"
	"github.com/desertthunder/tunestream/internal/shared"
)

// DefaultRecentLimit is used by [PlayRepository.Recent] when limit is not positive.
const DefaultRecentLimit = 20

// PlayRepository stores the listening history in the plays table.
type PlayRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewPlayRepository creates a new PlayRepository with the given database connection
func NewPlayRepository(db *sql.DB) *PlayRepository {
	return &PlayRepository{db: db, now: time.Now}
}

// Record inserts a play of track with a generated ID and returns it.
func (r *PlayRepository) Record(track models.Track, source string) (*models.Play, error) {
	if err := track.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	play := &models.Play{
		ID:       shared.GenerateID(),
		Track:    track,
		Source:   source,
		PlayedAt: r.now().UTC(),
	}

	query := `
		INSERT INTO plays (id, track_id, title, artist, thumbnail, duration, source, played_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		play.ID,
		track.ID,
		track.Title,
		track.Artist,
		track.Thumbnail,
		track.Duration,
		source,
		play.PlayedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert play: %w", err)
	}

	return play, nil
}

// Recent returns up to limit plays, newest first.
func (r *PlayRepository) Recent(limit int) ([]models.Play, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}

	query := `
		SELECT id, track_id, title, artist, thumbnail, duration, source, played_at
		FROM plays
		ORDER BY played_at DESC, rowid DESC
		LIMIT ?
	`

	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query plays: %w", err)
	}
	defer rows.Close()

	plays := []models.Play{}
	for rows.Next() {
		var p models.Play
		err := rows.Scan(&p.ID, &p.Track.ID, &p.Track.Title, &p.Track.Artist, &p.Track.Thumbnail, &p.Track.Duration, &p.Source, &p.PlayedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan play: %w", err)
		}
		plays = append(plays, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return plays, nil
}

// Count returns the number of recorded plays.
func (r *PlayRepository) Count() (int, error) {
	var n int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM plays").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count plays: %w", err)
	}
	return n, nil
}

// Clear deletes the whole history and returns how many plays were removed.
func (r *PlayRepository) Clear() (int64, error) {
	result, err := r.db.Exec("DELETE FROM plays")
	if err != nil {
		return 0, fmt.Errorf("failed to clear plays: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}
	return rows, nil
}
