package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/tunestream/internal/models"
)

// LikeRepository stores liked tracks keyed by track ID.
type LikeRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewLikeRepository creates a new LikeRepository with the given database connection
func NewLikeRepository(db *sql.DB) *LikeRepository {
	return &LikeRepository{db: db, now: time.Now}
}

// SetLiked marks or unmarks track. Liking an already liked track keeps its original timestamp.
func (r *LikeRepository) SetLiked(track models.Track, liked bool) error {
	if err := track.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	if !liked {
		if _, err := r.db.Exec("DELETE FROM likes WHERE track_id = ?", track.ID); err != nil {
			return fmt.Errorf("failed to delete like: %w", err)
		}
		return nil
	}

	query := `
		INSERT INTO likes (track_id, title, artist, liked_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (track_id) DO NOTHING
	`

	if _, err := r.db.Exec(query, track.ID, track.Title, track.Artist, r.now().UTC()); err != nil {
		return fmt.Errorf("failed to insert like: %w", err)
	}
	return nil
}

// IsLiked reports whether the track with id is liked.
func (r *LikeRepository) IsLiked(id string) (bool, error) {
	var one int
	err := r.db.QueryRow("SELECT 1 FROM likes WHERE track_id = ?", id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to query like: %w", err)
	}
	return true, nil
}

// List returns liked tracks, most recent first.
func (r *LikeRepository) List() ([]models.Like, error) {
	rows, err := r.db.Query("SELECT track_id, title, artist, liked_at FROM likes ORDER BY liked_at DESC, rowid DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to query likes: %w", err)
	}
	defer rows.Close()

	likes := []models.Like{}
	for rows.Next() {
		var l models.Like
		if err := rows.Scan(&l.Track.ID, &l.Track.Title, &l.Track.Artist, &l.LikedAt); err != nil {
			return nil, fmt.Errorf("failed to scan like: %w", err)
		}
		likes = append(likes, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return likes, nil
}
