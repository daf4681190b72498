package models

import (
	"fmt"
	"strings"

	"github.com/desertthunder/tunestream/internal/shared"
)

// Track represents a playable item from any catalog.
type Track struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Artist    string `json:"artist"`
	Thumbnail string `json:"thumbnail"`
	Duration  int    `json:"duration"` // Duration in seconds
}

// Validate reports tracks that cannot be played or navigated to.
func (t Track) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return fmt.Errorf("%w: empty id", shared.ErrInvalidTrack)
	}
	if t.Duration < 0 {
		return fmt.Errorf("%w: negative duration %d for %s", shared.ErrInvalidTrack, t.Duration, t.ID)
	}
	return nil
}

// Matches reports whether query is a case-insensitive substring of the title or the artist.
func (t Track) Matches(query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(t.Title), q) || strings.Contains(strings.ToLower(t.Artist), q)
}

// FormattedDuration renders the duration as m:ss.
func (t Track) FormattedDuration() string {
	return shared.FormatDuration(t.Duration)
}

func (t Track) String() string {
	return fmt.Sprintf("%s - %s [%s]", t.Artist, t.Title, t.FormattedDuration())
}

// IndexOf returns the position of the first track with the given id, or -1.
func IndexOf(tracks []Track, id string) int {
	for i, t := range tracks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// IDs returns the ids of tracks in order.
func IDs(tracks []Track) []string {
	ids := make([]string, len(tracks))
	for i, t := range tracks {
		ids[i] = t.ID
	}
	return ids
}

// Clone returns a copy of tracks that shares no backing array with the input.
//
// A nil input yields an empty, non-nil slice.
func Clone(tracks []Track) []Track {
	out := make([]Track, len(tracks))
	copy(out, tracks)
	return out
}

// Truncate returns at most n leading tracks.
func Truncate(tracks []Track, n int) []Track {
	if n < 0 || len(tracks) <= n {
		return tracks
	}
	return tracks[:n]
}
