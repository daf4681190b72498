package ui

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/tunestream/internal/models"
	"github.com/desertthunder/tunestream/internal/playback"
	"github.com/mattn/go-runewidth"
)

var _ list.Item = trackItem{}

// trackItem wraps [models.Track] to implement [list.Item].
type trackItem struct {
	track  models.Track
	marker string
}

func (i trackItem) FilterValue() string { return i.track.Title }
func (i trackItem) Title() string       { return i.marker + i.track.Title }
func (i trackItem) Description() string {
	return i.track.Artist + " • " + i.track.FormattedDuration()
}

// marker returns the play-state glyph shown before the current track.
func marker(snap playback.Snapshot, id string) string {
	if !snap.IsCurrent(id) {
		return ""
	}
	if snap.Playing {
		return "▶ "
	}
	return "❚❚ "
}

// trackItems builds list items for tracks, marking the current one.
func trackItems(tracks []models.Track, snap playback.Snapshot) []list.Item {
	items := make([]list.Item, len(tracks))
	for i, t := range tracks {
		items[i] = trackItem{track: t, marker: marker(snap, t.ID)}
	}
	return items
}

// newTrackList creates a list with built-in filtering and quit handling turned off; the model owns those keys.
func newTrackList(title string) list.Model {
	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = title
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.DisableQuitKeybindings()
	l.Styles.Title = l.Styles.Title.Background(styles.accent)
	return l
}

// truncate shortens s to width display cells.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}
