package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/tunestream/internal/playback"
	"github.com/desertthunder/tunestream/internal/session"
	"github.com/desertthunder/tunestream/internal/shared"
)

const progressWidth = 24

// renderPlayerBar draws the now-playing panel: track, state, progress, volume and indicators.
func renderPlayerBar(snap session.Snapshot, width int) string {
	if width <= 0 {
		width = 80
	}

	track := snap.Player.Track
	if track == nil {
		return styles.bar.Width(width).Render(styles.muted.Render("Select a song to start playing"))
	}

	icon := "❚❚"
	if snap.Player.Playing {
		icon = "▶"
	}

	tr := snap.Transport
	info := fmt.Sprintf("%s %s", styles.ok.Render(icon), truncate(track.Title+" · "+track.Artist, max(width-4, 8)))
	progress := fmt.Sprintf("%s %s %s",
		tr.Elapsed(),
		progressBar(tr.Position, track.Duration, progressWidth),
		shared.FormatDuration(track.Duration),
	)
	controls := strings.Join([]string{
		styles.As(fmt.Sprintf("vol %d%%", tr.Volume), styles.accent),
		indicator("♥ like", tr.Liked),
		indicator("shuffle", tr.Shuffled),
		indicator("repeat "+tr.Repeat.String(), tr.Repeat != playback.RepeatOff),
	}, "  ")

	return styles.bar.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, info, progress+"   "+controls))
}

// progressBar renders position/duration as a fixed-width bar.
func progressBar(position, duration, width int) string {
	filled := 0
	if duration > 0 {
		filled = min(position*width/duration, width)
	}
	return "[" + strings.Repeat("=", filled) + strings.Repeat("-", width-filled) + "]"
}

func indicator(label string, on bool) string {
	if on {
		return styles.ok.Render(label)
	}
	return styles.muted.Render(label)
}
