// package formatter renders track lists and listening history for CLI output (text, CSV, Markdown, JSON)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/desertthunder/tunestream/internal/models"
	"github.com/desertthunder/tunestream/internal/shared"
	"github.com/mattn/go-runewidth"
)

// Format names accepted by [Render].
const (
	FormatText     = "text"
	FormatCSV      = "csv"
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
)

// LineWidth is the display width text lines are truncated to.
const LineWidth = 72

// Formats lists the supported output formats.
var Formats = []string{FormatText, FormatCSV, FormatMarkdown, FormatJSON}

// ToCSV converts tracks to CSV with columns: ID, Title, Artist, Duration, Thumbnail
func ToCSV(tracks []models.Track) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Artist", "Duration", "Thumbnail"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, track := range tracks {
		record := []string{
			track.ID,
			track.Title,
			track.Artist,
			strconv.Itoa(track.Duration),
			track.Thumbnail,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ToText renders a numbered "Artist - Title [m:ss]" list under an optional title line.
//
// Lines wider than [LineWidth] are truncated with an ellipsis, keeping the duration visible.
func ToText(title string, tracks []models.Track) ([]byte, error) {
	var buf bytes.Buffer

	if title != "" {
		buf.WriteString(fmt.Sprintf("%s (%d)\n\n", title, len(tracks)))
	}

	if len(tracks) == 0 {
		buf.WriteString("No tracks.\n")
		return buf.Bytes(), nil
	}

	for i, track := range tracks {
		prefix := fmt.Sprintf("%2d. ", i+1)
		suffix := fmt.Sprintf(" [%s]", track.FormattedDuration())
		name := Truncate(track.Artist+" - "+track.Title, LineWidth-runewidth.StringWidth(prefix+suffix))
		buf.WriteString(prefix + name + suffix + "\n")
	}

	return buf.Bytes(), nil
}

// ToMarkdown renders a heading followed by a numbered list with thumbnails linked.
func ToMarkdown(title string, tracks []models.Track) ([]byte, error) {
	var buf bytes.Buffer

	if title == "" {
		title = "Tracks"
	}
	buf.WriteString(fmt.Sprintf("# %s\n\n", title))
	buf.WriteString(fmt.Sprintf("**Tracks**: %d\n\n", len(tracks)))

	for i, track := range tracks {
		line := fmt.Sprintf("%d. %s - %s [%s]", i+1, escapeMarkdown(track.Artist), escapeMarkdown(track.Title), track.FormattedDuration())
		if track.Thumbnail != "" {
			line += fmt.Sprintf(" ([cover](%s))", track.Thumbnail)
		}
		buf.WriteString(line + "\n")
	}

	return buf.Bytes(), nil
}

// ToJSON encodes tracks as a JSON array; a nil slice encodes as [].
func ToJSON(tracks []models.Track, pretty bool) ([]byte, error) {
	if tracks == nil {
		tracks = []models.Track{}
	}
	data, err := shared.MarshalJSON(tracks, pretty)
	if err != nil {
		return nil, fmt.Errorf("failed to encode JSON: %w", err)
	}
	return append(data, '\n'), nil
}

// Render dispatches to the formatter for format.
func Render(format, title string, tracks []models.Track) ([]byte, error) {
	switch strings.ToLower(format) {
	case "", FormatText:
		return ToText(title, tracks)
	case FormatCSV:
		return ToCSV(tracks)
	case FormatMarkdown, "md":
		return ToMarkdown(title, tracks)
	case FormatJSON:
		return ToJSON(tracks, true)
	default:
		return nil, fmt.Errorf("%w: unknown format %q (expected one of %s)", shared.ErrInvalidFlag, format, strings.Join(Formats, ", "))
	}
}

// RenderHistory renders plays newest first. CSV and JSON include the play timestamp.
func RenderHistory(format string, plays []models.Play) ([]byte, error) {
	switch strings.ToLower(format) {
	case "", FormatText:
		var buf bytes.Buffer
		if len(plays) == 0 {
			buf.WriteString("No plays recorded.\n")
			return buf.Bytes(), nil
		}
		for _, p := range plays {
			stamp := p.PlayedAt.Local().Format(time.DateTime)
			buf.WriteString(stamp + "  " + Truncate(p.Track.String(), LineWidth-runewidth.StringWidth(stamp)-2) + "\n")
		}
		return buf.Bytes(), nil
	case FormatCSV:
		var buf bytes.Buffer
		writer := csv.NewWriter(&buf)
		writer.Write([]string{"Played At", "ID", "Title", "Artist", "Duration", "Source"})
		for _, p := range plays {
			writer.Write([]string{
				p.PlayedAt.UTC().Format(time.RFC3339),
				p.Track.ID,
				p.Track.Title,
				p.Track.Artist,
				strconv.Itoa(p.Track.Duration),
				p.Source,
			})
		}
		writer.Flush()
		if err := writer.Error(); err != nil {
			return nil, fmt.Errorf("CSV writer error: %w", err)
		}
		return buf.Bytes(), nil
	case FormatMarkdown, "md":
		tracks := make([]models.Track, len(plays))
		for i, p := range plays {
			tracks[i] = p.Track
		}
		return ToMarkdown("Listening History", tracks)
	case FormatJSON:
		if plays == nil {
			plays = []models.Play{}
		}
		data, err := shared.MarshalJSON(plays, true)
		if err != nil {
			return nil, fmt.Errorf("failed to encode JSON: %w", err)
		}
		return append(data, '\n'), nil
	default:
		return nil, fmt.Errorf("%w: unknown format %q (expected one of %s)", shared.ErrInvalidFlag, format, strings.Join(Formats, ", "))
	}
}

// Truncate shortens s to at most width display cells, ending with "…" when cut.
//
// Wide runes (CJK, emoji) count as two cells.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}

// WriteFile writes rendered output to path, creating or truncating it.
func WriteFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func escapeMarkdown(s string) string {
	r := strings.NewReplacer("[", `\[`, "]", `\]`, "*", `\*`, "_", `\_`)
	return r.Replace(s)
}
