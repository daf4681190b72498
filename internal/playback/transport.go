package playback

import (
	"fmt"

	"github.com/desertthunder/tunestream/internal/shared"
)

// DefaultVolume is the volume a new [Transport] starts with.
const DefaultVolume = 80

// RepeatMode defines the repeat indicator of the player bar.
type RepeatMode int

const (
	RepeatOff RepeatMode = iota
	RepeatAll
	RepeatOne
)

// String returns the repeat mode name.
func (m RepeatMode) String() string {
	switch m {
	case RepeatOff:
		return "off"
	case RepeatAll:
		return "all"
	case RepeatOne:
		return "one"
	default:
		return "unknown"
	}
}

// MarshalText encodes the mode by name.
func (m RepeatMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText decodes "off", "all" or "one".
func (m *RepeatMode) UnmarshalText(text []byte) error {
	mode, err := ParseRepeatMode(string(text))
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

// ParseRepeatMode converts a mode name to a [RepeatMode].
func ParseRepeatMode(s string) (RepeatMode, error) {
	switch s {
	case "off":
		return RepeatOff, nil
	case "all":
		return RepeatAll, nil
	case "one":
		return RepeatOne, nil
	default:
		return RepeatOff, fmt.Errorf("%w: unknown repeat mode %q", shared.ErrInvalidInput, s)
	}
}

// Next returns the mode after m in the off -> all -> one -> off cycle.
func (m RepeatMode) Next() RepeatMode {
	switch m {
	case RepeatOff:
		return RepeatAll
	case RepeatAll:
		return RepeatOne
	default:
		return RepeatOff
	}
}

// Transport is the player-local control state.
//
// It is independent of [Player]; the session reconciles the two through [Transport.TrackChanged].
type Transport struct {
	Position int        `json:"position"` // seconds into the current track
	Volume   int        `json:"volume"`   // 0-100
	Liked    bool       `json:"liked"`
	Shuffled bool       `json:"shuffled"`
	Repeat   RepeatMode `json:"repeat"`
}

// NewTransport returns controls at position 0 and [DefaultVolume].
func NewTransport() Transport {
	return Transport{Volume: DefaultVolume}
}

// Seek moves the position to seconds, clamped into [0, duration].
func (t *Transport) Seek(seconds, duration int) {
	t.Position = clamp(seconds, 0, max(duration, 0))
}

// SeekBy moves the position by delta seconds, clamped into [0, duration].
func (t *Transport) SeekBy(delta, duration int) {
	t.Seek(t.Position+delta, duration)
}

// SetVolume sets the volume, clamped into [0, 100].
func (t *Transport) SetVolume(v int) {
	t.Volume = clamp(v, 0, 100)
}

// ToggleLike flips the like flag.
func (t *Transport) ToggleLike() {
	t.Liked = !t.Liked
}

// ToggleShuffle flips the shuffle flag.
func (t *Transport) ToggleShuffle() {
	t.Shuffled = !t.Shuffled
}

// CycleRepeat advances the repeat mode: off -> all -> one -> off.
func (t *Transport) CycleRepeat() {
	t.Repeat = t.Repeat.Next()
}

// TrackChanged resets the per-track controls (position, like). Volume, shuffle and repeat carry over.
func (t *Transport) TrackChanged() {
	t.Position = 0
	t.Liked = false
}

// Elapsed renders the position as m:ss.
func (t Transport) Elapsed() string {
	return shared.FormatDuration(t.Position)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
