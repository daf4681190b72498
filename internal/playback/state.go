package playback

import (
	"fmt"

	"github.com/desertthunder/tunestream/internal/models"
	"github.com/desertthunder/tunestream/internal/shared"
)

// State represents the playback state.
type State int

const (
	StateIdle    State = iota // No current track
	StatePaused               // Track selected, not playing
	StatePlaying              // Track selected and playing
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePaused:
		return "paused"
	case StatePlaying:
		return "playing"
	default:
		return "unknown"
	}
}

// MarshalText encodes the state by name.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes "idle", "paused" or "playing".
func (s *State) UnmarshalText(text []byte) error {
	switch string(text) {
	case "idle":
		*s = StateIdle
	case "paused":
		*s = StatePaused
	case "playing":
		*s = StatePlaying
	default:
		return fmt.Errorf("%w: unknown state %q", shared.ErrInvalidInput, text)
	}
	return nil
}

// Snapshot is a read-only copy of the player state.
type Snapshot struct {
	Track   *models.Track `json:"track"`
	Playing bool          `json:"is_playing"`
	State   State         `json:"state"`
}

// HasTrack returns true if there is a current track.
func (s Snapshot) HasTrack() bool {
	return s.Track != nil
}

// IsCurrent reports whether id is the current track.
func (s Snapshot) IsCurrent(id string) bool {
	return s.Track != nil && s.Track.ID == id
}

// Player is the playback state machine. The zero value is Idle and ready to use.
//
// Player is not safe for concurrent use; the session serializes access.
type Player struct {
	current *models.Track
	playing bool
}

// NewPlayer creates an Idle player.
func NewPlayer() *Player {
	return &Player{}
}

// State derives the current [State].
func (p *Player) State() State {
	switch {
	case p.current == nil:
		return StateIdle
	case p.playing:
		return StatePlaying
	default:
		return StatePaused
	}
}

// Current returns a copy of the current track, or nil.
func (p *Player) Current() *models.Track {
	if p.current == nil {
		return nil
	}
	t := *p.current
	return &t
}

// IsPlaying reports whether the player is in [StatePlaying].
func (p *Player) IsPlaying() bool {
	return p.playing
}

// Snapshot returns a copy of the state safe to hand to renderers.
func (p *Player) Snapshot() Snapshot {
	return Snapshot{Track: p.Current(), Playing: p.playing, State: p.State()}
}

// Select makes t the current track and starts playing it, from any state.
func (p *Player) Select(t models.Track) {
	p.current = &t
	p.playing = true
}

// Pause moves Playing to Paused. It is a no-op from Paused and Idle.
func (p *Player) Pause() {
	p.playing = false
}

// TogglePlayPause flips between Playing and Paused. It is a no-op while Idle.
func (p *Player) TogglePlayPause() {
	if p.current == nil {
		return
	}
	p.playing = !p.playing
}

// Stop clears the current track and returns to Idle.
func (p *Player) Stop() {
	p.current = nil
	p.playing = false
}

// Next advances to the entry after the current track in active, wrapping to the first.
func (p *Player) Next(active []models.Track) (models.Track, error) {
	if len(active) == 0 {
		return models.Track{}, fmt.Errorf("%w: no tracks to advance to", shared.ErrEmptyQueue)
	}

	idx := p.indexIn(active)
	next := active[(idx+1)%len(active)]
	p.Select(next)
	return next, nil
}

// Previous moves to the entry before the current track in active, wrapping to the last.
func (p *Player) Previous(active []models.Track) (models.Track, error) {
	if len(active) == 0 {
		return models.Track{}, fmt.Errorf("%w: no tracks to go back to", shared.ErrEmptyQueue)
	}

	idx := p.indexIn(active)
	prevIdx := len(active) - 1
	if idx > 0 {
		prevIdx = idx - 1
	}

	prev := active[prevIdx]
	p.Select(prev)
	return prev, nil
}

func (p *Player) indexIn(active []models.Track) int {
	if p.current == nil {
		return -1
	}
	return models.IndexOf(active, p.current.ID)
}

// ActiveList returns the sequence navigation operates on: searchResults when non-empty, otherwise trending.
func ActiveList(searchResults, trending []models.Track) []models.Track {
	if len(searchResults) > 0 {
		return searchResults
	}
	return trending
}
