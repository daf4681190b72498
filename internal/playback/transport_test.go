package playback

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/desertthunder/tunestream/internal/shared"
)

func TestTransport(t *testing.T) {
	t.Run("NewTransport defaults", func(t *testing.T) {
		tr := NewTransport()
		if tr.Volume != DefaultVolume || tr.Position != 0 || tr.Liked || tr.Shuffled || tr.Repeat != RepeatOff {
			t.Errorf("unexpected defaults %+v", tr)
		}
	})

	t.Run("Seek clamps to track duration", func(t *testing.T) {
		tc := []struct {
			name     string
			seconds  int
			duration int
			want     int
		}{
			{name: "within", seconds: 30, duration: 200, want: 30},
			{name: "negative", seconds: -5, duration: 200, want: 0},
			{name: "past end", seconds: 500, duration: 200, want: 200},
			{name: "zero length track", seconds: 10, duration: 0, want: 0},
			{name: "negative duration", seconds: 10, duration: -3, want: 0},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				tr := NewTransport()
				tr.Seek(tt.seconds, tt.duration)
				if tr.Position != tt.want {
					t.Errorf("Seek(%d, %d) -> %d, want %d", tt.seconds, tt.duration, tr.Position, tt.want)
				}
			})
		}
	})

	t.Run("SeekBy", func(t *testing.T) {
		tr := NewTransport()
		tr.SeekBy(5, 200)
		tr.SeekBy(5, 200)
		if tr.Position != 10 {
			t.Errorf("expected 10, got %d", tr.Position)
		}
		tr.SeekBy(-50, 200)
		if tr.Position != 0 {
			t.Errorf("expected 0, got %d", tr.Position)
		}
	})

	t.Run("SetVolume clamps", func(t *testing.T) {
		tr := NewTransport()
		tr.SetVolume(150)
		if tr.Volume != 100 {
			t.Errorf("expected 100, got %d", tr.Volume)
		}
		tr.SetVolume(-1)
		if tr.Volume != 0 {
			t.Errorf("expected 0, got %d", tr.Volume)
		}
		tr.SetVolume(42)
		if tr.Volume != 42 {
			t.Errorf("expected 42, got %d", tr.Volume)
		}
	})

	t.Run("toggles", func(t *testing.T) {
		tr := NewTransport()
		tr.ToggleLike()
		tr.ToggleShuffle()
		if !tr.Liked || !tr.Shuffled {
			t.Errorf("expected liked and shuffled, got %+v", tr)
		}
		tr.ToggleLike()
		tr.ToggleShuffle()
		if tr.Liked || tr.Shuffled {
			t.Errorf("expected flags cleared, got %+v", tr)
		}
	})

	t.Run("CycleRepeat off all one off", func(t *testing.T) {
		tr := NewTransport()
		want := []RepeatMode{RepeatAll, RepeatOne, RepeatOff, RepeatAll}
		for i, w := range want {
			tr.CycleRepeat()
			if tr.Repeat != w {
				t.Fatalf("step %d: expected %s, got %s", i, w, tr.Repeat)
			}
		}
	})

	t.Run("TrackChanged resets per-track controls only", func(t *testing.T) {
		tr := NewTransport()
		tr.Seek(90, 200)
		tr.SetVolume(30)
		tr.ToggleLike()
		tr.ToggleShuffle()
		tr.CycleRepeat()

		tr.TrackChanged()

		if tr.Position != 0 || tr.Liked {
			t.Errorf("expected position and like reset, got %+v", tr)
		}
		if tr.Volume != 30 || !tr.Shuffled || tr.Repeat != RepeatAll {
			t.Errorf("expected session controls kept, got %+v", tr)
		}
	})

	t.Run("Elapsed", func(t *testing.T) {
		tr := NewTransport()
		tr.Seek(125, 200)
		if tr.Elapsed() != "2:05" {
			t.Errorf("expected 2:05, got %s", tr.Elapsed())
		}
	})
}

func TestRepeatMode(t *testing.T) {
	t.Run("String", func(t *testing.T) {
		if RepeatOff.String() != "off" || RepeatAll.String() != "all" || RepeatOne.String() != "one" {
			t.Error("unexpected repeat names")
		}
		if RepeatMode(9).String() != "unknown" {
			t.Error("expected unknown for out of range mode")
		}
	})

	t.Run("Parse", func(t *testing.T) {
		for _, name := range []string{"off", "all", "one"} {
			mode, err := ParseRepeatMode(name)
			if err != nil {
				t.Fatalf("ParseRepeatMode(%q) failed: %v", name, err)
			}
			if mode.String() != name {
				t.Errorf("expected %s, got %s", name, mode)
			}
		}

		if _, err := ParseRepeatMode("sometimes"); !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("JSON", func(t *testing.T) {
		var payload struct {
			Repeat RepeatMode `json:"repeat"`
		}
		if err := json.Unmarshal([]byte(`{"repeat":"one"}`), &payload); err != nil {
			t.Fatalf("unmarshal failed: %v", err)
		}
		if payload.Repeat != RepeatOne {
			t.Errorf("expected one, got %s", payload.Repeat)
		}

		data, _ := json.Marshal(payload)
		if string(data) != `{"repeat":"one"}` {
			t.Errorf("unexpected JSON %s", data)
		}

		if err := json.Unmarshal([]byte(`{"repeat":"bad"}`), &payload); err == nil {
			t.Error("expected error for unknown mode")
		}
	})
}
