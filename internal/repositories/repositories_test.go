package repositories

import (
	"bytes"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tunestream/internal/models"
	"github.com/desertthunder/tunestream/internal/shared"
	tu "github.com/desertthunder/tunestream/internal/testing"
)

// setupTestDB creates an in-memory SQLite database with migrations applied
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

// clock returns increasing timestamps one second apart.
func clock() func() time.Time {
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	n := 0
	return func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Second)
	}
}

func TestPlayRepository(t *testing.T) {
	tracks := tu.Tracks(3)

	t.Run("Record", func(t *testing.T) {
		repo := NewPlayRepository(setupTestDB(t))

		play, err := repo.Record(tracks[0], "Mock")
		if err != nil {
			t.Fatalf("failed to record play: %v", err)
		}
		if play.ID == "" {
			t.Error("play ID should be set after recording")
		}
		if play.PlayedAt.IsZero() {
			t.Error("played_at should be set")
		}
	})

	t.Run("Record rejects invalid tracks", func(t *testing.T) {
		repo := NewPlayRepository(setupTestDB(t))

		_, err := repo.Record(models.Track{Title: "no id"}, "Mock")
		if !errors.Is(err, shared.ErrInvalidTrack) {
			t.Errorf("expected ErrInvalidTrack, got %v", err)
		}
	})

	t.Run("Recent is newest first", func(t *testing.T) {
		repo := NewPlayRepository(setupTestDB(t))
		repo.now = clock()

		for _, tr := range tracks {
			if _, err := repo.Record(tr, "Mock"); err != nil {
				t.Fatalf("failed to record play: %v", err)
			}
		}

		plays, err := repo.Recent(2)
		if err != nil {
			t.Fatalf("failed to list plays: %v", err)
		}
		if len(plays) != 2 {
			t.Fatalf("expected 2 plays, got %d", len(plays))
		}
		if plays[0].Track.ID != tracks[2].ID || plays[1].Track.ID != tracks[1].ID {
			t.Errorf("unexpected order: %s, %s", plays[0].Track.ID, plays[1].Track.ID)
		}

		got := plays[0].Track
		if got != tracks[2] {
			t.Errorf("track fields not preserved: %+v", got)
		}
		if plays[0].Source != "Mock" {
			t.Errorf("expected source Mock, got %s", plays[0].Source)
		}
	})

	t.Run("Recent defaults limit", func(t *testing.T) {
		repo := NewPlayRepository(setupTestDB(t))
		for range DefaultRecentLimit + 5 {
			if _, err := repo.Record(tracks[0], "Mock"); err != nil {
				t.Fatalf("failed to record play: %v", err)
			}
		}

		plays, err := repo.Recent(0)
		if err != nil {
			t.Fatalf("failed to list plays: %v", err)
		}
		if len(plays) != DefaultRecentLimit {
			t.Errorf("expected %d plays, got %d", DefaultRecentLimit, len(plays))
		}
	})

	t.Run("Recent on empty history", func(t *testing.T) {
		repo := NewPlayRepository(setupTestDB(t))
		plays, err := repo.Recent(5)
		if err != nil {
			t.Fatalf("failed to list plays: %v", err)
		}
		if plays == nil || len(plays) != 0 {
			t.Errorf("expected empty non-nil slice, got %v", plays)
		}
	})

	t.Run("Count and Clear", func(t *testing.T) {
		repo := NewPlayRepository(setupTestDB(t))
		for _, tr := range tracks {
			repo.Record(tr, "Mock")
		}

		n, err := repo.Count()
		if err != nil || n != 3 {
			t.Fatalf("expected 3 plays, got %d (%v)", n, err)
		}

		removed, err := repo.Clear()
		if err != nil || removed != 3 {
			t.Fatalf("expected 3 removed, got %d (%v)", removed, err)
		}

		n, _ = repo.Count()
		if n != 0 {
			t.Errorf("expected empty history, got %d", n)
		}
	})

	t.Run("closed database", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewPlayRepository(db)
		db.Close()

		if _, err := repo.Record(tracks[0], "Mock"); err == nil {
			t.Error("expected error recording on closed database")
		}
		if _, err := repo.Recent(5); err == nil {
			t.Error("expected error listing on closed database")
		}
		if _, err := repo.Count(); err == nil {
			t.Error("expected error counting on closed database")
		}
		if _, err := repo.Clear(); err == nil {
			t.Error("expected error clearing on closed database")
		}
	})
}

func TestLikeRepository(t *testing.T) {
	tracks := tu.Tracks(2)

	t.Run("SetLiked and IsLiked", func(t *testing.T) {
		repo := NewLikeRepository(setupTestDB(t))

		liked, err := repo.IsLiked(tracks[0].ID)
		if err != nil || liked {
			t.Fatalf("expected not liked, got %v (%v)", liked, err)
		}

		if err := repo.SetLiked(tracks[0], true); err != nil {
			t.Fatalf("failed to like: %v", err)
		}
		if err := repo.SetLiked(tracks[0], true); err != nil {
			t.Fatalf("liking twice should not fail: %v", err)
		}

		liked, _ = repo.IsLiked(tracks[0].ID)
		if !liked {
			t.Error("expected liked")
		}

		if err := repo.SetLiked(tracks[0], false); err != nil {
			t.Fatalf("failed to unlike: %v", err)
		}
		liked, _ = repo.IsLiked(tracks[0].ID)
		if liked {
			t.Error("expected unliked")
		}
	})

	t.Run("List", func(t *testing.T) {
		repo := NewLikeRepository(setupTestDB(t))
		repo.now = clock()

		repo.SetLiked(tracks[0], true)
		repo.SetLiked(tracks[1], true)

		likes, err := repo.List()
		if err != nil {
			t.Fatalf("failed to list likes: %v", err)
		}
		if len(likes) != 2 || likes[0].Track.ID != tracks[1].ID {
			t.Errorf("expected newest like first, got %v", likes)
		}
	})

	t.Run("invalid track", func(t *testing.T) {
		repo := NewLikeRepository(setupTestDB(t))
		if err := repo.SetLiked(models.Track{}, true); !errors.Is(err, shared.ErrInvalidTrack) {
			t.Errorf("expected ErrInvalidTrack, got %v", err)
		}
	})
}

func TestHistoryRecorder(t *testing.T) {
	tracks := tu.Tracks(1)

	t.Run("records plays and likes", func(t *testing.T) {
		db := setupTestDB(t)
		plays, likes := NewPlayRepository(db), NewLikeRepository(db)
		rec := NewHistoryRecorder(plays, likes, "Mock", shared.NewLogger(&bytes.Buffer{}))

		rec.RecordPlay(tracks[0])
		rec.RecordLike(tracks[0], true)

		if n, _ := plays.Count(); n != 1 {
			t.Errorf("expected 1 play, got %d", n)
		}
		if !rec.IsLiked(tracks[0].ID) {
			t.Error("expected liked")
		}
	})

	t.Run("logs failures", func(t *testing.T) {
		db := setupTestDB(t)
		var buf bytes.Buffer
		logger := shared.NewLogger(&buf)
		logger.SetLevel(log.DebugLevel)
		rec := NewHistoryRecorder(NewPlayRepository(db), NewLikeRepository(db), "Mock", logger)
		db.Close()

		rec.RecordPlay(tracks[0])
		rec.RecordLike(tracks[0], true)
		if rec.IsLiked(tracks[0].ID) {
			t.Error("expected false when storage fails")
		}

		out := buf.String()
		for _, want := range []string{"failed to record play", "failed to record like", "failed to read like"} {
			if !strings.Contains(out, want) {
				t.Errorf("expected log %q, got %s", want, out)
			}
		}
	})
}
