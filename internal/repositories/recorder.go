package repositories

import (
	"github.com/charmbracelet/log"
	"github.com/desertthunder/tunestream/internal/models"
)

// HistoryRecorder implements session.PlayRecorder and session.LikeRecorder.
//
// Storage failures are logged; they never interrupt playback.
type HistoryRecorder struct {
	plays  *PlayRepository
	likes  *LikeRepository
	source string
	logger *log.Logger
}

// NewHistoryRecorder creates a recorder tagging plays with source (the catalog name).
func NewHistoryRecorder(plays *PlayRepository, likes *LikeRepository, source string, logger *log.Logger) *HistoryRecorder {
	return &HistoryRecorder{plays: plays, likes: likes, source: source, logger: logger}
}

func (h *HistoryRecorder) RecordPlay(track models.Track) {
	if _, err := h.plays.Record(track, h.source); err != nil {
		h.logger.Error("failed to record play", "id", track.ID, "error", err)
	}
}

func (h *HistoryRecorder) RecordLike(track models.Track, liked bool) {
	if err := h.likes.SetLiked(track, liked); err != nil {
		h.logger.Error("failed to record like", "id", track.ID, "error", err)
	}
}

func (h *HistoryRecorder) IsLiked(id string) bool {
	liked, err := h.likes.IsLiked(id)
	if err != nil {
		h.logger.Warn("failed to read like", "id", id, "error", err)
		return false
	}
	return liked
}
