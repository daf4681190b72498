package session

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tunestream/internal/models"
	"github.com/desertthunder/tunestream/internal/playback"
	"github.com/desertthunder/tunestream/internal/services"
	"github.com/desertthunder/tunestream/internal/shared"
)

// PlayRecorder receives every track selection that changes the current track.
type PlayRecorder interface {
	RecordPlay(track models.Track)
}

// LikeRecorder persists the like flag of tracks across sessions.
type LikeRecorder interface {
	RecordLike(track models.Track, liked bool)
	IsLiked(trackID string) bool
}

// Opts configures a [Session]. Only Catalog is required.
type Opts struct {
	Catalog  services.Catalog
	Logger   *log.Logger
	Recorder PlayRecorder
	Likes    LikeRecorder
}

// Session holds the view lists and playback state shared by every surface.
//
// All methods are safe for concurrent use.
type Session struct {
	mu sync.Mutex

	catalog  services.Catalog
	recorder PlayRecorder
	likes    LikeRecorder
	logger   *log.Logger

	player    *playback.Player
	transport playback.Transport

	trending        []models.Track
	recommendations []models.Track
	searchResults   []models.Track

	searching bool
	lastQuery string
	searchSeq uint64

	// trackGen counts identity changes; likeSet marks a like toggled since the last one.
	trackGen uint64
	likeSet  bool
}

// Snapshot is a copy of the session state safe to hand to renderers.
type Snapshot struct {
	Player          playback.Snapshot  `json:"player"`
	Transport       playback.Transport `json:"transport"`
	Trending        []models.Track     `json:"trending"`
	Recommendations []models.Track     `json:"recommendations"`
	SearchResults   []models.Track     `json:"search_results"`
	Searching       bool               `json:"searching"`
	Query           string             `json:"query"`
	Source          string             `json:"source"`
}

// Active returns the list navigation operates on.
func (s Snapshot) Active() []models.Track {
	return playback.ActiveList(s.SearchResults, s.Trending)
}

// New creates a Session in the Idle state with empty lists.
func New(opts Opts) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = shared.NewLogger(io.Discard)
	}

	return &Session{
		catalog:   opts.Catalog,
		recorder:  opts.Recorder,
		likes:     opts.Likes,
		logger:    shared.WithLogger(logger, "component", "session"),
		player:    playback.NewPlayer(),
		transport: playback.NewTransport(),
	}
}

// Load fetches the trending list and the recommendations, keeping at most [services.RecommendationLimit] of the latter.
//
// The catalog is queried without holding the lock.
func (s *Session) Load(ctx context.Context) {
	trending := s.catalog.Trending(ctx)
	recs := models.Truncate(s.catalog.Recommendations(ctx), services.RecommendationLimit)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.trending = models.Clone(trending)
	s.recommendations = models.Clone(recs)
	s.logger.Debug("loaded home lists", "trending", len(trending), "recommendations", len(recs))
}

// BeginSearch marks a search for query as in flight and returns its sequence number.
func (s *Session) BeginSearch(query string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.searchSeq++
	s.searching = true
	s.lastQuery = query
	return s.searchSeq
}

// CompleteSearch stores results if seq is the most recently issued search.
//
// Results of superseded searches are dropped and false is returned.
func (s *Session) CompleteSearch(seq uint64, results []models.Track) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.searchSeq {
		s.logger.Debug("dropping stale search results", "seq", seq, "latest", s.searchSeq)
		return false
	}

	s.searchResults = models.Clone(results)
	s.searching = false
	return true
}

// ClearSearch drops the search results and invalidates any search in flight.
func (s *Session) ClearSearch() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.searchSeq++
	s.searching = false
	s.lastQuery = ""
	s.searchResults = nil
}

// OnSearch runs a search for query and stores its results.
//
// A blank query clears the search and returns to the home lists.
// The returned bool is false when a newer search superseded this one.
func (s *Session) OnSearch(ctx context.Context, query string) ([]models.Track, bool) {
	query = strings.TrimSpace(query)
	if query == "" {
		s.ClearSearch()
		return []models.Track{}, true
	}

	seq := s.BeginSearch(query)
	results := s.Search(ctx, query)
	return results, s.CompleteSearch(seq, results)
}

// Search queries the catalog without touching session state.
//
// Callers running searches asynchronously pair it with [Session.BeginSearch] and [Session.CompleteSearch].
func (s *Session) Search(ctx context.Context, query string) []models.Track {
	s.logger.Info("searching", "query", query, "catalog", s.catalog.Name())
	return models.Clone(s.catalog.Search(ctx, query))
}

// OnPlay makes track current and playing.
//
// Per-track transport controls reset when the track identity changes.
func (s *Session) OnPlay(track models.Track) error {
	if err := track.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	gen, changed := s.selectLocked(track)
	s.mu.Unlock()

	if changed {
		s.trackChanged(track, gen)
	}
	return nil
}

// OnPause pauses playback. It is a no-op unless playing.
func (s *Session) OnPause() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.player.Pause()
}

// OnPlayPause toggles between playing and paused. It does nothing while Idle.
func (s *Session) OnPlayPause() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.player.TogglePlayPause()
}

// OnCardPlayPause pauses track if it is current and playing, otherwise plays it.
func (s *Session) OnCardPlayPause(track models.Track) error {
	if err := track.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	if s.player.IsPlaying() && s.player.Snapshot().IsCurrent(track.ID) {
		s.player.Pause()
		s.mu.Unlock()
		return nil
	}

	gen, changed := s.selectLocked(track)
	s.mu.Unlock()

	if changed {
		s.trackChanged(track, gen)
	}
	return nil
}

// OnStop clears the current track and returns to Idle.
func (s *Session) OnStop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.player.Current() == nil {
		return
	}
	s.player.Stop()
	s.transport.TrackChanged()
	s.trackGen++
	s.likeSet = false
}

// OnNext plays the track after the current one in the active list, wrapping around.
func (s *Session) OnNext() (models.Track, error) {
	return s.navigate(s.player.Next)
}

// OnPrevious plays the track before the current one in the active list, wrapping around.
func (s *Session) OnPrevious() (models.Track, error) {
	return s.navigate(s.player.Previous)
}

func (s *Session) navigate(step func([]models.Track) (models.Track, error)) (models.Track, error) {
	s.mu.Lock()
	before := s.player.Current()
	track, err := step(playback.ActiveList(s.searchResults, s.trending))
	if err != nil {
		s.mu.Unlock()
		return models.Track{}, err
	}

	gen, changed := s.afterSelectLocked(before, track)
	s.mu.Unlock()

	if changed {
		s.trackChanged(track, gen)
	}
	return track, nil
}

// OnSeek moves the position to seconds, clamped to the current track.
func (s *Session) OnSeek(seconds int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.transport.Seek(seconds, s.currentDuration())
}

// OnSeekBy moves the position by delta seconds, clamped to the current track.
func (s *Session) OnSeekBy(delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.transport.SeekBy(delta, s.currentDuration())
}

// OnVolume sets the volume, clamped into [0, 100].
func (s *Session) OnVolume(v int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.transport.SetVolume(v)
}

// OnVolumeBy changes the volume by delta.
func (s *Session) OnVolumeBy(delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.transport.SetVolume(s.transport.Volume + delta)
}

// OnToggleLike flips the like flag and persists it for the current track.
func (s *Session) OnToggleLike() bool {
	s.mu.Lock()
	s.transport.ToggleLike()
	liked := s.transport.Liked
	cur := s.player.Current()
	if cur != nil {
		s.likeSet = true
	}
	s.mu.Unlock()

	if cur != nil && s.likes != nil {
		s.likes.RecordLike(*cur, liked)
	}
	return liked
}

// OnToggleShuffle flips the shuffle indicator. Navigation order is unaffected.
func (s *Session) OnToggleShuffle() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.transport.ToggleShuffle()
	return s.transport.Shuffled
}

// OnCycleRepeat advances the repeat indicator. Navigation order is unaffected.
func (s *Session) OnCycleRepeat() playback.RepeatMode {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.transport.CycleRepeat()
	return s.transport.Repeat
}

// SetRepeat sets the repeat indicator directly.
func (s *Session) SetRepeat(mode playback.RepeatMode) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.transport.Repeat = mode
}

// Lookup finds a displayed track by id in search results, trending and recommendations, in that order.
func (s *Session) Lookup(id string) (models.Track, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, list := range [][]models.Track{s.searchResults, s.trending, s.recommendations} {
		if i := models.IndexOf(list, id); i >= 0 {
			return list[i], nil
		}
	}
	return models.Track{}, fmt.Errorf("%w: %s", shared.ErrTrackNotFound, id)
}

// Snapshot returns a copy of the full session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Snapshot{
		Player:          s.player.Snapshot(),
		Transport:       s.transport,
		Trending:        models.Clone(s.trending),
		Recommendations: models.Clone(s.recommendations),
		SearchResults:   models.Clone(s.searchResults),
		Searching:       s.searching,
		Query:           s.lastQuery,
		Source:          s.catalog.Name(),
	}
}

func (s *Session) selectLocked(track models.Track) (uint64, bool) {
	before := s.player.Current()
	s.player.Select(track)
	return s.afterSelectLocked(before, track)
}

// afterSelectLocked resets the transport when the track identity changed and reports the new generation.
func (s *Session) afterSelectLocked(before *models.Track, track models.Track) (uint64, bool) {
	if before != nil && before.ID == track.ID {
		return s.trackGen, false
	}

	s.transport.TrackChanged()
	s.trackGen++
	s.likeSet = false
	return s.trackGen, true
}

// trackChanged records the play and restores the stored like. It must be called without s.mu held.
func (s *Session) trackChanged(track models.Track, gen uint64) {
	s.logger.Info("now playing", "id", track.ID, "title", track.Title, "artist", track.Artist)

	if s.recorder != nil {
		s.recorder.RecordPlay(track)
	}
	if s.likes == nil {
		return
	}

	liked := s.likes.IsLiked(track.ID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.trackGen == gen && !s.likeSet {
		s.transport.Liked = liked
	}
}

func (s *Session) currentDuration() int {
	if cur := s.player.Current(); cur != nil {
		return cur.Duration
	}
	return 0
}
