package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tunestream/internal/models"
	"github.com/desertthunder/tunestream/internal/playback"
	"github.com/desertthunder/tunestream/internal/session"
	"github.com/desertthunder/tunestream/internal/shared"
)

// MaxBodyBytes caps request bodies accepted by the control API.
const MaxBodyBytes = 1 << 20

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// TracksResponse wraps a track list.
type TracksResponse struct {
	Tracks []models.Track `json:"tracks"`
}

// SearchResponse is returned by GET /api/search.
type SearchResponse struct {
	Query   string         `json:"query"`
	Results []models.Track `json:"results"`
	Applied bool           `json:"applied"` // false when a newer search superseded this one
}

// TransportRequest is the body of POST /api/transport. Absent fields leave their control unchanged.
type TransportRequest struct {
	Seek          *int                 `json:"seek,omitempty"`
	SeekBy        *int                 `json:"seek_by,omitempty"`
	Volume        *int                 `json:"volume,omitempty"`
	VolumeBy      *int                 `json:"volume_by,omitempty"`
	ToggleLike    bool                 `json:"toggle_like,omitempty"`
	ToggleShuffle bool                 `json:"toggle_shuffle,omitempty"`
	CycleRepeat   bool                 `json:"cycle_repeat,omitempty"`
	Repeat        *playback.RepeatMode `json:"repeat,omitempty"`
}

// APIHandler serves the JSON control API over a [session.Session].
type APIHandler struct {
	session *session.Session
	logger  *log.Logger
}

// NewAPIHandler creates an APIHandler; logger receives handler-level errors.
func NewAPIHandler(s *session.Session, logger *log.Logger) *APIHandler {
	return &APIHandler{session: s, logger: logger}
}

// Routes returns the HTTP routes this handler serves.
func (h *APIHandler) Routes() []string {
	return []string{"/api/"}
}

// ServeHTTP dispatches on method and path.
func (h *APIHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	route := r.Method + " " + strings.TrimSuffix(r.URL.Path, "/")

	switch route {
	case "GET /api/state":
		writeJSON(w, http.StatusOK, h.session.Snapshot())
	case "GET /api/trending":
		writeJSON(w, http.StatusOK, TracksResponse{Tracks: h.session.Snapshot().Trending})
	case "GET /api/recommendations":
		writeJSON(w, http.StatusOK, TracksResponse{Tracks: h.session.Snapshot().Recommendations})
	case "GET /api/search":
		h.search(w, r)
	case "POST /api/play":
		h.play(w, r)
	case "POST /api/pause":
		h.session.OnPause()
		h.state(w)
	case "POST /api/stop":
		h.session.OnStop()
		h.state(w)
	case "POST /api/toggle":
		h.session.OnPlayPause()
		h.state(w)
	case "POST /api/next":
		h.navigate(w, h.session.OnNext)
	case "POST /api/previous":
		h.navigate(w, h.session.OnPrevious)
	case "POST /api/transport":
		h.transport(w, r)
	default:
		if h.knownPath(r.URL.Path) {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		writeError(w, http.StatusNotFound, "not found")
	}
}

func (h *APIHandler) knownPath(path string) bool {
	switch strings.TrimSuffix(path, "/") {
	case "/api/state", "/api/trending", "/api/recommendations", "/api/search",
		"/api/play", "/api/pause", "/api/stop", "/api/toggle", "/api/next", "/api/previous", "/api/transport":
		return true
	}
	return false
}

func (h *APIHandler) state(w http.ResponseWriter) {
	writeJSON(w, http.StatusOK, h.session.Snapshot())
}

func (h *APIHandler) search(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		h.fail(w, fmt.Errorf("%w: q", shared.ErrMissingArgument))
		return
	}

	results, applied := h.session.OnSearch(r.Context(), query)
	writeJSON(w, http.StatusOK, SearchResponse{Query: query, Results: results, Applied: applied})
}

// play accepts a full track, or a bare id resolved against the displayed lists.
func (h *APIHandler) play(w http.ResponseWriter, r *http.Request) {
	var track models.Track
	if err := decodeBody(w, r, &track); err != nil {
		h.fail(w, err)
		return
	}

	if track.Title == "" && track.ID != "" {
		found, err := h.session.Lookup(track.ID)
		if err != nil {
			h.fail(w, err)
			return
		}
		track = found
	}

	if err := h.session.OnPlay(track); err != nil {
		h.fail(w, err)
		return
	}
	h.state(w)
}

func (h *APIHandler) navigate(w http.ResponseWriter, step func() (models.Track, error)) {
	if _, err := step(); err != nil {
		h.fail(w, err)
		return
	}
	h.state(w)
}

func (h *APIHandler) transport(w http.ResponseWriter, r *http.Request) {
	var req TransportRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.fail(w, err)
		return
	}

	if req.Seek != nil {
		h.session.OnSeek(*req.Seek)
	}
	if req.SeekBy != nil {
		h.session.OnSeekBy(*req.SeekBy)
	}
	if req.Volume != nil {
		h.session.OnVolume(*req.Volume)
	}
	if req.VolumeBy != nil {
		h.session.OnVolumeBy(*req.VolumeBy)
	}
	if req.ToggleLike {
		h.session.OnToggleLike()
	}
	if req.ToggleShuffle {
		h.session.OnToggleShuffle()
	}
	if req.Repeat != nil {
		h.session.SetRepeat(*req.Repeat)
	} else if req.CycleRepeat {
		h.session.OnCycleRepeat()
	}

	h.state(w)
}

func (h *APIHandler) fail(w http.ResponseWriter, err error) {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", "error", err)
	}
	writeError(w, status, err.Error())
}

// StatusFor maps shared sentinel errors to HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, shared.ErrEmptyQueue):
		return http.StatusConflict
	case errors.Is(err, shared.ErrTrackNotFound):
		return http.StatusNotFound
	case errors.Is(err, shared.ErrInvalidTrack),
		errors.Is(err, shared.ErrInvalidInput),
		errors.Is(err, shared.ErrMissingArgument):
		return http.StatusBadRequest
	case errors.Is(err, shared.ErrServiceUnavailable), errors.Is(err, shared.ErrTransport):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

// NewAPIRouter wires the control API with request logging and panic recovery.
func NewAPIRouter(s *session.Session, logger *log.Logger) *BasicRouter {
	r := NewBasicRouter()
	r.Use(Logging(logger), Recover(logger))
	r.Handle(http.MethodGet, "/healthz", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}))
	r.Handler(NewAPIHandler(s, logger))
	return r
}
