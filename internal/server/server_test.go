package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/tunestream/internal/models"
	"github.com/desertthunder/tunestream/internal/playback"
	"github.com/desertthunder/tunestream/internal/session"
	"github.com/desertthunder/tunestream/internal/shared"
	tu "github.com/desertthunder/tunestream/internal/testing"
)

func newTestAPI(t *testing.T, catalog *tu.StubCatalog) (*httptest.Server, *session.Session) {
	t.Helper()
	s := session.New(session.Opts{Catalog: catalog})
	s.Load(context.Background())

	srv := httptest.NewServer(NewAPIRouter(s, shared.NewLogger(io.Discard)))
	t.Cleanup(srv.Close)
	return srv, s
}

func do(t *testing.T, method, url, body string) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, r)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read body: %v", err)
	}
	return resp, data
}

func decodeSnapshot(t *testing.T, data []byte) session.Snapshot {
	t.Helper()
	var snap session.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		t.Fatalf("invalid snapshot JSON %s: %v", data, err)
	}
	return snap
}

func TestBasicRouter(t *testing.T) {
	t.Run("method filtering", func(t *testing.T) {
		r := NewBasicRouter()
		r.Handle(http.MethodGet, "/ping", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte("pong"))
		}))

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
		if rec.Code != http.StatusOK || rec.Body.String() != "pong" {
			t.Errorf("expected pong, got %d %s", rec.Code, rec.Body.String())
		}

		rec = httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/ping", nil))
		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("expected 405, got %d", rec.Code)
		}
		if rec.Header().Get("Allow") != "GET" {
			t.Errorf("expected Allow header, got %q", rec.Header().Get("Allow"))
		}
	})

	t.Run("middleware order", func(t *testing.T) {
		var order []string
		mark := func(name string) Middleware {
			return func(next http.Handler) http.Handler {
				return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					order = append(order, name)
					next.ServeHTTP(w, r)
				})
			}
		}

		r := NewBasicRouter()
		r.Use(mark("first"), mark("second"))
		r.Handle(http.MethodGet, "/", http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			order = append(order, "handler")
		}))

		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		if strings.Join(order, ",") != "first,second,handler" {
			t.Errorf("unexpected order %v", order)
		}
	})
}

func TestMiddleware(t *testing.T) {
	t.Run("Recover", func(t *testing.T) {
		var buf bytes.Buffer
		r := NewBasicRouter()
		r.Use(Logging(shared.NewLogger(&buf)), Recover(shared.NewLogger(&buf)))
		r.Handle(http.MethodGet, "/boom", http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			panic("boom")
		}))

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

		if rec.Code != http.StatusInternalServerError {
			t.Errorf("expected 500, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "internal server error") {
			t.Errorf("expected JSON error, got %s", rec.Body.String())
		}
		if !strings.Contains(buf.String(), "handler panic") || !strings.Contains(buf.String(), "status=500") {
			t.Errorf("expected panic and request logged, got %s", buf.String())
		}
	})

	t.Run("Logging", func(t *testing.T) {
		var buf bytes.Buffer
		h := Logging(shared.NewLogger(&buf))(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		}))

		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/tea", nil))

		out := buf.String()
		for _, want := range []string{"method=GET", "path=/tea", "status=418"} {
			if !strings.Contains(out, want) {
				t.Errorf("expected %q in log, got %s", want, out)
			}
		}
	})
}

func TestAPI(t *testing.T) {
	tracks := tu.Tracks(3)
	catalog := func() *tu.StubCatalog {
		return &tu.StubCatalog{
			TrendingTracks: tracks,
			Recommended:    tracks[:2],
			SearchResults:  map[string][]models.Track{"lofi": tracks[2:]},
		}
	}

	t.Run("GET state", func(t *testing.T) {
		srv, _ := newTestAPI(t, catalog())
		resp, data := do(t, http.MethodGet, srv.URL+"/api/state", "")

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.StatusCode)
		}
		if resp.Header.Get("Content-Type") != "application/json" {
			t.Errorf("unexpected content type %s", resp.Header.Get("Content-Type"))
		}

		snap := decodeSnapshot(t, data)
		if len(snap.Trending) != 3 || snap.Transport.Volume != playback.DefaultVolume {
			t.Errorf("unexpected snapshot %+v", snap)
		}
		if !strings.Contains(string(data), `"state":"idle"`) {
			t.Errorf("expected idle state, got %s", data)
		}
	})

	t.Run("GET lists", func(t *testing.T) {
		srv, _ := newTestAPI(t, catalog())

		for path, want := range map[string]int{"/api/trending": 3, "/api/recommendations": 2} {
			_, data := do(t, http.MethodGet, srv.URL+path, "")
			var body TracksResponse
			if err := json.Unmarshal(data, &body); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}
			if len(body.Tracks) != want {
				t.Errorf("%s: expected %d tracks, got %d", path, want, len(body.Tracks))
			}
		}
	})

	t.Run("GET search", func(t *testing.T) {
		srv, s := newTestAPI(t, catalog())
		resp, data := do(t, http.MethodGet, srv.URL+"/api/search?q=lofi", "")
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.StatusCode)
		}

		var body SearchResponse
		json.Unmarshal(data, &body)
		if body.Query != "lofi" || len(body.Results) != 1 || !body.Applied {
			t.Errorf("unexpected search response %+v", body)
		}
		if len(s.Snapshot().SearchResults) != 1 {
			t.Error("search should update the session")
		}

		resp, _ = do(t, http.MethodGet, srv.URL+"/api/search?q=", "")
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("expected 400 for missing query, got %d", resp.StatusCode)
		}
	})

	t.Run("POST play by id", func(t *testing.T) {
		srv, _ := newTestAPI(t, catalog())
		resp, data := do(t, http.MethodPost, srv.URL+"/api/play", `{"id":"`+tracks[1].ID+`"}`)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", resp.StatusCode, data)
		}

		snap := decodeSnapshot(t, data)
		if !snap.Player.IsCurrent(tracks[1].ID) || !snap.Player.Playing {
			t.Errorf("expected %s playing, got %+v", tracks[1].ID, snap.Player)
		}
		if snap.Player.Track.Title != tracks[1].Title {
			t.Errorf("expected track resolved from lists, got %+v", snap.Player.Track)
		}
	})

	t.Run("POST play full track", func(t *testing.T) {
		srv, _ := newTestAPI(t, catalog())
		resp, data := do(t, http.MethodPost, srv.URL+"/api/play", `{"id":"new","title":"New","artist":"Someone","duration":90}`)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", resp.StatusCode, data)
		}
		if !decodeSnapshot(t, data).Player.IsCurrent("new") {
			t.Error("expected new track current")
		}
	})

	t.Run("POST play errors", func(t *testing.T) {
		srv, _ := newTestAPI(t, catalog())

		tc := []struct {
			name string
			body string
			want int
		}{
			{name: "unknown id", body: `{"id":"missing"}`, want: http.StatusNotFound},
			{name: "empty track", body: `{}`, want: http.StatusBadRequest},
			{name: "malformed", body: `{"id":`, want: http.StatusBadRequest},
			{name: "unknown field", body: `{"id":"x","album":"y"}`, want: http.StatusBadRequest},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				resp, data := do(t, http.MethodPost, srv.URL+"/api/play", tt.body)
				if resp.StatusCode != tt.want {
					t.Errorf("expected %d, got %d: %s", tt.want, resp.StatusCode, data)
				}
				var body ErrorResponse
				if err := json.Unmarshal(data, &body); err != nil || body.Error == "" {
					t.Errorf("expected error JSON, got %s", data)
				}
			})
		}
	})

	t.Run("POST pause toggle next previous", func(t *testing.T) {
		srv, _ := newTestAPI(t, catalog())
		do(t, http.MethodPost, srv.URL+"/api/play", `{"id":"`+tracks[2].ID+`"}`)

		_, data := do(t, http.MethodPost, srv.URL+"/api/pause", "")
		if decodeSnapshot(t, data).Player.State != playback.StatePaused {
			t.Errorf("expected paused, got %s", data)
		}

		_, data = do(t, http.MethodPost, srv.URL+"/api/toggle", "")
		if decodeSnapshot(t, data).Player.State != playback.StatePlaying {
			t.Errorf("expected playing, got %s", data)
		}

		_, data = do(t, http.MethodPost, srv.URL+"/api/next", "")
		if !decodeSnapshot(t, data).Player.IsCurrent(tracks[0].ID) {
			t.Errorf("expected wrap to first track, got %s", data)
		}

		_, data = do(t, http.MethodPost, srv.URL+"/api/previous", "")
		if !decodeSnapshot(t, data).Player.IsCurrent(tracks[2].ID) {
			t.Errorf("expected wrap to last track, got %s", data)
		}
	})

	t.Run("POST stop", func(t *testing.T) {
		srv, _ := newTestAPI(t, catalog())
		do(t, http.MethodPost, srv.URL+"/api/play", `{"id":"`+tracks[1].ID+`"}`)

		resp, data := do(t, http.MethodPost, srv.URL+"/api/stop", "")
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", resp.StatusCode, data)
		}
		snap := decodeSnapshot(t, data)
		if snap.Player.State != playback.StateIdle || snap.Player.HasTrack() {
			t.Errorf("expected idle without a track, got %s", data)
		}

		resp, _ = do(t, http.MethodGet, srv.URL+"/api/stop", "")
		if resp.StatusCode != http.StatusMethodNotAllowed {
			t.Errorf("expected 405 for GET, got %d", resp.StatusCode)
		}
	})

	t.Run("POST next on empty queue", func(t *testing.T) {
		srv, _ := newTestAPI(t, &tu.StubCatalog{})

		for _, path := range []string{"/api/next", "/api/previous"} {
			resp, data := do(t, http.MethodPost, srv.URL+path, "")
			if resp.StatusCode != http.StatusConflict {
				t.Errorf("%s: expected 409, got %d", path, resp.StatusCode)
			}
			if !strings.Contains(string(data), shared.ErrEmptyQueue.Error()) {
				t.Errorf("%s: expected empty queue error, got %s", path, data)
			}
		}
	})

	t.Run("POST transport", func(t *testing.T) {
		srv, _ := newTestAPI(t, catalog())
		do(t, http.MethodPost, srv.URL+"/api/play", `{"id":"`+tracks[0].ID+`"}`)

		body := `{"seek":30,"seek_by":5,"volume":150,"toggle_like":true,"toggle_shuffle":true,"repeat":"one"}`
		resp, data := do(t, http.MethodPost, srv.URL+"/api/transport", body)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", resp.StatusCode, data)
		}

		tr := decodeSnapshot(t, data).Transport
		if tr.Position != 35 || tr.Volume != 100 || !tr.Liked || !tr.Shuffled || tr.Repeat != playback.RepeatOne {
			t.Errorf("unexpected transport %+v", tr)
		}

		_, data = do(t, http.MethodPost, srv.URL+"/api/transport", `{"cycle_repeat":true,"volume_by":-30}`)
		tr = decodeSnapshot(t, data).Transport
		if tr.Repeat != playback.RepeatOff || tr.Volume != 70 {
			t.Errorf("unexpected transport %+v", tr)
		}

		resp, _ = do(t, http.MethodPost, srv.URL+"/api/transport", `{"repeat":"sometimes"}`)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("expected 400 for bad repeat mode, got %d", resp.StatusCode)
		}
	})

	t.Run("unknown routes and methods", func(t *testing.T) {
		srv, _ := newTestAPI(t, catalog())

		resp, _ := do(t, http.MethodGet, srv.URL+"/api/nope", "")
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("expected 404, got %d", resp.StatusCode)
		}

		resp, _ = do(t, http.MethodGet, srv.URL+"/api/next", "")
		if resp.StatusCode != http.StatusMethodNotAllowed {
			t.Errorf("expected 405, got %d", resp.StatusCode)
		}

		resp, _ = do(t, http.MethodGet, srv.URL+"/healthz", "")
		if resp.StatusCode != http.StatusOK {
			t.Errorf("expected 200, got %d", resp.StatusCode)
		}
	})
}

func TestStatusFor(t *testing.T) {
	tc := map[error]int{
		shared.ErrEmptyQueue:         http.StatusConflict,
		shared.ErrTrackNotFound:      http.StatusNotFound,
		shared.ErrInvalidTrack:       http.StatusBadRequest,
		shared.ErrServiceUnavailable: http.StatusBadGateway,
		io.EOF:                       http.StatusInternalServerError,
	}
	for err, want := range tc {
		if got := StatusFor(err); got != want {
			t.Errorf("StatusFor(%v) = %d, want %d", err, got, want)
		}
	}
}

func TestServe(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to reserve port: %v", err)
	}
	addr := ln.Addr().String()
	ln.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Serve(ctx, addr, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte("ok"))
		}), shared.NewLogger(io.Discard))
	}()

	var resp *http.Response
	for range 50 {
		resp, err = http.Get("http://" + addr)
		if err == nil {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	if err != nil {
		t.Fatalf("server never came up: %v", err)
	}
	resp.Body.Close()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("expected clean shutdown, got %v", err)
		}
	case <-time.After(2 * ShutdownTimeout):
		t.Fatal("server did not shut down")
	}
}
