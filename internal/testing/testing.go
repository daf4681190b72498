// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"sync"
	"testing"

	"github.com/desertthunder/tunestream/internal/models"
)

// Tracks returns n distinct tracks with ids "ta", "tb", and so on.
func Tracks(n int) []models.Track {
	tracks := make([]models.Track, n)
	for i := range tracks {
		id := string(rune('a' + i))
		tracks[i] = models.Track{
			ID:        "t" + id,
			Title:     "Title " + id,
			Artist:    "Artist " + id,
			Thumbnail: "https://example.com/" + id + ".jpg",
			Duration:  180 + i,
		}
	}
	return tracks
}

// StubCatalog is a test double for services.Catalog with canned results and call counters.
type StubCatalog struct {
	mu               sync.Mutex
	SearchResults    map[string][]models.Track
	TrendingTracks   []models.Track
	Recommended      []models.Track
	SearchCalls      []string
	TrendingCalls    int
	RecommendCalls   int
	BeforeSearchHook func(query string)
}

func (s *StubCatalog) Search(_ context.Context, query string) []models.Track {
	if s.BeforeSearchHook != nil {
		s.BeforeSearchHook(query)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.SearchCalls = append(s.SearchCalls, query)
	return models.Clone(s.SearchResults[query])
}

func (s *StubCatalog) Trending(context.Context) []models.Track {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.TrendingCalls++
	return models.Clone(s.TrendingTracks)
}

func (s *StubCatalog) Recommendations(context.Context) []models.Track {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.RecommendCalls++
	return models.Clone(s.Recommended)
}

func (s *StubCatalog) Name() string { return "stub" }

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing and records the last request
type MockRoundTripper struct {
	response *http.Response
	err      error
	Request  *http.Request
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	m.Request = req
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

var _ io.ReadCloser = (*FCloser)(nil)

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}
