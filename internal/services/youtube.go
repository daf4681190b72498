// YouTube Data API v3 [Catalog] implementation
//
// Only the search endpoint is used; trending and recommendations come from the fallback catalog.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tunestream/internal/models"
	"github.com/desertthunder/tunestream/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

const (
	defaultYTBaseURL  string = "https://www.googleapis.com/youtube/v3"
	defaultYTTimeout         = 10 * time.Second
	searchMaxResults         = 25
	minMockDuration          = 120
	mockDurationRange        = 300
)

// YouTubeThumbnail represents one thumbnail size of a search result.
type YouTubeThumbnail struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// YouTubeSearchItem represents one item of a search.list response.
type YouTubeSearchItem struct {
	ID struct {
		Kind    string `json:"kind"`
		VideoID string `json:"videoId"`
	} `json:"id"`
	Snippet struct {
		Title        string `json:"title"`
		ChannelTitle string `json:"channelTitle"`
		Thumbnails   struct {
			Default YouTubeThumbnail `json:"default"`
			Medium  YouTubeThumbnail `json:"medium"`
			High    YouTubeThumbnail `json:"high"`
		} `json:"thumbnails"`
	} `json:"snippet"`
}

// YouTubeSearchResponse is the subset of the search.list response TuneStream reads.
type YouTubeSearchResponse struct {
	Items []YouTubeSearchItem `json:"items"`
}

type youtubeError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// YouTubeOpts contains configuration for [NewYouTubeCatalog].
type YouTubeOpts struct {
	APIKey            string
	OAuthToken        string
	BaseURL           string
	Timeout           time.Duration
	RequestsPerSecond float64
	HTTPClient        *http.Client
	Logger            *log.Logger
	Fallback          Catalog
	Durations         func() int // Durations supplies the placeholder duration of each result
}

// YouTubeCatalog implements [Catalog] against the YouTube Data API.
type YouTubeCatalog struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
	fallback   Catalog
	durations  func() int
	logger     *log.Logger
}

// NewYouTubeCatalog creates a live catalog. Zero-valued options take defaults.
func NewYouTubeCatalog(opts YouTubeOpts) *YouTubeCatalog {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultYTBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultYTTimeout
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Fallback == nil {
		opts.Fallback = NewMockCatalog()
	}
	if opts.Durations == nil {
		opts.Durations = randomDuration
	}

	limit := rate.Inf
	if opts.RequestsPerSecond > 0 {
		limit = rate.Limit(opts.RequestsPerSecond)
	}

	return &YouTubeCatalog{
		baseURL:    opts.BaseURL,
		apiKey:     opts.APIKey,
		httpClient: newHTTPClient(opts.HTTPClient, opts.OAuthToken, opts.Timeout),
		limiter:    rate.NewLimiter(limit, 1),
		fallback:   opts.Fallback,
		durations:  opts.Durations,
		logger:     shared.WithLogger(opts.Logger, "catalog", "youtube"),
	}
}

// newHTTPClient copies base (or a fresh client), applies timeout and, when token is set, wraps the transport with a bearer token source.
func newHTTPClient(base *http.Client, token string, timeout time.Duration) *http.Client {
	var client http.Client
	if base != nil {
		client = *base
	}

	if token != "" {
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, &client)
		src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
		client = *oauth2.NewClient(ctx, src)
	}

	client.Timeout = timeout
	return &client
}

func randomDuration() int {
	return rand.IntN(mockDurationRange) + minMockDuration
}

// Name returns the catalog name.
func (y *YouTubeCatalog) Name() string {
	return "YouTube"
}

// Search queries the search endpoint for "{query} music" videos.
//
// On any transport, status or decode failure the full fallback trending list is returned instead.
func (y *YouTubeCatalog) Search(ctx context.Context, query string) []models.Track {
	tracks, err := y.SearchVideos(ctx, query)
	if err != nil {
		y.logger.Warn("search failed, using fallback catalog", "query", query, "error", err)
		return y.fallback.Trending(ctx)
	}
	return tracks
}

// Trending delegates to the fallback catalog.
func (y *YouTubeCatalog) Trending(ctx context.Context) []models.Track {
	return y.fallback.Trending(ctx)
}

// Recommendations delegates to the fallback catalog.
func (y *YouTubeCatalog) Recommendations(ctx context.Context) []models.Track {
	return y.fallback.Recommendations(ctx)
}

// SearchVideos performs the search request and maps every item to a track, surfacing failures as [shared.ErrTransport].
func (y *YouTubeCatalog) SearchVideos(ctx context.Context, query string) ([]models.Track, error) {
	if err := y.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: rate limiter: %v", shared.ErrTransport, err)
	}

	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("maxResults", strconv.Itoa(searchMaxResults))
	params.Set("q", query+" music")
	params.Set("type", "video")
	if y.apiKey != "" {
		params.Set("key", y.apiKey)
	}

	var resp YouTubeSearchResponse
	if err := y.doRequest(ctx, "/search", params, &resp); err != nil {
		return nil, err
	}

	if resp.Items == nil {
		return nil, fmt.Errorf("%w: response has no items", shared.ErrTransport)
	}

	tracks := make([]models.Track, 0, len(resp.Items))
	for _, item := range resp.Items {
		// channels and playlists match too; only videos are playable
		if item.ID.VideoID == "" {
			y.logger.Debug("skipping search item without video id", "kind", item.ID.Kind)
			continue
		}
		tracks = append(tracks, models.Track{
			ID:        item.ID.VideoID,
			Title:     item.Snippet.Title,
			Artist:    item.Snippet.ChannelTitle,
			Thumbnail: item.Snippet.Thumbnails.Medium.URL,
			Duration:  y.durations(),
		})
	}

	y.logger.Debug("search complete", "query", query, "results", len(tracks))
	return tracks, nil
}

func (y *YouTubeCatalog) doRequest(ctx context.Context, endpoint string, params url.Values, result any) error {
	apiURL := y.baseURL + endpoint + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", shared.ErrTransport, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := y.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: request failed: %v", shared.ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp youtubeError
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Error.Message != "" {
			return fmt.Errorf("%w: youtube API error (status %d): %s", shared.ErrTransport, resp.StatusCode, errResp.Error.Message)
		}
		return fmt.Errorf("%w: youtube API error: status %d", shared.ErrTransport, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", shared.ErrTransport, err)
	}

	return nil
}
