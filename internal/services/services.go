// package services defines interface Catalog for browsing and searching tracks
package services

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tunestream/internal/models"
	"github.com/desertthunder/tunestream/internal/shared"
)

// RecommendationLimit is how many recommendations the home view keeps after shuffling.
const RecommendationLimit = 10

// Catalog defines the interface for track sources (built-in fixture, YouTube Data API).
type Catalog interface {
	// Search returns tracks matching query in source order. It never fails; see the implementation for its fallback.
	Search(ctx context.Context, query string) []models.Track

	// Trending returns the trending sequence in a stable order.
	Trending(ctx context.Context) []models.Track

	// Recommendations returns recommended tracks. Order is not stable across calls.
	Recommendations(ctx context.Context) []models.Track

	// Name returns the name of the catalog (e.g., "Mock", "YouTube")
	Name() string
}

// NewCatalog returns the live YouTube catalog when credentials are configured and mock mode is off, otherwise the mock catalog.
func NewCatalog(cfg shared.YouTubeConfig, logger *log.Logger) Catalog {
	mock := NewMockCatalog()
	if !cfg.Live() {
		return mock
	}

	return NewYouTubeCatalog(YouTubeOpts{
		APIKey:            cfg.APIKey,
		OAuthToken:        cfg.OAuthToken,
		BaseURL:           cfg.BaseURL,
		Timeout:           cfg.Timeout(),
		RequestsPerSecond: cfg.RequestsPerSecond,
		Logger:            logger,
		Fallback:          mock,
	})
}
