// Built-in fixture [Catalog] implementation
package services

import (
	"context"
	"math/rand/v2"

	"github.com/desertthunder/tunestream/internal/models"
)

var fixtureTracks = []models.Track{
	{
		ID:        "1",
		Title:     "Blinding Lights",
		Artist:    "The Weeknd",
		Thumbnail: "https://i.ytimg.com/vi/4NRXx6U8ABQ/mqdefault.jpg",
		Duration:  200,
	},
	{
		ID:        "2",
		Title:     "Shape of You",
		Artist:    "Ed Sheeran",
		Thumbnail: "https://i.ytimg.com/vi/JGwWNGJdvx8/mqdefault.jpg",
		Duration:  234,
	},
	{
		ID:        "3",
		Title:     "Someone Like You",
		Artist:    "Adele",
		Thumbnail: "https://i.ytimg.com/vi/hLQl3WQQoQ0/mqdefault.jpg",
		Duration:  285,
	},
	{
		ID:        "4",
		Title:     "Bohemian Rhapsody",
		Artist:    "Queen",
		Thumbnail: "https://i.ytimg.com/vi/fJ9rUzIMcZQ/mqdefault.jpg",
		Duration:  355,
	},
	{
		ID:        "5",
		Title:     "Hotel California",
		Artist:    "Eagles",
		Thumbnail: "https://i.ytimg.com/vi/09839DpTctU/mqdefault.jpg",
		Duration:  391,
	},
}

// Shuffler permutes tracks in place.
type Shuffler func([]models.Track)

func randomShuffle(tracks []models.Track) {
	rand.Shuffle(len(tracks), func(i, j int) {
		tracks[i], tracks[j] = tracks[j], tracks[i]
	})
}

// MockCatalog implements [Catalog] over a fixed in-memory track list.
type MockCatalog struct {
	tracks  []models.Track
	shuffle Shuffler
}

// NewMockCatalog creates a catalog over the built-in five track fixture.
func NewMockCatalog() *MockCatalog {
	return NewMockCatalogWith(fixtureTracks, nil)
}

// NewMockCatalogWith creates a catalog over tracks; a nil shuffle uses an unseeded random permutation.
func NewMockCatalogWith(tracks []models.Track, shuffle Shuffler) *MockCatalog {
	if shuffle == nil {
		shuffle = randomShuffle
	}
	return &MockCatalog{tracks: models.Clone(tracks), shuffle: shuffle}
}

// Name returns the catalog name.
func (m *MockCatalog) Name() string {
	return "Mock"
}

// Search returns catalog tracks whose title or artist contains query, ignoring case.
//
// No match yields an empty slice.
func (m *MockCatalog) Search(_ context.Context, query string) []models.Track {
	results := []models.Track{}
	for _, t := range m.tracks {
		if t.Matches(query) {
			results = append(results, t)
		}
	}
	return results
}

// Trending returns the whole catalog in fixed order.
func (m *MockCatalog) Trending(_ context.Context) []models.Track {
	return models.Clone(m.tracks)
}

// Recommendations returns the whole catalog in a fresh shuffled order.
func (m *MockCatalog) Recommendations(_ context.Context) []models.Track {
	tracks := models.Clone(m.tracks)
	m.shuffle(tracks)
	return tracks
}
