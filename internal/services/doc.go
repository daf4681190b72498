// Package services defines the [Catalog] interface, the single seam between TuneStream's views and a track source.
//
// # Catalog Interface
//
// Every implementation answers three questions: what matches a query, what is trending, and what to recommend.
// None of them return errors; a catalog degrades to "show something" instead.
//
// # Mock Catalog
//
// [MockCatalog] serves the built-in five track fixture.
// Search filters by case-insensitive substring over title or artist.
// Recommendations are the fixture in a fresh random order on every call, so callers must compare them as sets.
//
// # YouTube Catalog
//
// [YouTubeCatalog] issues one GET to the YouTube Data API v3 search endpoint per query:
//
//	GET {base}/search?part=snippet&maxResults=25&q={query} music&type=video&key={key}
//
// Each item maps to a [models.Track]; the API reports no duration on search, so one is drawn from [120, 420) seconds.
// Requests are throttled with a [rate.Limiter], bounded by a client timeout and, when an access token is configured,
// authorized through an [oauth2] static token source.
//
// # Error Handling
//
// Transport, status and decode failures wrap [shared.ErrTransport].
// [YouTubeCatalog.Search] logs them and returns the full mock catalog; zero matches are not a failure and stay empty.
package services
