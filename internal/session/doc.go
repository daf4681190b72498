// Package session coordinates the catalog, the playback state machine and the transport controls.
//
// A [Session] owns the lists the views display (trending, recommendations and search results)
// and is the single entry point for user intents coming from the TUI or the HTTP control API:
//
//   - [Session.Load] fetches the home lists
//   - [Session.OnSearch] runs a search, guarded by a sequence number so only the latest search lands
//   - [Session.OnPlay], [Session.OnPause], [Session.OnPlayPause], [Session.OnCardPlayPause]
//   - [Session.OnNext], [Session.OnPrevious] navigate the active list
//   - [Session.OnSeek], [Session.OnVolume], [Session.OnToggleLike], [Session.OnToggleShuffle], [Session.OnCycleRepeat]
//
// Renderers read state through [Session.Snapshot], which never aliases internal slices.
package session
