// Package models defines the track record shared by every TuneStream layer.
//
// A [Track] is an immutable value describing one playable item:
//   - [Track.ID] : unique within one result set, not across catalog calls
//   - [Track.Title], [Track.Artist] : display strings
//   - [Track.Thumbnail] : image URI
//   - [Track.Duration] : whole seconds
//
// Tracks are copied by value into playback state, so a "current track" is never a lookup by ID into a live list.
package models
