// Package repositories implements SQLite persistence for listening history.
//
// Playback state lives in memory; only what should survive a restart is stored here.
//
// Key Implementations:
//   - [PlayRepository] : one row per track selection, newest first
//   - [LikeRepository] : tracks marked with the like control
//   - [HistoryRecorder] : adapts both to the session recorder interfaces, logging failures instead of returning them
//
// Schemas are applied by [shared.RunMigrations] before a repository is used.
package repositories
