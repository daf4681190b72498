// Package playback implements the playback/queue state machine and the player transport view-model.
//
// # Player
//
// [Player] owns the current track and the play/pause flag. It has three states:
//
//	Idle    no current track, not playing
//	Paused  current track set, not playing
//	Playing current track set, playing
//
// Playing without a current track is unreachable: [Player.TogglePlayPause] is a no-op while Idle.
//
// # Navigation
//
// [Player.Next] and [Player.Previous] step through an active list that the caller computes with [ActiveList]
// on every call (search results when there are any, otherwise trending). The current track is located by id;
// a track missing from the list counts as index -1, so Next lands on the first entry and Previous on the last.
// Both force Playing. An empty list returns [shared.ErrEmptyQueue] and leaves the state untouched.
//
// # Transport
//
// [Transport] holds player-local controls: seek position, volume, like, shuffle and repeat mode.
// Shuffle and repeat are presentation flags only; they do not reorder navigation.
package playback
