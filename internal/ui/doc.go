// Package ui implements an interactive terminal player using bubbletea's Elm architecture.
//
// The TUI has two views:
//  1. [HomeView] : trending and recommended tracks side by side
//  2. [SearchView] : a search input above the results of the latest search
//
// A player bar under either view shows the current track, its progress, volume and the like/shuffle/repeat indicators.
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
// All state lives in a session.Session shared with the HTTP control API; the model only keeps view concerns (focus, sizes, input).
// Searches run as commands and report back with their sequence number so a slow search never overwrites a newer one.
//
// Keyboard bindings (/, enter, space, n/p, ←/→, +/-, l, s, r, o, tab, esc, q) are listed with charmbracelet/bubbles/help.
package ui
