package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/tunestream/internal/models"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgHomeLoaded MsgKind = iota
	MsgSearchCompleted
	MsgBrowserOpened
)

type searchResult struct {
	seq     uint64
	query   string
	results []models.Track
}

// homeLoadedMsg is the constructor for [MsgHomeLoaded]
func homeLoadedMsg() Msg {
	return Msg{kind: MsgHomeLoaded}
}

// searchCompletedMsg is the constructor for [MsgSearchCompleted]
func searchCompletedMsg(seq uint64, query string, results []models.Track) Msg {
	return Msg{kind: MsgSearchCompleted, data: searchResult{seq: seq, query: query, results: results}}
}

// browserOpenedMsg is the constructor for [MsgBrowserOpened]
func browserOpenedMsg(err error) Msg {
	return Msg{kind: MsgBrowserOpened, data: err}
}
