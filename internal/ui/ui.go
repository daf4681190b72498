package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/tunestream/internal/models"
	"github.com/desertthunder/tunestream/internal/session"
	"github.com/desertthunder/tunestream/internal/shared"
)

const (
	seekStep   = 5
	volumeStep = 5
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	HomeView ViewState = iota
	SearchView
)

// pane identifies which list on the home view has focus.
type pane int

const (
	trendingPane pane = iota
	recommendedPane
)

// Opener opens a URL outside the terminal.
type Opener func(url string) error

// Model represents the TUI application state.
type Model struct {
	ctx     context.Context
	session *session.Session
	logger  *log.Logger
	open    Opener

	view      ViewState
	focus     pane
	typing    bool
	width     int
	height    int
	status    string
	statusErr bool

	trending    list.Model
	recommended list.Model
	results     list.Model
	input       textinput.Model
	help        help.Model
	keys        keyMap
}

// NewModel creates a new TUI model over s. A nil logger discards output.
func NewModel(ctx context.Context, s *session.Session, logger *log.Logger) *Model {
	if logger == nil {
		logger = shared.NewLogger(io.Discard)
	}

	input := textinput.New()
	input.Placeholder = "Search for songs, artists..."
	input.Prompt = "/ "
	input.CharLimit = 120

	return &Model{
		ctx:         ctx,
		session:     s,
		logger:      shared.WithLogger(logger, "component", "ui"),
		open:        shared.OpenBrowser,
		view:        HomeView,
		trending:    newTrackList("Trending"),
		recommended: newTrackList("Recommended"),
		results:     newTrackList("Results"),
		input:       input,
		help:        help.New(),
		keys:        newKeyMap(),
	}
}

// Init initializes the TUI by loading the home lists.
func (m *Model) Init() tea.Cmd {
	return m.loadHome()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		if m.typing {
			return m.handleInputKeys(msg)
		}
		return m.handleKeys(msg)

	case Msg:
		return m.handleMsg(msg)
	}

	return m, nil
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgHomeLoaded:
		m.refresh()
	case MsgSearchCompleted:
		res := msg.data.(searchResult)
		if !m.session.CompleteSearch(res.seq, res.results) {
			return m, nil
		}
		m.setStatus(fmt.Sprintf("%d results for %q", len(res.results), res.query), false)
		m.results.ResetSelected()
		m.refresh()
	case MsgBrowserOpened:
		if err, _ := msg.data.(error); err != nil {
			m.setStatus(err.Error(), true)
		}
	}
	return m, nil
}

// handleInputKeys routes keys to the search input while it has focus.
func (m *Model) handleInputKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.typing = false
		m.input.Blur()
		if m.session.Snapshot().Query == "" {
			m.view = HomeView
		}
		return m, nil
	case "enter":
		m.typing = false
		m.input.Blur()
		return m, m.submitSearch(m.input.Value())
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.search):
		m.view = SearchView
		m.typing = true
		m.input.SetValue(m.session.Snapshot().Query)
		m.input.CursorEnd()
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.back):
		if m.view == SearchView {
			m.session.ClearSearch()
			m.input.SetValue("")
			m.view = HomeView
			m.setStatus("", false)
			m.refresh()
		}
		return m, nil
	case key.Matches(msg, m.keys.focus):
		if m.view == HomeView {
			m.focus = (m.focus + 1) % 2
		}
		return m, nil
	case key.Matches(msg, m.keys.help):
		m.help.ShowAll = !m.help.ShowAll
		m.resize()
		return m, nil
	case key.Matches(msg, m.keys.enter):
		if track, ok := m.selected(); ok {
			m.report(m.session.OnCardPlayPause(track))
		}
	case key.Matches(msg, m.keys.playPause):
		m.session.OnPlayPause()
	case key.Matches(msg, m.keys.next):
		_, err := m.session.OnNext()
		m.report(err)
	case key.Matches(msg, m.keys.previous):
		_, err := m.session.OnPrevious()
		m.report(err)
	case key.Matches(msg, m.keys.seekBack):
		m.session.OnSeekBy(-seekStep)
	case key.Matches(msg, m.keys.seekFwd):
		m.session.OnSeekBy(seekStep)
	case key.Matches(msg, m.keys.volumeUp):
		m.session.OnVolumeBy(volumeStep)
	case key.Matches(msg, m.keys.volumeDown):
		m.session.OnVolumeBy(-volumeStep)
	case key.Matches(msg, m.keys.like):
		m.session.OnToggleLike()
	case key.Matches(msg, m.keys.shuffle):
		m.session.OnToggleShuffle()
	case key.Matches(msg, m.keys.repeat):
		m.session.OnCycleRepeat()
	case key.Matches(msg, m.keys.open):
		return m, m.openCurrent()
	default:
		var cmd tea.Cmd
		active := m.activeList()
		*active, cmd = active.Update(msg)
		return m, cmd
	}

	m.refresh()
	return m, nil
}

// report shows err in the status line, or clears a previous error.
func (m *Model) report(err error) {
	switch {
	case errors.Is(err, shared.ErrEmptyQueue):
		m.setStatus("Nothing to play: the list is empty", true)
	case err != nil:
		m.logger.Error("playback action failed", "error", err)
		m.setStatus(err.Error(), true)
	case m.statusErr:
		m.setStatus("", false)
	}
}

func (m *Model) setStatus(s string, isErr bool) {
	m.status = s
	m.statusErr = isErr
}

// activeList returns the list that receives cursor movement.
func (m *Model) activeList() *list.Model {
	if m.view == SearchView {
		return &m.results
	}
	if m.focus == recommendedPane {
		return &m.recommended
	}
	return &m.trending
}

func (m *Model) selected() (models.Track, bool) {
	item, ok := m.activeList().SelectedItem().(trackItem)
	if !ok {
		return models.Track{}, false
	}
	return item.track, true
}

// refresh rebuilds list items from the session so play markers stay current.
func (m *Model) refresh() {
	snap := m.session.Snapshot()
	m.trending.SetItems(trackItems(snap.Trending, snap.Player))
	m.recommended.SetItems(trackItems(snap.Recommendations, snap.Player))
	m.results.SetItems(trackItems(snap.SearchResults, snap.Player))
	m.results.Title = "Results"
	if snap.Query != "" {
		m.results.Title = fmt.Sprintf("Results for %q", snap.Query)
	}
}

func (m *Model) resize() {
	if m.width == 0 || m.height == 0 {
		return
	}

	chrome := 6 + lipgloss.Height(m.renderHelp())
	listHeight := max(m.height-chrome-4, 3)
	paneWidth := max(m.width/2-4, 10)

	m.trending.SetSize(paneWidth, listHeight)
	m.recommended.SetSize(paneWidth, listHeight)
	m.results.SetSize(max(m.width-4, 10), listHeight-2)
	m.input.Width = max(m.width-8, 10)
	m.help.Width = m.width
}

func (m *Model) loadHome() tea.Cmd {
	return func() tea.Msg {
		m.session.Load(m.ctx)
		return homeLoadedMsg()
	}
}

// submitSearch starts a search command; a blank query returns to the home view.
func (m *Model) submitSearch(query string) tea.Cmd {
	query = strings.TrimSpace(query)
	if query == "" {
		m.session.ClearSearch()
		m.view = HomeView
		m.refresh()
		return nil
	}

	seq := m.session.BeginSearch(query)
	m.setStatus(fmt.Sprintf("Searching for %q...", query), false)

	return func() tea.Msg {
		return searchCompletedMsg(seq, query, m.session.Search(m.ctx, query))
	}
}

func (m *Model) openCurrent() tea.Cmd {
	cur := m.session.Snapshot().Player.Track
	if cur == nil {
		m.setStatus("Select a song first", true)
		return nil
	}

	url := shared.WatchURL(cur.ID)
	return func() tea.Msg {
		return browserOpenedMsg(m.open(url))
	}
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	snap := m.session.Snapshot()

	header := styles.title.Render("♫ TuneStream") + "  " + styles.muted.Render(snap.Source)

	var body string
	switch m.view {
	case SearchView:
		body = m.renderSearch(snap)
	default:
		body = m.renderHome()
	}

	status := ""
	if m.status != "" {
		if m.statusErr {
			status = styles.err.Render(m.status)
		} else {
			status = styles.muted.Render(m.status)
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		body,
		renderPlayerBar(snap, m.width),
		status,
		m.renderHelp(),
	)
}

func (m *Model) renderHome() string {
	left, right := styles.pane, styles.pane
	if m.focus == trendingPane {
		left = styles.focused
	} else {
		right = styles.focused
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		left.Render(m.trending.View()),
		right.Render(m.recommended.View()),
	)
}

func (m *Model) renderSearch(snap session.Snapshot) string {
	results := m.results.View()
	switch {
	case snap.Searching:
		results = styles.muted.Render("Searching...")
	case len(snap.SearchResults) == 0 && snap.Query != "":
		results = styles.warn.Render(fmt.Sprintf("No results for %q", snap.Query))
	case snap.Query == "":
		results = styles.muted.Render("Type a query and press enter")
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.input.View(), styles.focused.Render(results))
}

func (m *Model) renderHelp() string {
	if m.typing {
		enter := key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "search"))
		return styles.help.Render(m.help.ShortHelpView([]key.Binding{enter, m.keys.back}))
	}
	return styles.help.Render(m.help.View(m.keys))
}

// Run starts the TUI on the alternate screen and blocks until the user quits or ctx is canceled.
func Run(ctx context.Context, s *session.Session, logger *log.Logger) error {
	p := tea.NewProgram(NewModel(ctx, s, logger), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}
