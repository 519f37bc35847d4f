// Package tui is the terminal frontend. The Bubble Tea update loop is the
// cooperative scheduler of the client: every remote fetch runs as a command
// and resumes the program through a message, so nothing here blocks on the
// network.
package tui

import (
	"context"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"pixshelf/internal/api"
	"pixshelf/internal/nav"
)

// Screen selects which view owns the window.
type Screen int

const (
	ScreenLogin Screen = iota
	ScreenBrowser
	ScreenSearch
	ScreenViewer
	ScreenDenied
	ScreenFatal
)

// App is the root model. It owns the navigation history, the API client and
// the per-screen state, and applies the session-guard policy to every fetch
// result before the owning screen sees it.
type App struct {
	client     *api.Client
	logger     *slog.Logger
	history    *nav.History
	keys       KeyMap
	previewMax int

	screen  Screen
	login   loginState
	browser browserState
	search  searchState
	viewer  viewerState

	width  int
	height int
}

func NewApp(client *api.Client, logger *slog.Logger, previewMax int) *App {
	return &App{
		client:     client,
		logger:     logger,
		history:    nav.NewHistory(),
		keys:       DefaultKeyMap(),
		previewMax: previewMax,
		screen:     ScreenBrowser,
		login:      newLoginState(),
		browser:    newBrowserState(),
		search:     newSearchState(),
		width:      80,
		height:     24,
	}
}

// Init issues the initial root listing fetch. If the persisted session is
// gone the guard bounces us to the login screen.
func (a *App) Init() tea.Cmd {
	a.browser.loading = true
	return tea.Batch(a.loadListing(), a.browser.spinner.Tick)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
	}

	if cmd, handled := a.guard(msg); handled {
		return a, cmd
	}

	switch a.screen {
	case ScreenLogin:
		return a, a.updateLogin(msg)
	case ScreenBrowser:
		return a, a.updateBrowser(msg)
	case ScreenSearch:
		return a, a.updateSearch(msg)
	case ScreenViewer:
		return a, a.updateViewer(msg)
	case ScreenDenied, ScreenFatal:
		return a, a.updateTerminal(msg)
	}
	return a, nil
}

func (a *App) View() string {
	switch a.screen {
	case ScreenLogin:
		return a.viewLogin()
	case ScreenBrowser:
		return a.viewBrowser()
	case ScreenSearch:
		return a.viewSearch()
	case ScreenViewer:
		return a.viewViewer()
	case ScreenDenied:
		return deniedStyle.Render("Access Denied")
	case ScreenFatal:
		return errorStyle.Padding(1, 2).Render("Internal Server Error")
	}
	return ""
}

// guard applies the cross-cutting authorization policy, in priority order,
// to every fetch result. Unauthorized forces the login boundary no matter
// which component issued the request; forbidden replaces the reading views
// with a terminal access-denied state; anything else stays with the owning
// component.
func (a *App) guard(msg tea.Msg) (tea.Cmd, bool) {
	var err error
	readFetch := false
	switch m := msg.(type) {
	case listingMsg:
		err, readFetch = m.err, true
	case searchMsg:
		err, readFetch = m.err, true
	case folderCreatedMsg:
		err = m.err
	case uploadedMsg:
		err = m.err
	default:
		return nil, false
	}
	if err == nil {
		return nil, false
	}

	switch {
	case api.IsUnauthorized(err):
		a.logger.Warn("session expired, forcing login", "error", err)
		a.forceLogin()
		return nil, true
	case api.IsForbidden(err) && readFetch:
		a.logger.Warn("access denied", "error", err)
		a.screen = ScreenDenied
		return nil, true
	}

	if _, isListing := msg.(listingMsg); isListing {
		// A listing failure the guard does not claim takes down the whole
		// view, not just a status line.
		a.logger.Error("listing fetch failed", "error", err)
		a.screen = ScreenFatal
		return nil, true
	}
	return nil, false
}

// forceLogin abandons all partially loaded view state and shows the login
// boundary.
func (a *App) forceLogin() {
	a.browser.upload.session.Close()
	a.browser = newBrowserState()
	a.search = newSearchState()
	a.viewer = viewerState{}
	a.history = nav.NewHistory()
	a.login = newLoginState()
	a.screen = ScreenLogin
}

// updateTerminal handles the two dead-end screens. Access denied offers no
// retry; quitting is all that is left.
func (a *App) updateTerminal(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "q" {
		return tea.Quit
	}
	return nil
}

// goBack pops the history and restores whichever screen the previous
// location belongs to. Landing back on a folder always refetches; snapshots
// are not cached across navigations.
func (a *App) goBack() tea.Cmd {
	if !a.history.Back() {
		return nil
	}
	if a.history.Current().Path == nav.PathSearch {
		a.screen = ScreenSearch
		return nil
	}
	a.screen = ScreenBrowser
	return a.reloadListing()
}

// loadListing fetches the children of the folder the URL points at. Each
// navigation issues a fresh fetch; snapshots are never reused across
// locations.
func (a *App) loadListing() tea.Cmd {
	folderID := a.history.CurrentFolder()
	client := a.client
	return func() tea.Msg {
		listing, err := client.ListFolder(context.Background(), folderID)
		return listingMsg{folderID: folderID, listing: listing, err: err}
	}
}
