package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"pixshelf/internal/browse"
)

// searchState is the cross-folder search screen: a free-text input debounced
// into fetches, with the active term mirrored into the URL.
type searchState struct {
	input     textinput.Model
	debouncer browse.Debouncer
	state     browse.SearchState
	cursor    int
	loading   bool
	spinner   spinner.Model
}

func newSearchState() searchState {
	ti := textinput.New()
	ti.Placeholder = "Search images..."
	ti.CharLimit = 200

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = statusStyle

	return searchState{input: ti, spinner: sp}
}

func (a *App) updateSearch(msg tea.Msg) tea.Cmd {
	s := &a.search

	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		if s.loading {
			return cmd
		}
		return nil

	case debounceMsg:
		// Only the tick for the latest keystroke acts; earlier ones are
		// obsolete the moment the input changed again.
		if !s.debouncer.Current(msg.token) {
			return nil
		}
		return a.fireSearch()

	case searchMsg:
		if msg.err != nil {
			// 401 is claimed by the guard before this point; anything else
			// clears the result set for this generation.
			a.logger.Error("search failed", "error", msg.err)
			s.state.Fail(msg.gen)
			s.loading = false
			return nil
		}
		if s.state.Resolve(msg.gen, msg.images) {
			s.loading = false
			s.cursor = 0
		}
		return nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	switch keyMsg.String() {
	case "esc":
		return a.goBack()
	case "up":
		if s.cursor > 0 {
			s.cursor--
		}
		return nil
	case "down":
		if s.cursor < len(s.state.Results())-1 {
			s.cursor++
		}
		return nil
	case "enter":
		results := s.state.Results()
		if s.cursor < len(results) {
			return a.gotoViewer(results[s.cursor])
		}
		return nil
	}

	before := s.input.Value()
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(keyMsg)
	if s.input.Value() != before {
		token := s.debouncer.Bump()
		return tea.Batch(cmd, a.debounceTick(token))
	}
	return cmd
}

// debounceTick schedules the quiet-interval timer for one input change.
func (a *App) debounceTick(token int) tea.Cmd {
	return tea.Tick(browse.DebounceInterval, func(time.Time) tea.Msg {
		return debounceMsg{token: token}
	})
}

// fireSearch runs one debounced term: the URL's q parameter is rewritten
// (replace, not push) whatever happens, and a fetch goes out only for a
// non-empty term, tagged with its generation.
func (a *App) fireSearch() tea.Cmd {
	s := &a.search
	term := strings.TrimSpace(s.input.Value())
	a.history.SetSearchTerm(term)

	gen, fetch := s.state.Begin(term)
	if !fetch {
		s.loading = false
		return nil
	}
	s.loading = true

	client := a.client
	return tea.Batch(
		func() tea.Msg {
			images, err := client.SearchImages(context.Background(), term)
			return searchMsg{gen: gen, images: images, err: err}
		},
		s.spinner.Tick,
	)
}

func (a *App) viewSearch() string {
	s := &a.search

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Search - " + a.history.Link(a.client.BaseURL())))
	sb.WriteString("\n")
	sb.WriteString(s.input.View())
	sb.WriteString("\n\n")

	switch {
	case s.loading:
		sb.WriteString(statusStyle.Render(fmt.Sprintf("%s Searching...", s.spinner.View())))
	case s.state.Results() == nil:
		sb.WriteString(mutedStyle.Render("Type to search images by name."))
	case len(s.state.Results()) == 0:
		sb.WriteString(mutedStyle.Render("No images found"))
	default:
		for i, img := range s.state.Results() {
			if i == s.cursor {
				sb.WriteString(selectedStyle.Render("> " + img.Name))
			} else {
				sb.WriteString("  " + imageStyle.Render("🖼 ") + img.Name)
			}
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\n\n")
	sb.WriteString(mutedStyle.Render("enter view • esc back"))
	return sb.String()
}
