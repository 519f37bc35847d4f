package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"pixshelf/internal/api"
	"pixshelf/internal/preview"
)

// viewerState is the single-image view reached from a listing or a search
// result. Authorization failures here render in place, matching the rest of
// the image view's local error handling; only browsing fetches force
// navigation.
type viewerState struct {
	id      string
	name    string
	loading bool
	img     *preview.Preview
	errText string
}

// fetchImage downloads the image's bytes by ID.
func (a *App) fetchImage(id string) tea.Cmd {
	client := a.client
	return func() tea.Msg {
		data, mime, err := client.FetchImage(context.Background(), id)
		return imageMsg{id: id, data: data, mime: mime, err: err}
	}
}

func (a *App) updateViewer(msg tea.Msg) tea.Cmd {
	v := &a.viewer

	switch msg := msg.(type) {
	case imageMsg:
		if msg.id != v.id {
			return nil
		}
		v.loading = false
		if msg.err != nil {
			a.logger.Error("image fetch failed", "id", msg.id, "error", msg.err)
			switch {
			case errors.Is(msg.err, api.ErrUnauthorized):
				v.errText = "Not Logged in"
			case errors.Is(msg.err, api.ErrForbidden):
				v.errText = "Access Denied"
			default:
				v.errText = "Image not found"
			}
			return nil
		}
		img, err := preview.FromBytes(msg.data, a.viewerWidth())
		if err != nil {
			a.logger.Error("image render failed", "id", msg.id, "error", err)
			v.errText = "Image not found"
			return nil
		}
		v.img = img
		return nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "backspace", "q":
			if v.img != nil {
				v.img.Release()
				v.img = nil
			}
			return a.goBack()
		}
	}
	return nil
}

func (a *App) viewerWidth() int {
	w := a.width - 4
	if w < 8 {
		w = 8
	}
	if w > 100 {
		w = 100
	}
	return w
}

func (a *App) viewViewer() string {
	v := &a.viewer

	var sb strings.Builder
	sb.WriteString(titleStyle.Render(fmt.Sprintf("%s - %s", v.name, a.history.Link(a.client.BaseURL()))))
	sb.WriteString("\n")

	switch {
	case v.loading:
		sb.WriteString(statusStyle.Render("Loading..."))
	case v.errText != "":
		sb.WriteString(errorStyle.Render(v.errText))
	case v.img != nil:
		sb.WriteString(v.img.View())
	}

	sb.WriteString("\n\n")
	sb.WriteString(mutedStyle.Render("esc back"))
	return sb.String()
}
