package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"pixshelf/internal/api"
	"pixshelf/internal/nav"
)

// loginState is the authentication boundary: plain field capture and submit
// for login and registration.
type loginState struct {
	username    textinput.Model
	password    textinput.Model
	focusIdx    int
	registering bool
	submitting  bool
	errText     string
	status      string
}

func newLoginState() loginState {
	user := textinput.New()
	user.Placeholder = "username"
	user.CharLimit = 100
	user.Focus()

	pass := textinput.New()
	pass.Placeholder = "password"
	pass.CharLimit = 200
	pass.EchoMode = textinput.EchoPassword

	return loginState{username: user, password: pass}
}

func (a *App) updateLogin(msg tea.Msg) tea.Cmd {
	l := &a.login

	switch msg := msg.(type) {
	case loginMsg:
		l.submitting = false
		if msg.err != nil {
			l.errText = loginErrText(msg.err)
			return nil
		}
		return a.afterLogin()

	case registerMsg:
		l.submitting = false
		if msg.err != nil {
			l.errText = loginErrText(msg.err)
			return nil
		}
		l.registering = false
		l.errText = ""
		l.status = "Account created, log in to continue"
		return nil

	case tea.KeyMsg:
		if l.submitting {
			return nil
		}
		switch msg.String() {
		case "tab", "shift+tab", "up", "down":
			l.switchFocus()
			return textinput.Blink
		case "enter":
			return a.submitLogin()
		case "ctrl+r":
			l.registering = !l.registering
			l.errText = ""
			l.status = ""
			return nil
		}

		l.errText = ""
		var cmd tea.Cmd
		if l.focusIdx == 0 {
			l.username, cmd = l.username.Update(msg)
		} else {
			l.password, cmd = l.password.Update(msg)
		}
		return cmd
	}
	return nil
}

func (l *loginState) switchFocus() {
	l.focusIdx = (l.focusIdx + 1) % 2
	if l.focusIdx == 0 {
		l.username.Focus()
		l.password.Blur()
	} else {
		l.username.Blur()
		l.password.Focus()
	}
}

func (a *App) submitLogin() tea.Cmd {
	l := &a.login
	username := strings.TrimSpace(l.username.Value())
	password := l.password.Value()
	if username == "" || password == "" {
		l.errText = "Username and password are required"
		return nil
	}

	l.submitting = true
	l.errText = ""
	client := a.client
	if l.registering {
		return func() tea.Msg {
			return registerMsg{err: client.Register(context.Background(), username, password)}
		}
	}
	return func() tea.Msg {
		return loginMsg{err: client.Login(context.Background(), username, password)}
	}
}

// afterLogin lands the fresh session on the home location and loads the
// root listing.
func (a *App) afterLogin() tea.Cmd {
	a.history = nav.NewHistory()
	a.browser = newBrowserState()
	a.screen = ScreenBrowser
	return a.reloadListing()
}

// loginErrText prefers the server's message when the failure carried one.
func loginErrText(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return "An unexpected error occurred"
}

func (a *App) viewLogin() string {
	l := &a.login

	title := "Login"
	action := "enter login • ctrl+r register instead"
	if l.registering {
		title = "Register"
		action = "enter register • ctrl+r back to login"
	}

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("pixshelf - " + title))
	sb.WriteString("\n")
	sb.WriteString("Username\n")
	sb.WriteString(l.username.View())
	sb.WriteString("\n\nPassword\n")
	sb.WriteString(l.password.View())
	sb.WriteString("\n\n")

	if l.submitting {
		sb.WriteString(statusStyle.Render("Submitting..."))
		sb.WriteString("\n")
	}
	if l.errText != "" {
		sb.WriteString(errorStyle.Render("Error! " + l.errText))
		sb.WriteString("\n")
	}
	if l.status != "" {
		sb.WriteString(statusStyle.Render(l.status))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(mutedStyle.Render(action + " • tab switch field • ctrl+c quit"))
	return dialogStyle.Render(sb.String())
}
