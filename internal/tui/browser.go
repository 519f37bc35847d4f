package tui

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"pixshelf/internal/browse"
	"pixshelf/internal/domain"
)

// browserState is the folder-browsing screen: the listing snapshot for the
// current location, the inline folder-creation form and the upload dialog.
type browserState struct {
	listing   browse.Listing
	cursor    int
	loading   bool
	creating  bool
	nameInput textinput.Model
	status    string
	spinner   spinner.Model
	help      help.Model
	showHelp  bool
	upload    uploadState
}

func newBrowserState() browserState {
	ti := textinput.New()
	ti.Placeholder = "folder name"
	ti.CharLimit = 120

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = statusStyle

	return browserState{
		nameInput: ti,
		spinner:   sp,
		help:      help.New(),
		upload:    newUploadState(),
	}
}

var folderNameRe = regexp.MustCompile(`^[^/]+$`)

func validateFolderName(name string) error {
	return validation.Validate(name,
		validation.Required.Error("folder name is required"),
		validation.Length(1, 120),
		validation.Match(folderNameRe).Error("folder name cannot contain slashes"),
	)
}

// rowCount is the number of selectable rows: the "Add New Folder" affordance
// plus folders plus images.
func (b *browserState) rowCount() int {
	return 1 + len(b.listing.Folders()) + len(b.listing.Images())
}

func (a *App) updateBrowser(msg tea.Msg) tea.Cmd {
	b := &a.browser

	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		b.spinner, cmd = b.spinner.Update(msg)
		if b.loading || b.upload.session.Phase() == browse.PhaseSubmitting {
			return cmd
		}
		return nil

	case listingMsg:
		// Guard-claimed failures never reach here. The design accepts
		// last-write-wins between navigations: whatever response lands last
		// is the snapshot.
		b.loading = false
		b.listing.Apply(msg.listing.Folders, msg.listing.Images)
		if b.cursor >= b.rowCount() {
			b.cursor = b.rowCount() - 1
		}
		return nil

	case folderCreatedMsg:
		if msg.err != nil {
			// Form stays open with the typed name intact; a resubmission is
			// the recovery path.
			a.logger.Error("create folder failed", "error", msg.err)
			b.status = "Could not create folder"
			return nil
		}
		b.listing.PrependFolder(*msg.folder)
		b.nameInput.Reset()
		b.creating = false
		b.status = ""
		return nil

	case uploadedMsg:
		return a.finishUpload(msg)
	}

	if b.upload.session.Phase() != browse.PhaseClosed {
		return a.updateUpload(msg)
	}

	if b.creating {
		return a.updateFolderForm(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	switch {
	case key.Matches(keyMsg, a.keys.Quit):
		return tea.Quit

	case key.Matches(keyMsg, a.keys.Up):
		if b.cursor > 0 {
			b.cursor--
		}

	case key.Matches(keyMsg, a.keys.Down):
		if b.cursor < b.rowCount()-1 {
			b.cursor++
		}

	case key.Matches(keyMsg, a.keys.Open):
		return a.openRow()

	case key.Matches(keyMsg, a.keys.Back):
		if a.history.Back() {
			return a.reloadListing()
		}

	case key.Matches(keyMsg, a.keys.NewFolder):
		b.creating = true
		b.status = ""
		b.nameInput.Focus()

	case key.Matches(keyMsg, a.keys.Upload):
		b.status = ""
		return b.upload.open(a.previewMax)

	case key.Matches(keyMsg, a.keys.Search):
		return a.gotoSearch()

	case key.Matches(keyMsg, a.keys.Refresh):
		return a.reloadListing()

	case key.Matches(keyMsg, a.keys.Help):
		b.showHelp = !b.showHelp
		b.help.ShowAll = b.showHelp
	}
	return nil
}

// openRow acts on the selected row: the affordance opens the creation form,
// a folder navigates into it, an image opens the single-image view.
func (a *App) openRow() tea.Cmd {
	b := &a.browser
	if b.cursor == 0 {
		b.creating = true
		b.nameInput.Focus()
		return nil
	}

	folders := b.listing.Folders()
	idx := b.cursor - 1
	if idx < len(folders) {
		a.history.GoToFolder(folders[idx].ID)
		return a.reloadListing()
	}

	images := b.listing.Images()
	idx -= len(folders)
	if idx < len(images) {
		return a.gotoViewer(images[idx])
	}
	return nil
}

// reloadListing marks the snapshot unauthoritative and fetches the children
// of the current location.
func (a *App) reloadListing() tea.Cmd {
	b := &a.browser
	b.listing.Reset()
	b.loading = true
	b.cursor = 0
	b.status = ""
	return tea.Batch(a.loadListing(), b.spinner.Tick)
}

func (a *App) updateFolderForm(msg tea.Msg) tea.Cmd {
	b := &a.browser
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		b.nameInput, cmd = b.nameInput.Update(msg)
		return cmd
	}

	switch keyMsg.String() {
	case "esc":
		b.creating = false
		b.nameInput.Reset()
		b.status = ""
		return nil
	case "enter":
		name := strings.TrimSpace(b.nameInput.Value())
		if err := validateFolderName(name); err != nil {
			b.status = err.Error()
			return nil
		}
		return a.createFolder(name)
	}

	var cmd tea.Cmd
	b.nameInput, cmd = b.nameInput.Update(keyMsg)
	return cmd
}

// createFolder submits the typed name scoped to the current location.
func (a *App) createFolder(name string) tea.Cmd {
	var parent *string
	if id := a.history.CurrentFolder(); id != "" {
		parent = &id
	}
	client := a.client
	return func() tea.Msg {
		folder, err := client.CreateFolder(context.Background(), name, parent)
		return folderCreatedMsg{folder: folder, err: err}
	}
}

func (a *App) viewBrowser() string {
	b := &a.browser

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("pixshelf - " + a.history.Link(a.client.BaseURL())))
	sb.WriteString("\n")

	switch {
	case b.loading || !b.listing.Loaded():
		sb.WriteString(statusStyle.Render(fmt.Sprintf("%s Loading...", b.spinner.View())))
	case b.listing.Empty():
		sb.WriteString(b.renderRows())
		sb.WriteString("\n")
		sb.WriteString(mutedStyle.Render("Folder is empty."))
	default:
		sb.WriteString(b.renderRows())
	}

	if b.status != "" {
		sb.WriteString("\n\n")
		sb.WriteString(statusStyle.Render(b.status))
	}

	sb.WriteString("\n\n")
	if b.showHelp {
		sb.WriteString(b.help.FullHelpView(a.keys.FullHelp()))
	} else {
		sb.WriteString(mutedStyle.Render(b.help.ShortHelpView(a.keys.ShortHelp())))
	}

	if b.upload.session.Phase() != browse.PhaseClosed {
		return a.placeDialog(a.viewUpload())
	}
	return sb.String()
}

func (b *browserState) renderRows() string {
	var sb strings.Builder

	sb.WriteString(b.renderRow(0, b.affordanceLabel()))
	row := 1
	for _, f := range b.listing.Folders() {
		sb.WriteString("\n")
		sb.WriteString(b.renderRow(row, folderStyle.Render("🗀 ")+f.Name))
		row++
	}
	for _, img := range b.listing.Images() {
		sb.WriteString("\n")
		sb.WriteString(b.renderRow(row, imageStyle.Render("🖼 ")+img.Name))
		row++
	}
	return sb.String()
}

func (b *browserState) affordanceLabel() string {
	if b.creating {
		return folderStyle.Render("🗀 ") + b.nameInput.View()
	}
	return folderStyle.Render("+ ") + "Add New Folder"
}

func (b *browserState) renderRow(idx int, label string) string {
	if idx == b.cursor && !b.creating {
		return selectedStyle.Render("> " + label)
	}
	return "  " + label
}

// placeDialog centers dialog in the window, replacing the browser view while
// it is open.
func (a *App) placeDialog(dialog string) string {
	return lipgloss.Place(
		a.width,
		a.height,
		lipgloss.Center,
		lipgloss.Center,
		dialog,
		lipgloss.WithWhitespaceChars(" "),
	)
}

// gotoViewer switches to the single-image view and fetches its bytes.
func (a *App) gotoViewer(img domain.Image) tea.Cmd {
	a.history.GoToImage(img.ID)
	a.viewer = viewerState{id: img.ID, name: img.Name, loading: true}
	a.screen = ScreenViewer
	return a.fetchImage(img.ID)
}

// gotoSearch switches to the search screen, seeding the input from the URL's
// term so a shared link restores the query.
func (a *App) gotoSearch() tea.Cmd {
	a.history.GoToSearch()
	a.search = newSearchState()
	a.search.input.SetValue(a.history.SearchTerm())
	a.search.input.Focus()
	a.screen = ScreenSearch
	if term := a.history.SearchTerm(); term != "" {
		token := a.search.debouncer.Bump()
		return a.debounceTick(token)
	}
	return textinput.Blink
}
