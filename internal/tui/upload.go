package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"

	"pixshelf/internal/api"
	"pixshelf/internal/browse"
	"pixshelf/internal/preview"
)

// uploadState drives the modal upload dialog: a file picker for staging
// local images and the session holding what has been picked so far.
type uploadState struct {
	session      browse.UploadSession
	picker       filepicker.Model
	focusStaged  bool
	stagedCursor int
	status       string
	previewMax   int
}

func newUploadState() uploadState {
	fp := filepicker.New()
	fp.AllowedTypes = []string{".png", ".jpg", ".jpeg", ".gif", ".webp"}
	fp.ShowHidden = false
	fp.Height = 8
	if home, err := os.UserHomeDir(); err == nil {
		fp.CurrentDirectory = home
	}
	return uploadState{picker: fp}
}

// open resets the dialog to Open(empty) and starts the picker.
func (u *uploadState) open(previewMax int) tea.Cmd {
	u.session.Open()
	u.focusStaged = false
	u.stagedCursor = 0
	u.status = ""
	u.previewMax = previewMax
	return u.picker.Init()
}

func (a *App) updateUpload(msg tea.Msg) tea.Cmd {
	u := &a.browser.upload

	// While a submission is in flight the dialog is inert: no staging, no
	// second submit, no closing out from under the request.
	if u.session.Phase() == browse.PhaseSubmitting {
		return nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			u.session.Close()
			return nil
		case "tab":
			if len(u.session.Staged()) > 0 {
				u.focusStaged = !u.focusStaged
			}
			return nil
		case "u":
			if u.session.BeginSubmit() {
				return tea.Batch(a.submitUpload(), a.browser.spinner.Tick)
			}
			u.status = "Nothing staged yet"
			return nil
		}

		if u.focusStaged {
			return u.updateStagedList(keyMsg)
		}
	}

	var cmd tea.Cmd
	u.picker, cmd = u.picker.Update(msg)

	if ok, path := u.picker.DidSelectFile(msg); ok {
		u.stageFile(path, a)
	}
	if ok, path := u.picker.DidSelectDisabledFile(msg); ok {
		u.status = fmt.Sprintf("%s is not an image", filepath.Base(path))
	}
	return cmd
}

// stageFile appends a picked file to the session. Selections accumulate and
// duplicate names are kept. A preview failure is not fatal; the file stages
// without one.
func (u *uploadState) stageFile(path string, a *App) {
	var rel browse.Releaser
	if p, err := preview.FromFile(path, u.previewMax); err != nil {
		a.logger.Warn("preview failed", "path", path, "error", err)
	} else {
		rel = p
	}
	if _, ok := u.session.Stage(filepath.Base(path), path, rel); ok {
		u.status = ""
	}
}

func (u *uploadState) updateStagedList(keyMsg tea.KeyMsg) tea.Cmd {
	staged := u.session.Staged()
	switch keyMsg.String() {
	case "up", "k":
		if u.stagedCursor > 0 {
			u.stagedCursor--
		}
	case "down", "j":
		if u.stagedCursor < len(staged)-1 {
			u.stagedCursor++
		}
	case "x", "delete":
		if u.stagedCursor < len(staged) {
			u.session.Remove(staged[u.stagedCursor].ID)
			if u.stagedCursor >= len(u.session.Staged()) && u.stagedCursor > 0 {
				u.stagedCursor--
			}
			if len(u.session.Staged()) == 0 {
				u.focusStaged = false
			}
		}
	}
	return nil
}

// submitUpload sends the whole staged set as one batch.
func (a *App) submitUpload() tea.Cmd {
	staged := append([]browse.StagedFile(nil), a.browser.upload.session.Staged()...)
	client := a.client
	return func() tea.Msg {
		files := make([]api.FileUpload, 0, len(staged))
		closers := make([]io.Closer, 0, len(staged))
		defer func() {
			for _, c := range closers {
				_ = c.Close()
			}
		}()

		for _, f := range staged {
			fh, err := os.Open(f.Path)
			if err != nil {
				return uploadedMsg{err: fmt.Errorf("failed to open %s: %w", f.Name, err)}
			}
			closers = append(closers, fh)
			files = append(files, api.FileUpload{Name: f.Name, Data: fh})
		}

		images, err := client.UploadImages(context.Background(), files)
		return uploadedMsg{images: images, err: err}
	}
}

// finishUpload resolves the in-flight submission. Success splices the new
// images in front of the displayed list in one update and closes the
// dialog; failure keeps the staged set for a retry.
func (a *App) finishUpload(msg uploadedMsg) tea.Cmd {
	b := &a.browser
	if msg.err != nil {
		a.logger.Error("upload failed", "error", msg.err)
		b.upload.session.FinishSubmit(false)
		b.upload.status = "Upload failed, press u to retry"
		return nil
	}
	b.listing.PrependImages(msg.images)
	b.upload.session.FinishSubmit(true)
	b.status = fmt.Sprintf("Uploaded %d image(s)", len(msg.images))
	return nil
}

func (a *App) viewUpload() string {
	u := &a.browser.upload
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Upload Images"))
	sb.WriteString("\n")

	if u.session.Phase() == browse.PhaseSubmitting {
		sb.WriteString(statusStyle.Render(fmt.Sprintf("%s Uploading %d image(s)...",
			a.browser.spinner.View(), len(u.session.Staged()))))
		return dialogStyle.Render(sb.String())
	}

	staged := u.session.Staged()
	if len(staged) == 0 {
		sb.WriteString(mutedStyle.Render("No images staged."))
	} else {
		for i, f := range staged {
			marker := "  "
			if u.focusStaged && i == u.stagedCursor {
				marker = selectedStyle.Render("> ")
			}
			sb.WriteString(marker + imageStyle.Render("🖼 ") + f.Name)
			sb.WriteString("\n")
		}
		if u.focusStaged && u.stagedCursor < len(staged) {
			if p, ok := staged[u.stagedCursor].Preview().(*preview.Preview); ok {
				sb.WriteString("\n")
				sb.WriteString(p.View())
			}
		}
	}

	sb.WriteString("\n\n")
	sb.WriteString(u.picker.View())
	sb.WriteString("\n")

	if u.status != "" {
		sb.WriteString(statusStyle.Render(u.status))
		sb.WriteString("\n")
	}
	sb.WriteString(mutedStyle.Render("enter stage • tab staged list • x remove • u upload • esc close"))
	return dialogStyle.Render(sb.String())
}
