package tui

import (
	"pixshelf/internal/api"
	"pixshelf/internal/domain"
)

// Messages delivered back into the update loop when a remote call resolves.
// Every fetch the client issues resumes the program through one of these, so
// the session guard in App.Update sees all of them.

type listingMsg struct {
	folderID string
	listing  *api.Listing
	err      error
}

type folderCreatedMsg struct {
	folder *domain.Folder
	err    error
}

type uploadedMsg struct {
	images []domain.Image
	err    error
}

type searchMsg struct {
	gen    int
	images []domain.Image
	err    error
}

// debounceMsg fires after the search quiet interval; stale tokens are
// ignored.
type debounceMsg struct {
	token int
}

type imageMsg struct {
	id   string
	data []byte
	mime string
	err  error
}

type loginMsg struct {
	err error
}

type registerMsg struct {
	err error
}
