// Package browse implements the navigation-and-sync state of the client: the
// listing snapshot for the browsed folder, the debounced search state, and
// the upload session. Everything here is synchronous; remote fetches happen
// outside and feed their results back in.
package browse

import "pixshelf/internal/domain"

// Listing is the materialized children of the browsed folder. A nil slice
// means "not loaded yet", distinct from a loaded-but-empty slice; the UI
// branches between a loading indicator and an explicit "folder is empty"
// message on that difference.
//
// Three actors mutate a Listing (the loader, uploads, folder creation) and
// all of them go through whole-field replacement, never in-place edits.
type Listing struct {
	folders []domain.Folder
	images  []domain.Image
}

// Apply replaces both halves of the snapshot in a single update, so no
// intermediate state exists where one list is stale and the other fresh.
// A nil argument is normalized to an empty slice: applying a response always
// means the folder is loaded.
func (l *Listing) Apply(folders []domain.Folder, images []domain.Image) {
	if folders == nil {
		folders = []domain.Folder{}
	}
	if images == nil {
		images = []domain.Image{}
	}
	l.folders = folders
	l.images = images
}

// Reset marks both lists unauthoritative. Called when the location changes,
// before the fetch for the new folder resolves.
func (l *Listing) Reset() {
	l.folders = nil
	l.images = nil
}

// Loaded reports whether the snapshot reflects a completed fetch.
func (l *Listing) Loaded() bool {
	return l.folders != nil && l.images != nil
}

// Empty reports whether the folder loaded with zero children in both
// categories. False while still loading.
func (l *Listing) Empty() bool {
	return l.Loaded() && len(l.folders) == 0 && len(l.images) == 0
}

func (l *Listing) Folders() []domain.Folder { return l.folders }
func (l *Listing) Images() []domain.Image   { return l.images }

// PrependFolder splices a newly created folder in front of the displayed
// list, replacing the slice wholesale.
func (l *Listing) PrependFolder(f domain.Folder) {
	l.folders = append([]domain.Folder{f}, l.folders...)
}

// PrependImages splices freshly uploaded images in front of the displayed
// list, newest first, in one update.
func (l *Listing) PrependImages(imgs []domain.Image) {
	l.images = append(append([]domain.Image{}, imgs...), l.images...)
}
