// Package nav holds the client's navigation state. The current URL is the
// single source of truth for "where the user is": the folder being browsed
// lives in the "folder" query parameter, the active search term in "q", and
// a single-image view in the path. Components derive from the URL and write
// back through History; nothing keeps a parallel copy of the location.
package nav

import (
	"net/url"
	"strings"
)

// Route paths, matching the screens of the application.
const (
	PathHome   = "/"
	PathSearch = "/search"
	PathLogin  = "/login"
	PathImage  = "/image/"
)

// History is a stack of app-relative URLs with browser push/replace
// semantics. The top entry is the current location.
type History struct {
	stack []url.URL
}

func NewHistory() *History {
	return &History{stack: []url.URL{{Path: PathHome}}}
}

// Current returns a copy of the current location.
func (h *History) Current() url.URL {
	return h.stack[len(h.stack)-1]
}

// Len reports how many entries the history holds.
func (h *History) Len() int { return len(h.stack) }

// Push makes u the new current location, keeping the old one reachable via
// Back.
func (h *History) Push(u url.URL) {
	h.stack = append(h.stack, u)
}

// Replace swaps the current location for u without growing the history.
func (h *History) Replace(u url.URL) {
	h.stack[len(h.stack)-1] = u
}

// Back pops to the previous location. It reports false at the bottom of the
// stack, leaving the current location in place.
func (h *History) Back() bool {
	if len(h.stack) <= 1 {
		return false
	}
	h.stack = h.stack[:len(h.stack)-1]
	return true
}

// CurrentFolder reads the browsed folder's ID from the URL. Empty means the
// root.
func (h *History) CurrentFolder() string {
	u := h.Current()
	return u.Query().Get("folder")
}

// SearchTerm reads the active search term from the URL.
func (h *History) SearchTerm() string {
	u := h.Current()
	return u.Query().Get("q")
}

// ImageID reads the viewed image's ID from the path, or "" when the current
// location is not an image view.
func (h *History) ImageID() string {
	u := h.Current()
	if !strings.HasPrefix(u.Path, PathImage) {
		return ""
	}
	return strings.TrimPrefix(u.Path, PathImage)
}

// GoToFolder pushes a location with the "folder" query parameter set to id,
// preserving the path and every other parameter. An empty id means the root
// and clears the parameter. This is the only way the displayed folder
// changes.
func (h *History) GoToFolder(id string) {
	u := h.Current()
	q := u.Query()
	if id == "" {
		q.Del("folder")
	} else {
		q.Set("folder", id)
	}
	u.RawQuery = q.Encode()
	h.Push(u)
}

// GoToImage pushes the single-image view for id.
func (h *History) GoToImage(id string) {
	h.Push(url.URL{Path: PathImage + id})
}

// GoToSearch pushes the search view, keeping any previous term in the URL.
func (h *History) GoToSearch() {
	u := h.Current()
	q := url.Values{}
	if term := u.Query().Get("q"); term != "" {
		q.Set("q", term)
	}
	h.Push(url.URL{Path: PathSearch, RawQuery: q.Encode()})
}

// SetSearchTerm rewrites the "q" parameter in place, a history replace
// rather than a push so the history does not grow per debounce tick.
func (h *History) SetSearchTerm(term string) {
	u := h.Current()
	q := u.Query()
	if term == "" {
		q.Del("q")
	} else {
		q.Set("q", term)
	}
	u.RawQuery = q.Encode()
	h.Replace(u)
}

// Link resolves the current location against base, yielding a shareable
// absolute URL.
func (h *History) Link(base *url.URL) string {
	u := h.Current()
	resolved := *base
	resolved.Path = strings.TrimRight(resolved.Path, "/") + u.Path
	resolved.RawQuery = u.RawQuery
	return resolved.String()
}
