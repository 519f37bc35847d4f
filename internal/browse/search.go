package browse

import (
	"time"

	"pixshelf/internal/domain"
)

// DebounceInterval is the quiet period after the last keystroke before a
// search fires.
const DebounceInterval = 300 * time.Millisecond

// Debouncer hands out a token per input change; only the tick carrying the
// latest token is acted on, so rapid typing collapses to one fetch after the
// quiet interval.
type Debouncer struct {
	seq int
}

// Bump registers an input change and returns the token the caller should
// attach to its delayed tick.
func (d *Debouncer) Bump() int {
	d.seq++
	return d.seq
}

// Current reports whether token is still the latest input change.
func (d *Debouncer) Current(token int) bool {
	return token == d.seq
}

// SearchState is the cross-folder search result set keyed by the debounced
// term. Results are nil when no query is active, distinct from an empty
// loaded slice ("query matched nothing").
//
// Fetches are not cancelled when superseded; instead every fetch carries the
// generation Begin returned and Resolve discards resolutions whose
// generation is no longer current, so a slow early response can never
// overwrite a newer result set.
type SearchState struct {
	term    string
	gen     int
	results []domain.Image
}

// Begin records the new debounced term. It reports whether a fetch should be
// issued: an empty term clears the result set and fetches nothing. The
// returned generation must be passed back to Resolve or Fail.
func (s *SearchState) Begin(term string) (gen int, fetch bool) {
	s.gen++
	s.term = term
	if term == "" {
		s.results = nil
		return s.gen, false
	}
	return s.gen, true
}

// Resolve installs the fetched results wholesale. Stale generations are
// dropped; it reports whether the results were applied.
func (s *SearchState) Resolve(gen int, imgs []domain.Image) bool {
	if gen != s.gen {
		return false
	}
	if imgs == nil {
		imgs = []domain.Image{}
	}
	s.results = imgs
	return true
}

// Fail clears the result set for a failed fetch, unless a newer term has
// taken over.
func (s *SearchState) Fail(gen int) {
	if gen != s.gen {
		return
	}
	s.results = nil
}

// Term returns the current debounced term.
func (s *SearchState) Term() string { return s.term }

// Results returns the current result set; nil means no active query.
func (s *SearchState) Results() []domain.Image { return s.results }
