package browse

import "github.com/google/uuid"

// Phase is the upload session's position in its lifecycle:
// Closed -> Open(empty) -> Open(staged 1..n) -> Submitting -> Closed.
type Phase int

const (
	PhaseClosed Phase = iota
	PhaseOpen
	PhaseSubmitting
)

// Releaser frees a locally held preview resource for a staged file.
type Releaser interface {
	Release()
}

// StagedFile is a locally selected, not-yet-uploaded file. The ID is local:
// staged files need their own identity because duplicate filenames are kept,
// not deduplicated.
type StagedFile struct {
	ID      string
	Name    string
	Path    string
	preview Releaser
}

// UploadSession is the transient, modal unit of work behind the upload
// dialog. At most one submission is in flight per session.
type UploadSession struct {
	phase  Phase
	staged []StagedFile
}

func (s *UploadSession) Phase() Phase         { return s.phase }
func (s *UploadSession) Staged() []StagedFile { return s.staged }

// Preview exposes the staged file's preview resource, if any.
func (f StagedFile) Preview() Releaser { return f.preview }

// Open starts a fresh session: whatever was staged before is released and
// dropped.
func (s *UploadSession) Open() {
	s.releaseAll()
	s.staged = nil
	s.phase = PhaseOpen
}

// Stage appends one selected file. Selections accumulate; staging never
// replaces earlier picks. preview may be nil.
func (s *UploadSession) Stage(name, path string, preview Releaser) (StagedFile, bool) {
	if s.phase != PhaseOpen {
		return StagedFile{}, false
	}
	f := StagedFile{
		ID:      uuid.NewString(),
		Name:    name,
		Path:    path,
		preview: preview,
	}
	s.staged = append(s.staged, f)
	return f, true
}

// Remove drops one staged file by its local ID, releasing its preview.
func (s *UploadSession) Remove(id string) bool {
	if s.phase != PhaseOpen {
		return false
	}
	for i, f := range s.staged {
		if f.ID == id {
			if f.preview != nil {
				f.preview.Release()
			}
			s.staged = append(s.staged[:i], s.staged[i+1:]...)
			return true
		}
	}
	return false
}

// CanSubmit reports whether a submission may start: an open session with at
// least one staged file and nothing already in flight.
func (s *UploadSession) CanSubmit() bool {
	return s.phase == PhaseOpen && len(s.staged) > 0
}

// BeginSubmit moves the session to Submitting. It refuses when nothing is
// staged or a submission is already in flight.
func (s *UploadSession) BeginSubmit() bool {
	if !s.CanSubmit() {
		return false
	}
	s.phase = PhaseSubmitting
	return true
}

// FinishSubmit resolves the in-flight submission. On success the staged set
// is released and the session closes; on failure the files stay staged so
// the user can retry.
func (s *UploadSession) FinishSubmit(ok bool) {
	if s.phase != PhaseSubmitting {
		return
	}
	if ok {
		s.releaseAll()
		s.staged = nil
		s.phase = PhaseClosed
		return
	}
	s.phase = PhaseOpen
}

// Close abandons the session, releasing every staged preview. A submission
// already in flight is left to resolve; its result is ignored by the caller.
func (s *UploadSession) Close() {
	s.releaseAll()
	s.staged = nil
	s.phase = PhaseClosed
}

func (s *UploadSession) releaseAll() {
	for _, f := range s.staged {
		if f.preview != nil {
			f.preview.Release()
		}
	}
}
