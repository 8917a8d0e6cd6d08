package tasks

import "github.com/desertthunder/tsk/internal/models"

// EditSession tracks the one title edit that may be in progress at a time.
// The zero value is a closed session.
//
// The draft lives only here until a save is confirmed by the remote store;
// the collection never reflects an unsaved draft.
type EditSession struct {
	id    int64
	draft string
	open  bool
}

// Active reports whether an edit is in progress.
func (s *EditSession) Active() bool {
	return s.open
}

// ID returns the id of the task being edited. Only meaningful while Active.
func (s *EditSession) ID() int64 {
	return s.id
}

// Draft returns the in-progress title text.
func (s *EditSession) Draft() string {
	return s.draft
}

// Editing reports whether the session is open on the given task.
func (s *EditSession) Editing(id int64) bool {
	return s.open && s.id == id
}

// Begin opens the session on a task, seeding the draft with its current
// title. Beginning while already open moves the session to the new task and
// discards the previous draft.
func (s *EditSession) Begin(t models.Task) {
	s.id = t.ID
	s.draft = t.Title
	s.open = true
}

// SetDraft replaces the draft text. Ignored when the session is closed.
func (s *EditSession) SetDraft(draft string) {
	if s.open {
		s.draft = draft
	}
}

// Close ends the session and discards the draft.
func (s *EditSession) Close() {
	*s = EditSession{}
}

// ShouldSave decides what saving the session against the task's current
// persisted state requires. It returns the trimmed draft and true when a
// remote write is needed. An empty or unchanged draft needs no write; the
// caller closes the session and the store is never called.
func (s *EditSession) ShouldSave(current models.Task) (string, bool) {
	trimmed := NormalizeTitle(s.draft)
	if trimmed == "" || trimmed == current.Title {
		return "", false
	}
	return trimmed, true
}

// Reconcile clamps the session against the collection: if the edited task is
// no longer present, the session is forced closed. Call it after every
// removal so the session id always refers to a live task.
func (s *EditSession) Reconcile(c *Collection) {
	if s.open && !c.Contains(s.id) {
		s.Close()
	}
}
