// Package session owns one live State instance: edit drafts, the
// single-slot delete undo, and write-through persistence. It replaces the
// ad-hoc globals the data lives behind in a browser with an explicit
// object, so multiple independent instances can coexist (tests included).
package session

// editor tracks at most one in-flight edit for a collection. The draft is
// a detached copy; the stored record is untouched until commit.
type editor[T any] struct {
	active bool
	id     string
	draft  T
}

// start snapshots a draft, implicitly discarding any previous edit.
func (ed *editor[T]) start(id string, record T) {
	ed.active = true
	ed.id = id
	ed.draft = record
}

// draftPtr returns a mutable pointer to the draft, or nil when idle.
func (ed *editor[T]) draftPtr() *T {
	if !ed.active {
		return nil
	}
	return &ed.draft
}

// take returns the draft and transitions to idle. ok is false when idle.
func (ed *editor[T]) take() (id string, draft T, ok bool) {
	if !ed.active {
		var zero T
		return "", zero, false
	}
	id, draft = ed.id, ed.draft
	ed.cancel()
	return id, draft, true
}

func (ed *editor[T]) cancel() {
	var zero T
	ed.active = false
	ed.id = ""
	ed.draft = zero
}
