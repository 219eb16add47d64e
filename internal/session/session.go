package session

import (
	"errors"
	"time"

	"github.com/insterion/ev-log/internal/model"
	"github.com/insterion/ev-log/internal/schema"
)

// DefaultUndoWindow is how long a deletion stays recoverable.
const DefaultUndoWindow = 5 * time.Second

// Add-time validation failures, surfaced to the caller instead of being
// silently repaired: records that never should enter the collection.
var (
	ErrKwhRequired    = errors.New("energy amount must be positive")
	ErrPriceNegative  = errors.New("price must not be negative")
	ErrAmountRequired = errors.New("cost amount must be positive")
)

// Persister writes a state snapshot back to durable storage.
type Persister interface {
	SaveState(st model.State) error
}

// Session owns a State and mediates every mutation: add, edit, delete,
// undo, import. All writes go through the per-record sanitizer and are
// persisted immediately. A Session is not safe for concurrent use; it is
// owned by a single control flow.
type Session struct {
	State model.State

	persist Persister
	now     func() time.Time

	undoWindow time.Duration
	// OnUndoExpire, when set, is called (from a timer goroutine) once an
	// undo window lapses so a UI can redraw. It must not touch the
	// Session directly; expired slots clear themselves on next access.
	OnUndoExpire func()

	entryEdit editor[model.ChargingEntry]
	costEdit  editor[model.Cost]
	entryUndo undoSlot[model.ChargingEntry]
	costUndo  undoSlot[model.Cost]
}

// Option configures a Session.
type Option func(*Session)

// WithClock overrides the session clock; tests use this to step time
// across the undo window without sleeping.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithUndoWindow overrides how long deletions stay recoverable.
func WithUndoWindow(d time.Duration) Option {
	return func(s *Session) { s.undoWindow = d }
}

// New wraps an already-sanitized state. persist may be nil for read-only
// or in-memory use.
func New(st model.State, persist Persister, opts ...Option) *Session {
	s := &Session{
		State:      st,
		persist:    persist,
		now:        time.Now,
		undoWindow: DefaultUndoWindow,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) save() error {
	if s.persist == nil {
		return nil
	}
	return s.persist.SaveState(s.State)
}

// Now returns the session's current time.
func (s *Session) Now() time.Time {
	return s.now()
}

// UndoWindow reports how long deletions stay recoverable.
func (s *Session) UndoWindow() time.Duration {
	return s.undoWindow
}

// ReplaceState swaps in an imported state, dropping any in-flight edit
// and undo memory, and persists it.
func (s *Session) ReplaceState(st model.State) error {
	s.entryEdit.cancel()
	s.costEdit.cancel()
	s.entryUndo.disarm()
	s.costUndo.disarm()
	s.State = st
	return s.save()
}

// AddEntry validates, sanitizes, inserts, and persists a new charging
// entry. The returned entry carries the generated id and createdAt.
func (s *Session) AddEntry(e model.ChargingEntry) (model.ChargingEntry, error) {
	if !(e.Kwh > 0) {
		return model.ChargingEntry{}, ErrKwhRequired
	}
	if e.Price < 0 {
		return model.ChargingEntry{}, ErrPriceNegative
	}

	e.ID = schema.NewID()
	e.CreatedAt = s.now().UTC().Format(time.RFC3339)
	clean, ok := schema.SanitizeEntry(e, s.now())
	if !ok {
		return model.ChargingEntry{}, ErrPriceNegative
	}

	s.State.Entries = append(s.State.Entries, clean)
	model.SortEntries(s.State.Entries)
	return clean, s.save()
}

// DuplicateEntry copies an existing entry to today with a fresh identity.
func (s *Session) DuplicateEntry(id string) (model.ChargingEntry, error) {
	src, idx := findEntry(s.State.Entries, id)
	if idx < 0 {
		return model.ChargingEntry{}, nil
	}
	copyEntry := src
	copyEntry.Date = s.now().Format("2006-01-02")
	return s.AddEntry(copyEntry)
}

// AddCost validates, sanitizes, inserts, and persists a new cost record.
func (s *Session) AddCost(c model.Cost) (model.Cost, error) {
	if !(c.Amount > 0) {
		return model.Cost{}, ErrAmountRequired
	}

	c.ID = schema.NewID()
	c.CreatedAt = s.now().UTC().Format(time.RFC3339)
	clean, ok := schema.SanitizeCost(c, s.now())
	if !ok {
		return model.Cost{}, ErrAmountRequired
	}

	s.State.Costs = append(s.State.Costs, clean)
	model.SortCosts(s.State.Costs)
	return clean, s.save()
}

// StartEditEntry snapshots a draft for the entry with the given id,
// implicitly cancelling any previous entry edit. Returns false when the
// id is unknown.
func (s *Session) StartEditEntry(id string) bool {
	e, idx := findEntry(s.State.Entries, id)
	if idx < 0 {
		return false
	}
	s.entryEdit.start(id, e)
	return true
}

// EntryDraft returns the mutable in-flight entry draft, or nil when idle.
func (s *Session) EntryDraft() *model.ChargingEntry {
	return s.entryEdit.draftPtr()
}

// CommitEntryEdit merges the draft onto the stored record, re-sanitizes,
// re-sorts, and persists. No-op without an active edit or when the target
// record no longer exists. A draft that breaks the non-negativity
// invariant removes the record, matching sanitizer semantics.
func (s *Session) CommitEntryEdit() error {
	id, draft, ok := s.entryEdit.take()
	if !ok {
		return nil
	}
	_, idx := findEntry(s.State.Entries, id)
	if idx < 0 {
		return nil
	}

	merged := draft
	merged.ID = id
	clean, valid := schema.SanitizeEntry(merged, s.now())
	if valid {
		s.State.Entries[idx] = clean
	} else {
		s.State.Entries = append(s.State.Entries[:idx], s.State.Entries[idx+1:]...)
	}
	model.SortEntries(s.State.Entries)
	return s.save()
}

// CancelEntryEdit discards the draft without touching stored data.
func (s *Session) CancelEntryEdit() {
	s.entryEdit.cancel()
}

// EditingEntryID returns the id under edit, or "" when idle.
func (s *Session) EditingEntryID() string {
	if p := s.entryEdit.draftPtr(); p != nil {
		return s.entryEdit.id
	}
	return ""
}

// StartEditCost snapshots a draft for the cost with the given id.
func (s *Session) StartEditCost(id string) bool {
	c, idx := findCost(s.State.Costs, id)
	if idx < 0 {
		return false
	}
	s.costEdit.start(id, c)
	return true
}

// CostDraft returns the mutable in-flight cost draft, or nil when idle.
func (s *Session) CostDraft() *model.Cost {
	return s.costEdit.draftPtr()
}

// CommitCostEdit mirrors CommitEntryEdit for the costs collection.
func (s *Session) CommitCostEdit() error {
	id, draft, ok := s.costEdit.take()
	if !ok {
		return nil
	}
	_, idx := findCost(s.State.Costs, id)
	if idx < 0 {
		return nil
	}

	merged := draft
	merged.ID = id
	clean, valid := schema.SanitizeCost(merged, s.now())
	if valid {
		s.State.Costs[idx] = clean
	} else {
		s.State.Costs = append(s.State.Costs[:idx], s.State.Costs[idx+1:]...)
	}
	model.SortCosts(s.State.Costs)
	return s.save()
}

// CancelCostEdit discards the cost draft.
func (s *Session) CancelCostEdit() {
	s.costEdit.cancel()
}

// EditingCostID returns the cost id under edit, or "" when idle.
func (s *Session) EditingCostID() string {
	if p := s.costEdit.draftPtr(); p != nil {
		return s.costEdit.id
	}
	return ""
}

// DeleteEntry removes the entry immediately and arms the undo slot.
// Deleting again while a previous token is live discards that token.
// Unknown ids are a silent no-op.
func (s *Session) DeleteEntry(id string) error {
	s.entryEdit.cancel()
	e, idx := findEntry(s.State.Entries, id)
	if idx < 0 {
		return nil
	}
	s.State.Entries = append(s.State.Entries[:idx], s.State.Entries[idx+1:]...)
	s.entryUndo.arm(e, idx, s.now().Add(s.undoWindow), s.undoWindow, s.OnUndoExpire)
	return s.save()
}

// UndoDeleteEntry restores the most recently deleted entry if its window
// has not lapsed. Reports whether anything was restored.
func (s *Session) UndoDeleteEntry() (bool, error) {
	e, idx, ok := s.entryUndo.take(s.now())
	if !ok {
		return false, nil
	}
	s.State.Entries = insertEntry(s.State.Entries, e, idx)
	model.SortEntries(s.State.Entries)
	return true, s.save()
}

// EntryUndoLive reports whether an entry deletion is still recoverable.
func (s *Session) EntryUndoLive() bool {
	return s.entryUndo.live(s.now())
}

// DeleteCost mirrors DeleteEntry for the costs collection, with its own
// independent undo slot.
func (s *Session) DeleteCost(id string) error {
	s.costEdit.cancel()
	c, idx := findCost(s.State.Costs, id)
	if idx < 0 {
		return nil
	}
	s.State.Costs = append(s.State.Costs[:idx], s.State.Costs[idx+1:]...)
	s.costUndo.arm(c, idx, s.now().Add(s.undoWindow), s.undoWindow, s.OnUndoExpire)
	return s.save()
}

// UndoDeleteCost restores the most recently deleted cost if possible.
func (s *Session) UndoDeleteCost() (bool, error) {
	c, idx, ok := s.costUndo.take(s.now())
	if !ok {
		return false, nil
	}
	s.State.Costs = insertCost(s.State.Costs, c, idx)
	model.SortCosts(s.State.Costs)
	return true, s.save()
}

// CostUndoLive reports whether a cost deletion is still recoverable.
func (s *Session) CostUndoLive() bool {
	return s.costUndo.live(s.now())
}

// ClearEntries drops every charging entry. Undo does not cover this.
func (s *Session) ClearEntries() error {
	s.entryEdit.cancel()
	s.entryUndo.disarm()
	s.State.Entries = []model.ChargingEntry{}
	return s.save()
}

// UpdateSettings applies a settings mutation and persists.
func (s *Session) UpdateSettings(mutate func(st *model.State)) error {
	mutate(&s.State)
	return s.save()
}

func findEntry(entries []model.ChargingEntry, id string) (model.ChargingEntry, int) {
	for i, e := range entries {
		if e.ID == id {
			return e, i
		}
	}
	return model.ChargingEntry{}, -1
}

func findCost(costs []model.Cost, id string) (model.Cost, int) {
	for i, c := range costs {
		if c.ID == id {
			return c, i
		}
	}
	return model.Cost{}, -1
}

// insertEntry reinserts at a clamped index; the caller re-sorts, so the
// index only matters for stable createdAt ties.
func insertEntry(entries []model.ChargingEntry, e model.ChargingEntry, idx int) []model.ChargingEntry {
	if idx < 0 {
		idx = 0
	}
	if idx > len(entries) {
		idx = len(entries)
	}
	entries = append(entries, model.ChargingEntry{})
	copy(entries[idx+1:], entries[idx:])
	entries[idx] = e
	return entries
}

func insertCost(costs []model.Cost, c model.Cost, idx int) []model.Cost {
	if idx < 0 {
		idx = 0
	}
	if idx > len(costs) {
		idx = len(costs)
	}
	costs = append(costs, model.Cost{})
	copy(costs[idx+1:], costs[idx:])
	costs[idx] = c
	return costs
}
