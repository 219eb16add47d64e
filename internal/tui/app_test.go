package tui

import (
	"testing"
	"time"

	"github.com/insterion/ev-log/internal/calc"
	"github.com/insterion/ev-log/internal/model"
	"github.com/insterion/ev-log/internal/schema"
	"github.com/insterion/ev-log/internal/session"

	tea "github.com/charmbracelet/bubbletea"
)

type mapKV struct {
	data map[string]string
}

func newMapKV() *mapKV {
	return &mapKV{data: make(map[string]string)}
}

func (m *mapKV) Get(key string) (string, bool, error) {
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *mapKV) Set(key, value string) error {
	m.data[key] = value
	return nil
}

func (m *mapKV) Delete(key string) error {
	delete(m.data, key)
	return nil
}

func testApp(t *testing.T) App {
	t.Helper()

	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)
	st := schema.DefaultState()
	st.Entries = []model.ChargingEntry{
		{ID: "entry-aaa", Date: "2025-02-10", Type: model.ChargeHome, Kwh: 20, Price: 0.09, CreatedAt: "2025-02-10T08:00:00Z"},
		{ID: "entry-bbb", Date: "2025-03-01", Type: model.ChargePublic, Kwh: 10, Price: 0.56, CreatedAt: "2025-03-01T08:00:00Z"},
		{ID: "entry-ccc", Date: "2025-03-12", Type: model.ChargeHome, Kwh: 30, Price: 0.09, CreatedAt: "2025-03-12T08:00:00Z"},
	}
	model.SortEntries(st.Entries)

	sess := session.New(st, nil, session.WithClock(func() time.Time { return now }))
	a := NewApp(sess, newMapKV(), calc.PeriodAll)
	a.width = 100
	a.height = 40
	return a
}

func keyMsg(s string) tea.KeyMsg {
	if len(s) == 1 {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	panic("unsupported key in test: " + s)
}

func update(t *testing.T, a App, keys ...string) App {
	t.Helper()
	for _, k := range keys {
		m, _ := a.Update(keyMsg(k))
		var ok bool
		a, ok = m.(App)
		if !ok {
			t.Fatalf("Update returned %T, want App", m)
		}
	}
	return a
}

func TestVisibleEntriesNewestFirst(t *testing.T) {
	a := testApp(t)

	entries := a.visibleEntries()
	if len(entries) != 3 {
		t.Fatalf("visible entries = %d, want 3", len(entries))
	}
	if entries[0].Date != "2025-03-12" || entries[2].Date != "2025-02-10" {
		t.Fatalf("entries not newest first: %s .. %s", entries[0].Date, entries[2].Date)
	}
}

func TestTabKeysSwitchAndPersist(t *testing.T) {
	a := testApp(t)

	a = update(t, a, "c")
	if a.activeTab != tabCosts {
		t.Fatalf("activeTab = %d, want %d", a.activeTab, tabCosts)
	}

	a = update(t, a, "x")
	if a.activeTab != tabSettings {
		t.Fatalf("activeTab = %d, want %d", a.activeTab, tabSettings)
	}

	kv := a.kv.(*mapKV)
	if kv.data["ev_last_tab"] != "settings" {
		t.Fatalf("persisted tab = %q, want settings", kv.data["ev_last_tab"])
	}
}

func TestNewAppRestoresLastTab(t *testing.T) {
	a := testApp(t)
	a = update(t, a, "m")

	restored := NewApp(a.sess, a.kv, calc.PeriodAll)
	if restored.activeTab != tabCompare {
		t.Fatalf("restored tab = %d, want %d", restored.activeTab, tabCompare)
	}
}

func TestPeriodCycleNarrowsLog(t *testing.T) {
	a := testApp(t)

	a = update(t, a, "p") // all -> this month
	if a.period != calc.PeriodThisMonth {
		t.Fatalf("period = %v, want this month", a.period)
	}
	if got := len(a.visibleEntries()); got != 2 {
		t.Fatalf("this-month entries = %d, want 2", got)
	}

	a = update(t, a, "p") // -> last month
	if got := len(a.visibleEntries()); got != 1 {
		t.Fatalf("last-month entries = %d, want 1", got)
	}

	kv := a.kv.(*mapKV)
	if kv.data["ev_month_filter"] != "last" {
		t.Fatalf("persisted period = %q, want last", kv.data["ev_month_filter"])
	}
}

func TestDeleteArmsUndoAndUndoRestores(t *testing.T) {
	a := testApp(t)

	a = update(t, a, "d")
	if got := len(a.visibleEntries()); got != 2 {
		t.Fatalf("entries after delete = %d, want 2", got)
	}
	if !a.sess.EntryUndoLive() {
		t.Fatal("undo not live after delete")
	}
	if a.notice == "" {
		t.Fatal("no undo notice after delete")
	}

	a = update(t, a, "u")
	if got := len(a.visibleEntries()); got != 3 {
		t.Fatalf("entries after undo = %d, want 3", got)
	}
}

func TestCursorClampsToList(t *testing.T) {
	a := testApp(t)

	a = update(t, a, "j", "j", "j", "j", "j")
	if a.log.cursor != 2 {
		t.Fatalf("cursor = %d, want 2", a.log.cursor)
	}

	a = update(t, a, "G", "d")
	if a.log.cursor != 1 {
		t.Fatalf("cursor after deleting last row = %d, want 1", a.log.cursor)
	}
}

func TestSearchFiltersLog(t *testing.T) {
	a := testApp(t)
	if err := a.sess.UpdateSettings(func(st *model.State) {
		st.Entries[0].Note = "granny charger at the cottage"
	}); err != nil {
		t.Fatalf("seed note: %v", err)
	}

	a = update(t, a, "/")
	if !a.log.searching {
		t.Fatal("search mode not active after /")
	}

	a = update(t, a, "c", "o", "t", "t", "a", "g", "e", "enter")
	if a.log.searching {
		t.Fatal("search mode still active after enter")
	}
	if got := len(a.visibleEntries()); got != 1 {
		t.Fatalf("search hits = %d, want 1", got)
	}

	a = update(t, a, "esc")
	if got := len(a.visibleEntries()); got != 3 {
		t.Fatalf("entries after clearing search = %d, want 3", got)
	}
}

func TestViewRendersAllTabs(t *testing.T) {
	a := testApp(t)

	for _, key := range []string{"l", "c", "s", "m", "x"} {
		a = update(t, a, key)
		if out := a.View(); out == "" {
			t.Fatalf("empty view on tab %q", key)
		}
	}
}
