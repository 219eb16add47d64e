package tui

import (
	"fmt"
	"strings"

	"github.com/insterion/ev-log/internal/calc"
	"github.com/insterion/ev-log/internal/cli"
	"github.com/insterion/ev-log/internal/filter"
	"github.com/insterion/ev-log/internal/model"
	"github.com/insterion/ev-log/internal/tui/components"
	"github.com/insterion/ev-log/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// logState holds the log tab state.
type logState struct {
	cursor      int
	searching   bool
	searchInput textinput.Model
	searchQuery string
}

func newSearchInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "search notes and attachments"
	ti.CharLimit = 120
	ti.Width = 40
	return ti
}

// visibleEntries returns the period- and search-filtered entries,
// newest first.
func (a App) visibleEntries() []model.ChargingEntry {
	q := filter.Query{Search: a.log.searchQuery}
	filtered := filter.Entries(a.sess.State.Entries, a.period, q, a.sess.Now())

	out := make([]model.ChargingEntry, len(filtered))
	for i, e := range filtered {
		out[len(filtered)-1-i] = e
	}
	return out
}

func (a App) selectedEntry() (model.ChargingEntry, bool) {
	entries := a.visibleEntries()
	if len(entries) == 0 {
		return model.ChargingEntry{}, false
	}
	cursor := clampCursor(a.log.cursor, len(entries))
	return entries[cursor], true
}

func (a App) updateLogKeys(key string) (tea.Model, tea.Cmd, bool) {
	switch key {
	case "j", "down":
		a.log.cursor = clampCursor(a.log.cursor+1, len(a.visibleEntries()))
		return a, nil, true

	case "k", "up":
		a.log.cursor = clampCursor(a.log.cursor-1, len(a.visibleEntries()))
		return a, nil, true

	case "g":
		a.log.cursor = 0
		return a, nil, true

	case "G":
		a.log.cursor = clampCursor(len(a.visibleEntries())-1, len(a.visibleEntries()))
		return a, nil, true

	case "/":
		a.log.searching = true
		a.log.searchInput = newSearchInput()
		a.log.searchInput.SetValue(a.log.searchQuery)
		a.log.searchInput.Focus()
		return a, a.log.searchInput.Cursor.BlinkCmd(), true

	case "esc":
		if a.log.searchQuery != "" {
			a.log.searchQuery = ""
			a.log.cursor = 0
			return a, nil, true
		}
		return a, nil, false

	case "a":
		m, cmd := a.openForm(formEntryAdd)
		return m, cmd, true

	case "e":
		e, ok := a.selectedEntry()
		if !ok {
			return a, nil, true
		}
		if a.sess.StartEditEntry(e.ID) {
			m, cmd := a.openForm(formEntryEdit)
			return m, cmd, true
		}
		return a, nil, true

	case "D":
		e, ok := a.selectedEntry()
		if !ok {
			return a, nil, true
		}
		if _, err := a.sess.DuplicateEntry(e.ID); err != nil {
			a.setNotice(fmt.Sprintf("not duplicated: %v", err))
		} else {
			a.setNotice("entry duplicated with today's date")
		}
		return a, nil, true

	case "d":
		e, ok := a.selectedEntry()
		if !ok {
			return a, nil, true
		}
		if err := a.sess.DeleteEntry(e.ID); err != nil {
			a.setNotice(fmt.Sprintf("not deleted: %v", err))
			return a, nil, true
		}
		a.armUndoNotice("entry")
		a.refreshNotice()
		a.log.cursor = clampCursor(a.log.cursor, len(a.visibleEntries()))
		return a, nil, true

	case "u":
		ok, err := a.sess.UndoDeleteEntry()
		switch {
		case err != nil:
			a.setNotice(fmt.Sprintf("undo failed: %v", err))
		case ok:
			a.setNotice("entry restored")
		default:
			a.setNotice("nothing to undo")
		}
		return a, nil, true
	}

	return a, nil, false
}

func (a App) updateLogSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.log.searchQuery = strings.TrimSpace(a.log.searchInput.Value())
		a.log.searching = false
		a.log.cursor = 0
		return a, nil

	case "esc":
		a.log.searching = false
		return a, nil
	}

	var cmd tea.Cmd
	a.log.searchInput, cmd = a.log.searchInput.Update(msg)
	return a, cmd
}

func (a App) renderLogTab(cw, h int) string {
	t := theme.Active
	entries := a.visibleEntries()

	title := fmt.Sprintf("Charging log │ %s", a.period.Label())

	var header strings.Builder
	if a.log.searching {
		header.WriteString(" / " + a.log.searchInput.View() + "\n\n")
	}

	if len(entries) == 0 {
		body := lipgloss.NewStyle().Foreground(t.TextMuted).
			Render("No entries. Press a to add one.")
		return header.String() + components.ContentCard(title, body, cw)
	}

	inner := components.CardInnerWidth(cw)
	cursor := clampCursor(a.log.cursor, len(entries))

	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceHover).Bold(true)
	savedStyle := lipgloss.NewStyle().Foreground(t.Green)
	negStyle := lipgloss.NewStyle().Foreground(t.Red)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	noteW := inner - 58
	if noteW < 8 {
		noteW = 8
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%-11s %-10s %9s %8s %9s %8s  %s",
		"Date", "Type", "kWh", "Price", "Cost", "Saved", "Note")))
	b.WriteString("\n")

	// Window the list around the cursor
	visible := h - 7 // card border, title, column header, search row slack
	if visible < 4 {
		visible = 4
	}
	start := 0
	if cursor >= visible {
		start = cursor - visible + 1
	}
	end := start + visible
	if end > len(entries) {
		end = len(entries)
	}

	base := a.sess.State.Prices.Public
	for i := start; i < end; i++ {
		e := entries[i]
		saved := calc.EntrySaved(base, e)

		savedCell := fmt.Sprintf("%8s", "")
		if !e.Type.IsPublic() {
			savedCell = fmt.Sprintf("%8s", cli.FormatSigned(saved))
		}

		note := e.Note
		if n := len(e.Attachments); n > 0 {
			if note != "" {
				note += " "
			}
			note += fmt.Sprintf("[%d att]", n)
		}

		prefix := fmt.Sprintf("%-11s %-10s %9s %8s %9s ",
			e.Date,
			string(e.Type),
			cli.FormatKwh(e.Kwh),
			cli.FormatRate(e.Price),
			cli.FormatMoney(e.Cost()),
		)
		suffix := "  " + truncStr(note, noteW)

		if i == cursor {
			b.WriteString(selectedStyle.Render(truncStr(prefix+savedCell+suffix, inner)))
		} else {
			cellStyle := savedStyle
			if saved < 0 {
				cellStyle = negStyle
			}
			b.WriteString(rowStyle.Render(prefix) +
				cellStyle.Render(savedCell) +
				rowStyle.Render(suffix))
		}
		b.WriteString("\n")
	}

	b.WriteString(mutedStyle.Render(fmt.Sprintf("%d of %d", cursor+1, len(entries))))

	return header.String() + components.ContentCard(title, b.String(), cw)
}
