// Package tui implements the interactive full-screen dashboard.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/insterion/ev-log/internal/calc"
	"github.com/insterion/ev-log/internal/session"
	"github.com/insterion/ev-log/internal/store"
	"github.com/insterion/ev-log/internal/tui/components"
	"github.com/insterion/ev-log/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

const (
	minTerminalWidth = 60
	maxContentWidth  = 110
	minContentHeight = 8
)

// Tab indices, matching components.Tabs order.
const (
	tabLog = iota
	tabCosts
	tabSummary
	tabCompare
	tabSettings
)

var tabNames = []string{"log", "costs", "summary", "compare", "settings"}

type formKind int

const (
	formNone formKind = iota
	formEntryAdd
	formEntryEdit
	formCostAdd
	formCostEdit
)

// App is the bubbletea model for the dashboard.
type App struct {
	sess *session.Session
	kv   store.KV

	width  int
	height int

	activeTab int
	showHelp  bool
	period    calc.Period

	log      logState
	costs    costState
	settings settingsState

	form      *huh.Form
	formKind  formKind
	entryVals *entryFormVals
	costVals  *costFormVals

	// Transient status-bar notice. While a deletion is undoable the notice
	// shows a live countdown instead.
	notice       string
	noticeUntil  time.Time
	undoKind     string
	undoDeadline time.Time
}

// NewApp builds the dashboard model around an already-loaded session.
// The previously active tab is restored from the aux store.
func NewApp(sess *session.Session, kv store.KV, period calc.Period) App {
	a := App{
		sess:   sess,
		kv:     kv,
		period: period,
	}
	a.log.searchInput = newSearchInput()
	if last := store.LastTab(kv); last != "" {
		for i, name := range tabNames {
			if name == last {
				a.activeTab = i
			}
		}
	}
	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tickCmd()
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.form != nil {
			a.form = a.form.WithWidth(a.contentWidth() - 4)
		}
		return a, nil

	case tea.MouseMsg:
		if a.showHelp || a.form != nil {
			return a, nil
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			return a.moveCursor(-1), nil
		case tea.MouseButtonWheelDown:
			return a.moveCursor(1), nil
		case tea.MouseButtonLeft:
			if msg.Y == 0 {
				if tab := a.tabAtX(msg.X); tab >= 0 {
					return a.switchTab(tab), nil
				}
			}
		}
		return a, nil

	case tickMsg:
		a.refreshNotice()
		return a, tickCmd()

	case tea.KeyMsg:
		key := msg.String()

		if key == "ctrl+c" {
			return a, tea.Quit
		}

		// An open form intercepts all keys
		if a.form != nil {
			return a.updateForm(msg)
		}

		// Settings tab has its own keybindings while editing (text input)
		if a.activeTab == tabSettings && a.settings.editing {
			return a.updateSettingsInput(msg)
		}

		// Log search mode intercepts all keys when active
		if a.activeTab == tabLog && a.log.searching {
			return a.updateLogSearch(msg)
		}

		// Help toggle
		if key == "?" {
			a.showHelp = !a.showHelp
			return a, nil
		}
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		// Tab-local keys first, then global navigation
		if model, cmd, handled := a.updateTabKeys(key); handled {
			return model, cmd
		}

		switch key {
		case "q", "esc":
			return a, tea.Quit
		case "tab", "right":
			return a.switchTab((a.activeTab + 1) % len(components.Tabs)), nil
		case "shift+tab", "left":
			return a.switchTab((a.activeTab + len(components.Tabs) - 1) % len(components.Tabs)), nil
		case "p":
			return a.cyclePeriod(), nil
		}

		if len(key) == 1 {
			if tab := components.TabIdxByKey(rune(key[0])); tab >= 0 {
				return a.switchTab(tab), nil
			}
		}
		return a, nil
	}

	return a, nil
}

// updateTabKeys dispatches keys owned by the active tab.
func (a App) updateTabKeys(key string) (tea.Model, tea.Cmd, bool) {
	switch a.activeTab {
	case tabLog:
		return a.updateLogKeys(key)
	case tabCosts:
		return a.updateCostKeys(key)
	case tabSettings:
		return a.updateSettingsKeys(key)
	}
	return a, nil, false
}

func (a App) switchTab(tab int) App {
	a.activeTab = tab
	a.log.searching = false
	store.SetLastTab(a.kv, tabNames[tab]) //nolint:errcheck // cosmetic state
	return a
}

func (a App) cyclePeriod() App {
	switch a.period {
	case calc.PeriodAll:
		a.period = calc.PeriodThisMonth
	case calc.PeriodThisMonth:
		a.period = calc.PeriodLastMonth
	default:
		a.period = calc.PeriodAll
	}
	a.log.cursor = 0
	a.costs.cursor = 0
	store.SetLastPeriod(a.kv, a.period.String()) //nolint:errcheck // cosmetic state
	return a
}

func (a App) moveCursor(delta int) App {
	switch a.activeTab {
	case tabLog:
		a.log.cursor = clampCursor(a.log.cursor+delta, len(a.visibleEntries()))
	case tabCosts:
		a.costs.cursor = clampCursor(a.costs.cursor+delta, len(a.visibleCosts()))
	}
	return a
}

func clampCursor(cursor, n int) int {
	if cursor >= n {
		cursor = n - 1
	}
	if cursor < 0 {
		cursor = 0
	}
	return cursor
}

// ─── Notices ────────────────────────────────────────────────────

func (a *App) setNotice(s string) {
	a.notice = s
	a.noticeUntil = a.sess.Now().Add(4 * time.Second)
	a.undoKind = ""
}

func (a *App) armUndoNotice(kind string) {
	a.undoKind = kind
	a.undoDeadline = a.sess.Now().Add(a.sess.UndoWindow())
}

// refreshNotice keeps the undo countdown live and expires stale notices.
func (a *App) refreshNotice() {
	if a.undoKind != "" {
		if a.sess.EntryUndoLive() || a.sess.CostUndoLive() {
			rem := a.undoDeadline.Sub(a.sess.Now())
			if rem < 0 {
				rem = 0
			}
			secs := int((rem + time.Second - 1) / time.Second)
			a.notice = fmt.Sprintf("deleted %s │ press u to undo (%ds)", a.undoKind, secs)
			return
		}
		a.undoKind = ""
		a.notice = ""
		return
	}
	if a.notice != "" && a.sess.Now().After(a.noticeUntil) {
		a.notice = ""
	}
}

// ─── View ───────────────────────────────────────────────────────

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	if a.showHelp {
		return a.viewHelp()
	}

	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := a.height
	if h < 5 {
		h = 5
	}

	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  ev-log needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)

	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	// 1. Header: tab bar plus the period pill
	pillStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface)

	pillAccentStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface).
		Bold(true)

	pill := pillStyle.Render(" ") + pillAccentStyle.Render(a.period.Label())
	if a.log.searchQuery != "" {
		pill += pillStyle.Render(" │ ") + pillAccentStyle.Render("/"+a.log.searchQuery)
	}
	pill += pillStyle.Render(" ")

	pillRowStyle := lipgloss.NewStyle().
		Background(t.Surface).
		Width(w)

	header := components.RenderTabBar(a.activeTab, w) + "\n" +
		pillRowStyle.Render(pill)

	// 2. Status bar
	statusBar := components.RenderStatusBar(w, a.statusHints(), a.notice)

	// 3. Content zone height
	headerH := lipgloss.Height(header)
	statusH := lipgloss.Height(statusBar)
	contentH := h - headerH - statusH
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	// 4. Tab content, or the open form in its place
	var content string
	if a.form != nil {
		content = a.renderForm(cw)
	} else {
		switch a.activeTab {
		case tabLog:
			content = a.renderLogTab(cw, contentH)
		case tabCosts:
			content = a.renderCostsTab(cw, contentH)
		case tabSummary:
			content = a.renderSummaryTab(cw)
		case tabCompare:
			content = a.renderCompareTab(cw)
		case tabSettings:
			content = a.renderSettingsTab(cw)
		}
	}

	// 5. Truncate + pad to exactly contentH lines
	content = padHeight(truncateHeight(content, contentH), contentH)

	// 6. Fill each line to full width with background
	content = fillLinesWithBackground(content, cw, t.Background)

	// 7. Center when w > cw
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	// 8. Stack and fill the whole terminal
	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) statusHints() string {
	switch {
	case a.form != nil:
		return "[enter]next  [esc]cancel"
	case a.activeTab == tabLog && a.log.searching:
		return "[enter]apply  [esc]clear"
	case a.activeTab == tabLog:
		return "[a]dd  [e]dit  [d]elete  [D]uplicate  [/]search  [p]eriod  [?]help  [q]uit"
	case a.activeTab == tabCosts:
		return "[a]dd  [e]dit  [d]elete  [v]ehicle  [p]eriod  [?]help  [q]uit"
	case a.activeTab == tabSettings && a.settings.editing:
		return "[enter]save  [esc]cancel"
	case a.activeTab == tabSettings:
		return "[enter]edit  [t]heme  [?]help  [q]uit"
	default:
		return "[p]eriod  [?]help  [q]uit"
	}
}

func (a App) viewHelp() string {
	t := theme.Active

	keyStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	sectionStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Bold(true)

	row := func(key, desc string) string {
		return keyStyle.Render(fmt.Sprintf("  %-11s", key)) + descStyle.Render(desc)
	}

	lines := []string{
		sectionStyle.Render("Navigation"),
		row("l c s m x", "jump to tab"),
		row("tab / ←→", "cycle tabs"),
		row("p", "cycle period (all / this month / last month)"),
		row("j k / ↑↓", "move selection"),
		"",
		sectionStyle.Render("Log"),
		row("a", "add charging entry"),
		row("e", "edit selected entry"),
		row("D", "duplicate selected entry with today's date"),
		row("d", "delete selected (u to undo)"),
		row("/", "search notes and attachments"),
		"",
		sectionStyle.Render("Costs"),
		row("a e d u", "as in the log"),
		row("v", "filter by vehicle (all / ev / ice)"),
		"",
		sectionStyle.Render("General"),
		row("?", "toggle this help"),
		row("q", "quit"),
	}

	card := components.ContentCard("Keyboard shortcuts", strings.Join(lines, "\n"), 58)

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// tabAtX maps a click x position on the tab bar row to a tab index, -1 when
// the click lands between tabs.
func (a App) tabAtX(x int) int {
	pos := 1 // leading space
	for i, tab := range components.Tabs {
		w := len(tab.Name)
		if i != a.activeTab {
			w += 3 // "[k]" shortcut marker
		}
		if x >= pos && x < pos+w {
			return i
		}
		pos += w + 2
	}
	return -1
}

// ─── Ticker ─────────────────────────────────────────────────────

type tickMsg struct{}

func tickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

// ─── Layout helpers ─────────────────────────────────────────────

func mutedText(s string) string {
	return lipgloss.NewStyle().Foreground(theme.Active.TextMuted).Render(s)
}

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color so
// gaps between cards and empty lines keep the theme background.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		placed := lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
		result.WriteString(placed)
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}
