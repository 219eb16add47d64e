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

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// costState holds the costs tab state. vehicle narrows the list to one
// vehicle; empty means both.
type costState struct {
	cursor  int
	vehicle model.Vehicle
}

// visibleCosts returns the period- and vehicle-filtered costs, newest first.
func (a App) visibleCosts() []model.Cost {
	filtered := filter.Costs(a.sess.State.Costs, a.period, a.sess.Now())

	var out []model.Cost
	for i := len(filtered) - 1; i >= 0; i-- {
		c := filtered[i]
		if a.costs.vehicle != "" && c.Vehicle != a.costs.vehicle {
			continue
		}
		out = append(out, c)
	}
	return out
}

func (a App) selectedCost() (model.Cost, bool) {
	costs := a.visibleCosts()
	if len(costs) == 0 {
		return model.Cost{}, false
	}
	cursor := clampCursor(a.costs.cursor, len(costs))
	return costs[cursor], true
}

func (a App) updateCostKeys(key string) (tea.Model, tea.Cmd, bool) {
	switch key {
	case "j", "down":
		a.costs.cursor = clampCursor(a.costs.cursor+1, len(a.visibleCosts()))
		return a, nil, true

	case "k", "up":
		a.costs.cursor = clampCursor(a.costs.cursor-1, len(a.visibleCosts()))
		return a, nil, true

	case "g":
		a.costs.cursor = 0
		return a, nil, true

	case "G":
		a.costs.cursor = clampCursor(len(a.visibleCosts())-1, len(a.visibleCosts()))
		return a, nil, true

	case "v":
		switch a.costs.vehicle {
		case "":
			a.costs.vehicle = model.VehicleEV
		case model.VehicleEV:
			a.costs.vehicle = model.VehicleICE
		default:
			a.costs.vehicle = ""
		}
		a.costs.cursor = 0
		return a, nil, true

	case "a":
		m, cmd := a.openForm(formCostAdd)
		return m, cmd, true

	case "e":
		c, ok := a.selectedCost()
		if !ok {
			return a, nil, true
		}
		if a.sess.StartEditCost(c.ID) {
			m, cmd := a.openForm(formCostEdit)
			return m, cmd, true
		}
		return a, nil, true

	case "d":
		c, ok := a.selectedCost()
		if !ok {
			return a, nil, true
		}
		if err := a.sess.DeleteCost(c.ID); err != nil {
			a.setNotice(fmt.Sprintf("not deleted: %v", err))
			return a, nil, true
		}
		a.armUndoNotice("cost")
		a.refreshNotice()
		a.costs.cursor = clampCursor(a.costs.cursor, len(a.visibleCosts()))
		return a, nil, true

	case "u":
		ok, err := a.sess.UndoDeleteCost()
		switch {
		case err != nil:
			a.setNotice(fmt.Sprintf("undo failed: %v", err))
		case ok:
			a.setNotice("cost restored")
		default:
			a.setNotice("nothing to undo")
		}
		return a, nil, true
	}

	return a, nil, false
}

func (a App) renderCostsTab(cw, h int) string {
	t := theme.Active
	costs := a.visibleCosts()

	scope := "both vehicles"
	if a.costs.vehicle != "" {
		scope = string(a.costs.vehicle)
	}
	title := fmt.Sprintf("Other costs │ %s │ %s", a.period.Label(), scope)

	if len(costs) == 0 {
		body := lipgloss.NewStyle().Foreground(t.TextMuted).
			Render("No costs recorded. Press a to add one.")
		return components.ContentCard(title, body, cw)
	}

	inner := components.CardInnerWidth(cw)
	cursor := clampCursor(a.costs.cursor, len(costs))

	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceHover).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	noteW := inner - 56
	if noteW < 8 {
		noteW = 8
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%-11s %-4s %-12s %9s %10s  %s",
		"Date", "Veh", "Category", "Amount", "Counted", "Note")))
	b.WriteString("\n")

	visible := h - 7
	if visible < 4 {
		visible = 4
	}
	start := 0
	if cursor >= visible {
		start = cursor - visible + 1
	}
	end := start + visible
	if end > len(costs) {
		end = len(costs)
	}

	var total float64
	for _, c := range costs {
		total += c.Amount * calc.SpreadFactor(c.Spread, a.period)
	}

	for i := start; i < end; i++ {
		c := costs[i]
		counted := c.Amount * calc.SpreadFactor(c.Spread, a.period)
		countedCell := cli.FormatMoney(counted)
		if c.Spread == model.SpreadYearly && a.period != calc.PeriodAll {
			countedCell += " (1/12)"
		}

		note := c.Note
		if c.Miles != "" {
			if note != "" {
				note += " "
			}
			note += "@" + c.Miles + "mi"
		}

		line := fmt.Sprintf("%-11s %-4s %-12s %9s %10s  %s",
			c.Date,
			string(c.Vehicle),
			string(c.Category),
			cli.FormatMoney(c.Amount),
			countedCell,
			truncStr(note, noteW),
		)

		if i == cursor {
			b.WriteString(selectedStyle.Render(truncStr(line, inner)))
		} else {
			b.WriteString(rowStyle.Render(truncStr(line, inner)))
		}
		b.WriteString("\n")
	}

	b.WriteString(mutedStyle.Render(fmt.Sprintf("%d of %d │ counted total %s",
		cursor+1, len(costs), cli.FormatMoney(total))))

	return components.ContentCard(title, b.String(), cw)
}
