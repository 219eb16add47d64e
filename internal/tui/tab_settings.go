package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/insterion/ev-log/internal/cli"
	"github.com/insterion/ev-log/internal/config"
	"github.com/insterion/ev-log/internal/model"
	"github.com/insterion/ev-log/internal/store"
	"github.com/insterion/ev-log/internal/tui/components"
	"github.com/insterion/ev-log/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	settingsFieldPricePublic = iota
	settingsFieldPricePublicExp
	settingsFieldPriceHome
	settingsFieldPriceHomeExp
	settingsFieldInvestCharger
	settingsFieldInvestInstall
	settingsFieldICEMpg
	settingsFieldEVMilesPerKwh
	settingsFieldFuelPrice
	settingsFieldICEMaint
	settingsFieldTheme
	settingsFieldCount // sentinel
)

// settingsState tracks the settings tab state.
type settingsState struct {
	cursor  int
	editing bool
	input   textinput.Model
	saved   bool  // flash "saved" message briefly
	saveErr error // non-nil if last save failed
}

func newSettingsInput() textinput.Model {
	ti := textinput.New()
	ti.CharLimit = 64
	ti.Width = 30
	return ti
}

func (a App) updateSettingsKeys(key string) (tea.Model, tea.Cmd, bool) {
	switch key {
	case "j", "down":
		if a.settings.cursor < settingsFieldCount-1 {
			a.settings.cursor++
		}
		a.settings.saved = false
		return a, nil, true

	case "k", "up":
		if a.settings.cursor > 0 {
			a.settings.cursor--
		}
		a.settings.saved = false
		return a, nil, true

	case "enter":
		m, cmd := a.settingsStartEdit()
		return m, cmd, true

	case "t":
		// Quick theme cycle without entering edit mode
		for i, th := range theme.All {
			if th.Name == theme.Active.Name {
				next := theme.All[(i+1)%len(theme.All)]
				theme.SetActive(next.Name)
				a.saveTheme(next.Name)
				break
			}
		}
		return a, nil, true
	}

	return a, nil, false
}

func (a App) settingsStartEdit() (tea.Model, tea.Cmd) {
	st := a.sess.State
	a.settings.editing = true
	a.settings.saved = false

	ti := newSettingsInput()

	switch a.settings.cursor {
	case settingsFieldPricePublic:
		ti.SetValue(formatFloat(st.Prices.Public))
	case settingsFieldPricePublicExp:
		ti.SetValue(formatFloat(st.Prices.PublicExp))
	case settingsFieldPriceHome:
		ti.SetValue(formatFloat(st.Prices.Home))
	case settingsFieldPriceHomeExp:
		ti.SetValue(formatFloat(st.Prices.HomeExp))
	case settingsFieldInvestCharger:
		ti.SetValue(formatFloat(st.Investment.Charger))
	case settingsFieldInvestInstall:
		ti.SetValue(formatFloat(st.Investment.Install))
	case settingsFieldICEMpg:
		ti.SetValue(formatFloat(st.Compare.ICEMpg))
	case settingsFieldEVMilesPerKwh:
		ti.SetValue(formatFloat(st.Compare.EVMilesPerKwh))
	case settingsFieldFuelPrice:
		ti.SetValue(formatFloat(st.Compare.FuelPrice))
	case settingsFieldICEMaint:
		ti.SetValue(formatFloat(st.Compare.ICEMaintPerMile))
	case settingsFieldTheme:
		names := make([]string, len(theme.All))
		for i, th := range theme.All {
			names[i] = th.Name
		}
		ti.Placeholder = strings.Join(names, ", ")
		ti.SetValue(theme.Active.Name)
	}

	ti.Focus()
	a.settings.input = ti
	return a, ti.Cursor.BlinkCmd()
}

func (a App) updateSettingsInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.settingsSave()
		a.settings.editing = false
		a.settings.saved = a.settings.saveErr == nil
		return a, nil
	case "esc":
		a.settings.editing = false
		return a, nil
	}

	var cmd tea.Cmd
	a.settings.input, cmd = a.settings.input.Update(msg)
	return a, cmd
}

func (a *App) settingsSave() {
	val := strings.TrimSpace(a.settings.input.Value())

	if a.settings.cursor == settingsFieldTheme {
		found := false
		for _, th := range theme.All {
			if th.Name == val {
				found = true
				break
			}
		}
		if !found {
			a.settings.saveErr = fmt.Errorf("unknown theme %q", val)
			return
		}
		theme.SetActive(val)
		a.saveTheme(val)
		return
	}

	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		a.settings.saveErr = fmt.Errorf("%q is not a number", val)
		return
	}

	a.settings.saveErr = a.sess.UpdateSettings(func(st *model.State) {
		switch a.settings.cursor {
		case settingsFieldPricePublic:
			st.Prices.Public = f
		case settingsFieldPricePublicExp:
			st.Prices.PublicExp = f
		case settingsFieldPriceHome:
			st.Prices.Home = f
		case settingsFieldPriceHomeExp:
			st.Prices.HomeExp = f
		case settingsFieldInvestCharger:
			st.Investment.Charger = f
		case settingsFieldInvestInstall:
			st.Investment.Install = f
		case settingsFieldICEMpg:
			st.Compare.ICEMpg = f
		case settingsFieldEVMilesPerKwh:
			st.Compare.EVMilesPerKwh = f
		case settingsFieldFuelPrice:
			st.Compare.FuelPrice = f
		case settingsFieldICEMaint:
			st.Compare.ICEMaintPerMile = f
		}
	})
}

func (a *App) saveTheme(name string) {
	cfg, err := config.Load()
	if err != nil {
		a.settings.saveErr = err
		return
	}
	cfg.Appearance.Theme = name
	a.settings.saveErr = config.Save(cfg)
	a.settings.saved = a.settings.saveErr == nil
}

func (a App) renderSettingsTab(cw int) string {
	t := theme.Active
	st := a.sess.State

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	selectedLabelStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.SurfaceBright).Bold(true)
	accentStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface)
	greenStyle := lipgloss.NewStyle().Foreground(t.GreenBright).Background(t.Surface)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceBright)

	type field struct {
		label string
		value string
	}

	fields := []field{
		{"Public price", cli.FormatRate(st.Prices.Public)},
		{"Public exp price", cli.FormatRate(st.Prices.PublicExp)},
		{"Home price", cli.FormatRate(st.Prices.Home)},
		{"Home exp price", cli.FormatRate(st.Prices.HomeExp)},
		{"Charger cost", cli.FormatMoney(st.Investment.Charger)},
		{"Install cost", cli.FormatMoney(st.Investment.Install)},
		{"ICE mpg", cli.FormatNumber(st.Compare.ICEMpg)},
		{"EV mi/kWh", cli.FormatNumber(st.Compare.EVMilesPerKwh)},
		{"Fuel price/L", cli.FormatMoney(st.Compare.FuelPrice)},
		{"ICE maint/mi", cli.FormatMoney(st.Compare.ICEMaintPerMile)},
		{"Theme", theme.Active.Name},
	}

	var formBody strings.Builder
	for i, f := range fields {
		// Show text input if currently editing this field
		if a.settings.editing && i == a.settings.cursor {
			formBody.WriteString(markerStyle.Render("▸ "))
			formBody.WriteString(accentStyle.Render(fmt.Sprintf("%-18s ", f.label)))
			formBody.WriteString(a.settings.input.View())
			formBody.WriteString("\n")
			continue
		}

		if i == a.settings.cursor {
			marker := markerStyle.Render("▸ ")
			label := selectedLabelStyle.Render(fmt.Sprintf("%-18s ", f.label+":"))
			value := selectedStyle.Render(f.value)
			formBody.WriteString(marker)
			formBody.WriteString(label)
			formBody.WriteString(value)
			usedWidth := lipgloss.Width(marker) + lipgloss.Width(label) + lipgloss.Width(value)
			innerW := components.CardInnerWidth(cw)
			padLen := innerW - usedWidth
			if padLen > 0 {
				formBody.WriteString(lipgloss.NewStyle().Background(t.SurfaceBright).Render(strings.Repeat(" ", padLen)))
			}
		} else {
			formBody.WriteString(lipgloss.NewStyle().Background(t.Surface).Render("  "))
			formBody.WriteString(labelStyle.Render(fmt.Sprintf("%-18s ", f.label+":")))
			formBody.WriteString(valueStyle.Render(f.value))
		}
		formBody.WriteString("\n")
	}

	if a.settings.saveErr != nil {
		warnStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)
		formBody.WriteString("\n")
		formBody.WriteString(warnStyle.Render(fmt.Sprintf("Save failed: %s", a.settings.saveErr)))
	} else if a.settings.saved {
		formBody.WriteString("\n")
		formBody.WriteString(greenStyle.Render("Saved!"))
	}

	formBody.WriteString("\n")
	formBody.WriteString(labelStyle.Render("[j/k] navigate  [Enter] edit  [t] cycle theme  [Esc] cancel"))

	// General info card
	var infoBody strings.Builder
	infoBody.WriteString(labelStyle.Render("Config file:  ") + valueStyle.Render(config.ConfigPath()) + "\n")
	infoBody.WriteString(labelStyle.Render("Entries:      ") + valueStyle.Render(cli.FormatCount(int64(len(st.Entries)))) + "\n")
	infoBody.WriteString(labelStyle.Render("Costs:        ") + valueStyle.Render(cli.FormatCount(int64(len(st.Costs)))) + "\n")
	backup := "never"
	if last, ok := store.LastBackup(a.kv); ok {
		backup = last.Format("2006-01-02 15:04")
	}
	infoBody.WriteString(labelStyle.Render("Last backup:  ") + valueStyle.Render(backup))

	var b strings.Builder
	b.WriteString(components.ContentCard("Settings", formBody.String(), cw))
	b.WriteString("\n")
	b.WriteString(components.ContentCard("About", infoBody.String(), cw))

	return b.String()
}
