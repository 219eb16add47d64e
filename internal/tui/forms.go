package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/insterion/ev-log/internal/model"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// entryFormVals backs the add/edit charging entry form. Numeric fields stay
// strings until submit; an empty price means "use the configured price for
// the chosen type".
type entryFormVals struct {
	date  string
	typ   string
	kwh   string
	price string
	note  string
}

type costFormVals struct {
	date     string
	vehicle  string
	category string
	amount   string
	spread   string
	miles    string
	note     string
}

func newEntryForm(v *entryFormVals, title string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Date").
				Placeholder("YYYY-MM-DD").
				Value(&v.date).
				Validate(validDate),
			huh.NewSelect[string]().
				Title("Type").
				Options(
					huh.NewOption("Home (cheap rate)", "home"),
					huh.NewOption("Home (expensive rate)", "home_exp"),
					huh.NewOption("Public", "public"),
					huh.NewOption("Public (expensive)", "public_exp"),
					huh.NewOption("Custom price", "custom"),
				).
				Value(&v.typ),
			huh.NewInput().
				Title("Energy (kWh)").
				Value(&v.kwh).
				Validate(validPositiveNumber),
			huh.NewInput().
				Title("Price per kWh").
				Description("Leave blank to use the configured price for the type").
				Value(&v.price).
				Validate(validOptionalNumber),
			huh.NewInput().
				Title("Note").
				Value(&v.note),
		).Title(title),
	).WithShowHelp(false)
}

func newCostForm(v *costFormVals, title string) *huh.Form {
	categoryOpts := make([]huh.Option[string], 0, len(model.CategoryOrder))
	for _, c := range model.CategoryOrder {
		categoryOpts = append(categoryOpts, huh.NewOption(string(c), string(c)))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Date").
				Placeholder("YYYY-MM-DD").
				Value(&v.date).
				Validate(validDate),
			huh.NewSelect[string]().
				Title("Vehicle").
				Options(
					huh.NewOption("EV", "ev"),
					huh.NewOption("Petrol car", "ice"),
				).
				Value(&v.vehicle),
			huh.NewSelect[string]().
				Title("Category").
				Options(categoryOpts...).
				Value(&v.category),
			huh.NewInput().
				Title("Amount").
				Value(&v.amount).
				Validate(validPositiveNumber),
			huh.NewSelect[string]().
				Title("Spread").
				Description("How the amount counts in monthly views").
				Options(
					huh.NewOption("One-off", "oneoff"),
					huh.NewOption("Monthly", "monthly"),
					huh.NewOption("Yearly (1/12 per month)", "yearly"),
				).
				Value(&v.spread),
			huh.NewInput().
				Title("Odometer miles").
				Value(&v.miles),
			huh.NewInput().
				Title("Note").
				Value(&v.note),
		).Title(title),
	).WithShowHelp(false)
}

// ─── Form lifecycle ─────────────────────────────────────────────

func (a App) openForm(kind formKind) (tea.Model, tea.Cmd) {
	a.formKind = kind
	today := a.sess.Now().Format("2006-01-02")

	switch kind {
	case formEntryAdd:
		a.entryVals = &entryFormVals{date: today, typ: "home"}
		a.form = newEntryForm(a.entryVals, "Add charging entry")

	case formEntryEdit:
		d := a.sess.EntryDraft()
		if d == nil {
			a.formKind = formNone
			return a, nil
		}
		a.entryVals = &entryFormVals{
			date:  d.Date,
			typ:   string(d.Type),
			kwh:   formatFloat(d.Kwh),
			price: formatFloat(d.Price),
			note:  d.Note,
		}
		a.form = newEntryForm(a.entryVals, "Edit charging entry")

	case formCostAdd:
		a.costVals = &costFormVals{date: today, vehicle: "ev", category: "other", spread: "oneoff"}
		a.form = newCostForm(a.costVals, "Add cost")

	case formCostEdit:
		d := a.sess.CostDraft()
		if d == nil {
			a.formKind = formNone
			return a, nil
		}
		a.costVals = &costFormVals{
			date:     d.Date,
			vehicle:  string(d.Vehicle),
			category: string(d.Category),
			amount:   formatFloat(d.Amount),
			spread:   string(d.Spread),
			miles:    d.Miles,
			note:     d.Note,
		}
		a.form = newCostForm(a.costVals, "Edit cost")
	}

	if a.width > 0 {
		a.form = a.form.WithWidth(a.contentWidth() - 4)
	}
	return a, a.form.Init()
}

func (a App) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.form = f
	}

	if a.form.State == huh.StateCompleted {
		a.submitForm()
		a.form = nil
		a.formKind = formNone
		return a, nil
	}

	if a.form.State == huh.StateAborted {
		a.cancelForm()
		a.form = nil
		a.formKind = formNone
		return a, nil
	}

	return a, cmd
}

func (a *App) submitForm() {
	switch a.formKind {
	case formEntryAdd:
		v := a.entryVals
		e := model.ChargingEntry{
			Date:  v.date,
			Type:  model.NormalizeChargeType(v.typ),
			Kwh:   parseFloat(v.kwh),
			Price: a.entryPrice(v),
			Note:  strings.TrimSpace(v.note),
		}
		if _, err := a.sess.AddEntry(e); err != nil {
			a.setNotice(fmt.Sprintf("not added: %v", err))
			return
		}
		a.setNotice("entry added")
		a.log.cursor = 0

	case formEntryEdit:
		v := a.entryVals
		d := a.sess.EntryDraft()
		if d == nil {
			return
		}
		d.Date = v.date
		d.Type = model.NormalizeChargeType(v.typ)
		d.Kwh = parseFloat(v.kwh)
		d.Price = a.entryPrice(v)
		d.Note = strings.TrimSpace(v.note)
		if err := a.sess.CommitEntryEdit(); err != nil {
			a.setNotice(fmt.Sprintf("not saved: %v", err))
			return
		}
		a.setNotice("entry saved")

	case formCostAdd:
		v := a.costVals
		c := model.Cost{
			Date:     v.date,
			Vehicle:  model.NormalizeVehicle(v.vehicle),
			Category: model.NormalizeCategory(v.category),
			Amount:   parseFloat(v.amount),
			Spread:   model.NormalizeSpread(v.spread),
			Miles:    strings.TrimSpace(v.miles),
			Note:     strings.TrimSpace(v.note),
		}
		if _, err := a.sess.AddCost(c); err != nil {
			a.setNotice(fmt.Sprintf("not added: %v", err))
			return
		}
		a.setNotice("cost added")
		a.costs.cursor = 0

	case formCostEdit:
		v := a.costVals
		d := a.sess.CostDraft()
		if d == nil {
			return
		}
		d.Date = v.date
		d.Vehicle = model.NormalizeVehicle(v.vehicle)
		d.Category = model.NormalizeCategory(v.category)
		d.Amount = parseFloat(v.amount)
		d.Spread = model.NormalizeSpread(v.spread)
		d.Miles = strings.TrimSpace(v.miles)
		d.Note = strings.TrimSpace(v.note)
		if err := a.sess.CommitCostEdit(); err != nil {
			a.setNotice(fmt.Sprintf("not saved: %v", err))
			return
		}
		a.setNotice("cost saved")
	}
}

func (a *App) cancelForm() {
	switch a.formKind {
	case formEntryEdit:
		a.sess.CancelEntryEdit()
	case formCostEdit:
		a.sess.CancelCostEdit()
	}
}

// entryPrice resolves a blank price field to the configured price for the
// chosen charge type.
func (a App) entryPrice(v *entryFormVals) float64 {
	if strings.TrimSpace(v.price) == "" {
		return a.sess.State.Prices.For(model.NormalizeChargeType(v.typ))
	}
	return parseFloat(v.price)
}

func (a App) renderForm(cw int) string {
	body := a.form.View()
	return "\n" + body
}

// ─── Field validation ───────────────────────────────────────────

func validDate(s string) error {
	s = strings.TrimSpace(s)
	if len(s) != 10 || s[4] != '-' || s[7] != '-' {
		return fmt.Errorf("use YYYY-MM-DD")
	}
	return nil
}

func validPositiveNumber(s string) error {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fmt.Errorf("enter a number")
	}
	if f <= 0 {
		return fmt.Errorf("must be greater than zero")
	}
	return nil
}

func validOptionalNumber(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("enter a number or leave blank")
	}
	if f < 0 {
		return fmt.Errorf("must not be negative")
	}
	return nil
}

func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
