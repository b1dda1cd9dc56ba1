package tui

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"stickycal/internal/interaction"
)

// formKind says which dialog the active huh form belongs to, so form
// completion knows what to commit.
type formKind int

const (
	formNone formKind = iota
	formSaveTemplate
	formConfirmOverwrite
	formApplyTemplate
	formDeleteTemplate
	formConfirmDelete
	formConfirmClear
	formGoto
	formSchedule
	formImport
)

// renderActionBar shows the popover actions for the current mode in a
// single contextual line above the footer.
func (a App) renderActionBar() string {
	st := a.machine.State()

	var hint string
	switch {
	case a.decorating:
		s := st.WorkingStyle
		weight := " "
		if s.FontWeight == "bold" {
			weight = "B"
		}
		italic := " "
		if s.FontStyle == "italic" {
			italic = "I"
		}
		hint = fmt.Sprintf("decorate  c:text %s  g:label %s  +/-:size %d  b:[%s]  i:[%s]  esc:done",
			s.Color, s.BackgroundColor, s.FontSize, weight, italic)

	case st.Kind == interaction.LabelActive && st.Editing:
		if st.LabelKind == interaction.NewLabel {
			hint = "editing  enter:save  ctrl+p:paste  esc:cancel"
			if a.store.Clipboard() == nil {
				hint = "editing  enter:save  esc:cancel"
			}
		} else {
			hint = "editing  enter:save  esc:close"
		}

	case st.Kind == interaction.LabelActive:
		hint = "label  e:edit  s:style  m:move  c:copy  d:delete  esc:close"

	case st.Kind == interaction.CellSelected:
		hint = fmt.Sprintf("%s  a:apply template  s:save as template  x:delete template  esc:close", st.Date)

	case st.Kind == interaction.TapMoving:
		hint = warningStyle.Render("moving: click the destination cell (esc abandons)")
		return actionBarStyle.Render(hint)

	case st.Kind == interaction.Dragging && st.Confirmed:
		hint = warningStyle.Render("dragging: release over a cell to drop")
		return actionBarStyle.Render(hint)

	default:
		return actionBarStyle.Render(mutedStyle.Render("double-click a cell to add a label · click a cell for templates"))
	}

	return actionBarStyle.Render(hint)
}

// --- huh form constructors: value pointers live on App ---

func (a App) newSaveTemplateForm() (App, *huh.Form) {
	*a.formText = ""
	a.formKind = formSaveTemplate
	f := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Template name").Value(a.formText),
		),
	).WithShowHelp(true).WithShowErrors(true)
	return a, f
}

func (a App) newConfirmOverwriteForm(name string) (App, *huh.Form) {
	*a.formOK = false
	a.formKind = formConfirmOverwrite
	a.pendingName = name
	f := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Template %q already exists. Overwrite?", name)).
				Value(a.formOK),
		),
	).WithShowHelp(true)
	return a, f
}

func (a App) newPickTemplateForm(kind formKind, title string) (App, *huh.Form) {
	*a.formPick = ""
	a.formKind = kind
	names := a.store.TemplateNames()
	opts := make([]huh.Option[string], len(names))
	for i, n := range names {
		opts[i] = huh.NewOption(n, n)
	}
	f := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title(title).Options(opts...).Value(a.formPick),
		),
	).WithShowHelp(true).WithShowErrors(true)
	return a, f
}

func (a App) newConfirmDeleteForm(name string) (App, *huh.Form) {
	*a.formOK = false
	a.formKind = formConfirmDelete
	a.pendingName = name
	f := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete template %q?", name)).
				Value(a.formOK),
		),
	).WithShowHelp(true)
	return a, f
}

func (a App) newConfirmClearForm() (App, *huh.Form) {
	*a.formOK = false
	a.formKind = formConfirmClear
	f := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Clear all labels and start a new schedule? Unsaved data is lost.").
				Value(a.formOK),
		),
	).WithShowHelp(true)
	return a, f
}

func (a App) newGotoForm() (App, *huh.Form) {
	*a.formText = a.cursor.Format("2006")
	*a.formPick = a.cursor.Format("01")
	a.formKind = formGoto

	months := make([]huh.Option[string], 12)
	for i := 0; i < 12; i++ {
		months[i] = huh.NewOption(fmt.Sprintf("%02d", i+1), fmt.Sprintf("%02d", i+1))
	}
	f := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Year").Value(a.formText),
			huh.NewSelect[string]().Title("Month").Options(months...).Value(a.formPick),
		),
	).WithShowHelp(true).WithShowErrors(true)
	return a, f
}

func (a App) newScheduleForm() (App, *huh.Form) {
	*a.formText = a.store.ScheduleID()
	a.formKind = formSchedule
	f := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Schedule id").Value(a.formText),
		),
	).WithShowHelp(true).WithShowErrors(true)
	return a, f
}

func (a App) newImportForm() (App, *huh.Form) {
	*a.formText = ""
	a.formKind = formImport
	f := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Import file path").Value(a.formText),
		),
	).WithShowHelp(true).WithShowErrors(true)
	return a, f
}

// renderFormPanel draws the active dialog centered over the grid area.
func (a App) renderFormPanel(contentHeight int) string {
	title := ""
	switch a.formKind {
	case formSaveTemplate:
		title = "Save day as template"
	case formApplyTemplate:
		title = "Apply template"
	case formDeleteTemplate:
		title = "Delete template"
	case formGoto:
		title = "Go to month"
	case formSchedule:
		title = "Schedule id"
	case formImport:
		title = "Import labels"
	}

	body := a.form.View()
	if title != "" {
		body = lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(title), "", body)
	}
	panel := panelStyle.Width(min(a.width-4, 60)).Render(body)
	return lipgloss.Place(a.width, contentHeight, lipgloss.Center, lipgloss.Center, panel)
}
