package tui

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"stickycal/internal/export"
	"stickycal/internal/interaction"
	"stickycal/internal/layout"
	"stickycal/internal/store"
)

// App is the root Bubble Tea model. All interaction state lives in the
// machine; App only carries presentation concerns (month cursor, open
// dialog, inline editor, overlays).
type App struct {
	store   *store.Store
	machine *interaction.Machine

	width  int
	height int
	cursor time.Time // any day inside the shown month

	editor     textinput.Model
	decorating bool

	form     *huh.Form
	formKind formKind

	// Form field pointers (survive value copies)
	formText *string
	formPick *string
	formOK   *bool

	pendingName string // template name awaiting a confirm

	showDensity bool
	density     barchart.Model

	exportDir string // empty means the user's home directory

	help      help.Model
	showHelp  bool
	status    string
	statusErr bool
}

func NewApp(s *store.Store) App {
	ti := textinput.New()
	ti.CharLimit = 120
	ti.Width = 40

	text, pick := "", ""
	ok := false

	h := help.New()
	h.ShowAll = false

	return App{
		store:    s,
		machine:  interaction.New(s),
		cursor:   time.Now(),
		editor:   ti,
		formText: &text,
		formPick: &pick,
		formOK:   &ok,
		help:     h,
	}
}

func (a App) Init() tea.Cmd {
	return nil
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		if a.showDensity {
			a.density = buildDensityChart(a.store.Labels(), a.cursor, a.width, a.height)
		}
		return a, nil

	case clickTimerMsg:
		// Routed to the machine even while a dialog is open so a
		// pending click can never leak into a later gesture.
		return a.applyEffect(a.machine.ClickTimerFired(msg.seq))

	case statusMsg:
		a.status = msg.text
		a.statusErr = msg.isError
		return a, nil

	case exportDoneMsg:
		a.status = "Exported to " + msg.path
		a.statusErr = false
		return a, nil

	case importDoneMsg:
		a.store.ReplaceLabels(msg.labels, msg.id)
		a.status = fmt.Sprintf("Imported %d labels as %q", len(msg.labels), msg.id)
		a.statusErr = false
		return a.flush()
	}

	if a.form != nil {
		return a.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.MouseMsg:
		return a.updateMouse(msg)
	case tea.KeyMsg:
		return a.updateKeys(msg)
	}
	return a, nil
}

// sync reconciles presentation flags with the machine after an event
// and surfaces any pending storage failure.
func (a App) sync() App {
	st := a.machine.State()
	if st.Kind != interaction.LabelActive {
		a.decorating = false
	}
	if a.editor.Focused() && !(st.Kind == interaction.LabelActive && st.Editing) {
		a.editor.Blur()
	}
	if err := a.store.TakeStorageError(); err != nil {
		a.status = err.Error()
		a.statusErr = true
	}
	return a
}

func (a App) flush() (tea.Model, tea.Cmd) {
	return a.sync(), nil
}

// applyEffect executes what the machine asked for: scheduling the
// single-click timer, opening the inline editor, or moving the month
// cursor.
func (a App) applyEffect(eff interaction.Effect) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if eff.ScheduleClick {
		seq := eff.ClickSeq
		cmds = append(cmds, tea.Tick(clickDelay, func(time.Time) tea.Msg {
			return clickTimerMsg{seq: seq}
		}))
	}
	if eff.BeginEdit {
		st := a.machine.State()
		if l, ok := a.store.Get(st.LabelID); ok {
			a.editor.SetValue(l.Text)
		}
		a.editor.CursorEnd()
		cmds = append(cmds, a.editor.Focus(), textinput.Blink)
	}
	if eff.GoToDate != "" {
		if d, err := layout.ParseKey(eff.GoToDate); err == nil {
			a.cursor = d
		}
	}

	a = a.sync()
	return a, tea.Batch(cmds...)
}

// --- Mouse ---

func (a App) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if a.showDensity {
		return a, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			a.cursor = a.cursor.AddDate(0, -1, 0)
			return a, nil
		case tea.MouseButtonWheelDown:
			a.cursor = a.cursor.AddDate(0, 1, 0)
			return a, nil
		case tea.MouseButtonLeft:
			return a.pointerDown(msg.X, msg.Y)
		}

	case tea.MouseActionMotion:
		x, y := pointerPx(msg.X, msg.Y)
		a.machine.PointerMove(x, y)
		return a, nil

	case tea.MouseActionRelease:
		t := a.hitTest(msg.X, msg.Y)
		x, y := pointerPx(msg.X, msg.Y)
		a.machine.PointerUp(t, x, y)
		return a.flush()
	}
	return a, nil
}

func (a App) pointerDown(mx, my int) (tea.Model, tea.Cmd) {
	t := a.hitTest(mx, my)
	st := a.machine.State()

	// A press outside the open editor blurs it, committing text and
	// style through the one commit path before the press itself is
	// interpreted.
	if st.Kind == interaction.LabelActive && st.Editing {
		onEditor := t.Kind == interaction.TargetLabel && t.LabelID == st.LabelID
		if !onEditor && t.Kind != interaction.TargetPopover {
			a.machine.CommitEdit(a.editor.Value())
			a.editor.Blur()
		}
	}
	if a.decorating && t.Kind != interaction.TargetPopover {
		a.decorating = false
	}

	x, y := pointerPx(mx, my)
	return a.applyEffect(a.machine.PointerDown(t, x, y))
}

// --- Keys ---

func (a App) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.showDensity {
		switch {
		case key.Matches(msg, keys.Density), key.Matches(msg, keys.Back):
			a.showDensity = false
			return a, nil
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		}
		return a, nil
	}

	st := a.machine.State()

	if st.Kind == interaction.LabelActive && st.Editing {
		return a.updateEditor(msg)
	}
	if a.decorating {
		return a.updateDecorate(msg)
	}

	switch st.Kind {
	case interaction.LabelActive:
		return a.updateLabelPopover(msg)
	case interaction.CellSelected:
		return a.updateCellPopover(msg)
	case interaction.TapMoving:
		if key.Matches(msg, keys.Back) {
			a.machine.Close()
		}
		return a.flush()
	}

	return a.updateGlobal(msg)
}

func (a App) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Enter):
		a.machine.CommitEdit(a.editor.Value())
		return a.flush()
	case key.Matches(msg, keys.Back):
		if a.machine.State().LabelKind == interaction.NewLabel {
			a.machine.CancelActive()
		} else {
			a.machine.Close()
		}
		return a.flush()
	case key.Matches(msg, keys.Paste):
		if err := a.machine.PasteIntoActive(); err != nil {
			if errors.Is(err, store.ErrEmptyClipboard) {
				a.status = "Nothing copied yet"
				a.statusErr = true
			}
		}
		return a.flush()
	}

	var cmd tea.Cmd
	a.editor, cmd = a.editor.Update(msg)
	return a, cmd
}

func (a App) updateLabelPopover(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Edit):
		return a.applyEffect(a.machine.BeginEdit())
	case key.Matches(msg, keys.Style):
		a.decorating = true
		return a, nil
	case key.Matches(msg, keys.Move):
		a.machine.StartMove()
		return a.flush()
	case key.Matches(msg, keys.Copy):
		a.machine.CopyActive()
		a.status = "Label copied"
		a.statusErr = false
		return a.flush()
	case key.Matches(msg, keys.Delete):
		a.machine.DeleteActive()
		return a.flush()
	case key.Matches(msg, keys.Back):
		a.machine.Close()
		return a.flush()
	}
	return a, nil
}

func (a App) updateDecorate(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	st := a.machine.State()
	switch {
	case key.Matches(msg, keys.Bold):
		a.machine.ToggleBold()
	case key.Matches(msg, keys.Italic):
		a.machine.ToggleItalic()
	case key.Matches(msg, keys.TextColor):
		a.machine.SetColor(nextChoice(textColors, st.WorkingStyle.Color))
	case key.Matches(msg, keys.BackColor):
		a.machine.SetBackground(nextChoice(backColors, st.WorkingStyle.BackgroundColor))
	case key.Matches(msg, keys.Bigger):
		a.machine.SetFontSize(st.WorkingStyle.FontSize + 1)
	case key.Matches(msg, keys.Smaller):
		a.machine.SetFontSize(st.WorkingStyle.FontSize - 1)
	case key.Matches(msg, keys.Back), key.Matches(msg, keys.Enter):
		a.decorating = false
	}
	return a, nil
}

// nextChoice cycles through a palette starting after the current
// value; unknown values restart at the front.
func nextChoice(palette []string, current string) string {
	for i, c := range palette {
		if c == current {
			return palette[(i+1)%len(palette)]
		}
	}
	return palette[0]
}

func (a App) updateCellPopover(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Apply):
		if len(a.store.Templates()) == 0 {
			a.status = "No templates saved yet"
			a.statusErr = true
			return a, nil
		}
		var f *huh.Form
		a, f = a.newPickTemplateForm(formApplyTemplate, "Apply template")
		a.form = f
		return a, f.Init()

	case key.Matches(msg, keys.SaveTemplate):
		var f *huh.Form
		a, f = a.newSaveTemplateForm()
		a.form = f
		return a, f.Init()

	case key.Matches(msg, keys.DropTemplate):
		if len(a.store.Templates()) == 0 {
			a.status = "No templates saved yet"
			a.statusErr = true
			return a, nil
		}
		var f *huh.Form
		a, f = a.newPickTemplateForm(formDeleteTemplate, "Delete template")
		a.form = f
		return a, f.Init()

	case key.Matches(msg, keys.Back):
		a.machine.Close()
		return a.flush()
	}
	return a, nil
}

func (a App) updateGlobal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return a, tea.Quit
	case key.Matches(msg, keys.Help):
		a.showHelp = !a.showHelp
		a.help.ShowAll = a.showHelp
		return a, nil
	case key.Matches(msg, keys.PrevMonth):
		a.cursor = a.cursor.AddDate(0, -1, 0)
		return a, nil
	case key.Matches(msg, keys.NextMonth):
		a.cursor = a.cursor.AddDate(0, 1, 0)
		return a, nil
	case key.Matches(msg, keys.Today):
		a.cursor = time.Now()
		return a, nil
	case key.Matches(msg, keys.Goto):
		var f *huh.Form
		a, f = a.newGotoForm()
		a.form = f
		return a, f.Init()
	case key.Matches(msg, keys.New):
		if len(a.store.Labels()) == 0 {
			a.store.ClearAll()
			a.status = "New schedule"
			a.statusErr = false
			return a.flush()
		}
		var f *huh.Form
		a, f = a.newConfirmClearForm()
		a.form = f
		return a, f.Init()
	case key.Matches(msg, keys.Export):
		return a.doExport()
	case key.Matches(msg, keys.Import):
		var f *huh.Form
		a, f = a.newImportForm()
		a.form = f
		return a, f.Init()
	case key.Matches(msg, keys.Schedule):
		var f *huh.Form
		a, f = a.newScheduleForm()
		a.form = f
		return a, f.Init()
	case key.Matches(msg, keys.Density):
		a.showDensity = true
		a.density = buildDensityChart(a.store.Labels(), a.cursor, a.width, a.height)
		return a, nil
	}
	return a, nil
}

func (a App) doExport() (tea.Model, tea.Cmd) {
	if a.store.ScheduleID() == "" {
		a.status = "Enter a schedule id before exporting"
		a.statusErr = true
		var f *huh.Form
		a, f = a.newScheduleForm()
		a.form = f
		return a, f.Init()
	}

	// Snapshot the collection on the event loop; the store mutates
	// labels in place, so the command must not share its backing array.
	// Only the file write runs async.
	labels := append([]store.Label(nil), a.store.Labels()...)
	id := a.store.ScheduleID()
	dir := a.exportDir
	if dir == "" {
		dir, _ = os.UserHomeDir()
	}
	return a, func() tea.Msg {
		path, err := export.ToJSON(labels, id, dir, time.Now())
		if err != nil {
			return statusMsg{text: "Export failed: " + err.Error(), isError: true}
		}
		return exportDoneMsg{path: path}
	}
}

// --- Forms ---

func (a App) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok && km.String() == "esc" {
		a.form = nil
		a.formKind = formNone
		return a, nil
	}

	form, cmd := a.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.form = f
	}

	if a.form.State == huh.StateCompleted {
		kind := a.formKind
		a.form = nil
		a.formKind = formNone
		return a.completeForm(kind)
	}
	return a, cmd
}

func (a App) completeForm(kind formKind) (tea.Model, tea.Cmd) {
	switch kind {
	case formSaveTemplate:
		name := strings.TrimSpace(*a.formText)
		err := a.machine.SaveTemplate(name)
		var conflict *store.NameConflictError
		var invalid *store.ValidationError
		switch {
		case err == nil:
			a.status = fmt.Sprintf("Template %q saved", name)
			a.statusErr = false
			a.machine.Close()
		case errors.As(err, &conflict):
			var f *huh.Form
			a, f = a.newConfirmOverwriteForm(name)
			a.form = f
			return a, f.Init()
		case errors.As(err, &invalid):
			a.status = err.Error()
			a.statusErr = true
		default:
			a.status = err.Error()
			a.statusErr = true
		}
		return a.flush()

	case formConfirmOverwrite:
		if *a.formOK {
			if err := a.machine.OverwriteTemplate(a.pendingName); err != nil {
				a.status = err.Error()
				a.statusErr = true
			} else {
				a.status = fmt.Sprintf("Template %q saved", a.pendingName)
				a.statusErr = false
				a.machine.Close()
			}
		}
		return a.flush()

	case formApplyTemplate:
		if name := *a.formPick; name != "" {
			if err := a.machine.ApplyTemplate(name); err != nil {
				a.status = err.Error()
				a.statusErr = true
			} else {
				a.status = fmt.Sprintf("Template %q applied", name)
				a.statusErr = false
			}
		}
		return a.flush()

	case formDeleteTemplate:
		if name := *a.formPick; name != "" {
			var f *huh.Form
			a, f = a.newConfirmDeleteForm(name)
			a.form = f
			return a, f.Init()
		}
		return a.flush()

	case formConfirmDelete:
		if *a.formOK {
			if err := a.machine.DeleteTemplate(a.pendingName); err == nil {
				a.status = fmt.Sprintf("Template %q deleted", a.pendingName)
				a.statusErr = false
			}
		}
		return a.flush()

	case formConfirmClear:
		if *a.formOK {
			a.store.ClearAll()
			a.status = "New schedule"
			a.statusErr = false
		}
		return a.flush()

	case formGoto:
		year, err := strconv.Atoi(strings.TrimSpace(*a.formText))
		month, merr := strconv.Atoi(*a.formPick)
		if err == nil && merr == nil && year >= 1 && month >= 1 && month <= 12 {
			a.cursor = time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
		}
		return a, nil

	case formSchedule:
		a.store.SetScheduleID(strings.TrimSpace(*a.formText))
		a.status = "Schedule id set"
		a.statusErr = false
		return a.flush()

	case formImport:
		path := strings.TrimSpace(*a.formText)
		if path == "" {
			return a, nil
		}
		return a, func() tea.Msg {
			labels, id, err := export.FromJSON(path)
			if err != nil {
				// Prior state is retained on any import failure.
				return statusMsg{text: "Import failed: " + err.Error(), isError: true}
			}
			return importDoneMsg{labels: labels, id: id}
		}
	}
	return a, nil
}

// --- View ---

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	g := makeGeom(a.width, a.height, a.cursor)
	contentHeight := len(g.weeks) * g.cellH

	header := a.renderHeader()
	dayHdr := renderDayHeader(g.cellW)

	var content string
	switch {
	case a.form != nil:
		content = a.renderFormPanel(contentHeight)
	case a.showDensity:
		content = a.renderDensity(contentHeight)
	default:
		content = renderCalendar(g, a.store.Labels(), a.machine.State(), a.cursor, time.Now())
	}
	content = lipgloss.NewStyle().Width(a.width).Height(contentHeight).Render(content)

	actionBar := a.renderActionLine()
	footer := a.renderFooter()

	return lipgloss.JoinVertical(lipgloss.Left, header, dayHdr, content, actionBar, footer)
}

// renderActionLine is the action bar plus the inline editor when a
// label's text is open for editing.
func (a App) renderActionLine() string {
	st := a.machine.State()
	if st.Kind == interaction.LabelActive && st.Editing && !a.decorating {
		hint := "enter:save  esc:cancel"
		if st.LabelKind == interaction.NewLabel && a.store.Clipboard() != nil {
			hint = "enter:save  ctrl+p:paste  esc:cancel"
		}
		return actionBarStyle.Render(
			lipgloss.JoinHorizontal(lipgloss.Top, a.editor.View(), "  ", mutedStyle.Render(hint)),
		)
	}
	return a.renderActionBar()
}

func (a App) renderHeader() string {
	title := titleStyle.Render("stickycal")
	month := monthStyle.Render(a.cursor.Format("January 2006"))

	id := a.store.ScheduleID()
	if id == "" {
		id = "no schedule id"
	}
	right := mutedStyle.Render(id)
	if a.store.Clipboard() != nil {
		right = mutedStyle.Render("⎘ ") + right
	}

	left := lipgloss.JoinHorizontal(lipgloss.Bottom, title, "  ", month)
	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right))
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		if a.statusErr {
			status = errorStyle.Render(" " + a.status)
		} else {
			status = successStyle.Render(" " + a.status)
		}
	}

	left := footerStyle.Render(helpView)
	gap := a.width - lipgloss.Width(left) - lipgloss.Width(status) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, status)
}
