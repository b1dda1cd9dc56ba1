package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"stickycal/internal/export"
	"stickycal/internal/interaction"
	"stickycal/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// newTestApp sizes the app to a 105x33 window showing January 2026:
// 15-column cells, five week rows of height 5 starting at row 2.
func newTestApp(t *testing.T) App {
	t.Helper()
	a := NewApp(newTestStore(t))
	a.cursor = time.Date(2026, time.January, 1, 0, 0, 0, 0, time.Local)
	return apply(t, a, tea.WindowSizeMsg{Width: 105, Height: 33})
}

func apply(t *testing.T, a App, msg tea.Msg) App {
	t.Helper()
	m, _ := a.Update(msg)
	return m.(App)
}

func leftPress(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

// January 15 2026 sits in week row 2, column 4 of the grid: cell origin
// (60, 12), date number on row 12, label slots from row 13.
const (
	jan15CellX = 60
	jan15CellY = 12
)

// ============================================================
// Hit testing
// ============================================================

func TestHitTestCell(t *testing.T) {
	a := newTestApp(t)

	target := a.hitTest(jan15CellX+1, jan15CellY+2)
	if target.Kind != interaction.TargetCell {
		t.Fatalf("kind = %v", target.Kind)
	}
	if target.Date != "2026-01-15" {
		t.Fatalf("date = %s", target.Date)
	}
	if target.OtherMonth {
		t.Fatal("jan 15 is in the shown month")
	}
	// The label area starts one row below the date number.
	if target.CellOriginX != 600 || target.CellOriginY != 364 {
		t.Fatalf("cell origin = (%v, %v)", target.CellOriginX, target.CellOriginY)
	}
}

func TestHitTestOtherMonthCell(t *testing.T) {
	a := newTestApp(t)

	// Top-left cell of the January 2026 grid is December 28 2025.
	target := a.hitTest(0, 3)
	if target.Kind != interaction.TargetCell || !target.OtherMonth {
		t.Fatalf("target = %+v", target)
	}
	if target.Date != "2025-12-28" {
		t.Fatalf("date = %s", target.Date)
	}
}

func TestHitTestHeader(t *testing.T) {
	a := newTestApp(t)
	if target := a.hitTest(10, 0); target.Kind != interaction.TargetHeader {
		t.Fatalf("target = %+v", target)
	}
}

func TestHitTestBelowGrid(t *testing.T) {
	a := newTestApp(t)

	// Idle: nothing interactive below the grid.
	if target := a.hitTest(10, 30); target.Kind != interaction.TargetNone {
		t.Fatalf("target = %+v", target)
	}

	// With a mode open, the action bar area counts as the popover.
	a = apply(t, a, leftPress(jan15CellX+1, jan15CellY+2))
	a = apply(t, a, clickTimerMsg{seq: 1})
	if target := a.hitTest(10, 30); target.Kind != interaction.TargetPopover {
		t.Fatalf("target = %+v", target)
	}
}

func TestHitTestLabel(t *testing.T) {
	a := newTestApp(t)
	l := a.store.CreateLabel("2026-01-15")
	a.store.UpdateText(l.ID, "Standup")

	// First label sits at (top 5, left 5): row 0, column 0 of the cell.
	target := a.hitTest(jan15CellX, jan15CellY+1)
	if target.Kind != interaction.TargetLabel || target.LabelID != l.ID {
		t.Fatalf("target = %+v", target)
	}
	// Pixel origin of the label box, for grab offsets.
	if target.LabelOriginX != 605 || target.LabelOriginY != 369 {
		t.Fatalf("label origin = (%v, %v)", target.LabelOriginX, target.LabelOriginY)
	}

	// Past the text the press falls through to the cell.
	if target := a.hitTest(jan15CellX+10, jan15CellY+1); target.Kind != interaction.TargetCell {
		t.Fatalf("target = %+v", target)
	}
}

func TestHitTestTopmostLabelWins(t *testing.T) {
	a := newTestApp(t)
	first := a.store.CreateLabel("2026-01-15")
	a.store.UpdateText(first.ID, "under")
	second := a.store.CreateLabel("2026-01-15")
	a.store.UpdateText(second.ID, "over")
	// Put both in the same slot.
	a.store.MoveLabel(second.ID, "2026-01-15", first.Top, first.Left)

	target := a.hitTest(jan15CellX, jan15CellY+1)
	if target.Kind != interaction.TargetLabel || target.LabelID != second.ID {
		t.Fatalf("later label should win the hit test: %+v", target)
	}
}

func TestPointerPx(t *testing.T) {
	x, y := pointerPx(7, 3)
	if x != 70 || y != 84 {
		t.Fatalf("got (%v, %v)", x, y)
	}
}

// ============================================================
// Update flow
// ============================================================

func TestClickSelectsCell(t *testing.T) {
	a := newTestApp(t)

	a = apply(t, a, leftPress(jan15CellX+1, jan15CellY+2))
	if a.machine.State().Kind != interaction.Idle {
		t.Fatal("selection must wait for the click timer")
	}

	// First press arms sequence 1.
	a = apply(t, a, clickTimerMsg{seq: 1})
	st := a.machine.State()
	if st.Kind != interaction.CellSelected || st.Date != "2026-01-15" {
		t.Fatalf("state = %+v", st)
	}
}

func TestDoubleClickOpensEditor(t *testing.T) {
	a := newTestApp(t)

	a = apply(t, a, leftPress(jan15CellX+1, jan15CellY+2))
	a = apply(t, a, leftPress(jan15CellX+1, jan15CellY+2))

	st := a.machine.State()
	if st.Kind != interaction.LabelActive || st.LabelKind != interaction.NewLabel || !st.Editing {
		t.Fatalf("state = %+v", st)
	}
	if !a.editor.Focused() {
		t.Fatal("editor should take focus")
	}
	if a.editor.Value() != store.DefaultText {
		t.Fatalf("editor preloaded with %q", a.editor.Value())
	}

	// The superseded single-click timer must do nothing.
	a = apply(t, a, clickTimerMsg{seq: 1})
	if a.machine.State().Kind != interaction.LabelActive {
		t.Fatal("stale timer disturbed the editor")
	}
}

func TestEnterCommitsEditedText(t *testing.T) {
	a := newTestApp(t)
	a = apply(t, a, leftPress(jan15CellX+1, jan15CellY+2))
	a = apply(t, a, leftPress(jan15CellX+1, jan15CellY+2))
	id := a.machine.State().LabelID

	a.editor.SetValue("Standup")
	a = apply(t, a, tea.KeyMsg{Type: tea.KeyEnter})

	if a.machine.State().Kind != interaction.Idle {
		t.Fatal("enter should close the editor")
	}
	l, _ := a.store.Get(id)
	if l.Text != "Standup" {
		t.Fatalf("text = %q", l.Text)
	}
}

func TestEscDiscardsNewLabel(t *testing.T) {
	a := newTestApp(t)
	a = apply(t, a, leftPress(jan15CellX+1, jan15CellY+2))
	a = apply(t, a, leftPress(jan15CellX+1, jan15CellY+2))
	id := a.machine.State().LabelID

	a = apply(t, a, tea.KeyMsg{Type: tea.KeyEsc})

	if a.machine.State().Kind != interaction.Idle {
		t.Fatal("esc should close the editor")
	}
	if _, ok := a.store.Get(id); ok {
		t.Fatal("cancelled label still exists")
	}
}

func TestWheelNavigatesMonths(t *testing.T) {
	a := newTestApp(t)

	a = apply(t, a, tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown})
	if a.cursor.Month() != time.February {
		t.Fatalf("month = %s", a.cursor.Month())
	}
	a = apply(t, a, tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp})
	if a.cursor.Month() != time.January {
		t.Fatalf("month = %s", a.cursor.Month())
	}
}

func TestBracketKeysNavigateMonths(t *testing.T) {
	a := newTestApp(t)

	a = apply(t, a, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{']'}})
	if a.cursor.Month() != time.February {
		t.Fatalf("month = %s", a.cursor.Month())
	}
	a = apply(t, a, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'['}})
	if a.cursor.Month() != time.January {
		t.Fatalf("month = %s", a.cursor.Month())
	}
}

func TestOutsidePressClosesSelection(t *testing.T) {
	a := newTestApp(t)
	a = apply(t, a, leftPress(jan15CellX+1, jan15CellY+2))
	a = apply(t, a, clickTimerMsg{seq: 1})

	// Header presses are inert.
	a = apply(t, a, leftPress(10, 0))
	if a.machine.State().Kind != interaction.CellSelected {
		t.Fatal("header press should not close the selection")
	}
}

func TestCtrlPPastesIntoNewLabel(t *testing.T) {
	a := newTestApp(t)
	src := a.store.CreateLabel("2026-01-10")
	a.store.UpdateText(src.ID, "Standup")
	a.store.CopyLabel(src.ID)

	a = apply(t, a, leftPress(jan15CellX+1, jan15CellY+2))
	a = apply(t, a, leftPress(jan15CellX+1, jan15CellY+2))
	id := a.machine.State().LabelID

	a = apply(t, a, tea.KeyMsg{Type: tea.KeyCtrlP})

	if a.machine.State().Kind != interaction.Idle {
		t.Fatal("paste should close the editor")
	}
	l, _ := a.store.Get(id)
	if l.Text != "Standup" {
		t.Fatalf("text = %q", l.Text)
	}
}

func TestExportWritesSnapshotOfLabels(t *testing.T) {
	a := newTestApp(t)
	l := a.store.CreateLabel("2026-01-15")
	a.store.UpdateText(l.ID, "before")
	a.store.SetScheduleID("term-a")
	a.exportDir = t.TempDir()

	m, cmd := a.doExport()
	a = m.(App)
	if cmd == nil {
		t.Fatal("expected an export command")
	}

	// The command holds a snapshot: mutations racing the file write
	// must neither corrupt nor appear in the exported file.
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()
	for i := 0; i < 100; i++ {
		a.store.UpdateText(l.ID, "after")
	}
	msg := <-done

	exp, ok := msg.(exportDoneMsg)
	if !ok {
		t.Fatalf("msg = %#v", msg)
	}
	labels, _, err := export.FromJSON(exp.path)
	if err != nil {
		t.Fatal(err)
	}
	if len(labels) != 1 || labels[0].Text != "before" {
		t.Fatalf("exported %+v", labels)
	}
}

func TestViewRendersWithoutModes(t *testing.T) {
	a := newTestApp(t)
	l := a.store.CreateLabel("2026-01-15")
	a.store.UpdateText(l.ID, "Standup")

	out := a.View()
	if out == "" {
		t.Fatal("empty view")
	}
}
