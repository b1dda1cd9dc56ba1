// Package interaction owns the transient "what is the user doing right
// now" state of the calendar surface: the mutually exclusive modes, the
// click/double-click/drag disambiguation, and the commit-or-discard
// rules applied when a mode closes. It is the single writer over the
// label and template collections; the presentation layer only feeds it
// events and projects the resulting state.
package interaction

import (
	"errors"
	"strings"

	"stickycal/internal/layout"
	"stickycal/internal/store"
)

// Kind enumerates the mutually exclusive interaction modes.
type Kind int

const (
	Idle Kind = iota
	CellSelected // a date cell is selected for template operations
	LabelActive  // a label is open for editing/styling
	Dragging     // a pointer-drag session over a label
	TapMoving    // a label awaits its destination cell
)

// LabelKind distinguishes a freshly created, never-committed label
// from one that already lives in storage.
type LabelKind int

const (
	ExistingLabel LabelKind = iota
	NewLabel
)

// State is the tagged variant holding exactly one mode and the fields
// that mode needs. Invalid mode combinations cannot be expressed.
type State struct {
	Kind Kind

	Date string // CellSelected

	LabelID      int64 // LabelActive, Dragging, TapMoving
	LabelKind    LabelKind
	WorkingStyle store.LabelStyle // committed onto the label on close
	Editing      bool             // inline text editor open

	// Dragging session, in pixel space.
	PressX, PressY     float64
	OffsetX, OffsetY   float64 // grab offset inside the label box
	PointerX, PointerY float64
	Confirmed          bool // pointer crossed the drag threshold
}

// TargetKind classifies what a pointer event landed on.
type TargetKind int

const (
	TargetNone    TargetKind = iota // outside every interactive surface
	TargetCell                      // a date cell
	TargetLabel                     // a label box
	TargetPopover                   // the open action popover
	TargetHeader                    // year-month / schedule-id controls
)

// Target identifies the surface under the pointer, with enough
// geometry for drop translation and grab offsets.
type Target struct {
	Kind       TargetKind
	Date       string // TargetCell
	OtherMonth bool

	LabelID                    int64 // TargetLabel
	LabelOriginX, LabelOriginY float64

	CellOriginX, CellOriginY float64 // origin of the cell's label area
}

// Effect tells the caller what to do after an event: schedule the
// deferred single-click timer, open the inline text editor, or move
// the month cursor. Zero value means nothing.
type Effect struct {
	ScheduleClick bool
	ClickSeq      int
	BeginEdit     bool
	GoToDate      string
}

type pendingClick struct {
	seq    int
	target Target
}

// Machine interprets pointer, timer, and popover events against the
// current mode and dispatches mutations to the store. All methods run
// on the event loop; there is no internal locking.
type Machine struct {
	store *store.Store
	state State

	// At most one deferred single-click is outstanding. Superseding it
	// bumps seq so that a stale timer message no-ops.
	pending *pendingClick
	seq     int
}

func New(s *store.Store) *Machine {
	return &Machine{store: s}
}

// State returns a copy of the current mode.
func (m *Machine) State() State {
	return m.state
}

// PendingClick reports whether a single-click timer is outstanding.
func (m *Machine) PendingClick() bool {
	return m.pending != nil
}

func (m *Machine) cancelPending() {
	if m.pending == nil {
		return
	}
	m.pending = nil
	m.seq++
}

// closeActive leaves the current mode. For LabelActive, commit writes
// the working style copy back onto the label (which also persists a
// new label); discard deletes a never-committed label instead and must
// not write the style back.
func (m *Machine) closeActive(commit bool) {
	if m.state.Kind == LabelActive {
		if commit {
			_ = m.store.UpdateStyle(m.state.LabelID, m.state.WorkingStyle)
		} else if m.state.LabelKind == NewLabel {
			m.store.DeleteNewLabel(m.state.LabelID)
		}
	}
	m.state = State{}
}

// PointerDown handles a press. Coordinates are in pixel space.
func (m *Machine) PointerDown(t Target, x, y float64) Effect {
	if m.state.Kind == TapMoving {
		return m.resolveTapMove(t)
	}
	if m.state.Kind == Dragging {
		// A second press mid-drag cannot happen with one pointer;
		// ignore rather than corrupt the session.
		return Effect{}
	}

	switch t.Kind {
	case TargetLabel:
		m.cancelPending()
		if m.state.Kind == LabelActive && m.state.LabelID == t.LabelID && m.state.Editing {
			// Clicks inside the open editor stay with the editor.
			return Effect{}
		}
		m.closeActive(true)
		m.state = State{
			Kind:     Dragging,
			LabelID:  t.LabelID,
			PressX:   x,
			PressY:   y,
			OffsetX:  x - t.LabelOriginX,
			OffsetY:  y - t.LabelOriginY,
			PointerX: x,
			PointerY: y,
		}
		return Effect{}

	case TargetCell:
		if m.pending != nil && m.pending.target.Date == t.Date && !t.OtherMonth {
			// Second press inside the window: a double-click. Cancel
			// the timer and create a new label open for editing.
			m.cancelPending()
			m.closeActive(true)
			l := m.store.CreateLabel(t.Date)
			m.state = State{
				Kind:         LabelActive,
				LabelID:      l.ID,
				LabelKind:    NewLabel,
				WorkingStyle: l.Style,
				Editing:      true,
			}
			return Effect{BeginEdit: true}
		}
		m.cancelPending()
		if m.state.Kind == CellSelected && m.state.Date == t.Date {
			return Effect{}
		}
		m.seq++
		m.pending = &pendingClick{seq: m.seq, target: t}
		return Effect{ScheduleClick: true, ClickSeq: m.seq}

	case TargetPopover, TargetHeader:
		return Effect{}

	default:
		m.cancelPending()
		m.closeActive(true)
		return Effect{}
	}
}

// resolveTapMove consumes the press that follows a "move" action. A
// press on a date cell, or on a label standing on one, relocates the
// moving label to that cell and restacks it there; a press on the
// popover (the move control itself) keeps the mode armed; anything
// else abandons the move and returns to Idle.
func (m *Machine) resolveTapMove(t Target) Effect {
	switch t.Kind {
	case TargetCell, TargetLabel:
		id := m.state.LabelID
		top, left := layout.StackOffset(m.store.CountOn(t.Date, id))
		_ = m.store.MoveLabel(id, t.Date, top, left)
		m.state = State{}
	case TargetPopover:
		// keep waiting
	default:
		m.state = State{}
	}
	return Effect{}
}

// ClickTimerFired resolves a deferred single click. A stale sequence
// number means the click was superseded and the event is ignored.
func (m *Machine) ClickTimerFired(seq int) Effect {
	if m.pending == nil || m.pending.seq != seq {
		return Effect{}
	}
	t := m.pending.target
	m.pending = nil

	m.closeActive(true)
	if t.OtherMonth {
		// Clicking a spill-over cell navigates to its month.
		return Effect{GoToDate: t.Date}
	}
	m.state = State{Kind: CellSelected, Date: t.Date}
	return Effect{}
}

// PointerMove advances a drag session. Below the distance threshold
// the press is still a potential click.
func (m *Machine) PointerMove(x, y float64) {
	if m.state.Kind != Dragging {
		return
	}
	m.state.PointerX = x
	m.state.PointerY = y
	if !m.state.Confirmed && layout.CrossedThreshold(m.state.PressX, m.state.PressY, x, y) {
		m.state.Confirmed = true
	}
}

// PointerUp ends a drag session. An unconfirmed drag resolves as a
// click on the label; a confirmed drag over a valid cell drops the
// label at the pointer, translated into the cell's local space.
// Released elsewhere, the label keeps its prior date and position.
func (m *Machine) PointerUp(t Target, x, y float64) {
	if m.state.Kind != Dragging {
		return
	}
	id := m.state.LabelID
	confirmed := m.state.Confirmed
	offX, offY := m.state.OffsetX, m.state.OffsetY
	m.state = State{}

	if !confirmed {
		l, ok := m.store.Get(id)
		if !ok {
			return
		}
		m.state = State{
			Kind:         LabelActive,
			LabelID:      id,
			LabelKind:    ExistingLabel,
			WorkingStyle: l.Style,
		}
		return
	}

	if t.Kind == TargetCell && !t.OtherMonth {
		top, left := layout.TranslateDrop(x, y, t.CellOriginX, t.CellOriginY, offX, offY)
		_ = m.store.MoveLabel(id, t.Date, top, left)
	}
}

// --- Popover actions ---

// Close commits and collapses whatever mode is open.
func (m *Machine) Close() {
	m.cancelPending()
	m.closeActive(true)
}

// BeginEdit opens the inline text editor on the active label.
func (m *Machine) BeginEdit() Effect {
	if m.state.Kind != LabelActive {
		return Effect{}
	}
	m.state.Editing = true
	return Effect{BeginEdit: true}
}

// CommitEdit stores the editor text and closes with a style commit.
// This is the single commit path for both blur and explicit save.
func (m *Machine) CommitEdit(text string) {
	if m.state.Kind != LabelActive {
		return
	}
	_ = m.store.UpdateText(m.state.LabelID, strings.TrimSpace(text))
	m.closeActive(true)
}

// CancelActive is the discard path. A new label is removed entirely
// and its working style is never written back; an existing label just
// closes with the usual commit.
func (m *Machine) CancelActive() {
	if m.state.Kind != LabelActive {
		return
	}
	if m.state.LabelKind == NewLabel {
		m.store.DeleteNewLabel(m.state.LabelID)
		m.state = State{}
		return
	}
	m.closeActive(true)
}

// DeleteActive removes the active existing label.
func (m *Machine) DeleteActive() {
	if m.state.Kind != LabelActive {
		return
	}
	if m.state.LabelKind == NewLabel {
		m.CancelActive()
		return
	}
	id := m.state.LabelID
	m.state = State{}
	_ = m.store.DeleteLabel(id)
}

// CopyActive snapshots the active label into the clipboard slot and
// closes.
func (m *Machine) CopyActive() {
	if m.state.Kind == LabelActive && m.state.LabelKind == ExistingLabel {
		_, _ = m.store.CopyLabel(m.state.LabelID)
	}
	m.closeActive(true)
}

// PasteIntoActive overwrites a new label with the clipboard snapshot
// and closes. The working style is refreshed first so the close commit
// does not revert the pasted style.
func (m *Machine) PasteIntoActive() error {
	if m.state.Kind != LabelActive || m.state.LabelKind != NewLabel {
		return nil
	}
	if err := m.store.PasteInto(m.state.LabelID); err != nil {
		return err
	}
	if l, ok := m.store.Get(m.state.LabelID); ok {
		m.state.WorkingStyle = l.Style
	}
	m.closeActive(true)
	return nil
}

// StartMove commits the active label and arms tap-to-move: the next
// press on a date cell relocates it.
func (m *Machine) StartMove() {
	if m.state.Kind != LabelActive || m.state.LabelKind != ExistingLabel {
		return
	}
	id := m.state.LabelID
	m.closeActive(true)
	m.state = State{Kind: TapMoving, LabelID: id}
}

// --- Working style, applied incrementally and committed on close ---

func (m *Machine) SetColor(c string) {
	if m.state.Kind == LabelActive {
		m.state.WorkingStyle.Color = c
	}
}

func (m *Machine) SetBackground(c string) {
	if m.state.Kind == LabelActive {
		m.state.WorkingStyle.BackgroundColor = c
	}
}

func (m *Machine) SetFontSize(size int) {
	if m.state.Kind != LabelActive {
		return
	}
	if size < 10 {
		size = 10
	}
	if size > 24 {
		size = 24
	}
	m.state.WorkingStyle.FontSize = size
}

func (m *Machine) ToggleBold() {
	if m.state.Kind != LabelActive {
		return
	}
	if m.state.WorkingStyle.FontWeight == "bold" {
		m.state.WorkingStyle.FontWeight = "normal"
	} else {
		m.state.WorkingStyle.FontWeight = "bold"
	}
}

func (m *Machine) ToggleItalic() {
	if m.state.Kind != LabelActive {
		return
	}
	if m.state.WorkingStyle.FontStyle == "italic" {
		m.state.WorkingStyle.FontStyle = "normal"
	} else {
		m.state.WorkingStyle.FontStyle = "italic"
	}
}

// --- Template operations, valid while a cell is selected ---

// SaveTemplate snapshots the selected date's labels under name.
func (m *Machine) SaveTemplate(name string) error {
	if m.state.Kind != CellSelected {
		return nil
	}
	return m.store.SaveTemplate(m.state.Date, name)
}

// OverwriteTemplate is the confirmed retry after a name conflict:
// delete the old template, then save again.
func (m *Machine) OverwriteTemplate(name string) error {
	if m.state.Kind != CellSelected {
		return nil
	}
	if err := m.store.DeleteTemplate(name); err != nil && !errors.Is(err, store.ErrNotFound) {
		return err
	}
	return m.store.SaveTemplate(m.state.Date, name)
}

// ApplyTemplate copies a template onto the selected date. The cell
// stays selected so more templates can be applied.
func (m *Machine) ApplyTemplate(name string) error {
	if m.state.Kind != CellSelected {
		return nil
	}
	_, err := m.store.ApplyTemplate(name, m.state.Date)
	return err
}

// DeleteTemplate removes a template by name.
func (m *Machine) DeleteTemplate(name string) error {
	return m.store.DeleteTemplate(name)
}
