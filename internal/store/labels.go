package store

import (
	sysclip "github.com/atotto/clipboard"

	"stickycal/internal/layout"
)

// Labels returns the full label collection.
func (s *Store) Labels() []Label {
	return s.labels
}

// LabelsOn returns the labels attached to one date, in collection order.
func (s *Store) LabelsOn(date string) []Label {
	var out []Label
	for _, l := range s.labels {
		if l.Date == date {
			out = append(out, l)
		}
	}
	return out
}

// CountOn counts labels on a date, optionally excluding one id (used
// when restacking a label moving within the same date).
func (s *Store) CountOn(date string, excluding int64) int {
	n := 0
	for _, l := range s.labels {
		if l.Date == date && l.ID != excluding {
			n++
		}
	}
	return n
}

// Get returns the label with the given id.
func (s *Store) Get(id int64) (Label, bool) {
	for _, l := range s.labels {
		if l.ID == id {
			return l, true
		}
	}
	return Label{}, false
}

func (s *Store) find(id int64) *Label {
	for i := range s.labels {
		if s.labels[i].ID == id {
			return &s.labels[i]
		}
	}
	return nil
}

// CreateLabel appends a new label on date with default text and style,
// stacked below the labels already there. The collection is NOT
// persisted yet: a brand-new label only reaches storage once its first
// edit commits, so cancelling it leaves storage untouched.
func (s *Store) CreateLabel(date string) Label {
	top, left := layout.StackOffset(s.CountOn(date, 0))
	l := Label{
		ID:    s.nextID,
		Date:  date,
		Text:  DefaultText,
		Top:   top,
		Left:  left,
		Style: DefaultStyle(),
	}
	s.nextID++
	s.labels = append(s.labels, l)
	return l
}

// UpdateText sets a label's text and persists the collection.
func (s *Store) UpdateText(id int64, text string) error {
	l := s.find(id)
	if l == nil {
		return ErrNotFound
	}
	l.Text = text
	s.persistLabels()
	return nil
}

// UpdateStyle replaces a label's style and persists the collection.
// This is the commit path for a working style copy.
func (s *Store) UpdateStyle(id int64, style LabelStyle) error {
	l := s.find(id)
	if l == nil {
		return ErrNotFound
	}
	l.Style = style
	s.persistLabels()
	return nil
}

// MoveLabel reassigns a label's date and position and persists.
func (s *Store) MoveLabel(id int64, date string, top, left float64) error {
	l := s.find(id)
	if l == nil {
		return ErrNotFound
	}
	l.Date = date
	l.Top = top
	l.Left = left
	s.persistLabels()
	return nil
}

// DeleteLabel removes a committed label and persists.
func (s *Store) DeleteLabel(id int64) error {
	if !s.remove(id) {
		return ErrNotFound
	}
	s.persistLabels()
	return nil
}

// DeleteNewLabel is the cancel path for a label that was created but
// never committed. Nothing was persisted for it, so removal is
// in-memory only and the working style is never written back.
func (s *Store) DeleteNewLabel(id int64) {
	s.remove(id)
}

func (s *Store) remove(id int64) bool {
	for i := range s.labels {
		if s.labels[i].ID == id {
			s.labels = append(s.labels[:i], s.labels[i+1:]...)
			return true
		}
	}
	return false
}

// CopyLabel snapshots a label's text and style into the clipboard
// slot, overwriting any prior content. The text also lands on the
// system clipboard, best effort.
func (s *Store) CopyLabel(id int64) (Clip, error) {
	l := s.find(id)
	if l == nil {
		return Clip{}, ErrNotFound
	}
	clip := Clip{Text: l.Text, Style: l.Style}
	s.clipboard = &clip
	_ = sysclip.WriteAll(l.Text)
	return clip, nil
}

// Clipboard returns the current clipboard content, or nil.
func (s *Store) Clipboard() *Clip {
	return s.clipboard
}

// PasteInto overwrites the target label's text and style with the
// clipboard snapshot and persists.
func (s *Store) PasteInto(id int64) error {
	if s.clipboard == nil {
		return ErrEmptyClipboard
	}
	l := s.find(id)
	if l == nil {
		return ErrNotFound
	}
	l.Text = s.clipboard.Text
	l.Style = s.clipboard.Style
	s.persistLabels()
	return nil
}

// ScheduleID returns the current schedule identifier.
func (s *Store) ScheduleID() string {
	return s.scheduleID
}

// SetScheduleID records the schedule identifier and persists it with
// the label snapshot.
func (s *Store) SetScheduleID(id string) {
	s.scheduleID = id
	s.persistLabels()
}

// ClearAll wipes the label collection and schedule id. Templates are
// kept: they are a separate library, not part of one schedule.
func (s *Store) ClearAll() {
	s.labels = nil
	s.scheduleID = ""
	s.persistLabels()
}

// ReplaceLabels swaps in an imported label collection wholesale and
// persists it. The id counter restarts past the highest imported id so
// future labels stay unique.
func (s *Store) ReplaceLabels(labels []Label, scheduleID string) {
	s.labels = labels
	s.scheduleID = scheduleID
	s.nextID = maxID(s.labels) + 1
	s.persistLabels()
}
