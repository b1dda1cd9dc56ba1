package store

import (
	"sort"
	"strings"
)

// Templates returns the template collection, kept in name order.
func (s *Store) Templates() []Template {
	return s.templates
}

// TemplateNames returns the sorted template names.
func (s *Store) TemplateNames() []string {
	names := make([]string, len(s.templates))
	for i, t := range s.templates {
		names[i] = t.Name
	}
	return names
}

func (s *Store) findTemplate(name string) *Template {
	for i := range s.templates {
		if s.templates[i].Name == name {
			return &s.templates[i]
		}
	}
	return nil
}

// SaveTemplate snapshots every label on date under the given name.
// An empty name or an empty date is a ValidationError. A taken name is
// a NameConflictError: the caller must confirm, delete the old
// template, and retry. No state is mutated on either failure.
func (s *Store) SaveTemplate(date, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return &ValidationError{Reason: "template name is empty"}
	}
	src := s.LabelsOn(date)
	if len(src) == 0 {
		return &ValidationError{Reason: "no labels on " + date + " to save"}
	}
	if s.findTemplate(name) != nil {
		return &NameConflictError{Name: name}
	}

	snap := make([]TemplateLabel, len(src))
	for i, l := range src {
		snap[i] = TemplateLabel{Text: l.Text, Top: l.Top, Left: l.Left, Style: l.Style}
	}
	s.templates = append(s.templates, Template{Name: name, Labels: snap})
	sort.Slice(s.templates, func(i, j int) bool {
		return s.templates[i].Name < s.templates[j].Name
	})
	s.persistTemplates()
	return nil
}

// ApplyTemplate deep-copies a template's label snapshots onto date,
// each with a freshly minted id. Geometry is copied literally, not
// restacked. Returns the created labels.
func (s *Store) ApplyTemplate(name, date string) ([]Label, error) {
	t := s.findTemplate(name)
	if t == nil {
		return nil, ErrNotFound
	}

	created := make([]Label, 0, len(t.Labels))
	for _, tl := range t.Labels {
		l := Label{
			ID:    s.nextID,
			Date:  date,
			Text:  tl.Text,
			Top:   tl.Top,
			Left:  tl.Left,
			Style: tl.Style,
		}
		s.nextID++
		s.labels = append(s.labels, l)
		created = append(created, l)
	}
	s.persistLabels()
	return created, nil
}

// DeleteTemplate removes a template by name and persists.
func (s *Store) DeleteTemplate(name string) error {
	for i := range s.templates {
		if s.templates[i].Name == name {
			s.templates = append(s.templates[:i], s.templates[i+1:]...)
			s.persistTemplates()
			return nil
		}
	}
	return ErrNotFound
}
