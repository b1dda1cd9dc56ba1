package store

// LabelStyle is the text decoration applied to one label. Font sizes
// and weights follow the exported JSON shape even though the terminal
// view can only approximate them.
type LabelStyle struct {
	Color           string `json:"color"`
	BackgroundColor string `json:"backgroundColor"`
	FontSize        int    `json:"fontSize"`
	FontWeight      string `json:"fontWeight"` // "normal" or "bold"
	FontStyle       string `json:"fontStyle"`  // "normal" or "italic"
}

// DefaultStyle is the style every freshly created label starts with.
func DefaultStyle() LabelStyle {
	return LabelStyle{
		Color:           "#333333",
		BackgroundColor: "#fffbe6",
		FontSize:        13,
		FontWeight:      "normal",
		FontStyle:       "normal",
	}
}

// Label is one positioned, styled annotation attached to a calendar
// date. Top and Left are offsets within the date cell; many labels may
// share a date but IDs are unique across the whole collection.
type Label struct {
	ID    int64      `json:"id"`
	Date  string     `json:"date"` // "YYYY-MM-DD"
	Text  string     `json:"text"`
	Top   float64    `json:"top"`
	Left  float64    `json:"left"`
	Style LabelStyle `json:"style"`
}

// TemplateLabel is the snapshot of one label stored inside a template.
// It carries no id or date: applying the template mints fresh labels.
type TemplateLabel struct {
	Text  string     `json:"text"`
	Top   float64    `json:"top"`
	Left  float64    `json:"left"`
	Style LabelStyle `json:"style"`
}

// Template is a named, reusable snapshot of one date's label set.
// Snapshots are deep copies: mutating a label after saving it into a
// template does not affect the template, and vice versa.
type Template struct {
	Name   string          `json:"name"`
	Labels []TemplateLabel `json:"labels"`
}

// Clip is the single clipboard slot. It survives mode changes and is
// overwritten by each copy.
type Clip struct {
	Text  string
	Style LabelStyle
}

// DefaultText is the placeholder text of a freshly created label.
const DefaultText = "New label"
