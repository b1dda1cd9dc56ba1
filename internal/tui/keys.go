package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	PrevMonth key.Binding
	NextMonth key.Binding
	Today     key.Binding
	Goto      key.Binding
	New       key.Binding
	Export    key.Binding
	Import    key.Binding
	Schedule  key.Binding
	Density   key.Binding
	Help      key.Binding
	Quit      key.Binding

	// Cell popover
	Apply        key.Binding
	SaveTemplate key.Binding
	DropTemplate key.Binding

	// Label popover
	Edit   key.Binding
	Style  key.Binding
	Move   key.Binding
	Copy   key.Binding
	Paste  key.Binding
	Delete key.Binding

	// Decorate panel
	Bold       key.Binding
	Italic     key.Binding
	TextColor  key.Binding
	BackColor  key.Binding
	Bigger     key.Binding
	Smaller    key.Binding

	Enter key.Binding
	Back  key.Binding
}

var keys = keyMap{
	PrevMonth: key.NewBinding(
		key.WithKeys("[", "left"),
		key.WithHelp("[", "prev month"),
	),
	NextMonth: key.NewBinding(
		key.WithKeys("]", "right"),
		key.WithHelp("]", "next month"),
	),
	Today: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "today"),
	),
	Goto: key.NewBinding(
		key.WithKeys("g"),
		key.WithHelp("g", "go to month"),
	),
	New: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new schedule"),
	),
	Export: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "export"),
	),
	Import: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "import"),
	),
	Schedule: key.NewBinding(
		key.WithKeys("i"),
		key.WithHelp("i", "schedule id"),
	),
	Density: key.NewBinding(
		key.WithKeys("v"),
		key.WithHelp("v", "density"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),

	Apply: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "apply template"),
	),
	SaveTemplate: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "save as template"),
	),
	DropTemplate: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "delete template"),
	),

	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit text"),
	),
	Style: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "style"),
	),
	Move: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "move"),
	),
	Copy: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "copy"),
	),
	Paste: key.NewBinding(
		key.WithKeys("ctrl+p"),
		key.WithHelp("ctrl+p", "paste"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete"),
	),

	Bold: key.NewBinding(
		key.WithKeys("b"),
		key.WithHelp("b", "bold"),
	),
	Italic: key.NewBinding(
		key.WithKeys("i"),
		key.WithHelp("i", "italic"),
	),
	TextColor: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "text color"),
	),
	BackColor: key.NewBinding(
		key.WithKeys("g"),
		key.WithHelp("g", "label color"),
	),
	Bigger: key.NewBinding(
		key.WithKeys("+", "="),
		key.WithHelp("+", "bigger"),
	),
	Smaller: key.NewBinding(
		key.WithKeys("-"),
		key.WithHelp("-", "smaller"),
	),

	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "confirm"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "close"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PrevMonth, k.NextMonth, k.Today, k.Export, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PrevMonth, k.NextMonth, k.Today, k.Goto},
		{k.New, k.Export, k.Import, k.Schedule, k.Density},
		{k.Apply, k.SaveTemplate, k.DropTemplate},
		{k.Edit, k.Style, k.Move, k.Copy, k.Delete},
		{k.Enter, k.Back, k.Quit},
	}
}
