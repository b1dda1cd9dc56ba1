package tui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	colorPrimary   = lipgloss.Color("#6C63FF")
	colorMuted     = lipgloss.Color("#666666")
	colorSuccess   = lipgloss.Color("#2ECC71")
	colorWarning   = lipgloss.Color("#F39C12")
	colorError     = lipgloss.Color("#E74C3C")
	colorFg        = lipgloss.Color("#C0CAF5")
	colorSubtle    = lipgloss.Color("#414868")
	colorHighlight = lipgloss.Color("#7AA2F7")
	colorSunday    = lipgloss.Color("#E06C75")
	colorSaturday  = lipgloss.Color("#61AFEF")
)

// Cycles offered by the decorate panel. The first entries match the
// default label style.
var (
	textColors = []string{"#333333", "#c0392b", "#2980b9", "#27ae60", "#8e44ad", "#f5f5f5"}
	backColors = []string{"#fffbe6", "#ffd6d6", "#d6eaff", "#d8f5d6", "#f3e6ff", "#333333"}
)

// Styles
var (
	headerStyle = lipgloss.NewStyle().
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	monthStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorFg)

	dayHeaderStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Align(lipgloss.Center)

	dateNumStyle = lipgloss.NewStyle().
			Foreground(colorFg)

	otherMonthStyle = lipgloss.NewStyle().
			Foreground(colorSubtle)

	todayStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#1A1B26")).
			Background(colorHighlight)

	selectedCellStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorPrimary)

	movingLabelStyle = lipgloss.NewStyle().
				Foreground(colorMuted).
				Italic(true)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSubtle).
			Padding(1, 2)

	actionBarStyle = lipgloss.NewStyle().
			Foreground(colorFg).
			Padding(0, 1)

	footerStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(0, 1)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	successStyle = lipgloss.NewStyle().
			Foreground(colorSuccess)

	warningStyle = lipgloss.NewStyle().
			Foreground(colorWarning)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorError)
)

// labelStyle builds the lipgloss rendering for one label's stored
// style. Font size cannot be rendered in a terminal; bold stands in
// for sizes at the top of the range.
func labelRenderStyle(color, background, weight, italic string, fontSize int) lipgloss.Style {
	st := lipgloss.NewStyle().
		Foreground(lipgloss.Color(color)).
		Background(lipgloss.Color(background))
	if weight == "bold" || fontSize >= 18 {
		st = st.Bold(true)
	}
	if italic == "italic" {
		st = st.Italic(true)
	}
	return st
}
