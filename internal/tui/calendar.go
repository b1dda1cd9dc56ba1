package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"stickycal/internal/interaction"
	"stickycal/internal/layout"
	"stickycal/internal/store"
)

// geom is the rendered calendar's geometry for one window size and
// month cursor. Both the projector and pointer hit-testing derive
// positions from it, so identity never has to be recovered from
// rendered output.
type geom struct {
	top   int // first grid row (below title and day headers)
	cellW int
	cellH int
	weeks [][7]time.Time
}

const (
	chromeTop    = 2 // title line + day header line
	chromeBottom = 2 // action bar + footer
)

func makeGeom(width, height int, cursor time.Time) geom {
	weeks := layout.MonthGrid(cursor.Year(), cursor.Month())
	gridH := height - chromeTop - chromeBottom
	cellH := gridH / len(weeks)
	if cellH < 3 {
		cellH = 3
	}
	cellW := width / 7
	if cellW < 8 {
		cellW = 8
	}
	return geom{top: chromeTop, cellW: cellW, cellH: cellH, weeks: weeks}
}

// labelBox places a label inside its cell: the terminal row, start
// column, and width its text occupies. Shared by rendering and hit
// testing.
func labelBox(l store.Label, cellX, cellY, cellW, cellH int) (x, y, w int) {
	r, c := layout.CellPos(l.Top, l.Left)
	r = clamp(r, 0, cellH-2)
	c = clamp(c, 0, cellW-2)
	w = len([]rune(l.Text))
	if w < 1 {
		w = 1
	}
	if w > cellW-c {
		w = cellW - c
	}
	return cellX + c, cellY + 1 + r, w
}

// hitTest classifies the surface under a terminal coordinate and
// attaches the pixel-space origins the interaction machine needs for
// grab offsets and drop translation.
func (a App) hitTest(x, y int) interaction.Target {
	g := makeGeom(a.width, a.height, a.cursor)

	if y < g.top {
		return interaction.Target{Kind: interaction.TargetHeader}
	}
	gridBottom := g.top + len(g.weeks)*g.cellH
	if y >= gridBottom {
		if a.machine.State().Kind != interaction.Idle {
			return interaction.Target{Kind: interaction.TargetPopover}
		}
		return interaction.Target{Kind: interaction.TargetNone}
	}

	col := clamp(x/g.cellW, 0, 6)
	row := clamp((y-g.top)/g.cellH, 0, len(g.weeks)-1)
	date := g.weeks[row][col]
	key := layout.DateKey(date)
	cellX := col * g.cellW
	cellY := g.top + row*g.cellH

	// Labels stack visually in collection order; the last drawn is on
	// top, so hit-test in reverse.
	labels := a.store.LabelsOn(key)
	for i := len(labels) - 1; i >= 0; i-- {
		l := labels[i]
		bx, by, bw := labelBox(l, cellX, cellY, g.cellW, g.cellH)
		if y == by && x >= bx && x < bx+bw {
			return interaction.Target{
				Kind:         interaction.TargetLabel,
				LabelID:      l.ID,
				Date:         key,
				LabelOriginX: float64(cellX*layout.PxPerCol) + l.Left,
				LabelOriginY: float64((cellY+1)*layout.PxPerRow) + l.Top,
			}
		}
	}

	return interaction.Target{
		Kind:        interaction.TargetCell,
		Date:        key,
		OtherMonth:  date.Month() != a.cursor.Month(),
		CellOriginX: float64(cellX * layout.PxPerCol),
		CellOriginY: float64((cellY + 1) * layout.PxPerRow),
	}
}

// pointerPx converts a terminal coordinate into the pixel space the
// machine and the stored geometry share.
func pointerPx(x, y int) (float64, float64) {
	return float64(x * layout.PxPerCol), float64(y * layout.PxPerRow)
}

var dayNames = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

func renderDayHeader(cellW int) string {
	var cols []string
	for i, d := range dayNames {
		st := dayHeaderStyle.Width(cellW)
		switch i {
		case 0:
			st = st.Foreground(colorSunday)
		case 6:
			st = st.Foreground(colorSaturday)
		}
		cols = append(cols, st.Render(d))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

// renderCalendar is the presentation projection: a pure function of
// the grid geometry, the label collection, and the transient
// interaction state. It is re-derived after every committed mutation
// and never reads back from its own output.
func renderCalendar(g geom, labels []store.Label, st interaction.State, cursor, today time.Time) string {
	byDate := make(map[string][]store.Label)
	for _, l := range labels {
		byDate[l.Date] = append(byDate[l.Date], l)
	}
	todayKey := layout.DateKey(today)

	var weekRows []string
	for row, week := range g.weeks {
		var cells []string
		for col, date := range week {
			cellX := col * g.cellW
			cellY := g.top + row*g.cellH
			cells = append(cells, renderCell(g, byDate, st, cursor, todayKey, date, cellX, cellY))
		}
		weekRows = append(weekRows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return strings.Join(weekRows, "\n")
}

func renderCell(g geom, byDate map[string][]store.Label, st interaction.State, cursor time.Time, todayKey string, date time.Time, cellX, cellY int) string {
	key := layout.DateKey(date)
	otherMonth := date.Month() != cursor.Month()

	// Date number line.
	numStyle := dateNumStyle
	switch {
	case otherMonth:
		numStyle = otherMonthStyle
	case key == todayKey:
		numStyle = todayStyle
	case date.Weekday() == time.Sunday:
		numStyle = dateNumStyle.Foreground(colorSunday)
	case date.Weekday() == time.Saturday:
		numStyle = dateNumStyle.Foreground(colorSaturday)
	}
	num := numStyle.Render(date.Format("2"))
	if st.Kind == interaction.CellSelected && st.Date == key {
		num = selectedCellStyle.Render("▸" + date.Format("2"))
	}
	lines := []string{padLine(num, g.cellW)}

	// Label rows: one label per row, the last placed wins the slot
	// (later labels sit on top).
	type slot struct {
		l  store.Label
		ok bool
	}
	slots := make([]slot, g.cellH-1)
	for _, l := range byDate[key] {
		_, by, _ := labelBox(l, cellX, cellY, g.cellW, g.cellH)
		r := by - cellY - 1
		slots[r] = slot{l: l, ok: true}
	}

	for r := 0; r < g.cellH-1; r++ {
		if !slots[r].ok {
			lines = append(lines, strings.Repeat(" ", g.cellW))
			continue
		}
		l := slots[r].l
		bx, _, bw := labelBox(l, cellX, cellY, g.cellW, g.cellH)
		indent := bx - cellX

		style := l.Style
		if st.Kind == interaction.LabelActive && st.LabelID == l.ID {
			// Project the working copy so decoration edits preview
			// live without touching the committed label.
			style = st.WorkingStyle
		}
		text := string([]rune(l.Text)[:min(bw, len([]rune(l.Text)))])
		if text == "" {
			text = " "
		}
		rendered := labelRenderStyle(style.Color, style.BackgroundColor, style.FontWeight, style.FontStyle, style.FontSize).Render(text)

		switch {
		case st.Kind == interaction.LabelActive && st.LabelID == l.ID:
			rendered = labelRenderStyle(style.Color, style.BackgroundColor, "bold", style.FontStyle, style.FontSize).Underline(true).Render(text)
		case st.Kind == interaction.TapMoving && st.LabelID == l.ID:
			rendered = movingLabelStyle.Render(text)
		case st.Kind == interaction.Dragging && st.LabelID == l.ID && st.Confirmed:
			rendered = movingLabelStyle.Render(text)
		}

		lines = append(lines, padLine(strings.Repeat(" ", indent)+rendered, g.cellW))
	}

	return strings.Join(lines, "\n")
}

// padLine pads a styled line out to width columns.
func padLine(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}
