package layout

import (
	"math"
	"time"
)

// Geometry constants. Label positions are stored in a pixel-like
// coordinate space inside a date cell so that saved files stay
// compatible across frontends; the terminal view scales them down.
const (
	StackTopBase  = 5.0  // top offset of the first label on a date
	StackRowStep  = 28.0 // vertical distance between stacked labels
	StackLeftBase = 5.0  // left offset of every stacked label

	PxPerRow = 28 // one terminal row of label text
	PxPerCol = 10 // one terminal column

	// DragThreshold is the pointer displacement below which a press
	// and release counts as a click rather than a drag.
	DragThreshold = 5.0
)

// StackOffset returns the default position for a label landing on a
// date that already holds n labels.
func StackOffset(n int) (top, left float64) {
	return StackTopBase + StackRowStep*float64(n), StackLeftBase
}

// TranslateDrop converts a pointer position at drag release into the
// target cell's local coordinate space, preserving the grab offset
// recorded at drag start. Both axes clamp at zero.
func TranslateDrop(pointerX, pointerY, cellOriginX, cellOriginY, offsetX, offsetY float64) (top, left float64) {
	top = pointerY - cellOriginY - offsetY
	left = pointerX - cellOriginX - offsetX
	if top < 0 {
		top = 0
	}
	if left < 0 {
		left = 0
	}
	return top, left
}

// CrossedThreshold reports whether the pointer has moved far enough
// from the press point to count as a drag.
func CrossedThreshold(startX, startY, x, y float64) bool {
	dx := x - startX
	dy := y - startY
	return math.Sqrt(dx*dx+dy*dy) >= DragThreshold
}

// CellPos maps a stored label position to a row/column offset inside
// a rendered date cell.
func CellPos(top, left float64) (row, col int) {
	return int(top) / PxPerRow, int(left) / PxPerCol
}

// DateKey formats a time as the calendar-day key used throughout the
// label collection.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// ParseKey parses a calendar-day key back into a time.
func ParseKey(key string) (time.Time, error) {
	return time.Parse("2006-01-02", key)
}

// MonthGrid returns the weeks shown for a month view: every date from
// the Sunday on or before the 1st through the Saturday on or after the
// last day, in 7-wide rows.
func MonthGrid(year int, month time.Month) [][7]time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	start := first.AddDate(0, 0, -int(first.Weekday()))
	last := first.AddDate(0, 1, -1)
	end := last.AddDate(0, 0, 6-int(last.Weekday()))

	var weeks [][7]time.Time
	for d := start; !d.After(end); {
		var week [7]time.Time
		for i := 0; i < 7; i++ {
			week[i] = d
			d = d.AddDate(0, 0, 1)
		}
		weeks = append(weeks, week)
	}
	return weeks
}
