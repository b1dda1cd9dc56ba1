package tui

import (
	"fmt"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"

	"stickycal/internal/layout"
	"stickycal/internal/store"
)

// buildDensityChart summarizes the cursor month as a bar chart of
// label counts per day.
func buildDensityChart(labels []store.Label, cursor time.Time, width, height int) barchart.Model {
	chartWidth := width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := height - 8
	if chartHeight < 8 {
		chartHeight = 8
	}

	counts := make(map[string]int)
	for _, l := range labels {
		counts[l.Date]++
	}

	chart := barchart.New(chartWidth, chartHeight)

	first := time.Date(cursor.Year(), cursor.Month(), 1, 0, 0, 0, 0, time.Local)
	barStyle := lipgloss.NewStyle().Foreground(colorPrimary)
	emptyStyle := lipgloss.NewStyle().Foreground(colorSubtle)

	var bars []barchart.BarData
	for d := first; d.Month() == cursor.Month(); d = d.AddDate(0, 0, 1) {
		n := counts[layout.DateKey(d)]
		style := barStyle
		if n == 0 {
			style = emptyStyle
		}
		bars = append(bars, barchart.BarData{
			Label: d.Format("2"),
			Values: []barchart.BarValue{
				{Name: "labels", Value: float64(n), Style: style},
			},
		})
	}

	chart.PushAll(bars)
	chart.Draw()
	return chart
}

// renderDensity draws the density overlay in place of the grid.
func (a App) renderDensity(contentHeight int) string {
	total := len(a.store.Labels())
	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Label density"), "  ",
		mutedStyle.Render(fmt.Sprintf("%s · %d labels total", a.cursor.Format("January 2006"), total)),
	)
	body := lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		a.density.View(),
		"",
		mutedStyle.Render("  v/esc: back to calendar"),
	)
	return panelStyle.Width(a.width - 4).Render(body)
}
