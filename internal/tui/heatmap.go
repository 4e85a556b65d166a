package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/emberhabits/ember/internal/streak"
)

// bucketStyles maps completion buckets to swatches, darkest to brightest.
var bucketStyles = [5]lipgloss.Style{
	lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("22")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("28")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("46")),
}

var paddingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("236"))

const cellGlyph = "■"

// weekday labels on alternating rows, GitHub-graph style.
var rowLabels = [7]string{"", "Mon", "", "Wed", "", "Fri", ""}

// RenderHeatmap draws the 16-week completion grid. Weeks are columns,
// weekdays are rows, Sunday on top.
func RenderHeatmap(weeks [][]streak.Cell) string {
	var b strings.Builder

	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Width(4)

	for row := 0; row < streak.DaysInWeek; row++ {
		b.WriteString(labelStyle.Render(rowLabels[row]))
		for _, week := range weeks {
			cell := week[row]
			if cell.Padding() {
				b.WriteString(paddingStyle.Render(" " + cellGlyph))
				continue
			}
			b.WriteString(bucketStyles[cell.Bucket].Render(" " + cellGlyph))
		}
		b.WriteString("\n")
	}

	b.WriteString(labelStyle.Render(""))
	b.WriteString(" less")
	for i := 0; i < len(bucketStyles); i++ {
		b.WriteString(bucketStyles[i].Render(" " + cellGlyph))
	}
	b.WriteString(" more")

	return b.String()
}
