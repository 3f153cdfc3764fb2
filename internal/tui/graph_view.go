package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sgbaird/pioreactor/internal/storage"
)

var (
	graphTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#B4BEFE"))
	graphAxisStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))
	growthGraphStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#89B4FA"))
	odGraphStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#A6E3A1"))
)

// Chart characters
var sparkChars = []string{"▁", "▂", "▃", "▄", "▅", "▆", "▇", "█"}

// renderHistoryGraphs renders the growth-rate and OD history of one unit.
// The two series live on very different scales, so each one is normalized
// against its own min/max.
func renderHistoryGraphs(unit string, growthData, odData []float64, width, height int, timeRange storage.TimeRange) string {
	var s strings.Builder

	// Title with time range
	title := fmt.Sprintf("📈 History: %s - %s", unit, timeRange.String())
	s.WriteString(graphTitleStyle.Render(title) + "\n")

	// Time range selector hint
	hint := "[1]30m [2]1h [3]6h [4]1d [5]1w"
	s.WriteString(graphAxisStyle.Render(hint) + "\n\n")

	if len(growthData) == 0 && len(odData) == 0 {
		s.WriteString("Waiting for data...\n")
		s.WriteString("History will appear once units publish telemetry.")
		return s.String()
	}

	maxWidth := width - 4
	if maxWidth < 20 {
		maxWidth = 20
	}

	s.WriteString(renderSeriesGraph("Growth rate (1/h)", growthData, maxWidth, "%.4f", growthGraphStyle))
	s.WriteString("\n")
	s.WriteString(renderSeriesGraph("OD (filtered)", odData, maxWidth, "%.3f", odGraphStyle))

	// Data info
	s.WriteString("\n\n")
	infoText := fmt.Sprintf("%d growth points, %d OD points", len(growthData), len(odData))
	s.WriteString(graphAxisStyle.Render(infoText))

	return s.String()
}

// renderSeriesGraph creates a single-row block graph for one series
func renderSeriesGraph(label string, data []float64, width int, format string, color lipgloss.Style) string {
	var s strings.Builder

	if len(data) == 0 {
		s.WriteString(graphTitleStyle.Render(label) + "\n")
		s.WriteString(color.Render("No data yet...") + "\n")
		return s.String()
	}

	// Take last 'width' points
	start := 0
	if len(data) > width {
		start = len(data) - width
	}
	displayData := data[start:]

	// Find min and max for scaling
	min, max := math.MaxFloat64, -math.MaxFloat64
	for _, v := range displayData {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	// If all values are the same, adjust range slightly
	if max == min {
		min = min - 1
		max = max + 1
	}

	dataRange := max - min

	// Render the graph line
	var graphLine strings.Builder
	for _, value := range displayData {
		// Normalize value to 0-1 range
		normalized := (value - min) / dataRange
		// Map to character index
		charIndex := int(normalized * float64(len(sparkChars)-1))
		if charIndex >= len(sparkChars) {
			charIndex = len(sparkChars) - 1
		}
		if charIndex < 0 {
			charIndex = 0
		}
		graphLine.WriteString(sparkChars[charIndex])
	}

	// Header with current value and range
	current := displayData[len(displayData)-1]
	header := fmt.Sprintf("%s: "+format+" (min: "+format+", max: "+format+")", label, current, min, max)
	s.WriteString(graphTitleStyle.Render(header) + "\n")

	// The graph
	s.WriteString(color.Render(graphLine.String()) + "\n")

	return s.String()
}

// renderSparkline creates a compact sparkline
func renderSparkline(data []float64, width int) string {
	if len(data) == 0 {
		return strings.Repeat("▁", width)
	}

	// Take last 'width' points
	start := 0
	if len(data) > width {
		start = len(data) - width
	}
	displayData := data[start:]

	// Find min and max
	min, max := math.MaxFloat64, -math.MaxFloat64
	for _, v := range displayData {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	if max == min {
		min = min - 1
		max = max + 1
	}

	dataRange := max - min

	var result strings.Builder
	for _, value := range displayData {
		normalized := (value - min) / dataRange
		charIndex := int(normalized * float64(len(sparkChars)-1))
		if charIndex >= len(sparkChars) {
			charIndex = len(sparkChars) - 1
		}
		if charIndex < 0 {
			charIndex = 0
		}
		result.WriteString(sparkChars[charIndex])
	}

	// Pad if needed
	for n := len(displayData); n < width; n++ {
		result.WriteString("▁")
	}

	return result.String()
}
