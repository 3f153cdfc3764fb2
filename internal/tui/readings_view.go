package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sgbaird/pioreactor/internal/model"
)

// renderReadingsContent renders the latest telemetry of the selected unit
func (m Model) renderReadingsContent(width, height int) string {
	var s strings.Builder
	s.WriteString(titleStyle.Render("📊 Latest Readings") + "\n\n")

	if len(m.units) == 0 {
		s.WriteString("No units reporting yet")
		return s.String()
	}

	unit := m.units[m.cursor]
	readings, ok := m.tracker.Readings(unit.Name)
	if !ok {
		s.WriteString(fmt.Sprintf("Unit: %s\n\n", unit.Name))
		s.WriteString("No telemetry received\nfrom this unit yet")
		return s.String()
	}

	// Unit title
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#F5C2E7")).
		Render("Unit: " + unit.Name)

	sparkWidth := width - 14
	if sparkWidth < 10 {
		sparkWidth = 10
	}

	growthBox := m.renderReadingBox("GROWTH RATE (1/h)", unit.Name, model.ReadingGrowthRate,
		readings.GrowthRate, "%.4f", "#89B4FA", sparkWidth)
	odBox := m.renderReadingBox("OD (filtered)", unit.Name, model.ReadingODFiltered,
		readings.ODFiltered, "%.3f", "#A6E3A1", sparkWidth)

	updated := timestampStyle.Render("Updated: " + readings.UpdatedAt.Format("15:04:05"))

	// Build final layout vertically
	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		growthBox,
		odBox,
		updated,
	)
}

// renderReadingBox renders one scalar with a sparkline of its recent history
func (m Model) renderReadingBox(label, unit string, kind model.ReadingKind, value *float64, format, color string, sparkWidth int) string {
	valueStr := "-"
	if value != nil {
		valueStr = fmt.Sprintf(format, *value)
	}

	var spark string
	if m.storage != nil {
		if points, err := m.storage.QuerySeries(unit, kind, m.timeRange); err == nil && len(points) > 0 {
			data := make([]float64, len(points))
			for i, dp := range points {
				data[i] = dp.Value
			}
			spark = renderSparkline(data, sparkWidth)
		}
	}
	if spark == "" {
		spark = strings.Repeat("▁", sparkWidth)
	}

	style := lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	content := label + "\n" + style.Render(valueStr) + "\n" + style.Render(spark)

	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(color)).
		Padding(0, 1).
		Render(content)
}
