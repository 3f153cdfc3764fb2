package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/sgbaird/pioreactor/internal/model"
)

// renderUnitListPanel renders the unit list panel
func (m Model) renderUnitListPanel(width, height int) string {
	content := m.renderUnitListContent(width, height)
	return panelStyle.
		Width(width - 4).
		Height(height - 4).
		Render(content)
}

// renderUnitListContent renders the content of the unit list panel
func (m Model) renderUnitListContent(width, height int) string {
	var s strings.Builder
	s.WriteString(titleStyle.Render("🧫 Units") + "\n\n")

	if len(m.units) == 0 {
		s.WriteString("Waiting for units to report...\n")
		s.WriteString(helpStyle.Render("\n[↑/k] up  [↓/j] down  [1-5] time range  [q] quit"))
		return s.String()
	}

	now := time.Now()
	active := 0
	for _, u := range m.units {
		if !u.Stale(now, m.staleAfter) {
			active++
		}
	}
	s.WriteString(fmt.Sprintf("%d total, %d active\n\n", len(m.units), active))

	// Adjusted column widths for the panel
	colWidth := width - 10
	nameWidth := int(float64(colWidth) * 0.3)
	growthWidth := 10
	odWidth := 10
	seenWidth := colWidth - nameWidth - growthWidth - odWidth

	header := fmt.Sprintf("%-*s %-*s %-*s %-*s",
		nameWidth, "UNIT",
		growthWidth, "GROWTH",
		odWidth, "OD",
		seenWidth, "LAST SEEN")
	s.WriteString(headerStyle.Render(header) + "\n")

	// Calculate how many units we can show
	maxUnits := height - 10 // Reserve space for header, help, etc.

	for i, unit := range m.units {
		if i >= maxUnits {
			break
		}

		name := truncate(unit.Name, nameWidth)

		growth, od := "-", "-"
		if r, ok := m.tracker.Readings(unit.Name); ok {
			if r.GrowthRate != nil {
				growth = fmt.Sprintf("%.4f", *r.GrowthRate)
			}
			if r.ODFiltered != nil {
				od = fmt.Sprintf("%.3f", *r.ODFiltered)
			}
		}

		var seenStr string
		if unit.Stale(now, m.staleAfter) {
			seenStr = staleStyle.Render("stale")
		} else {
			seenStr = activeStyle.Render(lastSeenLabel(now, unit.LastSeen))
		}

		line := fmt.Sprintf(
			"%-*s %-*s %-*s %-*s",
			nameWidth, name,
			growthWidth, growth,
			odWidth, od,
			seenWidth+10, seenStr, // Account for ANSI codes
		)

		if i == m.cursor {
			s.WriteString(selectedStyle.Render("> " + line))
		} else {
			s.WriteString("  " + line)
		}
		s.WriteString("\n")
	}

	if m.message != "" {
		s.WriteString("\n" + m.message + "\n")
	}

	help := "\n[↑/k] up  [↓/j] down  [1-5] time range  [q] quit"
	s.WriteString(helpStyle.Render(help))

	return s.String()
}

// lastSeenLabel formats how long ago a unit last reported
func lastSeenLabel(now, seen time.Time) string {
	ago := now.Sub(seen)
	switch {
	case ago < 10*time.Second:
		return "just now"
	case ago < time.Minute:
		return fmt.Sprintf("%ds ago", int(ago.Seconds()))
	case ago < time.Hour:
		return fmt.Sprintf("%dm ago", int(ago.Minutes()))
	default:
		return fmt.Sprintf("%dh ago", int(ago.Hours()))
	}
}

// renderGraphPanel renders the graph panel with historical data
func (m Model) renderGraphPanel(width, height int) string {
	var content string

	if m.storage != nil && len(m.units) > 0 {
		unit := m.units[m.cursor].Name
		growthPoints, gErr := m.storage.QuerySeries(unit, model.ReadingGrowthRate, m.timeRange)
		odPoints, oErr := m.storage.QuerySeries(unit, model.ReadingODFiltered, m.timeRange)
		if gErr == nil && oErr == nil {
			growth := make([]float64, len(growthPoints))
			for i, dp := range growthPoints {
				growth[i] = dp.Value
			}
			od := make([]float64, len(odPoints))
			for i, dp := range odPoints {
				od[i] = dp.Value
			}
			content = renderHistoryGraphs(unit, growth, od, width-4, height-4, m.timeRange)
		} else {
			content = "History unavailable"
		}
	} else {
		content = "History disabled"
	}

	return panelStyle.
		Width(width - 4).
		Height(height - 4).
		Render(content)
}

// renderLogPanel renders the live log panel
func (m Model) renderLogPanel(width, height int) string {
	var s strings.Builder
	s.WriteString(titleStyle.Render("📋 Experiment Log") + "\n\n")

	// Show follow indicator
	followIndicator := ""
	if m.logsFollow {
		followIndicator = " [Follow: ON]"
	}
	s.WriteString(fmt.Sprintf("%d/%d entries%s\n\n", len(m.logs), m.sub.Feed().Capacity(), followIndicator))

	if len(m.logs) == 0 {
		s.WriteString("No logs yet...")
	} else {
		// Calculate visible lines: reserve space for title, counters, and help text
		visibleLines := height - 8
		if visibleLines < 1 {
			visibleLines = 1
		}

		// Calculate the window of logs to display (newest first)
		totalLogs := len(m.logs)
		start := m.logsScroll
		end := start + visibleLines

		// Clamp the range
		if start < 0 {
			start = 0
		}
		if end > totalLogs {
			end = totalLogs
		}
		if start >= totalLogs {
			start = totalLogs - visibleLines
			if start < 0 {
				start = 0
			}
		}

		// Render only the visible window of logs
		maxLineWidth := width - 8
		for i := start; i < end && i < totalLogs; i++ {
			styledLine := styleLogEntry(m.logs[i], maxLineWidth)
			s.WriteString(styledLine + "\n")
		}

		// Show scroll indicator if there are more logs
		if totalLogs > visibleLines {
			s.WriteString(fmt.Sprintf("\n[%d/%d] PgUp/PgDown:scroll | f:follow | c:clear",
				start+1, totalLogs))
		}
	}

	return panelStyle.
		Width(width - 4).
		Height(height - 4).
		Render(s.String())
}

// renderReadingsPanel renders the latest readings panel
func (m Model) renderReadingsPanel(width, height int) string {
	content := m.renderReadingsContent(width, height)
	return panelStyle.
		Width(width - 4).
		Height(height - 4).
		Render(content)
}
