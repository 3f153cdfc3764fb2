package tui

import (
	"regexp"

	"github.com/charmbracelet/lipgloss"

	"github.com/sgbaird/pioreactor/internal/model"
)

var (
	// Fallback log level patterns for plain-text payloads
	errorPattern   = regexp.MustCompile(`(?i)\b(error|err|fatal|fail|failed|exception|panic)\b`)
	warningPattern = regexp.MustCompile(`(?i)\b(warn|warning|caution)\b`)
	debugPattern   = regexp.MustCompile(`(?i)\b(debug|trace)\b`)

	// Styles for log levels
	timestampStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086")) // Dim gray
	unitTagStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F9E2AF")) // Yellow
	taskTagStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#CBA6F7")) // Purple

	errorLogStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F38BA8")) // Red
	warningLogStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAB387")) // Orange
	infoLogStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#89B4FA")) // Blue
	debugLogStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086")) // Dim
	defaultLogStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#CDD6F4")) // Normal
)

// levelStyle picks a style from the entry's level, falling back to pattern
// detection when the payload carried no structured level.
func levelStyle(entry model.LogEntry) lipgloss.Style {
	switch entry.Level {
	case "ERROR", "CRITICAL":
		return errorLogStyle
	case "WARNING", "WARN":
		return warningLogStyle
	case "INFO", "NOTICE":
		return infoLogStyle
	case "DEBUG":
		return debugLogStyle
	}

	switch {
	case errorPattern.MatchString(entry.Message):
		return errorLogStyle
	case warningPattern.MatchString(entry.Message):
		return warningLogStyle
	case debugPattern.MatchString(entry.Message):
		return debugLogStyle
	default:
		return defaultLogStyle
	}
}

// styleLogEntry applies styling to a log entry
func styleLogEntry(entry model.LogEntry, maxWidth int) string {
	// Format timestamp as time of day (dimmed)
	timestamp := timestampStyle.Render(entry.Timestamp.Format("15:04:05"))

	unitTag := unitTagStyle.Render("[" + entry.Unit + "]")

	prefix := timestamp + " " + unitTag + " "
	if entry.Task != "" {
		prefix += taskTagStyle.Render(entry.Task+":") + " "
	}

	styledMessage := levelStyle(entry).Render(entry.Message)
	logLine := prefix + styledMessage

	// Truncate if needed (accounting for ANSI codes)
	if lipgloss.Width(logLine) > maxWidth {
		overhead := lipgloss.Width(prefix) + 3 // "..."
		keepLength := maxWidth - overhead
		if keepLength > 0 {
			styledMessage = truncateStyled(styledMessage, keepLength)
			logLine = prefix + styledMessage + "..."
		}
	}

	return logLine
}

// truncateStyled truncates a styled string to a maximum visible width
func truncateStyled(s string, maxWidth int) string {
	if lipgloss.Width(s) <= maxWidth {
		return s
	}

	// Simple truncation - just take first maxWidth runes
	// This isn't perfect with ANSI codes but works for our case
	runes := []rune(s)
	if len(runes) > maxWidth {
		return string(runes[:maxWidth])
	}
	return s
}
