package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sgbaird/pioreactor/internal/model"
	"github.com/sgbaird/pioreactor/internal/mqtt"
)

// tickCmd creates a command that sends a tick message every 2 seconds
func tickCmd() tea.Cmd {
	return tea.Tick(2*time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// waitForLog creates a command that waits for the next log feed notification
func waitForLog(ch <-chan model.LogEntry) tea.Cmd {
	return func() tea.Msg {
		entry, ok := <-ch
		if !ok {
			return nil
		}
		return logMsg{entry: entry}
	}
}

// waitForReading creates a command that waits for the next telemetry reading
func waitForReading(ch <-chan model.Reading) tea.Cmd {
	return func() tea.Msg {
		reading, ok := <-ch
		if !ok {
			return nil
		}
		return readingMsg{reading: reading}
	}
}

// waitForConnState creates a command that waits for a connection transition
func waitForConnState(ch <-chan mqtt.ConnState) tea.Cmd {
	return func() tea.Msg {
		state, ok := <-ch
		if !ok {
			return nil
		}
		return connMsg{state: state}
	}
}
