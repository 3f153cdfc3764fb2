package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sgbaird/pioreactor/internal/storage"
)

// Update handles messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			// Release subscriptions before the program exits
			m.sub.Stop()
			m.tracker.Stop()
			return m, tea.Quit

		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}

		case "down", "j":
			if m.cursor < len(m.units)-1 {
				m.cursor++
			}

		case "pgup":
			// Towards newer entries (the feed renders newest first)
			visibleLines := m.calculateVisibleLogLines()
			scrollAmount := visibleLines / 2
			if scrollAmount < 1 {
				scrollAmount = 1
			}
			m.logsScroll -= scrollAmount
			if m.logsScroll <= 0 {
				m.logsScroll = 0
				m.logsFollow = true
			}

		case "pgdown":
			// Towards older entries
			visibleLines := m.calculateVisibleLogLines()
			maxScroll := m.calculateMaxScroll()
			scrollAmount := visibleLines / 2
			if scrollAmount < 1 {
				scrollAmount = 1
			}
			m.logsScroll += scrollAmount
			if m.logsScroll > maxScroll {
				m.logsScroll = maxScroll
			}
			m.logsFollow = false

		case "home":
			m.logsScroll = 0
			m.logsFollow = true

		case "end":
			m.logsScroll = m.calculateMaxScroll()
			m.logsFollow = false

		case "f":
			// Toggle follow mode
			m.logsFollow = !m.logsFollow
			if m.logsFollow {
				m.logsScroll = 0
			}

		case "c":
			// Clear the log feed
			m.sub.Feed().Clear()
			m.logs = nil
			m.logsScroll = 0

		case "1":
			m.timeRange = storage.Range30Min
		case "2":
			m.timeRange = storage.Range1Hour
		case "3":
			m.timeRange = storage.Range6Hour
		case "4":
			m.timeRange = storage.Range1Day
		case "5":
			m.timeRange = storage.Range1Week
		}

	case tickMsg:
		// Refresh the unit list so stale markers and newly discovered units
		// show up even when no message arrives.
		m.units = m.tracker.Units()
		if m.cursor >= len(m.units) && len(m.units) > 0 {
			m.cursor = len(m.units) - 1
		}
		return m, tickCmd()

	case logMsg:
		m.tracker.Observe(msg.entry.Unit, msg.entry.Timestamp)
		if m.storage != nil {
			m.storage.WriteLog(msg.entry)
		}
		m.logs = m.sub.Feed().Snapshot()
		if m.logsFollow {
			m.logsScroll = 0
		}
		// Keep waiting for the next entry
		return m, waitForLog(m.sub.Updates())

	case readingMsg:
		if m.storage != nil {
			m.storage.WriteReading(msg.reading)
		}
		return m, waitForReading(m.tracker.Updates())

	case connMsg:
		m.connState = msg.state
		return m, waitForConnState(m.states)
	}

	return m, nil
}
