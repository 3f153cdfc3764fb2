package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/sgbaird/pioreactor/internal/mqtt"
)

// View renders the TUI interface
func (m Model) View() string {
	header := m.renderHeaderBar()
	headerHeight := lipgloss.Height(header)
	return lipgloss.JoinVertical(lipgloss.Left, header, m.renderFourPanelView(m.height-headerHeight))
}

// renderHeaderBar renders the static navigation bar with the connectivity
// indicator. The nav items are chrome only; they carry no behavior.
func (m Model) renderHeaderBar() string {
	brand := navBarStyle.Render(" piomon ")
	nav := navItemStyle.Render("Overview") +
		navItemStyle.Render("Experiment: "+m.experiment) +
		navItemStyle.Render("Help: q quit")

	var conn string
	switch m.connState {
	case mqtt.StateConnected:
		conn = connectedStyle.Render("● " + m.connState.String())
	case mqtt.StateConnecting:
		conn = connectingStyle.Render("◌ " + m.connState.String())
	default:
		conn = disconnectedStyle.Render("○ " + m.connState.String())
	}

	left := brand + nav
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(conn) - 1
	if gap < 1 {
		gap = 1
	}
	return left + lipgloss.NewStyle().Width(gap).Render("") + conn
}

// renderFourPanelView renders the four-panel grid layout
func (m Model) renderFourPanelView(height int) string {
	// Calculate dimensions for 4-panel grid
	// 60% left, 40% right for columns
	// 60% top, 40% bottom for rows
	leftWidth := int(float64(m.width) * 0.6)
	rightWidth := m.width - leftWidth

	topHeight := int(float64(height) * 0.6)
	bottomHeight := height - topHeight

	// Render all four panels
	topLeftPanel := m.renderUnitListPanel(leftWidth, topHeight)
	topRightPanel := m.renderReadingsPanel(rightWidth, topHeight)
	bottomLeftPanel := m.renderGraphPanel(leftWidth, bottomHeight)
	bottomRightPanel := m.renderLogPanel(rightWidth, bottomHeight)

	// Join top row
	topRow := lipgloss.JoinHorizontal(lipgloss.Top, topLeftPanel, topRightPanel)

	// Join bottom row
	bottomRow := lipgloss.JoinHorizontal(lipgloss.Top, bottomLeftPanel, bottomRightPanel)

	// Join rows vertically
	return lipgloss.JoinVertical(lipgloss.Left, topRow, bottomRow)
}
