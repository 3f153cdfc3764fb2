package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#B4BEFE"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#1E1E2E")).
			Background(lipgloss.Color("#CBA6F7"))

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#1E1E2E")).
			Background(lipgloss.Color("#89B4FA"))

	activeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#A6E3A1"))

	staleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F38BA8"))

	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#A6ADC8")).Padding(1, 0)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#585B70")).
			Padding(1, 2)

	// Top navigation bar
	navBarStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#1E1E2E")).
			Background(lipgloss.Color("#CBA6F7")).
			Padding(0, 1)

	navItemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#CDD6F4")).
			Padding(0, 1)

	// Connectivity indicator
	connectedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#A6E3A1"))
	connectingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAB387"))
	disconnectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F38BA8"))
)
