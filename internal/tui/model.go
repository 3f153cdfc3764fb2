package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sgbaird/pioreactor/internal/feed"
	"github.com/sgbaird/pioreactor/internal/model"
	"github.com/sgbaird/pioreactor/internal/mqtt"
	"github.com/sgbaird/pioreactor/internal/storage"
	"github.com/sgbaird/pioreactor/internal/telemetry"
)

// Model represents the TUI application state
type Model struct {
	sub     *feed.Subscriber
	tracker *telemetry.Tracker
	states  <-chan mqtt.ConnState

	experiment string
	staleAfter time.Duration

	units  []model.Unit
	cursor int
	width  int
	height int

	connState mqtt.ConnState
	message   string

	logs       []model.LogEntry // newest first, snapshot of the feed
	logsScroll int
	logsFollow bool

	// Historical data and time range
	storage   *storage.Storage
	timeRange storage.TimeRange
}

// Message types for Bubbletea update loop
type tickMsg time.Time

type logMsg struct {
	entry model.LogEntry
}

type readingMsg struct {
	reading model.Reading
}

type connMsg struct {
	state mqtt.ConnState
}

// NewModel creates a new TUI model
func NewModel(
	sub *feed.Subscriber,
	tracker *telemetry.Tracker,
	store *storage.Storage,
	states <-chan mqtt.ConnState,
	experiment string,
	staleAfter time.Duration,
) Model {
	return Model{
		sub:        sub,
		tracker:    tracker,
		storage:    store,
		states:     states,
		experiment: experiment,
		staleAfter: staleAfter,
		connState:  mqtt.StateConnecting,
		logs:       sub.Feed().Snapshot(),
		logsFollow: true,
		timeRange:  storage.Range30Min, // Default to 30 minutes
	}
}

// Init initializes the model and returns initial commands
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		waitForLog(m.sub.Updates()),
		waitForReading(m.tracker.Updates()),
		waitForConnState(m.states),
	)
}
