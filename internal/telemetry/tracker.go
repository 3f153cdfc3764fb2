// internal/telemetry/tracker.go
package telemetry

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sgbaird/pioreactor/internal/feed"
	"github.com/sgbaird/pioreactor/internal/logging"
	"github.com/sgbaird/pioreactor/internal/model"
	"github.com/sgbaird/pioreactor/internal/mqtt"
)

// Tracker keeps the latest telemetry scalar per unit. The rig publishes
// growth_rate and od_filtered as bare floats per unit topic; units are
// discovered from whatever topics actually arrive.
type Tracker struct {
	broker     mqtt.Broker
	root       string
	experiment string
	diag       *logging.Logger

	mu       sync.RWMutex
	readings map[string]*model.UnitReadings
	lastSeen map[string]time.Time

	updates chan model.Reading

	started bool
}

// NewTracker wires telemetry topics for one experiment.
func NewTracker(broker mqtt.Broker, root, experiment string, diag *logging.Logger) *Tracker {
	return &Tracker{
		broker:     broker,
		root:       root,
		experiment: experiment,
		diag:       diag,
		readings:   make(map[string]*model.UnitReadings),
		lastSeen:   make(map[string]time.Time),
		updates:    make(chan model.Reading, 64),
	}
}

func (t *Tracker) pattern(kind model.ReadingKind) string {
	return fmt.Sprintf("%s/+/%s/%s", t.root, t.experiment, kind)
}

// Start subscribes to the per-unit telemetry topics. The mutex is not held
// across broker calls: the broker serializes message delivery, and a callback
// waiting for the mutex must never block an in-flight subscribe.
func (t *Tracker) Start() error {
	t.mu.Lock()
	if t.started {
		t.mu.Unlock()
		return fmt.Errorf("telemetry: tracker already started")
	}
	t.started = true
	t.mu.Unlock()

	for _, kind := range []model.ReadingKind{model.ReadingGrowthRate, model.ReadingODFiltered} {
		kind := kind
		topic := t.pattern(kind)
		if err := t.broker.Subscribe(topic, 1, func(topic string, payload []byte) {
			t.handleMessage(kind, topic, payload)
		}); err != nil {
			t.mu.Lock()
			t.started = false
			t.mu.Unlock()
			return err
		}
	}
	return nil
}

// Stop releases both telemetry subscriptions. Safe to call when not started.
func (t *Tracker) Stop() error {
	t.mu.Lock()
	if !t.started {
		t.mu.Unlock()
		return nil
	}
	t.started = false
	t.mu.Unlock()

	for _, kind := range []model.ReadingKind{model.ReadingGrowthRate, model.ReadingODFiltered} {
		if err := t.broker.Unsubscribe(t.pattern(kind)); err != nil {
			return err
		}
	}
	return nil
}

// Updates streams every accepted reading, for re-rendering and persistence.
func (t *Tracker) Updates() <-chan model.Reading {
	return t.updates
}

func (t *Tracker) handleMessage(kind model.ReadingKind, topic string, payload []byte) {
	unit, err := feed.UnitFromTopic(topic)
	if err != nil {
		t.diag.Printf("telemetry: dropping reading: %v", err)
		return
	}

	value, err := strconv.ParseFloat(strings.TrimSpace(string(payload)), 64)
	if err != nil {
		t.diag.Printf("telemetry: non-numeric %s payload from %s: %q", kind, unit, payload)
		return
	}

	now := time.Now()
	reading := model.Reading{Unit: unit, Kind: kind, Value: value, Timestamp: now}

	t.mu.Lock()
	r, ok := t.readings[unit]
	if !ok {
		r = &model.UnitReadings{}
		t.readings[unit] = r
	}
	switch kind {
	case model.ReadingGrowthRate:
		v := value
		r.GrowthRate = &v
	case model.ReadingODFiltered:
		v := value
		r.ODFiltered = &v
	}
	r.UpdatedAt = now
	t.lastSeen[unit] = now
	t.mu.Unlock()

	select {
	case t.updates <- reading:
	default:
	}
}

// Observe records unit activity seen outside telemetry, e.g. a log message.
func (t *Tracker) Observe(unit string, at time.Time) {
	if unit == "" {
		return
	}
	t.mu.Lock()
	if at.After(t.lastSeen[unit]) {
		t.lastSeen[unit] = at
	}
	t.mu.Unlock()
}

// Readings returns the latest scalars for unit.
func (t *Tracker) Readings(unit string) (model.UnitReadings, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	r, ok := t.readings[unit]
	if !ok {
		return model.UnitReadings{}, false
	}
	return *r, true
}

// Units returns every discovered unit, sorted by name.
func (t *Tracker) Units() []model.Unit {
	t.mu.RLock()
	defer t.mu.RUnlock()

	units := make([]model.Unit, 0, len(t.lastSeen))
	for name, seen := range t.lastSeen {
		units = append(units, model.Unit{Name: name, LastSeen: seen})
	}
	sort.Slice(units, func(i, j int) bool { return units[i].Name < units[j].Name })
	return units
}
