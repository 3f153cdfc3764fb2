package telemetry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sgbaird/pioreactor/internal/mqtt"
)

type fakeBroker struct {
	subscribed   []string
	unsubscribed []string
	handlers     map[string]mqtt.MessageHandler
	states       chan mqtt.ConnState
}

func newFakeBroker() *fakeBroker {
	return &fakeBroker{
		handlers: make(map[string]mqtt.MessageHandler),
		states:   make(chan mqtt.ConnState, 8),
	}
}

func (b *fakeBroker) Subscribe(topic string, _ byte, handler mqtt.MessageHandler) error {
	b.subscribed = append(b.subscribed, topic)
	b.handlers[topic] = handler
	return nil
}

func (b *fakeBroker) Unsubscribe(topic string) error {
	b.unsubscribed = append(b.unsubscribed, topic)
	delete(b.handlers, topic)
	return nil
}

func (b *fakeBroker) Publish(string, byte, bool, []byte) error { return nil }
func (b *fakeBroker) States() <-chan mqtt.ConnState            { return b.states }
func (b *fakeBroker) Close() error                             { return nil }

// deliver pushes a message to the handler registered for pattern.
func (b *fakeBroker) deliver(t *testing.T, pattern, topic, payload string) {
	t.Helper()
	h, ok := b.handlers[pattern]
	require.True(t, ok, "no handler for %s", pattern)
	h(topic, []byte(payload))
}

func TestStartSubscribesBothTelemetryPatterns(t *testing.T) {
	broker := newFakeBroker()
	tr := NewTracker(broker, "morbidostat", "exp1", nil)

	require.NoError(t, tr.Start())
	assert.ElementsMatch(t, []string{
		"morbidostat/+/exp1/growth_rate",
		"morbidostat/+/exp1/od_filtered",
	}, broker.subscribed)
}

func TestReadingsTrackLatestPerUnit(t *testing.T) {
	broker := newFakeBroker()
	tr := NewTracker(broker, "morbidostat", "exp1", nil)
	require.NoError(t, tr.Start())

	broker.deliver(t, "morbidostat/+/exp1/growth_rate", "morbidostat/unit1/exp1/growth_rate", "0.031")
	broker.deliver(t, "morbidostat/+/exp1/growth_rate", "morbidostat/unit1/exp1/growth_rate", "0.042")
	broker.deliver(t, "morbidostat/+/exp1/od_filtered", "morbidostat/unit1/exp1/od_filtered", "1.27")

	r, ok := tr.Readings("unit1")
	require.True(t, ok)
	require.NotNil(t, r.GrowthRate)
	require.NotNil(t, r.ODFiltered)
	assert.InDelta(t, 0.042, *r.GrowthRate, 1e-9)
	assert.InDelta(t, 1.27, *r.ODFiltered, 1e-9)
}

func TestNonNumericPayloadIsDropped(t *testing.T) {
	broker := newFakeBroker()
	tr := NewTracker(broker, "morbidostat", "exp1", nil)
	require.NoError(t, tr.Start())

	broker.deliver(t, "morbidostat/+/exp1/growth_rate", "morbidostat/unit1/exp1/growth_rate", "not-a-number")

	_, ok := tr.Readings("unit1")
	assert.False(t, ok)
}

func TestUnitsDiscoveredAndSorted(t *testing.T) {
	broker := newFakeBroker()
	tr := NewTracker(broker, "morbidostat", "exp1", nil)
	require.NoError(t, tr.Start())

	broker.deliver(t, "morbidostat/+/exp1/growth_rate", "morbidostat/unit2/exp1/growth_rate", "0.01")
	broker.deliver(t, "morbidostat/+/exp1/growth_rate", "morbidostat/unit1/exp1/growth_rate", "0.02")
	tr.Observe("unit3", time.Now())

	units := tr.Units()
	require.Len(t, units, 3)
	assert.Equal(t, "unit1", units[0].Name)
	assert.Equal(t, "unit2", units[1].Name)
	assert.Equal(t, "unit3", units[2].Name)
}

func TestStopReleasesBothSubscriptions(t *testing.T) {
	broker := newFakeBroker()
	tr := NewTracker(broker, "morbidostat", "exp1", nil)
	require.NoError(t, tr.Start())
	require.NoError(t, tr.Stop())

	assert.ElementsMatch(t, []string{
		"morbidostat/+/exp1/growth_rate",
		"morbidostat/+/exp1/od_filtered",
	}, broker.unsubscribed)
}
