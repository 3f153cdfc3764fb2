package feed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sgbaird/pioreactor/internal/mqtt"
)

// fakeBroker records subscriptions and lets tests deliver messages directly.
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

// deliver routes a message to the single registered handler.
func (b *fakeBroker) deliver(t *testing.T, topic string, payload string) {
	t.Helper()
	require.Len(t, b.handlers, 1)
	for _, h := range b.handlers {
		h(topic, []byte(payload))
	}
}

func newTestSubscriber(t *testing.T, capacity int) (*Subscriber, *fakeBroker) {
	t.Helper()
	broker := newFakeBroker()
	sub := NewSubscriber(broker, New(capacity, nil), "morbidostat", "exp1", nil)
	return sub, broker
}

func TestStartSubscribesToExperimentPattern(t *testing.T) {
	sub, broker := newTestSubscriber(t, 10)

	require.NoError(t, sub.Start())
	assert.Equal(t, []string{"morbidostat/+/exp1/log"}, broker.subscribed)

	assert.Error(t, sub.Start(), "second Start must be rejected")
}

func TestStopReleasesSubscription(t *testing.T) {
	sub, broker := newTestSubscriber(t, 10)

	require.NoError(t, sub.Start())
	require.NoError(t, sub.Stop())
	assert.Equal(t, []string{"morbidostat/+/exp1/log"}, broker.unsubscribed)

	// Stop on a stopped subscriber is a no-op
	require.NoError(t, sub.Stop())
	assert.Len(t, broker.unsubscribed, 1)
}

func TestPlainTextMessageBecomesEntry(t *testing.T) {
	sub, broker := newTestSubscriber(t, 10)
	require.NoError(t, sub.Start())

	before := time.Now()
	broker.deliver(t, "morbidostat/unit3/exp1/log", "Monitor triggered dilution event.")

	snap := sub.Feed().Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, "unit3", snap[0].Unit)
	assert.Equal(t, "Monitor triggered dilution event.", snap[0].Message)
	assert.Empty(t, snap[0].Level)
	assert.False(t, snap[0].Timestamp.Before(before), "receipt time expected for plain payloads")
}

func TestJSONMessageCarriesLevelTaskAndTimestamp(t *testing.T) {
	sub, broker := newTestSubscriber(t, 10)
	require.NoError(t, sub.Start())

	broker.deliver(t, "morbidostat/unit2/exp1/log",
		`{"message":"OD reading paused","level":"warning","task":"od_reading","timestamp":"2026-04-02T15:04:05Z"}`)

	snap := sub.Feed().Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, "unit2", snap[0].Unit)
	assert.Equal(t, "OD reading paused", snap[0].Message)
	assert.Equal(t, "WARNING", snap[0].Level)
	assert.Equal(t, "od_reading", snap[0].Task)
	assert.Equal(t, time.Date(2026, 4, 2, 15, 4, 5, 0, time.UTC), snap[0].Timestamp.UTC())
}

func TestMalformedTopicIsDroppedFeedUnaffected(t *testing.T) {
	sub, broker := newTestSubscriber(t, 10)
	require.NoError(t, sub.Start())

	broker.deliver(t, "morbidostat", "orphan message")

	assert.Equal(t, 0, sub.Feed().Len())
	assert.Equal(t, uint64(1), sub.Dropped())
}

func TestFeedStaysBoundedUnderMessageStorm(t *testing.T) {
	sub, broker := newTestSubscriber(t, 5)
	require.NoError(t, sub.Start())

	for i := 0; i < 50; i++ {
		broker.deliver(t, "morbidostat/unit1/exp1/log", "line")
	}

	assert.Equal(t, 5, sub.Feed().Len())
}

func TestUpdatesSignalsAppendedEntries(t *testing.T) {
	sub, broker := newTestSubscriber(t, 10)
	require.NoError(t, sub.Start())

	broker.deliver(t, "morbidostat/unit1/exp1/log", "hello")

	select {
	case got := <-sub.Updates():
		assert.Equal(t, "hello", got.Message)
	default:
		t.Fatal("expected an update notification")
	}
}
