// internal/feed/subscriber.go
package feed

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sgbaird/pioreactor/internal/logging"
	"github.com/sgbaird/pioreactor/internal/model"
	"github.com/sgbaird/pioreactor/internal/mqtt"
)

// Subscriber feeds log messages from the broker into a Feed. Start issues the
// subscription for the experiment's log topic pattern; Stop is guaranteed to
// release it again, independent of what the display surface does.
type Subscriber struct {
	broker mqtt.Broker
	feed   *Feed
	topic  string
	diag   *logging.Logger

	updates chan model.LogEntry
	dropped atomic.Uint64

	mu      sync.Mutex
	started bool
}

// NewSubscriber wires a feed to the broker for one experiment.
func NewSubscriber(broker mqtt.Broker, f *Feed, root, experiment string, diag *logging.Logger) *Subscriber {
	return &Subscriber{
		broker:  broker,
		feed:    f,
		topic:   LogPattern(root, experiment),
		diag:    diag,
		updates: make(chan model.LogEntry, 64),
	}
}

// Topic returns the subscription pattern in use.
func (s *Subscriber) Topic() string {
	return s.topic
}

// Feed returns the feed this subscriber appends to.
func (s *Subscriber) Feed() *Feed {
	return s.feed
}

// Updates signals every appended entry. The channel is a change notification:
// consumers render from Feed.Snapshot, so a missed signal only delays the
// next repaint.
func (s *Subscriber) Updates() <-chan model.LogEntry {
	return s.updates
}

// Dropped returns how many messages were discarded due to malformed topics.
func (s *Subscriber) Dropped() uint64 {
	return s.dropped.Load()
}

// Start subscribes to the log topic. Calling Start twice is an error.
func (s *Subscriber) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return fmt.Errorf("feed: subscriber already started")
	}
	if err := s.broker.Subscribe(s.topic, 1, s.handleMessage); err != nil {
		return err
	}
	s.started = true
	s.diag.Printf("feed: subscribed to %s", s.topic)
	return nil
}

// Stop releases the subscription. Safe to call when not started.
func (s *Subscriber) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return nil
	}
	if err := s.broker.Unsubscribe(s.topic); err != nil {
		return err
	}
	s.started = false
	s.diag.Printf("feed: unsubscribed from %s", s.topic)
	return nil
}

// handleMessage turns one broker message into a feed entry. Malformed topics
// drop the message and leave the feed untouched.
func (s *Subscriber) handleMessage(topic string, payload []byte) {
	unit, err := UnitFromTopic(topic)
	if err != nil {
		s.dropped.Add(1)
		s.diag.Printf("feed: dropping message: %v", err)
		return
	}

	message, level, task, ts := parsePayload(payload, time.Now())
	entry := model.LogEntry{
		Timestamp: ts,
		Unit:      unit,
		Level:     level,
		Task:      task,
		Message:   message,
	}
	s.feed.Append(entry)

	select {
	case s.updates <- entry:
	default:
	}
}
