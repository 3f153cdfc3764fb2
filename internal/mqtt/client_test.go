package mqtt

import (
	"testing"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePahoClient records subscribe calls so we can assert what is re-issued
// after a reconnect.
type fakePahoClient struct {
	subscribed []string
}

type doneToken struct{}

func (doneToken) Wait() bool                     { return true }
func (doneToken) WaitTimeout(time.Duration) bool { return true }
func (doneToken) Done() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}
func (doneToken) Error() error { return nil }

func (f *fakePahoClient) IsConnected() bool       { return true }
func (f *fakePahoClient) IsConnectionOpen() bool  { return true }
func (f *fakePahoClient) Connect() paho.Token     { return doneToken{} }
func (f *fakePahoClient) Disconnect(uint)         {}
func (f *fakePahoClient) Publish(string, byte, bool, interface{}) paho.Token {
	return doneToken{}
}
func (f *fakePahoClient) Subscribe(topic string, _ byte, _ paho.MessageHandler) paho.Token {
	f.subscribed = append(f.subscribed, topic)
	return doneToken{}
}
func (f *fakePahoClient) SubscribeMultiple(map[string]byte, paho.MessageHandler) paho.Token {
	return doneToken{}
}
func (f *fakePahoClient) Unsubscribe(...string) paho.Token { return doneToken{} }
func (f *fakePahoClient) AddRoute(string, paho.MessageHandler) {}
func (f *fakePahoClient) OptionsReader() paho.ClientOptionsReader {
	return paho.ClientOptionsReader{}
}

func newTestClient(fake *fakePahoClient) *Client {
	return &Client{
		cli:    fake,
		subs:   make(map[string]subscription),
		states: make(chan ConnState, 8),
	}
}

func TestReconnectReissuesSameSubscription(t *testing.T) {
	fake := &fakePahoClient{}
	c := newTestClient(fake)

	require.NoError(t, c.Subscribe("morbidostat/+/exp1/log", 1, func(string, []byte) {}))
	require.Equal(t, []string{"morbidostat/+/exp1/log"}, fake.subscribed)

	// broker connection drops, paho reconnects and fires the connect handler
	c.onConnectionLost(fake, assert.AnError)
	c.onConnect(fake)

	assert.Equal(t,
		[]string{"morbidostat/+/exp1/log", "morbidostat/+/exp1/log"},
		fake.subscribed,
		"the identical topic string must be subscribed again")
}

func TestUnsubscribedTopicsAreNotReissued(t *testing.T) {
	fake := &fakePahoClient{}
	c := newTestClient(fake)

	require.NoError(t, c.Subscribe("morbidostat/+/exp1/log", 1, func(string, []byte) {}))
	require.NoError(t, c.Unsubscribe("morbidostat/+/exp1/log"))

	c.onConnect(fake)
	assert.Len(t, fake.subscribed, 1, "released subscriptions stay released across reconnects")
}

func TestConnStateTransitions(t *testing.T) {
	fake := &fakePahoClient{}
	c := newTestClient(fake)

	c.onConnect(fake)
	assert.Equal(t, StateConnected, <-c.States())

	c.onConnectionLost(fake, assert.AnError)
	assert.Equal(t, StateConnecting, <-c.States())
}

func TestConnStateString(t *testing.T) {
	assert.Equal(t, "connected", StateConnected.String())
	assert.Equal(t, "connecting", StateConnecting.String())
	assert.Equal(t, "disconnected", StateDisconnected.String())
}
