package mqtt

import (
	"fmt"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
)

// ConnState describes the connection to the broker.
type ConnState int

const (
	StateDisconnected ConnState = iota
	StateConnecting
	StateConnected
)

func (s ConnState) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	default:
		return "disconnected"
	}
}

// Config sisältää MQTT client konfiguraation
type Config struct {
	URL              string // e.g. tcp://localhost:1883
	ClientID         string
	Username         string
	Password         string
	ConnectRetries   int
	ConnectRetryWait time.Duration
	MaxReconnectWait time.Duration
}

func DefaultConfig() Config {
	return Config{
		URL:              "tcp://localhost:1883",
		ClientID:         "piomon",
		ConnectRetries:   10,
		ConnectRetryWait: 5 * time.Second,
		MaxReconnectWait: 1 * time.Minute,
	}
}

type subscription struct {
	qos     byte
	handler MessageHandler
}

// Client wrappaa paho MQTT clientin
type Client struct {
	cli paho.Client

	mu     sync.Mutex
	subs   map[string]subscription
	states chan ConnState
}

// NewClient connects to the broker, retrying with linear backoff. The leader
// may be down or restarting, so each failed attempt waits attempt*wait before
// trying again.
func NewClient(cfg Config) (*Client, error) {
	c := &Client{
		subs:   make(map[string]subscription),
		states: make(chan ConnState, 8),
	}

	opts := paho.NewClientOptions().
		AddBroker(cfg.URL).
		SetClientID(cfg.ClientID).
		SetAutoReconnect(true).
		SetMaxReconnectInterval(cfg.MaxReconnectWait).
		SetOnConnectHandler(c.onConnect).
		SetConnectionLostHandler(c.onConnectionLost)

	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}

	c.cli = paho.NewClient(opts)

	retries := cfg.ConnectRetries
	if retries <= 0 {
		retries = 1
	}

	c.pushState(StateConnecting)
	var lastErr error
	for attempt := 1; attempt <= retries; attempt++ {
		token := c.cli.Connect()
		token.Wait()
		if lastErr = token.Error(); lastErr == nil {
			return c, nil
		}
		if attempt < retries {
			time.Sleep(time.Duration(attempt) * cfg.ConnectRetryWait)
		}
	}

	c.pushState(StateDisconnected)
	return nil, fmt.Errorf("mqtt: unable to connect to %s: %w", cfg.URL, lastErr)
}

// Subscribe registers handler for topic. The subscription survives broker
// reconnects: it is re-issued with the same topic string on every connect.
func (c *Client) Subscribe(topic string, qos byte, handler MessageHandler) error {
	c.mu.Lock()
	c.subs[topic] = subscription{qos: qos, handler: handler}
	c.mu.Unlock()

	token := c.cli.Subscribe(topic, qos, wrapHandler(handler))
	token.Wait()
	if err := token.Error(); err != nil {
		c.mu.Lock()
		delete(c.subs, topic)
		c.mu.Unlock()
		return fmt.Errorf("mqtt: subscribe %s: %w", topic, err)
	}
	return nil
}

// Unsubscribe releases the subscription for topic.
func (c *Client) Unsubscribe(topic string) error {
	c.mu.Lock()
	delete(c.subs, topic)
	c.mu.Unlock()

	token := c.cli.Unsubscribe(topic)
	token.Wait()
	if err := token.Error(); err != nil {
		return fmt.Errorf("mqtt: unsubscribe %s: %w", topic, err)
	}
	return nil
}

// Publish sends payload to topic.
func (c *Client) Publish(topic string, qos byte, retained bool, payload []byte) error {
	token := c.cli.Publish(topic, qos, retained, payload)
	token.Wait()
	if err := token.Error(); err != nil {
		return fmt.Errorf("mqtt: publish %s: %w", topic, err)
	}
	return nil
}

// States exposes connection transitions for the connectivity indicator.
func (c *Client) States() <-chan ConnState {
	return c.states
}

// Close disconnects from the broker.
func (c *Client) Close() error {
	c.cli.Disconnect(250)
	c.pushState(StateDisconnected)
	return nil
}

// onConnect runs on every (re)connect and re-issues registered subscriptions.
func (c *Client) onConnect(cli paho.Client) {
	c.mu.Lock()
	subs := make(map[string]subscription, len(c.subs))
	for topic, sub := range c.subs {
		subs[topic] = sub
	}
	c.mu.Unlock()

	for topic, sub := range subs {
		cli.Subscribe(topic, sub.qos, wrapHandler(sub.handler))
	}
	c.pushState(StateConnected)
}

func (c *Client) onConnectionLost(_ paho.Client, _ error) {
	c.pushState(StateConnecting) // paho auto-reconnect takes over
}

// pushState never blocks: if the consumer lags, old transitions are dropped.
func (c *Client) pushState(s ConnState) {
	select {
	case c.states <- s:
	default:
	}
}

func wrapHandler(h MessageHandler) paho.MessageHandler {
	return func(_ paho.Client, msg paho.Message) {
		h(msg.Topic(), msg.Payload())
	}
}
