// internal/mqtt/interface.go
package mqtt

// MessageHandler is invoked for every message delivered on a subscribed topic.
// Delivery is serialized per subscription by the client's event loop.
type MessageHandler func(topic string, payload []byte)

// Broker interface mahdollistaa mockauksen testeissä
type Broker interface {
	Subscribe(topic string, qos byte, handler MessageHandler) error
	Unsubscribe(topic string) error
	Publish(topic string, qos byte, retained bool, payload []byte) error
	States() <-chan ConnState
	Close() error
}

// Varmista että Client toteuttaa interfacen
var _ Broker = (*Client)(nil)
