package mqtt

// Client publishes payloads to an MQTT broker.
type Client interface {
	// Publish sends payload to topic, retrying according to the client
	// configuration.
	Publish(topic string, payload []byte, retained bool) error

	// Disconnect closes the broker connection.
	Disconnect()
}
