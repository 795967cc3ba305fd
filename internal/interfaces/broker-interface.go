package interfaces

// ProducerHandler publishes a keyed message to the broker.
type ProducerHandler interface {
	PublishMessage(key, value []byte) error
}

// ConsumerHandler processes one consumed message. The key carries the event
// type, the value the JSON payload.
type ConsumerHandler interface {
	HandleMessage(key, value string) error
}
