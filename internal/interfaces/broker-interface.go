package interfaces

// ConsumerHandler processes one raw broker message (the sms-worker side).
type ConsumerHandler interface {
	HandleMessage(message string) error
}

// ProducerHandler publishes one event to the broker. Auth flows treat it as
// fire-and-forget.
type ProducerHandler interface {
	PublishMessage(key, value []byte) error
}
