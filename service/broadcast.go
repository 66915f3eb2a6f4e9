package service

// Broadcaster pushes status events to interested clients, keyed by topic
// ("recorder", "player", "live"). Implemented by the websocket hub.
type Broadcaster interface {
	Broadcast(topic string, message interface{})
}

// NopBroadcaster discards every event. Used when no hub is wired and in
// tests.
type NopBroadcaster struct{}

func (NopBroadcaster) Broadcast(string, interface{}) {}
