// internal/services/events.go
package services

// Broadcaster is the outbound event port for the real-time channel.
// Services call it after a successful commit; the realtime hub
// implements it. Sends are fire-and-forget and must never fail the
// triggering request.
type Broadcaster interface {
	Broadcast(message interface{})
	SendToUser(userID string, message interface{})
}

// SyncEvent names the collections a mutation touched so connected
// clients can re-pull them.
func SyncEvent(tables ...string) map[string]interface{} {
	return map[string]interface{}{"type": "sync", "tables": tables}
}

// NopBroadcaster satisfies Broadcaster without a hub; used in tests.
type NopBroadcaster struct{}

func (NopBroadcaster) Broadcast(message interface{}) {}

func (NopBroadcaster) SendToUser(userID string, msg interface{}) {}
