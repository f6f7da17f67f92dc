package amqp

import (
	"encoding/json"
	"time"
)

// Entity kinds carried in state-changed events.
const (
	KindExpense      = "expense"
	KindGoal         = "goal"
	KindSubscription = "subscription"
)

// Operations carried in state-changed events.
const (
	OpCreated = "created"
	OpUpdated = "updated"
	OpDeleted = "deleted"
)

// StateChangedMessage announces that one entity list changed. Consumers
// re-derive from a fresh snapshot, so the message carries only enough to
// know something moved, not the record itself.
type StateChangedMessage struct {
	Kind      string    `json:"kind"`
	ID        string    `json:"id"`
	Op        string    `json:"op"`
	Timestamp time.Time `json:"timestamp"`
}

func NewStateChangedMessage(kind, id, op string) *StateChangedMessage {
	return &StateChangedMessage{
		Kind:      kind,
		ID:        id,
		Op:        op,
		Timestamp: time.Now(),
	}
}

func (m *StateChangedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func StateChangedMessageFromJSON(data []byte) (*StateChangedMessage, error) {
	var msg StateChangedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
