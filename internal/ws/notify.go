package ws

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type ResumesUpdatedEvent struct {
	Type      string `json:"type"`
	Timestamp string `json:"timestamp"`
}

// Notifier adapts the hub to the event producers; a nil hub makes every
// notification a no-op.
type Notifier struct {
	hub *Hub
}

func NewNotifier(hub *Hub) *Notifier {
	return &Notifier{hub: hub}
}

func (n *Notifier) ResumesUpdated(userID uuid.UUID) {
	if n == nil || n.hub == nil || userID == uuid.Nil {
		return
	}

	evt := ResumesUpdatedEvent{
		Type:      "resumes_updated",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}

	n.hub.Publish(userID, b)
}
