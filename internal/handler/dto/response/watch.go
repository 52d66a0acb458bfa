package response

import (
	"encoding/json"
	"time"

	"parking-booking-gateway/internal/usecase/reconciler"
)

// MessageType identifies a WebSocket frame.
type MessageType string

const (
	MessageBookingsUpdated  MessageType = MessageType(reconciler.EventBookingsUpdated)
	MessageBookingCompleted MessageType = MessageType(reconciler.EventBookingCompleted)
	MessageSessionEnded     MessageType = MessageType(reconciler.EventSessionEnded)
	MessageWatchOpened      MessageType = "watch_opened"
	MessageError            MessageType = "error"

	// Sent by the client.
	MessageRefresh MessageType = "refresh"
	MessagePing    MessageType = "ping"
	MessagePong    MessageType = "pong"
)

// WatchMessage is the envelope of every frame on a bookings watch.
type WatchMessage struct {
	Type      MessageType `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   any         `json:"payload,omitempty"`
}

func NewWatchMessage(msgType MessageType, payload any) WatchMessage {
	return WatchMessage{
		Type:      msgType,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

func FromEvent(e reconciler.Event) WatchMessage {
	return NewWatchMessage(MessageType(e.Type), e.Payload)
}

func (m WatchMessage) JSON() ([]byte, error) {
	return json.Marshal(m)
}

type WatchOpenedPayload struct {
	WatchID string `json:"watch_id"`
	View    string `json:"view"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}
