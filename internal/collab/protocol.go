package collab

import (
	"encoding/json"

	"github.com/inamate/inamate/editor-go/internal/selection"
)

type Message struct {
	Type       string          `json:"type"`
	DocumentID string          `json:"documentId,omitempty"`
	ClientID   string          `json:"clientId,omitempty"`
	UserID     string          `json:"userId,omitempty"`
	Payload    json.RawMessage `json:"payload"`
}

// PresencePayload is one client's pointer and selection as seen by the
// other editors of the document.
type PresencePayload struct {
	Cursor      *CursorPos         `json:"cursor,omitempty"`
	Selection   selection.Snapshot `json:"selection"`
	DisplayName string             `json:"displayName,omitempty"`
	Color       string             `json:"color,omitempty"`
}

type CursorPos struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PresenceStatePayload maps client ids to their presence.
type PresenceStatePayload struct {
	Presences map[string]*PresencePayload `json:"presences"`
}

type PresenceJoinPayload struct {
	ClientID    string `json:"clientId"`
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
	Color       string `json:"color"`
}

type PresenceLeavePayload struct {
	ClientID string `json:"clientId"`
	UserID   string `json:"userId"`
}

type WelcomePayload struct {
	ClientID string `json:"clientId"`
	Color    string `json:"color"`
}

// SharedSelectionPayload maps element ids in the recipient's selection
// to the other clients that also have them selected.
type SharedSelectionPayload struct {
	Elements map[string][]string `json:"elements"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

const (
	TypePresenceUpdate = "presence.update"
	TypePresenceState  = "presence.state"
	TypePresenceJoin   = "presence.join"
	TypePresenceLeave  = "presence.leave"
	TypePresenceShared = "presence.shared"
	TypeError          = "error"

	// Connection
	TypeWelcome = "welcome"
)

func newMessage(typ string, payload any) *Message {
	data, _ := json.Marshal(payload)
	return &Message{Type: typ, Payload: data}
}
