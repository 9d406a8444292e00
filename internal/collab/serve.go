package collab

import (
	"fmt"
	"net/http"

	"github.com/coder/websocket"
	"github.com/google/uuid"
)

// Identity is who a connection belongs to.
type Identity struct {
	UserID      string
	DisplayName string
}

// Anonymous returns a throwaway identity for unauthenticated editors.
func Anonymous() Identity {
	return Identity{UserID: "anon-" + uuid.NewString()[:8], DisplayName: "Anonymous"}
}

// Serve upgrades the request and pumps messages for documentID until the
// connection closes.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, id Identity, documentID string, originPatterns []string) error {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: originPatterns,
	})
	if err != nil {
		return fmt.Errorf("websocket accept: %w", err)
	}

	client := NewClient(h, conn, id.UserID, id.DisplayName, documentID, uuid.NewString())
	h.Register(client)

	ctx := r.Context()
	go client.WritePump(ctx)
	client.ReadPump(ctx)
	return nil
}
