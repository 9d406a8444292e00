package collab

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/coder/websocket"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
	maxMsgSize = 64 * 1024

	// maxSelected caps the ids a presence update may carry.
	maxSelected = 1000
)

var (
	errBadPresence       = errors.New("invalid presence payload")
	errSelectionTooLarge = errors.New("selection too large")
)

type Client struct {
	hub         *Hub
	conn        *websocket.Conn
	send        chan []byte
	mu          sync.Mutex
	closed      bool
	UserID      string
	DisplayName string
	DocumentID  string
	ClientID    string
	Color       string
}

func NewClient(hub *Hub, conn *websocket.Conn, userID, displayName, documentID, clientID string) *Client {
	return &Client{
		hub:         hub,
		conn:        conn,
		send:        make(chan []byte, 256),
		UserID:      userID,
		DisplayName: displayName,
		DocumentID:  documentID,
		ClientID:    clientID,
		Color:       ColorFor(clientID),
	}
}

func (c *Client) ReadPump(ctx context.Context) {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	c.conn.SetReadLimit(maxMsgSize)

	for {
		_, data, err := c.conn.Read(ctx)
		if err != nil {
			if websocket.CloseStatus(err) == websocket.StatusNormalClosure ||
				websocket.CloseStatus(err) == websocket.StatusGoingAway {
				return
			}
			c.hub.logger.Debug("read error", "error", err, "user", c.UserID)
			return
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			c.hub.logger.Warn("invalid message", "error", err, "user", c.UserID)
			continue
		}

		c.handle(&msg)
	}
}

func (c *Client) handle(msg *Message) {
	switch msg.Type {
	case TypePresenceUpdate:
		p, err := c.decodePresence(msg.Payload)
		if err != nil {
			c.hub.logger.Warn("presence rejected", "error", err, "user", c.UserID)
			c.sendError(err.Error())
			return
		}
		c.hub.updatePresence(c, p)
	default:
		c.hub.logger.Warn("unknown message type", "type", msg.Type, "user", c.UserID)
		c.sendError("unknown message type " + msg.Type)
	}
}

// decodePresence parses a presence update and stamps it with this
// connection's identity.
func (c *Client) decodePresence(raw json.RawMessage) (*PresencePayload, error) {
	var p PresencePayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, errBadPresence
	}
	if p.Selection.Count() > maxSelected {
		return nil, errSelectionTooLarge
	}

	// Identity fields come from the connection, never the payload.
	p.DisplayName = c.DisplayName
	p.Color = c.Color
	// Box geometry is per-viewport and means nothing to other clients.
	p.Selection.SelectionBox = nil
	return &p, nil
}

func (c *Client) sendError(text string) {
	c.Send(newMessage(TypeError, ErrorPayload{Message: text}))
}

func (c *Client) WritePump(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	for {
		select {
		case message, ok := <-c.send:
			if !ok {
				return
			}

			writeCtx, cancel := context.WithTimeout(ctx, writeWait)
			err := c.conn.Write(writeCtx, websocket.MessageText, message)
			cancel()
			if err != nil {
				c.hub.logger.Debug("write error", "error", err, "user", c.UserID)
				return
			}

		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, writeWait)
			err := c.conn.Ping(pingCtx)
			cancel()
			if err != nil {
				return
			}

		case <-ctx.Done():
			return
		}
	}
}

func (c *Client) Send(msg *Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		c.hub.logger.Error("marshal message", "error", err)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.send <- data:
	default:
		c.hub.logger.Warn("client send buffer full, dropping message", "user", c.UserID)
	}
}

func (c *Client) closeSend() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}
