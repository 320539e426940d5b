package session

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/coder/websocket"

	"github.com/inamate/sketchboard/internal/document"
	"github.com/inamate/sketchboard/internal/engine"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
	maxMsgSize = 1 << 20
	sendBuffer = 256
)

// Client is one websocket connection editing a drawing. Each client owns
// its engine; only the read pump goroutine touches it.
type Client struct {
	hub         *Hub
	conn        *websocket.Conn
	send        chan []byte
	engine      *engine.Engine
	viewport    *engine.Viewport
	pointer     document.Point
	UserID      string
	DisplayName string
	DrawingID   string
	ClientID    string
}

func NewClient(hub *Hub, conn *websocket.Conn, eng *engine.Engine, vp *engine.Viewport, userID, displayName, drawingID, clientID string) *Client {
	return &Client{
		hub:         hub,
		conn:        conn,
		send:        make(chan []byte, sendBuffer),
		engine:      eng,
		viewport:    vp,
		UserID:      userID,
		DisplayName: displayName,
		DrawingID:   drawingID,
		ClientID:    clientID,
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
			slog.Debug("read error", "error", err, "user", c.UserID)
			return
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			slog.Warn("invalid message", "error", err, "user", c.UserID)
			c.SendError("invalid message")
			continue
		}

		msg.UserID = c.UserID
		msg.ClientID = c.ClientID
		msg.DrawingID = c.DrawingID

		c.hub.handleMessage(ctx, c, &msg)
	}
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
				slog.Debug("write error", "error", err, "user", c.UserID)
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
		slog.Error("marshal message", "error", err)
		return
	}

	select {
	case c.send <- data:
	default:
		slog.Warn("client send buffer full, dropping message", "user", c.UserID)
	}
}

func (c *Client) sendPayload(typ string, v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		slog.Error("marshal payload", "type", typ, "error", err)
		return
	}
	c.Send(&Message{Type: typ, DrawingID: c.DrawingID, Payload: payload})
}

func (c *Client) SendError(message string) {
	c.sendPayload(TypeError, ErrorPayload{Message: message})
}

func (c *Client) sendWelcome() {
	c.sendPayload(TypeWelcome, WelcomePayload{
		ClientID:  c.ClientID,
		DrawingID: c.DrawingID,
		Tools:     toolNames(),
		Width:     c.viewport.Width,
		Height:    c.viewport.Height,
	})
}

// sendFrame sends the draw commands and interaction state. shortcut names
// the keyboard shortcut that produced the frame, if any.
func (c *Client) sendFrame(shortcut engine.Shortcut) {
	e := c.engine
	frame := FramePayload{
		Commands: json.RawMessage(e.Render(c.viewport.Matrix())),
		Tool:     string(e.Tool()),
		Action:   e.Action().String(),
		Cursor:   e.Cursor(c.pointer),
		Zoom:     c.viewport.Zoom(),
		CanUndo:  e.CanUndo(),
		CanRedo:  e.CanRedo(),
	}
	if id, ok := e.Selected(); ok {
		frame.Selected = &id
	}
	if id, ok := e.PendingText(); ok {
		frame.PendingText = &id
	}
	if shortcut != engine.ShortcutNone {
		frame.Shortcut = shortcut.String()
	}
	c.sendPayload(TypeFrame, frame)
}

func (c *Client) sendDocument() {
	data, err := c.engine.Export()
	if err != nil {
		slog.Error("export drawing", "error", err, "drawing", c.DrawingID)
		c.SendError("export failed")
		return
	}
	c.sendPayload(TypeDocument, DocumentPayload{Elements: data})
}
