// Package session runs drawing engines behind websocket connections.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	"github.com/inamate/sketchboard/internal/drawing"
	"github.com/inamate/sketchboard/internal/engine"
)

// Store loads and saves drawings on behalf of a user.
type Store interface {
	Get(ctx context.Context, drawingID, userID string) (*drawing.Drawing, error)
	Elements(ctx context.Context, drawingID, userID string) (json.RawMessage, error)
	Save(ctx context.Context, drawingID, userID string, data []byte) (*drawing.Revision, error)
}

// Room groups the clients that have the same drawing open.
type Room struct {
	drawingID string
	clients   map[string]*Client
	presence  *Presence
}

func NewRoom(drawingID string) *Room {
	return &Room{
		drawingID: drawingID,
		clients:   make(map[string]*Client),
		presence:  NewPresence(),
	}
}

type Hub struct {
	mu         sync.RWMutex
	rooms      map[string]*Room
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	stopOnce   sync.Once
	store      Store
	logger     *slog.Logger
}

func NewHub(store Store, logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		rooms:      make(map[string]*Room),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		store:      store,
		logger:     logger,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case <-h.done:
			return
		}
	}
}

// Stop ends Run. Connected clients finish when their requests end.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.done) })
}

func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Clients returns the number of clients with drawingID open.
func (h *Hub) Clients(drawingID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if room, ok := h.rooms[drawingID]; ok {
		return len(room.clients)
	}
	return 0
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	room, ok := h.rooms[client.DrawingID]
	if !ok {
		room = NewRoom(client.DrawingID)
		h.rooms[client.DrawingID] = room
	}
	room.clients[client.ClientID] = client
	h.mu.Unlock()

	if stateMsg := room.presence.StateMessage(); stateMsg != nil {
		client.Send(stateMsg)
	}

	joinPayload, _ := json.Marshal(PresenceJoinPayload{
		ClientID:    client.ClientID,
		UserID:      client.UserID,
		DisplayName: client.DisplayName,
	})
	h.broadcastToRoom(client.DrawingID, &Message{
		Type:     TypePresenceJoin,
		UserID:   client.UserID,
		ClientID: client.ClientID,
		Payload:  joinPayload,
	}, client.ClientID)

	h.logger.Info("client joined", "user", client.UserID, "drawing", client.DrawingID)
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	room, ok := h.rooms[client.DrawingID]
	if !ok {
		h.mu.Unlock()
		return
	}
	if _, ok := room.clients[client.ClientID]; !ok {
		h.mu.Unlock()
		return
	}

	delete(room.clients, client.ClientID)
	close(client.send)
	room.presence.Remove(client.ClientID)

	if len(room.clients) == 0 {
		delete(h.rooms, client.DrawingID)
	}
	h.mu.Unlock()

	leavePayload, _ := json.Marshal(PresenceLeavePayload{ClientID: client.ClientID})
	h.broadcastToRoom(client.DrawingID, &Message{
		Type:     TypePresenceLeave,
		UserID:   client.UserID,
		ClientID: client.ClientID,
		Payload:  leavePayload,
	}, "")

	h.logger.Info("client left", "user", client.UserID, "drawing", client.DrawingID)
}

// handleMessage applies one client event to the client's engine and
// replies with a new frame.
func (h *Hub) handleMessage(ctx context.Context, c *Client, msg *Message) {
	e := c.engine
	shortcut := engine.ShortcutNone

	switch msg.Type {
	case TypePointerDown, TypePointerMove, TypePointerUp:
		var p PointerPayload
		if !h.decode(c, msg, &p) {
			return
		}
		c.pointer = c.viewport.ToCanvas(pointOf(p))
		switch msg.Type {
		case TypePointerDown:
			e.PointerDown(c.pointer)
		case TypePointerMove:
			e.PointerMove(c.pointer)
			h.updatePresence(c)
		case TypePointerUp:
			e.PointerUp(c.pointer)
		}

	case TypeKey:
		var ev engine.KeyEvent
		if !h.decode(c, msg, &ev) {
			return
		}
		shortcut = e.HandleKey(ev)
		if shortcut == engine.ShortcutExport {
			c.sendDocument()
		}

	case TypeSetTool:
		var p ToolPayload
		if !h.decode(c, msg, &p) {
			return
		}
		tool, err := engine.ParseTool(p.Tool)
		if err != nil {
			c.SendError(err.Error())
			return
		}
		e.SetTool(tool)

	case TypeSetStyle:
		style := e.Style()
		if !h.decode(c, msg, &style) {
			return
		}
		e.SetStyle(style)

	case TypeSetZoom:
		var p ZoomPayload
		if !h.decode(c, msg, &p) {
			return
		}
		c.viewport.SetZoom(p.Zoom)

	case TypeUndo:
		e.Undo()
	case TypeRedo:
		e.Redo()
	case TypeDelete:
		e.Delete()
	case TypeClear:
		e.Clear()
	case TypeTextCancel:
		e.CancelText()

	case TypeTextSubmit:
		var p TextPayload
		if !h.decode(c, msg, &p) {
			return
		}
		if err := e.SubmitText(p.Text); err != nil {
			c.SendError(err.Error())
			return
		}

	case TypeImport:
		if err := e.Import(msg.Payload); err != nil {
			c.SendError(err.Error())
			return
		}

	case TypeExport:
		c.sendDocument()
		return

	case TypeSave:
		h.save(ctx, c)

	case TypeReload:
		data, err := h.store.Elements(ctx, c.DrawingID, c.UserID)
		if err != nil {
			h.logger.Error("reload drawing", "error", err, "drawing", c.DrawingID)
			c.SendError("reload failed")
			return
		}
		if err := e.Load(data); err != nil {
			h.logger.Error("load drawing", "error", err, "drawing", c.DrawingID)
			c.SendError("reload failed")
			return
		}

	default:
		h.logger.Warn("unknown message type", "type", msg.Type, "user", c.UserID)
		c.SendError("unknown message type " + msg.Type)
		return
	}

	c.sendFrame(shortcut)
}

func (h *Hub) decode(c *Client, msg *Message, v any) bool {
	if err := json.Unmarshal(msg.Payload, v); err != nil {
		h.logger.Warn("invalid payload", "type", msg.Type, "error", err)
		c.SendError("invalid " + msg.Type + " payload")
		return false
	}
	return true
}

// save stores the client's drawing as a new revision and tells everyone
// with the drawing open.
func (h *Hub) save(ctx context.Context, c *Client) {
	data, err := c.engine.Export()
	if err != nil {
		h.logger.Error("export drawing", "error", err, "drawing", c.DrawingID)
		c.SendError("save failed")
		return
	}

	rev, err := h.store.Save(ctx, c.DrawingID, c.UserID, data)
	if err != nil {
		switch {
		case errors.Is(err, drawing.ErrForbidden), errors.Is(err, drawing.ErrNotFound):
			c.SendError(err.Error())
		default:
			h.logger.Error("save drawing", "error", err, "drawing", c.DrawingID)
			c.SendError("save failed")
		}
		return
	}

	payload, _ := json.Marshal(SavedPayload{RevisionID: rev.ID, Version: rev.Version, UserID: c.UserID})
	h.broadcastToRoom(c.DrawingID, &Message{
		Type:      TypeSaved,
		DrawingID: c.DrawingID,
		UserID:    c.UserID,
		Payload:   payload,
	}, "")
	h.logger.Info("drawing saved", "drawing", c.DrawingID, "version", rev.Version, "user", c.UserID)
}

func (h *Hub) updatePresence(c *Client) {
	h.mu.RLock()
	room, ok := h.rooms[c.DrawingID]
	h.mu.RUnlock()
	if !ok {
		return
	}

	cursor := c.pointer
	presence := &PresencePayload{Cursor: &cursor, Tool: string(c.engine.Tool()), DisplayName: c.DisplayName}
	room.presence.Update(c.ClientID, presence)

	payload, _ := json.Marshal(presence)
	h.broadcastToRoom(c.DrawingID, &Message{
		Type:     TypePresenceUpdate,
		UserID:   c.UserID,
		ClientID: c.ClientID,
		Payload:  payload,
	}, c.ClientID)
}

// broadcastToRoom sends while holding the read lock so that removeClient
// cannot close a send channel mid-broadcast.
func (h *Hub) broadcastToRoom(drawingID string, msg *Message, excludeClientID string) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	room, ok := h.rooms[drawingID]
	if !ok {
		return
	}
	for _, c := range room.clients {
		if c.ClientID != excludeClientID {
			c.Send(msg)
		}
	}
}
