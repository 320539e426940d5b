package session

import (
	"encoding/json"

	"github.com/inamate/sketchboard/internal/document"
	"github.com/inamate/sketchboard/internal/engine"
)

type Message struct {
	Type      string          `json:"type"`
	DrawingID string          `json:"drawingId,omitempty"`
	ClientID  string          `json:"clientId,omitempty"`
	UserID    string          `json:"userId,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

const (
	// Client to server
	TypePointerDown = "pointer.down"
	TypePointerMove = "pointer.move"
	TypePointerUp   = "pointer.up"
	TypeKey         = "key"
	TypeSetTool     = "tool.set"
	TypeSetStyle    = "style.set"
	TypeSetZoom     = "zoom.set"
	TypeUndo        = "undo"
	TypeRedo        = "redo"
	TypeDelete      = "delete"
	TypeClear       = "clear"
	TypeTextSubmit  = "text.submit"
	TypeTextCancel  = "text.cancel"
	TypeImport      = "import"
	TypeExport      = "export"
	TypeSave        = "save"
	TypeReload      = "reload"

	// Server to client
	TypeWelcome  = "welcome"
	TypeFrame    = "frame"
	TypeDocument = "document"
	TypeSaved    = "saved"
	TypeError    = "error"

	TypePresenceUpdate = "presence.update"
	TypePresenceState  = "presence.state"
	TypePresenceJoin   = "presence.join"
	TypePresenceLeave  = "presence.leave"
)

// PointerPayload is a pointer position relative to the canvas element,
// before the viewport zoom is undone.
type PointerPayload struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func pointOf(p PointerPayload) document.Point { return document.Point{X: p.X, Y: p.Y} }

type ToolPayload struct {
	Tool string `json:"tool"`
}

type ZoomPayload struct {
	Zoom int `json:"zoom"`
}

type TextPayload struct {
	Text string `json:"text"`
}

type WelcomePayload struct {
	ClientID  string   `json:"clientId"`
	DrawingID string   `json:"drawingId"`
	Tools     []string `json:"tools"`
	Width     float64  `json:"width"`
	Height    float64  `json:"height"`
}

// FramePayload is the full visible state after an event.
type FramePayload struct {
	Commands    json.RawMessage `json:"commands"`
	Tool        string          `json:"tool"`
	Action      string          `json:"action"`
	Cursor      string          `json:"cursor"`
	Zoom        int             `json:"zoom"`
	CanUndo     bool            `json:"canUndo"`
	CanRedo     bool            `json:"canRedo"`
	Selected    *document.ID    `json:"selected,omitempty"`
	PendingText *document.ID    `json:"pendingText,omitempty"`
	Shortcut    string          `json:"shortcut,omitempty"`
}

type DocumentPayload struct {
	Elements json.RawMessage `json:"elements"`
}

type SavedPayload struct {
	RevisionID string `json:"revisionId"`
	Version    int    `json:"version"`
	UserID     string `json:"userId"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

type PresencePayload struct {
	Cursor      *document.Point `json:"cursor,omitempty"`
	Tool        string          `json:"tool,omitempty"`
	DisplayName string          `json:"displayName,omitempty"`
}

type PresenceStatePayload struct {
	Presences map[string]*PresencePayload `json:"presences"`
}

type PresenceJoinPayload struct {
	ClientID    string `json:"clientId"`
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
}

type PresenceLeavePayload struct {
	ClientID string `json:"clientId"`
}

func toolNames() []string {
	names := make([]string, len(engine.Tools))
	for i, t := range engine.Tools {
		names[i] = string(t)
	}
	return names
}
