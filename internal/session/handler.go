package session

import (
	"context"
	"errors"
	"net/http"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/inamate/sketchboard/internal/auth"
	"github.com/inamate/sketchboard/internal/drawing"
	"github.com/inamate/sketchboard/internal/engine"
)

// Users resolves display names for presence.
type Users interface {
	GetUser(ctx context.Context, userID string) (*auth.User, error)
}

type Handler struct {
	hub            *Hub
	users          Users
	originPatterns []string
}

func NewHandler(hub *Hub, users Users, originPatterns []string) *Handler {
	return &Handler{hub: hub, users: users, originPatterns: originPatterns}
}

// Connect upgrades GET /ws/drawings/{drawingId} to a drawing session. The
// route must sit behind auth.AuthMiddleware.
func (h *Handler) Connect(w http.ResponseWriter, r *http.Request) {
	drawingID := mux.Vars(r)["drawingId"]
	userID := auth.UserIDFromContext(r.Context())

	client, status, err := h.open(r.Context(), drawingID, userID)
	if err != nil {
		http.Error(w, err.Error(), status)
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: h.originPatterns,
	})
	if err != nil {
		h.hub.logger.Error("websocket accept", "error", err)
		return
	}
	client.conn = conn

	client.sendWelcome()
	client.sendFrame(engine.ShortcutNone)
	h.hub.Register(client)

	ctx := r.Context()
	go client.WritePump(ctx)
	client.ReadPump(ctx)
}

// open loads the drawing into a fresh engine for a new client.
func (h *Handler) open(ctx context.Context, drawingID, userID string) (*Client, int, error) {
	d, err := h.hub.store.Get(ctx, drawingID, userID)
	if err != nil {
		switch {
		case errors.Is(err, drawing.ErrNotFound):
			return nil, http.StatusNotFound, errors.New("drawing not found")
		case errors.Is(err, drawing.ErrForbidden):
			return nil, http.StatusForbidden, errors.New("forbidden")
		}
		h.hub.logger.Error("get drawing", "error", err)
		return nil, http.StatusInternalServerError, errors.New("internal error")
	}

	user, err := h.users.GetUser(ctx, userID)
	if err != nil {
		return nil, http.StatusInternalServerError, errors.New("user not found")
	}

	data, err := h.hub.store.Elements(ctx, drawingID, userID)
	if err != nil {
		h.hub.logger.Error("get elements", "error", err)
		return nil, http.StatusInternalServerError, errors.New("internal error")
	}

	clientID := uuid.New().String()
	eng := engine.NewEngine(engine.WithLogger(h.hub.logger.With("drawing", drawingID, "client", clientID)))
	if err := eng.Load(data); err != nil {
		h.hub.logger.Error("load drawing", "error", err, "drawing", drawingID)
		return nil, http.StatusInternalServerError, errors.New("stored drawing is invalid")
	}

	vp := engine.NewViewport(float64(d.Width), float64(d.Height))
	return NewClient(h.hub, nil, eng, vp, userID, user.DisplayName, drawingID, clientID), http.StatusOK, nil
}
