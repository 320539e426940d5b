package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/inamate/sketchboard/internal/auth"
	"github.com/inamate/sketchboard/internal/drawing"
	"github.com/inamate/sketchboard/internal/engine"
	"github.com/inamate/sketchboard/internal/render"
	"github.com/inamate/sketchboard/internal/typeid"
)

// ExportResponse is returned from the export endpoint.
type ExportResponse struct {
	ID     string `json:"id"`
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Zoom   int    `json:"zoom"`
}

// Handler renders drawings to PNG files and serves them.
type Handler struct {
	drawings *drawing.Service
	fonts    *render.FontBook
	dir      string
}

// NewHandler creates an export handler that stores files in dir.
func NewHandler(drawings *drawing.Service, fonts *render.FontBook, dir string) *Handler {
	if err := os.MkdirAll(dir, 0755); err != nil {
		slog.Error("create export dir", "error", err, "dir", dir)
	}
	return &Handler{drawings: drawings, fonts: fonts, dir: dir}
}

// ExportPNG handles POST /api/drawings/{drawingId}/export.
// Query parameters: zoom (50..200) and background (hex colour).
func (h *Handler) ExportPNG(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	drawingID := mux.Vars(r)["drawingId"]

	d, err := h.drawings.Get(r.Context(), drawingID, userID)
	if err != nil {
		writeDrawingError(w, err)
		return
	}
	data, err := h.drawings.Elements(r.Context(), drawingID, userID)
	if err != nil {
		writeDrawingError(w, err)
		return
	}

	opts := Options{Width: d.Width, Height: d.Height, Zoom: 100, Background: r.URL.Query().Get("background")}
	if z := r.URL.Query().Get("zoom"); z != "" {
		if opts.Zoom, err = strconv.Atoi(z); err != nil {
			http.Error(w, "invalid zoom", http.StatusBadRequest)
			return
		}
	}

	snapshot, err := engine.DecodeSnapshot(data)
	if err != nil {
		slog.Error("decode stored drawing", "drawing", drawingID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := Render(&buf, snapshot, h.fonts, opts); err != nil {
		slog.Error("render png", "drawing", drawingID, "error", err)
		http.Error(w, "failed to render drawing", http.StatusInternalServerError)
		return
	}

	exportID := typeid.NewExportID()
	filename := exportID + ".png"
	if err := os.WriteFile(filepath.Join(h.dir, filename), buf.Bytes(), 0644); err != nil {
		slog.Error("write export file", "error", err)
		http.Error(w, "failed to save file", http.StatusInternalServerError)
		return
	}

	width, height := opts.Size()
	slog.Info("export finished", "drawing", drawingID, "export", exportID, "elements", snapshot.Len(), "bytes", buf.Len())

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(ExportResponse{
		ID:     exportID,
		URL:    fmt.Sprintf("/exports/%s", filename),
		Width:  width,
		Height: height,
		Zoom:   int(opts.scale() * 100),
	})
}

// Serve returns an http.Handler that serves rendered files with caching headers.
func (h *Handler) Serve() http.Handler {
	fs := http.FileServer(http.Dir(h.dir))
	return http.StripPrefix("/exports/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Export IDs are unique, so files are immutable
		w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		fs.ServeHTTP(w, r)
	}))
}

func writeDrawingError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, drawing.ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, drawing.ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	default:
		slog.Error("load drawing", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
