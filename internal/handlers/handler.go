package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"os"

	"github.com/bookerang/bookerang/internal/api"
	"github.com/bookerang/bookerang/internal/storage"
)

const uploadsDir = "uploads"

type Handler struct {
	client   *api.Client
	captures *storage.CaptureStore
}

func New(client *api.Client) *Handler {
	return &Handler{
		client:   client,
		captures: storage.New(),
	}
}

// Response helpers
func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Unable to encode JSON response", "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	slog.Error(message)
	http.Error(w, message, code)
}

func (h *Handler) ensureUploadsDir() error {
	return os.MkdirAll(uploadsDir, 0755)
}
