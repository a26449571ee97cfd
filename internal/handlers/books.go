package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/bookerang/bookerang/internal/books"
)

// HandleBooks serves the browse view: nearby books, optionally narrowed by the
// local search filter. Upstream failures degrade to an empty list so the UI
// always returns to an interactive state.
func (h *Handler) HandleBooks(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	radius := 3000
	if v := r.URL.Query().Get("radius"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			h.writeError(w, "Invalid radius: "+v, http.StatusBadRequest)
			return
		}
		radius = parsed
	}

	list, err := h.client.NearbyBooks(r.Context(), radius)
	if err != nil {
		slog.Error("Failed to fetch nearby books", "radius", radius, "err", err)
		list = []books.Book{}
	}

	filters := books.SearchFilters{
		Query:             r.URL.Query().Get("query"),
		ShowAvailableOnly: r.URL.Query().Get("available") == "true",
	}
	if filters.Active() {
		list = books.Filter(list, filters)
	}

	h.writeJSON(w, list)
}

// HandleSearch proxies the server-side search endpoint.
func (h *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	list, err := h.client.SearchBooks(r.Context(), r.URL.Query().Get("query"), r.URL.Query().Get("available") == "true")
	if err != nil {
		slog.Error("Search failed", "err", err)
		list = []books.Book{}
	}
	h.writeJSON(w, list)
}

// HandleMyBooks serves the signed-in user's own listings.
func (h *Handler) HandleMyBooks(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	list, err := h.client.UserBooks(r.Context())
	if err != nil {
		slog.Error("Failed to fetch user books", "err", err)
		list = []books.Book{}
	}
	h.writeJSON(w, list)
}

// HandleBookAction routes POST /api/books/{id}/{borrow|approve|reject}.
func (h *Handler) HandleBookAction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	parts := strings.Split(strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/books/"), "/"), "/")
	if len(parts) != 2 {
		h.writeError(w, "Expected /api/books/{id}/{action}", http.StatusBadRequest)
		return
	}
	bookID, err := strconv.Atoi(parts[0])
	if err != nil {
		h.writeError(w, "Invalid book id: "+parts[0], http.StatusBadRequest)
		return
	}

	switch parts[1] {
	case "borrow":
		var body struct {
			Message string `json:"message"`
		}
		// A missing body just means the default message.
		_ = json.NewDecoder(r.Body).Decode(&body)
		err = h.client.Borrow(r.Context(), bookID, body.Message)
	case "approve":
		err = h.client.Approve(r.Context(), bookID)
	case "reject":
		err = h.client.Reject(r.Context(), bookID)
	default:
		h.writeError(w, "Unknown action: "+parts[1], http.StatusBadRequest)
		return
	}

	if err != nil {
		h.writeError(w, "Request failed: "+err.Error(), http.StatusBadGateway)
		return
	}
	h.writeJSON(w, map[string]string{"status": "ok"})
}
