package handlers

import (
	"crypto/md5"
	"encoding/hex"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// maxPhotoBytes caps book photo uploads at 10MB.
const maxPhotoBytes = 10 * 1024 * 1024

// HandleAddBook creates a listing from the add-book form: title, author, and
// an optional photo (captured or picked). The photo is sniffed before it is
// forwarded to the server.
func (h *Handler) HandleAddBook(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	author := strings.TrimSpace(r.FormValue("author"))
	if title == "" || author == "" {
		h.writeError(w, "title and author are required", http.StatusBadRequest)
		return
	}

	var photo []byte
	photoName := ""
	file, header, err := r.FormFile("newBook")
	if err == nil {
		defer file.Close()

		photo, err = io.ReadAll(io.LimitReader(file, maxPhotoBytes))
		if err != nil {
			h.writeError(w, "Failed to read photo: "+err.Error(), http.StatusInternalServerError)
			return
		}
		if len(photo) >= maxPhotoBytes {
			h.writeError(w, "Photo too large (max 10MB)", http.StatusBadRequest)
			return
		}

		mtype := mimetype.Detect(photo)
		if !strings.HasPrefix(mtype.String(), "image/") {
			h.writeError(w, "Photo must be an image, got "+mtype.String(), http.StatusBadRequest)
			return
		}
		photoName = header.Filename

		// The local copy is a convenience; the listing still proceeds
		// without it.
		if err := h.savePhotoCopy(photo, header.Filename); err != nil {
			slog.Warn("Failed to keep local photo copy", "err", err)
		}
	}

	book, err := h.client.AddBook(r.Context(), title, author, photo, photoName)
	if err != nil {
		h.writeError(w, "Failed to add book: "+err.Error(), http.StatusBadGateway)
		return
	}

	h.writeJSON(w, book)
}

// savePhotoCopy keeps an md5-named copy of the uploaded photo under uploads/.
func (h *Handler) savePhotoCopy(photo []byte, filename string) error {
	if err := h.ensureUploadsDir(); err != nil {
		return err
	}
	sum := md5.Sum(photo)
	name := hex.EncodeToString(sum[:]) + filepath.Ext(filename)
	return os.WriteFile(filepath.Join(uploadsDir, name), photo, 0644)
}
