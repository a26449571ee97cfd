package handlers

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bookerang/bookerang/internal/capture"
)

// captureState is what the UI polls to render the capture modal.
type captureState struct {
	ID       string `json:"id"`
	Phase    string `json:"phase"`
	HasStill bool   `json:"hasStill"`
}

func stateOf(id string, m *capture.Machine) captureState {
	return captureState{ID: id, Phase: m.Phase().String(), HasStill: m.Still() != nil}
}

// HandleCaptureSessions lists open capture sessions (GET) or opens a new one
// (POST). The POST body is a multipart form with a "frame" image standing in
// for the camera feed; the machine treats it as the capture device.
func (h *Handler) HandleCaptureSessions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		states := make([]captureState, 0)
		for _, id := range h.captures.IDs() {
			if m, ok := h.captures.Get(id); ok {
				states = append(states, stateOf(id, m))
			}
		}
		h.writeJSON(w, states)
	case http.MethodPost:
		h.createCaptureSession(w, r)
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) createCaptureSession(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("frame")
	if err != nil {
		h.writeError(w, "Failed to read frame: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	frame, err := io.ReadAll(io.LimitReader(file, maxPhotoBytes))
	if err != nil {
		h.writeError(w, "Failed to read frame: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if err := h.ensureUploadsDir(); err != nil {
		h.writeError(w, "Failed to create uploads directory: "+err.Error(), http.StatusInternalServerError)
		return
	}
	sum := md5.Sum(frame)
	framePath := filepath.Join(uploadsDir, hex.EncodeToString(sum[:])+filepath.Ext(header.Filename))
	if err := os.WriteFile(framePath, frame, 0644); err != nil {
		h.writeError(w, "Failed to save frame: "+err.Error(), http.StatusInternalServerError)
		return
	}

	machine := capture.NewMachine(capture.NewFileDevice(framePath), nil)
	sessionID := fmt.Sprintf("capture_%d", time.Now().UnixNano())
	h.captures.Set(sessionID, machine)

	h.writeJSON(w, stateOf(sessionID, machine))
}

// HandleCaptureDetail drives one capture session:
//
//	GET    /api/capture/{id}          current state
//	POST   /api/capture/{id}          {"action": "start|capture|retake|confirm"}
//	DELETE /api/capture/{id}          close and discard
//
// Confirm responds with the JPEG payload itself.
func (h *Handler) HandleCaptureDetail(w http.ResponseWriter, r *http.Request) {
	sessionID := strings.TrimPrefix(r.URL.Path, "/api/capture/")
	machine, ok := h.captures.Get(sessionID)
	if !ok {
		h.writeError(w, "Capture session not found", http.StatusNotFound)
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.writeJSON(w, stateOf(sessionID, machine))
	case http.MethodPost:
		h.runCaptureAction(w, r, sessionID, machine)
	case http.MethodDelete:
		h.captures.Delete(sessionID)
		h.writeJSON(w, map[string]string{"status": "closed"})
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) runCaptureAction(w http.ResponseWriter, r *http.Request, sessionID string, machine *capture.Machine) {
	var body struct {
		Action string `json:"action"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	var err error
	switch body.Action {
	case "start":
		err = machine.Start(r.Context())
	case "capture":
		err = machine.Capture()
	case "retake":
		err = machine.Retake(r.Context())
	case "confirm":
		var payload []byte
		payload, err = machine.Confirm()
		if err == nil {
			h.captures.Delete(sessionID)
			w.Header().Set("Content-Type", "image/jpeg")
			if _, werr := w.Write(payload); werr != nil {
				h.writeError(w, "Failed to write payload: "+werr.Error(), http.StatusInternalServerError)
			}
			return
		}
	default:
		h.writeError(w, "Unknown action: "+body.Action, http.StatusBadRequest)
		return
	}

	if err != nil {
		status := http.StatusConflict
		if isAcquisitionFailure(err) {
			status = http.StatusBadGateway
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if encErr := json.NewEncoder(w).Encode(map[string]string{
			"error":   err.Error(),
			"message": capture.Message(err),
			"phase":   machine.Phase().String(),
		}); encErr != nil {
			slog.Error("Unable to encode JSON response", "err", encErr)
		}
		return
	}

	h.writeJSON(w, stateOf(sessionID, machine))
}

func isAcquisitionFailure(err error) bool {
	return errors.Is(err, capture.ErrPermissionDenied) ||
		errors.Is(err, capture.ErrNoDevice) ||
		errors.Is(err, capture.ErrUnsupported)
}
