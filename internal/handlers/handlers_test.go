package handlers

import (
	"bytes"
	"encoding/json"
	"image"
	"image/jpeg"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bookerang/bookerang/internal/api"
	"github.com/bookerang/bookerang/internal/books"
	"github.com/bookerang/bookerang/internal/session"
)

func newTestHandler(t *testing.T, upstream http.Handler) *Handler {
	t.Helper()
	srv := httptest.NewServer(upstream)
	t.Cleanup(srv.Close)
	sess := session.New(filepath.Join(t.TempDir(), "session.yaml"))
	return New(api.NewClient(srv.URL, sess, time.Minute))
}

func TestHandleBooksAppliesLocalFilter(t *testing.T) {
	h := newTestHandler(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"id":1,"title":"Dune","isAvailable":true},
			{"id":2,"title":"Children of Dune","isAvailable":false},
			{"id":3,"title":"Neuromancer","isAvailable":true}
		]`))
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/books?radius=3000&query=dune&available=true", nil)
	rec := httptest.NewRecorder()
	h.HandleBooks(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var got []books.Book
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(got) != 1 || got[0].ID != 1 {
		t.Errorf("Expected only book 1, got %+v", got)
	}
}

func TestHandleBooksUpstreamFailureDegradesToEmpty(t *testing.T) {
	h := newTestHandler(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/books", nil)
	rec := httptest.NewRecorder()
	h.HandleBooks(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Errorf("Expected empty list, got %s", got)
	}
}

func TestHandleAddBookValidation(t *testing.T) {
	h := newTestHandler(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("Validation failures must not reach the server")
	}))

	form := "author=Someone"
	req := httptest.NewRequest(http.MethodPost, "/api/books/add", strings.NewReader(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.HandleAddBook(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", rec.Code)
	}
}

func TestHandleAddBookRejectsNonImagePhoto(t *testing.T) {
	h := newTestHandler(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("A rejected photo must not reach the server")
	}))

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	form.WriteField("title", "Dune")
	form.WriteField("author", "Frank Herbert")
	part, _ := form.CreateFormFile("newBook", "notes.txt")
	part.Write([]byte("definitely not an image"))
	form.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/books/add", &buf)
	req.Header.Set("Content-Type", form.FormDataContentType())
	rec := httptest.NewRecorder()
	h.HandleAddBook(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", rec.Code)
	}
}

func TestCaptureSessionFlow(t *testing.T) {
	h := newTestHandler(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	t.Chdir(t.TempDir())

	// Open a session with a PNG frame standing in for the camera feed.
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	part, _ := form.CreateFormFile("frame", "frame.png")
	if err := png.Encode(part, image.NewRGBA(image.Rect(0, 0, 4, 4))); err != nil {
		t.Fatalf("Failed to encode frame: %v", err)
	}
	form.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/capture", &buf)
	req.Header.Set("Content-Type", form.FormDataContentType())
	rec := httptest.NewRecorder()
	h.HandleCaptureSessions(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200 creating session, got %d: %s", rec.Code, rec.Body.String())
	}

	var state captureState
	if err := json.Unmarshal(rec.Body.Bytes(), &state); err != nil {
		t.Fatalf("Failed to decode state: %v", err)
	}
	if state.Phase != "idle" {
		t.Errorf("Expected idle phase, got %s", state.Phase)
	}

	act := func(action string) *httptest.ResponseRecorder {
		body := strings.NewReader(`{"action":"` + action + `"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/capture/"+state.ID, body)
		rec := httptest.NewRecorder()
		h.HandleCaptureDetail(rec, req)
		return rec
	}

	if rec := act("start"); rec.Code != http.StatusOK {
		t.Fatalf("start failed: %d %s", rec.Code, rec.Body.String())
	}
	if rec := act("capture"); rec.Code != http.StatusOK {
		t.Fatalf("capture failed: %d %s", rec.Code, rec.Body.String())
	}

	confirm := act("confirm")
	if confirm.Code != http.StatusOK {
		t.Fatalf("confirm failed: %d %s", confirm.Code, confirm.Body.String())
	}
	if got := confirm.Header().Get("Content-Type"); got != "image/jpeg" {
		t.Errorf("Expected image/jpeg response, got %q", got)
	}
	if _, err := jpeg.Decode(bytes.NewReader(confirm.Body.Bytes())); err != nil {
		t.Errorf("Confirmed payload does not decode as JPEG: %v", err)
	}

	// The session is gone once confirmed.
	req = httptest.NewRequest(http.MethodGet, "/api/capture/"+state.ID, nil)
	rec = httptest.NewRecorder()
	h.HandleCaptureDetail(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404 after confirm, got %d", rec.Code)
	}
}
