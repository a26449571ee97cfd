package capture

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"sync"
)

// Classified acquisition failures. Each maps to a distinct user-facing message;
// anything else surfaces as a generic failure.
var (
	ErrPermissionDenied = errors.New("camera permission denied")
	ErrNoDevice         = errors.New("no camera device found")
	ErrUnsupported      = errors.New("camera capture not supported")
)

// Constraints describe the preferred stream the device should open. They are
// preferences, not requirements; a device may serve a different resolution.
type Constraints struct {
	Width      int
	Height     int
	FacingMode string
}

// DefaultConstraints matches the book-photo flow: rear-facing camera at 720p.
func DefaultConstraints() Constraints {
	return Constraints{Width: 1280, Height: 720, FacingMode: "environment"}
}

// Track is one media track of an open stream. Stopping a stopped track is a
// no-op.
type Track interface {
	Stop()
	Stopped() bool
}

// Stream is an exclusively-held capture stream. The holder must stop every
// track exactly once per acquisition, on every exit path.
type Stream interface {
	Frame() (image.Image, error)
	Tracks() []Track
}

// Device provisions capture streams. Open failures should be one of the
// classified errors above where the cause is known.
type Device interface {
	Open(ctx context.Context, c Constraints) (Stream, error)
}

// Message translates an acquisition error into the message shown to the user.
func Message(err error) string {
	switch {
	case errors.Is(err, ErrPermissionDenied):
		return "Could not access camera. Please allow camera permissions and try again."
	case errors.Is(err, ErrNoDevice):
		return "Could not access camera. No camera found on this device."
	case errors.Is(err, ErrUnsupported):
		return "Could not access camera. Camera capture is not supported here."
	default:
		return "Could not access camera. " + err.Error()
	}
}

// FileDevice serves frames from a still image on disk. It stands in for a real
// camera in the CLI flow and maps filesystem failures onto the same error
// classes a camera would produce.
type FileDevice struct {
	Path string
}

// NewFileDevice returns a device backed by the image at path.
func NewFileDevice(path string) *FileDevice {
	return &FileDevice{Path: path}
}

func (d *FileDevice) Open(ctx context.Context, c Constraints) (Stream, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(d.Path)
	if err != nil {
		switch {
		case os.IsNotExist(err):
			return nil, fmt.Errorf("%w: %s", ErrNoDevice, d.Path)
		case os.IsPermission(err):
			return nil, fmt.Errorf("%w: %s", ErrPermissionDenied, d.Path)
		default:
			return nil, fmt.Errorf("failed to open capture source: %w", err)
		}
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupported, err)
	}

	return newStillStream(img), nil
}

// stillStream is a single-track stream over one decoded frame.
type stillStream struct {
	frame image.Image
	track *stillTrack
}

func newStillStream(frame image.Image) *stillStream {
	return &stillStream{frame: frame, track: &stillTrack{}}
}

func (s *stillStream) Frame() (image.Image, error) {
	if s.track.Stopped() {
		return nil, errors.New("stream is stopped")
	}
	return s.frame, nil
}

func (s *stillStream) Tracks() []Track {
	return []Track{s.track}
}

type stillTrack struct {
	mu      sync.Mutex
	stopped bool
}

func (t *stillTrack) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopped = true
}

func (t *stillTrack) Stopped() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stopped
}
