package capture

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"testing"
)

// fakeDevice hands out fake streams and records every acquisition so tests can
// assert on release discipline.
type fakeDevice struct {
	openErr error
	streams []*fakeStream
}

func (d *fakeDevice) Open(ctx context.Context, c Constraints) (Stream, error) {
	if d.openErr != nil {
		return nil, d.openErr
	}
	s := &fakeStream{frame: testFrame(), track: &stillTrack{}}
	d.streams = append(d.streams, s)
	return s, nil
}

func (d *fakeDevice) allTracksStopped() bool {
	for _, s := range d.streams {
		for _, track := range s.Tracks() {
			if !track.Stopped() {
				return false
			}
		}
	}
	return true
}

type fakeStream struct {
	frame image.Image
	track *stillTrack
}

func (s *fakeStream) Frame() (image.Image, error) {
	if s.track.Stopped() {
		return nil, errors.New("stream is stopped")
	}
	return s.frame, nil
}

func (s *fakeStream) Tracks() []Track { return []Track{s.track} }

func testFrame() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 30), G: uint8(y * 30), B: 128, A: 255})
		}
	}
	return img
}

func TestStartCaptureConfirm(t *testing.T) {
	device := &fakeDevice{}
	var delivered []byte
	m := NewMachine(device, func(payload []byte) { delivered = payload })

	if err := m.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if m.Phase() != PhaseStreaming {
		t.Fatalf("Expected streaming phase, got %v", m.Phase())
	}

	if err := m.Capture(); err != nil {
		t.Fatalf("Capture failed: %v", err)
	}
	if m.Phase() != PhaseCaptured {
		t.Fatalf("Expected captured phase, got %v", m.Phase())
	}
	if !device.allTracksStopped() {
		t.Error("Capture must release the stream immediately")
	}
	if m.Still() == nil {
		t.Fatal("Expected a captured still")
	}

	payload, err := m.Confirm()
	if err != nil {
		t.Fatalf("Confirm failed: %v", err)
	}
	if m.Phase() != PhaseConfirmed {
		t.Errorf("Expected confirmed phase, got %v", m.Phase())
	}
	if !bytes.Equal(payload, delivered) {
		t.Error("Confirm callback received a different payload")
	}

	// The binary payload must decode as a valid JPEG.
	if _, err := jpeg.Decode(bytes.NewReader(payload)); err != nil {
		t.Errorf("Confirmed payload does not decode as JPEG: %v", err)
	}
}

func TestCloseImmediatelyAfterStartReleasesStream(t *testing.T) {
	device := &fakeDevice{}
	m := NewMachine(device, nil)

	if err := m.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	m.Close()

	if !device.allTracksStopped() {
		t.Error("Close must stop every track of the held stream")
	}
	if m.Phase() != PhaseIdle {
		t.Errorf("Expected idle phase after close, got %v", m.Phase())
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	device := &fakeDevice{}
	m := NewMachine(device, nil)

	// Closing with nothing held must not fail.
	m.Close()

	if err := m.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	m.Close()
	m.Close()

	if m.Phase() != PhaseIdle {
		t.Errorf("Expected idle phase, got %v", m.Phase())
	}
}

func TestSecondStartIsRejected(t *testing.T) {
	device := &fakeDevice{}
	m := NewMachine(device, nil)

	if err := m.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if err := m.Start(context.Background()); !errors.Is(err, ErrAlreadyStreaming) {
		t.Errorf("Expected ErrAlreadyStreaming, got %v", err)
	}
	if len(device.streams) != 1 {
		t.Errorf("Expected a single acquisition, got %d", len(device.streams))
	}
}

func TestRetakeReacquiresStream(t *testing.T) {
	device := &fakeDevice{}
	m := NewMachine(device, nil)

	if err := m.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if err := m.Capture(); err != nil {
		t.Fatalf("Capture failed: %v", err)
	}
	if err := m.Retake(context.Background()); err != nil {
		t.Fatalf("Retake failed: %v", err)
	}

	if m.Phase() != PhaseStreaming {
		t.Errorf("Expected streaming phase after retake, got %v", m.Phase())
	}
	if m.Still() != nil {
		t.Error("Retake must discard the captured still")
	}
	if len(device.streams) != 2 {
		t.Errorf("Expected two acquisitions, got %d", len(device.streams))
	}

	m.Close()
	if !device.allTracksStopped() {
		t.Error("Close after retake must release the second stream")
	}
}

func TestStartFailureStaysIdle(t *testing.T) {
	device := &fakeDevice{openErr: ErrPermissionDenied}
	m := NewMachine(device, nil)

	err := m.Start(context.Background())
	if !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("Expected ErrPermissionDenied, got %v", err)
	}
	if m.Phase() != PhaseIdle {
		t.Errorf("Expected idle phase after failed start, got %v", m.Phase())
	}

	// Retry affordance: a later Start must work once the device recovers.
	device.openErr = nil
	if err := m.Start(context.Background()); err != nil {
		t.Fatalf("Retry failed: %v", err)
	}
	m.Close()
}

func TestCaptureWithoutStream(t *testing.T) {
	m := NewMachine(&fakeDevice{}, nil)
	if err := m.Capture(); !errors.Is(err, ErrNotStreaming) {
		t.Errorf("Expected ErrNotStreaming, got %v", err)
	}
}

func TestConfirmWithoutStill(t *testing.T) {
	m := NewMachine(&fakeDevice{}, nil)
	if _, err := m.Confirm(); !errors.Is(err, ErrNoStill) {
		t.Errorf("Expected ErrNoStill, got %v", err)
	}
}

func TestMessageClassification(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "permission", err: ErrPermissionDenied, want: "Could not access camera. Please allow camera permissions and try again."},
		{name: "no device", err: ErrNoDevice, want: "Could not access camera. No camera found on this device."},
		{name: "unsupported", err: ErrUnsupported, want: "Could not access camera. Camera capture is not supported here."},
		{name: "generic", err: errors.New("boom"), want: "Could not access camera. boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Message(tt.err); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}
