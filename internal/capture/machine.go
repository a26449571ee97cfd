package capture

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/jpeg"
	"log/slog"
	"sync"

	"github.com/gabriel-vasile/mimetype"
)

// Phase is the capture machine's lifecycle position.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseStreaming
	PhaseCaptured
	PhaseConfirmed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseStreaming:
		return "streaming"
	case PhaseCaptured:
		return "captured"
	case PhaseConfirmed:
		return "confirmed"
	default:
		return "unknown"
	}
}

// Transition errors.
var (
	ErrAlreadyStreaming = errors.New("a capture stream is already held")
	ErrNotStreaming     = errors.New("no capture stream is held")
	ErrNoStill          = errors.New("no captured image to confirm")
	ErrConfirmed        = errors.New("capture already confirmed")
)

// jpegQuality matches the quality the photo flow has always used.
const jpegQuality = 80

// Machine drives one camera-capture modal instance: acquire a stream, snapshot
// a frame, let the user retake or confirm, and release the stream on every
// exit path. At most one stream is held at any time; every transition into
// streaming pairs with exactly one release, either by capturing a frame or by
// closing.
type Machine struct {
	device    Device
	onConfirm func(payload []byte)

	mu     sync.Mutex
	phase  Phase
	stream Stream
	still  []byte
}

// NewMachine returns an idle machine. onConfirm receives the JPEG payload when
// the user confirms a captured photo; it may be nil.
func NewMachine(device Device, onConfirm func(payload []byte)) *Machine {
	return &Machine{device: device, onConfirm: onConfirm, phase: PhaseIdle}
}

// Phase returns the current lifecycle position.
func (m *Machine) Phase() Phase {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.phase
}

// Still returns the captured JPEG, or nil when no frame is held.
func (m *Machine) Still() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.still
}

// Start acquires the camera stream and enters the streaming phase. A second
// Start while a stream is held is rejected rather than racing on the device.
// On failure the machine stays idle and the error carries its classification.
func (m *Machine) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.phase == PhaseStreaming {
		return ErrAlreadyStreaming
	}
	if m.phase == PhaseConfirmed {
		return ErrConfirmed
	}

	stream, err := m.device.Open(ctx, DefaultConstraints())
	if err != nil {
		slog.Error("Failed to acquire capture stream", "err", err)
		return err
	}

	m.stream = stream
	m.phase = PhaseStreaming
	slog.Debug("Capture stream acquired")
	return nil
}

// Capture snapshots the current frame into a JPEG still and immediately
// releases the stream.
func (m *Machine) Capture() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.phase != PhaseStreaming || m.stream == nil {
		return ErrNotStreaming
	}

	frame, err := m.stream.Frame()
	if err != nil {
		return fmt.Errorf("failed to read frame: %w", err)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, frame, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return fmt.Errorf("failed to encode frame: %w", err)
	}

	m.releaseLocked()
	m.still = buf.Bytes()
	m.phase = PhaseCaptured
	slog.Debug("Frame captured", "bytes", buf.Len())
	return nil
}

// Retake discards the still and re-acquires the stream.
func (m *Machine) Retake(ctx context.Context) error {
	m.mu.Lock()

	if m.phase != PhaseCaptured {
		m.mu.Unlock()
		return ErrNoStill
	}
	m.still = nil
	m.phase = PhaseIdle
	m.mu.Unlock()

	return m.Start(ctx)
}

// Confirm hands the captured JPEG to the confirm callback and ends this modal
// instance. The payload is sniffed before hand-off so a corrupt encode never
// reaches the caller.
func (m *Machine) Confirm() ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.phase != PhaseCaptured || m.still == nil {
		return nil, ErrNoStill
	}

	mtype := mimetype.Detect(m.still)
	if !mtype.Is("image/jpeg") {
		return nil, fmt.Errorf("captured payload is %s, not image/jpeg", mtype)
	}

	payload := m.still
	m.still = nil
	m.phase = PhaseConfirmed

	if m.onConfirm != nil {
		m.onConfirm(payload)
	}
	slog.Debug("Capture confirmed", "bytes", len(payload))
	return payload, nil
}

// Close releases any held stream and resets the machine to idle. It is safe to
// call from any phase and any number of times.
func (m *Machine) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.releaseLocked()
	m.still = nil
	m.phase = PhaseIdle
}

// releaseLocked stops every track of the held stream. Callers hold m.mu.
func (m *Machine) releaseLocked() {
	if m.stream == nil {
		return
	}
	for _, track := range m.stream.Tracks() {
		track.Stop()
	}
	m.stream = nil
	slog.Debug("Capture stream released")
}
