// Package capture produces normalized PNG images from a live camera or an
// uploaded file, and owns the camera device lifecycle.
package capture

import (
	"image"
	"sync"

	"github.com/apex/log"

	"vegan-analyze-service/codec"
)

// State is the camera session lifecycle state.
type State int

const (
	StateIdle State = iota
	StateRequesting
	StateActive
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRequesting:
		return "requesting"
	case StateActive:
		return "active"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// Constraints describe the preferred video device.
type Constraints struct {
	// DeviceID selects the video input. On multi-camera hardware the
	// rear-facing sensor usually enumerates after the front one; callers
	// preferring it pass its index here.
	DeviceID int
	// Width and Height request a capture resolution, best effort.
	Width  int
	Height int
}

// HD is the default constraint set: first device at 1280x720.
var HD = Constraints{DeviceID: 0, Width: 1280, Height: 720}

// Device abstracts a physical video input so the session logic and its
// tests do not depend on any particular camera runtime.
type Device interface {
	// Open claims the device. Failures must be classified *Error values
	// with one of the acquisition codes.
	Open(c Constraints) error
	// Grab returns the current frame at its native resolution.
	Grab() (image.Image, error)
	// Close releases the device. It must be safe to call when not open.
	Close() error
}

// Session binds one camera device to its owner. At most one device handle
// is held at a time; the handle is released on capture, cancel and
// teardown, and Close is idempotent.
type Session struct {
	mu      sync.Mutex
	dev     Device
	state   State
	lastErr *Error
}

// NewSession creates an idle session around the given device.
func NewSession(dev Device) *Session {
	return &Session{dev: dev, state: StateIdle}
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Active reports whether a device handle is currently held.
func (s *Session) Active() bool {
	return s.State() == StateActive
}

// LastError returns the most recent classified failure, or nil.
func (s *Session) LastError() *Error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Open claims the camera device. A second Open while a session is active is
// rejected so two concurrent active sessions can never exist. On failure
// the error is recorded, the device is not retained and the session returns
// to idle.
func (s *Session) Open(c Constraints) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateActive {
		return NewError(DeviceBusy, nil)
	}

	s.state = StateRequesting
	if err := s.dev.Open(c); err != nil {
		s.state = StateFailed
		cerr, ok := err.(*Error)
		if !ok {
			cerr = NewError(DeviceUnavailable, err)
		}
		s.lastErr = cerr
		log.WithField("code", string(cerr.Code)).Warnf("camera open failed: %v", err)
		// Failed is transient: report and settle back to idle.
		s.state = StateIdle
		return cerr
	}

	s.state = StateActive
	s.lastErr = nil
	return nil
}

// Capture grabs the current frame and encodes it as PNG at the frame's
// native resolution. A capture failure leaves the active session untouched.
func (s *Session) Capture() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateActive {
		return nil, NewError(CaptureFailed, nil)
	}

	frame, err := s.dev.Grab()
	if err != nil {
		log.Errorf("frame grab failed: %v", err)
		return nil, NewError(CaptureFailed, err)
	}

	data, err := codec.EncodePNG(frame)
	if err != nil {
		log.Errorf("frame encode failed: %v", err)
		return nil, NewError(ContextUnavailable, err)
	}
	return data, nil
}

// Close releases the device handle and clears any recorded error. It is
// idempotent: closing an idle session is a no-op.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateActive {
		if err := s.dev.Close(); err != nil {
			log.Warnf("camera close failed: %v", err)
		}
	}
	s.state = StateIdle
	s.lastErr = nil
}
