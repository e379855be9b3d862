package midi

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrNotConnected     = errors.New("midi: device not connected")
	ErrAlreadyConnected = errors.New("midi: device already connected")
	ErrPortNotFound     = errors.New("midi: no matching port")
	ErrInvalidChannel   = errors.New("midi: channel must be 1-16")
)

// SendError wraps a wire-level send failure. Non-fatal: the caller keeps
// its optimistic local state and surfaces the error to the user.
type SendError struct {
	Device string
	Err    error
}

func (e *SendError) Error() string {
	return fmt.Sprintf("midi: send to %s failed: %v", e.Device, e.Err)
}

func (e *SendError) Unwrap() error { return e.Err }

// InboundFunc receives hardware-originated control changes. Called from the
// driver's listener goroutine; keep it cheap.
type InboundFunc func(deviceName string, control, value uint8)

// Commander is the narrow wire contract the editing core consumes. The
// production implementation is Transport; tests substitute fakes.
type Commander interface {
	Connect(deviceName string, channel uint8, profileType string) error
	Disconnect(deviceName string) error

	// SendControl emits a control change on the device's channel
	SendControl(deviceName string, control, value uint8) error
	// SendProgram emits a program change, the slot-addressing message
	SendProgram(deviceName string, program uint8) error

	// RequestIdentity runs a Universal Device Inquiry. A nil Identity with
	// a nil error means the device did not answer within the timeout.
	RequestIdentity(deviceName string, timeout time.Duration) (*Identity, error)

	// SetInbound registers the handler for hardware-originated control
	// changes from any connected device.
	SetInbound(fn InboundFunc)
}
