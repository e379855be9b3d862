package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"pedal-librarian/debug"
	"pedal-librarian/pedal"
)

var (
	ErrClosed          = errors.New("session: closed")
	ErrNoBinding       = errors.New("session: no active preset binding")
	ErrUnsupportedSave = errors.New("session: pedal has no wire-based save")
)

const (
	defaultDebounce = 30 * time.Millisecond
	defaultSendPace = 20 * time.Millisecond
)

// Wire is the outbound half of a MIDI connection, as much of it as a
// session needs. *midi.Transport satisfies it.
type Wire interface {
	SendControl(deviceName string, control, value uint8) error
	SendProgram(deviceName string, program uint8) error
}

// Session is the live editing state for one connected pedal. Edits land in
// the local state immediately and reach the wire debounced; inbound control
// changes from the hardware update the local state without echoing back out.
type Session struct {
	mu      sync.Mutex
	wire    Wire
	profile *pedal.Profile
	device  string

	state   pedal.ParamState
	tracker Tracker

	throttle *throttler
	sendPace time.Duration
	closed   bool

	onSendError func(field string, err error)
}

type Option func(*Session)

// WithDebounce overrides the window continuous edits are coalesced over.
func WithDebounce(d time.Duration) Option {
	return func(s *Session) { s.throttle.window = d }
}

// WithSendPace overrides the delay between fields during a full-state push.
func WithSendPace(d time.Duration) Option {
	return func(s *Session) { s.sendPace = d }
}

// WithSendErrorFunc installs a callback for sends that fail after the edit
// was already accepted, debounced sends included.
func WithSendErrorFunc(fn func(field string, err error)) Option {
	return func(s *Session) { s.onSendError = fn }
}

func New(wire Wire, profile *pedal.Profile, deviceName string, opts ...Option) *Session {
	s := &Session{
		wire:     wire,
		profile:  profile,
		device:   deviceName,
		state:    profile.DefaultState(),
		sendPace: defaultSendPace,
	}
	s.throttle = newThrottler(defaultDebounce, s.sendField)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) ProfileType() string { return s.profile.Type }
func (s *Session) DeviceName() string  { return s.device }
func (s *Session) Profile() *pedal.Profile {
	return s.profile
}

// SetField records an edit locally and schedules the send. Continuous
// fields go through the debounce window; switches and enums go out
// immediately. The value is validated before anything changes.
func (s *Session) SetField(name string, value int) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	f, ok := s.profile.Field(name)
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("session: profile %s has no field %q", s.profile.Type, name)
	}
	if _, err := f.Encode(value); err != nil {
		s.mu.Unlock()
		return err
	}
	s.state[name] = value
	immediate := f.Immediate()
	s.mu.Unlock()

	if immediate {
		s.sendField(name, value)
		return nil
	}
	s.throttle.put(name, value)
	return nil
}

// SetToggle flips a switch field and sends the new position immediately.
func (s *Session) SetToggle(name string) error {
	s.mu.Lock()
	f, ok := s.profile.Field(name)
	if !ok || f.Kind != pedal.Boolean {
		s.mu.Unlock()
		return fmt.Errorf("session: profile %s has no switch %q", s.profile.Type, name)
	}
	current := s.state[name]
	s.mu.Unlock()

	return s.SetField(name, 1-current)
}

// Trigger fires a momentary action on the pedal. Triggers have no state
// and never debounce.
func (s *Session) Trigger(name string) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	t, ok := s.profile.TriggerByName(name)
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("session: profile %s has no trigger %q", s.profile.Type, name)
	}
	s.mu.Unlock()

	if err := s.wire.SendControl(s.device, t.Control, 127); err != nil {
		return fmt.Errorf("trigger %s: %w", name, err)
	}
	return nil
}

// Apply dispatches a command to SetField or Trigger.
func (s *Session) Apply(cmd pedal.Command) error {
	switch cmd.Kind {
	case pedal.CommandField:
		return s.SetField(cmd.Name, cmd.Value)
	case pedal.CommandTrigger:
		return s.Trigger(cmd.Name)
	default:
		return fmt.Errorf("session: unknown command kind %d", cmd.Kind)
	}
}

// HandleControlChange applies an inbound control change from the hardware.
// Unknown controls and undecodable values are dropped. The update is local
// only; hardware-originated changes never re-enter the outbound path.
func (s *Session) HandleControlChange(control, value uint8) {
	name, v, ok := s.profile.DecodeControl(control, value)
	if !ok {
		debug.Log("session", "%s: dropped cc %d value %d", s.device, control, value)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.state[name] = v
}

// State returns a copy of the live parameter state.
func (s *Session) State() pedal.ParamState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// IsDirty reports whether the live state has drifted from the snapshot of
// the active preset. Always false with no preset bound.
func (s *Session) IsDirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tracker.IsDirty(s.state)
}

// ActivePreset returns the bound preset, if any.
func (s *Session) ActivePreset() (id, name string, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tracker.PresetID(), s.tracker.PresetName(), s.tracker.Active()
}

// LoadPreset replaces the live state with a preset's parameters and binds
// the dirty tracker to it. With push set, every field is also sent to the
// pedal, paced so slower hardware keeps up. Field-level send failures do
// not stop the remaining fields; they are reported joined.
func (s *Session) LoadPreset(state pedal.ParamState, id, name string, push bool) error {
	if err := s.profile.Validate(state); err != nil {
		return err
	}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	s.state = state.Clone()
	s.tracker.Track(s.state, id, name)
	s.mu.Unlock()
	s.throttle.cancelAll()

	if !push {
		return nil
	}
	return s.pushAll(state)
}

// ResetToSnapshot discards local edits and restores the active preset's
// load-time snapshot, on the pedal too.
func (s *Session) ResetToSnapshot() error {
	s.mu.Lock()
	snap := s.tracker.Snapshot()
	id, name := s.tracker.PresetID(), s.tracker.PresetName()
	s.mu.Unlock()
	if snap == nil {
		return ErrNoBinding
	}
	return s.LoadPreset(snap, id, name, true)
}

// ResetToDefault restores every field to the profile default and clears
// the preset binding.
func (s *Session) ResetToDefault() error {
	def := s.profile.DefaultState()
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	s.state = def.Clone()
	s.tracker.Clear()
	s.mu.Unlock()
	s.throttle.cancelAll()

	return s.pushAll(def)
}

// ClearBinding detaches the dirty tracker without touching state.
func (s *Session) ClearBinding() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tracker.Clear()
}

// SelectSlot sends a program change addressing one memory slot.
func (s *Session) SelectSlot(slot uint8) error {
	bank := s.profile.Bank
	if bank == nil || !bank.Contains(slot) {
		return fmt.Errorf("session: profile %s has no slot %d", s.profile.Type, slot)
	}
	return s.wire.SendProgram(s.device, slot)
}

// SaveTrigger fires the pedal's wire-based save, for profiles that have one.
func (s *Session) SaveTrigger() error {
	bank := s.profile.Bank
	if bank == nil || bank.Save != pedal.SaveSupported {
		return ErrUnsupportedSave
	}
	return s.wire.SendControl(s.device, bank.SaveCC, 127)
}

// Close cancels every pending debounced send. Nothing reaches the wire
// after Close returns.
func (s *Session) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.throttle.close()
}

// sendField encodes and sends one field. Called without the session mutex
// held, from the debounce timer goroutine or an immediate edit.
func (s *Session) sendField(name string, value int) {
	control, wire, err := s.profile.EncodeField(name, value)
	if err == nil {
		err = s.wire.SendControl(s.device, control, wire)
	}
	if err != nil {
		debug.Log("session", "%s: send %s failed: %v", s.device, name, err)
		if s.onSendError != nil {
			s.onSendError(name, err)
		}
	}
}

// pushAll sends every field of a full state in profile declaration order.
func (s *Session) pushAll(state pedal.ParamState) error {
	var errs []error
	for i := range s.profile.Fields {
		f := &s.profile.Fields[i]
		v, ok := state.Get(f.Name)
		if !ok {
			continue
		}
		control, wire, err := s.profile.EncodeField(f.Name, v)
		if err == nil {
			err = s.wire.SendControl(s.device, control, wire)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", f.Name, err))
			if s.onSendError != nil {
				s.onSendError(f.Name, err)
			}
		}
		if s.sendPace > 0 && i < len(s.profile.Fields)-1 {
			time.Sleep(s.sendPace)
		}
	}
	return errors.Join(errs...)
}
