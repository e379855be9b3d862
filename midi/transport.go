package midi

import (
	"fmt"
	"sync"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"

	"pedal-librarian/debug"
)

type connection struct {
	name        string
	channel     uint8 // 1-16
	profileType string
	outPort     drivers.Out
	send        func(gomidi.Message) error
	stopListen  func()
}

// Transport is the production Commander over the system MIDI driver.
// One output connection and an optional input listener per device.
type Transport struct {
	mu          sync.RWMutex
	connections map[string]*connection
	inbound     InboundFunc
}

// NewTransport creates an empty transport
func NewTransport() *Transport {
	return &Transport{connections: make(map[string]*connection)}
}

// SetInbound registers the handler for hardware-originated control changes
func (t *Transport) SetInbound(fn InboundFunc) {
	t.mu.Lock()
	t.inbound = fn
	t.mu.Unlock()
}

// Connect opens the named device's output port and, when an input port with
// the same name exists, starts listening for control changes on the given
// channel. Devices without an input port still work one-way.
func (t *Transport) Connect(deviceName string, channel uint8, profileType string) error {
	if channel < 1 || channel > 16 {
		return ErrInvalidChannel
	}

	t.mu.RLock()
	_, exists := t.connections[deviceName]
	t.mu.RUnlock()
	if exists {
		return ErrAlreadyConnected
	}

	outPort, err := findOutPort(deviceName)
	if err != nil {
		return fmt.Errorf("midi: connect %s: %w", deviceName, err)
	}
	send, err := gomidi.SendTo(outPort)
	if err != nil {
		return fmt.Errorf("midi: open output %s: %w", deviceName, err)
	}

	conn := &connection{
		name:        deviceName,
		channel:     channel,
		profileType: profileType,
		outPort:     outPort,
		send:        send,
	}

	// Input is optional: a missing input port just means no bidirectional
	// sync for this device.
	if inPort, err := findInPort(deviceName); err == nil {
		stop, err := gomidi.ListenTo(inPort, func(msg gomidi.Message, _ int32) {
			var ch, cc, val uint8
			if !msg.GetControlChange(&ch, &cc, &val) {
				return
			}
			if ch != channel-1 {
				return
			}
			t.mu.RLock()
			fn := t.inbound
			t.mu.RUnlock()
			if fn != nil {
				debug.LogEvery(32, "midi", "inbound %s cc=%d val=%d", deviceName, cc, val)
				fn(deviceName, cc, val)
			}
		})
		if err != nil {
			return fmt.Errorf("midi: open input %s: %w", deviceName, err)
		}
		conn.stopListen = stop
	} else {
		debug.Log("midi", "no input port for %s, outbound only", deviceName)
	}

	t.mu.Lock()
	t.connections[deviceName] = conn
	t.mu.Unlock()

	debug.Log("midi", "connected %s (%s) on channel %d", deviceName, profileType, channel)
	return nil
}

// Disconnect stops the device's listener and closes its ports
func (t *Transport) Disconnect(deviceName string) error {
	t.mu.Lock()
	conn, ok := t.connections[deviceName]
	if ok {
		delete(t.connections, deviceName)
	}
	t.mu.Unlock()

	if !ok {
		return ErrNotConnected
	}
	if conn.stopListen != nil {
		conn.stopListen()
	}
	conn.outPort.Close()
	debug.Log("midi", "disconnected %s", deviceName)
	return nil
}

func (t *Transport) conn(deviceName string) (*connection, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	conn, ok := t.connections[deviceName]
	if !ok {
		return nil, ErrNotConnected
	}
	return conn, nil
}

// SendControl emits a control change on the device's channel
func (t *Transport) SendControl(deviceName string, control, value uint8) error {
	conn, err := t.conn(deviceName)
	if err != nil {
		return err
	}
	if err := conn.send(gomidi.ControlChange(conn.channel-1, control, value)); err != nil {
		return &SendError{Device: deviceName, Err: err}
	}
	return nil
}

// SendProgram emits a program change, used to address a memory slot
func (t *Transport) SendProgram(deviceName string, program uint8) error {
	conn, err := t.conn(deviceName)
	if err != nil {
		return err
	}
	if err := conn.send(gomidi.ProgramChange(conn.channel-1, program)); err != nil {
		return &SendError{Device: deviceName, Err: err}
	}
	return nil
}

// Connected reports whether a device has an open connection
func (t *Transport) Connected(deviceName string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.connections[deviceName]
	return ok
}

// Close disconnects everything and releases the MIDI driver
func (t *Transport) Close() {
	t.mu.Lock()
	conns := t.connections
	t.connections = make(map[string]*connection)
	t.mu.Unlock()

	for _, conn := range conns {
		if conn.stopListen != nil {
			conn.stopListen()
		}
		conn.outPort.Close()
	}
	gomidi.CloseDriver()
}
