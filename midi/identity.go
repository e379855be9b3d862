package midi

import (
	"bytes"
	"fmt"
	"sync"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"

	"pedal-librarian/debug"
)

// Universal Device Inquiry: F0 7E 7F 06 01 F7
var identityRequest = []byte{0xF0, 0x7E, 0x7F, 0x06, 0x01, 0xF7}

// Manufacturers that are MIDI interfaces rather than instruments. When an
// inquiry broadcast gets multiple replies, these are deprioritized so the
// pedal behind the adapter wins.
var interfaceManufacturers = [][]byte{
	{0x00, 0x20, 0x63}, // Central Music Co. (CME) - WIDI Jack
}

// Identity is a parsed Identity Reply
type Identity struct {
	Manufacturer []byte // 1 byte, or 3 bytes starting with 0x00
	Family       uint16 // 14-bit, LSB first on the wire
	Model        uint16
	Version      []byte
}

// IsInterface reports whether the reply came from a known MIDI adapter
func (id *Identity) IsInterface() bool {
	for _, m := range interfaceManufacturers {
		if bytes.Equal(id.Manufacturer, m) {
			return true
		}
	}
	return false
}

// ManufacturerName resolves the manufacturer id against the MMA table
// ("" when unknown).
func (id *Identity) ManufacturerName() string {
	if len(id.Manufacturer) == 1 {
		return singleByteManufacturers[id.Manufacturer[0]]
	}
	if len(id.Manufacturer) == 3 {
		key := [3]byte{id.Manufacturer[0], id.Manufacturer[1], id.Manufacturer[2]}
		return extendedManufacturers[key]
	}
	return ""
}

func (id *Identity) String() string {
	name := id.ManufacturerName()
	if name == "" {
		name = "Unknown Manufacturer"
	}
	return fmt.Sprintf("%s (ID: % 02X, Family: %#04x, Model: %#04x)",
		name, id.Manufacturer, id.Family, id.Model)
}

var singleByteManufacturers = map[byte]string{
	0x01: "Sequential Circuits",
	0x04: "Moog",
	0x06: "Lexicon",
	0x07: "Kurzweil",
	0x08: "Fender",
	0x0F: "Ensoniq",
	0x10: "Oberheim",
	0x13: "Digidesign",
	0x18: "Emu",
	0x1B: "Korg",
	0x20: "Kawai",
	0x21: "Roland",
	0x23: "Yamaha",
	0x24: "Casio",
	0x27: "Akai",
	0x36: "Zoom",
	0x40: "Kawai",
	0x41: "Roland",
	0x42: "Korg",
	0x43: "Yamaha",
	0x44: "Casio",
	0x47: "Akai",
}

var extendedManufacturers = map[[3]byte]string{
	{0x00, 0x02, 0x4D}: "Hologram Electronics",
	{0x00, 0x20, 0x63}: "Central Music Co. (CME)",
}

// isIdentityReply checks the fixed header F0 7E <dev> 06 02
func isIdentityReply(msg []byte) bool {
	return len(msg) >= 5 && msg[0] == 0xF0 && msg[1] == 0x7E && msg[3] == 0x06 && msg[4] == 0x02
}

// parseIdentityReply decodes F0 7E <dev> 06 02 <mfg> <family lsb> <family
// msb> <model lsb> <model msb> <version...> F7. The manufacturer id is one
// byte, or three when the first byte is 0x00.
func parseIdentityReply(msg []byte) (*Identity, error) {
	if len(msg) < 11 {
		return nil, fmt.Errorf("midi: identity reply too short: %d bytes", len(msg))
	}
	if !isIdentityReply(msg) {
		return nil, fmt.Errorf("midi: not an identity reply")
	}

	pos := 5
	var manufacturer []byte
	if msg[pos] == 0x00 {
		if len(msg) < pos+3 {
			return nil, fmt.Errorf("midi: truncated extended manufacturer id")
		}
		manufacturer = []byte{msg[pos], msg[pos+1], msg[pos+2]}
		pos += 3
	} else {
		manufacturer = []byte{msg[pos]}
		pos++
	}

	if len(msg) < pos+4 {
		return nil, fmt.Errorf("midi: truncated family/model")
	}
	family := uint16(msg[pos+1])<<7 | uint16(msg[pos])
	model := uint16(msg[pos+3])<<7 | uint16(msg[pos+2])
	pos += 4

	var version []byte
	for pos < len(msg) && msg[pos] != 0xF7 {
		version = append(version, msg[pos])
		pos++
	}

	return &Identity{
		Manufacturer: manufacturer,
		Family:       family,
		Model:        model,
		Version:      version,
	}, nil
}

// RequestIdentity broadcasts a Universal Device Inquiry on the named port
// and collects replies until the timeout. Several devices may answer (the
// adapter and the pedal behind it); the first non-interface reply wins.
// Returns (nil, nil) when nothing answered.
func (t *Transport) RequestIdentity(deviceName string, timeout time.Duration) (*Identity, error) {
	outPort, err := findOutPort(deviceName)
	if err != nil {
		return nil, fmt.Errorf("midi: identity request %s: %w", deviceName, err)
	}
	inPort, err := findInPort(deviceName)
	if err != nil {
		return nil, fmt.Errorf("midi: identity request %s: %w", deviceName, err)
	}

	send, err := gomidi.SendTo(outPort)
	if err != nil {
		return nil, fmt.Errorf("midi: open output %s: %w", deviceName, err)
	}

	var mu sync.Mutex
	var replies []*Identity

	stop, err := gomidi.ListenTo(inPort, func(msg gomidi.Message, _ int32) {
		raw := []byte(msg)
		if !isIdentityReply(raw) {
			return
		}
		identity, err := parseIdentityReply(raw)
		if err != nil {
			debug.Log("midi", "bad identity reply from %s: %v", deviceName, err)
			return
		}
		debug.Log("midi", "identity reply from %s: %s", deviceName, identity)
		mu.Lock()
		replies = append(replies, identity)
		mu.Unlock()
	}, gomidi.UseSysEx())
	if err != nil {
		return nil, fmt.Errorf("midi: open input %s: %w", deviceName, err)
	}
	defer stop()

	if err := send(gomidi.Message(identityRequest)); err != nil {
		return nil, &SendError{Device: deviceName, Err: err}
	}

	// Poll until the first reply, then linger briefly so slower devices on
	// the same port get counted too.
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		mu.Lock()
		n := len(replies)
		mu.Unlock()
		if n > 0 {
			time.Sleep(100 * time.Millisecond)
			break
		}
		time.Sleep(50 * time.Millisecond)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(replies) == 0 {
		return nil, nil
	}
	for _, id := range replies {
		if !id.IsInterface() {
			return id, nil
		}
	}
	return replies[0], nil
}
