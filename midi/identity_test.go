package midi

import (
	"bytes"
	"testing"
)

func TestParseIdentityReplySingleByteManufacturer(t *testing.T) {
	msg := []byte{
		0xF0, 0x7E, 0x00, 0x06, 0x02,
		0x41,       // Roland
		0x00, 0x01, // family LSB, MSB
		0x00, 0x02, // model LSB, MSB
		0x00, 0x00, // version
		0xF7,
	}

	id, err := parseIdentityReply(msg)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !bytes.Equal(id.Manufacturer, []byte{0x41}) {
		t.Errorf("manufacturer = % 02X", id.Manufacturer)
	}
	if want := uint16(1 << 7); id.Family != want {
		t.Errorf("family = %d, want %d", id.Family, want)
	}
	if want := uint16(2 << 7); id.Model != want {
		t.Errorf("model = %d, want %d", id.Model, want)
	}
	if want, got := "Roland", id.ManufacturerName(); want != got {
		t.Errorf("manufacturer name = %q, want %q", got, want)
	}
}

func TestParseIdentityReplyExtendedManufacturer(t *testing.T) {
	msg := []byte{
		0xF0, 0x7E, 0x00, 0x06, 0x02,
		0x00, 0x02, 0x4D, // Hologram Electronics
		0x30, 0x00,
		0x01, 0x00,
		0x01, 0x00,
		0xF7,
	}

	id, err := parseIdentityReply(msg)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !bytes.Equal(id.Manufacturer, []byte{0x00, 0x02, 0x4D}) {
		t.Errorf("manufacturer = % 02X", id.Manufacturer)
	}
	if want, got := "Hologram Electronics", id.ManufacturerName(); want != got {
		t.Errorf("manufacturer name = %q, want %q", got, want)
	}
	if id.IsInterface() {
		t.Error("pedal manufacturer flagged as interface")
	}
}

func TestParseIdentityReplyRejectsGarbage(t *testing.T) {
	cases := [][]byte{
		nil,
		{0xF0, 0x7E, 0x00, 0x06, 0x02}, // too short
		{0xF0, 0x7E, 0x00, 0x06, 0x01, 0x41, 0, 0, 0, 0, 0xF7},             // inquiry, not reply
		{0xB0, 0x10, 0x40, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}, // control change
		{0xF0, 0x7E, 0x00, 0x06, 0x02, 0x00, 0x02, 0xF7},                   // truncated extended id
	}
	for i, msg := range cases {
		if _, err := parseIdentityReply(msg); err == nil {
			t.Errorf("case %d: expected error", i)
		}
	}
}

func TestInterfaceManufacturerDetected(t *testing.T) {
	id := &Identity{Manufacturer: []byte{0x00, 0x20, 0x63}}
	if !id.IsInterface() {
		t.Error("CME WIDI adapter not flagged as interface")
	}
}

func TestIdentityRequestFormat(t *testing.T) {
	want := []byte{0xF0, 0x7E, 0x7F, 0x06, 0x01, 0xF7}
	if !bytes.Equal(identityRequest, want) {
		t.Errorf("identity request = % 02X", identityRequest)
	}
}
