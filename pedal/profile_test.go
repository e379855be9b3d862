package pedal

import (
	"slices"
	"testing"
)

func TestContinuousCodec(t *testing.T) {
	p := Microcosm()
	f, ok := p.Field("mix")
	if !ok {
		t.Fatal("no mix field")
	}
	if !ok || f.Immediate() {
		t.Error("continuous field marked immediate")
	}

	for _, v := range []int{0, 64, 127} {
		wire, err := f.Encode(v)
		if err != nil {
			t.Fatal(err)
		}
		if int(wire) != v {
			t.Errorf("Encode(%d) = %d", v, wire)
		}
	}
	for _, v := range []int{-1, 128, 500} {
		if _, err := f.Encode(v); err == nil {
			t.Errorf("Encode(%d) accepted", v)
		}
	}
}

func TestBooleanCodec(t *testing.T) {
	p := Microcosm()
	f, _ := p.Field("bypass")
	if !f.Immediate() {
		t.Error("switch field not immediate")
	}

	if wire, _ := f.Encode(0); wire != 0 {
		t.Errorf("Encode(0) = %d", wire)
	}
	if wire, _ := f.Encode(1); wire != 127 {
		t.Errorf("Encode(1) = %d", wire)
	}
	if _, err := f.Encode(2); err == nil {
		t.Error("Encode(2) accepted for a switch")
	}

	// anything 64 and over reads as on
	for wire, want := range map[uint8]int{0: 0, 63: 0, 64: 1, 127: 1} {
		if v, ok := f.Decode(wire); !ok || v != want {
			t.Errorf("Decode(%d) = %d, want %d", wire, v, want)
		}
	}
}

func TestInvertedBooleanCodec(t *testing.T) {
	p := ChromaConsole()
	f, ok := p.Field("characterBypass")
	if !ok {
		t.Fatal("no characterBypass field")
	}
	if !f.Inverted {
		t.Fatal("module bypass switch not inverted")
	}

	// bypassed sends 0 on the wire, active sends 127
	if wire, _ := f.Encode(1); wire != 0 {
		t.Errorf("Encode(1) = %d, want 0", wire)
	}
	if wire, _ := f.Encode(0); wire != 127 {
		t.Errorf("Encode(0) = %d, want 127", wire)
	}
	if v, _ := f.Decode(0); v != 1 {
		t.Errorf("Decode(0) = %d, want 1", v)
	}
	if v, _ := f.Decode(127); v != 0 {
		t.Errorf("Decode(127) = %d, want 0", v)
	}
}

func TestIndexEnumCodec(t *testing.T) {
	p := Microcosm()
	f, _ := p.Field("subdivision")
	if !f.Immediate() {
		t.Error("enum field not immediate")
	}

	for i, name := range f.Options {
		wire, err := f.Encode(i)
		if err != nil {
			t.Fatal(err)
		}
		if int(wire) != i {
			t.Errorf("Encode(%s) = %d, want %d", name, wire, i)
		}
		if v, ok := f.Decode(wire); !ok || v != i {
			t.Errorf("Decode(%d) = %d, want %d", wire, v, i)
		}
	}
	if _, err := f.Encode(len(f.Options)); err == nil {
		t.Error("out-of-range option accepted")
	}
	// wire values past the option count do not decode
	if _, ok := f.Decode(100); ok {
		t.Error("Decode(100) resolved for a 6-option enum")
	}
}

func TestBucketEnumCodec(t *testing.T) {
	p := Microcosm()
	f, _ := p.Field("shape")

	// encoding uses the canonical send value for each option
	for i, want := range []uint8{16, 48, 80, 112} {
		wire, err := f.Encode(i)
		if err != nil {
			t.Fatal(err)
		}
		if wire != want {
			t.Errorf("Encode(%d) = %d, want %d", i, wire, want)
		}
	}

	// decoding buckets any wire value, bucket edges included
	cases := map[uint8]int{0: 0, 31: 0, 32: 1, 63: 1, 64: 2, 95: 2, 96: 3, 127: 3}
	for wire, want := range cases {
		if v, ok := f.Decode(wire); !ok || v != want {
			t.Errorf("Decode(%d) = %d, want %d", wire, v, want)
		}
	}
}

func TestDecodeControl(t *testing.T) {
	p := Microcosm()

	name, v, ok := p.DecodeControl(9, 42)
	if !ok || name != "mix" || v != 42 {
		t.Errorf("DecodeControl(9, 42) = %q, %d, %v", name, v, ok)
	}
	if _, _, ok := p.DecodeControl(120, 1); ok {
		t.Error("unknown control decoded")
	}
	// trigger controls are not fields and do not decode
	if _, _, ok := p.DecodeControl(93, 127); ok {
		t.Error("trigger control decoded as a field")
	}
}

func TestEncodeField(t *testing.T) {
	p := Microcosm()

	control, wire, err := p.EncodeField("cutoff", 100)
	if err != nil {
		t.Fatal(err)
	}
	if control != 8 || wire != 100 {
		t.Errorf("EncodeField(cutoff, 100) = %d, %d", control, wire)
	}
	if _, _, err := p.EncodeField("nope", 0); err == nil {
		t.Error("unknown field encoded")
	}
}

func TestDefaultStateValidates(t *testing.T) {
	for _, p := range []*Profile{Microcosm(), ChromaConsole()} {
		def := p.DefaultState()
		if want, got := len(p.Fields), len(def); want != got {
			t.Errorf("%s default state has %d fields, want %d", p.Type, got, want)
		}
		if err := p.Validate(def); err != nil {
			t.Errorf("%s default state invalid: %v", p.Type, err)
		}
	}
}

func TestValidateRejects(t *testing.T) {
	p := Microcosm()

	bad := p.DefaultState()
	bad["mix"] = 400
	if err := p.Validate(bad); err == nil {
		t.Error("out-of-range value validated")
	}

	unknown := p.DefaultState()
	unknown["nope"] = 1
	if err := p.Validate(unknown); err == nil {
		t.Error("unknown field validated")
	}

	missing := p.DefaultState()
	delete(missing, "mix")
	if err := p.Validate(missing); err == nil {
		t.Error("incomplete state validated")
	}
}

func TestRegistry(t *testing.T) {
	reg := Builtin()

	want := []string{"Microcosm", "ChromaConsole", "GenLossMkii"}
	if got := reg.Types(); !slices.Equal(got, want) {
		t.Errorf("Types = %v, want %v", got, want)
	}
	if _, ok := reg.Lookup("Microcosm"); !ok {
		t.Error("Microcosm missing from registry")
	}
	if _, ok := reg.Lookup("nope"); ok {
		t.Error("unknown type resolved")
	}
}

func TestTriggerLookup(t *testing.T) {
	p := Microcosm()
	tr, ok := p.TriggerByName("tapTempo")
	if !ok || tr.Control != 93 {
		t.Errorf("tapTempo = %+v, %v", tr, ok)
	}
	if _, ok := p.TriggerByName("mix"); ok {
		t.Error("field name resolved as a trigger")
	}
}
