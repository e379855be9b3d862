package session

import (
	"testing"

	"pedal-librarian/midi"
	"pedal-librarian/pedal"
)

func lookupProfile(t *testing.T, typ string) *pedal.Profile {
	t.Helper()
	p, ok := pedal.Builtin().Lookup(typ)
	if !ok {
		t.Fatalf("no %s profile", typ)
	}
	return p
}

func TestSavedMappingOutranksEverything(t *testing.T) {
	reg := pedal.Builtin()
	chroma := lookupProfile(t, "ChromaConsole")

	// The port name is a generic interface and would otherwise resolve low.
	got := CheckMismatch("WIDI Jack", chroma, "Microcosm", nil, reg)
	if !got.Mismatch {
		t.Fatal("saved mapping for a different pedal did not flag a mismatch")
	}
	if want := ConfidenceHigh; got.Confidence != want {
		t.Errorf("confidence = %v, want %v", got.Confidence, want)
	}
	if want := "Microcosm"; got.Detected != want {
		t.Errorf("detected = %q, want %q", got.Detected, want)
	}

	got = CheckMismatch("WIDI Jack", chroma, "ChromaConsole", nil, reg)
	if got.Mismatch || got.Confidence != ConfidenceHigh {
		t.Errorf("matching saved mapping = %+v", got)
	}
}

func TestAmbiguousIdentityResolvesToUnknown(t *testing.T) {
	reg := pedal.Builtin()
	micro := lookupProfile(t, "Microcosm")

	// Hologram's ID is shared by several products, so the reply decides
	// nothing and the generic port name leaves the verdict low.
	id := &midi.Identity{Manufacturer: []byte{0x00, 0x02, 0x4D}}
	got := CheckMismatch("Generic USB MIDI Interface", micro, "", id, reg)
	if got.Mismatch {
		t.Error("ambiguous identity flagged a mismatch")
	}
	if got.Detected != "" {
		t.Errorf("ambiguous identity guessed %q", got.Detected)
	}
	if got.Confidence != ConfidenceLow {
		t.Errorf("confidence = %v, want %v", got.Confidence, ConfidenceLow)
	}
}

func TestGenericInterfaceNameStaysLow(t *testing.T) {
	reg := pedal.Builtin()
	micro := lookupProfile(t, "Microcosm")

	for _, name := range []string{
		"Generic USB MIDI Interface",
		"WIDI Jack",
		"UM-ONE",
		"MIDI Thru Port-0",
	} {
		got := CheckMismatch(name, micro, "", nil, reg)
		if got.Mismatch {
			t.Errorf("%q flagged a mismatch", name)
		}
		if got.Confidence != ConfidenceLow {
			t.Errorf("%q confidence = %v, want low", name, got.Confidence)
		}
	}
}

func TestProductNameOutranksInterfaceKeywords(t *testing.T) {
	reg := pedal.Builtin()
	micro := lookupProfile(t, "Microcosm")
	chroma := lookupProfile(t, "ChromaConsole")

	// A port can name both a product and an adapter. The product wins.
	got := CheckMismatch("Chroma Console USB MIDI Interface", micro, "", nil, reg)
	if !got.Mismatch {
		t.Fatal("foreign product name behind an interface keyword not flagged")
	}
	if got.Confidence != ConfidenceHigh {
		t.Errorf("confidence = %v, want high", got.Confidence)
	}
	if want := "ChromaConsole"; got.Detected != want {
		t.Errorf("detected = %q, want %q", got.Detected, want)
	}

	got = CheckMismatch("Chroma Console USB MIDI Interface", chroma, "", nil, reg)
	if got.Mismatch || got.Confidence != ConfidenceHigh || got.Detected != "ChromaConsole" {
		t.Errorf("matching product name behind an interface keyword = %+v", got)
	}
}

func TestProductNameInPortName(t *testing.T) {
	reg := pedal.Builtin()
	micro := lookupProfile(t, "Microcosm")
	chroma := lookupProfile(t, "ChromaConsole")

	got := CheckMismatch("Microcosm MIDI 1", micro, "", nil, reg)
	if got.Mismatch || got.Confidence != ConfidenceHigh || got.Detected != "Microcosm" {
		t.Errorf("matching product name = %+v", got)
	}

	got = CheckMismatch("Microcosm MIDI 1", chroma, "", nil, reg)
	if !got.Mismatch || got.Confidence != ConfidenceHigh {
		t.Errorf("foreign product name = %+v", got)
	}
	if want := "Microcosm"; got.Detected != want {
		t.Errorf("detected = %q, want %q", got.Detected, want)
	}
}

func TestManufacturerNameOnlyIsMedium(t *testing.T) {
	reg := pedal.Builtin()
	micro := lookupProfile(t, "Microcosm")

	got := CheckMismatch("Hologram Electronics", micro, "", nil, reg)
	if got.Mismatch {
		t.Error("manufacturer-only name flagged a mismatch")
	}
	if got.Confidence != ConfidenceMedium {
		t.Errorf("confidence = %v, want medium", got.Confidence)
	}
}

func TestBareNameCarriesNoInformation(t *testing.T) {
	reg := pedal.Builtin()
	micro := lookupProfile(t, "Microcosm")

	got := CheckMismatch("Port 1", micro, "", nil, reg)
	if got.Mismatch || got.Confidence != ConfidenceLow || got.Detected != "" {
		t.Errorf("bare name = %+v", got)
	}
}
