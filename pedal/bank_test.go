package pedal

import "testing"

func TestMicrocosmSlotLabels(t *testing.T) {
	bank := Microcosm().Bank

	cases := []struct {
		slot  uint8
		label string
		color string
	}{
		{45, "1A", "red"},
		{48, "1D", "red"},
		{49, "2A", "yellow"},
		{53, "3A", "green"},
		{60, "4D", "blue"},
	}
	for _, c := range cases {
		if got := bank.FormatSlot(c.slot); got != c.label {
			t.Errorf("FormatSlot(%d) = %q, want %q", c.slot, got, c.label)
		}
		if got := bank.SlotColor(c.slot); got != c.color {
			t.Errorf("SlotColor(%d) = %q, want %q", c.slot, got, c.color)
		}
	}

	if want, got := 16, bank.TotalSlots(); want != got {
		t.Errorf("TotalSlots = %d, want %d", got, want)
	}
}

func TestChromaConsoleSlotLabels(t *testing.T) {
	bank := ChromaConsole().Bank

	cases := []struct {
		slot  uint8
		label string
	}{
		{0, "A-1"},
		{19, "A-20"},
		{20, "B-1"},
		{79, "D-20"},
	}
	for _, c := range cases {
		if got := bank.FormatSlot(c.slot); got != c.label {
			t.Errorf("FormatSlot(%d) = %q, want %q", c.slot, got, c.label)
		}
	}
	if want, got := 80, bank.TotalSlots(); want != got {
		t.Errorf("TotalSlots = %d, want %d", got, want)
	}
}

func TestFormatSlotTotalOverRange(t *testing.T) {
	bank := Microcosm().Bank
	for slot := bank.SlotStart; ; slot++ {
		if bank.FormatSlot(slot) == "" {
			t.Errorf("slot %d has no label", slot)
		}
		if bank.SlotColor(slot) == "" {
			t.Errorf("slot %d has no color", slot)
		}
		if slot == bank.SlotEnd {
			break
		}
	}
}

func TestSlotOutsideRange(t *testing.T) {
	bank := Microcosm().Bank

	for _, slot := range []uint8{0, 44, 61, 127} {
		if bank.Contains(slot) {
			t.Errorf("Contains(%d) = true", slot)
		}
		if got := bank.FormatSlot(slot); got != "" {
			t.Errorf("FormatSlot(%d) = %q, want empty", slot, got)
		}
		if got := bank.SlotColor(slot); got != "gray" {
			t.Errorf("SlotColor(%d) = %q, want gray", slot, got)
		}
	}
}

func TestSlotColorFallsBackPastColorList(t *testing.T) {
	bank := &BankConfig{
		SlotStart:    0,
		SlotEnd:      7,
		SlotsPerBank: 2,
		GroupLabels:  []string{"1", "2", "3", "4"},
		GroupColors:  []string{"red", "", "green"},
	}
	if got := bank.SlotColor(2); got != "gray" {
		t.Errorf("empty color entry = %q, want gray", got)
	}
	if got := bank.SlotColor(6); got != "gray" {
		t.Errorf("color past the list = %q, want gray", got)
	}
	if got := bank.SlotColor(4); got != "green" {
		t.Errorf("SlotColor(4) = %q, want green", got)
	}
}

func TestSaveStrategies(t *testing.T) {
	micro := Microcosm().Bank
	if micro.Save != SaveSupported || micro.SaveCC != 46 {
		t.Errorf("Microcosm save = %v cc %d", micro.Save, micro.SaveCC)
	}
	chroma := ChromaConsole().Bank
	if chroma.Save != SaveManualOnly {
		t.Errorf("ChromaConsole save = %v", chroma.Save)
	}
	if chroma.SaveHint == "" {
		t.Error("manual-save pedal has no instructions")
	}
	if want, got := "supported", SaveSupported.String(); want != got {
		t.Errorf("String = %q, want %q", got, want)
	}
}
