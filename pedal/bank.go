package pedal

import "fmt"

// SaveStrategy is how a pedal persists its active slot over the wire
type SaveStrategy int

const (
	// SaveSupported: a dedicated control change stores the active slot
	SaveSupported SaveStrategy = iota
	// SaveManualOnly: the user must act on the hardware, no wire save exists
	SaveManualOnly
	// SaveAuto: every parameter change is implicitly persisted by the device
	SaveAuto
)

func (s SaveStrategy) String() string {
	switch s {
	case SaveSupported:
		return "supported"
	case SaveManualOnly:
		return "manualOnly"
	case SaveAuto:
		return "autoSave"
	}
	return fmt.Sprintf("saveStrategy(%d)", int(s))
}

// BankConfig describes a pedal's addressable preset memory: a contiguous
// slot range partitioned into fixed-size, named, colored groups.
type BankConfig struct {
	SlotStart    uint8
	SlotEnd      uint8
	SlotsPerBank int
	GroupLabels  []string
	GroupColors  []string

	Save     SaveStrategy
	SaveCC   uint8  // SaveSupported only
	SaveHint string // command description, or the manual save instructions
}

// fallback for out-of-range group colors
const neutralColor = "gray"

// TotalSlots is the number of addressable slots
func (c *BankConfig) TotalSlots() int {
	return int(c.SlotEnd) - int(c.SlotStart) + 1
}

// Contains reports whether a slot number is inside the configured range
func (c *BankConfig) Contains(slot uint8) bool {
	return slot >= c.SlotStart && slot <= c.SlotEnd
}

// GroupIndex returns the 0-based group a slot belongs to
func (c *BankConfig) GroupIndex(slot uint8) (int, bool) {
	if !c.Contains(slot) {
		return 0, false
	}
	return int(slot-c.SlotStart) / c.SlotsPerBank, true
}

// FormatSlot derives the display label for a slot. Small groups (<=4 slots)
// label slots by letter ("1A", "2C"); larger groups use 1-based numbers
// ("A-5", "B-12"). Slots outside the range format as empty.
func (c *BankConfig) FormatSlot(slot uint8) string {
	group, ok := c.GroupIndex(slot)
	if !ok {
		return ""
	}
	index := int(slot-c.SlotStart) % c.SlotsPerBank
	label := fmt.Sprintf("%d", group+1)
	if group < len(c.GroupLabels) {
		label = c.GroupLabels[group]
	}
	if c.SlotsPerBank <= 4 {
		return fmt.Sprintf("%s%c", label, 'A'+index)
	}
	return fmt.Sprintf("%s-%d", label, index+1)
}

// SlotColor derives the display color for a slot, falling back to a
// neutral gray outside the range or past the color list.
func (c *BankConfig) SlotColor(slot uint8) string {
	group, ok := c.GroupIndex(slot)
	if !ok || group >= len(c.GroupColors) {
		return neutralColor
	}
	if c.GroupColors[group] == "" {
		return neutralColor
	}
	return c.GroupColors[group]
}
