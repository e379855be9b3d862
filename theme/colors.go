package theme

import "github.com/charmbracelet/lipgloss"

// Bank group colors as the pedals print them, mapped to terminal styles.
// Names outside the map render in the neutral gray.
var slotColors = map[string]lipgloss.Color{
	"red":    lipgloss.Color("#e05252"),
	"orange": lipgloss.Color("#e0954f"),
	"yellow": lipgloss.Color("#e0d052"),
	"green":  lipgloss.Color("#5fc26a"),
	"blue":   lipgloss.Color("#5a8fe0"),
	"purple": lipgloss.Color("#a06ee0"),
	"gray":   lipgloss.Color("#8a8a8a"),
}

var neutral = slotColors["gray"]

// SlotStyle returns a style for a bank slot label in its group color.
func SlotStyle(color string) lipgloss.Style {
	c, ok := slotColors[color]
	if !ok {
		c = neutral
	}
	return lipgloss.NewStyle().Foreground(c).Bold(true)
}

// Dim styles secondary text such as sync timestamps and empty slots.
func Dim() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(neutral)
}

// Warn styles mismatch warnings and unsaved-change markers.
func Warn() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(slotColors["orange"]).Bold(true)
}

// Title styles section headers.
func Title() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Underline(true)
}
