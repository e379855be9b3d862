package session

import (
	"bytes"
	"fmt"
	"strings"

	"pedal-librarian/midi"
	"pedal-librarian/pedal"
)

// Confidence grades how much weight a mismatch verdict carries.
type Confidence int

const (
	ConfidenceLow Confidence = iota
	ConfidenceMedium
	ConfidenceHigh
)

func (c Confidence) String() string {
	switch c {
	case ConfidenceLow:
		return "low"
	case ConfidenceMedium:
		return "medium"
	case ConfidenceHigh:
		return "high"
	default:
		return "unknown"
	}
}

// MismatchResult is the verdict on whether a port likely carries a
// different pedal than the one the user selected.
type MismatchResult struct {
	Mismatch   bool
	Detected   string // profile type, when one could be inferred
	Confidence Confidence
	Message    string
}

// knownDevice maps an identity-reply manufacturer to the products known to
// answer with it. More than one product means the reply alone cannot pick
// a profile.
type knownDevice struct {
	manufacturer []byte
	products     []string
}

var knownDevices = []knownDevice{
	// Hologram pedals share one manufacturer ID and do not distinguish
	// family or model in their inquiry replies.
	{manufacturer: []byte{0x00, 0x02, 0x4D}, products: []string{"Microcosm", "ChromaConsole"}},
}

// genericInterfaceKeywords mark port names that belong to an adapter or
// interface rather than a product. Such names say nothing about what is
// plugged in behind them.
var genericInterfaceKeywords = []string{
	"widi",
	"usb midi",
	"midi interface",
	"interface",
	"adapter",
	"bluetooth",
	"um-one",
	"midisport",
	"iconnect",
	"mio",
	"thru",
	"through",
}

// CheckMismatch judges whether the named port likely carries a pedal other
// than the selected profile. Signals in priority order: a saved user
// mapping for this port, an identity reply, a product-name substring in
// the port name, then a manufacturer substring. The first signal that
// resolves wins. An identity shared by several products resolves to
// nothing and falls through. Generic interface names that match no
// product resolve to low confidence with no mismatch.
func CheckMismatch(deviceName string, selected *pedal.Profile, savedProfile string, identity *midi.Identity, reg *pedal.Registry) MismatchResult {
	if savedProfile != "" {
		if savedProfile != selected.Type {
			return MismatchResult{
				Mismatch:   true,
				Detected:   savedProfile,
				Confidence: ConfidenceHigh,
				Message:    fmt.Sprintf("%q was previously used as %s, not %s", deviceName, savedProfile, selected.Type),
			}
		}
		return MismatchResult{
			Detected:   selected.Type,
			Confidence: ConfidenceHigh,
			Message:    fmt.Sprintf("%q matches its saved profile", deviceName),
		}
	}

	if identity != nil {
		if product, ok := identityProduct(identity); ok {
			if product != selected.Type {
				return MismatchResult{
					Mismatch:   true,
					Detected:   product,
					Confidence: ConfidenceHigh,
					Message:    fmt.Sprintf("identity reply names a %s, not a %s", product, selected.Type),
				}
			}
			return MismatchResult{
				Detected:   selected.Type,
				Confidence: ConfidenceHigh,
				Message:    "identity reply matches the selected pedal",
			}
		}
	}

	lower := strings.ToLower(deviceName)

	// Product name in the port name. The selected profile is checked first
	// so a name containing it never counts against the user.
	if strings.Contains(lower, strings.ToLower(selected.Name)) {
		return MismatchResult{
			Detected:   selected.Type,
			Confidence: ConfidenceHigh,
			Message:    fmt.Sprintf("%q names the selected pedal", deviceName),
		}
	}
	for _, typ := range reg.Types() {
		p, ok := reg.Lookup(typ)
		if !ok || p.Type == selected.Type {
			continue
		}
		if strings.Contains(lower, strings.ToLower(p.Name)) {
			return MismatchResult{
				Mismatch:   true,
				Detected:   p.Type,
				Confidence: ConfidenceHigh,
				Message:    fmt.Sprintf("%q names a %s, but %s is selected", deviceName, p.Name, selected.Type),
			}
		}
	}

	if strings.Contains(lower, strings.ToLower(selected.Manufacturer)) {
		return MismatchResult{
			Confidence: ConfidenceMedium,
			Message:    fmt.Sprintf("%q names the right manufacturer but not the product", deviceName),
		}
	}
	for _, typ := range reg.Types() {
		p, ok := reg.Lookup(typ)
		if !ok || strings.EqualFold(p.Manufacturer, selected.Manufacturer) {
			continue
		}
		if strings.Contains(lower, strings.ToLower(p.Manufacturer)) {
			return MismatchResult{
				Mismatch:   true,
				Confidence: ConfidenceMedium,
				Message:    fmt.Sprintf("%q names %s, a different manufacturer than %s", deviceName, p.Manufacturer, selected.Manufacturer),
			}
		}
	}

	// Interface-sounding names are only inspected once the substring scans
	// come up empty: "Chroma Console USB MIDI Interface" names a product
	// and must not be waved through as a bare adapter.
	if isGenericInterfaceName(lower) {
		return MismatchResult{
			Confidence: ConfidenceLow,
			Message:    fmt.Sprintf("%q looks like a MIDI interface; it says nothing about the pedal behind it", deviceName),
		}
	}

	return MismatchResult{
		Confidence: ConfidenceLow,
		Message:    fmt.Sprintf("%q carries no product information", deviceName),
	}
}

// identityProduct resolves an identity reply to a single profile type.
// ok is false when the identity is unknown or shared by several products.
func identityProduct(id *midi.Identity) (string, bool) {
	for _, kd := range knownDevices {
		if !bytes.Equal(id.Manufacturer, kd.manufacturer) {
			continue
		}
		if len(kd.products) == 1 {
			return kd.products[0], true
		}
		return "", false
	}
	return "", false
}

func isGenericInterfaceName(lower string) bool {
	for _, kw := range genericInterfaceKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
