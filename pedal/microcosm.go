package pedal

// Control change numbers for the Hologram Microcosm, per the MIDI
// implementation chart in the owner's manual.
const (
	mcSubdivision        = 5
	mcActivity           = 6
	mcShape              = 7
	mcCutoff             = 8
	mcMix                = 9
	mcTime               = 10
	mcRepeats            = 11
	mcSpace              = 12
	mcLoopLevel          = 13
	mcFrequency          = 14
	mcResonance          = 15
	mcVolume             = 16
	mcLooperSpeed        = 17
	mcLooperSpeedStepped = 18
	mcDepth              = 19
	mcReverbTime         = 20
	mcFadeTime           = 21
	mcLooperEnabled      = 22
	mcPlaybackDirection  = 23
	mcRouting            = 24
	mcLooperOnly         = 25
	mcBurstMode          = 26
	mcQuantized          = 27
	mcLooperRecord       = 28
	mcLooperPlay         = 29
	mcLooperOverdub      = 30
	mcLooperStop         = 31
	mcLooperErase        = 34
	mcLooperUndo         = 35
	mcPresetCopy         = 45
	mcPresetSave         = 46
	mcReverseEffect      = 47
	mcHoldSampler        = 48
	mcTapTempo           = 93
	mcBypass             = 102
)

var subdivisionOptions = []string{"quarter", "half", "tap", "2x", "4x", "8x"}

// Microcosm builds the profile for the Hologram Microcosm: granular
// looper/glitch pedal, 16 user preset slots addressed as program changes
// 45-60, wire save on CC 46.
func Microcosm() *Profile {
	return NewProfile(&Profile{
		Type:         "Microcosm",
		Name:         "Microcosm",
		Manufacturer: "Hologram Electronics",
		Fields: []Field{
			// Time
			{Name: "subdivision", Kind: Enum, Control: mcSubdivision, Coding: CodeIndex, Options: subdivisionOptions},
			{Name: "time", Kind: Continuous, Control: mcTime, Default: 64},
			{Name: "holdSampler", Kind: Boolean, Control: mcHoldSampler},

			// Special sauce
			{Name: "activity", Kind: Continuous, Control: mcActivity, Default: 64},
			{Name: "repeats", Kind: Continuous, Control: mcRepeats, Default: 64},

			// Modulation
			{Name: "shape", Kind: Enum, Control: mcShape, Coding: CodeBucket,
				Options:    []string{"square", "ramp", "triangle", "saw"},
				Buckets:    []Bucket{{0, 31}, {32, 63}, {64, 95}, {96, 127}},
				SendValues: []uint8{16, 48, 80, 112}},
			{Name: "frequency", Kind: Continuous, Control: mcFrequency, Default: 64},
			{Name: "depth", Kind: Continuous, Control: mcDepth, Default: 64},

			// Filter
			{Name: "cutoff", Kind: Continuous, Control: mcCutoff, Default: 127},
			{Name: "resonance", Kind: Continuous, Control: mcResonance},

			// Effect
			{Name: "mix", Kind: Continuous, Control: mcMix, Default: 64},
			{Name: "volume", Kind: Continuous, Control: mcVolume, Default: 100},
			{Name: "reverseEffect", Kind: Boolean, Control: mcReverseEffect},
			{Name: "bypass", Kind: Boolean, Control: mcBypass},

			// Reverb
			{Name: "space", Kind: Continuous, Control: mcSpace},
			{Name: "reverbTime", Kind: Continuous, Control: mcReverbTime},

			// Looper
			{Name: "loopLevel", Kind: Continuous, Control: mcLoopLevel, Default: 100},
			{Name: "looperSpeed", Kind: Continuous, Control: mcLooperSpeed, Default: 64},
			{Name: "looperSpeedStepped", Kind: Enum, Control: mcLooperSpeedStepped, Coding: CodeIndex, Options: subdivisionOptions},
			{Name: "fadeTime", Kind: Continuous, Control: mcFadeTime, Default: 64},
			{Name: "looperEnabled", Kind: Boolean, Control: mcLooperEnabled},
			{Name: "playbackDirection", Kind: Enum, Control: mcPlaybackDirection, Coding: CodeBucket,
				Options:    []string{"forward", "reverse"},
				Buckets:    []Bucket{{0, 63}, {64, 127}},
				SendValues: []uint8{0, 127}},
			{Name: "routing", Kind: Enum, Control: mcRouting, Coding: CodeBucket,
				Options:    []string{"postFx", "preFx"},
				Buckets:    []Bucket{{0, 63}, {64, 127}},
				SendValues: []uint8{0, 127}},
			{Name: "looperOnly", Kind: Boolean, Control: mcLooperOnly},
			{Name: "burstMode", Kind: Boolean, Control: mcBurstMode},
			{Name: "quantized", Kind: Boolean, Control: mcQuantized},
		},
		Triggers: []Trigger{
			{Name: "tapTempo", Control: mcTapTempo},
			{Name: "looperRecord", Control: mcLooperRecord},
			{Name: "looperPlay", Control: mcLooperPlay},
			{Name: "looperOverdub", Control: mcLooperOverdub},
			{Name: "looperStop", Control: mcLooperStop},
			{Name: "looperErase", Control: mcLooperErase},
			{Name: "looperUndo", Control: mcLooperUndo},
			{Name: "presetCopy", Control: mcPresetCopy},
			{Name: "presetSave", Control: mcPresetSave},
		},
		Bank: &BankConfig{
			SlotStart:    45,
			SlotEnd:      60,
			SlotsPerBank: 4,
			GroupLabels:  []string{"1", "2", "3", "4"},
			GroupColors:  []string{"red", "yellow", "green", "blue"},
			Save:         SaveSupported,
			SaveCC:       mcPresetSave,
			SaveHint:     "CC 46 - Preset Save",
		},
	})
}
