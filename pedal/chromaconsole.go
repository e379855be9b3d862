package pedal

// Control change numbers for the Hologram Chroma Console.
const (
	ccCharacterModule    = 16
	ccMovementModule     = 17
	ccDiffusionModule    = 18
	ccTextureModule      = 19
	ccTilt               = 64
	ccAmountCharacter    = 65
	ccRate               = 66
	ccAmountMovement     = 67
	ccTime               = 68
	ccAmountDiffusion    = 69
	ccMix                = 70
	ccAmountTexture      = 71
	ccSensitivity        = 72
	ccEffectVolCharacter = 73
	ccDriftMovement      = 74
	ccEffectVolMovement  = 75
	ccDriftDiffusion     = 76
	ccEffectVolDiffusion = 77
	ccOutputLevel        = 78
	ccEffectVolTexture   = 79
	ccGesturePlayRec     = 80
	ccGestureStopErase   = 81
	ccCapture            = 82
	ccCaptureRouting     = 83
	ccFilterMode         = 84
	ccStandardBypass     = 91
	ccTapTempo           = 93
	ccCalibrationLevel   = 94
	ccCalibrationEnter   = 95
	ccCharacterBypass    = 103
	ccMovementBypass     = 104
	ccDiffusionBypass    = 105
	ccTextureBypass      = 106
)

// Module selections quantize a 0-127 sweep into five 22-wide effect buckets
// plus an 18-wide "off" bucket at the top. These boundaries come from the
// hardware's observed behavior; do not re-space them evenly.
var moduleBuckets = []Bucket{{0, 21}, {22, 43}, {44, 65}, {66, 87}, {88, 109}, {110, 127}}
var moduleSends = []uint8{10, 32, 54, 76, 98, 120}

func moduleField(name string, control uint8, options []string) Field {
	return Field{
		Name:       name,
		Kind:       Enum,
		Control:    control,
		Coding:     CodeBucket,
		Options:    options,
		Buckets:    moduleBuckets,
		SendValues: moduleSends,
		Default:    5, // off
	}
}

// ChromaConsole builds the profile for the Hologram Chroma Console:
// four-module multi-effect, 80 user preset slots addressed as program
// changes 0-79, no wire-based save (footswitch hold only).
func ChromaConsole() *Profile {
	return NewProfile(&Profile{
		Type:         "ChromaConsole",
		Name:         "Chroma Console",
		Manufacturer: "Hologram Electronics",
		Fields: []Field{
			// Primary controls
			{Name: "tilt", Kind: Continuous, Control: ccTilt, Default: 64},
			{Name: "rate", Kind: Continuous, Control: ccRate, Default: 64},
			{Name: "time", Kind: Continuous, Control: ccTime, Default: 64},
			{Name: "mix", Kind: Continuous, Control: ccMix, Default: 64},
			{Name: "amountCharacter", Kind: Continuous, Control: ccAmountCharacter, Default: 64},
			{Name: "amountMovement", Kind: Continuous, Control: ccAmountMovement, Default: 64},
			{Name: "amountDiffusion", Kind: Continuous, Control: ccAmountDiffusion, Default: 64},
			{Name: "amountTexture", Kind: Continuous, Control: ccAmountTexture, Default: 64},

			// Secondary controls
			{Name: "sensitivity", Kind: Continuous, Control: ccSensitivity, Default: 64},
			{Name: "driftMovement", Kind: Continuous, Control: ccDriftMovement, Default: 64},
			{Name: "driftDiffusion", Kind: Continuous, Control: ccDriftDiffusion, Default: 64},
			{Name: "outputLevel", Kind: Continuous, Control: ccOutputLevel, Default: 100},
			{Name: "effectVolCharacter", Kind: Continuous, Control: ccEffectVolCharacter, Default: 100},
			{Name: "effectVolMovement", Kind: Continuous, Control: ccEffectVolMovement, Default: 100},
			{Name: "effectVolDiffusion", Kind: Continuous, Control: ccEffectVolDiffusion, Default: 100},
			{Name: "effectVolTexture", Kind: Continuous, Control: ccEffectVolTexture, Default: 100},

			// Module selections
			moduleField("characterModule", ccCharacterModule,
				[]string{"drive", "sweeten", "fuzz", "howl", "swell", "off"}),
			moduleField("movementModule", ccMovementModule,
				[]string{"doubler", "vibrato", "phaser", "tremolo", "pitch", "off"}),
			moduleField("diffusionModule", ccDiffusionModule,
				[]string{"cascade", "reels", "space", "collage", "reverse", "off"}),
			moduleField("textureModule", ccTextureModule,
				[]string{"filter", "squash", "cassette", "broken", "interference", "off"}),

			// Bypass. The Chroma Console inverts the usual switch logic:
			// 0 engages, 127 bypasses.
			{Name: "bypassState", Kind: Enum, Control: ccStandardBypass, Coding: CodeBucket,
				Options:    []string{"engaged", "dualBypass", "bypass"},
				Buckets:    []Bucket{{0, 31}, {32, 63}, {64, 127}},
				SendValues: []uint8{0, 48, 127},
				Default:    2},
			{Name: "characterBypass", Kind: Boolean, Control: ccCharacterBypass, Inverted: true},
			{Name: "movementBypass", Kind: Boolean, Control: ccMovementBypass, Inverted: true},
			{Name: "diffusionBypass", Kind: Boolean, Control: ccDiffusionBypass, Inverted: true},
			{Name: "textureBypass", Kind: Boolean, Control: ccTextureBypass, Inverted: true},

			// Gesture / capture / filter
			{Name: "gestureMode", Kind: Enum, Control: ccGesturePlayRec, Coding: CodeBucket,
				Options:    []string{"play", "record"},
				Buckets:    []Bucket{{0, 63}, {64, 127}},
				SendValues: []uint8{0, 127}},
			{Name: "captureMode", Kind: Enum, Control: ccCapture, Coding: CodeBucket,
				Options:    []string{"stop", "play", "record"},
				Buckets:    []Bucket{{0, 43}, {44, 87}, {88, 127}},
				SendValues: []uint8{21, 65, 108}},
			{Name: "captureRouting", Kind: Enum, Control: ccCaptureRouting, Coding: CodeBucket,
				Options:    []string{"postFx", "preFx"},
				Buckets:    []Bucket{{0, 63}, {64, 127}},
				SendValues: []uint8{0, 127}},
			{Name: "filterMode", Kind: Enum, Control: ccFilterMode, Coding: CodeBucket,
				Options:    []string{"lpf", "tilt", "hpf"},
				Buckets:    []Bucket{{0, 43}, {44, 87}, {88, 127}},
				SendValues: []uint8{21, 65, 108}},
			{Name: "calibrationLevel", Kind: Enum, Control: ccCalibrationLevel, Coding: CodeBucket,
				Options:    []string{"low", "medium", "high", "veryHigh"},
				Buckets:    []Bucket{{0, 31}, {32, 63}, {64, 95}, {96, 127}},
				SendValues: []uint8{15, 47, 79, 111},
				Default:    1},
			{Name: "calibrationEnter", Kind: Boolean, Control: ccCalibrationEnter},
		},
		Triggers: []Trigger{
			{Name: "gestureStop", Control: ccGestureStopErase},
			{Name: "tapTempo", Control: ccTapTempo},
		},
		Bank: &BankConfig{
			SlotStart:    0,
			SlotEnd:      79,
			SlotsPerBank: 20,
			GroupLabels:  []string{"A", "B", "C", "D"},
			GroupColors:  []string{"red", "orange", "green", "blue"},
			Save:         SaveManualOnly,
			SaveHint:     "Press and hold the footswitch to save the preset to the pedal's internal memory",
		},
	})
}
