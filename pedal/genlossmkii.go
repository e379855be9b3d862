package pedal

// Control change numbers for the Chase Bliss Generation Loss MKII.
const (
	glWow             = 14
	glVolume          = 15
	glModel           = 16
	glFlutter         = 17
	glSaturate        = 18
	glFailure         = 19
	glRampSpeed       = 20
	glAuxMode         = 21
	glDryMode         = 22
	glNoiseMode       = 23
	glAuxOnsetTime    = 24
	glDspBypass       = 26
	glHissLevel       = 27
	glMechanicalNoise = 28
	glCrinklePop      = 29
	glInputGain       = 32
	glRampBounce      = 52
	glDipWow          = 61
	glDipFlutter      = 62
	glDipSatGen       = 63
	glDipFailureHp    = 64
	glDipModelLp      = 65
	glDipBounce       = 66
	glDipRandom       = 67
	glDipSweep        = 68
	glDipPolarity     = 71
	glDipClassic      = 72
	glDipMiso         = 73
	glDipSpread       = 74
	glDipDryType      = 75
	glDipDropByp      = 76
	glDipSnagByp      = 77
	glDipHumByp       = 78
	glExpression      = 100
	glBypass          = 102
	glAuxSwitch       = 103
	glAltMode         = 104
	glLeftSwitch      = 105
	glCenterSwitch    = 106
	glRightSwitch     = 107
)

// threePosition models the MKII's three-way mode selectors: the pedal only
// accepts the literal wire values 1, 2 and 3 on these controls.
func threePosition(name string, control uint8, options []string, def int) Field {
	return Field{
		Name:       name,
		Kind:       Enum,
		Control:    control,
		Coding:     CodeValue,
		Options:    options,
		SendValues: []uint8{1, 2, 3},
		Default:    def,
	}
}

func twoWaySwitch(name string, control uint8, options []string) Field {
	return Field{
		Name:       name,
		Kind:       Enum,
		Control:    control,
		Coding:     CodeBucket,
		Options:    options,
		Buckets:    []Bucket{{0, 63}, {64, 127}},
		SendValues: []uint8{0, 127},
	}
}

// GenLossMkii builds the profile for the Chase Bliss Generation Loss MKII:
// tape degradation emulator with a 13-way tape model selector and a row of
// DIP switches, all addressable over control changes. The pedal responds to
// no program changes, so it exposes no bank.
func GenLossMkii() *Profile {
	return NewProfile(&Profile{
		Type:         "GenLossMkii",
		Name:         "Generation Loss MKII",
		Manufacturer: "Chase Bliss Audio",
		Fields: []Field{
			// Knobs
			{Name: "wow", Kind: Continuous, Control: glWow, Default: 64},
			{Name: "flutter", Kind: Continuous, Control: glFlutter, Default: 64},
			{Name: "saturate", Kind: Continuous, Control: glSaturate, Default: 64},
			{Name: "failure", Kind: Continuous, Control: glFailure},
			{Name: "volume", Kind: Continuous, Control: glVolume, Default: 100},
			{Name: "rampSpeed", Kind: Continuous, Control: glRampSpeed, Default: 64},

			// Tape model selector. Decode buckets are uneven on the
			// hardware; the send values sit mid-bucket.
			{Name: "model", Kind: Enum, Control: glModel, Coding: CodeBucket,
				Options: []string{
					"none", "cpr3300gen1", "cpr3300gen2", "cpr3300gen3",
					"portamaxRT", "portamaxHT", "cam8", "dictatronEx",
					"dictatronIn", "fishy60", "msWalker", "amu2", "mpex",
				},
				Buckets: []Bucket{
					{0, 7}, {8, 19}, {20, 28}, {29, 38}, {39, 48}, {49, 57},
					{58, 67}, {68, 77}, {78, 86}, {87, 96}, {97, 106},
					{107, 119}, {120, 127},
				},
				SendValues: []uint8{0, 15, 24, 33, 43, 53, 62, 72, 82, 91, 101, 111, 127}},

			// Mode selectors
			threePosition("auxMode", glAuxMode, []string{"aux1", "aux2", "aux3"}, 0),
			threePosition("dryMode", glDryMode, []string{"dry1", "dry2", "dry3"}, 0),
			threePosition("noiseMode", glNoiseMode, []string{"noise1", "noise2", "noise3"}, 0),
			threePosition("inputGain", glInputGain, []string{"lineLevel", "instrumentLevel", "highGain"}, 1),
			twoWaySwitch("dspBypass", glDspBypass, []string{"trueBypass", "dspBypass"}),

			// Noise layer
			{Name: "hissLevel", Kind: Continuous, Control: glHissLevel, Default: 32},
			{Name: "mechanicalNoise", Kind: Continuous, Control: glMechanicalNoise, Default: 32},
			{Name: "crinklePop", Kind: Continuous, Control: glCrinklePop, Default: 32},

			// Footswitches and toggles
			{Name: "bypass", Kind: Boolean, Control: glBypass},
			{Name: "auxSwitch", Kind: Boolean, Control: glAuxSwitch},
			{Name: "altMode", Kind: Boolean, Control: glAltMode},
			{Name: "leftSwitch", Kind: Boolean, Control: glLeftSwitch},
			{Name: "centerSwitch", Kind: Boolean, Control: glCenterSwitch},
			{Name: "rightSwitch", Kind: Boolean, Control: glRightSwitch},
			{Name: "rampBounce", Kind: Boolean, Control: glRampBounce},

			// DIP switches
			{Name: "dipWow", Kind: Boolean, Control: glDipWow},
			{Name: "dipFlutter", Kind: Boolean, Control: glDipFlutter},
			{Name: "dipSatGen", Kind: Boolean, Control: glDipSatGen},
			{Name: "dipFailureHp", Kind: Boolean, Control: glDipFailureHp},
			{Name: "dipModelLp", Kind: Boolean, Control: glDipModelLp},
			{Name: "dipBounce", Kind: Boolean, Control: glDipBounce},
			{Name: "dipRandom", Kind: Boolean, Control: glDipRandom},
			twoWaySwitch("dipSweep", glDipSweep, []string{"bottom", "top"}),
			twoWaySwitch("dipPolarity", glDipPolarity, []string{"forward", "reverse"}),
			{Name: "dipClassic", Kind: Boolean, Control: glDipClassic},
			{Name: "dipMiso", Kind: Boolean, Control: glDipMiso},
			{Name: "dipSpread", Kind: Boolean, Control: glDipSpread},
			{Name: "dipDryType", Kind: Boolean, Control: glDipDryType},
			{Name: "dipDropByp", Kind: Boolean, Control: glDipDropByp},
			{Name: "dipSnagByp", Kind: Boolean, Control: glDipSnagByp},
			{Name: "dipHumByp", Kind: Boolean, Control: glDipHumByp},

			// Expression
			{Name: "expression", Kind: Continuous, Control: glExpression},
			{Name: "auxOnsetTime", Kind: Continuous, Control: glAuxOnsetTime, Default: 64},
		},
	})
}
