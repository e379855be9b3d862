package pedal

import "fmt"

// FieldKind is the semantic type of a parameter field
type FieldKind int

const (
	Continuous FieldKind = iota // 0-127 knob
	Boolean                     // on/off switch
	Enum                        // one of a fixed value set
)

// EnumCoding describes how an enum field travels on the wire
type EnumCoding int

const (
	CodeIndex  EnumCoding = iota // wire value is the option index itself
	CodeBucket                   // wire value falls in Buckets[i], SendValues[i] goes out
	CodeValue                    // wire value is exactly SendValues[i], anything else is invalid
)

// Bucket is an inclusive wire-value range for one enum option
type Bucket struct {
	Lo, Hi uint8
}

// Field is one named parameter in a profile's schema
type Field struct {
	Name    string
	Kind    FieldKind
	Control uint8
	Default int

	// Boolean fields: some pedals use inverted switch logic (0 = on)
	Inverted bool

	// Enum fields
	Options    []string
	Coding     EnumCoding
	Buckets    []Bucket
	SendValues []uint8
}

// Trigger is a momentary action with no stored value
type Trigger struct {
	Name    string
	Control uint8
}

// Immediate reports whether edits to this field bypass the debounce window.
// Only continuous fields are coalesced; switches and selections go straight out.
func (f *Field) Immediate() bool {
	return f.Kind != Continuous
}

// Encode converts a state value to the wire value for this field
func (f *Field) Encode(v int) (uint8, error) {
	switch f.Kind {
	case Continuous:
		if v < 0 || v > 127 {
			return 0, fmt.Errorf("%s: value %d out of range 0-127", f.Name, v)
		}
		return uint8(v), nil
	case Boolean:
		if v != 0 && v != 1 {
			return 0, fmt.Errorf("%s: switch value %d not 0 or 1", f.Name, v)
		}
		on := v == 1
		if f.Inverted {
			on = !on
		}
		if on {
			return 127, nil
		}
		return 0, nil
	case Enum:
		if v < 0 || v >= len(f.Options) {
			return 0, fmt.Errorf("%s: option %d out of range (have %d)", f.Name, v, len(f.Options))
		}
		if f.Coding == CodeIndex {
			return uint8(v), nil
		}
		return f.SendValues[v], nil
	}
	return 0, fmt.Errorf("%s: unknown field kind %d", f.Name, f.Kind)
}

// Decode converts a wire value to the state value for this field.
// ok is false when the wire value has no meaning for this field.
func (f *Field) Decode(wire uint8) (v int, ok bool) {
	switch f.Kind {
	case Continuous:
		return int(wire), true
	case Boolean:
		on := wire >= 64
		if f.Inverted {
			on = !on
		}
		if on {
			return 1, true
		}
		return 0, true
	case Enum:
		switch f.Coding {
		case CodeIndex:
			if int(wire) < len(f.Options) {
				return int(wire), true
			}
			return 0, false
		case CodeValue:
			for i, s := range f.SendValues {
				if s == wire {
					return i, true
				}
			}
			return 0, false
		}
		for i, b := range f.Buckets {
			if wire >= b.Lo && wire <= b.Hi {
				return i, true
			}
		}
		return 0, false
	}
	return 0, false
}

// OptionName returns the display name of an enum value ("" for non-enums)
func (f *Field) OptionName(v int) string {
	if f.Kind != Enum || v < 0 || v >= len(f.Options) {
		return ""
	}
	return f.Options[v]
}

// Profile is the fixed schema and capabilities of one hardware product
// family. Immutable after construction.
type Profile struct {
	Type         string // stable type tag, e.g. "Microcosm"
	Name         string // product name as printed on the pedal
	Manufacturer string
	Fields       []Field
	Triggers     []Trigger
	Bank         *BankConfig // nil when the pedal has no addressable memory

	byName    map[string]*Field
	byControl map[uint8]*Field
	trigger   map[string]*Trigger
}

// NewProfile validates a profile definition and builds its lookup indexes.
// Panics on schema mistakes; profile definitions are build-time constants.
func NewProfile(p *Profile) *Profile {
	p.byName = make(map[string]*Field, len(p.Fields))
	p.byControl = make(map[uint8]*Field, len(p.Fields))
	p.trigger = make(map[string]*Trigger, len(p.Triggers))
	for i := range p.Fields {
		f := &p.Fields[i]
		if _, dup := p.byName[f.Name]; dup {
			panic(fmt.Sprintf("profile %s: duplicate field %s", p.Type, f.Name))
		}
		if _, dup := p.byControl[f.Control]; dup {
			panic(fmt.Sprintf("profile %s: duplicate control %d", p.Type, f.Control))
		}
		if f.Kind == Enum {
			switch f.Coding {
			case CodeBucket:
				validateBuckets(p.Type, f)
			case CodeValue:
				if len(f.SendValues) != len(f.Options) {
					panic(fmt.Sprintf("profile %s: field %s send value table mismatch", p.Type, f.Name))
				}
			}
		}
		p.byName[f.Name] = f
		p.byControl[f.Control] = f
	}
	for i := range p.Triggers {
		t := &p.Triggers[i]
		p.trigger[t.Name] = t
	}
	return p
}

// validateBuckets checks that enum buckets partition 0-127 with no gaps or
// overlaps and that every bucket has a send value inside it.
func validateBuckets(profileType string, f *Field) {
	if len(f.Buckets) != len(f.Options) || len(f.SendValues) != len(f.Options) {
		panic(fmt.Sprintf("profile %s: field %s bucket table mismatch", profileType, f.Name))
	}
	next := 0
	for i, b := range f.Buckets {
		if int(b.Lo) != next || b.Hi < b.Lo {
			panic(fmt.Sprintf("profile %s: field %s bucket %d not contiguous", profileType, f.Name, i))
		}
		if f.SendValues[i] < b.Lo || f.SendValues[i] > b.Hi {
			panic(fmt.Sprintf("profile %s: field %s send value outside bucket %d", profileType, f.Name, i))
		}
		next = int(b.Hi) + 1
	}
	if next != 128 {
		panic(fmt.Sprintf("profile %s: field %s buckets do not cover 0-127", profileType, f.Name))
	}
}

// Field looks up a field by name
func (p *Profile) Field(name string) (*Field, bool) {
	f, ok := p.byName[name]
	return f, ok
}

// TriggerByName looks up a trigger by name
func (p *Profile) TriggerByName(name string) (*Trigger, bool) {
	t, ok := p.trigger[name]
	return t, ok
}

// DecodeControl maps an inbound control change to a field name and state
// value. ok is false for control numbers the profile does not recognize.
func (p *Profile) DecodeControl(control, value uint8) (name string, v int, ok bool) {
	f, found := p.byControl[control]
	if !found {
		return "", 0, false
	}
	v, ok = f.Decode(value)
	return f.Name, v, ok
}

// EncodeField maps a field name and state value to a wire message
func (p *Profile) EncodeField(name string, v int) (control, wire uint8, err error) {
	f, ok := p.byName[name]
	if !ok {
		return 0, 0, fmt.Errorf("profile %s: no field %q", p.Type, name)
	}
	wire, err = f.Encode(v)
	if err != nil {
		return 0, 0, err
	}
	return f.Control, wire, nil
}

// DefaultState builds a fresh state with every field at its default
func (p *Profile) DefaultState() ParamState {
	s := make(ParamState, len(p.Fields))
	for i := range p.Fields {
		s[p.Fields[i].Name] = p.Fields[i].Default
	}
	return s
}

// Validate checks that a state covers exactly this profile's fields with
// values each field accepts.
func (p *Profile) Validate(s ParamState) error {
	for name, v := range s {
		f, ok := p.byName[name]
		if !ok {
			return fmt.Errorf("profile %s: unknown field %q", p.Type, name)
		}
		if _, err := f.Encode(v); err != nil {
			return err
		}
	}
	for i := range p.Fields {
		if _, ok := s[p.Fields[i].Name]; !ok {
			return fmt.Errorf("profile %s: state missing field %q", p.Type, p.Fields[i].Name)
		}
	}
	return nil
}

// Registry is the constructed-once lookup table of supported profiles,
// passed into sessions at startup.
type Registry struct {
	profiles map[string]*Profile
	order    []string
}

// NewRegistry builds a registry from an explicit profile list
func NewRegistry(profiles ...*Profile) *Registry {
	r := &Registry{profiles: make(map[string]*Profile, len(profiles))}
	for _, p := range profiles {
		if _, dup := r.profiles[p.Type]; dup {
			panic(fmt.Sprintf("registry: duplicate profile type %s", p.Type))
		}
		r.profiles[p.Type] = p
		r.order = append(r.order, p.Type)
	}
	return r
}

// Builtin returns a registry with every profile this build knows about
func Builtin() *Registry {
	return NewRegistry(Microcosm(), ChromaConsole(), GenLossMkii())
}

// Lookup finds a profile by type tag
func (r *Registry) Lookup(typeTag string) (*Profile, bool) {
	p, ok := r.profiles[typeTag]
	return p, ok
}

// Types lists registered type tags in registration order
func (r *Registry) Types() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}
