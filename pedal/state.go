package pedal

// ParamState is a flat record of one device's live parameters, keyed by
// field name. Continuous fields hold 0-127, booleans hold 0/1 and enums
// hold the option index. One instance exists per connected device and is
// never shared across devices.
type ParamState map[string]int

// Clone returns an independent copy. Snapshot and restore paths must never
// hold the same map the live state mutates.
func (s ParamState) Clone() ParamState {
	out := make(ParamState, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Equal is full structural equality, field by field
func (s ParamState) Equal(other ParamState) bool {
	if len(s) != len(other) {
		return false
	}
	for k, v := range s {
		ov, ok := other[k]
		if !ok || ov != v {
			return false
		}
	}
	return true
}

// Get returns a field value, with ok false for absent fields
func (s ParamState) Get(name string) (int, bool) {
	v, ok := s[name]
	return v, ok
}
