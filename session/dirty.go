package session

import "pedal-librarian/pedal"

// Tracker remembers which library preset the live state came from, and a
// snapshot of that state at load time. The live state is dirty when it no
// longer equals the snapshot; drifting away and editing back leaves it
// clean again.
//
// Tracker is not safe for concurrent use; Session guards it with its own
// mutex.
type Tracker struct {
	presetID   string
	presetName string
	snapshot   pedal.ParamState
}

// Track binds the tracker to a preset and snapshots state. An empty id or
// name clears the binding instead: unbound states have no dirty notion.
func (t *Tracker) Track(state pedal.ParamState, id, name string) {
	if id == "" || name == "" {
		t.Clear()
		return
	}
	t.presetID = id
	t.presetName = name
	t.snapshot = state.Clone()
}

func (t *Tracker) Clear() {
	t.presetID = ""
	t.presetName = ""
	t.snapshot = nil
}

func (t *Tracker) Active() bool { return t.snapshot != nil }

func (t *Tracker) IsDirty(live pedal.ParamState) bool {
	return t.snapshot != nil && !t.snapshot.Equal(live)
}

// Snapshot returns a copy of the reference state, or nil when unbound.
func (t *Tracker) Snapshot() pedal.ParamState {
	if t.snapshot == nil {
		return nil
	}
	return t.snapshot.Clone()
}

func (t *Tracker) PresetID() string   { return t.presetID }
func (t *Tracker) PresetName() string { return t.presetName }
