package library

import (
	"errors"
	"testing"
	"time"

	"pedal-librarian/pedal"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return store
}

func microcosmState(t *testing.T) pedal.ParamState {
	t.Helper()
	p, ok := pedal.Builtin().Lookup("Microcosm")
	if !ok {
		t.Fatal("no Microcosm profile")
	}
	return p.DefaultState()
}

func TestFileStorePresetRoundTrip(t *testing.T) {
	store := newTestStore(t)

	state := microcosmState(t)
	state["mix"] = 42
	p := NewPreset("Glass Drone", "Microcosm", state)
	p.Description = "slow granular pad"
	p.Tags = []string{"ambient", "drone"}
	p.Favorite = true

	if err := store.SavePreset(p); err != nil {
		t.Fatal(err)
	}

	got, err := store.FindPreset(p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != p.Name || got.ProfileType != p.ProfileType || got.Description != p.Description {
		t.Errorf("loaded preset = %+v", got)
	}
	if !got.Favorite || !got.HasTag("Ambient") {
		t.Error("favorite or tags did not survive the round trip")
	}
	if !got.Parameters.Equal(state) {
		t.Errorf("parameters = %v, want %v", got.Parameters, state)
	}
}

func TestFileStoreFindMissing(t *testing.T) {
	store := newTestStore(t)
	if _, err := store.FindPreset("nope"); !errors.Is(err, ErrPresetNotFound) {
		t.Errorf("FindPreset = %v, want ErrPresetNotFound", err)
	}
	if err := store.DeletePreset("nope"); !errors.Is(err, ErrPresetNotFound) {
		t.Errorf("DeletePreset = %v, want ErrPresetNotFound", err)
	}
}

func TestFileStoreListFilters(t *testing.T) {
	store := newTestStore(t)
	state := microcosmState(t)

	a := NewPreset("Ambient Wash", "Microcosm", state)
	a.Tags = []string{"ambient"}
	a.Favorite = true
	b := NewPreset("Bit Glitch", "Microcosm", state)
	b.Tags = []string{"glitch"}
	c := NewPreset("Tape Warble", "ChromaConsole", chromaState(t))
	for _, p := range []*Preset{a, b, c} {
		if err := store.SavePreset(p); err != nil {
			t.Fatal(err)
		}
	}

	all, err := store.ListPresets(Filter{})
	if err != nil {
		t.Fatal(err)
	}
	if want, got := 3, len(all); want != got {
		t.Fatalf("listed %d presets, want %d", got, want)
	}
	// sorted by name
	if all[0].Name != "Ambient Wash" || all[2].Name != "Tape Warble" {
		t.Errorf("order = %s, %s, %s", all[0].Name, all[1].Name, all[2].Name)
	}

	byType, _ := store.ListPresets(Filter{ProfileType: "Microcosm"})
	if len(byType) != 2 {
		t.Errorf("Microcosm filter matched %d presets, want 2", len(byType))
	}

	fav := true
	byFav, _ := store.ListPresets(Filter{Favorite: &fav})
	if len(byFav) != 1 || byFav[0].ID != a.ID {
		t.Errorf("favorite filter matched %v", byFav)
	}

	byTag, _ := store.ListPresets(Filter{Tags: []string{"glitch"}})
	if len(byTag) != 1 || byTag[0].ID != b.ID {
		t.Errorf("tag filter matched %v", byTag)
	}

	byQuery, _ := store.ListPresets(Filter{Query: "warble"})
	if len(byQuery) != 1 || byQuery[0].ID != c.ID {
		t.Errorf("query filter matched %v", byQuery)
	}
}

func TestFileStoreFindByName(t *testing.T) {
	store := newTestStore(t)
	p := NewPreset("Glass Drone", "Microcosm", microcosmState(t))
	if err := store.SavePreset(p); err != nil {
		t.Fatal(err)
	}

	got, err := store.FindPresetByName("Microcosm", "glass drone")
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != p.ID {
		t.Errorf("found %s, want %s", got.ID, p.ID)
	}
	if _, err := store.FindPresetByName("ChromaConsole", "Glass Drone"); !errors.Is(err, ErrPresetNotFound) {
		t.Errorf("cross-type lookup = %v, want ErrPresetNotFound", err)
	}
}

func TestFileStoreAssignments(t *testing.T) {
	store := newTestStore(t)

	a := Assignment{ProfileType: "Microcosm", Slot: 45, PresetID: "p1", SyncedAt: time.Now().UTC()}
	if err := store.Assign(a); err != nil {
		t.Fatal(err)
	}
	if err := store.Assign(Assignment{ProfileType: "ChromaConsole", Slot: 3, PresetID: "p2"}); err != nil {
		t.Fatal(err)
	}

	got, err := store.Assignments("Microcosm")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[45].PresetID != "p1" {
		t.Errorf("assignments = %v", got)
	}

	// reassigning the same slot replaces
	a.PresetID = "p3"
	if err := store.Assign(a); err != nil {
		t.Fatal(err)
	}
	got, _ = store.Assignments("Microcosm")
	if got[45].PresetID != "p3" {
		t.Errorf("slot 45 = %q after reassign, want p3", got[45].PresetID)
	}

	if err := store.ClearSlot("Microcosm", 45); err != nil {
		t.Fatal(err)
	}
	got, _ = store.Assignments("Microcosm")
	if len(got) != 0 {
		t.Errorf("assignments after clear = %v", got)
	}
	other, _ := store.Assignments("ChromaConsole")
	if len(other) != 1 {
		t.Error("clearing one profile's slot touched another profile")
	}
}

func chromaState(t *testing.T) pedal.ParamState {
	t.Helper()
	p, ok := pedal.Builtin().Lookup("ChromaConsole")
	if !ok {
		t.Fatal("no ChromaConsole profile")
	}
	return p.DefaultState()
}
