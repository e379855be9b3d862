package library

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

var ErrPresetNotFound = errors.New("library: preset not found")

// Assignment records which preset lives in which memory slot of a pedal.
type Assignment struct {
	ProfileType string    `json:"profileType"`
	Slot        uint8     `json:"slot"`
	PresetID    string    `json:"presetId"`
	SyncedAt    time.Time `json:"syncedAt"`
}

// Store persists presets and slot assignments.
type Store interface {
	SavePreset(p *Preset) error
	FindPreset(id string) (*Preset, error)
	FindPresetByName(profileType, name string) (*Preset, error)
	ListPresets(f Filter) ([]*Preset, error)
	DeletePreset(id string) error

	Assignments(profileType string) (map[uint8]Assignment, error)
	Assign(a Assignment) error
	ClearSlot(profileType string, slot uint8) error
}

// FileStore keeps the library on disk: one JSON file per preset under
// presets/, and every slot assignment in banks.json.
type FileStore struct {
	mu  sync.Mutex
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Join(dir, "presets"), 0755); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) presetPath(id string) string {
	return filepath.Join(s.dir, "presets", id+".json")
}

func (s *FileStore) banksPath() string {
	return filepath.Join(s.dir, "banks.json")
}

func (s *FileStore) SavePreset(p *Preset) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.UpdatedAt = time.Now().UTC()
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.presetPath(p.ID), data, 0644)
}

func (s *FileStore) FindPreset(id string) (*Preset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readPreset(id)
}

func (s *FileStore) readPreset(id string) (*Preset, error) {
	data, err := os.ReadFile(s.presetPath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrPresetNotFound
		}
		return nil, err
	}
	var p Preset
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("preset %s: %w", id, err)
	}
	return &p, nil
}

func (s *FileStore) FindPresetByName(profileType, name string) (*Preset, error) {
	presets, err := s.ListPresets(Filter{ProfileType: profileType})
	if err != nil {
		return nil, err
	}
	for _, p := range presets {
		if strings.EqualFold(p.Name, name) {
			return p, nil
		}
	}
	return nil, ErrPresetNotFound
}

func (s *FileStore) ListPresets(f Filter) ([]*Preset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(filepath.Join(s.dir, "presets"))
	if err != nil {
		return nil, err
	}
	var out []*Preset
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		p, err := s.readPreset(strings.TrimSuffix(name, ".json"))
		if err != nil {
			return nil, err
		}
		if f.matches(p) {
			out = append(out, p)
		}
	}
	sortPresets(out)
	return out, nil
}

func (s *FileStore) DeletePreset(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.presetPath(id))
	if os.IsNotExist(err) {
		return ErrPresetNotFound
	}
	return err
}

func (s *FileStore) Assignments(profileType string) (map[uint8]Assignment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.readAssignments()
	if err != nil {
		return nil, err
	}
	out := make(map[uint8]Assignment)
	for _, a := range all {
		if a.ProfileType == profileType {
			out[a.Slot] = a
		}
	}
	return out, nil
}

func (s *FileStore) Assign(a Assignment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.readAssignments()
	if err != nil {
		return err
	}
	replaced := false
	for i := range all {
		if all[i].ProfileType == a.ProfileType && all[i].Slot == a.Slot {
			all[i] = a
			replaced = true
			break
		}
	}
	if !replaced {
		all = append(all, a)
	}
	return s.writeAssignments(all)
}

func (s *FileStore) ClearSlot(profileType string, slot uint8) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.readAssignments()
	if err != nil {
		return err
	}
	kept := all[:0]
	for _, a := range all {
		if a.ProfileType == profileType && a.Slot == slot {
			continue
		}
		kept = append(kept, a)
	}
	return s.writeAssignments(kept)
}

func (s *FileStore) readAssignments() ([]Assignment, error) {
	data, err := os.ReadFile(s.banksPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var all []Assignment
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, fmt.Errorf("banks.json: %w", err)
	}
	return all, nil
}

func (s *FileStore) writeAssignments(all []Assignment) error {
	data, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.banksPath(), data, 0644)
}

// MemoryStore is an in-memory Store, mostly for tests.
type MemoryStore struct {
	mu          sync.Mutex
	presets     map[string]*Preset
	assignments map[string]map[uint8]Assignment
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		presets:     make(map[string]*Preset),
		assignments: make(map[string]map[uint8]Assignment),
	}
}

func (s *MemoryStore) SavePreset(p *Preset) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.UpdatedAt = time.Now().UTC()
	s.presets[p.ID] = p.clone()
	return nil
}

func (s *MemoryStore) FindPreset(id string) (*Preset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.presets[id]
	if !ok {
		return nil, ErrPresetNotFound
	}
	return p.clone(), nil
}

func (s *MemoryStore) FindPresetByName(profileType, name string) (*Preset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.presets {
		if p.ProfileType == profileType && strings.EqualFold(p.Name, name) {
			return p.clone(), nil
		}
	}
	return nil, ErrPresetNotFound
}

func (s *MemoryStore) ListPresets(f Filter) ([]*Preset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*Preset
	for _, p := range s.presets {
		if f.matches(p) {
			out = append(out, p.clone())
		}
	}
	sortPresets(out)
	return out, nil
}

func (s *MemoryStore) DeletePreset(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.presets[id]; !ok {
		return ErrPresetNotFound
	}
	delete(s.presets, id)
	return nil
}

func (s *MemoryStore) Assignments(profileType string) (map[uint8]Assignment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[uint8]Assignment, len(s.assignments[profileType]))
	for slot, a := range s.assignments[profileType] {
		out[slot] = a
	}
	return out, nil
}

func (s *MemoryStore) Assign(a Assignment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.assignments[a.ProfileType]
	if !ok {
		m = make(map[uint8]Assignment)
		s.assignments[a.ProfileType] = m
	}
	m[a.Slot] = a
	return nil
}

func (s *MemoryStore) ClearSlot(profileType string, slot uint8) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.assignments[profileType], slot)
	return nil
}
