package library

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"pedal-librarian/pedal"
)

// Preset is one saved parameter snapshot for a specific pedal type.
// Presets only ever apply to the pedal type they were captured from.
type Preset struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	ProfileType string           `json:"profileType"`
	Description string           `json:"description,omitempty"`
	Parameters  pedal.ParamState `json:"parameters"`
	Tags        []string         `json:"tags,omitempty"`
	Favorite    bool             `json:"favorite,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// NewPreset captures a state under a fresh id. The state is copied.
func NewPreset(name, profileType string, params pedal.ParamState) *Preset {
	now := time.Now().UTC()
	return &Preset{
		ID:          uuid.NewString(),
		Name:        name,
		ProfileType: profileType,
		Parameters:  params.Clone(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (p *Preset) clone() *Preset {
	c := *p
	c.Parameters = p.Parameters.Clone()
	c.Tags = append([]string(nil), p.Tags...)
	return &c
}

// HasTag reports whether the preset carries the tag, case-insensitively.
func (p *Preset) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// Filter narrows a preset listing. Zero fields match everything.
type Filter struct {
	ProfileType string
	Tags        []string // all must be present
	Favorite    *bool
	Query       string // substring of name or description, case-insensitive
}

func (f Filter) matches(p *Preset) bool {
	if f.ProfileType != "" && p.ProfileType != f.ProfileType {
		return false
	}
	for _, tag := range f.Tags {
		if !p.HasTag(tag) {
			return false
		}
	}
	if f.Favorite != nil && p.Favorite != *f.Favorite {
		return false
	}
	if f.Query != "" {
		q := strings.ToLower(f.Query)
		if !strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.Description), q) {
			return false
		}
	}
	return true
}

func sortPresets(presets []*Preset) {
	sort.Slice(presets, func(i, j int) bool {
		if presets[i].Name != presets[j].Name {
			return presets[i].Name < presets[j].Name
		}
		return presets[i].ID < presets[j].ID
	})
}
