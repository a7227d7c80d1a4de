package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SpeciesTemplate holds static data for a creature type loaded from YAML.
type SpeciesTemplate struct {
	SpeciesID string  `yaml:"species_id"`
	Name      string  `yaml:"name"`
	Role      string  `yaml:"role"` // "prey" or "predator"
	Threat    int     `yaml:"threat"`
	HP        int32   `yaml:"hp"`
	MoveSpeed float64 `yaml:"move_speed"` // world units per second
	AssetID   string  `yaml:"asset_id"`

	// Per-tile spawn rules. Chance is a per-tile roll in [0,1]; Cap is the
	// global ceiling on simultaneously alive instances (0 = uncapped).
	MinCount int     `yaml:"min_count"`
	MaxCount int     `yaml:"max_count"`
	Chance   float64 `yaml:"chance"`
	Cap      int     `yaml:"cap"`
}

type speciesListFile struct {
	Species []SpeciesTemplate `yaml:"species"`
}

// SpeciesTable holds all creature templates indexed by SpeciesID.
type SpeciesTable struct {
	templates map[string]*SpeciesTemplate
	order     []string
}

// LoadSpeciesTable loads creature templates from a YAML file.
func LoadSpeciesTable(path string) (*SpeciesTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read species_list: %w", err)
	}
	var f speciesListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse species_list: %w", err)
	}
	return NewSpeciesTable(f.Species), nil
}

// NewSpeciesTable builds a table from templates already in memory.
func NewSpeciesTable(templates []SpeciesTemplate) *SpeciesTable {
	t := &SpeciesTable{
		templates: make(map[string]*SpeciesTemplate, len(templates)),
		order:     make([]string, 0, len(templates)),
	}
	for i := range templates {
		sp := &templates[i]
		if _, dup := t.templates[sp.SpeciesID]; !dup {
			t.order = append(t.order, sp.SpeciesID)
		}
		t.templates[sp.SpeciesID] = sp
	}
	return t
}

// Get returns a species template by ID, or nil if not found.
func (t *SpeciesTable) Get(speciesID string) *SpeciesTemplate {
	return t.templates[speciesID]
}

// Each visits templates in file order.
func (t *SpeciesTable) Each(fn func(*SpeciesTemplate)) {
	for _, id := range t.order {
		fn(t.templates[id])
	}
}

// Count returns the number of loaded templates.
func (t *SpeciesTable) Count() int {
	return len(t.templates)
}
