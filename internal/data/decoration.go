package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DecorTemplate holds static data for one decoration type (tree, bush, rock).
// Collidable decoration (trees, rocks) gets a static physics body sized to
// its scaled footprint; bushes are visual only.
type DecorTemplate struct {
	DecorID   string  `yaml:"decor_id"`
	Name      string  `yaml:"name"`
	AssetID   string  `yaml:"asset_id"`
	Collider  bool    `yaml:"collider"`
	Footprint float64 `yaml:"footprint"` // collider half-extent at scale 1.0
	Height    float64 `yaml:"height"`
	ScaleMin  float64 `yaml:"scale_min"`
	ScaleMax  float64 `yaml:"scale_max"`
	Weight    int     `yaml:"weight"` // selection weight within a tile's decoration count
}

type decorListFile struct {
	Decorations []DecorTemplate `yaml:"decorations"`
}

// DecorTable holds all decoration templates.
type DecorTable struct {
	templates []DecorTemplate
	total     int
}

// LoadDecorTable loads decoration templates from a YAML file.
func LoadDecorTable(path string) (*DecorTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read decoration_list: %w", err)
	}
	var f decorListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse decoration_list: %w", err)
	}
	return NewDecorTable(f.Decorations), nil
}

// NewDecorTable builds a table from templates already in memory.
func NewDecorTable(templates []DecorTemplate) *DecorTable {
	t := &DecorTable{templates: templates}
	for i := range templates {
		w := templates[i].Weight
		if w <= 0 {
			w = 1
			t.templates[i].Weight = 1
		}
		t.total += w
	}
	return t
}

// Pick returns a weighted-random template given a uniform draw in [0,1),
// or nil when the table is empty.
func (t *DecorTable) Pick(roll float64) *DecorTemplate {
	if t.total == 0 {
		return nil
	}
	target := int(roll * float64(t.total))
	for i := range t.templates {
		target -= t.templates[i].Weight
		if target < 0 {
			return &t.templates[i]
		}
	}
	return &t.templates[len(t.templates)-1]
}

// Count returns the number of loaded templates.
func (t *DecorTable) Count() int {
	return len(t.templates)
}
