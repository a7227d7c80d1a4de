package data

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// PickupTemplate holds static data for one item pickup type.
// Kind "ammo" pickups are the guaranteed low-value per-tile drop; kind
// "weapon" pickups compete in a single tiered rarity roll per tile.
type PickupTemplate struct {
	PickupID string  `yaml:"pickup_id"`
	Name     string  `yaml:"name"`
	Kind     string  `yaml:"kind"` // "ammo" or "weapon"
	AssetID  string  `yaml:"asset_id"`
	Value    int     `yaml:"value"`  // relative worth, orders the rarity test
	Chance   float64 `yaml:"chance"` // rarity weight in [0,1]
}

type pickupListFile struct {
	Pickups []PickupTemplate `yaml:"pickups"`
}

// PickupTable holds pickup templates split into the guaranteed ammo drop and
// the weapon rarity ladder (sorted by descending value).
type PickupTable struct {
	ammo    []PickupTemplate
	weapons []PickupTemplate
}

// LoadPickupTable loads pickup templates from a YAML file.
func LoadPickupTable(path string) (*PickupTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pickup_list: %w", err)
	}
	var f pickupListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse pickup_list: %w", err)
	}
	return NewPickupTable(f.Pickups), nil
}

// NewPickupTable builds a table from templates already in memory.
func NewPickupTable(templates []PickupTemplate) *PickupTable {
	t := &PickupTable{}
	for _, p := range templates {
		switch p.Kind {
		case "ammo":
			t.ammo = append(t.ammo, p)
		case "weapon":
			t.weapons = append(t.weapons, p)
		}
	}
	// Rarity test runs highest-value first so a single draw lands on the
	// rarest tier it clears.
	sort.SliceStable(t.weapons, func(i, j int) bool {
		return t.weapons[i].Value > t.weapons[j].Value
	})
	return t
}

// Ammo returns the guaranteed low-value pickup template, or nil if none
// is defined.
func (t *PickupTable) Ammo() *PickupTemplate {
	if len(t.ammo) == 0 {
		return nil
	}
	return &t.ammo[0]
}

// RollWeapon tests one uniform draw against cumulative rarity thresholds in
// descending order of value. At most one weapon pickup results per tile;
// nil means the draw cleared no tier.
func (t *PickupTable) RollWeapon(roll float64) *PickupTemplate {
	acc := 0.0
	for i := range t.weapons {
		acc += t.weapons[i].Chance
		if roll < acc {
			return &t.weapons[i]
		}
	}
	return nil
}

// Count returns the total number of loaded pickup templates.
func (t *PickupTable) Count() int {
	return len(t.ammo) + len(t.weapons)
}
