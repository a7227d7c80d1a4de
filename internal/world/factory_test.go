package world

import (
	"testing"

	"github.com/huntfield/server/internal/data"
	"github.com/huntfield/server/internal/entity"
)

func TestCreateTileEnforcesPredatorCap(t *testing.T) {
	species := []data.SpeciesTemplate{{
		SpeciesID: "tiger",
		Name:      "Tiger",
		Role:      "predator",
		HP:        120,
		AssetID:   "mdl_tiger",
		MinCount:  1,
		MaxCount:  1,
		Chance:    1, // every tile rolls a tiger
		Cap:       2,
	}}
	f := newFixture(t, species, nil, standardAssets())

	for _, c := range []TileCoord{{0, 0}, {1, 0}, {2, 0}, {3, 0}} {
		f.registry.Insert(f.factory.CreateTile(c))
	}

	if got := f.registry.CountSpecies("tiger"); got != 2 {
		t.Fatalf("alive tigers = %d, want cap of 2", got)
	}
	if got := f.countKind(entity.KindPredator); got != 2 {
		t.Fatalf("registered predators = %d, want 2", got)
	}
}

func TestCreateTileSkipsCreatureWithoutAsset(t *testing.T) {
	species := []data.SpeciesTemplate{{
		SpeciesID: "ghost",
		Name:      "Ghost",
		Role:      "prey",
		AssetID:   "mdl_missing",
		MinCount:  1,
		MaxCount:  1,
		Chance:    1,
	}}
	f := newFixture(t, species, nil, nil)

	tile := f.factory.CreateTile(TileCoord{0, 0})

	if n := len(tile.Entities); n != 0 {
		t.Fatalf("tile holds %d entities, want 0", n)
	}
	if n := f.entities.Count(); n != 0 {
		t.Fatalf("manager holds %d entities, want 0", n)
	}
	// Ground is still built; a skipped spawn never aborts the tile.
	if len(tile.Visuals) == 0 {
		t.Fatal("tile has no ground visual")
	}
}

func TestCreateTileConsumesPreparedDescriptor(t *testing.T) {
	f := newFixture(t, nil, nil, nil)
	c := TileCoord{5, -5}

	f.factory.Prepare(c)
	if !f.factory.Descriptors().Has(c) {
		t.Fatal("Prepare left no descriptor")
	}

	f.factory.CreateTile(c)
	if f.factory.Descriptors().Has(c) {
		t.Fatal("descriptor survived materialization")
	}
}

func TestCreateTilePickups(t *testing.T) {
	pickups := append(ammoPickups(),
		data.PickupTemplate{PickupID: "hunting_rifle", Kind: "weapon", AssetID: "mdl_rifle", Value: 50, Chance: 0.02},
		data.PickupTemplate{PickupID: "shotgun", Kind: "weapon", AssetID: "mdl_shotgun", Value: 25, Chance: 0.05},
		data.PickupTemplate{PickupID: "revolver", Kind: "weapon", AssetID: "mdl_revolver", Value: 10, Chance: 0.12},
	)
	f := newFixture(t, nil, pickups, standardAssets())

	// One uniform draw per tile, tested against cumulative rarity thresholds
	// from the most valuable weapon down.
	cases := []struct {
		roll float64
		want string // weapon pickup id, "" = no weapon
	}{
		{0.01, "hunting_rifle"},
		{0.04, "shotgun"},
		{0.10, "revolver"},
		{0.50, ""},
	}
	for i, tc := range cases {
		c := TileCoord{i, 100}
		f.factory.Descriptors().Put(&TileDescriptor{Coord: c, WeaponRoll: tc.roll})
		tile := f.factory.CreateTile(c)

		var ammo bool
		var weapon string
		for _, e := range tile.Entities {
			if e.Kind != entity.KindPickup {
				continue
			}
			if e.Species == "ammo_box" {
				ammo = true
			} else {
				weapon = e.Species
			}
		}
		if !ammo {
			t.Errorf("roll %v: guaranteed ammo pickup missing", tc.roll)
		}
		if weapon != tc.want {
			t.Errorf("roll %v: weapon = %q, want %q", tc.roll, weapon, tc.want)
		}
	}
}

func TestEnsureTileExistsIdempotent(t *testing.T) {
	f := newFixture(t, rabbitSpecies(), nil, standardAssets())
	c := TileCoord{0, 0}

	f.rec.EnsureTileExists(c)
	tile := f.registry.Get(c)
	count := f.entities.Count()

	f.rec.EnsureTileExists(c)

	if f.registry.Count() != 1 {
		t.Fatalf("registry holds %d tiles, want 1", f.registry.Count())
	}
	if f.registry.Get(c) != tile {
		t.Fatal("second call replaced the tile")
	}
	if f.entities.Count() != count {
		t.Fatalf("second call changed entity count: %d -> %d", count, f.entities.Count())
	}
}
