package world

import (
	"testing"

	"github.com/huntfield/server/internal/data"
	"github.com/huntfield/server/internal/entity"
	"github.com/huntfield/server/internal/scene"
)

func TestUpdateMaterializesWindow(t *testing.T) {
	f := newFixture(t, rabbitSpecies(), ammoPickups(), standardAssets())

	f.rec.Update(0)

	desired := DesiredSet(f.player, testTileSize, f.window)
	if f.registry.Count() != len(desired) {
		t.Fatalf("registry holds %d tiles, want %d", f.registry.Count(), len(desired))
	}
	for _, tile := range f.registry.All() {
		if _, ok := desired[tile.Coord]; !ok {
			t.Errorf("tile %v is active but not desired", tile.Coord)
		}
	}

	// One rabbit and one ammo box per tile.
	if got := f.countKind(entity.KindPrey); got != len(desired) {
		t.Errorf("prey count = %d, want %d", got, len(desired))
	}
	if got := f.countKind(entity.KindPickup); got != len(desired) {
		t.Errorf("pickup count = %d, want %d", got, len(desired))
	}

	// Descriptors are rolled exactly one ring past the window's edge, never
	// for coordinates that already carry a tile.
	ahead := ExpandSet(desired)
	if want := len(ahead) - len(desired); f.factory.Descriptors().Len() != want {
		t.Errorf("prepared descriptors = %d, want %d", f.factory.Descriptors().Len(), want)
	}
}

func TestUpdateStableWithinTile(t *testing.T) {
	f := newFixture(t, rabbitSpecies(), ammoPickups(), standardAssets())
	f.rec.Update(0)

	tiles := f.registry.Count()
	count := f.entities.Count()
	positions := make(map[int64][2]float64, count)
	f.entities.Each(func(e *entity.Entity) {
		positions[e.ID] = [2]float64{e.X, e.Z}
	})

	// Movement inside the center tile must not touch a single tile or entity.
	f.player.X, f.player.Z = 5, -12
	f.rec.Update(0)

	if f.registry.Count() != tiles {
		t.Fatalf("tile count changed: %d -> %d", tiles, f.registry.Count())
	}
	if f.entities.Count() != count {
		t.Fatalf("entity count changed: %d -> %d", count, f.entities.Count())
	}
	f.entities.Each(func(e *entity.Entity) {
		pos, ok := positions[e.ID]
		if !ok {
			t.Errorf("entity %d appeared out of nowhere", e.ID)
			return
		}
		if pos != [2]float64{e.X, e.Z} {
			t.Errorf("entity %d moved: %v -> (%v,%v)", e.ID, pos, e.X, e.Z)
		}
	})
}

func TestUpdateRelocatesPersistentEntities(t *testing.T) {
	f := newFixture(t, rabbitSpecies(), ammoPickups(), standardAssets())
	f.rec.Update(0)

	oldTiles := f.registry.Count()

	// Wound one rabbit so relocation provably carries live state across.
	var wounded *entity.Entity
	f.entities.Each(func(e *entity.Entity) {
		if wounded == nil && e.Kind == entity.KindPrey {
			wounded = e
		}
	})
	if wounded == nil {
		t.Fatal("no prey spawned")
	}
	wounded.HP = 3

	// Far teleport: the new window shares no tile with the old one.
	f.player.X, f.player.Z = 1000, 0
	f.rec.Update(0)

	desired := DesiredSet(f.player, testTileSize, f.window)
	if f.registry.Count() != len(desired) {
		t.Fatalf("registry holds %d tiles, want %d", f.registry.Count(), len(desired))
	}

	// Every old rabbit relocated, every new tile spawned one: double the prey.
	if got := f.countKind(entity.KindPrey); got != 2*oldTiles {
		t.Errorf("prey count = %d, want %d", got, 2*oldTiles)
	}
	// Pickups are transient: the old window's are gone for good.
	if got := f.countKind(entity.KindPickup); got != oldTiles {
		t.Errorf("pickup count = %d, want %d", got, oldTiles)
	}

	if !f.entities.Contains(wounded.ID) {
		t.Fatal("wounded rabbit destroyed instead of relocated")
	}
	if wounded.HP != 3 {
		t.Errorf("wounded rabbit HP = %d, want 3", wounded.HP)
	}
	if c := WorldToTile(wounded.X, wounded.Z, testTileSize); !f.registry.Exists(c) {
		t.Errorf("wounded rabbit sits on inactive tile %v", c)
	}
}

func TestUpdateEntityOwnershipIsExclusive(t *testing.T) {
	f := newFixture(t, rabbitSpecies(), ammoPickups(), standardAssets())
	f.rec.Update(0)
	f.player.X = 1000
	f.rec.Update(0)
	f.player.Z = -1000
	f.rec.Update(0)

	// After relocation churn every registered entity belongs to exactly one
	// tile, and every tile-owned entity is registered.
	owned := make(map[int64]int)
	for _, tile := range f.registry.All() {
		for _, e := range tile.Entities {
			owned[e.ID]++
		}
	}
	f.entities.Each(func(e *entity.Entity) {
		if owned[e.ID] != 1 {
			t.Errorf("entity %d owned by %d tiles, want 1", e.ID, owned[e.ID])
		}
	})
	for id, n := range owned {
		if !f.entities.Contains(id) {
			t.Errorf("tile-owned entity %d not registered", id)
		}
		if n != 1 {
			t.Errorf("entity %d owned by %d tiles", id, n)
		}
	}
	if len(owned) != f.entities.Count() {
		t.Errorf("tiles own %d entities, manager holds %d", len(owned), f.entities.Count())
	}
}

func TestUpdateReleasesPrunedTileResources(t *testing.T) {
	f := newFixture(t, rabbitSpecies(), ammoPickups(), standardAssets())
	f.rec.Update(0)

	type handles struct {
		visuals []int64
		bodies  []int64
	}
	old := make(map[TileCoord]handles)
	for _, tile := range f.registry.All() {
		h := handles{}
		for _, v := range tile.Visuals {
			h.visuals = append(h.visuals, v.ID)
		}
		for _, b := range tile.Bodies {
			h.bodies = append(h.bodies, b.ID)
		}
		old[tile.Coord] = h
	}

	f.player.X = 1000
	f.rec.Update(0)

	for c, h := range old {
		if f.registry.Exists(c) {
			continue // survived; window edges are not part of this test
		}
		for _, id := range h.visuals {
			if f.graph.Contains(id) {
				t.Errorf("tile %v visual %d still in scene graph", c, id)
			}
		}
		for _, id := range h.bodies {
			if f.phys.Contains(id) {
				t.Errorf("tile %v body %d still in physics world", c, id)
			}
		}
	}
}

func TestUpdateNilPlayerNeverPrunes(t *testing.T) {
	f := newFixture(t, rabbitSpecies(), ammoPickups(), standardAssets())
	f.rec.Update(0)

	tiles := f.registry.Count()
	count := f.entities.Count()

	f.player = nil
	f.rec.Update(0)

	if f.registry.Count() != tiles {
		t.Fatalf("tile count changed with nil player: %d -> %d", tiles, f.registry.Count())
	}
	if f.entities.Count() != count {
		t.Fatalf("entity count changed with nil player: %d -> %d", count, f.entities.Count())
	}
}

func TestUpdateSurvivesDisposerPanic(t *testing.T) {
	f := newFixture(t, rabbitSpecies(), nil, standardAssets())
	f.rec.Update(0)

	// Hand-build a doomed tile whose visual teardown blows up.
	doomed := NewTile(TileCoord{50, 50})
	doomed.AttachVisual(&scene.Object{
		ID:       scene.NextObjectID(),
		Disposer: func() { panic("engine handle already freed") },
	})
	rabbit := f.spawner.SpawnCreature(&data.SpeciesTemplate{
		SpeciesID: "rabbit", Name: "Rabbit", Role: "prey", HP: 10, AssetID: "mdl_rabbit",
	}, 2000, 2000)
	if rabbit == nil {
		t.Fatal("spawn failed")
	}
	doomed.AttachEntity(rabbit)
	if !f.registry.Insert(doomed) {
		t.Fatal("insert failed")
	}

	f.rec.Update(0)

	if f.registry.Exists(TileCoord{50, 50}) {
		t.Fatal("doomed tile still registered")
	}
	// The panic stopped resource disposal, not entity settlement.
	if !f.entities.Contains(rabbit.ID) {
		t.Fatal("rabbit lost in panicked teardown")
	}
	if c := WorldToTile(rabbit.X, rabbit.Z, testTileSize); !f.registry.Exists(c) {
		t.Errorf("rabbit sits on inactive tile %v", c)
	}
}
