package world

import (
	"math/rand"
	"testing"

	"go.uber.org/zap"

	"github.com/huntfield/server/internal/data"
	"github.com/huntfield/server/internal/entity"
	"github.com/huntfield/server/internal/physics"
	"github.com/huntfield/server/internal/scene"
	"github.com/huntfield/server/internal/spawn"
)

const testTileSize = 40.0

// fixture wires a full streaming stack against real collaborators: entity
// manager, scene graph, physics world, and the concrete spawn factories.
type fixture struct {
	entities *entity.Manager
	graph    *scene.Graph
	phys     *physics.World
	registry *Registry
	factory  *Factory
	spawner  *spawn.Factories
	rec      *Reconciler
	window   Window
	player   *PlayerInfo
}

func newFixture(t *testing.T, species []data.SpeciesTemplate, pickups []data.PickupTemplate, assets []data.Asset) *fixture {
	t.Helper()

	log := zap.NewNop()
	rng := rand.New(rand.NewSource(1))

	f := &fixture{
		entities: entity.NewManager(),
		graph:    scene.NewGraph(),
		phys:     physics.NewWorld(),
		registry: NewRegistry(),
		window:   Window{ForwardDepth: 4, BackDepth: 2, SideWidth: 2},
		player:   &PlayerInfo{Name: "test"},
	}

	f.spawner = spawn.NewFactories(f.entities, f.phys, f.graph, data.NewAssetTable(assets), nil, rng, log)
	f.factory = NewFactory(
		Params{TileSize: testTileSize, EdgeMargin: 4},
		data.NewSpeciesTable(species),
		data.NewDecorTable(nil),
		data.NewPickupTable(pickups),
		f.spawner,
		f.registry,
		rng,
		log,
	)
	relocator := NewRelocator(testTileSize, 4, rng, log)
	f.rec = NewReconciler(
		testTileSize, f.window, f.registry, f.factory, relocator,
		f.graph, f.phys, f.entities,
		func() *PlayerInfo { return f.player },
		log,
	)
	return f
}

func rabbitSpecies() []data.SpeciesTemplate {
	return []data.SpeciesTemplate{{
		SpeciesID: "rabbit",
		Name:      "Rabbit",
		Role:      "prey",
		HP:        10,
		MoveSpeed: 2.5,
		AssetID:   "mdl_rabbit",
		MinCount:  1,
		MaxCount:  1,
		Chance:    1,
	}}
}

func ammoPickups() []data.PickupTemplate {
	return []data.PickupTemplate{{
		PickupID: "ammo_box",
		Name:     "Ammo Box",
		Kind:     "ammo",
		AssetID:  "mdl_ammo_box",
		Value:    1,
		Chance:   1,
	}}
}

func standardAssets() []data.Asset {
	return []data.Asset{
		{AssetID: "mdl_rabbit", MeshPath: "assets/models/rabbit.glb"},
		{AssetID: "mdl_tiger", MeshPath: "assets/models/tiger.glb"},
		{AssetID: "mdl_ammo_box", MeshPath: "assets/models/ammo_box.glb"},
		{AssetID: "mdl_rifle", MeshPath: "assets/models/rifle.glb"},
		{AssetID: "mdl_shotgun", MeshPath: "assets/models/shotgun.glb"},
		{AssetID: "mdl_revolver", MeshPath: "assets/models/revolver.glb"},
	}
}

// countKind counts registered entities of a kind.
func (f *fixture) countKind(k entity.Kind) int {
	n := 0
	f.entities.Each(func(e *entity.Entity) {
		if e.Kind == k {
			n++
		}
	})
	return n
}
