package spawn

import (
	"math"
	"math/rand"

	"go.uber.org/zap"

	"github.com/huntfield/server/internal/data"
	"github.com/huntfield/server/internal/entity"
	"github.com/huntfield/server/internal/physics"
	"github.com/huntfield/server/internal/scene"
	"github.com/huntfield/server/internal/scripting"
)

// Factories builds the concrete world content: terrain, decoration,
// creatures, and pickups. It owns none of its collaborators; every handle it
// creates is attached to a tile, whose teardown releases it.
type Factories struct {
	entities *entity.Manager
	physics  *physics.World
	graph    *scene.Graph
	assets   *data.AssetTable
	engine   *scripting.Engine // nil = scripted behavior disabled
	rng      *rand.Rand
	log      *zap.Logger
}

func NewFactories(
	entities *entity.Manager,
	physicsWorld *physics.World,
	graph *scene.Graph,
	assets *data.AssetTable,
	engine *scripting.Engine,
	rng *rand.Rand,
	log *zap.Logger,
) *Factories {
	return &Factories{
		entities: entities,
		physics:  physicsWorld,
		graph:    graph,
		assets:   assets,
		engine:   engine,
		rng:      rng,
		log:      log,
	}
}

// SpawnGround materializes one tile's displaced terrain mesh plus a static
// collider covering the (slightly overlapping) footprint.
func (f *Factories) SpawnGround(cx, cz, halfExtent float64, heights []float64) (*scene.Object, *physics.Body) {
	obj := f.graph.Add(&scene.Object{
		ID:      scene.NextObjectID(),
		Name:    "ground",
		Shape:   scene.ShapeTerrain,
		X:       cx,
		Z:       cz,
		Scale:   halfExtent * 2,
		Heights: heights,
	})

	body := f.physics.AddCollisionObject(&physics.Body{
		ID:   physics.NextBodyID(),
		Kind: physics.KindStatic,
		X:    cx,
		Y:    -0.5,
		Z:    cz,
		HX:   halfExtent,
		HY:   0.5,
		HZ:   halfExtent,
	})
	return obj, body
}

// SpawnDecoration places one decoration instance. When the asset is missing
// the model degrades to a procedural shape rather than being skipped; the
// collider (for trees and rocks) is sized to the scaled footprint either way.
func (f *Factories) SpawnDecoration(tmpl *data.DecorTemplate, x, z, scale float64) (*scene.Object, *physics.Body) {
	obj := &scene.Object{
		ID:    scene.NextObjectID(),
		Name:  tmpl.Name,
		X:     x,
		Z:     z,
		Scale: scale,
	}

	if asset := f.assets.Get(tmpl.AssetID); asset != nil {
		obj.Shape = scene.ShapeMesh
		obj.MeshPath = asset.MeshPath
		// Asset-backed meshes carry their own teardown closure.
		graph, self := f.graph, obj
		obj.Disposer = func() {
			if err := graph.Remove(self); err != nil {
				return
			}
		}
	} else {
		obj.Shape = scene.ShapeBox
	}
	f.graph.Add(obj)

	var body *physics.Body
	if tmpl.Collider {
		body = f.physics.AddCollisionObject(&physics.Body{
			ID:   physics.NextBodyID(),
			Kind: physics.KindStatic,
			X:    x,
			Y:    tmpl.Height * scale / 2,
			Z:    z,
			HX:   tmpl.Footprint * scale,
			HY:   tmpl.Height * scale / 2,
			HZ:   tmpl.Footprint * scale,
		})
	}
	return obj, body
}

// SpawnCreature builds a living prey or predator, registers it with the
// global entity manager, and returns it. Nil when the species asset is
// unavailable — a normal outcome that simply omits the spawn.
func (f *Factories) SpawnCreature(tmpl *data.SpeciesTemplate, x, z float64) *entity.Entity {
	asset := f.assets.Get(tmpl.AssetID)
	if asset == nil {
		f.log.Debug("creature asset unavailable", zap.String("species", tmpl.SpeciesID))
		return nil
	}

	kind := entity.KindPrey
	if tmpl.Role == "predator" {
		kind = entity.KindPredator
	}

	e := entity.New(kind, tmpl.SpeciesID, tmpl.Name)
	e.X, e.Z = x, z
	e.HP, e.MaxHP = tmpl.HP, tmpl.HP
	e.Yaw = f.rng.Float64() * 2 * math.Pi

	e.Attach(&visualComp{
		graph: f.graph,
		e:     e,
		obj: &scene.Object{
			ID:       scene.NextObjectID(),
			Name:     tmpl.Name,
			Shape:    scene.ShapeMesh,
			MeshPath: asset.MeshPath,
			X:        x,
			Z:        z,
			Scale:    1,
		},
	})
	e.Attach(&triggerComp{
		world: f.physics,
		e:     e,
		body: &physics.Body{
			ID:   physics.NextBodyID(),
			Kind: physics.KindTrigger,
			X:    x,
			Z:    z,
			HX:   0.6,
			HY:   0.9,
			HZ:   0.6,
		},
	})
	e.Attach(newWanderComp(e, f.engine, f.rng, tmpl.Role, tmpl.Threat, tmpl.MoveSpeed))

	f.entities.Add(e)
	return e
}

// SpawnPickup builds a collectible, registers it with the global entity
// manager, and returns it. Nil when the asset is unavailable.
func (f *Factories) SpawnPickup(tmpl *data.PickupTemplate, x, z float64) *entity.Entity {
	asset := f.assets.Get(tmpl.AssetID)
	if asset == nil {
		f.log.Debug("pickup asset unavailable", zap.String("pickup", tmpl.PickupID))
		return nil
	}

	e := entity.New(entity.KindPickup, tmpl.PickupID, tmpl.Name)
	e.X, e.Z = x, z

	e.Attach(&visualComp{
		graph: f.graph,
		e:     e,
		obj: &scene.Object{
			ID:       scene.NextObjectID(),
			Name:     tmpl.Name,
			Shape:    scene.ShapeMesh,
			MeshPath: asset.MeshPath,
			X:        x,
			Z:        z,
			Scale:    1,
		},
	})
	e.Attach(&triggerComp{
		world: f.physics,
		e:     e,
		body: &physics.Body{
			ID:   physics.NextBodyID(),
			Kind: physics.KindTrigger,
			X:    x,
			Y:    0.3,
			Z:    z,
			HX:   0.3,
			HY:   0.3,
			HZ:   0.3,
		},
	})

	f.entities.Add(e)
	return e
}
