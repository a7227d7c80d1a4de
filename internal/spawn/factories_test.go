package spawn

import (
	"math/rand"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/huntfield/server/internal/data"
	"github.com/huntfield/server/internal/entity"
	"github.com/huntfield/server/internal/physics"
	"github.com/huntfield/server/internal/scene"
)

func newTestFactories(assets []data.Asset) (*Factories, *entity.Manager, *scene.Graph, *physics.World) {
	entities := entity.NewManager()
	graph := scene.NewGraph()
	world := physics.NewWorld()
	f := NewFactories(entities, world, graph, data.NewAssetTable(assets),
		nil, rand.New(rand.NewSource(1)), zap.NewNop())
	return f, entities, graph, world
}

func TestSpawnDecorationFallsBackToBox(t *testing.T) {
	f, _, graph, world := newTestFactories(nil)
	tmpl := &data.DecorTemplate{
		DecorID: "pine", Name: "Pine Tree", AssetID: "mdl_missing",
		Collider: true, Footprint: 0.5, Height: 9,
	}

	obj, body := f.SpawnDecoration(tmpl, 3, -7, 1.2)

	if obj == nil {
		t.Fatal("decoration skipped; it must degrade, not vanish")
	}
	if obj.Shape != scene.ShapeBox {
		t.Errorf("shape = %v, want procedural box", obj.Shape)
	}
	if obj.Disposer != nil {
		t.Error("procedural fallback must not carry an asset disposer")
	}
	if !graph.Contains(obj.ID) {
		t.Error("decoration not in scene graph")
	}
	if body == nil || !world.Contains(body.ID) {
		t.Error("collidable decoration has no collider body")
	}
}

func TestSpawnDecorationWithAsset(t *testing.T) {
	f, _, graph, _ := newTestFactories([]data.Asset{
		{AssetID: "mdl_bush", MeshPath: "assets/models/bush.glb"},
	})
	tmpl := &data.DecorTemplate{DecorID: "bush", Name: "Bush", AssetID: "mdl_bush"}

	obj, body := f.SpawnDecoration(tmpl, 0, 0, 1)

	if obj.Shape != scene.ShapeMesh || obj.MeshPath != "assets/models/bush.glb" {
		t.Errorf("obj = %+v", obj)
	}
	if body != nil {
		t.Error("non-collidable decoration got a body")
	}
	if obj.Disposer == nil {
		t.Fatal("asset-backed mesh has no disposer")
	}
	obj.Disposer()
	if graph.Contains(obj.ID) {
		t.Error("disposer left the object in the graph")
	}
	obj.Disposer() // second disposal must be tolerated
}

func TestSpawnCreatureRegistersComponents(t *testing.T) {
	f, entities, graph, world := newTestFactories([]data.Asset{
		{AssetID: "mdl_tiger", MeshPath: "assets/models/tiger.glb"},
	})
	tmpl := &data.SpeciesTemplate{
		SpeciesID: "tiger", Name: "Tiger", Role: "predator",
		HP: 120, MoveSpeed: 4.5, AssetID: "mdl_tiger",
	}

	e := f.SpawnCreature(tmpl, 10, 20)
	if e == nil {
		t.Fatal("spawn returned nil with asset present")
	}
	if e.Kind != entity.KindPredator {
		t.Errorf("kind = %v, want predator", e.Kind)
	}
	if e.HP != 120 || e.MaxHP != 120 {
		t.Errorf("hp = %d/%d", e.HP, e.MaxHP)
	}
	if !entities.Contains(e.ID) {
		t.Fatal("creature not registered")
	}
	if graph.Len() != 1 {
		t.Errorf("graph holds %d objects, want 1", graph.Len())
	}
	if world.Len() != 1 {
		t.Errorf("world holds %d bodies, want 1", world.Len())
	}

	// Teardown releases the visual and the trigger volume.
	entities.RemoveNow(e)
	if graph.Len() != 0 || world.Len() != 0 {
		t.Errorf("after cleanup: %d objects, %d bodies", graph.Len(), world.Len())
	}
}

func TestSpawnCreatureMissingAsset(t *testing.T) {
	f, entities, _, _ := newTestFactories(nil)

	e := f.SpawnCreature(&data.SpeciesTemplate{SpeciesID: "tiger", AssetID: "mdl_tiger"}, 0, 0)
	if e != nil {
		t.Fatal("spawn succeeded without an asset")
	}
	if entities.Count() != 0 {
		t.Fatal("manager registered a skipped spawn")
	}
}

func TestTriggerFollowsEntity(t *testing.T) {
	f, entities, _, world := newTestFactories([]data.Asset{
		{AssetID: "mdl_rabbit", MeshPath: "assets/models/rabbit.glb"},
	})
	e := f.SpawnCreature(&data.SpeciesTemplate{
		SpeciesID: "rabbit", Name: "Rabbit", Role: "prey", HP: 10, AssetID: "mdl_rabbit",
	}, 1, 1)

	var trigger *triggerComp
	for _, c := range e.Components() {
		if tc, ok := c.(*triggerComp); ok {
			trigger = tc
		}
	}
	if trigger == nil {
		t.Fatal("no trigger component attached")
	}

	// A teleport-style move syncs the volume immediately, not next tick.
	e.SetPosition(100, 0, -50)
	if trigger.body.X != 100 || trigger.body.Z != -50 {
		t.Errorf("trigger at (%v,%v), want (100,-50)", trigger.body.X, trigger.body.Z)
	}

	entities.RemoveNow(e)
	if world.Len() != 0 {
		t.Error("trigger body leaked after cleanup")
	}
}

func TestWanderClearPathRehomes(t *testing.T) {
	e := entity.New(entity.KindPrey, "rabbit", "Rabbit")
	e.X, e.Z = 5, 5
	comp := newWanderComp(e, nil, rand.New(rand.NewSource(1)), "prey", 0, 2.5)
	e.Attach(comp)

	// Force an active leg, then relocate far away.
	comp.moving = true
	comp.heading = 1
	comp.ticksLeft = 50

	e.X, e.Z = 500, 500
	comp.ClearPath()

	if comp.moving || comp.ticksLeft != 0 {
		t.Error("stale wander leg survived ClearPath")
	}
	if comp.homeX != 500 || comp.homeZ != 500 {
		t.Errorf("home = (%v,%v), want the relocated position", comp.homeX, comp.homeZ)
	}
}

func TestWanderMovesEntity(t *testing.T) {
	e := entity.New(entity.KindPrey, "deer", "Deer")
	comp := newWanderComp(e, nil, rand.New(rand.NewSource(2)), "prey", 1, 3.5)
	e.Attach(comp)

	// Walk enough ticks that the fallback picks at least one moving leg.
	for i := 0; i < 200; i++ {
		comp.Update(50 * time.Millisecond)
	}
	if e.X == 0 && e.Z == 0 {
		t.Error("entity never moved")
	}
}
