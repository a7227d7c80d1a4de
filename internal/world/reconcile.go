package world

import (
	"time"

	"go.uber.org/zap"

	"github.com/huntfield/server/internal/entity"
	"github.com/huntfield/server/internal/physics"
	"github.com/huntfield/server/internal/scene"
)

// Reconciler runs the per-tick create/prune/relocate cycle: it diffs the
// desired coordinate set against the registry, creates missing tiles through
// the factory, and tears down tiles that left the window, relocating their
// persistent entities into survivors.
//
// Single-threaded by contract: one call site per tick, no other system
// mutates tile membership.
type Reconciler struct {
	tileSize  float64
	window    Window
	registry  *Registry
	factory   *Factory
	relocator *Relocator
	scene     *scene.Graph
	physics   *physics.World
	entities  *entity.Manager
	player    func() *PlayerInfo
	log       *zap.Logger
}

func NewReconciler(
	tileSize float64,
	window Window,
	registry *Registry,
	factory *Factory,
	relocator *Relocator,
	sceneGraph *scene.Graph,
	physicsWorld *physics.World,
	entities *entity.Manager,
	player func() *PlayerInfo,
	log *zap.Logger,
) *Reconciler {
	return &Reconciler{
		tileSize:  tileSize,
		window:    window,
		registry:  registry,
		factory:   factory,
		relocator: relocator,
		scene:     sceneGraph,
		physics:   physicsWorld,
		entities:  entities,
		player:    player,
		log:       log,
	}
}

// Registry exposes the tile registry for read-only consumers (observer).
func (r *Reconciler) Registry() *Registry {
	return r.registry
}

// Update runs one full reconciliation pass. Creation of newly desired tiles
// happens before removal of stale ones, and the surviving set is committed
// to the registry before any relocation target is chosen.
func (r *Reconciler) Update(_ time.Duration) {
	desired := DesiredSet(r.player(), r.tileSize, r.window)
	if len(desired) == 0 {
		// No player reference: degraded mode. Never prune on an empty set.
		return
	}

	// Phase 1: create what is missing.
	for c := range desired {
		r.EnsureTileExists(c)
	}

	// Phase 2: pull stale tiles out of the registry first. After this loop
	// the registry holds exactly the surviving set, so relocation targets
	// can never be drawn from a tile that is itself being removed.
	var removed []*Tile
	for _, t := range r.registry.All() {
		if _, ok := desired[t.Coord]; !ok {
			if rt := r.registry.RemoveAndReturn(t.Coord); rt != nil {
				removed = append(removed, rt)
			}
		}
	}

	// Phase 3: tear down the removed tiles against the finalized keep set.
	if len(removed) > 0 {
		keep := r.registry.All()
		for _, t := range removed {
			r.disposeTile(t, keep)
		}
	}

	// Phase 4: pre-roll descriptors one tile past the window's edge so the
	// next pass materializes cheaply when the player advances or turns.
	ahead := ExpandSet(desired)
	r.factory.Descriptors().Prune(ahead)
	for c := range ahead {
		if !r.registry.Exists(c) {
			r.factory.Prepare(c)
		}
	}
}

// EnsureTileExists creates and registers a tile for the coordinate. No
// mutation when the coordinate is already active.
func (r *Reconciler) EnsureTileExists(c TileCoord) {
	if r.registry.Exists(c) {
		return
	}
	r.registry.Insert(r.factory.CreateTile(c))
}

// disposeTile releases one tile's visual and physics resources and settles
// the fate of its living entities: transient pickups are destroyed,
// persistent creatures are relocated into the keep set (or destroyed when no
// tile survives). A failure inside one tile or one entity never stops the
// rest of the pass.
func (r *Reconciler) disposeTile(t *Tile, keep []*Tile) {
	func() {
		defer func() {
			if p := recover(); p != nil {
				r.log.Error("tile resource disposal failed",
					zap.Int("tile_x", t.Coord.X),
					zap.Int("tile_z", t.Coord.Z),
					zap.Any("panic", p))
			}
		}()
		for _, v := range t.Visuals {
			r.disposeVisual(v)
		}
		for _, b := range t.Bodies {
			r.disposeBody(b)
		}
	}()

	for _, e := range t.Entities {
		r.settleEntity(e, keep)
	}
	t.Visuals, t.Bodies, t.Entities = nil, nil, nil
}

// disposeVisual runs the object's own teardown closure when it has one,
// otherwise removes it from the scene graph directly. Already-removed
// objects are tolerated.
func (r *Reconciler) disposeVisual(v *scene.Object) {
	defer func() {
		if p := recover(); p != nil {
			r.log.Warn("visual disposal panicked", zap.Int64("object", v.ID), zap.Any("panic", p))
		}
	}()
	if v.Disposer != nil {
		v.Disposer()
		return
	}
	if err := r.scene.Remove(v); err != nil {
		// Double removal during teardown is expected.
		r.log.Debug("visual already removed", zap.Int64("object", v.ID))
	}
}

// disposeBody removes a physics handle, tolerating bodies the world no
// longer holds (the engine throws on double removal).
func (r *Reconciler) disposeBody(b *physics.Body) {
	var err error
	switch b.Kind {
	case physics.KindStatic:
		err = r.physics.RemoveCollisionObject(b)
	default:
		err = r.physics.RemoveRigidBody(b)
	}
	if err != nil {
		r.log.Debug("body already removed", zap.Int64("body", b.ID))
	}
}

// settleEntity relocates a persistent entity or destroys a transient one.
// Isolated per entity so one bad relocation cannot leak the rest.
func (r *Reconciler) settleEntity(e *entity.Entity, keep []*Tile) {
	defer func() {
		if p := recover(); p != nil {
			r.log.Error("entity settlement failed", zap.Int64("id", e.ID), zap.Any("panic", p))
		}
	}()

	if e.Kind.Persistent() && len(keep) > 0 {
		r.relocator.Relocate(e, keep)
		return
	}

	// Pickups, and creatures with nowhere left to go, leave the world
	// entirely: component cleanup plus entity-manager removal.
	r.entities.RemoveNow(e)
}
