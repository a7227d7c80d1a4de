package world

import (
	"github.com/huntfield/server/internal/data"
	"github.com/huntfield/server/internal/entity"
	"github.com/huntfield/server/internal/physics"
	"github.com/huntfield/server/internal/scene"
)

// Spawner is the set of spawn-factory collaborators consumed by the tile
// factory. A nil return is a normal, non-error outcome meaning the required
// asset is unavailable and the spawn is simply omitted (decoration instead
// degrades to a procedural fallback and never returns nil).
type Spawner interface {
	// SpawnGround materializes the tile's displaced terrain mesh and its
	// static footprint collider. halfExtent already includes the seam
	// overlap into adjacent tiles.
	SpawnGround(cx, cz, halfExtent float64, heights []float64) (*scene.Object, *physics.Body)

	// SpawnDecoration places one tree/bush/rock at a world position. The
	// returned body is nil for non-collidable decoration.
	SpawnDecoration(tmpl *data.DecorTemplate, x, z, scale float64) (*scene.Object, *physics.Body)

	// SpawnCreature builds a living prey/predator entity, registers it with
	// the global entity manager, and returns it. Nil when the species asset
	// is unavailable.
	SpawnCreature(tmpl *data.SpeciesTemplate, x, z float64) *entity.Entity

	// SpawnPickup builds a collectible entity, registers it with the global
	// entity manager, and returns it. Nil when the asset is unavailable.
	SpawnPickup(tmpl *data.PickupTemplate, x, z float64) *entity.Entity
}
