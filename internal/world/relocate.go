package world

import (
	"math/rand"

	"go.uber.org/zap"

	"github.com/huntfield/server/internal/entity"
)

// Relocator moves a still-living persistent entity into a surviving tile
// instead of destroying and respawning it. Identity, components, health, and
// accumulated AI state are untouched; only spatial placement and navigation
// are reset.
type Relocator struct {
	tileSize   float64
	edgeMargin float64
	rng        *rand.Rand
	log        *zap.Logger
}

func NewRelocator(tileSize, edgeMargin float64, rng *rand.Rand, log *zap.Logger) *Relocator {
	return &Relocator{
		tileSize:   tileSize,
		edgeMargin: edgeMargin,
		rng:        rng,
		log:        log,
	}
}

// Relocate transfers entity ownership from a pruned tile to a uniformly
// random member of the surviving set. The target is random rather than
// nearest so displaced entities do not all cluster onto one tile. keep must
// be non-empty and already committed to the registry.
func (r *Relocator) Relocate(e *entity.Entity, keep []*Tile) {
	target := keep[r.rng.Intn(len(keep))]
	x, z := randomPoint(target.Coord, r.tileSize, r.edgeMargin, r.rng)

	// Direct transform write, bypassing path-following and velocity. The
	// collider-sync hook fires inside SetPosition so the trigger volume
	// matches the visual this same tick.
	e.SetPosition(x, e.Y, z)

	// A path computed relative to the old tile must not be walked into
	// empty space.
	e.ClearNavigation()

	target.AttachEntity(e)

	r.log.Debug("relocated entity",
		zap.Int64("id", e.ID),
		zap.String("species", e.Species),
		zap.Int("tile_x", target.Coord.X),
		zap.Int("tile_z", target.Coord.Z))
}
