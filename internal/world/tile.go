package world

import (
	"math/rand"

	"github.com/huntfield/server/internal/entity"
	"github.com/huntfield/server/internal/physics"
	"github.com/huntfield/server/internal/scene"
)

// Tile is the unit of world content: a fixed-size square region owning its
// visual objects, static physics bodies, and living entities. Visuals and
// bodies are created together at tile creation and destroyed together at
// tile removal; partial states are never observable outside a single
// reconciliation pass.
type Tile struct {
	Coord    TileCoord
	Visuals  []*scene.Object
	Bodies   []*physics.Body
	Entities []*entity.Entity
}

func NewTile(c TileCoord) *Tile {
	return &Tile{Coord: c}
}

// AttachVisual records a visual handle for teardown at tile removal.
func (t *Tile) AttachVisual(o *scene.Object) {
	if o != nil {
		t.Visuals = append(t.Visuals, o)
	}
}

// AttachBody records a physics handle for teardown at tile removal.
func (t *Tile) AttachBody(b *physics.Body) {
	if b != nil {
		t.Bodies = append(t.Bodies, b)
	}
}

// AttachEntity takes ownership of a living entity.
func (t *Tile) AttachEntity(e *entity.Entity) {
	if e != nil {
		t.Entities = append(t.Entities, e)
	}
}

// CountEntities returns how many owned entities match the predicate.
func (t *Tile) CountEntities(pred func(*entity.Entity) bool) int {
	n := 0
	for _, e := range t.Entities {
		if pred(e) {
			n++
		}
	}
	return n
}

// randomPoint returns a uniformly random world position inside the tile's
// footprint, keeping an edge margin clear so spawns never straddle a seam.
func randomPoint(c TileCoord, tileSize, margin float64, rng *rand.Rand) (x, z float64) {
	half := tileSize/2 - margin
	if half < 0 {
		half = 0
	}
	cx, _, cz := TileCenter(c, tileSize)
	x = cx + (rng.Float64()*2-1)*half
	z = cz + (rng.Float64()*2-1)*half
	return x, z
}
