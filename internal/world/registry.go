package world

import "github.com/huntfield/server/internal/entity"

// Registry is the authoritative collection of active tiles, keyed by
// coordinate. At most one tile exists per coordinate. Mutated only from the
// game loop goroutine, and only by the reconciler.
type Registry struct {
	tiles map[TileCoord]*Tile
}

func NewRegistry() *Registry {
	return &Registry{tiles: make(map[TileCoord]*Tile, 64)}
}

// Exists reports whether a tile is active at the coordinate.
func (r *Registry) Exists(c TileCoord) bool {
	_, ok := r.tiles[c]
	return ok
}

// Get returns the tile at the coordinate, or nil.
func (r *Registry) Get(c TileCoord) *Tile {
	return r.tiles[c]
}

// Insert adds a tile. Returns false without mutating when the coordinate is
// already occupied.
func (r *Registry) Insert(t *Tile) bool {
	if _, ok := r.tiles[t.Coord]; ok {
		return false
	}
	r.tiles[t.Coord] = t
	return true
}

// RemoveAndReturn takes a tile out of the registry and hands it back for
// teardown, or nil if absent.
func (r *Registry) RemoveAndReturn(c TileCoord) *Tile {
	t, ok := r.tiles[c]
	if !ok {
		return nil
	}
	delete(r.tiles, c)
	return t
}

// All returns the active tiles in no particular order.
func (r *Registry) All() []*Tile {
	out := make([]*Tile, 0, len(r.tiles))
	for _, t := range r.tiles {
		out = append(out, t)
	}
	return out
}

// Count returns the number of active tiles.
func (r *Registry) Count() int {
	return len(r.tiles)
}

// CountEntities scans every tile and counts owned entities matching the
// predicate. Derived on demand, never cached, so population caps always see
// the registry's current contents.
func (r *Registry) CountEntities(pred func(*entity.Entity) bool) int {
	n := 0
	for _, t := range r.tiles {
		n += t.CountEntities(pred)
	}
	return n
}

// CountSpecies counts alive entities of one species across all tiles.
func (r *Registry) CountSpecies(speciesID string) int {
	return r.CountEntities(func(e *entity.Entity) bool {
		return e.Species == speciesID
	})
}
