package world

import (
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"
	"go.uber.org/zap"

	"github.com/huntfield/server/internal/data"
	"github.com/huntfield/server/internal/entity"
)

// groundGridN is the number of terrain cells per tile edge; samples are
// (groundGridN+1)^2 per tile.
const groundGridN = 8

// groundOverlap widens each tile's ground footprint slightly past the tile
// boundary to hide seams between adjacent tiles.
const groundOverlap = 1.04

// Params are the streaming knobs shared by the factory and reconciler.
type Params struct {
	TileSize      float64
	EdgeMargin    float64
	DecorationMin int
	DecorationMax int
}

// Factory materializes one tile's content for a coordinate: ground,
// decoration with matching static colliders, a capped stochastic creature
// population, and item pickups. Every generation step is independently
// optional; a failed or skipped spawn never aborts the whole tile.
type Factory struct {
	params   Params
	species  *data.SpeciesTable
	decor    *data.DecorTable
	pickups  *data.PickupTable
	spawner  Spawner
	registry *Registry
	cache    *DescriptorCache
	rng      *rand.Rand
	noise    opensimplex.Noise
	log      *zap.Logger
}

func NewFactory(
	params Params,
	species *data.SpeciesTable,
	decor *data.DecorTable,
	pickups *data.PickupTable,
	spawner Spawner,
	registry *Registry,
	rng *rand.Rand,
	log *zap.Logger,
) *Factory {
	return &Factory{
		params:   params,
		species:  species,
		decor:    decor,
		pickups:  pickups,
		spawner:  spawner,
		registry: registry,
		cache:    NewDescriptorCache(),
		rng:      rng,
		noise:    opensimplex.NewNormalized(rng.Int63()),
		log:      log,
	}
}

// Descriptors exposes the prepared-descriptor cache.
func (f *Factory) Descriptors() *DescriptorCache {
	return f.cache
}

// Prepare rolls a descriptor for a coordinate one step ahead of its
// materialization. No-op when one is already prepared.
func (f *Factory) Prepare(c TileCoord) {
	if f.cache.Has(c) {
		return
	}
	f.cache.Put(f.rollDescriptor(c))
}

// rollDescriptor draws all randomness-driven counts for a future tile.
func (f *Factory) rollDescriptor(c TileCoord) *TileDescriptor {
	desc := &TileDescriptor{
		Coord:          c,
		CreatureCounts: make(map[string]int, f.species.Count()),
		WeaponRoll:     f.rng.Float64(),
	}

	spread := f.params.DecorationMax - f.params.DecorationMin
	desc.DecorCount = f.params.DecorationMin
	if spread > 0 {
		desc.DecorCount += f.rng.Intn(spread + 1)
	}

	f.species.Each(func(tmpl *data.SpeciesTemplate) {
		if tmpl.Chance < 1 && f.rng.Float64() >= tmpl.Chance {
			return
		}
		n := tmpl.MinCount
		if tmpl.MaxCount > tmpl.MinCount {
			n += f.rng.Intn(tmpl.MaxCount - tmpl.MinCount + 1)
		}
		if n > 0 {
			desc.CreatureCounts[tmpl.SpeciesID] = n
		}
	})

	return desc
}

// CreateTile synthesizes a tile's full content. It consumes a prepared
// descriptor for the coordinate when one exists, otherwise rolls counts
// inline. The tile is returned unregistered; the reconciler inserts it.
func (f *Factory) CreateTile(c TileCoord) *Tile {
	t := NewTile(c)

	desc := f.cache.Take(c)
	if desc == nil {
		desc = f.rollDescriptor(c)
	}

	f.buildGround(t)
	f.buildDecoration(t, desc.DecorCount)
	f.buildCreatures(t, desc)
	f.buildPickups(t, desc)

	return t
}

func (f *Factory) buildGround(t *Tile) {
	cx, _, cz := TileCenter(t.Coord, f.params.TileSize)
	half := f.params.TileSize / 2 * groundOverlap

	obj, body := f.spawner.SpawnGround(cx, cz, half, f.groundHeights(t.Coord))
	t.AttachVisual(obj)
	t.AttachBody(body)
}

// groundHeights samples displaced-terrain elevations on a (groundGridN+1)^2
// grid in world space, so adjacent tiles sample the same continuous field
// and their overlapping edges line up.
func (f *Factory) groundHeights(c TileCoord) []float64 {
	cx, _, cz := TileCenter(c, f.params.TileSize)
	half := f.params.TileSize / 2
	step := f.params.TileSize / groundGridN

	heights := make([]float64, (groundGridN+1)*(groundGridN+1))
	i := 0
	for gz := 0; gz <= groundGridN; gz++ {
		for gx := 0; gx <= groundGridN; gx++ {
			wx := cx - half + float64(gx)*step
			wz := cz - half + float64(gz)*step
			// Two octaves: broad rolling ground plus fine displacement.
			h := f.noise.Eval2(wx*0.015, wz*0.015)*2.4 + f.noise.Eval2(wx*0.11, wz*0.11)*0.5
			heights[i] = h
			i++
		}
	}
	return heights
}

func (f *Factory) buildDecoration(t *Tile, count int) {
	for i := 0; i < count; i++ {
		tmpl := f.decor.Pick(f.rng.Float64())
		if tmpl == nil {
			return
		}
		scale := tmpl.ScaleMin
		if tmpl.ScaleMax > tmpl.ScaleMin {
			scale += f.rng.Float64() * (tmpl.ScaleMax - tmpl.ScaleMin)
		}
		x, z := randomPoint(t.Coord, f.params.TileSize, f.params.EdgeMargin, f.rng)

		obj, body := f.spawner.SpawnDecoration(tmpl, x, z, scale)
		t.AttachVisual(obj)
		t.AttachBody(body)
	}
}

func (f *Factory) buildCreatures(t *Tile, desc *TileDescriptor) {
	f.species.Each(func(tmpl *data.SpeciesTemplate) {
		n := desc.CreatureCounts[tmpl.SpeciesID]
		if n == 0 {
			return
		}

		// Hard population ceiling, computed by scanning the registry at
		// materialization time. The roll is void once the cap is reached.
		if tmpl.Cap > 0 {
			alive := f.registry.CountSpecies(tmpl.SpeciesID) + t.CountEntities(func(e *entity.Entity) bool {
				return e.Species == tmpl.SpeciesID
			})
			if alive >= tmpl.Cap {
				return
			}
			if alive+n > tmpl.Cap {
				n = tmpl.Cap - alive
			}
		}

		for i := 0; i < n; i++ {
			x, z := randomPoint(t.Coord, f.params.TileSize, f.params.EdgeMargin, f.rng)
			e := f.spawner.SpawnCreature(tmpl, x, z)
			if e == nil {
				continue // asset unavailable; skip, not an error
			}
			t.AttachEntity(e)
		}
	})
}

func (f *Factory) buildPickups(t *Tile, desc *TileDescriptor) {
	if ammo := f.pickups.Ammo(); ammo != nil {
		x, z := randomPoint(t.Coord, f.params.TileSize, f.params.EdgeMargin, f.rng)
		t.AttachEntity(f.spawner.SpawnPickup(ammo, x, z))
	}

	if weapon := f.pickups.RollWeapon(desc.WeaponRoll); weapon != nil {
		x, z := randomPoint(t.Coord, f.params.TileSize, f.params.EdgeMargin, f.rng)
		t.AttachEntity(f.spawner.SpawnPickup(weapon, x, z))
	}
}
