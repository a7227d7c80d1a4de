package world

// TileDescriptor is a precomputed, not-yet-materialized specification for a
// future tile: the randomness-driven counts, rolled ahead of time so tile
// creation itself stays cheap. Consumed exactly once; population caps are
// still enforced at materialization time, not at roll time.
type TileDescriptor struct {
	Coord          TileCoord
	DecorCount     int
	CreatureCounts map[string]int // species id -> intended count (pre-cap)
	WeaponRoll     float64        // single draw for the tiered weapon pickup
}

// DescriptorCache holds prepared descriptors keyed by coordinate. Not
// persisted; a missing descriptor just means the factory rolls counts inline.
type DescriptorCache struct {
	prepared map[TileCoord]*TileDescriptor
}

func NewDescriptorCache() *DescriptorCache {
	return &DescriptorCache{prepared: make(map[TileCoord]*TileDescriptor, 64)}
}

// Put stores a descriptor, keeping the first roll if one is already present.
func (d *DescriptorCache) Put(desc *TileDescriptor) {
	if _, ok := d.prepared[desc.Coord]; ok {
		return
	}
	d.prepared[desc.Coord] = desc
}

// Take removes and returns the descriptor for a coordinate, or nil.
func (d *DescriptorCache) Take(c TileCoord) *TileDescriptor {
	desc, ok := d.prepared[c]
	if !ok {
		return nil
	}
	delete(d.prepared, c)
	return desc
}

// Has reports whether a descriptor is prepared for the coordinate.
func (d *DescriptorCache) Has(c TileCoord) bool {
	_, ok := d.prepared[c]
	return ok
}

// Prune drops descriptors whose coordinates fall outside the given set, so
// the cache tracks the window instead of growing with player travel.
func (d *DescriptorCache) Prune(within map[TileCoord]struct{}) {
	for c := range d.prepared {
		if _, ok := within[c]; !ok {
			delete(d.prepared, c)
		}
	}
}

// Len returns the number of prepared descriptors.
func (d *DescriptorCache) Len() int {
	return len(d.prepared)
}
