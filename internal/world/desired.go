package world

import "math"

// Facing is the player's view direction snapped to a cardinal quadrant.
// The desired window reorients in 90-degree steps as the player turns.
type Facing uint8

const (
	FacingNorth Facing = iota // -Z
	FacingSouth               // +Z
	FacingEast                // +X
	FacingWest                // -X
)

func (f Facing) String() string {
	switch f {
	case FacingNorth:
		return "north"
	case FacingSouth:
		return "south"
	case FacingEast:
		return "east"
	case FacingWest:
		return "west"
	}
	return "unknown"
}

// ClassifyFacing snaps a ground-plane forward vector to a quadrant by
// comparing axis magnitudes, then sign. Ties go to the Z axis.
func ClassifyFacing(fx, fz float64) Facing {
	if math.Abs(fx) > math.Abs(fz) {
		if fx > 0 {
			return FacingEast
		}
		return FacingWest
	}
	if fz > 0 {
		return FacingSouth
	}
	return FacingNorth
}

// Window configures the directional field-of-view rectangle, in tile counts:
// ForwardDepth tiles ahead of the player, BackDepth behind, SideWidth to
// each side of the facing axis.
type Window struct {
	ForwardDepth int
	BackDepth    int
	SideWidth    int
}

// DesiredSet computes the exact set of tile coordinates that must be loaded
// for the player's position and facing: an axis-aligned rectangle biased
// toward where the player looks, so tiles ahead are speculatively ready and
// tiles behind are aggressively discarded.
//
// A nil player yields an empty set; callers must treat that as "do nothing",
// never as "prune everything".
func DesiredSet(p *PlayerInfo, tileSize float64, w Window) map[TileCoord]struct{} {
	if p == nil {
		return map[TileCoord]struct{}{}
	}

	center := WorldToTile(p.X, p.Z, tileSize)
	fx, fz := p.Forward()

	var minX, maxX, minZ, maxZ int
	switch ClassifyFacing(fx, fz) {
	case FacingNorth:
		minX, maxX = center.X-w.SideWidth, center.X+w.SideWidth
		minZ, maxZ = center.Z-w.ForwardDepth, center.Z+w.BackDepth
	case FacingSouth:
		minX, maxX = center.X-w.SideWidth, center.X+w.SideWidth
		minZ, maxZ = center.Z-w.BackDepth, center.Z+w.ForwardDepth
	case FacingEast:
		minX, maxX = center.X-w.BackDepth, center.X+w.ForwardDepth
		minZ, maxZ = center.Z-w.SideWidth, center.Z+w.SideWidth
	case FacingWest:
		minX, maxX = center.X-w.ForwardDepth, center.X+w.BackDepth
		minZ, maxZ = center.Z-w.SideWidth, center.Z+w.SideWidth
	}

	set := make(map[TileCoord]struct{}, (maxX-minX+1)*(maxZ-minZ+1))
	for x := minX; x <= maxX; x++ {
		for z := minZ; z <= maxZ; z++ {
			set[TileCoord{X: x, Z: z}] = struct{}{}
		}
	}
	return set
}

// ExpandSet returns the set grown by one tile in every direction. Used to
// pre-roll tile descriptors one step ahead of the window's edge.
func ExpandSet(set map[TileCoord]struct{}) map[TileCoord]struct{} {
	out := make(map[TileCoord]struct{}, len(set)*2)
	for c := range set {
		for dx := -1; dx <= 1; dx++ {
			for dz := -1; dz <= 1; dz++ {
				out[TileCoord{X: c.X + dx, Z: c.Z + dz}] = struct{}{}
			}
		}
	}
	return out
}
