package world

import "math"

// TileCoord addresses one fixed-size square tile of world content.
type TileCoord struct {
	X int
	Z int
}

// WorldToTile converts a continuous world position to the coordinate of the
// tile whose center is nearest. The +0.5 bias makes tile (0,0) span
// [-tileSize/2, +tileSize/2) on both axes.
func WorldToTile(x, z, tileSize float64) TileCoord {
	return TileCoord{
		X: int(math.Floor(x/tileSize + 0.5)),
		Z: int(math.Floor(z/tileSize + 0.5)),
	}
}

// TileCenter returns the world position of a tile's center, on the ground
// plane (y = 0).
func TileCenter(c TileCoord, tileSize float64) (x, y, z float64) {
	return float64(c.X) * tileSize, 0, float64(c.Z) * tileSize
}
