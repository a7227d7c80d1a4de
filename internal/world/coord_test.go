package world

import "testing"

func TestWorldToTile(t *testing.T) {
	const size = 40.0

	cases := []struct {
		x, z float64
		want TileCoord
	}{
		{0, 0, TileCoord{0, 0}},
		{19.9, 0, TileCoord{0, 0}},
		{20.0, 0, TileCoord{1, 0}},
		{-20.0, 0, TileCoord{0, 0}},
		{-20.1, 0, TileCoord{-1, 0}},
		{0, 59.9, TileCoord{0, 1}},
		{0, 60.0, TileCoord{0, 2}},
		{-100, -100, TileCoord{-2, -2}},
	}
	for _, c := range cases {
		got := WorldToTile(c.x, c.z, size)
		if got != c.want {
			t.Errorf("WorldToTile(%v, %v) = %v, want %v", c.x, c.z, got, c.want)
		}
	}
}

func TestTileCenterRoundTrip(t *testing.T) {
	const size = 40.0

	for _, c := range []TileCoord{{0, 0}, {3, -2}, {-7, 11}} {
		x, y, z := TileCenter(c, size)
		if y != 0 {
			t.Errorf("TileCenter(%v) y = %v, want 0", c, y)
		}
		if got := WorldToTile(x, z, size); got != c {
			t.Errorf("WorldToTile(TileCenter(%v)) = %v", c, got)
		}
	}
}
