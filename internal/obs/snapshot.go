package obs

// Snapshot is one tick's world view sent to observers.
type Snapshot struct {
	Type     string         `json:"type"` // "snapshot"
	Tick     uint64         `json:"tick"`
	Player   *PlayerView    `json:"player,omitempty"`
	Tiles    []TileView     `json:"tiles"`
	Entities []EntityView   `json:"entities"`
}

type PlayerView struct {
	Name string  `json:"name"`
	X    float64 `json:"x"`
	Z    float64 `json:"z"`
	Yaw  float64 `json:"yaw"`
}

type TileView struct {
	X         int `json:"x"`
	Z         int `json:"z"`
	Creatures int `json:"creatures"`
	Pickups   int `json:"pickups"`
}

type EntityView struct {
	ID      int64   `json:"id"`
	Kind    string  `json:"kind"`
	Species string  `json:"species"`
	X       float64 `json:"x"`
	Z       float64 `json:"z"`
}
