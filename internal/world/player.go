package world

import "math"

// PlayerInfo is the read-only player accessor consumed once per pass.
// Accessed only from the game loop goroutine — no locks.
type PlayerInfo struct {
	Name  string
	X     float64
	Y     float64
	Z     float64
	Yaw   float64 // radians; 0 faces -Z, increasing counter-clockwise
	Score int32
}

// Forward returns the player's forward unit vector projected onto the
// ground plane.
func (p *PlayerInfo) Forward() (fx, fz float64) {
	return -math.Sin(p.Yaw), -math.Cos(p.Yaw)
}
