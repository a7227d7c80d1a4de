package system

import (
	"time"

	coresys "github.com/huntfield/server/internal/core/system"
	"github.com/huntfield/server/internal/obs"
	"github.com/huntfield/server/internal/world"
)

// snapshotEvery throttles the observer feed to every Nth tick.
const snapshotEvery = 4

// ObserverSystem publishes a world snapshot to connected websocket
// observers. Phase 2 (Output).
type ObserverSystem struct {
	hub      *obs.Hub
	registry *world.Registry
	player   func() *world.PlayerInfo
	tick     uint64
}

func NewObserverSystem(hub *obs.Hub, registry *world.Registry, player func() *world.PlayerInfo) *ObserverSystem {
	return &ObserverSystem{hub: hub, registry: registry, player: player}
}

func (s *ObserverSystem) Phase() coresys.Phase { return coresys.PhaseOutput }

func (s *ObserverSystem) Update(_ time.Duration) {
	s.tick++
	if s.tick%snapshotEvery != 0 || s.hub.Observers() == 0 {
		return
	}

	snap := obs.Snapshot{
		Type:  "snapshot",
		Tick:  s.tick,
		Tiles: make([]obs.TileView, 0, s.registry.Count()),
	}

	if p := s.player(); p != nil {
		snap.Player = &obs.PlayerView{Name: p.Name, X: p.X, Z: p.Z, Yaw: p.Yaw}
	}

	for _, t := range s.registry.All() {
		view := obs.TileView{X: t.Coord.X, Z: t.Coord.Z}
		for _, e := range t.Entities {
			if e.Kind.Persistent() {
				view.Creatures++
			} else {
				view.Pickups++
			}
			snap.Entities = append(snap.Entities, obs.EntityView{
				ID:      e.ID,
				Kind:    e.Kind.String(),
				Species: e.Species,
				X:       e.X,
				Z:       e.Z,
			})
		}
		snap.Tiles = append(snap.Tiles, view)
	}

	s.hub.Broadcast(snap)
}
