package system

import (
	"time"

	coresys "github.com/huntfield/server/internal/core/system"
	"github.com/huntfield/server/internal/world"
)

// StreamingSystem runs the tile reconciliation pass each tick: create newly
// desired tiles, prune stale ones, relocate surviving creatures. Phase 0
// (Update) so behavior and output see a settled tile set.
type StreamingSystem struct {
	reconciler *world.Reconciler
}

func NewStreamingSystem(rec *world.Reconciler) *StreamingSystem {
	return &StreamingSystem{reconciler: rec}
}

func (s *StreamingSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *StreamingSystem) Update(dt time.Duration) {
	s.reconciler.Update(dt)
}
