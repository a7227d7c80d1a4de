package system

import (
	"time"

	coresys "github.com/huntfield/server/internal/core/system"
	"github.com/huntfield/server/internal/entity"
)

// CleanupSystem flushes the deferred entity destruction queue at tick end.
// Phase 4 (Cleanup).
type CleanupSystem struct {
	entities *entity.Manager
}

func NewCleanupSystem(entities *entity.Manager) *CleanupSystem {
	return &CleanupSystem{entities: entities}
}

func (s *CleanupSystem) Phase() coresys.Phase { return coresys.PhaseCleanup }

func (s *CleanupSystem) Update(_ time.Duration) {
	s.entities.FlushDestroyQueue()
}
