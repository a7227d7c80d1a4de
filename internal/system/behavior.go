package system

import (
	"time"

	coresys "github.com/huntfield/server/internal/core/system"
	"github.com/huntfield/server/internal/entity"
)

// BehaviorSystem ticks every living entity's components: visual transform
// sync, trigger volume follow, and wander decisions. Phase 1 (PostUpdate),
// after streaming has settled tile membership.
type BehaviorSystem struct {
	entities *entity.Manager
}

func NewBehaviorSystem(entities *entity.Manager) *BehaviorSystem {
	return &BehaviorSystem{entities: entities}
}

func (s *BehaviorSystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }

func (s *BehaviorSystem) Update(dt time.Duration) {
	s.entities.UpdateAll(dt)
}
