package system

import (
	"context"
	"time"

	"go.uber.org/zap"

	coresys "github.com/huntfield/server/internal/core/system"
	"github.com/huntfield/server/internal/persist"
	"github.com/huntfield/server/internal/world"
)

// PersistSystem autosaves the hunter profile every N ticks. Phase 3
// (Persist). A nil repo (database disabled) makes it a no-op.
type PersistSystem struct {
	repo    *persist.HunterRepo
	player  func() *world.PlayerInfo
	every   int
	counter int
	log     *zap.Logger
}

func NewPersistSystem(repo *persist.HunterRepo, player func() *world.PlayerInfo, every int, log *zap.Logger) *PersistSystem {
	return &PersistSystem{repo: repo, player: player, every: every, log: log}
}

func (s *PersistSystem) Phase() coresys.Phase { return coresys.PhasePersist }

func (s *PersistSystem) Update(_ time.Duration) {
	if s.repo == nil || s.every <= 0 {
		return
	}
	s.counter++
	if s.counter < s.every {
		return
	}
	s.counter = 0
	s.Save()
}

// Save writes the profile immediately. Also called once on shutdown.
func (s *PersistSystem) Save() {
	if s.repo == nil {
		return
	}
	p := s.player()
	if p == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := s.repo.Save(ctx, &persist.HunterRow{
		Name:  p.Name,
		X:     p.X,
		Z:     p.Z,
		Yaw:   p.Yaw,
		Score: p.Score,
	})
	if err != nil {
		s.log.Error("profile autosave failed", zap.String("name", p.Name), zap.Error(err))
		return
	}
	s.log.Info("profile saved", zap.String("name", p.Name))
}
