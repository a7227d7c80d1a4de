package system

import "time"

// Phase defines execution ordering within a single tick.
type Phase int

const (
	PhaseUpdate     Phase = iota // 0: tile streaming reconcile
	PhasePostUpdate              // 1: creature behavior
	PhaseOutput                  // 2: observer snapshot broadcast
	PhasePersist                 // 3: profile autosave
	PhaseCleanup                 // 4: destroy queued entities
)

// System is the interface every tick system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
