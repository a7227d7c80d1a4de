package entity

import (
	"sync/atomic"
	"time"
)

// idCounter generates unique object IDs for living entities.
// Starts at 200_000_000 to keep the ID space clear of hunter profile IDs.
var idCounter atomic.Int64

func init() {
	idCounter.Store(200_000_000)
}

// NextID returns a unique object ID for an entity instance.
func NextID() int64 {
	return idCounter.Add(1)
}

// Kind classifies a living entity for lifecycle decisions: persistent
// creatures are relocated when their tile is pruned, transient pickups
// are destroyed.
type Kind uint8

const (
	KindPrey Kind = iota
	KindPredator
	KindPickup
)

func (k Kind) Persistent() bool { return k == KindPrey || k == KindPredator }

func (k Kind) String() string {
	switch k {
	case KindPrey:
		return "prey"
	case KindPredator:
		return "predator"
	case KindPickup:
		return "pickup"
	}
	return "unknown"
}

// Component is the lifecycle contract for per-entity behavior and resources.
// Initialize runs right after the entity is registered, Cleanup right before
// it is discarded.
type Component interface {
	Initialize()
	Update(dt time.Duration)
	Cleanup()
}

// ColliderSyncer is an optional component hook. When an entity is teleported
// (relocation between tiles) the physics trigger volume must follow the
// visual transform within the same tick, not one tick later.
type ColliderSyncer interface {
	SyncCollider()
}

// PathClearer is an optional component hook. A navigation path computed
// relative to a removed tile must not be walked into empty space after
// relocation.
type PathClearer interface {
	ClearPath()
}

// Entity is a living actor or collectible owned by exactly one tile at a time.
// Accessed only from the game loop goroutine — no locks.
type Entity struct {
	ID      int64
	Kind    Kind
	Species string // species/pickup template id
	Name    string

	X, Y, Z float64
	Yaw     float64

	HP    int32
	MaxHP int32

	components []Component
}

// New allocates an entity with a fresh object ID. Components are attached
// with Attach before the entity is handed to the Manager.
func New(kind Kind, species, name string) *Entity {
	return &Entity{
		ID:      NextID(),
		Kind:    kind,
		Species: species,
		Name:    name,
	}
}

// Attach adds a component. Must happen before Manager.Add, which runs
// Initialize on every attached component.
func (e *Entity) Attach(c Component) {
	e.components = append(e.components, c)
}

// Components returns the attached component list.
func (e *Entity) Components() []Component {
	return e.components
}

// SetPosition moves the entity's visual transform directly, bypassing any
// velocity or path-following state, and fires the collider-sync hook on
// components that expose one.
func (e *Entity) SetPosition(x, y, z float64) {
	e.X, e.Y, e.Z = x, y, z
	for _, c := range e.components {
		if s, ok := c.(ColliderSyncer); ok {
			s.SyncCollider()
		}
	}
}

// ClearNavigation fires the clear-path hook on components that expose one.
func (e *Entity) ClearNavigation() {
	for _, c := range e.components {
		if p, ok := c.(PathClearer); ok {
			p.ClearPath()
		}
	}
}
