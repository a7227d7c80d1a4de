package physics

import (
	"errors"
	"sync/atomic"
)

// bodyIDCounter generates unique physics body handles.
var bodyIDCounter atomic.Int64

// NextBodyID returns a unique body handle.
func NextBodyID() int64 {
	return bodyIDCounter.Add(1)
}

// BodyKind distinguishes static colliders (terrain, decoration) from trigger
// volumes following living entities.
type BodyKind uint8

const (
	KindStatic BodyKind = iota
	KindTrigger
)

// Body is a collision body handle. Extents are half-sizes along each axis.
type Body struct {
	ID      int64
	Kind    BodyKind
	X, Y, Z float64
	HX, HY, HZ float64
}

// ErrBodyNotFound is returned when removing a body the world does not hold.
// The underlying engine throws on double removal; callers are expected to
// swallow this during tile teardown.
var ErrBodyNotFound = errors.New("physics: body not in world")

// World is the physics-world collaborator: a flat store of rigid bodies and
// collision objects. Mutated only from the game loop goroutine.
type World struct {
	rigid     map[int64]*Body
	collision map[int64]*Body
}

func NewWorld() *World {
	return &World{
		rigid:     make(map[int64]*Body, 256),
		collision: make(map[int64]*Body, 256),
	}
}

// AddRigidBody registers a dynamic/trigger body.
func (w *World) AddRigidBody(b *Body) *Body {
	w.rigid[b.ID] = b
	return b
}

// RemoveRigidBody removes a body, erroring if it is already gone.
func (w *World) RemoveRigidBody(b *Body) error {
	if _, ok := w.rigid[b.ID]; !ok {
		return ErrBodyNotFound
	}
	delete(w.rigid, b.ID)
	return nil
}

// AddCollisionObject registers a static collider.
func (w *World) AddCollisionObject(b *Body) *Body {
	w.collision[b.ID] = b
	return b
}

// RemoveCollisionObject removes a static collider, erroring if already gone.
func (w *World) RemoveCollisionObject(b *Body) error {
	if _, ok := w.collision[b.ID]; !ok {
		return ErrBodyNotFound
	}
	delete(w.collision, b.ID)
	return nil
}

// Contains reports whether the world holds the body under either store.
func (w *World) Contains(id int64) bool {
	if _, ok := w.rigid[id]; ok {
		return true
	}
	_, ok := w.collision[id]
	return ok
}

// Len returns the total number of bodies in the world.
func (w *World) Len() int {
	return len(w.rigid) + len(w.collision)
}
