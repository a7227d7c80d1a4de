package entity

import "time"

// Manager is the global entity registry. Every living entity in the world is
// added here exactly once; tile ownership is tracked separately by the tile
// registry. Destruction is deferred: Remove queues, FlushDestroyQueue runs
// Cleanup and drops the entity at tick end.
type Manager struct {
	entities     map[int64]*Entity
	destroyQueue []int64
}

func NewManager() *Manager {
	return &Manager{
		entities:     make(map[int64]*Entity, 256),
		destroyQueue: make([]int64, 0, 64),
	}
}

// Add registers an entity and initializes its components.
func (m *Manager) Add(e *Entity) {
	m.entities[e.ID] = e
	for _, c := range e.components {
		c.Initialize()
	}
}

// Remove queues an entity for end-of-tick cleanup. Safe to call with an
// already-removed or already-queued ID.
func (m *Manager) Remove(e *Entity) {
	if _, ok := m.entities[e.ID]; !ok {
		return
	}
	m.destroyQueue = append(m.destroyQueue, e.ID)
}

// RemoveNow cleans up and drops an entity immediately. Used when the caller
// needs the entity gone within the current reconciliation pass.
func (m *Manager) RemoveNow(e *Entity) {
	if _, ok := m.entities[e.ID]; !ok {
		return
	}
	for _, c := range e.components {
		c.Cleanup()
	}
	delete(m.entities, e.ID)
}

// FlushDestroyQueue destroys all queued entities, running component Cleanup.
// Called by the cleanup system at the end of each tick.
func (m *Manager) FlushDestroyQueue() {
	for _, id := range m.destroyQueue {
		e, ok := m.entities[id]
		if !ok {
			continue // removed via RemoveNow after queueing
		}
		for _, c := range e.components {
			c.Cleanup()
		}
		delete(m.entities, id)
	}
	m.destroyQueue = m.destroyQueue[:0]
}

// Contains reports whether the entity is currently registered.
func (m *Manager) Contains(id int64) bool {
	_, ok := m.entities[id]
	return ok
}

// Count returns the number of registered entities.
func (m *Manager) Count() int {
	return len(m.entities)
}

// Each visits every registered entity.
func (m *Manager) Each(fn func(*Entity)) {
	for _, e := range m.entities {
		fn(e)
	}
}

// UpdateAll ticks every component of every registered entity.
func (m *Manager) UpdateAll(dt time.Duration) {
	for _, e := range m.entities {
		for _, c := range e.components {
			c.Update(dt)
		}
	}
}
