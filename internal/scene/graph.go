package scene

import (
	"errors"
	"sync/atomic"
)

// objectIDCounter generates unique handles for scene objects.
var objectIDCounter atomic.Int64

// NextObjectID returns a unique scene object handle.
func NextObjectID() int64 {
	return objectIDCounter.Add(1)
}

// Shape is the render primitive backing an object when no asset mesh is
// available (procedural fallback for decoration).
type Shape uint8

const (
	ShapeMesh Shape = iota // asset-backed mesh
	ShapeBox               // procedural fallback
	ShapeTerrain
)

// Object is a visual handle owned by a tile. Disposer, when set, performs the
// object's own teardown instead of a plain graph removal.
type Object struct {
	ID       int64
	Name     string
	Shape    Shape
	MeshPath string // empty for procedural shapes
	X, Y, Z  float64
	Scale    float64

	// Heights carries the displaced terrain grid for ShapeTerrain objects,
	// row-major, (gridN+1)^2 samples.
	Heights []float64

	Disposer func()
}

// ErrNotInGraph is returned when removing an object the graph does not hold.
// Double-disposal during tile teardown is expected; callers swallow it.
var ErrNotInGraph = errors.New("scene: object not in graph")

// Graph is the scene-graph collaborator. The streaming core is one of
// potentially several mutators; within its lifetime it alone removes the
// objects it added.
type Graph struct {
	objects map[int64]*Object
}

func NewGraph() *Graph {
	return &Graph{objects: make(map[int64]*Object, 512)}
}

// Add places an object into the graph and returns it for chaining.
func (g *Graph) Add(o *Object) *Object {
	g.objects[o.ID] = o
	return o
}

// Remove takes an object out of the graph.
func (g *Graph) Remove(o *Object) error {
	if _, ok := g.objects[o.ID]; !ok {
		return ErrNotInGraph
	}
	delete(g.objects, o.ID)
	return nil
}

// Contains reports whether the object is in the graph.
func (g *Graph) Contains(id int64) bool {
	_, ok := g.objects[id]
	return ok
}

// Len returns the number of objects currently in the graph.
func (g *Graph) Len() int {
	return len(g.objects)
}
