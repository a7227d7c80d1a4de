package spawn

import (
	"math"
	"math/rand"
	"time"

	"github.com/huntfield/server/internal/entity"
	"github.com/huntfield/server/internal/physics"
	"github.com/huntfield/server/internal/scene"
	"github.com/huntfield/server/internal/scripting"
)

// visualComp binds an entity to its scene object. The object tracks the
// entity's transform every tick and leaves the graph on cleanup.
type visualComp struct {
	graph *scene.Graph
	obj   *scene.Object
	e     *entity.Entity
}

func (c *visualComp) Initialize() {
	c.graph.Add(c.obj)
}

func (c *visualComp) Update(_ time.Duration) {
	c.obj.X, c.obj.Y, c.obj.Z = c.e.X, c.e.Y, c.e.Z
}

func (c *visualComp) Cleanup() {
	if err := c.graph.Remove(c.obj); err != nil {
		// Already gone; double teardown is tolerated.
		return
	}
}

// triggerComp binds an entity to its physics trigger volume. The volume
// follows the visual transform with one tick of lag during normal movement;
// SyncCollider closes the gap immediately after a teleport-style move.
type triggerComp struct {
	world *physics.World
	body  *physics.Body
	e     *entity.Entity
}

func (c *triggerComp) Initialize() {
	c.world.AddRigidBody(c.body)
}

func (c *triggerComp) Update(_ time.Duration) {
	c.SyncCollider()
}

func (c *triggerComp) SyncCollider() {
	c.body.X, c.body.Y, c.body.Z = c.e.X, c.e.Y, c.e.Z
}

func (c *triggerComp) Cleanup() {
	if err := c.world.RemoveRigidBody(c.body); err != nil {
		// Double removal is expected on tile teardown.
		return
	}
}

// wanderComp drives idle creature movement. Decisions come from the Lua
// behavior script when one is loaded; otherwise a plain random walk. The
// current leg is the "navigation path" the relocator clears.
type wanderComp struct {
	e      *entity.Entity
	engine *scripting.Engine // nil = Go fallback only
	rng    *rand.Rand

	role      string
	threat    int
	moveSpeed float64
	homeX     float64
	homeZ     float64

	heading   float64
	ticksLeft int
	moving    bool
}

func newWanderComp(e *entity.Entity, engine *scripting.Engine, rng *rand.Rand, role string, threat int, moveSpeed float64) *wanderComp {
	return &wanderComp{
		e:         e,
		engine:    engine,
		rng:       rng,
		role:      role,
		threat:    threat,
		moveSpeed: moveSpeed,
		homeX:     e.X,
		homeZ:     e.Z,
	}
}

func (c *wanderComp) Initialize() {}

func (c *wanderComp) Cleanup() {}

// ClearPath drops the current wander leg. Called after relocation so a
// heading chosen on the old tile is not walked into empty space; the next
// Update re-decides from the new position.
func (c *wanderComp) ClearPath() {
	c.ticksLeft = 0
	c.moving = false
	c.homeX, c.homeZ = c.e.X, c.e.Z
}

func (c *wanderComp) Update(dt time.Duration) {
	if c.ticksLeft <= 0 {
		c.decide()
	}
	c.ticksLeft--

	if !c.moving {
		return
	}
	step := c.moveSpeed * dt.Seconds()
	c.e.SetPosition(
		c.e.X-math.Sin(c.heading)*step,
		c.e.Y,
		c.e.Z-math.Cos(c.heading)*step,
	)
	c.e.Yaw = c.heading
}

func (c *wanderComp) decide() {
	if c.engine != nil {
		dx, dz := c.e.X-c.homeX, c.e.Z-c.homeZ
		dec, ok := c.engine.DecideWander(scripting.WanderContext{
			Species:   c.e.Species,
			Role:      c.role,
			Threat:    c.threat,
			X:         c.e.X,
			Z:         c.e.Z,
			HomeX:     c.homeX,
			HomeZ:     c.homeZ,
			HomeDist:  math.Hypot(dx, dz),
			MoveSpeed: c.moveSpeed,
		})
		if ok {
			c.apply(dec)
			return
		}
	}

	// Fallback: short random legs with idle pauses.
	if c.rng.Float64() < 0.4 {
		c.moving = false
		c.ticksLeft = 10 + c.rng.Intn(20)
		return
	}
	c.moving = true
	c.heading = c.rng.Float64() * 2 * math.Pi
	c.ticksLeft = 10 + c.rng.Intn(30)
}

func (c *wanderComp) apply(dec scripting.WanderDecision) {
	ticks := dec.Ticks
	if ticks <= 0 {
		ticks = 10
	}
	c.ticksLeft = ticks

	switch dec.Action {
	case "wander":
		c.moving = true
		c.heading = dec.Heading
	case "home":
		c.moving = true
		c.heading = math.Atan2(-(c.homeX - c.e.X), -(c.homeZ - c.e.Z))
	default:
		c.moving = false
	}
}
