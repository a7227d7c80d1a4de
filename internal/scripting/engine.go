package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM for creature behavior decisions.
// Single-goroutine access only (game loop).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads all scripts from the given
// directory tree. Missing directories are skipped.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})

	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}

	for _, sub := range []string{"core", "behavior"} {
		if err := e.loadDir(filepath.Join(scriptsDir, sub)); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load %s scripts: %w", sub, err)
		}
	}

	return e, nil
}

// Close shuts down the VM.
func (e *Engine) Close() {
	e.vm.Close()
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// WanderContext holds pre-packed data for one creature's behavior decision.
type WanderContext struct {
	Species   string
	Role      string // "prey" or "predator"
	Threat    int
	X, Z      float64
	HomeX     float64
	HomeZ     float64
	HomeDist  float64
	MoveSpeed float64
}

// WanderDecision is returned by the Lua decide_wander function.
type WanderDecision struct {
	Action  string  // "wander", "idle", "home"
	Heading float64 // radians, used for "wander"
	Ticks   int     // how long to keep the decision before re-deciding
}

// DecideWander calls the Lua decide_wander function. The zero decision
// ("idle") is returned when the function is missing or errors, so behavior
// degrades rather than breaking the tick.
func (e *Engine) DecideWander(ctx WanderContext) (WanderDecision, bool) {
	fn := e.vm.GetGlobal("decide_wander")
	if fn == lua.LNil {
		return WanderDecision{Action: "idle"}, false
	}

	t := e.vm.NewTable()
	t.RawSetString("species", lua.LString(ctx.Species))
	t.RawSetString("role", lua.LString(ctx.Role))
	t.RawSetString("threat", lua.LNumber(ctx.Threat))
	t.RawSetString("x", lua.LNumber(ctx.X))
	t.RawSetString("z", lua.LNumber(ctx.Z))
	t.RawSetString("home_x", lua.LNumber(ctx.HomeX))
	t.RawSetString("home_z", lua.LNumber(ctx.HomeZ))
	t.RawSetString("home_dist", lua.LNumber(ctx.HomeDist))
	t.RawSetString("move_speed", lua.LNumber(ctx.MoveSpeed))

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		e.log.Error("lua decide_wander error", zap.Error(err))
		return WanderDecision{Action: "idle"}, false
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	rt, ok := result.(*lua.LTable)
	if !ok {
		e.log.Error("lua decide_wander returned non-table")
		return WanderDecision{Action: "idle"}, false
	}

	return WanderDecision{
		Action:  lua.LVAsString(rt.RawGetString("action")),
		Heading: float64(lua.LVAsNumber(rt.RawGetString("heading"))),
		Ticks:   int(lua.LVAsNumber(rt.RawGetString("ticks"))),
	}, true
}
