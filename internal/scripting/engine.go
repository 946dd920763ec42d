package scripting

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/farixgo/engine/internal/core/ecs"
)

// APIVersion is exposed to scripts as the API_VERSION global.
const APIVersion = 1

// Engine wraps a single gopher-lua VM shared by every Lua script instance.
// Single-goroutine access only (frame loop).
type Engine struct {
	vm    *lua.LState
	log   *zap.Logger
	defs  map[string]*lua.LTable
	world *ecs.World // world of the script currently running
}

// NewEngine creates a Lua engine and loads all scripts from dir and its
// immediate sub-directories. A missing dir is not an error.
func NewEngine(dir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})

	vm.SetGlobal("API_VERSION", lua.LNumber(APIVersion))

	e := &Engine{vm: vm, log: log, defs: make(map[string]*lua.LTable)}
	e.openAPI()

	if dir == "" {
		return e, nil
	}
	if err := e.loadDir(dir); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load scripts: %w", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil && !os.IsNotExist(err) {
		vm.Close()
		return nil, err
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		sub := filepath.Join(dir, entry.Name())
		if err := e.loadDir(sub); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load %s scripts: %w", entry.Name(), err)
		}
	}
	return e, nil
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

// LoadString runs a chunk of Lua source, typically one that calls
// register_script.
func (e *Engine) LoadString(src string) error {
	return e.vm.DoString(src)
}

// Scripts returns the names passed to register_script, sorted.
func (e *Engine) Scripts() []string {
	out := make([]string, 0, len(e.defs))
	for name := range e.defs {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// RegisterAll adds a factory for every Lua script definition to reg.
func (e *Engine) RegisterAll(reg *Registry) {
	for _, name := range e.Scripts() {
		name := name
		reg.Register(name, func() ecs.Script { return e.NewScript(name) })
	}
}

// NewScript instantiates the Lua script registered as name. It panics when
// the name is unknown; use Registry.Create for data-driven lookups.
func (e *Engine) NewScript(name string) *LuaScript {
	def, ok := e.defs[name]
	if !ok {
		panic(fmt.Sprintf("scripting: lua script %q is not registered", name))
	}
	self := e.vm.NewTable()
	mt := e.vm.NewTable()
	mt.RawSetString("__index", def)
	e.vm.SetMetatable(self, mt)
	return &LuaScript{engine: e, name: name, self: self}
}

// call runs def[fn](self, args...) with w bound for the engine API.
// Missing callbacks are skipped; Lua errors are logged and swallowed.
func (e *Engine) call(w *ecs.World, self *lua.LTable, script, fn string, args ...lua.LValue) {
	cb := e.vm.GetField(self, fn)
	if cb == lua.LNil {
		return
	}
	prev := e.world
	e.world = w
	defer func() { e.world = prev }()

	lArgs := make([]lua.LValue, 0, len(args)+1)
	lArgs = append(lArgs, self)
	lArgs = append(lArgs, args...)
	if err := e.vm.CallByParam(lua.P{
		Fn:      cb,
		NRet:    0,
		Protect: true,
	}, lArgs...); err != nil {
		e.log.Error("lua script error",
			zap.String("script", script),
			zap.String("callback", fn),
			zap.Error(err))
	}
}

// --- Lua helpers ---

// lNum reads a number field from a Lua table.
func lNum(t *lua.LTable, key string) float32 {
	return float32(lua.LVAsNumber(t.RawGetString(key)))
}

// lStr reads a string field from a Lua table.
func lStr(t *lua.LTable, key string) string {
	return lua.LVAsString(t.RawGetString(key))
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
