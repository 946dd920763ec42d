package scripting

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/farixgo/engine/internal/core/ecs"
	"github.com/farixgo/engine/internal/core/event"
)

// LuaScript is an ecs.Script whose callbacks live in a Lua table passed to
// register_script. Each instance gets its own self table that falls back to
// the definition for unset fields, so definitions double as defaults.
//
// Callbacks, all optional:
//
//	on_create(self)   self.entity and self.scene are set
//	on_start(self)
//	on_update(self, dt)
//	on_collision(self, other)   once per collision event naming the entity
//	on_destroy(self)
type LuaScript struct {
	ecs.BaseScript
	engine *Engine
	name   string
	self   *lua.LTable
}

func (s *LuaScript) Name() string { return s.name }

// Self exposes the instance table, mainly for tests and tools.
func (s *LuaScript) Self() *lua.LTable { return s.self }

func (s *LuaScript) SetContext(e ecs.Entity, w *ecs.World) {
	s.BaseScript.SetContext(e, w)
	s.self.RawSetString("entity", lua.LNumber(e))
}

func (s *LuaScript) OnCreate(_ ecs.GameObject, scene ecs.SceneHandle) {
	if scene != nil {
		s.self.RawSetString("scene", lua.LString(scene.Name()))
	}
	s.engine.call(s.World, s.self, s.name, "on_create")
}

func (s *LuaScript) OnStart() {
	s.engine.call(s.World, s.self, s.name, "on_start")
}

func (s *LuaScript) OnUpdate(dt float32) {
	s.engine.call(s.World, s.self, s.name, "on_update", lua.LNumber(dt))
	s.dispatchCollisions()
}

func (s *LuaScript) OnDestroy() {
	s.engine.call(s.World, s.self, s.name, "on_destroy")
}

func (s *LuaScript) dispatchCollisions() {
	if s.engine.vm.GetField(s.self, "on_collision") == lua.LNil {
		return
	}
	bus, ok := ecs.Resource[event.Bus](s.World)
	if !ok {
		return
	}
	for _, c := range event.Pending[event.Collision](bus) {
		switch s.Entity {
		case c.A:
			s.engine.call(s.World, s.self, s.name, "on_collision", lua.LNumber(c.B))
		case c.B:
			s.engine.call(s.World, s.self, s.name, "on_collision", lua.LNumber(c.A))
		}
	}
}

// Properties returns the instance's scalar fields (numbers, strings and
// booleans set on self), which scene files persist alongside the name.
func (s *LuaScript) Properties() map[string]any {
	out := map[string]any{}
	s.self.ForEach(func(k, v lua.LValue) {
		key, ok := k.(lua.LString)
		if !ok || key == "entity" || key == "scene" {
			return
		}
		switch val := v.(type) {
		case lua.LNumber:
			out[string(key)] = float64(val)
		case lua.LString:
			out[string(key)] = string(val)
		case lua.LBool:
			out[string(key)] = bool(val)
		}
	})
	return out
}

// SetProperties copies scalar values onto self. Other value types are ignored.
func (s *LuaScript) SetProperties(props map[string]any) {
	for k, v := range props {
		switch val := v.(type) {
		case float64:
			s.self.RawSetString(k, lua.LNumber(val))
		case string:
			s.self.RawSetString(k, lua.LString(val))
		case bool:
			s.self.RawSetString(k, lua.LBool(val))
		}
	}
}
