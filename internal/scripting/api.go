package scripting

import (
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/farixgo/engine/internal/component"
	"github.com/farixgo/engine/internal/core/ecs"
	"github.com/farixgo/engine/internal/input"
)

// openAPI installs register_script and the engine table.
//
// Entities cross the boundary as plain numbers. Every engine function works
// on the world of the script whose callback is running; called outside a
// callback they are no-ops returning nil.
func (e *Engine) openAPI() {
	e.vm.SetGlobal("register_script", e.vm.NewFunction(e.luaRegisterScript))

	api := e.vm.SetFuncs(e.vm.NewTable(), map[string]lua.LGFunction{
		"log":            e.luaLog,
		"position":       e.vec3Getter(func(t *ecs.Transform) *vec3 { return (*vec3)(&t.Position) }),
		"set_position":   e.vec3Setter(func(t *ecs.Transform) *vec3 { return (*vec3)(&t.Position) }),
		"rotation":       e.vec3Getter(func(t *ecs.Transform) *vec3 { return (*vec3)(&t.Rotation) }),
		"set_rotation":   e.vec3Setter(func(t *ecs.Transform) *vec3 { return (*vec3)(&t.Rotation) }),
		"scale":          e.vec3Getter(func(t *ecs.Transform) *vec3 { return (*vec3)(&t.Scale) }),
		"set_scale":      e.vec3Setter(func(t *ecs.Transform) *vec3 { return (*vec3)(&t.Scale) }),
		"velocity":       e.luaVelocity,
		"set_velocity":   e.luaSetVelocity,
		"set_color":      e.luaSetColor,
		"destroy":        e.luaDestroy,
		"name":           e.luaName,
		"find":           e.luaFind,
		"has_tag":        e.luaHasTag,
		"key_down":       e.luaKey((*input.State).Down),
		"key_pressed":    e.luaKey((*input.State).Pressed),
		"get_float":      e.luaGetFloat,
		"set_float":      e.luaSetFloat,
		"state":          e.luaState,
		"fire":           e.luaFire,
		"timer_finished": e.luaTimerFinished,
	})
	e.vm.SetGlobal("engine", api)
}

type vec3 = [3]float32

// register_script(name, table)
func (e *Engine) luaRegisterScript(L *lua.LState) int {
	name := L.CheckString(1)
	def := L.CheckTable(2)
	if _, dup := e.defs[name]; dup {
		e.log.Warn("lua script redefined", zap.String("script", name))
	}
	if lStr(def, "name") == "" {
		def.RawSetString("name", lua.LString(name))
	}
	e.defs[name] = def
	return 0
}

func (e *Engine) luaLog(L *lua.LState) int {
	e.log.Info("lua", zap.String("msg", L.CheckString(1)))
	return 0
}

// entity resolves argument n to a live entity of the bound world.
func (e *Engine) entity(L *lua.LState, n int) (ecs.Entity, bool) {
	id := ecs.Entity(L.CheckInt(n))
	if e.world == nil || !e.world.Alive(id) {
		return ecs.InvalidEntity, false
	}
	return id, true
}

func (e *Engine) transform(L *lua.LState) (*ecs.Transform, bool) {
	id, ok := e.entity(L, 1)
	if !ok {
		return nil, false
	}
	return ecs.TryComponent[ecs.Transform](e.world, id)
}

func (e *Engine) vec3Getter(field func(*ecs.Transform) *vec3) lua.LGFunction {
	return func(L *lua.LState) int {
		t, ok := e.transform(L)
		if !ok {
			L.Push(lua.LNil)
			return 1
		}
		v := field(t)
		L.Push(lua.LNumber(v[0]))
		L.Push(lua.LNumber(v[1]))
		L.Push(lua.LNumber(v[2]))
		return 3
	}
}

func (e *Engine) vec3Setter(field func(*ecs.Transform) *vec3) lua.LGFunction {
	return func(L *lua.LState) int {
		t, ok := e.transform(L)
		if !ok {
			return 0
		}
		v := field(t)
		v[0] = float32(L.CheckNumber(2))
		v[1] = float32(L.CheckNumber(3))
		v[2] = float32(L.CheckNumber(4))
		return 0
	}
}

func (e *Engine) luaVelocity(L *lua.LState) int {
	id, ok := e.entity(L, 1)
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	rb, has := ecs.TryComponent[component.RigidBody](e.world, id)
	if !has {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LNumber(rb.Velocity[0]))
	L.Push(lua.LNumber(rb.Velocity[1]))
	L.Push(lua.LNumber(rb.Velocity[2]))
	return 3
}

func (e *Engine) luaSetVelocity(L *lua.LState) int {
	id, ok := e.entity(L, 1)
	if !ok {
		return 0
	}
	if rb, has := ecs.TryComponent[component.RigidBody](e.world, id); has {
		rb.Velocity[0] = float32(L.CheckNumber(2))
		rb.Velocity[1] = float32(L.CheckNumber(3))
		rb.Velocity[2] = float32(L.CheckNumber(4))
	}
	return 0
}

// set_color(id, {r=, g=, b=, a=}); a defaults to 1.
func (e *Engine) luaSetColor(L *lua.LState) int {
	id, ok := e.entity(L, 1)
	c := L.CheckTable(2)
	if !ok {
		return 0
	}
	if m, has := ecs.TryComponent[component.Material](e.world, id); has {
		a := float32(1)
		if c.RawGetString("a") != lua.LNil {
			a = lNum(c, "a")
		}
		m.BaseColor = [4]float32{lNum(c, "r"), lNum(c, "g"), lNum(c, "b"), a}
	}
	return 0
}

func (e *Engine) luaDestroy(L *lua.LState) int {
	if id, ok := e.entity(L, 1); ok {
		e.world.QueueDestroy(id)
	}
	return 0
}

func (e *Engine) luaName(L *lua.LState) int {
	id, ok := e.entity(L, 1)
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LString(e.world.Name(id)))
	return 1
}

// find(name) returns the first entity with that name, or nil.
func (e *Engine) luaFind(L *lua.LState) int {
	name := L.CheckString(1)
	if e.world == nil {
		L.Push(lua.LNil)
		return 1
	}
	ids := e.world.EntitiesByName(name)
	if len(ids) == 0 {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LNumber(ids[0]))
	return 1
}

func (e *Engine) luaHasTag(L *lua.LState) int {
	id, ok := e.entity(L, 1)
	tag := L.CheckString(2)
	L.Push(lua.LBool(ok && e.world.HasTag(id, tag)))
	return 1
}

func (e *Engine) luaKey(query func(*input.State, string) bool) lua.LGFunction {
	return func(L *lua.LState) int {
		key := L.CheckString(1)
		down := false
		if e.world != nil {
			if in, ok := ecs.Resource[input.State](e.world); ok {
				down = query(in, key)
			}
		}
		L.Push(lua.LBool(down))
		return 1
	}
}

func (e *Engine) luaGetFloat(L *lua.LState) int {
	id, ok := e.entity(L, 1)
	key := L.CheckString(2)
	def := L.OptNumber(3, 0)
	if ok {
		if v, has := ecs.TryComponent[component.Variable](e.world, id); has {
			if f, set := v.Floats[key]; set {
				L.Push(lua.LNumber(f))
				return 1
			}
		}
	}
	L.Push(def)
	return 1
}

// set_float adds a Variable component on first use.
func (e *Engine) luaSetFloat(L *lua.LState) int {
	id, ok := e.entity(L, 1)
	key := L.CheckString(2)
	val := float32(L.CheckNumber(3))
	if !ok {
		return 0
	}
	v, has := ecs.TryComponent[component.Variable](e.world, id)
	if !has {
		v = ecs.AddComponent(e.world, id, component.NewVariable())
	}
	if v.Floats == nil {
		v.Floats = map[string]float32{}
	}
	v.Floats[key] = val
	return 0
}

func (e *Engine) luaState(L *lua.LState) int {
	id, ok := e.entity(L, 1)
	if ok {
		if s, has := ecs.TryComponent[component.State](e.world, id); has {
			L.Push(lua.LString(s.Current))
			return 1
		}
	}
	L.Push(lua.LNil)
	return 1
}

func (e *Engine) luaFire(L *lua.LState) int {
	id, ok := e.entity(L, 1)
	ev := L.CheckString(2)
	changed := false
	if ok {
		if s, has := ecs.TryComponent[component.State](e.world, id); has {
			changed = s.Fire(ev)
		}
	}
	L.Push(lua.LBool(changed))
	return 1
}

func (e *Engine) luaTimerFinished(L *lua.LState) int {
	id, ok := e.entity(L, 1)
	name := L.CheckString(2)
	done := false
	if ok {
		if ts, has := ecs.TryComponent[component.Timers](e.world, id); has {
			if t, found := ts.Get(name); found {
				done = t.Finished
			}
		}
	}
	L.Push(lua.LBool(done))
	return 1
}
