package ecs

// SceneHandle is the view of the owning scene handed to scripts on creation.
type SceneHandle interface {
	Name() string
	World() *World
}

// Script is per-entity behaviour. The world calls SetContext and OnCreate
// when the script is attached; the script system calls OnStart once before
// the first OnUpdate; OnDestroy runs when the entity is destroyed or the
// world is reset.
type Script interface {
	Name() string
	SetContext(e Entity, w *World)
	OnCreate(obj GameObject, scene SceneHandle)
	OnStart()
	OnUpdate(dt float32)
	OnDestroy()
}

// ScriptComponent holds the scripts attached to one entity, in attachment order.
type ScriptComponent struct {
	Scripts []Script
	started []bool
}

// Started reports whether script i already received OnStart.
func (c *ScriptComponent) Started(i int) bool {
	return i < len(c.started) && c.started[i]
}

// MarkStarted records that script i received OnStart.
func (c *ScriptComponent) MarkStarted(i int) {
	for len(c.started) <= i {
		c.started = append(c.started, false)
	}
	c.started[i] = true
}

func (c *ScriptComponent) destroyAll() {
	for _, s := range c.Scripts {
		s.OnDestroy()
	}
}

// RemoveScript detaches the first script named name from e and runs its
// OnDestroy. It reports whether a script was removed.
func (w *World) RemoveScript(e Entity, name string) bool {
	sc, ok := TryComponent[ScriptComponent](w, e)
	if !ok {
		return false
	}
	for i, s := range sc.Scripts {
		if s.Name() != name {
			continue
		}
		sc.Scripts = append(sc.Scripts[:i], sc.Scripts[i+1:]...)
		if i < len(sc.started) {
			sc.started = append(sc.started[:i], sc.started[i+1:]...)
		}
		s.OnDestroy()
		return true
	}
	return false
}

// AddScript binds s to e, appends it to e's ScriptComponent and runs OnCreate.
func (w *World) AddScript(e Entity, s Script) {
	s.SetContext(e, w)
	sc, ok := TryComponent[ScriptComponent](w, e)
	if !ok {
		sc = AddComponent(w, e, ScriptComponent{})
	}
	sc.Scripts = append(sc.Scripts, s)
	sc.started = append(sc.started, false)
	s.OnCreate(GameObject{Entity: e, World: w}, w.scene)
}

// BaseScript implements the bookkeeping half of Script. Embed it and override
// the callbacks you need.
type BaseScript struct {
	Entity Entity
	World  *World
}

func (b *BaseScript) SetContext(e Entity, w *World) {
	b.Entity = e
	b.World = w
}

func (b *BaseScript) OnCreate(GameObject, SceneHandle) {}
func (b *BaseScript) OnStart()                         {}
func (b *BaseScript) OnUpdate(float32)                 {}
func (b *BaseScript) OnDestroy()                       {}

// GameObject returns the bound entity as a GameObject.
func (b *BaseScript) GameObject() GameObject {
	return GameObject{Entity: b.Entity, World: b.World}
}
