package ecs

// GameObject pairs an entity with its world. It is the handle scripts and
// scene code use instead of calling the generic World functions directly.
type GameObject struct {
	Entity Entity
	World  *World
}

// NewGameObject creates an entity with a default Transform.
func NewGameObject(w *World) GameObject {
	e := w.CreateEntity()
	AddComponent(w, e, NewTransform())
	return GameObject{Entity: e, World: w}
}

// Valid reports whether the handle points at a live entity.
func (g GameObject) Valid() bool {
	return g.World != nil && g.Entity != InvalidEntity && g.World.Alive(g.Entity)
}

// Transform returns the entity's local transform, or nil.
func (g GameObject) Transform() *Transform {
	t, _ := TryComponent[Transform](g.World, g.Entity)
	return t
}

func (g GameObject) Name() string        { return g.World.Name(g.Entity) }
func (g GameObject) SetName(name string) { g.World.SetName(g.Entity, name) }
func (g GameObject) AddTag(tag string)   { g.World.AddTag(g.Entity, tag) }
func (g GameObject) HasTag(tag string) bool {
	return g.World.HasTag(g.Entity, tag)
}

func (g GameObject) SetParent(parent GameObject) error {
	return g.World.SetParent(g.Entity, parent.Entity)
}

func (g GameObject) RemoveParent() { g.World.RemoveParent(g.Entity) }

// Children returns handles for the direct children.
func (g GameObject) Children() []GameObject {
	ids := g.World.ChildrenOf(g.Entity)
	out := make([]GameObject, len(ids))
	for i, c := range ids {
		out[i] = GameObject{Entity: c, World: g.World}
	}
	return out
}

func (g GameObject) AddScript(s Script)            { g.World.AddScript(g.Entity, s) }
func (g GameObject) RemoveScript(name string) bool { return g.World.RemoveScript(g.Entity, name) }

// Destroy queues the entity for destruction at the end of the frame.
func (g GameObject) Destroy() { g.World.QueueDestroy(g.Entity) }
