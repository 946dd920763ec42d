package system

import (
	"github.com/farixgo/engine/internal/core/ecs"
	"github.com/go-gl/mathgl/mgl32"
)

// HierarchySystem composes local transforms into GlobalTransform, parents
// first. It must run after everything that moves entities and before
// RenderSystem.
type HierarchySystem struct{}

func NewHierarchySystem() *HierarchySystem { return &HierarchySystem{} }

func (s *HierarchySystem) Name() string     { return HierarchyName }
func (s *HierarchySystem) Start(*ecs.World) {}

func (s *HierarchySystem) Update(w *ecs.World, _ float32) {
	for _, e := range w.Entities() {
		if isRoot(w, e) {
			propagate(w, e, mgl32.Ident4())
		}
	}
}

// isRoot treats an entity whose parent was destroyed as a root.
func isRoot(w *ecs.World, e ecs.Entity) bool {
	p, ok := ecs.TryComponent[ecs.Parent](w, e)
	return !ok || p.Entity == ecs.InvalidEntity || !w.Alive(p.Entity)
}

func propagate(w *ecs.World, e ecs.Entity, parent mgl32.Mat4) {
	world := parent
	if t, ok := ecs.TryComponent[ecs.Transform](w, e); ok {
		world = parent.Mul4(t.Matrix())
		if g, ok := ecs.TryComponent[ecs.GlobalTransform](w, e); ok {
			g.World = world
		}
	}
	// Children without a Transform pass the parent matrix through.
	for _, c := range w.ChildrenOf(e) {
		propagate(w, c, world)
	}
}
