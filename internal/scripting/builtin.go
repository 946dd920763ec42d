package scripting

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/farixgo/engine/internal/core/ecs"
)

// Rotator spins its entity around Speed (radians per second per axis).
type Rotator struct {
	ecs.BaseScript
	Speed mgl32.Vec3
}

func (r *Rotator) Name() string { return "Rotator" }

func (r *Rotator) OnUpdate(dt float32) {
	if t := r.GameObject().Transform(); t != nil {
		t.Rotation = t.Rotation.Add(r.Speed.Mul(dt))
	}
}

// Follow keeps its entity at Offset from the first entity named Target.
type Follow struct {
	ecs.BaseScript
	Target string
	Offset mgl32.Vec3

	target ecs.Entity
}

func (f *Follow) Name() string { return "Follow" }

func (f *Follow) OnStart() {
	if ids := f.World.EntitiesByName(f.Target); len(ids) > 0 {
		f.target = ids[0]
	}
}

func (f *Follow) OnUpdate(float32) {
	if f.target == ecs.InvalidEntity || !f.World.Alive(f.target) {
		return
	}
	src, ok := ecs.TryComponent[ecs.Transform](f.World, f.target)
	if !ok {
		return
	}
	if t := f.GameObject().Transform(); t != nil {
		t.Position = src.Position.Add(f.Offset)
	}
}

// RegisterBuiltins adds the Go scripts shipped with the engine.
func RegisterBuiltins(reg *Registry) {
	reg.Register("Rotator", func() ecs.Script { return &Rotator{Speed: mgl32.Vec3{0, 1, 0}} })
	reg.Register("Follow", func() ecs.Script { return &Follow{} })
}
