package system

import (
	"github.com/farixgo/engine/internal/component"
	"github.com/farixgo/engine/internal/core/ecs"
)

// PhysicsSystem integrates velocity and position with explicit Euler steps.
// Kinematic bodies are moved by scripts only.
type PhysicsSystem struct{}

func NewPhysicsSystem() *PhysicsSystem { return &PhysicsSystem{} }

func (s *PhysicsSystem) Name() string     { return PhysicsName }
func (s *PhysicsSystem) Start(*ecs.World) {}

func (s *PhysicsSystem) Update(w *ecs.World, dt float32) {
	ecs.Each2(w, func(_ ecs.Entity, rb *component.RigidBody, t *ecs.Transform) {
		if rb.Kinematic {
			return
		}
		rb.Velocity = rb.Velocity.Add(rb.Acceleration.Mul(dt))
		t.Position = t.Position.Add(rb.Velocity.Mul(dt))
	})
}
