package system

import (
	"github.com/farixgo/engine/internal/component"
	"github.com/farixgo/engine/internal/core/ecs"
	"github.com/farixgo/engine/internal/input"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	lookScale = 0.005 // radians per pixel at sensitivity 1
	maxPitch  = 1.5
)

// CameraControllerSystem flies cameras that carry a CameraController: WASD
// moves in the view plane, Q/E moves down/up, dragging with the right mouse
// button looks around.
type CameraControllerSystem struct{}

func NewCameraControllerSystem() *CameraControllerSystem { return &CameraControllerSystem{} }

func (s *CameraControllerSystem) Name() string     { return CameraControllerName }
func (s *CameraControllerSystem) Start(*ecs.World) {}

func (s *CameraControllerSystem) Update(w *ecs.World, dt float32) {
	in, ok := ecs.Resource[input.State](w)
	if !ok {
		return
	}
	ecs.Each2(w, func(_ ecs.Entity, c *component.CameraController, t *ecs.Transform) {
		if !c.Active {
			return
		}
		if in.Button(input.MouseRight) {
			t.Rotation[1] -= in.MouseDelta[0] * c.Sensitivity * lookScale
			t.Rotation[0] -= in.MouseDelta[1] * c.Sensitivity * lookScale
			t.Rotation[0] = clamp(t.Rotation[0], -maxPitch, maxPitch)
		}

		rot := t.RotationMatrix()
		forward := rot.Mul4x1(mgl32.Vec4{0, 0, -1, 0}).Vec3()
		right := rot.Mul4x1(mgl32.Vec4{1, 0, 0, 0}).Vec3()
		up := mgl32.Vec3{0, 1, 0}

		var move mgl32.Vec3
		if in.Down(input.KeyW) {
			move = move.Add(forward)
		}
		if in.Down(input.KeyS) {
			move = move.Sub(forward)
		}
		if in.Down(input.KeyD) {
			move = move.Add(right)
		}
		if in.Down(input.KeyA) {
			move = move.Sub(right)
		}
		if in.Down(input.KeyE) {
			move = move.Add(up)
		}
		if in.Down(input.KeyQ) {
			move = move.Sub(up)
		}
		if move.Len() > 0 {
			t.Position = t.Position.Add(move.Normalize().Mul(c.Speed * dt))
		}
	})
}
