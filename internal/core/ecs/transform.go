package ecs

import (
	"reflect"

	"github.com/go-gl/mathgl/mgl32"
)

var transformType = reflect.TypeOf(Transform{})

// Transform is the local transform relative to the parent.
// Rotation holds Euler angles in radians: X pitch, Y yaw, Z roll.
type Transform struct {
	Position mgl32.Vec3 `json:"position"`
	Rotation mgl32.Vec3 `json:"rotation"`
	Scale    mgl32.Vec3 `json:"scale"`
}

func NewTransform() Transform {
	return Transform{Scale: mgl32.Vec3{1, 1, 1}}
}

// RotationMatrix returns Ry(yaw) × Rx(pitch) × Rz(roll).
func (t Transform) RotationMatrix() mgl32.Mat4 {
	return mgl32.HomogRotate3DY(t.Rotation.Y()).
		Mul4(mgl32.HomogRotate3DX(t.Rotation.X())).
		Mul4(mgl32.HomogRotate3DZ(t.Rotation.Z()))
}

// Matrix builds the local model matrix T × S × R: rotate, then scale, then
// translate.
func (t Transform) Matrix() mgl32.Mat4 {
	return mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z()).
		Mul4(mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z())).
		Mul4(t.RotationMatrix())
}

// GlobalTransform caches the world matrix derived by the hierarchy system.
type GlobalTransform struct {
	World mgl32.Mat4 `json:"world"`
}

func NewGlobalTransform() GlobalTransform {
	return GlobalTransform{World: mgl32.Ident4()}
}

// Position is the translation column of the world matrix.
func (g GlobalTransform) Position() mgl32.Vec3 {
	return g.World.Col(3).Vec3()
}

// Parent links a child to its parent. Mutate through World.SetParent only.
type Parent struct {
	Entity Entity `json:"parent"`
}

// Children lists child entities in attachment order.
type Children struct {
	Entities []Entity `json:"children"`
}
