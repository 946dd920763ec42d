package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// PerspectiveZO is a right-handed perspective projection that maps view-space
// depth -near..-far to clip z/w 0..1.
func PerspectiveZO(fovy, aspect, near, far float32) mgl32.Mat4 {
	f := float32(1 / math.Tan(float64(fovy)/2))
	var m mgl32.Mat4
	m[0] = f / aspect
	m[5] = f
	m[10] = far / (near - far)
	m[11] = -1
	m[14] = near * far / (near - far)
	return m
}

// OrthoZO is an orthographic projection with clip z in 0..1.
func OrthoZO(left, right, bottom, top, near, far float32) mgl32.Mat4 {
	var m mgl32.Mat4
	m[0] = 2 / (right - left)
	m[5] = 2 / (top - bottom)
	m[10] = -1 / (far - near)
	m[12] = -(right + left) / (right - left)
	m[13] = -(top + bottom) / (top - bottom)
	m[14] = -near / (far - near)
	m[15] = 1
	return m
}

// ViewFromWorld builds a view matrix for a camera whose world matrix is w.
// The camera looks down its local -Z with +Y up.
func ViewFromWorld(w mgl32.Mat4) (view mgl32.Mat4, pos mgl32.Vec3) {
	pos = w.Col(3).Vec3()
	forward := w.Mul4x1(mgl32.Vec4{0, 0, -1, 0}).Vec3()
	if forward.Len() < 1e-6 {
		return mgl32.Ident4(), pos
	}
	forward = forward.Normalize()
	up := mgl32.Vec3{0, 1, 0}
	if forward.Cross(up).Len() < 1e-6 {
		up = w.Mul4x1(mgl32.Vec4{0, 1, 0, 0}).Vec3()
	}
	return mgl32.LookAtV(pos, pos.Add(forward), up), pos
}

// Reflect mirrors i about the plane with unit normal n.
func Reflect(i, n mgl32.Vec3) mgl32.Vec3 {
	return i.Sub(n.Mul(2 * i.Dot(n)))
}
