// Package render is the software rasterizer: a packed ARGB framebuffer and a
// float depth buffer filled triangle by triangle through clip, screen map,
// edge-function raster and per-pixel shading.
package render

import (
	"github.com/farixgo/engine/internal/asset"
	"github.com/go-gl/mathgl/mgl32"
)

// DefaultClearColor is sky blue.
const DefaultClearColor uint32 = 0xFF87CEEB

// Context is the per-pass camera and pipeline state.
type Context struct {
	View         mgl32.Mat4
	Projection   mgl32.Mat4
	CameraPos    mgl32.Vec3
	Orthographic bool
	Is2DPass     bool
	ZBuffer      bool
	Lighting     bool
	LightDir     mgl32.Vec3
	LightColor   mgl32.Vec3
	ClearColor   uint32
}

// DefaultContext returns a lit, depth-tested 3D context with identity
// matrices and a light shining down -Z.
func DefaultContext() Context {
	return Context{
		View:       mgl32.Ident4(),
		Projection: mgl32.Ident4(),
		ZBuffer:    true,
		Lighting:   true,
		LightDir:   mgl32.Vec3{0, 0, -1},
		LightColor: mgl32.Vec3{1, 1, 1},
		ClearColor: DefaultClearColor,
	}
}

// UIContext returns the screen-space context for a w×h target: identity
// view, y-down orthographic projection, no depth test, no lighting.
func UIContext(w, h int, clear uint32) Context {
	return Context{
		View:       mgl32.Ident4(),
		Projection: OrthoZO(0, float32(w), float32(h), 0, 0, 1),
		Is2DPass:   true,
		LightDir:   mgl32.Vec3{0, 0, -1},
		LightColor: mgl32.Vec3{1, 1, 1},
		ClearColor: clear,
	}
}

// MeshData is the renderer's read-only view of a mesh.
type MeshData struct {
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	UVs       []mgl32.Vec2
	Indices   []uint32
}

// MeshFrom wraps an asset mesh without copying its arrays.
func MeshFrom(m *asset.Mesh) MeshData {
	if m == nil {
		return MeshData{}
	}
	return MeshData{
		Positions: m.Positions,
		Normals:   m.Normals,
		UVs:       m.UVs,
		Indices:   m.Indices,
	}
}

// MaterialData is the shading input for one draw call.
type MaterialData struct {
	BaseColor   mgl32.Vec4
	Texture     *asset.Texture
	Ambient     float32
	Diffuse     float32
	Specular    float32
	Shininess   float32
	DoubleSided bool
	Lit         bool
	UVMin       mgl32.Vec2
	UVMax       mgl32.Vec2
}

// DefaultMaterialData is opaque white, lit and double sided.
func DefaultMaterialData() MaterialData {
	return MaterialData{
		BaseColor:   mgl32.Vec4{1, 1, 1, 1},
		Ambient:     0.1,
		Diffuse:     1,
		Specular:    0.5,
		Shininess:   32,
		DoubleSided: true,
		Lit:         true,
		UVMax:       mgl32.Vec2{1, 1},
	}
}

// SpriteData describes a flat quad. Size scales the unit quad.
type SpriteData struct {
	Texture    *asset.Texture
	Color      mgl32.Vec4
	Size       mgl32.Vec2
	UseTexture bool
	UVMin      mgl32.Vec2
	UVMax      mgl32.Vec2
}
