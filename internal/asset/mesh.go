// Package asset holds the engine's CPU-side assets (meshes, textures, fonts,
// materials) and the library that caches them by UUID.
package asset

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// MeshKind records how a mesh was produced so scenes can rebuild it.
type MeshKind string

const (
	MeshBox    MeshKind = "Box"
	MeshQuad   MeshKind = "Sprite"
	MeshSphere MeshKind = "Sphere"
	MeshOBJ    MeshKind = "Obj"
)

// Mesh is an indexed triangle list. Positions, Normals and UVs are parallel
// per-vertex arrays; Indices holds three entries per triangle.
type Mesh struct {
	UUID string
	Kind MeshKind
	Path string

	// Generator parameters, kept for serialization.
	Size   mgl32.Vec3
	Radius float32
	Lat    int
	Lon    int

	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	UVs       []mgl32.Vec2
	Indices   []uint32
}

// TriangleCount returns len(Indices)/3.
func (m *Mesh) TriangleCount() int { return len(m.Indices) / 3 }

func (m *Mesh) addVertex(p, n mgl32.Vec3, uv mgl32.Vec2) {
	m.Positions = append(m.Positions, p)
	m.Normals = append(m.Normals, n)
	m.UVs = append(m.UVs, uv)
}

// CreateBox builds an axis-aligned box centred on the origin with 24 vertices
// (four per face, so each face has its own flat normal) and two
// counter-clockwise triangles per face.
func CreateBox(width, height, depth float32) *Mesh {
	m := &Mesh{Kind: MeshBox, Size: mgl32.Vec3{width, height, depth}}
	w, h, d := width/2, height/2, depth/2

	faces := []struct {
		n  mgl32.Vec3
		ps [4]mgl32.Vec3
	}{
		{mgl32.Vec3{0, 0, 1}, [4]mgl32.Vec3{{-w, -h, d}, {w, -h, d}, {w, h, d}, {-w, h, d}}},
		{mgl32.Vec3{0, 0, -1}, [4]mgl32.Vec3{{w, -h, -d}, {-w, -h, -d}, {-w, h, -d}, {w, h, -d}}},
		{mgl32.Vec3{-1, 0, 0}, [4]mgl32.Vec3{{-w, -h, -d}, {-w, -h, d}, {-w, h, d}, {-w, h, -d}}},
		{mgl32.Vec3{1, 0, 0}, [4]mgl32.Vec3{{w, -h, d}, {w, -h, -d}, {w, h, -d}, {w, h, d}}},
		{mgl32.Vec3{0, 1, 0}, [4]mgl32.Vec3{{-w, h, d}, {w, h, d}, {w, h, -d}, {-w, h, -d}}},
		{mgl32.Vec3{0, -1, 0}, [4]mgl32.Vec3{{-w, -h, -d}, {w, -h, -d}, {w, -h, d}, {-w, -h, d}}},
	}
	uvs := [4]mgl32.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

	for i, f := range faces {
		for j := 0; j < 4; j++ {
			m.addVertex(f.ps[j], f.n, uvs[j])
		}
		base := uint32(i * 4)
		m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return m
}

// CreateQuad builds a width×height quad in the XY plane facing +Z.
func CreateQuad(width, height float32) *Mesh {
	m := &Mesh{Kind: MeshQuad, Size: mgl32.Vec3{width, height, 0}}
	w, h := width/2, height/2
	n := mgl32.Vec3{0, 0, 1}
	m.addVertex(mgl32.Vec3{-w, -h, 0}, n, mgl32.Vec2{0, 0})
	m.addVertex(mgl32.Vec3{w, -h, 0}, n, mgl32.Vec2{1, 0})
	m.addVertex(mgl32.Vec3{w, h, 0}, n, mgl32.Vec2{1, 1})
	m.addVertex(mgl32.Vec3{-w, h, 0}, n, mgl32.Vec2{0, 1})
	m.Indices = []uint32{0, 1, 2, 0, 2, 3}
	return m
}

// CreateSphere builds a UV sphere with (lat+1)×(lon+1) vertices.
func CreateSphere(radius float32, lat, lon int) *Mesh {
	if lat < 2 {
		lat = 2
	}
	if lon < 3 {
		lon = 3
	}
	m := &Mesh{Kind: MeshSphere, Radius: radius, Lat: lat, Lon: lon}

	for i := 0; i <= lat; i++ {
		theta := float64(i) * math.Pi / float64(lat)
		sinT, cosT := math.Sincos(theta)
		for j := 0; j <= lon; j++ {
			phi := float64(j) * 2 * math.Pi / float64(lon)
			sinP, cosP := math.Sincos(phi)
			n := mgl32.Vec3{float32(sinT * cosP), float32(cosT), float32(sinT * sinP)}
			uv := mgl32.Vec2{float32(j) / float32(lon), 1 - float32(i)/float32(lat)}
			m.addVertex(n.Mul(radius), n, uv)
		}
	}

	stride := uint32(lon + 1)
	for i := 0; i < lat; i++ {
		for j := 0; j < lon; j++ {
			cur := uint32(i)*stride + uint32(j)
			next := cur + stride
			m.Indices = append(m.Indices, cur, cur+1, next, next, cur+1, next+1)
		}
	}
	return m
}
