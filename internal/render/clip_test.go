package render

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func vert(z, u float32, world mgl32.Vec3) clipVertex {
	return clipVertex{
		pos:    mgl32.Vec4{0, 0, z, 4},
		normal: mgl32.Vec3{0, 0, 1},
		uv:     mgl32.Vec2{u, 0},
		world:  world,
	}
}

func approx(a, b float32) bool { return abs32(a-b) < 1e-5 }

func TestNearTAndLerp(t *testing.T) {
	v0 := vert(-1, 0, mgl32.Vec3{0, 0, 0})
	v1 := vert(2, 3, mgl32.Vec3{3, 0, 0})
	v2 := vert(2, 6, mgl32.Vec3{6, 0, 0})

	if got := nearT(v0, v1); !approx(got, 1.0/3) {
		t.Fatalf("expected t=1/3 on edge 0-1, got %v", got)
	}
	if got := nearT(v2, v0); !approx(got, 2.0/3) {
		t.Fatalf("expected t=2/3 on edge 2-0, got %v", got)
	}

	p := v0.lerp(v1, nearT(v0, v1))
	if !approx(p.pos[2], 0) || !approx(p.uv[0], 1) || !approx(p.world[0], 1) {
		t.Errorf("edge 0-1 intersection: expected z=0 u=1 x=1, got %+v", p)
	}
	q := v2.lerp(v0, nearT(v2, v0))
	if !approx(q.pos[2], 0) || !approx(q.uv[0], 2) || !approx(q.world[0], 2) {
		t.Errorf("edge 2-0 intersection: expected z=0 u=2 x=2, got %+v", q)
	}
}

func TestClipOneVertexBehind(t *testing.T) {
	tri := [3]clipVertex{
		vert(-1, 0, mgl32.Vec3{0, 0, 0}),
		vert(2, 3, mgl32.Vec3{3, 0, 0}),
		vert(2, 6, mgl32.Vec3{6, 0, 0}),
	}
	out := clipNearPlane(tri, nil)
	if len(out) != 2 {
		t.Fatalf("expected quad split into 2 triangles, got %d", len(out))
	}

	seen := map[float32]bool{}
	for _, c := range out {
		for _, v := range c {
			if v.pos[2] < -1e-5 {
				t.Errorf("vertex behind near plane survived: z=%v", v.pos[2])
			}
			if !approx(v.world[0], v.uv[0]) {
				t.Errorf("attributes out of step: u=%v world.x=%v", v.uv[0], v.world[0])
			}
			seen[v.uv[0]] = true
		}
	}
	for _, u := range []float32{1, 2, 3, 6} {
		found := false
		for s := range seen {
			if approx(s, u) {
				found = true
			}
		}
		if !found {
			t.Errorf("expected a vertex with u=%v, got %v", u, seen)
		}
	}
}

func TestClipTwoVerticesBehind(t *testing.T) {
	tri := [3]clipVertex{
		vert(1, 0, mgl32.Vec3{}),
		vert(-1, 2, mgl32.Vec3{}),
		vert(-1, 4, mgl32.Vec3{}),
	}
	out := clipNearPlane(tri, nil)
	if len(out) != 1 {
		t.Fatalf("expected 1 triangle, got %d", len(out))
	}
	// t = 1/2 on both edges.
	if !approx(out[0][1].uv[0], 1) || !approx(out[0][2].uv[0], 2) {
		t.Errorf("expected u=1 and u=2 at the cut, got %v and %v", out[0][1].uv[0], out[0][2].uv[0])
	}
}

func TestClipAllInsideOrBehind(t *testing.T) {
	in := [3]clipVertex{vert(1, 0, mgl32.Vec3{}), vert(2, 0, mgl32.Vec3{}), vert(3, 0, mgl32.Vec3{})}
	if out := clipNearPlane(in, nil); len(out) != 1 || out[0] != in {
		t.Errorf("expected triangle kept as-is, got %v", out)
	}
	behind := [3]clipVertex{vert(-1, 0, mgl32.Vec3{}), vert(-2, 0, mgl32.Vec3{}), vert(-3, 0, mgl32.Vec3{})}
	if out := clipNearPlane(behind, nil); len(out) != 0 {
		t.Errorf("expected triangle dropped, got %d", len(out))
	}
}

func TestClipVertexPastFarPlane(t *testing.T) {
	// w = 4 for every vertex, so z = 6 is beyond the far plane.
	tri := [3]clipVertex{
		vert(1, 0, mgl32.Vec3{}),
		vert(2, 2, mgl32.Vec3{}),
		vert(6, 6, mgl32.Vec3{}),
	}
	if insideNear(tri[2]) {
		t.Fatal("expected z > w to classify as outside")
	}
	out := clipNearPlane(tri, nil)
	if len(out) != 2 {
		t.Fatalf("expected 2 triangles, got %d", len(out))
	}
	for _, c := range out {
		for _, v := range c {
			if v.pos[2] < -1e-5 || v.pos[2] > v.pos[3]+1e-5 {
				t.Errorf("vertex outside depth range survived: z=%v w=%v", v.pos[2], v.pos[3])
			}
		}
	}
	// Edge 2→6 crosses z = 4 halfway, edge 1→6 at t = 3/5.
	if got := farT(tri[1], tri[2]); !approx(got, 0.5) {
		t.Errorf("expected far cut at t=1/2, got %v", got)
	}
	if got := farT(tri[0], tri[2]); !approx(got, 0.6) {
		t.Errorf("expected far cut at t=3/5, got %v", got)
	}
}
