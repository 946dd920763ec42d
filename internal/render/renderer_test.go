package render

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/farixgo/engine/internal/asset"
)

func flatContext() Context {
	ctx := DefaultContext()
	ctx.Projection = OrthoZO(-1, 1, -1, 1, 0, 10)
	ctx.Lighting = false
	return ctx
}

func triangleAt(z float32) MeshData {
	return MeshData{
		Positions: []mgl32.Vec3{{-0.9, -0.9, z}, {0.9, -0.9, z}, {0, 0.9, z}},
		Normals:   []mgl32.Vec3{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}},
		UVs:       []mgl32.Vec2{{0, 0}, {1, 0}, {0.5, 1}},
		Indices:   []uint32{0, 1, 2},
	}
}

func solid(c mgl32.Vec4) MaterialData {
	m := DefaultMaterialData()
	m.BaseColor = c
	return m
}

func TestDepthTestIgnoresSubmissionOrder(t *testing.T) {
	red := solid(mgl32.Vec4{1, 0, 0, 1})
	green := solid(mgl32.Vec4{0, 1, 0, 1})

	for _, nearFirst := range []bool{true, false} {
		r := NewRenderer(64, 64, zap.NewNop())
		r.BeginFrame(flatContext())
		if nearFirst {
			r.RenderMesh(triangleAt(-1), mgl32.Ident4(), red)
			r.RenderMesh(triangleAt(-5), mgl32.Ident4(), green)
		} else {
			r.RenderMesh(triangleAt(-5), mgl32.Ident4(), green)
			r.RenderMesh(triangleAt(-1), mgl32.Ident4(), red)
		}
		r.EndFrame()

		if got := r.Pixel(32, 32); got != 0xFFFF0000 {
			t.Errorf("nearFirst=%v: expected red 0xFFFF0000, got %#08x", nearFirst, got)
		}
		if d := r.Depth()[32*64+32]; !approx(d, 0.1) {
			t.Errorf("nearFirst=%v: expected depth 0.1, got %v", nearFirst, d)
		}
	}
}

func TestAlphaBlend(t *testing.T) {
	r := NewRenderer(32, 32, zap.NewNop())
	ctx := flatContext()
	ctx.ClearColor = 0xFF0000FF
	r.BeginFrame(ctx)
	r.RenderMesh(triangleAt(-1), mgl32.Ident4(), solid(mgl32.Vec4{1, 0, 0, 0.5}))
	r.EndFrame()

	// 0.5·(1,0,0) + 0.5·(0,0,1), alpha 0.5 + 1·0.5.
	if got := r.Pixel(16, 16); got != 0xFF7F007F {
		t.Errorf("expected 0xFF7F007F, got %#08x", got)
	}
	if got := r.Pixel(0, 0); got != 0xFF0000FF {
		t.Errorf("expected clear color outside the triangle, got %#08x", got)
	}
}

func lookFromZ5() Context {
	ctx := DefaultContext()
	ctx.View = mgl32.LookAtV(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	ctx.Projection = PerspectiveZO(math.Pi/2, 1, 1, 100)
	ctx.CameraPos = mgl32.Vec3{0, 0, 5}
	return ctx
}

func TestLitBoxFacingCamera(t *testing.T) {
	r := NewRenderer(64, 64, zap.NewNop())
	r.BeginFrame(lookFromZ5())
	box := MeshData{}
	box.Positions = []mgl32.Vec3{{-0.5, -0.5, 0.5}, {0.5, -0.5, 0.5}, {0.5, 0.5, 0.5}, {-0.5, 0.5, 0.5}}
	box.Normals = []mgl32.Vec3{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}, {0, 0, 1}}
	box.UVs = make([]mgl32.Vec2, 4)
	box.Indices = []uint32{0, 1, 2, 0, 2, 3}
	mat := solid(mgl32.Vec4{1, 0, 0, 1})
	mat.DoubleSided = false
	r.RenderMesh(box, mgl32.Ident4(), mat)
	r.EndFrame()

	c := UnpackColor(r.Pixel(32, 32))
	if c[0] < 0.8 || c[1] > 0.2 || c[2] > 0.2 {
		t.Errorf("expected red-ish center pixel, got %v", c)
	}
	if d := r.Depth()[32*64+32]; d <= 0 || d >= 1 {
		t.Errorf("expected depth in (0,1), got %v", d)
	}
}

func TestBackFaceCulled(t *testing.T) {
	r := NewRenderer(64, 64, zap.NewNop())
	r.BeginFrame(lookFromZ5())
	mat := solid(mgl32.Vec4{1, 0, 0, 1})
	mat.DoubleSided = false
	r.RenderMesh(r.quad, mgl32.HomogRotate3DY(math.Pi), mat)
	r.EndFrame()

	if got := r.Pixel(32, 32); got != DefaultClearColor {
		t.Errorf("expected back face culled, got %#08x", got)
	}
	if r.Stats().Culled == 0 {
		t.Error("expected culled triangles in stats")
	}

	mat.DoubleSided = true
	r.BeginFrame(lookFromZ5())
	r.RenderMesh(r.quad, mgl32.HomogRotate3DY(math.Pi), mat)
	r.EndFrame()
	if got := r.Pixel(32, 32); got == DefaultClearColor {
		t.Error("expected double-sided quad to be drawn")
	}
}

func TestTriangleBehindCameraSkipped(t *testing.T) {
	r := NewRenderer(32, 32, zap.NewNop())
	r.BeginFrame(lookFromZ5())
	r.RenderMesh(triangleAt(8), mgl32.Ident4(), solid(mgl32.Vec4{1, 0, 0, 1}))
	r.EndFrame()
	if r.Stats().Pixels != 0 {
		t.Errorf("expected nothing drawn, got %d pixels", r.Stats().Pixels)
	}
}

func TestNaNTriangleDropped(t *testing.T) {
	r := NewRenderer(32, 32, zap.NewNop())
	r.BeginFrame(flatContext())
	nan := float32(math.NaN())
	r.RenderMesh(triangleAt(-1), mgl32.Translate3D(nan, 0, 0), solid(mgl32.Vec4{1, 0, 0, 1}))
	r.EndFrame()
	if r.Stats().Pixels != 0 {
		t.Errorf("expected NaN triangle dropped, got %d pixels", r.Stats().Pixels)
	}
}

func TestSpriteInUIPass(t *testing.T) {
	r := NewRenderer(100, 100, zap.NewNop())
	r.BeginFrame(flatContext())
	r.BeginUIPass()
	model := mgl32.Translate3D(50, 50, 0).Mul4(mgl32.Scale3D(1, -1, 1))
	r.RenderSprite(SpriteData{Color: mgl32.Vec4{0, 1, 0, 1}, Size: mgl32.Vec2{20, 20}}, model)
	r.EndFrame()

	if got := r.Pixel(50, 50); got != 0xFF00FF00 {
		t.Errorf("expected green sprite at center, got %#08x", got)
	}
	if got := r.Pixel(70, 50); got != DefaultClearColor {
		t.Errorf("expected clear color outside sprite, got %#08x", got)
	}
}

func TestDrawTextMarksPixels(t *testing.T) {
	r := NewRenderer(64, 32, zap.NewNop())
	r.BeginFrame(flatContext())
	r.BeginUIPass()
	r.DrawText(nil, "HI", mgl32.Vec3{2, 2, 0}, 8, mgl32.Vec4{1, 1, 1, 1})
	r.EndFrame()

	drawn := 0
	for _, c := range r.Framebuffer() {
		if c == 0xFFFFFFFF {
			drawn++
		}
	}
	if drawn == 0 {
		t.Error("expected text pixels in the framebuffer")
	}
}

func TestFoldText(t *testing.T) {
	cases := map[string]string{
		"café":     "cafe",
		"Ångström": "Angstrom",
		"日本":       "??",
		"plain":    "plain",
	}
	for in, want := range cases {
		if got := foldText(in); got != want {
			t.Errorf("foldText(%q): expected %q, got %q", in, want, got)
		}
	}
}

func TestRenderOutsideFramePanics(t *testing.T) {
	r := NewRenderer(8, 8, zap.NewNop())
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	r.RenderMesh(triangleAt(-1), mgl32.Ident4(), DefaultMaterialData())
}

func TestProjectionDepthRange(t *testing.T) {
	p := PerspectiveZO(math.Pi/2, 1, 1, 100)
	near := p.Mul4x1(mgl32.Vec4{0, 0, -1, 1})
	far := p.Mul4x1(mgl32.Vec4{0, 0, -100, 1})
	if !approx(near[2]/near[3], 0) || !approx(far[2]/far[3], 1) {
		t.Errorf("perspective: expected depth 0..1, got %v and %v", near[2]/near[3], far[2]/far[3])
	}

	o := OrthoZO(-1, 1, -1, 1, 0, 100)
	if z := o.Mul4x1(mgl32.Vec4{0, 0, -100, 1})[2]; !approx(z, 1) {
		t.Errorf("ortho: expected far depth 1, got %v", z)
	}
}

func TestViewFromWorld(t *testing.T) {
	view, pos := ViewFromWorld(mgl32.Translate3D(0, 0, 5))
	if pos != (mgl32.Vec3{0, 0, 5}) {
		t.Errorf("expected camera at (0,0,5), got %v", pos)
	}
	origin := view.Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	if !approx(origin[2], -5) || !approx(origin[0], 0) || !approx(origin[1], 0) {
		t.Errorf("expected origin 5 units in front, got %v", origin)
	}
}

func TestResize(t *testing.T) {
	r := NewRenderer(8, 8, zap.NewNop())
	r.Resize(16, 4)
	if r.Width() != 16 || r.Height() != 4 || len(r.Framebuffer()) != 64 || len(r.Depth()) != 64 {
		t.Errorf("expected 16x4 buffers, got %dx%d", r.Width(), r.Height())
	}
	if img := r.Image(); img.Bounds().Dx() != 16 || img.Bounds().Dy() != 4 {
		t.Errorf("expected 16x4 image, got %v", img.Bounds())
	}
}

func TestSpecularFacesTheCamera(t *testing.T) {
	r := NewRenderer(64, 64, zap.NewNop())
	r.BeginFrame(lookFromZ5())
	r.RenderMesh(r.quad, mgl32.Ident4(), solid(mgl32.Vec4{0.5, 0.5, 0.5, 1}))
	r.EndFrame()

	// Head-on light reflects straight back along -Z, away from the camera,
	// so only the diffuse term lands.
	c := UnpackColor(r.Pixel(32, 32))
	if abs32(c[0]-0.5) > 0.01 {
		t.Errorf("expected diffuse-only 0.5, got %v", c[0])
	}
}

// stripes is a 4×1 texture: red, green, blue, white from u=0 to u=1.
func stripes() *asset.Texture {
	return &asset.Texture{
		Width:  4,
		Height: 1,
		Pixels: []uint32{0xFFFF0000, 0xFF00FF00, 0xFF0000FF, 0xFFFFFFFF},
	}
}

func TestTexturePerspectiveCorrect(t *testing.T) {
	r := NewRenderer(64, 64, zap.NewNop())
	ctx := lookFromZ5()
	ctx.Lighting = false
	r.BeginFrame(ctx)

	// The right edge recedes to z = -10, so u is squeezed toward the far side
	// on screen.
	slant := MeshData{
		Positions: []mgl32.Vec3{{-1, -1, 0}, {1, -1, -10}, {1, 1, -10}, {-1, 1, 0}},
		Normals:   []mgl32.Vec3{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}, {0, 0, 1}},
		UVs:       []mgl32.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}},
		Indices:   []uint32{0, 1, 2, 0, 2, 3},
	}
	mat := DefaultMaterialData()
	mat.Texture = stripes()
	r.RenderMesh(slant, mgl32.Ident4(), mat)
	r.EndFrame()

	// Column 31 sits at ndc x = -1/64. Solving (2u-1)/(5+10u) for that gives
	// u ≈ 0.43 (green); a screen-linear u would be ≈ 0.69 (blue).
	if got := r.Pixel(31, 32); got != 0xFF00FF00 {
		t.Errorf("expected green texel from perspective-correct u, got %#08x", got)
	}
}

func TestUVRemap(t *testing.T) {
	halves := &asset.Texture{Width: 2, Height: 1, Pixels: []uint32{0xFFFF0000, 0xFF00FF00}}

	draw := func(mat MaterialData) uint32 {
		r := NewRenderer(64, 64, zap.NewNop())
		r.BeginFrame(flatContext())
		r.RenderMesh(triangleAt(-1), mgl32.Ident4(), mat)
		r.EndFrame()
		// Near the bottom-left corner, where the mesh u is close to 0.
		return r.Pixel(5, 58)
	}

	mat := DefaultMaterialData()
	mat.Lit = false
	mat.Texture = halves
	if got := draw(mat); got != 0xFFFF0000 {
		t.Errorf("expected red from the left half without a remap, got %#08x", got)
	}

	mat.UVMin = mgl32.Vec2{0.5, 0}
	mat.UVMax = mgl32.Vec2{1, 1}
	if got := draw(mat); got != 0xFF00FF00 {
		t.Errorf("expected green once u is remapped into [0.5,1], got %#08x", got)
	}
}
