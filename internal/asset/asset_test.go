package asset

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

func TestCreateBox(t *testing.T) {
	m := CreateBox(1, 2, 3)
	if len(m.Positions) != 24 || len(m.Normals) != 24 || len(m.UVs) != 24 {
		t.Fatalf("expected 24 vertices, got %d", len(m.Positions))
	}
	if m.TriangleCount() != 12 {
		t.Fatalf("expected 12 triangles, got %d", m.TriangleCount())
	}
	// every triangle winds counter-clockwise around its outward normal
	for i := 0; i < len(m.Indices); i += 3 {
		p0, p1, p2 := m.Positions[m.Indices[i]], m.Positions[m.Indices[i+1]], m.Positions[m.Indices[i+2]]
		face := p1.Sub(p0).Cross(p2.Sub(p0))
		if face.Dot(m.Normals[m.Indices[i]]) <= 0 {
			t.Errorf("triangle %d winds against its normal", i/3)
		}
	}
	for _, p := range m.Positions {
		if abs(p.X()) != 0.5 || abs(p.Y()) != 1 || abs(p.Z()) != 1.5 {
			t.Fatalf("vertex %v not on the box corners", p)
		}
	}
}

func TestCreateSphere(t *testing.T) {
	m := CreateSphere(2, 8, 16)
	if want := 9 * 17; len(m.Positions) != want {
		t.Fatalf("expected %d vertices, got %d", want, len(m.Positions))
	}
	if want := 8 * 16 * 2; m.TriangleCount() != want {
		t.Fatalf("expected %d triangles, got %d", want, m.TriangleCount())
	}
	for _, p := range m.Positions {
		if d := p.Len(); d < 1.999 || d > 2.001 {
			t.Fatalf("vertex %v not on radius 2", p)
		}
	}
}

func TestParseOBJ(t *testing.T) {
	src := `# quad
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vt 0 0
vt 1 1
f 1/1 2/1 3/2 -1/2
`
	m, err := ParseOBJ(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}
	if m.TriangleCount() != 2 {
		t.Fatalf("expected fan to give 2 triangles, got %d", m.TriangleCount())
	}
	if len(m.Positions) != 4 {
		t.Errorf("expected shared corners merged into 4 vertices, got %d", len(m.Positions))
	}
	for _, n := range m.Normals {
		if !n.ApproxEqualThreshold(mgl32.Vec3{0, 0, 1}, 1e-5) {
			t.Errorf("expected smoothed normal +Z, got %v", n)
		}
	}
	if got := m.UVs[m.Indices[2]]; got != (mgl32.Vec2{1, 1}) {
		t.Errorf("expected uv (1,1) on third corner, got %v", got)
	}
}

func TestParseOBJErrors(t *testing.T) {
	if _, err := ParseOBJ(strings.NewReader("v 0 0 0\nf 1 2 3\n")); err == nil {
		t.Error("expected out of range index error")
	}
	if _, err := ParseOBJ(strings.NewReader("v 0 0\n")); err == nil {
		t.Error("expected short vertex error")
	}
}

func TestTextureSampleFlipsAndClamps(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.NRGBA{R: 255, A: 255}) // top-left red
	img.Set(0, 1, color.NRGBA{B: 255, A: 255}) // bottom-left blue
	tex := NewTextureFromImage(img)

	if got := tex.Sample(0, 0); got != 0xFF0000FF {
		t.Errorf("expected bottom-left blue at v=0, got %#08x", got)
	}
	if got := tex.Sample(0, 0.99); got != 0xFFFF0000 {
		t.Errorf("expected top-left red at v=1, got %#08x", got)
	}
	if got := tex.Sample(-5, 7); got != tex.Sample(0, 1) {
		t.Errorf("expected clamped sample, got %#08x", got)
	}
	var empty *Texture
	if got := empty.Sample(0.5, 0.5); got != 0xFFFFFFFF {
		t.Errorf("expected white for missing texture, got %#08x", got)
	}
}

func TestPathIDStable(t *testing.T) {
	a := PathID("texture", "img/a.png")
	if a != PathID("texture", "img/a.png") {
		t.Fatal("PathID not deterministic")
	}
	if a == PathID("mesh", "img/a.png") {
		t.Error("kind not part of the id")
	}
	if len(a) != 36 {
		t.Errorf("expected uuid shaped id, got %q", a)
	}
}

func TestLoadFont(t *testing.T) {
	f, err := LoadFont("", 0)
	if err != nil {
		t.Fatalf("LoadFont: %v", err)
	}
	if f.Name != DefaultFont || f.Size != 16 {
		t.Errorf("unexpected defaults %s/%d", f.Name, f.Size)
	}
	if f.LineHeight() <= 0 {
		t.Errorf("expected positive line height")
	}
	if _, err := LoadFont("comic-sans", 12); err == nil {
		t.Error("expected unknown font error")
	}
}

func TestLibraryLoadManifest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "assets.yaml")
	manifest := `meshes:
  - id: cube
    kind: Box
    size: [1, 1, 1]
  - id: ball
    kind: Sphere
    radius: 0.5
    lat: 6
    lon: 8
  - id: broken
    kind: Obj
    path: does-not-exist.obj
fonts:
  - id: ui
    name: proggy
    size: 12
materials:
  - id: red
    name: red
    base_color: [1, 0, 0, 1]
`
	if err := os.WriteFile(path, []byte(manifest), 0o644); err != nil {
		t.Fatal(err)
	}
	man, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if man.Count() != 5 {
		t.Fatalf("expected 5 entries, got %d", man.Count())
	}

	lib := NewLibrary(zap.NewNop())
	if n := lib.LoadManifest(man); n != 4 {
		t.Errorf("expected 4 loaded assets, got %d", n)
	}
	cube, ok := lib.Mesh("cube")
	if !ok || cube.TriangleCount() != 12 {
		t.Fatalf("cube not cached")
	}
	again, _ := lib.LoadMesh(MeshEntry{ID: "cube", Kind: MeshBox})
	if again != cube {
		t.Error("expected cached mesh to be reused")
	}
	red, ok := lib.Material("red")
	if !ok || red.BaseColor != (mgl32.Vec4{1, 0, 0, 1}) || red.Shininess != 32 {
		t.Errorf("unexpected material %+v", red)
	}
	if _, ok := lib.Mesh("broken"); ok {
		t.Error("failed mesh should not be cached")
	}

	desc := lib.Describe()
	if len(desc.Meshes) != 2 || desc.Meshes[0].ID != "ball" {
		t.Errorf("unexpected description %+v", desc.Meshes)
	}
}

func abs(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
