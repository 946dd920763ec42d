package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// screenVertex is a vertex after the perspective divide and viewport map.
// x and y are pixels, z is depth in [0,1], invW is 1/clip.w.
type screenVertex struct {
	x, y, z float32
	invW    float32
	normal  mgl32.Vec3
	uv      mgl32.Vec2
	world   mgl32.Vec3
}

func (r *Renderer) toScreen(v clipVertex) screenVertex {
	w := v.pos[3]
	ndcX := v.pos[0] / w
	ndcY := v.pos[1] / w
	return screenVertex{
		x:      (ndcX + 1) * float32(r.width) / 2,
		y:      (1 - ndcY) * float32(r.height) / 2,
		z:      v.pos[2] / w,
		invW:   1 / w,
		normal: v.normal,
		uv:     v.uv,
		world:  v.world,
	}
}

func finite(f float32) bool {
	return !math.IsNaN(float64(f)) && !math.IsInf(float64(f), 0)
}

func (v screenVertex) valid() bool {
	return finite(v.x) && finite(v.y) && finite(v.z) &&
		v.z >= 0 && v.z <= 1 && v.invW > 0 && finite(v.invW)
}

// facesAway is the screen-space back-face test. The face normal is compared
// with +Z and faces are kept while the dot product stays under 0.2.
func facesAway(a, b, c screenVertex) bool {
	e1 := mgl32.Vec3{b.x - a.x, b.y - a.y, b.z - a.z}
	e2 := mgl32.Vec3{c.x - a.x, c.y - a.y, c.z - a.z}
	n := e1.Cross(e2)
	l := n.Len()
	if l == 0 {
		return false
	}
	return n.Mul(1/l).Dot(mgl32.Vec3{0, 0, 1}) >= 0.2
}

func edge(ax, ay, bx, by, px, py float32) float32 {
	return (px-ax)*(by-ay) - (py-ay)*(bx-ax)
}

// rasterize fills one screen-space triangle.
func (r *Renderer) rasterize(v0, v1, v2 screenVertex, mat *MaterialData) {
	area := edge(v0.x, v0.y, v1.x, v1.y, v2.x, v2.y)
	if abs32(area) < 1e-6 {
		return
	}

	minX := max(0, int(math.Floor(float64(min(v0.x, v1.x, v2.x)))))
	minY := max(0, int(math.Floor(float64(min(v0.y, v1.y, v2.y)))))
	maxX := min(r.width-1, int(math.Ceil(float64(max(v0.x, v1.x, v2.x)))))
	maxY := min(r.height-1, int(math.Ceil(float64(max(v0.y, v1.y, v2.y)))))
	if minX > maxX || minY > maxY {
		return
	}

	for y := minY; y <= maxY; y++ {
		py := float32(y) + 0.5
		for x := minX; x <= maxX; x++ {
			px := float32(x) + 0.5
			w0 := edge(v1.x, v1.y, v2.x, v2.y, px, py)
			w1 := edge(v2.x, v2.y, v0.x, v0.y, px, py)
			w2 := edge(v0.x, v0.y, v1.x, v1.y, px, py)
			inside := (w0 >= 0 && w1 >= 0 && w2 >= 0) || (w0 <= 0 && w1 <= 0 && w2 <= 0)
			if !inside {
				continue
			}
			a, b, c := w0/area, w1/area, w2/area

			z := a*v0.z + b*v1.z + c*v2.z
			if !finite(z) || z < 0 || z > 1 {
				continue
			}
			if r.ctx.ZBuffer && z >= r.depth[y*r.width+x] {
				continue
			}

			iw := a*v0.invW + b*v1.invW + c*v2.invW
			if iw <= 0 || !finite(iw) {
				continue
			}
			pa, pb, pc := a*v0.invW/iw, b*v1.invW/iw, c*v2.invW/iw

			uv := v0.uv.Mul(pa).Add(v1.uv.Mul(pb)).Add(v2.uv.Mul(pc))
			world := v0.world.Mul(pa).Add(v1.world.Mul(pb)).Add(v2.world.Mul(pc))
			n := v0.normal.Mul(pa).Add(v1.normal.Mul(pb)).Add(v2.normal.Mul(pc))
			if l := n.Len(); l > 0 {
				n = n.Mul(1 / l)
			}

			r.drawPixel(x, y, z, r.shade(mat, uv, n, world))
		}
	}
}

// shade returns the fragment color in [0,1] RGBA.
func (r *Renderer) shade(mat *MaterialData, uv mgl32.Vec2, n, world mgl32.Vec3) mgl32.Vec4 {
	uv = mgl32.Vec2{
		mat.UVMin[0] + uv[0]*(mat.UVMax[0]-mat.UVMin[0]),
		mat.UVMin[1] + uv[1]*(mat.UVMax[1]-mat.UVMin[1]),
	}

	base := mat.BaseColor
	if mat.Texture != nil {
		base = UnpackColor(mat.Texture.Sample(uv[0], uv[1]))
	}
	if !r.ctx.Lighting || !mat.Lit || r.ctx.Is2DPass {
		return base
	}

	l := r.lightDir
	diff := max(mat.Ambient, mat.Diffuse*n.Dot(l.Mul(-1)))

	var spec float32
	if v := r.ctx.CameraPos.Sub(world); v.Len() > 0 {
		v = v.Normalize()
		rl := Reflect(l.Mul(-1), n)
		if d := v.Dot(rl); d > 0 {
			spec = float32(math.Pow(float64(d), float64(mat.Shininess)))
		}
	}

	k := diff + mat.Specular*spec
	lc := r.ctx.LightColor
	return mgl32.Vec4{
		clamp01(base[0] * k * lc[0]),
		clamp01(base[1] * k * lc[1]),
		clamp01(base[2] * k * lc[2]),
		base[3],
	}
}

// drawPixel depth-tests, writes depth and blends c over the framebuffer.
func (r *Renderer) drawPixel(x, y int, z float32, c mgl32.Vec4) {
	i := y*r.width + x
	if r.ctx.ZBuffer {
		if z >= r.depth[i] {
			return
		}
		r.depth[i] = z
	}
	dst := UnpackColor(r.color[i])
	r.color[i] = PackColor(Blend(c, dst))
	r.stats.Pixels++
}
