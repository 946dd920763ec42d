package render

import "github.com/go-gl/mathgl/mgl32"

// clipVertex is a vertex in clip space with every attribute the rasterizer
// interpolates.
type clipVertex struct {
	pos    mgl32.Vec4
	normal mgl32.Vec3
	uv     mgl32.Vec2
	world  mgl32.Vec3
}

func (a clipVertex) lerp(b clipVertex, t float32) clipVertex {
	return clipVertex{
		pos:    a.pos.Add(b.pos.Sub(a.pos).Mul(t)),
		normal: a.normal.Add(b.normal.Sub(a.normal).Mul(t)),
		uv:     a.uv.Add(b.uv.Sub(a.uv).Mul(t)),
		world:  a.world.Add(b.world.Sub(a.world).Mul(t)),
	}
}

// nearT is where edge a→b crosses clip z = 0.
func nearT(a, b clipVertex) float32 {
	return (0 - a.pos[2]) / (b.pos[2] - a.pos[2])
}

// farT is where edge a→b crosses clip z = w.
func farT(a, b clipVertex) float32 {
	return (a.pos[3] - a.pos[2]) / ((b.pos[2] - a.pos[2]) - (b.pos[3] - a.pos[3]))
}

// crossT cuts edge in→out at the depth plane out lies beyond.
func crossT(in, out clipVertex) float32 {
	if out.pos[2] < 0 {
		return nearT(in, out)
	}
	return farT(in, out)
}

// insideNear reports whether v lies in the clip depth range 0 ≤ z ≤ w.
func insideNear(v clipVertex) bool {
	return v.pos[2] >= 0 && v.pos[2] <= v.pos[3]
}

// inFrustum is the early-out test for a single vertex.
func inFrustum(p mgl32.Vec4) bool {
	w := p[3]
	return w > 0 &&
		abs32(p[0]) <= w && abs32(p[1]) <= w &&
		p[2] >= 0 && p[2] <= w
}

// clipNearPlane clips tri to the depth range and appends the surviving
// triangles to out. Edges leaving through z = 0 are cut there, edges leaving
// past z = w are cut at the far plane. Winding is preserved.
func clipNearPlane(tri [3]clipVertex, out [][3]clipVertex) [][3]clipVertex {
	var in, outside [3]int
	ni, no := 0, 0
	for i, v := range tri {
		if insideNear(v) {
			in[ni] = i
			ni++
		} else {
			outside[no] = i
			no++
		}
	}

	switch ni {
	case 0:
		return out
	case 3:
		return append(out, tri)
	case 1:
		// Rotate so the inside vertex leads and winding stays intact.
		i := in[0]
		a, b, c := tri[i], tri[(i+1)%3], tri[(i+2)%3]
		ab := a.lerp(b, crossT(a, b))
		ac := a.lerp(c, crossT(a, c))
		return append(out, [3]clipVertex{a, ab, ac})
	default:
		// Rotate so the outside vertex trails.
		o := outside[0]
		a, b, c := tri[(o+1)%3], tri[(o+2)%3], tri[o]
		bc := b.lerp(c, crossT(b, c))
		ac := a.lerp(c, crossT(a, c))
		return append(out,
			[3]clipVertex{a, b, bc},
			[3]clipVertex{a, bc, ac},
		)
	}
}

func abs32(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
