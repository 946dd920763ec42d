package system

import (
	"math"

	"github.com/farixgo/engine/internal/component"
	"github.com/farixgo/engine/internal/core/ecs"
	"github.com/farixgo/engine/internal/core/event"
	"github.com/go-gl/mathgl/mgl32"
)

// CollisionSystem tests every pair of colliders once per frame and emits an
// event.Collision for each overlap. Boxes are axis aligned; capsules stand
// upright along Y.
type CollisionSystem struct {
	pairs []event.Collision
}

func NewCollisionSystem() *CollisionSystem { return &CollisionSystem{} }

func (s *CollisionSystem) Name() string     { return CollisionName }
func (s *CollisionSystem) Start(*ecs.World) {}

// Pairs returns the overlaps found by the last Update.
func (s *CollisionSystem) Pairs() []event.Collision { return s.pairs }

// body is a collider resolved to world space.
type body struct {
	e      ecs.Entity
	shape  component.Shape
	center mgl32.Vec3
	half   mgl32.Vec3 // box half extents
	radius float32    // sphere and capsule radius
	seg    float32    // capsule half segment length
}

func (s *CollisionSystem) Update(w *ecs.World, _ float32) {
	s.pairs = s.pairs[:0]

	var bodies []body
	ecs.Each2(w, func(e ecs.Entity, t *ecs.Transform, c *component.Collider) {
		bodies = append(bodies, resolve(w, e, t, c))
	})

	bus, _ := ecs.Resource[event.Bus](w)
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			if !overlap(bodies[i], bodies[j]) {
				continue
			}
			ev := event.Collision{A: bodies[i].e, B: bodies[j].e}
			s.pairs = append(s.pairs, ev)
			if bus != nil {
				event.Emit(bus, ev)
			}
		}
	}
}

func resolve(w *ecs.World, e ecs.Entity, t *ecs.Transform, c *component.Collider) body {
	// Roots use this frame's position; children rely on last frame's
	// propagated matrix.
	center := t.Position
	if !isRoot(w, e) {
		if g, ok := ecs.TryComponent[ecs.GlobalTransform](w, e); ok {
			center = g.Position()
		}
	}
	sc := mgl32.Vec3{abs(t.Scale[0]), abs(t.Scale[1]), abs(t.Scale[2])}
	b := body{e: e, shape: c.Shape, center: center}
	switch c.Shape {
	case component.ShapeSphere:
		b.radius = c.Radius * max(sc[0], sc[1], sc[2])
	case component.ShapeCapsule:
		b.radius = c.Radius * max(sc[0], sc[2])
		b.seg = max(0, c.Size[1]*sc[1]/2-b.radius)
	default:
		b.half = mgl32.Vec3{c.Size[0] * sc[0] / 2, c.Size[1] * sc[1] / 2, c.Size[2] * sc[2] / 2}
	}
	return b
}

func overlap(a, b body) bool {
	if a.shape > b.shape {
		a, b = b, a
	}
	switch {
	case a.shape == component.ShapeBox && b.shape == component.ShapeBox:
		d := b.center.Sub(a.center)
		for i := 0; i < 3; i++ {
			if abs(d[i])*2 >= (a.half[i]+b.half[i])*2 {
				return false
			}
		}
		return true
	case a.shape == component.ShapeBox:
		// Sphere or capsule against a box: nearest point on the capsule
		// segment to the box, then sphere test.
		p := clampSegment(b, a.center)
		q := closestOnBox(a, p)
		return q.Sub(p).LenSqr() < b.radius*b.radius
	default:
		// Sphere and capsule pairs reduce to segment distance.
		p, q := closestSegments(a, b)
		r := a.radius + b.radius
		return q.Sub(p).LenSqr() < r*r
	}
}

func closestOnBox(b body, p mgl32.Vec3) mgl32.Vec3 {
	var q mgl32.Vec3
	for i := 0; i < 3; i++ {
		q[i] = clamp(p[i], b.center[i]-b.half[i], b.center[i]+b.half[i])
	}
	return q
}

// clampSegment returns the point of b's core segment closest to p. Spheres
// have a zero-length segment.
func clampSegment(b body, p mgl32.Vec3) mgl32.Vec3 {
	y := clamp(p[1], b.center[1]-b.seg, b.center[1]+b.seg)
	return mgl32.Vec3{b.center[0], y, b.center[2]}
}

// closestSegments handles two vertical segments: the closest points share the
// middle of the Y overlap, or the nearest ends when there is a gap.
func closestSegments(a, b body) (mgl32.Vec3, mgl32.Vec3) {
	lo := max(a.center[1]-a.seg, b.center[1]-b.seg)
	hi := min(a.center[1]+a.seg, b.center[1]+b.seg)
	if lo <= hi {
		y := (lo + hi) / 2
		return mgl32.Vec3{a.center[0], y, a.center[2]}, mgl32.Vec3{b.center[0], y, b.center[2]}
	}
	p := clampSegment(a, b.center)
	return p, clampSegment(b, p)
}

func clamp(v, lo, hi float32) float32 {
	return max(lo, min(hi, v))
}

func abs(f float32) float32 {
	return float32(math.Abs(float64(f)))
}
