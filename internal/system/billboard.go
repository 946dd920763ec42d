package system

import (
	"math"

	"github.com/farixgo/engine/internal/component"
	"github.com/farixgo/engine/internal/core/ecs"
)

// BillboardSystem turns billboards toward the active camera. Y billboards
// only yaw; full billboards also pitch.
type BillboardSystem struct{}

func NewBillboardSystem() *BillboardSystem { return &BillboardSystem{} }

func (s *BillboardSystem) Name() string     { return BillboardName }
func (s *BillboardSystem) Start(*ecs.World) {}

func (s *BillboardSystem) Update(w *ecs.World, _ float32) {
	cam := w.Camera()
	if cam == ecs.InvalidEntity {
		return
	}
	ct, ok := ecs.TryComponent[ecs.Transform](w, cam)
	if !ok {
		return
	}
	camPos := ct.Position
	if g, ok := ecs.TryComponent[ecs.GlobalTransform](w, cam); ok && !isRoot(w, cam) {
		camPos = g.Position()
	}

	ecs.Each2(w, func(e ecs.Entity, b *component.Billboard, t *ecs.Transform) {
		if b.Mode == component.BillboardNone || e == cam {
			return
		}
		d := camPos.Sub(t.Position)
		t.Rotation[1] = float32(math.Atan2(float64(d[0]), float64(d[2])))
		if b.Mode == component.BillboardFull {
			horiz := math.Hypot(float64(d[0]), float64(d[2]))
			t.Rotation[0] = -float32(math.Atan2(float64(d[1]), horiz))
		}
	})
}
