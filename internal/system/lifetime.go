package system

import (
	"github.com/farixgo/engine/internal/component"
	"github.com/farixgo/engine/internal/core/ecs"
	"github.com/farixgo/engine/internal/core/event"
)

// LifetimeSystem counts down Lifetime components and destroys expired
// entities in the same update.
type LifetimeSystem struct{}

func NewLifetimeSystem() *LifetimeSystem { return &LifetimeSystem{} }

func (s *LifetimeSystem) Name() string     { return LifetimeName }
func (s *LifetimeSystem) Start(*ecs.World) {}

func (s *LifetimeSystem) Update(w *ecs.World, dt float32) {
	var expired []ecs.Entity
	ecs.Each1(w, func(e ecs.Entity, l *component.Lifetime) {
		l.Remaining -= dt
		if l.Remaining <= 0 {
			expired = append(expired, e)
		}
	})
	if len(expired) == 0 {
		return
	}

	bus, _ := ecs.Resource[event.Bus](w)
	for _, e := range expired {
		w.DestroyEntity(e)
		if bus != nil {
			event.Emit(bus, event.EntityDestroyed{Entity: e, Reason: "lifetime"})
		}
	}
}
