package system

import (
	"github.com/farixgo/engine/internal/component"
	"github.com/farixgo/engine/internal/core/ecs"
	"github.com/farixgo/engine/internal/core/event"
)

// TimerSystem advances every named timer. One-shot timers stop at Finished;
// repeating timers restart from zero and report Finished for one tick.
type TimerSystem struct{}

func NewTimerSystem() *TimerSystem { return &TimerSystem{} }

func (s *TimerSystem) Name() string     { return TimerName }
func (s *TimerSystem) Start(*ecs.World) {}

func (s *TimerSystem) Update(w *ecs.World, dt float32) {
	bus, _ := ecs.Resource[event.Bus](w)
	ecs.Each1(w, func(e ecs.Entity, ts *component.Timers) {
		for i := range ts.Timers {
			t := &ts.Timers[i]
			if t.Finished {
				if !t.Repeat {
					continue
				}
				t.Finished = false
			}
			t.Current += dt
			if t.Current < t.Max {
				continue
			}
			t.Finished = true
			if t.Repeat {
				t.Current = 0
			} else {
				t.Current = t.Max
			}
			if bus != nil {
				event.Emit(bus, event.TimerFinished{Entity: e, Name: t.Name})
			}
		}
	})
}
