package system

import (
	"github.com/farixgo/engine/internal/component"
	"github.com/farixgo/engine/internal/core/ecs"
	"github.com/farixgo/engine/internal/core/event"
)

// StateSystem notices State changes made since the last frame, records the
// previous value and emits event.StateChanged.
type StateSystem struct {
	seen map[ecs.Entity]string
}

func NewStateSystem() *StateSystem {
	return &StateSystem{seen: make(map[ecs.Entity]string)}
}

func (s *StateSystem) Name() string     { return StateName }
func (s *StateSystem) Start(*ecs.World) {}

func (s *StateSystem) Update(w *ecs.World, _ float32) {
	bus, _ := ecs.Resource[event.Bus](w)
	live := make(map[ecs.Entity]struct{}, len(s.seen))
	ecs.Each1(w, func(e ecs.Entity, st *component.State) {
		live[e] = struct{}{}
		prev, ok := s.seen[e]
		s.seen[e] = st.Current
		if !ok || prev == st.Current {
			return
		}
		st.Previous = prev
		if bus != nil {
			event.Emit(bus, event.StateChanged{Entity: e, Previous: prev, Current: st.Current})
		}
	})
	for e := range s.seen {
		if _, ok := live[e]; !ok {
			delete(s.seen, e)
		}
	}
}
