package system

import (
	"github.com/farixgo/engine/internal/core/ecs"
	"github.com/farixgo/engine/internal/core/event"
)

// EventSystem flips the world's event bus at the top of the frame and
// delivers last frame's events to subscribers.
type EventSystem struct{}

func NewEventSystem() *EventSystem { return &EventSystem{} }

func (s *EventSystem) Name() string     { return EventName }
func (s *EventSystem) Start(*ecs.World) {}

func (s *EventSystem) Update(w *ecs.World, _ float32) {
	bus, ok := ecs.Resource[event.Bus](w)
	if !ok {
		return
	}
	bus.SwapBuffers()
	bus.DispatchAll()
}
