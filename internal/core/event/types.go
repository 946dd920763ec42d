package event

import "github.com/farixgo/engine/internal/core/ecs"

// Collision is emitted once per overlapping collider pair per frame.
type Collision struct {
	A ecs.Entity
	B ecs.Entity
}

// EntityDestroyed is emitted when a system destroys an entity.
type EntityDestroyed struct {
	Entity ecs.Entity
	Reason string
}

// TimerFinished is emitted when a timer reaches its max.
type TimerFinished struct {
	Entity ecs.Entity
	Name   string
}

// StateChanged is emitted when a StateComponent changes value.
type StateChanged struct {
	Entity   ecs.Entity
	Previous string
	Current  string
}

// KeyPressed is emitted by presenters on key-down edges.
type KeyPressed struct {
	Key string
}
