// Package system holds the engine's built-in per-frame systems. Each one is
// registered by name so scenes can list them as data; DefaultOrder is the
// run order new scenes use.
package system

import (
	"github.com/farixgo/engine/internal/core/ecs"
	coresys "github.com/farixgo/engine/internal/core/system"
	"go.uber.org/zap"
)

const (
	EventName            = "EventSystem"
	CameraControllerName = "CameraControllerSystem"
	ScriptName           = "ScriptSystem"
	PhysicsName          = "PhysicsSystem"
	CollisionName        = "CollisionSystem"
	TimerName            = "TimerSystem"
	StateName            = "StateSystem"
	LifetimeName         = "LifetimeSystem"
	BillboardName        = "BillboardSystem"
	AudioName            = "AudioSystem"
	HierarchyName        = "HierarchySystem"
	RenderName           = "RenderSystem"
)

// DefaultOrder runs events first, then input-driven movement and physics.
// Scripts see post-collision state; hierarchy propagation runs right before
// rendering.
var DefaultOrder = []string{
	EventName,
	CameraControllerName,
	PhysicsName,
	CollisionName,
	ScriptName,
	TimerName,
	StateName,
	LifetimeName,
	BillboardName,
	AudioName,
	HierarchyName,
	RenderName,
}

// RegisterDefaults adds every built-in system to reg.
func RegisterDefaults(reg *coresys.Registry) {
	reg.Register(EventName, func() ecs.System { return NewEventSystem() })
	reg.Register(CameraControllerName, func() ecs.System { return NewCameraControllerSystem() })
	reg.Register(ScriptName, func() ecs.System { return NewScriptSystem() })
	reg.Register(PhysicsName, func() ecs.System { return NewPhysicsSystem() })
	reg.Register(CollisionName, func() ecs.System { return NewCollisionSystem() })
	reg.Register(TimerName, func() ecs.System { return NewTimerSystem() })
	reg.Register(StateName, func() ecs.System { return NewStateSystem() })
	reg.Register(LifetimeName, func() ecs.System { return NewLifetimeSystem() })
	reg.Register(BillboardName, func() ecs.System { return NewBillboardSystem() })
	reg.Register(AudioName, func() ecs.System { return NewAudioSystem() })
	reg.Register(HierarchyName, func() ecs.System { return NewHierarchySystem() })
	reg.Register(RenderName, func() ecs.System { return NewRenderSystem() })
}

// loggerOf returns the world's logger, or a no-op logger.
func loggerOf(w *ecs.World) *zap.Logger {
	if log, ok := ecs.Resource[zap.Logger](w); ok {
		return log
	}
	return zap.NewNop()
}
