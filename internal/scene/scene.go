// Package scene owns scenes (a named world plus its systems), the scene
// manager that switches between them, and the JSON scene and prefab formats.
package scene

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/farixgo/engine/internal/asset"
	"github.com/farixgo/engine/internal/audio"
	"github.com/farixgo/engine/internal/core/ecs"
	"github.com/farixgo/engine/internal/core/event"
	coresys "github.com/farixgo/engine/internal/core/system"
	"github.com/farixgo/engine/internal/input"
	"github.com/farixgo/engine/internal/render"
	"github.com/farixgo/engine/internal/system"
)

// Services are the engine singletons injected into every scene world as
// resources. Nil fields are simply not injected; systems that need them
// skip their work.
type Services struct {
	Log      *zap.Logger
	Renderer *render.Renderer
	Settings *render.Settings
	Input    *input.State
	Audio    *audio.Player
	Assets   *asset.Library
}

// Scene is a named world. It implements ecs.SceneHandle.
type Scene struct {
	name     string
	world    *ecs.World
	services Services
	loaded   bool
}

// NewScene creates an empty scene with its own event bus and the services
// installed as world resources.
func NewScene(name string, svc Services) *Scene {
	if svc.Log == nil {
		svc.Log = zap.NewNop()
	}
	s := &Scene{name: name, world: ecs.NewWorld(), services: svc}
	s.world.SetScene(s)
	s.inject()
	return s
}

func (s *Scene) inject() {
	w := s.world
	ecs.SetResource(w, event.NewBus())
	ecs.SetResource(w, s.services.Log)
	if s.services.Renderer != nil {
		ecs.SetResource(w, s.services.Renderer)
	}
	if s.services.Settings != nil {
		ecs.SetResource(w, s.services.Settings)
	}
	if s.services.Input != nil {
		ecs.SetResource(w, s.services.Input)
	}
	if s.services.Audio != nil {
		ecs.SetResource(w, s.services.Audio)
	}
	if s.services.Assets != nil {
		ecs.SetResource(w, s.services.Assets)
	}
}

func (s *Scene) Name() string        { return s.name }
func (s *Scene) SetName(name string) { s.name = name }
func (s *Scene) World() *ecs.World   { return s.world }
func (s *Scene) Services() Services  { return s.services }
func (s *Scene) Loaded() bool        { return s.loaded }

// Bus returns the scene's event bus.
func (s *Scene) Bus() *event.Bus {
	b, _ := ecs.Resource[event.Bus](s.world)
	return b
}

// CreateObject creates an entity with a Transform.
func (s *Scene) CreateObject() ecs.GameObject { return ecs.NewGameObject(s.world) }

// Load installs the default systems when the world has none yet and starts
// them. Loading twice is a no-op.
func (s *Scene) Load(reg *coresys.Registry) error {
	if s.loaded {
		return nil
	}
	if s.world.Systems().Len() == 0 {
		if err := reg.Install(s.world, system.DefaultOrder); err != nil {
			return fmt.Errorf("scene %s: %w", s.name, err)
		}
	}
	s.world.StartSystems()
	s.loaded = true
	s.services.Log.Info("scene loaded",
		zap.String("scene", s.name),
		zap.Int("entities", s.world.EntityCount()),
		zap.Strings("systems", s.world.Systems().Names()))
	return nil
}

// Update advances the scene by dt seconds.
func (s *Scene) Update(dt float32) {
	s.world.UpdateSystems(dt)
}

// Unload destroys every entity (running script OnDestroy), drops the
// systems and gives the world a fresh event bus.
func (s *Scene) Unload() {
	if s.services.Audio != nil {
		s.services.Audio.StopAll()
	}
	s.world.ClearStorages()
	s.world.ClearSystems()
	ecs.SetResource(s.world, event.NewBus())
	s.loaded = false
}
