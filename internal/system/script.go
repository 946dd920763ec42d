package system

import "github.com/farixgo/engine/internal/core/ecs"

// ScriptSystem starts each script once and then updates it every frame, in
// attachment order per entity.
type ScriptSystem struct{}

func NewScriptSystem() *ScriptSystem { return &ScriptSystem{} }

func (s *ScriptSystem) Name() string     { return ScriptName }
func (s *ScriptSystem) Start(*ecs.World) {}

func (s *ScriptSystem) Update(w *ecs.World, dt float32) {
	for _, e := range ecs.View1[ecs.ScriptComponent](w) {
		// Index loop: a script may attach more scripts while running.
		for i := 0; ; i++ {
			sc, ok := ecs.TryComponent[ecs.ScriptComponent](w, e)
			if !ok || i >= len(sc.Scripts) {
				break
			}
			script := sc.Scripts[i]
			if !sc.Started(i) {
				sc.MarkStarted(i)
				script.OnStart()
			}
			script.OnUpdate(dt)
		}
	}
}
