package system

import (
	"github.com/farixgo/engine/internal/audio"
	"github.com/farixgo/engine/internal/component"
	"github.com/farixgo/engine/internal/core/ecs"
	"go.uber.org/zap"
)

// AudioSystem starts AudioSource sounds on the world's player and stops
// them when their entity or component goes away.
type AudioSystem struct {
	log     *zap.Logger
	playing map[ecs.Entity]struct{}
}

func NewAudioSystem() *AudioSystem {
	return &AudioSystem{playing: make(map[ecs.Entity]struct{})}
}

func (s *AudioSystem) Name() string { return AudioName }

func (s *AudioSystem) Start(w *ecs.World) {
	s.log = loggerOf(w)
}

func (s *AudioSystem) Update(w *ecs.World, _ float32) {
	player, ok := ecs.Resource[audio.Player](w)
	if !ok {
		return
	}

	for _, e := range player.Reap() {
		delete(s.playing, e)
		if src, ok := ecs.TryComponent[component.AudioSource](w, e); ok {
			src.Playing = false
			src.PlayOnStart = false
		}
	}

	for e := range s.playing {
		src, ok := ecs.TryComponent[component.AudioSource](w, e)
		if ok && src.Playing {
			continue
		}
		player.Stop(e)
		delete(s.playing, e)
		if ok {
			// Stopped by a script; do not restart next frame.
			src.PlayOnStart = false
		}
	}

	ecs.Each1(w, func(e ecs.Entity, src *component.AudioSource) {
		if src.Playing || !src.PlayOnStart {
			return
		}
		// Mark as handled even on failure so a bad file is reported once.
		src.Playing = true
		if err := player.Play(e, src.Path, src.Loop, src.Volume); err != nil {
			s.log.Error("play sound failed", zap.Uint32("entity", uint32(e)), zap.Error(err))
			return
		}
		s.playing[e] = struct{}{}
	})
}
