package scene

import (
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	coresys "github.com/farixgo/engine/internal/core/system"
)

var ErrUnknownScene = errors.New("unknown scene")

// Manager owns the scenes of a game and the active one. Only the active
// scene is updated.
type Manager struct {
	log     *zap.Logger
	systems *coresys.Registry
	scenes  map[string]*Scene
	current *Scene
}

func NewManager(log *zap.Logger, systems *coresys.Registry) *Manager {
	return &Manager{
		log:     log,
		systems: systems,
		scenes:  make(map[string]*Scene),
	}
}

// Add registers s under its name, replacing a scene with the same name.
// The first scene added becomes current.
func (m *Manager) Add(s *Scene) {
	if old, ok := m.scenes[s.Name()]; ok && old != s {
		if m.current == old {
			m.current = nil
		}
		old.Unload()
	}
	m.scenes[s.Name()] = s
	if m.current == nil {
		m.current = s
	}
}

func (m *Manager) Get(name string) (*Scene, bool) {
	s, ok := m.scenes[name]
	return s, ok
}

// Names returns the registered scene names, sorted.
func (m *Manager) Names() []string {
	out := make([]string, 0, len(m.scenes))
	for name := range m.scenes {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Current returns the active scene, or nil.
func (m *Manager) Current() *Scene { return m.current }

// Switch makes name the active scene and loads it if needed. The previous
// scene keeps its state until it is removed.
func (m *Manager) Switch(name string) (*Scene, error) {
	s, ok := m.scenes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}
	if err := s.Load(m.systems); err != nil {
		return nil, err
	}
	if m.current != s {
		m.log.Info("scene switched", zap.String("scene", name))
	}
	m.current = s
	return s, nil
}

// Remove unloads and forgets name. Removing the active scene leaves no
// scene active.
func (m *Manager) Remove(name string) {
	s, ok := m.scenes[name]
	if !ok {
		return
	}
	s.Unload()
	delete(m.scenes, name)
	if m.current == s {
		m.current = nil
	}
}

// Update advances the active scene, loading it first if needed.
func (m *Manager) Update(dt float32) error {
	if m.current == nil {
		return nil
	}
	if !m.current.Loaded() {
		if err := m.current.Load(m.systems); err != nil {
			return err
		}
	}
	m.current.Update(dt)
	return nil
}
