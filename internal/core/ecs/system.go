package ecs

// System is a per-frame behaviour over many entities. Start runs once,
// before the first Update.
type System interface {
	Name() string
	Start(w *World)
	Update(w *World, dt float32)
}

// SystemManager runs systems strictly in registration order. It never sorts:
// registration order is the scheduling contract (hierarchy before render,
// scripts after physics).
type SystemManager struct {
	systems []System
	started []bool
}

func NewSystemManager() *SystemManager {
	return &SystemManager{
		systems: make([]System, 0, 16),
		started: make([]bool, 0, 16),
	}
}

func (m *SystemManager) Add(s System) {
	m.systems = append(m.systems, s)
	m.started = append(m.started, false)
}

// UpdateAll starts any system that has not started yet, then updates it.
func (m *SystemManager) UpdateAll(w *World, dt float32) {
	for i := 0; i < len(m.systems); i++ {
		s := m.systems[i]
		if !m.started[i] {
			s.Start(w)
			m.started[i] = true
		}
		s.Update(w, dt)
	}
}

// StartAll starts every system that has not started yet.
func (m *SystemManager) StartAll(w *World) {
	for i, s := range m.systems {
		if !m.started[i] {
			s.Start(w)
			m.started[i] = true
		}
	}
}

func (m *SystemManager) Clear() {
	m.systems = m.systems[:0]
	m.started = m.started[:0]
}

func (m *SystemManager) Len() int { return len(m.systems) }

// Names lists system names in run order.
func (m *SystemManager) Names() []string {
	out := make([]string, len(m.systems))
	for i, s := range m.systems {
		out[i] = s.Name()
	}
	return out
}

// Find returns the first system with the given name.
func (m *SystemManager) Find(name string) (System, bool) {
	for _, s := range m.systems {
		if s.Name() == name {
			return s, true
		}
	}
	return nil, false
}
