package system

import (
	"errors"
	"fmt"
	"sort"

	"github.com/farixgo/engine/internal/core/ecs"
)

// ErrUnknownSystem is returned when a scene names a system nobody registered.
var ErrUnknownSystem = errors.New("unknown system")

// Factory builds a fresh system instance.
type Factory func() ecs.System

// Registry maps system names to factories so scenes can be rebuilt from data.
type Registry struct {
	factories map[string]Factory
}

func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory, 16),
	}
}

// Register adds or replaces the factory for name.
func (r *Registry) Register(name string, f Factory) {
	r.factories[name] = f
}

// Create instantiates the system registered under name.
func (r *Registry) Create(name string) (ecs.System, error) {
	f, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSystem, name)
	}
	return f(), nil
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.factories[name]
	return ok
}

// Names returns the registered names sorted alphabetically.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.factories))
	for name := range r.factories {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Install creates each named system and appends it to w in the given order.
// Nothing is added when any name is unknown.
func (r *Registry) Install(w *ecs.World, names []string) error {
	systems := make([]ecs.System, 0, len(names))
	for _, name := range names {
		s, err := r.Create(name)
		if err != nil {
			return err
		}
		systems = append(systems, s)
	}
	for _, s := range systems {
		w.AddSystem(s)
	}
	return nil
}
