package scripting

import (
	"errors"
	"fmt"
	"sort"

	"github.com/farixgo/engine/internal/core/ecs"
)

// ErrUnknownScript is returned when a scene names a script nobody registered.
var ErrUnknownScript = errors.New("unknown script")

// Factory builds a fresh script instance.
type Factory func() ecs.Script

// Registry maps script names to factories. Go scripts and Lua scripts share
// one namespace; later registrations replace earlier ones.
type Registry struct {
	factories map[string]Factory
}

func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory, 16),
	}
}

func (r *Registry) Register(name string, f Factory) {
	r.factories[name] = f
}

// Create instantiates the script registered under name.
func (r *Registry) Create(name string) (ecs.Script, error) {
	f, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScript, name)
	}
	return f(), nil
}

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
