package ecs

// Resources are world-scoped singletons (renderer, input state, event bus,
// logger) that the host injects before the scene starts. Systems and
// scripts reach engine services through them instead of package globals.

// SetResource stores v as the world's T, replacing any previous one.
func SetResource[T any](w *World, v *T) {
	w.resources[typeOf[T]()] = v
}

// Resource returns the world's T.
func Resource[T any](w *World) (*T, bool) {
	v, ok := w.resources[typeOf[T]()]
	if !ok {
		return nil, false
	}
	return v.(*T), true
}
