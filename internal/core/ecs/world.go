package ecs

import "errors"

// Entity is an opaque non-zero identifier. Ids come from a counter starting at
// 1 and are never reused.
type Entity uint32

// InvalidEntity is the reserved "none" value.
const InvalidEntity Entity = 0

var (
	ErrInvalidEntity  = errors.New("ecs: invalid entity")
	ErrHierarchyCycle = errors.New("ecs: parent link would create a cycle")
)

// World is the top-level ECS container. It owns entity allocation, the
// component storages, the system list, the scene-graph relations and the
// engine resources injected by the host.
//
// A World is not safe for concurrent use; everything runs on the frame goroutine.
type World struct {
	components *ComponentManager
	systems    *SystemManager

	nextID   Entity
	entities []Entity
	alive    map[Entity]struct{}

	camera       Entity
	scene        SceneHandle
	resources    map[any]any
	destroyQueue []Entity
}

func NewWorld() *World {
	w := &World{
		components:   NewComponentManager(),
		systems:      NewSystemManager(),
		nextID:       1,
		entities:     make([]Entity, 0, 256),
		alive:        make(map[Entity]struct{}, 256),
		resources:    make(map[any]any, 8),
		destroyQueue: make([]Entity, 0, 16),
	}
	Register[Transform](w.components)
	Register[GlobalTransform](w.components)
	Register[Parent](w.components)
	Register[Children](w.components)
	Register[Metadata](w.components)
	Register[ScriptComponent](w.components)
	return w
}

func (w *World) Components() *ComponentManager { return w.components }
func (w *World) Systems() *SystemManager       { return w.systems }

// CreateEntity allocates a fresh id and appends it to the live list.
func (w *World) CreateEntity() Entity {
	e := w.nextID
	w.nextID++
	w.entities = append(w.entities, e)
	w.alive[e] = struct{}{}
	return e
}

func (w *World) Alive(e Entity) bool {
	_, ok := w.alive[e]
	return ok
}

// Entities returns the live entities in creation order. The slice is a copy.
func (w *World) Entities() []Entity {
	out := make([]Entity, len(w.entities))
	copy(out, w.entities)
	return out
}

func (w *World) EntityCount() int { return len(w.entities) }

// DestroyEntity runs OnDestroy on the entity's scripts, removes every
// component it owns and drops it from the live list. Children are not
// destroyed and the parent's child list is not touched.
func (w *World) DestroyEntity(e Entity) {
	if !w.Alive(e) {
		return
	}
	if sc, ok := StorageOf[ScriptComponent](w.components).Lookup(e); ok {
		sc.destroyAll()
	}
	w.components.RemoveAll(e)
	delete(w.alive, e)
	for i, id := range w.entities {
		if id == e {
			w.entities = append(w.entities[:i], w.entities[i+1:]...)
			break
		}
	}
	if w.camera == e {
		w.camera = InvalidEntity
	}
}

// QueueDestroy defers destruction to the end of the current UpdateSystems
// call. Scripts use it to destroy entities while systems are iterating.
func (w *World) QueueDestroy(e Entity) {
	w.destroyQueue = append(w.destroyQueue, e)
}

// FlushDestroyQueue destroys all queued entities.
func (w *World) FlushDestroyQueue() {
	for i := 0; i < len(w.destroyQueue); i++ {
		w.DestroyEntity(w.destroyQueue[i])
	}
	w.destroyQueue = w.destroyQueue[:0]
}

// ClearStorages resets the world: scripts get OnDestroy, every storage is
// emptied (types stay registered) and the live list is dropped. The id
// counter keeps running so stale ids never alias new entities.
func (w *World) ClearStorages() {
	scripts := StorageOf[ScriptComponent](w.components)
	for _, e := range w.entities {
		if sc, ok := scripts.Lookup(e); ok {
			sc.destroyAll()
		}
	}
	w.components.ClearAll()
	w.entities = w.entities[:0]
	clear(w.alive)
	w.destroyQueue = w.destroyQueue[:0]
	w.camera = InvalidEntity
}

// SetCameraEntity selects the camera used by the render system.
func (w *World) SetCameraEntity(e Entity) { w.camera = e }

// Camera returns the active camera or InvalidEntity.
func (w *World) Camera() Entity { return w.camera }

func (w *World) SetScene(s SceneHandle) { w.scene = s }
func (w *World) Scene() SceneHandle     { return w.scene }

// AddSystem appends a system; it is started lazily on the next update.
func (w *World) AddSystem(s System) { w.systems.Add(s) }

// UpdateSystems runs every system in registration order, then flushes
// entities queued for destruction.
func (w *World) UpdateSystems(dt float32) {
	w.systems.UpdateAll(w, dt)
	w.FlushDestroyQueue()
}

// StartSystems starts every system that has not run yet.
func (w *World) StartSystems() { w.systems.StartAll(w) }

func (w *World) ClearSystems() { w.systems.Clear() }

// AddComponent stores v for e, registering T on first use. Adding a
// Transform also guarantees a GlobalTransform, initialised to identity when
// it was missing.
func AddComponent[T any](w *World, e Entity, v T) *T {
	if e == InvalidEntity {
		panic(ErrInvalidEntity)
	}
	c := Register[T](w.components).Add(e, v)
	if typeOf[T]() == transformType {
		globals := StorageOf[GlobalTransform](w.components)
		if !globals.Has(e) {
			globals.Add(e, NewGlobalTransform())
		}
	}
	return c
}

// GetComponent returns e's T and panics if it is missing or unregistered.
func GetComponent[T any](w *World, e Entity) *T {
	return StorageOf[T](w.components).Get(e)
}

// TryComponent is the optional form of GetComponent.
func TryComponent[T any](w *World, e Entity) (*T, bool) {
	s, ok := lookupStorage[T](w.components)
	if !ok {
		return nil, false
	}
	return s.Lookup(e)
}

// HasComponent reports whether e has a T. Unregistered types report false.
func HasComponent[T any](w *World, e Entity) bool {
	s, ok := lookupStorage[T](w.components)
	return ok && s.Has(e)
}

// RemoveComponent drops e's T if present.
func RemoveComponent[T any](w *World, e Entity) {
	if s, ok := lookupStorage[T](w.components); ok {
		s.Remove(e)
	}
}

// RegisterComponent makes sure a storage for T exists.
func RegisterComponent[T any](w *World) {
	Register[T](w.components)
}
