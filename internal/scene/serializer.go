package scene

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/farixgo/engine/internal/component"
	"github.com/farixgo/engine/internal/core/ecs"
)

// ErrUnknownComponent is returned when a scene or prefab names a component
// with no registered serializer.
var ErrUnknownComponent = errors.New("unknown component")

// ComponentSerializer converts one component type to and from JSON.
type ComponentSerializer struct {
	Has      func(w *ecs.World, e ecs.Entity) bool
	ToJSON   func(w *ecs.World, e ecs.Entity) (json.RawMessage, error)
	FromJSON func(w *ecs.World, e ecs.Entity, data json.RawMessage) error
}

// SerializerRegistry maps component names, as they appear in scene files,
// to serializers.
type SerializerRegistry struct {
	entries map[string]ComponentSerializer
	order   []string
}

func NewSerializerRegistry() *SerializerRegistry {
	return &SerializerRegistry{entries: make(map[string]ComponentSerializer, 32)}
}

// Register adds or replaces the serializer for name.
func (r *SerializerRegistry) Register(name string, s ComponentSerializer) {
	if _, ok := r.entries[name]; !ok {
		r.order = append(r.order, name)
	}
	r.entries[name] = s
}

func (r *SerializerRegistry) Get(name string) (ComponentSerializer, bool) {
	s, ok := r.entries[name]
	return s, ok
}

func (r *SerializerRegistry) Has(name string) bool {
	_, ok := r.entries[name]
	return ok
}

// Names returns the registered names in registration order.
func (r *SerializerRegistry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// RegisterComponent registers the plain JSON serializer for T. Decoding
// starts from defaults() so fields missing from the file keep their
// default values.
func RegisterComponent[T any](r *SerializerRegistry, name string, defaults func() T) {
	r.Register(name, ComponentSerializer{
		Has: func(w *ecs.World, e ecs.Entity) bool {
			return ecs.HasComponent[T](w, e)
		},
		ToJSON: func(w *ecs.World, e ecs.Entity) (json.RawMessage, error) {
			return json.Marshal(ecs.GetComponent[T](w, e))
		},
		FromJSON: func(w *ecs.World, e ecs.Entity, data json.RawMessage) error {
			v := defaults()
			if err := json.Unmarshal(data, &v); err != nil {
				return fmt.Errorf("decode %s: %w", name, err)
			}
			ecs.AddComponent(w, e, v)
			return nil
		},
	})
}

func zero[T any]() T {
	var v T
	return v
}

// DefaultSerializers returns a registry covering every engine component.
// Hierarchy links and scripts are stored structurally by the scene format
// and have no entry here.
func DefaultSerializers() *SerializerRegistry {
	r := NewSerializerRegistry()
	RegisterComponent(r, "Transform", ecs.NewTransform)
	RegisterComponent(r, "Metadata", zero[ecs.Metadata])
	RegisterComponent(r, "Camera", component.NewCamera)
	RegisterComponent(r, "CameraController", component.NewCameraController)
	RegisterComponent(r, "Mesh", zero[component.Mesh])
	RegisterComponent(r, "Material", component.NewMaterial)
	RegisterComponent(r, "Sprite2D", component.NewSprite2D)
	RegisterComponent(r, "Light", component.NewLight)
	RegisterComponent(r, "Billboard", component.NewBillboard)
	RegisterComponent(r, "RigidBody", component.NewRigidBody)
	RegisterComponent(r, "Collider", component.NewCollider)
	RegisterComponent(r, "Lifetime", component.NewLifetime)
	RegisterComponent(r, "Timers", zero[component.Timers])
	RegisterComponent(r, "UI", component.NewUI)
	RegisterComponent(r, "Rect", component.NewRect)
	RegisterComponent(r, "UIImage", component.NewUIImage)
	RegisterComponent(r, "UIText", func() component.UIText { return component.NewUIText("") })
	RegisterComponent(r, "Variable", component.NewVariable)
	RegisterComponent(r, "State", zero[component.State])
	RegisterComponent(r, "AudioSource", func() component.AudioSource { return component.NewAudioSource("") })
	return r
}
