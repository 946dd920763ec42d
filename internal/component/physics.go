package component

import "github.com/go-gl/mathgl/mgl32"

// RigidBody is integrated by the physics system unless Kinematic.
type RigidBody struct {
	Velocity     mgl32.Vec3 `json:"velocity"`
	Acceleration mgl32.Vec3 `json:"acceleration"`
	Mass         float32    `json:"mass"`
	Kinematic    bool       `json:"isKinematic"`
}

func NewRigidBody() RigidBody { return RigidBody{Mass: 1} }

// Shape of a collider.
type Shape int

const (
	ShapeBox Shape = iota
	ShapeSphere
	ShapeCapsule
)

// Collider is tested pairwise by the collision system. Size and Radius are
// in local units and get multiplied by the transform's scale.
type Collider struct {
	Shape     Shape      `json:"shape"`
	Size      mgl32.Vec3 `json:"size"`
	Radius    float32    `json:"radius"`
	IsTrigger bool       `json:"isTrigger"`
}

func NewCollider() Collider {
	return Collider{Shape: ShapeBox, Size: mgl32.Vec3{1, 1, 1}, Radius: 1}
}

// Lifetime destroys its entity once Remaining drops to zero.
type Lifetime struct {
	Remaining float32 `json:"timeRemaining"`
}

func NewLifetime() Lifetime { return Lifetime{Remaining: 1} }

// Timer counts up to Max. Repeating timers restart; others stay Finished.
type Timer struct {
	Name     string  `json:"name"`
	Current  float32 `json:"current"`
	Max      float32 `json:"max"`
	Repeat   bool    `json:"repeat"`
	Finished bool    `json:"finished"`
}

func NewTimer(name string, max float32, repeat bool) Timer {
	return Timer{Name: name, Max: max, Repeat: repeat}
}

// Timers holds several named timers on one entity.
type Timers struct {
	Timers []Timer `json:"timers"`
}

// Get returns the named timer.
func (t *Timers) Get(name string) (*Timer, bool) {
	for i := range t.Timers {
		if t.Timers[i].Name == name {
			return &t.Timers[i], true
		}
	}
	return nil, false
}
