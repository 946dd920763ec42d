package component

import (
	"math"

	"github.com/farixgo/engine/internal/asset"
	"github.com/go-gl/mathgl/mgl32"
)

// ProjectionMode selects the camera projection.
type ProjectionMode int

const (
	Perspective ProjectionMode = iota
	Orthographic
)

// Camera describes a projection. The active camera is picked with
// World.SetCameraEntity; its position and orientation come from its transform.
type Camera struct {
	Mode   ProjectionMode `json:"mode"`
	Fov    float32        `json:"fov"`
	Aspect float32        `json:"aspect"`
	Near   float32        `json:"near"`
	Far    float32        `json:"far"`

	OrthoLeft   float32 `json:"orthoLeft"`
	OrthoRight  float32 `json:"orthoRight"`
	OrthoBottom float32 `json:"orthoBottom"`
	OrthoTop    float32 `json:"orthoTop"`
	OrthoNear   float32 `json:"orthoNear"`
	OrthoFar    float32 `json:"orthoFar"`
}

func NewCamera() Camera {
	return Camera{
		Mode:        Perspective,
		Fov:         math.Pi / 2,
		Aspect:      16.0 / 9.0,
		Near:        1,
		Far:         100,
		OrthoLeft:   -1,
		OrthoRight:  1,
		OrthoBottom: -1,
		OrthoTop:    1,
		OrthoNear:   0,
		OrthoFar:    100,
	}
}

// SetOrthoZoom sizes the orthographic volume to ±zoom vertically, keeping
// the aspect ratio.
func (c *Camera) SetOrthoZoom(zoom float32) {
	c.OrthoLeft = -c.Aspect * zoom
	c.OrthoRight = c.Aspect * zoom
	c.OrthoBottom = -zoom
	c.OrthoTop = zoom
}

// Mesh references a mesh asset by UUID; Mesh is resolved from the asset
// library when the scene loads.
type Mesh struct {
	UUID string      `json:"mesh"`
	Mesh *asset.Mesh `json:"-"`
}

// Material holds per-entity shading parameters.
type Material struct {
	BaseColor   mgl32.Vec4     `json:"baseColor"`
	Ambient     float32        `json:"ambient"`
	Diffuse     float32        `json:"diffuse"`
	Specular    float32        `json:"specular"`
	Shininess   float32        `json:"shininess"`
	TextureUUID string         `json:"texture,omitempty"`
	Texture     *asset.Texture `json:"-"`
	UseTexture  bool           `json:"useTexture"`
	DoubleSided bool           `json:"doubleSided"`
	Lit         bool           `json:"lit"`
	UVMin       mgl32.Vec2     `json:"uvMin"`
	UVMax       mgl32.Vec2     `json:"uvMax"`
}

func NewMaterial() Material {
	return Material{
		BaseColor:   mgl32.Vec4{1, 1, 1, 1},
		Ambient:     0.1,
		Diffuse:     1,
		Specular:    0.5,
		Shininess:   32,
		DoubleSided: true,
		Lit:         true,
		UVMax:       mgl32.Vec2{1, 1},
	}
}

// MaterialFrom copies a library material into a component.
func MaterialFrom(m *asset.Material) Material {
	c := NewMaterial()
	c.BaseColor = m.BaseColor
	c.Ambient = m.Ambient
	c.Diffuse = m.Diffuse
	c.Specular = m.Specular
	c.Shininess = m.Shininess
	c.DoubleSided = m.DoubleSided
	if m.Texture != nil {
		c.Texture = m.Texture
		c.TextureUUID = m.Texture.UUID
		c.UseTexture = true
	}
	return c
}

// Sprite2D draws a textured or flat quad of Size at the entity's transform.
type Sprite2D struct {
	TextureUUID string         `json:"texture,omitempty"`
	Texture     *asset.Texture `json:"-"`
	Color       mgl32.Vec4     `json:"color"`
	Size        mgl32.Vec2     `json:"size"`
	FlipX       bool           `json:"flipX"`
	FlipY       bool           `json:"flipY"`
	UseTexture  bool           `json:"useTexture"`
	UVMin       mgl32.Vec2     `json:"uvMin"`
	UVMax       mgl32.Vec2     `json:"uvMax"`
}

func NewSprite2D() Sprite2D {
	return Sprite2D{
		Color: mgl32.Vec4{1, 1, 1, 1},
		Size:  mgl32.Vec2{1, 1},
		UVMax: mgl32.Vec2{1, 1},
	}
}

// LightKind is informational; the renderer uses one directional light.
type LightKind int

const (
	PointLight LightKind = iota
	DirectionalLight
	SpotLight
)

// Light overrides the renderer's fixed light when attached to any entity.
type Light struct {
	Kind      LightKind  `json:"type"`
	Color     mgl32.Vec3 `json:"color"`
	Direction mgl32.Vec3 `json:"dir"`
	Intensity float32    `json:"intensity"`
	Range     float32    `json:"range"`
	SpotAngle float32    `json:"spotAngle"`
}

func NewLight() Light {
	return Light{
		Kind:      DirectionalLight,
		Color:     mgl32.Vec3{1, 1, 1},
		Direction: mgl32.Vec3{0, 0, -1},
		Intensity: 1,
		Range:     10,
		SpotAngle: 45,
	}
}

// BillboardMode selects which axes turn toward the camera.
type BillboardMode int

const (
	BillboardNone BillboardMode = iota
	BillboardY
	BillboardFull
)

type Billboard struct {
	Mode BillboardMode `json:"type"`
}

func NewBillboard() Billboard { return Billboard{Mode: BillboardY} }
