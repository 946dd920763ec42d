package system

import (
	"github.com/farixgo/engine/internal/component"
	"github.com/farixgo/engine/internal/core/ecs"
	"github.com/farixgo/engine/internal/render"
	"github.com/go-gl/mathgl/mgl32"
)

// RenderSystem draws the frame: meshes and world sprites from the active
// camera, then a screen-space pass for UI rects. Frames without a usable
// camera or renderer are skipped.
type RenderSystem struct{}

func NewRenderSystem() *RenderSystem { return &RenderSystem{} }

func (s *RenderSystem) Name() string     { return RenderName }
func (s *RenderSystem) Start(*ecs.World) {}

func (s *RenderSystem) Update(w *ecs.World, _ float32) {
	r, ok := ecs.Resource[render.Renderer](w)
	if !ok {
		return
	}
	ctx, ok := CameraContext(w, r.Width(), r.Height())
	if !ok {
		return
	}

	r.BeginFrame(ctx)
	drawMeshes(w, r)
	drawSprites(w, r)
	r.BeginUIPass()
	drawUI(w, r)
	r.EndFrame()
}

// CameraContext builds the 3D pass context from the active camera. It
// reports false when there is no camera entity or it lacks a Camera or
// GlobalTransform.
func CameraContext(w *ecs.World, width, height int) (render.Context, bool) {
	e := w.Camera()
	if e == ecs.InvalidEntity || !w.Alive(e) {
		return render.Context{}, false
	}
	cam, ok := ecs.TryComponent[component.Camera](w, e)
	if !ok {
		return render.Context{}, false
	}
	g, ok := ecs.TryComponent[ecs.GlobalTransform](w, e)
	if !ok {
		return render.Context{}, false
	}

	settings := render.DefaultSettings()
	if s, ok := ecs.Resource[render.Settings](w); ok {
		settings = *s
	}

	ctx := render.DefaultContext()
	ctx.View, ctx.CameraPos = render.ViewFromWorld(g.World)
	ctx.ClearColor = settings.ClearColor
	ctx.Lighting = settings.Lighting
	ctx.LightDir = settings.LightDir
	ctx.LightColor = settings.LightColor

	switch cam.Mode {
	case component.Orthographic:
		ctx.Orthographic = true
		ctx.Projection = render.OrthoZO(cam.OrthoLeft, cam.OrthoRight, cam.OrthoBottom, cam.OrthoTop, cam.OrthoNear, cam.OrthoFar)
	default:
		aspect := cam.Aspect
		if aspect <= 0 {
			aspect = float32(width) / float32(height)
		}
		ctx.Projection = render.PerspectiveZO(cam.Fov, aspect, cam.Near, cam.Far)
	}

	// The first Light in the scene overrides the configured light.
	if lights := ecs.View1[component.Light](w); len(lights) > 0 {
		l := ecs.GetComponent[component.Light](w, lights[0])
		if l.Direction.Len() > 0 {
			ctx.LightDir = l.Direction
		}
		ctx.LightColor = l.Color.Mul(l.Intensity)
	}
	return ctx, true
}

// MaterialData converts a Material component for the renderer.
func MaterialData(m *component.Material) render.MaterialData {
	md := render.MaterialData{
		BaseColor:   m.BaseColor,
		Ambient:     m.Ambient,
		Diffuse:     m.Diffuse,
		Specular:    m.Specular,
		Shininess:   m.Shininess,
		DoubleSided: m.DoubleSided,
		Lit:         m.Lit,
		UVMin:       m.UVMin,
		UVMax:       m.UVMax,
	}
	if m.UseTexture {
		md.Texture = m.Texture
	}
	return md
}

func drawMeshes(w *ecs.World, r *render.Renderer) {
	fallback := render.DefaultMaterialData()
	ecs.Each2(w, func(e ecs.Entity, m *component.Mesh, g *ecs.GlobalTransform) {
		if m.Mesh == nil {
			return
		}
		mat := fallback
		if c, ok := ecs.TryComponent[component.Material](w, e); ok {
			mat = MaterialData(c)
		}
		r.RenderMesh(render.MeshFrom(m.Mesh), g.World, mat)
	})
}

func drawSprites(w *ecs.World, r *render.Renderer) {
	ecs.Each2(w, func(e ecs.Entity, sp *component.Sprite2D, g *ecs.GlobalTransform) {
		if ecs.HasComponent[component.UI](w, e) {
			return
		}
		r.RenderSprite(spriteData(sp), g.World)
	})
}

func spriteData(sp *component.Sprite2D) render.SpriteData {
	uvMin, uvMax := sp.UVMin, sp.UVMax
	if uvMin == (mgl32.Vec2{}) && uvMax == (mgl32.Vec2{}) {
		uvMax = mgl32.Vec2{1, 1}
	}
	if sp.FlipX {
		uvMin[0], uvMax[0] = uvMax[0], uvMin[0]
	}
	if sp.FlipY {
		uvMin[1], uvMax[1] = uvMax[1], uvMin[1]
	}
	return render.SpriteData{
		Texture:    sp.Texture,
		Color:      sp.Color,
		Size:       sp.Size,
		UseTexture: sp.UseTexture,
		UVMin:      uvMin,
		UVMax:      uvMax,
	}
}

// AnchoredPosition is the rect's screen position once its anchor is applied.
func AnchoredPosition(ui *component.UI, rect *component.Rect, width, height int) mgl32.Vec3 {
	return ui.Anchor.Offset(float32(width), float32(height)).Add(rect.Position)
}

func drawUI(w *ecs.World, r *render.Renderer) {
	ecs.Each2(w, func(e ecs.Entity, ui *component.UI, rect *component.Rect) {
		if !ui.Visible {
			return
		}
		pos := AnchoredPosition(ui, rect, r.Width(), r.Height())

		if img, ok := ecs.TryComponent[component.UIImage](w, e); ok {
			// Negative Y scale flips the quad into the y-down screen space.
			model := mgl32.Translate3D(pos[0], pos[1], pos[2]).
				Mul4(mgl32.HomogRotate3DZ(rect.Rotation)).
				Mul4(mgl32.Scale3D(rect.Size[0], -rect.Size[1], 1))
			r.RenderSprite(render.SpriteData{
				Texture:    img.Texture,
				Color:      img.Color,
				Size:       mgl32.Vec2{1, 1},
				UseTexture: img.UseTexture,
			}, model)
		}
		if txt, ok := ecs.TryComponent[component.UIText](w, e); ok {
			r.DrawText(txt.Font, txt.Text, pos, txt.FontSize, txt.Color)
		}
	})
}
