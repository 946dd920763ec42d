package render

import (
	"fmt"
	"image"
	"math"

	"github.com/farixgo/engine/internal/asset"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// Stats counts the work done in the current frame.
type Stats struct {
	Triangles int // submitted
	Culled    int // rejected before raster
	Clipped   int // produced by near-plane clipping
	Pixels    int // written
}

// Renderer owns the framebuffer and depth buffer. Calls between BeginFrame
// and EndFrame draw into them; nothing is thread-safe.
type Renderer struct {
	log *zap.Logger

	width  int
	height int
	color  []uint32
	depth  []float32

	ctx      Context
	lightDir mgl32.Vec3
	inFrame  bool

	quad    MeshData
	font    *asset.Font
	text    []textCmd
	scratch [][3]clipVertex
	stats   Stats
}

func NewRenderer(width, height int, log *zap.Logger) *Renderer {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("render: invalid framebuffer size %dx%d", width, height))
	}
	font, err := asset.LoadFont(asset.DefaultFont, 16)
	if err != nil {
		panic(err) // compiled-in face
	}
	r := &Renderer{
		log:     log,
		ctx:     DefaultContext(),
		quad:    MeshFrom(asset.CreateQuad(1, 1)),
		font:    font,
		scratch: make([][3]clipVertex, 0, 2),
	}
	r.alloc(width, height)
	r.clear()
	return r
}

func (r *Renderer) alloc(w, h int) {
	r.width = w
	r.height = h
	r.color = make([]uint32, w*h)
	r.depth = make([]float32, w*h)
}

func (r *Renderer) Width() int  { return r.width }
func (r *Renderer) Height() int { return r.height }

// Framebuffer returns the packed ARGB pixels, row-major from the top-left.
func (r *Renderer) Framebuffer() []uint32 { return r.color }

// Depth returns the depth buffer. Untouched pixels hold +Inf.
func (r *Renderer) Depth() []float32 { return r.depth }

// Stats returns the counters of the last frame.
func (r *Renderer) Stats() Stats { return r.stats }

// Context returns the active pass context.
func (r *Renderer) Context() Context { return r.ctx }

// Resize reallocates both buffers. Contents are cleared.
func (r *Renderer) Resize(w, h int) {
	if w <= 0 || h <= 0 || (w == r.width && h == r.height) {
		return
	}
	r.alloc(w, h)
	r.clear()
	r.log.Debug("framebuffer resized", zap.Int("width", w), zap.Int("height", h))
}

func (r *Renderer) clear() {
	for i := range r.color {
		r.color[i] = r.ctx.ClearColor
	}
	inf := float32(math.Inf(1))
	for i := range r.depth {
		r.depth[i] = inf
	}
}

func (r *Renderer) setContext(ctx Context) {
	if ctx.ClearColor == 0 {
		ctx.ClearColor = DefaultClearColor
	}
	if ctx.LightColor == (mgl32.Vec3{}) {
		ctx.LightColor = mgl32.Vec3{1, 1, 1}
	}
	r.ctx = ctx
	r.lightDir = mgl32.Vec3{0, 0, -1}
	if ctx.LightDir.Len() > 0 {
		r.lightDir = ctx.LightDir.Normalize()
	}
}

// BeginFrame installs ctx and clears both buffers.
func (r *Renderer) BeginFrame(ctx Context) {
	if r.inFrame {
		panic("render: BeginFrame called twice without EndFrame")
	}
	r.setContext(ctx)
	r.clear()
	r.stats = Stats{}
	r.text = r.text[:0]
	r.inFrame = true
}

// BeginUIPass switches to the screen-space context without clearing, so UI
// draws over the 3D scene.
func (r *Renderer) BeginUIPass() {
	r.mustBeInFrame("BeginUIPass")
	r.setContext(UIContext(r.width, r.height, r.ctx.ClearColor))
}

// EndFrame draws queued text and closes the frame.
func (r *Renderer) EndFrame() {
	r.mustBeInFrame("EndFrame")
	r.drawQueuedText()
	r.inFrame = false
}

func (r *Renderer) mustBeInFrame(op string) {
	if !r.inFrame {
		panic("render: " + op + " outside BeginFrame/EndFrame")
	}
}

// RenderMesh draws every triangle of mesh transformed by model.
func (r *Renderer) RenderMesh(mesh MeshData, model mgl32.Mat4, mat MaterialData) {
	r.mustBeInFrame("RenderMesh")
	if mat.UVMin == (mgl32.Vec2{}) && mat.UVMax == (mgl32.Vec2{}) {
		mat.UVMax = mgl32.Vec2{1, 1}
	}

	viewModel := r.ctx.View.Mul4(model)
	normalMat := normalMatrix(model)
	n := len(mesh.Positions)

	for t := 0; t+2 < len(mesh.Indices); t += 3 {
		r.stats.Triangles++
		i0, i1, i2 := int(mesh.Indices[t]), int(mesh.Indices[t+1]), int(mesh.Indices[t+2])
		if i0 >= n || i1 >= n || i2 >= n {
			r.stats.Culled++
			continue
		}
		idx := [3]int{i0, i1, i2}

		var tri [3]clipVertex
		behind := 0
		visible := false
		for k, i := range idx {
			p := mesh.Positions[i].Vec4(1)
			cam := viewModel.Mul4x1(p)
			if cam[2] > 0 {
				behind++
			}
			clip := r.ctx.Projection.Mul4x1(cam)
			if inFrustum(clip) {
				visible = true
			}
			tri[k] = clipVertex{
				pos:   clip,
				world: model.Mul4x1(p).Vec3(),
			}
			if i < len(mesh.Normals) {
				tri[k].normal = normalMat.Mul3x1(mesh.Normals[i])
			}
			if i < len(mesh.UVs) {
				tri[k].uv = mesh.UVs[i]
			}
		}
		if behind == 3 || !visible {
			r.stats.Culled++
			continue
		}

		r.scratch = r.scratch[:0]
		if r.ctx.Is2DPass {
			r.scratch = append(r.scratch, tri)
		} else {
			r.scratch = clipNearPlane(tri, r.scratch)
			if len(r.scratch) != 1 || r.scratch[0] != tri {
				r.stats.Clipped += len(r.scratch)
			}
		}

		for _, c := range r.scratch {
			s0, s1, s2 := r.toScreen(c[0]), r.toScreen(c[1]), r.toScreen(c[2])
			if !s0.valid() || !s1.valid() || !s2.valid() {
				r.stats.Culled++
				continue
			}
			if !mat.DoubleSided && facesAway(s0, s1, s2) {
				r.stats.Culled++
				continue
			}
			r.rasterize(s0, s1, s2, &mat)
		}
	}
}

// RenderSprite draws the unit quad scaled by the sprite size.
func (r *Renderer) RenderSprite(s SpriteData, model mgl32.Mat4) {
	mat := MaterialData{
		BaseColor:   s.Color,
		DoubleSided: true,
		UVMin:       s.UVMin,
		UVMax:       s.UVMax,
	}
	if s.UseTexture {
		mat.Texture = s.Texture
	}
	size := s.Size
	if size == (mgl32.Vec2{}) {
		size = mgl32.Vec2{1, 1}
	}
	r.RenderMesh(r.quad, model.Mul4(mgl32.Scale3D(size[0], size[1], 1)), mat)
}

// DrawText queues text at pos (pixels, top-left, y down). Glyphs are scaled
// by whole pixels to approximate size. A nil font uses the default face.
func (r *Renderer) DrawText(font *asset.Font, text string, pos mgl32.Vec3, size float32, c mgl32.Vec4) {
	r.mustBeInFrame("DrawText")
	if font == nil {
		font = r.font
	}
	scale := 1
	if lh := font.LineHeight(); lh > 0 && size > 0 {
		scale = max(1, int(size/float32(lh)+0.5))
	}
	r.text = append(r.text, textCmd{
		font:  font,
		text:  foldText(text),
		x:     int(pos[0]),
		y:     int(pos[1]),
		scale: scale,
		color: toRGBA(c),
	})
}

// Pixel returns the packed color at (x, y).
func (r *Renderer) Pixel(x, y int) uint32 {
	return r.color[y*r.width+x]
}

// Image copies the framebuffer into an RGBA image.
func (r *Renderer) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, r.width, r.height))
	for i, c := range r.color {
		o := i * 4
		img.Pix[o] = uint8(c >> 16)
		img.Pix[o+1] = uint8(c >> 8)
		img.Pix[o+2] = uint8(c)
		img.Pix[o+3] = uint8(c >> 24)
	}
	return img
}

// normalMatrix is the inverse transpose of model's upper 3×3; singular
// matrices fall back to the plain upper 3×3.
func normalMatrix(model mgl32.Mat4) mgl32.Mat3 {
	m := model.Mat3()
	if abs32(m.Det()) < 1e-12 {
		return m
	}
	return m.Inv().Transpose()
}
