package present

import (
	"context"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"github.com/farixgo/engine/internal/input"
	"github.com/farixgo/engine/internal/render"
)

var windowKeys = map[ebiten.Key]string{
	ebiten.KeyW:          input.KeyW,
	ebiten.KeyA:          input.KeyA,
	ebiten.KeyS:          input.KeyS,
	ebiten.KeyD:          input.KeyD,
	ebiten.KeyQ:          input.KeyQ,
	ebiten.KeyE:          input.KeyE,
	ebiten.KeySpace:      input.KeySpace,
	ebiten.KeyEscape:     input.KeyEscape,
	ebiten.KeyShiftLeft:  input.KeyShift,
	ebiten.KeyEnter:      input.KeyEnter,
	ebiten.KeyArrowUp:    input.KeyUp,
	ebiten.KeyArrowDown:  input.KeyDown,
	ebiten.KeyArrowLeft:  input.KeyLeft,
	ebiten.KeyArrowRight: input.KeyRight,
}

var windowButtons = map[ebiten.MouseButton]int{
	ebiten.MouseButtonLeft:   input.MouseLeft,
	ebiten.MouseButtonRight:  input.MouseRight,
	ebiten.MouseButtonMiddle: input.MouseMiddle,
}

// Window shows frames in a desktop window. It blocks in Run until the
// window closes.
type Window struct {
	r    *render.Renderer
	in   *input.State
	opts Options
	log  *zap.Logger
}

func NewWindow(r *render.Renderer, in *input.State, opts Options, log *zap.Logger) *Window {
	return &Window{r: r, in: in, opts: opts.withDefaults(), log: log}
}

func (w *Window) Name() string { return "window" }

func (w *Window) Run(ctx context.Context, step Step) error {
	g := &windowGame{w: w, ctx: ctx, step: step, clock: newFrameClock()}
	ebiten.SetWindowTitle(w.opts.Title)
	ebiten.SetWindowSize(w.r.Width()*w.opts.Scale, w.r.Height()*w.opts.Scale)
	ebiten.SetTPS(w.opts.FPS)
	err := ebiten.RunGame(g)
	w.log.Info("window closed", zap.Int("frames", g.frames))
	if err == nil {
		err = g.err
	}
	return finish(err)
}

type windowGame struct {
	w      *Window
	ctx    context.Context
	step   Step
	clock  *frameClock
	frames int
	err    error

	fbImg *ebiten.Image
	pix   []byte
}

func (g *windowGame) Update() error {
	if err := g.ctx.Err(); err != nil {
		return ebiten.Termination
	}
	in := g.w.in
	in.BeginFrame()
	for key, name := range windowKeys {
		in.SetKey(name, ebiten.IsKeyPressed(key))
	}
	for b, idx := range windowButtons {
		in.SetButton(idx, ebiten.IsMouseButtonPressed(b))
	}
	x, y := ebiten.CursorPosition()
	in.MoveMouse(float32(x), float32(y))
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		in.RequestQuit()
	}

	if err := g.step(g.clock.tick()); err != nil {
		g.err = err
		return ebiten.Termination
	}
	g.frames++
	if in.QuitRequested() || (g.w.opts.Frames > 0 && g.frames >= g.w.opts.Frames) {
		return ebiten.Termination
	}
	return nil
}

func (g *windowGame) Draw(screen *ebiten.Image) {
	r := g.w.r
	if g.fbImg == nil || g.fbImg.Bounds().Dx() != r.Width() || g.fbImg.Bounds().Dy() != r.Height() {
		if g.fbImg != nil {
			g.fbImg.Deallocate()
		}
		g.fbImg = ebiten.NewImage(r.Width(), r.Height())
		g.pix = make([]byte, r.Width()*r.Height()*4)
	}
	argbToRGBA(g.pix, r.Framebuffer())
	g.fbImg.WritePixels(g.pix)
	screen.DrawImage(g.fbImg, nil)
}

func (g *windowGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.w.r.Width(), g.w.r.Height()
}

// argbToRGBA unpacks 0xAARRGGBB pixels into an RGBA byte slice.
func argbToRGBA(dst []byte, src []uint32) {
	for i, c := range src {
		j := i * 4
		if j+3 >= len(dst) {
			return
		}
		dst[j+0] = uint8(c >> 16)
		dst[j+1] = uint8(c >> 8)
		dst[j+2] = uint8(c)
		dst[j+3] = 0xFF
	}
}
