package present

import (
	"context"
	"time"
	"unicode"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/farixgo/engine/internal/input"
	"github.com/farixgo/engine/internal/render"
)

// upperHalf paints the top pixel with the foreground and the bottom one
// with the background, giving two pixels per cell.
const upperHalf = '▀'

var terminalKeys = map[tcell.Key]string{
	tcell.KeyEscape: input.KeyEscape,
	tcell.KeyEnter:  input.KeyEnter,
	tcell.KeyUp:     input.KeyUp,
	tcell.KeyDown:   input.KeyDown,
	tcell.KeyLeft:   input.KeyLeft,
	tcell.KeyRight:  input.KeyRight,
}

// Terminal shows frames in a terminal with half-block cells. The
// framebuffer is sampled down to the terminal size.
//
// Terminals report key presses but not releases, so a key counts as held
// for the tick it arrived in and is released on the next tick unless it
// repeats.
type Terminal struct {
	screen tcell.Screen
	r      *render.Renderer
	in     *input.State
	opts   Options
	log    *zap.Logger

	held map[string]bool
}

// NewTerminal wraps screen; a nil screen opens the real terminal in Run.
func NewTerminal(screen tcell.Screen, r *render.Renderer, in *input.State, opts Options, log *zap.Logger) *Terminal {
	return &Terminal{
		screen: screen,
		r:      r,
		in:     in,
		opts:   opts.withDefaults(),
		log:    log,
		held:   make(map[string]bool),
	}
}

func (t *Terminal) Name() string { return "terminal" }

func (t *Terminal) Run(ctx context.Context, step Step) error {
	if t.screen == nil {
		s, err := tcell.NewScreen()
		if err != nil {
			return err
		}
		t.screen = s
	}
	if err := t.screen.Init(); err != nil {
		return err
	}
	defer t.screen.Fini()
	t.screen.HideCursor()
	t.screen.EnableMouse()

	events := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(t.opts.FPS))
	defer ticker.Stop()

	clock := newFrameClock()
	frames := 0
	for {
		select {
		case <-ctx.Done():
			return finish(ctx.Err())
		case <-ticker.C:
		}
		t.in.BeginFrame()
		t.drainEvents(events)
		if err := step(clock.tick()); err != nil {
			return finish(err)
		}
		t.Draw()
		frames++
		if t.in.QuitRequested() || (t.opts.Frames > 0 && frames >= t.opts.Frames) {
			t.log.Info("terminal run finished", zap.Int("frames", frames))
			return nil
		}
	}
}

// drainEvents applies every queued event without blocking.
func (t *Terminal) drainEvents(events <-chan tcell.Event) {
	pressed := map[string]bool{}
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				t.in.RequestQuit()
				t.releaseExcept(pressed)
				return
			}
			t.HandleEvent(ev, pressed)
			continue
		default:
		}
		break
	}
	t.releaseExcept(pressed)
}

func (t *Terminal) releaseExcept(pressed map[string]bool) {
	for name := range t.held {
		if !pressed[name] {
			t.in.SetKey(name, false)
			delete(t.held, name)
		}
	}
}

// HandleEvent applies one tcell event to the input state. Keys that went
// down are recorded in pressed.
func (t *Terminal) HandleEvent(ev tcell.Event, pressed map[string]bool) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		name := terminalKeyName(ev)
		if ev.Key() == tcell.KeyCtrlC {
			t.in.RequestQuit()
			return
		}
		if name == "" {
			return
		}
		t.in.SetKey(name, true)
		t.held[name] = true
		pressed[name] = true
	case *tcell.EventMouse:
		x, y := ev.Position()
		// one cell is one pixel wide and two pixels tall
		sw, sh := t.screen.Size()
		if sw > 0 && sh > 0 {
			t.in.MoveMouse(float32(x*t.r.Width()/sw), float32(y*t.r.Height()/sh))
		}
		b := ev.Buttons()
		t.in.SetButton(input.MouseLeft, b&tcell.Button1 != 0)
		t.in.SetButton(input.MouseRight, b&tcell.Button2 != 0)
		t.in.SetButton(input.MouseMiddle, b&tcell.Button3 != 0)
	case *tcell.EventResize:
		t.screen.Sync()
	}
}

func terminalKeyName(ev *tcell.EventKey) string {
	if ev.Key() == tcell.KeyRune {
		r := ev.Rune()
		if r == ' ' {
			return input.KeySpace
		}
		if unicode.IsLetter(r) {
			return string(unicode.ToUpper(r))
		}
		return ""
	}
	return terminalKeys[ev.Key()]
}

// Draw copies the framebuffer to the screen and shows it.
func (t *Terminal) Draw() {
	sw, sh := t.screen.Size()
	fb := t.r.Framebuffer()
	fw, fh := t.r.Width(), t.r.Height()
	if sw <= 0 || sh <= 0 || fw <= 0 || fh <= 0 {
		return
	}
	rows := sh * 2
	for cy := 0; cy < sh; cy++ {
		for cx := 0; cx < sw; cx++ {
			px := cx * fw / sw
			top := fb[(cy*2*fh/rows)*fw+px]
			bot := fb[((cy*2+1)*fh/rows)*fw+px]
			style := tcell.StyleDefault.
				Foreground(argbColor(top)).
				Background(argbColor(bot))
			t.screen.SetContent(cx, cy, upperHalf, nil, style)
		}
	}
	t.screen.Show()
}

func argbColor(c uint32) tcell.Color {
	return tcell.NewRGBColor(int32(c>>16&0xFF), int32(c>>8&0xFF), int32(c&0xFF))
}
