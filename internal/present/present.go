// Package present puts rendered frames somewhere a person can see them (a
// desktop window, a terminal, or PNG files) and feeds input back into
// input.State. Presenters own the frame loop: each tick they collect
// input, call the step function and show the framebuffer.
package present

import (
	"context"
	"errors"
	"fmt"
	"image/png"
	"os"
	"time"

	"github.com/farixgo/engine/internal/render"
)

// ErrQuit is returned by a step function to end the loop cleanly.
var ErrQuit = errors.New("quit")

// Step advances the game by dt seconds and renders a frame.
type Step func(dt float32) error

// Presenter runs the frame loop until ctx is cancelled, the step returns
// an error, the user quits or the frame limit is reached. ErrQuit is not
// reported as an error.
type Presenter interface {
	Name() string
	Run(ctx context.Context, step Step) error
}

// Options are shared by all presenters.
type Options struct {
	Title  string
	Scale  int // window pixels per framebuffer pixel
	FPS    int
	Frames int // stop after this many frames; 0 runs until quit
}

func (o Options) withDefaults() Options {
	if o.Scale <= 0 {
		o.Scale = 1
	}
	if o.FPS <= 0 {
		o.FPS = 60
	}
	if o.Title == "" {
		o.Title = "farix"
	}
	return o
}

func (o Options) dt() float32 { return 1 / float32(o.FPS) }

// frameClock hands out dt once per loop iteration: the wall time since the
// previous tick, or a constant step when fixed is set.
type frameClock struct {
	now   func() time.Time
	last  time.Time
	fixed float32
}

func newFrameClock() *frameClock {
	c := &frameClock{now: time.Now}
	c.last = c.now()
	return c
}

func fixedClock(dt float32) *frameClock { return &frameClock{fixed: dt} }

func (c *frameClock) tick() float32 {
	if c.fixed > 0 {
		return c.fixed
	}
	t := c.now()
	dt := float32(t.Sub(c.last).Seconds())
	c.last = t
	return dt
}

// WritePNG saves the renderer's framebuffer to path.
func WritePNG(r *render.Renderer, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}
	if err := png.Encode(f, r.Image()); err != nil {
		f.Close()
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return f.Close()
}

// finish maps the loop's exit error to Run's result.
func finish(err error) error {
	if errors.Is(err, ErrQuit) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
