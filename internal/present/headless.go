package present

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/farixgo/engine/internal/input"
	"github.com/farixgo/engine/internal/render"
)

// Headless runs the loop without any display. When Snapshot is set the
// last frame is written there as a PNG.
type Headless struct {
	r        *render.Renderer
	in       *input.State
	opts     Options
	log      *zap.Logger
	Snapshot string
	// Realtime paces frames with a ticker and steps by wall time;
	// otherwise frames run back to back with a fixed 1/FPS step so
	// frame-limited runs are reproducible.
	Realtime bool
}

func NewHeadless(r *render.Renderer, in *input.State, opts Options, log *zap.Logger) *Headless {
	return &Headless{r: r, in: in, opts: opts.withDefaults(), log: log}
}

func (h *Headless) Name() string { return "headless" }

func (h *Headless) Run(ctx context.Context, step Step) error {
	var tick <-chan time.Time
	clock := fixedClock(h.opts.dt())
	if h.Realtime {
		t := time.NewTicker(time.Second / time.Duration(h.opts.FPS))
		defer t.Stop()
		tick = t.C
		clock = newFrameClock()
	}

	frames := 0
	err := func() error {
		for {
			if tick != nil {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-tick:
				}
			} else if err := ctx.Err(); err != nil {
				return err
			}
			h.in.BeginFrame()
			if err := step(clock.tick()); err != nil {
				return err
			}
			frames++
			if h.in.QuitRequested() || (h.opts.Frames > 0 && frames >= h.opts.Frames) {
				return nil
			}
		}
	}()

	h.log.Info("headless run finished", zap.Int("frames", frames))
	if h.Snapshot != "" {
		if serr := WritePNG(h.r, h.Snapshot); serr != nil {
			return serr
		}
		h.log.Info("snapshot written", zap.String("path", h.Snapshot))
	}
	return finish(err)
}
