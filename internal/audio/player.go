// Package audio plays AudioSource sounds through a beep mixer.
package audio

import (
	"fmt"
	"math"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/farixgo/engine/internal/core/ecs"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"
	"go.uber.org/zap"
)

// DefaultSampleRate is the mixer rate when the config leaves it unset.
const DefaultSampleRate = beep.SampleRate(48000)

type voice struct {
	ctrl   *beep.Ctrl
	source beep.StreamSeekCloser
	done   atomic.Bool // set from the speaker goroutine when the sound ends
}

// Player owns the mixer and one voice per playing entity. The speaker is
// only opened by Initialize, so a Player works without an audio device.
type Player struct {
	mu          sync.Mutex
	log         *zap.Logger
	rate        beep.SampleRate
	mixer       *beep.Mixer
	voices      map[ecs.Entity]*voice
	initialized bool
}

func NewPlayer(log *zap.Logger, sampleRate int) *Player {
	rate := DefaultSampleRate
	if sampleRate > 0 {
		rate = beep.SampleRate(sampleRate)
	}
	return &Player{
		log:    log,
		rate:   rate,
		mixer:  &beep.Mixer{},
		voices: make(map[ecs.Entity]*voice),
	}
}

// Initialize opens the speaker with the given buffer length and starts the
// mixer.
func (p *Player) Initialize(buffer time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if buffer <= 0 {
		buffer = 100 * time.Millisecond
	}
	if err := speaker.Init(p.rate, p.rate.N(buffer)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.initialized = true
	p.log.Info("audio initialized", zap.Int("sample_rate", int(p.rate)))
	return nil
}

// Play decodes a WAV file and adds it to the mixer for e. A sound already
// playing for e is replaced.
func (p *Player) Play(e ecs.Entity, path string, loop bool, volume float32) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open sound %s: %w", path, err)
	}
	source, format, err := wav.Decode(f)
	if err != nil {
		f.Close()
		return fmt.Errorf("decode sound %s: %w", path, err)
	}

	var s beep.Streamer = source
	if loop {
		s = beep.Loop(-1, source)
	}
	if format.SampleRate != p.rate {
		s = beep.Resample(4, format.SampleRate, p.rate, s)
	}
	vol := &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: volume <= 0}
	if volume > 0 {
		vol.Volume = math.Log2(float64(volume))
	}
	v := &voice{source: source}
	v.ctrl = &beep.Ctrl{Streamer: beep.Seq(vol, beep.Callback(func() { v.done.Store(true) }))}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked(e)
	p.voices[e] = v
	p.withSpeaker(func() { p.mixer.Add(v.ctrl) })
	return nil
}

// Stop silences and releases e's voice.
func (p *Player) Stop(e ecs.Entity) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked(e)
}

func (p *Player) stopLocked(e ecs.Entity) {
	v, ok := p.voices[e]
	if !ok {
		return
	}
	// A nil streamer drains the ctrl out of the mixer on its next pass.
	p.withSpeaker(func() { v.ctrl.Streamer = nil })
	v.source.Close()
	delete(p.voices, e)
}

// Playing reports whether e has a voice that has not run out.
func (p *Player) Playing(e ecs.Entity) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	v, ok := p.voices[e]
	return ok && !v.done.Load()
}

// Reap releases the voices whose sounds ended on their own and returns
// their entities.
func (p *Player) Reap() []ecs.Entity {
	p.mu.Lock()
	defer p.mu.Unlock()
	var ended []ecs.Entity
	for e, v := range p.voices {
		if v.done.Load() {
			ended = append(ended, e)
			p.stopLocked(e)
		}
	}
	return ended
}

// Voices returns the number of active voices.
func (p *Player) Voices() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.voices)
}

// StopAll stops every voice, e.g. when a scene unloads.
func (p *Player) StopAll() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for e := range p.voices {
		p.stopLocked(e)
	}
}

// Close stops every voice and clears the mixer.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for e := range p.voices {
		p.stopLocked(e)
	}
	p.withSpeaker(p.mixer.Clear)
}

// withSpeaker runs fn under the speaker lock once the speaker is running.
func (p *Player) withSpeaker(fn func()) {
	if !p.initialized {
		fn()
		return
	}
	speaker.Lock()
	fn()
	speaker.Unlock()
}
