// Package input holds the per-frame keyboard and mouse snapshot that
// presenters fill and systems read.
package input

import "github.com/go-gl/mathgl/mgl32"

// Key names used by the built-in systems. Presenters translate their native
// codes to these.
const (
	KeyW      = "W"
	KeyA      = "A"
	KeyS      = "S"
	KeyD      = "D"
	KeyQ      = "Q"
	KeyE      = "E"
	KeySpace  = "Space"
	KeyEscape = "Escape"
	KeyShift  = "Shift"
	KeyEnter  = "Enter"
	KeyUp     = "Up"
	KeyDown   = "Down"
	KeyLeft   = "Left"
	KeyRight  = "Right"
)

// Mouse buttons.
const (
	MouseLeft = iota
	MouseRight
	MouseMiddle
	mouseButtons
)

// State is the input snapshot for one frame.
type State struct {
	down     map[string]bool
	pressed  map[string]bool
	released map[string]bool

	Mouse      mgl32.Vec2
	MouseDelta mgl32.Vec2
	buttons    [mouseButtons]bool
	clicked    [mouseButtons]bool

	quit bool
}

func NewState() *State {
	return &State{
		down:     make(map[string]bool, 16),
		pressed:  make(map[string]bool, 8),
		released: make(map[string]bool, 8),
	}
}

// BeginFrame clears the per-frame edges and the mouse delta. Held keys stay
// down.
func (s *State) BeginFrame() {
	clear(s.pressed)
	clear(s.released)
	s.MouseDelta = mgl32.Vec2{}
	s.clicked = [mouseButtons]bool{}
}

// SetKey records a key transition. Repeated downs do not re-trigger Pressed.
func (s *State) SetKey(key string, down bool) {
	was := s.down[key]
	switch {
	case down && !was:
		s.pressed[key] = true
	case !down && was:
		s.released[key] = true
	}
	if down {
		s.down[key] = true
	} else {
		delete(s.down, key)
	}
}

// Down reports whether key is held.
func (s *State) Down(key string) bool { return s.down[key] }

// Pressed reports whether key went down this frame.
func (s *State) Pressed(key string) bool { return s.pressed[key] }

// Released reports whether key went up this frame.
func (s *State) Released(key string) bool { return s.released[key] }

// PressedKeys lists the keys that went down this frame.
func (s *State) PressedKeys() []string {
	out := make([]string, 0, len(s.pressed))
	for k := range s.pressed {
		out = append(out, k)
	}
	return out
}

// MoveMouse sets the cursor position and accumulates the delta.
func (s *State) MoveMouse(x, y float32) {
	p := mgl32.Vec2{x, y}
	s.MouseDelta = s.MouseDelta.Add(p.Sub(s.Mouse))
	s.Mouse = p
}

// SetButton records a mouse button state.
func (s *State) SetButton(b int, down bool) {
	if b < 0 || b >= mouseButtons {
		return
	}
	if down && !s.buttons[b] {
		s.clicked[b] = true
	}
	s.buttons[b] = down
}

func (s *State) Button(b int) bool {
	return b >= 0 && b < mouseButtons && s.buttons[b]
}

// Clicked reports whether button b went down this frame.
func (s *State) Clicked(b int) bool {
	return b >= 0 && b < mouseButtons && s.clicked[b]
}

// RequestQuit asks the frame loop to stop after the current frame.
func (s *State) RequestQuit()        { s.quit = true }
func (s *State) QuitRequested() bool { return s.quit }
