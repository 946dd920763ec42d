package component

// Variable is a free-form blackboard for scripts.
type Variable struct {
	Floats  map[string]float32 `json:"floats"`
	Ints    map[string]int     `json:"ints"`
	Strings map[string]string  `json:"strings"`
}

func NewVariable() Variable {
	return Variable{
		Floats:  map[string]float32{},
		Ints:    map[string]int{},
		Strings: map[string]string{},
	}
}

// State is a small string state machine. Transitions maps "from:event" or
// "event" keys to target states; the state system reports changes.
type State struct {
	Current     string            `json:"currentState"`
	Previous    string            `json:"previousState"`
	Transitions map[string]string `json:"transitions"`
}

// Fire applies the transition for event, if any, and reports whether the
// state changed.
func (s *State) Fire(event string) bool {
	next, ok := s.Transitions[s.Current+":"+event]
	if !ok {
		next, ok = s.Transitions[event]
	}
	if !ok || next == s.Current {
		return false
	}
	s.Current = next
	return true
}

// AudioSource plays a sound file through the audio player.
type AudioSource struct {
	Path        string  `json:"soundPath"`
	Loop        bool    `json:"loop"`
	Volume      float32 `json:"volume"`
	PlayOnStart bool    `json:"playOnStart"`
	Playing     bool    `json:"-"`
}

func NewAudioSource(path string) AudioSource {
	return AudioSource{Path: path, Volume: 1, PlayOnStart: true}
}

// CameraController turns a camera into a free-fly camera.
type CameraController struct {
	Sensitivity float32 `json:"sens"`
	Speed       float32 `json:"speed"`
	Active      bool    `json:"active"`
}

func NewCameraController() CameraController {
	return CameraController{Sensitivity: 0.5, Speed: 5, Active: true}
}
