package render

import "github.com/go-gl/mathgl/mgl32"

// Settings are host-level options the render system applies to each 3D pass.
type Settings struct {
	ClearColor uint32
	Lighting   bool
	LightDir   mgl32.Vec3
	LightColor mgl32.Vec3
}

func DefaultSettings() Settings {
	return Settings{
		ClearColor: DefaultClearColor,
		Lighting:   true,
		LightDir:   mgl32.Vec3{0, 0, -1},
		LightColor: mgl32.Vec3{1, 1, 1},
	}
}
