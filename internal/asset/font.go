package asset

import (
	"fmt"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/freemono"
	"tinygo.org/x/tinyfont/proggy"
)

// Font is a bitmap font face. Faces are compiled in, so "loading" resolves a
// face name instead of opening a file.
type Font struct {
	UUID string
	Name string
	Size int
	Face tinyfont.Fonter
}

// DefaultFont is the face used when a UI text names no font.
const DefaultFont = "proggy"

var faces = map[string]tinyfont.Fonter{
	"proggy":   &proggy.TinySZ8pt7b,
	"freemono": &freemono.Regular9pt7b,
}

// LoadFont resolves a named face. size is the nominal point size; glyphs are
// scaled to it at draw time.
func LoadFont(name string, size int) (*Font, error) {
	if name == "" {
		name = DefaultFont
	}
	face, ok := faces[name]
	if !ok {
		return nil, fmt.Errorf("unknown font %q", name)
	}
	if size <= 0 {
		size = 16
	}
	return &Font{Name: name, Size: size, Face: face}, nil
}

// LineHeight returns the face's line advance in pixels before scaling.
func (f *Font) LineHeight() int {
	return int(f.Face.GetYAdvance())
}

// TextWidth returns the unscaled pixel width of s.
func (f *Font) TextWidth(s string) int {
	_, w := tinyfont.LineWidth(f.Face, s)
	return int(w)
}
