package render

import (
	"image/color"
	"unicode"

	"github.com/farixgo/engine/internal/asset"
	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
)

type textCmd struct {
	font  *asset.Font
	text  string
	x, y  int
	scale int
	color color.RGBA
}

// foldText strips accents so text fits the 7-bit bitmap faces. Runes the
// faces still lack are replaced with '?'.
func foldText(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		// unfolded; the rune filter below still applies
		folded = s
	}
	out := []rune(folded)
	for i, r := range out {
		if r > 0x7E || (r < 0x20 && r != '\n') {
			out[i] = '?'
		}
	}
	return string(out)
}

// fbDisplayer lets tinyfont draw into the framebuffer. Every font pixel
// becomes a scale×scale block blended over the existing color.
type fbDisplayer struct {
	r      *Renderer
	ox, oy int
	scale  int
}

func (d *fbDisplayer) Size() (x, y int16) {
	return int16(d.r.width / d.scale), int16(d.r.height / d.scale)
}

func (d *fbDisplayer) SetPixel(x, y int16, c color.RGBA) {
	src := mgl32.Vec4{
		float32(c.R) / 255,
		float32(c.G) / 255,
		float32(c.B) / 255,
		float32(c.A) / 255,
	}
	for dy := 0; dy < d.scale; dy++ {
		py := d.oy + int(y)*d.scale + dy
		if py < 0 || py >= d.r.height {
			continue
		}
		for dx := 0; dx < d.scale; dx++ {
			px := d.ox + int(x)*d.scale + dx
			if px < 0 || px >= d.r.width {
				continue
			}
			i := py*d.r.width + px
			d.r.color[i] = PackColor(Blend(src, UnpackColor(d.r.color[i])))
		}
	}
}

func (d *fbDisplayer) Display() error { return nil }

// Text is always drawn upright.
func (d *fbDisplayer) SetRotation(drivers.Rotation) error { return nil }

var _ drivers.Displayer = (*fbDisplayer)(nil)

// drawQueuedText renders the frame's text on top of everything else.
func (r *Renderer) drawQueuedText() {
	for _, cmd := range r.text {
		d := &fbDisplayer{r: r, ox: cmd.x, oy: cmd.y, scale: cmd.scale}
		line := int16(cmd.font.LineHeight())
		for i, l := range splitLines(cmd.text) {
			tinyfont.WriteLine(d, cmd.font.Face, 0, line*int16(i+1), l, cmd.color)
		}
	}
	r.text = r.text[:0]
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	return append(lines, s[start:])
}

func toRGBA(c mgl32.Vec4) color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c[0]) * 255),
		G: uint8(clamp01(c[1]) * 255),
		B: uint8(clamp01(c[2]) * 255),
		A: uint8(clamp01(c[3]) * 255),
	}
}
