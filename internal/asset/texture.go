package asset

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
)

// Texture is a decoded image stored bottom row first as packed ARGB, so v=0
// samples the bottom edge like UV space expects.
type Texture struct {
	UUID   string
	Path   string
	Width  int
	Height int
	Pixels []uint32
}

// LoadTexture decodes a PNG, JPEG or GIF file.
func LoadTexture(path string) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open texture %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode texture %s: %w", path, err)
	}
	t := NewTextureFromImage(img)
	t.Path = path
	return t, nil
}

// NewTextureFromImage converts img, flipping it vertically.
func NewTextureFromImage(img image.Image) *Texture {
	b := img.Bounds()
	t := &Texture{
		Width:  b.Dx(),
		Height: b.Dy(),
		Pixels: make([]uint32, b.Dx()*b.Dy()),
	}
	for y := 0; y < t.Height; y++ {
		row := t.Height - 1 - y
		for x := 0; x < t.Width; x++ {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			t.Pixels[row*t.Width+x] = uint32(c.A)<<24 | uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
		}
	}
	return t
}

// NewSolidTexture returns a w×h texture filled with argb.
func NewSolidTexture(w, h int, argb uint32) *Texture {
	t := &Texture{Width: w, Height: h, Pixels: make([]uint32, w*h)}
	for i := range t.Pixels {
		t.Pixels[i] = argb
	}
	return t
}

// Sample does a nearest-texel lookup with u and v clamped to [0,1]. An empty
// texture samples opaque white.
func (t *Texture) Sample(u, v float32) uint32 {
	if t == nil || len(t.Pixels) == 0 {
		return 0xFFFFFFFF
	}
	u = clamp01(u)
	v = clamp01(v)
	x := min(int(u*float32(t.Width)), t.Width-1)
	y := min(int(v*float32(t.Height)), t.Height-1)
	return t.Pixels[y*t.Width+x]
}

func clamp01(f float32) float32 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
