package render

import "github.com/go-gl/mathgl/mgl32"

// PackColor converts RGBA in [0,1] to 0xAARRGGBB. Channels are clamped and
// truncated.
func PackColor(c mgl32.Vec4) uint32 {
	r := uint32(clamp01(c[0]) * 255)
	g := uint32(clamp01(c[1]) * 255)
	b := uint32(clamp01(c[2]) * 255)
	a := uint32(clamp01(c[3]) * 255)
	return a<<24 | r<<16 | g<<8 | b
}

// UnpackColor is the inverse of PackColor.
func UnpackColor(argb uint32) mgl32.Vec4 {
	return mgl32.Vec4{
		float32(argb>>16&0xFF) / 255,
		float32(argb>>8&0xFF) / 255,
		float32(argb&0xFF) / 255,
		float32(argb>>24&0xFF) / 255,
	}
}

// Blend composites src over dst with src's alpha.
func Blend(src, dst mgl32.Vec4) mgl32.Vec4 {
	a := src[3]
	return mgl32.Vec4{
		src[0]*a + dst[0]*(1-a),
		src[1]*a + dst[1]*(1-a),
		src[2]*a + dst[2]*(1-a),
		a + dst[3]*(1-a),
	}
}

func clamp01(f float32) float32 {
	if f < 0 || f != f {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
