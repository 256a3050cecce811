package colorlab

import "image/color"

// RGBA is a straight (non-premultiplied) color with red, green, blue and
// alpha components in [0, 1]. It is the form handed to renderers as a
// clear color or shader uniform.
//
// RGBA implements color.Color so it can be drawn with image/draw.
type RGBA struct {
	R, G, B, A float64
}

// RGBA implements color.Color. The returned values are alpha-premultiplied
// and in [0, 0xffff].
func (c RGBA) RGBA() (r, g, b, a uint32) {
	a = uint32(clamp01(c.A)*0xffff + 0.5)
	r = uint32(clamp01(c.R)*clamp01(c.A)*0xffff + 0.5)
	g = uint32(clamp01(c.G)*clamp01(c.A)*0xffff + 0.5)
	b = uint32(clamp01(c.B)*clamp01(c.A)*0xffff + 0.5)
	return r, g, b, a
}

// NRGBA converts c to an 8-bit non-premultiplied color.
func (c RGBA) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: toByte(c.R),
		G: toByte(c.G),
		B: toByte(c.B),
		A: toByte(c.A),
	}
}

// Float32s returns the four channels as float32, the layout of a vec4<f32>
// uniform.
func (c RGBA) Float32s() [4]float32 {
	return [4]float32{float32(c.R), float32(c.G), float32(c.B), float32(c.A)}
}

// Color returns c as a Color stored in RGB.
func (c RGBA) Color() Color {
	return FromRGB(c.R, c.G, c.B, c.A)
}

// Lerp performs linear interpolation between two colors.
func (c RGBA) Lerp(other RGBA, t float64) RGBA {
	return RGBA{
		R: c.R + (other.R-c.R)*t,
		G: c.G + (other.G-c.G)*t,
		B: c.B + (other.B-c.B)*t,
		A: c.A + (other.A-c.A)*t,
	}
}

// FromImageColor converts a standard color.Color to a Color stored in RGB.
func FromImageColor(c color.Color) Color {
	n := color.NRGBA64Model.Convert(c).(color.NRGBA64)
	return FromRGB(
		float64(n.R)/0xffff,
		float64(n.G)/0xffff,
		float64(n.B)/0xffff,
		float64(n.A)/0xffff,
	)
}

// clamp01 restricts a value to [0, 1].
func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
