package colorlab

import "math"

// RGB converts CMYK to RGB.
func (m CMYK) RGB() RGB {
	return RGB{
		R: (1 - m.C) * (1 - m.K),
		G: (1 - m.M) * (1 - m.K),
		B: (1 - m.Y) * (1 - m.K),
	}
}

// RGB converts HSL to RGB.
//
// A saturation of zero yields the gray of lightness L regardless of hue.
// Otherwise the hue picks one of six 60° sectors; a hue of exactly 360
// falls into the last sector, which gives the same result as 0.
func (m HSL) RGB() RGB {
	if m.S == 0 {
		return RGB{R: m.L, G: m.L, B: m.L}
	}

	c := (1 - math.Abs(2*m.L-1)) * m.S
	x := c * (1 - math.Abs(math.Mod(m.H/60, 2)-1))
	o := m.L - c/2

	var r, g, b float64
	switch {
	case m.H < 60:
		r, g, b = c, x, 0
	case m.H < 120:
		r, g, b = x, c, 0
	case m.H < 180:
		r, g, b = 0, c, x
	case m.H < 240:
		r, g, b = 0, x, c
	case m.H < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return RGB{R: r + o, G: g + o, B: b + o}
}

// CMYK converts RGB to CMYK. Pure black yields C=M=Y=0, K=1.
func (m RGB) CMYK() CMYK {
	k := 1 - max(m.R, m.G, m.B)
	if k == 1 {
		return CMYK{K: 1}
	}
	return CMYK{
		C: (1 - m.R - k) / (1 - k),
		M: (1 - m.G - k) / (1 - k),
		Y: (1 - m.B - k) / (1 - k),
		K: k,
	}
}

// HSL converts RGB to HSL.
//
// Grays (zero chroma) get hue 0 and saturation 0; their hue carries no
// meaning. When two channels share the maximum, red wins over green and
// green over blue.
func (m RGB) HSL() HSL {
	hi := max(m.R, m.G, m.B)
	lo := min(m.R, m.G, m.B)
	chroma := hi - lo
	l := (hi + lo) / 2

	if chroma == 0 {
		return HSL{H: 0, S: 0, L: l}
	}

	var h float64
	switch hi {
	case m.R:
		h = math.Mod((m.G-m.B)/chroma, 6)
	case m.G:
		h = (m.B-m.R)/chroma + 2
	default:
		h = (m.R-m.G)/chroma + 4
	}
	h *= 60
	if h < 0 {
		h += 360
	}

	return HSL{H: h, S: chroma / (1 - math.Abs(2*l-1)), L: l}
}

// HSL converts CMYK to HSL through RGB.
func (m CMYK) HSL() HSL {
	return m.RGB().HSL()
}

// CMYK converts HSL to CMYK through RGB.
func (m HSL) CMYK() CMYK {
	return m.RGB().CMYK()
}
