// Package slider converts between integer slider positions and the
// normalized components of a colorlab.Color.
//
// User interfaces expose color channels as integer ranges: 0–255 for RGB
// and alpha, 0–100 percent for CMYK and for HSL saturation and lightness,
// and 0–360 degrees for hue. The core color type works in normalized
// floats; this package is the boundary between the two.
package slider

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/gogpu/colorlab"
)

// Scale is an integer slider range [0, Max].
type Scale struct {
	Max int
}

// Slider ranges used by the color controls.
var (
	// Byte is used for red, green, blue and alpha.
	Byte = Scale{Max: 255}
	// Percent is used for cyan, magenta, yellow, black, saturation and lightness.
	Percent = Scale{Max: 100}
	// Degrees is used for hue.
	Degrees = Scale{Max: 360}
)

// Normalize maps a slider position to [0, 1].
func (s Scale) Normalize(v int) float64 {
	return float64(v) / float64(s.Max)
}

// Denormalize maps a value in [0, 1] to the nearest slider position,
// clamped to the scale.
func (s Scale) Denormalize(f float64) int {
	v := int(math.Round(f * float64(s.Max)))
	return max(0, min(s.Max, v))
}

// Values holds the slider positions of a color in one format. Only the
// first three (RGB, HSL) or four (CMYK) channels are meaningful.
type Values struct {
	Format   colorlab.Format
	Channels [4]int
	Alpha    int
}

// String formats v as "format(c0, c1, c2[, c3]) alpha".
func (v Values) String() string {
	n := channelCount(v.Format)
	parts := make([]string, n)
	for i := range n {
		parts[i] = strconv.Itoa(v.Channels[i])
	}
	return fmt.Sprintf("%s(%s) alpha %d", v.Format, strings.Join(parts, ", "), v.Alpha)
}

// RGB builds a color from 0–255 red, green, blue and alpha positions.
func RGB(r, g, b, a int) colorlab.Color {
	return colorlab.FromRGB(Byte.Normalize(r), Byte.Normalize(g), Byte.Normalize(b), Byte.Normalize(a))
}

// CMYK builds a color from 0–100 cyan, magenta, yellow and black positions
// and a 0–255 alpha position.
func CMYK(c, m, y, k, a int) colorlab.Color {
	return colorlab.FromCMYK(
		Percent.Normalize(c),
		Percent.Normalize(m),
		Percent.Normalize(y),
		Percent.Normalize(k),
		Byte.Normalize(a),
	)
}

// HSL builds a color from a 0–360 hue, 0–100 saturation and lightness and
// a 0–255 alpha position. A hue of 360 wraps to 0.
func HSL(h, s, l, a int) colorlab.Color {
	return colorlab.FromHSL(float64(h%360), Percent.Normalize(s), Percent.Normalize(l), Byte.Normalize(a))
}

// Build creates a color in format f from slider values in channel order.
func Build(v Values) colorlab.Color {
	ch := v.Channels
	switch v.Format {
	case colorlab.FormatCMYK:
		return CMYK(ch[0], ch[1], ch[2], ch[3], v.Alpha)
	case colorlab.FormatHSL:
		return HSL(ch[0], ch[1], ch[2], v.Alpha)
	default:
		return RGB(ch[0], ch[1], ch[2], v.Alpha)
	}
}

// Positions returns the slider positions of c expressed in format f.
func Positions(c colorlab.Color, f colorlab.Format) Values {
	v := Values{Format: f, Alpha: Byte.Denormalize(c.Alpha())}
	switch f {
	case colorlab.FormatCMYK:
		m := c.CMYK()
		v.Channels = [4]int{
			Percent.Denormalize(m.C),
			Percent.Denormalize(m.M),
			Percent.Denormalize(m.Y),
			Percent.Denormalize(m.K),
		}
	case colorlab.FormatHSL:
		m := c.HSL()
		v.Channels = [4]int{
			int(math.Round(m.H)) % 360,
			Percent.Denormalize(m.S),
			Percent.Denormalize(m.L),
		}
	default:
		m := c.RGB()
		v.Channels = [4]int{
			Byte.Denormalize(m.R),
			Byte.Denormalize(m.G),
			Byte.Denormalize(m.B),
		}
	}
	return v
}

// Parse reads comma separated slider positions for format f, such as
// "255,0,0" for RGB or "0,100,100,0" for CMYK. An optional extra value is
// the 0–255 alpha; it defaults to 255.
func Parse(f colorlab.Format, s string) (Values, error) {
	n := channelCount(f)
	fields := strings.Split(s, ",")
	if len(fields) != n && len(fields) != n+1 {
		return Values{}, &RangeError{Format: f, Input: s, Reason: fmt.Sprintf("want %d or %d values", n, n+1)}
	}

	v := Values{Format: f, Alpha: Byte.Max}
	for i, field := range fields {
		x, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			return Values{}, &RangeError{Format: f, Input: s, Reason: "not an integer: " + strconv.Quote(field)}
		}
		scale := channelScale(f, i)
		if i == n {
			scale = Byte
		}
		if x < 0 || x > scale.Max {
			return Values{}, &RangeError{Format: f, Input: s, Reason: fmt.Sprintf("value %d outside 0..%d", x, scale.Max)}
		}
		if i == n {
			v.Alpha = x
		} else {
			v.Channels[i] = x
		}
	}
	return v, nil
}

// RangeError reports slider input that cannot be turned into a color.
type RangeError struct {
	Format colorlab.Format
	Input  string
	Reason string
}

func (e *RangeError) Error() string {
	return "slider: invalid " + e.Format.String() + " values " + strconv.Quote(e.Input) + ": " + e.Reason
}

func channelCount(f colorlab.Format) int {
	if f == colorlab.FormatCMYK {
		return 4
	}
	return 3
}

func channelScale(f colorlab.Format, i int) Scale {
	switch f {
	case colorlab.FormatCMYK:
		return Percent
	case colorlab.FormatHSL:
		if i == 0 {
			return Degrees
		}
		return Percent
	default:
		return Byte
	}
}
