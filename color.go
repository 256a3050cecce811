package colorlab

// Format identifies which representation a Color stores natively.
type Format uint8

const (
	// FormatRGB stores red, green and blue in [0, 1].
	FormatRGB Format = iota
	// FormatCMYK stores cyan, magenta, yellow and black in [0, 1].
	FormatCMYK
	// FormatHSL stores hue in [0, 360) and saturation, lightness in [0, 1].
	FormatHSL
)

// String returns the lowercase name of the format.
func (f Format) String() string {
	switch f {
	case FormatRGB:
		return "rgb"
	case FormatCMYK:
		return "cmyk"
	case FormatHSL:
		return "hsl"
	default:
		return "unknown"
	}
}

// ParseFormat returns the Format named by s ("rgb", "cmyk" or "hsl").
func ParseFormat(s string) (Format, error) {
	switch s {
	case "rgb":
		return FormatRGB, nil
	case "cmyk":
		return FormatCMYK, nil
	case "hsl":
		return FormatHSL, nil
	}
	return 0, &UnknownFormatError{Name: s}
}

// Model is the native payload of a Color. It is implemented only by
// RGB, CMYK and HSL.
type Model interface {
	// Format reports which representation the payload belongs to.
	Format() Format

	// rgb converts the payload to RGB, the common intermediate of every
	// conversion.
	rgb() RGB
}

// RGB is a color in red, green, blue components, each in [0, 1].
type RGB struct {
	R, G, B float64
}

// CMYK is a color in cyan, magenta, yellow and black components, each in [0, 1].
type CMYK struct {
	C, M, Y, K float64
}

// HSL is a color in hue (degrees in [0, 360)), saturation and lightness
// (both in [0, 1]).
type HSL struct {
	H, S, L float64
}

// Format implements Model.
func (RGB) Format() Format { return FormatRGB }

// Format implements Model.
func (CMYK) Format() Format { return FormatCMYK }

// Format implements Model.
func (HSL) Format() Format { return FormatHSL }

func (m RGB) rgb() RGB  { return m }
func (m CMYK) rgb() RGB { return m.RGB() }
func (m HSL) rgb() RGB  { return m.RGB() }

// WithAlpha returns a Color storing m with alpha a.
func (m RGB) WithAlpha(a float64) Color { return Color{model: m, a: a} }

// WithAlpha returns a Color storing m with alpha a.
func (m CMYK) WithAlpha(a float64) Color { return Color{model: m, a: a} }

// WithAlpha returns a Color storing m with alpha a.
func (m HSL) WithAlpha(a float64) Color { return Color{model: m, a: a} }

// Color is a color stored in exactly one of the RGB, CMYK or HSL
// representations, plus an alpha channel in [0, 1].
//
// Only the native representation is stored. The other two are recomputed
// from it on every call to the matching getter; CMYK and HSL are always
// converted through RGB. Colors are immutable values and safe for
// concurrent use.
//
// The zero Color is transparent black stored as RGB.
type Color struct {
	model Model
	a     float64
}

// FromRGB creates a Color stored as RGB. Components are not range checked.
func FromRGB(r, g, b, a float64) Color {
	return Color{model: RGB{R: r, G: g, B: b}, a: a}
}

// FromCMYK creates a Color stored as CMYK. Components are not range checked.
func FromCMYK(c, m, y, k, a float64) Color {
	return Color{model: CMYK{C: c, M: m, Y: y, K: k}, a: a}
}

// FromHSL creates a Color stored as HSL. Components are not range checked.
func FromHSL(h, s, l, a float64) Color {
	return Color{model: HSL{H: h, S: s, L: l}, a: a}
}

// Opaque creates a fully opaque Color storing m.
// A nil model yields opaque black.
func Opaque(m Model) Color {
	if m == nil {
		m = RGB{}
	}
	return Color{model: m, a: 1}
}

// Model returns the native payload.
func (c Color) Model() Model {
	if c.model == nil {
		return RGB{}
	}
	return c.model
}

// Format returns the native storage format.
func (c Color) Format() Format {
	return c.Model().Format()
}

// Alpha returns the alpha channel.
func (c Color) Alpha() float64 {
	return c.a
}

// WithAlpha returns a copy of c with alpha a, keeping the storage format.
func (c Color) WithAlpha(a float64) Color {
	return Color{model: c.Model(), a: a}
}

// RGB returns the red, green and blue components.
func (c Color) RGB() RGB {
	return c.Model().rgb()
}

// CMYK returns the cyan, magenta, yellow and black components.
// HSL colors are converted through RGB.
func (c Color) CMYK() CMYK {
	if m, ok := c.model.(CMYK); ok {
		return m
	}
	return c.RGB().CMYK()
}

// HSL returns the hue, saturation and lightness components.
// CMYK colors are converted through RGB.
func (c Color) HSL() HSL {
	if m, ok := c.model.(HSL); ok {
		return m
	}
	return c.RGB().HSL()
}

// RGBA returns red, green, blue and alpha as floats in [0, 1],
// ready to be used as a clear color or shader uniform.
func (c Color) RGBA() RGBA {
	rgb := c.RGB()
	return RGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: c.a}
}

// Convert returns the same color stored natively in format f.
func (c Color) Convert(f Format) Color {
	switch f {
	case FormatCMYK:
		return Color{model: c.CMYK(), a: c.a}
	case FormatHSL:
		return Color{model: c.HSL(), a: c.a}
	default:
		return Color{model: c.RGB(), a: c.a}
	}
}

// String returns the "#rrggbbaa" form of c.
func (c Color) String() string {
	return c.Hex()
}

// Common colors
var (
	Black       = FromRGB(0, 0, 0, 1)
	White       = FromRGB(1, 1, 1, 1)
	Red         = FromRGB(1, 0, 0, 1)
	Green       = FromRGB(0, 1, 0, 1)
	Blue        = FromRGB(0, 0, 1, 1)
	Yellow      = FromRGB(1, 1, 0, 1)
	Cyan        = FromRGB(0, 1, 1, 1)
	Magenta     = FromRGB(1, 0, 1, 1)
	Transparent = FromRGB(0, 0, 0, 0)
)
