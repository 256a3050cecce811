package colorlab

import (
	"log/slog"
	"math"
)

// hexDigits is the number of hex digits in a color string, excluding '#'.
const hexDigits = 8

// FromHex parses a color of the form "rrggbbaa", optionally prefixed with
// '#'. Digits are case-insensitive and each pair is scaled from [0, 255]
// to [0, 1]. The result is stored as RGB.
//
// There is no short form: strings without exactly eight hex digits are
// rejected with an *InvalidFormatError.
func FromHex(s string) (Color, error) {
	hex := s
	if hex != "" && hex[0] == '#' {
		hex = hex[1:]
	}

	if len(hex) != hexDigits {
		return Color{}, invalidHex(s, "want 8 hex digits")
	}

	var ch [4]float64
	for i := range ch {
		hi, ok1 := hexValue(hex[2*i])
		lo, ok2 := hexValue(hex[2*i+1])
		if !ok1 || !ok2 {
			return Color{}, invalidHex(s, "non-hex digit")
		}
		ch[i] = float64(hi<<4|lo) / 255
	}

	return FromRGB(ch[0], ch[1], ch[2], ch[3]), nil
}

// MustHex is like FromHex but panics on malformed input.
// It is meant for package-level color literals.
func MustHex(s string) Color {
	c, err := FromHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

func invalidHex(s, reason string) error {
	Logger().Debug("colorlab: rejected hex color", slog.String("input", s), slog.String("reason", reason))
	return &InvalidFormatError{Input: s, Reason: reason}
}

// hexValue decodes a single hex digit.
func hexValue(c byte) (uint8, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// Hex returns c as "#rrggbbaa" with lowercase digits. Each channel is
// scaled to [0, 255] and rounded to the nearest integer.
func (c Color) Hex() string {
	const digits = "0123456789abcdef"

	rgba := c.RGBA()
	buf := [1 + hexDigits]byte{'#'}
	for i, v := range [4]float64{rgba.R, rgba.G, rgba.B, rgba.A} {
		b := toByte(v)
		buf[1+2*i] = digits[b>>4]
		buf[2+2*i] = digits[b&0x0f]
	}
	return string(buf[:])
}

// toByte scales v from [0, 1] to [0, 255] with rounding. Values outside
// the range are clamped so the result always fits two hex digits.
func toByte(v float64) uint8 {
	x := math.Round(v * 255)
	if x <= 0 || math.IsNaN(x) {
		return 0
	}
	if x >= 255 {
		return 255
	}
	return uint8(x)
}

// MarshalText implements encoding.TextMarshaler using the hex form.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler using the hex form.
func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := FromHex(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
