// Package report describes a color in every representation, for the
// command line tool and the HTTP server.
package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/gogpu/colorlab"
	"github.com/gogpu/colorlab/slider"
)

// RGB holds normalized red, green and blue.
type RGB struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

// CMYK holds normalized cyan, magenta, yellow and black.
type CMYK struct {
	C float64 `json:"c"`
	M float64 `json:"m"`
	Y float64 `json:"y"`
	K float64 `json:"k"`
}

// HSL holds hue in degrees and normalized saturation and lightness.
type HSL struct {
	H float64 `json:"h"`
	S float64 `json:"s"`
	L float64 `json:"l"`
}

// Sliders holds integer slider positions per format.
type Sliders struct {
	RGB  [3]int `json:"rgb"`
	CMYK [4]int `json:"cmyk"`
	HSL  [3]int `json:"hsl"`
	A    int    `json:"alpha"`
}

// Description is a color in every representation.
type Description struct {
	Color   colorlab.Color `json:"color"`
	Format  string         `json:"format"`
	Alpha   float64        `json:"alpha"`
	RGB     RGB            `json:"rgb"`
	CMYK    CMYK           `json:"cmyk"`
	HSL     HSL            `json:"hsl"`
	Sliders Sliders        `json:"sliders"`
}

// Describe derives every representation of c.
func Describe(c colorlab.Color) Description {
	rgb, cmyk, hsl := c.RGB(), c.CMYK(), c.HSL()
	rs := slider.Positions(c, colorlab.FormatRGB)
	cs := slider.Positions(c, colorlab.FormatCMYK)
	hs := slider.Positions(c, colorlab.FormatHSL)

	return Description{
		Color:  c,
		Format: c.Format().String(),
		Alpha:  c.Alpha(),
		RGB:    RGB{R: rgb.R, G: rgb.G, B: rgb.B},
		CMYK:   CMYK{C: cmyk.C, M: cmyk.M, Y: cmyk.Y, K: cmyk.K},
		HSL:    HSL{H: hsl.H, S: hsl.S, L: hsl.L},
		Sliders: Sliders{
			RGB:  [3]int(rs.Channels[:3]),
			CMYK: cs.Channels,
			HSL:  [3]int(hs.Channels[:3]),
			A:    rs.Alpha,
		},
	}
}

// WriteText writes d as an aligned table.
func (d Description) WriteText(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	rows := []struct{ name, floats, ints string }{
		{"hex", d.Color.Hex(), ""},
		{"rgb", fmt.Sprintf("%.4f %.4f %.4f", d.RGB.R, d.RGB.G, d.RGB.B), ints(d.Sliders.RGB[:])},
		{"cmyk", fmt.Sprintf("%.4f %.4f %.4f %.4f", d.CMYK.C, d.CMYK.M, d.CMYK.Y, d.CMYK.K), ints(d.Sliders.CMYK[:])},
		{"hsl", fmt.Sprintf("%.2f %.4f %.4f", d.HSL.H, d.HSL.S, d.HSL.L), ints(d.Sliders.HSL[:])},
		{"alpha", fmt.Sprintf("%.4f", d.Alpha), fmt.Sprint(d.Sliders.A)},
	}
	for _, r := range rows {
		name := r.name
		if name == d.Format {
			name += "*"
		}
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\n", name, r.floats, r.ints); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func ints(v []int) string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = fmt.Sprint(x)
	}
	return strings.Join(parts, ",")
}

// Parse reads a color given as "hex" (#rrggbbaa) or as slider positions
// for "rgb", "cmyk" or "hsl" (see slider.Parse).
func Parse(kind, value string) (colorlab.Color, error) {
	if kind == "hex" {
		return colorlab.FromHex(value)
	}
	f, err := colorlab.ParseFormat(kind)
	if err != nil {
		return colorlab.Color{}, err
	}
	v, err := slider.Parse(f, value)
	if err != nil {
		return colorlab.Color{}, err
	}
	return slider.Build(v), nil
}
