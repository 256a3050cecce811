package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/gogpu/colorlab"
	"github.com/gogpu/colorlab/internal/report"
	"github.com/gogpu/colorlab/slider"
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Print a color in every representation",
	Example: `  colorlab convert --hex '#ff8000ff'
  colorlab convert --cmyk 0,50,100,0 --alpha 128
  colorlab convert --hsl 210,80,40 --json`,
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().String("hex", "", "Hex color #rrggbbaa")
	convertCmd.Flags().String("rgb", "", "RGB slider values r,g,b[,a] (0-255)")
	convertCmd.Flags().String("cmyk", "", "CMYK slider values c,m,y,k[,a] (0-100, alpha 0-255)")
	convertCmd.Flags().String("hsl", "", "HSL slider values h,s,l[,a] (0-360, 0-100, 0-100, alpha 0-255)")
	convertCmd.Flags().Int("alpha", -1, "Override alpha (0-255)")
	convertCmd.Flags().Bool("json", false, "Print JSON")
	convertCmd.MarkFlagsMutuallyExclusive("hex", "rgb", "cmyk", "hsl")
	convertCmd.MarkFlagsOneRequired("hex", "rgb", "cmyk", "hsl")
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, _ []string) error {
	c, err := colorFromFlags(cmd)
	if err != nil {
		return err
	}
	alpha, _ := cmd.Flags().GetInt("alpha")
	if alpha >= 0 {
		if alpha > slider.Byte.Max {
			return fmt.Errorf("alpha %d outside 0..%d", alpha, slider.Byte.Max)
		}
		c = c.WithAlpha(slider.Byte.Normalize(alpha))
	}

	d := report.Describe(c)
	out := cmd.OutOrStdout()
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(d)
	}
	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if err := writeSwatch(out, c); err != nil {
			return err
		}
	}
	return d.WriteText(out)
}

func colorFromFlags(cmd *cobra.Command) (colorlab.Color, error) {
	for _, kind := range []string{"hex", "rgb", "cmyk", "hsl"} {
		v, _ := cmd.Flags().GetString(kind)
		if v != "" {
			return report.Parse(kind, v)
		}
	}
	return colorlab.Color{}, errors.New("one of --hex, --rgb, --cmyk or --hsl is required")
}

// writeSwatch draws c as a block of 24-bit background color, composited
// over black.
func writeSwatch(w io.Writer, c colorlab.Color) error {
	p := c.RGBA()
	r := slider.Byte.Denormalize(p.R * p.A)
	g := slider.Byte.Denormalize(p.G * p.A)
	b := slider.Byte.Denormalize(p.B * p.A)
	_, err := fmt.Fprintf(w, "\x1b[48;2;%d;%d;%dm        \x1b[0m\n", r, g, b)
	return err
}
