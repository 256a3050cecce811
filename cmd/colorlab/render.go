package main

import (
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gogpu/colorlab"
	"github.com/gogpu/colorlab/render"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the triangle or color wheel scene to PNG",
	Example: `  colorlab render --scene wheel --time 1.5 -o wheel.png
  colorlab render --frames 30 --fps 15 -o frames/wheel-%03d.png`,
	RunE: runRender,
}

func init() {
	f := renderCmd.Flags()
	f.String("scene", "wheel", "Scene to render (wheel, triangle)")
	f.Int("width", 640, "Image width")
	f.Int("height", 480, "Image height")
	f.Float64("time", 0, "Animation time of the first frame in seconds")
	f.Int("frames", 1, "Number of frames")
	f.Int("fps", render.DefaultFPS, "Frames per second for --frames")
	f.Float64("frequency", render.DefaultFrequency, "Color wheel turns per second")
	f.Float64("saturation", render.DefaultSaturation, "Color wheel saturation (0-1)")
	f.String("background", "", "Background hex color #rrggbbaa (default transparent)")
	f.Int("supersample", 1, "Render at N times the size and downsample")
	f.StringP("output", "o", "colorlab.png", "Output file; a printf verb such as %03d numbers frames")
	f.Bool("gpu", false, "Render with the GPU, falling back to software")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()
	sceneName, _ := flags.GetString("scene")
	width, _ := flags.GetInt("width")
	height, _ := flags.GetInt("height")
	start, _ := flags.GetFloat64("time")
	frames, _ := flags.GetInt("frames")
	fps, _ := flags.GetInt("fps")
	frequency, _ := flags.GetFloat64("frequency")
	saturation, _ := flags.GetFloat64("saturation")
	bgHex, _ := flags.GetString("background")
	factor, _ := flags.GetInt("supersample")
	output, _ := flags.GetString("output")
	useGPU, _ := flags.GetBool("gpu")

	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid size %dx%d", width, height)
	}
	if frames <= 0 {
		return fmt.Errorf("invalid frame count %d", frames)
	}
	factor = max(factor, 1)

	scene, err := buildScene(sceneName, frequency, saturation)
	if err != nil {
		return err
	}
	if bgHex != "" {
		bg, err := colorlab.FromHex(bgHex)
		if err != nil {
			return err
		}
		scene.SetBackground(bg)
	}

	target := render.NewPixmapTarget(width*factor, height*factor)
	opts := []render.LoopOption{render.WithFPS(fps)}
	if useGPU {
		r, closeGPU, err := openGPURenderer()
		if err != nil {
			colorlab.Logger().Warn("gpu unavailable, using software renderer", slog.String("error", err.Error()))
		} else {
			defer closeGPU()
			opts = append(opts, render.WithRenderer(r))
		}
	}
	loop := render.NewLoop(scene, target, opts...)

	err = loop.Frames(frames, start, func(f render.Frame) error {
		var img image.Image = target.Image()
		if factor > 1 {
			img = render.Supersample(img, factor)
		}
		name := frameName(output, f.Index, frames)
		if err := writePNG(name, img); err != nil {
			return err
		}
		colorlab.Logger().Debug("frame written", slog.String("file", name), slog.Float64("time", f.Time))
		return nil
	})
	if err != nil {
		return err
	}

	st := loop.Stats()
	colorlab.Logger().Info("render done",
		slog.Int64("frames", st.Frames),
		slog.Duration("mean", st.Mean),
		slog.Duration("max", st.Max))
	return nil
}

func buildScene(name string, frequency, saturation float64) (*render.Scene, error) {
	switch name {
	case "wheel":
		return render.NewWheelScene(render.WithFrequency(frequency), render.WithSaturation(saturation)), nil
	case "triangle":
		return render.NewScene(render.WithObjects(render.NewTriangle())), nil
	}
	return nil, fmt.Errorf("unknown scene %q (want wheel or triangle)", name)
}

// frameName returns the file name of frame i. An output holding exactly one
// integer verb, such as "f%03d.png", is expanded with i. Any other output is
// used as is for a single frame, or gets the index inserted before the
// extension.
func frameName(output string, i, n int) string {
	if strings.Contains(output, "%") {
		if name := fmt.Sprintf(output, i); !strings.Contains(name, "%!") {
			return name
		}
	}
	if n == 1 {
		return output
	}
	ext := filepath.Ext(output)
	return fmt.Sprintf("%s-%04d%s", strings.TrimSuffix(output, ext), i, ext)
}

func writePNG(name string, img image.Image) error {
	if dir := filepath.Dir(name); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encoding %s: %w", name, err)
	}
	return f.Close()
}
