// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"

	"github.com/gogpu/colorlab"
	"github.com/gogpu/gputypes"
)

// SoftwareRenderer is a CPU-based renderer.
//
// Each triangle is rasterized with an anti-aliasing vector.Rasterizer whose
// source image evaluates the object's Shade function per pixel, so the
// result matches the WGSL fragment shaders of the GPU path.
//
// Example:
//
//	renderer := render.NewSoftwareRenderer()
//	target := render.NewPixmapTarget(800, 600)
//	scene := render.NewScene(render.WithObjects(render.NewColorWheel()))
//
//	renderer.Render(target, scene, 2.5)
//	img := target.Image()
type SoftwareRenderer struct {
	raster *vector.Rasterizer
}

// NewSoftwareRenderer creates a new CPU-based software renderer.
func NewSoftwareRenderer() *SoftwareRenderer {
	return &SoftwareRenderer{}
}

// Render draws the scene to the target.
//
// The background, when set, replaces every pixel first. Objects are then
// composited over it in order. Returns an error if the target is GPU-only
// or not RGBA8.
func (r *SoftwareRenderer) Render(target RenderTarget, scene *Scene, time float64) error {
	if target == nil {
		return ErrNilTarget
	}

	dst, err := targetImage(target)
	if err != nil {
		return err
	}

	if scene == nil {
		return nil
	}

	if bg, ok := scene.Background(); ok {
		draw.Draw(dst, dst.Bounds(), image.NewUniform(bg.RGBA()), image.Point{}, draw.Src)
	}

	for _, obj := range scene.Objects() {
		r.drawObject(dst, obj, time)
	}

	colorlab.Logger().Debug("render: software frame",
		"width", target.Width(), "height", target.Height(),
		"objects", scene.Len(), "time", time)

	return nil
}

// Flush ensures all rendering is complete.
// For the software renderer, this is a no-op as operations are synchronous.
func (r *SoftwareRenderer) Flush() error {
	return nil
}

// Capabilities returns the renderer's capabilities.
func (r *SoftwareRenderer) Capabilities() RendererCapabilities {
	return RendererCapabilities{
		IsGPU:                false,
		SupportsAntialiasing: true,
		SupportsSurfaces:     false,
		MaxTextureSize:       0, // No limit
	}
}

// targetImage returns the target's pixels as an *image.RGBA without copying.
func targetImage(target RenderTarget) (*image.RGBA, error) {
	if pm, ok := target.(*PixmapTarget); ok {
		return pm.Image(), nil
	}

	pixels := target.Pixels()
	if pixels == nil {
		return nil, ErrNoCPUAccess
	}
	if f := target.Format(); f != gputypes.TextureFormatRGBA8Unorm {
		return nil, fmt.Errorf("render: unsupported pixel format %v", f)
	}
	return &image.RGBA{
		Pix:    pixels,
		Stride: target.Stride(),
		Rect:   image.Rect(0, 0, target.Width(), target.Height()),
	}, nil
}

// drawObject rasterizes obj onto dst. All triangles of an object share one
// path, so coverage along shared edges sums to one instead of leaving seams.
func (r *SoftwareRenderer) drawObject(dst *image.RGBA, obj Object, time float64) {
	w, h := dst.Bounds().Dx(), dst.Bounds().Dy()
	if w == 0 || h == 0 {
		return
	}

	src := newFragmentSource(obj, time, w, h)
	if len(src.tris) == 0 {
		return
	}

	if r.raster == nil {
		r.raster = vector.NewRasterizer(w, h)
	}
	r.raster.Reset(w, h)
	r.raster.DrawOp = draw.Over
	for _, t := range src.tris {
		for j, v := range t.v {
			px, py := toPixel(v.X, v.Y, w, h)
			if j == 0 {
				r.raster.MoveTo(px, py)
			} else {
				r.raster.LineTo(px, py)
			}
		}
		r.raster.ClosePath()
	}
	r.raster.Draw(dst, dst.Bounds(), src, image.Point{})
}

// toPixel maps clip space (y up) to pixel space (y down).
func toPixel(x, y float64, w, h int) (float32, float32) {
	return float32((x + 1) / 2 * float64(w)), float32((1 - y) / 2 * float64(h))
}

// triangleSetup holds the barycentric denominators of one triangle.
type triangleSetup struct {
	v                 [3]Vertex
	d, e0, e1, e2, e3 float64
}

func newTriangleSetup(a, b, c Vertex) (triangleSetup, bool) {
	d := (b.Y-c.Y)*(a.X-c.X) + (c.X-b.X)*(a.Y-c.Y)
	if d == 0 {
		return triangleSetup{}, false
	}
	return triangleSetup{
		v:  [3]Vertex{a, b, c},
		d:  d,
		e0: b.Y - c.Y,
		e1: c.X - b.X,
		e2: c.Y - a.Y,
		e3: a.X - c.X,
	}, true
}

// weights returns the barycentric weights of (x, y).
func (t *triangleSetup) weights(x, y float64) [3]float64 {
	c := t.v[2]
	w0 := (t.e0*(x-c.X) + t.e1*(y-c.Y)) / t.d
	w1 := (t.e2*(x-c.X) + t.e3*(y-c.Y)) / t.d
	return [3]float64{w0, w1, 1 - w0 - w1}
}

// fragmentSource is an image.Image that shades the triangles of one object.
type fragmentSource struct {
	obj  Object
	tris []triangleSetup
	time float64
	w, h float64
}

func newFragmentSource(obj Object, time float64, w, h int) *fragmentSource {
	verts := obj.Vertices()
	s := &fragmentSource{obj: obj, time: time, w: float64(w), h: float64(h)}
	for i := 0; i+2 < len(verts); i += 3 {
		if t, ok := newTriangleSetup(verts[i], verts[i+1], verts[i+2]); ok {
			s.tris = append(s.tris, t)
		}
	}
	return s
}

func (s *fragmentSource) ColorModel() color.Model { return color.RGBA64Model }

func (s *fragmentSource) Bounds() image.Rectangle {
	return image.Rect(0, 0, int(s.w), int(s.h))
}

// At shades the center of pixel (x, y) with the triangle that contains it.
// Anti-aliased edge pixels may have centers just outside every triangle; they
// use the nearest one with weights clamped and renormalized.
func (s *fragmentSource) At(x, y int) color.Color {
	fx := (float64(x)+0.5)/s.w*2 - 1
	fy := 1 - (float64(y)+0.5)/s.h*2

	best, bestMin := 0, math.Inf(-1)
	var weights [3]float64
	for i := range s.tris {
		w := s.tris[i].weights(fx, fy)
		if m := min(w[0], w[1], w[2]); m > bestMin {
			best, bestMin, weights = i, m, w
		}
	}

	if bestMin < 0 {
		for i := range weights {
			weights[i] = max(weights[i], 0)
		}
		if sum := weights[0] + weights[1] + weights[2]; sum > 0 {
			for i := range weights {
				weights[i] /= sum
			}
		}
	}

	return s.obj.Shade(Fragment{X: fx, Y: fy, Weights: weights, Triangle: s.tris[best].v}, s.time)
}

// Ensure SoftwareRenderer implements Renderer and CapableRenderer.
var (
	_ Renderer        = (*SoftwareRenderer)(nil)
	_ CapableRenderer = (*SoftwareRenderer)(nil)
)
