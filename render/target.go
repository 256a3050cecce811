// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"image"
	"image/draw"

	"github.com/gogpu/colorlab"
	"github.com/gogpu/gputypes"
)

// RenderTarget defines where rendering output goes.
//
// A RenderTarget is an abstraction over different rendering destinations:
//   - PixmapTarget: CPU-backed *image.RGBA for software rendering
//   - SurfaceTarget: a GPU texture view provided by the host
//
// Targets support CPU access (Pixels), GPU access (TextureView), or both.
// The Renderer implementation chooses the appropriate access method.
type RenderTarget interface {
	// Width returns the target width in pixels.
	Width() int

	// Height returns the target height in pixels.
	Height() int

	// Format returns the pixel format of the target.
	Format() gputypes.TextureFormat

	// TextureView returns the GPU texture view for this target.
	// Returns nil for CPU-only targets.
	TextureView() TextureView

	// Pixels returns direct access to pixel data.
	// Returns nil for GPU-only targets.
	// For RGBA format, each pixel is 4 bytes: R, G, B, A (premultiplied).
	Pixels() []byte

	// Stride returns the number of bytes per row.
	Stride() int
}

// Resizable is implemented by targets whose dimensions can change between
// frames, such as a window surface or a pixmap driven by a Loop.
type Resizable interface {
	Resize(width, height int)
}

// PixmapTarget is a CPU-backed render target using *image.RGBA.
//
// This target supports software rendering and provides direct pixel access.
//
// Example:
//
//	target := render.NewPixmapTarget(800, 600)
//	renderer.Render(target, scene, 0)
//	img := target.Image()
type PixmapTarget struct {
	img *image.RGBA
}

// NewPixmapTarget creates a new CPU-backed render target.
func NewPixmapTarget(width, height int) *PixmapTarget {
	return &PixmapTarget{
		img: image.NewRGBA(image.Rect(0, 0, width, height)),
	}
}

// NewPixmapTargetFromImage wraps an existing *image.RGBA as a render target.
// The image is used directly without copying.
func NewPixmapTargetFromImage(img *image.RGBA) *PixmapTarget {
	return &PixmapTarget{img: img}
}

// Width returns the target width in pixels.
func (t *PixmapTarget) Width() int {
	return t.img.Bounds().Dx()
}

// Height returns the target height in pixels.
func (t *PixmapTarget) Height() int {
	return t.img.Bounds().Dy()
}

// Format returns the pixel format (RGBA8).
func (t *PixmapTarget) Format() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8Unorm
}

// TextureView returns nil as this is a CPU-only target.
func (t *PixmapTarget) TextureView() TextureView {
	return nil
}

// Pixels returns direct access to the pixel data.
func (t *PixmapTarget) Pixels() []byte {
	return t.img.Pix
}

// Stride returns the number of bytes per row.
func (t *PixmapTarget) Stride() int {
	return t.img.Stride
}

// Image returns the underlying *image.RGBA.
// The returned image shares memory with the target.
func (t *PixmapTarget) Image() *image.RGBA {
	return t.img
}

// Clear replaces every pixel with c, alpha included.
func (t *PixmapTarget) Clear(c colorlab.Color) {
	draw.Draw(t.img, t.img.Bounds(), image.NewUniform(c.RGBA()), image.Point{}, draw.Src)
}

// SetPixel sets a single pixel at the given coordinates.
func (t *PixmapTarget) SetPixel(x, y int, c colorlab.Color) {
	t.img.Set(x, y, c.RGBA())
}

// GetPixel returns the color at the given coordinates, un-premultiplied
// and stored as RGB.
func (t *PixmapTarget) GetPixel(x, y int) colorlab.Color {
	return colorlab.FromImageColor(t.img.RGBAAt(x, y))
}

// Resize replaces the pixel buffer with one of the given dimensions.
// The contents are not preserved. Resizing to the current size is a no-op.
func (t *PixmapTarget) Resize(width, height int) {
	if width == t.Width() && height == t.Height() {
		return
	}
	t.img = image.NewRGBA(image.Rect(0, 0, width, height))
}

// Ensure PixmapTarget implements RenderTarget and Resizable.
var (
	_ RenderTarget = (*PixmapTarget)(nil)
	_ Resizable    = (*PixmapTarget)(nil)
)

// SurfaceTarget wraps a texture view owned by the host application, usually
// the current frame of a window surface. The view is not destroyed by the
// target.
type SurfaceTarget struct {
	width  int
	height int
	format gputypes.TextureFormat
	view   TextureView
}

// NewSurfaceTarget creates a render target from a host texture view.
func NewSurfaceTarget(width, height int, format gputypes.TextureFormat, view TextureView) *SurfaceTarget {
	return &SurfaceTarget{
		width:  width,
		height: height,
		format: format,
		view:   view,
	}
}

// Width returns the surface width in pixels.
func (t *SurfaceTarget) Width() int {
	return t.width
}

// Height returns the surface height in pixels.
func (t *SurfaceTarget) Height() int {
	return t.height
}

// Format returns the surface pixel format.
func (t *SurfaceTarget) Format() gputypes.TextureFormat {
	return t.format
}

// TextureView returns the current frame's texture view.
func (t *SurfaceTarget) TextureView() TextureView {
	return t.view
}

// SetTextureView replaces the view, typically once per acquired frame.
func (t *SurfaceTarget) SetTextureView(view TextureView) {
	t.view = view
}

// Pixels returns nil as surfaces do not support CPU access.
func (t *SurfaceTarget) Pixels() []byte {
	return nil
}

// Stride returns 0 as surfaces do not support CPU access.
func (t *SurfaceTarget) Stride() int {
	return 0
}

// Resize records the new surface size. The host is responsible for
// reconfiguring the surface and supplying a matching view.
func (t *SurfaceTarget) Resize(width, height int) {
	t.width = width
	t.height = height
}

// Ensure SurfaceTarget implements RenderTarget and Resizable.
var (
	_ RenderTarget = (*SurfaceTarget)(nil)
	_ Resizable    = (*SurfaceTarget)(nil)
)
