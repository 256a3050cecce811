// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"math"

	"github.com/gogpu/colorlab"
	"github.com/gogpu/colorlab/render/shader"
)

// Color wheel defaults.
const (
	// DefaultFrequency turns the wheel once every five seconds.
	DefaultFrequency = 0.2

	// DefaultSaturation paints fully saturated hues.
	DefaultSaturation = 1.0

	// WheelLightness is the HSL lightness of every wheel fragment.
	WheelLightness = 0.5
)

// ColorWheel covers the whole canvas with an animated hue wheel. The hue of
// a fragment is its polar angle around the canvas center, advanced by
// 360 * Frequency degrees per second.
type ColorWheel struct {
	// Frequency is the number of turns per second.
	Frequency float64

	// Saturation is the HSL saturation in [0, 1].
	Saturation float64
}

// WheelOption configures a ColorWheel during creation.
//
// Example:
//
//	wheel := render.NewColorWheel(render.WithFrequency(0.5))
type WheelOption func(*ColorWheel)

// WithFrequency sets the number of turns per second.
func WithFrequency(f float64) WheelOption {
	return func(w *ColorWheel) {
		w.Frequency = f
	}
}

// WithSaturation sets the HSL saturation of the wheel.
func WithSaturation(s float64) WheelOption {
	return func(w *ColorWheel) {
		w.Saturation = s
	}
}

// NewColorWheel creates a color wheel with DefaultFrequency and
// DefaultSaturation, then applies opts.
func NewColorWheel(opts ...WheelOption) *ColorWheel {
	w := &ColorWheel{
		Frequency:  DefaultFrequency,
		Saturation: DefaultSaturation,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// fullscreen is two triangles covering clip space.
var fullscreen = []Vertex{
	{X: -1, Y: -1, Color: colorlab.White.RGBA()},
	{X: 1, Y: -1, Color: colorlab.White.RGBA()},
	{X: 1, Y: 1, Color: colorlab.White.RGBA()},
	{X: -1, Y: -1, Color: colorlab.White.RGBA()},
	{X: 1, Y: 1, Color: colorlab.White.RGBA()},
	{X: -1, Y: 1, Color: colorlab.White.RGBA()},
}

// Vertices implements Object.
func (w *ColorWheel) Vertices() []Vertex {
	return fullscreen
}

// Hue returns the hue in [0, 360) at clip-space point (x, y) and time seconds.
func (w *ColorWheel) Hue(x, y, time float64) float64 {
	turned := math.Atan2(y, x)*180/math.Pi + 360*w.Frequency*time
	return turned - 360*math.Floor(turned/360)
}

// ColorAt returns the wheel color at clip-space point (x, y), stored as HSL.
func (w *ColorWheel) ColorAt(x, y, time float64) colorlab.Color {
	return colorlab.FromHSL(w.Hue(x, y, time), w.Saturation, WheelLightness, 1)
}

// Shade implements Object.
func (w *ColorWheel) Shade(f Fragment, time float64) colorlab.RGBA {
	return w.ColorAt(f.X, f.Y, time).RGBA()
}

// Program implements Object.
func (w *ColorWheel) Program() *shader.Program {
	return shader.ColorWheel
}

// Uniforms implements Object.
func (w *ColorWheel) Uniforms(time float64) shader.Uniforms {
	return shader.Uniforms{
		Time:       float32(time),
		Frequency:  float32(w.Frequency),
		Saturation: float32(w.Saturation),
	}
}
