// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"github.com/gogpu/colorlab"
	"github.com/gogpu/colorlab/render/shader"
)

// Triangle is a single triangle whose vertex colors are interpolated across
// its surface.
type Triangle struct {
	Points [3]Vertex
}

// NewTriangle returns the default triangle: red at the right, green at the
// left and blue at the top.
func NewTriangle() *Triangle {
	return &Triangle{Points: [3]Vertex{
		{X: 0.6, Y: -0.5, Color: colorlab.Red.RGBA()},
		{X: -0.6, Y: -0.5, Color: colorlab.Green.RGBA()},
		{X: 0, Y: 0.5, Color: colorlab.Blue.RGBA()},
	}}
}

// NewTriangleColors returns the default triangle geometry with the given
// vertex colors, which may be stored in any format.
func NewTriangleColors(a, b, c colorlab.Color) *Triangle {
	t := NewTriangle()
	t.Points[0].Color = a.RGBA()
	t.Points[1].Color = b.RGBA()
	t.Points[2].Color = c.RGBA()
	return t
}

// Vertices implements Object.
func (t *Triangle) Vertices() []Vertex {
	return t.Points[:]
}

// Shade implements Object.
func (t *Triangle) Shade(f Fragment, _ float64) colorlab.RGBA {
	return f.Interpolate()
}

// Program implements Object.
func (t *Triangle) Program() *shader.Program {
	return shader.Triangle
}

// Uniforms implements Object. The triangle is static.
func (t *Triangle) Uniforms(time float64) shader.Uniforms {
	return shader.Uniforms{Time: float32(time)}
}
