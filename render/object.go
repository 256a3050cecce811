// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"github.com/gogpu/colorlab"
	"github.com/gogpu/colorlab/render/shader"
)

// Vertex is a triangle-list vertex in clip space: x and y in [-1, 1] with
// y pointing up, the layout both the software and GPU paths consume.
type Vertex struct {
	X, Y  float64
	Color colorlab.RGBA
}

// Fragment is one pixel sample inside a triangle.
type Fragment struct {
	// X and Y are the clip-space coordinates of the pixel center.
	X, Y float64

	// Weights are the barycentric weights of Triangle's vertices at X, Y.
	Weights [3]float64

	// Triangle holds the vertices of the triangle being shaded.
	Triangle [3]Vertex
}

// Interpolate returns the vertex colors blended by the fragment weights.
func (f Fragment) Interpolate() colorlab.RGBA {
	var c colorlab.RGBA
	for i, v := range f.Triangle {
		w := f.Weights[i]
		c.R += v.Color.R * w
		c.G += v.Color.G * w
		c.B += v.Color.B * w
		c.A += v.Color.A * w
	}
	return c
}

// Object is a drawable scene element.
//
// Vertices and Shade drive the software renderer; Program and Uniforms drive
// the GPU renderer. Both paths must produce the same image.
type Object interface {
	// Vertices returns the object as a triangle list, three vertices per
	// triangle.
	Vertices() []Vertex

	// Shade returns the straight-alpha color of a fragment at time seconds.
	Shade(f Fragment, time float64) colorlab.RGBA

	// Program returns the WGSL program that renders the object.
	Program() *shader.Program

	// Uniforms returns the shader uniforms at time seconds.
	Uniforms(time float64) shader.Uniforms
}
