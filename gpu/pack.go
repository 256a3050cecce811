//go:build !nogpu

package gpu

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/colorlab"
	"github.com/gogpu/colorlab/render"
	"github.com/gogpu/colorlab/render/shader"
)

// PackVertices encodes vertices in the VertexStride layout. Colors are kept
// straight; the fragment shaders premultiply.
func PackVertices(verts []render.Vertex) []byte {
	buf := make([]byte, len(verts)*VertexStride)
	for i, v := range verts {
		writeVertex(buf[i*VertexStride:], v)
	}
	return buf
}

// writeVertex writes a single vertex into the buffer.
func writeVertex(buf []byte, v render.Vertex) {
	c := v.Color.Float32s()
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(float32(v.X)))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(float32(v.Y)))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(c[0]))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(c[1]))
	binary.LittleEndian.PutUint32(buf[16:20], math.Float32bits(c[2]))
	binary.LittleEndian.PutUint32(buf[20:24], math.Float32bits(c[3]))
}

// PackUniforms encodes u as the shaders' Uniforms block.
func PackUniforms(u shader.Uniforms) []byte {
	return u.Bytes()
}

// ClearColor converts c to a render pass clear value. Render targets hold
// premultiplied pixels, so the color channels are multiplied by alpha.
func ClearColor(c colorlab.Color) gputypes.Color {
	rgba := c.RGBA()
	a := min(max(rgba.A, 0), 1)
	return gputypes.Color{
		R: min(max(rgba.R, 0), 1) * a,
		G: min(max(rgba.G, 0), 1) * a,
		B: min(max(rgba.B, 0), 1) * a,
		A: a,
	}
}
