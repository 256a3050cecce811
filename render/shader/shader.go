// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package shader holds the WGSL programs used by the scene objects and
// compiles them to SPIR-V with naga.
//
// Every program shares the same interface so one pipeline layout serves
// them all:
//
//	@group(0) @binding(0) var<uniform> u: Uniforms  // time, frequency, saturation
//	@location(0) position: vec2<f32>                // clip space
//	@location(1) color: vec4<f32>                   // straight RGBA
//
// Entry points are vs_main and fs_main. Fragment outputs are premultiplied.
package shader

import (
	_ "embed"
	"encoding/binary"
	"errors"
	"math"
	"sync"

	"github.com/gogpu/naga"
)

//go:embed triangle.wgsl
var triangleSource string

//go:embed colorwheel.wgsl
var colorWheelSource string

// Entry point names shared by all programs.
const (
	VertexEntryPoint   = "vs_main"
	FragmentEntryPoint = "fs_main"
)

// ErrEmptySource is returned when compiling a program without WGSL source.
var ErrEmptySource = errors.New("shader: empty source")

// Program is a named WGSL shader program.
type Program struct {
	// Name is used as the debug label of GPU objects built from the program.
	Name string

	// Source is the WGSL source text.
	Source string

	once  sync.Once
	spirv []uint32
	err   error
}

// Built-in programs.
var (
	// Triangle interpolates per-vertex colors.
	Triangle = &Program{Name: "triangle", Source: triangleSource}

	// ColorWheel paints an animated hue wheel over the whole canvas.
	ColorWheel = &Program{Name: "colorwheel", Source: colorWheelSource}
)

// Programs lists the built-in programs.
func Programs() []*Program {
	return []*Program{Triangle, ColorWheel}
}

// Compile compiles the program to SPIR-V words. The result is computed once
// and cached; later calls return the same slice and error.
func (p *Program) Compile() ([]uint32, error) {
	p.once.Do(func() {
		p.spirv, p.err = CompileSPIRV(p.Name, p.Source)
	})
	return p.spirv, p.err
}

// CompileSPIRV compiles WGSL source to a SPIR-V uint32 slice.
func CompileSPIRV(name, wgslSource string) ([]uint32, error) {
	if wgslSource == "" {
		return nil, &CompileError{Program: name, Err: ErrEmptySource}
	}

	spirvBytes, err := naga.Compile(wgslSource)
	if err != nil {
		return nil, &CompileError{Program: name, Err: err}
	}

	// SPIR-V is little-endian 32-bit words
	spirvCode := make([]uint32, len(spirvBytes)/4)
	for i := range spirvCode {
		spirvCode[i] = binary.LittleEndian.Uint32(spirvBytes[i*4:])
	}

	return spirvCode, nil
}

// CompileError reports a program that failed to compile.
type CompileError struct {
	Program string
	Err     error
}

func (e *CompileError) Error() string {
	return "shader: compile " + e.Program + ": " + e.Err.Error()
}

func (e *CompileError) Unwrap() error {
	return e.Err
}

// UniformSize is the byte size of the Uniforms block:
// time, frequency, saturation and one float of padding.
const UniformSize = 16

// Uniforms mirrors the WGSL Uniforms struct.
type Uniforms struct {
	// Time is the animation time in seconds.
	Time float32
	// Frequency is the number of color wheel turns per second.
	Frequency float32
	// Saturation is the HSL saturation of the color wheel.
	Saturation float32
}

// Bytes encodes u in the std140-compatible layout expected by the shaders.
func (u Uniforms) Bytes() []byte {
	buf := make([]byte, UniformSize)
	binary.LittleEndian.PutUint32(buf[0:], math.Float32bits(u.Time))
	binary.LittleEndian.PutUint32(buf[4:], math.Float32bits(u.Frequency))
	binary.LittleEndian.PutUint32(buf[8:], math.Float32bits(u.Saturation))
	return buf
}
