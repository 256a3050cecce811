// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"image"
	"image/color"
	"image/draw"
	"testing"
)

func TestSupersampleSize(t *testing.T) {
	tests := []struct {
		w, h, factor int
		wantW, wantH int
	}{
		{200, 100, 2, 100, 50},
		{90, 90, 3, 30, 30},
		{10, 10, 1, 10, 10},
		{10, 10, 0, 10, 10},
		{3, 3, 4, 1, 1},
	}
	for _, tt := range tests {
		src := image.NewRGBA(image.Rect(0, 0, tt.w, tt.h))
		got := Supersample(src, tt.factor).Bounds()
		if got.Dx() != tt.wantW || got.Dy() != tt.wantH {
			t.Errorf("Supersample(%dx%d, %d) = %dx%d, want %dx%d",
				tt.w, tt.h, tt.factor, got.Dx(), got.Dy(), tt.wantW, tt.wantH)
		}
	}
}

func TestSupersampleUniform(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 64, 64))
	fill := color.RGBA{R: 40, G: 80, B: 160, A: 255}
	draw.Draw(src, src.Bounds(), image.NewUniform(fill), image.Point{}, draw.Src)

	dst := Supersample(src, 4)
	got := dst.RGBAAt(8, 8)
	for i, pair := range [][2]uint8{{got.R, fill.R}, {got.G, fill.G}, {got.B, fill.B}, {got.A, fill.A}} {
		if d := int(pair[0]) - int(pair[1]); d < -1 || d > 1 {
			t.Errorf("channel %d = %d, want %d", i, pair[0], pair[1])
		}
	}
}

func TestSupersampleFactorOneCopies(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	src.SetRGBA(1, 1, color.RGBA{R: 255, A: 255})

	dst := Supersample(src, 1)
	if dst == src {
		t.Fatal("factor 1 should copy")
	}
	if dst.RGBAAt(1, 1) != src.RGBAAt(1, 1) {
		t.Error("copy differs from source")
	}
}
