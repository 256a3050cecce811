package colorlab

import (
	"image/color"
	"testing"
)

// Verify at compile time that RGBA implements color.Color.
var _ color.Color = RGBA{}

func TestRGBA_ColorInterface(t *testing.T) {
	tests := []struct {
		name                       string
		c                          RGBA
		wantR, wantG, wantB, wantA uint32
	}{
		{"opaque black", Black.RGBA(), 0, 0, 0, 0xffff},
		{"opaque white", White.RGBA(), 0xffff, 0xffff, 0xffff, 0xffff},
		{"opaque red", Red.RGBA(), 0xffff, 0, 0, 0xffff},
		{"transparent", Transparent.RGBA(), 0, 0, 0, 0},
		{"50% alpha red", RGBA{1, 0, 0, 0.5}, 0x8000, 0, 0, 0x8000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, g, b, a := tt.c.RGBA()
			if diff(r, tt.wantR) > 1 || diff(g, tt.wantG) > 1 || diff(b, tt.wantB) > 1 || diff(a, tt.wantA) > 1 {
				t.Errorf("RGBA() = (%d, %d, %d, %d), want (%d, %d, %d, %d)",
					r, g, b, a, tt.wantR, tt.wantG, tt.wantB, tt.wantA)
			}
		})
	}
}

func TestRGBA_NRGBA(t *testing.T) {
	got := RGBA{1, 0.5, 0, 128.0 / 255}.NRGBA()
	want := color.NRGBA{R: 255, G: 128, B: 0, A: 128}
	if got != want {
		t.Errorf("NRGBA() = %v, want %v", got, want)
	}
}

func TestRGBA_Float32s(t *testing.T) {
	got := FromCMYK(0, 0, 0, 0, 0.5).RGBA().Float32s()
	want := [4]float32{1, 1, 1, 0.5}
	if got != want {
		t.Errorf("Float32s() = %v, want %v", got, want)
	}
}

func TestRGBA_Lerp(t *testing.T) {
	got := Black.RGBA().Lerp(White.RGBA(), 0.25)
	want := RGBA{0.25, 0.25, 0.25, 1}
	if got != want {
		t.Errorf("Lerp() = %v, want %v", got, want)
	}
}

func TestFromImageColor(t *testing.T) {
	c := FromImageColor(color.NRGBA{R: 255, G: 0, B: 255, A: 255})
	if c.Format() != FormatRGB {
		t.Errorf("Format() = %v, want rgb", c.Format())
	}
	if got := c.Hex(); got != "#ff00ffff" {
		t.Errorf("Hex() = %q, want #ff00ffff", got)
	}

	back := FromImageColor(RGBA{0, 0, 1, 0.5})
	if got := back.Hex(); got != "#0000ff80" {
		t.Errorf("round trip through color.Color = %q, want #0000ff80", got)
	}
}

func diff(a, b uint32) uint32 {
	if a > b {
		return a - b
	}
	return b - a
}
