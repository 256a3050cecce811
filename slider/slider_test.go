package slider

import (
	"errors"
	"testing"

	"github.com/gogpu/colorlab"
	"github.com/google/go-cmp/cmp"
)

func TestScaleNormalize(t *testing.T) {
	tests := []struct {
		name  string
		scale Scale
		in    int
		want  float64
	}{
		{"byte max", Byte, 255, 1},
		{"byte zero", Byte, 0, 0},
		{"percent half", Percent, 50, 0.5},
		{"degrees", Degrees, 180, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.scale.Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%d) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestScaleDenormalizeClamps(t *testing.T) {
	if got := Byte.Denormalize(1.2); got != 255 {
		t.Errorf("Denormalize(1.2) = %d, want 255", got)
	}
	if got := Percent.Denormalize(-0.3); got != 0 {
		t.Errorf("Denormalize(-0.3) = %d, want 0", got)
	}
	if got := Byte.Denormalize(128.0 / 255); got != 128 {
		t.Errorf("Denormalize(128/255) = %d, want 128", got)
	}
}

func TestBuilders(t *testing.T) {
	tests := []struct {
		name       string
		c          colorlab.Color
		wantFormat colorlab.Format
		wantHex    string
	}{
		{"rgb", RGB(255, 0, 0, 255), colorlab.FormatRGB, "#ff0000ff"},
		{"cmyk", CMYK(0, 100, 100, 0, 255), colorlab.FormatCMYK, "#ff0000ff"},
		{"hsl", HSL(120, 100, 50, 128), colorlab.FormatHSL, "#00ff0080"},
		{"hsl hue 360 wraps", HSL(360, 100, 50, 255), colorlab.FormatHSL, "#ff0000ff"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.c.Format() != tt.wantFormat {
				t.Errorf("Format() = %v, want %v", tt.c.Format(), tt.wantFormat)
			}
			if got := tt.c.Hex(); got != tt.wantHex {
				t.Errorf("Hex() = %q, want %q", got, tt.wantHex)
			}
		})
	}
}

func TestPositions(t *testing.T) {
	red := colorlab.FromRGB(1, 0, 0, 0.5)

	tests := []struct {
		format colorlab.Format
		want   Values
	}{
		{colorlab.FormatRGB, Values{Format: colorlab.FormatRGB, Channels: [4]int{255, 0, 0, 0}, Alpha: 128}},
		{colorlab.FormatCMYK, Values{Format: colorlab.FormatCMYK, Channels: [4]int{0, 100, 100, 0}, Alpha: 128}},
		{colorlab.FormatHSL, Values{Format: colorlab.FormatHSL, Channels: [4]int{0, 100, 50, 0}, Alpha: 128}},
	}

	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			got := Positions(red, tt.format)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Positions mismatch (-want +got):\n%s", diff)
			}
			if back := Build(got); back.Hex() != "#ff000080" {
				t.Errorf("Build(Positions) = %s, want #ff000080", back.Hex())
			}
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name   string
		format colorlab.Format
		in     string
		want   Values
	}{
		{"rgb default alpha", colorlab.FormatRGB, "255,128,0", Values{Format: colorlab.FormatRGB, Channels: [4]int{255, 128, 0}, Alpha: 255}},
		{"rgb with alpha", colorlab.FormatRGB, "1, 2, 3, 4", Values{Format: colorlab.FormatRGB, Channels: [4]int{1, 2, 3}, Alpha: 4}},
		{"cmyk", colorlab.FormatCMYK, "0,100,100,0", Values{Format: colorlab.FormatCMYK, Channels: [4]int{0, 100, 100, 0}, Alpha: 255}},
		{"hsl", colorlab.FormatHSL, "360,50,50,0", Values{Format: colorlab.FormatHSL, Channels: [4]int{360, 50, 50}, Alpha: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.format, tt.in)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.in, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Parse mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		format colorlab.Format
		in     string
	}{
		{"too few", colorlab.FormatRGB, "1,2"},
		{"too many", colorlab.FormatRGB, "1,2,3,4,5"},
		{"not a number", colorlab.FormatRGB, "1,x,3"},
		{"rgb out of range", colorlab.FormatRGB, "256,0,0"},
		{"percent out of range", colorlab.FormatCMYK, "0,0,101,0"},
		{"hue out of range", colorlab.FormatHSL, "361,0,0"},
		{"negative alpha", colorlab.FormatHSL, "0,0,0,-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.format, tt.in)
			var re *RangeError
			if !errors.As(err, &re) {
				t.Fatalf("Parse(%q) error = %v, want *RangeError", tt.in, err)
			}
		})
	}
}

func TestValuesString(t *testing.T) {
	v := Values{Format: colorlab.FormatCMYK, Channels: [4]int{1, 2, 3, 4}, Alpha: 255}
	if got, want := v.String(), "cmyk(1, 2, 3, 4) alpha 255"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
