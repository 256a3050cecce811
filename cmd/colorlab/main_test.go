package main

import (
	"bytes"
	"encoding/json"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		for _, c := range rootCmd.Commands() {
			c.Flags().VisitAll(func(f *pflag.Flag) {
				_ = f.Value.Set(f.DefValue)
				f.Changed = false
			})
		}
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestConvertText(t *testing.T) {
	out, err := execute(t, "convert", "--cmyk", "0,100,100,0")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"#ff0000ff", "cmyk*", "255,0,0", "0,100,100,0"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestConvertJSONAlpha(t *testing.T) {
	out, err := execute(t, "convert", "--hex", "#00ff00ff", "--alpha", "0", "--json")
	if err != nil {
		t.Fatal(err)
	}
	var got struct {
		Color  string  `json:"color"`
		Format string  `json:"format"`
		Alpha  float64 `json:"alpha"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("invalid JSON %q: %v", out, err)
	}
	if got.Color != "#00ff0000" || got.Format != "rgb" || got.Alpha != 0 {
		t.Errorf("got %+v", got)
	}
}

func TestConvertErrors(t *testing.T) {
	for _, args := range [][]string{
		{"convert"},
		{"convert", "--hex", "#fff"},
		{"convert", "--rgb", "1,2"},
		{"convert", "--hex", "#000000ff", "--alpha", "300"},
	} {
		if _, err := execute(t, args...); err == nil {
			t.Errorf("%v: expected error", args)
		}
	}
}

func TestRenderFrames(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "wheel.png")
	_, err := execute(t, "render", "--width", "16", "--height", "12", "--frames", "2", "--supersample", "2", "-o", out)
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"wheel-0000.png", "wheel-0001.png"} {
		f, err := os.Open(filepath.Join(dir, name))
		if err != nil {
			t.Fatal(err)
		}
		img, err := png.Decode(f)
		f.Close()
		if err != nil {
			t.Fatal(err)
		}
		if b := img.Bounds(); b.Dx() != 16 || b.Dy() != 12 {
			t.Errorf("%s size = %v, want 16x12", name, b.Size())
		}
	}
}

func TestRenderErrors(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "x.png")
	for _, args := range [][]string{
		{"render", "--scene", "cube", "-o", out},
		{"render", "--width", "0", "-o", out},
		{"render", "--background", "blue", "-o", out},
	} {
		if _, err := execute(t, args...); err == nil {
			t.Errorf("%v: expected error", args)
		}
	}
}

func TestFrameName(t *testing.T) {
	tests := []struct {
		output string
		i, n   int
		want   string
	}{
		{"out.png", 0, 1, "out.png"},
		{"out.png", 3, 10, "out-0003.png"},
		{"dir/f%02d.png", 7, 10, "dir/f07.png"},
		{"noext", 1, 2, "noext-0001"},
		{"f%03d.png", 0, 1, "f000.png"},
		{"50%.png", 0, 1, "50%.png"},
		{"50%.png", 2, 3, "50%-0002.png"},
		{"a%sb.png", 1, 2, "a%sb-0001.png"},
		{"100%%-%d.png", 4, 5, "100%-4.png"},
	}
	for _, tt := range tests {
		if got := frameName(tt.output, tt.i, tt.n); got != tt.want {
			t.Errorf("frameName(%q, %d, %d) = %q, want %q", tt.output, tt.i, tt.n, got, tt.want)
		}
	}
}
