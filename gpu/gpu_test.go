//go:build !nogpu

package gpu

import (
	"encoding/binary"
	"errors"
	"image"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"

	"github.com/gogpu/colorlab"
	"github.com/gogpu/colorlab/render"
	"github.com/gogpu/colorlab/render/shader"
)

// createNoopDevice creates a noop device and queue for testing.
// Returns the device, queue, and a cleanup function.
func createNoopDevice(t *testing.T) (hal.Device, hal.Queue, func()) {
	t.Helper()
	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		t.Fatalf("Open failed: %v", err)
	}
	cleanup := func() {
		openDev.Device.Destroy()
		instance.Destroy()
	}
	return openDev.Device, openDev.Queue, cleanup
}

func newTestRenderer(t *testing.T, opts ...Option) *Renderer {
	t.Helper()
	device, queue, cleanup := createNoopDevice(t)
	r, err := NewRenderer(device, queue, opts...)
	if err != nil {
		cleanup()
		t.Fatalf("NewRenderer failed: %v", err)
	}
	t.Cleanup(func() {
		r.Destroy()
		cleanup()
	})
	return r
}

func TestNewPipeline(t *testing.T) {
	device, _, cleanup := createNoopDevice(t)
	defer cleanup()

	for _, program := range shader.Programs() {
		t.Run(program.Name, func(t *testing.T) {
			p, err := NewPipeline(device, program, DefaultFormat)
			if err != nil {
				t.Fatalf("NewPipeline failed: %v", err)
			}
			if p.shader == nil || p.uniformLayout == nil || p.pipeLayout == nil || p.pipeline == nil {
				t.Error("expected all pipeline objects to be created")
			}
			if p.Program() != program {
				t.Error("Program() should return the source program")
			}
			if p.Format() != DefaultFormat {
				t.Errorf("Format() = %v, want %v", p.Format(), DefaultFormat)
			}

			p.Destroy()
			if p.pipeline != nil || p.shader != nil {
				t.Error("Destroy should release pipeline objects")
			}
			p.Destroy() // second call must not panic
		})
	}
}

func TestNewPipelineErrors(t *testing.T) {
	if _, err := NewPipeline(nil, shader.Triangle, DefaultFormat); !errors.Is(err, ErrNoDevice) {
		t.Errorf("nil device error = %v, want ErrNoDevice", err)
	}

	device, _, cleanup := createNoopDevice(t)
	defer cleanup()
	if _, err := NewPipeline(device, &shader.Program{Name: "empty"}, DefaultFormat); err == nil {
		t.Error("empty program should fail")
	}
}

func TestVertexLayout(t *testing.T) {
	layout := VertexLayout()
	if len(layout) != 1 {
		t.Fatalf("len(layout) = %d, want 1", len(layout))
	}
	if layout[0].ArrayStride != VertexStride {
		t.Errorf("ArrayStride = %d, want %d", layout[0].ArrayStride, VertexStride)
	}
	attrs := layout[0].Attributes
	if len(attrs) != 2 {
		t.Fatalf("len(Attributes) = %d, want 2", len(attrs))
	}
	if attrs[0].Format != gputypes.VertexFormatFloat32x2 || attrs[0].ShaderLocation != 0 {
		t.Errorf("position attribute = %+v", attrs[0])
	}
	if attrs[1].Format != gputypes.VertexFormatFloat32x4 || attrs[1].Offset != 8 || attrs[1].ShaderLocation != 1 {
		t.Errorf("color attribute = %+v", attrs[1])
	}
}

func TestPackVertices(t *testing.T) {
	verts := render.NewTriangle().Vertices()
	data := PackVertices(verts)

	if len(data) != len(verts)*VertexStride {
		t.Fatalf("len = %d, want %d", len(data), len(verts)*VertexStride)
	}

	decode := func(off int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(data[off:]))
	}
	var got [][6]float32
	for i := range verts {
		base := i * VertexStride
		got = append(got, [6]float32{
			decode(base), decode(base + 4),
			decode(base + 8), decode(base + 12), decode(base + 16), decode(base + 20),
		})
	}
	want := [][6]float32{
		{0.6, -0.5, 1, 0, 0, 1},
		{-0.6, -0.5, 0, 1, 0, 1},
		{0, 0.5, 0, 0, 1, 1},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("packed vertices mismatch (-want +got):\n%s", diff)
	}
}

func TestPackUniforms(t *testing.T) {
	u := shader.Uniforms{Time: 2, Frequency: 0.2, Saturation: 0.75}
	data := PackUniforms(u)
	if len(data) != shader.UniformSize {
		t.Fatalf("len = %d, want %d", len(data), shader.UniformSize)
	}
	if got := math.Float32frombits(binary.LittleEndian.Uint32(data[8:])); got != 0.75 {
		t.Errorf("saturation = %v, want 0.75", got)
	}
}

func TestClearColor(t *testing.T) {
	tests := []struct {
		name string
		c    colorlab.Color
		want gputypes.Color
	}{
		{"opaque red", colorlab.Red, gputypes.Color{R: 1, A: 1}},
		{"transparent", colorlab.Transparent, gputypes.Color{}},
		{"half blue", colorlab.FromRGB(0, 0, 1, 0.5), gputypes.Color{B: 0.5, A: 0.5}},
		{"hsl gray", colorlab.FromHSL(200, 0, 0.25, 1), gputypes.Color{R: 0.25, G: 0.25, B: 0.25, A: 1}},
		{"cmyk clamps", colorlab.FromCMYK(-0.5, 0, 0, 0, 2), gputypes.Color{R: 1, G: 1, B: 1, A: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, ClearColor(tt.c), cmpopts.EquateApprox(0, 1e-12)); diff != "" {
				t.Errorf("ClearColor mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNewRendererNilDevice(t *testing.T) {
	if _, err := NewRenderer(nil, nil); !errors.Is(err, ErrNoDevice) {
		t.Errorf("error = %v, want ErrNoDevice", err)
	}
}

func TestRendererFormat(t *testing.T) {
	r := newTestRenderer(t)
	if r.Format() != DefaultFormat {
		t.Errorf("default Format() = %v, want %v", r.Format(), DefaultFormat)
	}

	rgba := newTestRenderer(t, WithFormat(gputypes.TextureFormatRGBA8Unorm), WithFormat(gputypes.TextureFormatUndefined))
	if rgba.Format() != gputypes.TextureFormatRGBA8Unorm {
		t.Errorf("Format() = %v, want RGBA8Unorm", rgba.Format())
	}
}

func TestRendererPipelineCache(t *testing.T) {
	r := newTestRenderer(t)

	a, err := r.Pipeline(shader.ColorWheel)
	if err != nil {
		t.Fatalf("Pipeline failed: %v", err)
	}
	b, err := r.Pipeline(shader.ColorWheel)
	if err != nil {
		t.Fatalf("Pipeline failed: %v", err)
	}
	if a != b {
		t.Error("pipelines should be cached per program")
	}

	r.Destroy()
	if len(r.pipelines) != 0 {
		t.Errorf("Destroy left %d pipelines", len(r.pipelines))
	}
}

func TestRendererPrepare(t *testing.T) {
	r := newTestRenderer(t)

	tests := []struct {
		name string
		obj  render.Object
		want uint32
	}{
		{"triangle", render.NewTriangle(), 3},
		{"wheel", render.NewColorWheel(), 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := r.Prepare(tt.obj, 1.25)
			if err != nil {
				t.Fatalf("Prepare failed: %v", err)
			}
			defer r.Release(res)

			if res.VertexCount() != tt.want {
				t.Errorf("VertexCount() = %d, want %d", res.VertexCount(), tt.want)
			}
			if res.vertBuf == nil || res.uniformBuf == nil || res.bindGroup == nil {
				t.Error("expected buffers and bind group")
			}
			if res.pipeline.Program() != tt.obj.Program() {
				t.Error("resources should use the object's program")
			}
		})
	}
}

// emptyObject has no geometry.
type emptyObject struct{ *render.Triangle }

func (emptyObject) Vertices() []render.Vertex { return nil }

func TestRendererPrepareEmpty(t *testing.T) {
	r := newTestRenderer(t)
	res, err := r.Prepare(emptyObject{render.NewTriangle()}, 0)
	if err != nil || res != nil {
		t.Errorf("Prepare(empty) = %v, %v; want nil, nil", res, err)
	}
	r.Release(nil)
}

func TestRendererRenderPixmap(t *testing.T) {
	r := newTestRenderer(t, WithFormat(gputypes.TextureFormatRGBA8Unorm))
	target := render.NewPixmapTarget(64, 48)

	scenes := map[string]*render.Scene{
		"triangle": render.NewTriangleScene(),
		"wheel":    render.NewWheelScene(),
		"empty":    render.NewScene(),
	}
	for name, scene := range scenes {
		t.Run(name, func(t *testing.T) {
			if err := r.Render(target, scene, 0.5); err != nil {
				t.Fatalf("Render failed: %v", err)
			}
		})
	}

	if r.offscreen.width != 64 || r.offscreen.height != 48 {
		t.Errorf("offscreen size = %dx%d, want 64x48", r.offscreen.width, r.offscreen.height)
	}
	if _, ok := r.pipelines[shader.Triangle]; !ok {
		t.Error("triangle pipeline should be cached after render")
	}
}

func TestRendererReadback(t *testing.T) {
	r := newTestRenderer(t, WithFormat(gputypes.TextureFormatRGBA8Unorm))

	fill := func(target *render.PixmapTarget) {
		for i := range target.Pixels() {
			target.Pixels()[i] = 0x7f
		}
	}

	// The null backend never rasterizes, so the mapped staging buffer reads
	// back as transparent black.
	target := render.NewPixmapTarget(5, 3)
	fill(target)
	scene := render.NewScene()
	scene.SetBackground(colorlab.FromRGB(0, 0, 0, 1))
	if err := r.Render(target, scene, 0); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	for i, b := range target.Pixels() {
		if b != 0 {
			t.Fatalf("pixel byte %d = %#x, want 0 after readback", i, b)
		}
	}

	// Without a background the readback is composited over the target.
	fill(target)
	if err := r.Render(target, render.NewScene(), 0); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	for i, b := range target.Pixels() {
		if b != 0x7f {
			t.Fatalf("pixel byte %d = %#x, want 0x7f kept", i, b)
		}
	}
}

func TestRendererRenderSurface(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	r, err := NewRenderer(device, queue)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Destroy()

	tex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         "test_surface",
		Size:          hal.Extent3D{Width: 32, Height: 32, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        DefaultFormat,
		Usage:         gputypes.TextureUsageRenderAttachment,
	})
	if err != nil {
		t.Fatalf("CreateTexture failed: %v", err)
	}
	defer device.DestroyTexture(tex)
	view, err := device.CreateTextureView(tex, &hal.TextureViewDescriptor{Label: "test_surface_view"})
	if err != nil {
		t.Fatalf("CreateTextureView failed: %v", err)
	}
	defer device.DestroyTextureView(view)

	target := render.NewSurfaceTarget(32, 32, DefaultFormat, view)
	scene := render.NewWheelScene()
	scene.SetBackground(colorlab.Black)
	if err := r.Render(target, scene, 3); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if r.offscreen.tex != nil {
		t.Error("surface rendering should not allocate an offscreen texture")
	}
}

type foreignView struct{}

func (foreignView) Destroy() {}

func TestRendererRenderErrors(t *testing.T) {
	r := newTestRenderer(t)

	if err := r.Render(nil, render.NewScene(), 0); !errors.Is(err, render.ErrNilTarget) {
		t.Errorf("nil target error = %v", err)
	}
	if err := r.Render(render.NewPixmapTarget(4, 4), nil, 0); err != nil {
		t.Errorf("nil scene error = %v, want nil", err)
	}

	surface := render.NewSurfaceTarget(4, 4, DefaultFormat, foreignView{})
	if err := r.Render(surface, render.NewTriangleScene(), 0); !errors.Is(err, ErrUnsupportedTarget) {
		t.Errorf("foreign view error = %v, want ErrUnsupportedTarget", err)
	}
}

func TestCopyRows(t *testing.T) {
	// Two 1-pixel rows padded to 8 bytes, BGRA order.
	raw := []byte{
		10, 20, 30, 255, 0, 0, 0, 0,
		40, 50, 60, 128, 0, 0, 0, 0,
	}
	dst := image.NewRGBA(image.Rect(0, 0, 1, 2))
	copyRows(dst, raw, 8, true)

	want := []byte{30, 20, 10, 255, 60, 50, 40, 128}
	if diff := cmp.Diff(want, dst.Pix); diff != "" {
		t.Errorf("copyRows BGRA mismatch (-want +got):\n%s", diff)
	}

	copyRows(dst, raw, 8, false)
	if dst.Pix[0] != 10 || dst.Pix[4] != 40 {
		t.Errorf("copyRows RGBA = %v", dst.Pix)
	}
}

func TestRendererCapabilities(t *testing.T) {
	caps := newTestRenderer(t).Capabilities()
	if !caps.IsGPU || !caps.SupportsSurfaces {
		t.Errorf("Capabilities() = %+v", caps)
	}
}

func TestNewRendererFromProvider(t *testing.T) {
	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}
	dev, err := openFrom(instance)
	if err != nil {
		t.Fatalf("openFrom failed: %v", err)
	}
	defer dev.Close()

	r, err := NewRendererFromProvider(dev)
	if err != nil {
		t.Fatalf("NewRendererFromProvider failed: %v", err)
	}
	defer r.Destroy()
	if err := r.Render(render.NewPixmapTarget(8, 8), render.NewTriangleScene(), 0); err != nil {
		t.Errorf("Render failed: %v", err)
	}

	if _, err := NewRendererFromProvider(struct{}{}); err == nil {
		t.Error("provider without HAL accessors should fail")
	}
}
