//go:build !nogpu

package gpu

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"time"
	"unsafe"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/colorlab"
	"github.com/gogpu/colorlab/render"
	"github.com/gogpu/colorlab/render/shader"
)

// DefaultFormat is the color target format used when none is configured.
const DefaultFormat = gputypes.TextureFormatBGRA8Unorm

// gpuWaitTimeout bounds how long a frame waits for the GPU.
const gpuWaitTimeout = 5 * time.Second

// Errors returned by the GPU renderer.
var (
	ErrNoDevice          = errors.New("gpu: nil device or queue")
	ErrUnsupportedTarget = errors.New("gpu: target has neither a hal texture view nor pixels")
)

// ObjectResources holds the per-frame GPU resources of one object.
type ObjectResources struct {
	pipeline   *Pipeline
	vertBuf    hal.Buffer
	uniformBuf hal.Buffer
	bindGroup  hal.BindGroup
	vertCount  uint32
}

// VertexCount returns the number of vertices drawn for the object.
func (r *ObjectResources) VertexCount() uint32 {
	return r.vertCount
}

func (r *ObjectResources) destroy(device hal.Device) {
	if r.bindGroup != nil {
		device.DestroyBindGroup(r.bindGroup)
		r.bindGroup = nil
	}
	if r.uniformBuf != nil {
		device.DestroyBuffer(r.uniformBuf)
		r.uniformBuf = nil
	}
	if r.vertBuf != nil {
		device.DestroyBuffer(r.vertBuf)
		r.vertBuf = nil
	}
}

// Renderer draws render.Scenes on a hal device.
//
// Pipelines are created lazily, one per shader program, and cached until
// Destroy. Per-object buffers live for a single frame.
//
// Renderer implements render.Renderer and is not safe for concurrent use.
type Renderer struct {
	device hal.Device
	queue  hal.Queue
	format gputypes.TextureFormat

	pipelines map[*shader.Program]*Pipeline
	offscreen offscreenTexture
}

// Option configures a Renderer during creation.
type Option func(*Renderer)

// WithFormat sets the color target format of surfaces and offscreen textures.
func WithFormat(f gputypes.TextureFormat) Option {
	return func(r *Renderer) {
		if f != gputypes.TextureFormatUndefined {
			r.format = f
		}
	}
}

// NewRenderer creates a renderer on a device owned by the caller.
// Pipelines are not created until the first frame.
func NewRenderer(device hal.Device, queue hal.Queue, opts ...Option) (*Renderer, error) {
	if device == nil || queue == nil {
		return nil, ErrNoDevice
	}
	r := &Renderer{
		device:    device,
		queue:     queue,
		format:    DefaultFormat,
		pipelines: make(map[*shader.Program]*Pipeline),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// NewRendererFromProvider creates a renderer on a host device. The provider
// must expose HalDevice() and HalQueue() returning hal.Device and hal.Queue.
// When the provider is also a render.DeviceHandle its surface format is used.
func NewRendererFromProvider(provider any, opts ...Option) (*Renderer, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, fmt.Errorf("gpu: provider does not expose HAL types")
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("gpu: provider HalDevice is not hal.Device")
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("gpu: provider HalQueue is not hal.Queue")
	}
	if h, ok := provider.(render.DeviceHandle); ok {
		opts = append([]Option{WithFormat(h.SurfaceFormat())}, opts...)
	}
	return NewRenderer(device, queue, opts...)
}

// Format returns the color target format.
func (r *Renderer) Format() gputypes.TextureFormat {
	return r.format
}

// Pipeline returns the cached pipeline for program, creating it if needed.
func (r *Renderer) Pipeline(program *shader.Program) (*Pipeline, error) {
	if p, ok := r.pipelines[program]; ok {
		return p, nil
	}
	p, err := NewPipeline(r.device, program, r.format)
	if err != nil {
		return nil, err
	}
	r.pipelines[program] = p
	colorlab.Logger().Info("gpu: pipeline created", "program", program.Name, "format", r.format)
	return p, nil
}

// Prepare uploads the vertices and uniforms of obj at time seconds and
// creates its bind group. The result must be passed to Release after the
// frame is submitted. Objects without vertices return nil.
func (r *Renderer) Prepare(obj render.Object, time float64) (*ObjectResources, error) {
	verts := obj.Vertices()
	if len(verts) == 0 {
		return nil, nil //nolint:nilnil // empty object is a valid no-op, not an error
	}

	p, err := r.Pipeline(obj.Program())
	if err != nil {
		return nil, err
	}

	res := &ObjectResources{pipeline: p, vertCount: uint32(len(verts))} //nolint:gosec // vertex count fits uint32

	res.vertBuf, err = r.createAndUploadBuffer(p.program.Name+"_verts", PackVertices(verts),
		gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
	if err != nil {
		return nil, err
	}

	res.uniformBuf, err = r.createAndUploadBuffer(p.program.Name+"_uniform", PackUniforms(obj.Uniforms(time)),
		gputypes.BufferUsageUniform|gputypes.BufferUsageCopyDst)
	if err != nil {
		res.destroy(r.device)
		return nil, err
	}

	res.bindGroup, err = r.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  p.program.Name + "_bind",
		Layout: p.uniformLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: res.uniformBuf.NativeHandle(), Offset: 0, Size: shader.UniformSize,
			}},
		},
	})
	if err != nil {
		res.destroy(r.device)
		return nil, fmt.Errorf("create %s bind group: %w", p.program.Name, err)
	}

	return res, nil
}

// Record records the draw of one prepared object into an open render pass.
// This is a no-op if res is nil.
func (r *Renderer) Record(rp hal.RenderPassEncoder, res *ObjectResources) {
	if res == nil || res.vertCount == 0 {
		return
	}
	rp.SetPipeline(res.pipeline.pipeline)
	rp.SetBindGroup(0, res.bindGroup, nil)
	rp.SetVertexBuffer(0, res.vertBuf, 0)
	rp.Draw(res.vertCount, 1, 0, 0)
}

// Release destroys per-frame resources returned by Prepare.
func (r *Renderer) Release(res *ObjectResources) {
	if res != nil {
		res.destroy(r.device)
	}
}

// Render draws the scene to the target at time seconds.
//
// Targets whose TextureView is a hal.TextureView are drawn directly. Targets
// with RGBA8 pixels are drawn into an offscreen texture and read back; without
// a scene background the result is composited over the existing pixels.
func (r *Renderer) Render(target render.RenderTarget, scene *render.Scene, time float64) error {
	if target == nil {
		return render.ErrNilTarget
	}
	if scene == nil {
		return nil
	}
	w, h := target.Width(), target.Height()
	if w <= 0 || h <= 0 {
		return nil
	}

	if view, ok := target.TextureView().(hal.TextureView); ok && view != nil {
		return r.encodeSubmit(view, scene, time, nil)
	}

	if target.Pixels() == nil {
		return ErrUnsupportedTarget
	}
	if f := target.Format(); f != gputypes.TextureFormatRGBA8Unorm {
		return fmt.Errorf("gpu: unsupported pixel format %v", f)
	}

	if err := r.offscreen.ensure(r.device, r.format, uint32(w), uint32(h)); err != nil { //nolint:gosec // dimensions checked positive
		return err
	}
	readback := image.NewRGBA(image.Rect(0, 0, w, h))
	if err := r.encodeSubmit(r.offscreen.view, scene, time, readback); err != nil {
		return err
	}

	dst := &image.RGBA{Pix: target.Pixels(), Stride: target.Stride(), Rect: image.Rect(0, 0, w, h)}
	op := draw.Over
	if _, ok := scene.Background(); ok {
		op = draw.Src
	}
	draw.Draw(dst, dst.Bounds(), readback, image.Point{}, op)
	return nil
}

// encodeSubmit records one render pass for scene into view, submits it and
// waits. When readback is non-nil, view must be the offscreen texture and its
// contents are copied into readback.
func (r *Renderer) encodeSubmit(view hal.TextureView, scene *render.Scene, time float64, readback *image.RGBA) error {
	resources := make([]*ObjectResources, 0, scene.Len())
	defer func() {
		for _, res := range resources {
			r.Release(res)
		}
	}()
	for _, obj := range scene.Objects() {
		res, err := r.Prepare(obj, time)
		if err != nil {
			return err
		}
		if res != nil {
			resources = append(resources, res)
		}
	}

	encoder, err := r.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "colorlab_encoder",
	})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("colorlab_frame"); err != nil {
		return fmt.Errorf("begin encoding: %w", err)
	}

	loadOp := gputypes.LoadOpClear
	clearValue := gputypes.Color{R: 0, G: 0, B: 0, A: 0}
	if bg, ok := scene.Background(); ok {
		clearValue = ClearColor(bg)
	} else if readback == nil {
		loadOp = gputypes.LoadOpLoad
	}

	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "colorlab_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     loadOp,
			StoreOp:    gputypes.StoreOpStore,
			ClearValue: clearValue,
		}},
	})
	for _, res := range resources {
		r.Record(rp, res)
	}
	rp.End()

	var staging hal.Buffer
	var bytesPerRow, alignedBytesPerRow uint32
	if readback != nil {
		w, h := r.offscreen.width, r.offscreen.height

		// WebGPU requires BytesPerRow aligned to 256 bytes.
		bytesPerRow = w * 4
		const copyPitchAlignment = 256
		alignedBytesPerRow = (bytesPerRow + copyPitchAlignment - 1) &^ (copyPitchAlignment - 1)

		staging, err = r.device.CreateBuffer(&hal.BufferDescriptor{
			Label: "colorlab_staging",
			Size:  uint64(alignedBytesPerRow) * uint64(h),
			Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
		})
		if err != nil {
			encoder.DiscardEncoding()
			return fmt.Errorf("create staging buffer: %w", err)
		}
		defer r.device.DestroyBuffer(staging)

		encoder.TransitionTextures([]hal.TextureBarrier{{
			Texture: r.offscreen.tex,
			Usage: hal.TextureUsageTransition{
				OldUsage: gputypes.TextureUsageRenderAttachment,
				NewUsage: gputypes.TextureUsageCopySrc,
			},
		}})
		encoder.CopyTextureToBuffer(r.offscreen.tex, staging, []hal.BufferTextureCopy{{
			BufferLayout: hal.ImageDataLayout{Offset: 0, BytesPerRow: alignedBytesPerRow, RowsPerImage: h},
			TextureBase:  hal.ImageCopyTexture{Texture: r.offscreen.tex, MipLevel: 0},
			Size:         hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		}})
		encoder.TransitionTextures([]hal.TextureBarrier{{
			Texture: r.offscreen.tex,
			Usage: hal.TextureUsageTransition{
				OldUsage: gputypes.TextureUsageCopySrc,
				NewUsage: gputypes.TextureUsageRenderAttachment,
			},
		}})
	}

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("end encoding: %w", err)
	}
	defer r.device.FreeCommandBuffer(cmdBuf)

	index, err := r.queue.Submit([]hal.CommandBuffer{cmdBuf})
	if err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	if err := r.wait(index); err != nil {
		return err
	}

	colorlab.Logger().Debug("gpu: frame submitted",
		"objects", len(resources), "time", time, "readback", readback != nil)

	if readback == nil {
		return nil
	}

	size := uint64(alignedBytesPerRow) * uint64(r.offscreen.height)
	mapping, err := r.device.MapBuffer(staging, 0, size)
	if err != nil {
		return fmt.Errorf("readback: %w", err)
	}
	raw := unsafe.Slice((*byte)(mapping.Ptr), size)
	copyRows(readback, raw, int(alignedBytesPerRow), r.format == gputypes.TextureFormatBGRA8Unorm)
	if err := r.device.UnmapBuffer(staging); err != nil {
		return fmt.Errorf("unmap readback: %w", err)
	}
	return nil
}

// wait blocks until the queue reports submission index complete.
func (r *Renderer) wait(index uint64) error {
	deadline := time.Now().Add(gpuWaitTimeout)
	for r.queue.PollCompleted() < index {
		if time.Now().After(deadline) {
			return fmt.Errorf("gpu: submission %d not complete after %v", index, gpuWaitTimeout)
		}
		time.Sleep(time.Millisecond)
	}
	return nil
}

// copyRows strips row padding from raw into dst, swapping red and blue when
// the source is BGRA.
func copyRows(dst *image.RGBA, raw []byte, rawStride int, bgra bool) {
	rowBytes := dst.Rect.Dx() * 4
	for y := range dst.Rect.Dy() {
		src := raw[y*rawStride : y*rawStride+rowBytes]
		out := dst.Pix[y*dst.Stride : y*dst.Stride+rowBytes]
		copy(out, src)
		if bgra {
			for i := 0; i < rowBytes; i += 4 {
				out[i], out[i+2] = out[i+2], out[i]
			}
		}
	}
}

// Flush is a no-op; every Render call waits for the GPU.
func (r *Renderer) Flush() error {
	return nil
}

// Capabilities returns the renderer's capabilities.
func (r *Renderer) Capabilities() render.RendererCapabilities {
	return render.RendererCapabilities{
		IsGPU:                true,
		SupportsAntialiasing: false,
		SupportsSurfaces:     true,
		MaxTextureSize:       8192, // Typical GPU limit
	}
}

// Destroy releases the offscreen texture and every cached pipeline. The
// device itself belongs to the caller.
func (r *Renderer) Destroy() {
	r.offscreen.destroy(r.device)
	for program, p := range r.pipelines {
		p.Destroy()
		delete(r.pipelines, program)
	}
}

// Ensure Renderer implements render.Renderer and render.CapableRenderer.
var (
	_ render.Renderer        = (*Renderer)(nil)
	_ render.CapableRenderer = (*Renderer)(nil)
)

func (r *Renderer) createAndUploadBuffer(label string, data []byte, usage gputypes.BufferUsage) (hal.Buffer, error) {
	buf, err := r.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: usage,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", label, err)
	}
	if err := r.queue.WriteBuffer(buf, 0, data); err != nil {
		r.device.DestroyBuffer(buf)
		return nil, fmt.Errorf("upload %s: %w", label, err)
	}
	return buf, nil
}

// offscreenTexture is the color target used for CPU targets.
type offscreenTexture struct {
	tex    hal.Texture
	view   hal.TextureView
	format gputypes.TextureFormat
	width  uint32
	height uint32
}

// ensure creates or recreates the texture if the requested size or format
// differs from the current one.
func (o *offscreenTexture) ensure(device hal.Device, format gputypes.TextureFormat, w, h uint32) error {
	if o.tex != nil && o.width == w && o.height == h && o.format == format {
		return nil
	}
	o.destroy(device)

	tex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         "colorlab_offscreen",
		Size:          hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        format,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		return fmt.Errorf("create offscreen texture: %w", err)
	}
	o.tex = tex

	view, err := device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label: "colorlab_offscreen_view",
	})
	if err != nil {
		o.destroy(device)
		return fmt.Errorf("create offscreen view: %w", err)
	}
	o.view = view
	o.format, o.width, o.height = format, w, h
	return nil
}

func (o *offscreenTexture) destroy(device hal.Device) {
	if o.view != nil {
		device.DestroyTextureView(o.view)
		o.view = nil
	}
	if o.tex != nil {
		device.DestroyTexture(o.tex)
		o.tex = nil
	}
	o.width, o.height = 0, 0
}
