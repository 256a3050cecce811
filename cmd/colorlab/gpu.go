//go:build !nogpu

package main

import (
	"log/slog"

	"github.com/gogpu/colorlab"
	"github.com/gogpu/colorlab/gpu"
	"github.com/gogpu/colorlab/render"
)

// openGPURenderer opens the default GPU and returns a renderer for it
// together with a function releasing both.
func openGPURenderer() (render.Renderer, func(), error) {
	dev, err := gpu.OpenDevice()
	if err != nil {
		return nil, nil, err
	}
	r, err := dev.NewRenderer()
	if err != nil {
		dev.Close()
		return nil, nil, err
	}
	colorlab.Logger().Info("using gpu", slog.String("adapter", dev.Name()))
	return r, func() {
		r.Destroy()
		dev.Close()
	}, nil
}
