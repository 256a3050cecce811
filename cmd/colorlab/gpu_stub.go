//go:build nogpu

package main

import (
	"errors"

	"github.com/gogpu/colorlab/render"
)

func openGPURenderer() (render.Renderer, func(), error) {
	return nil, nil, errors.New("built without gpu support")
}
