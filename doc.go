// Package colorlab provides a color value that converts between RGB, CMYK,
// HSL and hex, plus the rendering pieces of a small animated color demo.
//
// # Overview
//
// A [Color] stores exactly one native representation (RGB, CMYK or HSL)
// together with an alpha channel. The other representations are derived on
// demand by the getters [Color.RGB], [Color.CMYK], [Color.HSL], [Color.RGBA]
// and [Color.Hex]. Conversions between CMYK and HSL always pass through RGB.
//
// # Quick Start
//
//	import "github.com/gogpu/colorlab"
//
//	c := colorlab.FromRGB(1, 0, 0, 1)
//	c.CMYK() // {0 1 1 0}
//	c.HSL()  // {0 1 0.5}
//	c.Hex()  // "#ff0000ff"
//
//	half, err := colorlab.FromHex("#ff000080")
//	if err != nil {
//	    // err is an *InvalidFormatError
//	}
//
// # Hex Format
//
// Hex is the only serialized form: "#rrggbbaa", with the '#' optional and
// digits in either case on input, lowercase on output. Shorter forms such as
// "#rgb" or "#rrggbb" are rejected.
//
// # Architecture
//
// The module is organized into:
//   - colorlab: Color, conversions, hex, logging
//   - slider: integer slider scales used by user interfaces
//   - render: render targets, the software renderer, scene objects and the
//     animation loop
//   - render/shader: WGSL programs compiled with naga
//   - gpu: wgpu HAL pipelines for the scene objects
//   - cmd/colorlab: command line front end and HTTP control server
//
// # Logging
//
// colorlab is silent by default. Call [SetLogger] with a *slog.Logger to
// enable diagnostics for the root package and all sub-packages.
package colorlab
