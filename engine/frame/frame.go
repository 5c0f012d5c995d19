// Package frame drives one rendered frame as a fixed sequence of passes: a depth pre-pass, the additive lighting
// passes per light type, the reflective pass, the debug overlays and finally the skybox. The pass sequencing and
// the light batching live here; the GPU work behind each draw is delegated to a Backend.
package frame

import (
	"errors"

	"github.com/Carmen-Shannon/oxy-forward/engine/light"
	"github.com/Carmen-Shannon/oxy-forward/engine/model"
	"github.com/Carmen-Shannon/oxy-forward/engine/renderable"
)

// ErrFrameNotStarted is returned by a Backend when a draw is issued outside BeginFrame/EndFrame.
var ErrFrameNotStarted = errors.New("frame not started")

// Pass identifies one stage of the frame. The constants are declared in execution order.
type Pass int

const (
	// PassDepth writes depth only for every opaque renderable (LessEqual, color writes off).
	PassDepth Pass = iota
	// PassPointLights adds the contribution of one batch of point lights (Equal, additive blend).
	PassPointLights
	// PassSpotLights adds the contribution of one batch of spot lights (Equal, additive blend).
	PassSpotLights
	// PassDirectional adds the directional light when sunlight is enabled (Equal, additive blend).
	PassDirectional
	// PassReflective draws reflective renderables sampling the skybox cube (Less, no blend).
	PassReflective
	// PassPath draws the animated light's path as a line strip.
	PassPath
	// PassMarkers draws every light as a fixed-size square colored by its specular color.
	PassMarkers
	// PassSkybox draws the skybox cube behind everything (LessEqual, rotation-only view).
	PassSkybox

	passCount
)

// String returns the pass name used in pipeline keys and logs.
func (p Pass) String() string {
	switch p {
	case PassDepth:
		return "depth"
	case PassPointLights:
		return "point"
	case PassSpotLights:
		return "spot"
	case PassDirectional:
		return "directional"
	case PassReflective:
		return "reflective"
	case PassPath:
		return "path"
	case PassMarkers:
		return "markers"
	case PassSkybox:
		return "skybox"
	default:
		return "unknown"
	}
}

// Passes returns every pass in execution order.
//
// Returns:
//   - []Pass: the passes
func Passes() []Pass {
	out := make([]Pass, 0, passCount)
	for p := PassDepth; p < passCount; p++ {
		out = append(out, p)
	}
	return out
}

// View is the camera state a frame is rendered from.
type View struct {
	ViewProj       [16]float32
	SkyboxViewProj [16]float32
	Eye            [3]float32
	// Viewport is the framebuffer size in pixels, used to size light markers.
	Viewport [2]float32
}

// Draw is a single mesh draw within a pass. Only the light slice matching Pass is set.
type Draw struct {
	Pass       Pass
	Renderable *renderable.Renderable
	Object     model.GPUObjectUniform

	Points []light.PointLight
	Spots  []light.SpotLight
	Sun    *light.DirectionalLight
}

// Marker is one light marker: the light's clip-space position and its specular color.
type Marker struct {
	ClipPos [4]float32
	Color   [3]float32
}

// Inputs bundles everything a frame reads besides the view and the render toggles.
type Inputs struct {
	Lights light.Registry
	Store  renderable.Store

	// ExtraSpots are transient spot lights, such as the inactive camera, drawn in their own batches after the
	// registry's spot lights.
	ExtraSpots []light.SpotLight

	// Path is the line strip drawn by PassPath, or nil for none.
	Path model.Model
}

// Backend performs the GPU work of a frame. All draws happen between BeginFrame and EndFrame; a Backend returns
// ErrFrameNotStarted for draws issued outside that window.
type Backend interface {
	// BeginFrame acquires the frame's render target and starts recording.
	//
	// Returns:
	//   - error: error if the frame could not be started
	BeginFrame() error

	// Draw encodes one mesh draw with the pipeline of d.Pass.
	//
	// Parameters:
	//   - d: the draw
	//
	// Returns:
	//   - error: error if the draw could not be encoded
	Draw(d Draw) error

	// DrawPath encodes the path line strip.
	//
	// Parameters:
	//   - path: the line strip model
	//   - mvp: the path's model-view-projection matrix
	//   - color: the flat RGBA color
	//
	// Returns:
	//   - error: error if the draw could not be encoded
	DrawPath(path model.Model, mvp [16]float32, color [4]float32) error

	// DrawMarkers encodes the light markers.
	//
	// Parameters:
	//   - markers: one entry per light
	//   - viewport: the framebuffer size in pixels
	//   - pointSize: the marker edge length in pixels
	//
	// Returns:
	//   - error: error if the draw could not be encoded
	DrawMarkers(markers []Marker, viewport [2]float32, pointSize float32) error

	// DrawSkybox encodes the skybox cube.
	//
	// Parameters:
	//   - viewProj: the rotation-only view-projection matrix
	//   - eye: the camera position
	//
	// Returns:
	//   - error: error if the draw could not be encoded
	DrawSkybox(viewProj [16]float32, eye [3]float32) error

	// EndFrame submits the recorded frame and presents it.
	//
	// Returns:
	//   - error: error if no frame was started
	EndFrame() error
}

// Stats counts what a frame drew.
type Stats struct {
	// Draws is the number of draw calls per pass.
	Draws [passCount]int
	// Batches is the number of light batches per lighting pass.
	Batches [passCount]int
	// Markers is the number of light markers drawn.
	Markers int
}

// Total returns the number of draw calls across all passes.
//
// Returns:
//   - int: the draw count
func (s Stats) Total() int {
	n := 0
	for _, d := range s.Draws {
		n += d
	}
	return n
}

// Batches splits n items into consecutive half-open ranges of at most size items. Every range but the last holds
// exactly size items; the last holds n mod size, or size when n divides evenly.
//
// Parameters:
//   - n: the item count
//   - size: the batch size, at least 1
//
// Returns:
//   - [][2]int: the [start, end) ranges, empty when n is 0
func Batches(n, size int) [][2]int {
	if n <= 0 || size <= 0 {
		return nil
	}
	out := make([][2]int, 0, (n+size-1)/size)
	for start := 0; start < n; start += size {
		out = append(out, [2]int{start, min(start+size, n)})
	}
	return out
}
