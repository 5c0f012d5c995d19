package frame

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-forward/common"
	"github.com/Carmen-Shannon/oxy-forward/engine/config"
	"github.com/Carmen-Shannon/oxy-forward/engine/light"
	"github.com/Carmen-Shannon/oxy-forward/engine/model"
	"github.com/Carmen-Shannon/oxy-forward/engine/renderable"
	"github.com/Carmen-Shannon/oxy-forward/engine/renderer/material"
)

// DefaultPathColor is the flat color of the path line strip.
var DefaultPathColor = [4]float32{1, 0, 0, 1}

type frameRenderer struct {
	backend   Backend
	pathColor [4]float32

	// reused between frames to avoid per-frame allocation
	objects []model.GPUObjectUniform
	markers []Marker
}

// FrameRenderer renders complete frames by walking the passes in order and handing each draw to its Backend.
type FrameRenderer interface {
	// Render draws one frame. Opaque renderables go through the depth pre-pass and then once per light batch of
	// each light type, with the light type loop outermost, the batch loop next and the mesh loop innermost.
	// Reflective renderables, the path, the light markers and the skybox follow.
	//
	// Parameters:
	//   - view: the camera state
	//   - in: the lights, the renderables and the transient lights to draw
	//   - cfg: the render toggles; nil uses config.Default()
	//
	// Returns:
	//   - Stats: per-pass draw counts
	//   - error: the first backend error; the frame is still ended when a draw fails
	Render(view View, in Inputs, cfg *config.RenderConfig) (Stats, error)

	// Backend returns the backend draws are issued to.
	//
	// Returns:
	//   - Backend: the backend
	Backend() Backend
}

var _ FrameRenderer = &frameRenderer{}

// NewFrameRenderer creates a FrameRenderer drawing through the given backend.
//
// Parameters:
//   - backend: the GPU backend, must not be nil
//   - options: variadic list of FrameRendererBuilderOption functions
//
// Returns:
//   - FrameRenderer: the frame renderer
func NewFrameRenderer(backend Backend, options ...FrameRendererBuilderOption) FrameRenderer {
	if backend == nil {
		panic("frame: NewFrameRenderer requires a backend")
	}
	f := &frameRenderer{
		backend:   backend,
		pathColor: DefaultPathColor,
	}
	for _, opt := range options {
		opt(f)
	}
	return f
}

func (f *frameRenderer) Backend() Backend {
	return f.backend
}

func (f *frameRenderer) Render(view View, in Inputs, cfg *config.RenderConfig) (Stats, error) {
	var stats Stats
	if in.Lights == nil || in.Store == nil {
		return stats, errors.New("frame inputs need a light registry and a renderable store")
	}
	if cfg == nil {
		def := config.Default()
		cfg = &def
	}

	if err := f.backend.BeginFrame(); err != nil {
		return stats, fmt.Errorf("failed to begin frame: %w", err)
	}

	if err := f.renderPasses(view, in, cfg, &stats); err != nil {
		// release the frame's render target even though the frame is incomplete
		_ = f.backend.EndFrame()
		return stats, err
	}

	if err := f.backend.EndFrame(); err != nil {
		return stats, fmt.Errorf("failed to end frame: %w", err)
	}
	return stats, nil
}

func (f *frameRenderer) renderPasses(view View, in Inputs, cfg *config.RenderConfig, stats *Stats) error {
	opaque := in.Store.Opaque()
	f.objects = f.objects[:0]
	for _, r := range opaque {
		f.objects = append(f.objects, ObjectUniforms(view, r, cfg))
	}

	draw := func(d Draw) error {
		if err := f.backend.Draw(d); err != nil {
			return fmt.Errorf("%s pass: draw %q: %w", d.Pass, d.Renderable.Name, err)
		}
		stats.Draws[d.Pass]++
		return nil
	}

	for i, r := range opaque {
		if err := draw(Draw{Pass: PassDepth, Renderable: r, Object: f.objects[i]}); err != nil {
			return err
		}
	}

	points := in.Lights.PointLights()
	for _, b := range Batches(len(points), light.MaxPointLightsPerPass) {
		stats.Batches[PassPointLights]++
		for i, r := range opaque {
			if err := draw(Draw{Pass: PassPointLights, Renderable: r, Object: f.objects[i], Points: points[b[0]:b[1]]}); err != nil {
				return err
			}
		}
	}

	// transient spots batch separately so they never share a batch with registry lights
	for _, spots := range [][]light.SpotLight{in.Lights.SpotLights(), in.ExtraSpots} {
		for _, b := range Batches(len(spots), light.MaxSpotLightsPerPass) {
			stats.Batches[PassSpotLights]++
			for i, r := range opaque {
				if err := draw(Draw{Pass: PassSpotLights, Renderable: r, Object: f.objects[i], Spots: spots[b[0]:b[1]]}); err != nil {
					return err
				}
			}
		}
	}

	if sun, ok := in.Lights.DirectionalLight(); ok && cfg.Sunlight {
		stats.Batches[PassDirectional]++
		for i, r := range opaque {
			if err := draw(Draw{Pass: PassDirectional, Renderable: r, Object: f.objects[i], Sun: &sun}); err != nil {
				return err
			}
		}
	}

	for _, r := range in.Store.Reflective() {
		if err := draw(Draw{Pass: PassReflective, Renderable: r, Object: ObjectUniforms(view, r, cfg)}); err != nil {
			return err
		}
	}

	if cfg.ShowBezierPath && in.Path != nil {
		if err := f.backend.DrawPath(in.Path, view.ViewProj, f.pathColor); err != nil {
			return fmt.Errorf("%s pass: %w", PassPath, err)
		}
		stats.Draws[PassPath]++
	}

	if cfg.ShowLightsAsPoints {
		f.markers = AppendMarkers(f.markers[:0], view.ViewProj, points, in.Lights.SpotLights(), in.ExtraSpots)
		if len(f.markers) > 0 {
			if err := f.backend.DrawMarkers(f.markers, view.Viewport, cfg.LightPointSize); err != nil {
				return fmt.Errorf("%s pass: %w", PassMarkers, err)
			}
			stats.Draws[PassMarkers]++
			stats.Markers = len(f.markers)
		}
	}

	if err := f.backend.DrawSkybox(view.SkyboxViewProj, view.Eye); err != nil {
		return fmt.Errorf("%s pass: %w", PassSkybox, err)
	}
	stats.Draws[PassSkybox]++

	return nil
}

// ObjectUniforms builds the per-draw uniform of a renderable. Material flags combine the render toggles with the
// maps the renderable actually has, so a disabled toggle or a missing map both fall back to flat shading.
//
// Parameters:
//   - view: the camera state
//   - r: the renderable
//   - cfg: the render toggles
//
// Returns:
//   - model.GPUObjectUniform: the uniform
func ObjectUniforms(view View, r *renderable.Renderable, cfg *config.RenderConfig) model.GPUObjectUniform {
	return model.GPUObjectUniform{
		MVP:         common.MulMat4(view.ViewProj, r.World),
		Model:       r.World,
		NormalModel: common.NormalMatrix(r.World),
		ViewPos:     view.Eye,
		Flags: material.NewGPUMaterialFlags(
			cfg.UseBlinnCorrection,
			cfg.UseDiffuseMap && r.HasDiffuseMap(),
			cfg.UseNormalMap && r.HasNormalMap(),
		),
	}
}
