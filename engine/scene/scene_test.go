package scene

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-forward/common"
	"github.com/Carmen-Shannon/oxy-forward/engine/bezier"
	"github.com/Carmen-Shannon/oxy-forward/engine/camera"
	"github.com/Carmen-Shannon/oxy-forward/engine/config"
	"github.com/Carmen-Shannon/oxy-forward/engine/frame"
	"github.com/Carmen-Shannon/oxy-forward/engine/light"
	"github.com/Carmen-Shannon/oxy-forward/engine/model"
	"github.com/Carmen-Shannon/oxy-forward/engine/renderable"
	"github.com/Carmen-Shannon/oxy-forward/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-forward/engine/transform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type idleInput struct {
	keys map[uint32]bool
}

func (in idleInput) KeyDown(key uint32) bool         { return in.keys[key] }
func (in idleInput) CursorPos() (float64, float64)   { return 0, 0 }
func (in idleInput) MouseButtonDown(button int) bool { return false }

type recordingFrameRenderer struct {
	view   frame.View
	inputs frame.Inputs
	cfg    config.RenderConfig
	calls  int
}

func (r *recordingFrameRenderer) Render(view frame.View, in frame.Inputs, cfg *config.RenderConfig) (frame.Stats, error) {
	r.calls++
	r.view = view
	r.inputs = in
	r.cfg = *cfg
	return frame.Stats{}, nil
}

func (r *recordingFrameRenderer) Backend() frame.Backend {
	return nil
}

func newCamera(pos, fwd [3]float32) camera.Camera {
	ctrl := camera.NewCameraController(camera.WithPosition(pos), camera.WithForward(fwd))
	return camera.NewCamera(camera.WithController(ctrl), camera.WithAspect(1))
}

func newTestScene(t *testing.T, options ...SceneBuilderOption) Scene {
	t.Helper()
	s := NewScene("test",
		newCamera([3]float32{0, 2, -8}, [3]float32{0, 0, 4}),
		newCamera([3]float32{5, 5, 5}, [3]float32{-5, -5, -5}),
		options...,
	)
	s.Lights().AddPointLight(light.NewPointLight(light.WithMaxDistance(50)))
	return s
}

// buildSolarSystem adds the sun, planet and moon nodes with a dynamic renderable bound to each.
func buildSolarSystem(t *testing.T, s Scene) Hierarchy {
	t.Helper()
	var sunLocal, planetLocal, moonLocal [16]float32
	common.Translate(sunLocal[:], 0, 8, 0)
	common.Translate(planetLocal[:], 0, 0, -4)
	common.Translate(moonLocal[:], 0, 2, 0)

	sun, err := s.Arena().Add(sunLocal, transform.NoParent)
	require.NoError(t, err)
	planet, err := s.Arena().Add(planetLocal, sun)
	require.NoError(t, err)
	moon, err := s.Arena().Add(moonLocal, planet)
	require.NoError(t, err)

	for _, n := range []struct {
		name string
		node transform.NodeID
	}{{"sun", sun}, {"planet", planet}, {"moon", moon}} {
		s.Store().Add(renderable.NewRenderable(
			renderable.WithName(n.name),
			renderable.WithNode(n.node),
			renderable.WithMobility(common.MobilityDynamic),
		))
	}

	h := Hierarchy{Sun: sun, Planet: planet, Moon: moon}
	require.NoError(t, s.SetHierarchy(h))
	return h
}

func translation(m [16]float32) []float32 {
	return []float32{m[12], m[13], m[14]}
}

func TestNewScenePanicsWithoutCameras(t *testing.T) {
	assert.Panics(t, func() { NewScene("x", nil, newCamera([3]float32{}, [3]float32{0, 0, -1})) })
}

func TestToggleCameraSwapsActive(t *testing.T) {
	s := newTestScene(t)
	first, second := s.ActiveCamera(), s.InactiveCamera()

	s.ToggleCamera()
	assert.Same(t, second, s.ActiveCamera())
	assert.Same(t, first, s.InactiveCamera())

	s.ToggleCamera()
	assert.Same(t, first, s.ActiveCamera())
}

func TestUpdateMovesPathLight(t *testing.T) {
	s := newTestScene(t)
	require.NoError(t, s.Update(idleInput{}))

	p, err := s.Lights().PointLight(light.PathLightIndex)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float32{0, 1, 5}, p.Position[:], 1e-5)
	assert.InDelta(t, 1.0/float64(bezier.DefaultFrameCount), s.Animator().Timestep(), 1e-6)

	s.UpdateConfig(func(cfg *config.RenderConfig) { cfg.PauseBezierPath = true })
	before := s.Animator().Timestep()
	require.NoError(t, s.Update(idleInput{}))
	assert.Equal(t, before, s.Animator().Timestep())
}

func TestPausedPathLightHoldsAcrossFrames(t *testing.T) {
	cfg := config.Default()
	cfg.PauseBezierPath = true
	s := newTestScene(t, WithConfig(cfg))

	tex, err := material.NewTexture(common.SolidTexture(200, 120, 80, 255))
	require.NoError(t, err)
	s.Store().Add(renderable.NewRenderable(
		renderable.WithName("cube"),
		renderable.WithMesh(model.BuildSkyboxCube()),
		renderable.WithDiffuseMap(tex),
	))

	start, err := s.Lights().PointLight(light.PathLightIndex)
	require.NoError(t, err)

	fr := &recordingFrameRenderer{}
	for i := 0; i < 100; i++ {
		require.NoError(t, s.Update(idleInput{}))
		_, err := s.Render(fr, [2]float32{800, 600})
		require.NoError(t, err)
	}

	after, err := s.Lights().PointLight(light.PathLightIndex)
	require.NoError(t, err)
	assert.Equal(t, start.Position, after.Position)
	assert.Zero(t, s.Animator().Timestep())
	assert.Equal(t, 100, fr.calls)
	assert.Len(t, fr.inputs.Store.Opaque(), 1)
}

func TestUpdateFailsWithoutPathLight(t *testing.T) {
	s := NewScene("empty",
		newCamera([3]float32{}, [3]float32{0, 0, -1}),
		newCamera([3]float32{}, [3]float32{0, 0, -1}),
	)
	assert.ErrorIs(t, s.Update(idleInput{}), light.ErrLightIndex)
}

func TestUpdateMovesOnlyActiveCamera(t *testing.T) {
	s := newTestScene(t)
	inactiveBefore := s.InactiveCamera().Position()
	activeBefore := s.ActiveCamera().Position()

	require.NoError(t, s.Update(idleInput{keys: map[uint32]bool{common.KeyW: true}}))
	assert.NotEqual(t, activeBefore, s.ActiveCamera().Position())
	assert.Equal(t, inactiveBefore, s.InactiveCamera().Position())
}

func TestHierarchyOrbit(t *testing.T) {
	s := newTestScene(t)
	_, err := s.Hierarchy()
	assert.ErrorIs(t, err, ErrNoHierarchy)

	h := buildSolarSystem(t, s)
	got, err := s.Hierarchy()
	require.NoError(t, err)
	assert.Equal(t, h, got)

	require.NoError(t, s.Update(idleInput{}))

	sin, cos := float32(math.Sin(math.Pi/180)), float32(math.Cos(math.Pi/180))
	planet := s.Store().Get(1)
	assert.InDeltaSlice(t, []float32{-4 * sin, 8, -4 * cos}, translation(planet.World), 1e-5)

	// the sun never moves
	assert.InDeltaSlice(t, []float32{0, 8, 0}, translation(s.Store().Get(0).World), 1e-6)

	// the moon's world follows the planet's updated rotation in the same tick
	planetWorld, err := s.Arena().World(h.Planet)
	require.NoError(t, err)
	moonWorld, err := s.Arena().World(h.Moon)
	require.NoError(t, err)
	assert.Equal(t, moonWorld, s.Store().Get(2).World)
	moonLocal, err := s.Arena().Local(h.Moon)
	require.NoError(t, err)
	composed := common.MulMat4(planetWorld, moonLocal)
	assert.InDeltaSlice(t, composed[:], moonWorld[:], 1e-5)
}

func TestHierarchyOrbitPauses(t *testing.T) {
	s := newTestScene(t, WithConfig(func() config.RenderConfig {
		cfg := config.Default()
		cfg.PauseHierarchyTransform = true
		return cfg
	}()))
	h := buildSolarSystem(t, s)
	before, err := s.Arena().Local(h.Planet)
	require.NoError(t, err)

	require.NoError(t, s.Update(idleInput{}))
	after, err := s.Arena().Local(h.Planet)
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.InDeltaSlice(t, []float32{0, 8, -4}, translation(s.Store().Get(1).World), 1e-6)
}

func TestSetHierarchyRejectsUnknownNodes(t *testing.T) {
	s := newTestScene(t)
	err := s.SetHierarchy(Hierarchy{Sun: 0, Planet: 1, Moon: 2})
	assert.ErrorIs(t, err, transform.ErrUnknownNode)
}

func TestRenderSynthesizesInactiveCameraLight(t *testing.T) {
	s := newTestScene(t)
	fr := &recordingFrameRenderer{}

	_, err := s.Render(fr, [2]float32{800, 600})
	require.NoError(t, err)
	require.Equal(t, 1, fr.calls)

	assert.Equal(t, s.ActiveCamera().Position(), fr.view.Eye)
	assert.Equal(t, s.ActiveCamera().ViewProjectionMatrix(), fr.view.ViewProj)
	assert.Equal(t, s.ActiveCamera().SkyboxViewProjection(), fr.view.SkyboxViewProj)
	assert.Equal(t, [2]float32{800, 600}, fr.view.Viewport)
	assert.Same(t, s.Lights(), fr.inputs.Lights)
	assert.Same(t, s.Store(), fr.inputs.Store)
	assert.Same(t, s.PathModel(), fr.inputs.Path)

	require.Len(t, fr.inputs.ExtraSpots, 1)
	spot := fr.inputs.ExtraSpots[0]
	assert.Equal(t, s.InactiveCamera().Position(), spot.Position)
	assert.Equal(t, DefaultInactiveCameraColor, spot.Specular)
	assert.InDelta(t, float64(common.DegToRad(InactiveCameraOuterDeg)), float64(spot.OuterCutoff), 1e-6)

	// the registry only ever holds the path light
	assert.Len(t, s.Lights().SpotLights(), 0)

	s.UpdateConfig(func(cfg *config.RenderConfig) { cfg.ShowInactiveCamera = false })
	_, err = s.Render(fr, [2]float32{800, 600})
	require.NoError(t, err)
	assert.Empty(t, fr.inputs.ExtraSpots)
	assert.False(t, fr.cfg.ShowInactiveCamera)
}

func TestRenderAfterToggleUsesOtherCamera(t *testing.T) {
	s := newTestScene(t, WithInactiveCameraColor([3]float32{0, 1, 0}))
	fr := &recordingFrameRenderer{}
	s.ToggleCamera()

	_, err := s.Render(fr, [2]float32{1, 1})
	require.NoError(t, err)
	assert.Equal(t, [3]float32{5, 5, 5}, fr.view.Eye)
	require.Len(t, fr.inputs.ExtraSpots, 1)
	assert.Equal(t, [3]float32{0, 2, -8}, fr.inputs.ExtraSpots[0].Position)
	assert.Equal(t, [3]float32{0, 1, 0}, fr.inputs.ExtraSpots[0].Diffuse)
}

func TestPathModelSamplesEveryCurve(t *testing.T) {
	s := newTestScene(t, WithPathSamples(8))
	assert.Equal(t, s.Animator().Path().CurveCount()*8+1, s.PathModel().VertexCount())
}
