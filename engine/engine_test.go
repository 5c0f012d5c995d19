package engine

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/oxy-forward/engine/camera"
	"github.com/Carmen-Shannon/oxy-forward/engine/config"
	"github.com/Carmen-Shannon/oxy-forward/engine/frame"
	"github.com/Carmen-Shannon/oxy-forward/engine/light"
	"github.com/Carmen-Shannon/oxy-forward/engine/scene"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeWindow closes itself after closeAfter polls.
type fakeWindow struct {
	width, height int
	polls         int
	closeAfter    int
	onResize      func(width, height int)
}

func (w *fakeWindow) SetUpdateCallback(func())                     {}
func (w *fakeWindow) SetResizeCallback(cb func(width, height int)) { w.onResize = cb }
func (w *fakeWindow) SetScrollCallback(func(delta float32))        {}
func (w *fakeWindow) SetKeyDownCallback(func(keyCode uint32))      {}
func (w *fakeWindow) SetKeyUpCallback(func(keyCode uint32))        {}
func (w *fakeWindow) SetMouseMoveCallback(func(x, y float64))      {}
func (w *fakeWindow) KeyDown(key uint32) bool                      { return false }
func (w *fakeWindow) MouseButtonDown(button int) bool              { return false }
func (w *fakeWindow) CursorPos() (float64, float64)                { return 0, 0 }
func (w *fakeWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor   { return nil }
func (w *fakeWindow) PollEvents()                                  { w.polls++ }
func (w *fakeWindow) ShouldClose() bool                            { return w.polls > w.closeAfter }
func (w *fakeWindow) Close() error                                 { return nil }
func (w *fakeWindow) ProcessMessages()                             {}
func (w *fakeWindow) Width() int                                   { return w.width }
func (w *fakeWindow) Height() int                                  { return w.height }

type recordingFrameRenderer struct {
	calls    int
	viewport [2]float32
	err      error
	failFor  int
}

func (r *recordingFrameRenderer) Render(view frame.View, in frame.Inputs, cfg *config.RenderConfig) (frame.Stats, error) {
	r.calls++
	r.viewport = view.Viewport
	if r.err != nil && (r.failFor == 0 || r.calls <= r.failFor) {
		return frame.Stats{}, r.err
	}
	var stats frame.Stats
	stats.Draws[frame.PassDepth] = 1
	return stats, nil
}

func (r *recordingFrameRenderer) Backend() frame.Backend {
	return nil
}

type recordingSurface struct {
	sizes [][2]int
}

func (s *recordingSurface) Resize(width, height int) {
	s.sizes = append(s.sizes, [2]int{width, height})
}

func newTestScene(withPathLight bool) scene.Scene {
	newCam := func(pos, fwd [3]float32) camera.Camera {
		return camera.NewCamera(camera.WithController(
			camera.NewCameraController(camera.WithPosition(pos), camera.WithForward(fwd))), camera.WithAspect(1))
	}
	s := scene.NewScene("test", newCam([3]float32{0, 2, -8}, [3]float32{0, 0, 4}), newCam([3]float32{5, 5, 5}, [3]float32{-5, -5, -5}))
	if withPathLight {
		s.Lights().AddPointLight(light.NewPointLight())
	}
	return s
}

func TestNewEnginePanicsWithoutCollaborators(t *testing.T) {
	assert.Panics(t, func() { NewEngine(nil, newTestScene(true), &recordingFrameRenderer{}) })
	assert.Panics(t, func() { NewEngine(&fakeWindow{}, nil, &recordingFrameRenderer{}) })
	assert.Panics(t, func() { NewEngine(&fakeWindow{}, newTestScene(true), nil) })
}

func TestRunRendersUntilWindowCloses(t *testing.T) {
	w := &fakeWindow{width: 800, height: 600, closeAfter: 3}
	fr := &recordingFrameRenderer{}
	e := NewEngine(w, newTestScene(true), fr, WithProfiling(true))

	ticks := 0
	e.SetTickCallback(func(dt float32) {
		assert.GreaterOrEqual(t, dt, float32(0))
		ticks++
	})

	require.NoError(t, e.Run())
	assert.Equal(t, 3, ticks)
	assert.Equal(t, 3, fr.calls)
	assert.Equal(t, uint64(3), e.Frames())
	assert.Equal(t, [2]float32{800, 600}, fr.viewport)
	assert.Equal(t, 1, e.LastStats().Total())

	// the path light moved once per frame
	assert.InDelta(t, 3.0/120.0, e.Scene().Animator().Timestep(), 1e-6)
}

func TestRunSkipsRenderWithoutArea(t *testing.T) {
	w := &fakeWindow{closeAfter: 2}
	fr := &recordingFrameRenderer{}
	e := NewEngine(w, newTestScene(true), fr)

	require.NoError(t, e.Run())
	assert.Zero(t, fr.calls)
	assert.Zero(t, e.Frames())
}

func TestQuitFromTickStopsLoop(t *testing.T) {
	w := &fakeWindow{width: 1, height: 1, closeAfter: 100}
	fr := &recordingFrameRenderer{}
	e := NewEngine(w, newTestScene(true), fr)
	e.SetTickCallback(func(float32) { e.Quit() })

	require.NoError(t, e.Run())
	assert.Zero(t, fr.calls)
	assert.Equal(t, 1, w.polls)
}

func TestRunReturnsSceneUpdateError(t *testing.T) {
	w := &fakeWindow{width: 1, height: 1, closeAfter: 5}
	e := NewEngine(w, newTestScene(false), &recordingFrameRenderer{})

	err := e.Run()
	assert.ErrorIs(t, err, light.ErrLightIndex)
}

func TestRunToleratesTransientRenderErrors(t *testing.T) {
	w := &fakeWindow{width: 1, height: 1, closeAfter: 6}
	fr := &recordingFrameRenderer{err: errors.New("surface outdated"), failFor: 3}
	e := NewEngine(w, newTestScene(true), fr)

	require.NoError(t, e.Run())
	assert.Equal(t, 6, fr.calls)
	assert.Equal(t, uint64(3), e.Frames())
}

func TestRunGivesUpOnPersistentRenderErrors(t *testing.T) {
	w := &fakeWindow{width: 1, height: 1, closeAfter: MaxConsecutiveFrameErrors * 2}
	boom := errors.New("device lost")
	fr := &recordingFrameRenderer{err: boom}
	e := NewEngine(w, newTestScene(true), fr)

	err := e.Run()
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, MaxConsecutiveFrameErrors, fr.calls)
}

func TestResizeForwardsToSurface(t *testing.T) {
	w := &fakeWindow{}
	surface := &recordingSurface{}
	NewEngine(w, newTestScene(true), &recordingFrameRenderer{}, WithSurface(surface))

	require.NotNil(t, w.onResize)
	w.onResize(1024, 768)
	w.onResize(0, 0)
	assert.Equal(t, [][2]int{{1024, 768}}, surface.sizes)
}

func TestSetRenderFrameLimit(t *testing.T) {
	e := NewEngine(&fakeWindow{}, newTestScene(true), &recordingFrameRenderer{}, WithRenderFrameLimit(50)).(*engine)
	assert.Equal(t, int64(20_000_000), e.renderFrameLimit.Nanoseconds())

	e.SetRenderFrameLimit(0)
	assert.Zero(t, e.renderFrameLimit)
}
