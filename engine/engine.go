package engine

import (
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/oxy-forward/engine/frame"
	"github.com/Carmen-Shannon/oxy-forward/engine/profiler"
	"github.com/Carmen-Shannon/oxy-forward/engine/scene"
	"github.com/Carmen-Shannon/oxy-forward/engine/window"
)

// MaxConsecutiveFrameErrors is how many frames in a row may fail to render before Run gives up.
const MaxConsecutiveFrameErrors = 120

// Surface is the presentation target resized with the window. renderer.Renderer satisfies it.
type Surface interface {
	Resize(width, height int)
}

// engine implements the Engine interface.
// Drives the window, the scene and the frame renderer from a single loop on the calling goroutine.
type engine struct {
	running atomic.Bool
	quit    atomic.Bool

	window   window.Window
	scene    scene.Scene
	renderer frame.FrameRenderer
	surface  Surface

	profiler         *profiler.Profiler
	profilingEnabled atomic.Bool

	tickCallback func(deltaTime float32)

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped

	frames     uint64
	lastStats  frame.Stats
	failures   int
	lastErrMsg string
}

// Engine is the main entry point for the engine.
// It runs the frame loop: poll window events, run the tick callback, update the scene, render it, present.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Scene returns the scene driven by the loop.
	//
	// Returns:
	//   - scene.Scene: the scene
	Scene() scene.Scene

	// FrameRenderer returns the renderer the scene is drawn with.
	//
	// Returns:
	//   - frame.FrameRenderer: the frame renderer
	FrameRenderer() frame.FrameRenderer

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickCallback registers the function called once per frame after window events are polled and before
	// the scene is updated. Use this for input toggles and config reloads.
	//
	// Parameters:
	//   - callback: function receiving the delta time in seconds
	SetTickCallback(callback func(deltaTime float32))

	// SetRenderFrameLimit sets an optional frame rate cap in frames per second.
	// Pass 0 to uncap the loop (default).
	//
	// Parameters:
	//   - fps: maximum frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// Frames returns how many frames were rendered successfully.
	//
	// Returns:
	//   - uint64: the frame count
	Frames() uint64

	// LastStats returns the draw counts of the last successful frame.
	//
	// Returns:
	//   - frame.Stats: the draw counts
	LastStats() frame.Stats

	// Run drives the frame loop on the calling goroutine until the window closes or Quit is called. Frames are
	// skipped while the window has no area. A frame that fails to render is logged and retried.
	//
	// Returns:
	//   - error: a scene update error, or the last render error after MaxConsecutiveFrameErrors failures in a row
	Run() error

	// Quit stops the loop after the current frame. Safe to call from the tick callback and multiple times.
	Quit()
}

var _ Engine = &engine{}

// NewEngine creates a new Engine for a window, a scene and the frame renderer drawing it.
// Options are applied directly to the engine struct via the option-builder pattern.
//
// Panics if the window, the scene or the frame renderer is nil.
//
// Parameters:
//   - w: the window events are polled from and input is read from
//   - s: the scene
//   - fr: the frame renderer
//   - options: functional options for engine configuration (profiling, frame limit, surface)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(w window.Window, s scene.Scene, fr frame.FrameRenderer, options ...EngineBuilderOption) Engine {
	if w == nil || s == nil || fr == nil {
		panic("engine: NewEngine requires a window, a scene and a frame renderer")
	}

	e := &engine{
		window:   w,
		scene:    s,
		renderer: fr,
		profiler: profiler.NewProfiler(),
	}

	for _, opt := range options {
		opt(e)
	}

	e.window.SetResizeCallback(func(width, height int) {
		if e.surface != nil && width > 0 && height > 0 {
			e.surface.Resize(width, height)
		}
	})

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Scene() scene.Scene {
	return e.scene
}

func (e *engine) FrameRenderer() frame.FrameRenderer {
	return e.renderer
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled.Store(true)
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled.Store(false)
}

// SetTickCallback registers the function called each frame before the scene update.
func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.tickCallback = callback
}

// SetRenderFrameLimit sets an optional frame rate cap.
// Pass 0 to uncap the loop.
func (e *engine) SetRenderFrameLimit(fps float64) {
	if fps <= 0 {
		e.renderFrameLimit = 0
		return
	}
	e.renderFrameLimit = time.Duration(float64(time.Second) / fps)
}

func (e *engine) Frames() uint64 {
	return e.frames
}

func (e *engine) LastStats() frame.Stats {
	return e.lastStats
}

func (e *engine) Quit() {
	e.quit.Store(true)
}

func (e *engine) Run() error {
	if !e.running.CompareAndSwap(false, true) {
		return fmt.Errorf("engine is already running")
	}
	defer e.running.Store(false)

	lastFrame := time.Now()
	for !e.quit.Load() {
		e.window.PollEvents()
		if e.window.ShouldClose() {
			return nil
		}

		frameStart := time.Now()
		dt := float32(frameStart.Sub(lastFrame).Seconds())
		lastFrame = frameStart

		if e.tickCallback != nil {
			e.tickCallback(dt)
		}
		if e.quit.Load() {
			return nil
		}

		if err := e.scene.Update(e.window); err != nil {
			return fmt.Errorf("scene update: %w", err)
		}

		if err := e.renderFrame(); err != nil {
			return err
		}

		// Frame rate limiting
		if e.renderFrameLimit > 0 {
			if remaining := e.renderFrameLimit - time.Since(frameStart); remaining > 0 {
				time.Sleep(remaining)
			}
		}
	}
	return nil
}

// renderFrame draws the scene at the current framebuffer size. Failures are logged once per distinct message and
// only returned once MaxConsecutiveFrameErrors frames in a row have failed.
func (e *engine) renderFrame() error {
	width, height := e.window.Width(), e.window.Height()
	if width <= 0 || height <= 0 {
		return nil
	}

	stats, err := e.scene.Render(e.renderer, [2]float32{float32(width), float32(height)})
	if err != nil {
		e.failures++
		if msg := err.Error(); msg != e.lastErrMsg {
			log.Printf("[engine] frame failed: %v", err)
			e.lastErrMsg = msg
		}
		if e.failures >= MaxConsecutiveFrameErrors {
			return fmt.Errorf("%d consecutive frames failed: %w", e.failures, err)
		}
		return nil
	}

	e.failures = 0
	e.lastErrMsg = ""
	e.frames++
	e.lastStats = stats
	if e.profilingEnabled.Load() && e.profiler != nil {
		e.profiler.Tick(stats)
	}
	return nil
}
