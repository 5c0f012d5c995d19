package bezier

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-forward/engine/light"
)

// PathAnimator moves one point light of a registry along a Path, one step per tick.
type PathAnimator interface {
	// Update writes the path position at the current timestep into the animated light, then advances the timestep by
	// 1/frameCount and wraps it to zero once it reaches the curve count. A paused update changes nothing.
	//
	// Parameters:
	//   - paused: when true the light and timestep are left untouched
	//
	// Returns:
	//   - error: error if the animated light index does not exist in the registry
	Update(paused bool) error

	// Timestep returns the current global path parameter in [0, CurveCount).
	//
	// Returns:
	//   - float32: the timestep
	Timestep() float32

	// Path returns the animated path.
	//
	// Returns:
	//   - *Path: the path
	Path() *Path

	// FrameCount returns the number of ticks spent on each cubic segment.
	//
	// Returns:
	//   - int: ticks per segment
	FrameCount() int

	// LightIndex returns the point light slot being animated.
	//
	// Returns:
	//   - int: the registry index
	LightIndex() int
}

type pathAnimator struct {
	registry   light.Registry
	path       *Path
	frameCount int
	lightIndex int

	// tick counts updates since the last wrap; the timestep is derived from it so no rounding accumulates
	tick int
}

var _ PathAnimator = &pathAnimator{}

// NewPathAnimator creates an animator over the given registry. By default it drives point light
// light.PathLightIndex along DefaultPath, spending 120 ticks on each segment.
//
// Parameters:
//   - registry: the light registry holding the animated light
//   - options: variadic list of PathAnimatorBuilderOption functions
//
// Returns:
//   - PathAnimator: the animator
func NewPathAnimator(registry light.Registry, options ...PathAnimatorBuilderOption) PathAnimator {
	if registry == nil {
		panic("path animator requires a light registry")
	}
	a := &pathAnimator{
		registry:   registry,
		path:       DefaultPath(),
		frameCount: DefaultFrameCount,
		lightIndex: light.PathLightIndex,
	}
	for _, opt := range options {
		opt(a)
	}
	return a
}

func (a *pathAnimator) Update(paused bool) error {
	if paused {
		return nil
	}

	pos := a.path.Evaluate(a.Timestep())
	if err := a.registry.SetPointLightPosition(a.lightIndex, pos); err != nil {
		return fmt.Errorf("failed to move path light: %w", err)
	}

	a.tick++
	if a.tick >= a.frameCount*a.path.CurveCount() {
		a.tick = 0
	}
	return nil
}

func (a *pathAnimator) Timestep() float32 {
	return float32(a.tick) / float32(a.frameCount)
}

func (a *pathAnimator) Path() *Path {
	return a.path
}

func (a *pathAnimator) FrameCount() int {
	return a.frameCount
}

func (a *pathAnimator) LightIndex() int {
	return a.lightIndex
}
