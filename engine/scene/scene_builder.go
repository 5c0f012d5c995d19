package scene

import (
	"github.com/Carmen-Shannon/oxy-forward/engine/bezier"
	"github.com/Carmen-Shannon/oxy-forward/engine/config"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithConfig sets the initial render toggles. Defaults to config.Default().
//
// Parameters:
//   - cfg: the toggles
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithConfig(cfg config.RenderConfig) SceneBuilderOption {
	return func(s *scene) {
		s.cfg = cfg
	}
}

// WithInactiveCameraColor sets the color of the spot light drawn for the inactive camera.
//
// Parameters:
//   - color: diffuse and specular color
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithInactiveCameraColor(color [3]float32) SceneBuilderOption {
	return func(s *scene) {
		s.inactiveColor = color
	}
}

// WithPathSamples sets how many line segments each Bézier curve of the path line strip is split into.
//
// Parameters:
//   - n: segments per curve (minimum 1)
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithPathSamples(n int) SceneBuilderOption {
	return func(s *scene) {
		s.pathSamples = max(n, 1)
	}
}

// WithAnimatorOptions passes options through to the path animator, which is created against the scene's own
// light registry.
//
// Parameters:
//   - options: the animator options
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithAnimatorOptions(options ...bezier.PathAnimatorBuilderOption) SceneBuilderOption {
	return func(s *scene) {
		s.animatorOpts = append(s.animatorOpts, options...)
	}
}
