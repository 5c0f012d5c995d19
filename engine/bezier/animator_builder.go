package bezier

// DefaultFrameCount is the number of ticks spent on one cubic segment.
const DefaultFrameCount = 120

// PathAnimatorBuilderOption is a function that configures a PathAnimator during construction.
type PathAnimatorBuilderOption func(*pathAnimator)

// WithPath is an option builder that replaces the animated path.
//
// Parameters:
//   - p: the path; nil keeps the default
//
// Returns:
//   - PathAnimatorBuilderOption: a function that applies the path option
func WithPath(p *Path) PathAnimatorBuilderOption {
	return func(a *pathAnimator) {
		if p != nil {
			a.path = p
		}
	}
}

// WithFrameCount is an option builder that sets how many ticks each segment takes.
//
// Parameters:
//   - n: ticks per segment; values below 1 keep the default
//
// Returns:
//   - PathAnimatorBuilderOption: a function that applies the frame count option
func WithFrameCount(n int) PathAnimatorBuilderOption {
	return func(a *pathAnimator) {
		if n > 0 {
			a.frameCount = n
		}
	}
}

// WithLightIndex is an option builder that selects which point light is animated.
//
// Parameters:
//   - i: registry index of the point light
//
// Returns:
//   - PathAnimatorBuilderOption: a function that applies the light index option
func WithLightIndex(i int) PathAnimatorBuilderOption {
	return func(a *pathAnimator) {
		a.lightIndex = i
	}
}
