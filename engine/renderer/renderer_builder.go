package renderer

// RendererBuilderOption is a functional option applied to a renderer during construction via NewRenderer.
// Options run before the backend requests an adapter, so everything they set is in place for surface setup.
type RendererBuilderOption func(*renderer)

// WithPresentMode sets the surface present mode which controls how frames are delivered to the display.
//
// Parameters:
//   - mode: the PresentMode to use (VSync or Uncapped)
//
// Returns:
//   - RendererBuilderOption: a function that applies the present mode option to a renderer
func WithPresentMode(mode PresentMode) RendererBuilderOption {
	return func(r *renderer) {
		r.pendingPresentMode = &mode
	}
}

// WithMSAA sets the sample count of the color and depth attachments shared by every forward pass.
// MSAA4x is used when the option is absent. MSAA8x and MSAA16x depend on the adapter.
//
// Parameters:
//   - count: the MSAASampleCount to use
//
// Returns:
//   - RendererBuilderOption: a function that applies the MSAA option to a renderer
func WithMSAA(count MSAASampleCount) RendererBuilderOption {
	return func(r *renderer) {
		r.pendingMSAA = &count
	}
}

// WithForceSoftwareRenderer asks for the fallback adapter instead of a hardware GPU. A software
// Vulkan driver such as lavapipe or SwiftShader must be installed.
//
// Parameters:
//   - force: true to request the fallback adapter
//
// Returns:
//   - RendererBuilderOption: a function that applies the adapter choice to a renderer
func WithForceSoftwareRenderer(force bool) RendererBuilderOption {
	return func(r *renderer) {
		r.forceFallbackAdapter = force
	}
}
