package frame

// FrameRendererBuilderOption is a functional option for configuring a FrameRenderer via NewFrameRenderer.
type FrameRendererBuilderOption func(*frameRenderer)

// WithPathColor sets the flat RGBA color of the path line strip.
//
// Parameters:
//   - color: the color
//
// Returns:
//   - FrameRendererBuilderOption: a function that sets the path color
func WithPathColor(color [4]float32) FrameRendererBuilderOption {
	return func(f *frameRenderer) {
		f.pathColor = color
	}
}

// GPUBackendBuilderOption is a functional option for configuring the Backend returned by NewGPUBackend.
type GPUBackendBuilderOption func(*gpuBackend)

// WithShaderDir sets the directory the pass shaders are loaded from.
//
// Parameters:
//   - dir: the shader directory
//
// Returns:
//   - GPUBackendBuilderOption: a function that sets the shader directory
func WithShaderDir(dir string) GPUBackendBuilderOption {
	return func(b *gpuBackend) {
		b.shaderDir = dir
	}
}
