package material

// TextureBuilderOption is a function that configures a texture during construction.
type TextureBuilderOption func(*texture)

// WithName is an option builder that sets the name of the texture.
//
// Parameters:
//   - name: the identifier for the texture
//
// Returns:
//   - TextureBuilderOption: a function that applies the name option to a texture
func WithName(name string) TextureBuilderOption {
	return func(t *texture) {
		t.name = name
	}
}

// WithLinear is an option builder that marks the texels as linear data, for normal maps and other non-color maps.
//
// Returns:
//   - TextureBuilderOption: a function that applies the linear option to a texture
func WithLinear() TextureBuilderOption {
	return func(t *texture) {
		t.srgb = false
	}
}
