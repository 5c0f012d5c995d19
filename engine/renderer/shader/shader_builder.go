package shader

// ShaderBuilderOption is a function that configures a Shader during construction.
type ShaderBuilderOption func(*shader)

// WithDefines is an option builder that supplies values for @oxy:define constants and $NAME annotation arguments.
// Later calls add to and override earlier ones.
//
// Parameters:
//   - defines: define name to value
//
// Returns:
//   - ShaderBuilderOption: a function that applies the defines option
func WithDefines(defines map[string]string) ShaderBuilderOption {
	return func(s *shader) {
		for k, v := range defines {
			s.defines[k] = v
		}
	}
}

// WithDefine is an option builder that supplies a single define value.
//
// Parameters:
//   - name: the define name
//   - value: the define value
//
// Returns:
//   - ShaderBuilderOption: a function that applies the define option
func WithDefine(name, value string) ShaderBuilderOption {
	return func(s *shader) {
		s.defines[name] = value
	}
}
