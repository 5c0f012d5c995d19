package shader

import (
	"errors"
	"os"

	"github.com/cogentcore/webgpu/wgpu"
)

// ShaderType identifies the pipeline stage a shader source targets.
type ShaderType int

const (
	// ShaderTypeVertex is the vertex shader type, used for vertex processing in render pipelines.
	ShaderTypeVertex ShaderType = iota

	// ShaderTypeFragment is the fragment shader type, used for fragment processing in pair with a vertex shader.
	ShaderTypeFragment
)

// String returns the lower case stage name.
func (t ShaderType) String() string {
	switch t {
	case ShaderTypeVertex:
		return "vertex"
	case ShaderTypeFragment:
		return "fragment"
	default:
		return "unknown"
	}
}

// Visibility returns the wgpu stage flag for bind group layout entries declared by this stage.
func (t ShaderType) Visibility() wgpu.ShaderStage {
	switch t {
	case ShaderTypeVertex:
		return wgpu.ShaderStageVertex
	case ShaderTypeFragment:
		return wgpu.ShaderStageFragment
	default:
		return wgpu.ShaderStageNone
	}
}

// shader is the implementation of the Shader interface.
// It holds all of the persistent shader data required for pipeline creation and resource binding.
type shader struct {
	key                        string
	path                       string
	source                     string
	shaderType                 ShaderType
	defines                    map[string]string
	bindGroupLayoutDescriptors map[int]wgpu.BindGroupLayoutDescriptor
	bindingVarNames            map[int]map[int]string
	vertexLayouts              map[int][]wgpu.VertexBufferLayout
	entryPoint                 string
	module                     *wgpu.ShaderModuleDescriptor

	pp PreProcessor
}

// Shader defines the interface for a loaded and parsed WGSL shader. It exposes the shader's
// unique key, expanded source code, entry point, bind group layout descriptors, vertex buffer
// layouts and pre-processor declarations needed for pipeline creation and resource wiring.
type Shader interface {
	// Key retrieves the unique identifier for this shader, used for caching and lookups.
	//
	// Returns:
	//   - string: the shader's unique key
	Key() string

	// Path retrieves the file the shader was read from, empty for in-memory sources.
	//
	// Returns:
	//   - string: the source path
	Path() string

	// Source retrieves the pre-processed WGSL shader source code.
	//
	// Returns:
	//   - string: the WGSL source code of the shader
	Source() string

	// Defines retrieves the define values the shader was built with.
	//
	// Returns:
	//   - map[string]string: define name to value
	Defines() map[string]string

	// BindGroupLayoutDescriptor retrieves the bind group layout descriptor for a group index.
	//
	// Parameters:
	//   - bindingKey: the group index
	//
	// Returns:
	//   - wgpu.BindGroupLayoutDescriptor: the descriptor, or an empty descriptor if the group is not declared
	BindGroupLayoutDescriptor(bindingKey int) wgpu.BindGroupLayoutDescriptor

	// BindGroupLayoutDescriptors retrieves all parsed bind group layout descriptors keyed by group index.
	//
	// Returns:
	//   - map[int]wgpu.BindGroupLayoutDescriptor: descriptors keyed by group index
	BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor

	// BindGroupVarName retrieves the variable name for a given group and binding index.
	//
	// Parameters:
	//   - group: the bind group index
	//   - binding: the binding index within the group
	//
	// Returns:
	//   - string: the variable name, or an empty string if not found
	BindGroupVarName(group, binding int) string

	// BindGroupFromVarName retrieves the binding index for a given group and variable name.
	//
	// Parameters:
	//   - group: the bind group index
	//   - varName: the variable name within the group
	//
	// Returns:
	//   - int: the binding index, or -1 if not found
	//   - bool: true if the variable name was found
	BindGroupFromVarName(group int, varName string) (int, bool)

	// BindGroupVarNames retrieves all variable names keyed by group and binding index.
	//
	// Returns:
	//   - map[int]map[int]string: variable names keyed by group and binding index
	BindGroupVarNames() map[int]map[int]string

	// VertexLayout retrieves the vertex buffer layout for a specific key.
	//
	// Parameters:
	//   - key: the integer key identifying the vertex layout
	//
	// Returns:
	//   - []wgpu.VertexBufferLayout: the layout, or nil if not set
	VertexLayout(key int) []wgpu.VertexBufferLayout

	// VertexLayouts retrieves all vertex buffer layouts associated with this shader.
	//
	// Returns:
	//   - map[int][]wgpu.VertexBufferLayout: layouts keyed by sequential index
	VertexLayouts() map[int][]wgpu.VertexBufferLayout

	// EntryPoint returns the entry point name for this shader.
	//
	// Returns:
	//   - string: the entry point name (e.g. "vs_main")
	EntryPoint() string

	// Module returns the wgpu.ShaderModuleDescriptor for this shader.
	//
	// Returns:
	//   - *wgpu.ShaderModuleDescriptor: the descriptor containing the WGSL code and label
	Module() *wgpu.ShaderModuleDescriptor

	// ShaderType returns the stage of the shader.
	//
	// Returns:
	//   - ShaderType: ShaderTypeVertex or ShaderTypeFragment
	ShaderType() ShaderType

	// Declarations returns the group and provider annotations parsed from the shader source.
	//
	// Returns:
	//   - []Annotation: the declarations in source order
	Declarations() []Annotation
}

var _ Shader = &shader{}

// NewShader reads a WGSL file and builds a Shader from it.
//
// Parameters:
//   - key: a unique identifier for the shader, used for caching and lookups
//   - shaderType: the stage the source targets
//   - sourcePath: the file path to read WGSL source from
//   - options: variadic list of ShaderBuilderOption functions
//
// Returns:
//   - Shader: the built shader
//   - error: a *BuildError if the file cannot be read, pre-processing fails, or no entry point exists
func NewShader(key string, shaderType ShaderType, sourcePath string, options ...ShaderBuilderOption) (Shader, error) {
	s := newShader(key, shaderType, options...)
	s.path = sourcePath
	if sourcePath == "" {
		return nil, s.buildError(BuildPhaseRead, "", errors.New("no source path provided"))
	}
	data, err := os.ReadFile(sourcePath)
	if err != nil {
		return nil, s.buildError(BuildPhaseRead, "", err)
	}
	if err := s.parseSource(string(data)); err != nil {
		return nil, err
	}
	return s, nil
}

// NewShaderFromSource builds a Shader from WGSL source already in memory.
//
// Parameters:
//   - key: a unique identifier for the shader
//   - shaderType: the stage the source targets
//   - source: the raw WGSL source, annotations included
//   - options: variadic list of ShaderBuilderOption functions
//
// Returns:
//   - Shader: the built shader
//   - error: a *BuildError if pre-processing fails or no entry point exists
func NewShaderFromSource(key string, shaderType ShaderType, source string, options ...ShaderBuilderOption) (Shader, error) {
	s := newShader(key, shaderType, options...)
	if err := s.parseSource(source); err != nil {
		return nil, err
	}
	return s, nil
}

func newShader(key string, shaderType ShaderType, options ...ShaderBuilderOption) *shader {
	s := &shader{
		key:                        key,
		shaderType:                 shaderType,
		defines:                    map[string]string{},
		bindGroupLayoutDescriptors: make(map[int]wgpu.BindGroupLayoutDescriptor),
		bindingVarNames:            make(map[int]map[int]string),
		vertexLayouts:              make(map[int][]wgpu.VertexBufferLayout),
	}
	for _, opt := range options {
		opt(s)
	}
	s.pp = NewPreProcessor(s.defines)
	return s
}

func (s *shader) Key() string {
	return s.key
}

func (s *shader) Path() string {
	return s.path
}

func (s *shader) Source() string {
	return s.source
}

func (s *shader) Defines() map[string]string {
	return s.defines
}

func (s *shader) VertexLayout(key int) []wgpu.VertexBufferLayout {
	return s.vertexLayouts[key]
}

func (s *shader) VertexLayouts() map[int][]wgpu.VertexBufferLayout {
	return s.vertexLayouts
}

func (s *shader) EntryPoint() string {
	return s.entryPoint
}

func (s *shader) BindGroupLayoutDescriptor(bindingKey int) wgpu.BindGroupLayoutDescriptor {
	return s.bindGroupLayoutDescriptors[bindingKey]
}

func (s *shader) BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor {
	return s.bindGroupLayoutDescriptors
}

func (s *shader) BindGroupVarName(group, binding int) string {
	if s.bindingVarNames[group] == nil {
		return ""
	}
	return s.bindingVarNames[group][binding]
}

func (s *shader) BindGroupFromVarName(group int, varName string) (int, bool) {
	if s.bindingVarNames[group] == nil {
		return -1, false
	}
	for binding, name := range s.bindingVarNames[group] {
		if name == varName {
			return binding, true
		}
	}
	return -1, false
}

func (s *shader) BindGroupVarNames() map[int]map[int]string {
	return s.bindingVarNames
}

func (s *shader) Module() *wgpu.ShaderModuleDescriptor {
	return s.module
}

func (s *shader) ShaderType() ShaderType {
	return s.shaderType
}

func (s *shader) Declarations() []Annotation {
	return s.pp.Declarations()
}

func (s *shader) buildError(phase BuildPhase, diagnostic string, err error) *BuildError {
	return &BuildError{
		Key:        s.key,
		Stage:      s.shaderType,
		Path:       s.path,
		Phase:      phase,
		Diagnostic: diagnostic,
		Err:        err,
	}
}

// parseSource pre-processes the raw source, builds the shader module descriptor, parses the
// entry point name, and extracts the vertex and bind group layouts.
func (s *shader) parseSource(raw string) error {
	processed, err := s.pp.Process(raw)
	if err != nil {
		diagnostic := ""
		var ae *annotationError
		if errors.As(err, &ae) {
			diagnostic = ae.text
		}
		return s.buildError(BuildPhasePreprocess, diagnostic, err)
	}
	s.source = processed
	s.module = &wgpu.ShaderModuleDescriptor{
		Label: s.key,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: s.source,
		},
	}
	s.entryPoint = parseEntryPoint(s.source, s.shaderType)
	if s.entryPoint == "" {
		return s.buildError(BuildPhaseReflect, "", ErrNoEntryPoint)
	}
	if s.shaderType == ShaderTypeVertex {
		s.vertexLayouts = parseVertexLayouts(s.source)
	}
	s.bindGroupLayoutDescriptors, s.bindingVarNames, err = parseBindGroupLayouts(s.source, s.shaderType.Visibility())
	if err != nil {
		diagnostic := ""
		var re *resourceError
		if errors.As(err, &re) {
			diagnostic = re.decl
		}
		return s.buildError(BuildPhaseReflect, diagnostic, err)
	}
	return nil
}
