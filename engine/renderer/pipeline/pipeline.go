package pipeline

import (
	"github.com/Carmen-Shannon/oxy-forward/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// pipeline is the implementation of the Pipeline interface.
// It holds the shader pair, the fixed-function state used at creation and the created wgpu render pipeline.
type pipeline struct {
	// pipelineKey is the unique identifier for this pipeline, used for caching and lookups
	pipelineKey string

	// vertexShader and fragmentShader are required before the renderer can create the pipeline.
	vertexShader, fragmentShader shader.Shader

	renderPipeline *wgpu.RenderPipeline

	depthTestEnabled  bool
	depthWriteEnabled bool
	depthCompare      wgpu.CompareFunction
	blendEnabled      bool
	cullMode          wgpu.CullMode
	topology          wgpu.PrimitiveTopology
	frontFace         wgpu.FrontFace
	writeMask         wgpu.ColorWriteMask
	blendState        *wgpu.BlendState
}

// Pipeline defines the interface for a render pipeline: a vertex and fragment shader pair plus the depth,
// blend, cull and topology state the pipeline is created with. Each frame pass owns one Pipeline.
type Pipeline interface {
	// PipelineKey returns the unique key associated with this pipeline, used for caching and lookups.
	//
	// Returns:
	//   - string: the unique key for this pipeline
	PipelineKey() string

	// Shader retrieves the shader associated with the specified stage if it exists, nil otherwise.
	//
	// Parameters:
	//   - shaderType: the stage of the shader to retrieve
	//
	// Returns:
	//   - shader.Shader: the shader for the stage, or nil if not set
	Shader(shaderType shader.ShaderType) shader.Shader

	// RenderPipeline returns the created wgpu pipeline, nil until the renderer has initialized it.
	//
	// Returns:
	//   - *wgpu.RenderPipeline: the underlying render pipeline
	RenderPipeline() *wgpu.RenderPipeline

	// BindGroupLayoutDescriptors returns the bind group layouts of both shader stages merged per group, with
	// visibility ORed for bindings both stages declare. Bind groups drawn with this pipeline must be created from
	// these descriptors.
	//
	// Returns:
	//   - map[int]wgpu.BindGroupLayoutDescriptor: the merged descriptors keyed by group index
	BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor

	// SetRenderPipeline stores the created wgpu pipeline.
	//
	// Parameters:
	//   - p: the WebGPU render pipeline to set
	SetRenderPipeline(p *wgpu.RenderPipeline)

	// DepthTestEnabled returns whether a depth-stencil state is attached to this pipeline.
	//
	// Returns:
	//   - bool: true if depth testing is enabled, false otherwise
	DepthTestEnabled() bool

	// DepthWriteEnabled returns whether fragments passing the depth test write their depth.
	//
	// Returns:
	//   - bool: true if depth writing is enabled, false otherwise
	DepthWriteEnabled() bool

	// DepthCompare returns the depth comparison function.
	//
	// Returns:
	//   - wgpu.CompareFunction: the comparison applied against the stored depth
	DepthCompare() wgpu.CompareFunction

	// BlendEnabled returns whether BlendState is applied to the color target.
	//
	// Returns:
	//   - bool: true if blending is enabled, false otherwise
	BlendEnabled() bool

	// BlendState returns the blend state configured for this pipeline.
	//
	// Returns:
	//   - *wgpu.BlendState: the blend state, used only when BlendEnabled is true
	BlendState() *wgpu.BlendState

	// CullMode returns the cull mode configured for this pipeline.
	//
	// Returns:
	//   - wgpu.CullMode: the cull mode for this pipeline
	CullMode() wgpu.CullMode

	// Topology returns the primitive topology configured for this pipeline.
	//
	// Returns:
	//   - wgpu.PrimitiveTopology: the primitive topology for this pipeline
	Topology() wgpu.PrimitiveTopology

	// FrontFace returns the front face winding order configured for this pipeline.
	//
	// Returns:
	//   - wgpu.FrontFace: the front face winding order for this pipeline
	FrontFace() wgpu.FrontFace

	// WriteMask returns the color write mask configured for this pipeline.
	//
	// Returns:
	//   - wgpu.ColorWriteMask: the color write mask for this pipeline
	WriteMask() wgpu.ColorWriteMask
}

var _ Pipeline = &pipeline{}

// NewPipeline creates a new render Pipeline. Defaults: depth test and write on with LESS, no blending,
// no culling, triangle list, CCW front faces and all color channels written.
//
// Parameters:
//   - pipelineKey: the unique key for this pipeline
//   - opts: a variadic list of PipelineBuilderOption functions to configure the pipeline
//
// Returns:
//   - Pipeline: a new Pipeline instance with the specified configuration
func NewPipeline(pipelineKey string, opts ...PipelineBuilderOption) Pipeline {
	p := &pipeline{
		pipelineKey:       pipelineKey,
		depthTestEnabled:  true,
		depthWriteEnabled: true,
		depthCompare:      wgpu.CompareFunctionLess,
		cullMode:          wgpu.CullModeNone,
		topology:          wgpu.PrimitiveTopologyTriangleList,
		frontFace:         wgpu.FrontFaceCCW,
		writeMask:         wgpu.ColorWriteMaskAll,
		blendState:        AlphaBlend(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// AlphaBlend returns the conventional source-over blend state.
//
// Returns:
//   - *wgpu.BlendState: SrcAlpha / OneMinusSrcAlpha blending
func AlphaBlend() *wgpu.BlendState {
	return &wgpu.BlendState{
		Color: wgpu.BlendComponent{
			SrcFactor: wgpu.BlendFactorSrcAlpha,
			DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
			Operation: wgpu.BlendOperationAdd,
		},
		Alpha: wgpu.BlendComponent{
			SrcFactor: wgpu.BlendFactorOne,
			DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
			Operation: wgpu.BlendOperationAdd,
		},
	}
}

// AdditiveBlend returns the blend state used by the lighting passes: color is summed ONE + ONE and the
// destination alpha is kept as is.
//
// Returns:
//   - *wgpu.BlendState: the additive blend state
func AdditiveBlend() *wgpu.BlendState {
	return &wgpu.BlendState{
		Color: wgpu.BlendComponent{
			SrcFactor: wgpu.BlendFactorOne,
			DstFactor: wgpu.BlendFactorOne,
			Operation: wgpu.BlendOperationAdd,
		},
		Alpha: wgpu.BlendComponent{
			SrcFactor: wgpu.BlendFactorZero,
			DstFactor: wgpu.BlendFactorOne,
			Operation: wgpu.BlendOperationAdd,
		},
	}
}

func (p *pipeline) PipelineKey() string {
	return p.pipelineKey
}

func (p *pipeline) Shader(shaderType shader.ShaderType) shader.Shader {
	switch shaderType {
	case shader.ShaderTypeVertex:
		return p.vertexShader
	case shader.ShaderTypeFragment:
		return p.fragmentShader
	default:
		return nil
	}
}

func (p *pipeline) RenderPipeline() *wgpu.RenderPipeline {
	return p.renderPipeline
}

func (p *pipeline) SetRenderPipeline(rp *wgpu.RenderPipeline) {
	p.renderPipeline = rp
}

func (p *pipeline) DepthTestEnabled() bool {
	return p.depthTestEnabled
}

func (p *pipeline) DepthWriteEnabled() bool {
	return p.depthWriteEnabled
}

func (p *pipeline) DepthCompare() wgpu.CompareFunction {
	return p.depthCompare
}

func (p *pipeline) BlendEnabled() bool {
	return p.blendEnabled
}

func (p *pipeline) BlendState() *wgpu.BlendState {
	return p.blendState
}

func (p *pipeline) CullMode() wgpu.CullMode {
	return p.cullMode
}

func (p *pipeline) Topology() wgpu.PrimitiveTopology {
	return p.topology
}

func (p *pipeline) FrontFace() wgpu.FrontFace {
	return p.frontFace
}

func (p *pipeline) WriteMask() wgpu.ColorWriteMask {
	return p.writeMask
}
