package pipeline

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-forward/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPipelineDefaults(t *testing.T) {
	p := NewPipeline("default")

	assert.Equal(t, "default", p.PipelineKey())
	assert.True(t, p.DepthTestEnabled())
	assert.True(t, p.DepthWriteEnabled())
	assert.Equal(t, wgpu.CompareFunctionLess, p.DepthCompare())
	assert.False(t, p.BlendEnabled())
	assert.Equal(t, wgpu.CullModeNone, p.CullMode())
	assert.Equal(t, wgpu.PrimitiveTopologyTriangleList, p.Topology())
	assert.Equal(t, wgpu.FrontFaceCCW, p.FrontFace())
	assert.Equal(t, wgpu.ColorWriteMaskAll, p.WriteMask())
	assert.Nil(t, p.RenderPipeline())
	assert.Nil(t, p.Shader(shader.ShaderTypeVertex))
}

func TestLightingPassState(t *testing.T) {
	p := NewPipeline("lit-point",
		WithDepthCompare(wgpu.CompareFunctionEqual),
		WithDepthWriteEnabled(false),
		WithBlendEnabled(true),
		WithBlendState(AdditiveBlend()),
	)

	assert.Equal(t, wgpu.CompareFunctionEqual, p.DepthCompare())
	assert.False(t, p.DepthWriteEnabled())
	require.True(t, p.BlendEnabled())

	b := p.BlendState()
	assert.Equal(t, wgpu.BlendFactorOne, b.Color.SrcFactor)
	assert.Equal(t, wgpu.BlendFactorOne, b.Color.DstFactor)
	assert.Equal(t, wgpu.BlendOperationAdd, b.Color.Operation)
	// destination alpha is preserved
	assert.Equal(t, wgpu.BlendFactorZero, b.Alpha.SrcFactor)
	assert.Equal(t, wgpu.BlendFactorOne, b.Alpha.DstFactor)
}

func TestDepthOnlyAndLineStripOptions(t *testing.T) {
	depth := NewPipeline("depth",
		WithDepthCompare(wgpu.CompareFunctionLessEqual),
		WithWriteMask(wgpu.ColorWriteMaskNone),
	)
	assert.Equal(t, wgpu.ColorWriteMaskNone, depth.WriteMask())
	assert.Equal(t, wgpu.CompareFunctionLessEqual, depth.DepthCompare())

	path := NewPipeline("path",
		WithTopology(wgpu.PrimitiveTopologyLineStrip),
		WithCullMode(wgpu.CullModeBack),
		WithFrontFace(wgpu.FrontFaceCW),
		WithDepthTestEnabled(false),
	)
	assert.Equal(t, wgpu.PrimitiveTopologyLineStrip, path.Topology())
	assert.Equal(t, wgpu.CullModeBack, path.CullMode())
	assert.Equal(t, wgpu.FrontFaceCW, path.FrontFace())
	assert.False(t, path.DepthTestEnabled())
}

func TestShaderOptions(t *testing.T) {
	vs, err := shader.NewShaderFromSource("vs", shader.ShaderTypeVertex, "@vertex\nfn vs_main() {}\n")
	require.NoError(t, err)
	fs, err := shader.NewShaderFromSource("fs", shader.ShaderTypeFragment, "@fragment\nfn fs_main() {}\n")
	require.NoError(t, err)

	p := NewPipeline("pair", WithVertexShader(vs), WithFragmentShader(fs))
	assert.Same(t, vs, p.Shader(shader.ShaderTypeVertex))
	assert.Same(t, fs, p.Shader(shader.ShaderTypeFragment))
	assert.Nil(t, p.Shader(shader.ShaderType(9)))
}

func TestMergeBindGroupLayoutsOrsSharedBindings(t *testing.T) {
	vertex := map[int]wgpu.BindGroupLayoutDescriptor{
		0: {Entries: []wgpu.BindGroupLayoutEntry{
			{Binding: 0, Visibility: wgpu.ShaderStageVertex},
		}},
	}
	fragment := map[int]wgpu.BindGroupLayoutDescriptor{
		0: {Entries: []wgpu.BindGroupLayoutEntry{
			{Binding: 1, Visibility: wgpu.ShaderStageFragment},
			{Binding: 0, Visibility: wgpu.ShaderStageFragment},
		}},
		1: {Entries: []wgpu.BindGroupLayoutEntry{
			{Binding: 0, Visibility: wgpu.ShaderStageFragment},
		}},
	}

	merged := MergeBindGroupLayouts(vertex, fragment)
	require.Len(t, merged, 2)

	g0 := merged[0].Entries
	require.Len(t, g0, 2)
	assert.Equal(t, uint32(0), g0[0].Binding)
	assert.Equal(t, wgpu.ShaderStageVertex|wgpu.ShaderStageFragment, g0[0].Visibility)
	assert.Equal(t, uint32(1), g0[1].Binding)
	assert.Equal(t, wgpu.ShaderStageFragment, g0[1].Visibility)

	assert.Equal(t, fragment[1], merged[1])
}
