package shader

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const litFragmentSource = `//@oxy:define MAX_LIGHTS
//@oxy:include $LIGHT
//@oxy:include $LIGHT_BATCH
//@oxy:include object_uniform
//@oxy:include shading_common
//@oxy:include $LIGHT_SHADING

//@oxy:group 0 0 storage_uniform object object_uniform
//@oxy:group 0 1 storage_uniform lights $LIGHT_BATCH

//@oxy:provider 1 0 material diffuse_texture
@group(1) @binding(0) var diffuse_map: texture_2d<f32>;
//@oxy:provider 1 2 material material_sampler
@group(1) @binding(2) var material_sampler: sampler;

@fragment
fn fs_main(@location(0) world_pos: vec3<f32>) -> @location(0) vec4<f32> {
    return vec4<f32>(world_pos, 1.0);
}
`

func pointDefines() map[string]string {
	return map[string]string{
		"MAX_LIGHTS":    "4",
		"LIGHT":         "point_light",
		"LIGHT_BATCH":   "point_light_batch",
		"LIGHT_SHADING": "point_light_shading",
	}
}

func TestDefinesSpecializeLitShader(t *testing.T) {
	s, err := NewShaderFromSource("lit-point-frag", ShaderTypeFragment, litFragmentSource, WithDefines(pointDefines()))
	require.NoError(t, err)

	src := s.Source()
	assert.Contains(t, src, "const MAX_LIGHTS = 4;")
	assert.Contains(t, src, "struct PointLight {")
	assert.Contains(t, src, "struct PointLightBatch {")
	assert.Contains(t, src, "fn lightContribution(light: PointLight")
	assert.Contains(t, src, "@group(0) @binding(1) var<uniform> lights: PointLightBatch;")
	assert.NotContains(t, src, "@oxy:")
	assert.Equal(t, "fs_main", s.EntryPoint())
	assert.Equal(t, "4", s.Defines()["MAX_LIGHTS"])
}

func TestLightBatchBindingSizeFollowsMaxLights(t *testing.T) {
	cases := []struct {
		light, batch, shading string
		max                   string
		size                  uint64
	}{
		{"point_light", "point_light_batch", "point_light_shading", "4", 4*48 + 16},
		{"spot_light", "spot_light_batch", "spot_light_shading", "4", 4*64 + 16},
		{"directional_light", "directional_light_batch", "directional_light_shading", "1", 48 + 16},
		{"point_light", "point_light_batch", "point_light_shading", "2", 2*48 + 16},
	}
	for _, c := range cases {
		s, err := NewShaderFromSource("lit", ShaderTypeFragment, litFragmentSource, WithDefines(map[string]string{
			"MAX_LIGHTS":    c.max,
			"LIGHT":         c.light,
			"LIGHT_BATCH":   c.batch,
			"LIGHT_SHADING": c.shading,
		}))
		require.NoError(t, err, c.batch)

		desc := s.BindGroupLayoutDescriptor(0)
		require.Len(t, desc.Entries, 2, c.batch)
		assert.Equal(t, uint64(224), desc.Entries[0].Buffer.MinBindingSize, c.batch)
		assert.Equal(t, c.size, desc.Entries[1].Buffer.MinBindingSize, c.batch)
		assert.Equal(t, wgpu.BufferBindingTypeUniform, desc.Entries[1].Buffer.Type)
		assert.Equal(t, wgpu.ShaderStageFragment, desc.Entries[1].Visibility)
	}
}

func TestMaterialBindingsAndDeclarations(t *testing.T) {
	s, err := NewShaderFromSource("lit", ShaderTypeFragment, litFragmentSource, WithDefines(pointDefines()))
	require.NoError(t, err)

	desc := s.BindGroupLayoutDescriptor(1)
	require.Len(t, desc.Entries, 2)
	assert.Equal(t, wgpu.TextureViewDimension2D, desc.Entries[0].Texture.ViewDimension)
	assert.Equal(t, wgpu.TextureSampleTypeFloat, desc.Entries[0].Texture.SampleType)
	assert.Equal(t, uint32(2), desc.Entries[1].Binding)
	assert.Equal(t, wgpu.SamplerBindingTypeFiltering, desc.Entries[1].Sampler.Type)

	binding, ok := s.BindGroupFromVarName(0, "lights")
	assert.True(t, ok)
	assert.Equal(t, 1, binding)
	assert.Equal(t, "diffuse_map", s.BindGroupVarName(1, 0))

	decls := s.Declarations()
	require.Len(t, decls, 4)
	assert.Equal(t, AnnotationTypeBindingGroup, decls[1].Type)
	assert.Equal(t, AnnotationArg("point_light_batch"), decls[1].Args[2])
	assert.Equal(t, AnnotationTypeProvider, decls[2].Type)
	assert.Equal(t, []AnnotationArg{AnnotationArgMaterial, AnnotationArgDiffuseTexture}, decls[2].Args)
	assert.Equal(t, 1, *decls[3].Group)
	assert.Equal(t, 2, *decls[3].Binding)
}

func TestDuplicateIncludeIsEmittedOnce(t *testing.T) {
	src := "//@oxy:include point_light\n//@oxy:include point_light\n@fragment\nfn fs_main() {}\n"
	s, err := NewShaderFromSource("dup", ShaderTypeFragment, src)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(s.Source(), "struct PointLight {"))
}

func TestUndefinedDefineIsBuildError(t *testing.T) {
	_, err := NewShaderFromSource("lit", ShaderTypeFragment, litFragmentSource, WithDefine("MAX_LIGHTS", "4"))
	require.Error(t, err)

	be, ok := AsBuildError(err)
	require.True(t, ok)
	assert.Equal(t, BuildPhasePreprocess, be.Phase)
	assert.Equal(t, "lit", be.Key)
	assert.Equal(t, ShaderTypeFragment, be.Stage)
	assert.Equal(t, "//@oxy:include $LIGHT", be.Diagnostic)
	assert.Contains(t, err.Error(), `undefined define "LIGHT"`)
}

func TestDefineWithoutValueIsBuildError(t *testing.T) {
	src := "//@oxy:define MAX_LIGHTS\n@fragment\nfn fs_main() {}\n"
	_, err := NewShaderFromSource("k", ShaderTypeFragment, src)

	be, ok := AsBuildError(err)
	require.True(t, ok)
	assert.Equal(t, BuildPhasePreprocess, be.Phase)
	assert.Contains(t, be.Error(), "preprocess failed")
}

func TestMalformedAnnotations(t *testing.T) {
	cases := []string{
		"//@oxy:include nothing_registered",
		"//@oxy:group 0 0 storage_uniform object",
		"//@oxy:group x 0 storage_uniform object object_uniform",
		"//@oxy:group 0 0 private object object_uniform",
		"//@oxy:provider 1 0 nobody",
		"//@oxy:provider 1 0 material not_a_role",
		"//@oxy:define 4LIGHTS",
		"//@oxy:frobnicate",
		"//@oxy:",
	}
	for _, line := range cases {
		_, err := NewShaderFromSource("bad", ShaderTypeVertex, line+"\n@vertex\nfn vs_main() {}\n")
		be, ok := AsBuildError(err)
		if assert.True(t, ok, line) {
			assert.Equal(t, BuildPhasePreprocess, be.Phase, line)
			assert.Equal(t, line, be.Diagnostic, line)
		}
	}
}

func TestMissingEntryPoint(t *testing.T) {
	_, err := NewShaderFromSource("frag-as-vert", ShaderTypeVertex, "@fragment\nfn fs_main() {}\n")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoEntryPoint))

	be, ok := AsBuildError(err)
	require.True(t, ok)
	assert.Equal(t, BuildPhaseReflect, be.Phase)
	assert.Equal(t, ShaderTypeVertex, be.Stage)
}

func TestMissingFileIsReadError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.wgsl")
	_, err := NewShader("missing", ShaderTypeVertex, path)

	be, ok := AsBuildError(err)
	require.True(t, ok)
	assert.Equal(t, BuildPhaseRead, be.Phase)
	assert.Equal(t, path, be.Path)
	assert.Contains(t, err.Error(), path)

	_, err = NewShader("empty", ShaderTypeVertex, "")
	be, ok = AsBuildError(err)
	require.True(t, ok)
	assert.Equal(t, BuildPhaseRead, be.Phase)
}

func TestVertexLayoutFromIncludedInput(t *testing.T) {
	src := `//@oxy:include vertex
//@oxy:include object_uniform
//@oxy:group 0 0 storage_uniform object object_uniform

struct VertexOutput {
    @builtin(position) clip: vec4<f32>,
    @location(0) uv: vec2<f32>,
};

@vertex
fn vs_main(in: VertexInput) -> VertexOutput {
    var out: VertexOutput;
    out.clip = object.mvp * vec4<f32>(in.position, 1.0);
    out.uv = in.uv;
    return out;
}
`
	s, err := NewShaderFromSource("depth-vert", ShaderTypeVertex, src)
	require.NoError(t, err)
	assert.Equal(t, "vs_main", s.EntryPoint())

	layouts := s.VertexLayouts()
	require.Len(t, layouts, 1)
	layout := s.VertexLayout(0)[0]
	assert.Equal(t, uint64(48), layout.ArrayStride)
	require.Len(t, layout.Attributes, 4)
	offsets := []uint64{}
	for _, a := range layout.Attributes {
		offsets = append(offsets, a.Offset)
	}
	assert.Equal(t, []uint64{0, 12, 24, 32}, offsets)
	assert.Equal(t, wgpu.VertexFormatFloat32x4, layout.Attributes[3].Format)
	assert.Equal(t, wgpu.ShaderStageVertex, s.BindGroupLayoutDescriptor(0).Entries[0].Visibility)
}

func TestPositionAndMarkerVertexStrides(t *testing.T) {
	for _, c := range []struct {
		include string
		stride  uint64
	}{
		{"position_vertex", 12},
		{"marker_vertex", 36},
	} {
		src := "//@oxy:include " + c.include + "\n@vertex\nfn vs_main() {}\n"
		s, err := NewShaderFromSource(c.include, ShaderTypeVertex, src)
		require.NoError(t, err)
		assert.Equal(t, c.stride, s.VertexLayout(0)[0].ArrayStride, c.include)
	}
}

func TestResolveArrayCounts(t *testing.T) {
	src := "const MAX_LIGHTS = 4;\nconst N: u32 = 2u;\nstruct A { xs: array<f32, MAX_LIGHTS>, ys: array<f32, N>, zs: array<f32, OTHER>, };"
	out := resolveArrayCounts(src)
	assert.Contains(t, out, "array<f32, 4>")
	assert.Contains(t, out, "array<f32, 2>")
	assert.Contains(t, out, "array<f32, OTHER>")
}

func TestShaderTypeStrings(t *testing.T) {
	assert.Equal(t, "vertex", ShaderTypeVertex.String())
	assert.Equal(t, "fragment", ShaderTypeFragment.String())
	assert.Equal(t, wgpu.ShaderStageNone, ShaderType(7).Visibility())
}

func TestEnvironmentBindingsUseCubeDimension(t *testing.T) {
	src := `@group(2) @binding(0) var skybox: texture_cube<f32>;
@group(2) @binding(1) var skybox_sampler: sampler;
@group(2) @binding(2) var diffuse: texture_2d<f32>;

@fragment
fn fs_main() -> @location(0) vec4<f32> {
    return vec4<f32>(1.0);
}
`
	s, err := NewShaderFromSource("env", ShaderTypeFragment, src)
	require.NoError(t, err)

	desc := s.BindGroupLayoutDescriptor(2)
	require.Len(t, desc.Entries, 3)
	assert.Equal(t, wgpu.TextureViewDimensionCube, desc.Entries[0].Texture.ViewDimension)
	assert.Equal(t, wgpu.TextureSampleTypeFloat, desc.Entries[0].Texture.SampleType)
	assert.Equal(t, wgpu.SamplerBindingTypeFiltering, desc.Entries[1].Sampler.Type)
	assert.Equal(t, wgpu.TextureViewDimension2D, desc.Entries[2].Texture.ViewDimension)
}

func TestUnsupportedBindingsFailReflection(t *testing.T) {
	decls := []string{
		"@group(0) @binding(0) var shadow: texture_depth_2d;",
		"@group(0) @binding(0) var layers: texture_2d_array<f32>;",
		"@group(0) @binding(0) var ids: texture_2d<u32>;",
		"@group(0) @binding(0) var cmp: sampler_comparison;",
		"@group(0) @binding(0) var<storage, read_write> out: array<f32>;",
	}
	for _, decl := range decls {
		src := decl + "\n@fragment\nfn fs_main() {}\n"
		_, err := NewShaderFromSource("bad", ShaderTypeFragment, src)
		require.Error(t, err, decl)
		assert.ErrorIs(t, err, ErrUnsupportedResource, decl)

		be, ok := AsBuildError(err)
		require.True(t, ok, decl)
		assert.Equal(t, BuildPhaseReflect, be.Phase, decl)
		assert.Equal(t, decl, be.Diagnostic)
	}
}

func TestReadOnlyStorageBinding(t *testing.T) {
	src := "struct Item { v: vec4<f32> }\n@group(0) @binding(0) var<storage, read> items: array<Item>;\n@fragment\nfn fs_main() {}\n"
	s, err := NewShaderFromSource("storage", ShaderTypeFragment, src)
	require.NoError(t, err)

	desc := s.BindGroupLayoutDescriptor(0)
	require.Len(t, desc.Entries, 1)
	assert.Equal(t, wgpu.BufferBindingTypeReadOnlyStorage, desc.Entries[0].Buffer.Type)
	assert.Equal(t, uint64(16), desc.Entries[0].Buffer.MinBindingSize)
}
