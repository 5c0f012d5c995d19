package frame

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-forward/common"
	"github.com/Carmen-Shannon/oxy-forward/engine/light"
	"github.com/Carmen-Shannon/oxy-forward/engine/model"
	"github.com/Carmen-Shannon/oxy-forward/engine/renderable"
	"github.com/Carmen-Shannon/oxy-forward/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-forward/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-forward/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-forward/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testShaderDir = "../../assets/shaders"

type drawCall struct {
	pipeline    string
	mesh        bind_group_provider.BindGroupProvider
	vertexCount int
	groups      []bind_group_provider.BindGroupProvider
}

type fakeDevice struct {
	pipelines  []string
	meshes     []bind_group_provider.BindGroupProvider
	bindGroups []bind_group_provider.BindGroupProvider
	samplers   int
	uploads    []string
	writes     []bind_group_provider.BufferWrite
	calls      []drawCall
	vertices   int

	begun, ended, presented int
}

var _ Device = &fakeDevice{}

func (d *fakeDevice) RegisterPipelines(pipelines ...pipeline.Pipeline) error {
	for _, p := range pipelines {
		d.pipelines = append(d.pipelines, p.PipelineKey())
	}
	return nil
}

func (d *fakeDevice) InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, vertexCount, indexCount int) error {
	provider.SetVertexCount(vertexCount)
	provider.SetIndexCount(indexCount)
	d.meshes = append(d.meshes, provider)
	return nil
}

func (d *fakeDevice) WriteVertices(provider bind_group_provider.BindGroupProvider, data []byte, vertexCount int) error {
	provider.SetVertexCount(vertexCount)
	d.vertices = vertexCount
	return nil
}

func (d *fakeDevice) InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor, bufferUsageOverrides map[int]wgpu.BufferUsage, bufferSizeOverrides map[int]uint64) error {
	d.bindGroups = append(d.bindGroups, provider)
	return nil
}

func (d *fakeDevice) UploadTexture(tex material.Texture) error {
	if tex.View() == nil {
		tex.SetView(&wgpu.TextureView{})
		d.uploads = append(d.uploads, tex.Name())
	}
	return nil
}

func (d *fakeDevice) InitSampler(provider bind_group_provider.BindGroupProvider, bindingKey int, samplerStagingData common.SamplerStagingData) error {
	d.samplers++
	return nil
}

func (d *fakeDevice) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	d.writes = append(d.writes, writes...)
}

func (d *fakeDevice) BeginFrame() error {
	d.begun++
	return nil
}

func (d *fakeDevice) DrawCall(pipelineKey string, meshProvider bind_group_provider.BindGroupProvider, bindGroups []bind_group_provider.BindGroupProvider) error {
	d.calls = append(d.calls, drawCall{
		pipeline: pipelineKey,
		mesh:     meshProvider,
		groups:   append([]bind_group_provider.BindGroupProvider(nil), bindGroups...),
	})
	return nil
}

func (d *fakeDevice) DrawVertices(pipelineKey string, meshProvider bind_group_provider.BindGroupProvider, vertexCount int, bindGroups []bind_group_provider.BindGroupProvider) error {
	d.calls = append(d.calls, drawCall{
		pipeline:    pipelineKey,
		mesh:        meshProvider,
		vertexCount: vertexCount,
		groups:      append([]bind_group_provider.BindGroupProvider(nil), bindGroups...),
	})
	return nil
}

func (d *fakeDevice) EndFrame() {
	d.ended++
}

func (d *fakeDevice) Present() {
	d.presented++
}

func testSkybox(t *testing.T) material.Texture {
	t.Helper()
	var faces [material.CubeFaceCount]common.TextureStagingData
	for i := range faces {
		faces[i] = common.SolidTexture(0, 0, 255, 255)
	}
	sky, err := material.NewCubeTexture(faces, material.WithName("sky"))
	require.NoError(t, err)
	return sky
}

func newTestBackend(t *testing.T) (*gpuBackend, *fakeDevice) {
	t.Helper()
	device := &fakeDevice{}
	b, err := NewGPUBackend(device, testSkybox(t), WithShaderDir(testShaderDir))
	require.NoError(t, err)
	return b.(*gpuBackend), device
}

func testRenderable(name string) *renderable.Renderable {
	mesh := model.NewModel(model.WithName(name), model.WithMesh(model.BuildSphere(1, 6, 6)))
	r := renderable.NewRenderable(renderable.WithName(name), renderable.WithMesh(mesh))
	return &r
}

func TestNewGPUBackendRejectsFlatSkybox(t *testing.T) {
	flat, err := material.NewTexture(common.SolidTexture(1, 2, 3, 255))
	require.NoError(t, err)

	_, err = NewGPUBackend(&fakeDevice{}, flat, WithShaderDir(testShaderDir))
	assert.ErrorIs(t, err, ErrSkyboxNotCube)
	_, err = NewGPUBackend(&fakeDevice{}, nil)
	assert.ErrorIs(t, err, ErrSkyboxNotCube)
}

func TestNewGPUBackendMissingShaderDir(t *testing.T) {
	_, err := NewGPUBackend(&fakeDevice{}, testSkybox(t), WithShaderDir("does/not/exist"))
	assert.Error(t, err)
}

func TestNewGPUBackendResolvesPassGroups(t *testing.T) {
	b, device := newTestBackend(t)

	assert.ElementsMatch(t, []string{
		PipelineDepth, PipelinePoint, PipelineSpot, PipelineDirectional,
		PipelineReflective, PipelinePath, PipelineMarkers, PipelineSkybox,
	}, device.pipelines)
	assert.ElementsMatch(t, []string{"sky", "fallback diffuse", "fallback normal"}, device.uploads)

	cases := map[string][]shader.AnnotationArg{
		PipelineDepth:       {shader.AnnotationArgObject},
		PipelinePoint:       {shader.AnnotationArgObject, shader.AnnotationArgMaterial},
		PipelineSpot:        {shader.AnnotationArgObject, shader.AnnotationArgMaterial},
		PipelineDirectional: {shader.AnnotationArgObject, shader.AnnotationArgMaterial},
		PipelineReflective:  {shader.AnnotationArgObject, shader.AnnotationArgEnvironment},
		PipelinePath:        {shader.AnnotationArgPath},
		PipelineMarkers:     {shader.AnnotationArgMarkers},
		PipelineSkybox:      {shader.AnnotationArgCamera, shader.AnnotationArgEnvironment},
	}
	for key, want := range cases {
		t.Run(key, func(t *testing.T) {
			gp, ok := b.pipelines[key]
			require.True(t, ok)
			assert.Equal(t, want, gp.groups)
		})
	}

	// the skybox and reflective environments both bind the skybox cube
	env := b.pipelines[PipelineSkybox].fixed[1]
	require.NotNil(t, env)
	assert.Same(t, b.skybox.View(), env.TextureView(0))

	// the skybox cube is uploaded once at construction
	require.Len(t, device.meshes, 1)
	assert.Equal(t, 36, device.meshes[0].VertexCount())
}

func TestDrawOutsideFrame(t *testing.T) {
	b, _ := newTestBackend(t)
	r := testRenderable("ball")

	assert.ErrorIs(t, b.Draw(Draw{Pass: PassDepth, Renderable: r}), ErrFrameNotStarted)
	assert.ErrorIs(t, b.DrawSkybox(common.IdentityMat4(), [3]float32{}), ErrFrameNotStarted)
	assert.ErrorIs(t, b.EndFrame(), ErrFrameNotStarted)
}

func TestDrawUsesOneObjectSlotPerDraw(t *testing.T) {
	b, device := newTestBackend(t)
	a, c := testRenderable("a"), testRenderable("c")

	require.NoError(t, b.BeginFrame())
	require.NoError(t, b.Draw(Draw{Pass: PassDepth, Renderable: a}))
	require.NoError(t, b.Draw(Draw{Pass: PassDepth, Renderable: c}))
	require.NoError(t, b.EndFrame())

	require.Len(t, device.calls, 2)
	assert.NotSame(t, device.calls[0].groups[0], device.calls[1].groups[0])
	assert.Equal(t, 1, device.presented)
	assert.Equal(t, 1, device.ended)
	pooled := len(b.pipelines[PipelineDepth].pool.slots)
	assert.Equal(t, 2, pooled)

	// the next frame rewinds the pool instead of allocating
	initialised := len(device.bindGroups)
	require.NoError(t, b.BeginFrame())
	require.NoError(t, b.Draw(Draw{Pass: PassDepth, Renderable: a}))
	require.NoError(t, b.EndFrame())
	assert.Equal(t, initialised, len(device.bindGroups))
	assert.Same(t, device.calls[0].groups[0], device.calls[2].groups[0])

	// each mesh is uploaded once
	assert.NotNil(t, a.Mesh.MeshProvider())
	assert.Len(t, device.meshes, 3)
}

func TestDrawWritesObjectAndLightUniforms(t *testing.T) {
	b, device := newTestBackend(t)
	r := testRenderable("ball")
	points := []light.PointLight{light.NewPointLight(), light.NewPointLight()}

	require.NoError(t, b.BeginFrame())
	require.NoError(t, b.Draw(Draw{Pass: PassPointLights, Renderable: r, Points: points}))

	require.Len(t, device.writes, 2)
	assert.Equal(t, 0, device.writes[0].Binding)
	assert.Len(t, device.writes[0].Data, model.GPUObjectUniformSize)
	assert.Equal(t, 1, device.writes[1].Binding)
	assert.Len(t, device.writes[1].Data, light.GPUPointLightBatchSize)

	require.Len(t, device.calls, 1)
	call := device.calls[0]
	assert.Equal(t, PipelinePoint, call.pipeline)
	require.Len(t, call.groups, 2)
	assert.Same(t, device.writes[0].Provider, call.groups[0])
}

func TestMaterialProvidersAreCachedWithFallbacks(t *testing.T) {
	b, device := newTestBackend(t)
	plain := testRenderable("plain")

	diffuse, err := material.NewTexture(common.SolidTexture(10, 20, 30, 255), material.WithName("bricks"))
	require.NoError(t, err)
	textured := testRenderable("textured")
	textured.DiffuseMap = diffuse

	require.NoError(t, b.BeginFrame())
	for _, r := range []*renderable.Renderable{plain, textured, plain} {
		require.NoError(t, b.Draw(Draw{Pass: PassSpotLights, Renderable: r}))
	}
	require.NoError(t, b.EndFrame())

	require.Len(t, device.calls, 3)
	plainMat, texturedMat := device.calls[0].groups[1], device.calls[1].groups[1]
	assert.Same(t, plainMat, device.calls[2].groups[1])
	assert.NotSame(t, plainMat, texturedMat)

	assert.Same(t, b.fallbackDiffuse.View(), plainMat.TextureView(0))
	assert.Same(t, b.fallbackNormal.View(), plainMat.TextureView(1))
	assert.Same(t, diffuse.View(), texturedMat.TextureView(0))
	assert.Same(t, b.fallbackNormal.View(), texturedMat.TextureView(1))
	assert.Contains(t, device.uploads, "bricks")
}

func TestDrawMarkersAndOverlays(t *testing.T) {
	b, device := newTestBackend(t)

	require.NoError(t, b.BeginFrame())
	// an empty marker list draws nothing
	require.NoError(t, b.DrawMarkers(nil, [2]float32{800, 600}, 10))
	assert.Empty(t, device.calls)

	markers := []Marker{{ClipPos: [4]float32{0, 0, 0, 1}}, {ClipPos: [4]float32{1, 1, 0, 1}}}
	require.NoError(t, b.DrawMarkers(markers, [2]float32{800, 600}, 10))
	require.NoError(t, b.DrawPath(model.BuildLineStrip("path", [][3]float32{{0, 0, 0}, {1, 0, 0}}), common.IdentityMat4(), DefaultPathColor))
	require.NoError(t, b.DrawSkybox(common.IdentityMat4(), [3]float32{0, 1, 0}))
	require.NoError(t, b.EndFrame())

	require.Len(t, device.calls, 3)
	assert.Equal(t, PipelineMarkers, device.calls[0].pipeline)
	assert.Equal(t, 2*MarkerVerticesPerQuad, device.calls[0].vertexCount)
	assert.Equal(t, 2*MarkerVerticesPerQuad, device.vertices)
	assert.Equal(t, PipelinePath, device.calls[1].pipeline)
	assert.Equal(t, PipelineSkybox, device.calls[2].pipeline)
	assert.Same(t, b.skyboxMesh.MeshProvider(), device.calls[2].mesh)
	require.Len(t, device.calls[2].groups, 2)

	sizes := make([]int, 0, len(device.writes))
	for _, w := range device.writes {
		sizes = append(sizes, len(w.Data))
	}
	assert.Equal(t, []int{light.GPUMarkerParamsSize, 80, 80}, sizes)
}

func TestBeginFrameTwiceFails(t *testing.T) {
	b, _ := newTestBackend(t)
	require.NoError(t, b.BeginFrame())
	assert.Error(t, b.BeginFrame())
}
