package frame

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"

	"github.com/Carmen-Shannon/oxy-forward/common"
	"github.com/Carmen-Shannon/oxy-forward/engine/bezier"
	"github.com/Carmen-Shannon/oxy-forward/engine/camera"
	"github.com/Carmen-Shannon/oxy-forward/engine/light"
	"github.com/Carmen-Shannon/oxy-forward/engine/model"
	"github.com/Carmen-Shannon/oxy-forward/engine/renderable"
	"github.com/Carmen-Shannon/oxy-forward/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-forward/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-forward/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-forward/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// DefaultShaderDir is where NewGPUBackend looks for the pass shaders unless WithShaderDir is given.
const DefaultShaderDir = "assets/shaders"

// Pipeline keys, one per pass. The three lighting passes share one shader source specialized by defines.
const (
	PipelineDepth       = "depth"
	PipelinePoint       = "lit-point"
	PipelineSpot        = "lit-spot"
	PipelineDirectional = "lit-directional"
	PipelineReflective  = "reflective"
	PipelinePath        = "path"
	PipelineMarkers     = "markers"
	PipelineSkybox      = "skybox"
)

// ErrSkyboxNotCube is returned by NewGPUBackend when the skybox texture is not a cube map.
var ErrSkyboxNotCube = errors.New("skybox texture must be a cube map")

// Device is the part of renderer.Renderer the GPU backend drives.
type Device interface {
	RegisterPipelines(pipelines ...pipeline.Pipeline) error
	InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, vertexCount, indexCount int) error
	WriteVertices(provider bind_group_provider.BindGroupProvider, data []byte, vertexCount int) error
	InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor, bufferUsageOverrides map[int]wgpu.BufferUsage, bufferSizeOverrides map[int]uint64) error
	UploadTexture(tex material.Texture) error
	InitSampler(provider bind_group_provider.BindGroupProvider, bindingKey int, samplerStagingData common.SamplerStagingData) error
	WriteBuffers(writes []bind_group_provider.BufferWrite)
	BeginFrame() error
	DrawCall(pipelineKey string, meshProvider bind_group_provider.BindGroupProvider, bindGroups []bind_group_provider.BindGroupProvider) error
	DrawVertices(pipelineKey string, meshProvider bind_group_provider.BindGroupProvider, vertexCount int, bindGroups []bind_group_provider.BindGroupProvider) error
	EndFrame()
	Present()
}

// gpuPipeline is a registered pipeline plus what the backend resolved from its shader declarations.
type gpuPipeline struct {
	pipeline pipeline.Pipeline
	layouts  map[int]wgpu.BindGroupLayoutDescriptor

	// groups[g] is the provider identity that fills @group(g)
	groups []shader.AnnotationArg

	// fixed holds the providers of groups that do not change per draw (camera, path, markers, environment)
	fixed map[int]bind_group_provider.BindGroupProvider

	// pool hands out one object group per draw; nil for pipelines without an object group
	pool *slotPool
}

func (gp *gpuPipeline) key() string {
	return gp.pipeline.PipelineKey()
}

// slotPool recycles per-draw bind groups. Queue writes land before the frame's single render pass executes, so two
// draws in one frame can never share a uniform buffer; the pool grows to the largest draw count seen and is rewound
// every frame.
type slotPool struct {
	group int
	slots []bind_group_provider.BindGroupProvider
	next  int
}

type materialKey struct {
	pipeline        string
	diffuse, normal material.Texture
}

type gpuBackend struct {
	device    Device
	shaderDir string

	skybox                          material.Texture
	fallbackDiffuse, fallbackNormal material.Texture

	pipelines map[string]*gpuPipeline
	materials map[materialKey]bind_group_provider.BindGroupProvider

	skyboxMesh model.Model
	markerMesh bind_group_provider.BindGroupProvider

	inFrame bool

	// uniform names already reported missing, keyed by pipeline key and name
	missing map[string]bool

	writes     []bind_group_provider.BufferWrite
	bindGroups []bind_group_provider.BindGroupProvider
	markerData []byte
}

var _ Backend = &gpuBackend{}

// NewGPUBackend builds and registers one pipeline per pass, uploads the skybox and the fallback material maps, and
// returns a Backend that draws through device.
//
// Parameters:
//   - device: the renderer to draw with
//   - skybox: the environment cube map sampled by the skybox and reflective passes
//   - options: variadic list of GPUBackendBuilderOption functions
//
// Returns:
//   - Backend: the backend
//   - error: a *shader.BuildError if a pass shader fails to build, ErrSkyboxNotCube, or an upload error
func NewGPUBackend(device Device, skybox material.Texture, options ...GPUBackendBuilderOption) (Backend, error) {
	if skybox == nil || skybox.Kind() != material.TextureCube {
		return nil, ErrSkyboxNotCube
	}

	b := &gpuBackend{
		device:    device,
		shaderDir: DefaultShaderDir,
		skybox:    skybox,
		pipelines: make(map[string]*gpuPipeline),
		materials: make(map[materialKey]bind_group_provider.BindGroupProvider),
		missing:   make(map[string]bool),
	}
	for _, opt := range options {
		opt(b)
	}

	var err error
	b.fallbackDiffuse, err = material.NewTexture(common.SolidTexture(255, 255, 255, 255), material.WithName("fallback diffuse"))
	if err != nil {
		return nil, err
	}
	// flat tangent space normal (0, 0, 1)
	b.fallbackNormal, err = material.NewTexture(common.SolidTexture(128, 128, 255, 255), material.WithName("fallback normal"), material.WithLinear())
	if err != nil {
		return nil, err
	}
	for _, tex := range []material.Texture{b.skybox, b.fallbackDiffuse, b.fallbackNormal} {
		if err := b.device.UploadTexture(tex); err != nil {
			return nil, err
		}
	}

	pipelines, err := b.buildPipelines()
	if err != nil {
		return nil, err
	}
	if err := b.device.RegisterPipelines(pipelines...); err != nil {
		return nil, err
	}
	for _, p := range pipelines {
		gp, err := b.resolvePipeline(p)
		if err != nil {
			return nil, err
		}
		b.pipelines[p.PipelineKey()] = gp
	}

	b.skyboxMesh = model.BuildSkyboxCube()
	if _, err := b.ensureMesh(b.skyboxMesh); err != nil {
		return nil, err
	}
	b.markerMesh = bind_group_provider.NewBindGroupProvider("light markers")

	return b, nil
}

type pipelineSpec struct {
	key     string
	source  string
	defines map[string]string
	options []pipeline.PipelineBuilderOption
}

func litDefines(max int, lightType, batch, shading shader.AnnotationArg) map[string]string {
	return map[string]string{
		"MAX_LIGHTS":    fmt.Sprint(max),
		"LIGHT":         string(lightType),
		"LIGHT_BATCH":   string(batch),
		"LIGHT_SHADING": string(shading),
	}
}

func lightingPass() []pipeline.PipelineBuilderOption {
	return []pipeline.PipelineBuilderOption{
		pipeline.WithDepthCompare(wgpu.CompareFunctionEqual),
		pipeline.WithDepthWriteEnabled(false),
		pipeline.WithBlendEnabled(true),
		pipeline.WithBlendState(pipeline.AdditiveBlend()),
	}
}

func passSpecs() []pipelineSpec {
	return []pipelineSpec{
		{
			key:    PipelineDepth,
			source: "depth",
			options: []pipeline.PipelineBuilderOption{
				pipeline.WithDepthCompare(wgpu.CompareFunctionLessEqual),
				pipeline.WithWriteMask(wgpu.ColorWriteMaskNone),
			},
		},
		{
			key:     PipelinePoint,
			source:  "lit",
			defines: litDefines(light.MaxPointLightsPerPass, shader.AnnotationArgPointLight, shader.AnnotationArgPointLightBatch, "point_light_shading"),
			options: lightingPass(),
		},
		{
			key:     PipelineSpot,
			source:  "lit",
			defines: litDefines(light.MaxSpotLightsPerPass, shader.AnnotationArgSpotLight, shader.AnnotationArgSpotLightBatch, "spot_light_shading"),
			options: lightingPass(),
		},
		{
			key:     PipelineDirectional,
			source:  "lit",
			defines: litDefines(light.MaxDirectionalLights, shader.AnnotationArgDirectionalLight, shader.AnnotationArgDirectionalLightBatch, "directional_light_shading"),
			options: lightingPass(),
		},
		{
			key:    PipelineReflective,
			source: "reflective",
			options: []pipeline.PipelineBuilderOption{
				pipeline.WithDepthCompare(wgpu.CompareFunctionLess),
			},
		},
		{
			key:    PipelinePath,
			source: "path",
			options: []pipeline.PipelineBuilderOption{
				pipeline.WithDepthCompare(wgpu.CompareFunctionLess),
				pipeline.WithTopology(wgpu.PrimitiveTopologyLineStrip),
			},
		},
		{
			key:    PipelineMarkers,
			source: "marker",
			options: []pipeline.PipelineBuilderOption{
				pipeline.WithDepthCompare(wgpu.CompareFunctionLess),
			},
		},
		{
			key:    PipelineSkybox,
			source: "skybox",
			options: []pipeline.PipelineBuilderOption{
				pipeline.WithDepthCompare(wgpu.CompareFunctionLessEqual),
				pipeline.WithDepthWriteEnabled(false),
			},
		},
	}
}

func (b *gpuBackend) buildPipelines() ([]pipeline.Pipeline, error) {
	specs := passSpecs()
	out := make([]pipeline.Pipeline, 0, len(specs))
	for _, spec := range specs {
		vs, err := shader.NewShader(spec.key+"-vert", shader.ShaderTypeVertex,
			filepath.Join(b.shaderDir, spec.source+".vert.wgsl"), shader.WithDefines(spec.defines))
		if err != nil {
			return nil, err
		}
		fs, err := shader.NewShader(spec.key+"-frag", shader.ShaderTypeFragment,
			filepath.Join(b.shaderDir, spec.source+".frag.wgsl"), shader.WithDefines(spec.defines))
		if err != nil {
			return nil, err
		}
		opts := append([]pipeline.PipelineBuilderOption{
			pipeline.WithVertexShader(vs),
			pipeline.WithFragmentShader(fs),
		}, spec.options...)
		out = append(out, pipeline.NewPipeline(spec.key, opts...))
	}
	return out, nil
}

// declIdentity maps a shader declaration to the provider identity that fills its group.
func declIdentity(decl shader.Annotation) shader.AnnotationArg {
	switch decl.Type {
	case shader.AnnotationTypeProvider:
		return decl.Args[0]
	case shader.AnnotationTypeBindingGroup:
		switch decl.Args[2] {
		// light batches share the per-draw group with the object uniform
		case shader.AnnotationArgObjectUniform, shader.AnnotationArgPointLightBatch,
			shader.AnnotationArgSpotLightBatch, shader.AnnotationArgDirectionalLightBatch:
			return shader.AnnotationArgObject
		case shader.AnnotationArgCamera:
			return shader.AnnotationArgCamera
		case shader.AnnotationArgPathUniform:
			return shader.AnnotationArgPath
		case shader.AnnotationArgMarkerParams:
			return shader.AnnotationArgMarkers
		}
	}
	return ""
}

func (b *gpuBackend) resolvePipeline(p pipeline.Pipeline) (*gpuPipeline, error) {
	gp := &gpuPipeline{
		pipeline: p,
		layouts:  p.BindGroupLayoutDescriptors(),
		fixed:    make(map[int]bind_group_provider.BindGroupProvider),
	}
	gp.groups = make([]shader.AnnotationArg, len(gp.layouts))

	for _, st := range []shader.ShaderType{shader.ShaderTypeVertex, shader.ShaderTypeFragment} {
		for _, decl := range p.Shader(st).Declarations() {
			if decl.Group == nil {
				continue
			}
			g, id := *decl.Group, declIdentity(decl)
			if g >= len(gp.groups) || id == "" {
				continue
			}
			if gp.groups[g] != "" && gp.groups[g] != id {
				return nil, fmt.Errorf("pipeline %q: group %d is claimed by both %q and %q", gp.key(), g, gp.groups[g], id)
			}
			gp.groups[g] = id
		}
	}

	for g, id := range gp.groups {
		switch id {
		case shader.AnnotationArgObject:
			gp.pool = &slotPool{group: g}
		case shader.AnnotationArgMaterial:
			// created per renderable on first draw
		case shader.AnnotationArgCamera, shader.AnnotationArgPath, shader.AnnotationArgMarkers:
			provider := bind_group_provider.NewBindGroupProvider(gp.key() + " " + string(id))
			if err := b.device.InitBindGroup(provider, gp.layouts[g], nil, nil); err != nil {
				return nil, fmt.Errorf("pipeline %q: %s group: %w", gp.key(), id, err)
			}
			gp.fixed[g] = provider
		case shader.AnnotationArgEnvironment:
			provider, err := b.environmentProvider(gp, g)
			if err != nil {
				return nil, err
			}
			gp.fixed[g] = provider
		default:
			return nil, fmt.Errorf("pipeline %q: group %d has no provider declaration", gp.key(), g)
		}
	}
	return gp, nil
}

// roleBinding finds the binding a provider declaration with the given role occupies in group g.
func roleBinding(p pipeline.Pipeline, g int, role shader.AnnotationArg) (int, bool) {
	for _, st := range []shader.ShaderType{shader.ShaderTypeVertex, shader.ShaderTypeFragment} {
		for _, decl := range p.Shader(st).Declarations() {
			if decl.Type != shader.AnnotationTypeProvider || decl.Group == nil || *decl.Group != g {
				continue
			}
			if len(decl.Args) > 1 && decl.Args[1] == role {
				return *decl.Binding, true
			}
		}
	}
	return 0, false
}

func (b *gpuBackend) environmentProvider(gp *gpuPipeline, g int) (bind_group_provider.BindGroupProvider, error) {
	var opts []bind_group_provider.BindGroupProviderOption
	if binding, ok := roleBinding(gp.pipeline, g, shader.AnnotationArgCubeTexture); ok {
		opts = append(opts, bind_group_provider.WithTextureView(binding, b.skybox.View()))
	}
	provider := bind_group_provider.NewBindGroupProvider(gp.key()+" environment", opts...)
	if binding, ok := roleBinding(gp.pipeline, g, shader.AnnotationArgCubeSampler); ok {
		err := b.device.InitSampler(provider, binding, common.SamplerStagingData{
			AddressModeU: wgpu.AddressModeClampToEdge,
			AddressModeV: wgpu.AddressModeClampToEdge,
			AddressModeW: wgpu.AddressModeClampToEdge,
		})
		if err != nil {
			return nil, err
		}
	}
	if err := b.device.InitBindGroup(provider, gp.layouts[g], nil, nil); err != nil {
		return nil, fmt.Errorf("pipeline %q: environment group: %w", gp.key(), err)
	}
	return provider, nil
}

func (b *gpuBackend) materialProvider(gp *gpuPipeline, g int, r *renderable.Renderable) (bind_group_provider.BindGroupProvider, error) {
	key := materialKey{
		pipeline: gp.key(),
		diffuse:  common.Coalesce(r.DiffuseMap, b.fallbackDiffuse),
		normal:   common.Coalesce(r.NormalMap, b.fallbackNormal),
	}
	if provider, ok := b.materials[key]; ok {
		return provider, nil
	}

	views := make(map[int]*wgpu.TextureView)
	for role, tex := range map[shader.AnnotationArg]material.Texture{
		shader.AnnotationArgDiffuseTexture: key.diffuse,
		shader.AnnotationArgNormalTexture:  key.normal,
	} {
		binding, ok := roleBinding(gp.pipeline, g, role)
		if !ok {
			continue
		}
		if err := b.device.UploadTexture(tex); err != nil {
			return nil, err
		}
		views[binding] = tex.View()
	}
	provider := bind_group_provider.NewBindGroupProvider(gp.key()+" material "+r.Name, bind_group_provider.WithTextureViews(views))
	if binding, ok := roleBinding(gp.pipeline, g, shader.AnnotationArgMaterialSampler); ok {
		if err := b.device.InitSampler(provider, binding, common.SamplerStagingData{}); err != nil {
			return nil, err
		}
	}
	if err := b.device.InitBindGroup(provider, gp.layouts[g], nil, nil); err != nil {
		return nil, fmt.Errorf("pipeline %q: material group for %q: %w", gp.key(), r.Name, err)
	}
	b.materials[key] = provider
	return provider, nil
}

func (b *gpuBackend) ensureMesh(m model.Model) (bind_group_provider.BindGroupProvider, error) {
	if provider := m.MeshProvider(); provider != nil {
		return provider, nil
	}
	provider := bind_group_provider.NewBindGroupProvider(m.Name() + " mesh")
	if err := b.device.InitMeshBuffers(provider, m.VertexData(), m.IndexData(), m.VertexCount(), m.IndexCount()); err != nil {
		return nil, fmt.Errorf("upload mesh %q: %w", m.Name(), err)
	}
	m.SetMeshProvider(provider)
	return provider, nil
}

func (b *gpuBackend) nextSlot(gp *gpuPipeline) (bind_group_provider.BindGroupProvider, error) {
	pool := gp.pool
	if pool.next < len(pool.slots) {
		slot := pool.slots[pool.next]
		pool.next++
		return slot, nil
	}
	slot := bind_group_provider.NewBindGroupProvider(fmt.Sprintf("%s object %d", gp.key(), len(pool.slots)))
	if err := b.device.InitBindGroup(slot, gp.layouts[pool.group], nil, nil); err != nil {
		return nil, fmt.Errorf("pipeline %q: object group: %w", gp.key(), err)
	}
	pool.slots = append(pool.slots, slot)
	pool.next++
	return slot, nil
}

// queueWrite stages data for the uniform called name in group g. A shader without that uniform is not an error:
// the write is dropped and reported once per pipeline.
func (b *gpuBackend) queueWrite(gp *gpuPipeline, provider bind_group_provider.BindGroupProvider, g int, name string, data []byte) {
	for _, st := range []shader.ShaderType{shader.ShaderTypeVertex, shader.ShaderTypeFragment} {
		if binding, ok := gp.pipeline.Shader(st).BindGroupFromVarName(g, name); ok {
			b.writes = append(b.writes, bind_group_provider.BufferWrite{
				Provider: provider,
				Binding:  binding,
				Data:     data,
			})
			return
		}
	}
	if id := gp.key() + "/" + name; !b.missing[id] {
		b.missing[id] = true
		log.Printf("[frame] pipeline %q has no uniform %q in group %d; writes to it are skipped", gp.key(), name, g)
	}
}

func (b *gpuBackend) pipelineFor(key string) (*gpuPipeline, error) {
	if !b.inFrame {
		return nil, ErrFrameNotStarted
	}
	gp, ok := b.pipelines[key]
	if !ok {
		return nil, fmt.Errorf("pipeline %q is not registered", key)
	}
	return gp, nil
}

// groupsFor assembles the bind groups of one draw in group order.
func (b *gpuBackend) groupsFor(gp *gpuPipeline, slot bind_group_provider.BindGroupProvider, r *renderable.Renderable) ([]bind_group_provider.BindGroupProvider, error) {
	b.bindGroups = b.bindGroups[:0]
	for g, id := range gp.groups {
		switch id {
		case shader.AnnotationArgObject:
			b.bindGroups = append(b.bindGroups, slot)
		case shader.AnnotationArgMaterial:
			if r == nil {
				return nil, fmt.Errorf("pipeline %q needs a material but the draw has no renderable", gp.key())
			}
			provider, err := b.materialProvider(gp, g, r)
			if err != nil {
				return nil, err
			}
			b.bindGroups = append(b.bindGroups, provider)
		default:
			b.bindGroups = append(b.bindGroups, gp.fixed[g])
		}
	}
	return b.bindGroups, nil
}

func passPipeline(p Pass) string {
	switch p {
	case PassDepth:
		return PipelineDepth
	case PassPointLights:
		return PipelinePoint
	case PassSpotLights:
		return PipelineSpot
	case PassDirectional:
		return PipelineDirectional
	case PassReflective:
		return PipelineReflective
	case PassPath:
		return PipelinePath
	case PassMarkers:
		return PipelineMarkers
	case PassSkybox:
		return PipelineSkybox
	default:
		return ""
	}
}

func (b *gpuBackend) BeginFrame() error {
	if b.inFrame {
		return errors.New("frame already started")
	}
	if err := b.device.BeginFrame(); err != nil {
		return err
	}
	for _, gp := range b.pipelines {
		if gp.pool != nil {
			gp.pool.next = 0
		}
	}
	b.inFrame = true
	return nil
}

func (b *gpuBackend) Draw(d Draw) error {
	gp, err := b.pipelineFor(passPipeline(d.Pass))
	if err != nil {
		return err
	}
	if d.Renderable == nil || d.Renderable.Mesh == nil {
		return errors.New("draw has no mesh")
	}
	if gp.pool == nil {
		return fmt.Errorf("pipeline %q has no object group", gp.key())
	}

	mesh, err := b.ensureMesh(d.Renderable.Mesh)
	if err != nil {
		return err
	}
	slot, err := b.nextSlot(gp)
	if err != nil {
		return err
	}

	b.writes = b.writes[:0]
	b.queueWrite(gp, slot, gp.pool.group, "object", d.Object.Marshal())
	switch d.Pass {
	case PassPointLights:
		b.queueWrite(gp, slot, gp.pool.group, "lights", light.MarshalPointBatch(d.Points))
	case PassSpotLights:
		b.queueWrite(gp, slot, gp.pool.group, "lights", light.MarshalSpotBatch(d.Spots))
	case PassDirectional:
		b.queueWrite(gp, slot, gp.pool.group, "lights", light.MarshalDirectionalBatch(d.Sun))
	}

	groups, err := b.groupsFor(gp, slot, d.Renderable)
	if err != nil {
		return err
	}
	b.device.WriteBuffers(b.writes)
	return b.device.DrawCall(gp.key(), mesh, groups)
}

// fixedWrite stages data for a uniform living in one of the pipeline's fixed groups.
func (b *gpuBackend) fixedWrite(gp *gpuPipeline, id shader.AnnotationArg, name string, data []byte) {
	for g, gid := range gp.groups {
		if gid == id {
			b.queueWrite(gp, gp.fixed[g], g, name, data)
			return
		}
	}
}

func (b *gpuBackend) DrawPath(path model.Model, mvp [16]float32, color [4]float32) error {
	gp, err := b.pipelineFor(PipelinePath)
	if err != nil {
		return err
	}
	mesh, err := b.ensureMesh(path)
	if err != nil {
		return err
	}

	u := bezier.GPUPathUniform{MVP: mvp, Color: color}
	b.writes = b.writes[:0]
	b.fixedWrite(gp, shader.AnnotationArgPath, "path", u.Marshal())

	groups, err := b.groupsFor(gp, nil, nil)
	if err != nil {
		return err
	}
	b.device.WriteBuffers(b.writes)
	return b.device.DrawCall(gp.key(), mesh, groups)
}

func (b *gpuBackend) DrawMarkers(markers []Marker, viewport [2]float32, pointSize float32) error {
	gp, err := b.pipelineFor(PipelineMarkers)
	if err != nil {
		return err
	}
	if len(markers) == 0 {
		return nil
	}

	var count int
	b.markerData, count = MarkerVertexData(b.markerData, markers)
	if err := b.device.WriteVertices(b.markerMesh, b.markerData, count); err != nil {
		return err
	}

	params := light.GPUMarkerParams{Viewport: viewport, PointSize: pointSize}
	b.writes = b.writes[:0]
	b.fixedWrite(gp, shader.AnnotationArgMarkers, "params", params.Marshal())

	groups, err := b.groupsFor(gp, nil, nil)
	if err != nil {
		return err
	}
	b.device.WriteBuffers(b.writes)
	return b.device.DrawVertices(gp.key(), b.markerMesh, count, groups)
}

func (b *gpuBackend) DrawSkybox(viewProj [16]float32, eye [3]float32) error {
	gp, err := b.pipelineFor(PipelineSkybox)
	if err != nil {
		return err
	}

	u := camera.GPUCameraUniform{ViewProj: viewProj, Position: eye}
	b.writes = b.writes[:0]
	b.fixedWrite(gp, shader.AnnotationArgCamera, "camera", u.Marshal())

	groups, err := b.groupsFor(gp, nil, nil)
	if err != nil {
		return err
	}
	b.device.WriteBuffers(b.writes)
	return b.device.DrawCall(gp.key(), b.skyboxMesh.MeshProvider(), groups)
}

func (b *gpuBackend) EndFrame() error {
	if !b.inFrame {
		return ErrFrameNotStarted
	}
	b.inFrame = false
	b.device.EndFrame()
	b.device.Present()
	return nil
}
