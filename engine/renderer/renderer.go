package renderer

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-forward/common"
	"github.com/Carmen-Shannon/oxy-forward/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-forward/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-forward/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-forward/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
)

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	pipelineCache map[string]pipeline.Pipeline

	backendType RendererBackendType
	backend     RendererBackend

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	pendingPresentMode   *PresentMode
	pendingMSAA          *MSAASampleCount
}

// Renderer defines the interface for the rendering system.
//
// The Renderer owns the GPU device, the surface and a cache of render pipelines keyed by pipeline key. Everything a
// frame draws happens inside the single render pass opened by BeginFrame and closed by EndFrame.
type Renderer interface {
	// RegisterPipelines creates the GPU render pipeline for each Pipeline via the backend, then caches them by
	// PipelineKey. Pipelines whose keys are already registered are skipped.
	//
	// Parameters:
	//   - pipelines: the Pipelines to register
	//
	// Returns:
	//   - error: a *shader.BuildError if a shader module or the pipeline itself cannot be created
	RegisterPipelines(pipelines ...pipeline.Pipeline) error

	// Resize configures the underlying backend to handle a new surface size.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	Resize(width, height int)

	// SetPresentMode sets the surface present mode. A call to Resize is required for the new mode to take effect.
	//
	// Parameters:
	//   - mode: the PresentMode to use (VSync or Uncapped)
	SetPresentMode(mode PresentMode)

	// InitMeshBuffers creates GPU vertex and index buffers from raw byte data and stores them
	// on the given BindGroupProvider for later use in draw calls. Empty index data makes the mesh non-indexed.
	//
	// Parameters:
	//   - provider: the BindGroupProvider to store the created buffers on
	//   - vertexData: the raw vertex data bytes to upload to the GPU
	//   - indexData: the raw index data bytes to upload to the GPU, may be empty
	//   - vertexCount: the number of vertices, used for non-indexed draw calls
	//   - indexCount: the number of indices, used for indexed draw calls
	//
	// Returns:
	//   - error: an error if buffer creation fails
	InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, vertexCount, indexCount int) error

	// WriteVertices replaces the contents of the provider's vertex buffer, growing it when data does not fit.
	// Used for geometry rebuilt every frame such as the light markers.
	//
	// Parameters:
	//   - provider: the BindGroupProvider owning the vertex buffer
	//   - data: the vertex bytes
	//   - vertexCount: the number of vertices in data
	//
	// Returns:
	//   - error: an error if the buffer has to grow and cannot be created
	WriteVertices(provider bind_group_provider.BindGroupProvider, data []byte, vertexCount int) error

	// InitBindGroup creates GPU buffers and a bind group from a layout descriptor and stores them
	// on the given BindGroupProvider. Textures and samplers must already be set on the provider.
	// Buffer usage and size can be overridden per binding.
	//
	// Parameters:
	//   - provider: the BindGroupProvider to store the created bind group on
	//   - descriptor: the layout descriptor defining the bind group entries
	//   - bufferUsageOverrides: additional buffer usage flags to OR into the derived usage, keyed by binding index (nil safe)
	//   - bufferSizeOverrides: custom buffer sizes to use instead of MinBindingSize, keyed by binding index (nil safe)
	//
	// Returns:
	//   - error: an error if bind group creation fails
	InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor, bufferUsageOverrides map[int]wgpu.BufferUsage, bufferSizeOverrides map[int]uint64) error

	// UploadTexture creates the GPU texture for a material texture, flat or cube, and stores its view on the handle.
	// Textures that already hold a view are left alone.
	//
	// Parameters:
	//   - tex: the texture to upload
	//
	// Returns:
	//   - error: an error if texture creation fails
	UploadTexture(tex material.Texture) error

	// InitSampler creates a GPU sampler from staging data and stores it on the given BindGroupProvider
	// at the specified binding index.
	//
	// Parameters:
	//   - provider: the BindGroupProvider to store the created sampler on
	//   - bindingKey: the binding index for this sampler
	//   - samplerStagingData: the sampler configuration
	//
	// Returns:
	//   - error: an error if sampler creation fails
	InitSampler(provider bind_group_provider.BindGroupProvider, bindingKey int, samplerStagingData common.SamplerStagingData) error

	// WriteBuffers writes all staged buffer writes to the GPU queue.
	// Each BufferWrite targets a specific buffer on a BindGroupProvider at a given binding and offset.
	//
	// Parameters:
	//   - writes: a slice of BufferWrite structs describing the data to write
	WriteBuffers(writes []bind_group_provider.BufferWrite)

	// BeginFrame acquires the swapchain texture and begins the main render pass, clearing color to black and
	// depth to one. Must be paired with EndFrame.
	//
	// Returns:
	//   - error: an error if the swapchain texture could not be acquired
	BeginFrame() error

	// DrawCall encodes one draw of a whole mesh within the current render pass. Meshes with an index buffer are
	// drawn indexed, others with their full vertex count.
	//
	// Parameters:
	//   - pipelineKey: the unique identifier for the cached render Pipeline to use
	//   - meshProvider: the BindGroupProvider holding vertex and optional index buffers
	//   - bindGroups: BindGroupProviders whose BindGroups are set at group 0, 1, ... in order
	//
	// Returns:
	//   - error: an error if the pipeline is not found
	DrawCall(pipelineKey string, meshProvider bind_group_provider.BindGroupProvider, bindGroups []bind_group_provider.BindGroupProvider) error

	// DrawVertices encodes a non-indexed draw of the first vertexCount vertices of a vertex buffer.
	//
	// Parameters:
	//   - pipelineKey: the unique identifier for the cached render Pipeline to use
	//   - meshProvider: the BindGroupProvider holding the vertex buffer
	//   - vertexCount: the number of vertices to draw
	//   - bindGroups: BindGroupProviders whose BindGroups are set at group 0, 1, ... in order
	//
	// Returns:
	//   - error: an error if the pipeline is not found
	DrawVertices(pipelineKey string, meshProvider bind_group_provider.BindGroupProvider, vertexCount int, bindGroups []bind_group_provider.BindGroupProvider) error

	// EndFrame ends the current render pass and submits the command buffer to the GPU.
	// Does not present the surface; call Present() after EndFrame to display the frame.
	EndFrame()

	// Present presents the surface to the display and releases the swapchain texture.
	// Must be called once per frame after EndFrame.
	Present()
}

var _ Renderer = &renderer{}

// NewRenderer creates a new Renderer instance with the specified backend type, using the window's surface descriptor.
//
// Parameters:
//   - backendType: the type of rendering backend to use (e.g., WGPU)
//   - window: the window whose surface the renderer presents to
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: a new instance of Renderer configured with the specified backend and options
func NewRenderer(backendType RendererBackendType, window window.Window, options ...RendererBuilderOption) Renderer {
	r := &renderer{
		mu:            &sync.Mutex{},
		pipelineCache: make(map[string]pipeline.Pipeline),
		backendType:   backendType,
	}

	// Apply options first so config flags (e.g. forceFallbackAdapter) are
	// available before the backend requests a GPU adapter.
	for _, opt := range options {
		opt(r)
	}

	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		r.backend = newWGPURendererBackend(window.SurfaceDescriptor(), r.forceFallbackAdapter, r.sampleCount())
	}

	if r.pendingPresentMode != nil {
		r.backend.SetPresentMode(*r.pendingPresentMode)
	}

	r.backend.ConfigureSurface(window.Width(), window.Height())
	return r
}

// sampleCount returns the MSAA sample count requested through WithMSAA, or MSAA4x.
func (r *renderer) sampleCount() MSAASampleCount {
	if r.pendingMSAA != nil {
		return *r.pendingMSAA
	}
	return MSAA4x
}

func (r *renderer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.backend.ConfigureSurface(width, height)
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.backend.SetPresentMode(mode)
}

func (r *renderer) RegisterPipelines(pipelines ...pipeline.Pipeline) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range pipelines {
		key := p.PipelineKey()
		if _, exists := r.pipelineCache[key]; exists {
			continue
		}
		if err := r.backend.RegisterRenderPipeline(p); err != nil {
			return err
		}
		r.pipelineCache[key] = p
	}
	return nil
}

func (r *renderer) InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, vertexCount, indexCount int) error {
	return r.backend.InitMeshBuffers(provider, vertexData, indexData, vertexCount, indexCount)
}

func (r *renderer) WriteVertices(provider bind_group_provider.BindGroupProvider, data []byte, vertexCount int) error {
	return r.backend.WriteVertices(provider, data, vertexCount)
}

func (r *renderer) InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor, bufferUsageOverrides map[int]wgpu.BufferUsage, bufferSizeOverrides map[int]uint64) error {
	return r.backend.InitBindGroup(provider, descriptor, bufferUsageOverrides, bufferSizeOverrides)
}

func (r *renderer) UploadTexture(tex material.Texture) error {
	if tex.View() != nil {
		return nil
	}
	var (
		view *wgpu.TextureView
		err  error
	)
	switch tex.Kind() {
	case material.TextureCube:
		view, err = r.backend.CreateCubeTextureView(tex.Name(), tex.Faces())
	default:
		view, err = r.backend.CreateTextureView(tex.Name(), tex.Staging(), tex.SRGB())
	}
	if err != nil {
		return fmt.Errorf("upload texture %q: %w", tex.Name(), err)
	}
	tex.SetView(view)
	return nil
}

func (r *renderer) InitSampler(provider bind_group_provider.BindGroupProvider, bindingKey int, samplerStagingData common.SamplerStagingData) error {
	return r.backend.InitSampler(provider, bindingKey, samplerStagingData)
}

func (r *renderer) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.backend.WriteBuffers(writes)
}

func (r *renderer) BeginFrame() error {
	return r.backend.BeginFrame()
}

func (r *renderer) DrawCall(pipelineKey string, meshProvider bind_group_provider.BindGroupProvider, bindGroups []bind_group_provider.BindGroupProvider) error {
	p, err := r.renderPipeline(pipelineKey)
	if err != nil {
		return err
	}
	r.backend.DrawCall(p, meshProvider, bindGroups)
	return nil
}

func (r *renderer) DrawVertices(pipelineKey string, meshProvider bind_group_provider.BindGroupProvider, vertexCount int, bindGroups []bind_group_provider.BindGroupProvider) error {
	p, err := r.renderPipeline(pipelineKey)
	if err != nil {
		return err
	}
	r.backend.DrawVertices(p, meshProvider, vertexCount, bindGroups)
	return nil
}

func (r *renderer) EndFrame() {
	r.backend.EndFrame()
}

func (r *renderer) Present() {
	r.backend.Present()
}

func (r *renderer) renderPipeline(key string) (pipeline.Pipeline, error) {
	r.mu.Lock()
	p, exists := r.pipelineCache[key]
	r.mu.Unlock()
	if !exists {
		return nil, fmt.Errorf("render pipeline %q not found in cache", key)
	}
	return p, nil
}
