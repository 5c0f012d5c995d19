package model

import (
	"github.com/Carmen-Shannon/oxy-forward/engine/renderer/bind_group_provider"
)

// VertexFormat identifies which vertex struct a Model's vertex data is packed as.
type VertexFormat int

const (
	// VertexFormatLit is the full GPUVertex layout used by the depth, lit and reflective pipelines.
	VertexFormatLit VertexFormat = iota

	// VertexFormatPosition is the GPUPositionVertex layout used by the skybox cube and the path line strip.
	VertexFormatPosition
)

// Stride returns the byte size of one vertex in this format.
func (f VertexFormat) Stride() int {
	if f == VertexFormatPosition {
		return GPUPositionVertexSize
	}
	return GPUVertexSize
}

// model is the implementation of the Model interface.
type model struct {
	name                  string
	format                VertexFormat
	meshProvider          bind_group_provider.BindGroupProvider
	boundingRadius        float32
	vertexData, indexData []byte
	vertexCount           int
	indexCount            int
}

// Model defines the interface for a CPU-side mesh and its GPU buffers.
// Meshes come from the loader (glTF files) or from the procedural primitives in this package.
// The renderer uploads VertexData and IndexData into the MeshProvider once at setup.
type Model interface {
	// Name retrieves the model identifier.
	//
	// Returns:
	//   - string: the model name
	Name() string

	// Format retrieves the vertex layout the vertex data is packed as.
	//
	// Returns:
	//   - VertexFormat: the vertex format
	Format() VertexFormat

	// MeshProvider retrieves the BindGroupProvider holding GPU mesh resources, or nil before upload.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the mesh provider
	MeshProvider() bind_group_provider.BindGroupProvider

	// SetMeshProvider assigns the provider that owns this model's GPU vertex and index buffers.
	//
	// Parameters:
	//   - provider: the mesh provider
	SetMeshProvider(provider bind_group_provider.BindGroupProvider)

	// VertexData returns the packed vertex bytes.
	//
	// Returns:
	//   - []byte: the vertex data
	VertexData() []byte

	// IndexData returns the packed little-endian uint32 indices, or nil for non-indexed meshes.
	//
	// Returns:
	//   - []byte: the index data
	IndexData() []byte

	// VertexCount returns the number of vertices in the mesh.
	//
	// Returns:
	//   - int: the vertex count
	VertexCount() int

	// IndexCount returns the number of indices in the mesh.
	//
	// Returns:
	//   - int: the index count, 0 for non-indexed meshes
	IndexCount() int

	// Indexed reports whether the mesh is drawn with an index buffer.
	//
	// Returns:
	//   - bool: true if the mesh has indices
	Indexed() bool

	// BoundingRadius returns the bounding sphere radius, measured as the maximum vertex distance from the origin.
	//
	// Returns:
	//   - float32: the bounding radius
	BoundingRadius() float32
}

var _ Model = &model{}

// NewModel creates a new Model instance with the specified options applied.
//
// Parameters:
//   - options: a variadic list of ModelBuilderOption functions to configure the Model
//
// Returns:
//   - Model: a new instance of Model configured with the provided options
func NewModel(options ...ModelBuilderOption) Model {
	m := &model{}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *model) Name() string {
	return m.name
}

func (m *model) Format() VertexFormat {
	return m.format
}

func (m *model) MeshProvider() bind_group_provider.BindGroupProvider {
	return m.meshProvider
}

func (m *model) SetMeshProvider(provider bind_group_provider.BindGroupProvider) {
	m.meshProvider = provider
}

func (m *model) VertexData() []byte {
	return m.vertexData
}

func (m *model) IndexData() []byte {
	return m.indexData
}

func (m *model) VertexCount() int {
	return m.vertexCount
}

func (m *model) IndexCount() int {
	return m.indexCount
}

func (m *model) Indexed() bool {
	return m.indexCount > 0
}

func (m *model) BoundingRadius() float32 {
	return m.boundingRadius
}
