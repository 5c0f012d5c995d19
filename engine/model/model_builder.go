package model

import (
	"encoding/binary"

	"github.com/Carmen-Shannon/oxy-forward/engine/renderer/bind_group_provider"
)

// ModelBuilderOption is a functional option for configuring a Model via NewModel.
type ModelBuilderOption func(*model)

// WithName is an option builder that sets the name of the Model.
//
// Parameters:
//   - name: the model identifier
//
// Returns:
//   - ModelBuilderOption: a function that applies the name option to a model
func WithName(name string) ModelBuilderOption {
	return func(m *model) {
		m.name = name
	}
}

// WithMesh is an option builder that packs a lit mesh into the Model. The bounding radius is computed from the
// vertices unless WithBoundingRadius is applied afterwards.
//
// Parameters:
//   - mesh: the vertices and triangle indices
//
// Returns:
//   - ModelBuilderOption: a function that applies the mesh option to a model
func WithMesh(mesh MeshData) ModelBuilderOption {
	return func(m *model) {
		m.format = VertexFormatLit
		m.vertexData = make([]byte, len(mesh.Vertices)*GPUVertexSize)
		for i := range mesh.Vertices {
			mesh.Vertices[i].MarshalInto(m.vertexData[i*GPUVertexSize:])
		}
		m.vertexCount = len(mesh.Vertices)
		m.boundingRadius = ComputeBoundingRadius(mesh.Vertices)
		applyIndices(m, mesh.Indices)
	}
}

// WithPositions is an option builder that packs position-only vertices into the Model, drawn without indices.
//
// Parameters:
//   - positions: the vertex positions in draw order
//
// Returns:
//   - ModelBuilderOption: a function that applies the positions option to a model
func WithPositions(positions [][3]float32) ModelBuilderOption {
	return func(m *model) {
		m.format = VertexFormatPosition
		m.vertexData = make([]byte, 0, len(positions)*GPUPositionVertexSize)
		var maxDistSq float32
		for _, p := range positions {
			v := GPUPositionVertex{Position: p}
			m.vertexData = append(m.vertexData, v.Marshal()...)
			if d := p[0]*p[0] + p[1]*p[1] + p[2]*p[2]; d > maxDistSq {
				maxDistSq = d
			}
		}
		m.vertexCount = len(positions)
		m.boundingRadius = sqrt32(maxDistSq)
		m.indexData = nil
		m.indexCount = 0
	}
}

// WithIndices is an option builder that replaces the Model's index data.
//
// Parameters:
//   - indices: the triangle indices
//
// Returns:
//   - ModelBuilderOption: a function that applies the indices option to a model
func WithIndices(indices []uint32) ModelBuilderOption {
	return func(m *model) {
		applyIndices(m, indices)
	}
}

// WithMeshProvider is an option builder that sets the BindGroupProvider for mesh GPU resources.
//
// Parameters:
//   - provider: the BindGroupProvider holding vertex/index buffers
//
// Returns:
//   - ModelBuilderOption: a function that applies the mesh provider option to a model
func WithMeshProvider(provider bind_group_provider.BindGroupProvider) ModelBuilderOption {
	return func(m *model) {
		m.meshProvider = provider
	}
}

// WithBoundingRadius is an option builder that manually sets the bounding sphere radius.
// Use this to override the value computed from the vertices.
//
// Parameters:
//   - radius: the bounding radius to set
//
// Returns:
//   - ModelBuilderOption: a function that applies the bounding radius option to a model
func WithBoundingRadius(radius float32) ModelBuilderOption {
	return func(m *model) {
		m.boundingRadius = radius
	}
}

func applyIndices(m *model, indices []uint32) {
	if len(indices) == 0 {
		m.indexData = nil
		m.indexCount = 0
		return
	}
	m.indexData = make([]byte, len(indices)*4)
	for i, idx := range indices {
		binary.LittleEndian.PutUint32(m.indexData[i*4:], idx)
	}
	m.indexCount = len(indices)
}
