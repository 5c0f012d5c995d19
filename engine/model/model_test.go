package model

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-forward/engine/renderer/material"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readF32(buf []byte, off int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(buf[off:]))
}

func TestGPUVertexLayout(t *testing.T) {
	v := GPUVertex{
		Position: [3]float32{1, 2, 3},
		Normal:   [3]float32{0, 1, 0},
		TexCoord: [2]float32{0.25, 0.75},
		Tangent:  [4]float32{1, 0, 0, -1},
	}
	assert.Equal(t, GPUVertexSize, v.Size())

	buf := v.Marshal()
	require.Len(t, buf, GPUVertexSize)
	assert.Equal(t, float32(3), readF32(buf, 8))
	assert.Equal(t, float32(1), readF32(buf, 16))
	assert.Equal(t, float32(0.75), readF32(buf, 28))
	assert.Equal(t, float32(-1), readF32(buf, 44))
}

func TestGPUObjectUniformLayout(t *testing.T) {
	u := GPUObjectUniform{
		ViewPos: [3]float32{4, 5, 6},
		Flags:   material.NewGPUMaterialFlags(true, false, true),
	}
	u.MVP[0] = 2
	u.Model[15] = 3
	u.NormalModel[5] = 7

	buf := u.Marshal()
	require.Len(t, buf, GPUObjectUniformSize)
	assert.Equal(t, float32(2), readF32(buf, 0))
	assert.Equal(t, float32(3), readF32(buf, 64+60))
	assert.Equal(t, float32(7), readF32(buf, 128+20))
	assert.Equal(t, float32(6), readF32(buf, 200))
	assert.Equal(t, uint32(1), binary.LittleEndian.Uint32(buf[204:]))
	assert.Equal(t, uint32(0), binary.LittleEndian.Uint32(buf[208:]))
	assert.Equal(t, uint32(1), binary.LittleEndian.Uint32(buf[212:]))
}

func TestGPUMarkerVertexLayout(t *testing.T) {
	v := GPUMarkerVertex{
		ClipPos: [4]float32{0, 0, 0.5, 1},
		Color:   [3]float32{1, 0.5, 0},
		Corner:  [2]float32{-1, 1},
	}
	buf := make([]byte, GPUMarkerVertexSize)
	v.MarshalInto(buf)
	assert.Equal(t, float32(1), readF32(buf, 12))
	assert.Equal(t, float32(0.5), readF32(buf, 20))
	assert.Equal(t, float32(-1), readF32(buf, 28))
	assert.Equal(t, float32(1), readF32(buf, 32))
}

func TestBuildSphere(t *testing.T) {
	const rings, segments = 8, 12
	mesh := BuildSphere(2, rings, segments)

	assert.Len(t, mesh.Vertices, (rings+1)*(segments+1))
	assert.Len(t, mesh.Indices, rings*segments*6)
	require.NoError(t, mesh.Validate())

	for _, v := range mesh.Vertices {
		n := v.Normal
		assert.InDelta(t, 1, math.Sqrt(float64(n[0]*n[0]+n[1]*n[1]+n[2]*n[2])), 1e-5)
		assert.InDelta(t, 0, float64(n[0]*v.Tangent[0]+n[1]*v.Tangent[1]+n[2]*v.Tangent[2]), 1e-5)
	}
	assert.InDelta(t, 2, ComputeBoundingRadius(mesh.Vertices), 1e-5)
}

func TestBuildSphereClampsSubdivisions(t *testing.T) {
	mesh := BuildSphere(1, 0, 1)
	assert.Len(t, mesh.Vertices, 3*4)
}

func TestBuildPlaneTangents(t *testing.T) {
	mesh := BuildPlane(4, 2, 2)
	require.Len(t, mesh.Vertices, 4)
	for _, v := range mesh.Vertices {
		assert.InDeltaSlice(t, []float32{1, 0, 0}, v.Tangent[:3], 1e-6)
		assert.InDelta(t, 1, math.Abs(float64(v.Tangent[3])), 1e-6)
	}
	assert.Equal(t, [3]float32{-2, 0, -1}, mesh.Vertices[0].Position)
}

func TestGenerateTangentsRejectsBadIndices(t *testing.T) {
	mesh := MeshData{
		Vertices: make([]GPUVertex, 3),
		Indices:  []uint32{0, 1, 3},
	}
	assert.ErrorIs(t, mesh.GenerateTangents(), ErrIndexRange)

	mesh.Indices = []uint32{0, 1}
	assert.Error(t, mesh.GenerateTangents())
}

func TestGenerateTangentsDegenerateUVs(t *testing.T) {
	mesh := MeshData{
		Vertices: []GPUVertex{
			{Position: [3]float32{0, 0, 0}, Normal: [3]float32{0, 0, 1}},
			{Position: [3]float32{1, 0, 0}, Normal: [3]float32{0, 0, 1}},
			{Position: [3]float32{0, 1, 0}, Normal: [3]float32{0, 0, 1}},
		},
		Indices: []uint32{0, 1, 2},
	}
	require.NoError(t, mesh.GenerateTangents())
	for _, v := range mesh.Vertices {
		tan := v.Tangent
		assert.InDelta(t, 0, tan[2], 1e-6)
		assert.InDelta(t, 1, math.Sqrt(float64(tan[0]*tan[0]+tan[1]*tan[1])), 1e-6)
	}
}

func TestMeshAppendOffsetsIndices(t *testing.T) {
	a := BuildPlane(1, 1, 1)
	b := BuildPlane(1, 1, 1)
	a.Append(b)

	assert.Len(t, a.Vertices, 8)
	assert.Equal(t, []uint32{4, 6, 5, 4, 7, 6}, a.Indices[6:])
	assert.NoError(t, a.Validate())
}

func TestNewModelFromMesh(t *testing.T) {
	mesh := BuildSphere(1.5, 4, 6)
	m := NewModel(WithName("sphere"), WithMesh(mesh))

	assert.Equal(t, "sphere", m.Name())
	assert.Equal(t, VertexFormatLit, m.Format())
	assert.True(t, m.Indexed())
	assert.Equal(t, len(mesh.Vertices), m.VertexCount())
	assert.Equal(t, len(mesh.Indices), m.IndexCount())
	assert.Len(t, m.VertexData(), len(mesh.Vertices)*GPUVertexSize)
	assert.Len(t, m.IndexData(), len(mesh.Indices)*4)
	assert.Equal(t, mesh.Indices[1], binary.LittleEndian.Uint32(m.IndexData()[4:]))
	assert.InDelta(t, 1.5, m.BoundingRadius(), 1e-5)
	assert.Nil(t, m.MeshProvider())
}

func TestBoundingRadiusOverride(t *testing.T) {
	m := NewModel(WithMesh(BuildSphere(1, 4, 4)), WithBoundingRadius(10))
	assert.Equal(t, float32(10), m.BoundingRadius())
}

func TestBuildSkyboxCube(t *testing.T) {
	m := BuildSkyboxCube()

	assert.Equal(t, "skybox", m.Name())
	assert.Equal(t, VertexFormatPosition, m.Format())
	assert.Equal(t, GPUPositionVertexSize, m.Format().Stride())
	assert.Equal(t, 36, m.VertexCount())
	assert.False(t, m.Indexed())
	assert.Len(t, m.VertexData(), 36*GPUPositionVertexSize)
	assert.InDelta(t, math.Sqrt(3), m.BoundingRadius(), 1e-5)

	for i := 0; i < 36; i++ {
		for c := 0; c < 3; c++ {
			assert.InDelta(t, 1, math.Abs(float64(readF32(m.VertexData(), i*12+c*4))), 0)
		}
	}
}

func TestBuildLineStrip(t *testing.T) {
	points := [][3]float32{{0, 1, 5}, {4, 1, 5}, {5, 1, 4}}
	m := BuildLineStrip("path", points)

	assert.Equal(t, 3, m.VertexCount())
	assert.Equal(t, 0, m.IndexCount())
	assert.Equal(t, float32(4), readF32(m.VertexData(), 12))
	assert.Equal(t, float32(4), readF32(m.VertexData(), 32))
}
