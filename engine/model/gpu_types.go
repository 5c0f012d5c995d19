package model

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/Carmen-Shannon/oxy-forward/engine/renderer/material"
)

// GPUVertexSource is the canonical WGSL definition of the VertexInput struct for lit mesh pipelines.
// Matches GPUVertex layout exactly (48 bytes, tightly packed vertex attributes).
//
//go:embed assets/vertex.wgsl
var GPUVertexSource string

// GPUPositionVertexSource is the canonical WGSL definition of the PositionInput struct used by the skybox and the
// path line strip. Matches GPUPositionVertex layout exactly (12 bytes).
//
//go:embed assets/position_vertex.wgsl
var GPUPositionVertexSource string

// GPUMarkerVertexSource is the canonical WGSL definition of the MarkerInput struct for light markers.
// Matches GPUMarkerVertex layout exactly (36 bytes).
//
//go:embed assets/marker_vertex.wgsl
var GPUMarkerVertexSource string

// GPUObjectUniformSource is the canonical WGSL definition of the ObjectUniform struct bound once per draw.
// Matches GPUObjectUniform layout exactly (224 bytes, uniform aligned).
//
//go:embed assets/object_uniform.wgsl
var GPUObjectUniformSource string

// Byte sizes of the marshalled structs.
const (
	GPUVertexSize         = 48
	GPUPositionVertexSize = 12
	GPUMarkerVertexSize   = 36
	GPUObjectUniformSize  = 224
)

func putF32(buf []byte, off int, v float32) {
	binary.LittleEndian.PutUint32(buf[off:off+4], math.Float32bits(v))
}

func putF32s(buf []byte, off int, vs ...float32) {
	for i, v := range vs {
		putF32(buf, off+i*4, v)
	}
}

// GPUVertex is the GPU representation of a single lit mesh vertex.
// Matches the WGSL VertexInput struct layout exactly (see GPUVertexSource).
type GPUVertex struct {
	Position [3]float32 // offset  0: vertex position in model space (12 bytes)
	Normal   [3]float32 // offset 12: vertex normal for lighting (12 bytes)
	TexCoord [2]float32 // offset 24: UV texture coordinate (8 bytes)
	Tangent  [4]float32 // offset 32: tangent vector (xyz) + handedness (w) for normal mapping (16 bytes)
}

// Size returns the size of the GPUVertex struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUVertex) Size() int {
	return int(unsafe.Sizeof(*g))
}

// MarshalInto writes the vertex into buf, which must hold at least GPUVertexSize bytes.
//
// Parameters:
//   - buf: destination buffer
func (g *GPUVertex) MarshalInto(buf []byte) {
	putF32s(buf, 0, g.Position[0], g.Position[1], g.Position[2])
	putF32s(buf, 12, g.Normal[0], g.Normal[1], g.Normal[2])
	putF32s(buf, 24, g.TexCoord[0], g.TexCoord[1])
	putF32s(buf, 32, g.Tangent[0], g.Tangent[1], g.Tangent[2], g.Tangent[3])
}

// Marshal serializes the GPUVertex struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 48-byte buffer ready for GPU upload.
func (g *GPUVertex) Marshal() []byte {
	buf := make([]byte, GPUVertexSize)
	g.MarshalInto(buf)
	return buf
}

// GPUPositionVertex is a position-only vertex.
type GPUPositionVertex struct {
	Position [3]float32 // offset 0: position (12 bytes)
}

// Marshal serializes the vertex into a 12-byte buffer.
//
// Returns:
//   - []byte: buffer ready for GPU upload.
func (g *GPUPositionVertex) Marshal() []byte {
	buf := make([]byte, GPUPositionVertexSize)
	putF32s(buf, 0, g.Position[0], g.Position[1], g.Position[2])
	return buf
}

// GPUMarkerVertex is one corner of a screen-space light marker quad. The vertex shader offsets ClipPos by Corner
// scaled to the marker's pixel size, so every corner of one marker carries the same ClipPos and Color.
type GPUMarkerVertex struct {
	ClipPos [4]float32 // offset  0: the light's clip-space position (16 bytes)
	Color   [3]float32 // offset 16: marker color (12 bytes)
	Corner  [2]float32 // offset 28: quad corner in [-1, 1] (8 bytes)
}

// MarshalInto writes the vertex into buf, which must hold at least GPUMarkerVertexSize bytes.
//
// Parameters:
//   - buf: destination buffer
func (g *GPUMarkerVertex) MarshalInto(buf []byte) {
	putF32s(buf, 0, g.ClipPos[0], g.ClipPos[1], g.ClipPos[2], g.ClipPos[3])
	putF32s(buf, 16, g.Color[0], g.Color[1], g.Color[2])
	putF32s(buf, 28, g.Corner[0], g.Corner[1])
}

// GPUObjectUniform is the per-draw uniform shared by the depth, lit and reflective pipelines.
//
//	offset   0: mvp            mat4x4<f32>
//	offset  64: model          mat4x4<f32>
//	offset 128: normal_model   mat4x4<f32> (inverse transpose of model, padded to mat4)
//	offset 192: view_pos       vec3<f32>
//	offset 204: use_blinn      u32
//	offset 208: has_diffuse_map u32, offset 212: has_normal_map u32, offset 216: padding
type GPUObjectUniform struct {
	MVP         [16]float32
	Model       [16]float32
	NormalModel [16]float32
	ViewPos     [3]float32
	Flags       material.GPUMaterialFlags
}

// Marshal serializes the uniform into a fresh 224-byte buffer.
//
// Returns:
//   - []byte: buffer ready for GPU upload.
func (g *GPUObjectUniform) Marshal() []byte {
	buf := make([]byte, GPUObjectUniformSize)
	putF32s(buf, 0, g.MVP[:]...)
	putF32s(buf, 64, g.Model[:]...)
	putF32s(buf, 128, g.NormalModel[:]...)
	putF32s(buf, 192, g.ViewPos[0], g.ViewPos[1], g.ViewPos[2])
	g.Flags.MarshalInto(buf[204:216])
	return buf
}

// ComputeBoundingRadius calculates the bounding sphere radius of a vertex slice as the maximum distance of any
// vertex from the origin.
//
// Parameters:
//   - vertices: the vertex data to compute the bounding radius from
//
// Returns:
//   - float32: the maximum distance from the origin
func ComputeBoundingRadius(vertices []GPUVertex) float32 {
	var maxDistSq float32
	for _, v := range vertices {
		p := v.Position
		distSq := p[0]*p[0] + p[1]*p[1] + p[2]*p[2]
		if distSq > maxDistSq {
			maxDistSq = distSq
		}
	}
	return float32(math.Sqrt(float64(maxDistSq)))
}
