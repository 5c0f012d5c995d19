package bezier

import (
	_ "embed"
	"encoding/binary"
	"math"
)

// GPUPathUniformSource is the canonical WGSL definition of the PathUniform struct used to draw the debug line strip.
// Matches GPUPathUniform layout exactly (80 bytes).
//
//go:embed assets/path_uniform.wgsl
var GPUPathUniformSource string

// GPUPathUniformSize is the byte size of a marshalled GPUPathUniform.
const GPUPathUniformSize = 80

// GPUPathUniform holds the transform and flat color of the path line strip.
//
//	offset  0: mvp   mat4x4<f32>
//	offset 64: color vec4<f32>
type GPUPathUniform struct {
	MVP   [16]float32
	Color [4]float32
}

// Marshal serializes the uniform into an 80-byte buffer.
//
// Returns:
//   - []byte: buffer ready for GPU upload.
func (g *GPUPathUniform) Marshal() []byte {
	buf := make([]byte, GPUPathUniformSize)
	for i, v := range g.MVP {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	for i, v := range g.Color {
		binary.LittleEndian.PutUint32(buf[64+i*4:], math.Float32bits(v))
	}
	return buf
}
