package camera

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUCameraUniformSource is the canonical WGSL definition of the CameraUniform struct.
// Matches GPUCameraUniform layout exactly (80 bytes, uniform aligned).
//
//go:embed assets/camera_uniform.wgsl
var GPUCameraUniformSource string

// GPUCameraUniform is the GPU-aligned camera block bound by the skybox pass.
// Matches the WGSL CameraUniform struct layout exactly (see GPUCameraUniformSource).
type GPUCameraUniform struct {
	ViewProj [16]float32 // offset  0: view-projection matrix (mat4x4<f32>)
	Position [3]float32  // offset 64: world-space camera position (vec3<f32>)
	_pad     float32     // offset 76: padding to 80 bytes
}

// NewSkyboxUniform builds the uniform the skybox pass binds: the rotation-only view-projection of c.
//
// Parameters:
//   - c: the active camera
//
// Returns:
//   - GPUCameraUniform: the uniform
func NewSkyboxUniform(c Camera) GPUCameraUniform {
	return GPUCameraUniform{
		ViewProj: c.SkyboxViewProjection(),
		Position: c.Position(),
	}
}

// Size returns the size of the GPUCameraUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (80)
func (g *GPUCameraUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the uniform into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPUCameraUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	for i, v := range g.ViewProj {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	for i, v := range g.Position {
		binary.LittleEndian.PutUint32(buf[64+i*4:], math.Float32bits(v))
	}
	return buf
}
