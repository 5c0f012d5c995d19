package light

import (
	_ "embed"
	"encoding/binary"
	"math"
)

// GPUPointLightSource is the canonical WGSL definition of the PointLight struct.
// Matches GPUPointLight layout exactly (48 bytes, uniform aligned).
//
//go:embed assets/point_light.wgsl
var GPUPointLightSource string

// GPUSpotLightSource is the canonical WGSL definition of the SpotLight struct.
// Matches GPUSpotLight layout exactly (64 bytes, uniform aligned).
//
//go:embed assets/spot_light.wgsl
var GPUSpotLightSource string

// GPUDirectionalLightSource is the canonical WGSL definition of the DirectionalLight struct.
// Matches GPUDirectionalLight layout exactly (48 bytes, uniform aligned).
//
//go:embed assets/directional_light.wgsl
var GPUDirectionalLightSource string

// Batch sources wrap each light struct in a fixed-size array followed by the live count. They expect a
// MAX_LIGHTS constant to be declared ahead of them, which the shader pre-processor emits from its defines.
var (
	//go:embed assets/point_light_batch.wgsl
	GPUPointLightBatchSource string

	//go:embed assets/spot_light_batch.wgsl
	GPUSpotLightBatchSource string

	//go:embed assets/directional_light_batch.wgsl
	GPUDirectionalLightBatchSource string
)

// Shading snippets. ShadingCommonSource declares the Surface struct and the shared specular and attenuation helpers;
// each per-type snippet defines lightContribution for its light struct so one lit shader can be specialized per pass.
var (
	//go:embed assets/shading_common.wgsl
	ShadingCommonSource string

	//go:embed assets/point_light_shading.wgsl
	PointLightShadingSource string

	//go:embed assets/spot_light_shading.wgsl
	SpotLightShadingSource string

	//go:embed assets/directional_light_shading.wgsl
	DirectionalLightShadingSource string
)

// GPUMarkerParamsSource is the canonical WGSL definition of the MarkerParams struct used by the light marker pass.
// Matches GPUMarkerParams layout exactly (16 bytes).
//
//go:embed assets/marker_params.wgsl
var GPUMarkerParamsSource string

// Byte sizes of the marshalled structs.
const (
	GPUMarkerParamsSize = 16

	GPUPointLightSize       = 48
	GPUSpotLightSize        = 64
	GPUDirectionalLightSize = 48

	// batch uniforms pad the trailing count to a full 16 byte row
	GPUPointLightBatchSize       = MaxPointLightsPerPass*GPUPointLightSize + 16
	GPUSpotLightBatchSize        = MaxSpotLightsPerPass*GPUSpotLightSize + 16
	GPUDirectionalLightBatchSize = MaxDirectionalLights*GPUDirectionalLightSize + 16
)

func putF32(buf []byte, off int, v float32) {
	binary.LittleEndian.PutUint32(buf[off:off+4], math.Float32bits(v))
}

func putVec3(buf []byte, off int, v [3]float32) {
	putF32(buf, off, v[0])
	putF32(buf, off+4, v[1])
	putF32(buf, off+8, v[2])
}

// GPUPointLight is the GPU-aligned representation of a point light.
//
//	offset  0: position  vec3<f32>, offset 12: linear    f32
//	offset 16: diffuse   vec3<f32>, offset 28: quadratic f32
//	offset 32: specular  vec3<f32>, offset 44: padding
type GPUPointLight struct {
	Position  [3]float32
	Linear    float32
	Diffuse   [3]float32
	Quadratic float32
	Specular  [3]float32
}

// ToGPU converts a point light to its GPU layout.
func (p PointLight) ToGPU() GPUPointLight {
	return GPUPointLight{
		Position:  p.Position,
		Linear:    p.Linear,
		Diffuse:   p.Diffuse,
		Quadratic: p.Quadratic,
		Specular:  p.Specular,
	}
}

// MarshalInto writes the light into buf, which must hold at least GPUPointLightSize bytes.
//
// Parameters:
//   - buf: destination buffer
func (g *GPUPointLight) MarshalInto(buf []byte) {
	putVec3(buf, 0, g.Position)
	putF32(buf, 12, g.Linear)
	putVec3(buf, 16, g.Diffuse)
	putF32(buf, 28, g.Quadratic)
	putVec3(buf, 32, g.Specular)
	putF32(buf, 44, 0)
}

// Marshal serializes the light into a fresh 48-byte buffer.
//
// Returns:
//   - []byte: buffer ready for GPU upload
func (g *GPUPointLight) Marshal() []byte {
	buf := make([]byte, GPUPointLightSize)
	g.MarshalInto(buf)
	return buf
}

// GPUSpotLight is the GPU-aligned representation of a spot light. Cutoffs are cosines.
//
//	offset  0: position  vec3<f32>, offset 12: linear    f32
//	offset 16: direction vec3<f32>, offset 28: quadratic f32
//	offset 32: diffuse   vec3<f32>, offset 44: innerCos  f32
//	offset 48: specular  vec3<f32>, offset 60: outerCos  f32
type GPUSpotLight struct {
	Position  [3]float32
	Linear    float32
	Direction [3]float32
	Quadratic float32
	Diffuse   [3]float32
	InnerCos  float32
	Specular  [3]float32
	OuterCos  float32
}

// ToGPU converts a spot light to its GPU layout, turning the radian cutoffs into cosines.
func (s SpotLight) ToGPU() GPUSpotLight {
	return GPUSpotLight{
		Position:  s.Position,
		Linear:    s.Linear,
		Direction: s.Direction,
		Quadratic: s.Quadratic,
		Diffuse:   s.Diffuse,
		InnerCos:  s.InnerCos(),
		Specular:  s.Specular,
		OuterCos:  s.OuterCos(),
	}
}

// MarshalInto writes the light into buf, which must hold at least GPUSpotLightSize bytes.
//
// Parameters:
//   - buf: destination buffer
func (g *GPUSpotLight) MarshalInto(buf []byte) {
	putVec3(buf, 0, g.Position)
	putF32(buf, 12, g.Linear)
	putVec3(buf, 16, g.Direction)
	putF32(buf, 28, g.Quadratic)
	putVec3(buf, 32, g.Diffuse)
	putF32(buf, 44, g.InnerCos)
	putVec3(buf, 48, g.Specular)
	putF32(buf, 60, g.OuterCos)
}

// Marshal serializes the light into a fresh 64-byte buffer.
//
// Returns:
//   - []byte: buffer ready for GPU upload
func (g *GPUSpotLight) Marshal() []byte {
	buf := make([]byte, GPUSpotLightSize)
	g.MarshalInto(buf)
	return buf
}

// GPUDirectionalLight is the GPU-aligned representation of a directional light.
//
//	offset  0: direction vec3<f32>, offset 12: padding
//	offset 16: diffuse   vec3<f32>, offset 28: padding
//	offset 32: specular  vec3<f32>, offset 44: padding
type GPUDirectionalLight struct {
	Direction [3]float32
	Diffuse   [3]float32
	Specular  [3]float32
}

// ToGPU converts a directional light to its GPU layout.
func (d DirectionalLight) ToGPU() GPUDirectionalLight {
	return GPUDirectionalLight{Direction: d.Direction, Diffuse: d.Diffuse, Specular: d.Specular}
}

// MarshalInto writes the light into buf, which must hold at least GPUDirectionalLightSize bytes.
//
// Parameters:
//   - buf: destination buffer
func (g *GPUDirectionalLight) MarshalInto(buf []byte) {
	putVec3(buf, 0, g.Direction)
	putF32(buf, 12, 0)
	putVec3(buf, 16, g.Diffuse)
	putF32(buf, 28, 0)
	putVec3(buf, 32, g.Specular)
	putF32(buf, 44, 0)
}

// MarshalPointBatch packs up to MaxPointLightsPerPass lights followed by the live count.
//
// Parameters:
//   - lights: the batch; entries beyond the per-pass maximum are ignored
//
// Returns:
//   - []byte: GPUPointLightBatchSize bytes ready for GPU upload
func MarshalPointBatch(lights []PointLight) []byte {
	buf := make([]byte, GPUPointLightBatchSize)
	n := min(len(lights), MaxPointLightsPerPass)
	for i := 0; i < n; i++ {
		g := lights[i].ToGPU()
		g.MarshalInto(buf[i*GPUPointLightSize:])
	}
	binary.LittleEndian.PutUint32(buf[MaxPointLightsPerPass*GPUPointLightSize:], uint32(n))
	return buf
}

// MarshalSpotBatch packs up to MaxSpotLightsPerPass lights followed by the live count.
//
// Parameters:
//   - lights: the batch; entries beyond the per-pass maximum are ignored
//
// Returns:
//   - []byte: GPUSpotLightBatchSize bytes ready for GPU upload
func MarshalSpotBatch(lights []SpotLight) []byte {
	buf := make([]byte, GPUSpotLightBatchSize)
	n := min(len(lights), MaxSpotLightsPerPass)
	for i := 0; i < n; i++ {
		g := lights[i].ToGPU()
		g.MarshalInto(buf[i*GPUSpotLightSize:])
	}
	binary.LittleEndian.PutUint32(buf[MaxSpotLightsPerPass*GPUSpotLightSize:], uint32(n))
	return buf
}

// MarshalDirectionalBatch packs the directional light, if any, followed by the live count (0 or 1).
//
// Parameters:
//   - sun: the light or nil
//
// Returns:
//   - []byte: GPUDirectionalLightBatchSize bytes ready for GPU upload
func MarshalDirectionalBatch(sun *DirectionalLight) []byte {
	buf := make([]byte, GPUDirectionalLightBatchSize)
	var n uint32
	if sun != nil {
		g := sun.ToGPU()
		g.MarshalInto(buf)
		n = 1
	}
	binary.LittleEndian.PutUint32(buf[MaxDirectionalLights*GPUDirectionalLightSize:], n)
	return buf
}

// GPUMarkerParams carries the framebuffer size and the on-screen marker size in pixels, used to expand each
// light marker into a fixed-size quad.
type GPUMarkerParams struct {
	Viewport  [2]float32
	PointSize float32
}

// Marshal serializes the parameters into a 16-byte buffer.
//
// Returns:
//   - []byte: buffer ready for GPU upload.
func (g *GPUMarkerParams) Marshal() []byte {
	buf := make([]byte, GPUMarkerParamsSize)
	putF32(buf, 0, g.Viewport[0])
	putF32(buf, 4, g.Viewport[1])
	putF32(buf, 8, g.PointSize)
	return buf
}
