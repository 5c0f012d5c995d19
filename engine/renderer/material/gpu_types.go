package material

import (
	"encoding/binary"
	"unsafe"
)

// GPUMaterialFlagsSize is the marshalled size of GPUMaterialFlags.
const GPUMaterialFlagsSize = 12

// GPUMaterialFlags tells the lit shaders which optional inputs to use for one draw. The flags live inside the
// per-draw object uniform rather than in a bind group of their own.
//
//	offset 0: use_blinn       u32
//	offset 4: has_diffuse_map u32
//	offset 8: has_normal_map  u32
type GPUMaterialFlags struct {
	UseBlinn      uint32
	HasDiffuseMap uint32
	HasNormalMap  uint32
}

// NewGPUMaterialFlags derives the flags for one draw from the renderable's maps and the current toggles.
//
// Parameters:
//   - useBlinn: Blinn-Phong instead of Phong specular
//   - hasDiffuse: the renderable has a diffuse map and diffuse mapping is enabled
//   - hasNormal: the renderable has a normal map and normal mapping is enabled
//
// Returns:
//   - GPUMaterialFlags: the packed flags
func NewGPUMaterialFlags(useBlinn, hasDiffuse, hasNormal bool) GPUMaterialFlags {
	return GPUMaterialFlags{
		UseBlinn:      boolToU32(useBlinn),
		HasDiffuseMap: boolToU32(hasDiffuse),
		HasNormalMap:  boolToU32(hasNormal),
	}
}

func boolToU32(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

// Size returns the size of the GPUMaterialFlags struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUMaterialFlags) Size() int {
	return int(unsafe.Sizeof(*g))
}

// MarshalInto writes the flags into buf, which must hold at least GPUMaterialFlagsSize bytes.
//
// Parameters:
//   - buf: destination buffer
func (g *GPUMaterialFlags) MarshalInto(buf []byte) {
	binary.LittleEndian.PutUint32(buf[0:4], g.UseBlinn)
	binary.LittleEndian.PutUint32(buf[4:8], g.HasDiffuseMap)
	binary.LittleEndian.PutUint32(buf[8:12], g.HasNormalMap)
}

// Marshal serializes the flags into a fresh 12-byte buffer.
//
// Returns:
//   - []byte: buffer ready for GPU upload.
func (g *GPUMaterialFlags) Marshal() []byte {
	buf := make([]byte, GPUMaterialFlagsSize)
	g.MarshalInto(buf)
	return buf
}
