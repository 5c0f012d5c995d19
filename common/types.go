// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/cogentcore/webgpu/wgpu"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrUnsupportedChannels is returned when a texture reports a channel count other than 3 or 4.
var ErrUnsupportedChannels = errors.New("unsupported texture channel count")

// TextureStagingData holds RGBA pixel data for a texture binding pending GPU upload.
// This is primarily used in the BindGroupProvider to stage texture data before creating the GPU texture and bind group.
type TextureStagingData struct {
	// Pixels is the byte slice representing the actual pixel data for the texture. It is always RGBA, 4 bytes per pixel,
	// regardless of the channel count of the source image.
	Pixels []byte
	// Width is the width of the texture in pixels.
	Width uint32
	// Height is the height of the texture in pixels.
	Height uint32
	// Channels is the channel count of the source image: 3 for opaque sources, 4 for sources carrying alpha.
	Channels int
}

// SamplerStagingData holds the configuration for a sampler binding pending GPU creation.
// This is primarily used in the BindGroupProvider to stage sampler data before creating the GPU sampler and bind group.
type SamplerStagingData struct {
	// AddressModeU, AddressModeV, AddressModeW specify the addressing mode for texture coordinates outside the [0, 1] range in each dimension (U, V, W).
	AddressModeU, AddressModeV, AddressModeW wgpu.AddressMode
	// MagFilter and MinFilter specify the filtering mode for magnification and minification.
	MagFilter, MinFilter wgpu.FilterMode
	// MipmapFilter specifies the filtering mode for mipmap level selection.
	MipmapFilter wgpu.MipmapFilterMode
	// LodMinClamp and LodMaxClamp specify the minimum and maximum level of detail (LOD) for mipmapping.
	LodMinClamp, LodMaxClamp float32
	// Compare specifies the comparison function for comparison samplers.
	Compare wgpu.CompareFunction
	// MaxAnisotropy specifies the maximum anisotropy level for anisotropic filtering.
	MaxAnisotropy uint16
}

// DecodeTexture decodes an encoded image (PNG, JPEG, BMP, TIFF or WebP) into RGBA staging data.
// The source channel count is recorded so callers can tell opaque maps from maps carrying alpha.
//
// Parameters:
//   - r: reader over the encoded image bytes
//
// Returns:
//   - TextureStagingData: the decoded pixels
//   - error: error if the image cannot be decoded
func DecodeTexture(r io.Reader) (TextureStagingData, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return TextureStagingData{}, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)

	channels := 4
	if o, ok := img.(interface{ Opaque() bool }); ok && o.Opaque() {
		channels = 3
	}
	// jpeg never carries alpha even when the decoded type does not advertise it
	if format == "jpeg" {
		channels = 3
	}

	return TextureStagingData{
		Pixels:   rgba.Pix,
		Width:    uint32(bounds.Dx()),
		Height:   uint32(bounds.Dy()),
		Channels: channels,
	}, nil
}

// DecodeTextureFile opens and decodes an image file from disk.
//
// Parameters:
//   - path: the image file path
//
// Returns:
//   - TextureStagingData: the decoded pixels
//   - error: error if the file cannot be opened or decoded
func DecodeTextureFile(path string) (TextureStagingData, error) {
	f, err := os.Open(path)
	if err != nil {
		return TextureStagingData{}, fmt.Errorf("failed to open texture file %s: %w", path, err)
	}
	defer f.Close()

	data, err := DecodeTexture(f)
	if err != nil {
		return TextureStagingData{}, fmt.Errorf("%s: %w", path, err)
	}
	return data, nil
}

// TextureFormatForChannels selects the GPU texture format for a decoded image. WebGPU has no 3-channel 8 bit format,
// so opaque sources are uploaded as RGBA with alpha forced to one at decode time.
//
// Parameters:
//   - channels: the source channel count reported by DecodeTexture
//   - srgb: true for color data (diffuse maps, skybox faces), false for data maps such as normal maps
//
// Returns:
//   - wgpu.TextureFormat: the upload format
//   - error: ErrUnsupportedChannels for anything other than 3 or 4
func TextureFormatForChannels(channels int, srgb bool) (wgpu.TextureFormat, error) {
	switch channels {
	case 3, 4:
		if !srgb {
			return wgpu.TextureFormatRGBA8Unorm, nil
		}
		return wgpu.TextureFormatRGBA8UnormSrgb, nil
	default:
		return wgpu.TextureFormatUndefined, fmt.Errorf("%w: %d", ErrUnsupportedChannels, channels)
	}
}

// SolidTexture builds a 1x1 texture of a single RGBA color, used as a stand-in when a map is absent.
//
// Parameters:
//   - r, g, b, a: the texel value
//
// Returns:
//   - TextureStagingData: a 1x1 texture
func SolidTexture(r, g, b, a byte) TextureStagingData {
	return TextureStagingData{Pixels: []byte{r, g, b, a}, Width: 1, Height: 1, Channels: 4}
}

// Mobility tags scene content that never changes after setup (Static) apart from content updated every tick (Dynamic).
type Mobility int

const (
	// MobilityStatic content is set up once.
	MobilityStatic Mobility = iota
	// MobilityDynamic content is updated by the per-tick scene update.
	MobilityDynamic
)

// String returns the lower case name of the mobility tag.
func (m Mobility) String() string {
	switch m {
	case MobilityStatic:
		return "static"
	case MobilityDynamic:
		return "dynamic"
	default:
		return "unknown"
	}
}
