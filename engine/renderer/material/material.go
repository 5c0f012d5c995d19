// Package material holds the texture handles a renderable samples from and the per-draw material flags that tell the
// lit shaders which of those textures to use.
package material

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-forward/common"
	"github.com/cogentcore/webgpu/wgpu"
)

// TextureKind distinguishes flat textures from cube maps.
type TextureKind int

const (
	// Texture2D is a single image sampled with uv coordinates.
	Texture2D TextureKind = iota
	// TextureCube is six square faces sampled with a direction vector.
	TextureCube
)

// CubeFaceCount is the number of faces in a cube map, ordered +X, -X, +Y, -Y, +Z, -Z (right, left, top, bottom,
// front, back).
const CubeFaceCount = 6

// ErrCubemapMismatch is returned when cube map faces differ in size or channel count, or are not square.
var ErrCubemapMismatch = errors.New("cube map faces must be square and share size and channel count")

// texture is the implementation of the Texture interface.
type texture struct {
	name    string
	kind    TextureKind
	srgb    bool
	staging common.TextureStagingData
	faces   [CubeFaceCount]common.TextureStagingData
	view    *wgpu.TextureView
}

// Texture is a decoded image waiting for, or already holding, its GPU texture view. Staging data stays on the CPU
// side after upload so a texture can be re-uploaded after device loss.
type Texture interface {
	// Name retrieves the texture identifier, usually its source path.
	//
	// Returns:
	//   - string: the texture name
	Name() string

	// Kind reports whether this is a flat texture or a cube map.
	//
	// Returns:
	//   - TextureKind: Texture2D or TextureCube
	Kind() TextureKind

	// SRGB reports whether the texels hold color data that should be decoded from sRGB when sampled.
	//
	// Returns:
	//   - bool: true for color data, false for data maps such as normal maps
	SRGB() bool

	// Staging retrieves the pixels of a flat texture.
	//
	// Returns:
	//   - common.TextureStagingData: the pixels; empty for cube maps
	Staging() common.TextureStagingData

	// Faces retrieves the six faces of a cube map.
	//
	// Returns:
	//   - [6]common.TextureStagingData: the faces; empty for flat textures
	Faces() [CubeFaceCount]common.TextureStagingData

	// View retrieves the GPU texture view, or nil before upload.
	//
	// Returns:
	//   - *wgpu.TextureView: the view
	View() *wgpu.TextureView

	// SetView stores the GPU texture view created by the renderer.
	//
	// Parameters:
	//   - view: the uploaded texture view
	SetView(view *wgpu.TextureView)

	// Release frees the GPU texture view, if any.
	Release()
}

var _ Texture = &texture{}

// NewTexture creates a flat texture from decoded pixels.
//
// Parameters:
//   - staging: the decoded pixels
//   - options: variadic list of TextureBuilderOption functions
//
// Returns:
//   - Texture: the texture handle
//   - error: error if the pixel data does not match its dimensions
func NewTexture(staging common.TextureStagingData, options ...TextureBuilderOption) (Texture, error) {
	if err := checkStaging(staging); err != nil {
		return nil, err
	}
	t := &texture{kind: Texture2D, srgb: true, staging: staging}
	for _, opt := range options {
		opt(t)
	}
	return t, nil
}

// NewCubeTexture creates a cube map from six decoded faces in +X, -X, +Y, -Y, +Z, -Z order.
//
// Parameters:
//   - faces: the decoded faces
//   - options: variadic list of TextureBuilderOption functions
//
// Returns:
//   - Texture: the cube map handle
//   - error: ErrCubemapMismatch if the faces are not square or disagree in size or channel count
func NewCubeTexture(faces [CubeFaceCount]common.TextureStagingData, options ...TextureBuilderOption) (Texture, error) {
	first := faces[0]
	if first.Width != first.Height {
		return nil, fmt.Errorf("%w: face 0 is %dx%d", ErrCubemapMismatch, first.Width, first.Height)
	}
	for i, f := range faces {
		if err := checkStaging(f); err != nil {
			return nil, fmt.Errorf("face %d: %w", i, err)
		}
		if f.Width != first.Width || f.Height != first.Height || f.Channels != first.Channels {
			return nil, fmt.Errorf("%w: face %d is %dx%d with %d channels, face 0 is %dx%d with %d channels",
				ErrCubemapMismatch, i, f.Width, f.Height, f.Channels, first.Width, first.Height, first.Channels)
		}
	}
	t := &texture{kind: TextureCube, srgb: true, faces: faces}
	for _, opt := range options {
		opt(t)
	}
	return t, nil
}

func checkStaging(s common.TextureStagingData) error {
	if s.Width == 0 || s.Height == 0 {
		return fmt.Errorf("texture has zero size %dx%d", s.Width, s.Height)
	}
	if want := int(s.Width) * int(s.Height) * 4; len(s.Pixels) != want {
		return fmt.Errorf("texture %dx%d needs %d bytes of RGBA pixels, got %d", s.Width, s.Height, want, len(s.Pixels))
	}
	if _, err := common.TextureFormatForChannels(s.Channels, true); err != nil {
		return err
	}
	return nil
}

func (t *texture) Name() string {
	return t.name
}

func (t *texture) Kind() TextureKind {
	return t.kind
}

func (t *texture) SRGB() bool {
	return t.srgb
}

func (t *texture) Staging() common.TextureStagingData {
	return t.staging
}

func (t *texture) Faces() [CubeFaceCount]common.TextureStagingData {
	return t.faces
}

func (t *texture) View() *wgpu.TextureView {
	return t.view
}

func (t *texture) SetView(view *wgpu.TextureView) {
	t.view = view
}

func (t *texture) Release() {
	if t.view != nil {
		t.view.Release()
		t.view = nil
	}
}
