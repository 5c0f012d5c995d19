package common

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-5

func TestMulMat4Identity(t *testing.T) {
	m := TRS([3]float32{1, 2, 3}, [3]float32{2, 2, 2})
	assert.Equal(t, m, MulMat4(IdentityMat4(), m))
	assert.Equal(t, m, MulMat4(m, IdentityMat4()))
}

func TestTRSAppliesScaleBeforeTranslation(t *testing.T) {
	m := TRS([3]float32{0, 8, 0}, [3]float32{2, 2, 2})
	p := TransformPoint(m, [3]float32{1, 0, 0})
	assert.InDeltaSlice(t, []float32{2, 8, 0}, p[:], tol)
}

func TestRotateAxisQuarterTurn(t *testing.T) {
	var r [16]float32
	RotateAxis(r[:], DegToRad(90), [3]float32{0, 1, 0})
	p := TransformPoint(r, [3]float32{1, 0, 0})
	assert.InDeltaSlice(t, []float32{0, 0, -1}, p[:], tol)

	RotateAxis(r[:], DegToRad(90), [3]float32{1, 0, 0})
	p = TransformPoint(r, [3]float32{0, 1, 0})
	assert.InDeltaSlice(t, []float32{0, 0, 1}, p[:], tol)
}

func TestRotateAxisZeroAxisIsIdentity(t *testing.T) {
	var r [16]float32
	RotateAxis(r[:], 1, [3]float32{})
	assert.Equal(t, IdentityMat4(), r)
}

func TestInvert4(t *testing.T) {
	m := TRS([3]float32{3, -1, 4}, [3]float32{0.5, 2, 4})
	var inv [16]float32
	require.True(t, Invert4(inv[:], m[:]))
	prod := MulMat4(m, inv)
	id := IdentityMat4()
	assert.InDeltaSlice(t, id[:], prod[:], tol)

	var singular [16]float32
	assert.False(t, Invert4(inv[:], singular[:]))
}

func TestNormalMatrixUniformScale(t *testing.T) {
	m := TRS([3]float32{5, 5, 5}, [3]float32{2, 2, 2})
	n := NormalMatrix(m)
	// inverse-transpose of uniform scale 2 is uniform scale 0.5, translation dropped
	assert.InDelta(t, 0.5, n[0], tol)
	assert.InDelta(t, 0.5, n[5], tol)
	assert.InDelta(t, 0.5, n[10], tol)
	assert.InDelta(t, 0, n[12], tol)
	assert.InDelta(t, 1, n[15], tol)
}

func TestNormalMatrixSingularFallsBack(t *testing.T) {
	var m [16]float32
	assert.Equal(t, IdentityMat4(), NormalMatrix(m))
}

func TestStripTranslation(t *testing.T) {
	var view [16]float32
	LookAt(view[:], 3, 4, 5, 3, 4, 4, 0, 1, 0)
	s := StripTranslation(view)
	assert.InDelta(t, 0, s[12], tol)
	assert.InDelta(t, 0, s[13], tol)
	assert.InDelta(t, 0, s[14], tol)
	assert.InDelta(t, 1, s[15], tol)
	assert.Equal(t, view[0], s[0])
	assert.Equal(t, view[10], s[10])
}

func TestLookAtMapsEyeToOrigin(t *testing.T) {
	var view [16]float32
	LookAt(view[:], 0, 2, -8, 0, 2, -4, 0, 1, 0)
	p := TransformPoint(view, [3]float32{0, 2, -8})
	assert.InDeltaSlice(t, []float32{0, 0, 0}, p[:], tol)
	// target lies straight ahead on -Z in view space
	p = TransformPoint(view, [3]float32{0, 2, -4})
	assert.InDeltaSlice(t, []float32{0, 0, -4}, p[:], tol)
}

func TestVectorHelpers(t *testing.T) {
	assert.Equal(t, [3]float32{0, 0, 1}, Cross3([3]float32{1, 0, 0}, [3]float32{0, 1, 0}))
	assert.Equal(t, float32(32), Dot3([3]float32{1, 2, 3}, [3]float32{4, 5, 6}))
	n := Normalize3([3]float32{3, 0, 4})
	assert.InDeltaSlice(t, []float32{0.6, 0, 0.8}, n[:], tol)
	assert.Equal(t, [3]float32{}, Normalize3([3]float32{}))
	assert.InDelta(t, math.Pi/2, DegToRad(90), tol)
}

func TestDecodeTextureReportsChannels(t *testing.T) {
	opaque := image.NewRGBA(image.Rect(0, 0, 2, 1))
	opaque.Set(0, 0, color.RGBA{R: 255, A: 255})
	opaque.Set(1, 0, color.RGBA{G: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, opaque))

	data, err := DecodeTexture(&buf)
	require.NoError(t, err)
	assert.Equal(t, 3, data.Channels)
	assert.Equal(t, uint32(2), data.Width)
	assert.Equal(t, uint32(1), data.Height)
	assert.Equal(t, []byte{255, 0, 0, 255, 0, 255, 0, 255}, data.Pixels)

	translucent := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	translucent.Set(0, 0, color.NRGBA{B: 255, A: 128})
	buf.Reset()
	require.NoError(t, png.Encode(&buf, translucent))

	data, err = DecodeTexture(&buf)
	require.NoError(t, err)
	assert.Equal(t, 4, data.Channels)
}

func TestDecodeTextureRejectsGarbage(t *testing.T) {
	_, err := DecodeTexture(bytes.NewReader([]byte("not an image")))
	assert.Error(t, err)
}

func TestTextureFormatForChannels(t *testing.T) {
	_, err := TextureFormatForChannels(3, true)
	assert.NoError(t, err)
	_, err = TextureFormatForChannels(4, false)
	assert.NoError(t, err)
	_, err = TextureFormatForChannels(1, true)
	assert.ErrorIs(t, err, ErrUnsupportedChannels)
}

func TestCoalesce(t *testing.T) {
	assert.Equal(t, 3, Coalesce(0, 3, 4))
	assert.Equal(t, "", Coalesce("", ""))
}
