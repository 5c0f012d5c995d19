package camera

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-forward/common"
	"github.com/Carmen-Shannon/oxy-forward/engine/light"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeInput struct {
	keys    map[uint32]bool
	buttons map[int]bool
	x, y    float64
}

func newFakeInput() *fakeInput {
	return &fakeInput{keys: map[uint32]bool{}, buttons: map[int]bool{}}
}

func (f *fakeInput) KeyDown(key uint32) bool { return f.keys[key] }
func (f *fakeInput) CursorPos() (float64, float64) { return f.x, f.y }
func (f *fakeInput) MouseButtonDown(button int) bool { return f.buttons[button] }

func s3(v [3]float32) []float32 { return v[:] }

func newTestCamera(pos, fwd [3]float32) Camera {
	return NewCamera(
		WithFov(common.DegToRad(80)),
		WithAspect(1),
		WithNear(0.1),
		WithFar(50),
		WithController(NewCameraController(WithPosition(pos), WithForward(fwd))),
	)
}

func TestNewCameraNormalizesForward(t *testing.T) {
	c := newTestCamera([3]float32{0, 2, -8}, [3]float32{0, 0, 4})
	assert.InDeltaSlice(t, []float32{0, 0, 1}, s3(c.Forward()), 1e-6)
	assert.Equal(t, [3]float32{0, 1, 0}, c.Up())
	assert.True(t, c.InteractionEnabled())
}

func TestViewMatrixLooksAlongForward(t *testing.T) {
	c := newTestCamera([3]float32{0, 2, -8}, [3]float32{0, 0, 4})
	view := c.ViewMatrix()

	eye := common.TransformPoint(view, [3]float32{0, 2, -8})
	assert.InDeltaSlice(t, []float32{0, 0, 0}, eye[:], 1e-5)

	ahead := common.TransformPoint(view, [3]float32{0, 2, -7})
	assert.InDeltaSlice(t, []float32{0, 0, -1}, ahead[:], 1e-5)
}

func TestProjectionMapsNearAndFarToUnitDepth(t *testing.T) {
	c := newTestCamera([3]float32{0, 0, 0}, [3]float32{0, 0, -1})
	proj := c.ProjectionMatrix()

	near := common.TransformVec4(proj, [4]float32{0, 0, -0.1, 1})
	far := common.TransformVec4(proj, [4]float32{0, 0, -50, 1})
	assert.InDelta(t, 0, near[2]/near[3], 1e-5)
	assert.InDelta(t, 1, far[2]/far[3], 1e-5)
}

func TestMovementKeys(t *testing.T) {
	c := newTestCamera([3]float32{0, 0, 0}, [3]float32{0, 0, 1})
	in := newFakeInput()

	in.keys[common.KeyW] = true
	c.Update(in)
	assert.InDeltaSlice(t, []float32{0, 0, 0.1}, s3(c.Position()), 1e-6)

	in.keys[common.KeyW] = false
	in.keys[common.KeyD] = true
	c.Update(in)
	// right = forward x up = (-1, 0, 0)
	assert.InDeltaSlice(t, []float32{-0.1, 0, 0.1}, s3(c.Position()), 1e-6)

	in.keys[common.KeyD] = false
	in.keys[common.KeyR] = true
	in.keys[common.KeyLeftShift] = true
	c.Update(in)
	assert.InDeltaSlice(t, []float32{-0.1, 0.01, 0.1}, s3(c.Position()), 1e-6)
}

func TestOpposingKeysCancel(t *testing.T) {
	c := newTestCamera([3]float32{1, 2, 3}, [3]float32{0, 0, -1})
	in := newFakeInput()
	for _, k := range []uint32{common.KeyW, common.KeyS, common.KeyA, common.KeyD, common.KeyR, common.KeyF} {
		in.keys[k] = true
	}
	c.Update(in)
	assert.InDeltaSlice(t, []float32{1, 2, 3}, s3(c.Position()), 1e-6)
}

func TestMouseLookRequiresLeftButton(t *testing.T) {
	c := newTestCamera([3]float32{0, 0, 0}, [3]float32{0, 0, -1})
	in := newFakeInput()
	c.Update(in)

	in.x = 100
	c.Update(in)
	assert.InDeltaSlice(t, []float32{0, 0, -1}, s3(c.Forward()), 1e-6)

	in.buttons[common.MouseButtonLeft] = true
	in.x = 200
	c.Update(in)

	angle := float64(100 * DefaultLookSpeed)
	fwd := c.Forward()
	assert.InDelta(t, -math.Sin(angle), fwd[0], 1e-5)
	assert.InDelta(t, 0, fwd[1], 1e-6)
	assert.InDelta(t, -math.Cos(angle), fwd[2], 1e-5)
}

func TestFirstUpdateDoesNotJump(t *testing.T) {
	c := newTestCamera([3]float32{0, 0, 0}, [3]float32{0, 0, -1})
	in := newFakeInput()
	in.buttons[common.MouseButtonLeft] = true
	in.x, in.y = 640, 480
	c.Update(in)
	assert.InDeltaSlice(t, []float32{0, 0, -1}, s3(c.Forward()), 1e-6)
}

func TestPitchKeepsUpOrthogonal(t *testing.T) {
	c := newTestCamera([3]float32{0, 0, 0}, [3]float32{0, 0, -1})
	c.RotatePitch(0.3)
	c.RotateYaw(-0.7)

	fwd, up := c.Forward(), c.Up()
	assert.InDelta(t, 0, common.Dot3(fwd, up), 1e-5)
	assert.InDelta(t, 1, common.Length3(up), 1e-5)
	assert.Greater(t, up[1], float32(0))
	// positive pitch looks down
	assert.Less(t, fwd[1], float32(0))
}

func TestDisabledInteractionOnlyTracksCursor(t *testing.T) {
	c := newTestCamera([3]float32{0, 0, 0}, [3]float32{0, 0, -1})
	in := newFakeInput()
	c.Update(in)

	c.SetInteractionEnabled(false)
	in.keys[common.KeyW] = true
	in.buttons[common.MouseButtonLeft] = true
	in.x = 500
	c.Update(in)
	assert.Equal(t, [3]float32{0, 0, 0}, c.Position())
	assert.InDeltaSlice(t, []float32{0, 0, -1}, s3(c.Forward()), 1e-6)

	c.SetInteractionEnabled(true)
	in.keys[common.KeyW] = false
	c.Update(in)
	assert.InDeltaSlice(t, []float32{0, 0, -1}, s3(c.Forward()), 1e-6)
}

func TestSkyboxViewProjectionIgnoresTranslation(t *testing.T) {
	a := newTestCamera([3]float32{0, 0, 0}, [3]float32{1, 0, -1})
	b := newTestCamera([3]float32{10, -3, 7}, [3]float32{1, 0, -1})

	av, bv := a.SkyboxViewProjection(), b.SkyboxViewProjection()
	assert.InDeltaSlice(t, av[:], bv[:], 1e-5)
	assert.NotEqual(t, a.ViewProjectionMatrix(), b.ViewProjectionMatrix())
}

func TestProjectionIsFixed(t *testing.T) {
	c := newTestCamera([3]float32{0, 0, 0}, [3]float32{0, 0, -1})
	before := c.ProjectionMatrix()
	c.RotateYaw(1)
	c.Update(newFakeInput())
	assert.Equal(t, before, c.ProjectionMatrix())
}

func TestAsSpotLight(t *testing.T) {
	c := newTestCamera([3]float32{5, 5, 5}, [3]float32{-5, -5, -5})
	color := [3]float32{0.902, 0.043, 0.831}

	l, err := c.AsSpotLight(color, 12.5, 17.5, 50)
	require.NoError(t, err)
	assert.Equal(t, [3]float32{5, 5, 5}, l.Position)
	inv := float32(1 / math.Sqrt(3))
	assert.InDeltaSlice(t, []float32{-inv, -inv, -inv}, l.Direction[:], 1e-5)
	assert.Equal(t, color, l.Diffuse)
	assert.Equal(t, color, l.Specular)
	assert.InDelta(t, 12.5*math.Pi/180, l.InnerCutoff, 1e-5)
	assert.InDelta(t, 17.5*math.Pi/180, l.OuterCutoff, 1e-5)
	assert.Equal(t, common.MobilityDynamic, l.Mobility)

	_, err = c.AsSpotLight(color, 20, 10, 50)
	assert.ErrorIs(t, err, light.ErrCutoffOrder)
}

func TestCameraUniformLayout(t *testing.T) {
	c := newTestCamera([3]float32{1, 2, 3}, [3]float32{0, 0, -1})
	u := NewSkyboxUniform(c)
	assert.Equal(t, 80, u.Size())

	buf := u.Marshal()
	require.Len(t, buf, 80)
	assert.Equal(t, float32(3), math.Float32frombits(binary.LittleEndian.Uint32(buf[72:])))
	assert.Equal(t, u.ViewProj[5], math.Float32frombits(binary.LittleEndian.Uint32(buf[20:])))
	assert.Contains(t, GPUCameraUniformSource, "struct CameraUniform")
}
