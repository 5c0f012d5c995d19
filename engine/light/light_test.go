package light

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-forward/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttenuationCoefficientsBreakpoints(t *testing.T) {
	cases := []struct {
		distance  float32
		linear    float32
		quadratic float32
	}{
		{0, 0.7, 1.8},
		{7, 0.7, 1.8},
		{7.01, 0.35, 0.44},
		{13, 0.35, 0.44},
		{20, 0.22, 0.2},
		{32, 0.14, 0.07},
		{49.9, 0.09, 0.032},
		{50, 0.09, 0.032},
		{50.01, 0.07, 0.017},
		{65, 0.07, 0.017},
		{100, 0.045, 0.0075},
		{160, 0.027, 0.0028},
		{200, 0.022, 0.0019},
		{325, 0.014, 0.0007},
		{600, 0.007, 0.0002},
		{3250, 0.0014, 0.000007},
		{3250.5, 0.0001, 0.0000001},
		{1e6, 0.0001, 0.0000001},
	}
	for _, c := range cases {
		linear, quadratic := AttenuationCoefficients(c.distance)
		assert.Equal(t, c.linear, linear, "linear at %v", c.distance)
		assert.Equal(t, c.quadratic, quadratic, "quadratic at %v", c.distance)
	}
}

func TestNewPointLightDerivesAttenuation(t *testing.T) {
	p := NewPointLight(
		WithPosition(3, 2, -4),
		WithDiffuse(0.6, 0.6, 0),
		WithSpecular(1, 1, 0),
		WithMaxDistance(50),
	)
	assert.Equal(t, [3]float32{3, 2, -4}, p.Position)
	assert.Equal(t, float32(0.09), p.Linear)
	assert.Equal(t, float32(0.032), p.Quadratic)
	assert.Equal(t, common.MobilityStatic, p.Mobility)
}

func TestNewSpotLightStoresRadiansAndNormalizesDirection(t *testing.T) {
	s, err := NewSpotLight(
		WithPosition(0, 2, 4),
		WithDirection(0, -1, -3),
		WithCutoffDegrees(12.5, 17.5),
	)
	require.NoError(t, err)
	assert.InDelta(t, 12.5*math.Pi/180, s.InnerCutoff, 1e-6)
	assert.InDelta(t, 17.5*math.Pi/180, s.OuterCutoff, 1e-6)
	assert.InDelta(t, 1, common.Length3(s.Direction), 1e-6)
	assert.InDelta(t, math.Cos(12.5*math.Pi/180), s.InnerCos(), 1e-6)
	assert.Greater(t, s.InnerCos(), s.OuterCos())
}

func TestNewSpotLightRejectsInvertedCutoffs(t *testing.T) {
	_, err := NewSpotLight(WithCutoffDegrees(20, 10))
	assert.ErrorIs(t, err, ErrCutoffOrder)
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	_, ok := r.DirectionalLight()
	assert.False(t, ok)

	path := r.AddPointLight(NewPointLight(WithDiffuse(0.7, 0, 0)))
	assert.Equal(t, PathLightIndex, path)
	assert.Equal(t, 1, r.AddPointLight(NewPointLight()))

	require.NoError(t, r.SetPointLightPosition(PathLightIndex, [3]float32{1, 2, 3}))
	p, err := r.PointLight(PathLightIndex)
	require.NoError(t, err)
	assert.Equal(t, [3]float32{1, 2, 3}, p.Position)
	assert.Equal(t, [3]float32{1, 2, 3}, r.PointLights()[0].Position)

	assert.ErrorIs(t, r.SetPointLightPosition(2, [3]float32{}), ErrLightIndex)
	_, err = r.PointLight(-1)
	assert.ErrorIs(t, err, ErrLightIndex)
	_, err = r.SpotLight(0)
	assert.ErrorIs(t, err, ErrLightIndex)

	r.SetDirectionalLight(NewDirectionalLight(WithDirection(-1, -1, -1)))
	sun, ok := r.DirectionalLight()
	require.True(t, ok)
	assert.InDelta(t, -1/math.Sqrt(3), sun.Direction[0], 1e-6)

	r.ClearDirectionalLight()
	_, ok = r.DirectionalLight()
	assert.False(t, ok)
}

func TestRegistryListsAreCopies(t *testing.T) {
	r := NewRegistry()
	r.AddPointLight(NewPointLight(WithPosition(1, 1, 1)))
	spot, err := NewSpotLight(WithPosition(2, 2, 2))
	require.NoError(t, err)
	r.AddSpotLight(spot)

	points := r.PointLights()
	points[0].Position = [3]float32{9, 9, 9}
	spots := r.SpotLights()
	spots[0].Position = [3]float32{9, 9, 9}

	p, err := r.PointLight(0)
	require.NoError(t, err)
	assert.Equal(t, [3]float32{1, 1, 1}, p.Position)
	s, err := r.SpotLight(0)
	require.NoError(t, err)
	assert.Equal(t, [3]float32{2, 2, 2}, s.Position)
}

func TestMarshalPointBatchLayout(t *testing.T) {
	lights := []PointLight{
		NewPointLight(WithPosition(1, 2, 3), WithDiffuse(0.5, 0.25, 0), WithSpecular(1, 0, 1)),
		NewPointLight(WithPosition(4, 5, 6)),
	}
	buf := MarshalPointBatch(lights)
	require.Len(t, buf, GPUPointLightBatchSize)

	f := func(off int) float32 { return math.Float32frombits(binary.LittleEndian.Uint32(buf[off:])) }
	assert.Equal(t, float32(1), f(0))
	assert.Equal(t, float32(3), f(8))
	assert.Equal(t, float32(0.09), f(12))
	assert.Equal(t, float32(0.5), f(16))
	assert.Equal(t, float32(0.032), f(28))
	assert.Equal(t, float32(1), f(40))
	assert.Equal(t, float32(4), f(GPUPointLightSize))
	assert.Equal(t, uint32(2), binary.LittleEndian.Uint32(buf[MaxPointLightsPerPass*GPUPointLightSize:]))
}

func TestMarshalSpotBatchUsesCosines(t *testing.T) {
	s, err := NewSpotLight(WithCutoffDegrees(12.5, 17.5))
	require.NoError(t, err)
	buf := MarshalSpotBatch([]SpotLight{s})
	inner := math.Float32frombits(binary.LittleEndian.Uint32(buf[44:]))
	outer := math.Float32frombits(binary.LittleEndian.Uint32(buf[60:]))
	assert.InDelta(t, math.Cos(12.5*math.Pi/180), inner, 1e-6)
	assert.InDelta(t, math.Cos(17.5*math.Pi/180), outer, 1e-6)
	assert.Equal(t, uint32(1), binary.LittleEndian.Uint32(buf[MaxSpotLightsPerPass*GPUSpotLightSize:]))
}

func TestMarshalDirectionalBatchCount(t *testing.T) {
	buf := MarshalDirectionalBatch(nil)
	assert.Equal(t, uint32(0), binary.LittleEndian.Uint32(buf[GPUDirectionalLightSize:]))

	sun := NewDirectionalLight()
	buf = MarshalDirectionalBatch(&sun)
	assert.Equal(t, uint32(1), binary.LittleEndian.Uint32(buf[GPUDirectionalLightSize:]))
	assert.Equal(t, float32(-1), math.Float32frombits(binary.LittleEndian.Uint32(buf[4:])))
}

func TestMarkerParamsLayout(t *testing.T) {
	p := GPUMarkerParams{Viewport: [2]float32{1024, 768}, PointSize: 15}
	buf := p.Marshal()
	require.Len(t, buf, GPUMarkerParamsSize)
	assert.Equal(t, float32(768), math.Float32frombits(binary.LittleEndian.Uint32(buf[4:])))
	assert.Equal(t, float32(15), math.Float32frombits(binary.LittleEndian.Uint32(buf[8:])))
}
