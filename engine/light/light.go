// Package light defines the point, spot and directional light records used by the forward renderer, the attenuation
// table that derives falloff coefficients from a light's reach, and the registry that owns the scene's lights.
package light

import (
	"errors"
	"fmt"
	"math"

	"github.com/Carmen-Shannon/oxy-forward/common"
)

// Per-pass light limits. The lit shaders are compiled with these counts and the frame renderer splits longer light
// lists into batches of this size.
const (
	MaxPointLightsPerPass = 4
	MaxSpotLightsPerPass  = 4
	MaxDirectionalLights  = 1
)

// ErrCutoffOrder is returned when a spot light's inner cutoff is wider than its outer cutoff.
var ErrCutoffOrder = errors.New("spot light inner cutoff exceeds outer cutoff")

// PointLight emits in all directions from a position. The constant attenuation term is always 1; Linear and
// Quadratic are derived from MaxDistance by AttenuationCoefficients.
type PointLight struct {
	Position    [3]float32
	Diffuse     [3]float32
	Specular    [3]float32
	Linear      float32
	Quadratic   float32
	MaxDistance float32
	Mobility    common.Mobility
}

// SpotLight emits in a cone around Direction. Cutoff angles are stored in radians and converted to cosines only when
// marshalled for the GPU.
type SpotLight struct {
	Position    [3]float32
	Direction   [3]float32
	Diffuse     [3]float32
	Specular    [3]float32
	InnerCutoff float32
	OuterCutoff float32
	Linear      float32
	Quadratic   float32
	MaxDistance float32
	Mobility    common.Mobility
}

// InnerCos returns cos(InnerCutoff).
func (s SpotLight) InnerCos() float32 {
	return float32(math.Cos(float64(s.InnerCutoff)))
}

// OuterCos returns cos(OuterCutoff).
func (s SpotLight) OuterCos() float32 {
	return float32(math.Cos(float64(s.OuterCutoff)))
}

// DirectionalLight has no position; Direction points from the light into the scene.
type DirectionalLight struct {
	Direction [3]float32
	Diffuse   [3]float32
	Specular  [3]float32
	Mobility  common.Mobility
}

// NewPointLight builds a point light from options, deriving its attenuation coefficients from the max distance.
//
// Parameters:
//   - options: variadic list of LightBuilderOption functions
//
// Returns:
//   - PointLight: the configured light
func NewPointLight(options ...LightBuilderOption) PointLight {
	p := newLightParams(options...)
	linear, quadratic := AttenuationCoefficients(p.maxDistance)
	return PointLight{
		Position:    p.position,
		Diffuse:     p.diffuse,
		Specular:    p.specular,
		Linear:      linear,
		Quadratic:   quadratic,
		MaxDistance: p.maxDistance,
		Mobility:    p.mobility,
	}
}

// NewSpotLight builds a spot light from options. The direction is normalized and the attenuation coefficients are
// derived from the max distance.
//
// Parameters:
//   - options: variadic list of LightBuilderOption functions
//
// Returns:
//   - SpotLight: the configured light
//   - error: ErrCutoffOrder if the inner cutoff is wider than the outer cutoff
func NewSpotLight(options ...LightBuilderOption) (SpotLight, error) {
	p := newLightParams(options...)
	if p.innerCutoff > p.outerCutoff {
		return SpotLight{}, fmt.Errorf("%w: inner %v > outer %v", ErrCutoffOrder, p.innerCutoff, p.outerCutoff)
	}
	linear, quadratic := AttenuationCoefficients(p.maxDistance)
	return SpotLight{
		Position:    p.position,
		Direction:   common.Normalize3(p.direction),
		Diffuse:     p.diffuse,
		Specular:    p.specular,
		InnerCutoff: p.innerCutoff,
		OuterCutoff: p.outerCutoff,
		Linear:      linear,
		Quadratic:   quadratic,
		MaxDistance: p.maxDistance,
		Mobility:    p.mobility,
	}, nil
}

// NewDirectionalLight builds a directional light from options with a normalized direction.
//
// Parameters:
//   - options: variadic list of LightBuilderOption functions
//
// Returns:
//   - DirectionalLight: the configured light
func NewDirectionalLight(options ...LightBuilderOption) DirectionalLight {
	p := newLightParams(options...)
	return DirectionalLight{
		Direction: common.Normalize3(p.direction),
		Diffuse:   p.diffuse,
		Specular:  p.specular,
		Mobility:  p.mobility,
	}
}
