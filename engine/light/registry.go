package light

import (
	"errors"
	"fmt"
	"slices"
)

// PathLightIndex is the point light slot driven by the path animator. The first point light added to a registry
// occupies it.
const PathLightIndex = 0

// ErrLightIndex is returned when a light index is out of range.
var ErrLightIndex = errors.New("light index out of range")

// Registry owns the scene's lights. The frame loop is single threaded, so the registry does no locking; slices
// returned by the list accessors alias internal storage and must not be modified.
type Registry interface {
	// AddPointLight appends a point light.
	//
	// Parameters:
	//   - l: the light
	//
	// Returns:
	//   - int: the light's index
	AddPointLight(l PointLight) int

	// AddSpotLight appends a spot light.
	//
	// Parameters:
	//   - l: the light
	//
	// Returns:
	//   - int: the light's index
	AddSpotLight(l SpotLight) int

	// SetDirectionalLight installs the scene's single directional light, replacing any previous one.
	//
	// Parameters:
	//   - l: the light
	SetDirectionalLight(l DirectionalLight)

	// ClearDirectionalLight removes the directional light.
	ClearDirectionalLight()

	// PointLights returns a copy of every point light in insertion order. Positions change through
	// SetPointLightPosition, not through the returned slice.
	//
	// Returns:
	//   - []PointLight: the lights
	PointLights() []PointLight

	// SpotLights returns a copy of every spot light in insertion order.
	//
	// Returns:
	//   - []SpotLight: the lights
	SpotLights() []SpotLight

	// DirectionalLight returns the directional light, if one is installed.
	//
	// Returns:
	//   - DirectionalLight: the light
	//   - bool: false if none is installed
	DirectionalLight() (DirectionalLight, bool)

	// PointLight returns a copy of the point light at index i.
	//
	// Parameters:
	//   - i: the light index
	//
	// Returns:
	//   - PointLight: the light
	//   - error: ErrLightIndex if i is out of range
	PointLight(i int) (PointLight, error)

	// SetPointLightPosition moves the point light at index i.
	//
	// Parameters:
	//   - i: the light index
	//   - pos: the new world-space position
	//
	// Returns:
	//   - error: ErrLightIndex if i is out of range
	SetPointLightPosition(i int, pos [3]float32) error

	// SpotLight returns a copy of the spot light at index i.
	//
	// Parameters:
	//   - i: the light index
	//
	// Returns:
	//   - SpotLight: the light
	//   - error: ErrLightIndex if i is out of range
	SpotLight(i int) (SpotLight, error)
}

type registry struct {
	points []PointLight
	spots  []SpotLight
	sun    *DirectionalLight
}

var _ Registry = &registry{}

// NewRegistry creates an empty light registry.
//
// Returns:
//   - Registry: the registry
func NewRegistry() Registry {
	return &registry{}
}

func (r *registry) AddPointLight(l PointLight) int {
	r.points = append(r.points, l)
	return len(r.points) - 1
}

func (r *registry) AddSpotLight(l SpotLight) int {
	r.spots = append(r.spots, l)
	return len(r.spots) - 1
}

func (r *registry) SetDirectionalLight(l DirectionalLight) {
	r.sun = &l
}

func (r *registry) ClearDirectionalLight() {
	r.sun = nil
}

func (r *registry) PointLights() []PointLight {
	return slices.Clone(r.points)
}

func (r *registry) SpotLights() []SpotLight {
	return slices.Clone(r.spots)
}

func (r *registry) DirectionalLight() (DirectionalLight, bool) {
	if r.sun == nil {
		return DirectionalLight{}, false
	}
	return *r.sun, true
}

func (r *registry) PointLight(i int) (PointLight, error) {
	if i < 0 || i >= len(r.points) {
		return PointLight{}, fmt.Errorf("%w: point light %d of %d", ErrLightIndex, i, len(r.points))
	}
	return r.points[i], nil
}

func (r *registry) SetPointLightPosition(i int, pos [3]float32) error {
	if i < 0 || i >= len(r.points) {
		return fmt.Errorf("%w: point light %d of %d", ErrLightIndex, i, len(r.points))
	}
	r.points[i].Position = pos
	return nil
}

func (r *registry) SpotLight(i int) (SpotLight, error) {
	if i < 0 || i >= len(r.spots) {
		return SpotLight{}, fmt.Errorf("%w: spot light %d of %d", ErrLightIndex, i, len(r.spots))
	}
	return r.spots[i], nil
}
