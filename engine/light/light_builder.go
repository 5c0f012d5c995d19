package light

import "github.com/Carmen-Shannon/oxy-forward/common"

// Defaults applied before options. The cutoffs match a narrow flashlight cone.
const (
	DefaultMaxDistance = 50
	DefaultInnerCutoff = 12.5
	DefaultOuterCutoff = 17.5
)

// lightParams collects option values shared by every light constructor.
type lightParams struct {
	position    [3]float32
	direction   [3]float32
	diffuse     [3]float32
	specular    [3]float32
	maxDistance float32
	innerCutoff float32
	outerCutoff float32
	mobility    common.Mobility
}

func newLightParams(options ...LightBuilderOption) *lightParams {
	p := &lightParams{
		direction:   [3]float32{0, -1, 0},
		diffuse:     [3]float32{1, 1, 1},
		specular:    [3]float32{1, 1, 1},
		maxDistance: DefaultMaxDistance,
		innerCutoff: common.DegToRad(DefaultInnerCutoff),
		outerCutoff: common.DegToRad(DefaultOuterCutoff),
		mobility:    common.MobilityStatic,
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

// LightBuilderOption is a function that configures a light during construction.
type LightBuilderOption func(*lightParams)

// WithPosition is an option builder that sets the world-space position of a point or spot light.
//
// Parameters:
//   - x, y, z: position components
//
// Returns:
//   - LightBuilderOption: a function that applies the position option
func WithPosition(x, y, z float32) LightBuilderOption {
	return func(p *lightParams) {
		p.position = [3]float32{x, y, z}
	}
}

// WithDirection is an option builder that sets the direction of a spot or directional light.
// The direction is normalized by the constructor.
//
// Parameters:
//   - x, y, z: direction components
//
// Returns:
//   - LightBuilderOption: a function that applies the direction option
func WithDirection(x, y, z float32) LightBuilderOption {
	return func(p *lightParams) {
		p.direction = [3]float32{x, y, z}
	}
}

// WithDiffuse is an option builder that sets the diffuse color.
//
// Parameters:
//   - r, g, b: color components
//
// Returns:
//   - LightBuilderOption: a function that applies the diffuse option
func WithDiffuse(r, g, b float32) LightBuilderOption {
	return func(p *lightParams) {
		p.diffuse = [3]float32{r, g, b}
	}
}

// WithSpecular is an option builder that sets the specular color.
//
// Parameters:
//   - r, g, b: color components
//
// Returns:
//   - LightBuilderOption: a function that applies the specular option
func WithSpecular(r, g, b float32) LightBuilderOption {
	return func(p *lightParams) {
		p.specular = [3]float32{r, g, b}
	}
}

// WithMaxDistance is an option builder that sets the distance used to look up attenuation coefficients.
//
// Parameters:
//   - d: the light's reach in world units
//
// Returns:
//   - LightBuilderOption: a function that applies the max distance option
func WithMaxDistance(d float32) LightBuilderOption {
	return func(p *lightParams) {
		p.maxDistance = d
	}
}

// WithCutoffDegrees is an option builder that sets a spot light's inner and outer cone half-angles in degrees.
//
// Parameters:
//   - inner: full intensity half-angle in degrees
//   - outer: zero intensity half-angle in degrees
//
// Returns:
//   - LightBuilderOption: a function that applies the cutoff option
func WithCutoffDegrees(inner, outer float32) LightBuilderOption {
	return func(p *lightParams) {
		p.innerCutoff = common.DegToRad(inner)
		p.outerCutoff = common.DegToRad(outer)
	}
}

// WithCutoffRadians sets the cone half-angles in radians.
func WithCutoffRadians(inner, outer float32) LightBuilderOption {
	return func(p *lightParams) {
		p.innerCutoff = inner
		p.outerCutoff = outer
	}
}

// WithMobility is an option builder that tags the light as static or dynamic.
//
// Parameters:
//   - m: the mobility tag
//
// Returns:
//   - LightBuilderOption: a function that applies the mobility option
func WithMobility(m common.Mobility) LightBuilderOption {
	return func(p *lightParams) {
		p.mobility = m
	}
}
