package light

// attenuationStep maps an upper bound on a light's reach to its falloff coefficients.
type attenuationStep struct {
	maxDistance float32
	linear      float32
	quadratic   float32
}

// attenuationTable is ordered by maxDistance; lookups take the first step whose bound is >= the requested distance.
var attenuationTable = []attenuationStep{
	{7, 0.7, 1.8},
	{13, 0.35, 0.44},
	{20, 0.22, 0.2},
	{32, 0.14, 0.07},
	{50, 0.09, 0.032},
	{65, 0.07, 0.017},
	{100, 0.045, 0.0075},
	{160, 0.027, 0.0028},
	{200, 0.022, 0.0019},
	{325, 0.014, 0.0007},
	{600, 0.007, 0.0002},
	{3250, 0.0014, 0.000007},
}

// Coefficients used beyond the last table step.
const (
	farLinear    = 0.0001
	farQuadratic = 0.0000001
)

// AttenuationCoefficients returns the linear and quadratic falloff coefficients for a light that should reach
// maxDistance. The constant coefficient is always 1. Breakpoints are inclusive, so exactly 50 maps to the 50 step.
//
// Parameters:
//   - maxDistance: the light's reach in world units
//
// Returns:
//   - float32: the linear coefficient
//   - float32: the quadratic coefficient
func AttenuationCoefficients(maxDistance float32) (float32, float32) {
	for _, step := range attenuationTable {
		if maxDistance <= step.maxDistance {
			return step.linear, step.quadratic
		}
	}
	return farLinear, farQuadratic
}
