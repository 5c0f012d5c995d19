// Package bezier evaluates piecewise cubic Bézier paths and animates a light along one.
package bezier

import (
	"errors"
	"fmt"
	"math"
)

// ErrControlPoints is returned for control point lists that do not describe whole cubic segments.
var ErrControlPoints = errors.New("path needs 3k+1 control points with k >= 1")

// Cubic evaluates the cubic Bernstein form at t in [0, 1].
//
// Parameters:
//   - t: curve parameter
//   - p0, p1, p2, p3: control points
//
// Returns:
//   - [3]float32: the point on the curve
func Cubic(t float32, p0, p1, p2, p3 [3]float32) [3]float32 {
	it := 1 - t
	b0 := it * it * it
	b1 := 3 * t * it * it
	b2 := 3 * t * t * it
	b3 := t * t * t
	var out [3]float32
	for i := 0; i < 3; i++ {
		out[i] = b0*p0[i] + b1*p1[i] + b2*p2[i] + b3*p3[i]
	}
	return out
}

// Path is a chain of cubic segments sharing end points: segment i uses Points[3i..3i+3].
type Path struct {
	points [][3]float32
}

// NewPath validates and copies the control points.
//
// Parameters:
//   - points: 3k+1 control points
//
// Returns:
//   - *Path: the path
//   - error: ErrControlPoints if the count is not 3k+1 with k >= 1
func NewPath(points ...[3]float32) (*Path, error) {
	if len(points) < 4 || (len(points)-1)%3 != 0 {
		return nil, fmt.Errorf("%w: got %d", ErrControlPoints, len(points))
	}
	p := &Path{points: make([][3]float32, len(points))}
	copy(p.points, points)
	return p, nil
}

// DefaultPath is the closed loop of four segments circling the origin at height 1.
//
// Returns:
//   - *Path: the path
func DefaultPath() *Path {
	p, _ := NewPath(
		[3]float32{0, 1, 5},
		[3]float32{4, 1, 5},
		[3]float32{5, 1, 4},
		[3]float32{5, 1, 0},
		[3]float32{5, 1, -4},
		[3]float32{4, 1, -5},
		[3]float32{0, 1, -5},
		[3]float32{-4, 1, -5},
		[3]float32{-5, 1, -4},
		[3]float32{-5, 1, 0},
		[3]float32{-5, 1, 4},
		[3]float32{-4, 1, 5},
		[3]float32{0, 1, 5},
	)
	return p
}

// CurveCount returns the number of cubic segments.
func (p *Path) CurveCount() int {
	return (len(p.points) - 1) / 3
}

// ControlPoints returns a copy of the control points.
func (p *Path) ControlPoints() [][3]float32 {
	out := make([][3]float32, len(p.points))
	copy(out, p.points)
	return out
}

// Evaluate returns the point at a global timestep in [0, CurveCount]. The integer part picks the segment and the
// fractional part is the local parameter; timesteps outside the range are clamped to the path's start or end.
//
// Parameters:
//   - timestep: global path parameter
//
// Returns:
//   - [3]float32: the point on the path
func (p *Path) Evaluate(timestep float32) [3]float32 {
	timestep = max(0, min(timestep, float32(p.CurveCount())))
	seg := int(math.Floor(float64(timestep)))
	seg = max(0, min(seg, p.CurveCount()-1))
	t := timestep - float32(seg)
	i := seg * 3
	return Cubic(t, p.points[i], p.points[i+1], p.points[i+2], p.points[i+3])
}

// Sample evaluates every segment at perCurve evenly spaced parameters, producing CurveCount*perCurve+1 points
// suitable for a line strip.
//
// Parameters:
//   - perCurve: samples per segment (clamped to at least 1)
//
// Returns:
//   - [][3]float32: the polyline
func (p *Path) Sample(perCurve int) [][3]float32 {
	perCurve = max(1, perCurve)
	n := p.CurveCount() * perCurve
	out := make([][3]float32, 0, n+1)
	for s := 0; s <= n; s++ {
		out = append(out, p.Evaluate(float32(s)/float32(perCurve)))
	}
	return out
}
