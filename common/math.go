package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Identity resets a 4x4 matrix (flat slice) to the identity matrix.
// The matrix is stored in column-major order.
//
// Parameters:
//   - m: destination slice (must be at least 16 elements)
func Identity(m []float32) {
	for i := range m {
		m[i] = 0
	}
	m[0], m[5], m[10], m[15] = 1, 1, 1, 1
}

// IdentityMat4 returns a fresh column-major identity matrix.
//
// Returns:
//   - [16]float32: the identity matrix
func IdentityMat4() [16]float32 {
	var m [16]float32
	Identity(m[:])
	return m
}

// Mul4 multiplies two 4x4 matrices and stores the result in out.
// All matrices are stored in column-major order (WebGPU convention).
// Result: out = a * b, so b is applied to a vector first.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements, may alias a or b)
//   - a: left-hand matrix (16 elements)
//   - b: right-hand matrix (16 elements)
func Mul4(out, a, b []float32) {
	var buf [16]float32
	for i := 0; i < 4; i++ { // column of B
		for j := 0; j < 4; j++ { // row of A
			sum := float32(0)
			for k := 0; k < 4; k++ {
				sum += a[k*4+j] * b[i*4+k]
			}
			buf[i*4+j] = sum
		}
	}
	copy(out, buf[:])
}

// MulMat4 is the value form of Mul4.
//
// Parameters:
//   - a: left-hand matrix
//   - b: right-hand matrix
//
// Returns:
//   - [16]float32: a * b
func MulMat4(a, b [16]float32) [16]float32 {
	var out [16]float32
	Mul4(out[:], a[:], b[:])
	return out
}

// Perspective creates a perspective projection matrix for the WebGPU clip space depth range [0, 1].
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
func Perspective(out []float32, fovY, aspect, near, far float32) {
	f := 1.0 / float32(math.Tan(float64(fovY)/2.0))
	Identity(out)

	out[0] = f / aspect
	out[5] = f
	out[10] = far / (near - far)
	out[11] = -1.0
	out[14] = (near * far) / (near - far)
	out[15] = 0.0
}

// Translate writes a translation matrix into out.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - x, y, z: translation along each axis
func Translate(out []float32, x, y, z float32) {
	Identity(out)
	out[12], out[13], out[14] = x, y, z
}

// Scale writes a non-uniform scale matrix into out.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - x, y, z: scale factor along each axis
func Scale(out []float32, x, y, z float32) {
	Identity(out)
	out[0], out[5], out[10] = x, y, z
}

// RotateAxis writes a rotation of angle radians about an arbitrary axis into out (Rodrigues form).
// The axis is normalized internally; a zero axis yields the identity.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - angle: rotation angle in radians (counter-clockwise looking down the axis)
//   - axis: rotation axis
func RotateAxis(out []float32, angle float32, axis [3]float32) {
	Identity(out)
	n := Length3(axis)
	if n == 0 {
		return
	}
	x, y, z := axis[0]/n, axis[1]/n, axis[2]/n
	c := float32(math.Cos(float64(angle)))
	s := float32(math.Sin(float64(angle)))
	t := 1 - c

	out[0] = t*x*x + c
	out[1] = t*x*y + s*z
	out[2] = t*x*z - s*y

	out[4] = t*x*y - s*z
	out[5] = t*y*y + c
	out[6] = t*y*z + s*x

	out[8] = t*x*z + s*y
	out[9] = t*y*z - s*x
	out[10] = t*z*z + c
}

// TRS composes translate(t) * scale(s) as a value, the order used for scene node placement.
//
// Parameters:
//   - t: translation
//   - s: per-axis scale
//
// Returns:
//   - [16]float32: the composed matrix
func TRS(t, s [3]float32) [16]float32 {
	var tm, sm [16]float32
	Translate(tm[:], t[0], t[1], t[2])
	Scale(sm[:], s[0], s[1], s[2])
	return MulMat4(tm, sm)
}

// Invert4 computes the inverse of a 4x4 column-major matrix using the Laplace
// expansion (cofactor) method. If the matrix is singular the output is left
// unchanged and the function returns false.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - m: source matrix (16 elements, column-major)
//
// Returns:
//   - bool: true if the matrix was successfully inverted, false if singular
func Invert4(out, m []float32) bool {
	s0 := m[0]*m[5] - m[4]*m[1]
	s1 := m[0]*m[6] - m[4]*m[2]
	s2 := m[0]*m[7] - m[4]*m[3]
	s3 := m[1]*m[6] - m[5]*m[2]
	s4 := m[1]*m[7] - m[5]*m[3]
	s5 := m[2]*m[7] - m[6]*m[3]

	c5 := m[10]*m[15] - m[14]*m[11]
	c4 := m[9]*m[15] - m[13]*m[11]
	c3 := m[9]*m[14] - m[13]*m[10]
	c2 := m[8]*m[15] - m[12]*m[11]
	c1 := m[8]*m[14] - m[12]*m[10]
	c0 := m[8]*m[13] - m[12]*m[9]

	det := s0*c5 - s1*c4 + s2*c3 + s3*c2 - s4*c1 + s5*c0
	if det == 0 {
		return false
	}

	invDet := 1.0 / det

	out[0] = (m[5]*c5 - m[6]*c4 + m[7]*c3) * invDet
	out[1] = (-m[1]*c5 + m[2]*c4 - m[3]*c3) * invDet
	out[2] = (m[13]*s5 - m[14]*s4 + m[15]*s3) * invDet
	out[3] = (-m[9]*s5 + m[10]*s4 - m[11]*s3) * invDet

	out[4] = (-m[4]*c5 + m[6]*c2 - m[7]*c1) * invDet
	out[5] = (m[0]*c5 - m[2]*c2 + m[3]*c1) * invDet
	out[6] = (-m[12]*s5 + m[14]*s2 - m[15]*s1) * invDet
	out[7] = (m[8]*s5 - m[10]*s2 + m[11]*s1) * invDet

	out[8] = (m[4]*c4 - m[5]*c2 + m[7]*c0) * invDet
	out[9] = (-m[0]*c4 + m[1]*c2 - m[3]*c0) * invDet
	out[10] = (m[12]*s4 - m[13]*s2 + m[15]*s0) * invDet
	out[11] = (-m[8]*s4 + m[9]*s2 - m[11]*s0) * invDet

	out[12] = (-m[4]*c3 + m[5]*c1 - m[6]*c0) * invDet
	out[13] = (m[0]*c3 - m[1]*c1 + m[2]*c0) * invDet
	out[14] = (-m[12]*s3 + m[13]*s1 - m[14]*s0) * invDet
	out[15] = (m[8]*s3 - m[9]*s1 + m[10]*s0) * invDet

	return true
}

// NormalMatrix returns the inverse-transpose of the upper 3x3 of a model matrix, widened back to a 4x4
// so that each column occupies one vec4 slot in a uniform buffer. A singular model falls back to the identity.
//
// Parameters:
//   - model: column-major model matrix
//
// Returns:
//   - [16]float32: the normal matrix (translation zeroed, w = 1)
func NormalMatrix(model [16]float32) [16]float32 {
	m3 := mgl32.Mat4(model).Mat3()
	if m3.Det() == 0 {
		return IdentityMat4()
	}
	return [16]float32(m3.Inv().Transpose().Mat4())
}

// StripTranslation keeps only the rotational 3x3 part of a view matrix, used to pin the skybox to the camera.
//
// Parameters:
//   - view: column-major view matrix
//
// Returns:
//   - [16]float32: mat4(mat3(view))
func StripTranslation(view [16]float32) [16]float32 {
	return [16]float32(mgl32.Mat4(view).Mat3().Mat4())
}

// LookAt creates a view matrix that positions and orients the camera.
// The resulting matrix transforms world coordinates to view/camera space.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - eyeX, eyeY, eyeZ: camera position in world space
//   - centerX, centerY, centerZ: target point the camera looks at
//   - upX, upY, upZ: up vector defining camera orientation
func LookAt(out []float32, eyeX, eyeY, eyeZ, centerX, centerY, centerZ, upX, upY, upZ float32) {
	z0 := eyeX - centerX
	z1 := eyeY - centerY
	z2 := eyeZ - centerZ
	val := float64(z0*z0 + z1*z1 + z2*z2)
	if val == 0 {
		val = 1
	}
	invLen := 1.0 / float32(math.Sqrt(val))
	z0 *= invLen
	z1 *= invLen
	z2 *= invLen

	x0 := upY*z2 - upZ*z1
	x1 := upZ*z0 - upX*z2
	x2 := upX*z1 - upY*z0
	val = float64(x0*x0 + x1*x1 + x2*x2)
	if val == 0 {
		val = 1
	}
	invLen = 1.0 / float32(math.Sqrt(val))
	x0 *= invLen
	x1 *= invLen
	x2 *= invLen

	y0 := z1*x2 - z2*x1
	y1 := z2*x0 - z0*x2
	y2 := z0*x1 - z1*x0

	out[0], out[4], out[8], out[12] = x0, x1, x2, -(x0*eyeX + x1*eyeY + x2*eyeZ)
	out[1], out[5], out[9], out[13] = y0, y1, y2, -(y0*eyeX + y1*eyeY + y2*eyeZ)
	out[2], out[6], out[10], out[14] = z0, z1, z2, -(z0*eyeX + z1*eyeY + z2*eyeZ)
	out[3], out[7], out[11], out[15] = 0, 0, 0, 1
}

// TransformPoint applies a column-major 4x4 matrix to a point (w = 1) and drops w.
//
// Parameters:
//   - m: the matrix
//   - p: the point
//
// Returns:
//   - [3]float32: the transformed point
func TransformPoint(m [16]float32, p [3]float32) [3]float32 {
	v := TransformVec4(m, [4]float32{p[0], p[1], p[2], 1})
	return [3]float32{v[0], v[1], v[2]}
}

// TransformVec4 applies a column-major 4x4 matrix to a homogeneous vector.
//
// Parameters:
//   - m: the matrix
//   - v: the vector
//
// Returns:
//   - [4]float32: m * v
func TransformVec4(m [16]float32, v [4]float32) [4]float32 {
	var out [4]float32
	for row := 0; row < 4; row++ {
		out[row] = m[row]*v[0] + m[4+row]*v[1] + m[8+row]*v[2] + m[12+row]*v[3]
	}
	return out
}

// DegToRad converts degrees to radians.
func DegToRad(deg float32) float32 {
	return deg * math.Pi / 180
}

// Add3 returns a + b.
func Add3(a, b [3]float32) [3]float32 {
	return [3]float32{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

// Sub3 returns a - b.
func Sub3(a, b [3]float32) [3]float32 {
	return [3]float32{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

// Scale3 returns v * s.
func Scale3(v [3]float32, s float32) [3]float32 {
	return [3]float32{v[0] * s, v[1] * s, v[2] * s}
}

// Dot3 returns the dot product of a and b.
func Dot3(a, b [3]float32) float32 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

// Cross3 returns the cross product a x b.
func Cross3(a, b [3]float32) [3]float32 {
	return [3]float32{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

// Length3 returns the euclidean length of v.
func Length3(v [3]float32) float32 {
	return float32(math.Sqrt(float64(Dot3(v, v))))
}

// Normalize3 returns v scaled to unit length. The zero vector is returned unchanged.
func Normalize3(v [3]float32) [3]float32 {
	n := Length3(v)
	if n == 0 {
		return v
	}
	return Scale3(v, 1/n)
}
