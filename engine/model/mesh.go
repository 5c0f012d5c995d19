package model

import (
	"errors"
	"fmt"
	"math"

	"github.com/Carmen-Shannon/oxy-forward/common"
)

// ErrIndexRange is returned when a triangle index points past the vertex slice.
var ErrIndexRange = errors.New("mesh index out of range")

// MeshData is an editable CPU mesh: lit vertices plus triangle list indices.
type MeshData struct {
	Vertices []GPUVertex
	Indices  []uint32
}

// Append merges other into m, offsetting its indices by the current vertex count.
//
// Parameters:
//   - other: the mesh to append
func (m *MeshData) Append(other MeshData) {
	base := uint32(len(m.Vertices))
	m.Vertices = append(m.Vertices, other.Vertices...)
	for _, idx := range other.Indices {
		m.Indices = append(m.Indices, base+idx)
	}
}

// Validate checks that the index list describes whole triangles inside the vertex slice.
//
// Returns:
//   - error: ErrIndexRange, or an error for a partial triangle
func (m *MeshData) Validate() error {
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("index count %d is not a multiple of 3", len(m.Indices))
	}
	for i, idx := range m.Indices {
		if int(idx) >= len(m.Vertices) {
			return fmt.Errorf("index %d = %d with %d vertices: %w", i, idx, len(m.Vertices), ErrIndexRange)
		}
	}
	return nil
}

// GenerateTangents fills the Tangent of every vertex from triangle positions and texture coordinates.
// Tangents are orthogonalized against the vertex normal and w carries the bitangent handedness (+1 or -1).
// Vertices with no usable UV gradient get an arbitrary tangent perpendicular to the normal.
//
// Returns:
//   - error: an error if the index list is invalid
func (m *MeshData) GenerateTangents() error {
	if err := m.Validate(); err != nil {
		return err
	}
	tan := make([][3]float32, len(m.Vertices))
	bit := make([][3]float32, len(m.Vertices))

	for t := 0; t+2 < len(m.Indices); t += 3 {
		i0, i1, i2 := m.Indices[t], m.Indices[t+1], m.Indices[t+2]
		v0, v1, v2 := m.Vertices[i0], m.Vertices[i1], m.Vertices[i2]

		e1 := common.Sub3(v1.Position, v0.Position)
		e2 := common.Sub3(v2.Position, v0.Position)
		du1, dv1 := v1.TexCoord[0]-v0.TexCoord[0], v1.TexCoord[1]-v0.TexCoord[1]
		du2, dv2 := v2.TexCoord[0]-v0.TexCoord[0], v2.TexCoord[1]-v0.TexCoord[1]

		det := du1*dv2 - du2*dv1
		if det == 0 {
			continue
		}
		f := 1 / det
		sdir := [3]float32{
			f * (dv2*e1[0] - dv1*e2[0]),
			f * (dv2*e1[1] - dv1*e2[1]),
			f * (dv2*e1[2] - dv1*e2[2]),
		}
		tdir := [3]float32{
			f * (du1*e2[0] - du2*e1[0]),
			f * (du1*e2[1] - du2*e1[1]),
			f * (du1*e2[2] - du2*e1[2]),
		}
		for _, i := range [3]uint32{i0, i1, i2} {
			tan[i] = common.Add3(tan[i], sdir)
			bit[i] = common.Add3(bit[i], tdir)
		}
	}

	for i := range m.Vertices {
		n := m.Vertices[i].Normal
		t := tan[i]
		// Gram-Schmidt against the normal.
		t = common.Sub3(t, common.Scale3(n, common.Dot3(n, t)))
		if common.Length3(t) < 1e-6 {
			t = perpendicular(n)
		}
		t = common.Normalize3(t)
		w := float32(1)
		if common.Dot3(common.Cross3(n, t), bit[i]) < 0 {
			w = -1
		}
		m.Vertices[i].Tangent = [4]float32{t[0], t[1], t[2], w}
	}
	return nil
}

func perpendicular(n [3]float32) [3]float32 {
	axis := [3]float32{1, 0, 0}
	if abs32(n[0]) > 0.9 {
		axis = [3]float32{0, 1, 0}
	}
	return common.Cross3(n, axis)
}

func sqrt32(v float32) float32 {
	return float32(math.Sqrt(float64(v)))
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
