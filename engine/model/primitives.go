package model

import (
	"math"
)

// BuildSphere generates a UV sphere centered on the origin. Rings run from the +Y pole to the -Y pole and
// segments wrap around Y, so the mesh has (rings+1)*(segments+1) vertices with a duplicated seam for texturing.
// Triangles wind counter-clockwise seen from outside.
//
// Parameters:
//   - radius: the sphere radius
//   - rings: latitude subdivisions, at least 2
//   - segments: longitude subdivisions, at least 3
//
// Returns:
//   - MeshData: the sphere mesh with normals, uvs and tangents
func BuildSphere(radius float32, rings, segments int) MeshData {
	rings = max(rings, 2)
	segments = max(segments, 3)

	mesh := MeshData{
		Vertices: make([]GPUVertex, 0, (rings+1)*(segments+1)),
		Indices:  make([]uint32, 0, rings*segments*6),
	}
	for r := 0; r <= rings; r++ {
		v := float32(r) / float32(rings)
		theta := float64(v) * math.Pi
		sinT, cosT := float32(math.Sin(theta)), float32(math.Cos(theta))
		for s := 0; s <= segments; s++ {
			u := float32(s) / float32(segments)
			phi := float64(u) * 2 * math.Pi
			sinP, cosP := float32(math.Sin(phi)), float32(math.Cos(phi))

			n := [3]float32{sinT * cosP, cosT, sinT * sinP}
			mesh.Vertices = append(mesh.Vertices, GPUVertex{
				Position: [3]float32{n[0] * radius, n[1] * radius, n[2] * radius},
				Normal:   n,
				TexCoord: [2]float32{u, v},
				Tangent:  [4]float32{-sinP, 0, cosP, 1},
			})
		}
	}

	stride := uint32(segments + 1)
	for r := 0; r < rings; r++ {
		for s := 0; s < segments; s++ {
			a := uint32(r)*stride + uint32(s)
			b := a + stride
			c := b + 1
			d := a + 1
			mesh.Indices = append(mesh.Indices, a, c, b, a, d, c)
		}
	}
	return mesh
}

// BuildPlane generates a flat quad in the XZ plane facing +Y, centered on the origin.
// Rotate it with the node transform to stand it up as a wall.
//
// Parameters:
//   - width: extent along X
//   - depth: extent along Z
//   - uvRepeat: how many times the texture repeats across each side
//
// Returns:
//   - MeshData: the plane mesh with generated tangents
func BuildPlane(width, depth, uvRepeat float32) MeshData {
	hw, hd := width/2, depth/2
	if uvRepeat <= 0 {
		uvRepeat = 1
	}
	up := [3]float32{0, 1, 0}
	mesh := MeshData{
		Vertices: []GPUVertex{
			{Position: [3]float32{-hw, 0, -hd}, Normal: up, TexCoord: [2]float32{0, 0}},
			{Position: [3]float32{hw, 0, -hd}, Normal: up, TexCoord: [2]float32{uvRepeat, 0}},
			{Position: [3]float32{hw, 0, hd}, Normal: up, TexCoord: [2]float32{uvRepeat, uvRepeat}},
			{Position: [3]float32{-hw, 0, hd}, Normal: up, TexCoord: [2]float32{0, uvRepeat}},
		},
		Indices: []uint32{0, 2, 1, 0, 3, 2},
	}
	// Indices are in range by construction.
	_ = mesh.GenerateTangents()
	return mesh
}

// BuildSkyboxCube returns the 36 position-only vertices of the unit cube drawn around the camera for the skybox.
// Faces are wound to be seen from inside.
//
// Returns:
//   - Model: a non-indexed position model named "skybox"
func BuildSkyboxCube() Model {
	positions := [][3]float32{
		{-1, 1, -1}, {-1, -1, -1}, {1, -1, -1},
		{1, -1, -1}, {1, 1, -1}, {-1, 1, -1},

		{-1, -1, 1}, {-1, -1, -1}, {-1, 1, -1},
		{-1, 1, -1}, {-1, 1, 1}, {-1, -1, 1},

		{1, -1, -1}, {1, -1, 1}, {1, 1, 1},
		{1, 1, 1}, {1, 1, -1}, {1, -1, -1},

		{-1, -1, 1}, {-1, 1, 1}, {1, 1, 1},
		{1, 1, 1}, {1, -1, 1}, {-1, -1, 1},

		{-1, 1, -1}, {1, 1, -1}, {1, 1, 1},
		{1, 1, 1}, {-1, 1, 1}, {-1, 1, -1},

		{-1, -1, -1}, {-1, -1, 1}, {1, -1, -1},
		{1, -1, -1}, {-1, -1, 1}, {1, -1, 1},
	}
	return NewModel(WithName("skybox"), WithPositions(positions))
}

// BuildLineStrip packs a polyline into a non-indexed position model for line strip topology.
//
// Parameters:
//   - name: the model name
//   - points: the polyline vertices in order
//
// Returns:
//   - Model: the line strip model
func BuildLineStrip(name string, points [][3]float32) Model {
	return NewModel(WithName(name), WithPositions(points))
}
