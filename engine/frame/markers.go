package frame

import (
	"github.com/Carmen-Shannon/oxy-forward/common"
	"github.com/Carmen-Shannon/oxy-forward/engine/light"
	"github.com/Carmen-Shannon/oxy-forward/engine/model"
)

// MarkerVerticesPerQuad is the number of vertices a marker expands to: two triangles.
const MarkerVerticesPerQuad = 6

var markerCorners = [MarkerVerticesPerQuad][2]float32{
	{-1, -1}, {1, -1}, {1, 1},
	{-1, -1}, {1, 1}, {-1, 1},
}

// AppendMarkers projects every positioned light into clip space and appends a marker colored by its specular
// color. Lights behind the camera are skipped.
//
// Parameters:
//   - dst: the slice to append to
//   - viewProj: the camera view-projection matrix
//   - points: the point lights
//   - spotSets: the spot light groups
//
// Returns:
//   - []Marker: dst with the markers appended
func AppendMarkers(dst []Marker, viewProj [16]float32, points []light.PointLight, spotSets ...[]light.SpotLight) []Marker {
	add := func(pos, color [3]float32) {
		clip := common.TransformVec4(viewProj, [4]float32{pos[0], pos[1], pos[2], 1})
		if clip[3] <= 0 {
			return
		}
		dst = append(dst, Marker{ClipPos: clip, Color: color})
	}
	for _, p := range points {
		add(p.Position, p.Specular)
	}
	for _, spots := range spotSets {
		for _, s := range spots {
			add(s.Position, s.Specular)
		}
	}
	return dst
}

// MarkerVertexData expands each marker into a screen-aligned quad of GPUMarkerVertex values. Every corner carries
// the marker's clip position; the vertex shader offsets it by the corner scaled to the marker size.
//
// Parameters:
//   - dst: a buffer to reuse, grown when too small
//   - markers: the markers
//
// Returns:
//   - []byte: the packed vertices
//   - int: the vertex count
func MarkerVertexData(dst []byte, markers []Marker) ([]byte, int) {
	count := len(markers) * MarkerVerticesPerQuad
	size := count * model.GPUMarkerVertexSize
	if cap(dst) < size {
		dst = make([]byte, size)
	}
	dst = dst[:size]

	off := 0
	for _, m := range markers {
		for _, corner := range markerCorners {
			v := model.GPUMarkerVertex{ClipPos: m.ClipPos, Color: m.Color, Corner: corner}
			v.MarshalInto(dst[off:])
			off += model.GPUMarkerVertexSize
		}
	}
	return dst, count
}
