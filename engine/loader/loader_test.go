package loader

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/oxy-forward/engine/renderer/material"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// triangleDoc builds a document with one indexed triangle in the XY plane, referenced by a single node.
func triangleDoc(node *gltf.Node) *gltf.Document {
	doc := gltf.NewDocument()
	pos := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}})
	uv := modeler.WriteTextureCoord(doc, [][2]float32{{0, 0}, {1, 0}, {0, 1}})
	idx := modeler.WriteIndices(doc, []uint16{0, 1, 2})
	doc.Meshes = []*gltf.Mesh{{
		Name: "tri",
		Primitives: []*gltf.Primitive{{
			Indices:    gltf.Index(idx),
			Attributes: map[string]int{gltf.POSITION: pos, gltf.TEXCOORD_0: uv},
		}},
	}}
	node.Mesh = gltf.Index(0)
	doc.Nodes = []*gltf.Node{node}
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)
	return doc
}

func writeGLB(t *testing.T, doc *gltf.Document) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tri.glb")
	require.NoError(t, gltf.SaveBinary(doc, path))
	return path
}

func writePNG(t *testing.T, dir, name string, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 200, A: 255})
		}
	}
	f, err := os.Create(filepath.Join(dir, name))
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return name
}

func newTestLoader(t *testing.T, options ...LoaderBuilderOption) Loader {
	t.Helper()
	l := NewLoader(BackendTypeGLTF, append([]LoaderBuilderOption{WithWorkers(2)}, options...)...)
	t.Cleanup(l.Close)
	return l
}

func TestExtractBakesNodeTransform(t *testing.T) {
	doc := triangleDoc(&gltf.Node{Translation: [3]float64{0, 0, 5}})

	mesh, err := newGLTFMeshExtractor(doc).ExtractAll()
	require.NoError(t, err)
	require.Len(t, mesh.Vertices, 3)
	assert.Equal(t, []uint32{0, 1, 2}, mesh.Indices)

	assert.InDeltaSlice(t, []float32{1, 0, 5}, mesh.Vertices[1].Position[:], 1e-6)
	assert.Equal(t, [2]float32{0, 1}, mesh.Vertices[2].TexCoord)
	for _, v := range mesh.Vertices {
		// generated from the counter-clockwise winding
		assert.InDeltaSlice(t, []float32{0, 0, 1}, v.Normal[:], 1e-6)
		// u runs along +x
		assert.InDeltaSlice(t, []float32{1, 0, 0}, v.Tangent[:3], 1e-5)
	}
}

func TestExtractComposesParentTransforms(t *testing.T) {
	doc := triangleDoc(&gltf.Node{Translation: [3]float64{0, 2, 0}})
	doc.Nodes = append(doc.Nodes, &gltf.Node{Translation: [3]float64{10, 0, 0}, Children: []int{0}})
	doc.Scenes[0].Nodes = []int{1}

	mesh, err := newGLTFMeshExtractor(doc).ExtractAll()
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float32{10, 2, 0}, mesh.Vertices[0].Position[:], 1e-6)
	assert.InDeltaSlice(t, []float32{10, 3, 0}, mesh.Vertices[2].Position[:], 1e-6)
}

func TestExtractMirroredNodeKeepsWinding(t *testing.T) {
	doc := triangleDoc(&gltf.Node{Scale: [3]float64{-1, 1, 1}})

	mesh, err := newGLTFMeshExtractor(doc).ExtractAll()
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float32{-1, 0, 0}, mesh.Vertices[1].Position[:], 1e-6)
	assert.Equal(t, []uint32{0, 2, 1}, mesh.Indices)
}

func TestExtractMergesPrimitivesAndNonIndexed(t *testing.T) {
	doc := triangleDoc(&gltf.Node{})
	pos := modeler.WritePosition(doc, [][3]float32{{0, 0, 1}, {1, 0, 1}, {0, 1, 1}})
	doc.Meshes[0].Primitives = append(doc.Meshes[0].Primitives, &gltf.Primitive{
		Attributes: map[string]int{gltf.POSITION: pos},
	})

	mesh, err := newGLTFMeshExtractor(doc).ExtractAll()
	require.NoError(t, err)
	require.Len(t, mesh.Vertices, 6)
	assert.Equal(t, []uint32{0, 1, 2, 3, 4, 5}, mesh.Indices)
	assert.InDeltaSlice(t, []float32{0, 0, 1}, mesh.Vertices[3].Position[:], 1e-6)
}

func TestExtractWithoutScenesUsesEveryMesh(t *testing.T) {
	doc := triangleDoc(&gltf.Node{Translation: [3]float64{0, 0, 5}})
	doc.Scenes = nil
	doc.Scene = nil

	mesh, err := newGLTFMeshExtractor(doc).ExtractAll()
	require.NoError(t, err)
	// no node, so no transform
	assert.InDeltaSlice(t, []float32{1, 0, 0}, mesh.Vertices[1].Position[:], 1e-6)
}

func TestExtractRejectsDocumentWithoutTriangles(t *testing.T) {
	doc := triangleDoc(&gltf.Node{})
	doc.Meshes[0].Primitives[0].Mode = gltf.PrimitiveLines

	_, err := newGLTFMeshExtractor(doc).ExtractAll()
	assert.ErrorIs(t, err, ErrNoTriangles)

	_, err = newGLTFMeshExtractor(doc).ExtractMesh(3)
	assert.Error(t, err)
}

func TestLoadMeshCachesByPath(t *testing.T) {
	path := writeGLB(t, triangleDoc(&gltf.Node{}))
	l := newTestLoader(t)

	m, err := l.LoadMesh(path)
	require.NoError(t, err)
	assert.Equal(t, path, m.Name())
	assert.Equal(t, 3, m.VertexCount())
	assert.Equal(t, 3, m.IndexCount())

	again, err := l.LoadMesh(path)
	require.NoError(t, err)
	assert.Same(t, m, again)
	assert.Same(t, m, l.Get(path))
	assert.Len(t, l.Models(), 1)
}

func TestLoadMeshResolvesAgainstAssetRoot(t *testing.T) {
	path := writeGLB(t, triangleDoc(&gltf.Node{}))
	l := newTestLoader(t, WithAssetRoot(filepath.Dir(path)))

	m, err := l.LoadMesh("tri.glb")
	require.NoError(t, err)
	assert.Equal(t, 3, m.VertexCount())
}

func TestLoadMeshRejectsUnknownFormat(t *testing.T) {
	l := newTestLoader(t)
	_, err := l.LoadMesh("wall.obj")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestLoadMeshReaderDecodesBinary(t *testing.T) {
	data, err := os.ReadFile(writeGLB(t, triangleDoc(&gltf.Node{})))
	require.NoError(t, err)
	l := newTestLoader(t)

	m, err := l.LoadMeshReader("streamed", bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, "streamed", m.Name())
	assert.Equal(t, 3, m.IndexCount())

	_, err = l.LoadMeshReader("broken", bytes.NewReader([]byte("not gltf")))
	assert.Error(t, err)
	assert.Nil(t, l.Get("broken"))
}

func TestLoadTexturesDecodesInParallel(t *testing.T) {
	dir := t.TempDir()
	names := []string{
		writePNG(t, dir, "a.png", 4, 2),
		writePNG(t, dir, "b.png", 8, 8),
		writePNG(t, dir, "c.png", 1, 3),
	}
	l := newTestLoader(t, WithAssetRoot(dir))

	textures, err := l.LoadTextures(names, material.WithLinear())
	require.NoError(t, err)
	require.Len(t, textures, 3)
	assert.Equal(t, "a.png", textures[0].Name())
	assert.Equal(t, uint32(8), textures[1].Staging().Width)
	assert.Equal(t, uint32(3), textures[2].Staging().Height)
	assert.False(t, textures[0].SRGB())
	assert.Equal(t, material.Texture2D, textures[0].Kind())

	single, err := l.LoadTexture("b.png")
	require.NoError(t, err)
	assert.Same(t, textures[1], single)
}

func TestLoadTexturesReportsMissingFile(t *testing.T) {
	dir := t.TempDir()
	l := newTestLoader(t, WithAssetRoot(dir))

	_, err := l.LoadTextures([]string{writePNG(t, dir, "ok.png", 2, 2), "missing.png"})
	assert.ErrorContains(t, err, "missing.png")
}

func TestLoadCubemap(t *testing.T) {
	dir := t.TempDir()
	var faces [material.CubeFaceCount]string
	for i, name := range []string{"right.png", "left.png", "top.png", "bottom.png", "front.png", "back.png"} {
		faces[i] = writePNG(t, dir, name, 4, 4)
	}
	l := newTestLoader(t, WithAssetRoot(dir))

	cube, err := l.LoadCubemap(faces)
	require.NoError(t, err)
	assert.Equal(t, material.TextureCube, cube.Kind())
	assert.Equal(t, uint32(4), cube.Faces()[5].Width)

	faces[3] = writePNG(t, dir, "small.png", 2, 2)
	_, err = l.LoadCubemap(faces)
	assert.ErrorIs(t, err, material.ErrCubemapMismatch)
}
