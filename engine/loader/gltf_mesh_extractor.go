package loader

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-forward/engine/model"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// ErrNoTriangles is returned when a document holds no triangle primitive to render.
var ErrNoTriangles = errors.New("gltf document has no triangle primitives")

// gltfMeshExtractorImpl is the implementation of the gltfMeshExtractor interface.
type gltfMeshExtractorImpl struct {
	doc *gltf.Document
}

// gltfMeshExtractor converts the meshes of a decoded glTF document into one engine mesh.
type gltfMeshExtractor interface {
	// ExtractMesh reads every triangle primitive of one mesh in its own space, unmerged from any node.
	//
	// Parameters:
	//   - meshIndex: the index of the mesh to extract
	//
	// Returns:
	//   - model.MeshData: the primitives of the mesh, merged
	//   - error: error if an accessor cannot be read
	ExtractMesh(meshIndex int) (model.MeshData, error)

	// ExtractAll walks the default scene (or every mesh when the document has no scene), bakes each node's world
	// transform into its mesh and merges the result.
	//
	// Returns:
	//   - model.MeshData: the merged mesh
	//   - error: ErrNoTriangles if nothing was found, or an accessor error
	ExtractAll() (model.MeshData, error)
}

var _ gltfMeshExtractor = &gltfMeshExtractorImpl{}

// newGLTFMeshExtractor creates a new mesh extractor for a decoded document.
//
// Parameters:
//   - doc: the decoded document
//
// Returns:
//   - gltfMeshExtractor: the mesh extractor
func newGLTFMeshExtractor(doc *gltf.Document) gltfMeshExtractor {
	return &gltfMeshExtractorImpl{doc: doc}
}

func (e *gltfMeshExtractorImpl) ExtractMesh(meshIndex int) (model.MeshData, error) {
	if meshIndex < 0 || meshIndex >= len(e.doc.Meshes) {
		return model.MeshData{}, fmt.Errorf("mesh index %d out of range", meshIndex)
	}

	var out model.MeshData
	for p, prim := range e.doc.Meshes[meshIndex].Primitives {
		if prim.Mode != gltf.PrimitiveTriangles {
			continue
		}
		part, err := e.extractPrimitive(prim)
		if err != nil {
			return model.MeshData{}, fmt.Errorf("mesh %d primitive %d: %w", meshIndex, p, err)
		}
		out.Append(part)
	}
	return out, nil
}

func (e *gltfMeshExtractorImpl) ExtractAll() (model.MeshData, error) {
	var out model.MeshData

	if len(e.doc.Scenes) == 0 {
		for i := range e.doc.Meshes {
			part, err := e.ExtractMesh(i)
			if err != nil {
				return model.MeshData{}, err
			}
			out.Append(part)
		}
	} else {
		sceneIdx := 0
		if e.doc.Scene != nil && *e.doc.Scene < len(e.doc.Scenes) {
			sceneIdx = *e.doc.Scene
		}
		visited := make(map[int]bool)
		for _, root := range e.doc.Scenes[sceneIdx].Nodes {
			if err := e.walk(root, mgl32.Ident4(), visited, &out); err != nil {
				return model.MeshData{}, err
			}
		}
	}

	if len(out.Indices) == 0 {
		return model.MeshData{}, ErrNoTriangles
	}
	return out, nil
}

// walk appends the mesh of node and its children with their accumulated world transform.
func (e *gltfMeshExtractorImpl) walk(nodeIdx int, parent mgl32.Mat4, visited map[int]bool, out *model.MeshData) error {
	if nodeIdx < 0 || nodeIdx >= len(e.doc.Nodes) {
		return fmt.Errorf("node index %d out of range", nodeIdx)
	}
	if visited[nodeIdx] {
		return fmt.Errorf("node %d is reachable twice", nodeIdx)
	}
	visited[nodeIdx] = true

	node := e.doc.Nodes[nodeIdx]
	world := parent.Mul4(nodeMatrix(node))

	if node.Mesh != nil {
		part, err := e.ExtractMesh(*node.Mesh)
		if err != nil {
			return fmt.Errorf("node %d: %w", nodeIdx, err)
		}
		bake(&part, world)
		out.Append(part)
	}

	for _, child := range node.Children {
		if err := e.walk(child, world, visited, out); err != nil {
			return err
		}
	}
	return nil
}

func (e *gltfMeshExtractorImpl) extractPrimitive(prim *gltf.Primitive) (model.MeshData, error) {
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return model.MeshData{}, fmt.Errorf("no POSITION attribute")
	}
	acr, err := e.accessor(posIdx)
	if err != nil {
		return model.MeshData{}, err
	}
	positions, err := modeler.ReadPosition(e.doc, acr, nil)
	if err != nil {
		return model.MeshData{}, fmt.Errorf("read positions: %w", err)
	}

	part := model.MeshData{Vertices: make([]model.GPUVertex, len(positions))}
	for i, p := range positions {
		part.Vertices[i].Position = p
	}

	hasNormals := false
	if idx, ok := prim.Attributes[gltf.NORMAL]; ok {
		acr, err := e.accessor(idx)
		if err != nil {
			return model.MeshData{}, err
		}
		normals, err := modeler.ReadNormal(e.doc, acr, nil)
		if err != nil {
			return model.MeshData{}, fmt.Errorf("read normals: %w", err)
		}
		for i := 0; i < len(normals) && i < len(part.Vertices); i++ {
			part.Vertices[i].Normal = normals[i]
		}
		hasNormals = len(normals) == len(positions)
	}

	if idx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		acr, err := e.accessor(idx)
		if err != nil {
			return model.MeshData{}, err
		}
		uvs, err := modeler.ReadTextureCoord(e.doc, acr, nil)
		if err != nil {
			return model.MeshData{}, fmt.Errorf("read texture coordinates: %w", err)
		}
		for i := 0; i < len(uvs) && i < len(part.Vertices); i++ {
			part.Vertices[i].TexCoord = uvs[i]
		}
	}

	hasTangents := false
	if idx, ok := prim.Attributes[gltf.TANGENT]; ok {
		acr, err := e.accessor(idx)
		if err != nil {
			return model.MeshData{}, err
		}
		tangents, err := modeler.ReadTangent(e.doc, acr, nil)
		if err != nil {
			return model.MeshData{}, fmt.Errorf("read tangents: %w", err)
		}
		for i := 0; i < len(tangents) && i < len(part.Vertices); i++ {
			part.Vertices[i].Tangent = tangents[i]
		}
		hasTangents = len(tangents) == len(positions)
	}

	if prim.Indices != nil {
		acr, err := e.accessor(*prim.Indices)
		if err != nil {
			return model.MeshData{}, err
		}
		indices, err := modeler.ReadIndices(e.doc, acr, nil)
		if err != nil {
			return model.MeshData{}, fmt.Errorf("read indices: %w", err)
		}
		part.Indices = indices
	} else {
		part.Indices = make([]uint32, len(positions))
		for i := range part.Indices {
			part.Indices[i] = uint32(i)
		}
	}

	if err := part.Validate(); err != nil {
		return model.MeshData{}, err
	}
	if !hasNormals {
		faceNormals(&part)
	}
	if !hasTangents {
		if err := part.GenerateTangents(); err != nil {
			return model.MeshData{}, err
		}
	}
	return part, nil
}

func (e *gltfMeshExtractorImpl) accessor(idx int) (*gltf.Accessor, error) {
	if idx < 0 || idx >= len(e.doc.Accessors) {
		return nil, fmt.Errorf("accessor index %d out of range", idx)
	}
	return e.doc.Accessors[idx], nil
}

// nodeMatrix returns the local transform of a node, from its matrix when one is set and from its TRS otherwise.
func nodeMatrix(n *gltf.Node) mgl32.Mat4 {
	var m mgl32.Mat4
	for i, v := range n.MatrixOrDefault() {
		m[i] = float32(v)
	}
	if m != mgl32.Ident4() {
		return m
	}

	t := n.TranslationOrDefault()
	r := n.RotationOrDefault()
	s := n.ScaleOrDefault()
	rot := mgl32.Quat{W: float32(r[3]), V: mgl32.Vec3{float32(r[0]), float32(r[1]), float32(r[2])}}.Normalize()
	return mgl32.Translate3D(float32(t[0]), float32(t[1]), float32(t[2])).
		Mul4(rot.Mat4()).
		Mul4(mgl32.Scale3D(float32(s[0]), float32(s[1]), float32(s[2])))
}

// bake transforms a mesh into world space. A mirroring transform reverses the winding of every triangle so front
// faces stay counter-clockwise.
func bake(part *model.MeshData, world mgl32.Mat4) {
	if world == mgl32.Ident4() {
		return
	}
	linear := world.Mat3()
	normalMat := linear
	if det := linear.Det(); det != 0 {
		normalMat = linear.Inv().Transpose()
	}

	for i := range part.Vertices {
		v := &part.Vertices[i]
		p := world.Mul4x1(mgl32.Vec3(v.Position).Vec4(1))
		v.Position = [3]float32{p[0], p[1], p[2]}
		v.Normal = safeNormalize(normalMat.Mul3x1(v.Normal))
		t := safeNormalize(linear.Mul3x1(mgl32.Vec3{v.Tangent[0], v.Tangent[1], v.Tangent[2]}))
		v.Tangent = [4]float32{t[0], t[1], t[2], v.Tangent[3]}
	}

	if linear.Det() < 0 {
		for i := 0; i+2 < len(part.Indices); i += 3 {
			part.Indices[i+1], part.Indices[i+2] = part.Indices[i+2], part.Indices[i+1]
		}
	}
}

// faceNormals fills vertex normals with the area-weighted average of the faces sharing each vertex.
func faceNormals(part *model.MeshData) {
	acc := make([]mgl32.Vec3, len(part.Vertices))
	for i := 0; i+2 < len(part.Indices); i += 3 {
		a, b, c := part.Indices[i], part.Indices[i+1], part.Indices[i+2]
		p0 := mgl32.Vec3(part.Vertices[a].Position)
		p1 := mgl32.Vec3(part.Vertices[b].Position)
		p2 := mgl32.Vec3(part.Vertices[c].Position)
		n := p1.Sub(p0).Cross(p2.Sub(p0))
		acc[a] = acc[a].Add(n)
		acc[b] = acc[b].Add(n)
		acc[c] = acc[c].Add(n)
	}
	for i := range part.Vertices {
		part.Vertices[i].Normal = safeNormalize(acc[i])
	}
}

func safeNormalize(v mgl32.Vec3) [3]float32 {
	if v.Len() == 0 {
		return [3]float32{0, 1, 0}
	}
	return v.Normalize()
}
