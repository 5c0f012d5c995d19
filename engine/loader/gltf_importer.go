package loader

import (
	"fmt"
	"io"

	"github.com/Carmen-Shannon/oxy-forward/engine/model"
	"github.com/qmuntal/gltf"
)

// gltfImporterImpl is the implementation of the gltfImporter interface.
type gltfImporterImpl struct{}

// gltfImporter decodes a glTF/GLB document and hands it to the mesh extractor.
type gltfImporter interface {
	// Import opens a glTF or GLB file. External buffers and images are resolved relative to the file.
	//
	// Parameters:
	//   - path: the file path to the glTF or GLB file
	//
	// Returns:
	//   - model.MeshData: the merged mesh
	//   - error: error if import fails
	Import(path string) (model.MeshData, error)

	// ImportReader decodes a glTF JSON or GLB stream. The format is detected from the stream header.
	//
	// Parameters:
	//   - r: the reader providing glTF/GLB data
	//
	// Returns:
	//   - model.MeshData: the merged mesh
	//   - error: error if import fails
	ImportReader(r io.Reader) (model.MeshData, error)
}

var _ gltfImporter = &gltfImporterImpl{}

// newGLTFImporter creates a new glTF importer.
//
// Returns:
//   - gltfImporter: the importer
func newGLTFImporter() gltfImporter {
	return &gltfImporterImpl{}
}

func (i *gltfImporterImpl) Import(path string) (model.MeshData, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return model.MeshData{}, fmt.Errorf("open gltf: %w", err)
	}
	return newGLTFMeshExtractor(doc).ExtractAll()
}

func (i *gltfImporterImpl) ImportReader(r io.Reader) (model.MeshData, error) {
	doc := gltf.NewDocument()
	if err := gltf.NewDecoder(r).Decode(doc); err != nil {
		return model.MeshData{}, fmt.Errorf("decode gltf: %w", err)
	}
	return newGLTFMeshExtractor(doc).ExtractAll()
}
