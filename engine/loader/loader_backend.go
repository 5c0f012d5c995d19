package loader

import (
	"io"

	"github.com/Carmen-Shannon/oxy-forward/engine/model"
)

// loaderBackend defines the generic interface for loading meshes from files or streams.
// Concrete implementations (e.g., gltfLoaderBackend) handle format-specific details.
type loaderBackend interface {
	// Load imports every mesh in the file and merges them into one vertex/index stream.
	//
	// Parameters:
	//   - path: the file path to load
	//
	// Returns:
	//   - model.MeshData: the merged mesh
	//   - error: error if loading fails
	Load(path string) (model.MeshData, error)

	// LoadReader imports a model from a reader stream.
	//
	// Parameters:
	//   - r: the reader providing model data
	//
	// Returns:
	//   - model.MeshData: the merged mesh
	//   - error: error if loading fails
	LoadReader(r io.Reader) (model.MeshData, error)
}
