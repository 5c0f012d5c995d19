package loader

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-forward/common"
	"github.com/Carmen-Shannon/oxy-forward/engine/model"
	"github.com/Carmen-Shannon/oxy-forward/engine/renderer/material"
)

// LoaderBackendType identifies the model file format backend to use.
type LoaderBackendType int

const (
	// BackendTypeGLTF selects the glTF/GLB loader backend.
	BackendTypeGLTF LoaderBackendType = iota
)

// DefaultWorkers is the number of decode workers used when WithWorkers is not given.
const DefaultWorkers = 4

// ErrUnsupportedFormat is returned for model files whose extension no backend handles.
var ErrUnsupportedFormat = errors.New("unsupported model format")

// loader is the implementation of the Loader interface.
type loader struct {
	mu sync.RWMutex

	root    string
	workers int
	pool    worker.DynamicWorkerPool

	modelCache   map[string]model.Model
	textureCache map[string]material.Texture

	backend loaderBackend
}

// Loader reads meshes and textures from disk and caches them by path. Meshes are merged into a single
// vertex/index stream per file; textures are decoded in parallel on a worker pool. Nothing is uploaded here:
// the frame backend creates GPU resources on first use.
type Loader interface {
	// LoadMesh imports a glTF or GLB file and caches the result by path. Every triangle primitive of every mesh
	// node in the default scene is merged into one model with node transforms baked in.
	//
	// Parameters:
	//   - path: the model file, relative to the asset root unless absolute
	//
	// Returns:
	//   - model.Model: the loaded or cached model
	//   - error: ErrUnsupportedFormat, or an error if the file cannot be read
	LoadMesh(path string) (model.Model, error)

	// LoadMeshReader imports a glTF JSON or GLB stream and caches it by name. External buffer URIs cannot be
	// resolved from a stream, so the document must embed its buffers.
	//
	// Parameters:
	//   - name: the cache key and model name
	//   - r: the reader providing model data
	//
	// Returns:
	//   - model.Model: the loaded or cached model
	//   - error: error if decoding fails
	LoadMeshReader(name string, r io.Reader) (model.Model, error)

	// LoadTexture decodes an image file into a flat texture and caches it by path. The texture is named after
	// its path unless an option says otherwise.
	//
	// Parameters:
	//   - path: the image file, relative to the asset root unless absolute
	//   - options: texture options such as material.WithLinear for normal maps
	//
	// Returns:
	//   - material.Texture: the texture
	//   - error: error if the file cannot be decoded
	LoadTexture(path string, options ...material.TextureBuilderOption) (material.Texture, error)

	// LoadTextures decodes several image files in parallel with the same options.
	//
	// Parameters:
	//   - paths: the image files
	//   - options: texture options applied to every texture
	//
	// Returns:
	//   - []material.Texture: the textures in path order
	//   - error: every decode error joined
	LoadTextures(paths []string, options ...material.TextureBuilderOption) ([]material.Texture, error)

	// LoadCubemap decodes six face images in parallel into a cube map.
	//
	// Parameters:
	//   - faces: the face files in right, left, top, bottom, front, back order
	//   - options: texture options
	//
	// Returns:
	//   - material.Texture: the cube map
	//   - error: material.ErrCubemapMismatch if the faces disagree, or a decode error
	LoadCubemap(faces [material.CubeFaceCount]string, options ...material.TextureBuilderOption) (material.Texture, error)

	// Get retrieves a cached model by name. Returns nil if not found.
	//
	// Parameters:
	//   - name: the cache key to look up
	//
	// Returns:
	//   - model.Model: the cached model or nil
	Get(name string) model.Model

	// Models returns a copy of the model cache.
	//
	// Returns:
	//   - map[string]model.Model: all cached models keyed by name
	Models() map[string]model.Model

	// Close stops the decode workers. The loader must not be used afterwards.
	Close()
}

var _ Loader = &loader{}

// NewLoader creates a new Loader instance with the specified backend type and options applied.
//
// Parameters:
//   - backendType: the type of loader backend to use (e.g., BackendTypeGLTF)
//   - options: a variadic list of LoaderBuilderOption functions to configure the Loader
//
// Returns:
//   - Loader: a new instance of Loader configured with the provided backend and options
func NewLoader(backendType LoaderBackendType, options ...LoaderBuilderOption) Loader {
	l := &loader{
		mu:           sync.RWMutex{},
		workers:      DefaultWorkers,
		modelCache:   make(map[string]model.Model),
		textureCache: make(map[string]material.Texture),
	}

	switch backendType {
	case BackendTypeGLTF:
		l.backend = newGLTFLoaderBackend()
	}

	for _, option := range options {
		option(l)
	}

	l.pool = worker.NewDynamicWorkerPool(l.workers, 256, 1*time.Second)
	return l
}

func (l *loader) LoadMesh(path string) (model.Model, error) {
	l.mu.RLock()
	if cached, ok := l.modelCache[path]; ok {
		l.mu.RUnlock()
		return cached, nil
	}
	l.mu.RUnlock()

	backend, err := l.resolveBackend(path)
	if err != nil {
		return nil, err
	}

	mesh, err := backend.Load(l.resolve(path))
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}

	return l.cacheModel(path, mesh), nil
}

func (l *loader) LoadMeshReader(name string, r io.Reader) (model.Model, error) {
	l.mu.RLock()
	if cached, ok := l.modelCache[name]; ok {
		l.mu.RUnlock()
		return cached, nil
	}
	l.mu.RUnlock()

	mesh, err := l.backend.LoadReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to load from reader %q: %w", name, err)
	}

	return l.cacheModel(name, mesh), nil
}

func (l *loader) LoadTexture(path string, options ...material.TextureBuilderOption) (material.Texture, error) {
	textures, err := l.LoadTextures([]string{path}, options...)
	if err != nil {
		return nil, err
	}
	return textures[0], nil
}

func (l *loader) LoadTextures(paths []string, options ...material.TextureBuilderOption) ([]material.Texture, error) {
	out := make([]material.Texture, len(paths))
	var pending []int

	l.mu.RLock()
	for i, p := range paths {
		if cached, ok := l.textureCache[p]; ok {
			out[i] = cached
			continue
		}
		pending = append(pending, i)
	}
	l.mu.RUnlock()

	if len(pending) == 0 {
		return out, nil
	}

	toDecode := make([]string, len(pending))
	for j, i := range pending {
		toDecode[j] = paths[i]
	}
	staged, err := l.decodeAll(toDecode)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	for j, i := range pending {
		opts := append([]material.TextureBuilderOption{material.WithName(paths[i])}, options...)
		tex, err := material.NewTexture(staged[j], opts...)
		if err != nil {
			return nil, fmt.Errorf("texture %s: %w", paths[i], err)
		}
		l.textureCache[paths[i]] = tex
		out[i] = tex
	}
	return out, nil
}

func (l *loader) LoadCubemap(faces [material.CubeFaceCount]string, options ...material.TextureBuilderOption) (material.Texture, error) {
	staged, err := l.decodeAll(faces[:])
	if err != nil {
		return nil, err
	}

	var data [material.CubeFaceCount]common.TextureStagingData
	copy(data[:], staged)

	opts := append([]material.TextureBuilderOption{material.WithName(faces[0])}, options...)
	tex, err := material.NewCubeTexture(data, opts...)
	if err != nil {
		return nil, fmt.Errorf("cube map %s: %w", faces[0], err)
	}
	return tex, nil
}

func (l *loader) Get(name string) model.Model {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.modelCache[name]
}

func (l *loader) Models() map[string]model.Model {
	l.mu.RLock()
	defer l.mu.RUnlock()

	result := make(map[string]model.Model, len(l.modelCache))
	for k, v := range l.modelCache {
		result[k] = v
	}
	return result
}

func (l *loader) Close() {
	l.pool.Stop()
}

// resolveBackend selects an appropriate loader backend based on the file extension.
// Currently only glTF/GLB is supported.
func (l *loader) resolveBackend(path string) (loaderBackend, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".gltf", ".glb":
		return l.backend, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// resolve joins a relative path onto the asset root.
func (l *loader) resolve(path string) string {
	if l.root == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(l.root, path)
}

// cacheModel wraps a merged mesh in a Model and stores it under key. If another caller won the race for the same
// key, its model is returned instead.
func (l *loader) cacheModel(key string, mesh model.MeshData) model.Model {
	m := model.NewModel(model.WithName(key), model.WithMesh(mesh))

	l.mu.Lock()
	defer l.mu.Unlock()
	if cached, ok := l.modelCache[key]; ok {
		return cached
	}
	l.modelCache[key] = m
	return m
}

// decodeAll decodes every image on the worker pool and waits for all of them. A WaitGroup is the barrier because
// pool.Wait only returns once the workers go idle.
func (l *loader) decodeAll(paths []string) ([]common.TextureStagingData, error) {
	staged := make([]common.TextureStagingData, len(paths))
	errs := make([]error, len(paths))

	var wg sync.WaitGroup
	for i, p := range paths {
		wg.Add(1)
		full := l.resolve(p)
		l.pool.SubmitTask(worker.Task{
			ID: i,
			Do: func() (any, error) {
				defer wg.Done()
				staged[i], errs[i] = common.DecodeTextureFile(full)
				return nil, errs[i]
			},
		})
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return staged, nil
}
