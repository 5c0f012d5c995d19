package loader

import (
	"github.com/Carmen-Shannon/oxy-forward/engine/model"
)

// LoaderBuilderOption is a functional option for configuring a Loader via NewLoader.
type LoaderBuilderOption func(*loader)

// WithWorkers sets how many images are decoded at once. Defaults to DefaultWorkers.
//
// Parameters:
//   - n: the worker count (minimum 1)
//
// Returns:
//   - LoaderBuilderOption: a function that applies the worker option to a loader
func WithWorkers(n int) LoaderBuilderOption {
	return func(l *loader) {
		l.workers = max(n, 1)
	}
}

// WithAssetRoot sets the directory relative paths are resolved against.
//
// Parameters:
//   - dir: the asset directory
//
// Returns:
//   - LoaderBuilderOption: a function that applies the root option to a loader
func WithAssetRoot(dir string) LoaderBuilderOption {
	return func(l *loader) {
		l.root = dir
	}
}

// WithModel is an option builder that pre-populates the model cache with a model.
//
// Parameters:
//   - key: the cache key for the model
//   - model: the model to cache
//
// Returns:
//   - LoaderBuilderOption: a function that applies the model option to a loader
func WithModel(key string, model model.Model) LoaderBuilderOption {
	return func(l *loader) {
		l.modelCache[key] = model
	}
}
