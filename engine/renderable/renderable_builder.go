package renderable

import (
	"github.com/Carmen-Shannon/oxy-forward/common"
	"github.com/Carmen-Shannon/oxy-forward/engine/model"
	"github.com/Carmen-Shannon/oxy-forward/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-forward/engine/transform"
)

// RenderableBuilderOption is a functional option for configuring a Renderable via NewRenderable.
type RenderableBuilderOption func(*Renderable)

// WithName sets the renderable's debug name.
//
// Parameters:
//   - name: the name
//
// Returns:
//   - RenderableBuilderOption: a function that applies the name option
func WithName(name string) RenderableBuilderOption {
	return func(r *Renderable) {
		r.Name = name
	}
}

// WithMesh sets the mesh drawn for this renderable.
//
// Parameters:
//   - m: the mesh model
//
// Returns:
//   - RenderableBuilderOption: a function that applies the mesh option
func WithMesh(m model.Model) RenderableBuilderOption {
	return func(r *Renderable) {
		r.Mesh = m
	}
}

// WithWorld sets the initial world matrix.
//
// Parameters:
//   - world: column-major model matrix
//
// Returns:
//   - RenderableBuilderOption: a function that applies the world option
func WithWorld(world [16]float32) RenderableBuilderOption {
	return func(r *Renderable) {
		r.World = world
	}
}

// WithNode binds the renderable to a transform node. Dynamic renderables pull their world matrix from it.
//
// Parameters:
//   - id: the transform node
//
// Returns:
//   - RenderableBuilderOption: a function that applies the node option
func WithNode(id transform.NodeID) RenderableBuilderOption {
	return func(r *Renderable) {
		r.Node = id
	}
}

// WithDiffuseMap attaches a diffuse texture.
//
// Parameters:
//   - t: the texture
//
// Returns:
//   - RenderableBuilderOption: a function that applies the diffuse map option
func WithDiffuseMap(t material.Texture) RenderableBuilderOption {
	return func(r *Renderable) {
		r.DiffuseMap = t
	}
}

// WithNormalMap attaches a tangent space normal map.
//
// Parameters:
//   - t: the texture
//
// Returns:
//   - RenderableBuilderOption: a function that applies the normal map option
func WithNormalMap(t material.Texture) RenderableBuilderOption {
	return func(r *Renderable) {
		r.NormalMap = t
	}
}

// WithMobility tags the renderable static or dynamic.
//
// Parameters:
//   - m: the mobility tag
//
// Returns:
//   - RenderableBuilderOption: a function that applies the mobility option
func WithMobility(m common.Mobility) RenderableBuilderOption {
	return func(r *Renderable) {
		r.Mobility = m
	}
}

// WithMode sets the draw mode.
//
// Parameters:
//   - mode: opaque or reflective
//
// Returns:
//   - RenderableBuilderOption: a function that applies the mode option
func WithMode(mode DrawMode) RenderableBuilderOption {
	return func(r *Renderable) {
		r.Mode = mode
	}
}
