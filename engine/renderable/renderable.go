// Package renderable holds the per-object draw records the frame renderer iterates: a mesh, its cached world
// matrix and its material maps.
package renderable

import (
	"github.com/Carmen-Shannon/oxy-forward/common"
	"github.com/Carmen-Shannon/oxy-forward/engine/model"
	"github.com/Carmen-Shannon/oxy-forward/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-forward/engine/transform"
)

// DrawMode selects which passes draw a renderable.
type DrawMode int

const (
	// DrawModeOpaque renderables take part in the depth pre-pass and every lighting pass.
	DrawModeOpaque DrawMode = iota

	// DrawModeReflective renderables are drawn once in the reflective pass, sampling the skybox cube.
	DrawModeReflective
)

// String returns the lower case mode name.
func (m DrawMode) String() string {
	switch m {
	case DrawModeOpaque:
		return "opaque"
	case DrawModeReflective:
		return "reflective"
	default:
		return "unknown"
	}
}

// Renderable is one drawable object. World is a cache: dynamic renderables bound to a transform node get it
// refreshed by Store.SyncFromArena every tick, static ones keep the value set at setup.
type Renderable struct {
	Name string
	Mesh model.Model

	// World is the column-major model matrix used for drawing.
	World [16]float32

	// Node is the transform node World is pulled from, or transform.NoParent for none.
	Node transform.NodeID

	// DiffuseMap and NormalMap are optional; nil means the pass uses a flat fallback.
	DiffuseMap material.Texture
	NormalMap  material.Texture

	Mobility common.Mobility
	Mode     DrawMode
}

// NewRenderable creates a Renderable with an identity world matrix and no transform node, then applies options.
//
// Parameters:
//   - options: a variadic list of RenderableBuilderOption functions
//
// Returns:
//   - Renderable: the configured renderable
func NewRenderable(options ...RenderableBuilderOption) Renderable {
	r := Renderable{
		World:    common.IdentityMat4(),
		Node:     transform.NoParent,
		Mobility: common.MobilityStatic,
		Mode:     DrawModeOpaque,
	}
	for _, opt := range options {
		opt(&r)
	}
	return r
}

// HasDiffuseMap reports whether a diffuse texture is attached.
func (r *Renderable) HasDiffuseMap() bool {
	return r.DiffuseMap != nil
}

// HasNormalMap reports whether a normal map is attached.
func (r *Renderable) HasNormalMap() bool {
	return r.NormalMap != nil
}
