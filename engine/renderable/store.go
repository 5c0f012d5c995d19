package renderable

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-forward/common"
	"github.com/Carmen-Shannon/oxy-forward/engine/transform"
)

// ErrUnknownRenderable is returned for indices that do not name a renderable in the store.
var ErrUnknownRenderable = errors.New("unknown renderable")

// Store owns the scene's renderables in insertion order. Indices returned by Add stay valid for the store's
// lifetime; draw order within a pass follows insertion order.
type Store interface {
	// Add appends a renderable.
	//
	// Parameters:
	//   - r: the renderable
	//
	// Returns:
	//   - int: the renderable's index
	Add(r Renderable) int

	// Get returns a pointer to the stored renderable, or nil for an unknown index.
	//
	// Parameters:
	//   - i: the index
	//
	// Returns:
	//   - *Renderable: the renderable or nil
	Get(i int) *Renderable

	// SetWorld overwrites a renderable's cached world matrix.
	//
	// Parameters:
	//   - i: the index
	//   - world: the new world matrix
	//
	// Returns:
	//   - error: ErrUnknownRenderable for an invalid index
	SetWorld(i int, world [16]float32) error

	// All returns every renderable in insertion order.
	//
	// Returns:
	//   - []*Renderable: the renderables
	All() []*Renderable

	// Opaque returns the renderables drawn by the depth and lighting passes.
	//
	// Returns:
	//   - []*Renderable: opaque renderables in insertion order
	Opaque() []*Renderable

	// Reflective returns the renderables drawn by the reflective pass.
	//
	// Returns:
	//   - []*Renderable: reflective renderables in insertion order
	Reflective() []*Renderable

	// SyncFromArena copies arena.World(node) into every dynamic renderable that has a node.
	//
	// Parameters:
	//   - arena: the transform arena
	//
	// Returns:
	//   - error: the first arena lookup failure
	SyncFromArena(arena transform.Arena) error

	// Len returns the number of renderables.
	Len() int
}

type store struct {
	items []*Renderable
}

var _ Store = &store{}

// NewStore creates an empty Store.
//
// Returns:
//   - Store: the store
func NewStore() Store {
	return &store{}
}

func (s *store) Add(r Renderable) int {
	s.items = append(s.items, &r)
	return len(s.items) - 1
}

func (s *store) Get(i int) *Renderable {
	if i < 0 || i >= len(s.items) {
		return nil
	}
	return s.items[i]
}

func (s *store) SetWorld(i int, world [16]float32) error {
	r := s.Get(i)
	if r == nil {
		return fmt.Errorf("%w: %d", ErrUnknownRenderable, i)
	}
	r.World = world
	return nil
}

func (s *store) All() []*Renderable {
	return s.items
}

func (s *store) Opaque() []*Renderable {
	return s.filter(DrawModeOpaque)
}

func (s *store) Reflective() []*Renderable {
	return s.filter(DrawModeReflective)
}

func (s *store) SyncFromArena(arena transform.Arena) error {
	for i, r := range s.items {
		if r.Mobility != common.MobilityDynamic || r.Node == transform.NoParent {
			continue
		}
		world, err := arena.World(r.Node)
		if err != nil {
			return fmt.Errorf("renderable %d (%s): %w", i, r.Name, err)
		}
		r.World = world
	}
	return nil
}

func (s *store) Len() int {
	return len(s.items)
}

func (s *store) filter(mode DrawMode) []*Renderable {
	out := make([]*Renderable, 0, len(s.items))
	for _, r := range s.items {
		if r.Mode == mode {
			out = append(out, r)
		}
	}
	return out
}
