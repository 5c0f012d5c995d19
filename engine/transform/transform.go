// Package transform stores scene nodes in an arena. Each node has a local matrix and an optional parent referenced by
// index; world matrices are folded from the root down on request and never cached.
package transform

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-forward/common"
)

// NodeID indexes a node in an Arena.
type NodeID int

// NoParent marks a root node.
const NoParent NodeID = -1

// ErrUnknownNode is returned for ids that do not name a node in the arena.
var ErrUnknownNode = errors.New("unknown transform node")

// Arena owns every transform node of a scene.
type Arena interface {
	// Add appends a node. The parent must already exist (or be NoParent), which rules out cycles by construction.
	//
	// Parameters:
	//   - local: the node's local matrix (column-major)
	//   - parent: the parent node or NoParent
	//
	// Returns:
	//   - NodeID: the new node's id
	//   - error: ErrUnknownNode if parent does not exist
	Add(local [16]float32, parent NodeID) (NodeID, error)

	// Local returns a node's local matrix.
	//
	// Parameters:
	//   - id: the node
	//
	// Returns:
	//   - [16]float32: the local matrix
	//   - error: ErrUnknownNode for an invalid id
	Local(id NodeID) ([16]float32, error)

	// SetLocal replaces a node's local matrix.
	//
	// Parameters:
	//   - id: the node
	//   - local: the new local matrix
	//
	// Returns:
	//   - error: ErrUnknownNode for an invalid id
	SetLocal(id NodeID, local [16]float32) error

	// PreMultiply replaces a node's local matrix with m * local, applying m after the existing local transform.
	//
	// Parameters:
	//   - id: the node
	//   - m: the matrix to apply
	//
	// Returns:
	//   - error: ErrUnknownNode for an invalid id
	PreMultiply(id NodeID, m [16]float32) error

	// Parent returns a node's parent, or NoParent for roots.
	//
	// Parameters:
	//   - id: the node
	//
	// Returns:
	//   - NodeID: the parent
	//   - error: ErrUnknownNode for an invalid id
	Parent(id NodeID) (NodeID, error)

	// World composes the node's world matrix as parent.World * local, recursively.
	//
	// Parameters:
	//   - id: the node
	//
	// Returns:
	//   - [16]float32: the world matrix
	//   - error: ErrUnknownNode for an invalid id
	World(id NodeID) ([16]float32, error)

	// Len returns the number of nodes.
	Len() int
}

type node struct {
	local  [16]float32
	parent NodeID
}

type arena struct {
	nodes []node
}

var _ Arena = &arena{}

// NewArena creates an empty arena.
//
// Returns:
//   - Arena: the arena
func NewArena() Arena {
	return &arena{}
}

func (a *arena) valid(id NodeID) bool {
	return id >= 0 && int(id) < len(a.nodes)
}

func (a *arena) Add(local [16]float32, parent NodeID) (NodeID, error) {
	if parent != NoParent && !a.valid(parent) {
		return NoParent, fmt.Errorf("%w: parent %d", ErrUnknownNode, parent)
	}
	a.nodes = append(a.nodes, node{local: local, parent: parent})
	return NodeID(len(a.nodes) - 1), nil
}

func (a *arena) Local(id NodeID) ([16]float32, error) {
	if !a.valid(id) {
		return [16]float32{}, fmt.Errorf("%w: %d", ErrUnknownNode, id)
	}
	return a.nodes[id].local, nil
}

func (a *arena) SetLocal(id NodeID, local [16]float32) error {
	if !a.valid(id) {
		return fmt.Errorf("%w: %d", ErrUnknownNode, id)
	}
	a.nodes[id].local = local
	return nil
}

func (a *arena) PreMultiply(id NodeID, m [16]float32) error {
	if !a.valid(id) {
		return fmt.Errorf("%w: %d", ErrUnknownNode, id)
	}
	a.nodes[id].local = common.MulMat4(m, a.nodes[id].local)
	return nil
}

func (a *arena) Parent(id NodeID) (NodeID, error) {
	if !a.valid(id) {
		return NoParent, fmt.Errorf("%w: %d", ErrUnknownNode, id)
	}
	return a.nodes[id].parent, nil
}

func (a *arena) World(id NodeID) ([16]float32, error) {
	if !a.valid(id) {
		return [16]float32{}, fmt.Errorf("%w: %d", ErrUnknownNode, id)
	}
	n := a.nodes[id]
	if n.parent == NoParent {
		return n.local, nil
	}
	parentWorld, err := a.World(n.parent)
	if err != nil {
		return [16]float32{}, err
	}
	return common.MulMat4(parentWorld, n.local), nil
}

func (a *arena) Len() int {
	return len(a.nodes)
}
