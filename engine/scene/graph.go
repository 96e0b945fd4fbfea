package scene

import (
	"errors"
	"fmt"
	"iter"
	"sync"

	"github.com/spaghettifunk/meshtools/engine/core"
	"github.com/spaghettifunk/meshtools/engine/math"
	"github.com/spaghettifunk/meshtools/engine/mesh"
)

var (
	ErrNodeNotFound = errors.New("scene: node not found")
	ErrCycle        = errors.New("scene: reparenting would create a cycle")
)

// Node is an entity of the graph. Its transform is relative to its parent;
// the graph keeps Transform.Parent in sync with the node hierarchy.
type Node struct {
	ID        core.Identifier
	Name      string
	Transform *math.Transform

	parent   *Node
	children []*Node
}

// Parent returns the parent node, or nil for a root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the direct children in insertion order.
func (n *Node) Children() []*Node {
	return n.children
}

// Graph is a transform hierarchy whose nodes double as skeleton joints.
// It is safe for concurrent use; world matrices are computed without
// touching any cached local matrix, so many skinning jobs may resolve
// joints at the same time.
type Graph struct {
	mu    sync.RWMutex
	nodes map[core.Identifier]*Node
	roots []*Node
}

func NewGraph() *Graph {
	return &Graph{nodes: make(map[core.Identifier]*Node)}
}

// Spawn adds a node under parent, or as a root when parent is core.InvalidID.
// A nil transform is replaced by the identity.
func (g *Graph) Spawn(name string, transform *math.Transform, parent core.Identifier) (*Node, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if transform == nil {
		transform = math.TransformCreate()
	}
	node := &Node{
		ID:        core.IdentifierNew(),
		Name:      name,
		Transform: transform,
	}

	if core.IdentifierIsValid(parent) {
		p, ok := g.nodes[parent]
		if !ok {
			return nil, fmt.Errorf("%w: parent %s", ErrNodeNotFound, parent)
		}
		g.attach(p, node)
	} else {
		transform.Parent = nil
		g.roots = append(g.roots, node)
	}
	g.nodes[node.ID] = node
	return node, nil
}

// AddChild moves child, with its subtree, under parent.
func (g *Graph) AddChild(parent, child core.Identifier) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	p, ok := g.nodes[parent]
	if !ok {
		return fmt.Errorf("%w: parent %s", ErrNodeNotFound, parent)
	}
	c, ok := g.nodes[child]
	if !ok {
		return fmt.Errorf("%w: child %s", ErrNodeNotFound, child)
	}
	for a := p; a != nil; a = a.parent {
		if a == c {
			return fmt.Errorf("%w: %s is an ancestor of %s", ErrCycle, child, parent)
		}
	}

	g.detach(c)
	g.attach(p, c)
	return nil
}

// Remove deletes the node and its whole subtree.
func (g *Graph) Remove(id core.Identifier) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	n, ok := g.nodes[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNodeNotFound, id)
	}
	g.detach(n)
	var drop func(*Node)
	drop = func(n *Node) {
		delete(g.nodes, n.ID)
		for _, c := range n.children {
			drop(c)
		}
	}
	drop(n)
	return nil
}

func (g *Graph) Node(id core.Identifier) (*Node, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	n, ok := g.nodes[id]
	return n, ok
}

// FindByName returns the first node, depth first from the roots, with the
// given name.
func (g *Graph) FindByName(name string) (*Node, bool) {
	for n := range g.All() {
		if n.Name == name {
			return n, true
		}
	}
	return nil, false
}

func (g *Graph) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.nodes)
}

// All walks the graph depth first, parents before children. The graph is
// read locked for the duration of the walk.
func (g *Graph) All() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		g.mu.RLock()
		defer g.mu.RUnlock()

		var walk func(*Node) bool
		walk = func(n *Node) bool {
			if !yield(n) {
				return false
			}
			for _, c := range n.children {
				if !walk(c) {
					return false
				}
			}
			return true
		}
		for _, r := range g.roots {
			if !walk(r) {
				return
			}
		}
	}
}

// UpdateTransform runs fn on the node's transform under the graph's write
// lock, so animation can move joints while other goroutines resolve them.
func (g *Graph) UpdateTransform(id core.Identifier, fn func(t *math.Transform)) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	n, ok := g.nodes[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNodeNotFound, id)
	}
	fn(n.Transform)
	return nil
}

// World returns parent world * local for the node.
func (g *Graph) World(id core.Identifier) (math.Mat4, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	n, ok := g.nodes[id]
	if !ok {
		return math.Mat4{}, false
	}
	return n.Transform.ComputeWorld(), true
}

// JointWorld resolves a skin joint to the world matrix of the node with the
// same identifier.
func (g *Graph) JointWorld(ref mesh.JointRef) (math.Mat4, bool) {
	return g.World(ref)
}

func (g *Graph) attach(parent, child *Node) {
	child.parent = parent
	child.Transform.Parent = parent.Transform
	parent.children = append(parent.children, child)
}

func (g *Graph) detach(n *Node) {
	siblings := &g.roots
	if n.parent != nil {
		siblings = &n.parent.children
	}
	for i, s := range *siblings {
		if s == n {
			*siblings = append((*siblings)[:i], (*siblings)[i+1:]...)
			break
		}
	}
	n.parent = nil
	n.Transform.Parent = nil
}

var _ mesh.JointResolver = (*Graph)(nil)
