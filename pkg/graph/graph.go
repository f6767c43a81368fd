package graph

import "fmt"

// SceneGraph is the top-level immutable data structure produced by Lisp
// evaluation. It is never mutated once handed to scene assembly; each
// evaluation produces a new graph.
type SceneGraph struct {
	Nodes     map[NodeID]*Node  `json:"nodes"`
	Order     []NodeID          `json:"order"` // creation order
	Roots     []NodeID          `json:"roots"`
	NameIndex map[string]NodeID `json:"name_index"`
	Version   uint64            `json:"version"`
}

// New creates an empty SceneGraph.
func New() *SceneGraph {
	return &SceneGraph{
		Nodes:     make(map[NodeID]*Node),
		NameIndex: make(map[string]NodeID),
	}
}

// AddNode adds a node to the graph. It does not check for duplicates.
func (g *SceneGraph) AddNode(n *Node) {
	if _, ok := g.Nodes[n.ID]; !ok {
		g.Order = append(g.Order, n.ID)
	}
	g.Nodes[n.ID] = n
	if n.Name != "" {
		g.NameIndex[n.Name] = n.ID
	}
}

// AddRoot registers a node ID as a root of the graph.
func (g *SceneGraph) AddRoot(id NodeID) {
	g.Roots = append(g.Roots, id)
}

// ResolveRoots replaces Roots with every node no other node references,
// in creation order. Evaluation calls it once the script has run so that
// top-level forms become roots without the script naming them.
func (g *SceneGraph) ResolveRoots() {
	referenced := make(map[NodeID]bool, len(g.Nodes))
	for _, n := range g.Nodes {
		for _, c := range n.Children {
			referenced[c] = true
		}
	}
	g.Roots = g.Roots[:0]
	for _, id := range g.Order {
		if !referenced[id] {
			g.Roots = append(g.Roots, id)
		}
	}
}

// Lookup returns the node with the given user-assigned name, or nil.
func (g *SceneGraph) Lookup(name string) *Node {
	id, ok := g.NameIndex[name]
	if !ok {
		return nil
	}
	return g.Nodes[id]
}

// MustLookup returns the node with the given name, or panics.
func (g *SceneGraph) MustLookup(name string) *Node {
	n := g.Lookup(name)
	if n == nil {
		panic(fmt.Sprintf("graph: no node named %q", name))
	}
	return n
}

// Get returns the node with the given ID, or nil.
func (g *SceneGraph) Get(id NodeID) *Node {
	return g.Nodes[id]
}

// Draws returns all draw nodes in creation order.
func (g *SceneGraph) Draws() []*Node {
	var draws []*Node
	for _, id := range g.Order {
		if n := g.Nodes[id]; n != nil && n.Kind == NodeDraw {
			draws = append(draws, n)
		}
	}
	return draws
}

// Children returns the child nodes of the given node.
func (g *SceneGraph) Children(n *Node) []*Node {
	children := make([]*Node, 0, len(n.Children))
	for _, cid := range n.Children {
		if c := g.Nodes[cid]; c != nil {
			children = append(children, c)
		}
	}
	return children
}

// NodeCount returns the total number of nodes.
func (g *SceneGraph) NodeCount() int {
	return len(g.Nodes)
}
