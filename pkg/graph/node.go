package graph

import "github.com/google/uuid"

// NodeKind enumerates the types of nodes in the scene graph.
type NodeKind int

const (
	NodeDraw      NodeKind = iota // one mesh drawn with one material (draw)
	NodeTransform                 // placement of its children (place)
	NodeGroup                     // logical grouping (assembly)
)

func (k NodeKind) String() string {
	switch k {
	case NodeDraw:
		return "draw"
	case NodeTransform:
		return "transform"
	case NodeGroup:
		return "group"
	default:
		return "unknown"
	}
}

// NodeID identifies a node within one graph.
type NodeID string

// NewNodeID returns a fresh random identifier.
func NewNodeID() NodeID {
	return NodeID(uuid.NewString())
}

// IsZero reports whether the ID is unset.
func (id NodeID) IsZero() bool {
	return id == ""
}

// Short returns the first 8 characters, enough for log and error output.
func (id NodeID) Short() string {
	if len(id) <= 8 {
		return string(id)
	}
	return string(id[:8])
}

// Node is the fundamental element of the scene graph.
type Node struct {
	ID       NodeID   `json:"id"`
	Kind     NodeKind `json:"kind"`
	Name     string   `json:"name,omitempty"`
	Children []NodeID `json:"children,omitempty"`
	Data     NodeData `json:"data"`
}

// NodeData is the interface for kind-specific node payloads.
type NodeData interface {
	nodeData() // marker method restricting implementations to this package
}

// Vec3 is a 3-component vector used by transform payloads.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// DrawData draws one mesh from the model library.
// Created by the (draw ...) Lisp form.
type DrawData struct {
	Mesh     string `json:"mesh"`
	Material string `json:"material,omitempty"`
}

func (DrawData) nodeData() {}

// TransformData places its children. The operations compose in a fixed
// order: translation, then rotation (Z, then Y, then X, in degrees), then
// scale, each right-multiplied onto the parent matrix.
// Created by the (place ...) Lisp form.
type TransformData struct {
	Translation *Vec3 `json:"translation,omitempty"`
	Rotation    *Vec3 `json:"rotation,omitempty"` // Euler angles in degrees
	Scale       *Vec3 `json:"scale,omitempty"`
}

func (TransformData) nodeData() {}

// GroupData represents a logical grouping (assembly, subassembly).
// Created by the (assembly ...) Lisp form.
type GroupData struct {
	Description string `json:"description,omitempty"`
}

func (GroupData) nodeData() {}
