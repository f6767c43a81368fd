package kernel

import (
	"errors"
	"fmt"
)

// ErrInvalidMesh is returned by Validate when a mesh breaks one of its
// buffer invariants.
var ErrInvalidMesh = errors.New("invalid mesh")

// Mesh is a render-ready mesh. All arrays are flat: vertices has 3 floats
// per vertex (x,y,z), normals has 3 floats per vertex and is index-aligned
// with vertices, indices has 3 uint32s per triangle (counter-clockwise seen
// from outside) and edges has 2 uint32s per wireframe segment.
//
// A Mesh is built once and treated as read-only afterwards. Backends copy
// the buffers; they never write to them.
type Mesh struct {
	Vertices []float32 `json:"vertices"` // [x0,y0,z0, x1,y1,z1, ...]
	Normals  []float32 `json:"normals"`  // [nx0,ny0,nz0, ...]
	Indices  []uint32  `json:"indices"`  // [i0,i1,i2, ...] triangles
	Edges    []uint32  `json:"edges"`    // [e0,e1, ...] line segments
	PartName string    `json:"partName"` // model name the mesh was built for
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / 3
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// EdgeCount returns the number of wireframe segments.
func (m *Mesh) EdgeCount() int {
	return len(m.Edges) / 2
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Vertices) == 0
}

// Vertex returns the position of vertex i.
func (m *Mesh) Vertex(i uint32) [3]float32 {
	return [3]float32{m.Vertices[3*i], m.Vertices[3*i+1], m.Vertices[3*i+2]}
}

// Normal returns the normal of vertex i.
func (m *Mesh) Normal(i uint32) [3]float32 {
	return [3]float32{m.Normals[3*i], m.Normals[3*i+1], m.Normals[3*i+2]}
}

// Validate checks the buffer invariants: whole vertices, one normal per
// vertex, whole triangles and segments, every index in range and no
// segment repeated regardless of endpoint order.
func (m *Mesh) Validate() error {
	if len(m.Vertices)%3 != 0 {
		return fmt.Errorf("%w: vertex buffer length %d is not a multiple of 3", ErrInvalidMesh, len(m.Vertices))
	}
	if len(m.Normals) != len(m.Vertices) {
		return fmt.Errorf("%w: %d normal floats for %d vertex floats", ErrInvalidMesh, len(m.Normals), len(m.Vertices))
	}
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("%w: index buffer length %d is not a multiple of 3", ErrInvalidMesh, len(m.Indices))
	}
	if len(m.Edges)%2 != 0 {
		return fmt.Errorf("%w: edge buffer length %d is not a multiple of 2", ErrInvalidMesh, len(m.Edges))
	}

	n := uint32(m.VertexCount())
	for i, idx := range m.Indices {
		if idx >= n {
			return fmt.Errorf("%w: triangle index %d at %d out of range [0,%d)", ErrInvalidMesh, idx, i, n)
		}
	}

	seen := make(map[[2]uint32]struct{}, len(m.Edges)/2)
	for i := 0; i < len(m.Edges); i += 2 {
		a, b := m.Edges[i], m.Edges[i+1]
		if a >= n || b >= n {
			return fmt.Errorf("%w: edge (%d,%d) at %d out of range [0,%d)", ErrInvalidMesh, a, b, i, n)
		}
		if a > b {
			a, b = b, a
		}
		key := [2]uint32{a, b}
		if _, dup := seen[key]; dup {
			return fmt.Errorf("%w: edge (%d,%d) emitted twice", ErrInvalidMesh, a, b)
		}
		seen[key] = struct{}{}
	}
	return nil
}

// BoundingBox returns the axis-aligned bounds of the vertices. An empty
// mesh yields zero bounds.
func (m *Mesh) BoundingBox() (min, max [3]float32) {
	if m.IsEmpty() {
		return min, max
	}
	copy(min[:], m.Vertices[:3])
	copy(max[:], m.Vertices[:3])
	for i := 3; i < len(m.Vertices); i += 3 {
		for k := 0; k < 3; k++ {
			v := m.Vertices[i+k]
			if v < min[k] {
				min[k] = v
			}
			if v > max[k] {
				max[k] = v
			}
		}
	}
	return min, max
}
