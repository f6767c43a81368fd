// Package shape builds render-ready meshes: flat-shaded primitives (cube,
// pyramid), sampled parametric surfaces (sphere, cylinder, torus) and the
// normalizer for imported organic meshes.
//
// Every builder returns a fresh *kernel.Mesh owned by the caller. Nothing is
// cached between calls.
package shape

import (
	"errors"

	"github.com/chazu/facet/pkg/kernel"
	"github.com/go-gl/mathgl/mgl32"
)

// ErrInvalidParam is returned when a builder is asked for a resolution or
// dimension it cannot produce a well-formed mesh for.
var ErrInvalidParam = errors.New("invalid shape parameter")

// Option tweaks a primitive builder.
type Option func(*options)

type options struct {
	fullWireframe bool
}

// FullWireframe makes Cube and Pyramid emit every boundary edge of every
// face instead of the default two per face.
func FullWireframe() Option {
	return func(o *options) { o.fullWireframe = true }
}

func applyOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// builder accumulates one mesh.
type builder struct {
	mesh  *kernel.Mesh
	edges *EdgeSet
}

func newBuilder(name string, vertices, triangles int) *builder {
	return &builder{
		mesh: &kernel.Mesh{
			Vertices: make([]float32, 0, 3*vertices),
			Normals:  make([]float32, 0, 3*vertices),
			Indices:  make([]uint32, 0, 3*triangles),
			PartName: name,
		},
		edges: NewEdgeSet(vertices),
	}
}

// vertex appends a position with its normal and returns its index.
func (b *builder) vertex(p, n mgl32.Vec3) uint32 {
	i := uint32(len(b.mesh.Vertices) / 3)
	b.mesh.Vertices = append(b.mesh.Vertices, p[0], p[1], p[2])
	b.mesh.Normals = append(b.mesh.Normals, n[0], n[1], n[2])
	return i
}

func (b *builder) triangle(i, j, k uint32) {
	b.mesh.Indices = append(b.mesh.Indices, i, j, k)
}

func (b *builder) edge(i, j uint32) {
	b.edges.Add(i, j)
}

func (b *builder) finish() *kernel.Mesh {
	b.mesh.Edges = b.edges.Indices()
	return b.mesh
}

// face pushes a flat-shaded polygon (3 or 4 corners) with one normal.
// Quads split into (a,b,c) and (a,c,d). The wireframe gets (a,b) and (b,c)
// unless full is set, in which case the whole boundary loop is emitted.
func (b *builder) face(corners []mgl32.Vec3, n mgl32.Vec3, wire, full bool) {
	base := uint32(len(b.mesh.Vertices) / 3)
	for _, c := range corners {
		b.vertex(c, n)
	}
	b.triangle(base, base+1, base+2)
	if len(corners) == 4 {
		b.triangle(base, base+2, base+3)
	}
	if !wire {
		return
	}
	if !full {
		b.edge(base, base+1)
		b.edge(base+1, base+2)
		return
	}
	k := uint32(len(corners))
	for i := uint32(0); i < k; i++ {
		b.edge(base+i, base+(i+1)%k)
	}
}
