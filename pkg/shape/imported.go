package shape

import (
	"fmt"

	"github.com/chazu/facet/pkg/kernel"
	"github.com/go-gl/mathgl/mgl32"
)

// Normalize turns imported geometry into a render-ready mesh. The input is
// not modified.
//
// Points are re-centred on their bounding-box midpoint and every axis is
// divided by the Y extent, so the result is one unit tall and keeps its
// aspect ratio. Each vertex normal is the normalized sum of the unnormalized
// normals (p2−p1)×(p3−p1) of the faces touching it, which weights larger
// faces more. A vertex no face references keeps a zero normal. The wireframe
// holds every face edge once.
func Normalize(raw *kernel.RawMesh) (*kernel.Mesh, error) {
	if raw == nil || len(raw.Points) == 0 {
		return nil, fmt.Errorf("normalize: empty mesh: %w", ErrInvalidParam)
	}
	if err := raw.Check(); err != nil {
		return nil, fmt.Errorf("normalize: %v: %w", err, ErrInvalidParam)
	}

	n := raw.PointCount()
	points := make([]mgl32.Vec3, n)
	for i := range points {
		points[i] = mgl32.Vec3{raw.Points[3*i], raw.Points[3*i+1], raw.Points[3*i+2]}
	}

	lo, hi := points[0], points[0]
	for _, p := range points[1:] {
		for k := 0; k < 3; k++ {
			if p[k] < lo[k] {
				lo[k] = p[k]
			}
			if p[k] > hi[k] {
				hi[k] = p[k]
			}
		}
	}
	height := hi[1] - lo[1]
	if height == 0 {
		return nil, fmt.Errorf("normalize: zero Y extent: %w", ErrInvalidParam)
	}
	mid := lo.Add(hi).Mul(0.5)

	mesh := &kernel.Mesh{
		Vertices: make([]float32, 0, 3*n),
		Indices:  make([]uint32, len(raw.Faces)),
	}
	for i, p := range points {
		p = p.Sub(mid).Mul(1 / height)
		points[i] = p
		mesh.Vertices = append(mesh.Vertices, p[0], p[1], p[2])
	}
	copy(mesh.Indices, raw.Faces)

	acc := NewNormalAccumulator(n)
	edges := NewEdgeSet(n)
	for f := 0; f < len(raw.Faces); f += 3 {
		i1, i2, i3 := raw.Faces[f], raw.Faces[f+1], raw.Faces[f+2]
		p1 := points[i1]
		face := points[i2].Sub(p1).Cross(points[i3].Sub(p1))
		acc.Add(i1, face)
		acc.Add(i2, face)
		acc.Add(i3, face)
		edges.Add(i1, i2)
		edges.Add(i2, i3)
		edges.Add(i3, i1)
	}
	mesh.Normals = acc.Normals()
	mesh.Edges = edges.Indices()
	return mesh, nil
}
