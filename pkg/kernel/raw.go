package kernel

import (
	"fmt"
	"math"
)

// RawMesh is unprocessed indexed geometry as it comes out of an importer or
// a solid backend: flat xyz points and flat triangle triples. It carries no
// normals and no wireframe; shape.Normalize derives both.
type RawMesh struct {
	Points []float32 `json:"points"`
	Faces  []uint32  `json:"faces"`
}

// PointCount returns the number of points.
func (r *RawMesh) PointCount() int {
	return len(r.Points) / 3
}

// FaceCount returns the number of triangles.
func (r *RawMesh) FaceCount() int {
	return len(r.Faces) / 3
}

// Check reports malformed buffers and out-of-range face indices.
func (r *RawMesh) Check() error {
	if len(r.Points)%3 != 0 {
		return fmt.Errorf("raw mesh: point buffer length %d is not a multiple of 3", len(r.Points))
	}
	if len(r.Faces)%3 != 0 {
		return fmt.Errorf("raw mesh: face buffer length %d is not a multiple of 3", len(r.Faces))
	}
	n := uint32(r.PointCount())
	for i, idx := range r.Faces {
		if idx >= n {
			return fmt.Errorf("raw mesh: face index %d at %d out of range [0,%d)", idx, i, n)
		}
	}
	return nil
}

// Weld turns a triangle soup (9 floats per triangle) into indexed geometry.
// Corners that round to the same eps grid cell share one point, the first
// one seen; eps <= 0 merges only bit-identical corners. Close corners on
// either side of a cell boundary stay separate. Triangles that collapse onto fewer than three
// distinct points are dropped.
func Weld(soup []float32, eps float32) *RawMesh {
	raw := &RawMesh{}
	lookup := make(map[[3]float32]uint32, len(soup)/9)

	key := func(p [3]float32) [3]float32 {
		if eps <= 0 {
			return p
		}
		for k := range p {
			p[k] = float32(math.Round(float64(p[k]/eps))) * eps
		}
		return p
	}
	index := func(p [3]float32) uint32 {
		k := key(p)
		if i, ok := lookup[k]; ok {
			return i
		}
		i := uint32(len(raw.Points) / 3)
		raw.Points = append(raw.Points, p[0], p[1], p[2])
		lookup[k] = i
		return i
	}

	for t := 0; t+9 <= len(soup); t += 9 {
		a := index([3]float32{soup[t], soup[t+1], soup[t+2]})
		b := index([3]float32{soup[t+3], soup[t+4], soup[t+5]})
		c := index([3]float32{soup[t+6], soup[t+7], soup[t+8]})
		if a == b || b == c || a == c {
			continue
		}
		raw.Faces = append(raw.Faces, a, b, c)
	}
	return raw
}
