package importer

import (
	"fmt"

	"github.com/chazu/facet/pkg/kernel"
	"github.com/fogleman/simplify"
)

// LoadSTL reads a binary STL file. STL stores a triangle soup, so shared
// corners are welded back together.
func LoadSTL(path string) (*kernel.RawMesh, error) {
	mesh, err := simplify.LoadBinarySTL(path)
	if err != nil {
		return nil, err
	}
	return fromSimplify(mesh), nil
}

// Decimate reduces raw to roughly factor of its triangles using quadric
// error simplification. factor must be in (0, 1]; 1 returns a copy.
func Decimate(raw *kernel.RawMesh, factor float64) (*kernel.RawMesh, error) {
	if factor <= 0 || factor > 1 {
		return nil, fmt.Errorf("decimate: factor %g not in (0, 1]", factor)
	}
	if err := raw.Check(); err != nil {
		return nil, fmt.Errorf("decimate: %w", err)
	}
	if factor == 1 {
		return &kernel.RawMesh{
			Points: append([]float32(nil), raw.Points...),
			Faces:  append([]uint32(nil), raw.Faces...),
		}, nil
	}
	return fromSimplify(toSimplify(raw).Simplify(factor)), nil
}

func toSimplify(raw *kernel.RawMesh) *simplify.Mesh {
	at := func(i uint32) simplify.Vector {
		return simplify.Vector{
			X: float64(raw.Points[3*i]),
			Y: float64(raw.Points[3*i+1]),
			Z: float64(raw.Points[3*i+2]),
		}
	}
	triangles := make([]*simplify.Triangle, 0, raw.FaceCount())
	for f := 0; f < len(raw.Faces); f += 3 {
		triangles = append(triangles, simplify.NewTriangle(
			at(raw.Faces[f]), at(raw.Faces[f+1]), at(raw.Faces[f+2])))
	}
	return simplify.NewMesh(triangles)
}

func fromSimplify(mesh *simplify.Mesh) *kernel.RawMesh {
	soup := make([]float32, 0, 9*len(mesh.Triangles))
	for _, t := range mesh.Triangles {
		for _, v := range [3]simplify.Vector{t.V1, t.V2, t.V3} {
			soup = append(soup, float32(v.X), float32(v.Y), float32(v.Z))
		}
	}
	return kernel.Weld(soup, 0)
}
