package models

import (
	"fmt"

	"github.com/chazu/facet/pkg/config"
	"github.com/chazu/facet/pkg/importer"
	"github.com/chazu/facet/pkg/kernel"
	"github.com/chazu/facet/pkg/kernel/sdfx"
	"github.com/chazu/facet/pkg/shape"
)

// Organic builds the irregular display mesh: a rabbit-like blob from the
// SDF kernel, or a mesh file. The result is decimated when asked and then
// normalized to unit height about the origin.
func Organic(o config.Organic) (*kernel.Mesh, error) {
	var (
		raw *kernel.RawMesh
		err error
	)
	switch o.Source {
	case config.OrganicSDF, "":
		k := sdfx.New(sdfx.WithCells(o.Cells))
		raw, err = k.ToRaw(Blob(k))
	case config.OrganicFile:
		raw, err = importer.Load(o.Path)
	default:
		return nil, fmt.Errorf("organic: unknown source %q", o.Source)
	}
	if err != nil {
		return nil, fmt.Errorf("organic: %w", err)
	}

	if o.Decimate > 0 && o.Decimate < 1 {
		if raw, err = importer.Decimate(raw, o.Decimate); err != nil {
			return nil, fmt.Errorf("organic: %w", err)
		}
	}
	return shape.Normalize(raw)
}

// BlobFloor is the height at which Blob's underside is cut flat.
const BlobFloor = -0.95

// Blob models a sitting rabbit from smoothly joined spheres and capsules,
// facing +X, with dimpled eyes and a flat underside at BlobFloor.
func Blob(k kernel.Kernel) kernel.Solid {
	body := k.Sphere(1.0)
	head := k.Translate(k.Sphere(0.6), 0.95, 0.75, 0)
	tail := k.Translate(k.Sphere(0.3), -1.05, 0.05, 0)
	ear := func(z float64) kernel.Solid {
		e := k.Rotate(k.Capsule(1.1, 0.16), 90, 0, -15)
		return k.Translate(e, 0.85, 1.55, z)
	}
	// Capsules and cylinders lie along Z, across the body.
	feet := k.Translate(k.Capsule(1.0, 0.22), 0.55, -0.85, 0)
	eye := func(z float64) kernel.Solid {
		return k.Translate(k.Cylinder(0.16, 0.07, 0), 1.38, 0.92, z)
	}

	s := k.SmoothUnion(body, head, 0.3)
	s = k.SmoothUnion(s, tail, 0.15)
	s = k.SmoothUnion(s, k.Union(ear(0.22), ear(-0.22)), 0.1)
	s = k.SmoothUnion(s, feet, 0.2)
	s = k.Difference(s, k.Union(eye(0.385), eye(-0.385)))

	// Keep everything above the floor: a box whose bottom face is BlobFloor.
	const keep = 6.0
	return k.Intersection(s, k.Translate(k.Box(keep, keep, keep), 0, BlobFloor+keep/2, 0))
}
