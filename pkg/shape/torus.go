package shape

import (
	"fmt"

	"github.com/chazu/facet/pkg/kernel"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// TorusParams sizes a torus lying in the XZ plane.
type TorusParams struct {
	RingRadius float32 // centre of the tube to the origin
	TubeRadius float32
	Disks      int // cross sections around the ring
	DiskPoints int // points per cross section
}

// DefaultTorus returns the torus used by the tabletop scene.
func DefaultTorus() TorusParams {
	return TorusParams{RingRadius: 0.5, TubeRadius: 0.2, Disks: 30, DiskPoints: 20}
}

// Validate reports parameters that cannot produce a closed torus.
func (p TorusParams) Validate() error {
	switch {
	case p.Disks < 3:
		return fmt.Errorf("torus: disks %d < 3: %w", p.Disks, ErrInvalidParam)
	case p.DiskPoints < 3:
		return fmt.Errorf("torus: disk points %d < 3: %w", p.DiskPoints, ErrInvalidParam)
	case p.TubeRadius <= 0 || p.TubeRadius >= p.RingRadius:
		return fmt.Errorf("torus: tube radius %g not in (0, %g): %w", p.TubeRadius, p.RingRadius, ErrInvalidParam)
	}
	return nil
}

// Torus samples a smooth-shaded torus. Disk i sits at angle i·2π/Disks
// around Y; point j of a disk sits at angle j·2π/DiskPoints around the
// tube. Normals point away from the tube centre.
func Torus(p TorusParams) (*kernel.Mesh, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	disks, points := uint32(p.Disks), uint32(p.DiskPoints)
	b := newBuilder("torus", int(disks*points), int(2*disks*points))
	dPhi := 2 * math32.Pi / float32(p.Disks)
	dTheta := 2 * math32.Pi / float32(p.DiskPoints)

	for i := uint32(0); i < disks; i++ {
		sinPhi, cosPhi := math32.Sincos(float32(i) * dPhi)
		centre := mgl32.Vec3{p.RingRadius * cosPhi, 0, p.RingRadius * sinPhi}
		for j := uint32(0); j < points; j++ {
			sinTheta, cosTheta := math32.Sincos(float32(j) * dTheta)
			w := p.RingRadius + p.TubeRadius*cosTheta
			pt := mgl32.Vec3{w * cosPhi, p.TubeRadius * sinTheta, w * sinPhi}
			b.vertex(pt, pt.Sub(centre).Normalize())
		}
	}

	at := func(i, j uint32) uint32 {
		return (i%disks)*points + j%points
	}
	for i := uint32(0); i < disks; i++ {
		for j := uint32(0); j < points; j++ {
			a, bb := at(i, j), at(i+1, j)
			c, d := at(i+1, j+1), at(i, j+1)
			b.triangle(a, d, c)
			b.triangle(a, c, bb)
			b.edge(a, bb)
			b.edge(a, d)
		}
	}

	return b.finish(), nil
}
