package shape

import (
	"fmt"

	"github.com/chazu/facet/pkg/kernel"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// DefaultCylinderPoints is the default number of points per disk.
const DefaultCylinderPoints = 30

// Cylinder samples a capped cylinder of height 1 and radius 0.5 centred on
// the origin with its axis along Y.
//
// Vertex layout: top centre at 0 followed by its rim, bottom centre at
// diskPoints+1 followed by its rim, then the side band with top and bottom
// rim points interleaved so the caps and the side keep separate normals.
func Cylinder(diskPoints int) (*kernel.Mesh, error) {
	if diskPoints < 3 {
		return nil, fmt.Errorf("cylinder: disk points %d < 3: %w", diskPoints, ErrInvalidParam)
	}

	n := uint32(diskPoints)
	b := newBuilder("cylinder", int(4*n+2), int(4*n))
	step := 2 * math32.Pi / float32(diskPoints)

	rim := make([]mgl32.Vec2, n)
	for i := range rim {
		sin, cos := math32.Sincos(float32(i+1) * step)
		rim[i] = mgl32.Vec2{0.5 * cos, 0.5 * sin}
	}

	up, down := mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, -1, 0}
	top := b.vertex(mgl32.Vec3{0, 0.5, 0}, up)
	for _, p := range rim {
		b.vertex(mgl32.Vec3{p[0], 0.5, p[1]}, up)
	}
	bottom := b.vertex(mgl32.Vec3{0, -0.5, 0}, down)
	for _, p := range rim {
		b.vertex(mgl32.Vec3{p[0], -0.5, p[1]}, down)
	}
	band := uint32(len(b.mesh.Vertices) / 3)
	for _, p := range rim {
		side := mgl32.Vec3{p[0], 0, p[1]}.Normalize()
		b.vertex(mgl32.Vec3{p[0], 0.5, p[1]}, side)
		b.vertex(mgl32.Vec3{p[0], -0.5, p[1]}, side)
	}

	// Caps: the top fan winds against the rim order, the bottom with it.
	for o := uint32(1); o < n; o++ {
		b.triangle(top, o+1, o)
	}
	b.triangle(top, 1, n)
	for o := bottom + 1; o < bottom+n; o++ {
		b.triangle(bottom, o, o+1)
	}
	b.triangle(bottom, bottom+n, bottom+1)

	// Side band: segment k spans top/bottom pair k and k+1.
	for k := uint32(0); k < n; k++ {
		a := band + 2*k
		c, d := a+2, a+3
		if k == n-1 {
			c, d = band, band+1
		}
		bb := a + 1
		b.triangle(a, c, bb)
		b.triangle(bb, c, d)

		b.edge(a, top)
		b.edge(bb, bottom)
		b.edge(a, bb)
		b.edge(a, c)
		b.edge(bb, d)
	}

	return b.finish(), nil
}
