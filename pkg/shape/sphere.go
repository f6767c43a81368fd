package shape

import (
	"fmt"

	"github.com/chazu/facet/pkg/kernel"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Default sphere resolution.
const (
	DefaultLatitudes  = 50
	DefaultLongitudes = 50
)

const sphereRadius = 0.5

// Sphere samples a sphere of radius 0.5 centred on the origin: a north
// pole, latitudes rings of longitudes points each, and a south pole.
// Normals are the normalized positions.
func Sphere(latitudes, longitudes int) (*kernel.Mesh, error) {
	if latitudes < 1 {
		return nil, fmt.Errorf("sphere: latitudes %d < 1: %w", latitudes, ErrInvalidParam)
	}
	if longitudes < 3 {
		return nil, fmt.Errorf("sphere: longitudes %d < 3: %w", longitudes, ErrInvalidParam)
	}

	lat, lon := uint32(latitudes), uint32(longitudes)
	vertices := int(lat*lon + 2)
	triangles := int(2 * lon * lat)
	b := newBuilder("sphere", vertices, triangles)

	dPhi := math32.Pi / float32(latitudes+1)
	dTheta := 2 * math32.Pi / float32(longitudes)

	north := b.vertex(mgl32.Vec3{0, sphereRadius, 0}, mgl32.Vec3{0, 1, 0})
	phi := math32.Pi/2 - dPhi
	for i := uint32(0); i < lat; i++ {
		sinPhi, cosPhi := math32.Sincos(phi)
		for j := uint32(0); j < lon; j++ {
			sinTheta, cosTheta := math32.Sincos(float32(j) * dTheta)
			n := mgl32.Vec3{cosPhi * cosTheta, sinPhi, cosPhi * sinTheta}
			b.vertex(n.Mul(sphereRadius), n.Normalize())
		}
		phi -= dPhi
	}
	south := b.vertex(mgl32.Vec3{0, -sphereRadius, 0}, mgl32.Vec3{0, -1, 0})

	// North cap.
	for j := uint32(0); j < lon-1; j++ {
		b.triangle(north, j+2, j+1)
	}
	b.triangle(north, 1, lon)

	// Body, one band per pair of adjacent rings.
	for i := uint32(0); i+1 < lat; i++ {
		for j := uint32(0); j < lon-1; j++ {
			p := 1 + i*lon + j
			b.triangle(p, p+lon+1, p+lon)
			b.triangle(p, p+1, p+lon+1)
		}
		p := 1 + i*lon + lon - 1
		b.triangle(p, p+1, p+lon)
		b.triangle(p, p-lon+1, p+1)
	}

	// South cap.
	last := 1 + (lat-1)*lon
	for j := uint32(0); j < lon-1; j++ {
		b.triangle(south, last+j, last+j+1)
	}
	b.triangle(south, last+lon-1, last)

	for j := uint32(0); j < lon; j++ {
		b.edge(north, j+1)
	}
	for i := uint32(0); i < lat; i++ {
		for j := uint32(0); j < lon; j++ {
			p := 1 + i*lon + j
			if j == lon-1 {
				b.edge(p, p+1-lon)
			} else {
				b.edge(p, p+1)
			}
			if i == lat-1 {
				b.edge(p, south)
			} else {
				b.edge(p, p+lon)
			}
		}
	}

	return b.finish(), nil
}
