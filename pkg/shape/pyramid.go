package shape

import (
	"github.com/chazu/facet/pkg/kernel"
	"github.com/go-gl/mathgl/mgl32"
)

var pyramidCorners = [5]mgl32.Vec3{
	{0, 0.5, 0}, // apex
	{0.5, -0.5, 0.5},
	{0.5, -0.5, -0.5},
	{-0.5, -0.5, -0.5},
	{-0.5, -0.5, 0.5},
}

var pyramidSides = [4]struct {
	corners [3]int
	normal  mgl32.Vec3
}{
	{[3]int{0, 1, 2}, mgl32.Vec3{2, 1, 0}.Normalize()},
	{[3]int{0, 2, 3}, mgl32.Vec3{0, 1, -2}.Normalize()},
	{[3]int{0, 3, 4}, mgl32.Vec3{-2, 1, 0}.Normalize()},
	{[3]int{0, 4, 1}, mgl32.Vec3{0, 1, 2}.Normalize()},
}

// Pyramid returns a square pyramid of unit height and base, apex up,
// centred on the origin: four triangular sides and a quad base, 16
// vertices in all. The base contributes no wireframe edges unless
// FullWireframe is given.
func Pyramid(opts ...Option) *kernel.Mesh {
	o := applyOptions(opts)
	b := newBuilder("pyramid", 16, 6)
	for _, s := range pyramidSides {
		corners := []mgl32.Vec3{
			pyramidCorners[s.corners[0]],
			pyramidCorners[s.corners[1]],
			pyramidCorners[s.corners[2]],
		}
		b.face(corners, s.normal, true, o.fullWireframe)
	}
	base := []mgl32.Vec3{
		pyramidCorners[4],
		pyramidCorners[3],
		pyramidCorners[2],
		pyramidCorners[1],
	}
	b.face(base, mgl32.Vec3{0, -1, 0}, o.fullWireframe, true)
	return b.finish()
}
