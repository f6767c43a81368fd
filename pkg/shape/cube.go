package shape

import (
	"github.com/chazu/facet/pkg/kernel"
	"github.com/go-gl/mathgl/mgl32"
)

var cubeCorners = [8]mgl32.Vec3{
	{-0.5, -0.5, 0.5},
	{0.5, -0.5, 0.5},
	{0.5, 0.5, 0.5},
	{-0.5, 0.5, 0.5},
	{-0.5, -0.5, -0.5},
	{0.5, -0.5, -0.5},
	{0.5, 0.5, -0.5},
	{-0.5, 0.5, -0.5},
}

var cubeFaces = [6]struct {
	corners [4]int
	normal  mgl32.Vec3
}{
	{[4]int{0, 1, 2, 3}, mgl32.Vec3{0, 0, 1}},
	{[4]int{1, 5, 6, 2}, mgl32.Vec3{1, 0, 0}},
	{[4]int{4, 7, 6, 5}, mgl32.Vec3{0, 0, -1}},
	{[4]int{0, 3, 7, 4}, mgl32.Vec3{-1, 0, 0}},
	{[4]int{3, 2, 6, 7}, mgl32.Vec3{0, 1, 0}},
	{[4]int{0, 4, 5, 1}, mgl32.Vec3{0, -1, 0}},
}

// Cube returns a unit cube centred on the origin. Each face owns its four
// corners so it can carry a flat normal: 24 vertices, 12 triangles and,
// by default, two wireframe edges per face.
func Cube(opts ...Option) *kernel.Mesh {
	o := applyOptions(opts)
	b := newBuilder("cube", 24, 12)
	for _, f := range cubeFaces {
		corners := []mgl32.Vec3{
			cubeCorners[f.corners[0]],
			cubeCorners[f.corners[1]],
			cubeCorners[f.corners[2]],
			cubeCorners[f.corners[3]],
		}
		b.face(corners, f.normal, true, o.fullWireframe)
	}
	return b.finish()
}
