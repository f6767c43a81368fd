package shape

import "github.com/go-gl/mathgl/mgl32"

// NormalAccumulator sums face normals per vertex during one build.
type NormalAccumulator struct {
	sums []mgl32.Vec3
}

// NewNormalAccumulator returns an accumulator for n vertices, all zero.
func NewNormalAccumulator(n int) *NormalAccumulator {
	return &NormalAccumulator{sums: make([]mgl32.Vec3, n)}
}

// Add adds n into the running sum of vertex i.
func (a *NormalAccumulator) Add(i uint32, n mgl32.Vec3) {
	a.sums[i] = a.sums[i].Add(n)
}

// Normal returns the normalized sum for vertex i. A vertex that received
// nothing (or whose contributions cancel) yields the zero vector.
func (a *NormalAccumulator) Normal(i uint32) mgl32.Vec3 {
	s := a.sums[i]
	if s.LenSqr() == 0 {
		return mgl32.Vec3{}
	}
	return s.Normalize()
}

// Normals returns every normalized sum as a flat xyz buffer.
func (a *NormalAccumulator) Normals() []float32 {
	out := make([]float32, 0, 3*len(a.sums))
	for i := range a.sums {
		n := a.Normal(uint32(i))
		out = append(out, n[0], n[1], n[2])
	}
	return out
}
