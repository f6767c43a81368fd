package shape_test

import (
	"errors"
	"testing"

	"github.com/chazu/facet/pkg/kernel"
	"github.com/chazu/facet/pkg/shape"
	"github.com/go-gl/mathgl/mgl32"
)

// tetrahedron returns an off-centre tetrahedron, 4 units tall, with
// outward-wound faces.
func tetrahedron() *kernel.RawMesh {
	return &kernel.RawMesh{
		Points: []float32{
			10, 2, 10,
			14, 2, 10,
			10, 2, 14,
			10, 6, 10,
		},
		Faces: []uint32{
			0, 1, 2,
			0, 3, 1,
			0, 2, 3,
			1, 3, 2,
		},
	}
}

func TestNormalizeCentresAndScales(t *testing.T) {
	m, err := shape.Normalize(tetrahedron())
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	checkMesh(t, m)

	min, max := m.BoundingBox()
	for k := 0; k < 3; k++ {
		mid := (min[k] + max[k]) / 2
		if !mgl32.FloatEqualThreshold(mid, 0, 1e-6) {
			t.Errorf("axis %d midpoint = %v, want 0", k, mid)
		}
	}
	if got := max[1] - min[1]; !mgl32.FloatEqualThreshold(got, 1, 1e-6) {
		t.Errorf("Y extent = %v, want 1", got)
	}
	// All axes share the Y divisor.
	if got := max[0] - min[0]; !mgl32.FloatEqualThreshold(got, 1, 1e-6) {
		t.Errorf("X extent = %v, want 1", got)
	}
}

func TestNormalizeNormals(t *testing.T) {
	m, err := shape.Normalize(tetrahedron())
	if err != nil {
		t.Fatal(err)
	}
	checkUnitNormals(t, m)
	checkOutward(t, m)

	// Vertex 0 touches three axis-aligned faces of equal area.
	want := mgl32.Vec3{-1, -1, -1}.Normalize()
	if got := vec(m.Normal(0)); !got.ApproxEqualThreshold(want, 1e-5) {
		t.Errorf("Normal(0) = %v, want %v", got, want)
	}
}

func TestNormalizeAreaWeighting(t *testing.T) {
	// Two faces share vertex 0: a large one facing +Z and a small one
	// facing +X. The normal leans towards the larger face.
	raw := &kernel.RawMesh{
		Points: []float32{
			0, 0, 0,
			4, 0, 0,
			0, 4, 0,
			0, 1, -1,
		},
		Faces: []uint32{
			0, 1, 2,
			0, 3, 2,
		},
	}
	m, err := shape.Normalize(raw)
	if err != nil {
		t.Fatal(err)
	}
	n := vec(m.Normal(0))
	if n[2] <= n[0] {
		t.Errorf("Normal(0) = %v; larger +Z face should dominate", n)
	}
}

func TestNormalizeEdges(t *testing.T) {
	m, err := shape.Normalize(tetrahedron())
	if err != nil {
		t.Fatal(err)
	}
	// A tetrahedron has six edges even though each is shared by two faces.
	if got := m.EdgeCount(); got != 6 {
		t.Errorf("EdgeCount() = %d, want 6", got)
	}
	raw := tetrahedron()
	for i := range raw.Faces {
		if m.Indices[i] != raw.Faces[i] {
			t.Fatalf("Indices = %v, want pass-through %v", m.Indices, raw.Faces)
		}
	}
}

func TestNormalizeOrphanVertex(t *testing.T) {
	raw := tetrahedron()
	raw.Points = append(raw.Points, 12, 4, 12)
	m, err := shape.Normalize(raw)
	if err != nil {
		t.Fatal(err)
	}
	if got := m.Normal(4); got != [3]float32{0, 0, 0} {
		t.Errorf("orphan normal = %v, want zero vector", got)
	}
}

func TestNormalizeLeavesInputUntouched(t *testing.T) {
	raw := tetrahedron()
	if _, err := shape.Normalize(raw); err != nil {
		t.Fatal(err)
	}
	want := tetrahedron()
	for i := range want.Points {
		if raw.Points[i] != want.Points[i] {
			t.Fatalf("input points modified: %v", raw.Points)
		}
	}
}

func TestNormalizeRejects(t *testing.T) {
	tests := []struct {
		name string
		raw  *kernel.RawMesh
	}{
		{"nil", nil},
		{"empty", &kernel.RawMesh{}},
		{"ragged points", &kernel.RawMesh{Points: []float32{0, 1}}},
		{"ragged faces", &kernel.RawMesh{Points: []float32{0, 0, 0, 0, 1, 0}, Faces: []uint32{0, 1}}},
		{"face out of range", &kernel.RawMesh{Points: []float32{0, 0, 0, 0, 1, 0}, Faces: []uint32{0, 1, 2}}},
		{"flat in Y", &kernel.RawMesh{
			Points: []float32{0, 0, 0, 1, 0, 0, 0, 0, 1},
			Faces:  []uint32{0, 1, 2},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := shape.Normalize(tt.raw)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, shape.ErrInvalidParam) {
				t.Errorf("error %v does not wrap ErrInvalidParam", err)
			}
		})
	}
}
