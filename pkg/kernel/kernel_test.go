package kernel

import (
	"errors"
	"testing"
)

// --- Mesh helper method tests ---

func TestMeshCounts(t *testing.T) {
	tests := []struct {
		name      string
		mesh      Mesh
		vertices  int
		triangles int
		edges     int
	}{
		{"empty", Mesh{}, 0, 0, 0},
		{"one vertex", Mesh{Vertices: []float32{1, 2, 3}}, 1, 0, 0},
		{
			"quad",
			Mesh{
				Vertices: []float32{0, 0, 0, 1, 0, 0, 1, 1, 0, 0, 1, 0},
				Indices:  []uint32{0, 1, 2, 0, 2, 3},
				Edges:    []uint32{0, 1, 1, 2},
			},
			4, 2, 2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.mesh.VertexCount(); got != tt.vertices {
				t.Errorf("VertexCount() = %d, want %d", got, tt.vertices)
			}
			if got := tt.mesh.TriangleCount(); got != tt.triangles {
				t.Errorf("TriangleCount() = %d, want %d", got, tt.triangles)
			}
			if got := tt.mesh.EdgeCount(); got != tt.edges {
				t.Errorf("EdgeCount() = %d, want %d", got, tt.edges)
			}
		})
	}
}

func TestMeshIsEmpty(t *testing.T) {
	t.Run("empty mesh", func(t *testing.T) {
		m := &Mesh{}
		if !m.IsEmpty() {
			t.Error("IsEmpty() = false for empty mesh, want true")
		}
	})
	t.Run("non-empty mesh", func(t *testing.T) {
		m := &Mesh{Vertices: []float32{1, 2, 3}}
		if m.IsEmpty() {
			t.Error("IsEmpty() = true for non-empty mesh, want false")
		}
	})
}

func triangleMesh() Mesh {
	return Mesh{
		Vertices: []float32{0, 0, 0, 1, 0, 0, 0, 1, 0},
		Normals:  []float32{0, 0, 1, 0, 0, 1, 0, 0, 1},
		Indices:  []uint32{0, 1, 2},
		Edges:    []uint32{0, 1, 1, 2, 2, 0},
	}
}

func TestMeshValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(m *Mesh)
		ok     bool
	}{
		{"valid", func(m *Mesh) {}, true},
		{"ragged vertices", func(m *Mesh) { m.Vertices = m.Vertices[:8] }, false},
		{"missing normals", func(m *Mesh) { m.Normals = m.Normals[:6] }, false},
		{"ragged indices", func(m *Mesh) { m.Indices = append(m.Indices, 0) }, false},
		{"ragged edges", func(m *Mesh) { m.Edges = append(m.Edges, 0) }, false},
		{"triangle out of range", func(m *Mesh) { m.Indices[2] = 3 }, false},
		{"edge out of range", func(m *Mesh) { m.Edges[5] = 7 }, false},
		{"reversed duplicate edge", func(m *Mesh) { m.Edges = append(m.Edges, 1, 0) }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := triangleMesh()
			tt.mutate(&m)
			err := m.Validate()
			if tt.ok && err != nil {
				t.Fatalf("Validate() error = %v, want nil", err)
			}
			if !tt.ok {
				if err == nil {
					t.Fatal("Validate() = nil, want error")
				}
				if !errors.Is(err, ErrInvalidMesh) {
					t.Errorf("Validate() error %v does not wrap ErrInvalidMesh", err)
				}
			}
		})
	}
}

func TestMeshBoundingBox(t *testing.T) {
	m := &Mesh{Vertices: []float32{-1, 2, 0, 3, -4, 5, 0, 0, -6}}
	min, max := m.BoundingBox()
	if min != [3]float32{-1, -4, -6} {
		t.Errorf("min = %v, want [-1 -4 -6]", min)
	}
	if max != [3]float32{3, 2, 5} {
		t.Errorf("max = %v, want [3 2 5]", max)
	}
}

func TestWeld(t *testing.T) {
	// Two triangles of a unit quad given as a soup: 6 corners, 4 distinct.
	soup := []float32{
		0, 0, 0, 1, 0, 0, 1, 1, 0,
		0, 0, 0, 1, 1, 0, 0, 1, 0,
		// degenerate: collapses onto two points
		0, 0, 0, 0, 0, 0, 1, 0, 0,
	}
	raw := Weld(soup, 0)
	if raw.PointCount() != 4 {
		t.Errorf("PointCount() = %d, want 4", raw.PointCount())
	}
	if raw.FaceCount() != 2 {
		t.Errorf("FaceCount() = %d, want 2", raw.FaceCount())
	}
	want := []uint32{0, 1, 2, 0, 2, 3}
	for i, idx := range want {
		if raw.Faces[i] != idx {
			t.Fatalf("Faces = %v, want %v", raw.Faces, want)
		}
	}
	if err := raw.Check(); err != nil {
		t.Errorf("Check() error = %v", err)
	}
}

func TestWeldTolerance(t *testing.T) {
	soup := []float32{
		0, 0, 0, 1, 0, 0, 0, 1, 0,
		1.00001, 0, 0, 0, 1.00001, 0, 1, 1, 0,
	}
	if got := Weld(soup, 0).PointCount(); got != 6 {
		t.Errorf("exact weld PointCount() = %d, want 6", got)
	}
	if got := Weld(soup, 1e-3).PointCount(); got != 4 {
		t.Errorf("tolerant weld PointCount() = %d, want 4", got)
	}
}

func TestWeldGridCells(t *testing.T) {
	// 0.49 and 0.51 are 0.02 apart but round to different cells of a 1.0
	// grid; 0.51 and 1.4 are 0.89 apart and share cell 1.
	soup := []float32{
		0.49, 0, 0, 0.51, 0, 0, 0, 5, 0,
		1.4, 0, 0, 0, 5, 0, 3, 0, 0,
	}
	raw := Weld(soup, 1)
	if raw.PointCount() != 4 {
		t.Fatalf("PointCount() = %d, want 4", raw.PointCount())
	}
	if raw.Faces[3] != 1 {
		t.Errorf("1.4 should reuse the point at 0.51, got face %v", raw.Faces[3:])
	}
	if raw.Points[3] != 0.51 {
		t.Errorf("a shared point keeps the first corner seen, got x=%g", raw.Points[3])
	}
}

func TestRawMeshCheck(t *testing.T) {
	bad := &RawMesh{Points: []float32{0, 0, 0}, Faces: []uint32{0, 0, 1}}
	if err := bad.Check(); err == nil {
		t.Error("Check() = nil for out-of-range face, want error")
	}
	ragged := &RawMesh{Points: []float32{0, 0}}
	if err := ragged.Check(); err == nil {
		t.Error("Check() = nil for ragged points, want error")
	}
}

// --- Compile-time interface check with a stub kernel ---

// stubSolid is a minimal Solid implementation for testing.
type stubSolid struct {
	minBB, maxBB [3]float64
}

func (s *stubSolid) BoundingBox() (min, max [3]float64) {
	return s.minBB, s.maxBB
}

// stubKernel is a minimal Kernel implementation that proves the interface
// is satisfiable. All methods return trivial results.
type stubKernel struct{}

func (k *stubKernel) Box(x, y, z float64) Solid {
	return &stubSolid{
		minBB: [3]float64{0, 0, 0},
		maxBB: [3]float64{x, y, z},
	}
}

func (k *stubKernel) Sphere(radius float64) Solid {
	return &stubSolid{
		minBB: [3]float64{-radius, -radius, -radius},
		maxBB: [3]float64{radius, radius, radius},
	}
}

func (k *stubKernel) Cylinder(height, radius float64, _ int) Solid {
	return &stubSolid{
		minBB: [3]float64{-radius, -radius, 0},
		maxBB: [3]float64{radius, radius, height},
	}
}

func (k *stubKernel) Capsule(height, radius float64) Solid {
	return &stubSolid{
		minBB: [3]float64{-radius, -radius, -height / 2},
		maxBB: [3]float64{radius, radius, height / 2},
	}
}

func (k *stubKernel) Union(a, _ Solid) Solid                 { return a }
func (k *stubKernel) SmoothUnion(a, _ Solid, _ float64) Solid { return a }
func (k *stubKernel) Difference(a, _ Solid) Solid            { return a }
func (k *stubKernel) Intersection(a, _ Solid) Solid          { return a }

func (k *stubKernel) Translate(s Solid, _, _, _ float64) Solid { return s }
func (k *stubKernel) Rotate(s Solid, _, _, _ float64) Solid    { return s }

func (k *stubKernel) ToRaw(_ Solid) (*RawMesh, error) {
	return &RawMesh{}, nil
}

// Compile-time checks that the stubs implement the interfaces.
var _ Solid = (*stubSolid)(nil)
var _ Kernel = (*stubKernel)(nil)

func TestStubKernelSphereBoundingBox(t *testing.T) {
	var k Kernel = &stubKernel{}
	s := k.Sphere(2)
	min, max := s.BoundingBox()
	if min != [3]float64{-2, -2, -2} {
		t.Errorf("Sphere min = %v, want [-2 -2 -2]", min)
	}
	if max != [3]float64{2, 2, 2} {
		t.Errorf("Sphere max = %v, want [2 2 2]", max)
	}
}

func TestStubKernelToRaw(t *testing.T) {
	var k Kernel = &stubKernel{}
	raw, err := k.ToRaw(k.Box(1, 1, 1))
	if err != nil {
		t.Fatalf("ToRaw() error = %v", err)
	}
	if raw == nil {
		t.Fatal("ToRaw() returned nil mesh")
	}
	if raw.PointCount() != 0 {
		t.Error("stub ToRaw() should return empty mesh")
	}
}
