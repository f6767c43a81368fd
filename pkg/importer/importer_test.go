package importer

import (
	"strings"
	"testing"

	"github.com/chazu/facet/pkg/kernel"
	"github.com/chazu/facet/pkg/shape"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

const quadOBJ = `# unit quad
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vn 0 0 1
f 1//1 2//1 3//1 4//1
`

func TestLoadOBJFanTriangulates(t *testing.T) {
	raw, err := LoadOBJFromReader(strings.NewReader(quadOBJ))
	if err != nil {
		t.Fatalf("LoadOBJFromReader() error = %v", err)
	}
	if raw.PointCount() != 4 {
		t.Errorf("PointCount() = %d, want 4", raw.PointCount())
	}
	want := []uint32{0, 1, 2, 0, 2, 3}
	if len(raw.Faces) != len(want) {
		t.Fatalf("Faces = %v, want %v", raw.Faces, want)
	}
	for i := range want {
		if raw.Faces[i] != want[i] {
			t.Fatalf("Faces = %v, want %v", raw.Faces, want)
		}
	}
}

func TestLoadOBJNegativeIndices(t *testing.T) {
	src := "v 0 0 0\nv 1 0 0\nv 0 1 0\nf -3/1 -2/2 -1/3\n"
	raw, err := LoadOBJFromBytes([]byte(src))
	if err != nil {
		t.Fatalf("LoadOBJFromBytes() error = %v", err)
	}
	if got := raw.Faces; len(got) != 3 || got[0] != 0 || got[1] != 1 || got[2] != 2 {
		t.Errorf("Faces = %v, want [0 1 2]", got)
	}
}

func TestLoadOBJErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"short vertex", "v 1 2\n"},
		{"bad float", "v 1 2 x\n"},
		{"face out of range", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 4\n"},
		{"zero index", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 0 1 2\n"},
		{"two-vertex face", "v 0 0 0\nv 1 0 0\nf 1 2\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadOBJFromReader(strings.NewReader(tt.src)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadUnsupportedExtension(t *testing.T) {
	if _, err := Load("bunny.ply"); err == nil {
		t.Error("Load(.ply) = nil error, want unsupported format")
	}
}

func sphereRaw(t *testing.T) *kernel.RawMesh {
	t.Helper()
	m, err := shape.Sphere(12, 16)
	if err != nil {
		t.Fatal(err)
	}
	return &kernel.RawMesh{Points: m.Vertices, Faces: m.Indices}
}

func TestDecimate(t *testing.T) {
	raw := sphereRaw(t)
	out, err := Decimate(raw, 0.5)
	if err != nil {
		t.Fatalf("Decimate() error = %v", err)
	}
	if err := out.Check(); err != nil {
		t.Fatalf("decimated mesh invalid: %v", err)
	}
	if out.FaceCount() == 0 || out.FaceCount() >= raw.FaceCount() {
		t.Errorf("FaceCount() = %d, want fewer than %d", out.FaceCount(), raw.FaceCount())
	}
}

func TestDecimateFactorOneCopies(t *testing.T) {
	raw := sphereRaw(t)
	out, err := Decimate(raw, 1)
	if err != nil {
		t.Fatal(err)
	}
	if out.FaceCount() != raw.FaceCount() {
		t.Errorf("FaceCount() = %d, want %d", out.FaceCount(), raw.FaceCount())
	}
	out.Points[0] = 99
	if raw.Points[0] == 99 {
		t.Error("Decimate(1) aliased the input")
	}
}

func TestDecimateRejectsFactor(t *testing.T) {
	for _, f := range []float64{0, -1, 1.5} {
		if _, err := Decimate(sphereRaw(t), f); err == nil {
			t.Errorf("Decimate(%g) = nil error", f)
		}
	}
}

func TestFromDocument(t *testing.T) {
	doc := gltf.NewDocument()
	positions := [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	pos := modeler.WritePosition(doc, positions)
	idx := modeler.WriteIndices(doc, []uint32{0, 1, 2, 0, 2, 3})
	doc.Meshes = []*gltf.Mesh{{
		Name: "tri",
		Primitives: []*gltf.Primitive{{
			Indices:    gltf.Index(idx),
			Attributes: map[string]int{gltf.POSITION: pos},
			Mode:       gltf.PrimitiveTriangles,
		}},
	}}

	raw, err := fromDocument(doc)
	if err != nil {
		t.Fatalf("fromDocument() error = %v", err)
	}
	if raw.PointCount() != 4 || raw.FaceCount() != 2 {
		t.Errorf("got %d points %d faces, want 4 and 2", raw.PointCount(), raw.FaceCount())
	}
}

func TestFromDocumentWithoutTriangles(t *testing.T) {
	if _, err := fromDocument(gltf.NewDocument()); err == nil {
		t.Error("expected error for document without meshes")
	}
}
