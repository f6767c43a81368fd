package engine

import (
	"math"
	"strings"
	"testing"

	"github.com/chazu/facet/assets"
	"github.com/chazu/facet/pkg/graph"
)

// ---------------------------------------------------------------------------
// Preprocessing tests
// ---------------------------------------------------------------------------

func TestPreprocessKeywords(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{
			name:   "simple keyword",
			input:  `(draw "cube" :material "table")`,
			expect: `(draw "cube" "__kw_material" "table")`,
		},
		{
			name:   "multiple keywords",
			input:  `(place c :at v :scale 2)`,
			expect: `(place c "__kw_at" v "__kw_scale" 2)`,
		},
		{
			name:   "keyword in string preserved",
			input:  `"thing with :keyword inside"`,
			expect: `"thing with :keyword inside"`,
		},
		{
			name:   "assignment operator preserved",
			input:  `(def x := 10)`,
			expect: `(def x := 10)`,
		},
		{
			name:   "kebab-case identifier",
			input:  `(light-marker :light-type ref)`,
			expect: `(light_marker "__kw_light-type" ref)`,
		},
		{
			name:   "minus operator preserved",
			input:  `(- 10 5)`,
			expect: `(- 10 5)`,
		},
		{
			name:   "negative literal preserved",
			input:  `(vec3 -2 1.25 -2)`,
			expect: `(vec3 -2 1.25 -2)`,
		},
		{
			name:   "comment converted to // style",
			input:  `;; comment with :keyword`,
			expect: `// comment with :keyword`,
		},
		{
			name:   "single semicolon comment",
			input:  `; simple comment`,
			expect: `// simple comment`,
		},
		{
			name:   "hyphen in keyword preserved",
			input:  `:full-wireframe`,
			expect: `"__kw_full-wireframe"`,
		},
		{
			name:   "backtick string preserved",
			input:  "`a-b :c`",
			expect: "`a-b :c`",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := preprocessSource(tt.input)
			if got != tt.expect {
				t.Errorf("preprocessSource(%q) = %q, want %q", tt.input, got, tt.expect)
			}
		})
	}
}

// mustEvaluate evaluates source and fails the test on any error.
func mustEvaluate(t *testing.T, eng *Engine, source string) *graph.SceneGraph {
	t.Helper()
	g, evalErrs, err := eng.Evaluate(source)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("eval errors: %v", evalErrs)
	}
	if g == nil {
		t.Fatal("expected non-nil graph")
	}
	return g
}

// ---------------------------------------------------------------------------
// Draw
// ---------------------------------------------------------------------------

func TestSimpleDraw(t *testing.T) {
	g := mustEvaluate(t, NewEngine(), `(draw "cube" :material "table" :name "table")`)

	if g.NodeCount() != 1 {
		t.Fatalf("expected 1 node, got %d", g.NodeCount())
	}
	table := g.Lookup("table")
	if table == nil {
		t.Fatal("expected node named 'table'")
	}
	if table.Kind != graph.NodeDraw {
		t.Errorf("expected NodeDraw, got %s", table.Kind)
	}
	dd, ok := table.Data.(graph.DrawData)
	if !ok {
		t.Fatalf("expected DrawData, got %T", table.Data)
	}
	if dd.Mesh != "cube" {
		t.Errorf("expected mesh=cube, got %q", dd.Mesh)
	}
	if dd.Material != "table" {
		t.Errorf("expected material=table, got %q", dd.Material)
	}
	if len(g.Roots) != 1 || g.Roots[0] != table.ID {
		t.Errorf("expected the draw to be the only root, got %v", g.Roots)
	}
}

func TestDrawKeywordValues(t *testing.T) {
	g := mustEvaluate(t, NewEngine(), `(draw "torus" :material :table)`)
	draws := g.Draws()
	if len(draws) != 1 {
		t.Fatalf("expected 1 draw, got %d", len(draws))
	}
	if dd := draws[0].Data.(graph.DrawData); dd.Mesh != "torus" || dd.Material != "table" {
		t.Errorf("got %+v, want mesh=torus material=table", dd)
	}
}

func TestDrawUnknownMesh(t *testing.T) {
	// Without a mesh list any name is accepted.
	mustEvaluate(t, NewEngine(), `(draw "teapot")`)

	eng := NewEngine(WithMeshes("cube", "sphere"))
	_, evalErrs, err := eng.Evaluate(`(draw "teapot")`)
	if err != nil {
		t.Fatalf("expected non-fatal eval error, got fatal: %v", err)
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected an eval error for an unknown mesh")
	}
	if !strings.Contains(evalErrs[0].Message, "teapot") {
		t.Errorf("error should name the mesh, got %q", evalErrs[0].Message)
	}
	mustEvaluate(t, eng, `(draw "sphere")`)
}

// ---------------------------------------------------------------------------
// Vec3
// ---------------------------------------------------------------------------

func TestVec3Forms(t *testing.T) {
	g := mustEvaluate(t, NewEngine(), `
(place (draw "cube") :at (vec3 1 2.5 -3) :scale (vec3 4) :rotate 90)
`)
	var td graph.TransformData
	for _, n := range g.Nodes {
		if n.Kind == graph.NodeTransform {
			td = n.Data.(graph.TransformData)
		}
	}
	if td.Translation == nil || *td.Translation != (graph.Vec3{X: 1, Y: 2.5, Z: -3}) {
		t.Errorf("translation = %v, want (1, 2.5, -3)", td.Translation)
	}
	if td.Scale == nil || *td.Scale != (graph.Vec3{X: 4, Y: 4, Z: 4}) {
		t.Errorf("scale = %v, want uniform 4", td.Scale)
	}
	if td.Rotation == nil || *td.Rotation != (graph.Vec3{X: 90, Y: 90, Z: 90}) {
		t.Errorf("rotation = %v, want uniform 90", td.Rotation)
	}
}

// ---------------------------------------------------------------------------
// Variable reference test
// ---------------------------------------------------------------------------

func TestVariableReference(t *testing.T) {
	g := mustEvaluate(t, NewEngine(), `
(def s 0.15)
(def lamp (draw "sphere" :name "lamp"))
(place lamp :scale s)
`)
	lamp := g.Lookup("lamp")
	if lamp == nil {
		t.Fatal("expected node named 'lamp'")
	}
	if len(g.Roots) != 1 {
		t.Fatalf("expected 1 root, got %d", len(g.Roots))
	}
	root := g.Get(g.Roots[0])
	if root.Kind != graph.NodeTransform {
		t.Fatalf("expected the placement as root, got %s", root.Kind)
	}
	if len(root.Children) != 1 || root.Children[0] != lamp.ID {
		t.Errorf("placement should wrap 'lamp', got %v", root.Children)
	}
	td := root.Data.(graph.TransformData)
	if td.Scale == nil || td.Scale.X != 0.15 {
		t.Errorf("expected scale=0.15 (from variable), got %v", td.Scale)
	}
	if td.Translation != nil || td.Rotation != nil {
		t.Error("unset components should stay nil")
	}
}

// ---------------------------------------------------------------------------
// Assembly with placement test
// ---------------------------------------------------------------------------

func TestAssemblyWithPlacement(t *testing.T) {
	g := mustEvaluate(t, NewEngine(), `
(assembly "pair"
  (place (draw "cube" :name "left") :at (vec3 -1 0 0))
  (place (draw "cylinder" :name "right") :translate (vec3 1 0 0))
  :description "two things")
`)

	// 2 draws + 2 transforms + 1 group = 5 nodes
	if g.NodeCount() != 5 {
		t.Fatalf("expected 5 nodes, got %d", g.NodeCount())
	}

	pair := g.Lookup("pair")
	if pair == nil {
		t.Fatal("expected node named 'pair'")
	}
	if pair.Kind != graph.NodeGroup {
		t.Errorf("pair: expected NodeGroup, got %s", pair.Kind)
	}
	if len(pair.Children) != 2 {
		t.Errorf("pair: expected 2 children, got %d", len(pair.Children))
	}
	if gd := pair.Data.(graph.GroupData); gd.Description != "two things" {
		t.Errorf("description = %q", gd.Description)
	}

	if len(g.Roots) != 1 || g.Roots[0] != pair.ID {
		t.Errorf("expected 'pair' as the only root, got %v", g.Roots)
	}

	for i, want := range []float64{-1, 1} {
		td := g.Get(pair.Children[i]).Data.(graph.TransformData)
		if td.Translation == nil || td.Translation.X != want {
			t.Errorf("child %d: translation = %v, want x=%g", i, td.Translation, want)
		}
	}
}

func TestPlaceFlattensLists(t *testing.T) {
	g := mustEvaluate(t, NewEngine(), `
(place (list (draw "cube") (draw "sphere")) [(draw "torus")] :at (vec3 0 1 0))
`)
	root := g.Get(g.Roots[0])
	if len(root.Children) != 3 {
		t.Errorf("expected 3 flattened children, got %d", len(root.Children))
	}
}

func TestNodeLookup(t *testing.T) {
	g := mustEvaluate(t, NewEngine(), `
(draw "bunny" :name "bunny")
(place (node "bunny") :at (vec3 2 1.23 2))
(place (node "bunny") :at (vec3 -2 1.23 2))
`)
	bunny := g.Lookup("bunny")
	if len(g.Roots) != 2 {
		t.Fatalf("expected 2 roots, got %d", len(g.Roots))
	}
	for _, id := range g.Roots {
		if n := g.Get(id); n.Children[0] != bunny.ID {
			t.Errorf("root %s should place the shared bunny", id.Short())
		}
	}
}

// ---------------------------------------------------------------------------
// Error tests
// ---------------------------------------------------------------------------

func TestBuiltinErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{"node lookup", `(node "nonexistent")`, "nonexistent"},
		{"vec3 arity", `(vec3 1 2)`, "vec3"},
		{"vec3 type", `(vec3 1 "y" 3)`, "vec3"},
		{"draw without mesh", `(draw :material "cube")`, "draw"},
		{"place without child", `(place :scale 2)`, "place"},
		{"place bad child", `(place 3)`, "place"},
		{"place bad vector", `(place (draw "cube") :at "here")`, "place"},
		{"assembly without name", `(assembly)`, "assembly"},
		{"assembly bad description", `(assembly "a" :description 3)`, "description"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, evalErrs, err := NewEngine().Evaluate(tt.source)
			if err != nil {
				t.Fatalf("expected non-fatal eval error, got fatal: %v", err)
			}
			if len(evalErrs) == 0 {
				t.Fatalf("expected an eval error for %s", tt.source)
			}
			if !strings.Contains(evalErrs[0].Message, tt.want) {
				t.Errorf("error %q should mention %q", evalErrs[0].Message, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Default scene
// ---------------------------------------------------------------------------

func TestDefaultScene(t *testing.T) {
	eng := NewEngine(WithMeshes("cube", "sphere", "cylinder", "torus", "pyramid", "bunny"))
	g, evalErrs, warnings, err := eng.EvaluateChecked(assets.Scene)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("eval errors: %v", evalErrs)
	}
	if len(warnings) > 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}

	// 5 draws + 5 placements + "objects", then 5 tiers + "scene".
	if g.NodeCount() != 17 {
		t.Fatalf("expected 17 nodes, got %d", g.NodeCount())
	}
	scene := g.Lookup("scene")
	if scene == nil {
		t.Fatal("expected node named 'scene'")
	}
	if len(g.Roots) != 1 || g.Roots[0] != scene.ID {
		t.Fatalf("expected 'scene' as the only root, got %v", g.Roots)
	}
	if len(scene.Children) != 5 {
		t.Fatalf("expected 5 tiers, got %d", len(scene.Children))
	}

	objects := g.Lookup("objects")
	scale := 1.0
	for i, id := range scene.Children {
		tier := g.Get(id)
		if tier.Children[0] != objects.ID {
			t.Errorf("tier %d should place 'objects'", i)
		}
		td := tier.Data.(graph.TransformData)
		if math.Abs(td.Scale.X-scale) > 1e-12 {
			t.Errorf("tier %d: scale = %g, want %g", i, td.Scale.X, scale)
		}
		scale *= 0.15
	}

	second := g.Get(scene.Children[1]).Data.(graph.TransformData)
	if math.Abs(second.Translation.X+2) > 1e-9 || math.Abs(second.Translation.Y-2.275) > 1e-9 {
		t.Errorf("tier 1 translation = %v, want (-2, 2.275, -2)", second.Translation)
	}
}

func TestEvaluateCheckedWarnings(t *testing.T) {
	g, evalErrs, warnings, err := NewEngine().EvaluateChecked(`
(draw "cube" :name "dup")
(draw "sphere" :name "dup")
`)
	if err != nil || len(evalErrs) > 0 {
		t.Fatalf("unexpected errors: %v %v", err, evalErrs)
	}
	if g == nil {
		t.Fatal("warnings should not discard the graph")
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0].Message, "dup") {
		t.Errorf("expected one duplicate-name warning, got %v", warnings)
	}
}
