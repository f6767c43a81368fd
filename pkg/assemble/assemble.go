// Package assemble walks a scene graph with a transform stack and produces
// the ordered list of draw calls for one frame.
package assemble

import (
	"fmt"

	"github.com/chazu/facet/pkg/config"
	"github.com/chazu/facet/pkg/graph"
	"github.com/chazu/facet/pkg/transform"
	"github.com/go-gl/mathgl/mgl32"
)

// MarkerMesh is the model drawn at each positioned light.
const MarkerMesh = "sphere"

// MarkerScale is the uniform scale of a light marker.
const MarkerScale = 0.5

// DrawCall is one mesh drawn with one material under one model-view matrix.
type DrawCall struct {
	Mesh      string
	Material  config.Material
	ModelView mgl32.Mat4
	// Normals is the inverse transpose of the model-view's upper 3x3,
	// widened to 4x4.
	Normals mgl32.Mat4
	// Marker calls draw light spheres and are always filled.
	Marker bool
	// Node is the draw node this call came from; zero for markers.
	Node graph.NodeID
}

// NormalMatrix returns the matrix that carries normals under mv.
func NormalMatrix(mv mgl32.Mat4) mgl32.Mat4 {
	return mv.Mat3().Inv().Transpose().Mat4()
}

// Assemble emits the light markers, then walks every root of g in order.
// Matrices start from view. Materials resolve through cfg. The graph is
// read-only here.
func Assemble(g *graph.SceneGraph, view mgl32.Mat4, cfg *config.Config) ([]DrawCall, error) {
	st := transform.NewStack()
	st.LoadMatrix(view)

	calls, err := LightMarkers(st, cfg.Lights)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return calls, nil
	}

	w := &walker{g: g, cfg: cfg, st: st, visiting: make(map[graph.NodeID]bool)}
	for _, rootID := range g.Roots {
		root := g.Get(rootID)
		if root == nil {
			return nil, fmt.Errorf("assemble: root %s does not exist", rootID.Short())
		}
		if err := w.walk(root); err != nil {
			return nil, fmt.Errorf("assemble: root %s: %w", rootID.Short(), err)
		}
	}
	calls = append(calls, w.calls...)

	if d := st.Depth(); d != 1 {
		return nil, fmt.Errorf("assemble: transform stack left at depth %d", d)
	}
	return calls, nil
}

// LightMarkers emits a small sphere at every point and spot light, lit or
// not. Directional lights have no position and get no marker.
func LightMarkers(st *transform.Stack, lights []config.Light) ([]DrawCall, error) {
	var calls []DrawCall
	for _, l := range lights {
		pos, ok := config.Positioned(l)
		if !ok {
			continue
		}
		mat := config.MarkerOff
		if l.Color().On {
			mat = config.MarkerOn
		}

		st.Push()
		st.MultTranslation(pos)
		st.MultScale(mgl32.Vec3{MarkerScale, MarkerScale, MarkerScale})
		mv := st.Current()
		if err := st.Pop(); err != nil {
			return nil, fmt.Errorf("assemble: light marker: %w", err)
		}

		calls = append(calls, DrawCall{
			Mesh:      MarkerMesh,
			Material:  mat,
			ModelView: mv,
			Normals:   NormalMatrix(mv),
			Marker:    true,
		})
	}
	return calls, nil
}

type walker struct {
	g        *graph.SceneGraph
	cfg      *config.Config
	st       *transform.Stack
	visiting map[graph.NodeID]bool
	calls    []DrawCall
}

// walk recursively traverses a node and its children, collecting draw calls.
func (w *walker) walk(n *graph.Node) error {
	if w.visiting[n.ID] {
		return fmt.Errorf("cycle through node %s", n.ID.Short())
	}
	w.visiting[n.ID] = true
	defer delete(w.visiting, n.ID)

	switch n.Kind {
	case graph.NodeDraw:
		return w.draw(n)
	case graph.NodeTransform:
		return w.transform(n)
	case graph.NodeGroup:
		return w.children(n)
	default:
		return fmt.Errorf("unknown node kind: %v", n.Kind)
	}
}

func (w *walker) draw(n *graph.Node) error {
	dd, ok := n.Data.(graph.DrawData)
	if !ok {
		return fmt.Errorf("draw node %s has unexpected data type %T", n.ID.Short(), n.Data)
	}
	mv := w.st.Current()
	w.calls = append(w.calls, DrawCall{
		Mesh:      dd.Mesh,
		Material:  w.cfg.Material(dd.Material, dd.Mesh),
		ModelView: mv,
		Normals:   NormalMatrix(mv),
		Node:      n.ID,
	})
	return nil
}

// transform pushes the placement, recurses into children, then pops.
func (w *walker) transform(n *graph.Node) error {
	td, ok := n.Data.(graph.TransformData)
	if !ok {
		return fmt.Errorf("transform node %s has unexpected data type %T", n.ID.Short(), n.Data)
	}

	w.st.Push()
	if t := td.Translation; t != nil {
		w.st.MultTranslation(vec(*t))
	}
	if r := td.Rotation; r != nil {
		w.st.MultRotation(float32(r.Z), mgl32.Vec3{0, 0, 1})
		w.st.MultRotation(float32(r.Y), mgl32.Vec3{0, 1, 0})
		w.st.MultRotation(float32(r.X), mgl32.Vec3{1, 0, 0})
	}
	if s := td.Scale; s != nil {
		w.st.MultScale(vec(*s))
	}

	err := w.children(n)
	if perr := w.st.Pop(); perr != nil && err == nil {
		err = perr
	}
	return err
}

func (w *walker) children(n *graph.Node) error {
	for _, child := range w.g.Children(n) {
		if err := w.walk(child); err != nil {
			return err
		}
	}
	return nil
}

func vec(v graph.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{float32(v.X), float32(v.Y), float32(v.Z)}
}
