// Package gltfexport is a render backend that records a frame as a glTF
// document instead of drawing it. Every draw becomes a node whose matrix is
// the model transform; each (mesh, primitive, material) triple becomes one
// glTF mesh.
package gltfexport

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/chazu/facet/pkg/kernel"
	"github.com/chazu/facet/pkg/render"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

var (
	_ render.Backend     = (*Exporter)(nil)
	_ render.UniformSink = (*Exporter)(nil)
)

type uploaded struct {
	mesh     *kernel.Mesh
	position int
	normal   int
}

type meshKey struct {
	name     string
	mode     render.Primitive
	count    int
	material int
}

// Exporter builds a glTF document from uploads and draws.
type Exporter struct {
	doc       *gltf.Document
	meshes    map[string]*uploaded
	built     map[meshKey]int
	materials map[render.MaterialUniforms]int

	// invView turns eye-space model-view matrices back into model matrices.
	invView mgl32.Mat4
	pending *render.DrawUniforms
	draws   int
}

// New returns an empty exporter.
func New() *Exporter {
	return &Exporter{
		doc:       gltf.NewDocument(),
		meshes:    make(map[string]*uploaded),
		built:     make(map[meshKey]int),
		materials: make(map[render.MaterialUniforms]int),
		invView:   mgl32.Ident4(),
	}
}

// Document returns the document built so far.
func (e *Exporter) Document() *gltf.Document {
	return e.doc
}

// Upload writes the mesh's vertex attributes once.
func (e *Exporter) Upload(name string, mesh *kernel.Mesh) error {
	if _, ok := e.meshes[name]; ok {
		return fmt.Errorf("gltfexport: %q uploaded twice", name)
	}
	if mesh == nil || mesh.IsEmpty() {
		return fmt.Errorf("gltfexport: %q is empty", name)
	}
	e.meshes[name] = &uploaded{
		mesh:     mesh,
		position: modeler.WritePosition(e.doc, triples(mesh.Vertices)),
		normal:   modeler.WriteNormal(e.doc, triples(mesh.Normals)),
	}
	return nil
}

// BeginFrame records the frame's view so draws can be placed in world
// space, and stores the lights and shading flags as scene extras.
func (e *Exporter) BeginFrame(f *render.Frame) error {
	e.invView = f.View.Inv()
	scene := e.doc.Scenes[0]
	scene.Extras = map[string]any{
		"program": f.Program,
		"blinn":   f.Blinn,
		"lights":  f.Lights,
	}
	return nil
}

// SetDraw holds the uniforms for the next draw.
func (e *Exporter) SetDraw(d render.DrawUniforms) error {
	e.pending = &d
	return nil
}

// DrawElements adds a node drawing the first count indices of the named
// mesh.
func (e *Exporter) DrawElements(name string, mode render.Primitive, count int) error {
	up, ok := e.meshes[name]
	if !ok {
		return fmt.Errorf("gltfexport: draw of %q before upload", name)
	}
	src := up.mesh.Indices
	gmode := gltf.PrimitiveTriangles
	if mode == render.Lines {
		src = up.mesh.Edges
		gmode = gltf.PrimitiveLines
	}
	if count <= 0 || count > len(src) {
		return fmt.Errorf("gltfexport: %s count %d out of range for %q", mode, count, name)
	}

	model := mgl32.Ident4()
	material := -1
	if e.pending != nil {
		model = e.invView.Mul4(e.pending.ModelView)
		material = e.material(e.pending.Material)
		e.pending = nil
	}

	key := meshKey{name: name, mode: mode, count: count, material: material}
	meshIdx, ok := e.built[key]
	if !ok {
		prim := &gltf.Primitive{
			Indices:    gltf.Index(modeler.WriteIndices(e.doc, src[:count])),
			Attributes: map[string]int{gltf.POSITION: up.position, gltf.NORMAL: up.normal},
			Mode:       gmode,
		}
		if material >= 0 {
			prim.Material = gltf.Index(material)
		}
		e.doc.Meshes = append(e.doc.Meshes, &gltf.Mesh{Name: name, Primitives: []*gltf.Primitive{prim}})
		meshIdx = len(e.doc.Meshes) - 1
		e.built[key] = meshIdx
	}

	node := &gltf.Node{
		Name: fmt.Sprintf("%s.%d", name, e.draws),
		Mesh: gltf.Index(meshIdx),
	}
	if model != mgl32.Ident4() {
		var m [16]float64
		for i, v := range model {
			m[i] = float64(v)
		}
		node.Matrix = m
	}
	e.doc.Nodes = append(e.doc.Nodes, node)
	scene := e.doc.Scenes[0]
	scene.Nodes = append(scene.Nodes, len(e.doc.Nodes)-1)
	e.draws++
	return nil
}

// material returns the index of a glTF material matching m, adding it on
// first use. Diffuse becomes the base colour and shininess maps to
// roughness.
func (e *Exporter) material(m render.MaterialUniforms) int {
	if idx, ok := e.materials[m]; ok {
		return idx
	}
	roughness := math.Sqrt(2 / (float64(m.Shininess) + 2))
	e.doc.Materials = append(e.doc.Materials, &gltf.Material{
		Name: fmt.Sprintf("material.%d", len(e.doc.Materials)),
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorFactor: &[4]float64{float64(m.Kd[0]), float64(m.Kd[1]), float64(m.Kd[2]), 1},
			MetallicFactor:  gltf.Float(0),
			RoughnessFactor: gltf.Float(roughness),
		},
	})
	idx := len(e.doc.Materials) - 1
	e.materials[m] = idx
	return idx
}

// Save writes the document, as binary glTF when path ends in .glb.
func (e *Exporter) Save(path string) error {
	var err error
	if strings.EqualFold(filepath.Ext(path), ".glb") {
		err = gltf.SaveBinary(e.doc, path)
	} else {
		err = gltf.Save(e.doc, path)
	}
	if err != nil {
		return fmt.Errorf("gltfexport: %w", err)
	}
	return nil
}

// Draws returns the number of nodes written.
func (e *Exporter) Draws() int {
	return e.draws
}

func triples(flat []float32) [][3]float32 {
	out := make([][3]float32, len(flat)/3)
	for i := range out {
		out[i] = [3]float32{flat[3*i], flat[3*i+1], flat[3*i+2]}
	}
	return out
}

// Library is a render.Library that can upload its models.
type Library interface {
	render.Library
	Init(b render.Backend) error
}

// ExportMesh writes a single mesh, drawn once with its triangles.
func ExportMesh(path, name string, mesh *kernel.Mesh) error {
	e := New()
	if err := e.Upload(name, mesh); err != nil {
		return err
	}
	if err := e.DrawElements(name, render.Triangles, len(mesh.Indices)); err != nil {
		return err
	}
	return e.Save(path)
}

// ExportFrame replays f into a new document and writes it.
func ExportFrame(path string, f *render.Frame, lib Library) (*Exporter, error) {
	e := New()
	if err := lib.Init(e); err != nil {
		return nil, err
	}
	if err := render.Replay(f, lib, e); err != nil {
		return nil, err
	}
	if err := e.Save(path); err != nil {
		return nil, err
	}
	return e, nil
}
