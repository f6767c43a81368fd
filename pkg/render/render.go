// Package render turns a configuration and a scene graph into a frame: the
// uniforms a shader program needs plus the assembled draw calls. A Backend
// receives the meshes and draw commands; the package never touches a GPU.
package render

import (
	"fmt"

	"github.com/chazu/facet/pkg/assemble"
	"github.com/chazu/facet/pkg/config"
	"github.com/chazu/facet/pkg/graph"
	"github.com/chazu/facet/pkg/kernel"
	"github.com/go-gl/mathgl/mgl32"
)

// Primitive selects which index buffer a draw uses.
type Primitive int

const (
	Triangles Primitive = iota // Mesh.Indices
	Lines                      // Mesh.Edges
)

func (p Primitive) String() string {
	switch p {
	case Triangles:
		return "triangles"
	case Lines:
		return "lines"
	default:
		return fmt.Sprintf("Primitive(%d)", int(p))
	}
}

// Backend receives meshes once and then draw commands by mesh name.
type Backend interface {
	Upload(name string, mesh *kernel.Mesh) error
	DrawElements(name string, mode Primitive, count int) error
}

// UniformSink is implemented by backends that want the shader inputs.
// BeginFrame is called once per Replay, SetDraw before every draw.
type UniformSink interface {
	BeginFrame(f *Frame) error
	SetDraw(d DrawUniforms) error
}

// Drawer draws one uploaded model.
type Drawer interface {
	Draw(b Backend, mode Primitive) error
}

// Library resolves mesh names to drawers.
type Library interface {
	Drawer(name string) (Drawer, error)
}

// Program names.
const (
	ProgramPhong   = "phong"
	ProgramGouraud = "gouraud"
)

// MaterialUniforms is a material scaled to 0..1.
type MaterialUniforms struct {
	Ka        mgl32.Vec3 `json:"Ka"`
	Kd        mgl32.Vec3 `json:"Kd"`
	Ks        mgl32.Vec3 `json:"Ks"`
	Shininess float32    `json:"shininess"`
}

// MaterialOf scales a material's colours to 0..1.
func MaterialOf(m config.Material) MaterialUniforms {
	return MaterialUniforms{Ka: m.Ka.Unit(), Kd: m.Kd.Unit(), Ks: m.Ks.Unit(), Shininess: m.Shininess}
}

// LightUniforms is one entry of the shader's light array.
type LightUniforms struct {
	// Position is homogeneous: w=1 for point and spot lights, w=0 with a
	// unit direction for directional lights.
	Position mgl32.Vec4 `json:"position"`
	Axis     mgl32.Vec3 `json:"axis"`
	Ambient  mgl32.Vec3 `json:"ambient"`
	Diffuse  mgl32.Vec3 `json:"diffuse"`
	Specular mgl32.Vec3 `json:"specular"`
	Aperture float32    `json:"aperture"`
	Cutoff   float32    `json:"cutoff"`
	On       bool       `json:"onOff"`
	Type     int        `json:"type"`
}

// DrawUniforms are the per-draw inputs.
type DrawUniforms struct {
	Mesh      string           `json:"mesh"`
	ModelView mgl32.Mat4       `json:"modelView"`
	Normals   mgl32.Mat4       `json:"normals"`
	Material  MaterialUniforms `json:"material"`
	Primitive Primitive        `json:"primitive"`
}

// Frame is everything needed to draw the scene once.
type Frame struct {
	Program       string          `json:"program"`
	UsePhong      bool            `json:"usePhong"`
	Blinn         bool            `json:"blinn"`
	DepthTest     bool            `json:"depthTest"`
	CullBackFaces bool            `json:"cullBackFaces"`
	View          mgl32.Mat4      `json:"view"`
	Projection    mgl32.Mat4      `json:"projection"`
	Lights        []LightUniforms `json:"lights"`
	Draws         []DrawUniforms  `json:"draws"`
}

// ViewMatrix is the camera's look-at matrix.
func ViewMatrix(c config.Camera) mgl32.Mat4 {
	return mgl32.LookAtV(c.Eye, c.At, c.Up)
}

// ProjectionMatrix is the camera's perspective projection.
func ProjectionMatrix(c config.Camera) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.Fovy), c.Aspect, c.Near, c.Far)
}

// BuildFrame computes the frame uniforms and assembles g. A nil graph
// draws only the light markers.
func BuildFrame(cfg *config.Config, g *graph.SceneGraph) (*Frame, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	view := ViewMatrix(cfg.Camera)
	f := &Frame{
		Program:       ProgramGouraud,
		UsePhong:      cfg.Options.ShadingModel == config.ShadingPhong,
		Blinn:         cfg.Options.Blinn,
		DepthTest:     cfg.Options.DepthBuffer,
		CullBackFaces: cfg.Options.BackFaceCulling,
		View:          view,
		Projection:    ProjectionMatrix(cfg.Camera),
		Lights:        LightsFor(cfg.Lights, view, cfg.Options.LightsCoords == config.CoordsCamera),
	}
	if f.UsePhong {
		f.Program = ProgramPhong
	}

	mode := Triangles
	if cfg.Options.Wireframe {
		mode = Lines
	}

	calls, err := assemble.Assemble(g, view, cfg)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	f.Draws = make([]DrawUniforms, 0, len(calls))
	for _, c := range calls {
		d := DrawUniforms{
			Mesh:      c.Mesh,
			ModelView: c.ModelView,
			Normals:   c.Normals,
			Material:  MaterialOf(c.Material),
			Primitive: mode,
		}
		if c.Marker {
			d.Primitive = Triangles
		}
		f.Draws = append(f.Draws, d)
	}
	return f, nil
}

// LightsFor converts lights to uniforms. With camera set, positions,
// directions and spot axes are carried into eye space by view; otherwise
// they stay in world space.
func LightsFor(lights []config.Light, view mgl32.Mat4, camera bool) []LightUniforms {
	out := make([]LightUniforms, 0, len(lights))
	for _, l := range lights {
		c := l.Color()
		u := LightUniforms{
			Ambient:  c.Ambient.Unit(),
			Diffuse:  c.Diffuse.Unit(),
			Specular: c.Specular.Unit(),
			On:       c.On,
			Type:     int(l.Kind()),
		}
		var axis mgl32.Vec3
		switch v := l.(type) {
		case config.PointLight:
			u.Position = v.Position.Vec4(1)
		case config.DirectionalLight:
			u.Position = v.Direction.Normalize().Vec4(0)
		case config.SpotLight:
			u.Position = v.Position.Vec4(1)
			axis = v.Axis
			u.Aperture = v.Aperture
			u.Cutoff = v.Cutoff
		}
		if camera {
			u.Position = view.Mul4x1(u.Position)
			axis = view.Mul4x1(axis.Vec4(0)).Vec3()
		}
		u.Axis = axis
		out = append(out, u)
	}
	return out
}

// Replay uploads nothing; it expects lib's models to be initialised on b.
// It sends the frame uniforms when b is a UniformSink and then issues
// every draw in order.
func Replay(f *Frame, lib Library, b Backend) error {
	sink, hasSink := b.(UniformSink)
	if hasSink {
		if err := sink.BeginFrame(f); err != nil {
			return fmt.Errorf("render: begin frame: %w", err)
		}
	}
	for i, d := range f.Draws {
		drawer, err := lib.Drawer(d.Mesh)
		if err != nil {
			return fmt.Errorf("render: draw %d: %w", i, err)
		}
		if hasSink {
			if err := sink.SetDraw(d); err != nil {
				return fmt.Errorf("render: draw %d: %w", i, err)
			}
		}
		if err := drawer.Draw(b, d.Primitive); err != nil {
			return fmt.Errorf("render: draw %d (%s): %w", i, d.Mesh, err)
		}
	}
	return nil
}
