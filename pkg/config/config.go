// Package config holds the viewer settings: camera, display options, mesh
// resolutions, the organic mesh source, materials and lights. Settings load
// from TOML or YAML and can be watched for live changes.
package config

import (
	"errors"
	"fmt"

	"github.com/chazu/facet/pkg/shape"
	"github.com/go-gl/mathgl/mgl32"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// MaxLights is the number of light slots the shaders provide.
const MaxLights = 8

// Shading models.
const (
	ShadingPhong   = "phong"
	ShadingGouraud = "gouraud"
)

// Light coordinate frames.
const (
	CoordsCamera = "camera"
	CoordsWorld  = "world"
)

// Organic mesh sources.
const (
	OrganicSDF  = "sdf"
	OrganicFile = "file"
)

// Config is the complete viewer configuration.
type Config struct {
	Camera    Camera
	Options   Options
	Meshes    Meshes
	Organic   Organic
	Materials map[string]Material
	Lights    []Light

	// Scene is the path of a scene script. Empty selects the built-in scene.
	Scene string
}

// Camera is a look-at camera with a perspective projection.
type Camera struct {
	Eye    mgl32.Vec3 `toml:"eye" yaml:"eye" json:"eye"`
	At     mgl32.Vec3 `toml:"at" yaml:"at" json:"at"`
	Up     mgl32.Vec3 `toml:"up" yaml:"up" json:"up"`
	Fovy   float32    `toml:"fovy" yaml:"fovy" json:"fovy"` // degrees
	Aspect float32    `toml:"aspect" yaml:"aspect" json:"aspect"`
	Near   float32    `toml:"near" yaml:"near" json:"near"`
	Far    float32    `toml:"far" yaml:"far" json:"far"`
}

// Options are the display toggles.
type Options struct {
	ShadingModel    string `toml:"shading_model" yaml:"shading_model" json:"shadingModel"`
	LightsCoords    string `toml:"lights_coords" yaml:"lights_coords" json:"lightsCoords"`
	Wireframe       bool   `toml:"wireframe" yaml:"wireframe" json:"wireframe"`
	Blinn           bool   `toml:"blinn" yaml:"blinn" json:"blinn"`
	DepthBuffer     bool   `toml:"depth_buffer" yaml:"depth_buffer" json:"depthBuffer"`
	BackFaceCulling bool   `toml:"back_face_culling" yaml:"back_face_culling" json:"backFaceCulling"`
}

// Meshes sets the resolution of the parametric models.
type Meshes struct {
	SphereLatitudes  int   `toml:"sphere_latitudes" yaml:"sphere_latitudes" json:"sphereLatitudes"`
	SphereLongitudes int   `toml:"sphere_longitudes" yaml:"sphere_longitudes" json:"sphereLongitudes"`
	CylinderPoints   int   `toml:"cylinder_points" yaml:"cylinder_points" json:"cylinderPoints"`
	FullWireframe    bool  `toml:"full_wireframe" yaml:"full_wireframe" json:"fullWireframe"`
	Torus            Torus `toml:"torus" yaml:"torus" json:"torus"`
}

// Torus mirrors shape.TorusParams in file form.
type Torus struct {
	RingRadius float32 `toml:"ring_radius" yaml:"ring_radius" json:"ringRadius"`
	TubeRadius float32 `toml:"tube_radius" yaml:"tube_radius" json:"tubeRadius"`
	Disks      int     `toml:"disks" yaml:"disks" json:"disks"`
	DiskPoints int     `toml:"disk_points" yaml:"disk_points" json:"diskPoints"`
}

// Params converts to the builder's parameter struct.
func (t Torus) Params() shape.TorusParams {
	return shape.TorusParams{
		RingRadius: t.RingRadius,
		TubeRadius: t.TubeRadius,
		Disks:      t.Disks,
		DiskPoints: t.DiskPoints,
	}
}

// Organic selects where the "bunny" mesh comes from.
type Organic struct {
	// Source is OrganicSDF (built with the SDF kernel) or OrganicFile.
	Source string `toml:"source" yaml:"source" json:"source"`
	// Path is the mesh file for OrganicFile (.obj, .stl, .gltf, .glb).
	Path string `toml:"path" yaml:"path" json:"path"`
	// Cells is the marching cubes resolution for OrganicSDF.
	Cells int `toml:"cells" yaml:"cells" json:"cells"`
	// Decimate keeps this fraction of triangles; 0 or 1 disables it.
	Decimate float64 `toml:"decimate" yaml:"decimate" json:"decimate"`
}

// RGB is a colour with components in 0..255.
type RGB [3]float32

// Unit scales the colour to 0..1.
func (c RGB) Unit() mgl32.Vec3 {
	return mgl32.Vec3{c[0] / 255, c[1] / 255, c[2] / 255}
}

func (c RGB) valid() bool {
	for _, v := range c {
		if v < 0 || v > 255 {
			return false
		}
	}
	return true
}

// Material is a Phong material.
type Material struct {
	Ka        RGB     `toml:"ka" yaml:"ka" json:"ka"`
	Kd        RGB     `toml:"kd" yaml:"kd" json:"kd"`
	Ks        RGB     `toml:"ks" yaml:"ks" json:"ks"`
	Shininess float32 `toml:"shininess" yaml:"shininess" json:"shininess"`
}

// Marker materials for light spheres.
var (
	MarkerOn  = Material{Ka: RGB{255, 255, 0}, Kd: RGB{255, 255, 0}, Ks: RGB{255, 255, 0}, Shininess: 1}
	MarkerOff = Material{Ka: RGB{50, 50, 50}, Kd: RGB{50, 50, 50}, Ks: RGB{50, 50, 50}, Shininess: 1}
)

// Default returns the stock scene settings.
func Default() *Config {
	return &Config{
		Camera: Camera{
			Eye:    mgl32.Vec3{0, 5, 20},
			At:     mgl32.Vec3{0, 0, 0},
			Up:     mgl32.Vec3{0, 1, 0},
			Fovy:   45,
			Aspect: 1,
			Near:   0.1,
			Far:    200,
		},
		Options: Options{
			ShadingModel:    ShadingPhong,
			LightsCoords:    CoordsCamera,
			Wireframe:       false,
			Blinn:           true,
			DepthBuffer:     true,
			BackFaceCulling: true,
		},
		Meshes: Meshes{
			SphereLatitudes:  shape.DefaultLatitudes,
			SphereLongitudes: shape.DefaultLongitudes,
			CylinderPoints:   shape.DefaultCylinderPoints,
			Torus: Torus{
				RingRadius: shape.DefaultTorus().RingRadius,
				TubeRadius: shape.DefaultTorus().TubeRadius,
				Disks:      shape.DefaultTorus().Disks,
				DiskPoints: shape.DefaultTorus().DiskPoints,
			},
		},
		Organic: Organic{
			Source: OrganicSDF,
			Cells:  64,
		},
		Materials: DefaultMaterials(),
		Lights: []Light{
			SpotLight{
				LightColor: LightColor{On: true, Ambient: RGB{50, 50, 50}, Diffuse: RGB{150, 150, 150}, Specular: RGB{200, 200, 200}},
				Position:   mgl32.Vec3{0, 5, 0},
				Axis:       mgl32.Vec3{0, -1, 0},
				Aperture:   20,
				Cutoff:     15,
			},
			PointLight{
				LightColor: LightColor{On: false, Ambient: RGB{50, 50, 50}, Diffuse: RGB{0, 255, 255}, Specular: RGB{200, 200, 200}},
				Position:   mgl32.Vec3{-5, 5, 0},
			},
			DirectionalLight{
				LightColor: LightColor{On: true, Ambient: RGB{50, 50, 50}, Diffuse: RGB{255, 255, 255}, Specular: RGB{200, 200, 200}},
				Direction:  mgl32.Vec3{-1, -0.5, -0.3},
			},
		},
	}
}

// DefaultMaterials returns the materials the built-in scene refers to.
func DefaultMaterials() map[string]Material {
	return map[string]Material{
		"table":    {Ka: RGB{30, 25, 15}, Kd: RGB{180, 160, 120}, Ks: RGB{50, 50, 50}, Shininess: 100},
		"cube":     {Ka: RGB{40, 10, 10}, Kd: RGB{200, 40, 40}, Ks: RGB{150, 150, 150}, Shininess: 100},
		"cylinder": {Ka: RGB{0, 20, 20}, Kd: RGB{0, 100, 100}, Ks: RGB{100, 100, 100}, Shininess: 100},
		"torus":    {Ka: RGB{0, 50, 0}, Kd: RGB{0, 200, 0}, Ks: RGB{200, 200, 200}, Shininess: 100},
		"bunny":    {Ka: RGB{150, 150, 150}, Kd: RGB{150, 150, 150}, Ks: RGB{200, 200, 200}, Shininess: 100},
	}
}

// Material returns the named material, falling back to the mesh name and
// then to the bunny's neutral grey.
func (c *Config) Material(name, mesh string) Material {
	if m, ok := c.Materials[name]; ok {
		return m
	}
	if m, ok := c.Materials[mesh]; ok {
		return m
	}
	return DefaultMaterials()["bunny"]
}

// Validate checks every field and returns the first problem found.
func (c *Config) Validate() error {
	cam := c.Camera
	switch {
	case cam.Fovy <= 0 || cam.Fovy >= 180:
		return fmt.Errorf("camera: fovy %g outside (0, 180): %w", cam.Fovy, ErrInvalid)
	case cam.Aspect <= 0:
		return fmt.Errorf("camera: aspect %g <= 0: %w", cam.Aspect, ErrInvalid)
	case cam.Near <= 0:
		return fmt.Errorf("camera: near %g <= 0: %w", cam.Near, ErrInvalid)
	case cam.Far <= cam.Near:
		return fmt.Errorf("camera: far %g <= near %g: %w", cam.Far, cam.Near, ErrInvalid)
	case cam.Eye.Sub(cam.At).LenSqr() == 0:
		return fmt.Errorf("camera: eye and at coincide: %w", ErrInvalid)
	case cam.Up.LenSqr() == 0:
		return fmt.Errorf("camera: zero up vector: %w", ErrInvalid)
	}

	switch c.Options.ShadingModel {
	case ShadingPhong, ShadingGouraud:
	default:
		return fmt.Errorf("options: shading model %q: %w", c.Options.ShadingModel, ErrInvalid)
	}
	switch c.Options.LightsCoords {
	case CoordsCamera, CoordsWorld:
	default:
		return fmt.Errorf("options: lights coords %q: %w", c.Options.LightsCoords, ErrInvalid)
	}

	m := c.Meshes
	if m.SphereLatitudes < 1 || m.SphereLongitudes < 3 {
		return fmt.Errorf("meshes: sphere %dx%d: %w", m.SphereLatitudes, m.SphereLongitudes, ErrInvalid)
	}
	if m.CylinderPoints < 3 {
		return fmt.Errorf("meshes: cylinder points %d < 3: %w", m.CylinderPoints, ErrInvalid)
	}
	if err := m.Torus.Params().Validate(); err != nil {
		return fmt.Errorf("meshes: %v: %w", err, ErrInvalid)
	}

	switch c.Organic.Source {
	case OrganicSDF:
		if c.Organic.Cells < 8 {
			return fmt.Errorf("organic: cells %d < 8: %w", c.Organic.Cells, ErrInvalid)
		}
	case OrganicFile:
		if c.Organic.Path == "" {
			return fmt.Errorf("organic: file source needs a path: %w", ErrInvalid)
		}
	default:
		return fmt.Errorf("organic: source %q: %w", c.Organic.Source, ErrInvalid)
	}
	if c.Organic.Decimate < 0 || c.Organic.Decimate > 1 {
		return fmt.Errorf("organic: decimate %g outside [0, 1]: %w", c.Organic.Decimate, ErrInvalid)
	}

	for name, mat := range c.Materials {
		if !mat.Ka.valid() || !mat.Kd.valid() || !mat.Ks.valid() {
			return fmt.Errorf("material %q: colour outside 0..255: %w", name, ErrInvalid)
		}
		if mat.Shininess < 0 {
			return fmt.Errorf("material %q: negative shininess: %w", name, ErrInvalid)
		}
	}

	if len(c.Lights) > MaxLights {
		return fmt.Errorf("%d lights, at most %d: %w", len(c.Lights), MaxLights, ErrInvalid)
	}
	for i, l := range c.Lights {
		if err := validateLight(l); err != nil {
			return fmt.Errorf("light %d: %v: %w", i, err, ErrInvalid)
		}
	}
	return nil
}
