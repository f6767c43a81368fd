package config

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// LightKind is the type code the shaders switch on.
type LightKind int

const (
	LightPoint       LightKind = 0
	LightDirectional LightKind = 1
	LightSpot        LightKind = 2
)

func (k LightKind) String() string {
	switch k {
	case LightPoint:
		return "point"
	case LightDirectional:
		return "directional"
	case LightSpot:
		return "spotlight"
	default:
		return fmt.Sprintf("LightKind(%d)", int(k))
	}
}

// Light is one of PointLight, DirectionalLight or SpotLight.
type Light interface {
	Kind() LightKind
	Color() LightColor
}

// LightColor holds the switch and intensities every light carries.
type LightColor struct {
	On       bool
	Ambient  RGB
	Diffuse  RGB
	Specular RGB
}

// PointLight radiates from a position in world space.
type PointLight struct {
	LightColor
	Position mgl32.Vec3
}

// DirectionalLight shines along Direction from infinitely far away.
type DirectionalLight struct {
	LightColor
	Direction mgl32.Vec3
}

// SpotLight is a point light restricted to a cone around Axis.
type SpotLight struct {
	LightColor
	Position mgl32.Vec3
	Axis     mgl32.Vec3
	Aperture float32 // degrees
	Cutoff   float32
}

func (PointLight) Kind() LightKind       { return LightPoint }
func (DirectionalLight) Kind() LightKind { return LightDirectional }
func (SpotLight) Kind() LightKind        { return LightSpot }

func (l PointLight) Color() LightColor       { return l.LightColor }
func (l DirectionalLight) Color() LightColor { return l.LightColor }
func (l SpotLight) Color() LightColor        { return l.LightColor }

// Positioned returns the world position of point and spot lights. It
// reports false for directional lights, which have none.
func Positioned(l Light) (mgl32.Vec3, bool) {
	switch v := l.(type) {
	case PointLight:
		return v.Position, true
	case SpotLight:
		return v.Position, true
	}
	return mgl32.Vec3{}, false
}

func validateLight(l Light) error {
	c := l.Color()
	if !c.Ambient.valid() || !c.Diffuse.valid() || !c.Specular.valid() {
		return fmt.Errorf("%s: colour outside 0..255", l.Kind())
	}
	switch v := l.(type) {
	case DirectionalLight:
		if v.Direction.LenSqr() == 0 {
			return fmt.Errorf("directional: zero direction")
		}
	case SpotLight:
		if v.Axis.LenSqr() == 0 {
			return fmt.Errorf("spotlight: zero axis")
		}
		if v.Aperture <= 0 || v.Aperture > 90 {
			return fmt.Errorf("spotlight: aperture %g outside (0, 90]", v.Aperture)
		}
	case PointLight:
	default:
		return fmt.Errorf("unsupported light %T", l)
	}
	return nil
}

// LightSpec is the file form of a light. Type selects the variant; fields
// the variant does not use are ignored.
type LightSpec struct {
	Type      string     `toml:"type" yaml:"type" json:"type"`
	On        bool       `toml:"on" yaml:"on" json:"on"`
	Ambient   RGB        `toml:"ambient" yaml:"ambient" json:"ambient"`
	Diffuse   RGB        `toml:"diffuse" yaml:"diffuse" json:"diffuse"`
	Specular  RGB        `toml:"specular" yaml:"specular" json:"specular"`
	Position  mgl32.Vec3 `toml:"position,omitempty" yaml:"position,omitempty" json:"position"`
	Direction mgl32.Vec3 `toml:"direction,omitempty" yaml:"direction,omitempty" json:"direction"`
	Axis      mgl32.Vec3 `toml:"axis,omitempty" yaml:"axis,omitempty" json:"axis"`
	Aperture  float32    `toml:"aperture,omitempty" yaml:"aperture,omitempty" json:"aperture"`
	Cutoff    float32    `toml:"cutoff,omitempty" yaml:"cutoff,omitempty" json:"cutoff"`
}

// Light decodes the file form into its variant.
func (s LightSpec) Light() (Light, error) {
	c := LightColor{On: s.On, Ambient: s.Ambient, Diffuse: s.Diffuse, Specular: s.Specular}
	switch s.Type {
	case "point":
		return PointLight{LightColor: c, Position: s.Position}, nil
	case "directional":
		return DirectionalLight{LightColor: c, Direction: s.Direction}, nil
	case "spotlight", "spot":
		return SpotLight{LightColor: c, Position: s.Position, Axis: s.Axis, Aperture: s.Aperture, Cutoff: s.Cutoff}, nil
	}
	return nil, fmt.Errorf("light type %q: %w", s.Type, ErrInvalid)
}

// SpecOf encodes a light into its file form.
func SpecOf(l Light) LightSpec {
	c := l.Color()
	s := LightSpec{Type: l.Kind().String(), On: c.On, Ambient: c.Ambient, Diffuse: c.Diffuse, Specular: c.Specular}
	switch v := l.(type) {
	case PointLight:
		s.Position = v.Position
	case DirectionalLight:
		s.Direction = v.Direction
	case SpotLight:
		s.Position, s.Axis, s.Aperture, s.Cutoff = v.Position, v.Axis, v.Aperture, v.Cutoff
	}
	return s
}
