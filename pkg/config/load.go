package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format names a file syntax.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatOf picks the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("config: unsupported file extension %q", filepath.Ext(path))
}

// Document is the file layout of a Config.
type Document struct {
	Camera    Camera              `toml:"camera" yaml:"camera" json:"camera"`
	Options   Options             `toml:"options" yaml:"options" json:"options"`
	Meshes    Meshes              `toml:"meshes" yaml:"meshes" json:"meshes"`
	Organic   Organic             `toml:"organic" yaml:"organic" json:"organic"`
	Materials map[string]Material `toml:"materials" yaml:"materials" json:"materials"`
	Lights    []LightSpec         `toml:"lights" yaml:"lights" json:"lights"`
	Scene     string              `toml:"scene,omitempty" yaml:"scene,omitempty" json:"scene,omitempty"`
}

// Document converts the config to its file layout.
func (c *Config) Document() Document {
	d := Document{
		Camera:    c.Camera,
		Options:   c.Options,
		Meshes:    c.Meshes,
		Organic:   c.Organic,
		Materials: make(map[string]Material, len(c.Materials)),
		Scene:     c.Scene,
	}
	for k, v := range c.Materials {
		d.Materials[k] = v
	}
	for _, l := range c.Lights {
		d.Lights = append(d.Lights, SpecOf(l))
	}
	return d
}

// Load reads and validates a config file. Settings missing from the file
// keep their Default values; a file that lists lights replaces the default
// lights entirely.
func Load(path string) (*Config, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	cfg, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes and validates config data. Unknown keys are rejected.
func Parse(data []byte, format Format) (*Config, error) {
	def := Default()
	doc := def.Document()
	doc.Lights = nil

	switch format {
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode toml: %w", err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}

	cfg := &Config{
		Camera:    doc.Camera,
		Options:   doc.Options,
		Meshes:    doc.Meshes,
		Organic:   doc.Organic,
		Materials: doc.Materials,
		Scene:     doc.Scene,
		Lights:    def.Lights,
	}
	if doc.Lights != nil {
		cfg.Lights = make([]Light, 0, len(doc.Lights))
		for i, ls := range doc.Lights {
			l, err := ls.Light()
			if err != nil {
				return nil, fmt.Errorf("light %d: %w", i, err)
			}
			cfg.Lights = append(cfg.Lights, l)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Encode writes the config in the given format.
func (c *Config) Encode(format Format) ([]byte, error) {
	doc := c.Document()
	switch format {
	case FormatTOML:
		return toml.Marshal(doc)
	case FormatYAML:
		return yaml.Marshal(doc)
	}
	return nil, fmt.Errorf("unknown format %q", format)
}
