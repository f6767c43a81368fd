package models

import (
	"fmt"
	"sort"

	"github.com/chazu/facet/pkg/config"
	"github.com/chazu/facet/pkg/kernel"
	"github.com/chazu/facet/pkg/render"
	"github.com/chazu/facet/pkg/shape"
)

// Names of the built-in models.
const (
	Cube     = "cube"
	Pyramid  = "pyramid"
	Sphere   = "sphere"
	Cylinder = "cylinder"
	Torus    = "torus"
	Bunny    = "bunny"
)

// Library is a set of models keyed by name.
type Library struct {
	models map[string]*Model
}

var _ render.Library = (*Library)(nil)

// NewLibrary returns an empty library.
func NewLibrary() *Library {
	return &Library{models: make(map[string]*Model)}
}

// Default returns the built-in models sized by cfg. Nothing is built until
// a model is first used.
func Default(cfg *config.Config) *Library {
	var opts []shape.Option
	if cfg.Meshes.FullWireframe {
		opts = append(opts, shape.FullWireframe())
	}
	m := cfg.Meshes
	organic := cfg.Organic

	l := NewLibrary()
	l.Add(New(Cube, func() (*kernel.Mesh, error) { return shape.Cube(opts...), nil }))
	l.Add(New(Pyramid, func() (*kernel.Mesh, error) { return shape.Pyramid(opts...), nil }))
	l.Add(New(Sphere, func() (*kernel.Mesh, error) {
		return shape.Sphere(m.SphereLatitudes, m.SphereLongitudes)
	}))
	l.Add(New(Cylinder, func() (*kernel.Mesh, error) { return shape.Cylinder(m.CylinderPoints) }))
	l.Add(New(Torus, func() (*kernel.Mesh, error) { return shape.Torus(m.Torus.Params()) }))
	l.Add(New(Bunny, func() (*kernel.Mesh, error) { return Organic(organic) }))
	return l
}

// Add registers m, replacing any model with the same name.
func (l *Library) Add(m *Model) {
	l.models[m.Name()] = m
}

// Names returns the model names in sorted order.
func (l *Library) Names() []string {
	names := make([]string, 0, len(l.models))
	for name := range l.models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Model returns the named model.
func (l *Library) Model(name string) (*Model, error) {
	m, ok := l.models[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownModel, name)
	}
	return m, nil
}

// Drawer implements render.Library.
func (l *Library) Drawer(name string) (render.Drawer, error) {
	m, err := l.Model(name)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Mesh returns the named model's mesh, building it if needed.
func (l *Library) Mesh(name string) (*kernel.Mesh, error) {
	m, err := l.Model(name)
	if err != nil {
		return nil, err
	}
	return m.Mesh()
}

// Init initialises every model on b in name order.
func (l *Library) Init(b render.Backend) error {
	for _, name := range l.Names() {
		if err := l.models[name].Init(b); err != nil {
			return err
		}
	}
	return nil
}
