// Package models holds the named meshes a scene can draw. Each Model builds
// its mesh lazily, uploads it once per backend and draws either its
// triangles or its wireframe edges.
package models

import (
	"errors"
	"fmt"
	"sync"

	"github.com/chazu/facet/pkg/kernel"
	"github.com/chazu/facet/pkg/render"
)

var (
	// ErrNotInitialized is returned by Draw on a backend Init never saw.
	ErrNotInitialized = errors.New("model not initialized")
	// ErrUnknownModel is returned for names missing from a Library.
	ErrUnknownModel = errors.New("unknown model")
)

// BuildFunc produces a model's mesh.
type BuildFunc func() (*kernel.Mesh, error)

// Model is one named mesh.
type Model struct {
	name  string
	build BuildFunc

	mu       sync.Mutex
	mesh     *kernel.Mesh
	uploaded map[render.Backend]bool
}

// New returns a model that builds its mesh with build on first use.
func New(name string, build BuildFunc) *Model {
	return &Model{name: name, build: build, uploaded: make(map[render.Backend]bool)}
}

// Name returns the model's name.
func (m *Model) Name() string {
	return m.name
}

// Mesh builds the mesh on first call and returns the cached value after.
// A failed build is retried on the next call.
func (m *Model) Mesh() (*kernel.Mesh, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.meshLocked()
}

func (m *Model) meshLocked() (*kernel.Mesh, error) {
	if m.mesh != nil {
		return m.mesh, nil
	}
	mesh, err := m.build()
	if err != nil {
		return nil, fmt.Errorf("model %s: %w", m.name, err)
	}
	if err := mesh.Validate(); err != nil {
		return nil, fmt.Errorf("model %s: %w", m.name, err)
	}
	m.mesh = mesh
	return mesh, nil
}

// Init builds the mesh if needed and uploads it to b. Later calls with the
// same backend do nothing.
func (m *Model) Init(b render.Backend) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.uploaded[b] {
		return nil
	}
	mesh, err := m.meshLocked()
	if err != nil {
		return err
	}
	if err := b.Upload(m.name, mesh); err != nil {
		return fmt.Errorf("model %s: upload: %w", m.name, err)
	}
	m.uploaded[b] = true
	return nil
}

// Draw issues one draw of the whole mesh: its edges for Lines, its
// triangles otherwise.
func (m *Model) Draw(b render.Backend, mode render.Primitive) error {
	m.mu.Lock()
	ok := m.uploaded[b]
	mesh := m.mesh
	m.mu.Unlock()

	if !ok {
		return fmt.Errorf("model %s: %w", m.name, ErrNotInitialized)
	}
	count := len(mesh.Indices)
	if mode == render.Lines {
		count = len(mesh.Edges)
	}
	return b.DrawElements(m.name, mode, count)
}
