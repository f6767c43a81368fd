package render

import (
	"fmt"

	"github.com/chazu/facet/pkg/kernel"
)

// Call is one recorded draw.
type Call struct {
	Mesh     string
	Mode     Primitive
	Count    int
	Uniforms DrawUniforms
}

// Recorder is a Backend and UniformSink that keeps everything it is sent.
// It backs the app's frame summaries, the CLI and the tests.
type Recorder struct {
	Meshes map[string]*kernel.Mesh
	Frames []*Frame
	Calls  []Call

	uploads int
	pending *DrawUniforms
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{Meshes: make(map[string]*kernel.Mesh)}
}

// Upload stores mesh under name. Uploading a name twice is an error.
func (r *Recorder) Upload(name string, mesh *kernel.Mesh) error {
	if _, ok := r.Meshes[name]; ok {
		return fmt.Errorf("recorder: %q uploaded twice", name)
	}
	r.Meshes[name] = mesh
	r.uploads++
	return nil
}

// Uploads returns how many meshes were uploaded.
func (r *Recorder) Uploads() int {
	return r.uploads
}

// DrawElements records a draw, checking count against the uploaded mesh.
func (r *Recorder) DrawElements(name string, mode Primitive, count int) error {
	m, ok := r.Meshes[name]
	if !ok {
		return fmt.Errorf("recorder: draw of %q before upload", name)
	}
	limit := len(m.Indices)
	if mode == Lines {
		limit = len(m.Edges)
	}
	if count < 0 || count > limit {
		return fmt.Errorf("recorder: %s count %d exceeds %d for %q", mode, count, limit, name)
	}
	c := Call{Mesh: name, Mode: mode, Count: count}
	if r.pending != nil {
		c.Uniforms = *r.pending
		r.pending = nil
	}
	r.Calls = append(r.Calls, c)
	return nil
}

// BeginFrame records the frame.
func (r *Recorder) BeginFrame(f *Frame) error {
	r.Frames = append(r.Frames, f)
	return nil
}

// SetDraw holds the uniforms for the next draw.
func (r *Recorder) SetDraw(d DrawUniforms) error {
	r.pending = &d
	return nil
}

// Stats sums the recorded calls.
func (r *Recorder) Stats() Stats {
	var s Stats
	for _, c := range r.Calls {
		s.Draws++
		switch c.Mode {
		case Triangles:
			s.Triangles += c.Count / 3
		case Lines:
			s.Lines += c.Count / 2
		}
	}
	return s
}

// Stats summarises a replay.
type Stats struct {
	Draws     int `json:"draws"`
	Triangles int `json:"triangles"`
	Lines     int `json:"lines"`
}

// Reset drops recorded frames and calls but keeps uploaded meshes.
func (r *Recorder) Reset() {
	r.Frames = nil
	r.Calls = nil
	r.pending = nil
}
