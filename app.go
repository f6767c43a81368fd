package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/chazu/facet/assets"
	"github.com/chazu/facet/pkg/config"
	"github.com/chazu/facet/pkg/engine"
	"github.com/chazu/facet/pkg/graph"
	"github.com/chazu/facet/pkg/models"
	"github.com/chazu/facet/pkg/render"
)

// configEnv names the environment variable holding the config file path.
const configEnv = "FACET_CONFIG"

// App is the Wails backend. It exposes methods to the frontend via bindings.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	cfgPath string
	cfg     *config.Config
	lib     *models.Library
	rec     *render.Recorder
	engine  *engine.Engine
	graph   *graph.SceneGraph
	source  string
}

// MeshData is the JSON-serializable mesh format sent to the frontend.
type MeshData struct {
	Name     string    `json:"name"`
	Vertices []float32 `json:"vertices"`
	Normals  []float32 `json:"normals"`
	Indices  []uint32  `json:"indices"`
	Edges    []uint32  `json:"edges"`
}

// EvalErrorData is a JSON-serializable eval error for the frontend.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// EvalResult is the full result returned to the frontend.
type EvalResult struct {
	Frame    *render.Frame         `json:"frame"`
	Draws    []render.DrawUniforms `json:"draws"`
	Errors   []EvalErrorData       `json:"errors"`
	Warnings []EvalErrorData       `json:"warnings"`
}

func newResult() EvalResult {
	return EvalResult{
		Draws:    []render.DrawUniforms{},
		Errors:   []EvalErrorData{},
		Warnings: []EvalErrorData{},
	}
}

func (r *EvalResult) fail(format string, args ...any) EvalResult {
	r.Errors = append(r.Errors, EvalErrorData{Message: fmt.Sprintf(format, args...)})
	return *r
}

// NewApp creates an App from the config named by FACET_CONFIG, or the
// defaults, and evaluates the configured scene.
func NewApp() *App {
	a := &App{cfgPath: os.Getenv(configEnv)}
	cfg := config.Default()
	if a.cfgPath != "" {
		loaded, err := config.Load(a.cfgPath)
		if err != nil {
			log.Printf("config: %v; using defaults", err)
		} else {
			cfg = loaded
		}
	}
	a.apply(cfg)
	return a
}

// startup is called by Wails on app startup. The context is saved
// so we can call Wails runtime methods later if needed.
func (a *App) startup(ctx context.Context) {
	a.ctx, a.cancel = context.WithCancel(ctx)
	if a.cfgPath == "" {
		return
	}
	go func() {
		err := config.Watch(a.ctx, a.cfgPath, func(cfg *config.Config, err error) {
			if err != nil {
				log.Printf("config reload: %v", err)
				return
			}
			log.Printf("config reloaded from %s", a.cfgPath)
			a.apply(cfg)
		})
		if err != nil {
			log.Printf("config watch: %v", err)
		}
	}()
}

// shutdown stops the config watcher.
func (a *App) shutdown(ctx context.Context) {
	if a.cancel != nil {
		a.cancel()
	}
}

// apply installs cfg, rebuilding the model library and re-evaluating the
// scene script it names.
func (a *App) apply(cfg *config.Config) {
	lib := models.Default(cfg)
	source := assets.Scene
	if cfg.Scene != "" {
		b, err := os.ReadFile(cfg.Scene)
		if err != nil {
			log.Printf("scene: %v; using the built-in scene", err)
		} else {
			source = string(b)
		}
	}

	a.mu.Lock()
	a.cfg = cfg
	a.lib = lib
	a.rec = render.NewRecorder()
	a.engine = engine.NewEngine(engine.WithMeshes(lib.Names()...))
	a.mu.Unlock()

	if res := a.Evaluate(source); len(res.Errors) > 0 {
		log.Printf("scene: %s", res.Errors[0].Message)
	}
}

// Evaluate takes scene source and returns the resulting frame + errors.
// This is the primary binding called by the frontend editor. On failure the
// previous scene stays current.
func (a *App) Evaluate(source string) EvalResult {
	result := newResult()

	a.mu.Lock()
	eng := a.engine
	a.mu.Unlock()

	// Step 1: Evaluate the scene source into a scene graph.
	g, evalErrs, warnings, err := eng.EvaluateChecked(source)
	if err != nil {
		// Fatal error (panic, timeout, etc.)
		log.Printf("Evaluate fatal error: %v", err)
		return result.fail("%s", err.Error())
	}
	for _, w := range warnings {
		result.Warnings = append(result.Warnings, EvalErrorData{Message: w.Message})
	}

	// Step 2: Convert eval errors to the frontend format.
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			result.Errors = append(result.Errors, EvalErrorData{
				Line:    e.Line,
				Col:     e.Col,
				Message: e.Message,
			})
		}
		return result
	}

	// Step 3: Assemble and replay the frame to check every draw resolves.
	a.mu.Lock()
	defer a.mu.Unlock()
	f, err := a.frameLocked(g)
	if err != nil {
		log.Printf("Frame error: %v", err)
		return result.fail("frame failed: %s", err.Error())
	}

	a.graph = g
	a.source = source
	result.Frame = f
	result.Draws = f.Draws
	return result
}

// frameLocked builds a frame for g and replays it into the recorder.
func (a *App) frameLocked(g *graph.SceneGraph) (*render.Frame, error) {
	f, err := render.BuildFrame(a.cfg, g)
	if err != nil {
		return nil, err
	}
	if err := a.lib.Init(a.rec); err != nil {
		return nil, err
	}
	a.rec.Reset()
	if err := render.Replay(f, a.lib, a.rec); err != nil {
		return nil, err
	}
	return f, nil
}

// Frame rebuilds the current scene's frame, picking up option changes.
func (a *App) Frame() EvalResult {
	result := newResult()
	a.mu.Lock()
	defer a.mu.Unlock()

	f, err := a.frameLocked(a.graph)
	if err != nil {
		return result.fail("frame failed: %s", err.Error())
	}
	result.Frame = f
	result.Draws = f.Draws
	return result
}

// Meshes returns every model's buffers, in name order. The frontend uploads
// them once and draws them by name.
func (a *App) Meshes() []MeshData {
	a.mu.Lock()
	lib := a.lib
	a.mu.Unlock()

	out := []MeshData{}
	for _, name := range lib.Names() {
		m, err := lib.Mesh(name)
		if err != nil {
			log.Printf("mesh %s: %v", name, err)
			continue
		}
		out = append(out, MeshData{
			Name:     name,
			Vertices: m.Vertices,
			Normals:  m.Normals,
			Indices:  m.Indices,
			Edges:    m.Edges,
		})
	}
	return out
}

// SetOptions replaces the display options and returns the new frame.
// Invalid options, or options the current scene cannot be drawn with, leave
// the current ones in place.
func (a *App) SetOptions(opts config.Options) EvalResult {
	result := newResult()
	a.mu.Lock()
	defer a.mu.Unlock()

	next := *a.cfg
	next.Options = opts
	if err := next.Validate(); err != nil {
		return result.fail("%s", err.Error())
	}
	prev := a.cfg
	a.cfg = &next

	f, err := a.frameLocked(a.graph)
	if err != nil {
		a.cfg = prev
		return result.fail("frame failed: %s", err.Error())
	}
	result.Frame = f
	result.Draws = f.Draws
	return result
}

// Config returns the current settings in file layout.
func (a *App) Config() config.Document {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.cfg.Document()
}

// Source returns the scene source of the current frame.
func (a *App) Source() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.source
}
