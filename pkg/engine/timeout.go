package engine

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/chazu/facet/pkg/graph"
)

// EvalTimeout is the default hard limit for a single evaluation.
const EvalTimeout = 5 * time.Second

// evalResult carries one sandbox run back to the caller.
type evalResult struct {
	graph  *graph.SceneGraph
	errors []EvalError
	err    error
}

// waitWithTimeout blocks until ch delivers or timeout passes. A result whose
// generation gen is no longer current is reported as superseded, so an
// editor never shows a scene older than the last source it sent.
//
// On timeout the sandbox goroutine keeps running; its result lands in the
// buffered channel and is dropped.
func waitWithTimeout(ch <-chan evalResult, gen uint64, timeout time.Duration, current *atomic.Uint64) (*graph.SceneGraph, []EvalError, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case res := <-ch:
		if latest := current.Load(); gen != latest {
			return nil, nil, fmt.Errorf("evaluation %d superseded by %d", gen, latest)
		}
		return res.graph, res.errors, res.err
	case <-timer.C:
		return nil, nil, fmt.Errorf("evaluation timed out after %s", timeout)
	}
}
