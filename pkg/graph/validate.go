package graph

import "fmt"

// ValidationSeverity indicates whether a validation finding blocks evaluation
// or is merely informational.
type ValidationSeverity int

const (
	SeverityError   ValidationSeverity = iota // blocks evaluation
	SeverityWarning                           // informational
)

func (s ValidationSeverity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("ValidationSeverity(%d)", int(s))
	}
}

// ValidationError describes a single validation finding.
type ValidationError struct {
	NodeID   NodeID             // which node has the problem (zero if graph-level)
	Message  string             // human-readable description
	Severity ValidationSeverity // error or warning
}

func (e ValidationError) Error() string {
	if e.NodeID.IsZero() {
		return fmt.Sprintf("[%s] %s", e.Severity, e.Message)
	}
	return fmt.Sprintf("[%s] node %s: %s", e.Severity, e.NodeID.Short(), e.Message)
}

// Validate runs the structural checks on the scene graph and returns every
// finding. An empty slice means the graph is valid. This function is
// read-only and never mutates the graph.
func Validate(g *SceneGraph) []ValidationError {
	var errs []ValidationError
	errs = append(errs, validateDAG(g)...)
	errs = append(errs, validateReferences(g)...)
	errs = append(errs, validateNames(g)...)
	errs = append(errs, validateRoots(g)...)
	errs = append(errs, validatePayloads(g)...)
	return errs
}

// HasErrors reports whether any finding has error severity.
func HasErrors(findings []ValidationError) bool {
	for _, f := range findings {
		if f.Severity == SeverityError {
			return true
		}
	}
	return false
}

// validateDAG detects cycles with a three-colour depth-first search.
func validateDAG(g *SceneGraph) []ValidationError {
	const (
		white = iota
		gray
		black
	)

	color := make(map[NodeID]int) // default zero = white
	var errs []ValidationError

	var visit func(id NodeID) bool // returns true if cycle found
	visit = func(id NodeID) bool {
		switch color[id] {
		case black:
			return false
		case gray:
			errs = append(errs, ValidationError{
				NodeID:   id,
				Message:  fmt.Sprintf("cycle detected: node %s is part of a cycle", id.Short()),
				Severity: SeverityError,
			})
			return true
		}

		color[id] = gray

		node, ok := g.Nodes[id]
		if !ok {
			// Dangling reference; handled by validateReferences.
			color[id] = black
			return false
		}

		for _, childID := range node.Children {
			if visit(childID) {
				return true
			}
		}

		color[id] = black
		return false
	}

	// Start from every node in creation order to catch disconnected
	// components deterministically.
	for _, id := range g.Order {
		if color[id] == white {
			if visit(id) {
				// One cycle error is sufficient; stop early.
				break
			}
		}
	}

	return errs
}

// validateReferences checks that every child reference points to a node
// that exists.
func validateReferences(g *SceneGraph) []ValidationError {
	var errs []ValidationError
	for _, id := range g.Order {
		node := g.Nodes[id]
		for _, childID := range node.Children {
			if _, ok := g.Nodes[childID]; !ok {
				errs = append(errs, ValidationError{
					NodeID:   node.ID,
					Message:  fmt.Sprintf("child reference %s does not exist", childID.Short()),
					Severity: SeverityError,
				})
			}
		}
	}
	return errs
}

// validateNames checks that every NameIndex entry points at a node carrying
// that name. Reusing a name only warns: the later node wins the lookup.
func validateNames(g *SceneGraph) []ValidationError {
	var errs []ValidationError
	for name, id := range g.NameIndex {
		node, ok := g.Nodes[id]
		if !ok {
			errs = append(errs, ValidationError{
				Message:  fmt.Sprintf("name index entry %q references non-existent node %s", name, id.Short()),
				Severity: SeverityError,
			})
			continue
		}
		if node.Name != name {
			errs = append(errs, ValidationError{
				NodeID:   id,
				Message:  fmt.Sprintf("name index entry %q points at node named %q", name, node.Name),
				Severity: SeverityError,
			})
		}
	}

	seen := make(map[string]int)
	for _, id := range g.Order {
		if n := g.Nodes[id]; n.Name != "" {
			seen[n.Name]++
		}
	}
	for name, count := range seen {
		if count > 1 {
			errs = append(errs, ValidationError{
				Message:  fmt.Sprintf("name %q assigned to %d nodes", name, count),
				Severity: SeverityWarning,
			})
		}
	}
	return errs
}

// validateRoots checks that every root exists and that a non-empty graph
// has at least one root.
func validateRoots(g *SceneGraph) []ValidationError {
	var errs []ValidationError
	if len(g.Nodes) > 0 && len(g.Roots) == 0 {
		errs = append(errs, ValidationError{
			Message:  "graph has nodes but no roots",
			Severity: SeverityError,
		})
	}
	for _, id := range g.Roots {
		if _, ok := g.Nodes[id]; !ok {
			errs = append(errs, ValidationError{
				NodeID:   id,
				Message:  fmt.Sprintf("root %s does not exist", id.Short()),
				Severity: SeverityError,
			})
		}
	}
	return errs
}

// validatePayloads checks that each node carries the payload its kind
// implies and that the payload is usable.
func validatePayloads(g *SceneGraph) []ValidationError {
	var errs []ValidationError
	bad := func(n *Node, format string, args ...any) {
		errs = append(errs, ValidationError{
			NodeID:   n.ID,
			Message:  fmt.Sprintf(format, args...),
			Severity: SeverityError,
		})
	}

	for _, id := range g.Order {
		n := g.Nodes[id]
		switch n.Kind {
		case NodeDraw:
			d, ok := n.Data.(DrawData)
			if !ok {
				bad(n, "draw node carries %T", n.Data)
				continue
			}
			if d.Mesh == "" {
				bad(n, "draw node has no mesh name")
			}
			if len(n.Children) > 0 {
				bad(n, "draw node has %d children", len(n.Children))
			}
		case NodeTransform:
			if _, ok := n.Data.(TransformData); !ok {
				bad(n, "transform node carries %T", n.Data)
				continue
			}
			if len(n.Children) == 0 {
				errs = append(errs, ValidationError{
					NodeID:   n.ID,
					Message:  "transform node places nothing",
					Severity: SeverityWarning,
				})
			}
		case NodeGroup:
			if _, ok := n.Data.(GroupData); !ok {
				bad(n, "group node carries %T", n.Data)
			}
		default:
			bad(n, "unknown node kind %d", int(n.Kind))
		}
	}
	return errs
}
