package engine

import (
	"fmt"
	"strings"

	"github.com/chazu/facet/pkg/graph"
	zygo "github.com/glycerine/zygomys/zygo"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource rewrites scene source before zygomys sees it:
//
//  1. :keyword becomes the string literal "__kw_keyword", so keywords need
//     no global symbols and cannot clash with scene variables.
//  2. kebab-case identifiers become snake_case (light-marker -> light_marker),
//     since zygomys reads a bare hyphen as subtraction.
//  3. ; line comments become // comments, the only form zygomys accepts.
//
// String literals pass through untouched.
func preprocessSource(source string) string {
	out := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		switch c := b[i]; {
		case c == '"':
			j := i + 1
			for j < len(b) && b[j] != '"' {
				if b[j] == '\\' && j+1 < len(b) {
					j++
				}
				j++
			}
			if j < len(b) {
				j++
			}
			out = append(out, b[i:j]...)
			i = j

		case c == '`':
			j := i + 1
			for j < len(b) && b[j] != '`' {
				j++
			}
			if j < len(b) {
				j++
			}
			out = append(out, b[i:j]...)
			i = j

		case c == ';':
			out = append(out, '/', '/')
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				out = append(out, b[i])
				i++
			}

		case c == ':' && i+1 < len(b) && b[i+1] == '=':
			out = append(out, ':', '=')
			i += 2

		case c == ':' && i+1 < len(b) && isLetter(b[i+1]):
			j := i + 1
			for j < len(b) && isKWChar(b[j]) {
				j++
			}
			out = append(out, '"')
			out = append(out, kwPrefix...)
			out = append(out, b[i+1:j]...)
			out = append(out, '"')
			i = j

		case c == '-' && i > 0 && i+1 < len(b) && isIdentChar(b[i-1]) && isLetter(b[i+1]):
			out = append(out, '_')
			i++

		default:
			out = append(out, c)
			i++
		}
	}
	return string(out)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpNodeRef wraps a graph.NodeID so it can be passed between builtins.
type sexpNodeRef struct {
	id   graph.NodeID
	name string // human-readable name for error messages
}

func (n *sexpNodeRef) SexpString(ps *zygo.PrintState) string {
	if n.name != "" {
		return fmt.Sprintf("(noderef %q)", n.name)
	}
	return fmt.Sprintf("(noderef %s)", n.id.Short())
}
func (n *sexpNodeRef) Type() *zygo.RegisteredType { return nil }

// sexpVec3 wraps a graph.Vec3.
type sexpVec3 struct {
	vec graph.Vec3
}

func (v *sexpVec3) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec3 %g %g %g)", v.vec.X, v.vec.Y, v.vec.Z)
}
func (v *sexpVec3) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok || !strings.HasPrefix(str.S, kwPrefix) {
		return "", false
	}
	return str.S[len(kwPrefix):], true
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	for i := 0; i < len(args); i++ {
		name, ok := isKW(args[i])
		if !ok {
			result.positional = append(result.positional, args[i])
			continue
		}
		if i+1 < len(args) {
			result.kw[name] = args[i+1]
			i++
		} else {
			// Keyword at end with no value: treat as flag with nil.
			result.kw[name] = zygo.SexpNull
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string from a Sexp. A keyword value is accepted as its
// bare name, so :material :table and :material "table" mean the same.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return strings.TrimPrefix(str.S, kwPrefix), nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toVec3 extracts a Vec3 from a sexpVec3. A bare number n means (n n n).
func toVec3(s zygo.Sexp) (graph.Vec3, error) {
	if v, ok := s.(*sexpVec3); ok {
		return v.vec, nil
	}
	if f, err := toFloat64(s); err == nil {
		return graph.Vec3{X: f, Y: f, Z: f}, nil
	}
	return graph.Vec3{}, fmt.Errorf("expected vec3, got %T (%s)", s, s.SexpString(nil))
}

// sexpListToSlice converts a SexpPair (Lisp list) or SexpArray to a Go slice.
func sexpListToSlice(s zygo.Sexp) ([]zygo.Sexp, error) {
	switch v := s.(type) {
	case *zygo.SexpPair:
		return zygo.ListToArray(v)
	case *zygo.SexpArray:
		return v.Val, nil
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("expected list or array, got %T", s)
}

// collectRefs flattens node references, lists and arrays of node references
// into IDs, preserving order.
func collectRefs(args []zygo.Sexp) ([]graph.NodeID, error) {
	var ids []graph.NodeID
	for i, a := range args {
		if ref, ok := a.(*sexpNodeRef); ok {
			ids = append(ids, ref.id)
			continue
		}
		items, err := sexpListToSlice(a)
		if err != nil {
			return nil, fmt.Errorf("argument %d: expected node reference, got %T (%s)", i+1, a, a.SexpString(nil))
		}
		nested, err := collectRefs(items)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i+1, err)
		}
		ids = append(ids, nested...)
	}
	return ids, nil
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the scene DSL into a zygomys environment. The
// builtins populate g as the script runs. meshes, when non-nil, lists the
// mesh names draw accepts.
//
// Source code must be preprocessed with preprocessSource() before evaluation so
// that :keyword tokens are converted to recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, g *graph.SceneGraph, meshes map[string]bool) {

	// -----------------------------------------------------------------------
	// (vec3 1 2 3) or (vec3 2) for a uniform vector
	// -----------------------------------------------------------------------
	env.AddFunction("vec3", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 && len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("vec3 requires 1 or 3 arguments, got %d", len(args))
		}
		var xyz [3]float64
		for i := range xyz {
			f, err := toFloat64(args[i%len(args)])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("vec3: %c: %w", "xyz"[i], err)
			}
			xyz[i] = f
		}
		return &sexpVec3{vec: graph.Vec3{X: xyz[0], Y: xyz[1], Z: xyz[2]}}, nil
	})

	// -----------------------------------------------------------------------
	// (draw "cube" :material "table" :name "table-top")
	// -----------------------------------------------------------------------
	env.AddFunction("draw", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) != 1 {
			return zygo.SexpNull, fmt.Errorf("draw requires exactly one mesh name")
		}
		mesh, err := toString(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("draw: mesh: %w", err)
		}
		if meshes != nil && !meshes[mesh] {
			return zygo.SexpNull, fmt.Errorf("draw: unknown mesh %q", mesh)
		}

		dd := graph.DrawData{Mesh: mesh}
		if v, ok := pa.kw["material"]; ok {
			m, err := toString(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("draw: material: %w", err)
			}
			dd.Material = m
		}
		var nodeName string
		if v, ok := pa.kw["name"]; ok {
			if nodeName, err = toString(v); err != nil {
				return zygo.SexpNull, fmt.Errorf("draw: name: %w", err)
			}
		}

		node := &graph.Node{
			ID:   graph.NewNodeID(),
			Kind: graph.NodeDraw,
			Name: nodeName,
			Data: dd,
		}
		g.AddNode(node)

		return &sexpNodeRef{id: node.ID, name: nodeName}, nil
	})

	// -----------------------------------------------------------------------
	// (place child... :translate (vec3 ..) :rotate (vec3 ..) :scale (vec3 ..))
	// :at is accepted as an alias for :translate.
	// -----------------------------------------------------------------------
	env.AddFunction("place", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) < 1 {
			return zygo.SexpNull, fmt.Errorf("place requires a node reference as first argument")
		}
		children, err := collectRefs(pa.positional)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("place: %w", err)
		}

		td := graph.TransformData{}
		for _, field := range []struct {
			keys []string
			dst  **graph.Vec3
		}{
			{[]string{"translate", "at"}, &td.Translation},
			{[]string{"rotate"}, &td.Rotation},
			{[]string{"scale"}, &td.Scale},
		} {
			for _, key := range field.keys {
				v, ok := pa.kw[key]
				if !ok {
					continue
				}
				vec, err := toVec3(v)
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("place: %s: %w", key, err)
				}
				*field.dst = &vec
			}
		}

		node := &graph.Node{
			ID:       graph.NewNodeID(),
			Kind:     graph.NodeTransform,
			Children: children,
			Data:     td,
		}
		g.AddNode(node)

		return &sexpNodeRef{id: node.ID}, nil
	})

	// -----------------------------------------------------------------------
	// (assembly "name" child... :description "...")
	// -----------------------------------------------------------------------
	env.AddFunction("assembly", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) < 1 {
			return zygo.SexpNull, fmt.Errorf("assembly requires a name argument")
		}
		asmName, err := toString(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("assembly: name: %w", err)
		}
		children, err := collectRefs(pa.positional[1:])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("assembly: %w", err)
		}

		gd := graph.GroupData{}
		if v, ok := pa.kw["description"]; ok {
			if gd.Description, err = toString(v); err != nil {
				return zygo.SexpNull, fmt.Errorf("assembly: description: %w", err)
			}
		}

		node := &graph.Node{
			ID:       graph.NewNodeID(),
			Kind:     graph.NodeGroup,
			Name:     asmName,
			Children: children,
			Data:     gd,
		}
		g.AddNode(node)

		return &sexpNodeRef{id: node.ID, name: asmName}, nil
	})

	// -----------------------------------------------------------------------
	// (node "name") looks up an earlier named node.
	// -----------------------------------------------------------------------
	env.AddFunction("node", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("node requires a name argument")
		}
		nodeName, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("node: name: %w", err)
		}
		n := g.Lookup(nodeName)
		if n == nil {
			return zygo.SexpNull, fmt.Errorf("node: no node named %q", nodeName)
		}
		return &sexpNodeRef{id: n.ID, name: nodeName}, nil
	})
}
