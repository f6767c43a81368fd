// Package importer reads external mesh files into kernel.RawMesh: Wavefront
// OBJ, glTF (.gltf/.glb) and binary STL. It also offers decimation of
// dense scans before they are normalized for display.
package importer

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/chazu/facet/pkg/kernel"
)

// Load reads a mesh file, choosing the format from its extension.
func Load(path string) (*kernel.RawMesh, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj":
		return LoadOBJ(path)
	case ".gltf", ".glb":
		return LoadGLTF(path)
	case ".stl":
		return LoadSTL(path)
	default:
		return nil, fmt.Errorf("importer: unsupported mesh format %q", filepath.Ext(path))
	}
}

// LoadOBJ reads a Wavefront OBJ file.
func LoadOBJ(path string) (*kernel.RawMesh, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return LoadOBJFromReader(file)
}

// LoadOBJFromBytes parses OBJ text held in memory.
func LoadOBJFromBytes(b []byte) (*kernel.RawMesh, error) {
	return LoadOBJFromReader(bytes.NewReader(b))
}

// LoadOBJFromReader parses OBJ text. Only positions and faces are kept;
// texture and normal references are ignored because normals are derived
// later. Polygons are fan-triangulated and negative (relative) indices are
// resolved against the vertices read so far.
func LoadOBJFromReader(r io.Reader) (*kernel.RawMesh, error) {
	raw := &kernel.RawMesh{}
	scanner := bufio.NewScanner(r)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if len(line) < 2 || line[0] == '#' {
			continue
		}
		fields := strings.Fields(line)

		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, fmt.Errorf("obj line %d: vertex needs 3 coordinates", lineNo)
			}
			for _, f := range fields[1:4] {
				v, err := strconv.ParseFloat(f, 32)
				if err != nil {
					return nil, fmt.Errorf("obj line %d: %w", lineNo, err)
				}
				raw.Points = append(raw.Points, float32(v))
			}
		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("obj line %d: face needs at least 3 vertices", lineNo)
			}
			count := raw.PointCount()
			idx := make([]uint32, len(fields)-1)
			for i, arg := range fields[1:] {
				v, err := fixIndex(strings.SplitN(arg, "/", 2)[0], count)
				if err != nil {
					return nil, fmt.Errorf("obj line %d: %w", lineNo, err)
				}
				idx[i] = v
			}
			for i := 1; i+1 < len(idx); i++ {
				raw.Faces = append(raw.Faces, idx[0], idx[i], idx[i+1])
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return raw, nil
}

// fixIndex converts a 1-based or negative OBJ index to a 0-based one.
func fixIndex(value string, count int) (uint32, error) {
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("bad face index %q", value)
	}
	if parsed < 0 {
		parsed += count + 1
	}
	if parsed < 1 || parsed > count {
		return 0, fmt.Errorf("face index %s out of range (%d vertices)", value, count)
	}
	return uint32(parsed - 1), nil
}
