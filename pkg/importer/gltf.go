package importer

import (
	"fmt"

	"github.com/chazu/facet/pkg/kernel"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// LoadGLTF reads every triangle primitive of a .gltf or .glb file into one
// RawMesh. Node transforms are not applied.
func LoadGLTF(path string) (*kernel.RawMesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, err
	}
	return fromDocument(doc)
}

func fromDocument(doc *gltf.Document) (*kernel.RawMesh, error) {
	raw := &kernel.RawMesh{}
	for _, mesh := range doc.Meshes {
		for _, primitive := range mesh.Primitives {
			if primitive.Mode != gltf.PrimitiveTriangles {
				continue
			}
			posIdx, ok := primitive.Attributes[gltf.POSITION]
			if !ok {
				continue
			}
			positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
			if err != nil {
				return nil, err
			}

			var indices []uint32
			if primitive.Indices != nil {
				indices, err = modeler.ReadIndices(doc, doc.Accessors[*primitive.Indices], nil)
				if err != nil {
					return nil, err
				}
			} else {
				indices = make([]uint32, len(positions))
				for k := range indices {
					indices[k] = uint32(k)
				}
			}

			offset := uint32(raw.PointCount())
			for _, p := range positions {
				raw.Points = append(raw.Points, p[0], p[1], p[2])
			}
			for i := 0; i+2 < len(indices); i += 3 {
				raw.Faces = append(raw.Faces, offset+indices[i], offset+indices[i+1], offset+indices[i+2])
			}
		}
	}

	if len(raw.Faces) == 0 {
		return nil, fmt.Errorf("no triangles found in gltf")
	}
	return raw, raw.Check()
}
