// Package kernel defines the mesh buffers shared by every geometry source
// and the abstract solid-modeling interface. Procedural builders (package
// shape) fill Mesh directly; solid backends such as sdfx implement Kernel
// and hand back a RawMesh that shape.Normalize turns into a Mesh.
package kernel

// Solid is an opaque handle to a geometry kernel solid.
// Implementations wrap their internal representation.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
}

// Kernel is the abstract solid-modeling interface.
type Kernel interface {
	// Primitives
	Box(x, y, z float64) Solid
	Sphere(radius float64) Solid
	Cylinder(height, radius float64, segments int) Solid
	Capsule(height, radius float64) Solid // axis along Z

	// Boolean operations
	Union(a, b Solid) Solid
	SmoothUnion(a, b Solid, blend float64) Solid
	Difference(a, b Solid) Solid
	Intersection(a, b Solid) Solid

	// Transforms
	Translate(s Solid, x, y, z float64) Solid
	Rotate(s Solid, x, y, z float64) Solid // Euler angles in degrees

	// ToRaw tessellates a solid into indexed, welded geometry.
	ToRaw(s Solid) (*RawMesh, error)
}
