// Package graph defines the scene graph types for facet.
// The scene graph is an immutable DAG of draw calls, transforms and groups
// that describes where each mesh sits in the tabletop scene.
package graph
