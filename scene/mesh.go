package scene

import "lighting-sandbox/core"

// Mesh holds CPU-side vertex and index data. The OpenGL backend uploads it
// once at startup.
type Mesh struct {
	Name     string
	Vertices []core.Vertex
	Indices  []uint32
}

// NewMesh builds a mesh and fills in tangents for normal mapping.
func NewMesh(name string, vertices []core.Vertex, indices []uint32) *Mesh {
	m := &Mesh{Name: name, Vertices: vertices, Indices: indices}
	ComputeTangents(m)
	return m
}

// TriangleCount is the number of triangles the mesh draws.
func (m *Mesh) TriangleCount() int {
	if len(m.Indices) > 0 {
		return len(m.Indices) / 3
	}
	return len(m.Vertices) / 3
}
