package opengl

import (
	"unsafe"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"lighting-sandbox/core"
	"lighting-sandbox/scene"
)

// GPUMesh is a mesh uploaded into a VAO with interleaved core.Vertex data.
type GPUMesh struct {
	Name       string
	VAO        uint32
	VBO        uint32
	EBO        uint32
	IndexCount int32
	HasIndices bool
}

// UploadMesh copies mesh vertices and indices into new GL buffers.
// Returns nil for an empty mesh.
func UploadMesh(mesh *scene.Mesh) *GPUMesh {
	if mesh == nil || len(mesh.Vertices) == 0 {
		return nil
	}

	stride := int32(unsafe.Sizeof(core.Vertex{}))
	gpu := &GPUMesh{
		Name:       mesh.Name,
		IndexCount: int32(len(mesh.Indices)),
		HasIndices: len(mesh.Indices) > 0,
	}
	if !gpu.HasIndices {
		gpu.IndexCount = int32(len(mesh.Vertices))
	}

	gl.GenVertexArrays(1, &gpu.VAO)
	gl.GenBuffers(1, &gpu.VBO)
	gl.BindVertexArray(gpu.VAO)

	gl.BindBuffer(gl.ARRAY_BUFFER, gpu.VBO)
	gl.BufferData(gl.ARRAY_BUFFER,
		len(mesh.Vertices)*int(stride),
		gl.Ptr(mesh.Vertices),
		gl.STATIC_DRAW)

	var v core.Vertex
	attribs := []struct {
		size   int32
		offset uintptr
	}{
		{3, unsafe.Offsetof(v.Position)},
		{3, unsafe.Offsetof(v.Normal)},
		{2, unsafe.Offsetof(v.UV)},
		{3, unsafe.Offsetof(v.Tangent)},
		{3, unsafe.Offsetof(v.Bitangent)},
	}
	for i, a := range attribs {
		gl.EnableVertexAttribArray(uint32(i))
		gl.VertexAttribPointerWithOffset(uint32(i), a.size, gl.FLOAT, false, stride, a.offset)
	}

	if gpu.HasIndices {
		gl.GenBuffers(1, &gpu.EBO)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, gpu.EBO)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER,
			len(mesh.Indices)*4,
			gl.Ptr(mesh.Indices),
			gl.STATIC_DRAW)
	}

	gl.BindVertexArray(0)
	return gpu
}

// Draw issues one draw call for the whole mesh.
func (m *GPUMesh) Draw() {
	gl.BindVertexArray(m.VAO)
	if m.HasIndices {
		gl.DrawElements(gl.TRIANGLES, m.IndexCount, gl.UNSIGNED_INT, nil)
	} else {
		gl.DrawArrays(gl.TRIANGLES, 0, m.IndexCount)
	}
	gl.BindVertexArray(0)
}

// Delete frees the buffers and VAO.
func (m *GPUMesh) Delete() {
	if m.EBO != 0 {
		gl.DeleteBuffers(1, &m.EBO)
		m.EBO = 0
	}
	if m.VBO != 0 {
		gl.DeleteBuffers(1, &m.VBO)
		m.VBO = 0
	}
	if m.VAO != 0 {
		gl.DeleteVertexArrays(1, &m.VAO)
		m.VAO = 0
	}
}

// FullscreenTriangle draws a single triangle covering the viewport. Vertex
// positions come from gl_VertexID, so the VAO has no buffers.
type FullscreenTriangle struct {
	vao uint32
}

func NewFullscreenTriangle() *FullscreenTriangle {
	ft := &FullscreenTriangle{}
	gl.GenVertexArrays(1, &ft.vao)
	return ft
}

func (ft *FullscreenTriangle) Draw() {
	gl.BindVertexArray(ft.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, 3)
	gl.BindVertexArray(0)
}

func (ft *FullscreenTriangle) Delete() {
	if ft.vao != 0 {
		gl.DeleteVertexArrays(1, &ft.vao)
		ft.vao = 0
	}
}
