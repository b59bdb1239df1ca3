package glbackend

import (
	"unsafe"

	"github.com/go-gl/gl/v4.3-core/gl"
)

// Mesh is a VAO over one interleaved float32 vertex buffer and an optional
// uint32 index buffer.
type Mesh struct {
	vao, vbo, ebo uint32
	vertexCount   int32
	indexCount    int32
}

// NewMesh uploads vertices (and indices, if any) as static data. attribSizes
// lists the float count of each attribute in location order; attributes are
// tightly packed.
func NewMesh(vertices []float32, indices []uint32, attribSizes ...int32) *Mesh {
	var stride int32
	for _, n := range attribSizes {
		stride += n
	}
	m := &Mesh{}
	if stride > 0 {
		m.vertexCount = int32(len(vertices)) / stride
	}

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)

	var offset int32
	for loc, n := range attribSizes {
		gl.EnableVertexAttribArray(uint32(loc))
		gl.VertexAttribPointerWithOffset(uint32(loc), n, gl.FLOAT, false, stride*4, uintptr(offset*4))
		offset += n
	}

	if len(indices) > 0 {
		gl.GenBuffers(1, &m.ebo)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)
		m.indexCount = int32(len(indices))
	}

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return m
}

// Draw issues one draw call for the whole mesh, indexed if it has indices.
func (m *Mesh) Draw(mode uint32) { m.DrawInstanced(mode, 1) }

func (m *Mesh) DrawInstanced(mode uint32, instances int32) {
	gl.BindVertexArray(m.vao)
	if m.ebo != 0 {
		gl.DrawElementsInstanced(mode, m.indexCount, gl.UNSIGNED_INT, nil, instances)
	} else {
		gl.DrawArraysInstanced(mode, 0, m.vertexCount, instances)
	}
	gl.BindVertexArray(0)
}

func (m *Mesh) Delete() {
	if m.ebo != 0 {
		gl.DeleteBuffers(1, &m.ebo)
	}
	if m.vbo != 0 {
		gl.DeleteBuffers(1, &m.vbo)
	}
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
	}
	*m = Mesh{}
}

// StorageBuffer is a shader storage buffer bound to a fixed binding point.
type StorageBuffer struct {
	id      uint32
	binding uint32
	size    int
}

// NewStorageBuffer allocates size bytes, optionally initialized from data,
// and binds the buffer to binding.
func NewStorageBuffer(binding uint32, size int, data unsafe.Pointer, usage uint32) *StorageBuffer {
	b := &StorageBuffer{binding: binding, size: size}
	gl.GenBuffers(1, &b.id)
	gl.BindBuffer(gl.SHADER_STORAGE_BUFFER, b.id)
	gl.BufferData(gl.SHADER_STORAGE_BUFFER, size, data, usage)
	gl.BindBufferBase(gl.SHADER_STORAGE_BUFFER, binding, b.id)
	gl.BindBuffer(gl.SHADER_STORAGE_BUFFER, 0)
	return b
}

func (b *StorageBuffer) Size() int { return b.size }

func (b *StorageBuffer) BindBase() {
	gl.BindBufferBase(gl.SHADER_STORAGE_BUFFER, b.binding, b.id)
}

// Read copies the buffer contents back into dst, which must hold Size bytes.
func (b *StorageBuffer) Read(dst unsafe.Pointer) {
	gl.MemoryBarrier(gl.BUFFER_UPDATE_BARRIER_BIT)
	gl.BindBuffer(gl.SHADER_STORAGE_BUFFER, b.id)
	gl.GetBufferSubData(gl.SHADER_STORAGE_BUFFER, 0, b.size, dst)
	gl.BindBuffer(gl.SHADER_STORAGE_BUFFER, 0)
}

func (b *StorageBuffer) Delete() {
	if b.id != 0 {
		gl.DeleteBuffers(1, &b.id)
		b.id = 0
	}
}

// ImageTexture is an RGBA32F texture written by compute shaders through
// image load/store and sampled afterwards.
type ImageTexture struct {
	id            uint32
	width, height int32
}

func NewImageTexture(width, height int) *ImageTexture {
	t := &ImageTexture{width: int32(width), height: int32(height)}
	gl.GenTextures(1, &t.id)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA32F, t.width, t.height, 0, gl.RGBA, gl.FLOAT, nil)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return t
}

func (t *ImageTexture) Size() (int, int) { return int(t.width), int(t.height) }

// BindImage exposes the texture as image unit `unit` for compute access.
func (t *ImageTexture) BindImage(unit uint32) {
	gl.BindImageTexture(unit, t.id, 0, false, 0, gl.READ_WRITE, gl.RGBA32F)
}

func (t *ImageTexture) Bind(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
}

func (t *ImageTexture) Delete() {
	if t.id != 0 {
		gl.DeleteTextures(1, &t.id)
		t.id = 0
	}
}

// ImageBarrier makes compute image writes visible to later texture fetches.
func ImageBarrier() {
	gl.MemoryBarrier(gl.SHADER_IMAGE_ACCESS_BARRIER_BIT | gl.TEXTURE_FETCH_BARRIER_BIT)
}
