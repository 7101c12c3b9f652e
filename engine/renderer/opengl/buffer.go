package opengl

import (
	"fmt"
	"slices"

	"github.com/go-gl/gl/v3.3-core/gl"

	"github.com/spaghettifunk/idraw/engine/core"
	"github.com/spaghettifunk/idraw/engine/renderer/metadata"
)

func glUsage(u metadata.BufferUsage) uint32 {
	switch u {
	case metadata.BufferUsageDynamic:
		return gl.DYNAMIC_DRAW
	case metadata.BufferUsageStream:
		return gl.STREAM_DRAW
	}
	return gl.STATIC_DRAW
}

func (b *Backend) VertexBufferCreate(desc *metadata.VertexBufferDesc) (metadata.VertexBufferHandle, error) {
	vb := &vertexBuffer{usage: glUsage(desc.Usage), size: len(desc.Data)}
	gl.GenVertexArrays(1, &vb.vao)
	gl.GenBuffers(1, &vb.vbo)
	gl.BindVertexArray(vb.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, vb.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(desc.Data), pixelPointer(desc.Data), vb.usage)
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return metadata.VertexBufferHandle{ID: b.vertexBuffers.Insert(vb)}, nil
}

func (b *Backend) VertexBufferDestroy(h metadata.VertexBufferHandle) {
	vb, ok := b.vertexBuffers.Get(h.ID)
	if !ok {
		return
	}
	if b.bound.vertex == vb {
		b.bound.vertex = nil
	}
	gl.DeleteBuffers(1, &vb.vbo)
	gl.DeleteVertexArrays(1, &vb.vao)
	_ = b.vertexBuffers.Remove(h.ID)
}

func (b *Backend) IndexBufferCreate(desc *metadata.IndexBufferDesc) (metadata.IndexBufferHandle, error) {
	if len(desc.Data)%4 != 0 {
		return metadata.IndexBufferHandle{}, fmt.Errorf("index buffer '%s' size %d is not a multiple of 4", desc.Name, len(desc.Data))
	}
	ib := &indexBuffer{usage: glUsage(desc.Usage), size: len(desc.Data)}
	gl.GenBuffers(1, &ib.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, ib.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(desc.Data), pixelPointer(desc.Data), ib.usage)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0)
	return metadata.IndexBufferHandle{ID: b.indexBuffers.Insert(ib)}, nil
}

func (b *Backend) IndexBufferDestroy(h metadata.IndexBufferHandle) {
	ib, ok := b.indexBuffers.Get(h.ID)
	if !ok {
		return
	}
	if b.bound.index == ib {
		b.bound.index = nil
	}
	gl.DeleteBuffers(1, &ib.ebo)
	_ = b.indexBuffers.Remove(h.ID)
}

// updateVertexData orphans the buffer storage when the size changes so a
// frame in flight keeps its copy.
func (b *Backend) updateVertexData(h metadata.VertexBufferHandle, data []byte) {
	vb, ok := b.vertexBuffers.Get(h.ID)
	if !ok {
		core.LogWarn("update of unknown vertex buffer %s ignored", h)
		return
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, vb.vbo)
	if len(data) > vb.size || vb.usage == gl.STREAM_DRAW {
		gl.BufferData(gl.ARRAY_BUFFER, len(data), pixelPointer(data), vb.usage)
		vb.size = len(data)
	} else if len(data) > 0 {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(data), pixelPointer(data))
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

func (b *Backend) updateIndexData(h metadata.IndexBufferHandle, data []byte) {
	ib, ok := b.indexBuffers.Get(h.ID)
	if !ok {
		core.LogWarn("update of unknown index buffer %s ignored", h)
		return
	}
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, ib.ebo)
	if len(data) > ib.size {
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(data), pixelPointer(data), ib.usage)
		ib.size = len(data)
	} else if len(data) > 0 {
		gl.BufferSubData(gl.ELEMENT_ARRAY_BUFFER, 0, len(data), pixelPointer(data))
	}
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0)
}

// configureLayout points the VAO attributes at the interleaved layout.
func (vb *vertexBuffer) configureLayout(layout metadata.VertexLayout) {
	if slices.Equal(vb.layout, layout) {
		return
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, vb.vbo)
	stride := int32(layout.Stride())
	for i, attr := range layout {
		loc := uint32(i)
		gl.EnableVertexAttribArray(loc)
		offset := gl.PtrOffset(int(layout.Offset(i)))
		if attr == metadata.VertexAttributeColor {
			gl.VertexAttribPointer(loc, attr.Components(), gl.UNSIGNED_BYTE, true, stride, offset)
		} else {
			gl.VertexAttribPointer(loc, attr.Components(), gl.FLOAT, false, stride, offset)
		}
	}
	for i := len(layout); i < len(vb.layout); i++ {
		gl.DisableVertexAttribArray(uint32(i))
	}
	vb.layout = append(vb.layout[:0], layout...)
}
