package headless

import (
	"encoding/binary"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/spaghettifunk/idraw/engine/core"
	"github.com/spaghettifunk/idraw/engine/renderer"
	"github.com/spaghettifunk/idraw/engine/renderer/metadata"
)

// State is the bound state between commands. It starts from the zero
// baseline after every submission.
type State struct {
	Pipeline     metadata.PipelineHandle
	Shader       metadata.ShaderHandle
	VertexBuffer metadata.VertexBufferHandle
	IndexBuffer  metadata.IndexBufferHandle
	// Texture bound to each sampler slot.
	Textures map[uint32]metadata.TextureHandle
	// Last value bound to each uniform, keyed by uniform id.
	Uniforms map[uint32]renderer.BindUniformCmd
	Viewport metadata.Rect
	Scissor  metadata.Rect
}

func newState() State {
	return State{
		Textures: make(map[uint32]metadata.TextureHandle),
		Uniforms: make(map[uint32]renderer.BindUniformCmd),
	}
}

func (b *Backend) Execute(cmd renderer.Command) {
	b.log = append(b.log, cmd.Opcode())
	switch c := cmd.(type) {
	case renderer.BindPipelineCmd:
		p, ok := b.pipelines.Get(c.Pipeline.ID)
		if !ok {
			core.LogWarn("bind of unknown pipeline %s ignored", c.Pipeline)
			return
		}
		b.state.Pipeline = c.Pipeline
		b.state.Shader = p.Shader
	case renderer.BindShaderCmd:
		if !b.shaders.Has(c.Shader.ID) {
			core.LogWarn("bind of unknown shader %s ignored", c.Shader)
			return
		}
		b.state.Shader = c.Shader
	case renderer.BindTextureCmd:
		if !b.textures.Has(c.Texture.ID) {
			core.LogWarn("bind of unknown texture %s ignored", c.Texture)
			return
		}
		b.state.Textures[c.Slot] = c.Texture
		b.state.Uniforms[c.Uniform.ID] = renderer.BindUniformCmd{
			Uniform: c.Uniform,
			Type:    metadata.ShaderUniformTypeSampler,
			Data:    binary.LittleEndian.AppendUint32(nil, c.Slot),
		}
	case renderer.BindUniformCmd:
		c.Data = append([]byte(nil), c.Data...)
		b.state.Uniforms[c.Uniform.ID] = c
	case renderer.BindVertexBufferCmd:
		b.state.VertexBuffer = c.Buffer
	case renderer.BindIndexBufferCmd:
		b.state.IndexBuffer = c.Buffer
	case renderer.UpdateVertexDataCmd:
		buf, ok := b.vertexBuffers.Get(c.Buffer.ID)
		if !ok {
			core.LogWarn("update of unknown vertex buffer %s ignored", c.Buffer)
			return
		}
		buf.Data = append(buf.Data[:0], c.Data...)
	case renderer.UpdateIndexDataCmd:
		buf, ok := b.indexBuffers.Get(c.Buffer.ID)
		if !ok {
			core.LogWarn("update of unknown index buffer %s ignored", c.Buffer)
			return
		}
		buf.Data = append(buf.Data[:0], c.Data...)
	case renderer.UpdateTextureDataCmd:
		if err := b.TextureUpdate(c.Texture, c.Width, c.Height, c.Data); err != nil {
			core.LogWarn("%s", err)
		}
	case renderer.DrawCmd:
		b.draw(c.Start, c.Count, nil)
	case renderer.DrawIndexedCmd:
		b.drawIndexed(c.Count, c.Offset)
	case renderer.SetViewportCmd:
		b.state.Viewport = c.Rect
		b.viewports = append(b.viewports, c.Rect)
	case renderer.SetScissorCmd:
		b.state.Scissor = c.Rect
	case renderer.ClearCmd:
		b.clears = append(b.clears, c.ClearDesc)
	default:
		renderer.UnknownCommand(cmd)
	}
}

func (b *Backend) RestoreDefaults() {
	b.state = newState()
	b.submissions++
}

func (b *Backend) draw(start, count uint32, indices []uint32) {
	p, ok := b.pipelines.Get(b.state.Pipeline.ID)
	if !ok {
		core.LogWarn("draw without a bound pipeline ignored")
		return
	}
	buf, ok := b.vertexBuffers.Get(b.state.VertexBuffer.ID)
	if !ok {
		core.LogWarn("draw without a bound vertex buffer ignored")
		return
	}
	stride := p.Layout.Stride()
	call := DrawCall{
		Pipeline: b.state.Pipeline,
		State:    p.State,
		Layout:   p.Layout,
		Stride:   stride,
		Texture:  b.state.Textures[0],
		Start:    start,
		Count:    count,
		Indices:  indices,
		MVP:      mgl32.Ident4(),
	}
	for _, u := range b.state.Uniforms {
		if desc, ok := b.uniforms.Get(u.Uniform.ID); ok && desc.Name == metadata.UNIFORM_NAME_MVP {
			call.MVP = u.Mat4()
			call.HasMVP = true
		}
	}
	if indices == nil {
		end := int((start + count) * stride)
		if end > len(buf.Data) {
			core.LogWarn("draw of %d vertices overruns vertex buffer (%d bytes)", count, len(buf.Data))
			end = len(buf.Data)
		}
		begin := min(int(start*stride), end)
		call.Vertices = append([]byte(nil), buf.Data[begin:end]...)
	} else {
		call.Vertices = append([]byte(nil), buf.Data...)
	}
	b.calls = append(b.calls, call)
}

func (b *Backend) drawIndexed(count, offset uint32) {
	buf, ok := b.indexBuffers.Get(b.state.IndexBuffer.ID)
	if !ok {
		core.LogWarn("indexed draw without a bound index buffer ignored")
		return
	}
	total := uint32(len(buf.Data) / 4)
	if offset+count > total {
		core.LogWarn("indexed draw of %d indices at %d overruns index buffer (%d)", count, offset, total)
		return
	}
	indices := make([]uint32, count)
	for i := range indices {
		indices[i] = binary.LittleEndian.Uint32(buf.Data[(offset+uint32(i))*4:])
	}
	b.draw(0, count, indices)
}

// Calls returns every draw recorded since the last Reset.
func (b *Backend) Calls() []DrawCall {
	return b.calls
}

func (b *Backend) Viewports() []metadata.Rect {
	return b.viewports
}

func (b *Backend) Clears() []metadata.ClearDesc {
	return b.clears
}

// Executed lists the opcodes of every executed command in order.
func (b *Backend) Executed() []renderer.Opcode {
	return b.log
}

func (b *Backend) Submissions() int {
	return b.submissions
}

// CurrentState is the bound state right now.
func (b *Backend) CurrentState() State {
	return b.state
}

// Reset forgets the recorded draws. Resources are kept.
func (b *Backend) Reset() {
	b.calls = nil
	b.viewports = nil
	b.clears = nil
	b.log = nil
}
