package opengl

import (
	"github.com/go-gl/gl/v3.3-core/gl"

	"github.com/spaghettifunk/idraw/engine/core"
	"github.com/spaghettifunk/idraw/engine/renderer"
	"github.com/spaghettifunk/idraw/engine/renderer/metadata"
)

func (b *Backend) Execute(cmd renderer.Command) {
	switch c := cmd.(type) {
	case renderer.BindPipelineCmd:
		p, ok := b.pipelines.Get(c.Pipeline.ID)
		if !ok {
			core.LogWarn("bind of unknown pipeline %s ignored", c.Pipeline)
			return
		}
		b.applyPipeline(p)
	case renderer.BindShaderCmd:
		s, ok := b.shaders.Get(c.Shader.ID)
		if !ok {
			core.LogWarn("bind of unknown shader %s ignored", c.Shader)
			return
		}
		gl.UseProgram(s.program)
		b.bound.shader = s
	case renderer.BindTextureCmd:
		b.bindTexture(c)
	case renderer.BindUniformCmd:
		b.bindUniform(c)
	case renderer.BindVertexBufferCmd:
		vb, ok := b.vertexBuffers.Get(c.Buffer.ID)
		if !ok {
			core.LogWarn("bind of unknown vertex buffer %s ignored", c.Buffer)
			return
		}
		b.bound.vertex = vb
	case renderer.BindIndexBufferCmd:
		ib, ok := b.indexBuffers.Get(c.Buffer.ID)
		if !ok {
			core.LogWarn("bind of unknown index buffer %s ignored", c.Buffer)
			return
		}
		b.bound.index = ib
	case renderer.UpdateVertexDataCmd:
		b.updateVertexData(c.Buffer, c.Data)
	case renderer.UpdateIndexDataCmd:
		b.updateIndexData(c.Buffer, c.Data)
	case renderer.UpdateTextureDataCmd:
		if err := b.TextureUpdate(c.Texture, c.Width, c.Height, c.Data); err != nil {
			core.LogWarn("%s", err)
		}
	case renderer.DrawCmd:
		if b.prepareDraw() {
			gl.DrawArrays(glPrimitive(b.bound.pipeline.desc.State.Primitive()), int32(c.Start), int32(c.Count))
		}
	case renderer.DrawIndexedCmd:
		if b.bound.index == nil {
			core.LogWarn("indexed draw without a bound index buffer ignored")
			return
		}
		if b.prepareDraw() {
			gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.bound.index.ebo)
			gl.DrawElements(glPrimitive(b.bound.pipeline.desc.State.Primitive()), int32(c.Count), gl.UNSIGNED_INT, gl.PtrOffset(int(c.Offset)*4))
		}
	case renderer.SetViewportCmd:
		gl.Viewport(c.Rect.X, c.Rect.Y, c.Rect.Width, c.Rect.Height)
	case renderer.SetScissorCmd:
		if c.Rect.Width <= 0 || c.Rect.Height <= 0 {
			gl.Disable(gl.SCISSOR_TEST)
		} else {
			gl.Enable(gl.SCISSOR_TEST)
			gl.Scissor(c.Rect.X, c.Rect.Y, c.Rect.Width, c.Rect.Height)
		}
		b.bound.scissorRect = c.Rect
	case renderer.ClearCmd:
		b.clear(c.ClearDesc)
	default:
		renderer.UnknownCommand(cmd)
	}
}

// RestoreDefaults unbinds everything and disables the optional state so the
// next command buffer starts from a known baseline.
func (b *Backend) RestoreDefaults() {
	gl.UseProgram(0)
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.STENCIL_TEST)
	gl.Disable(gl.BLEND)
	gl.Disable(gl.CULL_FACE)
	gl.Disable(gl.SCISSOR_TEST)
	b.bound = boundState{}
}

func (b *Backend) prepareDraw() bool {
	if b.bound.pipeline == nil {
		core.LogWarn("draw without a bound pipeline ignored")
		return false
	}
	if b.bound.vertex == nil {
		core.LogWarn("draw without a bound vertex buffer ignored")
		return false
	}
	gl.BindVertexArray(b.bound.vertex.vao)
	b.bound.vertex.configureLayout(b.bound.pipeline.desc.Layout)
	return true
}

func (b *Backend) bindTexture(c renderer.BindTextureCmd) {
	t, ok := b.textures.Get(c.Texture.ID)
	if !ok {
		core.LogWarn("bind of unknown texture %s ignored", c.Texture)
		return
	}
	gl.ActiveTexture(gl.TEXTURE0 + c.Slot)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	if b.bound.shader == nil {
		return
	}
	u, ok := b.uniforms.Get(c.Uniform.ID)
	if !ok {
		return
	}
	if loc := b.bound.shader.location(u.Name); loc >= 0 {
		gl.Uniform1i(loc, int32(c.Slot))
	}
}

func (b *Backend) bindUniform(c renderer.BindUniformCmd) {
	if b.bound.shader == nil {
		core.LogWarn("uniform %s bound without a shader ignored", c.Uniform)
		return
	}
	u, ok := b.uniforms.Get(c.Uniform.ID)
	if !ok {
		core.LogWarn("bind of unknown uniform %s ignored", c.Uniform)
		return
	}
	loc := b.bound.shader.location(u.Name)
	if loc < 0 {
		return
	}
	switch c.Type {
	case metadata.ShaderUniformTypeFloat32:
		gl.Uniform1fv(loc, 1, &c.Floats()[0])
	case metadata.ShaderUniformTypeFloat32_2:
		gl.Uniform2fv(loc, 1, &c.Floats()[0])
	case metadata.ShaderUniformTypeFloat32_3:
		gl.Uniform3fv(loc, 1, &c.Floats()[0])
	case metadata.ShaderUniformTypeFloat32_4:
		gl.Uniform4fv(loc, 1, &c.Floats()[0])
	case metadata.ShaderUniformTypeInt32, metadata.ShaderUniformTypeSampler:
		gl.Uniform1i(loc, c.Int())
	case metadata.ShaderUniformTypeMatrix4:
		m := c.Mat4()
		gl.UniformMatrix4fv(loc, 1, false, &m[0])
	}
}

func (b *Backend) clear(desc metadata.ClearDesc) {
	var mask uint32
	if desc.Flags&metadata.ClearFlagColor != 0 {
		gl.ClearColor(desc.Color[0], desc.Color[1], desc.Color[2], desc.Color[3])
		mask |= gl.COLOR_BUFFER_BIT
	}
	if desc.Flags&metadata.ClearFlagDepth != 0 {
		gl.DepthMask(true)
		gl.ClearDepth(float64(desc.Depth))
		mask |= gl.DEPTH_BUFFER_BIT
	}
	if desc.Flags&metadata.ClearFlagStencil != 0 {
		gl.StencilMask(0xFF)
		gl.ClearStencil(desc.Stencil)
		mask |= gl.STENCIL_BUFFER_BIT
	}
	if mask != 0 {
		gl.Clear(mask)
	}
}
