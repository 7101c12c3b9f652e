package idraw

import (
	"github.com/spaghettifunk/idraw/engine/renderer/metadata"
)

func boolToU16(v bool) uint16 {
	if v {
		return 1
	}
	return 0
}

// setPipelineState flushes and binds the pipeline of next when it differs
// from the cached state.
func (c *Context) setPipelineState(next metadata.PipelineStateAttr) {
	next = next.Normalized()
	if next == c.cache.pipeline {
		return
	}
	c.Flush()
	c.cache.pipeline = next
	c.bindPipeline()
}

func (c *Context) SetDepthEnabled(enabled bool) {
	s := c.cache.pipeline
	s.DepthEnabled = boolToU16(enabled)
	c.setPipelineState(s)
}

func (c *Context) SetStencilEnabled(enabled bool) {
	s := c.cache.pipeline
	s.StencilEnabled = boolToU16(enabled)
	c.setPipelineState(s)
}

func (c *Context) SetBlendEnabled(enabled bool) {
	s := c.cache.pipeline
	s.BlendEnabled = boolToU16(enabled)
	c.setPipelineState(s)
}

func (c *Context) SetFaceCullEnabled(enabled bool) {
	s := c.cache.pipeline
	s.FaceCullEnabled = boolToU16(enabled)
	c.setPipelineState(s)
}

// SetTexture changes the texture sampled by the next draws. An invalid
// handle selects the default white texture.
func (c *Context) SetTexture(t metadata.TextureHandle) {
	t = c.static.Texture(t)
	if t == c.cache.texture {
		return
	}
	c.Flush()
	c.cache.texture = t
	c.bindPipeline()
}

func (c *Context) Texture() metadata.TextureHandle {
	return c.cache.texture
}

// Viewport records a viewport change after the pending vertices.
func (c *Context) Viewport(x, y, width, height int32) {
	c.Flush()
	c.commands.SetViewport(metadata.Rect{X: x, Y: y, Width: width, Height: height})
}

// Scissor limits the next draws to a rectangle. A zero size disables it.
func (c *Context) Scissor(x, y, width, height int32) {
	c.Flush()
	c.commands.SetScissor(metadata.Rect{X: x, Y: y, Width: width, Height: height})
}

func (c *Context) Clear(desc metadata.ClearDesc) {
	c.Flush()
	c.commands.Clear(desc)
}
