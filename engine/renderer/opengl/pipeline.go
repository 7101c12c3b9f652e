package opengl

import (
	"github.com/go-gl/gl/v3.3-core/gl"

	"github.com/spaghettifunk/idraw/engine/renderer/metadata"
)

func setCapability(cap uint32, enabled bool) {
	if enabled {
		gl.Enable(cap)
	} else {
		gl.Disable(cap)
	}
}

func glCullFace(m metadata.FaceCullMode) uint32 {
	switch m {
	case metadata.FaceCullModeFront:
		return gl.FRONT
	case metadata.FaceCullModeFrontAndBack:
		return gl.FRONT_AND_BACK
	}
	return gl.BACK
}

func glPrimitive(p metadata.PrimitiveType) uint32 {
	if p == metadata.PrimitiveTypeLines {
		return gl.LINES
	}
	return gl.TRIANGLES
}

// apply sets the fixed function state and program of the pipeline.
func (b *Backend) applyPipeline(p *pipeline) {
	state := p.desc.State.Normalized()
	setCapability(gl.DEPTH_TEST, state.DepthEnabled != 0)
	if state.DepthEnabled != 0 {
		gl.DepthFunc(gl.LEQUAL)
	}
	setCapability(gl.STENCIL_TEST, state.StencilEnabled != 0)
	setCapability(gl.BLEND, state.BlendEnabled != 0)
	if state.BlendEnabled != 0 {
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	}
	cull := state.FaceCullEnabled != 0 && p.desc.CullMode != metadata.FaceCullModeNone
	setCapability(gl.CULL_FACE, cull)
	if cull {
		gl.CullFace(glCullFace(p.desc.CullMode))
	}

	if s, ok := b.shaders.Get(p.desc.Shader.ID); ok {
		gl.UseProgram(s.program)
		b.bound.shader = s
	}
	b.bound.pipeline = p
}
