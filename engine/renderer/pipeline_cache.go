package renderer

import (
	"fmt"

	"github.com/spaghettifunk/idraw/engine/core"
	"github.com/spaghettifunk/idraw/engine/renderer/metadata"
)

// PipelineCache maps each of the pipeline state combinations to a pipeline
// built up front, so a state change during recording is a map lookup.
type PipelineCache struct {
	pipelines map[metadata.PipelineStateAttr]metadata.PipelineHandle
}

// NewPipelineCache builds one pipeline per state combination, all sharing the
// given shader and vertex layout.
func NewPipelineCache(backend RendererBackend, shader metadata.ShaderHandle, layout metadata.VertexLayout) (*PipelineCache, error) {
	c := &PipelineCache{
		pipelines: make(map[metadata.PipelineStateAttr]metadata.PipelineHandle, metadata.PipelineStateCombinations),
	}
	for k := uint16(0); k < metadata.PipelineStateCombinations; k++ {
		state := metadata.PipelineStateFromKey(k)
		p, err := backend.PipelineCreate(&metadata.PipelineDesc{
			Name:     fmt.Sprintf("Pipeline.Builtin.Immediate.%02d", k),
			Shader:   shader,
			Layout:   layout,
			State:    state,
			CullMode: metadata.FaceCullModeBack,
		})
		if err != nil {
			c.Destroy(backend)
			return nil, fmt.Errorf("failed to create pipeline for state [%s]: %w", state, err)
		}
		c.pipelines[state] = p
	}
	core.LogDebug("pipeline cache built with %d pipelines", len(c.pipelines))
	return c, nil
}

// Get returns the pipeline for state. An out of range primitive type falls
// back to triangles; any other unknown state aborts.
func (c *PipelineCache) Get(state metadata.PipelineStateAttr) metadata.PipelineHandle {
	state.PrimType = uint16(state.Primitive())
	p, ok := c.pipelines[state]
	if !ok {
		core.Fatal(core.ErrPipelineNotFound, "state [%s]", state)
	}
	return p
}

func (c *PipelineCache) Len() int {
	return len(c.pipelines)
}

// Each visits the cached pipelines in state key order.
func (c *PipelineCache) Each(fn func(metadata.PipelineStateAttr, metadata.PipelineHandle)) {
	for k := uint16(0); k < metadata.PipelineStateCombinations; k++ {
		s := metadata.PipelineStateFromKey(k)
		if p, ok := c.pipelines[s]; ok {
			fn(s, p)
		}
	}
}

func (c *PipelineCache) Destroy(backend RendererBackend) {
	for s, p := range c.pipelines {
		backend.PipelineDestroy(p)
		delete(c.pipelines, s)
	}
}
