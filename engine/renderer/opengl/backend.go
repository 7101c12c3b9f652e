// Package opengl implements the renderer backend on an OpenGL 3.3 core
// context. The context must be current on the calling goroutine.
package opengl

import (
	"fmt"

	"github.com/go-gl/gl/v3.3-core/gl"

	"github.com/spaghettifunk/idraw/engine/containers"
	"github.com/spaghettifunk/idraw/engine/core"
	"github.com/spaghettifunk/idraw/engine/renderer/metadata"
)

type texture struct {
	id   uint32
	desc metadata.TextureDesc
}

type shader struct {
	name    string
	program uint32
	// Uniform locations by name, -1 when the program does not use it.
	locations map[string]int32
}

type vertexBuffer struct {
	vao   uint32
	vbo   uint32
	size  int
	usage uint32
	// Layout the VAO attribute pointers currently describe.
	layout metadata.VertexLayout
}

type indexBuffer struct {
	ebo   uint32
	size  int
	usage uint32
}

type pipeline struct {
	desc metadata.PipelineDesc
}

type Backend struct {
	initialized bool
	version     string

	textures      *containers.SlotTable[*texture]
	shaders       *containers.SlotTable[*shader]
	vertexBuffers *containers.SlotTable[*vertexBuffer]
	indexBuffers  *containers.SlotTable[*indexBuffer]
	uniforms      *containers.SlotTable[metadata.UniformDesc]
	pipelines     *containers.SlotTable[*pipeline]

	bound boundState
}

type boundState struct {
	pipeline    *pipeline
	shader      *shader
	vertex      *vertexBuffer
	index       *indexBuffer
	scissorRect metadata.Rect
}

func New() *Backend {
	return &Backend{
		textures:      containers.NewSlotTable[*texture](64),
		shaders:       containers.NewSlotTable[*shader](8),
		vertexBuffers: containers.NewSlotTable[*vertexBuffer](8),
		indexBuffers:  containers.NewSlotTable[*indexBuffer](8),
		uniforms:      containers.NewSlotTable[metadata.UniformDesc](16),
		pipelines:     containers.NewSlotTable[*pipeline](metadata.PipelineStateCombinations),
	}
}

func (b *Backend) Name() string {
	return "opengl"
}

func (b *Backend) Initialize() error {
	if err := gl.Init(); err != nil {
		return fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	b.version = gl.GoStr(gl.GetString(gl.VERSION))
	core.LogInfo("OpenGL version %s, renderer %s", b.version, gl.GoStr(gl.GetString(gl.RENDERER)))
	b.initialized = true
	b.RestoreDefaults()
	return nil
}

func (b *Backend) Shutdown() error {
	if !b.initialized {
		return nil
	}
	for id := range b.pipelines.All() {
		b.PipelineDestroy(metadata.PipelineHandle{ID: id})
	}
	for id := range b.vertexBuffers.All() {
		b.VertexBufferDestroy(metadata.VertexBufferHandle{ID: id})
	}
	for id := range b.indexBuffers.All() {
		b.IndexBufferDestroy(metadata.IndexBufferHandle{ID: id})
	}
	for id := range b.shaders.All() {
		b.ShaderDestroy(metadata.ShaderHandle{ID: id})
	}
	for id := range b.textures.All() {
		b.TextureDestroy(metadata.TextureHandle{ID: id})
	}
	b.initialized = false
	return nil
}

// UniformCreate returns the existing handle when a uniform with the same
// name was already declared. Locations are resolved per program on bind.
func (b *Backend) UniformCreate(desc *metadata.UniformDesc) (metadata.UniformHandle, error) {
	for id, u := range b.uniforms.All() {
		if u.Name == desc.Name {
			if u.Type != desc.Type {
				return metadata.UniformHandle{}, fmt.Errorf("uniform '%s' redeclared as %s, was %s", desc.Name, desc.Type, u.Type)
			}
			return metadata.UniformHandle{ID: id}, nil
		}
	}
	return metadata.UniformHandle{ID: b.uniforms.Insert(*desc)}, nil
}

func (b *Backend) PipelineCreate(desc *metadata.PipelineDesc) (metadata.PipelineHandle, error) {
	if !b.shaders.Has(desc.Shader.ID) {
		return metadata.PipelineHandle{}, fmt.Errorf("pipeline '%s' shader %s: %w", desc.Name, desc.Shader, core.ErrInvalidHandle)
	}
	p := &pipeline{desc: *desc}
	p.desc.Layout = append(metadata.VertexLayout(nil), desc.Layout...)
	return metadata.PipelineHandle{ID: b.pipelines.Insert(p)}, nil
}

func (b *Backend) PipelineDestroy(h metadata.PipelineHandle) {
	if p, ok := b.pipelines.Get(h.ID); ok && b.bound.pipeline == p {
		b.bound.pipeline = nil
	}
	_ = b.pipelines.Remove(h.ID)
}
