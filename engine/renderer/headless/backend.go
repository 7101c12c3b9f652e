// Package headless implements a renderer backend without a GPU. It keeps
// resources in memory, tracks bound state and records every draw so the
// immediate draw layer can be exercised in tests and on CI machines.
package headless

import (
	"fmt"

	"github.com/spaghettifunk/idraw/engine/containers"
	"github.com/spaghettifunk/idraw/engine/core"
	"github.com/spaghettifunk/idraw/engine/renderer"
	"github.com/spaghettifunk/idraw/engine/renderer/metadata"
)

type Texture struct {
	Desc   metadata.TextureDesc
	Pixels []byte
}

type Shader struct {
	Desc metadata.ShaderDesc
	// Incremented by every successful reload.
	Generation uint32
}

type Buffer struct {
	Name  string
	Usage metadata.BufferUsage
	Data  []byte
}

type Backend struct {
	initialized bool

	textures      *containers.SlotTable[*Texture]
	shaders       *containers.SlotTable[*Shader]
	vertexBuffers *containers.SlotTable[*Buffer]
	indexBuffers  *containers.SlotTable[*Buffer]
	uniforms      *containers.SlotTable[metadata.UniformDesc]
	pipelines     *containers.SlotTable[*metadata.PipelineDesc]

	state       State
	calls       []DrawCall
	viewports   []metadata.Rect
	clears      []metadata.ClearDesc
	log         []renderer.Opcode
	submissions int
}

func New() *Backend {
	return &Backend{
		textures:      containers.NewSlotTable[*Texture](16),
		shaders:       containers.NewSlotTable[*Shader](4),
		vertexBuffers: containers.NewSlotTable[*Buffer](4),
		indexBuffers:  containers.NewSlotTable[*Buffer](4),
		uniforms:      containers.NewSlotTable[metadata.UniformDesc](8),
		pipelines:     containers.NewSlotTable[*metadata.PipelineDesc](metadata.PipelineStateCombinations),
		state:         newState(),
	}
}

func (b *Backend) Name() string {
	return "headless"
}

func (b *Backend) Initialize() error {
	b.initialized = true
	return nil
}

func (b *Backend) Shutdown() error {
	b.initialized = false
	return nil
}

func (b *Backend) TextureCreate(desc *metadata.TextureDesc) (metadata.TextureHandle, error) {
	if err := desc.Validate(); err != nil {
		return metadata.TextureHandle{}, fmt.Errorf("%w: %s", core.ErrTextureLoad, err)
	}
	t := &Texture{Desc: *desc}
	t.Desc.Data = nil
	t.Pixels = append([]byte(nil), desc.Data...)
	return metadata.TextureHandle{ID: b.textures.Insert(t)}, nil
}

func (b *Backend) TextureUpdate(texture metadata.TextureHandle, width, height uint32, pixels []byte) error {
	t, ok := b.textures.Get(texture.ID)
	if !ok {
		return fmt.Errorf("texture %s: %w", texture, core.ErrInvalidHandle)
	}
	t.Desc.Width, t.Desc.Height = width, height
	t.Pixels = append(t.Pixels[:0], pixels...)
	return nil
}

func (b *Backend) TextureDestroy(texture metadata.TextureHandle) {
	_ = b.textures.Remove(texture.ID)
}

// Texture exposes the stored texture for inspection.
func (b *Backend) Texture(texture metadata.TextureHandle) (*Texture, bool) {
	return b.textures.Get(texture.ID)
}

func validateShader(desc *metadata.ShaderDesc) error {
	for _, stage := range []metadata.ShaderStage{metadata.ShaderStageVertex, metadata.ShaderStageFragment} {
		if src, ok := desc.Source(stage); !ok || src == "" {
			return fmt.Errorf("shader '%s' has no %s stage: %w", desc.Name, stage, core.ErrShaderCompile)
		}
	}
	return nil
}

func (b *Backend) ShaderCreate(desc *metadata.ShaderDesc) (metadata.ShaderHandle, error) {
	if err := validateShader(desc); err != nil {
		return metadata.ShaderHandle{}, err
	}
	return metadata.ShaderHandle{ID: b.shaders.Insert(&Shader{Desc: *desc})}, nil
}

func (b *Backend) ShaderReload(shader metadata.ShaderHandle, desc *metadata.ShaderDesc) error {
	s, ok := b.shaders.Get(shader.ID)
	if !ok {
		return fmt.Errorf("shader %s: %w", shader, core.ErrInvalidHandle)
	}
	if err := validateShader(desc); err != nil {
		return err
	}
	s.Desc = *desc
	s.Generation++
	return nil
}

func (b *Backend) ShaderDestroy(shader metadata.ShaderHandle) {
	_ = b.shaders.Remove(shader.ID)
}

func (b *Backend) Shader(shader metadata.ShaderHandle) (*Shader, bool) {
	return b.shaders.Get(shader.ID)
}

func (b *Backend) VertexBufferCreate(desc *metadata.VertexBufferDesc) (metadata.VertexBufferHandle, error) {
	buf := &Buffer{Name: desc.Name, Usage: desc.Usage, Data: append([]byte(nil), desc.Data...)}
	return metadata.VertexBufferHandle{ID: b.vertexBuffers.Insert(buf)}, nil
}

func (b *Backend) VertexBufferDestroy(buffer metadata.VertexBufferHandle) {
	_ = b.vertexBuffers.Remove(buffer.ID)
}

func (b *Backend) IndexBufferCreate(desc *metadata.IndexBufferDesc) (metadata.IndexBufferHandle, error) {
	if len(desc.Data)%4 != 0 {
		return metadata.IndexBufferHandle{}, fmt.Errorf("index buffer '%s' size %d is not a multiple of 4", desc.Name, len(desc.Data))
	}
	buf := &Buffer{Name: desc.Name, Usage: desc.Usage, Data: append([]byte(nil), desc.Data...)}
	return metadata.IndexBufferHandle{ID: b.indexBuffers.Insert(buf)}, nil
}

func (b *Backend) IndexBufferDestroy(buffer metadata.IndexBufferHandle) {
	_ = b.indexBuffers.Remove(buffer.ID)
}

// UniformCreate returns the existing handle when a uniform with the same
// name was already declared.
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
	d := *desc
	d.Layout = append(metadata.VertexLayout(nil), desc.Layout...)
	return metadata.PipelineHandle{ID: b.pipelines.Insert(&d)}, nil
}

func (b *Backend) PipelineDestroy(pipeline metadata.PipelineHandle) {
	_ = b.pipelines.Remove(pipeline.ID)
}

func (b *Backend) Pipeline(pipeline metadata.PipelineHandle) (*metadata.PipelineDesc, bool) {
	return b.pipelines.Get(pipeline.ID)
}

// PipelineCount is the number of live pipelines.
func (b *Backend) PipelineCount() int {
	return b.pipelines.Len()
}
