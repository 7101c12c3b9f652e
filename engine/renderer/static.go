package renderer

import (
	"fmt"

	"golang.org/x/image/font/basicfont"

	"github.com/spaghettifunk/idraw/engine/core"
	"github.com/spaghettifunk/idraw/engine/renderer/metadata"
)

const DEFAULT_FONT_NAME = "default"

// StaticResources are shared by every draw context of a device: the default
// shader, the pipeline cache, the streaming vertex buffer, the uniforms and
// the fallback textures.
type StaticResources struct {
	// White pixel used by untextured primitives and invalid texture handles.
	DefaultTexture metadata.TextureHandle
	// Blue and white checkerboard used by loaders when an image is missing.
	CheckerTexture metadata.TextureHandle
	Shader         metadata.ShaderHandle
	VertexBuffer   metadata.VertexBufferHandle
	MVPUniform     metadata.UniformHandle
	TextureUniform metadata.UniformHandle
	Pipelines      *PipelineCache
	Font           *metadata.Font
}

// NewStaticResources creates the shared resources on the backend. The
// default shader failing to compile is fatal to the device and returned as
// an error.
func NewStaticResources(backend RendererBackend) (*StaticResources, error) {
	s := &StaticResources{}
	var err error

	s.DefaultTexture, err = backend.TextureCreate(whiteTextureDesc())
	if err != nil {
		return nil, fmt.Errorf("failed to create default texture: %w", err)
	}
	s.CheckerTexture, err = backend.TextureCreate(checkerTextureDesc())
	if err != nil {
		return nil, fmt.Errorf("failed to create checker texture: %w", err)
	}

	s.Shader, err = backend.ShaderCreate(ImmediateShaderDesc())
	if err != nil {
		return nil, fmt.Errorf("failed to create immediate shader: %w", err)
	}

	s.VertexBuffer, err = backend.VertexBufferCreate(&metadata.VertexBufferDesc{
		Name:  "VertexBuffer.Builtin.Immediate",
		Usage: metadata.BufferUsageStream,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create immediate vertex buffer: %w", err)
	}

	s.MVPUniform, err = backend.UniformCreate(&metadata.UniformDesc{Name: metadata.UNIFORM_NAME_MVP, Type: metadata.ShaderUniformTypeMatrix4})
	if err != nil {
		return nil, err
	}
	s.TextureUniform, err = backend.UniformCreate(&metadata.UniformDesc{Name: metadata.UNIFORM_NAME_TEXTURE, Type: metadata.ShaderUniformTypeSampler})
	if err != nil {
		return nil, err
	}

	s.Pipelines, err = NewPipelineCache(backend, s.Shader, metadata.DefaultVertexLayout)
	if err != nil {
		return nil, err
	}

	f, atlas := BakeFont(basicfont.Face7x13, DEFAULT_FONT_NAME)
	f.Atlas, err = backend.TextureCreate(FontTextureDesc(f, atlas))
	if err != nil {
		return nil, fmt.Errorf("failed to upload default font atlas: %w", err)
	}
	s.Font = f

	core.LogDebug("static draw resources created on backend '%s'", backend.Name())
	return s, nil
}

// Texture maps invalid handles to the default texture.
func (s *StaticResources) Texture(t metadata.TextureHandle) metadata.TextureHandle {
	if !t.Valid() {
		return s.DefaultTexture
	}
	return t
}

func (s *StaticResources) Destroy(backend RendererBackend) {
	if s.Pipelines != nil {
		s.Pipelines.Destroy(backend)
	}
	if s.Font != nil {
		backend.TextureDestroy(s.Font.Atlas)
	}
	backend.VertexBufferDestroy(s.VertexBuffer)
	backend.ShaderDestroy(s.Shader)
	backend.TextureDestroy(s.CheckerTexture)
	backend.TextureDestroy(s.DefaultTexture)
}

func whiteTextureDesc() *metadata.TextureDesc {
	return &metadata.TextureDesc{
		Name:      metadata.WHITE_TEXTURE_NAME,
		Width:     1,
		Height:    1,
		Format:    metadata.TextureFormatRGBA8,
		MinFilter: metadata.TextureFilterNearest,
		MagFilter: metadata.TextureFilterNearest,
		WrapS:     metadata.TextureWrapRepeat,
		WrapT:     metadata.TextureWrapRepeat,
		Data:      []byte{255, 255, 255, 255},
	}
}

// checkerTextureDesc is generated in code to avoid asset dependencies.
func checkerTextureDesc() *metadata.TextureDesc {
	dim := metadata.DEFAULT_TEXTURE_DIMENSION
	pixels := make([]uint8, dim*dim*4)
	for row := uint32(0); row < dim; row++ {
		for col := uint32(0); col < dim; col++ {
			i := (row*dim + col) * 4
			pixels[i+0], pixels[i+1], pixels[i+2], pixels[i+3] = 255, 255, 255, 255
			// Blue on alternating squares of 4 pixels.
			if (row/4+col/4)%2 == 0 {
				pixels[i+0], pixels[i+1] = 0, 0
			}
		}
	}
	return &metadata.TextureDesc{
		Name:      metadata.DEFAULT_TEXTURE_NAME,
		Width:     dim,
		Height:    dim,
		Format:    metadata.TextureFormatRGBA8,
		MinFilter: metadata.TextureFilterNearest,
		MagFilter: metadata.TextureFilterNearest,
		WrapS:     metadata.TextureWrapRepeat,
		WrapT:     metadata.TextureWrapRepeat,
		Data:      pixels,
	}
}
