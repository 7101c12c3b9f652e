package renderer

import "github.com/spaghettifunk/idraw/engine/renderer/metadata"

// RendererBackend owns the GPU resources behind handles and executes
// submitted command buffers. Every method must be called from the goroutine
// that owns the graphics context.
type RendererBackend interface {
	Executor

	Name() string
	Initialize() error
	Shutdown() error

	TextureCreate(desc *metadata.TextureDesc) (metadata.TextureHandle, error)
	TextureUpdate(texture metadata.TextureHandle, width, height uint32, pixels []byte) error
	TextureDestroy(texture metadata.TextureHandle)

	ShaderCreate(desc *metadata.ShaderDesc) (metadata.ShaderHandle, error)
	// ShaderReload recompiles a shader in place. On failure the previous
	// program stays in use.
	ShaderReload(shader metadata.ShaderHandle, desc *metadata.ShaderDesc) error
	ShaderDestroy(shader metadata.ShaderHandle)

	VertexBufferCreate(desc *metadata.VertexBufferDesc) (metadata.VertexBufferHandle, error)
	VertexBufferDestroy(buffer metadata.VertexBufferHandle)
	IndexBufferCreate(desc *metadata.IndexBufferDesc) (metadata.IndexBufferHandle, error)
	IndexBufferDestroy(buffer metadata.IndexBufferHandle)

	UniformCreate(desc *metadata.UniformDesc) (metadata.UniformHandle, error)

	PipelineCreate(desc *metadata.PipelineDesc) (metadata.PipelineHandle, error)
	PipelineDestroy(pipeline metadata.PipelineHandle)
}
