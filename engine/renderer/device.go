package renderer

import (
	"sync"

	"github.com/spaghettifunk/idraw/engine/core"
	"github.com/spaghettifunk/idraw/engine/renderer/metadata"
)

// Device ties a backend to the static resources shared by draw contexts.
// The static resources are built once, on first use.
type Device struct {
	backend RendererBackend

	staticOnce sync.Once
	static     *StaticResources
	staticErr  error
}

// NewDevice initializes the backend.
func NewDevice(backend RendererBackend) (*Device, error) {
	if backend == nil {
		return nil, core.ErrBackendNotReady
	}
	if err := backend.Initialize(); err != nil {
		return nil, err
	}
	core.LogInfo("renderer backend '%s' initialized", backend.Name())
	return &Device{backend: backend}, nil
}

func (d *Device) Backend() RendererBackend {
	return d.backend
}

// Static returns the shared resources, creating them on the first call.
func (d *Device) Static() (*StaticResources, error) {
	d.staticOnce.Do(func() {
		d.static, d.staticErr = NewStaticResources(d.backend)
		if d.staticErr != nil {
			core.LogError("failed to create static draw resources: %s", d.staticErr)
		}
	})
	return d.static, d.staticErr
}

// Submit executes and resets cb.
func (d *Device) Submit(cb *CommandBuffer) SubmitStats {
	return Submit(cb, d.backend)
}

func (d *Device) CreateTexture(desc *metadata.TextureDesc) (metadata.TextureHandle, error) {
	if err := desc.Validate(); err != nil {
		return metadata.TextureHandle{}, err
	}
	return d.backend.TextureCreate(desc)
}

func (d *Device) DestroyTexture(t metadata.TextureHandle) {
	if t.Valid() {
		d.backend.TextureDestroy(t)
	}
}

func (d *Device) CreateShader(desc *metadata.ShaderDesc) (metadata.ShaderHandle, error) {
	return d.backend.ShaderCreate(desc)
}

func (d *Device) CreateVertexBuffer(desc *metadata.VertexBufferDesc) (metadata.VertexBufferHandle, error) {
	return d.backend.VertexBufferCreate(desc)
}

func (d *Device) CreateIndexBuffer(desc *metadata.IndexBufferDesc) (metadata.IndexBufferHandle, error) {
	return d.backend.IndexBufferCreate(desc)
}

func (d *Device) CreateUniform(desc *metadata.UniformDesc) (metadata.UniformHandle, error) {
	return d.backend.UniformCreate(desc)
}

func (d *Device) CreatePipeline(desc *metadata.PipelineDesc) (metadata.PipelineHandle, error) {
	return d.backend.PipelineCreate(desc)
}

// Shutdown releases the static resources, then the backend.
func (d *Device) Shutdown() error {
	if d.static != nil {
		d.static.Destroy(d.backend)
		d.static = nil
	}
	return d.backend.Shutdown()
}
