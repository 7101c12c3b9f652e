// Package idraw is an immediate-mode drawing API recorded into a command
// buffer. Callers describe geometry vertex by vertex, the context batches
// it into as few draws as the state changes allow and hands the result to a
// frame command buffer with Draw.
//
// A Context is not safe for concurrent use. All contexts of a device must be
// driven from the goroutine that submits to it.
package idraw

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"

	"github.com/spaghettifunk/idraw/engine/containers"
	"github.com/spaghettifunk/idraw/engine/core"
	"github.com/spaghettifunk/idraw/engine/math"
	"github.com/spaghettifunk/idraw/engine/renderer"
	"github.com/spaghettifunk/idraw/engine/renderer/metadata"
)

type Flags uint32

const (
	// NoBindUniforms skips the MVP and texture binds on flush. Set it when
	// a custom pipeline manages its own uniforms.
	NoBindUniforms Flags = 1 << iota
	// NoBindCachedPipelines stops state setters from binding the cached
	// pipelines.
	NoBindCachedPipelines
)

const (
	DefaultVertexCapacity  = 64 * 1024
	DefaultCommandCapacity = 16 * 1024
	DefaultCircleErrorRate = 0.5
)

// DefaultPipelineState is the state every context starts from: blending on,
// everything else off, triangles.
var DefaultPipelineState = metadata.PipelineStateAttr{
	BlendEnabled: 1,
	PrimType:     uint16(metadata.PrimitiveTypeTriangles),
}

type cache struct {
	modelview  *containers.Stack[mgl32.Mat4]
	projection *containers.Stack[mgl32.Mat4]
	// Mode of every outstanding push, innermost on top.
	modes    *containers.Stack[MatrixMode]
	mode     MatrixMode
	color    math.Color
	uv       mgl32.Vec2
	texture  metadata.TextureHandle
	pipeline metadata.PipelineStateAttr
}

type Context struct {
	id     uuid.UUID
	device *renderer.Device
	static *renderer.StaticResources

	vertices *containers.ByteBuffer
	// Custom vertex layout, nil for the default one.
	attributes metadata.VertexLayout
	cache      cache
	commands   *renderer.CommandBuffer

	flags        Flags
	defaultFlags Flags
	errorRate    float32
	// Last pipeline bound in commands since the last reset.
	bound metadata.PipelineHandle
}

type options struct {
	vertexCapacity  int
	commandCapacity int
	errorRate       float32
	flags           Flags
}

type Option func(*options)

// WithVertexCapacity sets the initial size in bytes of the vertex buffer.
func WithVertexCapacity(n int) Option {
	return func(o *options) { o.vertexCapacity = n }
}

func WithCommandCapacity(n int) Option {
	return func(o *options) { o.commandCapacity = n }
}

// WithCircleErrorRate sets the maximum distance in pixels between a curve and
// its tessellation when the caller leaves the segment count at zero.
func WithCircleErrorRate(rate float32) Option {
	return func(o *options) { o.errorRate = rate }
}

// WithFlags sets the flags the context returns to on every reset.
func WithFlags(f Flags) Option {
	return func(o *options) { o.flags = f }
}

// New creates a draw context on device. The static resources of the device
// are created on the first call.
func New(device *renderer.Device, opts ...Option) (*Context, error) {
	o := options{
		vertexCapacity:  DefaultVertexCapacity,
		commandCapacity: DefaultCommandCapacity,
		errorRate:       DefaultCircleErrorRate,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if device == nil {
		return nil, core.ErrBackendNotReady
	}
	static, err := device.Static()
	if err != nil {
		return nil, err
	}
	c := &Context{
		id:           uuid.New(),
		device:       device,
		static:       static,
		vertices:     containers.NewByteBuffer(o.vertexCapacity),
		commands:     renderer.NewCommandBuffer(o.commandCapacity),
		defaultFlags: o.flags,
		errorRate:    o.errorRate,
		cache: cache{
			modelview:  containers.NewStack[mgl32.Mat4](8),
			projection: containers.NewStack[mgl32.Mat4](4),
			modes:      containers.NewStack[MatrixMode](8),
		},
	}
	c.Reset()
	core.LogDebug("draw context %s created", c.id)
	return c, nil
}

func (c *Context) ID() uuid.UUID {
	return c.id
}

func (c *Context) Device() *renderer.Device {
	return c.device
}

// Static returns the resources shared with the other contexts of the device.
func (c *Context) Static() *renderer.StaticResources {
	return c.static
}

// Commands is the command buffer the context records into. Commands pushed
// directly land after everything flushed so far.
func (c *Context) Commands() *renderer.CommandBuffer {
	return c.commands
}

func (c *Context) Flags() Flags {
	return c.flags
}

func (c *Context) SetFlags(f Flags) {
	c.flags = f
}

// Reset drops pending vertices and recorded commands and returns the
// context to its defaults: one identity matrix per stack, white color,
// default texture and pipeline state.
func (c *Context) Reset() {
	c.vertices.Clear()
	c.commands.Reset()
	c.attributes = nil
	c.flags = c.defaultFlags
	c.bound = metadata.PipelineHandle{}

	c.cache.modelview.Reset()
	c.cache.modelview.Push(mgl32.Ident4())
	c.cache.projection.Reset()
	c.cache.projection.Push(mgl32.Ident4())
	c.cache.modes.Reset()
	c.cache.mode = MatrixModelview
	c.cache.color = math.ColorWhite
	c.cache.uv = mgl32.Vec2{}
	c.cache.texture = c.static.DefaultTexture
	c.cache.pipeline = DefaultPipelineState
}

// Defaults flushes and restores the default pipeline state, texture, vertex
// layout and flags without touching the matrix stacks.
func (c *Context) Defaults() {
	c.Flush()
	c.attributes = nil
	c.flags = c.defaultFlags
	c.cache.texture = c.static.DefaultTexture
	c.cache.pipeline = DefaultPipelineState
	c.cache.color = math.ColorWhite
	c.cache.uv = mgl32.Vec2{}
	// A custom pipeline may still be bound.
	c.bound = metadata.PipelineHandle{}
	c.bindPipeline()
}

// Flush turns the pending vertices into a draw. It records nothing when no
// vertex is pending.
func (c *Context) Flush() {
	if c.vertices.Empty() {
		return
	}
	layout := c.layout()
	stride := layout.Stride()
	count := uint32(c.vertices.Size()) / stride

	c.bindPipeline()
	c.commands.UpdateVertexData(c.static.VertexBuffer, c.vertices.Bytes())
	c.commands.BindVertexBuffer(c.static.VertexBuffer)
	if c.flags&NoBindUniforms == 0 {
		// Model transforms are baked into the vertices on emission.
		c.commands.Push(renderer.UniformMat4(c.static.MVPUniform, c.cache.projection.Top()))
		c.commands.BindTexture(c.cache.texture, 0, c.static.TextureUniform)
	}
	c.commands.Draw(0, count)
	c.vertices.Clear()
}

// Draw flushes, appends everything recorded to target and resets the
// context for the next frame.
func (c *Context) Draw(target *renderer.CommandBuffer) {
	c.Flush()
	c.commands.MergeInto(target)
	c.Reset()
}

// Submit records a viewport and a clear into target ahead of the context's
// commands, then draws into it.
func (c *Context) Submit(target *renderer.CommandBuffer, viewport metadata.Rect, clear metadata.ClearDesc) {
	target.SetViewport(viewport)
	if clear.Flags != 0 {
		target.Clear(clear)
	}
	c.Draw(target)
}

// SetPipeline binds a pipeline created outside the cache. The cached
// pipelines stay unbound until Defaults or Reset.
func (c *Context) SetPipeline(p metadata.PipelineHandle) {
	c.Flush()
	c.flags |= NoBindCachedPipelines
	c.commands.BindPipeline(p)
	c.bound = p
}

// SetVertexAttributes replaces the vertex layout written by Position. No
// attributes restores the default position, uv, color layout.
func (c *Context) SetVertexAttributes(attrs ...metadata.VertexAttribute) {
	c.Flush()
	if len(attrs) == 0 {
		c.attributes = nil
		return
	}
	c.attributes = append(c.attributes[:0], attrs...)
}

func (c *Context) layout() metadata.VertexLayout {
	if c.attributes != nil {
		return c.attributes
	}
	return metadata.DefaultVertexLayout
}

// PipelineState is the cached state the next draw uses.
func (c *Context) PipelineState() metadata.PipelineStateAttr {
	return c.cache.pipeline
}

// PendingVertices is the number of vertices waiting for a flush.
func (c *Context) PendingVertices() int {
	return c.vertices.Size() / int(c.layout().Stride())
}

func (c *Context) bindPipeline() {
	if c.flags&NoBindCachedPipelines != 0 {
		return
	}
	p := c.static.Pipelines.Get(c.cache.pipeline)
	if p == c.bound {
		return
	}
	c.commands.BindPipeline(p)
	c.bound = p
}
