package idraw_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/idraw/engine/idraw"
	"github.com/spaghettifunk/idraw/engine/math"
	"github.com/spaghettifunk/idraw/engine/renderer"
	"github.com/spaghettifunk/idraw/engine/renderer/headless"
	"github.com/spaghettifunk/idraw/engine/renderer/metadata"
)

func newContext(t *testing.T, opts ...idraw.Option) (*idraw.Context, *headless.Backend) {
	t.Helper()
	backend := headless.New()
	device, err := renderer.NewDevice(backend)
	require.NoError(t, err)
	ctx, err := idraw.New(device, opts...)
	require.NoError(t, err)
	return ctx, backend
}

// submit draws ctx into a fresh frame, executes it and returns the draws.
func submit(t *testing.T, ctx *idraw.Context, backend *headless.Backend) []headless.DrawCall {
	t.Helper()
	frame := renderer.NewCommandBuffer(0)
	ctx.Draw(frame)
	backend.Reset()
	ctx.Device().Submit(frame)
	return backend.Calls()
}

func opcodes(cb *renderer.CommandBuffer) []renderer.Opcode {
	var ops []renderer.Opcode
	for cmd := range cb.Commands() {
		ops = append(ops, cmd.Opcode())
	}
	return ops
}

func TestNew_RequiresDevice(t *testing.T) {
	_, err := idraw.New(nil)
	assert.Error(t, err)
}

func TestNew_SharesStaticResources(t *testing.T) {
	backend := headless.New()
	device, err := renderer.NewDevice(backend)
	require.NoError(t, err)

	a, err := idraw.New(device)
	require.NoError(t, err)
	b, err := idraw.New(device)
	require.NoError(t, err)

	assert.Same(t, a.Static(), b.Static())
	assert.NotEqual(t, a.ID(), b.ID())
	assert.Equal(t, metadata.PipelineStateCombinations, backend.PipelineCount())
}

func TestFlush_EmptyIsNoop(t *testing.T) {
	ctx, _ := newContext(t)

	for _, prim := range []metadata.PrimitiveType{metadata.PrimitiveTypeTriangles, metadata.PrimitiveTypeLines, metadata.PrimitiveTypeTriangles} {
		ctx.Begin(prim)
		ctx.End()
		before := ctx.Commands().Count()
		ctx.Flush()
		assert.Equal(t, before, ctx.Commands().Count())
	}
	assert.Zero(t, ctx.PendingVertices())
}

func TestFlush_RecordsUploadUniformsAndDraw(t *testing.T) {
	ctx, _ := newContext(t)
	ctx.Begin(metadata.PrimitiveTypeTriangles)
	ctx.Position(0, 0, 0)
	ctx.Position(1, 0, 0)
	ctx.Position(0, 1, 0)
	ctx.End()
	ctx.Flush()

	assert.Equal(t, []renderer.Opcode{
		renderer.OpBindPipeline,
		renderer.OpUpdateVertexData,
		renderer.OpBindVertexBuffer,
		renderer.OpBindUniform,
		renderer.OpBindTexture,
		renderer.OpDraw,
	}, opcodes(ctx.Commands()))
	assert.Zero(t, ctx.PendingVertices())

	var draw renderer.DrawCmd
	for cmd := range ctx.Commands().Commands() {
		if d, ok := cmd.(renderer.DrawCmd); ok {
			draw = d
		}
	}
	assert.Equal(t, renderer.DrawCmd{Start: 0, Count: 3}, draw)
}

func TestFlush_NoBindUniforms(t *testing.T) {
	ctx, backend := newContext(t, idraw.WithFlags(idraw.NoBindUniforms))
	ctx.Triangle(0, 0, 1, 0, 0, 1, math.ColorWhite, metadata.PrimitiveTypeTriangles)
	ctx.Flush()

	assert.NotContains(t, opcodes(ctx.Commands()), renderer.OpBindUniform)
	assert.NotContains(t, opcodes(ctx.Commands()), renderer.OpBindTexture)

	calls := submit(t, ctx, backend)
	require.Len(t, calls, 1)
	assert.False(t, calls[0].HasMVP)
	assert.Equal(t, idraw.NoBindUniforms, ctx.Flags())
}

func TestBegin_PrimitiveChangeFlushes(t *testing.T) {
	ctx, backend := newContext(t)
	ctx.Triangle(0, 0, 1, 0, 0, 1, math.ColorRed, metadata.PrimitiveTypeTriangles)
	before := ctx.Commands().Count()

	ctx.Begin(metadata.PrimitiveTypeLines)
	assert.Greater(t, ctx.Commands().Count(), before)
	assert.Zero(t, ctx.PendingVertices())
	ctx.Position(0, 0, 0)
	ctx.Position(1, 1, 0)
	ctx.End()

	// Same primitive again does not flush.
	before = ctx.Commands().Count()
	ctx.Begin(metadata.PrimitiveTypeLines)
	assert.Equal(t, before, ctx.Commands().Count())
	assert.Equal(t, 2, ctx.PendingVertices())

	calls := submit(t, ctx, backend)
	require.Len(t, calls, 2)
	assert.Equal(t, metadata.PrimitiveTypeTriangles, calls[0].Primitive())
	assert.Equal(t, 3, calls[0].VertexCount())
	assert.Equal(t, metadata.PrimitiveTypeLines, calls[1].Primitive())
	assert.Equal(t, 2, calls[1].VertexCount())
}

func TestBegin_UnknownPrimitiveDrawsTriangles(t *testing.T) {
	ctx, _ := newContext(t)
	ctx.Begin(metadata.PrimitiveType(7))
	assert.Equal(t, uint16(metadata.PrimitiveTypeTriangles), ctx.PipelineState().PrimType)
}

func TestStateChanges_FlushPendingVertices(t *testing.T) {
	texture := func(ctx *idraw.Context) metadata.TextureHandle {
		h, err := ctx.Device().CreateTexture(&metadata.TextureDesc{
			Name: "t", Width: 1, Height: 1, Format: metadata.TextureFormatRGBA8, Data: []byte{1, 2, 3, 4},
		})
		require.NoError(t, err)
		return h
	}
	changes := map[string]func(ctx *idraw.Context){
		"texture":         func(ctx *idraw.Context) { ctx.SetTexture(texture(ctx)) },
		"blend":           func(ctx *idraw.Context) { ctx.SetBlendEnabled(false) },
		"depth":           func(ctx *idraw.Context) { ctx.SetDepthEnabled(true) },
		"stencil":         func(ctx *idraw.Context) { ctx.SetStencilEnabled(true) },
		"cull":            func(ctx *idraw.Context) { ctx.SetFaceCullEnabled(true) },
		"push projection": func(ctx *idraw.Context) { ctx.PushMatrix(idraw.MatrixProjection) },
		"camera":          func(ctx *idraw.Context) { ctx.Camera2D(640, 480) },
		"pop projection": func(ctx *idraw.Context) {
			ctx.PushMatrixEx(idraw.MatrixProjection, false)
			ctx.Position(1, 1, 0)
			ctx.PopMatrix()
		},
	}
	for name, change := range changes {
		t.Run(name, func(t *testing.T) {
			ctx, _ := newContext(t)
			ctx.Triangle(0, 0, 1, 0, 0, 1, math.ColorWhite, metadata.PrimitiveTypeTriangles)
			before := ctx.Commands().Count()

			change(ctx)

			// Upload, vertex buffer, MVP, texture and the draw itself.
			assert.GreaterOrEqual(t, ctx.Commands().Count(), before+5)
			assert.Zero(t, ctx.PendingVertices())
		})
	}
}

func TestStateChanges_SameValueIsNoop(t *testing.T) {
	ctx, _ := newContext(t)
	ctx.Triangle(0, 0, 1, 0, 0, 1, math.ColorWhite, metadata.PrimitiveTypeTriangles)
	before := ctx.Commands().Count()

	ctx.SetBlendEnabled(true)
	ctx.SetDepthEnabled(false)
	ctx.SetStencilEnabled(false)
	ctx.SetFaceCullEnabled(false)
	ctx.SetTexture(metadata.TextureHandle{})

	assert.Equal(t, before, ctx.Commands().Count())
	assert.Equal(t, 3, ctx.PendingVertices())
}

func TestStateChanges_BindMatchingPipeline(t *testing.T) {
	ctx, backend := newContext(t)
	ctx.SetDepthEnabled(true)
	ctx.SetFaceCullEnabled(true)
	ctx.Rect(0, 0, 1, 1, math.ColorWhite, metadata.PrimitiveTypeTriangles)

	calls := submit(t, ctx, backend)
	require.Len(t, calls, 1)
	assert.Equal(t, metadata.PipelineStateAttr{
		DepthEnabled:    1,
		BlendEnabled:    1,
		FaceCullEnabled: 1,
	}, calls[0].State)
	assert.Equal(t, ctx.Static().Pipelines.Get(calls[0].State), calls[0].Pipeline)
}

func TestSetTexture_InvalidHandleUsesDefault(t *testing.T) {
	ctx, backend := newContext(t)
	for _, h := range []metadata.TextureHandle{{ID: 0}, {ID: metadata.InvalidID}} {
		ctx.SetTexture(h)
		assert.Equal(t, ctx.Static().DefaultTexture, ctx.Texture())
	}
	ctx.Rect(0, 0, 1, 1, math.ColorWhite, metadata.PrimitiveTypeTriangles)
	calls := submit(t, ctx, backend)
	require.Len(t, calls, 1)
	assert.Equal(t, ctx.Static().DefaultTexture, calls[0].Texture)
}

func TestSetPipeline_CustomPipelineSkipsCache(t *testing.T) {
	ctx, backend := newContext(t)
	custom, err := ctx.Device().CreatePipeline(&metadata.PipelineDesc{
		Name:   "custom",
		Shader: ctx.Static().Shader,
		Layout: metadata.DefaultVertexLayout,
		State:  metadata.PipelineStateAttr{DepthEnabled: 1},
	})
	require.NoError(t, err)

	ctx.SetPipeline(custom)
	assert.NotZero(t, ctx.Flags()&idraw.NoBindCachedPipelines)
	ctx.SetBlendEnabled(false)
	ctx.Rect(0, 0, 1, 1, math.ColorWhite, metadata.PrimitiveTypeTriangles)

	calls := submit(t, ctx, backend)
	require.Len(t, calls, 1)
	assert.Equal(t, custom, calls[0].Pipeline)

	// Reset returns to the cached pipelines.
	assert.Zero(t, ctx.Flags()&idraw.NoBindCachedPipelines)
}

func TestDefaults_RestoresState(t *testing.T) {
	ctx, _ := newContext(t)
	ctx.SetDepthEnabled(true)
	ctx.SetBlendEnabled(false)
	ctx.SetVertexAttributes(metadata.VertexAttributePosition)
	ctx.Defaults()

	assert.Equal(t, idraw.DefaultPipelineState, ctx.PipelineState())
	assert.Equal(t, ctx.Static().DefaultTexture, ctx.Texture())
}

func TestSetVertexAttributes_CustomLayout(t *testing.T) {
	ctx, _ := newContext(t)
	ctx.SetVertexAttributes(metadata.VertexAttributeColor, metadata.VertexAttributePosition)
	ctx.Color(math.ColorRed)
	ctx.Position(1, 2, 3)
	assert.Equal(t, 1, ctx.PendingVertices())
	ctx.Flush()

	var data []byte
	for cmd := range ctx.Commands().Commands() {
		if u, ok := cmd.(renderer.UpdateVertexDataCmd); ok {
			data = append([]byte(nil), u.Data...)
		}
	}
	require.Len(t, data, 16)
	assert.Equal(t, []byte{255, 0, 0, 255}, data[:4])

	ctx.SetVertexAttributes()
	ctx.Position(0, 0, 0)
	assert.Equal(t, 1, ctx.PendingVertices())
}

func TestDraw_MergesAndResets(t *testing.T) {
	ctx, _ := newContext(t)
	ctx.SetDepthEnabled(true)
	ctx.PushMatrix(idraw.MatrixModelview)
	ctx.Translate(1, 2, 3)
	ctx.Rect(0, 0, 1, 1, math.ColorWhite, metadata.PrimitiveTypeTriangles)

	frame := renderer.NewCommandBuffer(0)
	frame.SetViewport(metadata.Rect{Width: 10, Height: 10})
	ctx.Draw(frame)

	ops := opcodes(frame)
	assert.Equal(t, renderer.OpSetViewport, ops[0])
	assert.Equal(t, renderer.OpDraw, ops[len(ops)-1])

	assert.Zero(t, ctx.Commands().Count())
	assert.Zero(t, ctx.PendingVertices())
	assert.Equal(t, 1, ctx.Depth(idraw.MatrixModelview))
	assert.Equal(t, 1, ctx.Depth(idraw.MatrixProjection))
	assert.Equal(t, mgl32.Ident4(), ctx.Top(idraw.MatrixModelview))
	assert.Equal(t, idraw.DefaultPipelineState, ctx.PipelineState())
}

func TestDraw_RebindsPipelineEveryFrame(t *testing.T) {
	ctx, backend := newContext(t)
	for range 2 {
		ctx.Rect(0, 0, 1, 1, math.ColorWhite, metadata.PrimitiveTypeTriangles)
		calls := submit(t, ctx, backend)
		require.Len(t, calls, 1)
		assert.True(t, calls[0].Pipeline.Valid())
	}
	assert.Equal(t, 2, backend.Submissions())
}

func TestDraw_ContextsMergeInOrder(t *testing.T) {
	backend := headless.New()
	device, err := renderer.NewDevice(backend)
	require.NoError(t, err)
	a, err := idraw.New(device)
	require.NoError(t, err)
	b, err := idraw.New(device)
	require.NoError(t, err)

	a.Line(0, 0, 1, 1, math.ColorRed)
	b.Rect(0, 0, 1, 1, math.ColorBlue, metadata.PrimitiveTypeTriangles)

	frame := renderer.NewCommandBuffer(0)
	a.Draw(frame)
	b.Draw(frame)
	device.Submit(frame)

	calls := backend.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, metadata.PrimitiveTypeLines, calls[0].Primitive())
	assert.Equal(t, metadata.PrimitiveTypeTriangles, calls[1].Primitive())
	assert.Equal(t, math.ColorBlue, calls[1].Colors()[0])
}

func TestSubmit_RecordsViewportAndClear(t *testing.T) {
	ctx, backend := newContext(t)
	ctx.Rect(0, 0, 1, 1, math.ColorWhite, metadata.PrimitiveTypeTriangles)

	frame := renderer.NewCommandBuffer(0)
	viewport := metadata.Rect{Width: 320, Height: 200}
	clear := metadata.ClearDesc{Flags: metadata.ClearFlagColor, Color: [4]float32{0, 0, 0, 1}}
	ctx.Submit(frame, viewport, clear)
	ctx.Device().Submit(frame)

	assert.Equal(t, []metadata.Rect{viewport}, backend.Viewports())
	assert.Equal(t, []metadata.ClearDesc{clear}, backend.Clears())
	assert.Len(t, backend.Calls(), 1)
	assert.Equal(t, renderer.OpSetViewport, backend.Executed()[0])
}

func TestViewportAndScissor_FlushFirst(t *testing.T) {
	ctx, _ := newContext(t)
	ctx.Rect(0, 0, 1, 1, math.ColorWhite, metadata.PrimitiveTypeTriangles)
	ctx.Viewport(0, 0, 100, 100)
	ctx.Scissor(10, 10, 20, 20)

	ops := opcodes(ctx.Commands())
	require.GreaterOrEqual(t, len(ops), 3)
	assert.Equal(t, []renderer.Opcode{renderer.OpDraw, renderer.OpSetViewport, renderer.OpSetScissor}, ops[len(ops)-3:])
}
