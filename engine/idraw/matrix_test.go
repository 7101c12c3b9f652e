package idraw_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/idraw/engine/idraw"
	"github.com/spaghettifunk/idraw/engine/math"
	"github.com/spaghettifunk/idraw/engine/renderer/metadata"
)

func TestMatrixStack_NeverUnderflows(t *testing.T) {
	ctx, _ := newContext(t)

	ctx.PopMatrix()
	ctx.PopMatrix()
	assert.Equal(t, 1, ctx.Depth(idraw.MatrixModelview))
	assert.Equal(t, 1, ctx.Depth(idraw.MatrixProjection))
	assert.Equal(t, mgl32.Ident4(), ctx.Top(idraw.MatrixModelview))

	// push = true, pop = false
	sequence := []struct {
		push bool
		mode idraw.MatrixMode
	}{
		{true, idraw.MatrixModelview},
		{true, idraw.MatrixProjection},
		{false, 0},
		{true, idraw.MatrixModelview},
		{false, 0},
		{false, 0},
		{false, 0},
		{false, 0},
		{true, idraw.MatrixProjection},
		{true, idraw.MatrixProjection},
		{false, 0},
	}
	for _, step := range sequence {
		if step.push {
			ctx.PushMatrix(step.mode)
		} else {
			ctx.PopMatrix()
		}
		assert.GreaterOrEqual(t, ctx.Depth(idraw.MatrixModelview), 1)
		assert.GreaterOrEqual(t, ctx.Depth(idraw.MatrixProjection), 1)
	}
	assert.Equal(t, 1, ctx.Depth(idraw.MatrixModelview))
	assert.Equal(t, 2, ctx.Depth(idraw.MatrixProjection))
}

func TestMatrixStack_PushDuplicatesTop(t *testing.T) {
	ctx, _ := newContext(t)
	ctx.Translate(1, 2, 3)
	top := ctx.Top(idraw.MatrixModelview)

	ctx.PushMatrix(idraw.MatrixModelview)
	assert.Equal(t, top, ctx.Top(idraw.MatrixModelview))
	assert.Equal(t, 2, ctx.Depth(idraw.MatrixModelview))

	ctx.Scale(2, 2, 2)
	ctx.PopMatrix()
	assert.Equal(t, top, ctx.Top(idraw.MatrixModelview))
}

func TestMatrixStack_PopFollowsPushedMode(t *testing.T) {
	ctx, _ := newContext(t)
	ctx.PushMatrix(idraw.MatrixProjection)
	ctx.PushMatrix(idraw.MatrixModelview)
	assert.Equal(t, idraw.MatrixModelview, ctx.MatrixMode())

	ctx.PopMatrix()
	assert.Equal(t, idraw.MatrixProjection, ctx.MatrixMode())
	assert.Equal(t, 1, ctx.Depth(idraw.MatrixModelview))
	assert.Equal(t, 2, ctx.Depth(idraw.MatrixProjection))

	ctx.PopMatrix()
	assert.Equal(t, idraw.MatrixModelview, ctx.MatrixMode())
	assert.Equal(t, 1, ctx.Depth(idraw.MatrixProjection))
}

func TestMatrixStack_ModelviewDoesNotFlush(t *testing.T) {
	ctx, _ := newContext(t)
	ctx.Rect(0, 0, 1, 1, math.ColorWhite, metadata.PrimitiveTypeTriangles)
	before := ctx.Commands().Count()

	ctx.PushMatrix(idraw.MatrixModelview)
	ctx.Translate(1, 0, 0)
	ctx.Rotate(45, 0, 0, 1)
	ctx.PopMatrix()

	assert.Equal(t, before, ctx.Commands().Count())
	assert.Equal(t, 6, ctx.PendingVertices())
}

func TestMatrixStack_TranslationIsBakedIntoVertices(t *testing.T) {
	ctx, backend := newContext(t)
	ctx.Begin(metadata.PrimitiveTypeLines)
	ctx.PushMatrix(idraw.MatrixModelview)
	ctx.Translate(5, 0, 0)
	ctx.Position(0, 0, 0)
	ctx.PopMatrix()
	ctx.Position(0, 0, 0)
	ctx.End()

	calls := submit(t, ctx, backend)
	require.Len(t, calls, 1)
	assert.Equal(t, []mgl32.Vec3{{5, 0, 0}, {0, 0, 0}}, calls[0].Positions())
}

func TestMatrixStack_MulMatrixComposesInObjectSpace(t *testing.T) {
	ctx, backend := newContext(t)
	ctx.Translate(5, 0, 0)
	ctx.Scale(2, 2, 2)
	ctx.Begin(metadata.PrimitiveTypeLines)
	ctx.Position(1, 0, 0)
	ctx.LoadIdentity()
	ctx.Rotate(90, 0, 0, 1)
	ctx.Position(1, 0, 0)
	ctx.End()

	calls := submit(t, ctx, backend)
	require.Len(t, calls, 1)
	positions := calls[0].Positions()
	require.Len(t, positions, 2)
	assert.InDelta(t, 7, positions[0].X(), 1e-5)
	assert.InDelta(t, 0, positions[1].X(), 1e-5)
	assert.InDelta(t, 1, positions[1].Y(), 1e-5)
}

func TestMatrixStack_ProjectionIsTheUploadedMVP(t *testing.T) {
	ctx, backend := newContext(t)
	ctx.Camera2D(640, 480)
	ctx.PushMatrix(idraw.MatrixModelview)
	ctx.Translate(3, 0, 0)
	ctx.Rect(0, 0, 1, 1, math.ColorWhite, metadata.PrimitiveTypeTriangles)
	ctx.PopMatrix()

	calls := submit(t, ctx, backend)
	require.Len(t, calls, 1)
	assert.True(t, calls[0].HasMVP)
	assert.Equal(t, mgl32.Ortho(0, 640, 480, 0, -1, 1), calls[0].MVP)
	assert.Equal(t, float32(3), calls[0].Positions()[0].X())
}

func TestMatrixStack_ProjectionPushPopRestores(t *testing.T) {
	ctx, backend := newContext(t)
	ctx.Camera2D(100, 100)
	ortho := ctx.Top(idraw.MatrixProjection)

	ctx.PushMatrix(idraw.MatrixProjection)
	ctx.LoadIdentity()
	ctx.Rect(0, 0, 1, 1, math.ColorWhite, metadata.PrimitiveTypeTriangles)
	ctx.PopMatrix()
	ctx.Rect(0, 0, 1, 1, math.ColorWhite, metadata.PrimitiveTypeTriangles)

	assert.Equal(t, ortho, ctx.Top(idraw.MatrixProjection))
	calls := submit(t, ctx, backend)
	require.Len(t, calls, 2)
	assert.Equal(t, mgl32.Ident4(), calls[0].MVP)
	assert.Equal(t, ortho, calls[1].MVP)
}

func TestCamera3D_LoadsViewProjection(t *testing.T) {
	ctx, _ := newContext(t)
	ctx.Camera3D(800, 600)
	assert.Equal(t, idraw.DefaultCamera3D().ViewProjection(800, 600), ctx.Top(idraw.MatrixProjection))
	assert.Equal(t, mgl32.Ident4(), ctx.Top(idraw.MatrixModelview))

	cam := idraw.DefaultCamera3D()
	cam.Projection = idraw.CameraOrthographic
	cam.OrthoScale = 2
	ctx.Camera(cam, 100, 100)
	assert.Equal(t, mgl32.Ortho(-2, 2, -2, 2, 0.1, 1000).Mul4(cam.View()), ctx.Top(idraw.MatrixProjection))
}
