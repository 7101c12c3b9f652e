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

func TestRect_Filled(t *testing.T) {
	ctx, backend := newContext(t)
	ctx.Rect(0, 0, 10, 10, math.ColorRed, metadata.PrimitiveTypeTriangles)

	calls := submit(t, ctx, backend)
	require.Len(t, calls, 1)
	call := calls[0]
	require.Equal(t, 6, call.VertexCount())

	corners := map[mgl32.Vec2]mgl32.Vec2{
		{0, 0}:   {0, 0},
		{10, 0}:  {1, 0},
		{0, 10}:  {0, 1},
		{10, 10}: {1, 1},
	}
	uvs := call.UVs()
	for i, p := range call.Positions() {
		uv, ok := corners[p.Vec2()]
		require.True(t, ok, "unexpected corner %v", p)
		assert.Equal(t, uv, uvs[i])
	}
	for _, c := range call.Colors() {
		assert.Equal(t, math.ColorRed, c)
	}
}

func TestRect_Outline(t *testing.T) {
	ctx, backend := newContext(t)
	ctx.Rect(0, 0, 10, 10, math.ColorGreen, metadata.PrimitiveTypeLines)

	calls := submit(t, ctx, backend)
	require.Len(t, calls, 1)
	assert.Equal(t, metadata.PrimitiveTypeLines, calls[0].Primitive())
	assert.Equal(t, 8, calls[0].VertexCount())
}

func TestRectTextured_RestoresTexture(t *testing.T) {
	ctx, backend := newContext(t)
	tex, err := ctx.Device().CreateTexture(&metadata.TextureDesc{
		Name: "sprite", Width: 2, Height: 2, Format: metadata.TextureFormatRGBA8, Data: make([]byte, 16),
	})
	require.NoError(t, err)

	ctx.RectTextured(mgl32.Vec2{0, 0}, mgl32.Vec2{4, 4}, tex, math.ColorWhite)
	assert.Equal(t, ctx.Static().DefaultTexture, ctx.Texture())
	ctx.Rect(0, 0, 1, 1, math.ColorWhite, metadata.PrimitiveTypeTriangles)

	calls := submit(t, ctx, backend)
	require.Len(t, calls, 2)
	assert.Equal(t, tex, calls[0].Texture)
	assert.Equal(t, ctx.Static().DefaultTexture, calls[1].Texture)
}

func TestRectUV_MapsCorners(t *testing.T) {
	ctx, backend := newContext(t)
	ctx.RectUV(mgl32.Vec2{0, 0}, mgl32.Vec2{2, 2}, mgl32.Vec2{0.25, 0.5}, mgl32.Vec2{0.75, 1}, math.ColorWhite, metadata.PrimitiveTypeTriangles)

	calls := submit(t, ctx, backend)
	require.Len(t, calls, 1)
	assert.Equal(t, mgl32.Vec2{0.25, 0.5}, calls[0].UVs()[0])
	assert.Equal(t, mgl32.Vec2{0.75, 1}, calls[0].UVs()[2])
}

func TestCircle_AutoSegments(t *testing.T) {
	ctx, backend := newContext(t)
	ctx.Circle(0, 0, 10, 0, math.ColorWhite, metadata.PrimitiveTypeTriangles)

	segments := math.CircleSegments(10, idraw.DefaultCircleErrorRate)
	require.GreaterOrEqual(t, segments, math.MinCircleSegments)

	calls := submit(t, ctx, backend)
	require.Len(t, calls, 1)
	assert.Equal(t, 3*segments, calls[0].VertexCount())
	assert.Equal(t, mgl32.Vec3{0, 0, 0}, calls[0].Positions()[0])
}

func TestCircle_SegmentsClampedAndOutline(t *testing.T) {
	ctx, backend := newContext(t)
	ctx.Circle(0, 0, 10, 2, math.ColorWhite, metadata.PrimitiveTypeTriangles)
	ctx.Circle(0, 0, 10, 16, math.ColorWhite, metadata.PrimitiveTypeLines)

	calls := submit(t, ctx, backend)
	require.Len(t, calls, 2)
	assert.Equal(t, 3*math.MinCircleSegments, calls[0].VertexCount())
	assert.Equal(t, 2*16, calls[1].VertexCount())
}

func TestCircle_ErrorRateOption(t *testing.T) {
	ctx, backend := newContext(t, idraw.WithCircleErrorRate(0.1))
	ctx.Circle(0, 0, 10, 0, math.ColorWhite, metadata.PrimitiveTypeTriangles)

	calls := submit(t, ctx, backend)
	require.Len(t, calls, 1)
	assert.Equal(t, 3*math.CircleSegments(10, 0.1), calls[0].VertexCount())
	assert.Greater(t, math.CircleSegments(10, 0.1), math.CircleSegments(10, 0.5))
}

func TestCircleSector(t *testing.T) {
	ctx, backend := newContext(t)
	ctx.CircleSector(0, 0, 10, 0, 90, 4, math.ColorWhite, metadata.PrimitiveTypeTriangles)
	ctx.CircleSector(0, 0, 10, 0, 90, 4, math.ColorWhite, metadata.PrimitiveTypeLines)

	calls := submit(t, ctx, backend)
	require.Len(t, calls, 2)
	assert.Equal(t, 12, calls[0].VertexCount())
	// Two radii plus four chords.
	assert.Equal(t, 12, calls[1].VertexCount())

	last := calls[0].Positions()[11]
	assert.InDelta(t, 0, last.X(), 1e-4)
	assert.InDelta(t, 10, last.Y(), 1e-4)
}

func TestArc(t *testing.T) {
	ctx, backend := newContext(t)
	ctx.Arc(0, 0, 5, 10, 0, 180, 4, math.ColorWhite, metadata.PrimitiveTypeTriangles)

	calls := submit(t, ctx, backend)
	require.Len(t, calls, 1)
	assert.Equal(t, 24, calls[0].VertexCount())
	for _, p := range calls[0].Positions() {
		r := p.Vec2().Len()
		assert.True(t, r > 4.99 && r < 10.01, "radius %f", r)
	}
}

func TestTriangleAndLine(t *testing.T) {
	ctx, backend := newContext(t)
	ctx.TriangleColors(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0},
		math.ColorRed, math.ColorGreen, math.ColorBlue, metadata.PrimitiveTypeTriangles)
	ctx.Triangle(0, 0, 1, 0, 0, 1, math.ColorWhite, metadata.PrimitiveTypeLines)
	ctx.Line(0, 0, 5, 5, math.ColorWhite)

	calls := submit(t, ctx, backend)
	require.Len(t, calls, 2)
	assert.Equal(t, []math.Color{math.ColorRed, math.ColorGreen, math.ColorBlue}, calls[0].Colors())
	assert.Equal(t, 8, calls[1].VertexCount())
}

func TestBezier_EndsOnControlPoints(t *testing.T) {
	ctx, backend := newContext(t)
	p0, p3 := mgl32.Vec2{0, 0}, mgl32.Vec2{30, 0}
	ctx.Bezier(p0, mgl32.Vec2{10, 20}, mgl32.Vec2{20, -20}, p3, 8, math.ColorWhite)

	calls := submit(t, ctx, backend)
	require.Len(t, calls, 1)
	positions := calls[0].Positions()
	require.Len(t, positions, 16)
	assert.Equal(t, p0, positions[0].Vec2())
	assert.InDelta(t, p3.X(), positions[15].X(), 1e-4)
}

func TestBox(t *testing.T) {
	ctx, backend := newContext(t)
	ctx.Box(mgl32.Vec3{1, 1, 1}, mgl32.Vec3{1, 2, 3}, math.ColorWhite, metadata.PrimitiveTypeTriangles)
	ctx.Box(mgl32.Vec3{}, mgl32.Vec3{1, 1, 1}, math.ColorWhite, metadata.PrimitiveTypeLines)

	calls := submit(t, ctx, backend)
	require.Len(t, calls, 2)
	assert.Equal(t, 36, calls[0].VertexCount())
	assert.Equal(t, 24, calls[1].VertexCount())
	for _, p := range calls[0].Positions() {
		assert.Contains(t, []float32{0, 2}, p.X())
		assert.Contains(t, []float32{-1, 3}, p.Y())
		assert.Contains(t, []float32{-2, 4}, p.Z())
	}
}

func TestSphereCylinderCone(t *testing.T) {
	ctx, backend := newContext(t)
	ctx.Sphere(mgl32.Vec3{}, 2, 4, 6, math.ColorWhite, metadata.PrimitiveTypeTriangles)
	ctx.SetBlendEnabled(false)
	ctx.Cylinder(mgl32.Vec3{}, 1, 1, 2, 8, math.ColorWhite, metadata.PrimitiveTypeTriangles)
	ctx.SetDepthEnabled(true)
	ctx.Cone(mgl32.Vec3{}, 1, 2, 8, math.ColorWhite, metadata.PrimitiveTypeTriangles)

	calls := submit(t, ctx, backend)
	require.Len(t, calls, 3)
	assert.Equal(t, 4*6*6, calls[0].VertexCount())
	for _, p := range calls[0].Positions() {
		assert.InDelta(t, 2, p.Len(), 1e-4)
	}
	assert.Equal(t, 8*12, calls[1].VertexCount())
	assert.Equal(t, 8*6, calls[2].VertexCount())
}
