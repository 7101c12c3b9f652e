package idraw_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/idraw/engine/math"
)

func TestText_AdvancesPen(t *testing.T) {
	ctx, backend := newContext(t)
	font := ctx.Static().Font
	ctx.Text(0, 0, "AB", nil, math.ColorWhite, false)

	calls := submit(t, ctx, backend)
	require.Len(t, calls, 1)
	call := calls[0]
	require.Equal(t, 12, call.VertexCount())
	assert.Equal(t, font.Atlas, call.Texture)

	a, ok := font.Glyph('A')
	require.True(t, ok)
	positions := call.Positions()
	assert.GreaterOrEqual(t, positions[6].X(), positions[0].X()+float32(a.XAdvance))
	// y grows downwards.
	assert.Greater(t, positions[2].Y(), positions[0].Y())
}

func TestText_UVsInsideAtlas(t *testing.T) {
	ctx, backend := newContext(t)
	ctx.Text(10, 10, "Hello, world!", nil, math.ColorBlue, false)

	calls := submit(t, ctx, backend)
	require.Len(t, calls, 1)
	for _, uv := range calls[0].UVs() {
		assert.True(t, uv.X() >= 0 && uv.X() <= 1)
		assert.True(t, uv.Y() >= 0 && uv.Y() <= 1)
	}
	for _, c := range calls[0].Colors() {
		assert.Equal(t, math.ColorBlue, c)
	}
}

func TestText_NewlineAndTab(t *testing.T) {
	ctx, backend := newContext(t)
	font := ctx.Static().Font
	ctx.Text(0, 0, "A\nA\tA", nil, math.ColorWhite, false)

	calls := submit(t, ctx, backend)
	require.Len(t, calls, 1)
	positions := calls[0].Positions()
	require.Len(t, positions, 18)

	assert.Equal(t, positions[0].X(), positions[6].X())
	assert.Equal(t, positions[0].Y()+float32(font.LineHeight), positions[6].Y())

	a, _ := font.Glyph('A')
	assert.Equal(t, positions[6].X()+float32(a.XAdvance)+font.TabXAdvance, positions[12].X())
}

func TestText_FlipY(t *testing.T) {
	ctx, backend := newContext(t)
	ctx.Text(0, 0, "A\nA", nil, math.ColorWhite, true)

	calls := submit(t, ctx, backend)
	require.Len(t, calls, 1)
	positions := calls[0].Positions()
	assert.Less(t, positions[2].Y(), positions[0].Y())
	assert.Less(t, positions[6].Y(), positions[0].Y())
}

func TestText_RestoresTextureAndEmptyIsNoop(t *testing.T) {
	ctx, _ := newContext(t)
	ctx.Text(0, 0, "", nil, math.ColorWhite, false)
	assert.Zero(t, ctx.Commands().Count())

	ctx.Text(0, 0, "x", nil, math.ColorWhite, false)
	assert.Equal(t, ctx.Static().DefaultTexture, ctx.Texture())
	assert.Zero(t, ctx.PendingVertices())
}

func TestMeasureText(t *testing.T) {
	ctx, _ := newContext(t)
	w, h := ctx.MeasureText("AB\nA", nil)
	assert.Equal(t, float32(14), w)
	assert.Equal(t, float32(2*ctx.Static().Font.LineHeight), h)
}
