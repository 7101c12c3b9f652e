package idraw

import (
	"github.com/spaghettifunk/idraw/engine/math"
	"github.com/spaghettifunk/idraw/engine/renderer/metadata"
)

// Text draws text with its first line's top left corner at (x, y) in a y
// down space. With flipY the lines grow upwards instead, for y up cameras.
// A nil font selects the built-in one. The previous texture is restored
// afterwards.
func (c *Context) Text(x, y float32, text string, font *metadata.Font, col math.Color, flipY bool) {
	if font == nil {
		font = c.static.Font
	}
	if len(text) == 0 {
		return
	}
	prev := c.cache.texture
	c.SetTexture(font.Atlas)
	c.Begin(metadata.PrimitiveTypeTriangles)
	c.Color(col)

	dir := float32(1)
	if flipY {
		dir = -1
	}
	aw, ah := float32(font.AtlasSizeX), float32(font.AtlasSizeY)
	penX, penY := x, y
	var prevRune rune
	for _, r := range text {
		switch r {
		case '\n':
			penX = x
			penY += dir * float32(font.LineHeight)
			prevRune = 0
			continue
		case '\t':
			penX += font.TabXAdvance
			prevRune = 0
			continue
		case '\r':
			continue
		}
		g, ok := font.Glyph(r)
		if !ok {
			continue
		}
		if prevRune != 0 {
			penX += float32(font.Kerning(prevRune, r))
		}
		prevRune = r
		if g.Width > 0 && g.Height > 0 {
			x0 := penX + float32(g.XOffset)
			x1 := x0 + float32(g.Width)
			y0 := penY + dir*float32(g.YOffset)
			y1 := y0 + dir*float32(g.Height)
			u0, v0 := float32(g.X)/aw, float32(g.Y)/ah
			u1, v1 := float32(g.X+g.Width)/aw, float32(g.Y+g.Height)/ah
			c.glyphQuad(x0, y0, x1, y1, u0, v0, u1, v1)
		}
		penX += float32(g.XAdvance)
	}
	c.End()
	c.SetTexture(prev)
}

// glyphQuad emits two triangles; (x0, y0) samples (u0, v0), the top left of
// the glyph in the atlas.
func (c *Context) glyphQuad(x0, y0, x1, y1, u0, v0, u1, v1 float32) {
	c.UV(u0, v0)
	c.Position2(x0, y0)
	c.UV(u1, v0)
	c.Position2(x1, y0)
	c.UV(u1, v1)
	c.Position2(x1, y1)

	c.UV(u0, v0)
	c.Position2(x0, y0)
	c.UV(u1, v1)
	c.Position2(x1, y1)
	c.UV(u0, v1)
	c.Position2(x0, y1)
}

// MeasureText returns the size of text drawn with font, the built-in one
// when nil.
func (c *Context) MeasureText(text string, font *metadata.Font) (float32, float32) {
	if font == nil {
		font = c.static.Font
	}
	return font.Measure(text)
}
