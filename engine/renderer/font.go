package renderer

import (
	"image"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/spaghettifunk/idraw/engine/renderer/metadata"
)

const (
	fontAtlasWidth   = 256
	fontGlyphPadding = 1
	firstBakedRune   = 32
	lastBakedRune    = 126
)

type bakedGlyph struct {
	r       rune
	dr      image.Rectangle
	mask    image.Image
	maskp   image.Point
	advance fixed.Int26_6
}

// BakeFont rasterizes the printable ASCII range of face into a white RGBA
// atlas whose alpha channel holds the glyph coverage. Glyph offsets are
// relative to the top of the line.
func BakeFont(face font.Face, name string) (*metadata.Font, *image.RGBA) {
	m := face.Metrics()
	ascent := m.Ascent.Ceil()
	lineHeight := m.Height.Ceil()
	if lineHeight == 0 {
		lineHeight = ascent + m.Descent.Ceil()
	}

	glyphs := make([]bakedGlyph, 0, lastBakedRune-firstBakedRune+1)
	for r := rune(firstBakedRune); r <= lastBakedRune; r++ {
		dr, mask, maskp, advance, ok := face.Glyph(fixed.P(0, ascent), r)
		if !ok {
			continue
		}
		glyphs = append(glyphs, bakedGlyph{r: r, dr: dr, mask: mask, maskp: maskp, advance: advance})
	}

	// Shelf packing: fill rows left to right.
	positions := make([]image.Point, len(glyphs))
	x, y, rowHeight := fontGlyphPadding, fontGlyphPadding, 0
	for i, g := range glyphs {
		w, h := g.dr.Dx(), g.dr.Dy()
		if x+w+fontGlyphPadding > fontAtlasWidth {
			x = fontGlyphPadding
			y += rowHeight + fontGlyphPadding
			rowHeight = 0
		}
		positions[i] = image.Pt(x, y)
		x += w + fontGlyphPadding
		rowHeight = max(rowHeight, h)
	}
	atlasHeight := nextPowerOfTwo(y + rowHeight + fontGlyphPadding)

	atlas := image.NewRGBA(image.Rect(0, 0, fontAtlasWidth, atlasHeight))
	f := metadata.NewFont(name, metadata.FONT_TYPE_SYSTEM)
	f.Size = uint32(lineHeight)
	f.LineHeight = int32(lineHeight)
	f.Baseline = int32(ascent)
	f.AtlasSizeX = fontAtlasWidth
	f.AtlasSizeY = int32(atlasHeight)

	for i, g := range glyphs {
		p := positions[i]
		dst := image.Rect(p.X, p.Y, p.X+g.dr.Dx(), p.Y+g.dr.Dy())
		if g.mask != nil && !dst.Empty() {
			draw.DrawMask(atlas, dst, image.White, image.Point{}, g.mask, g.maskp, draw.Over)
		}
		f.Glyphs[g.r] = metadata.FontGlyph{
			Codepoint: g.r,
			X:         uint16(p.X),
			Y:         uint16(p.Y),
			Width:     uint16(g.dr.Dx()),
			Height:    uint16(g.dr.Dy()),
			XOffset:   int16(g.dr.Min.X),
			YOffset:   int16(g.dr.Min.Y),
			XAdvance:  int16(g.advance.Round()),
		}
	}

	for _, a := range glyphs {
		for _, b := range glyphs {
			if k := face.Kern(a.r, b.r).Round(); k != 0 {
				f.AddKerning(metadata.FontKerning{Codepoint0: a.r, Codepoint1: b.r, Amount: int16(k)})
			}
		}
	}

	if space, ok := f.Glyphs[' ']; ok {
		f.TabXAdvance = float32(space.XAdvance) * 4
	}
	return f, atlas
}

func nextPowerOfTwo(v int) int {
	p := 1
	for p < v {
		p <<= 1
	}
	return p
}

// FontTextureDesc wraps an RGBA atlas into a texture description.
func FontTextureDesc(f *metadata.Font, atlas *image.RGBA) *metadata.TextureDesc {
	return &metadata.TextureDesc{
		Name:      "font." + f.Name,
		Width:     uint32(atlas.Rect.Dx()),
		Height:    uint32(atlas.Rect.Dy()),
		Format:    metadata.TextureFormatRGBA8,
		MinFilter: metadata.TextureFilterNearest,
		MagFilter: metadata.TextureFilterNearest,
		WrapS:     metadata.TextureWrapClampToEdge,
		WrapT:     metadata.TextureWrapClampToEdge,
		Data:      atlas.Pix,
	}
}
