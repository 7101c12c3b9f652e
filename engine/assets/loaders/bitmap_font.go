package loaders

import (
	"fmt"
	"path/filepath"

	"github.com/fzipp/bmfont"

	"github.com/spaghettifunk/idraw/engine/core"
	"github.com/spaghettifunk/idraw/engine/renderer/metadata"
)

// BitmapFontResourceData is a font descriptor plus the decoded atlas page.
type BitmapFontResourceData struct {
	Font *metadata.Font
	Page *metadata.ImageResourceData
}

// BitmapFontLoader reads AngelCode .fnt descriptors. Only the first page is
// used as the atlas.
type BitmapFontLoader struct {
	Images ImageLoader
}

func (fl *BitmapFontLoader) Load(path string, assetType metadata.ResourceType, params interface{}) (*metadata.Resource, error) {
	bf, err := bmfont.Load(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", core.ErrFontNotFound, path, err)
	}
	d := bf.Descriptor

	f := metadata.NewFont(d.Info.Face, metadata.FONT_TYPE_BITMAP)
	f.Size = uint32(d.Info.Size)
	f.LineHeight = int32(d.Common.LineHeight)
	f.Baseline = int32(d.Common.Base)
	f.AtlasSizeX = int32(d.Common.ScaleW)
	f.AtlasSizeY = int32(d.Common.ScaleH)

	var pageFile string
	for _, p := range d.Pages {
		if p.ID == 0 {
			pageFile = p.File
		}
	}
	if len(d.Pages) > 1 {
		core.LogWarn("bitmap font '%s' has %d pages, only the first is used", path, len(d.Pages))
	}
	if pageFile == "" {
		return nil, fmt.Errorf("%w: bitmap font '%s' has no page", core.ErrFontNotFound, path)
	}

	for _, g := range d.Chars {
		if g.Page != 0 {
			continue
		}
		f.Glyphs[g.ID] = metadata.FontGlyph{
			Codepoint: g.ID,
			X:         uint16(g.X),
			Y:         uint16(g.Y),
			Width:     uint16(g.Width),
			Height:    uint16(g.Height),
			XOffset:   int16(g.XOffset),
			YOffset:   int16(g.YOffset),
			XAdvance:  int16(g.XAdvance),
		}
	}
	for p, k := range d.Kerning {
		f.AddKerning(metadata.FontKerning{Codepoint0: p.First, Codepoint1: p.Second, Amount: int16(k.Amount)})
	}
	if space, ok := f.Glyphs[' ']; ok {
		f.TabXAdvance = float32(space.XAdvance) * 4
	}

	page, err := fl.Images.Load(filepath.Join(filepath.Dir(path), pageFile), metadata.ResourceTypeImage, nil)
	if err != nil {
		return nil, err
	}
	pageData := page.Data.(*metadata.ImageResourceData)
	f.AtlasSizeX, f.AtlasSizeY = int32(pageData.Width), int32(pageData.Height)

	return &metadata.Resource{
		Name:     f.Name,
		FullPath: path,
		Type:     metadata.ResourceTypeBitmapFont,
		DataSize: page.DataSize,
		Data:     &BitmapFontResourceData{Font: f, Page: pageData},
	}, nil
}

func (fl *BitmapFontLoader) Unload(res *metadata.Resource) error {
	res.Data = nil
	res.DataSize = 0
	return nil
}
