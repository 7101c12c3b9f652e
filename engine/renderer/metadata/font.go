package metadata

type FontType int

const (
	FONT_TYPE_BITMAP FontType = iota
	FONT_TYPE_SYSTEM
)

/** @brief Placement of one glyph inside the atlas, in pixels. */
type FontGlyph struct {
	Codepoint rune
	X         uint16
	Y         uint16
	Width     uint16
	Height    uint16
	/** @brief Offset from the pen position to the top left of the quad. */
	XOffset  int16
	YOffset  int16
	XAdvance int16
}

type FontKerning struct {
	Codepoint0 rune
	Codepoint1 rune
	Amount     int16
}

/**
 * @brief Glyph metrics and the atlas texture of a baked or loaded font.
 */
type Font struct {
	Name       string
	FontType   FontType
	Size       uint32
	LineHeight int32
	Baseline   int32
	AtlasSizeX int32
	AtlasSizeY int32
	/** @brief Set once the atlas pixels were uploaded. */
	Atlas    TextureHandle
	Glyphs   map[rune]FontGlyph
	Kernings map[[2]rune]int16
	/** @brief Horizontal advance of a tab character. */
	TabXAdvance float32
}

func NewFont(name string, fontType FontType) *Font {
	return &Font{
		Name:     name,
		FontType: fontType,
		Glyphs:   make(map[rune]FontGlyph),
		Kernings: make(map[[2]rune]int16),
	}
}

/** @brief Looks up a glyph, falling back to '?' for unknown code points. */
func (f *Font) Glyph(r rune) (FontGlyph, bool) {
	if g, ok := f.Glyphs[r]; ok {
		return g, true
	}
	g, ok := f.Glyphs['?']
	return g, ok
}

func (f *Font) Kerning(a, b rune) int16 {
	return f.Kernings[[2]rune{a, b}]
}

func (f *Font) AddKerning(k FontKerning) {
	f.Kernings[[2]rune{k.Codepoint0, k.Codepoint1}] = k.Amount
}

/** @brief Size in pixels of the text's bounding box. */
func (f *Font) Measure(text string) (width, height float32) {
	var line float32
	lines := 1
	var prev rune
	for _, r := range text {
		switch r {
		case '\n':
			width = max(width, line)
			line = 0
			lines++
			prev = 0
			continue
		case '\t':
			line += f.TabXAdvance
			prev = 0
			continue
		}
		g, ok := f.Glyph(r)
		if !ok {
			continue
		}
		if prev != 0 {
			line += float32(f.Kerning(prev, r))
		}
		line += float32(g.XAdvance)
		prev = r
	}
	width = max(width, line)
	return width, float32(lines) * float32(f.LineHeight)
}
