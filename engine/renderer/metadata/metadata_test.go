package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHandleValidity(t *testing.T) {
	assert.False(t, TextureHandle{}.Valid())
	assert.False(t, TextureHandle{ID: InvalidID}.Valid())
	assert.True(t, NewHandle[textureResource](3).Valid())
	assert.Equal(t, "handle(3)", ShaderHandle{ID: 3}.String())
}

func TestPipelineStateKeyCoversAllCombinations(t *testing.T) {
	seen := map[uint16]bool{}
	for k := uint16(0); k < PipelineStateCombinations; k++ {
		s := PipelineStateFromKey(k)
		assert.Equal(t, k, s.Key())
		seen[s.Key()] = true
	}
	assert.Len(t, seen, PipelineStateCombinations)
}

func TestPipelineStateNormalized(t *testing.T) {
	s := PipelineStateAttr{DepthEnabled: 7, BlendEnabled: 1, PrimType: 9}
	n := s.Normalized()
	assert.Equal(t, PipelineStateAttr{DepthEnabled: 1, BlendEnabled: 1, PrimType: uint16(PrimitiveTypeTriangles)}, n)
	assert.Equal(t, PrimitiveTypeLines, PrimitiveType(1).Normalized())
	assert.Equal(t, PrimitiveTypeTriangles, PrimitiveType(4).Normalized())
}

func TestVertexLayout(t *testing.T) {
	assert.Equal(t, uint32(24), DefaultVertexLayout.Stride())
	assert.Equal(t, uint32(12), DefaultVertexLayout.Offset(1))
	assert.Equal(t, uint32(20), DefaultVertexLayout.Offset(2))
	assert.Equal(t, 2, DefaultVertexLayout.Index(VertexAttributeColor))

	custom := VertexLayout{VertexAttributePosition, VertexAttributeColor}
	assert.Equal(t, uint32(16), custom.Stride())
	assert.Equal(t, -1, custom.Index(VertexAttributeUV))
}

func TestTextureDescValidate(t *testing.T) {
	d := &TextureDesc{Name: "t", Width: 2, Height: 2, Format: TextureFormatRGBA8, Data: make([]byte, 16)}
	assert.NoError(t, d.Validate())
	d.Data = make([]byte, 15)
	assert.Error(t, d.Validate())
	d.Data = nil
	d.Width = 0
	assert.Error(t, d.Validate())
}

func TestUniformTypeSize(t *testing.T) {
	assert.Equal(t, 64, ShaderUniformTypeMatrix4.Size())
	assert.Equal(t, 4, ShaderUniformTypeSampler.Size())
	assert.Equal(t, 12, ShaderUniformTypeFloat32_3.Size())
}

func TestFontMeasure(t *testing.T) {
	f := NewFont("test", FONT_TYPE_BITMAP)
	f.LineHeight = 10
	f.TabXAdvance = 20
	f.Glyphs['A'] = FontGlyph{Codepoint: 'A', XAdvance: 8}
	f.Glyphs['?'] = FontGlyph{Codepoint: '?', XAdvance: 5}
	f.AddKerning(FontKerning{Codepoint0: 'A', Codepoint1: 'A', Amount: -1})

	w, h := f.Measure("AA\n\tZ")
	assert.Equal(t, float32(25), w)
	assert.Equal(t, float32(20), h)
}
