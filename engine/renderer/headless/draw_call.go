package headless

import (
	"encoding/binary"
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/spaghettifunk/idraw/engine/math"
	"github.com/spaghettifunk/idraw/engine/renderer/metadata"
)

// DrawCall is a snapshot of one executed draw.
type DrawCall struct {
	Pipeline metadata.PipelineHandle
	State    metadata.PipelineStateAttr
	Layout   metadata.VertexLayout
	Stride   uint32
	// Texture bound to sampler slot 0.
	Texture metadata.TextureHandle
	MVP     mgl32.Mat4
	HasMVP  bool
	Start   uint32
	Count   uint32
	// Nil for non-indexed draws.
	Indices []uint32
	// For non-indexed draws, the Count vertices starting at Start. For
	// indexed draws, the whole bound vertex buffer.
	Vertices []byte
}

func (d DrawCall) Primitive() metadata.PrimitiveType {
	return d.State.Primitive()
}

func (d DrawCall) VertexCount() int {
	if d.Stride == 0 {
		return 0
	}
	return len(d.Vertices) / int(d.Stride)
}

func (d DrawCall) attribute(attr metadata.VertexAttribute, i int) []byte {
	idx := d.Layout.Index(attr)
	if idx < 0 {
		return nil
	}
	off := i*int(d.Stride) + int(d.Layout.Offset(idx))
	return d.Vertices[off : off+int(attr.Size())]
}

func readF32(p []byte, i int) float32 {
	return gomath.Float32frombits(binary.LittleEndian.Uint32(p[i*4:]))
}

// Positions decodes the position attribute of every vertex.
func (d DrawCall) Positions() []mgl32.Vec3 {
	out := make([]mgl32.Vec3, 0, d.VertexCount())
	for i := 0; i < d.VertexCount(); i++ {
		p := d.attribute(metadata.VertexAttributePosition, i)
		if p == nil {
			return nil
		}
		out = append(out, mgl32.Vec3{readF32(p, 0), readF32(p, 1), readF32(p, 2)})
	}
	return out
}

func (d DrawCall) UVs() []mgl32.Vec2 {
	out := make([]mgl32.Vec2, 0, d.VertexCount())
	for i := 0; i < d.VertexCount(); i++ {
		p := d.attribute(metadata.VertexAttributeUV, i)
		if p == nil {
			return nil
		}
		out = append(out, mgl32.Vec2{readF32(p, 0), readF32(p, 1)})
	}
	return out
}

func (d DrawCall) Colors() []math.Color {
	out := make([]math.Color, 0, d.VertexCount())
	for i := 0; i < d.VertexCount(); i++ {
		p := d.attribute(metadata.VertexAttributeColor, i)
		if p == nil {
			return nil
		}
		out = append(out, math.Color{R: p[0], G: p[1], B: p[2], A: p[3]})
	}
	return out
}
