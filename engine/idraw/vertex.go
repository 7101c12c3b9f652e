package idraw

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/spaghettifunk/idraw/engine/math"
	"github.com/spaghettifunk/idraw/engine/renderer/metadata"
)

// Vertex is one vertex of the default layout.
type Vertex struct {
	Position mgl32.Vec3
	UV       mgl32.Vec2
	Color    math.Color
}

// Begin starts a batch of primitives. Switching to another primitive type
// flushes the vertices of the previous one first.
func (c *Context) Begin(prim metadata.PrimitiveType) {
	prim = prim.Normalized()
	if uint16(prim) != c.cache.pipeline.PrimType {
		c.Flush()
		c.cache.pipeline.PrimType = uint16(prim)
	}
	c.bindPipeline()
}

// End closes a Begin. Vertices stay pending until the next flush.
func (c *Context) End() {}

// Vertex emits v with its own uv and color. The uv and color become the
// current ones.
func (c *Context) Vertex(v Vertex) {
	c.cache.uv = v.UV
	c.cache.color = v.Color
	c.Position(v.Position.X(), v.Position.Y(), v.Position.Z())
}

func (c *Context) UV(u, v float32) {
	c.cache.uv = mgl32.Vec2{u, v}
}

func (c *Context) Color(col math.Color) {
	c.cache.color = col
}

func (c *Context) Color4(r, g, b, a uint8) {
	c.cache.color = math.Color{R: r, G: g, B: b, A: a}
}

// Position emits a vertex at (x, y, z) transformed by the top of the
// modelview stack, using the current uv and color.
func (c *Context) Position(x, y, z float32) {
	p := mgl32.Vec3{x, y, z}
	if mv := c.cache.modelview.Top(); mv != mgl32.Ident4() {
		p = math.TransformPoint(mv, p)
	}
	if c.attributes == nil {
		c.vertices.WriteF32s(p[0], p[1], p[2], c.cache.uv[0], c.cache.uv[1])
		c.writeColor()
		return
	}
	for _, attr := range c.attributes {
		switch attr {
		case metadata.VertexAttributePosition:
			c.vertices.WriteF32s(p[0], p[1], p[2])
		case metadata.VertexAttributeUV:
			c.vertices.WriteF32s(c.cache.uv[0], c.cache.uv[1])
		case metadata.VertexAttributeColor:
			c.writeColor()
		}
	}
}

func (c *Context) Position2(x, y float32) {
	c.Position(x, y, 0)
}

func (c *Context) PositionV(p mgl32.Vec3) {
	c.Position(p[0], p[1], p[2])
}

func (c *Context) writeColor() {
	col := c.cache.color
	c.vertices.WriteU8(col.R)
	c.vertices.WriteU8(col.G)
	c.vertices.WriteU8(col.B)
	c.vertices.WriteU8(col.A)
}
