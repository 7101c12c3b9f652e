package idraw

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/spaghettifunk/idraw/engine/math"
	"github.com/spaghettifunk/idraw/engine/renderer/metadata"
)

func (c *Context) segments(segments int, radius float32) int {
	if segments <= 0 {
		return math.CircleSegments(radius, c.errorRate)
	}
	return max(segments, math.MinCircleSegments)
}

func (c *Context) arcSegments(segments int, radius, sweep float32) int {
	if segments <= 0 {
		return math.ArcSegments(radius, c.errorRate, sweep)
	}
	return max(segments, math.MinCircleSegments)
}

func (c *Context) Line(x0, y0, x1, y1 float32, col math.Color) {
	c.Line3D(mgl32.Vec3{x0, y0, 0}, mgl32.Vec3{x1, y1, 0}, col)
}

func (c *Context) Line3D(a, b mgl32.Vec3, col math.Color) {
	c.Begin(metadata.PrimitiveTypeLines)
	c.Color(col)
	c.PositionV(a)
	c.PositionV(b)
	c.End()
}

func (c *Context) Triangle(x0, y0, x1, y1, x2, y2 float32, col math.Color, prim metadata.PrimitiveType) {
	c.TriangleV(mgl32.Vec2{x0, y0}, mgl32.Vec2{x1, y1}, mgl32.Vec2{x2, y2}, col, prim)
}

func (c *Context) TriangleV(a, b, d mgl32.Vec2, col math.Color, prim metadata.PrimitiveType) {
	c.TriangleColors(a.Vec3(0), b.Vec3(0), d.Vec3(0), col, col, col, prim)
}

// TriangleColors draws a triangle with one color per corner.
func (c *Context) TriangleColors(a, b, d mgl32.Vec3, ca, cb, cd math.Color, prim metadata.PrimitiveType) {
	c.Begin(prim)
	c.UV(0, 0)
	if prim.Normalized() == metadata.PrimitiveTypeLines {
		c.Color(ca)
		c.PositionV(a)
		c.Color(cb)
		c.PositionV(b)
		c.PositionV(b)
		c.Color(cd)
		c.PositionV(d)
		c.PositionV(d)
		c.Color(ca)
		c.PositionV(a)
	} else {
		c.Color(ca)
		c.PositionV(a)
		c.Color(cb)
		c.PositionV(b)
		c.Color(cd)
		c.PositionV(d)
	}
	c.End()
}

// Rect draws the rectangle with corners (l, b) and (r, t). Filled rects map
// (l, b) to uv (0, 0) and (r, t) to uv (1, 1).
func (c *Context) Rect(l, b, r, t float32, col math.Color, prim metadata.PrimitiveType) {
	c.RectUV(mgl32.Vec2{l, b}, mgl32.Vec2{r, t}, mgl32.Vec2{0, 0}, mgl32.Vec2{1, 1}, col, prim)
}

func (c *Context) RectV(p0, p1 mgl32.Vec2, col math.Color, prim metadata.PrimitiveType) {
	c.RectUV(p0, p1, mgl32.Vec2{0, 0}, mgl32.Vec2{1, 1}, col, prim)
}

// RectUV draws a rectangle whose p0 corner samples uv0 and p1 corner uv1.
func (c *Context) RectUV(p0, p1, uv0, uv1 mgl32.Vec2, col math.Color, prim metadata.PrimitiveType) {
	c.Begin(prim)
	c.Color(col)
	if prim.Normalized() == metadata.PrimitiveTypeLines {
		c.UV(0, 0)
		c.rectOutline(p0, p1)
		c.End()
		return
	}
	c.UV(uv0[0], uv0[1])
	c.Position2(p0[0], p0[1])
	c.UV(uv1[0], uv0[1])
	c.Position2(p1[0], p0[1])
	c.UV(uv1[0], uv1[1])
	c.Position2(p1[0], p1[1])

	c.UV(uv0[0], uv0[1])
	c.Position2(p0[0], p0[1])
	c.UV(uv1[0], uv1[1])
	c.Position2(p1[0], p1[1])
	c.UV(uv0[0], uv1[1])
	c.Position2(p0[0], p1[1])
	c.End()
}

func (c *Context) rectOutline(p0, p1 mgl32.Vec2) {
	corners := [4]mgl32.Vec2{p0, {p1[0], p0[1]}, p1, {p0[0], p1[1]}}
	for i := range corners {
		a, b := corners[i], corners[(i+1)%len(corners)]
		c.Position2(a[0], a[1])
		c.Position2(b[0], b[1])
	}
}

// RectTextured draws a filled rectangle sampling tex. The previous texture
// is restored afterwards.
func (c *Context) RectTextured(p0, p1 mgl32.Vec2, tex metadata.TextureHandle, col math.Color) {
	prev := c.cache.texture
	c.SetTexture(tex)
	c.RectV(p0, p1, col, metadata.PrimitiveTypeTriangles)
	c.SetTexture(prev)
}

// Circle draws a circle of the given radius. With segments <= 0 the count
// is derived from the context's error rate.
func (c *Context) Circle(cx, cy, radius float32, segments int, col math.Color, prim metadata.PrimitiveType) {
	c.CircleSector(cx, cy, radius, 0, 360, c.segments(segments, radius), col, prim)
}

// CircleSector draws the pie slice between two angles in degrees, measured
// counter clockwise from the positive x axis.
func (c *Context) CircleSector(cx, cy, radius, startDeg, endDeg float32, segments int, col math.Color, prim metadata.PrimitiveType) {
	segments = c.arcSegments(segments, radius, endDeg-startDeg)
	start := math.DegToRad(startDeg)
	step := math.DegToRad(endDeg-startDeg) / float32(segments)
	full := math.Abs(endDeg-startDeg) >= 360

	c.Begin(prim)
	c.Color(col)
	c.UV(0, 0)
	lines := prim.Normalized() == metadata.PrimitiveTypeLines
	if lines && !full {
		c.Position2(cx, cy)
		c.Position2(cx+math.Cos(start)*radius, cy+math.Sin(start)*radius)
	}
	for i := 0; i < segments; i++ {
		a0 := start + step*float32(i)
		a1 := a0 + step
		if !lines {
			c.Position2(cx, cy)
		}
		c.Position2(cx+math.Cos(a0)*radius, cy+math.Sin(a0)*radius)
		c.Position2(cx+math.Cos(a1)*radius, cy+math.Sin(a1)*radius)
	}
	if lines && !full {
		end := start + step*float32(segments)
		c.Position2(cx+math.Cos(end)*radius, cy+math.Sin(end)*radius)
		c.Position2(cx, cy)
	}
	c.End()
}

// Arc draws the ring section between inner and outer radius.
func (c *Context) Arc(cx, cy, innerRadius, outerRadius, startDeg, endDeg float32, segments int, col math.Color, prim metadata.PrimitiveType) {
	if innerRadius > outerRadius {
		innerRadius, outerRadius = outerRadius, innerRadius
	}
	if innerRadius <= 0 {
		c.CircleSector(cx, cy, outerRadius, startDeg, endDeg, segments, col, prim)
		return
	}
	segments = c.arcSegments(segments, outerRadius, endDeg-startDeg)
	start := math.DegToRad(startDeg)
	step := math.DegToRad(endDeg-startDeg) / float32(segments)
	point := func(r, a float32) (float32, float32) {
		return cx + math.Cos(a)*r, cy + math.Sin(a)*r
	}

	c.Begin(prim)
	c.Color(col)
	c.UV(0, 0)
	lines := prim.Normalized() == metadata.PrimitiveTypeLines
	for i := 0; i < segments; i++ {
		a0 := start + step*float32(i)
		a1 := a0 + step
		ix0, iy0 := point(innerRadius, a0)
		ix1, iy1 := point(innerRadius, a1)
		ox0, oy0 := point(outerRadius, a0)
		ox1, oy1 := point(outerRadius, a1)
		if lines {
			c.Position2(ix0, iy0)
			c.Position2(ix1, iy1)
			c.Position2(ox0, oy0)
			c.Position2(ox1, oy1)
			continue
		}
		c.Position2(ix0, iy0)
		c.Position2(ox0, oy0)
		c.Position2(ox1, oy1)

		c.Position2(ix0, iy0)
		c.Position2(ox1, oy1)
		c.Position2(ix1, iy1)
	}
	if lines && math.Abs(endDeg-startDeg) < 360 {
		ix, iy := point(innerRadius, start)
		ox, oy := point(outerRadius, start)
		c.Position2(ix, iy)
		c.Position2(ox, oy)
		end := start + step*float32(segments)
		ix, iy = point(innerRadius, end)
		ox, oy = point(outerRadius, end)
		c.Position2(ix, iy)
		c.Position2(ox, oy)
	}
	c.End()
}

// Bezier draws the cubic curve p0..p3 as line segments. With segments <= 0
// the count follows the length of the control polygon.
func (c *Context) Bezier(p0, p1, p2, p3 mgl32.Vec2, segments int, col math.Color) {
	if segments <= 0 {
		length := p1.Sub(p0).Len() + p2.Sub(p1).Len() + p3.Sub(p2).Len()
		segments = c.segments(0, length/math.K_PI_2)
	}
	c.Begin(metadata.PrimitiveTypeLines)
	c.Color(col)
	c.UV(0, 0)
	prev := p0
	for i := 1; i <= segments; i++ {
		p := math.CubicBezier(p0, p1, p2, p3, float32(i)/float32(segments))
		c.Position2(prev[0], prev[1])
		c.Position2(p[0], p[1])
		prev = p
	}
	c.End()
}
