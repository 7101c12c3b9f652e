package idraw

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/spaghettifunk/idraw/engine/math"
	"github.com/spaghettifunk/idraw/engine/renderer/metadata"
)

// Corners of the unit cube, indexed by the bits (x, y, z).
var cubeCorners = [8]mgl32.Vec3{
	{-1, -1, -1}, {1, -1, -1}, {-1, 1, -1}, {1, 1, -1},
	{-1, -1, 1}, {1, -1, 1}, {-1, 1, 1}, {1, 1, 1},
}

// Faces as corner indices in counter clockwise order seen from outside.
var cubeFaces = [6][4]int{
	{4, 5, 7, 6}, // +z
	{1, 0, 2, 3}, // -z
	{5, 1, 3, 7}, // +x
	{0, 4, 6, 2}, // -x
	{6, 7, 3, 2}, // +y
	{0, 1, 5, 4}, // -y
}

var cubeEdges = [12][2]int{
	{0, 1}, {2, 3}, {4, 5}, {6, 7},
	{0, 2}, {1, 3}, {4, 6}, {5, 7},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

// Box draws an axis aligned box around center, extending halfExtents along
// each axis.
func (c *Context) Box(center, halfExtents mgl32.Vec3, col math.Color, prim metadata.PrimitiveType) {
	corner := func(i int) mgl32.Vec3 {
		k := cubeCorners[i]
		return center.Add(mgl32.Vec3{k[0] * halfExtents[0], k[1] * halfExtents[1], k[2] * halfExtents[2]})
	}
	c.Begin(prim)
	c.Color(col)
	if prim.Normalized() == metadata.PrimitiveTypeLines {
		c.UV(0, 0)
		for _, e := range cubeEdges {
			c.PositionV(corner(e[0]))
			c.PositionV(corner(e[1]))
		}
		c.End()
		return
	}
	uvs := [4]mgl32.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	for _, f := range cubeFaces {
		for _, i := range [6]int{0, 1, 2, 0, 2, 3} {
			c.UV(uvs[i][0], uvs[i][1])
			c.PositionV(corner(f[i]))
		}
	}
	c.End()
}

// Sphere draws a UV sphere split into rings along y and slices around it.
func (c *Context) Sphere(center mgl32.Vec3, radius float32, rings, slices int, col math.Color, prim metadata.PrimitiveType) {
	rings = max(rings, 2)
	slices = max(slices, 3)
	point := func(ring, slice int) (mgl32.Vec3, mgl32.Vec2) {
		u := float32(slice) / float32(slices)
		v := float32(ring) / float32(rings)
		theta := v * math.K_PI
		phi := u * math.K_PI_2
		p := mgl32.Vec3{
			math.Sin(theta) * math.Cos(phi),
			math.Cos(theta),
			math.Sin(theta) * math.Sin(phi),
		}
		return center.Add(p.Mul(radius)), mgl32.Vec2{u, v}
	}

	c.Begin(prim)
	c.Color(col)
	lines := prim.Normalized() == metadata.PrimitiveTypeLines
	for r := 0; r < rings; r++ {
		for s := 0; s < slices; s++ {
			p00, t00 := point(r, s)
			p01, t01 := point(r, s+1)
			p10, t10 := point(r+1, s)
			p11, t11 := point(r+1, s+1)
			if lines {
				c.UV(0, 0)
				c.PositionV(p00)
				c.PositionV(p01)
				c.PositionV(p00)
				c.PositionV(p10)
				continue
			}
			c.Vertex(Vertex{Position: p00, UV: t00, Color: col})
			c.Vertex(Vertex{Position: p11, UV: t11, Color: col})
			c.Vertex(Vertex{Position: p10, UV: t10, Color: col})

			c.Vertex(Vertex{Position: p00, UV: t00, Color: col})
			c.Vertex(Vertex{Position: p01, UV: t01, Color: col})
			c.Vertex(Vertex{Position: p11, UV: t11, Color: col})
		}
	}
	c.End()
}

// Cylinder draws a capped cylinder standing on base along +y. Different top
// and bottom radii make a truncated cone.
func (c *Context) Cylinder(base mgl32.Vec3, radiusTop, radiusBottom, height float32, slices int, col math.Color, prim metadata.PrimitiveType) {
	slices = max(slices, 3)
	top := base.Add(mgl32.Vec3{0, height, 0})
	rim := func(center mgl32.Vec3, radius float32, i int) mgl32.Vec3 {
		a := math.K_PI_2 * float32(i) / float32(slices)
		return center.Add(mgl32.Vec3{math.Cos(a) * radius, 0, math.Sin(a) * radius})
	}

	c.Begin(prim)
	c.Color(col)
	c.UV(0, 0)
	lines := prim.Normalized() == metadata.PrimitiveTypeLines
	for i := 0; i < slices; i++ {
		b0, b1 := rim(base, radiusBottom, i), rim(base, radiusBottom, i+1)
		t0, t1 := rim(top, radiusTop, i), rim(top, radiusTop, i+1)
		if lines {
			c.PositionV(b0)
			c.PositionV(b1)
			c.PositionV(b0)
			c.PositionV(t0)
			if radiusTop > 0 {
				c.PositionV(t0)
				c.PositionV(t1)
			}
			continue
		}
		// Side.
		c.PositionV(b0)
		c.PositionV(t1)
		c.PositionV(b1)
		if radiusTop > 0 {
			c.PositionV(b0)
			c.PositionV(t0)
			c.PositionV(t1)
			// Top cap.
			c.PositionV(top)
			c.PositionV(t1)
			c.PositionV(t0)
		}
		// Bottom cap.
		if radiusBottom > 0 {
			c.PositionV(base)
			c.PositionV(b0)
			c.PositionV(b1)
		}
	}
	c.End()
}

// Cone is a cylinder with a pointed top.
func (c *Context) Cone(base mgl32.Vec3, radius, height float32, slices int, col math.Color, prim metadata.PrimitiveType) {
	c.Cylinder(base, 0, radius, height, slices, col, prim)
}
