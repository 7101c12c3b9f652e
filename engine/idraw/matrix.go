package idraw

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/spaghettifunk/idraw/engine/containers"
	"github.com/spaghettifunk/idraw/engine/math"
)

type MatrixMode uint8

const (
	MatrixModelview MatrixMode = iota
	MatrixProjection
)

func (m MatrixMode) String() string {
	if m == MatrixProjection {
		return "projection"
	}
	return "modelview"
}

func (c *Context) stack(mode MatrixMode) *containers.Stack[mgl32.Mat4] {
	if mode == MatrixProjection {
		return c.cache.projection
	}
	return c.cache.modelview
}

// SetMatrixMode selects the stack LoadMatrix, MulMatrix and the transform
// helpers operate on.
func (c *Context) SetMatrixMode(mode MatrixMode) {
	c.cache.mode = mode
}

func (c *Context) MatrixMode() MatrixMode {
	return c.cache.mode
}

// Top returns the current matrix of the stack of mode.
func (c *Context) Top(mode MatrixMode) mgl32.Mat4 {
	return c.stack(mode).Top()
}

// Depth is the number of matrices on the stack of mode. It is never below 1.
func (c *Context) Depth(mode MatrixMode) int {
	return c.stack(mode).Len()
}

// PushMatrix duplicates the top of the stack of mode and makes mode current.
// Pushing the projection stack flushes first.
func (c *Context) PushMatrix(mode MatrixMode) {
	c.PushMatrixEx(mode, mode == MatrixProjection)
}

func (c *Context) PushMatrixEx(mode MatrixMode, flush bool) {
	if flush {
		c.Flush()
	}
	c.cache.modes.Push(mode)
	s := c.stack(mode)
	s.Push(s.Top())
	c.cache.mode = mode
}

// PopMatrix undoes the innermost PushMatrix. It does nothing when no push is
// outstanding.
func (c *Context) PopMatrix() {
	if c.cache.modes.Empty() {
		return
	}
	c.PopMatrixEx(c.cache.modes.Top() == MatrixProjection)
}

func (c *Context) PopMatrixEx(flush bool) {
	mode, ok := c.cache.modes.Pop()
	if !ok {
		return
	}
	if flush {
		c.Flush()
	}
	if s := c.stack(mode); s.Len() > 1 {
		s.Pop()
	}
	if c.cache.modes.Empty() {
		c.cache.mode = MatrixModelview
	} else {
		c.cache.mode = c.cache.modes.Top()
	}
}

// LoadMatrix replaces the current matrix.
func (c *Context) LoadMatrix(m mgl32.Mat4) {
	c.flushProjection()
	c.stack(c.cache.mode).SetTop(m)
}

func (c *Context) LoadIdentity() {
	c.LoadMatrix(mgl32.Ident4())
}

// MulMatrix sets the current matrix to current * m, so m applies to vertices
// before the transforms already composed.
func (c *Context) MulMatrix(m mgl32.Mat4) {
	c.flushProjection()
	s := c.stack(c.cache.mode)
	s.SetTop(s.Top().Mul4(m))
}

func (c *Context) Translate(x, y, z float32) {
	c.MulMatrix(mgl32.Translate3D(x, y, z))
}

// Rotate rotates by angle degrees around the axis (x, y, z).
func (c *Context) Rotate(angle, x, y, z float32) {
	axis := mgl32.Vec3{x, y, z}
	if axis.Len() == 0 {
		return
	}
	c.MulMatrix(mgl32.HomogRotate3D(math.DegToRad(angle), axis.Normalize()))
}

func (c *Context) Scale(x, y, z float32) {
	c.MulMatrix(mgl32.Scale3D(x, y, z))
}

// The projection is uploaded with each draw, so pending vertices must be
// drawn before it changes.
func (c *Context) flushProjection() {
	if c.cache.mode == MatrixProjection {
		c.Flush()
	}
}
