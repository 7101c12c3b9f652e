package idraw

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/spaghettifunk/idraw/engine/math"
)

type CameraProjection uint8

const (
	CameraOrthographic CameraProjection = iota
	CameraPerspective
)

// Camera describes a view and a projection. Fov is the vertical field of
// view in degrees, OrthoScale the half height of an orthographic view.
type Camera struct {
	Projection CameraProjection
	Position   mgl32.Vec3
	Target     mgl32.Vec3
	Up         mgl32.Vec3
	Fov        float32
	Near       float32
	Far        float32
	OrthoScale float32
}

func DefaultCamera3D() Camera {
	return Camera{
		Projection: CameraPerspective,
		Position:   mgl32.Vec3{0, 0, 3},
		Up:         mgl32.Vec3{0, 1, 0},
		Fov:        60,
		Near:       0.1,
		Far:        1000,
		OrthoScale: 1,
	}
}

func (cam Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(cam.Position, cam.Target, cam.Up)
}

func (cam Camera) ProjectionMatrix(width, height float32) mgl32.Mat4 {
	aspect := float32(1)
	if height > 0 {
		aspect = width / height
	}
	if cam.Projection == CameraOrthographic {
		s := cam.OrthoScale
		return mgl32.Ortho(-s*aspect, s*aspect, -s, s, cam.Near, cam.Far)
	}
	return mgl32.Perspective(math.DegToRad(cam.Fov), aspect, cam.Near, cam.Far)
}

// ViewProjection is projection * view for a viewport of width x height.
func (cam Camera) ViewProjection(width, height float32) mgl32.Mat4 {
	return cam.ProjectionMatrix(width, height).Mul4(cam.View())
}

// Camera2D loads a pixel space projection with the origin in the top left
// corner and y growing downwards.
func (c *Context) Camera2D(width, height uint32) {
	c.Flush()
	c.cache.projection.SetTop(mgl32.Ortho(0, float32(width), float32(height), 0, -1, 1))
}

// Camera3D loads the default perspective camera.
func (c *Context) Camera3D(width, height uint32) {
	c.Camera(DefaultCamera3D(), width, height)
}

// Camera replaces the projection matrix with the view projection of cam.
func (c *Context) Camera(cam Camera, width, height uint32) {
	c.Flush()
	c.cache.projection.SetTop(cam.ViewProjection(float32(width), float32(height)))
}
