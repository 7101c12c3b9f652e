package math

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestCircleSegments(t *testing.T) {
	assert.Equal(t, 10, CircleSegments(10, 0.5))
	assert.Equal(t, MinCircleSegments, CircleSegments(0.25, 0.5))
	assert.Equal(t, MinCircleSegments, CircleSegments(0, 0.5))
	assert.Greater(t, CircleSegments(200, 0.5), CircleSegments(10, 0.5))
}

func TestArcSegments(t *testing.T) {
	full := CircleSegments(100, 0.5)
	half := ArcSegments(100, 0.5, 180)
	assert.InDelta(t, float64(full)/2, float64(half), 1)
	assert.Equal(t, MinCircleSegments, ArcSegments(100, 0.5, 1))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 3, Clamp(5, 0, 3))
	assert.Equal(t, float32(0), Clamp(float32(-1), 0, 1))
	assert.Equal(t, uint16(2), Clamp(uint16(2), 1, 4))
}

func TestCubicBezierEndpoints(t *testing.T) {
	p0, p1, p2, p3 := mgl32.Vec2{0, 0}, mgl32.Vec2{1, 2}, mgl32.Vec2{3, 2}, mgl32.Vec2{4, 0}
	assert.True(t, CubicBezier(p0, p1, p2, p3, 0).ApproxEqual(p0))
	assert.True(t, CubicBezier(p0, p1, p2, p3, 1).ApproxEqual(p3))
}

func TestTransformPoint(t *testing.T) {
	got := TransformPoint(mgl32.Translate3D(5, 0, 0), mgl32.Vec3{1, 1, 1})
	assert.True(t, got.ApproxEqual(mgl32.Vec3{6, 1, 1}))
}

func TestColor(t *testing.T) {
	assert.Equal(t, ColorWhite, NewColorF(1, 1, 1, 1))
	assert.Equal(t, Color{0, 128, 255, 0}, NewColorF(-1, 0.5, 2, 0))
	assert.Equal(t, uint8(10), ColorRed.WithAlpha(10).A)
}
