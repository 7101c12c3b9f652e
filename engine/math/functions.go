package math

import (
	m "math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	/** @brief An approximate representation of PI. */
	K_PI float32 = 3.14159265358979323846
	/** @brief An approximate representation of PI multiplied by 2. */
	K_PI_2 float32 = 2.0 * K_PI
	/** @brief An approximate representation of PI divided by 2. */
	K_HALF_PI float32 = 0.5 * K_PI
	/** @brief A multiplier used to convert degrees to radians. */
	K_DEG2RAD_MULTIPLIER float32 = K_PI / 180.0
	/** @brief A multiplier used to convert radians to degrees. */
	K_RAD2DEG_MULTIPLIER float32 = 180.0 / K_PI
	/** @brief Smallest positive number where 1.0 + FLOAT_EPSILON != 0 */
	K_FLOAT_EPSILON float32 = 1.192092896e-07
)

// Minimum number of segments any tessellated curve is split into.
const MinCircleSegments = 4

func Sin(x float32) float32 {
	return float32(m.Sin(float64(x)))
}

func Cos(x float32) float32 {
	return float32(m.Cos(float64(x)))
}

func Acos(x float32) float32 {
	return float32(m.Acos(float64(x)))
}

func Sqrt(x float32) float32 {
	return float32(m.Sqrt(float64(x)))
}

func Abs(x float32) float32 {
	return float32(m.Abs(float64(x)))
}

func DegToRad(degrees float32) float32 {
	return degrees * K_DEG2RAD_MULTIPLIER
}

func RadToDeg(radians float32) float32 {
	return radians * K_RAD2DEG_MULTIPLIER
}

// CircleSegments returns how many segments a circle of the given radius needs
// so that no chord deviates from the arc by more than errorRate pixels.
func CircleSegments(radius, errorRate float32) int {
	if radius <= errorRate || errorRate <= 0 {
		return MinCircleSegments
	}
	th := Acos(2*(1-errorRate/radius)*(1-errorRate/radius) - 1)
	if th <= K_FLOAT_EPSILON {
		return MinCircleSegments
	}
	segments := int(m.Ceil(float64(K_PI_2 / th)))
	if segments < MinCircleSegments {
		return MinCircleSegments
	}
	return segments
}

// ArcSegments scales CircleSegments to the swept angle (in degrees).
func ArcSegments(radius, errorRate, sweepDegrees float32) int {
	full := CircleSegments(radius, errorRate)
	segments := int(m.Ceil(float64(float32(full) * Abs(sweepDegrees) / 360.0)))
	if segments < MinCircleSegments {
		return MinCircleSegments
	}
	return segments
}

// CubicBezier evaluates the curve defined by p0..p3 at t in [0, 1].
func CubicBezier(p0, p1, p2, p3 mgl32.Vec2, t float32) mgl32.Vec2 {
	u := 1 - t
	a := u * u * u
	b := 3 * u * u * t
	c := 3 * u * t * t
	d := t * t * t
	return p0.Mul(a).Add(p1.Mul(b)).Add(p2.Mul(c)).Add(p3.Mul(d))
}

// TransformPoint applies mt to the point v (w = 1) without the perspective divide.
func TransformPoint(mt mgl32.Mat4, v mgl32.Vec3) mgl32.Vec3 {
	return mt.Mul4x1(v.Vec4(1)).Vec3()
}
