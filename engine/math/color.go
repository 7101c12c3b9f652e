package math

// Color is an 8-bit per channel RGBA color, the vertex color format.
type Color struct {
	R, G, B, A uint8
}

func NewColor(r, g, b, a uint8) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// NewColorF converts normalized float channels, clamping to [0, 1].
func NewColorF(r, g, b, a float32) Color {
	return Color{
		R: uint8(Clamp(r, 0, 1)*255 + 0.5),
		G: uint8(Clamp(g, 0, 1)*255 + 0.5),
		B: uint8(Clamp(b, 0, 1)*255 + 0.5),
		A: uint8(Clamp(a, 0, 1)*255 + 0.5),
	}
}

// Floats returns the color as normalized channels.
func (c Color) Floats() [4]float32 {
	return [4]float32{float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255, float32(c.A) / 255}
}

func (c Color) WithAlpha(a uint8) Color {
	c.A = a
	return c
}

var (
	ColorWhite   = Color{255, 255, 255, 255}
	ColorBlack   = Color{0, 0, 0, 255}
	ColorRed     = Color{255, 0, 0, 255}
	ColorGreen   = Color{0, 255, 0, 255}
	ColorBlue    = Color{0, 0, 255, 255}
	ColorYellow  = Color{255, 255, 0, 255}
	ColorMagenta = Color{255, 0, 255, 255}
	ColorCyan    = Color{0, 255, 255, 255}
	ColorGray    = Color{128, 128, 128, 255}
	ColorClear   = Color{0, 0, 0, 0}
)
