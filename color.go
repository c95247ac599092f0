package ply

// Color is an RGBA color with floating-point components in the 0–255 range.
type Color struct {
	R float32
	G float32
	B float32
	A float32
}

// RGB builds an opaque color.
func RGB(r, g, b float32) Color {
	return Color{R: r, G: g, B: b, A: 255}
}

// RGBA builds a color with an explicit alpha component.
func RGBA(r, g, b, a float32) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// Hex builds an opaque color from a 0xRRGGBB value.
func Hex(hex uint32) Color {
	return Color{
		R: float32((hex >> 16) & 0xFF),
		G: float32((hex >> 8) & 0xFF),
		B: float32(hex & 0xFF),
		A: 255,
	}
}
