package hal

import "image/color"

// Colours used when a monochrome panel is shown on a colour surface.
var (
	panelOff = color.RGBA{R: 0x05, G: 0x08, B: 0x10, A: 0xFF}
	panelOn  = color.RGBA{R: 0x9F, G: 0xE8, B: 0xFF, A: 0xFF}
)

// lit reports whether c switches a pixel on a 1-bit panel.
func lit(c color.RGBA) bool {
	return c.R|c.G|c.B != 0
}

// scaleRGB dims a colour by level/255, the way the ring brightness is applied.
func scaleRGB(c color.RGBA, level uint8) color.RGBA {
	return color.RGBA{
		R: uint8(uint16(c.R) * uint16(level) / 255),
		G: uint8(uint16(c.G) * uint16(level) / 255),
		B: uint8(uint16(c.B) * uint16(level) / 255),
		A: c.A,
	}
}
