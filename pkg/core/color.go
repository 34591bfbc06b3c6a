package core

import "fmt"

// RGB8 is a quantized 8-bit color
type RGB8 struct {
	R, G, B uint8
}

// ToRGB8 quantizes a color in [0,1] to 8 bits per channel.
// Components are clamped first so 1.0 maps to 255.
func ToRGB8(c Vec3) RGB8 {
	c = c.Clamp(0.0, 1.0)
	return RGB8{
		R: channelToByte(c.X),
		G: channelToByte(c.Y),
		B: channelToByte(c.Z),
	}
}

func channelToByte(v float64) uint8 {
	return uint8(255.999 * v)
}

// Hex renders the color as #RRGGBB
func (c RGB8) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}
