package output

import (
	"image"
	"image/color"

	"github.com/df07/go-pathtracer/pkg/core"
)

// GradientPattern renders the calibration image: red grows left to right,
// green grows bottom to top and blue is fixed at 0.25.
// It exercises the quantizer and writers without tracing any rays.
func GradientPattern(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	xSpan := float64(max(1, width-1))
	ySpan := float64(max(1, height-1))

	for row := 0; row < height; row++ {
		j := height - 1 - row
		for x := 0; x < width; x++ {
			c := core.ToRGB8(core.NewVec3(float64(x)/xSpan, float64(j)/ySpan, 0.25))
			img.SetRGBA(x, row, color.RGBA{R: c.R, G: c.G, B: c.B, A: 255})
		}
	}
	return img
}
