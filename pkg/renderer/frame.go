package renderer

import (
	"image"
	"image/color"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Frame holds the linear color of every pixel in raster order:
// top row first, left to right within a row.
type Frame struct {
	Width  int
	Height int
	Pixels []core.Vec3
}

// NewFrame allocates a black frame
func NewFrame(width, height int) *Frame {
	return &Frame{
		Width:  width,
		Height: height,
		Pixels: make([]core.Vec3, width*height),
	}
}

// At returns the linear color at column x, row y (row 0 is the top)
func (f *Frame) At(x, y int) core.Vec3 {
	return f.Pixels[y*f.Width+x]
}

// Set stores the linear color at column x, row y
func (f *Frame) Set(x, y int, c core.Vec3) {
	f.Pixels[y*f.Width+x] = c
}

// Downsample box-averages each factor×factor block of linear colors into one
// pixel. Factors below 2 return f unchanged.
func (f *Frame) Downsample(factor int) *Frame {
	if factor < 2 {
		return f
	}

	dst := NewFrame(max(1, f.Width/factor), max(1, f.Height/factor))
	for y := 0; y < dst.Height; y++ {
		for x := 0; x < dst.Width; x++ {
			var sum core.Vec3
			n := 0
			for sy := y * factor; sy < min((y+1)*factor, f.Height); sy++ {
				for sx := x * factor; sx < min((x+1)*factor, f.Width); sx++ {
					sum = sum.Add(f.At(sx, sy))
					n++
				}
			}
			dst.Set(x, y, sum.Divide(float64(n)))
		}
	}
	return dst
}

// Image gamma-corrects, clamps and quantizes the frame into an 8-bit image
func (f *Frame) Image(gamma float64) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			img.SetRGBA(x, y, toDisplayColor(f.At(x, y), gamma))
		}
	}
	return img
}

// RegionImage converts the pixels inside bounds, with the region's corner at (0,0)
func (f *Frame) RegionImage(bounds image.Rectangle, gamma float64) *image.RGBA {
	bounds = bounds.Intersect(image.Rect(0, 0, f.Width, f.Height))
	img := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			img.SetRGBA(x-bounds.Min.X, y-bounds.Min.Y, toDisplayColor(f.At(x, y), gamma))
		}
	}
	return img
}

// toDisplayColor converts a linear color to RGBA with clamping and gamma correction
func toDisplayColor(c core.Vec3, gamma float64) color.RGBA {
	q := core.ToRGB8(c.Clamp(0.0, 1.0).GammaCorrect(gamma))
	return color.RGBA{R: q.R, G: q.G, B: q.B, A: 255}
}
