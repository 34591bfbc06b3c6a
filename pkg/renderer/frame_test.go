package renderer

import (
	"image"
	"image/color"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestFrameRasterOrder(t *testing.T) {
	frame := NewFrame(3, 2)
	frame.Set(2, 0, core.NewVec3(1, 0, 0))
	frame.Set(0, 1, core.NewVec3(0, 1, 0))

	if frame.Pixels[2] != core.NewVec3(1, 0, 0) {
		t.Errorf("Expected (2,0) at index 2, got %v", frame.Pixels[2])
	}
	if frame.Pixels[3] != core.NewVec3(0, 1, 0) {
		t.Errorf("Expected (0,1) at index 3, got %v", frame.Pixels[3])
	}
	if frame.At(1, 1) != (core.Vec3{}) {
		t.Errorf("Expected untouched pixel to be black, got %v", frame.At(1, 1))
	}
}

func TestFrameImage(t *testing.T) {
	tests := []struct {
		name     string
		linear   core.Vec3
		gamma    float64
		expected color.RGBA
	}{
		{"black", core.NewVec3(0, 0, 0), 2.0, color.RGBA{0, 0, 0, 255}},
		{"white", core.NewVec3(1, 1, 1), 2.0, color.RGBA{255, 255, 255, 255}},
		{"quarter brightens to half", core.NewVec3(0.25, 0.25, 0.25), 2.0, color.RGBA{127, 127, 127, 255}},
		{"gamma one is linear", core.NewVec3(0.5, 0, 1), 1.0, color.RGBA{127, 0, 255, 255}},
		{"overexposed clamps", core.NewVec3(4, -1, 0.25), 2.0, color.RGBA{255, 0, 127, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame := NewFrame(1, 1)
			frame.Set(0, 0, tt.linear)

			img := frame.Image(tt.gamma)
			if got := img.RGBAAt(0, 0); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestFrameRegionImage(t *testing.T) {
	frame := NewFrame(4, 3)
	frame.Set(2, 1, core.NewVec3(1, 1, 1))

	img := frame.RegionImage(image.Rect(2, 1, 6, 3), 1.0)

	if b := img.Bounds(); b != image.Rect(0, 0, 2, 2) {
		t.Fatalf("Expected region clipped to 2x2 at the origin, got %v", b)
	}
	if got := img.RGBAAt(0, 0); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("Expected pixel (2,1) at the region origin, got %v", got)
	}
	if got := img.RGBAAt(1, 1); got != (color.RGBA{0, 0, 0, 255}) {
		t.Errorf("Expected black, got %v", got)
	}
}

func TestFrameDownsample(t *testing.T) {
	// Alternating black and white columns
	frame := NewFrame(4, 4)
	for y := 0; y < 4; y++ {
		for x := 1; x < 4; x += 2 {
			frame.Set(x, y, core.NewVec3(1, 1, 1))
		}
	}

	small := frame.Downsample(2)
	if small.Width != 2 || small.Height != 2 {
		t.Fatalf("Expected 2x2, got %dx%d", small.Width, small.Height)
	}
	for i, c := range small.Pixels {
		if !vecNear(c, core.NewVec3(0.5, 0.5, 0.5), tolerance) {
			t.Errorf("Pixel %d: expected linear 0.5, got %v", i, c)
		}
	}

	// Averaging happens before gamma: sqrt(0.5) quantizes to 181
	if got := small.Image(2.0).RGBAAt(0, 0); got != (color.RGBA{181, 181, 181, 255}) {
		t.Errorf("Expected gamma-corrected 181, got %v", got)
	}
}

func TestFrameDownsampleKeepsHighlights(t *testing.T) {
	frame := NewFrame(2, 2)
	frame.Set(0, 0, core.NewVec3(4, 0, 0))

	small := frame.Downsample(2)
	if !vecNear(small.At(0, 0), core.NewVec3(1, 0, 0), tolerance) {
		t.Errorf("Expected unclamped average (1,0,0), got %v", small.At(0, 0))
	}
}

func TestFrameDownsampleFactorOne(t *testing.T) {
	frame := NewFrame(3, 3)
	if frame.Downsample(1) != frame {
		t.Error("Expected factor 1 to return the same frame")
	}
}
