package output

import (
	"image/color"
	"testing"
)

func TestGradientPattern(t *testing.T) {
	img := GradientPattern(3, 3)

	tests := []struct {
		x, y     int
		expected color.RGBA
	}{
		{0, 0, color.RGBA{0, 255, 63, 255}},   // top left: no red, full green
		{2, 0, color.RGBA{255, 255, 63, 255}}, // top right
		{0, 2, color.RGBA{0, 0, 63, 255}},     // bottom left
		{1, 1, color.RGBA{127, 127, 63, 255}}, // center
	}

	for _, tt := range tests {
		if got := img.RGBAAt(tt.x, tt.y); got != tt.expected {
			t.Errorf("Pixel (%d,%d): expected %v, got %v", tt.x, tt.y, tt.expected, got)
		}
	}
}

func TestGradientPatternSinglePixel(t *testing.T) {
	img := GradientPattern(1, 1)
	if got := img.RGBAAt(0, 0); got != (color.RGBA{0, 0, 63, 255}) {
		t.Errorf("Expected dark blue, got %v", got)
	}
}
