package renderer

import (
	"image"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/integrator"
)

func TestRenderPixelIsIndependentOfOrder(t *testing.T) {
	tr := NewTileRenderer(squareCamera(), createTestWorld(), integrator.NewPathTracingIntegrator(5), 8, 8, 4, 3)

	first := tr.RenderPixel(5, 2)
	// Render some other pixels in between; the stream for (5,2) must not move
	tr.RenderPixel(0, 0)
	tr.RenderPixel(5, 3)
	second := tr.RenderPixel(5, 2)

	if first.GetColor() != second.GetColor() {
		t.Errorf("Expected identical colors, got %v and %v", first.GetColor(), second.GetColor())
	}
	if first.SampleCount != 4 {
		t.Errorf("Expected 4 samples, got %d", first.SampleCount)
	}
}

func TestRenderTileBoundsWritesOnlyItsTile(t *testing.T) {
	mock := &MockIntegrator{returnColor: core.NewVec3(1, 1, 1)}
	tr := NewTileRenderer(squareCamera(), nil, mock, 4, 4, 2, 0)
	frame := NewFrame(4, 4)

	bounds := image.Rect(1, 2, 3, 4)
	stats := tr.RenderTileBounds(bounds, frame)

	if stats.Pixels != 4 || stats.Samples != 8 {
		t.Errorf("Expected 4 pixels and 8 samples, got %d and %d", stats.Pixels, stats.Samples)
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			inside := image.Pt(x, y).In(bounds)
			lit := frame.At(x, y) != (core.Vec3{})
			if inside != lit {
				t.Errorf("Pixel (%d,%d): inside=%v lit=%v", x, y, inside, lit)
			}
		}
	}
}
