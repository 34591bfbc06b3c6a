package renderer

import (
	"image"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
)

// TileRenderer handles the actual rendering of individual tiles using an integrator.
// It holds no mutable state and can be shared by every worker.
type TileRenderer struct {
	camera          *Camera
	world           geometry.Shape
	integrator      integrator.Integrator
	width, height   int
	samplesPerPixel int
	seed            uint64
}

// NewTileRenderer creates a new tile renderer for an image of the given size
func NewTileRenderer(camera *Camera, world geometry.Shape, integratorInst integrator.Integrator, width, height, samplesPerPixel int, seed uint64) *TileRenderer {
	return &TileRenderer{
		camera:          camera,
		world:           world,
		integrator:      integratorInst,
		width:           width,
		height:          height,
		samplesPerPixel: samplesPerPixel,
		seed:            seed,
	}
}

// RenderTileBounds renders pixels within the specified bounds into the frame.
// Tiles never overlap, so concurrent calls write disjoint parts of the frame.
func (tr *TileRenderer) RenderTileBounds(bounds image.Rectangle, frame *Frame) TileStats {
	var stats TileStats
	for row := bounds.Min.Y; row < bounds.Max.Y; row++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			ps := tr.RenderPixel(x, row)
			frame.Set(x, row, ps.GetColor())

			stats.Pixels++
			stats.Samples += ps.SampleCount
			stats.NonFiniteSamples += ps.NonFiniteSamples
		}
	}
	return stats
}

// RenderPixel takes every sample for the pixel at column x, row (row 0 is the top).
// The random stream depends only on the seed and the pixel, so the result is
// the same whichever worker renders it.
func (tr *TileRenderer) RenderPixel(x, row int) PixelStats {
	sampler := core.NewPixelSampler(tr.seed, x, row)

	// Camera t grows upwards, image rows grow downwards
	j := tr.height - 1 - row

	var ps PixelStats
	for sample := 0; sample < tr.samplesPerPixel; sample++ {
		jitter := sampler.Get2D()
		du := jitter.X - 0.5
		dv := jitter.Y - 0.5

		s := (float64(x) + 0.5 + du) / float64(tr.width)
		t := (float64(j) + 0.5 + dv) / float64(tr.height)

		ray := tr.camera.GetRay(s, t, sampler)
		ps.AddSample(tr.integrator.RayColor(ray, tr.world, sampler))
	}
	return ps
}
