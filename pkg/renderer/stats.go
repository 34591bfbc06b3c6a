package renderer

import (
	"math"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels      int           // Total number of pixels rendered
	TotalSamples     int           // Total number of samples taken
	NonFiniteSamples int           // Samples with a NaN or infinite channel, zeroed before accumulation
	Tiles            int           // Number of tiles the image was split into
	Workers          int           // Number of parallel workers
	Duration         time.Duration // Wall-clock render time
}

// AverageSamples returns the mean number of samples per pixel
func (rs RenderStats) AverageSamples() float64 {
	if rs.TotalPixels == 0 {
		return 0
	}
	return float64(rs.TotalSamples) / float64(rs.TotalPixels)
}

// SamplesPerSecond returns the sampling throughput
func (rs RenderStats) SamplesPerSecond() float64 {
	if rs.Duration <= 0 {
		return 0
	}
	return float64(rs.TotalSamples) / rs.Duration.Seconds()
}

func (rs *RenderStats) merge(tile TileStats) {
	rs.TotalPixels += tile.Pixels
	rs.TotalSamples += tile.Samples
	rs.NonFiniteSamples += tile.NonFiniteSamples
}

// TileStats counts the work done for a single tile
type TileStats struct {
	Pixels           int
	Samples          int
	NonFiniteSamples int
}

// PixelStats accumulates color samples for a single pixel
type PixelStats struct {
	ColorAccum       core.Vec3 // RGB accumulator for final result
	SampleCount      int       // Number of samples taken
	NonFiniteSamples int       // Samples that had a channel zeroed
}

// AddSample adds a new color sample to the pixel statistics.
// NaN and infinite channels are replaced with zero so one bad path cannot
// poison the whole pixel.
func (ps *PixelStats) AddSample(color core.Vec3) {
	if !color.IsFinite() {
		color = core.NewVec3(finiteOrZero(color.X), finiteOrZero(color.Y), finiteOrZero(color.Z))
		ps.NonFiniteSamples++
	}
	ps.ColorAccum = ps.ColorAccum.Add(color)
	ps.SampleCount++
}

// GetColor returns the current average color for this pixel
func (ps *PixelStats) GetColor() core.Vec3 {
	if ps.SampleCount == 0 {
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}
	return ps.ColorAccum.Multiply(1.0 / float64(ps.SampleCount))
}

func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
