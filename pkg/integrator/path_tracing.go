package integrator

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
)

// ShadowAcneEpsilon is the lower ray bound used for every intersection query.
// It skips self-intersections with the surface a ray starts on.
const ShadowAcneEpsilon = 0.001

// PathTracingIntegrator implements unidirectional path tracing with a fixed
// bounce budget. There is no Russian roulette; MaxDepth is the only cutoff.
type PathTracingIntegrator struct {
	MaxDepth   int
	Background Background
}

// NewPathTracingIntegrator creates a path tracer with the default sky background
func NewPathTracingIntegrator(maxDepth int) *PathTracingIntegrator {
	return &PathTracingIntegrator{
		MaxDepth:   maxDepth,
		Background: NewSkyBackground(),
	}
}

var black = core.Vec3{}

// RayColor traces one path and returns its color sample.
// Throughput accumulates material attenuation along the path and scales the
// background once the path escapes.
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, world geometry.Shape, sampler core.Sampler) core.Vec3 {
	throughput := core.NewVec3(1, 1, 1)

	for depth := pt.MaxDepth; depth > 0; depth-- {
		hit, isHit := world.Hit(ray, ShadowAcneEpsilon, math.Inf(1))
		if !isHit {
			color := throughput.MultiplyVec(pt.Background.Color(ray.Direction))
			if !color.IsFinite() {
				return black
			}
			return color
		}

		scatter, didScatter := hit.Material.Scatter(ray, *hit, sampler)
		if !didScatter {
			return black
		}

		// Degenerate geometry is treated like absorption
		if !scatter.Scattered.Direction.IsFinite() || !scatter.Attenuation.IsFinite() {
			return black
		}

		throughput = throughput.MultiplyVec(scatter.Attenuation)
		ray = scatter.Scattered
	}

	// Bounce budget exhausted: no more light is gathered
	return black
}
