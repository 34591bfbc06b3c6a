package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// scatterMetal reflects about the normal and perturbs by fuzz.
// Perturbations that end up at or below the surface are absorbed.
func scatterMetal(albedo core.Vec3, fuzz float64, rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	reflected := core.Reflect(rayIn.Direction.Normalize(), hit.Normal)
	direction := reflected.Add(core.RandomInUnitSphere(sampler).Multiply(fuzz))

	scattered := core.NewRay(hit.Point, direction)
	if direction.Dot(hit.Normal) <= 0 {
		return ScatterResult{}, false
	}

	return ScatterResult{
		Scattered:   scattered,
		Attenuation: albedo,
	}, true
}
