package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// scatterLambertian sends the ray toward normal + a random unit vector,
// which is a cosine-weighted hemisphere distribution. It never absorbs.
func scatterLambertian(albedo core.Vec3, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	scatterDirection := hit.Normal.Add(core.RandomUnitVector(sampler))

	// A unit vector almost exactly opposite the normal cancels it out
	if scatterDirection.NearZero() {
		scatterDirection = hit.Normal
	}

	return ScatterResult{
		Scattered:   core.NewRay(hit.Point, scatterDirection),
		Attenuation: albedo,
	}, true
}
