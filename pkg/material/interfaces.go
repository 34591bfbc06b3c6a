package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// Face records which side of a surface a ray arrived from
type Face int

const (
	// Outside means the ray came from outside the enclosed volume
	Outside Face = iota
	// Inside means the ray came from within the enclosed volume
	Inside
)

func (f Face) String() string {
	if f == Inside {
		return "inside"
	}
	return "outside"
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   core.Ray  // The scattered ray, starting at the hit point
	Attenuation core.Vec3 // Color attenuation
}

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	Point    core.Vec3 // Point of intersection
	Normal   core.Vec3 // Surface normal, always facing against the incoming ray
	T        float64   // Parameter t along the ray
	Face     Face      // Which side of the surface was hit
	Material Material  // Material of the hit object
}

// SetFaceNormal sets the normal vector and determines the face from an outward normal
func (h *HitRecord) SetFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	if ray.Direction.Dot(outwardNormal) < 0 {
		h.Face = Outside
		h.Normal = outwardNormal
	} else {
		h.Face = Inside
		h.Normal = outwardNormal.Negate()
	}
}
