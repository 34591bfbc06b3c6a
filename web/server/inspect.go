package server

import (
	"fmt"
	"math"
	"net/http"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType,omitempty"`
	GeometryType string                 `json:"geometryType,omitempty"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	FrontFace    bool                   `json:"frontFace"`
	Properties   map[string]interface{} `json:"properties,omitempty"`

	CameraOrigin  [3]float64 `json:"cameraOrigin"`
	ViewDirection [3]float64 `json:"viewDirection"` // Camera forward axis, not the pixel ray
	RayDirection  [3]float64 `json:"rayDirection"`
}

// InspectResult contains the nearest hit along an inspection ray
type InspectResult struct {
	Hit       bool
	HitRecord *material.HitRecord
	Shape     geometry.Shape // The shape that produced HitRecord
	Camera    *renderer.Camera
	Ray       core.Ray
}

func vecArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

// extractMaterialInfo describes the active variant of a material
func extractMaterialInfo(mat material.Material) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch mat.Kind {
	case material.KindLambertian:
		properties["albedo"] = vecArray(mat.Albedo)
		properties["color"] = core.ToRGB8(mat.Albedo.Clamp(0, 1)).Hex()
	case material.KindMetal:
		properties["albedo"] = vecArray(mat.Albedo)
		properties["color"] = core.ToRGB8(mat.Albedo.Clamp(0, 1)).Hex()
		properties["fuzz"] = mat.Fuzz
	case material.KindDielectric:
		properties["refractiveIndex"] = mat.RefractiveIndex
		properties["color"] = "#FFFFFF" // Clear glass
	}
	return mat.Kind.String(), properties
}

// extractGeometryInfo describes a shape
func extractGeometryInfo(shape geometry.Shape) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch geom := shape.(type) {
	case *geometry.Sphere:
		properties["center"] = vecArray(geom.Center)
		properties["radius"] = geom.Radius
		properties["inward"] = geom.Radius < 0
		return "sphere", properties
	default:
		return "unknown", properties
	}
}

// inspectPixel casts a ray through the center of pixel (x, row), rows counted
// from the top, and returns the nearest hit
func inspectPixel(sc *scene.Scene, width, height, x, row int) InspectResult {
	camera := renderer.NewCamera(sc.CameraConfigFor(width, height))

	// 0.5 maps to the center of the lens disk, so the ray has no defocus jitter
	sampler := core.NewSequenceSampler(0.5)
	j := height - 1 - row
	ray := camera.GetRay((float64(x)+0.5)/float64(width), (float64(j)+0.5)/float64(height), sampler)

	result := InspectResult{Camera: camera, Ray: ray}
	closest := math.Inf(1)
	for _, shape := range sc.Shapes.Shapes {
		if hit, ok := shape.Hit(ray, integrator.ShadowAcneEpsilon, closest); ok {
			closest = hit.T
			result.Hit, result.HitRecord, result.Shape = true, hit, shape
		}
	}
	return result
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	cfg, sc, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid scene parameters: %w", err))
		return
	}

	query := r.URL.Query()
	pixelX, err := parseIntParam(query, "x", -1, 0, cfg.Width-1)
	if err != nil || pixelX < 0 {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid x coordinate"))
		return
	}
	pixelY, err := parseIntParam(query, "y", -1, 0, cfg.Height-1)
	if err != nil || pixelY < 0 {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid y coordinate"))
		return
	}

	result := inspectPixel(sc, cfg.Width, cfg.Height, pixelX, pixelY)
	resp := InspectResponse{
		CameraOrigin:  vecArray(result.Camera.Origin()),
		ViewDirection: vecArray(result.Camera.Forward()),
		RayDirection:  vecArray(result.Ray.Direction.Normalize()),
	}
	if !result.Hit {
		writeJSON(w, http.StatusOK, resp)
		return
	}

	materialType, materialProps := extractMaterialInfo(result.HitRecord.Material)
	geometryType, geometryProps := extractGeometryInfo(result.Shape)

	resp.Hit = true
	resp.MaterialType = materialType
	resp.GeometryType = geometryType
	resp.Point = vecArray(result.HitRecord.Point)
	resp.Normal = vecArray(result.HitRecord.Normal)
	resp.Distance = result.HitRecord.T
	resp.FrontFace = result.HitRecord.Face == material.Outside
	resp.Properties = map[string]interface{}{
		"material": materialProps,
		"geometry": geometryProps,
	}
	writeJSON(w, http.StatusOK, resp)
}
