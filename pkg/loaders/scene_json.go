package loaders

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// ErrUnknownMaterial is returned for a material type other than lambertian, metal or dielectric
var ErrUnknownMaterial = errors.New("unknown material type")

// Material type names used in scene files
const (
	MaterialLambertian = "lambertian"
	MaterialMetal      = "metal"
	MaterialDielectric = "dielectric"
)

// vec3 is a JSON [x, y, z] triple
type vec3 [3]float64

func (v vec3) toVec3() core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

func fromVec3(v core.Vec3) vec3 {
	return vec3{v.X, v.Y, v.Z}
}

// SceneFile is the JSON scene description
type SceneFile struct {
	Name        string       `json:"name,omitempty"`
	Description string       `json:"description,omitempty"`
	Camera      CameraJSON   `json:"camera"`
	Sampling    SamplingJSON `json:"sampling"`
	Spheres     []SphereJSON `json:"spheres"`
}

// CameraJSON mirrors renderer.CameraConfig
type CameraJSON struct {
	LookFrom      vec3    `json:"look_from"`
	LookAt        vec3    `json:"look_at"`
	Up            vec3    `json:"up"`
	VFov          float64 `json:"vfov"`
	AspectRatio   float64 `json:"aspect_ratio,omitempty"`
	Aperture      float64 `json:"aperture"`
	FocusDistance float64 `json:"focus_distance,omitempty"`
}

// SamplingJSON mirrors scene.SamplingConfig
type SamplingJSON struct {
	Width           int     `json:"width"`
	Height          int     `json:"height"`
	SamplesPerPixel int     `json:"samples_per_pixel"`
	MaxDepth        int     `json:"max_depth"`
	Gamma           float64 `json:"gamma"`
	Seed            uint64  `json:"seed"`
}

// SphereJSON describes one sphere. A negative radius builds an inward-facing shell.
type SphereJSON struct {
	Center   vec3         `json:"center"`
	Radius   float64      `json:"radius"`
	Material MaterialJSON `json:"material"`
}

// MaterialJSON describes a material by type name
type MaterialJSON struct {
	Type   string  `json:"type"`
	Albedo *vec3   `json:"albedo,omitempty"`
	Fuzz   float64 `json:"fuzz,omitempty"`
	Index  float64 `json:"index,omitempty"`
}

// LoadScene loads and parses a JSON scene file
func LoadScene(filename string) (*scene.Scene, error) {
	if err := validateFilePath(filename); err != nil {
		return nil, err
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	s, err := ParseScene(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	}
	return s, nil
}

// ParseScene decodes a JSON scene description.
// Camera and sampling fields missing from the input keep their defaults.
func ParseScene(reader io.Reader) (*scene.Scene, error) {
	file := SceneFile{
		Camera:   cameraToJSON(renderer.DefaultCameraConfig()),
		Sampling: samplingToJSON(scene.DefaultSamplingConfig()),
	}

	decoder := json.NewDecoder(reader)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to parse scene: %w", err)
	}

	s := scene.NewScene(file.Name)
	s.Camera = renderer.CameraConfig{
		LookFrom:      file.Camera.LookFrom.toVec3(),
		LookAt:        file.Camera.LookAt.toVec3(),
		Up:            file.Camera.Up.toVec3(),
		VFov:          file.Camera.VFov,
		AspectRatio:   file.Camera.AspectRatio,
		Aperture:      file.Camera.Aperture,
		FocusDistance: file.Camera.FocusDistance,
	}
	s.SamplingConfig = scene.SamplingConfig{
		Width:           file.Sampling.Width,
		Height:          file.Sampling.Height,
		SamplesPerPixel: file.Sampling.SamplesPerPixel,
		MaxDepth:        file.Sampling.MaxDepth,
		Gamma:           file.Sampling.Gamma,
		Seed:            file.Sampling.Seed,
	}

	// Render configs carry the seed as a signed value
	if file.Sampling.Seed > math.MaxInt64 {
		return nil, fmt.Errorf("sampling seed must be at most %d, got %d", int64(math.MaxInt64), file.Sampling.Seed)
	}

	if s.Camera.LookFrom == s.Camera.LookAt {
		return nil, fmt.Errorf("camera look_from and look_at must differ")
	}

	for i, sphere := range file.Spheres {
		if sphere.Radius == 0 {
			return nil, fmt.Errorf("sphere %d: radius must be non-zero", i)
		}
		mat, err := parseMaterial(sphere.Material)
		if err != nil {
			return nil, fmt.Errorf("sphere %d: %w", i, err)
		}
		s.Add(geometry.NewSphere(sphere.Center.toVec3(), sphere.Radius, mat))
	}

	return s, nil
}

// parseMaterial converts a material description into a material value
func parseMaterial(m MaterialJSON) (material.Material, error) {
	switch strings.ToLower(m.Type) {
	case MaterialLambertian:
		if m.Albedo == nil {
			return material.Material{}, fmt.Errorf("lambertian material requires albedo")
		}
		return material.NewLambertian(m.Albedo.toVec3()), nil
	case MaterialMetal:
		if m.Albedo == nil {
			return material.Material{}, fmt.Errorf("metal material requires albedo")
		}
		return material.NewMetal(m.Albedo.toVec3(), m.Fuzz), nil
	case MaterialDielectric:
		if m.Index <= 0 {
			return material.Material{}, fmt.Errorf("dielectric material requires a positive index, got %g", m.Index)
		}
		return material.NewDielectric(m.Index), nil
	default:
		return material.Material{}, fmt.Errorf("%w: %q", ErrUnknownMaterial, m.Type)
	}
}

// WriteScene encodes a sphere scene as indented JSON that ParseScene reads back
func WriteScene(w io.Writer, s *scene.Scene) error {
	file := SceneFile{
		Name:     s.Name,
		Camera:   cameraToJSON(s.Camera),
		Sampling: samplingToJSON(s.SamplingConfig),
		Spheres:  make([]SphereJSON, 0, s.Shapes.Len()),
	}

	for i, shape := range s.Shapes.Shapes {
		sphere, ok := shape.(*geometry.Sphere)
		if !ok {
			return fmt.Errorf("shape %d: cannot encode %T", i, shape)
		}
		m, err := materialToJSON(sphere.Material)
		if err != nil {
			return fmt.Errorf("shape %d: %w", i, err)
		}
		file.Spheres = append(file.Spheres, SphereJSON{
			Center:   fromVec3(sphere.Center),
			Radius:   sphere.Radius,
			Material: m,
		})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(file)
}

func materialToJSON(m material.Material) (MaterialJSON, error) {
	albedo := fromVec3(m.Albedo)
	switch m.Kind {
	case material.KindLambertian:
		return MaterialJSON{Type: MaterialLambertian, Albedo: &albedo}, nil
	case material.KindMetal:
		return MaterialJSON{Type: MaterialMetal, Albedo: &albedo, Fuzz: m.Fuzz}, nil
	case material.KindDielectric:
		return MaterialJSON{Type: MaterialDielectric, Index: m.RefractiveIndex}, nil
	default:
		return MaterialJSON{}, fmt.Errorf("%w: %v", ErrUnknownMaterial, m.Kind)
	}
}

func cameraToJSON(c renderer.CameraConfig) CameraJSON {
	return CameraJSON{
		LookFrom:      fromVec3(c.LookFrom),
		LookAt:        fromVec3(c.LookAt),
		Up:            fromVec3(c.Up),
		VFov:          c.VFov,
		AspectRatio:   c.AspectRatio,
		Aperture:      c.Aperture,
		FocusDistance: c.FocusDistance,
	}
}

func samplingToJSON(c scene.SamplingConfig) SamplingJSON {
	return SamplingJSON{
		Width:           c.Width,
		Height:          c.Height,
		SamplesPerPixel: c.SamplesPerPixel,
		MaxDepth:        c.MaxDepth,
		Gamma:           c.Gamma,
		Seed:            c.Seed,
	}
}

// validateFilePath validates a scene file path before opening it
func validateFilePath(filename string) error {
	if filename == "" {
		return fmt.Errorf("filename cannot be empty")
	}

	// Check for null bytes (could indicate path manipulation)
	if strings.Contains(filename, "\x00") {
		return fmt.Errorf("invalid file path: null bytes not allowed")
	}

	if !strings.EqualFold(filepath.Ext(filename), ".json") {
		return fmt.Errorf("invalid file type: only .json scene files are allowed")
	}

	return nil
}
