package scene

import (
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering.
// It is read-only once rendering starts.
type Scene struct {
	Name           string
	Camera         renderer.CameraConfig
	Shapes         *geometry.ShapeList // Objects in the scene, tested exhaustively
	SamplingConfig SamplingConfig      // Settings the scene was designed for
}

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	Width           int     // Image width
	Height          int     // Image height
	SamplesPerPixel int     // Number of rays per pixel
	MaxDepth        int     // Maximum ray bounce depth
	Gamma           float64 // Display gamma applied before quantization
	Seed            uint64  // Base random seed
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		Width:           400,
		Height:          225,
		SamplesPerPixel: 100,
		MaxDepth:        50,
		Gamma:           2.0,
		Seed:            42,
	}
}

// NewScene creates an empty scene with the default camera and sampling settings
func NewScene(name string) *Scene {
	return &Scene{
		Name:           name,
		Camera:         renderer.DefaultCameraConfig(),
		Shapes:         geometry.NewShapeList(),
		SamplingConfig: DefaultSamplingConfig(),
	}
}

// Add appends shapes to the scene
func (s *Scene) Add(shapes ...geometry.Shape) {
	s.Shapes.Add(shapes...)
}

// CameraConfigFor returns the camera configuration for an image of the given size.
// A camera without an aspect ratio takes it from the image.
func (s *Scene) CameraConfigFor(width, height int) renderer.CameraConfig {
	config := s.Camera
	if config.AspectRatio <= 0 && height > 0 {
		config.AspectRatio = float64(width) / float64(height)
	}
	return config
}
