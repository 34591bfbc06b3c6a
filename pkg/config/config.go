// Package config loads render settings from a JSON file and layers CLI
// overrides and scene defaults on top.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// ErrInvalidConfig is wrapped by every validation failure
var ErrInvalidConfig = errors.New("invalid config")

// Unset marks MaxDepth and Seed as not provided, since zero is a valid value for both
const Unset = -1

// RenderConfig holds everything needed to run a render.
// Zero values (and Unset for MaxDepth and Seed) mean "not provided".
type RenderConfig struct {
	Scene     string `json:"scene"`      // Built-in scene name
	SceneFile string `json:"scene_file"` // JSON scene description, takes priority over Scene
	Output    string `json:"output"`     // Output image path; the extension picks the format

	Width           int     `json:"width"`
	Height          int     `json:"height"`
	SamplesPerPixel int     `json:"samples_per_pixel"`
	MaxDepth        int     `json:"max_depth"`
	Gamma           float64 `json:"gamma"`
	Seed            int64   `json:"seed"`

	Workers     int `json:"workers"`     // 0 = one per CPU
	TileSize    int `json:"tile_size"`   // 0 = renderer default
	Supersample int `json:"supersample"` // Render at N times the size and downscale
}

// Flags holds CLI flag values that override config file settings
type Flags struct {
	Scene     string
	SceneFile string
	Output    string

	Width           int
	Height          int
	SamplesPerPixel int
	MaxDepth        int // Unset when not given
	Gamma           float64
	Seed            int64 // Unset when not given

	Workers     int
	TileSize    int
	Supersample int
}

// Default returns a config with nothing set except the scene, output and supersampling
func Default() RenderConfig {
	return RenderConfig{
		Scene:       "default",
		Output:      "render.png",
		MaxDepth:    Unset,
		Seed:        Unset,
		Supersample: 1,
	}
}

// Load reads a JSON config file on top of Default.
// Fields not set in the file keep their default values.
func Load(path string) (RenderConfig, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return RenderConfig{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return RenderConfig{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Resolve applies CLI flags over the file values.
// Flags take priority when non-zero/non-empty (or not Unset).
func (c *RenderConfig) Resolve(flags Flags) {
	// A scene given on the command line replaces whichever kind the file named
	if flags.SceneFile != "" {
		c.SceneFile = flags.SceneFile
		c.Scene = ""
	} else if flags.Scene != "" {
		c.Scene = flags.Scene
		c.SceneFile = ""
	}
	if flags.Output != "" {
		c.Output = flags.Output
	}
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}
	if flags.SamplesPerPixel > 0 {
		c.SamplesPerPixel = flags.SamplesPerPixel
	}
	if flags.MaxDepth != Unset {
		c.MaxDepth = flags.MaxDepth
	}
	if flags.Gamma > 0 {
		c.Gamma = flags.Gamma
	}
	if flags.Seed != Unset {
		c.Seed = flags.Seed
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.TileSize > 0 {
		c.TileSize = flags.TileSize
	}
	if flags.Supersample > 0 {
		c.Supersample = flags.Supersample
	}
}

// LoadScene builds the scene the config names: the scene file when set,
// otherwise the built-in scene. Random layouts follow Seed unless it is Unset.
func (c RenderConfig) LoadScene() (*scene.Scene, error) {
	if c.SceneFile != "" {
		return loaders.LoadScene(c.SceneFile)
	}

	seed := scene.DefaultSamplingConfig().Seed
	if c.Seed >= 0 {
		seed = uint64(c.Seed)
	}
	return scene.New(c.Scene, seed)
}

// Build layers flags over base, loads the scene and fills whatever is still
// unset from the scene's own sampling settings. The result is validated.
func Build(base RenderConfig, flags Flags) (RenderConfig, *scene.Scene, error) {
	cfg := base
	cfg.Resolve(flags)

	sc, err := cfg.LoadScene()
	if err != nil {
		return RenderConfig{}, nil, err
	}

	cfg.ApplySceneDefaults(sc.SamplingConfig)
	if err := cfg.Validate(); err != nil {
		return RenderConfig{}, nil, err
	}
	return cfg, sc, nil
}

// ApplySceneDefaults fills every sampling field still unset from the scene's own settings
func (c *RenderConfig) ApplySceneDefaults(defaults scene.SamplingConfig) {
	if c.Width == 0 {
		c.Width = defaults.Width
	}
	if c.Height == 0 {
		c.Height = defaults.Height
	}
	if c.SamplesPerPixel == 0 {
		c.SamplesPerPixel = defaults.SamplesPerPixel
	}
	if c.MaxDepth == Unset {
		c.MaxDepth = defaults.MaxDepth
	}
	if c.Gamma == 0 {
		c.Gamma = defaults.Gamma
	}
	if c.Seed == Unset {
		c.Seed = int64(defaults.Seed)
	}
	if c.Supersample == 0 {
		c.Supersample = 1
	}
}

// Validate checks that the config describes a renderable image
func (c RenderConfig) Validate() error {
	switch {
	case c.Scene == "" && c.SceneFile == "":
		return fmt.Errorf("%w: no scene given", ErrInvalidConfig)
	case c.Output == "":
		return fmt.Errorf("%w: no output path given", ErrInvalidConfig)
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: image size must be positive, got %dx%d", ErrInvalidConfig, c.Width, c.Height)
	case c.SamplesPerPixel <= 0:
		return fmt.Errorf("%w: samples per pixel must be positive, got %d", ErrInvalidConfig, c.SamplesPerPixel)
	case c.MaxDepth < 0:
		return fmt.Errorf("%w: max depth must not be negative, got %d", ErrInvalidConfig, c.MaxDepth)
	case c.Gamma <= 0:
		return fmt.Errorf("%w: gamma must be positive, got %g", ErrInvalidConfig, c.Gamma)
	case c.Seed < 0:
		return fmt.Errorf("%w: seed must not be negative, got %d", ErrInvalidConfig, c.Seed)
	case c.Workers < 0:
		return fmt.Errorf("%w: workers must not be negative, got %d", ErrInvalidConfig, c.Workers)
	case c.TileSize < 0:
		return fmt.Errorf("%w: tile size must not be negative, got %d", ErrInvalidConfig, c.TileSize)
	case c.Supersample < 1:
		return fmt.Errorf("%w: supersample factor must be at least 1, got %d", ErrInvalidConfig, c.Supersample)
	}
	return nil
}
