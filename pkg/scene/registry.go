package scene

import (
	"errors"
	"fmt"
)

// ErrUnknownScene is returned when a scene name is not registered
var ErrUnknownScene = errors.New("unknown scene")

type builtin struct {
	info  SceneInfo
	build func(seed uint64) *Scene
}

var builtins = []builtin{
	{
		info: SceneInfo{ID: "default", Name: "Default Scene", Description: "Diffuse, hollow glass and gold spheres on a ground sphere"},
		build: func(uint64) *Scene {
			return NewDefaultScene()
		},
	},
	{
		info:  SceneInfo{ID: "random", Name: "Random Spheres", Description: "Three large spheres in a seeded field of small random spheres"},
		build: NewRandomScene,
	},
	{
		info: SceneInfo{ID: "spheregrid", Name: "Sphere Grid", Description: "10x10 grid of OKLCH-colored spheres"},
		build: func(uint64) *Scene {
			return NewSphereGridScene()
		},
	},
	{
		info: SceneInfo{ID: "empty", Name: "Empty", Description: "No objects, only the sky gradient"},
		build: func(uint64) *Scene {
			return NewScene("empty")
		},
	},
}

// List returns the built-in scenes in registration order
func List() []SceneInfo {
	infos := make([]SceneInfo, 0, len(builtins))
	for _, b := range builtins {
		info := b.info
		info.DisplayName = info.Name
		info.Type = TypeBuiltin
		infos = append(infos, info)
	}
	return infos
}

// New builds the named built-in scene. seed drives any random layout.
func New(name string, seed uint64) (*Scene, error) {
	for _, b := range builtins {
		if b.info.ID == name {
			return b.build(seed), nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
}
