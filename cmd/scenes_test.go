package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/scene"
)

func TestFormatSceneTable(t *testing.T) {
	infos := append(scene.List(), scene.SceneInfo{
		ID:          "file:small",
		DisplayName: "Small",
		Type:        scene.TypeFile,
		FilePath:    "scenes/small.json",
	})

	out := formatSceneTable(infos)
	for _, want := range []string{"default", "random", "spheregrid", "empty", "scenes/small.json", scene.TypeFile} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected scene table to contain %q:\n%s", want, out)
		}
	}
}

func TestExportSceneRoundTrip(t *testing.T) {
	source, err := scene.New("default", 1)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := exportScene(&buf, source); err != nil {
		t.Fatalf("exportScene() error: %v", err)
	}

	loaded, err := loaders.ParseScene(&buf)
	if err != nil {
		t.Fatalf("Exported scene does not parse: %v", err)
	}
	if loaded.Shapes.Len() != source.Shapes.Len() {
		t.Errorf("Expected %d shapes after export, got %d", source.Shapes.Len(), loaded.Shapes.Len())
	}
	if loaded.Camera.LookFrom != source.Camera.LookFrom {
		t.Errorf("Expected camera at %v, got %v", source.Camera.LookFrom, loaded.Camera.LookFrom)
	}
}
