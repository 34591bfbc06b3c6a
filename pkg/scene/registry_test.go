package scene

import (
	"errors"
	"testing"
)

func TestListBuiltinScenes(t *testing.T) {
	expected := []string{"default", "random", "spheregrid", "empty"}

	infos := List()
	if len(infos) != len(expected) {
		t.Fatalf("Expected %d scenes, got %d", len(expected), len(infos))
	}
	for i, id := range expected {
		if infos[i].ID != id {
			t.Errorf("Scene %d: expected %q, got %q", i, id, infos[i].ID)
		}
		if infos[i].Type != TypeBuiltin || infos[i].DisplayName == "" || infos[i].Description == "" {
			t.Errorf("Scene %q has incomplete metadata: %+v", id, infos[i])
		}
	}
}

func TestNewBuildsEveryListedScene(t *testing.T) {
	for _, info := range List() {
		t.Run(info.ID, func(t *testing.T) {
			s, err := New(info.ID, 1)
			if err != nil {
				t.Fatalf("New(%q) error: %v", info.ID, err)
			}
			if s.Name != info.ID {
				t.Errorf("Expected scene name %q, got %q", info.ID, s.Name)
			}
			if s.Shapes == nil {
				t.Fatal("Expected a shape list")
			}
			if info.ID != "empty" && s.Shapes.Len() == 0 {
				t.Error("Expected shapes in a non-empty scene")
			}
		})
	}
}

func TestNewUnknownScene(t *testing.T) {
	s, err := New("cornell", 1)
	if !errors.Is(err, ErrUnknownScene) {
		t.Errorf("Expected ErrUnknownScene, got %v", err)
	}
	if s != nil {
		t.Error("Expected no scene")
	}
}
