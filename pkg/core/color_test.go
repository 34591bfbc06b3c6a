package core

import "testing"

func TestToRGB8(t *testing.T) {
	tests := []struct {
		name     string
		color    Vec3
		expected RGB8
	}{
		{"black", NewVec3(0, 0, 0), RGB8{0, 0, 0}},
		{"white", NewVec3(1, 1, 1), RGB8{255, 255, 255}},
		{"middle", NewVec3(0.5, 0.5, 0.5), RGB8{127, 127, 127}},
		{"clamped", NewVec3(-1, 2, 0.25), RGB8{0, 255, 63}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToRGB8(tt.color); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestRGB8_Hex(t *testing.T) {
	if got := (RGB8{R: 255, G: 10, B: 0}).Hex(); got != "#FF0A00" {
		t.Errorf("Expected #FF0A00, got %s", got)
	}
}
