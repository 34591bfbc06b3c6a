package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

var gray = material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))

func TestSphere_Hit_Miss(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, gray)
	ray := core.NewRay(core.NewVec3(2, 0, 0), core.NewVec3(0, 1, 0))

	hit, isHit := sphere.Hit(ray, 0.001, 1000.0)
	if isHit {
		t.Errorf("Expected miss, but got hit at t=%f", hit.T)
	}
}

func TestSphere_Hit_RoundTrip(t *testing.T) {
	for _, radius := range []float64{0.5, 1, 3, 100} {
		sphere := NewSphere(core.NewVec3(0, 0, 0), radius, gray)
		ray := core.NewRay(core.NewVec3(0, 0, 2*radius), core.NewVec3(0, 0, -1))

		hit, isHit := sphere.Hit(ray, 0.001, math.Inf(1))
		if !isHit {
			t.Fatalf("R=%f: expected hit", radius)
		}
		if math.Abs(hit.T-radius) > 1e-9 {
			t.Errorf("R=%f: expected t=%f, got %f", radius, radius, hit.T)
		}
		if hit.Normal.Subtract(core.NewVec3(0, 0, 1)).Length() > 1e-12 {
			t.Errorf("R=%f: expected normal (0,0,1), got %v", radius, hit.Normal)
		}
		if hit.Face != material.Outside {
			t.Errorf("R=%f: expected outside face", radius)
		}
	}
}

func TestSphere_Hit_FrontAndBackFace(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, gray)

	tests := []struct {
		name           string
		rayOrigin      core.Vec3
		rayDirection   core.Vec3
		expectedT      float64
		expectedFace   material.Face
		expectedNormal core.Vec3
	}{
		{
			name:           "front face hit",
			rayOrigin:      core.NewVec3(0, 0, 2),
			rayDirection:   core.NewVec3(0, 0, -1),
			expectedT:      1.0,
			expectedFace:   material.Outside,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
		{
			name:           "back face hit",
			rayOrigin:      core.NewVec3(0, 0, 0),
			rayDirection:   core.NewVec3(0, 0, 1),
			expectedT:      1.0,
			expectedFace:   material.Inside,
			expectedNormal: core.NewVec3(0, 0, -1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.rayOrigin, tt.rayDirection)
			hit, isHit := sphere.Hit(ray, 0.001, 1000.0)
			if !isHit {
				t.Fatal("Expected hit, but got miss")
			}

			if math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.T)
			}
			if hit.Face != tt.expectedFace {
				t.Errorf("Expected face %v, got %v", tt.expectedFace, hit.Face)
			}
			if hit.Normal.Subtract(tt.expectedNormal).Length() > 1e-9 {
				t.Errorf("Expected normal %v, got %v", tt.expectedNormal, hit.Normal)
			}
			if hit.Normal.Dot(ray.Direction) >= 0 {
				t.Error("Stored normal must oppose the incoming ray")
			}
		})
	}
}

func TestSphere_Hit_NegativeRadius(t *testing.T) {
	// A negative radius turns the outward normal inward, so an outside ray
	// sees the surface from the inside.
	shell := NewSphere(core.NewVec3(0, 0, 0), -1.0, gray)
	ray := core.NewRay(core.NewVec3(0, 0, 2), core.NewVec3(0, 0, -1))

	hit, isHit := shell.Hit(ray, 0.001, 1000.0)
	if !isHit {
		t.Fatal("Expected hit on negative-radius sphere")
	}
	if math.Abs(hit.T-1.0) > 1e-9 {
		t.Errorf("Expected t=1, got %f", hit.T)
	}
	if hit.Face != material.Inside {
		t.Errorf("Expected inside face, got %v", hit.Face)
	}
	if hit.Normal.Subtract(core.NewVec3(0, 0, 1)).Length() > 1e-9 {
		t.Errorf("Stored normal should still face the ray, got %v", hit.Normal)
	}
}

func TestSphere_Hit_GlancingHit(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, gray)
	ray := core.NewRay(core.NewVec3(1, 0, 2), core.NewVec3(0, 0, -1))

	hit, isHit := sphere.Hit(ray, 0.001, 1000.0)
	if !isHit {
		t.Fatal("Expected glancing hit, but got miss")
	}

	expectedPoint := core.NewVec3(1, 0, 0)
	if hit.Point.Subtract(expectedPoint).Length() > 1e-9 {
		t.Errorf("Expected hit point %v, got %v", expectedPoint, hit.Point)
	}
}

func TestSphere_Hit_Bounds(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, gray)
	ray := core.NewRay(core.NewVec3(0, 0, 2), core.NewVec3(0, 0, -1))

	tests := []struct {
		name       string
		tMin, tMax float64
		expectHit  bool
		expectedT  float64
	}{
		{"tMax before sphere", 0.001, 0.5, false, 0},
		{"tMin past sphere", 3.5, 1000, false, 0},
		{"tMax equals near root is exclusive", 0.001, 1.0, false, 0},
		{"tMin equals near root skips to far root", 1.0, 1000, true, 3.0},
		{"tMin equals far root is exclusive", 3.0, 1000, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, isHit := sphere.Hit(ray, tt.tMin, tt.tMax)
			if isHit != tt.expectHit {
				t.Fatalf("Expected hit=%t, got %t", tt.expectHit, isHit)
			}
			if isHit && math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got %f", tt.expectedT, hit.T)
			}
		})
	}
}

func TestSphere_Hit_CarriesMaterial(t *testing.T) {
	glass := material.NewDielectric(1.5)
	sphere := NewSphere(core.NewVec3(0, 0, -1), 0.5, glass)

	hit, isHit := sphere.Hit(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), 0.001, 1000)
	if !isHit {
		t.Fatal("Expected hit")
	}
	if hit.Material != glass {
		t.Errorf("Expected %v, got %v", glass, hit.Material)
	}
}

func BenchmarkSphere_Hit(b *testing.B) {
	sphere := NewSphere(core.NewVec3(0, 0, -1), 0.5, gray)
	ray := core.NewRay(core.Vec3{}, core.NewVec3(0.1, 0.1, -1))
	for i := 0; i < b.N; i++ {
		sphere.Hit(ray, 0.001, math.Inf(1))
	}
}
