package core

import (
	"math"
	"testing"
)

func TestRandomUnitVector_IsUnitLength(t *testing.T) {
	sampler := NewSeededSampler(42)
	for i := 0; i < 10000; i++ {
		v := RandomUnitVector(sampler)
		if math.Abs(v.Length()-1) > 1e-9 {
			t.Fatalf("Sample %d has length %f", i, v.Length())
		}
	}
}

func TestRandomUnitVector_MeanIsNearOrigin(t *testing.T) {
	sampler := NewSeededSampler(7)
	const n = 20000
	var sum Vec3
	for i := 0; i < n; i++ {
		sum = sum.Add(RandomUnitVector(sampler))
	}
	mean := sum.Multiply(1.0 / n)
	if mean.Length() > 0.05 {
		t.Errorf("Uniform sphere samples should average near zero, got %v", mean)
	}
}

func TestRandomInUnitSphere(t *testing.T) {
	sampler := NewSeededSampler(1)
	for i := 0; i < 10000; i++ {
		p := RandomInUnitSphere(sampler)
		if p.LengthSquared() > 1.0 {
			t.Fatalf("Point %v is outside the unit sphere", p)
		}
	}
}

func TestRandomInUnitSphere_RejectsCorner(t *testing.T) {
	// First triple maps to (1,1,1) which lies outside; second maps to the origin
	sampler := NewSequenceSampler(0.999, 0.999, 0.999, 0.5, 0.5, 0.5)
	p := RandomInUnitSphere(sampler)
	if !vecNear(p, Vec3{}, 1e-12) {
		t.Errorf("Expected the rejected corner to be skipped, got %v", p)
	}
}

func TestRandomInUnitDisk(t *testing.T) {
	sampler := NewSeededSampler(3)
	for i := 0; i < 10000; i++ {
		p := RandomInUnitDisk(sampler)
		if p.Z != 0 {
			t.Fatalf("Disk sample must lie on z=0, got %v", p)
		}
		if p.LengthSquared() >= 1.0 {
			t.Fatalf("Point %v is outside the unit disk", p)
		}
	}
}

func TestRandomInRange(t *testing.T) {
	sampler := NewSeededSampler(9)
	for i := 0; i < 1000; i++ {
		p := RandomInRange(sampler, -3, 2)
		for _, c := range []float64{p.X, p.Y, p.Z} {
			if c < -3 || c > 2 {
				t.Fatalf("Component %f outside [-3,2]", c)
			}
		}
	}
}

func TestReflect(t *testing.T) {
	tests := []struct {
		name     string
		v, n     Vec3
		expected Vec3
	}{
		{"head on", NewVec3(0, -1, 0), NewVec3(0, 1, 0), NewVec3(0, 1, 0)},
		{"45 degrees", NewVec3(1, -1, 0), NewVec3(0, 1, 0), NewVec3(1, 1, 0)},
		{"grazing", NewVec3(1, 0, 0), NewVec3(0, 1, 0), NewVec3(1, 0, 0)},
		{"from below", NewVec3(0, 1, 1), NewVec3(0, 1, 0), NewVec3(0, -1, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Reflect(tt.v, tt.n); !vecNear(got, tt.expected, tolerance) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestPixelSampler_IndependentOfOrder(t *testing.T) {
	a := NewPixelSampler(42, 3, 5)
	_ = NewPixelSampler(42, 4, 5).Get1D()
	b := NewPixelSampler(42, 3, 5)

	for i := 0; i < 16; i++ {
		if a.Get1D() != b.Get1D() {
			t.Fatal("Same seed and pixel must give the same stream")
		}
	}

	c := NewPixelSampler(42, 5, 3)
	d := NewPixelSampler(42, 3, 5)
	if c.Get1D() == d.Get1D() && c.Get1D() == d.Get1D() {
		t.Error("Transposed pixels should not share a stream")
	}
}

func TestSequenceSampler_Wraps(t *testing.T) {
	s := NewSequenceSampler(0.1, 0.2, 0.3)
	got := []float64{s.Get1D(), s.Get1D(), s.Get1D(), s.Get1D()}
	expected := []float64{0.1, 0.2, 0.3, 0.1}
	for i := range got {
		if got[i] != expected[i] {
			t.Errorf("Value %d: expected %f, got %f", i, expected[i], got[i])
		}
	}
}
